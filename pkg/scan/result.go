package scan

import (
	"time"

	"github.com/matzehuels/tame/pkg/catalog"
	"github.com/matzehuels/tame/pkg/errors"
)

// Package is the outcome of inspecting one package.json.
type Package struct {
	Dir      string            `json:"dir"` // relative to the workspace root, slash-separated
	Manifest string            `json:"manifest"`
	Name     string            `json:"name,omitempty"`
	Pattern  string            `json:"pattern"`
	Usages   []catalog.Usage   `json:"usages,omitempty"`
	Findings []catalog.Finding `json:"findings,omitempty"`
}

// NeedsFix reports whether the package has non-compliant declarations.
func (p Package) NeedsFix() bool { return len(p.Findings) > 0 }

// Warning is a non-fatal problem met during a scan.
type Warning struct {
	Code    errors.Code `json:"code"`
	Path    string      `json:"path,omitempty"`
	Pattern string      `json:"pattern,omitempty"`
	Message string      `json:"message"`
}

func (w Warning) String() string {
	switch {
	case w.Path != "":
		return w.Path + ": " + w.Message
	case w.Pattern != "":
		return w.Pattern + ": " + w.Message
	}
	return w.Message
}

// Result aggregates everything a scan found.
type Result struct {
	ID       string        `json:"id"`
	Root     string        `json:"root"`
	Patterns []string      `json:"patterns"`
	Catalog  []string      `json:"catalog"`
	Packages []Package     `json:"packages"`
	Warnings []Warning     `json:"warnings,omitempty"`
	Duration time.Duration `json:"duration"`
}

// HasCatalog reports whether the workspace declares any catalog entries.
func (r *Result) HasCatalog() bool { return len(r.Catalog) > 0 }

// Findings returns every finding, grouped by package in scan order.
func (r *Result) Findings() []catalog.Finding {
	var out []catalog.Finding
	for _, p := range r.Packages {
		out = append(out, p.Findings...)
	}
	return out
}

// Pending returns the packages fix mode would modify.
func (r *Result) Pending() []Package {
	var out []Package
	for _, p := range r.Packages {
		if p.NeedsFix() {
			out = append(out, p)
		}
	}
	return out
}
