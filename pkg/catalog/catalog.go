// Package catalog reconciles package dependencies against the workspace catalog.
//
// A dependency listed in the catalog is compliant when its version is a
// catalog reference, i.e. starts with [ReferencePrefix]. Anything else, even
// an exact copy of the catalog version, is a [Finding].
package catalog

import (
	"strings"

	"github.com/matzehuels/tame/pkg/errors"
	"github.com/matzehuels/tame/pkg/pkgjson"
)

const (
	// ReferencePrefix marks a version specifier that defers to the workspace.
	ReferencePrefix = "workspace:"

	// DefaultReference is written by fix mode.
	DefaultReference = "workspace:*"
)

// IsReference reports whether version defers to the workspace catalog.
// Only the prefix is checked; "workspace:" on its own is a reference.
func IsReference(version string) bool {
	return strings.HasPrefix(version, ReferencePrefix)
}

// ValidateReference checks a replacement token for fix mode. A token that is
// not itself a reference would leave findings behind after fixing.
func ValidateReference(token string) error {
	if !IsReference(token) {
		return errors.New(errors.ErrCodeInvalidConfig, "reference %q must start with %q", token, ReferencePrefix)
	}
	return nil
}

// Usage is one catalog dependency declared by a package.
type Usage struct {
	Field     string `json:"field"`
	Name      string `json:"name"`
	Version   string `json:"version"`
	Compliant bool   `json:"compliant"`
}

// Finding is a catalog dependency declared with a literal version.
type Finding struct {
	Package  string `json:"package"`  // package directory, relative to the workspace root
	Manifest string `json:"manifest"` // package.json path
	Field    string `json:"field"`
	Name     string `json:"name"`
	Version  string `json:"version"`
}

// Match lists the catalog entries declared in deps, in catalog order.
// Entries the package does not declare are skipped.
func Match(field string, deps pkgjson.Dependencies, entries []string) []Usage {
	var out []Usage
	for _, name := range entries {
		version, ok := deps[name]
		if !ok {
			continue
		}
		out = append(out, Usage{
			Field:     field,
			Name:      name,
			Version:   version,
			Compliant: IsReference(version),
		})
	}
	return out
}

// Reconcile returns the findings for one dependency field of a package, in
// catalog order. pkg and manifest identify the package in each finding.
//
// It is shorthand for Findings(pkg, manifest, Match(field, deps, entries)) for
// callers that only need the violations. The scanner calls Match and Findings
// separately because it also records the compliant usages.
func Reconcile(pkg, manifest, field string, deps pkgjson.Dependencies, entries []string) []Finding {
	return Findings(pkg, manifest, Match(field, deps, entries))
}

// Findings converts the non-compliant usages of a package into findings.
func Findings(pkg, manifest string, usages []Usage) []Finding {
	var out []Finding
	for _, u := range usages {
		if u.Compliant {
			continue
		}
		out = append(out, Finding{
			Package:  pkg,
			Manifest: manifest,
			Field:    u.Field,
			Name:     u.Name,
			Version:  u.Version,
		})
	}
	return out
}
