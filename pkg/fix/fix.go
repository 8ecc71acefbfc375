// Package fix rewrites catalog dependencies to workspace references.
//
// A [Fixer] consumes a [scan.Result] and, for every package with findings,
// replaces each literal version with the configured reference token
// (workspace:* by default). Only the version string literals change; the
// rest of each package.json is written back byte for byte.
//
// With Options.DryRun nothing is written and the returned [Result] lists the
// packages that would change, optionally with a unified diff of each.
package fix

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/tame/pkg/catalog"
	"github.com/matzehuels/tame/pkg/errors"
	"github.com/matzehuels/tame/pkg/observability"
	"github.com/matzehuels/tame/pkg/pkgjson"
	"github.com/matzehuels/tame/pkg/scan"
)

// Options configures a Fixer.
type Options struct {
	// Reference replaces literal versions. Must start with "workspace:".
	// Defaults to catalog.DefaultReference.
	Reference string

	// DryRun computes changes without writing any file.
	DryRun bool

	// Diff attaches a unified diff to every change.
	Diff bool

	// Select restricts fixing to the packages it returns true for.
	// Nil selects every package with findings.
	Select func(scan.Package) bool

	// Logger receives debug traces. Nil discards them.
	Logger *log.Logger
}

// Change describes the rewrite of one package.json.
type Change struct {
	Dir      string         `json:"dir"`
	Manifest string         `json:"manifest"`
	Edits    []pkgjson.Edit `json:"edits"`
	Rewrites int            `json:"rewrites"` // versions replaced
	Modified bool           `json:"modified"` // file written to disk
	Diff     string         `json:"diff,omitempty"`
}

// Result summarizes a fix run.
type Result struct {
	DryRun   bool           `json:"dry_run"`
	Changes  []Change       `json:"changes"`
	Warnings []scan.Warning `json:"warnings,omitempty"`
}

// Rewrites returns the total number of versions replaced (or that would be).
func (r *Result) Rewrites() int {
	n := 0
	for _, c := range r.Changes {
		n += c.Rewrites
	}
	return n
}

// Modified returns the number of package files written.
func (r *Result) Modified() int {
	n := 0
	for _, c := range r.Changes {
		if c.Modified {
			n++
		}
	}
	return n
}

// Fixer applies workspace references to scan findings.
type Fixer struct {
	opts   Options
	logger *log.Logger
}

// New creates a Fixer, validating the reference token.
func New(opts Options) (*Fixer, error) {
	if opts.Reference == "" {
		opts.Reference = catalog.DefaultReference
	}
	if err := catalog.ValidateReference(opts.Reference); err != nil {
		return nil, err
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Fixer{opts: opts, logger: logger}, nil
}

// Apply rewrites every selected package of res that has findings. A package
// that cannot be read or written is reported as a warning and skipped.
func (f *Fixer) Apply(ctx context.Context, res *scan.Result) (*Result, error) {
	out := &Result{DryRun: f.opts.DryRun, Changes: []Change{}}

	for _, pkg := range res.Pending() {
		if err := ctx.Err(); err != nil {
			return nil, errors.Wrap(errors.ErrCodeCanceled, err, "fix of %s interrupted", res.Root)
		}
		if f.opts.Select != nil && !f.opts.Select(pkg) {
			continue
		}

		change, err := f.fixPackage(res.Root, pkg)
		observability.Fix().OnFixPackage(ctx, pkg.Manifest, change.Rewrites, f.opts.DryRun, err)
		if err != nil {
			out.Warnings = append(out.Warnings, scan.Warning{
				Code:    errors.GetCode(err),
				Path:    pkg.Manifest,
				Message: errors.UserMessage(err),
			})
			f.logger.Warn("failed to fix package", "path", pkg.Manifest, "err", errors.UserMessage(err))
			continue
		}
		if change.Rewrites == 0 {
			f.logger.Debug("package already compliant", "path", pkg.Manifest)
			continue
		}
		out.Changes = append(out.Changes, change)
	}
	return out, nil
}

func (f *Fixer) fixPackage(root string, pkg scan.Package) (Change, error) {
	change := Change{Dir: pkg.Dir, Manifest: pkg.Manifest}
	for _, finding := range pkg.Findings {
		change.Edits = append(change.Edits, pkgjson.Edit{
			Field: finding.Field,
			Name:  finding.Name,
			From:  finding.Version,
			To:    f.opts.Reference,
		})
	}

	before, err := os.ReadFile(pkg.Manifest)
	if err != nil {
		return change, errors.Wrap(errors.ErrCodeRead, err, "failed to read %s", pkg.Manifest)
	}
	after, n, err := pkgjson.Rewrite(before, change.Edits)
	if err != nil {
		return change, errors.Wrap(errors.ErrCodeParse, err, "failed to rewrite %s", pkg.Manifest)
	}
	change.Rewrites = n
	if n == 0 {
		return change, nil
	}

	if f.opts.Diff {
		change.Diff = unifiedDiff(displayPath(root, pkg.Manifest), string(before), string(after))
	}
	if f.opts.DryRun {
		return change, nil
	}

	if err := writeFile(pkg.Manifest, after); err != nil {
		return change, err
	}
	change.Modified = true
	f.logger.Debug("rewrote package", "path", pkg.Manifest, "rewrites", n)
	return change, nil
}

// writeFile replaces path atomically, keeping its permissions.
func writeFile(path string, data []byte) error {
	info, err := os.Stat(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeWrite, err, "failed to stat %s", path)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".package.json.*")
	if err != nil {
		return errors.Wrap(errors.ErrCodeWrite, err, "failed to write %s", path)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return errors.Wrap(errors.ErrCodeWrite, err, "failed to write %s", path)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return errors.Wrap(errors.ErrCodeWrite, err, "failed to write %s", path)
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrap(errors.ErrCodeWrite, err, "failed to write %s", path)
	}
	if err := os.Chmod(tmp.Name(), info.Mode().Perm()); err != nil {
		return errors.Wrap(errors.ErrCodeWrite, err, "failed to write %s", path)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return errors.Wrap(errors.ErrCodeWrite, err, "failed to replace %s", path)
	}
	return nil
}

func displayPath(root, path string) string {
	if rel, err := filepath.Rel(root, path); err == nil {
		return filepath.ToSlash(rel)
	}
	return filepath.ToSlash(path)
}
