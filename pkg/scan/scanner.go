package scan

import (
	"context"
	"io"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/tame/pkg/catalog"
	"github.com/matzehuels/tame/pkg/errors"
	"github.com/matzehuels/tame/pkg/locate"
	"github.com/matzehuels/tame/pkg/observability"
	"github.com/matzehuels/tame/pkg/pkgjson"
	"github.com/matzehuels/tame/pkg/workspace"
)

// Options configures a Scanner.
type Options struct {
	// Fields are the package.json dependency fields to reconcile.
	// Defaults to pkgjson.DefaultFields.
	Fields []string

	// StrictPatterns makes an invalid packages pattern fatal instead of a warning.
	StrictPatterns bool

	// ExcludeDirs are directory names never searched for packages.
	// Defaults to locate.DefaultExcludeDirs.
	ExcludeDirs []string

	// Logger receives debug traces. Nil discards them.
	Logger *log.Logger
}

// Scanner audits workspaces. It is stateless between scans.
type Scanner struct {
	fields  []string
	strict  bool
	locator *locate.Locator
	logger  *log.Logger
}

// New creates a Scanner.
func New(opts Options) *Scanner {
	fields := opts.Fields
	if len(fields) == 0 {
		fields = pkgjson.DefaultFields
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Scanner{
		fields:  fields,
		strict:  opts.StrictPatterns,
		locator: locate.New(opts.ExcludeDirs...),
		logger:  logger,
	}
}

// Scan audits the workspace rooted at root. It fails only when the workspace
// descriptor cannot be loaded, when a pattern is invalid in strict mode, or
// when ctx is cancelled; every other problem becomes a Warning.
func (s *Scanner) Scan(ctx context.Context, root string) (res *Result, err error) {
	start := time.Now()
	hooks := observability.Scan()
	hooks.OnScanStart(ctx, root)
	defer func() {
		packages, findings := 0, 0
		if res != nil {
			packages, findings = len(res.Packages), len(res.Findings())
		}
		hooks.OnScanComplete(ctx, root, packages, findings, time.Since(start), err)
	}()

	if err := errors.ValidateRoot(root); err != nil {
		return nil, err
	}
	ws, err := workspace.Load(root)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("loaded workspace", "path", workspace.Path(root), "patterns", len(ws.Packages), "catalog", len(ws.Catalog))

	res = &Result{
		ID:       uuid.NewString(),
		Root:     root,
		Patterns: ws.Packages,
		Catalog:  ws.Catalog,
		Packages: []Package{},
	}

	include, exclude, err := s.compile(ws.Packages, res)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	for _, p := range include {
		match, err := s.locator.Locate(root, p)
		if err != nil {
			return nil, err
		}
		hooks.OnPattern(ctx, p.Raw, len(match.Paths), nil)
		s.logger.Debug("scanning packages", "pattern", p.Raw, "matches", len(match.Paths))

		for _, w := range match.Warnings {
			res.warn(Warning{Code: errors.ErrCodeRead, Path: w.Path, Pattern: p.Raw, Message: w.Err.Error()})
			s.logger.Warn("skipping unreadable entry", "path", w.Path, "err", w.Err)
		}

		for _, path := range match.Paths {
			if err := ctx.Err(); err != nil {
				return nil, errors.Wrap(errors.ErrCodeCanceled, err, "scan of %s interrupted", root)
			}
			rel := relative(root, path)
			key := identity(path)
			if seen[key] || excluded(exclude, rel) {
				continue
			}
			seen[key] = true

			pkg, err := s.inspect(ctx, path, rel, p.Raw, ws.Catalog)
			if err != nil {
				res.warn(Warning{Code: errors.GetCode(err), Path: path, Message: errors.UserMessage(err)})
				s.logger.Warn("failed to check package", "path", path, "err", errors.UserMessage(err))
				continue
			}
			res.Packages = append(res.Packages, *pkg)
		}
	}

	res.Duration = time.Since(start)
	return res, nil
}

// compile splits the workspace patterns into include and exclude sets.
func (s *Scanner) compile(raw []string, res *Result) (include, exclude []locate.Pattern, err error) {
	for _, r := range raw {
		p, err := locate.Compile(r)
		if err != nil {
			if s.strict {
				return nil, nil, err
			}
			res.warn(Warning{Code: errors.ErrCodeInvalidPattern, Pattern: r, Message: errors.UserMessage(err)})
			s.logger.Warn("skipping invalid pattern", "pattern", r, "err", errors.UserMessage(err))
			continue
		}
		if p.Negated {
			exclude = append(exclude, p)
		} else {
			include = append(include, p)
		}
	}
	return include, exclude, nil
}

// inspect reads one manifest and reconciles each configured field.
func (s *Scanner) inspect(ctx context.Context, path, rel, pattern string, entries []string) (*Package, error) {
	start := time.Now()
	m, err := pkgjson.Read(path, s.fields...)
	if err != nil {
		observability.Scan().OnPackage(ctx, path, 0, time.Since(start), err)
		return nil, err
	}

	pkg := &Package{
		Dir:      filepath.ToSlash(filepath.Dir(rel)),
		Manifest: path,
		Name:     m.Name,
		Pattern:  pattern,
	}
	for _, field := range s.fields {
		usages := catalog.Match(field, m.Field(field), entries)
		pkg.Usages = append(pkg.Usages, usages...)
		pkg.Findings = append(pkg.Findings, catalog.Findings(pkg.Dir, path, usages)...)
	}

	s.logger.Debug("checked package", "path", path, "usages", len(pkg.Usages), "findings", len(pkg.Findings))
	observability.Scan().OnPackage(ctx, path, len(pkg.Findings), time.Since(start), nil)
	return pkg, nil
}

func (r *Result) warn(w Warning) {
	r.Warnings = append(r.Warnings, w)
}

func relative(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}

// identity resolves symlinks so a package reachable through several paths is
// scanned once.
func identity(path string) string {
	if resolved, err := filepath.EvalSymlinks(path); err == nil {
		return resolved
	}
	return path
}

func excluded(patterns []locate.Pattern, rel string) bool {
	for _, p := range patterns {
		if p.Matches(rel) {
			return true
		}
	}
	return false
}
