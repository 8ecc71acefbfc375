// Package locate expands pnpm workspace globs into package.json paths.
//
// Each entry of the workspace "packages" list names package directories; the
// locator appends "/package.json" and walks the part of the tree the pattern
// can reach, matching with doublestar semantics (*, **, ?, [abc], {a,b}).
// Entries starting with "!" are exclusions and are compiled but never walked.
//
// Directories that cannot be listed do not abort the walk: they are recorded
// as [Warning]s on the returned [Match] and skipped. Symlinked directories are
// followed, each resolved target at most once, so link cycles terminate.
package locate

import (
	stderrors "errors"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/matzehuels/tame/pkg/errors"
)

// ManifestName is the per-package manifest file name.
const ManifestName = "package.json"

// DefaultExcludeDirs are directory names never descended into.
var DefaultExcludeDirs = []string{"node_modules"}

// Pattern is a compiled workspace packages entry.
type Pattern struct {
	Raw     string // entry as written in pnpm-workspace.yaml
	Glob    string // slash-separated glob of the manifest path, relative to the root
	Negated bool   // entry starts with "!"
}

// Compile validates a packages entry and turns it into a manifest glob.
func Compile(raw string) (Pattern, error) {
	if err := errors.ValidatePattern(raw); err != nil {
		return Pattern{}, err
	}

	p := Pattern{Raw: raw}
	body := raw
	if strings.HasPrefix(body, "!") {
		p.Negated = true
		body = strings.TrimPrefix(body, "!")
		if err := errors.ValidatePattern(body); err != nil {
			return Pattern{}, err
		}
	}

	p.Glob = path.Join(filepath.ToSlash(body), ManifestName)
	if !doublestar.ValidatePattern(p.Glob) {
		return Pattern{}, errors.Wrap(errors.ErrCodeInvalidPattern, doublestar.ErrBadPattern, "invalid glob pattern %s", raw)
	}
	return p, nil
}

// Matches reports whether a root-relative manifest path matches the pattern.
func (p Pattern) Matches(rel string) bool {
	ok, err := doublestar.Match(p.Glob, filepath.ToSlash(rel))
	return err == nil && ok
}

// maxDepth is the number of path segments a match can have, or -1 when the
// pattern contains "**" and is unbounded.
func (p Pattern) maxDepth() int {
	if strings.Contains(p.Glob, "**") {
		return -1
	}
	return strings.Count(p.Glob, "/") + 1
}

// Warning is a non-fatal problem met while walking the tree.
type Warning struct {
	Path string
	Err  error
}

func (w Warning) Error() string { return w.Path + ": " + w.Err.Error() }

// Match is the result of locating one pattern.
type Match struct {
	Pattern  Pattern
	Paths    []string // manifest paths joined onto the root, in walk order
	Warnings []Warning
}

// Locator walks a workspace tree looking for package manifests.
type Locator struct {
	exclude map[string]bool
}

// New creates a Locator that never descends into the named directories.
// With no arguments [DefaultExcludeDirs] is used.
func New(excludeDirs ...string) *Locator {
	if len(excludeDirs) == 0 {
		excludeDirs = DefaultExcludeDirs
	}
	exclude := make(map[string]bool, len(excludeDirs))
	for _, d := range excludeDirs {
		exclude[d] = true
	}
	return &Locator{exclude: exclude}
}

// Locate returns every manifest under root matching p. Matches are returned in
// lexical walk order. A negated pattern locates nothing.
func (l *Locator) Locate(root string, p Pattern) (*Match, error) {
	m := &Match{Pattern: p}
	if p.Negated {
		return m, nil
	}

	base, _ := doublestar.SplitPattern(p.Glob)
	start := filepath.Join(root, filepath.FromSlash(base))

	w := &walker{
		locator: l,
		root:    root,
		pattern: p,
		limit:   p.maxDepth(),
		match:   m,
		visited: make(map[string]bool),
	}
	if err := w.walk(start, start); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "failed to walk %s", start)
	}
	return m, nil
}

// walker holds the state of one Locate call.
type walker struct {
	locator *Locator
	root    string
	pattern Pattern
	limit   int
	match   *Match
	visited map[string]bool // resolved directories already walked
}

// walk walks the directory at physical, reporting every path as if it lived
// under logical. Symlinked directories are followed once per resolved target.
func (w *walker) walk(physical, logical string) error {
	resolved, err := filepath.EvalSymlinks(physical)
	if err != nil {
		resolved = physical
	}

	return filepath.WalkDir(physical, func(current string, d fs.DirEntry, err error) error {
		sub, relErr := filepath.Rel(physical, current)
		if relErr != nil {
			return relErr
		}
		shown := filepath.Join(logical, sub)

		if err != nil {
			if current == physical && stderrors.Is(err, fs.ErrNotExist) {
				return nil
			}
			w.match.Warnings = append(w.match.Warnings, Warning{Path: shown, Err: err})
			if d != nil && d.IsDir() && current != physical {
				return fs.SkipDir
			}
			return nil
		}

		rel, relErr := filepath.Rel(w.root, shown)
		if relErr != nil {
			return relErr
		}
		rel = filepath.ToSlash(rel)

		if d.Type()&fs.ModeSymlink != 0 {
			info, err := os.Stat(current)
			if err != nil {
				w.match.Warnings = append(w.match.Warnings, Warning{Path: shown, Err: err})
				return nil
			}
			if info.IsDir() {
				if current != physical && w.prune(d.Name(), rel) {
					return nil
				}
				return w.follow(current, shown)
			}
		}

		if d.IsDir() {
			if current != physical && w.prune(d.Name(), rel) {
				return fs.SkipDir
			}
			if current == physical && w.tooDeep(rel) {
				return fs.SkipDir
			}
			w.visited[filepath.Join(resolved, sub)] = true
			return nil
		}

		if d.Name() == ManifestName && w.pattern.Matches(rel) {
			w.match.Paths = append(w.match.Paths, shown)
		}
		return nil
	})
}

// follow descends into a symlinked directory unless its target was already
// walked, which also stops link cycles.
func (w *walker) follow(link, shown string) error {
	target, err := filepath.EvalSymlinks(link)
	if err != nil {
		w.match.Warnings = append(w.match.Warnings, Warning{Path: shown, Err: err})
		return nil
	}
	if w.visited[target] {
		return nil
	}
	return w.walk(target, shown)
}

func (w *walker) prune(name, rel string) bool {
	return w.locator.exclude[name] || w.tooDeep(rel)
}

func (w *walker) tooDeep(rel string) bool {
	return w.limit >= 0 && rel != "." && strings.Count(rel, "/")+1 >= w.limit
}
