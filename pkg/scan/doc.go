// Package scan audits a pnpm workspace for catalog dependencies that are
// pinned to literal versions.
//
// A [Scanner] performs one linear pass over a workspace:
//
//  1. load pnpm-workspace.yaml (fatal on failure)
//  2. compile every packages pattern (invalid ones are warnings, or fatal
//     with Options.StrictPatterns)
//  3. locate the package.json files of each pattern, dropping those matched
//     by a "!" pattern and those already seen
//  4. read each manifest and reconcile its dependencies against the catalog
//
// Per-package problems never abort the scan; they are collected as
// [Warning]s on the [Result] so one broken package does not hide the rest of
// the workspace. Rendering is left to the caller (see package report).
//
// # Example
//
//	s := scan.New(scan.Options{Logger: logger})
//	res, err := s.Scan(ctx, ".")
//	if err != nil {
//	    return err
//	}
//	for _, f := range res.Findings() {
//	    fmt.Printf("%s: %s@%s\n", f.Package, f.Name, f.Version)
//	}
package scan
