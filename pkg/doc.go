// Package pkg provides the core libraries for tame, a pnpm workspace catalog auditor.
//
// # Overview
//
// A pnpm workspace lists its packages as glob patterns in pnpm-workspace.yaml
// and may declare a catalog of dependencies whose versions are managed
// centrally. Packages should refer to catalog dependencies with a
// "workspace:" reference. tame finds the ones that pin a literal version
// instead and can rewrite them.
//
// # Architecture
//
// The data flow through tame:
//
//	pnpm-workspace.yaml
//	         ↓
//	    [workspace] package (packages patterns + catalog)
//	         ↓
//	    [locate] package (patterns → package.json paths)
//	         ↓
//	    [pkgjson] package (dependency fields of each package)
//	         ↓
//	    [catalog] package (compliant or finding)
//	         ↓
//	    [scan] package (Result: packages, findings, warnings)
//	         ↓
//	    [fix] package (rewrite) / [report] package (text, JSON, DOT, SVG)
//
// # Quick Start
//
//	res, err := scan.New(scan.Options{}).Scan(ctx, ".")
//	if err != nil {
//	    return err
//	}
//	for _, f := range res.Findings() {
//	    fmt.Printf("%s: %s@%s\n", f.Package, f.Name, f.Version)
//	}
//
//	fixer, _ := fix.New(fix.Options{DryRun: true, Diff: true})
//	out, _ := fixer.Apply(ctx, res)
//
// # Supporting Packages
//
//   - [errors]: coded errors shared by every package
//   - [config]: tame.toml settings
//   - [observability]: scan and fix hooks
//   - [buildinfo]: version information injected at build time
package pkg
