// Package workspace reads the pnpm workspace descriptor.
//
// A workspace root holds a pnpm-workspace.yaml listing the package globs and
// the catalog of centrally pinned dependencies:
//
//	packages:
//	  - "packages/*"
//	  - "apps/**"
//	  - "!**/test/**"
//	catalog:
//	  - lodash
//	  - react
//
// The catalog may also use pnpm's native mapping form, in which case the
// keys, in document order, are the catalog names:
//
//	catalog:
//	  lodash: ^4.17.21
//	  react: ^18.2.0
//
// Use [Load] to read the descriptor from a root directory, or [Parse] when
// the content is already in memory.
package workspace
