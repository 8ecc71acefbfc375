// Package pkgjson reads and edits package.json manifests.
//
// [Read] extracts the dependency maps of a manifest. Only string versions are
// kept; a missing or non-object dependency field is an empty map, since a
// package without dependencies is perfectly valid.
//
// [Rewrite] replaces individual version strings in place. It edits the raw
// bytes at the exact offsets of the values it changes, so key order,
// indentation, trailing newlines and every other field survive untouched.
package pkgjson
