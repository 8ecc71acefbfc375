// Package report renders scan and fix results.
//
// Three outputs are supported:
//
//   - [FormatText]: styled console output built with lipgloss, one table row
//     per finding followed by warnings and a summary line.
//   - [FormatJSON]: a machine-readable document for CI pipelines.
//   - Graphviz: [ToDOT] and [RenderSVG] export the package to catalog
//     dependency graph with non-compliant edges highlighted.
//
// Renderers write to an [io.Writer] and never print on their own.
package report
