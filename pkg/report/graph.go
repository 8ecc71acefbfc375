package report

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/tame/pkg/errors"
	"github.com/matzehuels/tame/pkg/scan"
)

// Graph output formats.
const (
	GraphDOT = "dot"
	GraphSVG = "svg"
)

// ParseGraphFormat validates a graph format name. The empty string selects DOT.
func ParseGraphFormat(s string) (string, error) {
	switch f := strings.ToLower(strings.TrimSpace(s)); f {
	case "":
		return GraphDOT, nil
	case GraphDOT, GraphSVG:
		return f, nil
	}
	return "", errors.New(errors.ErrCodeInvalidConfig, "unknown graph format %q (want dot or svg)", s)
}

// ToDOT converts a scan result to Graphviz DOT. Packages point at the catalog
// dependencies they declare; edges of non-compliant declarations are red and
// labeled with the literal version.
func ToDOT(res *scan.Result) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("\n")

	for _, p := range res.Packages {
		attrs := []string{fmt.Sprintf("label=%q", packageLabel(p)), "shape=box", "style=\"rounded,filled\""}
		if p.NeedsFix() {
			attrs = append(attrs, "fillcolor=\"#fde2e1\"", "color=\"#c0392b\"")
		} else {
			attrs = append(attrs, "fillcolor=white")
		}
		fmt.Fprintf(&buf, "  %q [%s];\n", packageID(p), strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, name := range res.Catalog {
		fmt.Fprintf(&buf, "  %q [label=%q, shape=ellipse, style=filled, fillcolor=\"#e8f4f8\"];\n", catalogID(name), name)
	}

	buf.WriteString("\n")
	for _, p := range res.Packages {
		for _, u := range p.Usages {
			attrs := []string{"color=\"#95a5a6\""}
			if !u.Compliant {
				attrs = []string{"color=\"#c0392b\"", "penwidth=2", fmt.Sprintf("label=%q", u.Version), "fontcolor=\"#c0392b\""}
			}
			fmt.Fprintf(&buf, "  %q -> %q [%s];\n", packageID(p), catalogID(u.Name), strings.Join(attrs, ", "))
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func packageID(p scan.Package) string { return "pkg:" + p.Dir }

func catalogID(name string) string { return "dep:" + name }

func packageLabel(p scan.Package) string {
	if p.Name == "" || p.Name == p.Dir {
		return p.Dir
	}
	return p.Name + "\n" + p.Dir
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "init graphviz")
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "parse DOT")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "render")
	}
	return buf.Bytes(), nil
}

// Graph renders the dependency graph of res in the given graph format.
func Graph(ctx context.Context, res *scan.Result, format string) ([]byte, error) {
	dot := ToDOT(res)
	if format == GraphSVG {
		return RenderSVG(ctx, dot)
	}
	return []byte(dot), nil
}
