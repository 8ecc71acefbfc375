package report

import (
	"strings"
	"testing"
)

func TestToDOT(t *testing.T) {
	dot := ToDOT(sampleResult())

	for _, want := range []string{
		"digraph G {",
		`"pkg:packages/a" [label="@acme/a\npackages/a"`,
		`"pkg:packages/b" [label="packages/b"`,
		`"dep:lodash" [label="lodash", shape=ellipse`,
		`"dep:react" [label="react", shape=ellipse`,
		`"pkg:packages/a" -> "dep:lodash" [color="#c0392b", penwidth=2, label="4.17.21"`,
		`"pkg:packages/a" -> "dep:react" [color="#95a5a6"]`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %q:\n%s", want, dot)
		}
	}
	if strings.Contains(dot, `"pkg:packages/b" ->`) {
		t.Errorf("packages/b declares no catalog dependency:\n%s", dot)
	}
}

func TestParseGraphFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"", GraphDOT, false},
		{"dot", GraphDOT, false},
		{"SVG", GraphSVG, false},
		{"png", "", true},
	}
	for _, tt := range tests {
		got, err := ParseGraphFormat(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseGraphFormat(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseGraphFormat(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
