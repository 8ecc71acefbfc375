package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/tame/pkg/catalog"
	"github.com/matzehuels/tame/pkg/errors"
	"github.com/matzehuels/tame/pkg/fix"
	"github.com/matzehuels/tame/pkg/pkgjson"
	"github.com/matzehuels/tame/pkg/scan"
)

func sampleResult() *scan.Result {
	finding := catalog.Finding{
		Package:  "packages/a",
		Manifest: "/ws/packages/a/package.json",
		Field:    "dependencies",
		Name:     "lodash",
		Version:  "4.17.21",
	}
	return &scan.Result{
		ID:       "test",
		Root:     "/ws",
		Patterns: []string{"packages/*"},
		Catalog:  []string{"lodash", "react"},
		Packages: []scan.Package{
			{
				Dir:      "packages/a",
				Manifest: "/ws/packages/a/package.json",
				Name:     "@acme/a",
				Pattern:  "packages/*",
				Usages: []catalog.Usage{
					{Field: "dependencies", Name: "lodash", Version: "4.17.21"},
					{Field: "dependencies", Name: "react", Version: "workspace:*", Compliant: true},
				},
				Findings: []catalog.Finding{finding},
			},
			{
				Dir:      "packages/b",
				Manifest: "/ws/packages/b/package.json",
				Pattern:  "packages/*",
			},
		},
		Warnings: []scan.Warning{
			{Code: errors.ErrCodeParse, Path: "/ws/packages/c/package.json", Message: "failed to parse"},
		},
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"", FormatText, false},
		{"text", FormatText, false},
		{"JSON", FormatJSON, false},
		{"yaml", "", true},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseFormat(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if err != nil && !errors.Is(err, errors.ErrCodeInvalidConfig) {
			t.Errorf("ParseFormat(%q) code = %v, want %v", tt.in, errors.GetCode(err), errors.ErrCodeInvalidConfig)
		}
		if got != tt.want {
			t.Errorf("ParseFormat(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCheckText(t *testing.T) {
	var buf bytes.Buffer
	if err := Check(&buf, sampleResult(), FormatText); err != nil {
		t.Fatal(err)
	}
	out := buf.String()

	for _, want := range []string{
		"Found 2 catalog entries in pnpm-workspace.yaml",
		"Package",
		"packages/a",
		"lodash",
		"4.17.21",
		"/ws/packages/c/package.json: failed to parse",
		"1 non-workspace dependency in 1 package",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "react") {
		t.Errorf("compliant dependency reported:\n%s", out)
	}
}

func TestCheckTextClean(t *testing.T) {
	res := sampleResult()
	res.Packages[0].Findings = nil
	res.Warnings = nil

	var buf bytes.Buffer
	if err := Check(&buf, res, FormatText); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "All catalog dependencies use workspace references (2 packages checked)") {
		t.Errorf("output = %q", buf.String())
	}
}

func TestCheckTextNoCatalog(t *testing.T) {
	res := &scan.Result{Root: "/ws", Packages: []scan.Package{{Dir: "packages/a"}}}

	var buf bytes.Buffer
	if err := Check(&buf, res, FormatText); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, "No catalog entries found in pnpm-workspace.yaml") {
		t.Errorf("output = %q", out)
	}
	if strings.Contains(out, "Found") {
		t.Errorf("output should not count entries: %q", out)
	}
}

func TestCheckJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := Check(&buf, sampleResult(), FormatJSON); err != nil {
		t.Fatal(err)
	}

	var doc struct {
		ID       string            `json:"id"`
		Catalog  []string          `json:"catalog"`
		Findings []catalog.Finding `json:"findings"`
		Summary  CheckSummary      `json:"summary"`
	}
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, buf.String())
	}

	if doc.ID != "test" {
		t.Errorf("id = %q, want test", doc.ID)
	}
	wantSummary := CheckSummary{CatalogEntries: 2, Packages: 2, Findings: 1, Warnings: 1}
	if diff := cmp.Diff(wantSummary, doc.Summary); diff != "" {
		t.Errorf("summary mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(sampleResult().Findings(), doc.Findings); diff != "" {
		t.Errorf("findings mismatch (-want +got):\n%s", diff)
	}
}

func TestCheckJSONEmptyFindings(t *testing.T) {
	var buf bytes.Buffer
	if err := Check(&buf, &scan.Result{}, FormatJSON); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), `"findings": []`) {
		t.Errorf("findings should be an empty array:\n%s", buf.String())
	}
}

func sampleFix(dryRun bool) *fix.Result {
	return &fix.Result{
		DryRun: dryRun,
		Changes: []fix.Change{{
			Dir:      "packages/a",
			Manifest: "/ws/packages/a/package.json",
			Edits:    []pkgjson.Edit{{Field: "dependencies", Name: "lodash", From: "4.17.21", To: "workspace:*"}},
			Rewrites: 1,
			Modified: !dryRun,
			Diff:     "--- a/packages/a/package.json\n+++ b/packages/a/package.json\n@@ -1,1 +1,1 @@\n-x\n+y\n",
		}},
	}
}

func TestFixText(t *testing.T) {
	tests := []struct {
		name   string
		res    *fix.Result
		wants  []string
		absent string
	}{
		{
			name:   "applied",
			res:    sampleFix(false),
			wants:  []string{"Fixed packages/a", "lodash 4.17.21 → workspace:*", "Rewrote 1 dependency in 1 package"},
			absent: "dry run",
		},
		{
			name:   "dry run",
			res:    sampleFix(true),
			wants:  []string{"Would fix packages/a", "+++ b/packages/a/package.json", "+y", "dry run, no files written"},
			absent: "Rewrote",
		},
		{
			name:   "nothing",
			res:    &fix.Result{},
			wants:  []string{"Nothing to fix"},
			absent: "Fixed",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := Fix(&buf, tt.res, FormatText); err != nil {
				t.Fatal(err)
			}
			out := buf.String()
			for _, want := range tt.wants {
				if !strings.Contains(out, want) {
					t.Errorf("output missing %q:\n%s", want, out)
				}
			}
			if strings.Contains(out, tt.absent) {
				t.Errorf("output contains %q:\n%s", tt.absent, out)
			}
		})
	}
}

func TestFixJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := Fix(&buf, sampleFix(false), FormatJSON); err != nil {
		t.Fatal(err)
	}

	var doc struct {
		DryRun  bool         `json:"dry_run"`
		Changes []fix.Change `json:"changes"`
		Summary FixSummary   `json:"summary"`
	}
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	want := FixSummary{Packages: 1, Rewrites: 1, Modified: 1}
	if diff := cmp.Diff(want, doc.Summary); diff != "" {
		t.Errorf("summary mismatch (-want +got):\n%s", diff)
	}
	if len(doc.Changes) != 1 || doc.Changes[0].Edits[0].To != "workspace:*" {
		t.Errorf("changes = %+v", doc.Changes)
	}
}
