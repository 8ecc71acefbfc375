package catalog

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/tame/pkg/errors"
	"github.com/matzehuels/tame/pkg/pkgjson"
)

func TestIsReference(t *testing.T) {
	tests := []struct {
		version string
		want    bool
	}{
		{"workspace:*", true},
		{"workspace:^", true},
		{"workspace:~1.2.3", true},
		{"workspace:", true},
		{"1.2.3", false},
		{"^4.17.21", false},
		{"catalog:", false},
		{"Workspace:*", false},
		{" workspace:*", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.version, func(t *testing.T) {
			if got := IsReference(tt.version); got != tt.want {
				t.Errorf("IsReference(%q) = %v, want %v", tt.version, got, tt.want)
			}
		})
	}
}

func TestValidateReference(t *testing.T) {
	if err := ValidateReference(DefaultReference); err != nil {
		t.Errorf("ValidateReference(%q) = %v, want nil", DefaultReference, err)
	}
	if err := ValidateReference("catalog:"); !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("ValidateReference(catalog:) = %v, want %v", err, errors.ErrCodeInvalidConfig)
	}
}

func TestReconcile(t *testing.T) {
	tests := []struct {
		name    string
		deps    pkgjson.Dependencies
		entries []string
		want    []Finding
	}{
		{
			name:    "literal version",
			deps:    pkgjson.Dependencies{"lodash": "4.17.21"},
			entries: []string{"lodash"},
			want:    []Finding{{Package: "packages/a", Manifest: "m", Field: "dependencies", Name: "lodash", Version: "4.17.21"}},
		},
		{
			name:    "workspace reference",
			deps:    pkgjson.Dependencies{"lodash": "workspace:*"},
			entries: []string{"lodash"},
		},
		{
			name:    "bare prefix is compliant",
			deps:    pkgjson.Dependencies{"lodash": "workspace:"},
			entries: []string{"lodash"},
		},
		{
			name:    "empty catalog",
			deps:    pkgjson.Dependencies{"lodash": "4.17.21"},
			entries: nil,
		},
		{
			name:    "no dependencies",
			deps:    pkgjson.Dependencies{},
			entries: []string{"lodash", "react"},
		},
		{
			name:    "case-sensitive names",
			deps:    pkgjson.Dependencies{"Lodash": "4.17.21"},
			entries: []string{"lodash"},
		},
		{
			name:    "catalog order",
			deps:    pkgjson.Dependencies{"a": "1", "b": "2", "c": "workspace:*"},
			entries: []string{"b", "c", "a"},
			want: []Finding{
				{Package: "packages/a", Manifest: "m", Field: "dependencies", Name: "b", Version: "2"},
				{Package: "packages/a", Manifest: "m", Field: "dependencies", Name: "a", Version: "1"},
			},
		},
		{
			name:    "duplicate catalog entries pass through",
			deps:    pkgjson.Dependencies{"a": "1"},
			entries: []string{"a", "a"},
			want: []Finding{
				{Package: "packages/a", Manifest: "m", Field: "dependencies", Name: "a", Version: "1"},
				{Package: "packages/a", Manifest: "m", Field: "dependencies", Name: "a", Version: "1"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Reconcile("packages/a", "m", "dependencies", tt.deps, tt.entries)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Reconcile() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestMatchKeepsCompliantUsages(t *testing.T) {
	deps := pkgjson.Dependencies{"a": "1", "b": "workspace:^", "c": "3"}

	got := Match("devDependencies", deps, []string{"a", "b", "missing"})
	want := []Usage{
		{Field: "devDependencies", Name: "a", Version: "1", Compliant: false},
		{Field: "devDependencies", Name: "b", Version: "workspace:^", Compliant: true},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Match() mismatch (-want +got):\n%s", diff)
	}
}
