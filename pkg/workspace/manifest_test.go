package workspace

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/tame/pkg/errors"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name         string
		input        string
		wantPackages []string
		wantCatalog  Catalog
	}{
		{
			name: "list catalog",
			input: `packages:
  - "packages/*"
  - "apps/**"
catalog:
  - lodash
  - react
`,
			wantPackages: []string{"packages/*", "apps/**"},
			wantCatalog:  Catalog{"lodash", "react"},
		},
		{
			name: "mapping catalog keeps key order",
			input: `packages: ["packages/*"]
catalog:
  zod: ^3.22.0
  lodash: ^4.17.21
  "@types/node": ^20.0.0
`,
			wantPackages: []string{"packages/*"},
			wantCatalog:  Catalog{"zod", "lodash", "@types/node"},
		},
		{
			name:         "absent catalog",
			input:        "packages:\n  - packages/*\n",
			wantPackages: []string{"packages/*"},
			wantCatalog:  Catalog{},
		},
		{
			name:         "null catalog",
			input:        "packages: []\ncatalog:\n",
			wantPackages: []string{},
			wantCatalog:  Catalog{},
		},
		{
			name:         "duplicates pass through",
			input:        "packages: [a]\ncatalog: [lodash, lodash]\n",
			wantPackages: []string{"a"},
			wantCatalog:  Catalog{"lodash", "lodash"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := Parse([]byte(tt.input))
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			if diff := cmp.Diff(tt.wantPackages, m.Packages); diff != "" {
				t.Errorf("Packages mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(tt.wantCatalog, m.Catalog); diff != "" {
				t.Errorf("Catalog mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty document", ""},
		{"missing packages", "catalog: [lodash]\n"},
		{"null packages", "packages:\ncatalog: [lodash]\n"},
		{"packages not a list", "packages: {a: b}\n"},
		{"invalid yaml", "packages: [unterminated\n"},
		{"catalog scalar", "packages: []\ncatalog: lodash\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := Parse([]byte(tt.input))
			if err == nil {
				t.Fatalf("Parse() = %+v, want error", m)
			}
			if !errors.Is(err, errors.ErrCodeParse) {
				t.Errorf("code = %v, want %v", errors.GetCode(err), errors.ErrCodeParse)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	content := "packages:\n  - packages/*\ncatalog:\n  - lodash\n"
	if err := os.WriteFile(filepath.Join(dir, FileName), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	m, err := Load(dir)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !m.HasCatalog() {
		t.Error("HasCatalog() = false, want true")
	}
	if !m.Catalog.Contains("lodash") {
		t.Error("Catalog.Contains(lodash) = false, want true")
	}
	if m.Catalog.Contains("Lodash") {
		t.Error("Catalog.Contains(Lodash) = true, want false (case-sensitive)")
	}
}

func TestLoadMissing(t *testing.T) {
	dir := t.TempDir()

	_, err := Load(dir)
	if !errors.Is(err, errors.ErrCodeNotFound) {
		t.Fatalf("Load() error = %v, want %v", err, errors.ErrCodeNotFound)
	}
}

func TestLoadMalformedNamesPath(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, FileName), []byte("catalog: [lodash]\n"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := Load(dir)
	if !errors.Is(err, errors.ErrCodeParse) {
		t.Fatalf("Load() error = %v, want %v", err, errors.ErrCodeParse)
	}
	if msg := errors.UserMessage(err); !strings.Contains(msg, Path(dir)) {
		t.Errorf("UserMessage() = %q, want it to name %s", msg, Path(dir))
	}
}
