package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/tame/pkg/errors"
)

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if diff := cmp.Diff(Default(), cfg); diff != "" {
		t.Errorf("Load() mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad(t *testing.T) {
	root := t.TempDir()
	data := `reference = "workspace:^"
fields = ["dependencies", "devDependencies"]
strict = true
format = "json"
exclude_dirs = ["node_modules", "dist"]
`
	if err := os.WriteFile(filepath.Join(root, FileName), []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(root)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	want := Config{
		Reference:   "workspace:^",
		Fields:      []string{"dependencies", "devDependencies"},
		Strict:      true,
		Format:      "json",
		ExcludeDirs: []string{"node_modules", "dist"},
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("Load() mismatch (-want +got):\n%s", diff)
	}
}

func TestParsePartialKeepsDefaults(t *testing.T) {
	cfg, err := Parse([]byte("strict_patterns = true\n"))
	if err != nil {
		t.Fatal(err)
	}
	want := Default()
	want.StrictPatterns = true
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("Parse() mismatch (-want +got):\n%s", diff)
	}
}

func TestParseInvalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"bad toml", "reference = "},
		{"unknown key", "colour = \"red\"\n"},
		{"non reference token", "reference = \"^1.0.0\"\n"},
		{"unknown field", "fields = [\"bundledDependencies\"]\n"},
		{"empty fields", "fields = []\n"},
		{"unknown format", "format = \"xml\"\n"},
		{"exclude path", "exclude_dirs = [\"a/b\"]\n"},
		{"wrong type", "strict = \"yes\"\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			if err == nil {
				t.Fatal("Parse() error = nil, want error")
			}
			if !errors.Is(err, errors.ErrCodeInvalidConfig) {
				t.Errorf("Parse() code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidConfig)
			}
		})
	}
}

func TestLoadInvalidNamesFile(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, FileName), []byte("format = \"xml\"\n"), 0644); err != nil {
		t.Fatal(err)
	}
	_, err := Load(root)
	if !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Fatalf("Load() error = %v, want %v", err, errors.ErrCodeInvalidConfig)
	}
	if got := err.Error(); !strings.Contains(got, FileName) {
		t.Errorf("error %q does not name %s", got, FileName)
	}
}
