package workspace

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/tame/pkg/errors"
)

// FileName is the workspace descriptor looked up at the workspace root.
const FileName = "pnpm-workspace.yaml"

// Manifest is the parsed pnpm-workspace.yaml.
type Manifest struct {
	// Packages are glob patterns relative to the workspace root, in file order.
	Packages []string
	// Catalog lists dependency names that must reference the catalog.
	// Duplicates are kept as written.
	Catalog Catalog
}

// HasCatalog reports whether the manifest declares any catalog entries.
func (m *Manifest) HasCatalog() bool { return len(m.Catalog) > 0 }

// document mirrors the YAML shape. Packages is a pointer so a missing key
// can be told apart from an empty list.
type document struct {
	Packages *[]string `yaml:"packages"`
	Catalog  Catalog   `yaml:"catalog"`
}

// Path returns the descriptor location for a workspace root.
func Path(root string) string {
	return filepath.Join(root, FileName)
}

// Load reads and parses <root>/pnpm-workspace.yaml.
func Load(root string) (*Manifest, error) {
	path := Path(root)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeNotFound, err, "failed to read %s", path)
	}
	m, err := parse(data)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeParse, err, "failed to parse %s", path)
	}
	return m, nil
}

// Parse parses and validates pnpm-workspace.yaml content.
func Parse(data []byte) (*Manifest, error) {
	m, err := parse(data)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeParse, err, "failed to parse %s", FileName)
	}
	return m, nil
}

func parse(data []byte) (*Manifest, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if doc.Packages == nil {
		return nil, fmt.Errorf("missing required field %q", "packages")
	}

	catalog := doc.Catalog
	if catalog == nil {
		catalog = Catalog{}
	}
	return &Manifest{
		Packages: *doc.Packages,
		Catalog:  catalog,
	}, nil
}
