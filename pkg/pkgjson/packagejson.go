package pkgjson

import (
	"encoding/json"
	"os"
	"slices"

	"github.com/matzehuels/tame/pkg/errors"
)

// Dependency fields understood in package.json.
const (
	FieldDependencies         = "dependencies"
	FieldDevDependencies      = "devDependencies"
	FieldPeerDependencies     = "peerDependencies"
	FieldOptionalDependencies = "optionalDependencies"
)

// KnownFields lists the dependency fields that may be scanned.
var KnownFields = []string{
	FieldDependencies,
	FieldDevDependencies,
	FieldPeerDependencies,
	FieldOptionalDependencies,
}

// DefaultFields are scanned when no fields are configured.
var DefaultFields = []string{FieldDependencies}

// ValidateField rejects names that are not package.json dependency fields.
func ValidateField(name string) error {
	if !slices.Contains(KnownFields, name) {
		return errors.New(errors.ErrCodeInvalidConfig, "unknown dependency field %q (expected one of %v)", name, KnownFields)
	}
	return nil
}

// Dependencies maps a dependency name to its version specifier.
type Dependencies map[string]string

// Manifest is the subset of package.json that tame inspects.
type Manifest struct {
	Path    string
	Name    string
	Version string
	Fields  map[string]Dependencies
}

// Dependencies returns the "dependencies" field. Never nil.
func (m *Manifest) Dependencies() Dependencies {
	return m.Field(FieldDependencies)
}

// Field returns the named dependency field. Never nil.
func (m *Manifest) Field(name string) Dependencies {
	if d, ok := m.Fields[name]; ok {
		return d
	}
	return Dependencies{}
}

// Read loads the manifest at path and extracts the given dependency fields
// (DefaultFields when none are given).
func Read(path string, fields ...string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeRead, err, "failed to read %s", path)
	}
	return Parse(path, data, fields...)
}

// Parse decodes manifest content. path is only recorded for reporting.
func Parse(path string, data []byte, fields ...string) (*Manifest, error) {
	if len(fields) == 0 {
		fields = DefaultFields
	}

	var top map[string]json.RawMessage
	if err := json.Unmarshal(data, &top); err != nil {
		return nil, errors.Wrap(errors.ErrCodeParse, err, "failed to parse %s", path)
	}

	m := &Manifest{
		Path:   path,
		Name:   stringField(top["name"]),
		Fields: make(map[string]Dependencies, len(fields)),
	}
	m.Version = stringField(top["version"])
	for _, f := range fields {
		m.Fields[f] = dependencyField(top[f])
	}
	return m, nil
}

func stringField(raw json.RawMessage) string {
	var s string
	if len(raw) == 0 || json.Unmarshal(raw, &s) != nil {
		return ""
	}
	return s
}

// dependencyField decodes a dependency object, dropping non-string values.
// Anything other than an object yields an empty map.
func dependencyField(raw json.RawMessage) Dependencies {
	deps := Dependencies{}
	if len(raw) == 0 {
		return deps
	}
	var values map[string]any
	if err := json.Unmarshal(raw, &values); err != nil {
		return deps
	}
	for name, v := range values {
		if s, ok := v.(string); ok {
			deps[name] = s
		}
	}
	return deps
}
