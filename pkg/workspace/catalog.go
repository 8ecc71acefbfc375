package workspace

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Catalog is the ordered list of catalog dependency names.
type Catalog []string

// Contains reports whether name is listed in the catalog.
func (c Catalog) Contains(name string) bool {
	for _, n := range c {
		if n == name {
			return true
		}
	}
	return false
}

// UnmarshalYAML accepts either a sequence of names or a mapping of name to
// version. Mapping values are not validated; only the keys are kept.
func (c *Catalog) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.SequenceNode:
		var names []string
		if err := node.Decode(&names); err != nil {
			return err
		}
		*c = names
	case yaml.MappingNode:
		names := make([]string, 0, len(node.Content)/2)
		for i := 0; i+1 < len(node.Content); i += 2 {
			key := node.Content[i]
			if key.Kind != yaml.ScalarNode {
				return fmt.Errorf("line %d: catalog keys must be dependency names", key.Line)
			}
			names = append(names, key.Value)
		}
		*c = names
	case yaml.ScalarNode:
		if node.Tag != "!!null" {
			return fmt.Errorf("line %d: catalog must be a list or a mapping", node.Line)
		}
		*c = nil
	default:
		return fmt.Errorf("line %d: catalog must be a list or a mapping", node.Line)
	}
	return nil
}
