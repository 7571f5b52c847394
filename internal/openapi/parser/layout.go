package parser

import (
	"fmt"
	"sort"

	"github.com/getkin/kin-openapi/openapi3"
	"gopkg.in/yaml.v3"
)

// layout records what kin-openapi's maps lose: the order in which schemas
// and their properties appear, and where each schema is declared. JSON is
// valid YAML, so one decoder covers both encodings.
type layout struct {
	order      []string
	positions  map[string]string
	properties map[string][]string
}

func readLayout(raw []byte, set SchemaSet) (layout, error) {
	out := layout{
		positions:  map[string]string{},
		properties: map[string][]string{},
	}

	var root yaml.Node
	if err := yaml.Unmarshal(raw, &root); err != nil {
		return out, fmt.Errorf("read document layout: %w", err)
	}
	if len(root.Content) == 0 {
		return out, nil
	}
	doc := root.Content[0]

	if set.root() {
		for name := range set.Schemas {
			out.order = append(out.order, name)
			out.positions[name] = fmt.Sprintf("%d:%d", doc.Line, doc.Column)
			out.properties[name] = mappingKeys(lookup(doc, "properties"))
		}
		return out, nil
	}

	schemas := doc
	for _, key := range set.Path {
		schemas = lookup(schemas, key)
	}
	if schemas == nil || schemas.Kind != yaml.MappingNode {
		return out, nil
	}

	for i := 0; i+1 < len(schemas.Content); i += 2 {
		key, value := schemas.Content[i], schemas.Content[i+1]
		out.order = append(out.order, key.Value)
		out.positions[key.Value] = fmt.Sprintf("%d:%d", key.Line, key.Column)
		out.properties[key.Value] = mappingKeys(lookup(value, "properties"))
	}
	return out, nil
}

// schemaNames returns every schema name in document order, followed by any
// the layout missed, sorted.
func (l layout) schemaNames(schemas openapi3.Schemas) []string {
	out := make([]string, 0, len(schemas))
	seen := make(map[string]bool, len(schemas))
	for _, name := range l.order {
		if _, ok := schemas[name]; ok && !seen[name] {
			seen[name] = true
			out = append(out, name)
		}
	}
	var rest []string
	for name := range schemas {
		if !seen[name] {
			rest = append(rest, name)
		}
	}
	sort.Strings(rest)
	return append(out, rest...)
}

func lookup(node *yaml.Node, key string) *yaml.Node {
	if node == nil || node.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value == key {
			return node.Content[i+1]
		}
	}
	return nil
}

func mappingKeys(node *yaml.Node) []string {
	if node == nil || node.Kind != yaml.MappingNode {
		return nil
	}
	keys := make([]string, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		keys = append(keys, node.Content[i].Value)
	}
	return keys
}
