package convert

// Schema is the JSON-Schema-like subset OpenAPI operations declare for their
// bodies and parameters. It is a read-only view over the parsed document.
type Schema struct {
	Type       string             `json:"type,omitempty" yaml:"type,omitempty"`
	Properties map[string]*Schema `json:"properties,omitempty" yaml:"properties,omitempty"`
	Items      *Schema            `json:"items,omitempty" yaml:"items,omitempty"`
	Enum       []any              `json:"enum,omitempty" yaml:"enum,omitempty"`
	Example    any                `json:"example,omitempty" yaml:"example,omitempty"`
	Default    any                `json:"default,omitempty" yaml:"default,omitempty"`
}

// maxSchemaDepth bounds structural recursion. The schema shape has no $ref
// modeling, but shared pointers can still form cycles; past the cap the
// synthesizer bottoms out to nil instead of recursing forever.
const maxSchemaDepth = 32

// Synthesize produces a representative value for a schema, deterministically:
// an explicit example wins, enums contribute their first element, and
// primitives fall back to fixed placeholders ("string", 0, false).
func Synthesize(schema *Schema) any {
	return synthesize(schema, 0)
}

func synthesize(schema *Schema, depth int) any {
	if schema == nil || depth > maxSchemaDepth {
		return nil
	}

	if schema.Example != nil {
		return schema.Example
	}

	switch schema.Type {
	case "object":
		obj := make(map[string]any, len(schema.Properties))
		for name, prop := range schema.Properties {
			obj[name] = synthesize(prop, depth+1)
		}
		return obj

	case "array":
		if schema.Items == nil {
			return []any{}
		}
		return []any{synthesize(schema.Items, depth+1)}

	case "string":
		if len(schema.Enum) > 0 {
			return schema.Enum[0]
		}
		return "string"

	case "number", "integer":
		if len(schema.Enum) > 0 {
			return schema.Enum[0]
		}
		return 0

	case "boolean":
		return false

	default:
		return nil
	}
}
