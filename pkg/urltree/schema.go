package urltree

import (
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/blimu-dev/snippet-gen/pkg/ir"
	"github.com/blimu-dev/snippet-gen/pkg/utils"
)

// schemaConverter turns kin-openapi schemas into ir types. Named component schemas
// are memoised so recursive references resolve to the same *ir.Schema.
type schemaConverter struct {
	named map[string]*ir.Schema
}

func newSchemaConverter() *schemaConverter {
	return &schemaConverter{named: make(map[string]*ir.Schema)}
}

// refName returns the component name of a $ref, e.g. "microsoft.graph.user"
func refName(sr *openapi3.SchemaRef) string {
	if sr == nil || sr.Ref == "" {
		return ""
	}
	parts := strings.Split(sr.Ref, "/")
	return parts[len(parts)-1]
}

// typeRef converts a schema reference. hint names inline object and enum types.
// The boolean result reports whether the schema is a collection.
func (c *schemaConverter) typeRef(sr *openapi3.SchemaRef, hint string) (ir.TypeRef, bool) {
	if sr == nil || sr.Value == nil {
		return ir.TypeRef{Kind: ir.KindUnknown}, false
	}
	s := sr.Value
	name := refName(sr)
	if name == "" {
		name = hint
	}

	// Unions without a type of their own pick the first member we understand.
	if s.Type == nil && len(s.Properties) == 0 && len(s.AllOf) == 0 {
		for _, members := range []openapi3.SchemaRefs{s.AnyOf, s.OneOf} {
			for _, m := range members {
				if isNullOnly(m) {
					continue
				}
				t, coll := c.typeRef(m, hint)
				if t.Kind != ir.KindUnknown {
					return t, coll
				}
			}
		}
	}

	if len(s.Enum) > 0 {
		if name == "" {
			return ir.TypeRef{Kind: ir.KindString}, false
		}
		return ir.TypeRef{Kind: ir.KindEnum, Name: name}, false
	}

	switch {
	case s.Type.Is(openapi3.TypeArray):
		item, _ := c.typeRef(s.Items, hint)
		return item, true
	case s.Type.Is(openapi3.TypeString):
		switch s.Format {
		case "date":
			return ir.TypeRef{Kind: ir.KindDate}, false
		case "date-time":
			return ir.TypeRef{Kind: ir.KindDateTime}, false
		case "binary":
			return ir.TypeRef{Kind: ir.KindBinary}, false
		}
		return ir.TypeRef{Kind: ir.KindString}, false
	case s.Type.Is(openapi3.TypeInteger):
		if s.Format == "int64" {
			return ir.TypeRef{Kind: ir.KindInteger64}, false
		}
		return ir.TypeRef{Kind: ir.KindInteger32}, false
	case s.Type.Is(openapi3.TypeNumber):
		switch s.Format {
		case "float":
			return ir.TypeRef{Kind: ir.KindFloat}, false
		case "int64":
			return ir.TypeRef{Kind: ir.KindInteger64}, false
		case "int32":
			return ir.TypeRef{Kind: ir.KindInteger32}, false
		}
		return ir.TypeRef{Kind: ir.KindDouble}, false
	case s.Type.Is(openapi3.TypeBoolean):
		return ir.TypeRef{Kind: ir.KindBoolean}, false
	case s.Type.Is(openapi3.TypeObject), len(s.Properties) > 0, len(s.AllOf) > 0:
		return ir.TypeRef{Kind: ir.KindObject, Schema: c.objectSchema(sr, hint)}, false
	}
	return ir.TypeRef{Kind: ir.KindUnknown}, false
}

// objectSchema converts an object schema, flattening allOf members base-first
func (c *schemaConverter) objectSchema(sr *openapi3.SchemaRef, hint string) *ir.Schema {
	ref := refName(sr)
	if ref != "" {
		if existing, ok := c.named[ref]; ok {
			return existing
		}
	}
	name := ref
	if name == "" {
		name = hint
	}
	out := &ir.Schema{Name: name}
	if ref != "" {
		c.named[ref] = out
	}

	seen := make(map[string]bool)
	c.collectProperties(sr.Value, out, seen)

	if len(out.Properties) == 0 {
		// No declared members: additionalProperties maps and free-form objects alike
		// are built through the generic key/value shape.
		out.Dictionary = true
	}
	return out
}

func (c *schemaConverter) collectProperties(s *openapi3.Schema, out *ir.Schema, seen map[string]bool) {
	if s == nil {
		return
	}
	for _, member := range s.AllOf {
		if member == nil || member.Value == nil {
			continue
		}
		if refName(member) != "" {
			base := c.objectSchema(member, "")
			for _, p := range base.Properties {
				if !seen[p.Name] {
					seen[p.Name] = true
					out.Properties = append(out.Properties, p)
				}
			}
			continue
		}
		c.collectProperties(member.Value, out, seen)
	}

	names := declaredOrder(s.Properties)

	required := make(map[string]bool, len(s.Required))
	for _, r := range s.Required {
		required[r] = true
	}

	for _, n := range names {
		if seen[n] {
			continue
		}
		seen[n] = true
		hint := utils.ToPascalCase(utils.TrimNamespace(out.Name)) + utils.ToPascalIdentifier(n)
		t, coll := c.typeRef(s.Properties[n], hint)
		out.Properties = append(out.Properties, ir.Property{
			Name:         n,
			Type:         t,
			IsCollection: coll,
			IsRequired:   required[n],
		})
	}
}

// declaredOrder returns the property names in the order the description declares
// them. Names without a recorded position sort after the rest, alphabetically.
func declaredOrder(props openapi3.Schemas) []string {
	names := make([]string, 0, len(props))
	for n := range props {
		names = append(names, n)
	}
	sort.SliceStable(names, func(i, j int) bool {
		li, lok := position(props[names[i]])
		lj, rok := position(props[names[j]])
		switch {
		case lok && rok && li != lj:
			if li.Line != lj.Line {
				return li.Line < lj.Line
			}
			return li.Column < lj.Column
		case lok != rok:
			return lok
		}
		return names[i] < names[j]
	})
	return names
}

// position is where a property key appears in the source document. A reference
// carries its own origin; the resolved schema's origin points at the component.
func position(sr *openapi3.SchemaRef) (openapi3.Location, bool) {
	if sr == nil {
		return openapi3.Location{}, false
	}
	origin := sr.Origin
	if sr.Ref == "" && sr.Value != nil {
		origin = sr.Value.Origin
	}
	if origin == nil || origin.Key == nil {
		return openapi3.Location{}, false
	}
	return *origin.Key, true
}

// isNullOnly reports whether a union member only expresses nullability
func isNullOnly(sr *openapi3.SchemaRef) bool {
	if sr == nil || sr.Value == nil {
		return true
	}
	s := sr.Value
	if sr.Ref != "" {
		return false
	}
	if s.Type.Is("null") {
		return true
	}
	return s.Nullable && len(s.Properties) == 0 && len(s.Enum) == 0 && len(s.AllOf) == 0 &&
		(s.Type == nil || s.Type.Is(openapi3.TypeObject))
}
