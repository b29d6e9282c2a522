package typescript

import (
	"strings"

	"github.com/blimu-dev/snippet-gen/pkg/ir"
	"github.com/blimu-dev/snippet-gen/pkg/utils"
)

const indentUnit = "  "

// writeValue renders v as an object-literal expression. Members sit at depth+1
// and the closing bracket at depth.
func writeValue(v ir.ValueNode, depth int) string {
	switch n := v.(type) {
	case *ir.Scalar:
		return scalar(n)
	case *ir.ObjectConstruction:
		return object(n, depth)
	case *ir.ArrayConstruction:
		if len(n.Elements) == 0 {
			return "[]"
		}
		pad := strings.Repeat(indentUnit, depth+1)
		var b strings.Builder
		b.WriteString("[\n")
		for _, e := range n.Elements {
			b.WriteString(pad + writeValue(e, depth+1) + ",\n")
		}
		b.WriteString(strings.Repeat(indentUnit, depth) + "]")
		return b.String()
	}
	return "null"
}

func object(o *ir.ObjectConstruction, depth int) string {
	pad := strings.Repeat(indentUnit, depth+1)
	var b strings.Builder
	b.WriteString("{\n")
	if o.Generic && o.TypeName == "" {
		writeEntries(&b, o.Properties, depth)
	} else {
		if !o.Generic {
			for _, p := range o.KnownProperties() {
				b.WriteString(pad + utils.ToCamelIdentifier(p.Name) + " : " + writeValue(p.Value, depth+1) + ",\n")
			}
		}
		additional := o.UnknownProperties()
		if o.Generic {
			additional = o.Properties
		}
		if len(additional) > 0 {
			b.WriteString(pad + "additionalData : {\n")
			writeEntries(&b, additional, depth+1)
			b.WriteString(pad + "},\n")
		}
	}
	b.WriteString(strings.Repeat(indentUnit, depth) + "}")
	return b.String()
}

// writeEntries writes members with their JSON names quoted as keys
func writeEntries(b *strings.Builder, props []ir.PropertyValue, depth int) {
	pad := strings.Repeat(indentUnit, depth+1)
	for _, p := range props {
		b.WriteString(pad + stringLiteral(p.Name) + " : " + writeValue(p.Value, depth+1) + ",\n")
	}
}

func scalar(s *ir.Scalar) string {
	if s.Null {
		return "null"
	}
	switch s.Type.Kind {
	case ir.KindBoolean, ir.KindInteger32, ir.KindInteger64, ir.KindFloat, ir.KindDouble:
		return s.Value
	case ir.KindDateTime:
		return "new Date(" + stringLiteral(s.Value) + ")"
	case ir.KindDate:
		return "DateOnly.parse(" + stringLiteral(s.Value) + ")"
	case ir.KindEnum:
		return utils.ToPascalIdentifier(utils.TrimNamespace(s.Type.Name)) + "Object." + utils.ToPascalIdentifier(s.Value)
	case ir.KindBinary:
		if s.Value == "" {
			return "new ArrayBuffer(0)"
		}
		return "Buffer.from(" + stringLiteral(s.Value) + ", \"base64\")"
	}
	return stringLiteral(s.Value)
}

// inline renders a query value on a single line
func inline(v ir.ValueNode) string {
	if a, ok := v.(*ir.ArrayConstruction); ok {
		items := make([]string, 0, len(a.Elements))
		for _, e := range a.Elements {
			items = append(items, inline(e))
		}
		return "[" + strings.Join(items, ",") + "]"
	}
	return writeValue(v, 0)
}

func stringLiteral(s string) string {
	if s == "" {
		return `""`
	}
	return utils.AddQuotes(utils.EscapeStringLiteral(s))
}
