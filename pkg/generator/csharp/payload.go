package csharp

import (
	"strings"

	"github.com/blimu-dev/snippet-gen/pkg/ir"
	"github.com/blimu-dev/snippet-gen/pkg/utils"
)

// writeValue renders v as a C# expression. Multi-line constructions place their
// members at depth+1 and the closing brace at depth.
func writeValue(v ir.ValueNode, depth int) string {
	switch n := v.(type) {
	case *ir.Scalar:
		return scalar(n)
	case *ir.ObjectConstruction:
		return object(n, depth)
	case *ir.ArrayConstruction:
		return array(n, depth)
	}
	return "null"
}

func scalar(s *ir.Scalar) string {
	if s.Null {
		return "null"
	}
	switch s.Type.Kind {
	case ir.KindBoolean, ir.KindInteger32:
		return s.Value
	case ir.KindInteger64:
		return s.Value + "L"
	case ir.KindFloat:
		return s.Value + "f"
	case ir.KindDouble:
		return s.Value + "d"
	case ir.KindDate:
		return "new Date(DateTime.Parse(" + stringLiteral(s.Value) + "))"
	case ir.KindDateTime:
		return "DateTimeOffset.Parse(" + stringLiteral(s.Value) + ")"
	case ir.KindEnum:
		return typeName(s.Type.Name) + "." + utils.ToPascalIdentifier(s.Value)
	case ir.KindBinary:
		if s.Value == "" {
			return "new MemoryStream()"
		}
		return "Convert.FromBase64String(" + stringLiteral(s.Value) + ")"
	}
	return stringLiteral(s.Value)
}

func object(o *ir.ObjectConstruction, depth int) string {
	if o.Generic && o.TypeName == "" {
		return dictionary(o.Properties, depth)
	}

	pad := strings.Repeat("\t", depth+1)
	var b strings.Builder
	b.WriteString("new " + o.TypeName + "\n" + strings.Repeat("\t", depth) + "{\n")
	if !o.Generic {
		for _, p := range o.KnownProperties() {
			b.WriteString(pad + utils.ToPascalIdentifier(p.Name) + " = " + writeValue(p.Value, depth+1) + ",\n")
		}
	}
	additional := o.UnknownProperties()
	if o.Generic {
		additional = o.Properties
	}
	if len(additional) > 0 {
		b.WriteString(pad + "AdditionalData = " + dictionary(additional, depth+1) + ",\n")
	}
	b.WriteString(strings.Repeat("\t", depth) + "}")
	return b.String()
}

// dictionary renders members through the untyped key/value shape
func dictionary(props []ir.PropertyValue, depth int) string {
	pad := strings.Repeat("\t", depth+1)
	var b strings.Builder
	b.WriteString("new Dictionary<string, object>\n" + strings.Repeat("\t", depth) + "{\n")
	for _, p := range props {
		b.WriteString(pad + "{\n")
		b.WriteString(pad + "\t" + stringLiteral(p.Name) + " , " + untyped(p.Value, depth+2) + "\n")
		b.WriteString(pad + "},\n")
	}
	b.WriteString(strings.Repeat("\t", depth) + "}")
	return b.String()
}

// untyped renders a value that has no schema type: objects become dictionaries
// and arrays lists of object.
func untyped(v ir.ValueNode, depth int) string {
	switch n := v.(type) {
	case *ir.ObjectConstruction:
		return dictionary(n.Properties, depth)
	case *ir.ArrayConstruction:
		return list("object", n.Elements, depth, untyped)
	}
	return writeValue(v, depth)
}

func array(a *ir.ArrayConstruction, depth int) string {
	return list(elementType(a.ElementType, a.Elements), a.Elements, depth, writeValue)
}

func list(elem string, elements []ir.ValueNode, depth int, write func(ir.ValueNode, int) string) string {
	pad := strings.Repeat("\t", depth+1)
	var b strings.Builder
	b.WriteString("new List<" + elem + ">\n" + strings.Repeat("\t", depth) + "{\n")
	for _, e := range elements {
		b.WriteString(pad + write(e, depth+1) + ",\n")
	}
	b.WriteString(strings.Repeat("\t", depth) + "}")
	return b.String()
}

// elementType is the C# type of a list element
func elementType(t ir.TypeRef, elements []ir.ValueNode) string {
	switch t.Kind {
	case ir.KindString:
		return "string"
	case ir.KindBoolean:
		return "bool?"
	case ir.KindInteger32:
		return "int?"
	case ir.KindInteger64:
		return "long?"
	case ir.KindFloat:
		return "float?"
	case ir.KindDouble:
		return "double?"
	case ir.KindDate:
		return "Date?"
	case ir.KindDateTime:
		return "DateTimeOffset?"
	case ir.KindEnum:
		return typeName(t.Name) + "?"
	case ir.KindBinary:
		return "byte[]"
	case ir.KindObject:
		if t.Schema != nil && !t.Schema.Dictionary {
			return typeName(t.Schema.Name)
		}
	}
	// infer from the first element when the schema is silent
	if len(elements) > 0 {
		if s, ok := elements[0].(*ir.Scalar); ok && !s.Null && s.Type.Kind != ir.KindUnknown {
			return elementType(s.Type, nil)
		}
	}
	return "object"
}

func typeName(schemaName string) string {
	return utils.ToPascalIdentifier(utils.TrimNamespace(schemaName))
}

// stringLiteral quotes s. Escaped text never starts with a bare quote.
func stringLiteral(s string) string {
	if s == "" {
		return `""`
	}
	return utils.AddQuotes(utils.EscapeStringLiteral(s))
}
