package python

import (
	"strings"

	"github.com/blimu-dev/snippet-gen/pkg/ir"
	"github.com/blimu-dev/snippet-gen/pkg/utils"
)

var reservedWords = map[string]bool{
	"and": true, "as": true, "assert": true, "async": true, "await": true, "break": true,
	"class": true, "continue": true, "def": true, "del": true, "elif": true, "else": true,
	"except": true, "finally": true, "for": true, "from": true, "global": true, "if": true,
	"import": true, "in": true, "is": true, "lambda": true, "nonlocal": true, "not": true,
	"or": true, "pass": true, "raise": true, "return": true, "try": true, "while": true,
	"with": true, "yield": true, "None": true, "True": true, "False": true,
}

// writer renders payload expressions and collects the model imports they need
type writer struct {
	imports map[string]bool
}

func newWriter() *writer {
	return &writer{imports: make(map[string]bool)}
}

// value renders v as a constructor expression. Keyword arguments sit at depth+1
// and the closing parenthesis at depth.
func (w *writer) value(v ir.ValueNode, depth int) string {
	switch n := v.(type) {
	case *ir.Scalar:
		return w.scalar(n)
	case *ir.ObjectConstruction:
		return w.object(n, depth)
	case *ir.ArrayConstruction:
		if len(n.Elements) == 0 {
			return "[]"
		}
		pad := strings.Repeat("\t", depth+1)
		var b strings.Builder
		b.WriteString("[\n")
		for _, e := range n.Elements {
			b.WriteString(pad + w.value(e, depth+1) + ",\n")
		}
		b.WriteString(strings.Repeat("\t", depth) + "]")
		return b.String()
	}
	return "None"
}

func (w *writer) object(o *ir.ObjectConstruction, depth int) string {
	if o.Generic && o.TypeName == "" {
		return w.dict(o.Properties, depth)
	}
	w.importModel(o.TypeName)

	pad := strings.Repeat("\t", depth+1)
	var b strings.Builder
	b.WriteString(o.TypeName + "(\n")
	if !o.Generic {
		for _, p := range o.KnownProperties() {
			b.WriteString(pad + identifier(p.Name) + " = " + w.value(p.Value, depth+1) + ",\n")
		}
	}
	additional := o.UnknownProperties()
	if o.Generic {
		additional = o.Properties
	}
	if len(additional) > 0 {
		b.WriteString(pad + "additional_data = " + w.dict(additional, depth+1) + ",\n")
	}
	b.WriteString(strings.Repeat("\t", depth) + ")")
	return b.String()
}

// dict renders members through the untyped key/value shape
func (w *writer) dict(props []ir.PropertyValue, depth int) string {
	pad := strings.Repeat("\t", depth+1)
	var b strings.Builder
	b.WriteString("{\n")
	for _, p := range props {
		b.WriteString(pad + stringLiteral(p.Name) + " : " + w.value(p.Value, depth+1) + ",\n")
	}
	b.WriteString(strings.Repeat("\t", depth) + "}")
	return b.String()
}

func (w *writer) scalar(s *ir.Scalar) string {
	if s.Null {
		return "None"
	}
	switch s.Type.Kind {
	case ir.KindBoolean:
		if s.Value == "true" {
			return "True"
		}
		return "False"
	case ir.KindInteger32, ir.KindInteger64, ir.KindFloat, ir.KindDouble:
		return s.Value
	case ir.KindDateTime:
		w.imports["from datetime import datetime"] = true
		return "datetime.fromisoformat(" + stringLiteral(s.Value) + ")"
	case ir.KindDate:
		w.imports["from datetime import date"] = true
		return "date.fromisoformat(" + stringLiteral(s.Value) + ")"
	case ir.KindEnum:
		enum := utils.ToPascalIdentifier(utils.TrimNamespace(s.Type.Name))
		w.importModel(enum)
		return enum + "." + utils.ToPascalIdentifier(s.Value)
	case ir.KindBinary:
		if s.Value == "" {
			return `b""`
		}
		w.imports["import base64"] = true
		return "base64.urlsafe_b64decode(" + stringLiteral(s.Value) + ")"
	}
	return stringLiteral(s.Value)
}

// inline renders a query value on a single line
func (w *writer) inline(v ir.ValueNode) string {
	if a, ok := v.(*ir.ArrayConstruction); ok {
		items := make([]string, 0, len(a.Elements))
		for _, e := range a.Elements {
			items = append(items, w.inline(e))
		}
		return "[" + strings.Join(items, ",") + "]"
	}
	return w.value(v, 0)
}

func (w *writer) importModel(typeName string) {
	w.imports["from msgraph.generated.models."+utils.ToSnakeCase(typeName)+" import "+typeName] = true
}

// identifier is the snake_case attribute name, with a trailing underscore for reserved words
func identifier(name string) string {
	id := utils.ToSnakeCase(name)
	if reservedWords[id] {
		return id + "_"
	}
	return id
}

func stringLiteral(s string) string {
	if s == "" {
		return `""`
	}
	return utils.AddQuotes(utils.EscapeStringLiteral(s))
}
