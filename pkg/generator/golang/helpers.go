package golang

import (
	"go/token"
	"sort"
	"strings"

	"github.com/blimu-dev/snippet-gen/pkg/generator/render"
	"github.com/blimu-dev/snippet-gen/pkg/ir"
	"github.com/blimu-dev/snippet-gen/pkg/utils"
)

// bodyWriter emits the statements that build a payload in setter style. Every
// nested value gets its own variable, suffixed with a counter when a name repeats.
type bodyWriter struct {
	lines   []string
	counts  map[string]int
	imports map[string]bool
}

func newBodyWriter() *bodyWriter {
	w := &bodyWriter{
		counts:  make(map[string]int),
		imports: map[string]bool{importContext: true, importSDK: true},
	}
	for _, reserved := range []string{"graphClient", "requestBody", "result", "err", "headers", "requestParameters", "configuration"} {
		w.counts[reserved] = 1
	}
	return w
}

// importList returns the imports in a stable order
func (w *bodyWriter) importList() []string {
	order := []string{importContext, importTime, importSDK, importModels, importAbstractions, importSerialization}
	out := make([]string, 0, len(w.imports))
	seen := make(map[string]bool)
	for _, imp := range order {
		if w.imports[imp] {
			out = append(out, imp)
			seen[imp] = true
		}
	}
	var extra []string
	for imp := range w.imports {
		if !seen[imp] {
			extra = append(extra, imp)
		}
	}
	sort.Strings(extra)
	return append(out, extra...)
}

// name allocates a variable name derived from base
func (w *bodyWriter) name(base string) string {
	base = utils.ToCamelIdentifier(base)
	if base == "" {
		base = "value"
	}
	if token.IsKeyword(base) {
		base += "Value"
	}
	n := w.counts[base]
	w.counts[base]++
	return utils.IndexSuffix(base, n)
}

func (w *bodyWriter) emit(line string) {
	w.lines = append(w.lines, line)
}

// writeTop declares varName holding v
func (w *bodyWriter) writeTop(varName string, v ir.ValueNode) {
	switch n := v.(type) {
	case *ir.ObjectConstruction:
		w.writeObject(varName, n)
	case *ir.ArrayConstruction:
		w.emit(varName + " := " + w.slice(n))
	case *ir.Scalar:
		if n.Type.Kind == ir.KindBinary {
			w.emit(varName + " := make([]byte, 0)")
			return
		}
		w.emit(varName + " := " + w.literal(n))
	}
}

func (w *bodyWriter) writeObject(varName string, o *ir.ObjectConstruction) {
	if o.Generic && o.TypeName == "" {
		w.emit(varName + " := " + w.mapLiteral(o.Properties))
		return
	}
	w.imports[importModels] = true
	w.emit(varName + " := graphmodels.New" + o.TypeName + "()")

	if !o.Generic {
		for _, p := range o.KnownProperties() {
			w.writeProperty(varName, p)
		}
	}
	additional := o.UnknownProperties()
	if o.Generic {
		additional = o.Properties
	}
	if len(additional) > 0 {
		data := w.name("additionalData")
		w.emit(data + " := " + w.mapLiteral(additional))
		w.emit(varName + ".SetAdditionalData(" + data + ")")
	}
}

func (w *bodyWriter) writeProperty(owner string, p ir.PropertyValue) {
	setter := owner + ".Set" + utils.ToPascalIdentifier(p.Name)
	switch v := p.Value.(type) {
	case *ir.Scalar:
		if v.Null {
			w.emit(setter + "(nil)")
			return
		}
		varName := w.name(p.Name)
		decl, pointer := w.scalarDecl(varName, v)
		w.emit(decl)
		if pointer {
			w.emit(setter + "(&" + varName + ")")
		} else {
			w.emit(setter + "(" + varName + ")")
		}
	case *ir.ObjectConstruction:
		varName := w.name(p.Name)
		w.writeObject(varName, v)
		w.emit(setter + "(" + varName + ")")
	case *ir.ArrayConstruction:
		varName := w.name(p.Name)
		w.emit(varName + " := " + w.slice(v))
		w.emit(setter + "(" + varName + ")")
	}
}

// scalarDecl declares varName for a typed scalar. pointer reports whether the
// setter takes the variable's address.
func (w *bodyWriter) scalarDecl(varName string, s *ir.Scalar) (string, bool) {
	switch s.Type.Kind {
	case ir.KindDateTime:
		w.imports[importTime] = true
		return varName + ", err := time.Parse(time.RFC3339, " + stringLiteral(s.Value) + ")", true
	case ir.KindDate:
		w.imports[importSerialization] = true
		return varName + ", err := serialization.ParseDateOnly(" + stringLiteral(s.Value) + ")", false
	case ir.KindBinary:
		return varName + " := []byte(" + stringLiteral(s.Value) + ")", false
	case ir.KindEnum:
		w.imports[importModels] = true
	}
	return varName + " := " + w.literal(s), true
}

// literal renders a scalar as an inline Go expression
func (w *bodyWriter) literal(s *ir.Scalar) string {
	if s.Null {
		return "nil"
	}
	switch s.Type.Kind {
	case ir.KindBoolean:
		return s.Value
	case ir.KindInteger32:
		return "int32(" + s.Value + ")"
	case ir.KindInteger64:
		return "int64(" + s.Value + ")"
	case ir.KindFloat:
		return "float32(" + s.Value + ")"
	case ir.KindDouble:
		return "float64(" + s.Value + ")"
	case ir.KindEnum:
		return "graphmodels." + enumConstant(s.Type.Name, s.Value)
	}
	return stringLiteral(s.Value)
}

// slice renders an array. Typed objects are built first and referenced by name.
func (w *bodyWriter) slice(a *ir.ArrayConstruction) string {
	elem := w.elementType(a.ElementType, a.Elements)
	items := make([]string, 0, len(a.Elements))
	for _, e := range a.Elements {
		switch n := e.(type) {
		case *ir.ObjectConstruction:
			if n.Generic && n.TypeName == "" {
				items = append(items, w.mapLiteral(n.Properties))
				continue
			}
			varName := w.name(n.TypeName)
			w.writeObject(varName, n)
			items = append(items, varName)
		case *ir.ArrayConstruction:
			items = append(items, render.Indent(w.slice(n), 1))
		case *ir.Scalar:
			if elem == "interface{}" {
				items = append(items, w.untyped(n))
			} else {
				items = append(items, w.literal(n))
			}
		}
	}
	if len(items) == 0 {
		return "[]" + elem + " {}"
	}
	return "[]" + elem + " {\n\t" + strings.Join(items, ",\n\t") + ",\n}"
}

func (w *bodyWriter) elementType(t ir.TypeRef, elements []ir.ValueNode) string {
	switch t.Kind {
	case ir.KindString:
		return "string"
	case ir.KindBoolean:
		return "bool"
	case ir.KindInteger32:
		return "int32"
	case ir.KindInteger64:
		return "int64"
	case ir.KindFloat:
		return "float32"
	case ir.KindDouble:
		return "float64"
	case ir.KindEnum:
		w.imports[importModels] = true
		return "graphmodels." + typeName(t.Name)
	case ir.KindObject:
		if t.Schema != nil && !t.Schema.Dictionary {
			w.imports[importModels] = true
			return "graphmodels." + typeName(t.Schema.Name) + "able"
		}
	}
	if len(elements) > 0 {
		if s, ok := elements[0].(*ir.Scalar); ok && !s.Null && s.Type.Kind == ir.KindString {
			return "string"
		}
	}
	return "interface{}"
}

// mapLiteral renders members through the untyped key/value shape
func (w *bodyWriter) mapLiteral(props []ir.PropertyValue) string {
	if len(props) == 0 {
		return "map[string]interface{}{}"
	}
	entries := make([]string, 0, len(props))
	for _, p := range props {
		entries = append(entries, stringLiteral(p.Name)+" : "+render.Indent(w.untyped(p.Value), 1))
	}
	return "map[string]interface{}{\n\t" + strings.Join(entries, ",\n\t") + ",\n}"
}

func (w *bodyWriter) untyped(v ir.ValueNode) string {
	switch n := v.(type) {
	case *ir.ObjectConstruction:
		return w.mapLiteral(n.Properties)
	case *ir.ArrayConstruction:
		items := make([]string, 0, len(n.Elements))
		for _, e := range n.Elements {
			items = append(items, render.Indent(w.untyped(e), 1))
		}
		if len(items) == 0 {
			return "[]interface{}{}"
		}
		return "[]interface{}{\n\t" + strings.Join(items, ",\n\t") + ",\n}"
	case *ir.Scalar:
		switch n.Type.Kind {
		case ir.KindInteger32, ir.KindDouble, ir.KindFloat:
			if !n.Null {
				return n.Value
			}
		}
		return w.literal(n)
	}
	return "nil"
}

// queryFields renders query options as struct fields. Scalars are declared
// first because the fields take pointers.
func (w *bodyWriter) queryFields(params []ir.QueryParameter) ([]field, []string) {
	fields := make([]field, 0, len(params))
	var decls []string
	for _, p := range params {
		name := utils.ToPascalIdentifier(strings.TrimPrefix(p.Name, "$"))
		switch v := p.Value.(type) {
		case *ir.ArrayConstruction:
			items := make([]string, 0, len(v.Elements))
			for _, e := range v.Elements {
				if s, ok := e.(*ir.Scalar); ok {
					items = append(items, stringLiteral(s.Value))
				}
			}
			fields = append(fields, field{Name: name, Value: "[] string {" + strings.Join(items, ",") + "}"})
		case *ir.Scalar:
			varName := w.name("request" + name)
			decls = append(decls, varName+" := "+w.literal(v))
			fields = append(fields, field{Name: name, Value: "&" + varName})
		}
	}
	return fields, decls
}

// enumConstant follows the SDK's constant naming: ("microsoft.graph.importance", "high") -> "HIGH_IMPORTANCE"
func enumConstant(enumName, value string) string {
	return strings.ToUpper(utils.ToPascalIdentifier(value) + "_" + utils.ToPascalIdentifier(utils.TrimNamespace(enumName)))
}

func typeName(schemaName string) string {
	return utils.ToPascalIdentifier(utils.TrimNamespace(schemaName))
}

func stringLiteral(s string) string {
	if s == "" {
		return `""`
	}
	return utils.AddQuotes(utils.EscapeStringLiteral(s))
}
