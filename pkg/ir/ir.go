package ir

import "strings"

// TypeKind is the semantic type of a value after consulting schema metadata
type TypeKind string

const (
	KindUnknown   TypeKind = "unknown"
	KindString    TypeKind = "string"
	KindBoolean   TypeKind = "boolean"
	KindInteger32 TypeKind = "integer32"
	KindInteger64 TypeKind = "integer64"
	KindFloat     TypeKind = "float"
	KindDouble    TypeKind = "double"
	KindDate      TypeKind = "date"
	KindDateTime  TypeKind = "dateTime"
	KindEnum      TypeKind = "enum"
	KindObject    TypeKind = "object"
	KindBinary    TypeKind = "binary"
)

// TypeRef is a resolved reference to a semantic type.
// Name carries the enum name for KindEnum; Schema is set for KindObject.
type TypeRef struct {
	Kind   TypeKind
	Name   string
	Schema *Schema
}

// Schema is a named or inline type definition reachable from the API description
type Schema struct {
	// Name is the declared type name, possibly namespace-qualified (e.g. "microsoft.graph.user")
	Name       string
	Properties []Property
	// Dictionary marks an untyped key/value object (additionalProperties without properties)
	Dictionary bool
}

// Property is a declared member of an object schema
type Property struct {
	Name         string
	Type         TypeRef
	IsCollection bool
	IsRequired   bool
}

// Lookup finds a declared property by name, case-insensitively.
// It returns the property and its declaration index, or -1 when absent.
func (s *Schema) Lookup(name string) (Property, int) {
	if s == nil {
		return Property{}, -1
	}
	for i, p := range s.Properties {
		if p.Name == name {
			return p, i
		}
	}
	for i, p := range s.Properties {
		if strings.EqualFold(p.Name, name) {
			return p, i
		}
	}
	return Property{}, -1
}

// PathSegment is one URL path component after the service root
type PathSegment struct {
	// Name is the logical resource name. For a parameterized segment it is the
	// resource name of the parent collection.
	Name string
	// IsParameterized is true when the component matched a parameter placeholder
	IsParameterized bool
	// ParameterName is the literal URL text bound to the placeholder (braces removed)
	ParameterName string
	// Placeholder is the tree's placeholder identifier (e.g. "message-id")
	Placeholder string
}

// OperationDescriptor describes the operation selected for a request
type OperationDescriptor struct {
	HTTPMethod    string
	IsNamedAction bool
	ActionName    string
	RequestSchema *Schema
	// RequestType is the semantic type of the request body when it is not an object
	RequestType  TypeRef
	ReturnsValue bool
}

// ValueNode is the payload construction tree. The variant set is closed:
// *Scalar, *ObjectConstruction and *ArrayConstruction.
type ValueNode interface {
	valueNode()
}

// Scalar is a leaf literal
type Scalar struct {
	Type TypeRef
	// Value holds the raw literal: JSON number text, decoded string, "true"/"false"
	Value string
	Null  bool
}

// ObjectConstruction is a typed (or generic, when Generic is set) instance construction
type ObjectConstruction struct {
	TypeName   string
	Generic    bool
	Properties []PropertyValue
}

// PropertyValue pairs a property name with its value
type PropertyValue struct {
	// Name is the property name as declared in the schema, or as found in the JSON when unknown
	Name    string
	Unknown bool
	Value   ValueNode
}

// ArrayConstruction is a sequence literal
type ArrayConstruction struct {
	ElementType TypeRef
	Elements    []ValueNode
}

func (*Scalar) valueNode()             {}
func (*ObjectConstruction) valueNode() {}
func (*ArrayConstruction) valueNode()  {}

// KnownProperties returns the properties that matched the schema
func (o *ObjectConstruction) KnownProperties() []PropertyValue {
	out := make([]PropertyValue, 0, len(o.Properties))
	for _, p := range o.Properties {
		if !p.Unknown {
			out = append(out, p)
		}
	}
	return out
}

// UnknownProperties returns the properties that are absent from the schema
func (o *ObjectConstruction) UnknownProperties() []PropertyValue {
	var out []PropertyValue
	for _, p := range o.Properties {
		if p.Unknown {
			out = append(out, p)
		}
	}
	return out
}

// QueryParameter is a query string option carried to the snippet.
// Value is a *Scalar or an *ArrayConstruction of strings.
type QueryParameter struct {
	Name  string
	Value ValueNode
}

// Header is a request header carried to the snippet
type Header struct {
	Name  string
	Value string
}

// SnippetModel is the resolved, language-agnostic representation of one request.
// It is built once per request and only read by generators.
type SnippetModel struct {
	ServiceRoot string
	Segments    []PathSegment
	Operation   OperationDescriptor
	Payload     ValueNode
	Query       []QueryParameter
	Headers     []Header
}

// NavigationSegments returns the segments rendered as the accessor chain.
// The terminal segment of a named action surfaces as the method call instead.
func (m *SnippetModel) NavigationSegments() []PathSegment {
	if m.Operation.IsNamedAction && len(m.Segments) > 0 {
		return m.Segments[:len(m.Segments)-1]
	}
	return m.Segments
}

// HasRequestConfiguration reports whether query parameters or headers need rendering
func (m *SnippetModel) HasRequestConfiguration() bool {
	return len(m.Query) > 0 || len(m.Headers) > 0
}

// HasNullPayload reports whether the request body is a bare JSON null
func (m *SnippetModel) HasNullPayload() bool {
	s, ok := m.Payload.(*Scalar)
	return ok && s.Null
}
