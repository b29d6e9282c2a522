package generator

import (
	"bytes"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/blimu-dev/snippet-gen/pkg/ir"
	"github.com/blimu-dev/snippet-gen/pkg/utils"
)

// buildPayload parses a request body against the operation's request type.
// It never fails: a body that is not JSON comes back as a string scalar and
// valid is false.
func buildPayload(body []byte, requestType ir.TypeRef) (node ir.ValueNode, valid bool) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return nil, true
	}
	if requestType.Kind == ir.KindBinary {
		return &ir.Scalar{Type: ir.TypeRef{Kind: ir.KindBinary}}, true
	}
	if !gjson.ValidBytes(body) {
		return &ir.Scalar{Type: ir.TypeRef{Kind: ir.KindString}, Value: string(body)}, false
	}
	return buildValue(gjson.ParseBytes(body), requestType), true
}

func buildValue(r gjson.Result, t ir.TypeRef) ir.ValueNode {
	switch {
	case r.IsArray():
		arr := &ir.ArrayConstruction{ElementType: t}
		r.ForEach(func(_, elem gjson.Result) bool {
			arr.Elements = append(arr.Elements, buildValue(elem, t))
			return true
		})
		return arr
	case r.IsObject():
		return buildObject(r, t)
	}

	switch r.Type {
	case gjson.Number:
		return buildNumber(r.Raw, t)
	case gjson.String:
		return buildString(r.Str, t)
	case gjson.True, gjson.False:
		return &ir.Scalar{Type: ir.TypeRef{Kind: ir.KindBoolean}, Value: strconv.FormatBool(r.Bool())}
	}
	return &ir.Scalar{Type: t, Null: true}
}

// buildObject matches members against the schema. Matched members follow the
// schema's declaration order; members the schema does not declare keep their
// JSON order after them.
func buildObject(r gjson.Result, t ir.TypeRef) *ir.ObjectConstruction {
	schema := t.Schema
	if t.Kind != ir.KindObject || schema == nil || schema.Dictionary {
		obj := &ir.ObjectConstruction{Generic: true}
		if schema != nil {
			obj.TypeName = typeName(schema.Name)
		}
		r.ForEach(func(key, value gjson.Result) bool {
			obj.Properties = append(obj.Properties, ir.PropertyValue{
				Name:  key.String(),
				Value: buildValue(value, ir.TypeRef{Kind: ir.KindUnknown}),
			})
			return true
		})
		return obj
	}

	type indexed struct {
		index int
		value ir.PropertyValue
	}
	var known []indexed
	var unknown []ir.PropertyValue

	r.ForEach(func(key, value gjson.Result) bool {
		prop, idx := schema.Lookup(key.String())
		if idx < 0 {
			unknown = append(unknown, ir.PropertyValue{
				Name:    key.String(),
				Unknown: true,
				Value:   buildValue(value, ir.TypeRef{Kind: ir.KindUnknown}),
			})
			return true
		}
		known = append(known, indexed{index: idx, value: ir.PropertyValue{
			Name:  prop.Name,
			Value: buildValue(value, prop.Type),
		}})
		return true
	})
	sort.SliceStable(known, func(i, j int) bool { return known[i].index < known[j].index })

	obj := &ir.ObjectConstruction{TypeName: typeName(schema.Name)}
	for _, k := range known {
		obj.Properties = append(obj.Properties, k.value)
	}
	obj.Properties = append(obj.Properties, unknown...)
	return obj
}

// typeName is the rendered type name of a schema: the namespace is dropped and
// the result Pascal-cased, so "microsoft.graph.passwordProfile" becomes "PasswordProfile".
func typeName(schemaName string) string {
	return utils.ToPascalIdentifier(utils.TrimNamespace(schemaName))
}

// buildNumber keeps the literal text and picks the narrowest kind the schema and
// the magnitude allow.
func buildNumber(raw string, t ir.TypeRef) *ir.Scalar {
	kind := ir.KindInteger32
	if strings.ContainsAny(raw, ".eE") {
		kind = ir.KindDouble
		if t.Kind == ir.KindFloat {
			kind = ir.KindFloat
		}
		return &ir.Scalar{Type: ir.TypeRef{Kind: kind}, Value: raw}
	}

	n, err := strconv.ParseInt(raw, 10, 64)
	switch {
	case err != nil:
		kind = ir.KindDouble
	case t.Kind == ir.KindInteger64, n > math.MaxInt32, n < math.MinInt32:
		kind = ir.KindInteger64
	case t.Kind == ir.KindFloat, t.Kind == ir.KindDouble:
		kind = t.Kind
	}
	return &ir.Scalar{Type: ir.TypeRef{Kind: kind}, Value: raw}
}

func buildString(s string, t ir.TypeRef) *ir.Scalar {
	switch t.Kind {
	case ir.KindDate, ir.KindDateTime, ir.KindEnum:
		return &ir.Scalar{Type: ir.TypeRef{Kind: t.Kind, Name: t.Name}, Value: s}
	}
	return &ir.Scalar{Type: ir.TypeRef{Kind: ir.KindString}, Value: s}
}
