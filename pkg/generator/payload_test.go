package generator

import (
	"testing"

	"github.com/blimu-dev/snippet-gen/pkg/ir"
)

func testSchema() *ir.Schema {
	profile := &ir.Schema{
		Name: "microsoft.graph.passwordProfile",
		Properties: []ir.Property{
			{Name: "forceChangePasswordNextSignIn", Type: ir.TypeRef{Kind: ir.KindBoolean}},
			{Name: "password", Type: ir.TypeRef{Kind: ir.KindString}},
		},
	}
	return &ir.Schema{
		Name: "microsoft.graph.user",
		Properties: []ir.Property{
			{Name: "id", Type: ir.TypeRef{Kind: ir.KindString}},
			{Name: "accountEnabled", Type: ir.TypeRef{Kind: ir.KindBoolean}},
			{Name: "displayName", Type: ir.TypeRef{Kind: ir.KindString}},
			{Name: "passwordProfile", Type: ir.TypeRef{Kind: ir.KindObject, Schema: profile}},
			{Name: "businessPhones", Type: ir.TypeRef{Kind: ir.KindString}, IsCollection: true},
			{Name: "birthday", Type: ir.TypeRef{Kind: ir.KindDateTime}},
			{Name: "hireDate", Type: ir.TypeRef{Kind: ir.KindDate}},
			{Name: "importance", Type: ir.TypeRef{Kind: ir.KindEnum, Name: "microsoft.graph.importance"}},
			{Name: "chainId", Type: ir.TypeRef{Kind: ir.KindInteger64}},
			{Name: "ratio", Type: ir.TypeRef{Kind: ir.KindFloat}},
			{Name: "extensions", Type: ir.TypeRef{Kind: ir.KindObject, Schema: &ir.Schema{Name: "microsoft.graph.customSecurityAttributeValue", Dictionary: true}}},
		},
	}
}

func userType() ir.TypeRef {
	return ir.TypeRef{Kind: ir.KindObject, Schema: testSchema()}
}

func build(t *testing.T, body string, typ ir.TypeRef) ir.ValueNode {
	t.Helper()
	node, valid := buildPayload([]byte(body), typ)
	if !valid {
		t.Fatalf("body %q reported invalid", body)
	}
	return node
}

func object(t *testing.T, v ir.ValueNode) *ir.ObjectConstruction {
	t.Helper()
	obj, ok := v.(*ir.ObjectConstruction)
	if !ok {
		t.Fatalf("expected *ir.ObjectConstruction, got %T", v)
	}
	return obj
}

func scalarOf(t *testing.T, v ir.ValueNode) *ir.Scalar {
	t.Helper()
	s, ok := v.(*ir.Scalar)
	if !ok {
		t.Fatalf("expected *ir.Scalar, got %T", v)
	}
	return s
}

func TestPayloadFollowsSchemaOrder(t *testing.T) {
	obj := object(t, build(t, `{"zeta": 1, "displayName": "x", "extra": true, "accountEnabled": false}`, userType()))

	if obj.TypeName != "User" || obj.Generic {
		t.Errorf("object = %q generic=%v", obj.TypeName, obj.Generic)
	}
	expected := []struct {
		name    string
		unknown bool
	}{
		{"accountEnabled", false},
		{"displayName", false},
		{"zeta", true},
		{"extra", true},
	}
	if len(obj.Properties) != len(expected) {
		t.Fatalf("got %d properties, expected %d", len(obj.Properties), len(expected))
	}
	for i, want := range expected {
		got := obj.Properties[i]
		if got.Name != want.name || got.Unknown != want.unknown {
			t.Errorf("property %d = (%q, unknown=%v), expected (%q, unknown=%v)", i, got.Name, got.Unknown, want.name, want.unknown)
		}
	}
	if len(obj.KnownProperties()) != 2 || len(obj.UnknownProperties()) != 2 {
		t.Errorf("known/unknown split = %d/%d", len(obj.KnownProperties()), len(obj.UnknownProperties()))
	}
}

func TestPayloadPropertyNamesUseDeclaredCasing(t *testing.T) {
	obj := object(t, build(t, `{"DisplayName": "x"}`, userType()))
	if obj.Properties[0].Name != "displayName" || obj.Properties[0].Unknown {
		t.Errorf("property = %+v", obj.Properties[0])
	}
}

func TestPayloadNestedObject(t *testing.T) {
	obj := object(t, build(t, `{"passwordProfile": {"password": "p", "forceChangePasswordNextSignIn": true}}`, userType()))
	nested := object(t, obj.Properties[0].Value)
	if nested.TypeName != "PasswordProfile" {
		t.Errorf("nested type = %q", nested.TypeName)
	}
	if nested.Properties[0].Name != "forceChangePasswordNextSignIn" || nested.Properties[1].Name != "password" {
		t.Errorf("nested order = %+v", nested.Properties)
	}
}

func TestPayloadScalarKinds(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		kind     ir.TypeKind
		value    string
		enumName string
	}{
		{"int32 by default", `{"zeta": 10}`, ir.KindInteger32, "10", ""},
		{"int64 by schema", `{"chainId": 10}`, ir.KindInteger64, "10", ""},
		{"int64 by magnitude", `{"zeta": 3000000000}`, ir.KindInteger64, "3000000000", ""},
		{"negative int64 by magnitude", `{"zeta": -3000000000}`, ir.KindInteger64, "-3000000000", ""},
		{"double by decimal point", `{"zeta": 1.5}`, ir.KindDouble, "1.5", ""},
		{"double by exponent", `{"zeta": 1e3}`, ir.KindDouble, "1e3", ""},
		{"float by schema", `{"ratio": 0.5}`, ir.KindFloat, "0.5", ""},
		{"float schema integral", `{"ratio": 2}`, ir.KindFloat, "2", ""},
		{"beyond int64", `{"zeta": 99999999999999999999}`, ir.KindDouble, "99999999999999999999", ""},
		{"boolean", `{"accountEnabled": true}`, ir.KindBoolean, "true", ""},
		{"string", `{"displayName": "Jane"}`, ir.KindString, "Jane", ""},
		{"date-time", `{"birthday": "2020-01-01T00:00:00Z"}`, ir.KindDateTime, "2020-01-01T00:00:00Z", ""},
		{"date", `{"hireDate": "2020-01-01"}`, ir.KindDate, "2020-01-01", ""},
		{"enum", `{"importance": "high"}`, ir.KindEnum, "high", "microsoft.graph.importance"},
		{"unknown string", `{"zeta": "z"}`, ir.KindString, "z", ""},
	}

	for _, test := range tests {
		obj := object(t, build(t, test.body, userType()))
		s := scalarOf(t, obj.Properties[0].Value)
		if s.Type.Kind != test.kind || s.Value != test.value || s.Type.Name != test.enumName {
			t.Errorf("%s: scalar = %+v, expected kind %s value %q", test.name, s, test.kind, test.value)
		}
	}
}

func TestPayloadNull(t *testing.T) {
	obj := object(t, build(t, `{"displayName": null}`, userType()))
	s := scalarOf(t, obj.Properties[0].Value)
	if !s.Null || s.Type.Kind != ir.KindString {
		t.Errorf("null scalar = %+v", s)
	}
}

func TestPayloadArray(t *testing.T) {
	obj := object(t, build(t, `{"businessPhones": ["+1 555", "+1 556"]}`, userType()))
	arr, ok := obj.Properties[0].Value.(*ir.ArrayConstruction)
	if !ok {
		t.Fatalf("expected array, got %T", obj.Properties[0].Value)
	}
	if arr.ElementType.Kind != ir.KindString || len(arr.Elements) != 2 {
		t.Errorf("array = %+v", arr)
	}
	if scalarOf(t, arr.Elements[1]).Value != "+1 556" {
		t.Errorf("second element = %+v", arr.Elements[1])
	}
}

func TestPayloadDictionary(t *testing.T) {
	obj := object(t, build(t, `{"extensions": {"b": 1, "a": {"nested": true}}}`, userType()))
	dict := object(t, obj.Properties[0].Value)
	if !dict.Generic || dict.TypeName != "CustomSecurityAttributeValue" {
		t.Errorf("dictionary = %+v", dict)
	}
	if dict.Properties[0].Name != "b" || dict.Properties[1].Name != "a" {
		t.Errorf("dictionary keys should keep JSON order: %+v", dict.Properties)
	}
	if !object(t, dict.Properties[1].Value).Generic {
		t.Errorf("nested value in a dictionary should be generic")
	}
}

func TestPayloadWithoutSchema(t *testing.T) {
	obj := object(t, build(t, `{"b": 1, "a": 2}`, ir.TypeRef{Kind: ir.KindUnknown}))
	if !obj.Generic || obj.TypeName != "" {
		t.Errorf("object = %+v", obj)
	}
	if obj.Properties[0].Name != "b" {
		t.Errorf("generic objects keep JSON order: %+v", obj.Properties)
	}
}

func TestPayloadEdgeCases(t *testing.T) {
	node, valid := buildPayload([]byte("  \r\n "), userType())
	if node != nil || !valid {
		t.Errorf("blank body = %v, %v", node, valid)
	}

	node, valid = buildPayload([]byte("{not json"), userType())
	if valid {
		t.Errorf("invalid JSON reported valid")
	}
	if s := scalarOf(t, node); s.Type.Kind != ir.KindString || s.Value != "{not json" {
		t.Errorf("invalid JSON scalar = %+v", s)
	}

	node, valid = buildPayload([]byte{0x89, 0x50, 0x4e, 0x47}, ir.TypeRef{Kind: ir.KindBinary})
	if s := scalarOf(t, node); !valid || s.Type.Kind != ir.KindBinary {
		t.Errorf("binary body = %+v, %v", s, valid)
	}

	arr, ok := build(t, `[{"displayName": "a"}, {"displayName": "b"}]`, userType()).(*ir.ArrayConstruction)
	if !ok || len(arr.Elements) != 2 || object(t, arr.Elements[0]).TypeName != "User" {
		t.Errorf("top-level array = %+v", arr)
	}
}

func TestTypeName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"microsoft.graph.passwordProfile", "PasswordProfile"},
		{"SendActivityNotificationPostRequestBody", "SendActivityNotificationPostRequestBody"},
		{"user", "User"},
	}

	for _, test := range tests {
		if got := typeName(test.input); got != test.expected {
			t.Errorf("typeName(%q) = %q, expected %q", test.input, got, test.expected)
		}
	}
}
