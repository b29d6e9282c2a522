package golang

import (
	"strings"
	"testing"

	"github.com/blimu-dev/snippet-gen/pkg/ir"
)

func TestEnumConstant(t *testing.T) {
	tests := []struct {
		enum     string
		value    string
		expected string
	}{
		{"microsoft.graph.importance", "high", "HIGH_IMPORTANCE"},
		{"microsoft.graph.bodyType", "html", "HTML_BODYTYPE"},
		{"microsoft.graph.teamworkActivityTopicSource", "entityUrl", "ENTITYURL_TEAMWORKACTIVITYTOPICSOURCE"},
	}

	for _, test := range tests {
		if got := enumConstant(test.enum, test.value); got != test.expected {
			t.Errorf("enumConstant(%q, %q) = %q, expected %q", test.enum, test.value, got, test.expected)
		}
	}
}

func TestVariableNames(t *testing.T) {
	w := newBodyWriter()
	tests := []struct {
		base     string
		expected string
	}{
		{"recipient", "recipient"},
		{"recipient", "recipient1"},
		{"Recipient", "recipient2"},
		{"type", "typeValue"},
		{"@odata.type", "odataType"},
		{"requestBody", "requestBody1"},
		{"", "value"},
	}

	for _, test := range tests {
		if got := w.name(test.base); got != test.expected {
			t.Errorf("name(%q) = %q, expected %q", test.base, got, test.expected)
		}
	}
}

func TestLiterals(t *testing.T) {
	w := newBodyWriter()
	tests := []struct {
		scalar   *ir.Scalar
		expected string
	}{
		{&ir.Scalar{Type: ir.TypeRef{Kind: ir.KindInteger32}, Value: "7"}, "int32(7)"},
		{&ir.Scalar{Type: ir.TypeRef{Kind: ir.KindInteger64}, Value: "10"}, "int64(10)"},
		{&ir.Scalar{Type: ir.TypeRef{Kind: ir.KindFloat}, Value: "1.5"}, "float32(1.5)"},
		{&ir.Scalar{Type: ir.TypeRef{Kind: ir.KindDouble}, Value: "1.5"}, "float64(1.5)"},
		{&ir.Scalar{Type: ir.TypeRef{Kind: ir.KindBoolean}, Value: "true"}, "true"},
		{&ir.Scalar{Type: ir.TypeRef{Kind: ir.KindString}, Value: `a"b`}, `"a\"b"`},
		{&ir.Scalar{Type: ir.TypeRef{Kind: ir.KindEnum, Name: "microsoft.graph.importance"}, Value: "low"}, "graphmodels.LOW_IMPORTANCE"},
		{&ir.Scalar{Type: ir.TypeRef{Kind: ir.KindString}, Null: true}, "nil"},
	}

	for _, test := range tests {
		if got := w.literal(test.scalar); got != test.expected {
			t.Errorf("literal(%s %q) = %q, expected %q", test.scalar.Type.Kind, test.scalar.Value, got, test.expected)
		}
	}
}

func TestRequestBuilder(t *testing.T) {
	messages := []ir.PathSegment{{Name: "me"}, {Name: "messages"}}
	item := append(messages, ir.PathSegment{Name: "messages", IsParameterized: true, ParameterName: "message-id"})
	action := []ir.PathSegment{{Name: "teams"}, {Name: "teams", IsParameterized: true}, {Name: "sendActivityNotification"}}

	tests := []struct {
		all, nav []ir.PathSegment
		method   string
		pkg      string
		builder  string
	}{
		{messages, messages, "GET", "me", "MessagesRequestBuilderGet"},
		{item, item, "PATCH", "me", "MessageItemRequestBuilderPatch"},
		{action, action[:2], "POST", "teams", "TeamItemSendActivityNotificationRequestBuilderPost"},
	}

	for _, test := range tests {
		pkg, builder := requestBuilder(test.all, test.nav, test.method)
		if pkg != test.pkg || builder != test.builder {
			t.Errorf("requestBuilder() = (%q, %q), expected (%q, %q)", pkg, builder, test.pkg, test.builder)
		}
	}
}

func TestGenerateSetterStyle(t *testing.T) {
	model := &ir.SnippetModel{
		Segments:  []ir.PathSegment{{Name: "users"}},
		Operation: ir.OperationDescriptor{HTTPMethod: "POST", ReturnsValue: true},
		Payload: &ir.ObjectConstruction{
			TypeName: "User",
			Properties: []ir.PropertyValue{
				{Name: "accountEnabled", Value: &ir.Scalar{Type: ir.TypeRef{Kind: ir.KindBoolean}, Value: "true"}},
				{Name: "passwordProfile", Value: &ir.ObjectConstruction{
					TypeName: "PasswordProfile",
					Properties: []ir.PropertyValue{
						{Name: "password", Value: &ir.Scalar{Type: ir.TypeRef{Kind: ir.KindString}, Value: "x"}},
					},
				}},
				{Name: "extension", Unknown: true, Value: &ir.Scalar{Type: ir.TypeRef{Kind: ir.KindInteger64}, Value: "3000000000"}},
			},
		},
	}

	out, err := NewGoGenerator().Generate(model)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	expected := `requestBody := graphmodels.NewUser()
accountEnabled := true
requestBody.SetAccountEnabled(&accountEnabled)
passwordProfile := graphmodels.NewPasswordProfile()
password := "x"
passwordProfile.SetPassword(&password)
requestBody.SetPasswordProfile(passwordProfile)
additionalData := map[string]interface{}{
	"extension" : int64(3000000000),
}
requestBody.SetAdditionalData(additionalData)

result, err := graphClient.Users().Post(context.Background(), requestBody, nil)
`
	if !strings.HasSuffix(out, expected) {
		t.Errorf("unexpected output:\n%s\nexpected suffix:\n%s", out, expected)
	}
	for _, imp := range []string{`"context"`, importSDK, importModels} {
		if !strings.Contains(out, imp) {
			t.Errorf("missing import %s", imp)
		}
	}
}

func TestGenerateDeleteAndConfiguration(t *testing.T) {
	model := &ir.SnippetModel{
		Segments: []ir.PathSegment{
			{Name: "me"},
			{Name: "messages"},
			{Name: "messages", IsParameterized: true, ParameterName: "message-id", Placeholder: "message-id"},
		},
		Operation: ir.OperationDescriptor{HTTPMethod: "DELETE"},
	}
	out, err := NewGoGenerator().Generate(model)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if !strings.HasSuffix(out, "\ngraphClient.Me().Messages().ByMessageId(\"message-id\").Delete(context.Background(), nil)\n") {
		t.Errorf("unexpected delete call:\n%s", out)
	}

	model.Segments = model.Segments[:2]
	model.Operation = ir.OperationDescriptor{HTTPMethod: "GET", ReturnsValue: true}
	model.Query = []ir.QueryParameter{
		{Name: "$top", Value: &ir.Scalar{Type: ir.TypeRef{Kind: ir.KindInteger32}, Value: "5"}},
	}
	model.Headers = []ir.Header{{Name: "Prefer", Value: "outlook.body-content-type=text"}}

	out, err = NewGoGenerator().Generate(model)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	expected := `headers := abstractions.NewRequestHeaders()
headers.Add("Prefer", "outlook.body-content-type=text")

requestTop := int32(5)
requestParameters := &graphme.MessagesRequestBuilderGetQueryParameters{
	Top: &requestTop,
}
configuration := &graphme.MessagesRequestBuilderGetRequestConfiguration{
	Headers: headers,
	QueryParameters: requestParameters,
}

result, err := graphClient.Me().Messages().Get(context.Background(), configuration)
`
	if !strings.HasSuffix(out, expected) {
		t.Errorf("unexpected output:\n%s\nexpected suffix:\n%s", out, expected)
	}
	if !strings.Contains(out, `graphme "github.com/microsoftgraph/msgraph-sdk-go/me"`) {
		t.Errorf("missing request builder import:\n%s", out)
	}
}

func TestSliceOfObjects(t *testing.T) {
	w := newBodyWriter()
	arr := &ir.ArrayConstruction{
		ElementType: ir.TypeRef{Kind: ir.KindObject, Schema: &ir.Schema{Name: "microsoft.graph.keyValuePair"}},
		Elements: []ir.ValueNode{
			&ir.ObjectConstruction{TypeName: "KeyValuePair"},
			&ir.ObjectConstruction{TypeName: "KeyValuePair"},
		},
	}
	got := w.slice(arr)
	expected := "[]graphmodels.KeyValuePairable {\n\tkeyValuePair,\n\tkeyValuePair1,\n}"
	if got != expected {
		t.Errorf("slice() = %q, expected %q", got, expected)
	}
	if len(w.lines) != 2 || w.lines[1] != "keyValuePair1 := graphmodels.NewKeyValuePair()" {
		t.Errorf("unexpected statements: %v", w.lines)
	}
}

func TestNullBodyIsPassedInline(t *testing.T) {
	model := &ir.SnippetModel{
		Segments:  []ir.PathSegment{{Name: "me"}},
		Operation: ir.OperationDescriptor{HTTPMethod: "PATCH", ReturnsValue: true},
		Payload:   &ir.Scalar{Type: ir.TypeRef{Kind: ir.KindUnknown}, Null: true},
	}

	out, err := NewGoGenerator().Generate(model)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if strings.Contains(out, "requestBody") {
		t.Errorf("null body should not be declared:\n%s", out)
	}
	if !strings.HasSuffix(out, "result, err := graphClient.Me().Patch(context.Background(), nil, nil)\n") {
		t.Errorf("unexpected output:\n%s", out)
	}
}
