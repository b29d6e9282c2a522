package csharp

import (
	"embed"
	"strings"

	"github.com/blimu-dev/snippet-gen/pkg/generator/render"
	"github.com/blimu-dev/snippet-gen/pkg/ir"
	"github.com/blimu-dev/snippet-gen/pkg/utils"
)

//go:embed templates/*
var templatesFS embed.FS

const clientName = "graphClient"

// CSharpGenerator implements the Generator interface for C#
type CSharpGenerator struct{}

// NewCSharpGenerator creates a new C# generator
func NewCSharpGenerator() *CSharpGenerator {
	return &CSharpGenerator{}
}

// GetType returns the generator type identifier
func (g *CSharpGenerator) GetType() string {
	return "csharp"
}

type configLine struct {
	Name  string
	Value string
}

// Generate renders model as a C# snippet
func (g *CSharpGenerator) Generate(model *ir.SnippetModel) (string, error) {
	data := map[string]any{
		"Client":       clientName,
		"Chain":        chain(model.NavigationSegments()),
		"Method":       methodName(model.Operation),
		"ReturnsValue": model.Operation.ReturnsValue,
		"Configured":   model.HasRequestConfiguration(),
		"Query":        queryLines(model.Query),
		"Headers":      headerLines(model.Headers),
		"Body":         "",
		"Argument":     "",
		"Stream":       false,
	}
	switch {
	case model.HasNullPayload():
		data["Argument"] = "null"
	case model.Payload != nil:
		data["Body"] = writeValue(model.Payload, 0)
		data["Argument"] = "requestBody"
		if s, ok := model.Payload.(*ir.Scalar); ok && s.Type.Kind == ir.KindBinary {
			data["Stream"] = true
		}
	}
	return render.Template(templatesFS, "snippet.cs.gotmpl", nil, data)
}

// chain renders the fluent accessor path: ".Me.Messages[\"message-id\"]"
func chain(segments []ir.PathSegment) string {
	var b strings.Builder
	for _, s := range segments {
		if s.IsParameterized {
			b.WriteString("[" + stringLiteral(s.ParameterName) + "]")
			continue
		}
		b.WriteString("." + utils.ToPascalIdentifier(s.Name))
	}
	return b.String()
}

func methodName(op ir.OperationDescriptor) string {
	if op.IsNamedAction {
		return op.ActionName + "Async"
	}
	return utils.ToPascalCase(op.HTTPMethod) + "Async"
}

func queryLines(params []ir.QueryParameter) []configLine {
	lines := make([]configLine, 0, len(params))
	for _, p := range params {
		value := ""
		switch v := p.Value.(type) {
		case *ir.ArrayConstruction:
			items := make([]string, 0, len(v.Elements))
			for _, e := range v.Elements {
				items = append(items, writeValue(e, 0))
			}
			value = "new string []{ " + strings.Join(items, ",") + " }"
		default:
			value = writeValue(v, 0)
		}
		lines = append(lines, configLine{
			Name:  utils.ToPascalIdentifier(strings.TrimPrefix(p.Name, "$")),
			Value: value,
		})
	}
	return lines
}

func headerLines(headers []ir.Header) []configLine {
	lines := make([]configLine, 0, len(headers))
	for _, h := range headers {
		lines = append(lines, configLine{Name: stringLiteral(h.Name), Value: stringLiteral(h.Value)})
	}
	return lines
}
