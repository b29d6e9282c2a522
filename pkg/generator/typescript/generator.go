package typescript

import (
	"embed"
	"strings"

	"github.com/blimu-dev/snippet-gen/pkg/generator/render"
	"github.com/blimu-dev/snippet-gen/pkg/ir"
	"github.com/blimu-dev/snippet-gen/pkg/utils"
)

//go:embed templates/*
var templatesFS embed.FS

// TypeScriptGenerator implements the Generator interface for TypeScript
type TypeScriptGenerator struct{}

// NewTypeScriptGenerator creates a new TypeScript generator
func NewTypeScriptGenerator() *TypeScriptGenerator {
	return &TypeScriptGenerator{}
}

// GetType returns the generator type identifier
func (g *TypeScriptGenerator) GetType() string {
	return "typescript"
}

type entry struct {
	Name  string
	Value string
}

// Generate renders model as a TypeScript snippet
func (g *TypeScriptGenerator) Generate(model *ir.SnippetModel) (string, error) {
	var args []string
	data := map[string]any{
		"Body":         "",
		"BodyType":     "",
		"Configured":   model.HasRequestConfiguration(),
		"Query":        queryEntries(model.Query),
		"Headers":      headerEntries(model.Headers),
		"Chain":        chain(model.NavigationSegments()),
		"Method":       methodName(model.Operation),
		"ReturnsValue": model.Operation.ReturnsValue,
	}
	if model.Payload != nil {
		data["Body"] = writeValue(model.Payload, 0)
		if o, ok := model.Payload.(*ir.ObjectConstruction); ok && o.TypeName != "" {
			data["BodyType"] = o.TypeName
		}
		args = append(args, "requestBody")
	}
	if model.HasRequestConfiguration() {
		args = append(args, "configuration")
	}
	data["Args"] = args
	return render.Template(templatesFS, "snippet.ts.gotmpl", nil, data)
}

// chain renders the accessor path: ".me.messages.byMessageId(\"message-id\")"
func chain(segments []ir.PathSegment) string {
	var b strings.Builder
	for _, s := range segments {
		if s.IsParameterized {
			key := s.Placeholder
			if key == "" {
				key = s.ParameterName
			}
			b.WriteString(".by" + utils.ToFirstCharacterUpperCase(utils.ToFirstCharacterUpperCaseAfterCharacter(key, '-')) +
				"(" + stringLiteral(s.ParameterName) + ")")
			continue
		}
		b.WriteString("." + utils.ToCamelIdentifier(s.Name))
	}
	return b.String()
}

func methodName(op ir.OperationDescriptor) string {
	if op.IsNamedAction {
		return utils.ToFirstCharacterLowerCase(op.ActionName)
	}
	return strings.ToLower(op.HTTPMethod)
}

func queryEntries(params []ir.QueryParameter) []entry {
	entries := make([]entry, 0, len(params))
	for _, p := range params {
		entries = append(entries, entry{
			Name:  utils.ToCamelCase(strings.TrimPrefix(p.Name, "$")),
			Value: inline(p.Value),
		})
	}
	return entries
}

func headerEntries(headers []ir.Header) []entry {
	entries := make([]entry, 0, len(headers))
	for _, h := range headers {
		entries = append(entries, entry{Name: stringLiteral(h.Name), Value: stringLiteral(h.Value)})
	}
	return entries
}
