package python

import (
	"embed"
	"sort"
	"strings"

	"github.com/blimu-dev/snippet-gen/pkg/generator/render"
	"github.com/blimu-dev/snippet-gen/pkg/ir"
	"github.com/blimu-dev/snippet-gen/pkg/utils"
)

//go:embed templates/*
var templatesFS embed.FS

// PythonGenerator implements the Generator interface for Python
type PythonGenerator struct{}

// NewPythonGenerator creates a new Python generator
func NewPythonGenerator() *PythonGenerator {
	return &PythonGenerator{}
}

// GetType returns the generator type identifier
func (g *PythonGenerator) GetType() string {
	return "python"
}

type keyword struct {
	Name  string
	Value string
}

// Generate renders model as a Python snippet
func (g *PythonGenerator) Generate(model *ir.SnippetModel) (string, error) {
	w := newWriter()
	nav := model.NavigationSegments()
	var args []string

	data := map[string]any{
		"Body":         "",
		"Configured":   model.HasRequestConfiguration(),
		"Chain":        chain(nav),
		"Call":         methodName(model.Operation),
		"Method":       strings.ToLower(model.Operation.HTTPMethod),
		"ReturnsValue": model.Operation.ReturnsValue,
	}
	if model.Payload != nil {
		data["Body"] = w.value(model.Payload, 0)
		args = append(args, "request_body")
	}

	query := make([]keyword, 0, len(model.Query))
	for _, p := range model.Query {
		query = append(query, keyword{Name: identifier(strings.TrimPrefix(p.Name, "$")), Value: w.inline(p.Value)})
	}
	headers := make([]keyword, 0, len(model.Headers))
	for _, h := range model.Headers {
		headers = append(headers, keyword{Name: stringLiteral(h.Name), Value: stringLiteral(h.Value)})
	}

	if model.HasRequestConfiguration() {
		modulePath, builder := requestBuilder(model.Segments, nav)
		data["Builder"] = builder
		if len(query) > 0 {
			w.imports["from msgraph.generated."+modulePath+" import "+builder] = true
		}
		w.imports["from kiota_abstractions.base_request_configuration import RequestConfiguration"] = true
		args = append(args, "request_configuration = request_configuration")
	}
	data["Query"] = query
	data["Headers"] = headers
	data["Args"] = args
	data["Imports"] = w.importList()
	return render.Template(templatesFS, "snippet.py.gotmpl", nil, data)
}

// chain renders the accessor path: ".me.messages.by_message_id(\"message-id\")"
func chain(segments []ir.PathSegment) string {
	var b strings.Builder
	for _, s := range segments {
		if s.IsParameterized {
			key := s.Placeholder
			if key == "" {
				key = s.ParameterName
			}
			b.WriteString(".by_" + utils.ToSnakeCase(key) + "(" + stringLiteral(s.ParameterName) + ")")
			continue
		}
		b.WriteString("." + identifier(s.Name))
	}
	return b.String()
}

func methodName(op ir.OperationDescriptor) string {
	if op.IsNamedAction {
		return utils.ToSnakeCase(op.ActionName)
	}
	return strings.ToLower(op.HTTPMethod)
}

// requestBuilder returns the module path and class of the request builder that
// owns the query parameter type, e.g.
// ("me.messages.item.message_item_request_builder", "MessageItemRequestBuilder").
func requestBuilder(all, nav []ir.PathSegment) (string, string) {
	parts := make([]string, 0, len(nav)+1)
	name := ""
	for _, s := range nav {
		if s.IsParameterized {
			parts = append(parts, "item")
			name = strings.TrimSuffix(utils.ToPascalIdentifier(s.Name), "s") + "Item"
			continue
		}
		parts = append(parts, utils.ToSnakeCase(s.Name))
		name = utils.ToPascalIdentifier(s.Name)
	}
	if len(nav) < len(all) {
		last := all[len(all)-1].Name
		parts = append(parts, utils.ToSnakeCase(last))
		name = utils.ToPascalIdentifier(last)
	}
	builder := name + "RequestBuilder"
	parts = append(parts, utils.ToSnakeCase(builder))
	return strings.Join(parts, "."), builder
}

// importList returns the client import followed by the others, sorted
func (w *writer) importList() []string {
	imports := make([]string, 0, len(w.imports))
	for imp := range w.imports {
		imports = append(imports, imp)
	}
	sort.Strings(imports)
	return append([]string{"from msgraph import GraphServiceClient"}, imports...)
}
