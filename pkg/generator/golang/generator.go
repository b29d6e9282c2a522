package golang

import (
	"embed"
	"strings"

	"github.com/blimu-dev/snippet-gen/pkg/generator/render"
	"github.com/blimu-dev/snippet-gen/pkg/ir"
	"github.com/blimu-dev/snippet-gen/pkg/utils"
)

//go:embed templates/*
var templatesFS embed.FS

const (
	importContext       = `"context"`
	importTime          = `"time"`
	importSDK           = `msgraphsdk "github.com/microsoftgraph/msgraph-sdk-go"`
	importModels        = `graphmodels "github.com/microsoftgraph/msgraph-sdk-go/models"`
	importAbstractions  = `abstractions "github.com/microsoft/kiota-abstractions-go"`
	importSerialization = `"github.com/microsoft/kiota-abstractions-go/serialization"`
	sdkModule           = "github.com/microsoftgraph/msgraph-sdk-go/"
)

// GoGenerator implements the Generator interface for Go
type GoGenerator struct{}

// NewGoGenerator creates a new Go generator
func NewGoGenerator() *GoGenerator {
	return &GoGenerator{}
}

// GetType returns the generator type identifier
func (g *GoGenerator) GetType() string {
	return "go"
}

type field struct {
	Name  string
	Value string
}

// Generate renders model as a Go snippet
func (g *GoGenerator) Generate(model *ir.SnippetModel) (string, error) {
	w := newBodyWriter()
	args := []string{"context.Background()"}
	switch {
	case model.HasNullPayload():
		args = append(args, "nil")
	case model.Payload != nil:
		w.writeTop("requestBody", model.Payload)
		args = append(args, "requestBody")
	}

	nav := model.NavigationSegments()
	pkg, builder := requestBuilder(model.Segments, nav, model.Operation.HTTPMethod)
	query, decls := w.queryFields(model.Query)
	if model.HasRequestConfiguration() {
		args = append(args, "configuration")
		w.imports[`graph`+pkg+` "`+sdkModule+pkg+`"`] = true
	} else {
		args = append(args, "nil")
	}
	if len(model.Headers) > 0 {
		w.imports[importAbstractions] = true
	}

	headers := make([]field, 0, len(model.Headers))
	for _, h := range model.Headers {
		headers = append(headers, field{Name: stringLiteral(h.Name), Value: stringLiteral(h.Value)})
	}

	data := map[string]any{
		"Imports":      w.importList(),
		"Body":         strings.Join(w.lines, "\n"),
		"Headers":      headers,
		"Query":        query,
		"QueryDecls":   decls,
		"Package":      "graph" + pkg,
		"Builder":      builder,
		"Configured":   model.HasRequestConfiguration(),
		"Chain":        chain(nav),
		"Method":       methodName(model.Operation),
		"Args":         args,
		"ReturnsValue": model.Operation.ReturnsValue,
	}
	return render.Template(templatesFS, "snippet.go.gotmpl", nil, data)
}

// chain renders the accessor path: ".Me().Messages().ByMessageId(\"message-id\")"
func chain(segments []ir.PathSegment) string {
	var b strings.Builder
	for _, s := range segments {
		if s.IsParameterized {
			key := s.Placeholder
			if key == "" {
				key = s.ParameterName
			}
			b.WriteString(".By" + utils.ToPascalCase(key) + "(" + stringLiteral(s.ParameterName) + ")")
			continue
		}
		b.WriteString("." + utils.ToPascalIdentifier(s.Name) + "()")
	}
	return b.String()
}

func methodName(op ir.OperationDescriptor) string {
	if op.IsNamedAction {
		return op.ActionName
	}
	return utils.ToPascalCase(op.HTTPMethod)
}

// requestBuilder names the package and request builder that own the
// configuration types, e.g. ("me", "MessageItemRequestBuilderGet").
func requestBuilder(all, nav []ir.PathSegment, method string) (string, string) {
	pkg := "me"
	if len(all) > 0 {
		pkg = strings.ToLower(utils.ToPascalIdentifier(all[0].Name))
	}
	name := ""
	if len(nav) > 0 {
		last := nav[len(nav)-1]
		name = utils.ToPascalIdentifier(last.Name)
		if last.IsParameterized {
			name = strings.TrimSuffix(name, "s") + "Item"
		}
	}
	if len(nav) < len(all) {
		name += utils.ToPascalIdentifier(all[len(all)-1].Name)
	}
	return pkg, name + "RequestBuilder" + utils.ToPascalCase(method)
}
