package urltree

import (
	"errors"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/blimu-dev/snippet-gen/pkg/ir"
	"github.com/blimu-dev/snippet-gen/pkg/utils"
)

// operationTypeExtension is the extension some API descriptions use to flag bound
// actions and functions on an operation.
const operationTypeExtension = "x-ms-docs-operation-type"

// FromDocument builds a path tree from an OpenAPI document
func FromDocument(doc *openapi3.T) (*Node, error) {
	if doc == nil || doc.Paths == nil {
		return nil, errors.New("document has no paths")
	}
	conv := newSchemaConverter()
	root := New()

	pathMap := doc.Paths.Map()
	paths := make([]string, 0, len(pathMap))
	for p := range pathMap {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	for _, path := range paths {
		item := pathMap[path]
		if item == nil {
			continue
		}
		node := root.Attach(path, "", nil)
		for method, op := range item.Operations() {
			if op == nil {
				continue
			}
			node.Operations[strings.ToUpper(method)] = buildOperation(conv, path, method, op)
		}
	}
	return root, nil
}

// ServiceRoot returns the first server URL declared by the document, without a trailing slash
func ServiceRoot(doc *openapi3.T) string {
	if doc == nil {
		return ""
	}
	for _, s := range doc.Servers {
		if s != nil && s.URL != "" {
			return strings.TrimSuffix(s.URL, "/")
		}
	}
	return ""
}

func buildOperation(conv *schemaConverter, path, method string, op *openapi3.Operation) *Operation {
	components := SplitPath(path)
	last := ""
	if len(components) > 0 {
		last = components[len(components)-1]
	}

	out := &Operation{
		OperationID: op.OperationID,
		Kind:        operationKind(op, last, method),
		RequestType: ir.TypeRef{Kind: ir.KindUnknown},
		NoContent:   !hasResponseContent(op),
	}

	if op.RequestBody == nil || op.RequestBody.Value == nil {
		return out
	}
	content := op.RequestBody.Value.Content
	hint := utils.ToPascalCase(utils.TrimNamespace(strings.SplitN(last, "(", 2)[0])) +
		utils.ToPascalCase(method) + "RequestBody"

	if media := content.Get("application/json"); media != nil {
		out.RequestContentType = "application/json"
		out.RequestType, _ = conv.typeRef(media.Schema, hint)
		return out
	}
	// Fall back to the first media type in a stable order
	types := make([]string, 0, len(content))
	for ct := range content {
		types = append(types, ct)
	}
	sort.Strings(types)
	for _, ct := range types {
		out.RequestContentType = ct
		out.RequestType, _ = conv.typeRef(content[ct].Schema, hint)
		if !strings.Contains(ct, "json") && out.RequestType.Kind != ir.KindObject {
			out.RequestType = ir.TypeRef{Kind: ir.KindBinary}
		}
		break
	}
	return out
}

// operationKind classifies an operation, preferring the explicit extension and
// falling back to tags and namespace-qualified path components.
func operationKind(op *openapi3.Operation, lastComponent, method string) OperationKind {
	if v, ok := op.Extensions[operationTypeExtension].(string); ok {
		switch strings.ToLower(v) {
		case "action":
			return KindAction
		case "function":
			return KindFunction
		case "operation":
			return KindOperation
		}
	}
	for _, tag := range op.Tags {
		switch {
		case strings.HasSuffix(tag, ".Actions"):
			return KindAction
		case strings.HasSuffix(tag, ".Functions"):
			return KindFunction
		}
	}
	if !IsPlaceholder(lastComponent) && strings.Contains(strings.SplitN(lastComponent, "(", 2)[0], ".") {
		if strings.EqualFold(method, "GET") {
			return KindFunction
		}
		return KindAction
	}
	return KindOperation
}

// hasResponseContent reports whether any success response declares a body
func hasResponseContent(op *openapi3.Operation) bool {
	if op.Responses == nil {
		return false
	}
	for code, rr := range op.Responses.Map() {
		if rr == nil || rr.Value == nil {
			continue
		}
		if code == "204" {
			continue
		}
		if (len(code) == 3 && code[0] == '2') || code == "2XX" {
			if len(rr.Value.Content) > 0 {
				return true
			}
		}
	}
	return false
}
