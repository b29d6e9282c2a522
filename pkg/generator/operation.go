package generator

import (
	"net/http"
	"strings"

	"github.com/blimu-dev/snippet-gen/pkg/ir"
	"github.com/blimu-dev/snippet-gen/pkg/urltree"
	"github.com/blimu-dev/snippet-gen/pkg/utils"
)

// resolveOperation selects the operation declared at node for method
func resolveOperation(node *urltree.Node, method, path string, segments []ir.PathSegment) (ir.OperationDescriptor, *urltree.Operation, error) {
	method = strings.ToUpper(method)
	op, ok := node.Operation(method)
	if !ok {
		return ir.OperationDescriptor{}, nil, &OperationNotSupportedError{Method: method, Path: path}
	}

	desc := ir.OperationDescriptor{
		HTTPMethod:   method,
		RequestType:  op.RequestType,
		ReturnsValue: !(method == http.MethodDelete && op.NoContent),
	}
	if op.RequestType.Kind == ir.KindObject {
		desc.RequestSchema = op.RequestType.Schema
	}
	if op.Kind != urltree.KindOperation && len(segments) > 0 && !node.IsParameter() {
		desc.IsNamedAction = true
		desc.ActionName = utils.ToPascalIdentifier(segments[len(segments)-1].Name)
	}
	return desc, op, nil
}
