// Package urltree holds the path tree that requests are resolved against:
// a trie of URL path components (literal or parameter placeholder) with the
// operations declared at each node.
//
// A tree is built once and then only read, so a single tree may be shared by
// any number of concurrent resolutions.
package urltree

import (
	"sort"
	"strings"

	"github.com/blimu-dev/snippet-gen/pkg/ir"
)

// OperationKind distinguishes plain resource access from bound actions and functions
type OperationKind string

const (
	KindOperation OperationKind = "operation"
	KindAction    OperationKind = "action"
	KindFunction  OperationKind = "function"
)

// Operation is the descriptor declared for one HTTP method at a node
type Operation struct {
	OperationID string
	Kind        OperationKind
	// RequestType is the semantic type of the request body; Kind is KindUnknown when
	// the operation declares no body.
	RequestType        ir.TypeRef
	RequestContentType string
	// NoContent is true when no success response declares a body
	NoContent bool
}

// Node is one path component in the tree
type Node struct {
	Segment    string
	Children   map[string]*Node
	Operations map[string]*Operation
}

// New returns an empty tree root
func New() *Node {
	return &Node{
		Children:   make(map[string]*Node),
		Operations: make(map[string]*Operation),
	}
}

// Attach registers op for method at path, creating intermediate nodes as needed,
// and returns the terminal node.
func (n *Node) Attach(path, method string, op *Operation) *Node {
	current := n
	for _, component := range SplitPath(path) {
		child, ok := current.Children[component]
		if !ok {
			child = New()
			child.Segment = component
			current.Children[component] = child
		}
		current = child
	}
	if op != nil {
		if op.Kind == "" {
			op.Kind = KindOperation
		}
		current.Operations[strings.ToUpper(method)] = op
	}
	return current
}

// Operation returns the operation declared for method
func (n *Node) Operation(method string) (*Operation, bool) {
	op, ok := n.Operations[strings.ToUpper(method)]
	return op, ok
}

// IsParameter reports whether the node is a parameter placeholder such as "{user-id}"
func (n *Node) IsParameter() bool {
	return IsPlaceholder(n.Segment)
}

// Placeholder returns the placeholder identifier without braces
func (n *Node) Placeholder() string {
	return strings.TrimSuffix(strings.TrimPrefix(n.Segment, "{"), "}")
}

// ChildKeys returns the child keys in a stable order
func (n *Node) ChildKeys() []string {
	keys := make([]string, 0, len(n.Children))
	for k := range n.Children {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// IsPlaceholder reports whether a path component is a "{name}" placeholder
func IsPlaceholder(component string) bool {
	return len(component) > 2 && strings.HasPrefix(component, "{") && strings.HasSuffix(component, "}")
}

// SplitPath splits a path into its non-empty components
func SplitPath(path string) []string {
	parts := strings.Split(path, "/")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
