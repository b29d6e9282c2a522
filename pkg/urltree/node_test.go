package urltree

import (
	"reflect"
	"testing"
)

// find walks literal keys only and returns the node at path
func find(n *Node, path string) (*Node, bool) {
	current := n
	for _, component := range SplitPath(path) {
		child, ok := current.Children[component]
		if !ok {
			return nil, false
		}
		current = child
	}
	return current, true
}

func TestAttach(t *testing.T) {
	root := New()
	root.Attach("/me/messages", "get", &Operation{OperationID: "me.ListMessages"})
	root.Attach("/me/messages/{message-id}", "DELETE", &Operation{OperationID: "me.DeleteMessages", NoContent: true})
	root.Attach("/users/{user-id}", "get", nil)

	node, ok := find(root, "/me/messages")
	if !ok {
		t.Fatalf("find(/me/messages) failed")
	}
	op, ok := node.Operation("GET")
	if !ok || op.OperationID != "me.ListMessages" {
		t.Errorf("Operation(GET) = %+v, %v", op, ok)
	}
	if op.Kind != KindOperation {
		t.Errorf("default kind = %q, expected %q", op.Kind, KindOperation)
	}

	item, ok := find(root, "me/messages/{message-id}/")
	if !ok {
		t.Fatalf("find with stray slashes failed")
	}
	if !item.IsParameter() || item.Placeholder() != "message-id" {
		t.Errorf("parameter node = %q, placeholder %q", item.Segment, item.Placeholder())
	}
	if _, ok := item.Operation("delete"); !ok {
		t.Errorf("method lookup should be case-insensitive")
	}

	user, ok := find(root, "/users/{user-id}")
	if !ok {
		t.Fatalf("find(/users/{user-id}) failed")
	}
	if len(user.Operations) != 0 {
		t.Errorf("nil operation should only create nodes, got %d operations", len(user.Operations))
	}

	if _, ok := find(root, "/me/events"); ok {
		t.Errorf("find(/me/events) should fail")
	}
}

func TestChildKeysSorted(t *testing.T) {
	root := New()
	for _, p := range []string{"/users", "/me", "/teams", "/applications"} {
		root.Attach(p, "", nil)
	}
	expected := []string{"applications", "me", "teams", "users"}
	if got := root.ChildKeys(); !reflect.DeepEqual(got, expected) {
		t.Errorf("ChildKeys() = %v, expected %v", got, expected)
	}
}

func TestIsPlaceholder(t *testing.T) {
	tests := []struct {
		input    string
		expected bool
	}{
		{"{user-id}", true},
		{"{}", false},
		{"users", false},
		{"{open", false},
		{"microsoft.graph.delta()", false},
	}

	for _, test := range tests {
		if got := IsPlaceholder(test.input); got != test.expected {
			t.Errorf("IsPlaceholder(%q) = %v, expected %v", test.input, got, test.expected)
		}
	}
}

func TestSplitPath(t *testing.T) {
	tests := []struct {
		input    string
		expected []string
	}{
		{"", []string{}},
		{"/", []string{}},
		{"/me/messages", []string{"me", "messages"}},
		{"//users//{user-id}/", []string{"users", "{user-id}"}},
	}

	for _, test := range tests {
		if got := SplitPath(test.input); !reflect.DeepEqual(got, test.expected) {
			t.Errorf("SplitPath(%q) = %v, expected %v", test.input, got, test.expected)
		}
	}
}
