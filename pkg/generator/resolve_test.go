package generator

import (
	"errors"
	"testing"

	"github.com/blimu-dev/snippet-gen/pkg/urltree"
)

func TestSplitURL(t *testing.T) {
	tests := []struct {
		name      string
		url       string
		root      string
		wantPath  string
		wantQuery string
		wantErr   bool
	}{
		{"absolute", serviceRoot + "/me/messages", serviceRoot, "/me/messages", "", false},
		{"trailing slash root", serviceRoot + "/me", serviceRoot + "/", "/me", "", false},
		{"case-insensitive root", "https://Graph.Microsoft.com/v1.0/me", serviceRoot, "/me", "", false},
		{"query and fragment", serviceRoot + "/users?$top=5#frag", serviceRoot, "/users", "$top=5", false},
		{"relative with version", "/v1.0/me?$select=id", serviceRoot, "/me", "$select=id", false},
		{"relative without version", "/me", serviceRoot, "/me", "", false},
		{"root only", serviceRoot, serviceRoot, "", "", false},
		{"no root configured", "https://example.com/api/items", "", "/api/items", "", false},
		{"foreign host", "https://example.com/me", serviceRoot, "", "", true},
		{"partial root match", serviceRoot + "beta/me", serviceRoot, "", "", true},
		{"no root and relative garbage", "me", "", "", "", true},
	}

	for _, test := range tests {
		path, query, err := splitURL(test.url, test.root)
		if test.wantErr {
			if !errors.Is(err, ErrPathNotFound) {
				t.Errorf("%s: expected ErrPathNotFound, got %v", test.name, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("%s: unexpected error: %v", test.name, err)
			continue
		}
		if path != test.wantPath || query != test.wantQuery {
			t.Errorf("%s: splitURL(%q) = (%q, %q), expected (%q, %q)", test.name, test.url, path, query, test.wantPath, test.wantQuery)
		}
	}
}

func TestResolvePathSegments(t *testing.T) {
	tree := loadTree(t)

	tests := []struct {
		path     string
		names    []string
		params   []string
		terminal string
	}{
		{"/me/messages", []string{"me", "messages"}, []string{"", ""}, "messages"},
		{"/me/messages/AAMkAGI2", []string{"me", "messages", "messages"}, []string{"", "", "AAMkAGI2"}, "{message-id}"},
		{"/users/$count", []string{"users", "$count"}, []string{"", ""}, "$count"},
		{"/users/jane%40contoso.com", []string{"users", "users"}, []string{"", "jane@contoso.com"}, "{user-id}"},
		{"/USERS/{user-id}", []string{"users", "users"}, []string{"", "user-id"}, "{user-id}"},
		{"/users/delta()", []string{"users", "delta"}, []string{"", ""}, "microsoft.graph.delta()"},
		{"/users/microsoft.graph.delta()", []string{"users", "delta"}, []string{"", ""}, "microsoft.graph.delta()"},
		{"/teams/t1/sendActivityNotification", []string{"teams", "teams", "sendActivityNotification"}, []string{"", "t1", ""}, "microsoft.graph.sendActivityNotification"},
	}

	for _, test := range tests {
		segments, node, err := resolvePath(tree.Root, test.path, test.path)
		if err != nil {
			t.Errorf("resolvePath(%q) failed: %v", test.path, err)
			continue
		}
		if len(segments) != len(test.names) {
			t.Errorf("resolvePath(%q) returned %d segments, expected %d", test.path, len(segments), len(test.names))
			continue
		}
		for i, s := range segments {
			if s.Name != test.names[i] || s.ParameterName != test.params[i] {
				t.Errorf("resolvePath(%q) segment %d = %+v, expected name %q param %q", test.path, i, s, test.names[i], test.params[i])
			}
			if s.IsParameterized != (test.params[i] != "") {
				t.Errorf("resolvePath(%q) segment %d IsParameterized = %v", test.path, i, s.IsParameterized)
			}
		}
		if node.Segment != test.terminal {
			t.Errorf("resolvePath(%q) ended at %q, expected %q", test.path, node.Segment, test.terminal)
		}
	}
}

func TestResolvePathPlaceholder(t *testing.T) {
	tree := loadTree(t)
	segments, _, err := resolvePath(tree.Root, "", "/me/messages/{message-id}")
	if err != nil {
		t.Fatalf("resolvePath failed: %v", err)
	}
	last := segments[len(segments)-1]
	if last.Placeholder != "message-id" || last.ParameterName != "message-id" {
		t.Errorf("last segment = %+v", last)
	}
}

func TestResolvePathNotFound(t *testing.T) {
	tree := loadTree(t)
	tests := []struct {
		path     string
		segment  string
		position int
	}{
		{"/nowhere", "nowhere", 0},
		{"/me/calendar", "calendar", 1},
		{"/users/u1/unknown", "unknown", 2},
	}

	for _, test := range tests {
		_, _, err := resolvePath(tree.Root, test.path, test.path)
		var notFound *PathNotFoundError
		if !errors.As(err, &notFound) {
			t.Errorf("resolvePath(%q): expected PathNotFoundError, got %v", test.path, err)
			continue
		}
		if notFound.Segment != test.segment || notFound.Position != test.position {
			t.Errorf("resolvePath(%q) = %+v, expected segment %q at %d", test.path, notFound, test.segment, test.position)
		}
	}
}

func TestDottedIdentifierIsNotAFunction(t *testing.T) {
	tree := loadTree(t)
	segments, node, err := resolvePath(tree.Root, "/users/john.delta", "/users/john.delta")
	if err != nil {
		t.Fatalf("resolvePath failed: %v", err)
	}
	if !node.IsParameter() || segments[1].ParameterName != "john.delta" {
		t.Errorf("expected the user-id placeholder, got %q with %+v", node.Segment, segments[1])
	}
}

func TestMatchChildPrefersLiterals(t *testing.T) {
	root := urltree.New()
	root.Attach("/items/{item-id}", "GET", &urltree.Operation{})
	root.Attach("/items/recent", "GET", &urltree.Operation{})
	items := root.Children["items"]

	child, ok := matchChild(items, "recent")
	if !ok || child.Segment != "recent" {
		t.Errorf("matchChild(recent) = %v, expected the literal", child)
	}
	child, ok = matchChild(items, "RECENT")
	if !ok || child.Segment != "recent" {
		t.Errorf("matchChild(RECENT) = %v, expected the literal", child)
	}
	child, ok = matchChild(items, "other")
	if !ok || child.Segment != "{item-id}" {
		t.Errorf("matchChild(other) = %v, expected the placeholder", child)
	}
}

func TestFunctionName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"messages", "messages"},
		{"microsoft.graph.delta()", "delta"},
		{"microsoft.graph.reminderView(StartDateTime='x.y')", "reminderView"},
		{"sendMail", "sendMail"},
	}

	for _, test := range tests {
		if got := functionName(test.input); got != test.expected {
			t.Errorf("functionName(%q) = %q, expected %q", test.input, got, test.expected)
		}
	}
}

func TestResolveOperation(t *testing.T) {
	tree := loadTree(t)
	tests := []struct {
		method       string
		path         string
		namedAction  bool
		actionName   string
		returnsValue bool
		hasSchema    bool
		wantErr      bool
	}{
		{"get", "/me/messages", false, "", true, false, false},
		{"POST", "/users", false, "", true, true, false},
		{"DELETE", "/users/u1", false, "", false, false, false},
		{"PATCH", "/me/messages/m1", false, "", true, true, false},
		{"GET", "/users/delta()", true, "Delta", true, false, false},
		{"POST", "/teams/t1/sendActivityNotification", true, "SendActivityNotification", true, true, false},
		{"PUT", "/applications/a1/logo", false, "", true, false, false},
		{"POST", "/me", false, "", false, false, true},
	}

	for _, test := range tests {
		segments, node, err := resolvePath(tree.Root, test.path, test.path)
		if err != nil {
			t.Fatalf("resolvePath(%q) failed: %v", test.path, err)
		}
		desc, _, err := resolveOperation(node, test.method, test.path, segments)
		if test.wantErr {
			if !errors.Is(err, ErrOperationNotSupported) {
				t.Errorf("%s %s: expected ErrOperationNotSupported, got %v", test.method, test.path, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("%s %s: unexpected error: %v", test.method, test.path, err)
			continue
		}
		if desc.IsNamedAction != test.namedAction || desc.ActionName != test.actionName {
			t.Errorf("%s %s: named action = (%v, %q), expected (%v, %q)", test.method, test.path, desc.IsNamedAction, desc.ActionName, test.namedAction, test.actionName)
		}
		if desc.ReturnsValue != test.returnsValue {
			t.Errorf("%s %s: ReturnsValue = %v", test.method, test.path, desc.ReturnsValue)
		}
		if (desc.RequestSchema != nil) != test.hasSchema {
			t.Errorf("%s %s: RequestSchema = %v", test.method, test.path, desc.RequestSchema)
		}
	}
}

func TestNamespace(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"delta()", ""},
		{"microsoft.graph.delta()", "microsoft.graph"},
		{"microsoft.graph.reminderView(StartDateTime='x.y')", "microsoft.graph"},
		{"john.delta", "john"},
	}

	for _, test := range tests {
		if got := namespace(test.input); got != test.expected {
			t.Errorf("namespace(%q) = %q, expected %q", test.input, got, test.expected)
		}
	}
}
