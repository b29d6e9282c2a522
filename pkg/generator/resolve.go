package generator

import (
	"net/url"
	"strings"

	"github.com/blimu-dev/snippet-gen/pkg/ir"
	"github.com/blimu-dev/snippet-gen/pkg/urltree"
	"github.com/blimu-dev/snippet-gen/pkg/utils"
)

// splitURL removes the service root from rawURL and returns the remaining path and
// the raw query string.
func splitURL(rawURL, serviceRoot string) (string, string, error) {
	target, _, _ := strings.Cut(rawURL, "#")
	target, query, _ := strings.Cut(target, "?")
	root := strings.TrimSuffix(serviceRoot, "/")

	switch {
	case root != "" && hasPrefixFold(target, root):
		rest := target[len(root):]
		if rest != "" && !strings.HasPrefix(rest, "/") {
			return "", "", &PathNotFoundError{URL: rawURL}
		}
		return rest, query, nil
	case strings.HasPrefix(target, "/"):
		// Relative requests may still carry the root's path, e.g. "/v1.0/me"
		if u, err := url.Parse(root); err == nil && u.Path != "" && hasPrefixFold(target, u.Path) {
			rest := target[len(u.Path):]
			if rest == "" || rest[0] == '/' {
				return rest, query, nil
			}
		}
		return target, query, nil
	case root == "":
		u, err := url.Parse(target)
		if err != nil || u.Host == "" {
			return "", "", &PathNotFoundError{URL: rawURL}
		}
		return u.EscapedPath(), query, nil
	}
	return "", "", &PathNotFoundError{URL: rawURL}
}

func hasPrefixFold(s, prefix string) bool {
	return len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix)
}

// resolvePath walks the tree one URL component at a time. At every depth a literal
// child wins over a parameter placeholder.
func resolvePath(tree *urltree.Node, rawURL, path string) ([]ir.PathSegment, *urltree.Node, error) {
	components := urltree.SplitPath(path)
	segments := make([]ir.PathSegment, 0, len(components))
	node := tree

	for i, raw := range components {
		component, err := url.PathUnescape(raw)
		if err != nil {
			component = raw
		}
		child, ok := matchChild(node, component)
		if !ok {
			return nil, nil, &PathNotFoundError{URL: rawURL, Segment: component, Position: i}
		}

		if child.IsParameter() {
			name := child.Placeholder()
			if len(segments) > 0 {
				name = segments[len(segments)-1].Name
			}
			segments = append(segments, ir.PathSegment{
				Name:            name,
				IsParameterized: true,
				ParameterName:   strings.TrimSuffix(strings.TrimPrefix(component, "{"), "}"),
				Placeholder:     child.Placeholder(),
			})
		} else {
			segments = append(segments, ir.PathSegment{Name: functionName(child.Segment)})
		}
		node = child
	}
	return segments, node, nil
}

// matchChild picks the child of node matching a URL component. Precedence:
// exact key, case-insensitive literal, namespace-qualified literal or function
// name (for qualified keys only), and finally the first parameter placeholder.
func matchChild(node *urltree.Node, component string) (*urltree.Node, bool) {
	if child, ok := node.Children[component]; ok {
		return child, true
	}

	keys := node.ChildKeys()
	for _, key := range keys {
		if !urltree.IsPlaceholder(key) && strings.EqualFold(key, component) {
			return node.Children[key], true
		}
	}

	wanted := functionName(component)
	for _, key := range keys {
		if urltree.IsPlaceholder(key) || !isQualified(key) {
			continue
		}
		if ns := namespace(component); ns != "" && !strings.EqualFold(ns, namespace(key)) {
			continue
		}
		if strings.EqualFold(utils.TrimNamespace(key), utils.TrimNamespace(component)) ||
			strings.EqualFold(functionName(key), wanted) {
			return node.Children[key], true
		}
	}

	for _, key := range keys {
		if urltree.IsPlaceholder(key) {
			return node.Children[key], true
		}
	}
	return nil, false
}

// functionName strips the namespace and any argument list: "microsoft.graph.delta()" -> "delta"
func functionName(component string) string {
	name, _, _ := strings.Cut(component, "(")
	return utils.TrimNamespace(name)
}

// namespace returns the qualifier in front of a name: "microsoft.graph.delta()" -> "microsoft.graph"
func namespace(component string) string {
	name, _, _ := strings.Cut(component, "(")
	if i := strings.LastIndex(name, "."); i >= 0 {
		return name[:i]
	}
	return ""
}

// isQualified reports whether a tree key carries a namespace or an argument list
func isQualified(key string) bool {
	name, _, hasArgs := strings.Cut(key, "(")
	return hasArgs || strings.Contains(name, ".")
}
