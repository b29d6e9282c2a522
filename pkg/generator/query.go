package generator

import (
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/blimu-dev/snippet-gen/pkg/ir"
)

// headers that the SDK sets itself and that never appear in a snippet
var skippedHeaders = map[string]bool{
	"Host":           true,
	"Content-Type":   true,
	"Content-Length": true,
	"Authorization":  true,
}

// buildQuery turns a raw query string into parameters, keeping their URL order.
// OData list options become string arrays, $top and $skip integers, $count a boolean.
func buildQuery(raw string) []ir.QueryParameter {
	var params []ir.QueryParameter
	seen := make(map[string]bool)
	for _, pair := range strings.Split(raw, "&") {
		if pair == "" {
			continue
		}
		key, value, _ := strings.Cut(pair, "=")
		if k, err := url.QueryUnescape(key); err == nil {
			key = k
		}
		if v, err := url.QueryUnescape(value); err == nil {
			value = v
		}
		if key == "" || seen[strings.ToLower(key)] {
			continue
		}
		seen[strings.ToLower(key)] = true
		params = append(params, ir.QueryParameter{Name: key, Value: queryValue(key, value)})
	}
	return params
}

func queryValue(key, value string) ir.ValueNode {
	str := ir.TypeRef{Kind: ir.KindString}
	switch strings.ToLower(strings.TrimPrefix(key, "$")) {
	case "select", "expand", "orderby":
		arr := &ir.ArrayConstruction{ElementType: str}
		for _, item := range splitTopLevel(value) {
			arr.Elements = append(arr.Elements, &ir.Scalar{Type: str, Value: item})
		}
		return arr
	case "top", "skip":
		if _, err := strconv.ParseInt(value, 10, 32); err == nil {
			return &ir.Scalar{Type: ir.TypeRef{Kind: ir.KindInteger32}, Value: value}
		}
	case "count":
		if b, err := strconv.ParseBool(value); err == nil {
			return &ir.Scalar{Type: ir.TypeRef{Kind: ir.KindBoolean}, Value: strconv.FormatBool(b)}
		}
	}
	return &ir.Scalar{Type: str, Value: value}
}

// splitTopLevel splits on commas outside parentheses, so
// "members($select=id,displayName),owners" yields two items.
func splitTopLevel(s string) []string {
	var out []string
	depth, start := 0, 0
	for i, r := range s {
		switch r {
		case '(':
			depth++
		case ')':
			if depth > 0 {
				depth--
			}
		case ',':
			if depth == 0 {
				if item := strings.TrimSpace(s[start:i]); item != "" {
					out = append(out, item)
				}
				start = i + 1
			}
		}
	}
	if item := strings.TrimSpace(s[start:]); item != "" {
		out = append(out, item)
	}
	return out
}

// buildHeaders keeps the caller-supplied headers, sorted by name
func buildHeaders(h http.Header) []ir.Header {
	names := make([]string, 0, len(h))
	for name := range h {
		if !skippedHeaders[http.CanonicalHeaderKey(name)] {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	headers := make([]ir.Header, 0, len(names))
	for _, name := range names {
		headers = append(headers, ir.Header{Name: name, Value: strings.Join(h[name], ", ")})
	}
	return headers
}
