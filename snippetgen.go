// Package snippetgen turns concrete HTTP requests into SDK code snippets.
//
// A request (method, URL, headers, JSON body) is resolved against the path tree
// of an OpenAPI description and rendered as idiomatic client code for one of
// the supported languages: C#, Go, TypeScript and Python.
//
// Quick Start:
//
//	import "github.com/blimu-dev/snippet-gen"
//
//	snippet, err := snippetgen.GenerateSnippet(snippetgen.GenerateSnippetOptions{
//		Spec:     "./graph.yaml",
//		Method:   "GET",
//		URL:      "https://graph.microsoft.com/v1.0/me/messages",
//		Language: "csharp",
//	})
//
// For more advanced usage, see the generator package.
package snippetgen

import (
	"github.com/blimu-dev/snippet-gen/pkg/generator"
)

// GenerateSnippetOptions contains options for snippet generation
type GenerateSnippetOptions = generator.GenerateSnippetOptions

// Request is a concrete HTTP request
type Request = generator.Request

// GenerateSnippet renders one request in one language.
//
// Example:
//
//	snippet, err := snippetgen.GenerateSnippet(snippetgen.GenerateSnippetOptions{
//		Spec:     "./graph.yaml",
//		Method:   "POST",
//		URL:      "/v1.0/users",
//		Body:     []byte(`{"accountEnabled": true}`),
//		Language: "go",
//	})
func GenerateSnippet(opts GenerateSnippetOptions) (string, error) {
	return generator.GenerateSnippet(opts)
}

// GenerateFromConfig renders req for every language named by a YAML configuration file.
// The result is keyed by language identifier.
//
// Example:
//
//	snippets, err := snippetgen.GenerateFromConfig("./snippetgen.yaml", &snippetgen.Request{
//		Method: "GET",
//		URL:    "https://graph.microsoft.com/v1.0/me",
//	})
func GenerateFromConfig(configPath string, req *Request) (map[string]string, error) {
	return generator.GenerateFromConfig(configPath, req)
}

// ParseRawRequest parses a request written in HTTP/1.1 message form
func ParseRawRequest(raw []byte) (*Request, error) {
	return generator.ParseRawRequest(raw)
}

// ValidateSpec validates an OpenAPI description file.
// This is useful for checking a description before serving snippets from it.
//
// Example:
//
//	err := snippetgen.ValidateSpec("./graph.yaml")
//	if err != nil {
//		log.Fatalf("Invalid OpenAPI description: %v", err)
//	}
func ValidateSpec(specPath string) error {
	return generator.ValidateSpec(specPath)
}

// Languages returns the supported target language identifiers
func Languages() []string {
	return generator.Languages()
}
