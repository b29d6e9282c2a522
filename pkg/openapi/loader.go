package openapi

import (
	"context"
	"fmt"
	"net/url"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/blimu-dev/snippet-gen/pkg/urltree"
)

func init() {
	// Source positions let the tree builder keep properties in declared order.
	openapi3.IncludeOrigin = true
}

// LoadDocument loads an OpenAPI document from a local file path or an HTTP(S) URL
func LoadDocument(input string) (*openapi3.T, error) {
	return LoadDocumentWithLoader(newLoader(), input)
}

// LoadDocumentWithLoader loads an OpenAPI document using a custom loader
func LoadDocumentWithLoader(loader *openapi3.Loader, input string) (*openapi3.T, error) {
	if u, err := url.Parse(input); err == nil && (u.Scheme == "http" || u.Scheme == "https") {
		return loader.LoadFromURI(u)
	}
	return loader.LoadFromFile(input)
}

// ValidateDocument loads and validates an OpenAPI document
func ValidateDocument(input string) error {
	loader := newLoader()
	doc, err := LoadDocumentWithLoader(loader, input)
	if err != nil {
		return err
	}
	ctx := loader.Context
	if ctx == nil {
		ctx = context.Background()
	}
	return doc.Validate(ctx)
}

// Tree is a path tree built from a document, together with the document's service root
type Tree struct {
	Root        *urltree.Node
	ServiceRoot string
}

// LoadTree loads a document and builds the path tree that requests resolve against
func LoadTree(input string) (*Tree, error) {
	doc, err := LoadDocument(input)
	if err != nil {
		return nil, fmt.Errorf("failed to load OpenAPI spec: %w", err)
	}
	root, err := urltree.FromDocument(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to build path tree: %w", err)
	}
	return &Tree{Root: root, ServiceRoot: urltree.ServiceRoot(doc)}, nil
}

func newLoader() *openapi3.Loader {
	return &openapi3.Loader{IsExternalRefsAllowed: true}
}
