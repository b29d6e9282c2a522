package generator

import (
	"errors"
	"net/http"

	"github.com/blimu-dev/snippet-gen/pkg/config"
	"github.com/blimu-dev/snippet-gen/pkg/openapi"
)

// GenerateSnippet is a convenience function for rendering one request with minimal configuration
func GenerateSnippet(opts GenerateSnippetOptions) (string, error) {
	spec, serviceRoot := opts.Spec, opts.ServiceRoot
	if opts.ConfigPath != "" {
		cfg, err := config.Load(opts.ConfigPath)
		if err != nil {
			return "", err
		}
		if spec == "" {
			spec = cfg.Spec
		}
		if serviceRoot == "" {
			serviceRoot = cfg.ServiceRoot
		}
	}
	if spec == "" {
		return "", errors.New("an API description is required")
	}

	tree, err := openapi.LoadTree(spec)
	if err != nil {
		return "", err
	}
	if serviceRoot == "" {
		serviceRoot = tree.ServiceRoot
	}

	language := opts.Language
	if language == "" {
		language = "csharp"
	}
	req := &Request{Method: opts.Method, URL: opts.URL, Headers: opts.Headers, Body: opts.Body}
	return NewService().Snippet(req, serviceRoot, tree.Root, language)
}

// GenerateSnippetOptions contains options for the convenience GenerateSnippet function
type GenerateSnippetOptions struct {
	// ConfigPath is the path to the configuration file (optional)
	ConfigPath string

	// Spec and ServiceRoot override the configuration file when set
	Spec        string // OpenAPI description file or URL
	ServiceRoot string // Base URL stripped from request URLs

	Method   string
	URL      string
	Headers  http.Header
	Body     []byte
	Language string // Target language, "csharp" when empty
}

// GenerateFromConfig is a convenience function for rendering req in every language a config file names
func GenerateFromConfig(configPath string, req *Request) (map[string]string, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	return NewService().GenerateFromConfig(cfg, req)
}

// ValidateSpec validates an OpenAPI description
func ValidateSpec(specPath string) error {
	return openapi.ValidateDocument(specPath)
}

// Languages returns the identifiers of the built-in generators
func Languages() []string {
	return NewService().GetRegistry().GetAvailableTypes()
}
