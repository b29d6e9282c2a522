package generator

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/blimu-dev/snippet-gen/pkg/config"
	"github.com/blimu-dev/snippet-gen/pkg/generator/csharp"
	"github.com/blimu-dev/snippet-gen/pkg/generator/golang"
	"github.com/blimu-dev/snippet-gen/pkg/generator/python"
	"github.com/blimu-dev/snippet-gen/pkg/generator/typescript"
	"github.com/blimu-dev/snippet-gen/pkg/ir"
	"github.com/blimu-dev/snippet-gen/pkg/openapi"
	"github.com/blimu-dev/snippet-gen/pkg/urltree"
)

// Generator renders a snippet model into source text for one target language.
// Implementations must be stateless: the same model always yields the same text.
type Generator interface {
	// Generate renders the snippet for model
	Generate(model *ir.SnippetModel) (string, error)
	// GetType returns the language identifier for this generator (e.g., "csharp")
	GetType() string
}

// aliases maps alternative spellings to registered language identifiers
var aliases = map[string]string{
	"c#":     "csharp",
	"cs":     "csharp",
	"golang": "go",
	"ts":     "typescript",
	"py":     "python",
}

// Registry manages available generators
type Registry struct {
	generators map[string]Generator
}

// NewRegistry creates a new generator registry
func NewRegistry() *Registry {
	return &Registry{
		generators: make(map[string]Generator),
	}
}

// Register adds a generator to the registry
func (r *Registry) Register(gen Generator) {
	r.generators[strings.ToLower(gen.GetType())] = gen
}

// Get retrieves a generator by language identifier or alias
func (r *Registry) Get(target string) (Generator, bool) {
	gen, exists := r.generators[normalizeTarget(target)]
	return gen, exists
}

// GetAvailableTypes returns all registered language identifiers, sorted
func (r *Registry) GetAvailableTypes() []string {
	types := make([]string, 0, len(r.generators))
	for t := range r.generators {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}

func normalizeTarget(target string) string {
	target = strings.ToLower(strings.TrimSpace(target))
	if alias, ok := aliases[target]; ok {
		return alias
	}
	return target
}

// Service resolves requests against a path tree and renders snippets
type Service struct {
	registry *Registry
	logger   *slog.Logger
}

// NewService creates a new generator service with default generators
func NewService() *Service {
	registry := NewRegistry()
	registry.Register(csharp.NewCSharpGenerator())
	registry.Register(golang.NewGoGenerator())
	registry.Register(typescript.NewTypeScriptGenerator())
	registry.Register(python.NewPythonGenerator())
	return NewServiceWithRegistry(registry)
}

// NewServiceWithRegistry creates a new generator service with a custom registry
func NewServiceWithRegistry(registry *Registry) *Service {
	return &Service{
		registry: registry,
		logger:   slog.Default(),
	}
}

// WithLogger sets the logger used for resolution diagnostics
func (s *Service) WithLogger(logger *slog.Logger) *Service {
	if logger != nil {
		s.logger = logger
	}
	return s
}

// GetRegistry returns the generator registry
func (s *Service) GetRegistry() *Registry {
	return s.registry
}

// Resolve builds the snippet model for req. It fails with a *PathNotFoundError
// when the URL does not match the tree and an *OperationNotSupportedError when
// the matched node does not declare the method. Body problems never fail.
func (s *Service) Resolve(req *Request, serviceRoot string, tree *urltree.Node) (*ir.SnippetModel, error) {
	if req == nil {
		return nil, errors.New("request is required")
	}
	if tree == nil {
		return nil, errors.New("path tree is required")
	}

	path, rawQuery, err := splitURL(req.URL, serviceRoot)
	if err != nil {
		return nil, err
	}
	segments, node, err := resolvePath(tree, req.URL, path)
	if err != nil {
		return nil, err
	}
	method := req.Method
	if method == "" {
		method = "GET"
	}
	desc, _, err := resolveOperation(node, method, path, segments)
	if err != nil {
		return nil, err
	}

	payload, valid := buildPayload(req.Body, desc.RequestType)
	if !valid {
		s.logger.Warn("request body is not valid JSON, rendering it as a string",
			"method", desc.HTTPMethod,
			"url", req.URL,
		)
	}

	model := &ir.SnippetModel{
		ServiceRoot: strings.TrimSuffix(serviceRoot, "/"),
		Segments:    segments,
		Operation:   desc,
		Payload:     payload,
		Query:       buildQuery(rawQuery),
		Headers:     buildHeaders(req.Headers),
	}

	s.logger.Debug("resolved request",
		"method", desc.HTTPMethod,
		"segments", len(segments),
		"namedAction", desc.IsNamedAction,
		"action", desc.ActionName,
		"payload", payloadKind(payload),
		"query", len(model.Query),
		"headers", len(model.Headers),
	)
	return model, nil
}

// Generate renders model with the generator registered for target
func (s *Service) Generate(model *ir.SnippetModel, target string) (string, error) {
	gen, ok := s.registry.Get(target)
	if !ok {
		return "", &UnsupportedTargetError{Target: target, Available: s.registry.GetAvailableTypes()}
	}
	out, err := gen.Generate(model)
	if err != nil {
		return "", fmt.Errorf("failed to generate %s snippet: %w", gen.GetType(), err)
	}
	return out, nil
}

// Snippet resolves req and renders it for target in one step
func (s *Service) Snippet(req *Request, serviceRoot string, tree *urltree.Node, target string) (string, error) {
	if _, ok := s.registry.Get(target); !ok {
		return "", &UnsupportedTargetError{Target: target, Available: s.registry.GetAvailableTypes()}
	}
	model, err := s.Resolve(req, serviceRoot, tree)
	if err != nil {
		return "", err
	}
	return s.Generate(model, target)
}

// GenerateFromConfig loads the description named by cfg and renders req for every
// configured language, or every registered one when the config names none.
// The result is keyed by language identifier.
func (s *Service) GenerateFromConfig(cfg *config.Config, req *Request) (map[string]string, error) {
	tree, err := openapi.LoadTree(cfg.Spec)
	if err != nil {
		return nil, err
	}
	serviceRoot := cfg.ServiceRoot
	if serviceRoot == "" {
		serviceRoot = tree.ServiceRoot
	}

	targets := cfg.Languages
	if len(targets) == 0 {
		targets = s.registry.GetAvailableTypes()
	}

	model, err := s.Resolve(req, serviceRoot, tree.Root)
	if err != nil {
		return nil, err
	}
	snippets := make(map[string]string, len(targets))
	for _, target := range targets {
		out, err := s.Generate(model, target)
		if err != nil {
			return nil, err
		}
		snippets[normalizeTarget(target)] = out
	}
	return snippets, nil
}

func payloadKind(v ir.ValueNode) string {
	switch n := v.(type) {
	case nil:
		return "none"
	case *ir.Scalar:
		return string(n.Type.Kind)
	case *ir.ObjectConstruction:
		if n.Generic {
			return "dictionary"
		}
		return n.TypeName
	case *ir.ArrayConstruction:
		return "array"
	}
	return "unknown"
}
