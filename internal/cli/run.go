package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"

	"github.com/gin-gonic/gin"

	"github.com/blimu-dev/snippet-gen/internal/server"
	"github.com/blimu-dev/snippet-gen/pkg/config"
	"github.com/blimu-dev/snippet-gen/pkg/generator"
	"github.com/blimu-dev/snippet-gen/pkg/openapi"
)

type RunGenerateParams struct {
	Config *config.Config
	Method string
	URL    string
	// Headers are "Name: value" pairs
	Headers []string
	// Body is a literal, "@path" or "-" for standard input
	Body string
	// Raw names a file holding a complete HTTP request, or "-" for standard input.
	// It replaces Method, URL, Headers and Body.
	Raw string
	// Languages overrides the configured languages
	Languages []string
	Out       io.Writer
	In        io.Reader
	Logger    *slog.Logger
}

func RunValidate(input string, out io.Writer) error {
	if input == "" {
		return errors.New("--spec is required")
	}
	if err := openapi.ValidateDocument(input); err != nil {
		return err
	}
	if out != nil {
		fmt.Fprintf(out, "%s is valid\n", input)
	}
	return nil
}

func RunLanguages(out io.Writer) error {
	for _, lang := range generator.Languages() {
		if _, err := fmt.Fprintln(out, lang); err != nil {
			return err
		}
	}
	return nil
}

func RunGenerate(p RunGenerateParams) error {
	if p.Config == nil {
		return errors.New("configuration is required")
	}
	cfg := *p.Config
	if len(p.Languages) > 0 {
		cfg.Languages = p.Languages
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	req, err := buildRequest(p)
	if err != nil {
		return err
	}

	svc := generator.NewService()
	if p.Logger != nil {
		svc.WithLogger(p.Logger)
	}
	snippets, err := svc.GenerateFromConfig(&cfg, req)
	if err != nil {
		return err
	}

	out := p.Out
	if out == nil {
		out = os.Stdout
	}
	return writeSnippets(out, snippets)
}

func buildRequest(p RunGenerateParams) (*generator.Request, error) {
	if p.Raw != "" {
		path := p.Raw
		if path != "-" {
			path = "@" + path
		}
		raw, err := readInput(path, p.In)
		if err != nil {
			return nil, fmt.Errorf("failed to read raw request: %w", err)
		}
		return generator.ParseRawRequest(raw)
	}

	if p.URL == "" {
		return nil, errors.New("either --url or --raw must be provided")
	}
	headers, err := parseHeaders(p.Headers)
	if err != nil {
		return nil, err
	}
	req := &generator.Request{Method: p.Method, URL: p.URL, Headers: headers}
	if p.Body != "" {
		body, err := readInput(p.Body, p.In)
		if err != nil {
			return nil, fmt.Errorf("failed to read body: %w", err)
		}
		req.Body = body
	}
	return req, nil
}

// writeSnippets prints one snippet as is, several under a banner per language
func writeSnippets(out io.Writer, snippets map[string]string) error {
	langs := make([]string, 0, len(snippets))
	for lang := range snippets {
		langs = append(langs, lang)
	}
	sort.Strings(langs)

	for i, lang := range langs {
		if len(langs) > 1 {
			if i > 0 {
				fmt.Fprintln(out)
			}
			fmt.Fprintf(out, "==> %s <==\n", lang)
		}
		if _, err := io.WriteString(out, snippets[lang]); err != nil {
			return err
		}
	}
	return nil
}

func RunServe(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	if cfg == nil {
		return errors.New("configuration is required")
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Logging.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	tree, err := openapi.LoadTree(cfg.Spec)
	if err != nil {
		return err
	}
	logger.Info("loaded API description", "spec", cfg.Spec, "serviceRoot", tree.ServiceRoot)

	srv := server.New(server.Options{
		Tree:        tree,
		ServiceRoot: cfg.ServiceRoot,
		Languages:   cfg.Languages,
		Logger:      logger,
	})
	return srv.Run(ctx, cfg.Server.Addr)
}
