// Package server exposes snippet generation over HTTP.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/blimu-dev/snippet-gen/pkg/generator"
	"github.com/blimu-dev/snippet-gen/pkg/openapi"
)

// Options configures a Server
type Options struct {
	Tree *openapi.Tree
	// ServiceRoot overrides the tree's service root when set
	ServiceRoot string
	// Languages lists the targets a request without a language falls back to;
	// the first one is used.
	Languages []string
	Service   *generator.Service
	Logger    *slog.Logger
}

// Server handles snippet requests against one path tree
type Server struct {
	engine      *gin.Engine
	service     *generator.Service
	tree        *openapi.Tree
	serviceRoot string
	language    string
	logger      *slog.Logger
}

// New creates a server and registers its routes
func New(opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	service := opts.Service
	if service == nil {
		service = generator.NewService()
	}
	service.WithLogger(logger)

	serviceRoot := opts.ServiceRoot
	if serviceRoot == "" && opts.Tree != nil {
		serviceRoot = opts.Tree.ServiceRoot
	}
	language := "csharp"
	if len(opts.Languages) > 0 {
		language = opts.Languages[0]
	}

	s := &Server{
		engine:      gin.New(),
		service:     service,
		tree:        opts.Tree,
		serviceRoot: serviceRoot,
		language:    language,
		logger:      logger,
	}
	s.engine.Use(gin.Recovery())
	s.engine.Use(requestID())
	s.engine.Use(requestLogger(logger))
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.engine.GET("/healthz", s.health)

	api := s.engine.Group("/api")
	{
		api.GET("/languages", s.listLanguages)
		api.GET("/snippets", s.snippetFromQuery)
		api.POST("/snippets", s.snippetFromBody)
	}
}

// Handler returns the HTTP handler
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.engine,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
