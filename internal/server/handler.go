package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/schema"

	"github.com/blimu-dev/snippet-gen/pkg/generator"
)

var (
	validate      = validator.New()
	schemaDecoder = schema.NewDecoder()
)

func init() {
	schemaDecoder.IgnoreUnknownKeys(true)
}

// SnippetRequest is the body of POST /api/snippets. Either URL or Raw is required.
type SnippetRequest struct {
	Method  string            `json:"method" validate:"omitempty,alpha"`
	URL     string            `json:"url" validate:"required_without=Raw"`
	Headers map[string]string `json:"headers"`
	// Body is any JSON value; a JSON string is used verbatim as the request body
	Body     json.RawMessage `json:"body"`
	Language string          `json:"language"`
	// Raw is a complete request in HTTP message form, used instead of the fields above
	Raw string `json:"raw"`
}

// snippetQuery is the query string of GET /api/snippets
type snippetQuery struct {
	Method   string `schema:"method" validate:"omitempty,alpha"`
	URL      string `schema:"url" validate:"required"`
	Body     string `schema:"body"`
	Language string `schema:"language"`
}

// SnippetResponse is returned for a rendered snippet
type SnippetResponse struct {
	Language string `json:"language"`
	Snippet  string `json:"snippet"`
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) listLanguages(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"languages": s.service.GetRegistry().GetAvailableTypes()})
}

func (s *Server) snippetFromBody(c *gin.Context) {
	var input SnippetRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}
	if err := validate.Struct(input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validationMessage(err)})
		return
	}

	req, err := input.request()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	s.render(c, req, input.Language)
}

func (s *Server) snippetFromQuery(c *gin.Context) {
	var query snippetQuery
	if err := schemaDecoder.Decode(&query, c.Request.URL.Query()); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to decode query: " + err.Error()})
		return
	}
	if err := validate.Struct(query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validationMessage(err)})
		return
	}

	req := &generator.Request{Method: query.Method, URL: query.URL, Body: []byte(query.Body)}
	s.render(c, req, query.Language)
}

func (s *Server) render(c *gin.Context, req *generator.Request, language string) {
	if s.tree == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "no API description loaded"})
		return
	}
	if language == "" {
		language = s.language
	}

	snippet, err := s.service.Snippet(req, s.serviceRoot, s.tree.Root, language)
	if err != nil {
		_ = c.Error(err)
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	gen, _ := s.service.GetRegistry().Get(language)
	c.JSON(http.StatusOK, SnippetResponse{Language: gen.GetType(), Snippet: snippet})
}

// request converts the JSON form into a generator request
func (r SnippetRequest) request() (*generator.Request, error) {
	if r.Raw != "" {
		return generator.ParseRawRequest([]byte(r.Raw))
	}

	headers := make(http.Header, len(r.Headers))
	for name, value := range r.Headers {
		headers.Set(name, value)
	}
	req := &generator.Request{Method: r.Method, URL: r.URL, Headers: headers}

	body := strings.TrimSpace(string(r.Body))
	switch {
	case body == "" || body == "null":
	case strings.HasPrefix(body, `"`):
		var text string
		if err := json.Unmarshal(r.Body, &text); err != nil {
			return nil, fmt.Errorf("invalid body: %w", err)
		}
		req.Body = []byte(text)
	default:
		req.Body = []byte(body)
	}
	return req, nil
}

// statusFor maps resolution errors to HTTP status codes
func statusFor(err error) int {
	switch {
	case errors.Is(err, generator.ErrPathNotFound):
		return http.StatusNotFound
	case errors.Is(err, generator.ErrOperationNotSupported):
		return http.StatusMethodNotAllowed
	case errors.Is(err, generator.ErrUnsupportedTarget):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func validationMessage(err error) string {
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		return err.Error()
	}
	msgs := make([]string, 0, len(errs))
	for _, e := range errs {
		field := strings.ToLower(e.Field())
		switch e.Tag() {
		case "required", "required_without":
			msgs = append(msgs, field+" is required")
		default:
			msgs = append(msgs, fmt.Sprintf("%s failed %s validation", field, e.Tag()))
		}
	}
	return strings.Join(msgs, "; ")
}
