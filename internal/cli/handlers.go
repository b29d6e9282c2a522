package cli

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/blimu-dev/snippet-gen/pkg/config"
)

// NewLogger builds the slog logger described by cfg, writing to w
func NewLogger(cfg config.Logging, w io.Writer) *slog.Logger {
	level := slog.LevelInfo
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	opts := &slog.HandlerOptions{Level: level}
	if strings.EqualFold(cfg.Format, "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// readInput resolves a command-line value: "-" reads in, "@path" reads a file,
// anything else is used as is.
func readInput(arg string, in io.Reader) ([]byte, error) {
	switch {
	case arg == "-":
		if in == nil {
			in = os.Stdin
		}
		return io.ReadAll(in)
	case strings.HasPrefix(arg, "@"):
		return os.ReadFile(absPath(strings.TrimPrefix(arg, "@")))
	}
	return []byte(arg), nil
}

// parseHeaders turns "Name: value" pairs into a header map
func parseHeaders(pairs []string) (http.Header, error) {
	headers := make(http.Header, len(pairs))
	for _, pair := range pairs {
		name, value, ok := strings.Cut(pair, ":")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid header %q, expected \"Name: value\"", pair)
		}
		headers.Add(name, strings.TrimSpace(value))
	}
	return headers, nil
}

// utility
func absPath(p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	abs, _ := filepath.Abs(p)
	return abs
}
