package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

var validate = validator.New()

// Config represents the complete configuration for snippet generation
type Config struct {
	// Spec is the OpenAPI description, a local path or an HTTP(S) URL
	Spec string `yaml:"spec" mapstructure:"spec" validate:"required"`
	// ServiceRoot overrides the first servers[] URL of the description
	ServiceRoot string `yaml:"serviceRoot" mapstructure:"serviceRoot" validate:"omitempty,url"`
	// Languages restricts generation to these language identifiers; empty means all
	Languages []string `yaml:"languages" mapstructure:"languages" validate:"dive,required"`
	Server    Server   `yaml:"server" mapstructure:"server"`
	Logging   Logging  `yaml:"logging" mapstructure:"logging"`
}

// Server configures the HTTP surface
type Server struct {
	Addr string `yaml:"addr" mapstructure:"addr" validate:"required"`
}

// Logging configures the slog handler
type Logging struct {
	Level  string `yaml:"level" mapstructure:"level" validate:"oneof=debug info warn error"`
	Format string `yaml:"format" mapstructure:"format" validate:"oneof=text json"`
}

// Default returns a configuration with every optional field set
func Default() *Config {
	return &Config{
		Server:  Server{Addr: ":8080"},
		Logging: Logging{Level: "info", Format: "text"},
	}
}

// Load loads configuration from a YAML file, applies defaults and validates it
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	cfg.ApplyDefaults()
	cfg.Spec = ResolveSpecPath(cfg.Spec)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyDefaults fills empty optional fields
func (c *Config) ApplyDefaults() {
	def := Default()
	if c.Server.Addr == "" {
		c.Server.Addr = def.Server.Addr
	}
	if c.Logging.Level == "" {
		c.Logging.Level = def.Logging.Level
	}
	if c.Logging.Format == "" {
		c.Logging.Format = def.Logging.Format
	}
	c.Logging.Level = strings.ToLower(c.Logging.Level)
	c.Logging.Format = strings.ToLower(c.Logging.Format)
}

// Validate checks the configuration, reporting every invalid field
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var valErrs validator.ValidationErrors
	if !errors.As(err, &valErrs) {
		return err
	}
	msgs := make([]string, 0, len(valErrs))
	for _, ve := range valErrs {
		msgs = append(msgs, fmt.Sprintf("%s: %s", fieldPath(ve), formatValidationError(ve)))
	}
	return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
}

// fieldPath drops the root struct name: "Config.Logging.Level" -> "logging.level"
func fieldPath(ve validator.FieldError) string {
	ns := ve.Namespace()
	if _, rest, ok := strings.Cut(ns, "."); ok {
		ns = rest
	}
	parts := strings.Split(ns, ".")
	for i, p := range parts {
		parts[i] = strings.ToLower(p[:1]) + p[1:]
	}
	return strings.Join(parts, ".")
}

func formatValidationError(ve validator.FieldError) string {
	switch ve.Tag() {
	case "required":
		return "required"
	case "url":
		return "must be a valid URL"
	case "oneof":
		return fmt.Sprintf("must be one of: %s", ve.Param())
	}
	return fmt.Sprintf("failed %s validation", ve.Tag())
}

// ResolveSpecPath makes a local spec path absolute; URLs are kept as-is
func ResolveSpecPath(spec string) string {
	if spec == "" {
		return spec
	}
	if u, err := url.Parse(spec); err == nil && (u.Scheme == "http" || u.Scheme == "https") {
		return spec
	}
	if !filepath.IsAbs(spec) {
		if abs, err := filepath.Abs(spec); err == nil {
			return abs
		}
	}
	return spec
}
