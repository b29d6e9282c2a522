package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	cli "github.com/blimu-dev/snippet-gen/internal/cli"
	"github.com/blimu-dev/snippet-gen/pkg/config"
)

var (
	cfgFile string
	// configErr holds a failure to read an explicitly named config file
	configErr error
)

func main() {
	root := newRootCmd()
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "snippet-gen",
		Short:         "Generate SDK code snippets from HTTP requests",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cobra.OnInitialize(initConfig)

	flags := root.PersistentFlags()
	flags.StringVarP(&cfgFile, "config", "c", "", "config file (default: ./snippetgen.yaml)")
	flags.String("spec", "", "OpenAPI description file or URL")
	flags.String("service-root", "", "Base URL stripped from request URLs (default: first server URL)")
	flags.String("log-level", "", "Log level: debug, info, warn, error")
	flags.String("log-format", "", "Log format: text or json")

	_ = viper.BindPFlag("spec", flags.Lookup("spec"))
	_ = viper.BindPFlag("serviceRoot", flags.Lookup("service-root"))
	_ = viper.BindPFlag("logging.level", flags.Lookup("log-level"))
	_ = viper.BindPFlag("logging.format", flags.Lookup("log-format"))

	root.AddCommand(newGenerateCmd())
	root.AddCommand(newLanguagesCmd())
	root.AddCommand(newValidateCmd())
	root.AddCommand(newServeCmd())
	return root
}

// initConfig reads the config file and SNIPPETGEN_* environment variables
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName("snippetgen")
	}

	viper.SetEnvPrefix("SNIPPETGEN")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	def := config.Default()
	viper.SetDefault("server.addr", def.Server.Addr)
	viper.SetDefault("logging.level", def.Logging.Level)
	viper.SetDefault("logging.format", def.Logging.Format)

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			configErr = fmt.Errorf("failed to read config: %w", err)
		}
	}
}

// loadConfig assembles the configuration from file, environment and flags
func loadConfig() (*config.Config, error) {
	if configErr != nil {
		return nil, configErr
	}
	cfg := config.Default()
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	cfg.ApplyDefaults()
	if cfg.Spec != "" {
		cfg.Spec = config.ResolveSpecPath(cfg.Spec)
	}
	return cfg, nil
}

func newGenerateCmd() *cobra.Command {
	var method string
	var url string
	var headers []string
	var body string
	var raw string
	var languages []string

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Render a snippet for one HTTP request",
		Example: `  snippet-gen generate --spec graph.yaml --url https://graph.microsoft.com/v1.0/me/messages
  snippet-gen generate --spec graph.yaml -X POST --url /v1.0/users --body @user.json --lang csharp,go
  snippet-gen generate --spec graph.yaml --raw request.http`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			return cli.RunGenerate(cli.RunGenerateParams{
				Config:    cfg,
				Method:    method,
				URL:       url,
				Headers:   headers,
				Body:      body,
				Raw:       raw,
				Languages: languages,
				Out:       cmd.OutOrStdout(),
				In:        cmd.InOrStdin(),
				Logger:    cli.NewLogger(cfg.Logging, cmd.ErrOrStderr()),
			})
		},
	}

	cmd.Flags().StringVarP(&method, "method", "X", "GET", "HTTP method")
	cmd.Flags().StringVarP(&url, "url", "u", "", "Request URL, absolute or relative to the service root")
	cmd.Flags().StringArrayVarP(&headers, "header", "H", nil, `Request header as "Name: value" (repeatable)`)
	cmd.Flags().StringVarP(&body, "body", "d", "", `Request body, "@file" or "-" for stdin`)
	cmd.Flags().StringVar(&raw, "raw", "", `File holding a complete HTTP request, or "-" for stdin`)
	cmd.Flags().StringSliceVarP(&languages, "lang", "l", nil, "Target languages (default: configured languages, or all)")
	return cmd
}

func newLanguagesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "languages",
		Short: "List the supported target languages",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cli.RunLanguages(cmd.OutOrStdout())
		},
	}
}

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate an OpenAPI description",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			return cli.RunValidate(cfg.Spec, cmd.OutOrStdout())
		},
	}
}

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve snippet generation over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return cli.RunServe(ctx, cfg, cli.NewLogger(cfg.Logging, cmd.ErrOrStderr()))
		},
	}
	cmd.Flags().String("addr", "", "Listen address (default: :8080)")
	_ = viper.BindPFlag("server.addr", cmd.Flags().Lookup("addr"))
	return cmd
}
