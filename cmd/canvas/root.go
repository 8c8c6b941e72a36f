package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-canvas/internal/config"
	"github.com/goliatone/go-canvas/pkg/canvasapi"
)

var (
	cfgFile     string
	username    string
	password    string
	bearerToken string
	verbose     bool
)

// rootCmd is the application entry point.
var rootCmd = &cobra.Command{
	Use:   "canvas",
	Short: "Retrieve GoCanvas forms and submissions and downgrade them to the v2 format",
	Long: `canvas talks to the GoCanvas API v3 to list and fetch forms and
submissions, and converts submission documents from the v3 wire format into
the legacy v2 shape consumed by downstream systems.`,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		setupLogging()
	},
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		slog.Error("command failed", "error", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is "+config.DefaultFile+")")
	rootCmd.PersistentFlags().StringVarP(&username, "username", "u", "", "GoCanvas username for Basic auth")
	rootCmd.PersistentFlags().StringVarP(&password, "password", "p", "", "GoCanvas password for Basic auth")
	rootCmd.PersistentFlags().StringVar(&bearerToken, "bearer-token", "", "OAuth bearer token (alternative to username/password)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

func setupLogging() {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)
}

// loadConfig merges the config file with command-line overrides.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return config.Config{}, err
	}
	if username != "" {
		cfg.Username = username
	}
	if password != "" {
		cfg.Password = password
	}
	if bearerToken != "" {
		cfg.BearerToken = bearerToken
	}
	return cfg, nil
}

// newClient resolves credentials (prompting interactively when missing) and
// constructs the API client.
func newClient() (*canvasapi.Client, config.Config, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, config.Config{}, err
	}
	if !cfg.HasAuth() {
		cfg, err = promptCredentials(cfg)
		if err != nil {
			return nil, config.Config{}, err
		}
	}
	if !cfg.HasAuth() {
		return nil, config.Config{}, fmt.Errorf("authentication required: provide --bearer-token or --username/--password, or fill in %s", config.DefaultFile)
	}

	client, err := canvasapi.New(
		canvasapi.WithCredentials(cfg.Username, cfg.Password),
		canvasapi.WithBearerToken(cfg.BearerToken),
	)
	if err != nil {
		return nil, config.Config{}, err
	}
	return client, cfg, nil
}
