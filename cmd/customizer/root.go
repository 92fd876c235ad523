package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	customizer "github.com/goliatone/go-customizer"
	"github.com/goliatone/go-customizer/pkg/scad"
)

var (
	cfgFile string
	v       *viper.Viper
	logger  *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "customizer",
	Short: "Extract parameter schemas from parametric models and render forms",
	Long: `customizer parses the annotation conventions of parametric model files
(parameter groups, value hints, units, visibility rules) into a structured
schema, and renders that schema as an HTML form, a terminal prompt flow, or
an OpenAPI description.`,
	SilenceUsage: true,
}

// Execute runs the root command. Called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./customizer.yaml)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "text", "log format (text, json)")

	mustBind("log.level", "log-level")
	mustBind("log.format", "log-format")
}

func mustBind(key, flag string) {
	if err := viper.BindPFlag(key, rootCmd.PersistentFlags().Lookup(flag)); err != nil {
		fmt.Fprintf(os.Stderr, "error binding %s flag: %v\n", flag, err)
	}
}

func initConfig() {
	v = viper.New()

	v.SetDefault("renderer", "vanilla")
	v.SetDefault("theme.name", "")
	v.SetDefault("theme.variant", "")
	v.SetDefault("http.timeout", "30s")

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("customizer")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/customizer")
	}

	v.SetEnvPrefix("CUSTOMIZER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			fmt.Fprintf(os.Stderr, "error reading config file: %v\n", err)
		}
	}

	// Log flags bind to the global viper so they work before config loads.
	logger = newLogger(viper.GetString("log.level"), viper.GetString("log.format"))
}

func newLogger(level, format string) *slog.Logger {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: lvl}
	if strings.ToLower(format) == "json" {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}

// parseSource maps a CLI argument to a document source. URLs load over HTTP,
// everything else is treated as a file path.
func parseSource(raw string) (scad.Source, error) {
	path := strings.TrimSpace(raw)
	if path == "" {
		return nil, fmt.Errorf("model source is required")
	}
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return scad.SourceFromURL(path)
	}
	return scad.SourceFromFile(path), nil
}

func newLoader() scad.Loader {
	timeout, err := time.ParseDuration(v.GetString("http.timeout"))
	if err != nil || timeout <= 0 {
		timeout = 30 * time.Second
	}
	return customizer.NewLoader(scad.WithHTTPClient(&http.Client{Timeout: timeout}))
}

// writeOutput writes data to path, or to stdout when path is empty.
func writeOutput(data []byte, path string) error {
	if path == "" {
		_, err := os.Stdout.Write(append(data, '\n'))
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %q: %w", path, err)
	}
	logger.Info("output written", "path", path, "bytes", len(data))
	return nil
}

func logWarnings(warnings []scad.Warning) {
	for _, w := range warnings {
		logger.Warn("extraction warning", "kind", w.Kind, "line", w.Line, "message", w.Message)
	}
}
