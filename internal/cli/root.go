// Package cli defines the command-line interface for attrorder.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/codex-k8s/attrorder/internal/config"
	"github.com/codex-k8s/attrorder/internal/engine"
	"github.com/codex-k8s/attrorder/internal/logging"
)

const (
	// defaultConfigPath is the default path to the attrorder configuration file.
	defaultConfigPath = "attrorder.yaml"
)

// Options stores global CLI options shared between commands.
type Options struct {
	ConfigPath string
	ScenePath  string
	Strategy   string
	Validation string
	Quiet      bool
	ReportPath string
	LogLevel   logging.Level

	// cfg is the resolved configuration after file, env and flags are applied.
	cfg *config.Config
}

// Execute builds the root command, runs it with the provided args and logger, and returns any error.
func Execute(args []string, logger *slog.Logger) error {
	if logger == nil {
		logger = logging.NewLogger(os.Stderr, logging.LevelInfo)
	}

	rootOpts := &Options{
		ConfigPath: defaultConfigPath,
		LogLevel:   logging.LevelInfo,
	}

	rootCmd := newRootCommand(rootOpts, logger)
	rootCmd.SetArgs(args)

	return rootCmd.Execute()
}

// newRootCommand constructs the root cobra.Command with global flags and subcommands.
func newRootCommand(opts *Options, logger *slog.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "attrorder",
		Short:         "attrorder reorders user-defined attributes",
		Long:          "attrorder moves the selected user-defined attributes of the selected objects up or down by one position, preserving values and locks.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := resolveOptions(cmd, opts); err != nil {
				return err
			}
			logger = logging.NewLogger(cmd.ErrOrStderr(), opts.LogLevel)
			cmd.SetContext(context.WithValue(cmd.Context(), loggerKey{}, logger))
			logger.Debug("logger initialized", "level", opts.LogLevel, "config", opts.ConfigPath, "scene", opts.ScenePath)
			return nil
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.ConfigPath, "config", "c", defaultConfigPath, "Path to attrorder.yaml configuration file")
	cmd.PersistentFlags().String("scene", "", "Scene file override")
	cmd.PersistentFlags().String("strategy", "", "Move backend (auto, shuffle, native)")
	cmd.PersistentFlags().String("validation", "", "Selected attributes to validate (first, all)")
	cmd.PersistentFlags().Bool("quiet", true, "Suppress host command echo while attributes move")
	cmd.PersistentFlags().String("log-level", "", "Log level (debug, info, warn, error)")

	cmd.AddCommand(
		newMoveCommand(opts, engine.Up),
		newMoveCommand(opts, engine.Down),
		newListCommand(opts),
		newSelectCommand(opts),
		newSceneCommand(opts),
	)

	return cmd
}

// resolveOptions applies config file, ATTRORDER_* env and flags, in increasing precedence.
func resolveOptions(cmd *cobra.Command, opts *Options) error {
	flags := cmd.Flags()

	var base baseEnv
	if err := parseEnv(&base); err != nil {
		return fmt.Errorf("parse environment: %w", err)
	}
	configChanged := flags.Changed("config")
	if !configChanged && base.ConfigPath != "" {
		opts.ConfigPath = base.ConfigPath
	}

	cfg, vars, err := config.Load(opts.ConfigPath, config.LoadOptions{Required: configChanged || base.ConfigPath != ""})
	if err != nil {
		return err
	}

	var over overrideEnv
	if err := parseEnvFrom(&over, vars); err != nil {
		return fmt.Errorf("parse environment: %w", err)
	}
	if over.Scene != "" {
		cfg.Scene = over.Scene
	}
	if over.LogLevel != "" {
		cfg.LogLevel = over.LogLevel
	}
	if over.Strategy != "" {
		cfg.Strategy = over.Strategy
	}
	if over.Validation != "" {
		cfg.Validation = over.Validation
	}
	if quiet, ok := parseEnvBool(over.Quiet); ok {
		cfg.Quiet = &quiet
	}
	opts.ReportPath = over.Report

	for name, target := range map[string]*string{
		"scene":      &cfg.Scene,
		"strategy":   &cfg.Strategy,
		"validation": &cfg.Validation,
		"log-level":  &cfg.LogLevel,
	} {
		if flags.Changed(name) {
			*target = flags.Lookup(name).Value.String()
		}
	}
	if flags.Changed("quiet") {
		quiet, _ := flags.GetBool("quiet")
		cfg.Quiet = &quiet
	}

	if _, err := engine.ParseStrategy(cfg.Strategy); err != nil {
		return err
	}
	if _, err := engine.ParseValidation(cfg.Validation); err != nil {
		return err
	}

	opts.cfg = cfg
	opts.ScenePath = cfg.Scene
	opts.Strategy = cfg.Strategy
	opts.Validation = cfg.Validation
	opts.Quiet = cfg.QuietEnabled()
	opts.LogLevel = logging.ParseLevel(cfg.LogLevel)
	return nil
}

// loggerKey is a private context key used to store a logger in command contexts.
type loggerKey struct{}

// LoggerFromContext extracts a logger from the context or falls back to a default logger.
func LoggerFromContext(ctx context.Context) *slog.Logger {
	if ctx == nil {
		return logging.NewLogger(os.Stderr, logging.LevelInfo)
	}
	if l, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok && l != nil {
		return l
	}
	return logging.NewLogger(os.Stderr, logging.LevelInfo)
}
