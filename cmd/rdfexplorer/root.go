// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Sigil Contributors

package main

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/sigil-dev/rdfexplorer/internal/config"
	rdferr "github.com/sigil-dev/rdfexplorer/pkg/errors"
)

// app carries per-invocation state shared by subcommands. Each root command
// owns its own viper instance.
type app struct {
	v      *viper.Viper
	stderr io.Writer
	cfg    *config.Config
	logger *slog.Logger
}

// NewRootCmd creates the root rdfexplorer command with all subcommands registered.
func NewRootCmd() *cobra.Command {
	a := &app{v: viper.New(), stderr: os.Stderr}

	root := &cobra.Command{
		Use:           "rdfexplorer",
		Short:         "Explore RDF ontologies as navigable graphs",
		Long:          "rdfexplorer loads an RDF ontology, filters it to its domain classes and serves or prints the resulting tree and graph.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			a.stderr = cmd.ErrOrStderr()
			return a.initViper(cmd)
		},
	}

	// Global flags map to viper keys via initViper.
	root.PersistentFlags().StringP("config", "c", "", "path to config file")
	root.PersistentFlags().StringP("source", "s", "", "path to the ontology document")
	root.PersistentFlags().String("format", "", "source format (auto, turtle, ntriples, nquads, rdfxml, sqlite)")
	root.PersistentFlags().String("profile", "", "vocabulary profile (brick, owl)")
	root.PersistentFlags().BoolP("verbose", "v", false, "enable debug logging")

	root.AddCommand(
		newInitCmd(),
		newServeCmd(a),
		newStatusCmd(),
		newStatsCmd(a),
		newTreeCmd(a),
		newInspectCmd(a),
		newSearchCmd(a),
		newExportCmd(a),
		newDoctorCmd(a),
		newVersionCmd(),
	)

	return root
}

// initViper sets up viper with defaults, env bindings, flag bindings, and an
// optional config file so the standard precedence (flag > env > file >
// defaults) is handled uniformly.
func (a *app) initViper(cmd *cobra.Command) error {
	v := a.v

	config.SetDefaults(v)
	config.SetupEnv(v)

	if cfgFile, _ := cmd.Flags().GetString("config"); cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return rdferr.Errorf(rdferr.CodeConfigLoadReadFailure, "reading config file: %w", err)
		}
	} else {
		// SetConfigType is omitted so viper never tries the bare name,
		// which would collide with the rdfexplorer binary itself.
		v.SetConfigName("rdfexplorer")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/rdfexplorer")
		v.AddConfigPath("/etc/rdfexplorer")
		// No config file is fine; parse or permission errors must surface.
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return rdferr.Errorf(rdferr.CodeConfigLoadReadFailure, "reading config: %w", err)
			}
		}
	}

	flags := cmd.Root().PersistentFlags()
	for key, flag := range map[string]string{
		"source.path":        "source",
		"source.format":      "format",
		"vocabulary.profile": "profile",
		"verbose":            "verbose",
	} {
		if err := v.BindPFlag(key, flags.Lookup(flag)); err != nil {
			return rdferr.Errorf(rdferr.CodeCLISetupFailure, "binding %s flag: %w", flag, err)
		}
	}

	return nil
}

// config decodes and validates the resolved configuration, then installs the
// configured logger. The result is cached for the invocation.
func (a *app) config() (*config.Config, error) {
	if a.cfg != nil {
		return a.cfg, nil
	}
	cfg, err := config.FromViper(a.v)
	if err != nil {
		return nil, err
	}
	a.cfg = cfg
	a.logger = newLogger(a.stderr, cfg.Log, a.v.GetBool("verbose"))
	slog.SetDefault(a.logger)
	return cfg, nil
}

func newLogger(w io.Writer, cfg config.LogConfig, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	if verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{Level: level}
	if strings.ToLower(cfg.Format) == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
