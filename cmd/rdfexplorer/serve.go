// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Sigil Contributors

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	rdferr "github.com/sigil-dev/rdfexplorer/pkg/errors"
)

func newServeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve [source]",
		Short: "Serve the exploration API",
		Long:  "Load the ontology, optionally watch it for changes, and serve the HTTP API until interrupted.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runServe(cmd, args)
		},
	}

	cmd.Flags().String("listen", "", "override listen address (host:port)")
	cmd.Flags().Bool("watch", false, "reload when the source document changes")

	return cmd
}

func (a *app) runServe(cmd *cobra.Command, args []string) error {
	for key, flag := range map[string]string{"networking.listen": "listen", "source.watch": "watch"} {
		if f := cmd.Flags().Lookup(flag); f.Changed {
			if err := a.v.BindPFlag(key, f); err != nil {
				return rdferr.Errorf(rdferr.CodeCLISetupFailure, "binding %s flag: %w", flag, err)
			}
		}
	}
	if len(args) > 0 {
		a.v.Set("source.path", args[0])
	}

	cfg, err := a.config()
	if err != nil {
		return err
	}
	path, err := sourcePath(cfg, nil)
	if err != nil {
		return err
	}

	ex, err := a.WireExplorer(cfg, path)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(background(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a.logger.Info("starting rdfexplorer",
		"version", version,
		"source", path,
		"listen", cfg.Networking.Listen,
		"profile", cfg.Vocabulary.Profile,
		"watch", cfg.Source.Watch,
	)
	return ex.Run(ctx)
}

// background is used when cobra runs without a context.
func background(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
