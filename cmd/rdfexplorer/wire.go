// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Sigil Contributors

package main

import (
	"context"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/sigil-dev/rdfexplorer/internal/config"
	"github.com/sigil-dev/rdfexplorer/internal/dataset"
	"github.com/sigil-dev/rdfexplorer/internal/server"
	"github.com/sigil-dev/rdfexplorer/internal/source"
	_ "github.com/sigil-dev/rdfexplorer/internal/source/nquads" // register N-Triples and N-Quads
	_ "github.com/sigil-dev/rdfexplorer/internal/source/sqlite" // register SQLite statement tables
	_ "github.com/sigil-dev/rdfexplorer/internal/source/turtle" // register Turtle and RDF/XML
	"github.com/sigil-dev/rdfexplorer/internal/vocab"
	rdferr "github.com/sigil-dev/rdfexplorer/pkg/errors"
)

// sourcePath picks the document to load: a positional argument wins over
// --source, which wins over the config file.
func sourcePath(cfg *config.Config, args []string) (string, error) {
	path := cfg.Source.Path
	if len(args) > 0 && args[0] != "" {
		path = args[0]
	}
	if path == "" {
		return "", rdferr.New(rdferr.CodeCLIInputInvalid, "no source document: pass a path, --source, or set source.path")
	}
	return path, nil
}

func vocabulary(cfg *config.Config) (*vocab.Vocabulary, error) {
	v, err := vocab.Load(cfg.Vocabulary.Profile, cfg.Vocabulary.Overrides())
	if err != nil {
		return nil, rdferr.Wrapf(err, rdferr.CodeCLISetupFailure, "loading vocabulary profile %s", cfg.Vocabulary.Profile)
	}
	return v, nil
}

// loadSnapshot reads one snapshot for the offline commands.
func (a *app) loadSnapshot(ctx context.Context, args []string) (*dataset.Snapshot, error) {
	cfg, err := a.config()
	if err != nil {
		return nil, err
	}
	path, err := sourcePath(cfg, args)
	if err != nil {
		return nil, err
	}
	v, err := vocabulary(cfg)
	if err != nil {
		return nil, err
	}
	f, err := source.ParseFormat(cfg.Source.Format)
	if err != nil {
		return nil, err
	}
	return dataset.Load(ctx, path, f, v, a.logger)
}

// Explorer holds the wired dataset manager and HTTP server for serve.
type Explorer struct {
	Dataset  *dataset.Manager
	Server   *server.Server
	watch    bool
	debounce time.Duration
	logger   *slog.Logger
}

// WireExplorer builds the dataset manager and server from cfg. Nothing is
// loaded until Run.
func (a *app) WireExplorer(cfg *config.Config, path string) (*Explorer, error) {
	v, err := vocabulary(cfg)
	if err != nil {
		return nil, err
	}
	f, err := source.ParseFormat(cfg.Source.Format)
	if err != nil {
		return nil, err
	}

	mgr, err := dataset.NewManager(dataset.Config{
		Path:       path,
		Format:     f,
		Vocabulary: v,
		CacheSize:  cfg.View.CacheSize,
		Logger:     a.logger,
	})
	if err != nil {
		return nil, rdferr.Wrapf(err, rdferr.CodeCLISetupFailure, "creating dataset manager")
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	srv, err := server.New(server.Config{
		ListenAddr:   cfg.Networking.Listen,
		CORSOrigins:  cfg.Networking.CORSOrigins,
		ReadTimeout:  cfg.Networking.ReadTimeout,
		WriteTimeout: cfg.Networking.WriteTimeout,
		View: server.ViewConfig{
			DefaultLimit:          cfg.View.DefaultLimit,
			LargeDatasetThreshold: cfg.View.LargeDatasetThreshold,
			LimitSteps:            cfg.View.LimitSteps,
			SearchMaxResults:      cfg.View.SearchMaxResults,
		},
		Version:  version,
		Registry: reg,
		Logger:   a.logger,
	}, mgr)
	if err != nil {
		return nil, rdferr.Wrapf(err, rdferr.CodeCLISetupFailure, "creating server")
	}

	return &Explorer{
		Dataset:  mgr,
		Server:   srv,
		watch:    cfg.Source.Watch,
		debounce: cfg.Source.Debounce,
		logger:   a.logger,
	}, nil
}

// Run loads the dataset, starts the watcher when enabled, and serves until
// ctx is cancelled. A failed initial load is fatal; later reload failures are
// logged and the previous snapshot keeps serving.
func (e *Explorer) Run(ctx context.Context) error {
	if err := e.Dataset.Load(ctx); err != nil {
		return err
	}

	if e.watch {
		go func() {
			if err := e.Dataset.Watch(ctx, e.debounce); err != nil {
				e.logger.Error("source watcher stopped", "error", err)
			}
		}()
	}

	return e.Server.Start(ctx)
}
