// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Sigil Contributors

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sigil-dev/rdfexplorer/internal/dataset"
	"github.com/sigil-dev/rdfexplorer/internal/navigate"
	"github.com/sigil-dev/rdfexplorer/internal/server"
	rdferr "github.com/sigil-dev/rdfexplorer/pkg/errors"
	"github.com/sigil-dev/rdfexplorer/pkg/health"
)

func main() {
	spec, err := generateSpec()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	outPath := "api/openapi/spec.json"
	if len(os.Args) > 1 {
		outPath = os.Args[1]
	}

	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "error creating output dir: %v\n", err)
		os.Exit(1)
	}

	if err := os.WriteFile(outPath, spec, 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "error writing spec: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("OpenAPI spec written to %s\n", outPath)
}

// generateSpec creates a server with all routes registered and extracts the
// OpenAPI spec that huma generates from the Go type annotations.
func generateSpec() ([]byte, error) {
	srv, err := server.New(server.Config{ListenAddr: "127.0.0.1:0"}, stubDataset{})
	if err != nil {
		return nil, rdferr.Errorf(rdferr.CodeCLISetupFailure, "creating server: %w", err)
	}

	return json.MarshalIndent(srv.API().OpenAPI(), "", "  ")
}

// stubDataset satisfies server.Dataset for spec generation. Handlers are
// never invoked.
type stubDataset struct{}

func (stubDataset) Snapshot() (*dataset.Snapshot, error) {
	return nil, rdferr.New(rdferr.CodeDatasetNotLoaded, "no dataset")
}

func (stubDataset) View(navigate.WindowRequest) (dataset.View, error) {
	return dataset.View{}, rdferr.New(rdferr.CodeDatasetNotLoaded, "no dataset")
}

func (stubDataset) Status() health.Status { return health.Status{Status: health.StatusLoading} }

func (stubDataset) CacheStats() dataset.CacheStats { return dataset.CacheStats{} }
