// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Sigil Contributors

// Package dataset owns the loaded ontology. A Snapshot is every derived
// structure computed from one parse of the source; it is immutable once
// built. The Manager swaps snapshots on reload and caches windowed views.
package dataset

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/sigil-dev/rdfexplorer/internal/navigate"
	"github.com/sigil-dev/rdfexplorer/internal/ontology"
	"github.com/sigil-dev/rdfexplorer/internal/source"
	"github.com/sigil-dev/rdfexplorer/internal/vocab"
	"github.com/sigil-dev/rdfexplorer/pkg/types"
)

// Snapshot is one fully derived dataset.
type Snapshot struct {
	Generation string
	Source     string
	Format     source.Format
	LoadedAt   time.Time

	Vocabulary *vocab.Vocabulary
	Table      *ontology.Table
	Graph      *ontology.DomainGraph
	Categories *ontology.Resolver
	Forest     *navigate.Forest
	Windower   *navigate.Windower
	Relations  *navigate.RelationIndex

	// Cycles counts domain nodes whose category walk hit a hierarchy cycle.
	Cycles int
}

// Build derives a snapshot from parsed statements. The category memo is
// created here so it lives exactly as long as the snapshot.
func Build(stmts []types.Statement, v *vocab.Vocabulary) *Snapshot {
	table := ontology.Build(stmts, v)
	graph := ontology.Filter(table, v)
	resolver := ontology.NewResolver(table, graph, v, ontology.NewCategoryMemo())
	cycles := resolver.Assign()

	return &Snapshot{
		Generation: uuid.NewString(),
		LoadedAt:   time.Now().UTC(),
		Vocabulary: v,
		Table:      table,
		Graph:      graph,
		Categories: resolver,
		Forest:     navigate.BuildForest(table, graph, v),
		Windower:   navigate.NewWindower(graph),
		Relations:  navigate.NewRelationIndex(table, v),
		Cycles:     cycles,
	}
}

// Load opens the source at path and builds a snapshot from it.
func Load(ctx context.Context, path string, f source.Format, v *vocab.Vocabulary, logger *slog.Logger) (*Snapshot, error) {
	if logger == nil {
		logger = slog.Default()
	}

	start := time.Now()
	stmts, err := source.Open(ctx, path, f, source.WithClassifier(v.Classify))
	if err != nil {
		return nil, err
	}

	snap := Build(stmts, v)
	snap.Source = path
	snap.Format = f

	logger.Info("dataset loaded",
		"path", path,
		"statements", len(stmts),
		"entities", snap.Table.Len(),
		"domain_nodes", len(snap.Graph.Nodes),
		"semantic_links", len(snap.Graph.Links),
		"classes", len(snap.Graph.Classes),
		"cycles", snap.Cycles,
		"generation", snap.Generation,
		"duration", time.Since(start),
	)
	if snap.Cycles > 0 {
		logger.Warn("hierarchy contains cycles; affected categories follow the first parent reached", "nodes", snap.Cycles)
	}
	return snap, nil
}

// Stats summarises the snapshot.
func (s *Snapshot) Stats(top int) navigate.Stats {
	return navigate.ComputeStats(s.Table, s.Graph, s.Forest, top)
}
