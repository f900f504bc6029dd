// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Sigil Contributors

package dataset_test

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/sigil-dev/rdfexplorer/internal/dataset"
	"github.com/sigil-dev/rdfexplorer/internal/navigate"
	_ "github.com/sigil-dev/rdfexplorer/internal/source/turtle"
	"github.com/sigil-dev/rdfexplorer/internal/vocab"
	rdferr "github.com/sigil-dev/rdfexplorer/pkg/errors"
	"github.com/sigil-dev/rdfexplorer/pkg/health"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const prefixes = `@prefix brick: <https://brickschema.org/schema/Brick#> .
@prefix rdfs: <http://www.w3.org/2000/01/rdf-schema#> .
@prefix sh: <http://www.w3.org/ns/shacl#> .
`

const hvac = prefixes + `
brick:Equipment a sh:NodeShape ; rdfs:label "Equipment" .
brick:HVAC_Equipment a sh:NodeShape ; rdfs:subClassOf brick:Equipment .
brick:AHU a sh:NodeShape ; rdfs:subClassOf brick:HVAC_Equipment .
`

func writeSource(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func newManager(t *testing.T, content string) *dataset.Manager {
	t.Helper()
	path := filepath.Join(t.TempDir(), "brick.ttl")
	writeSource(t, path, content)

	m, err := dataset.NewManager(dataset.Config{Path: path, Vocabulary: vocab.MustDefault()})
	require.NoError(t, err)
	return m
}

func TestNewManager_Validation(t *testing.T) {
	_, err := dataset.NewManager(dataset.Config{Vocabulary: vocab.MustDefault()})
	require.Error(t, err)
	assert.True(t, rdferr.IsInvalidInput(err))

	_, err = dataset.NewManager(dataset.Config{Path: "x.ttl"})
	require.Error(t, err)
	assert.True(t, rdferr.IsInvalidInput(err))
}

func TestManager_NotLoaded(t *testing.T) {
	m := newManager(t, hvac)

	_, err := m.Snapshot()
	require.Error(t, err)
	assert.True(t, rdferr.IsUnavailable(err))

	_, err = m.View(navigate.WindowRequest{})
	assert.True(t, rdferr.IsUnavailable(err))

	st := m.Status()
	assert.Equal(t, health.StatusLoading, st.Status)
	assert.Empty(t, st.Generation)
}

func TestManager_Load(t *testing.T) {
	m := newManager(t, hvac)
	require.NoError(t, m.Load(context.Background()))

	snap, err := m.Snapshot()
	require.NoError(t, err)
	assert.Len(t, snap.Graph.Nodes, 3)
	assert.Len(t, snap.Graph.Links, 2)
	assert.Equal(t, 6, snap.Table.Statements())

	ahu, ok := snap.Graph.Node("https://brickschema.org/schema/Brick#AHU")
	require.True(t, ok)
	assert.Equal(t, "https://brickschema.org/schema/Brick#Equipment", ahu.Category)
	assert.Equal(t, "Equipment", ahu.CategoryLabel)

	st := m.Status()
	assert.Equal(t, health.StatusOK, st.Status)
	assert.Equal(t, snap.Generation, st.Generation)
	assert.Equal(t, 3, st.DomainNodes)
	assert.Zero(t, st.Reloads)
	assert.Empty(t, st.LastError)
}

func TestManager_ViewCache(t *testing.T) {
	m := newManager(t, hvac)
	require.NoError(t, m.Load(context.Background()))

	first, err := m.View(navigate.WindowRequest{Limit: 2})
	require.NoError(t, err)
	assert.Len(t, first.Nodes, 2)

	second, err := m.View(navigate.WindowRequest{Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, first.Generation, second.Generation)
	assert.Equal(t, dataset.CacheStats{Hits: 1, Misses: 1}, m.CacheStats())

	def, err := m.View(navigate.WindowRequest{})
	require.NoError(t, err)
	assert.Equal(t, navigate.DefaultLimit, def.Request.Limit)
	assert.Len(t, def.Nodes, 3)
}

func TestManager_ConcurrentViews(t *testing.T) {
	m := newManager(t, hvac)
	require.NoError(t, m.Load(context.Background()))

	var wg sync.WaitGroup
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v, err := m.View(navigate.WindowRequest{Focus: "https://brickschema.org/schema/Brick#AHU", Limit: 1})
			assert.NoError(t, err)
			assert.Len(t, v.Nodes, 2, "focus and its parent survive a limit of one")
		}()
	}
	wg.Wait()
}

func TestManager_ReloadNewGeneration(t *testing.T) {
	m := newManager(t, hvac)
	ctx := context.Background()
	require.NoError(t, m.Load(ctx))

	before, err := m.View(navigate.WindowRequest{})
	require.NoError(t, err)

	writeSource(t, m.Path(), hvac+"brick:Fan a sh:NodeShape ; rdfs:subClassOf brick:HVAC_Equipment .\n")
	require.NoError(t, m.Load(ctx))

	after, err := m.View(navigate.WindowRequest{})
	require.NoError(t, err)
	assert.NotEqual(t, before.Generation, after.Generation)
	assert.Len(t, after.Nodes, 4)
	assert.Equal(t, int64(1), m.Status().Reloads)
}

func TestManager_FailedReloadKeepsSnapshot(t *testing.T) {
	m := newManager(t, hvac)
	ctx := context.Background()
	require.NoError(t, m.Load(ctx))
	snap, err := m.Snapshot()
	require.NoError(t, err)

	writeSource(t, m.Path(), "this is not turtle")
	err = m.Load(ctx)
	require.Error(t, err)
	assert.True(t, rdferr.IsInvalidInput(err))

	current, err := m.Snapshot()
	require.NoError(t, err)
	assert.Same(t, snap, current)

	st := m.Status()
	assert.Equal(t, health.StatusOK, st.Status)
	assert.NotEmpty(t, st.LastError)
	assert.NotNil(t, st.LastErrorAt)
}

func TestManager_Watch(t *testing.T) {
	m := newManager(t, hvac)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, m.Load(ctx))
	snap, err := m.Snapshot()
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() { done <- m.Watch(ctx, 20*time.Millisecond) }()

	// Give the watcher time to register before writing.
	time.Sleep(100 * time.Millisecond)
	writeSource(t, m.Path(), hvac+"brick:Fan a sh:NodeShape .\n")

	require.Eventually(t, func() bool {
		current, err := m.Snapshot()
		return err == nil && current.Generation != snap.Generation
	}, 5*time.Second, 20*time.Millisecond)

	current, err := m.Snapshot()
	require.NoError(t, err)
	assert.Len(t, current.Graph.Nodes, 4)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Watch did not return after cancel")
	}
}

func TestBuild_FreshMemoPerSnapshot(t *testing.T) {
	m := newManager(t, hvac)
	require.NoError(t, m.Load(context.Background()))
	a, err := m.Snapshot()
	require.NoError(t, err)
	require.NoError(t, m.Load(context.Background()))
	b, err := m.Snapshot()
	require.NoError(t, err)

	assert.NotSame(t, a.Categories, b.Categories)
	assert.NotEqual(t, a.Generation, b.Generation)
	assert.Equal(t, a.Stats(5).DomainNodes, b.Stats(5).DomainNodes)
}
