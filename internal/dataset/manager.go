// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Sigil Contributors

package dataset

import (
	"context"
	"log/slog"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/singleflight"

	"github.com/sigil-dev/rdfexplorer/internal/navigate"
	"github.com/sigil-dev/rdfexplorer/internal/source"
	"github.com/sigil-dev/rdfexplorer/internal/vocab"
	rdferr "github.com/sigil-dev/rdfexplorer/pkg/errors"
	"github.com/sigil-dev/rdfexplorer/pkg/health"
)

// DefaultCacheSize is the number of windowed views kept per manager.
const DefaultCacheSize = 128

// Config configures a Manager.
type Config struct {
	Path       string
	Format     source.Format
	Vocabulary *vocab.Vocabulary
	CacheSize  int
	Logger     *slog.Logger
}

// View is a cached window for one snapshot generation.
type View struct {
	Generation string
	Request    navigate.WindowRequest
	navigate.Window
}

type viewKey struct {
	generation string
	class      string
	focus      string
	limit      int
}

func (k viewKey) String() string {
	return k.generation + "|" + k.class + "|" + k.focus + "|" + strconv.Itoa(k.limit)
}

// CacheStats counts view cache lookups.
type CacheStats struct {
	Hits   int64
	Misses int64
}

// Manager holds the current snapshot and serves views from it.
type Manager struct {
	cfg    Config
	logger *slog.Logger

	current atomic.Pointer[Snapshot]
	views   *lru.Cache[viewKey, View]
	flight  singleflight.Group

	loads  atomic.Int64
	hits   atomic.Int64
	misses atomic.Int64

	errMu     sync.Mutex
	lastErr   string
	lastErrAt time.Time
}

// NewManager creates a manager. Nothing is loaded until Load is called.
func NewManager(cfg Config) (*Manager, error) {
	if cfg.Path == "" {
		return nil, rdferr.New(rdferr.CodeConfigValidateInvalidValue, "dataset: source path must not be empty")
	}
	if cfg.Vocabulary == nil {
		return nil, rdferr.New(rdferr.CodeConfigValidateInvalidValue, "dataset: vocabulary is required")
	}
	if cfg.Format == "" {
		cfg.Format = source.FormatAuto
	}
	if cfg.CacheSize <= 0 {
		cfg.CacheSize = DefaultCacheSize
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	views, err := lru.New[viewKey, View](cfg.CacheSize)
	if err != nil {
		return nil, rdferr.Wrap(err, rdferr.CodeConfigValidateInvalidValue, "dataset: creating view cache")
	}

	return &Manager{
		cfg:    cfg,
		logger: cfg.Logger,
		views:  views,
	}, nil
}

// Path returns the configured source path.
func (m *Manager) Path() string { return m.cfg.Path }

// Load parses the source and swaps in a new snapshot. Concurrent calls share
// one parse. On failure the previous snapshot keeps serving.
func (m *Manager) Load(ctx context.Context) error {
	_, err, _ := m.flight.Do("load", func() (any, error) {
		snap, err := Load(ctx, m.cfg.Path, m.cfg.Format, m.cfg.Vocabulary, m.logger)
		if err != nil {
			m.recordError(err)
			return nil, rdferr.Wrap(err, rdferr.CodeDatasetReloadFailure, "loading dataset", rdferr.FieldPath(m.cfg.Path))
		}
		m.Swap(snap)
		return snap, nil
	})
	return err
}

// Swap installs snap as the current snapshot and drops views cached for the
// previous one.
func (m *Manager) Swap(snap *Snapshot) {
	m.current.Store(snap)
	m.views.Purge()
	m.loads.Add(1)

	m.errMu.Lock()
	m.lastErr = ""
	m.lastErrAt = time.Time{}
	m.errMu.Unlock()
}

func (m *Manager) recordError(err error) {
	m.errMu.Lock()
	defer m.errMu.Unlock()
	m.lastErr = err.Error()
	m.lastErrAt = time.Now().UTC()
}

// Snapshot returns the current snapshot, or a dataset.not_loaded error.
func (m *Manager) Snapshot() (*Snapshot, error) {
	snap := m.current.Load()
	if snap == nil {
		return nil, rdferr.New(rdferr.CodeDatasetNotLoaded, "dataset is not loaded yet", rdferr.FieldPath(m.cfg.Path))
	}
	return snap, nil
}

// View returns the window for req against the current snapshot. Identical
// concurrent requests compute the window once.
func (m *Manager) View(req navigate.WindowRequest) (View, error) {
	snap, err := m.Snapshot()
	if err != nil {
		return View{}, err
	}
	if req.Limit <= 0 {
		req.Limit = navigate.DefaultLimit
	}

	key := viewKey{generation: snap.Generation, class: req.Class, focus: req.Focus, limit: req.Limit}
	if v, ok := m.views.Get(key); ok {
		m.hits.Add(1)
		return v, nil
	}
	m.misses.Add(1)

	out, _, _ := m.flight.Do(key.String(), func() (any, error) {
		v := View{Generation: snap.Generation, Request: req, Window: snap.Windower.Window(req)}
		if m.current.Load() == snap {
			m.views.Add(key, v)
		}
		return v, nil
	})
	return out.(View), nil
}

// CacheStats reports view cache hits and misses since start.
func (m *Manager) CacheStats() CacheStats {
	return CacheStats{Hits: m.hits.Load(), Misses: m.misses.Load()}
}

// Status reports the dataset state.
func (m *Manager) Status() health.Status {
	st := health.Status{Status: health.StatusLoading, Source: m.cfg.Path}
	if loads := m.loads.Load(); loads > 1 {
		st.Reloads = loads - 1
	}

	m.errMu.Lock()
	if m.lastErr != "" {
		at := m.lastErrAt
		st.LastError = m.lastErr
		st.LastErrorAt = &at
	}
	m.errMu.Unlock()

	snap := m.current.Load()
	if snap == nil {
		return st
	}
	loadedAt := snap.LoadedAt
	st.Status = health.StatusOK
	st.Generation = snap.Generation
	st.LoadedAt = &loadedAt
	st.Statements = snap.Table.Statements()
	st.Entities = snap.Table.Len()
	st.DomainNodes = len(snap.Graph.Nodes)
	st.DomainLinks = len(snap.Graph.Links)
	return st
}
