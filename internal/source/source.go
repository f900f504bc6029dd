// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Sigil Contributors

// Package source turns RDF documents into statement sequences. Each format
// lives in its own subpackage and registers itself from init().
package source

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	rdferr "github.com/sigil-dev/rdfexplorer/pkg/errors"
	"github.com/sigil-dev/rdfexplorer/pkg/types"
)

// Format names a source syntax.
type Format string

const (
	FormatAuto     Format = "auto"
	FormatTurtle   Format = "turtle"
	FormatRDFXML   Format = "rdfxml"
	FormatNTriples Format = "ntriples"
	FormatNQuads   Format = "nquads"
	FormatSQLite   Format = "sqlite"
)

var extensions = map[string]Format{
	".ttl":    FormatTurtle,
	".rdf":    FormatRDFXML,
	".owl":    FormatRDFXML,
	".xml":    FormatRDFXML,
	".nt":     FormatNTriples,
	".nq":     FormatNQuads,
	".db":     FormatSQLite,
	".sqlite": FormatSQLite,
}

// Options tune a decode.
type Options struct {
	// Classify tags raw identifiers for formats whose terms carry no
	// blank-node marker. Nil treats every identifier as named.
	Classify func(raw string) types.Identifier
}

// Option sets a field of Options.
type Option func(*Options)

// WithClassifier sets Options.Classify.
func WithClassifier(fn func(raw string) types.Identifier) Option {
	return func(o *Options) { o.Classify = fn }
}

// ClassifyOrNamed applies Classify, defaulting to a named identifier.
func (o Options) ClassifyOrNamed(raw string) types.Identifier {
	if o.Classify == nil {
		return types.Named(raw)
	}
	return o.Classify(raw)
}

// DecodeFunc reads every statement from r.
type DecodeFunc func(ctx context.Context, r io.Reader, opts Options) ([]types.Statement, error)

// OpenFunc reads every statement from the document at path.
type OpenFunc func(ctx context.Context, path string, opts Options) ([]types.Statement, error)

// Backend implements one format. Stream formats set Decode; formats that need
// a file, such as databases, set Open. Open falls back to Decode over the
// opened file.
type Backend struct {
	Decode DecodeFunc
	Open   OpenFunc
}

var (
	backends   = map[Format]Backend{}
	backendsMu sync.RWMutex
)

// RegisterFormat registers the backend for a format. Format packages call
// this from init(). This function is goroutine-safe.
func RegisterFormat(f Format, b Backend) {
	backendsMu.Lock()
	defer backendsMu.Unlock()
	backends[f] = b
}

// Formats returns the registered formats, sorted.
func Formats() []Format {
	backendsMu.RLock()
	defer backendsMu.RUnlock()
	out := make([]Format, 0, len(backends))
	for f := range backends {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// ParseFormat validates a configured format name.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	switch f {
	case "":
		return FormatAuto, nil
	case FormatAuto, FormatTurtle, FormatRDFXML, FormatNTriples, FormatNQuads, FormatSQLite:
		return f, nil
	}
	return "", rdferr.New(rdferr.CodeSourceFormatUnsupported, "unsupported source format "+s, rdferr.FieldFormat(s))
}

// Detect picks a format from the file extension.
func Detect(path string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if f, ok := extensions[ext]; ok {
		return f, nil
	}
	return "", rdferr.New(rdferr.CodeSourceFormatUnsupported,
		"cannot detect source format from extension "+ext, rdferr.FieldPath(path))
}

func lookup(f Format) (Backend, error) {
	backendsMu.RLock()
	b, ok := backends[f]
	backendsMu.RUnlock()
	if !ok {
		return Backend{}, rdferr.New(rdferr.CodeSourceFormatUnsupported,
			"no decoder registered for format "+string(f), rdferr.FieldFormat(string(f)))
	}
	return b, nil
}

func collect(opts []Option) Options {
	var o Options
	for _, fn := range opts {
		fn(&o)
	}
	return o
}

// Decode reads statements of format f from r. FormatAuto is not accepted
// since a stream has no extension.
func Decode(ctx context.Context, r io.Reader, f Format, opts ...Option) ([]types.Statement, error) {
	b, err := lookup(f)
	if err != nil {
		return nil, err
	}
	if b.Decode == nil {
		return nil, rdferr.New(rdferr.CodeSourceFormatUnsupported,
			"format "+string(f)+" cannot be decoded from a stream", rdferr.FieldFormat(string(f)))
	}
	return b.Decode(ctx, r, collect(opts))
}

// Open reads statements from the document at path. FormatAuto detects the
// format from the extension.
func Open(ctx context.Context, path string, f Format, opts ...Option) ([]types.Statement, error) {
	if f == "" || f == FormatAuto {
		detected, err := Detect(path)
		if err != nil {
			return nil, err
		}
		f = detected
	}

	b, err := lookup(f)
	if err != nil {
		return nil, err
	}
	o := collect(opts)
	if b.Open != nil {
		return b.Open(ctx, path, o)
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, rdferr.Wrap(err, rdferr.CodeSourceOpenFailure, "opening source", rdferr.FieldPath(path))
	}
	defer func() { _ = file.Close() }()

	stmts, err := b.Decode(ctx, file, o)
	if err != nil {
		return nil, rdferr.With(err, rdferr.FieldPath(path), rdferr.FieldFormat(string(f)))
	}
	return stmts, nil
}
