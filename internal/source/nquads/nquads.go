// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Sigil Contributors

// Package nquads decodes N-Triples and N-Quads documents. Graph labels are
// dropped: every quad contributes one statement to a single graph.
package nquads

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/cayleygraph/quad"
	"github.com/cayleygraph/quad/nquads"

	"github.com/sigil-dev/rdfexplorer/internal/source"
	rdferr "github.com/sigil-dev/rdfexplorer/pkg/errors"
	"github.com/sigil-dev/rdfexplorer/pkg/types"
)

const ctxCheckInterval = 1024

func init() {
	b := source.Backend{Decode: decode}
	source.RegisterFormat(source.FormatNTriples, b)
	source.RegisterFormat(source.FormatNQuads, b)
}

func decode(ctx context.Context, r io.Reader, _ source.Options) ([]types.Statement, error) {
	qr := nquads.NewReader(r, false)
	var out []types.Statement
	for {
		if len(out)%ctxCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		q, err := qr.ReadQuad()
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return nil, rdferr.Wrapf(err, rdferr.CodeSourceDecodeInvalid, "decoding n-quads statement %d", len(out)+1)
		}
		out = append(out, Statement(q))
	}
}

// Statement converts a quad, ignoring its label.
func Statement(q quad.Quad) types.Statement {
	return types.Statement{
		Subject:   identifier(q.Subject),
		Predicate: identifier(q.Predicate),
		Object:    object(q.Object),
	}
}

func identifier(v quad.Value) types.Identifier {
	switch v := v.(type) {
	case quad.BNode:
		return types.Anonymous(string(v))
	case quad.IRI:
		return types.Named(string(v))
	default:
		return types.Named(fmt.Sprint(quad.NativeOf(v)))
	}
}

func object(v quad.Value) types.Object {
	switch v := v.(type) {
	case quad.IRI, quad.BNode:
		return types.Resource(identifier(v))
	case quad.String:
		return types.Literal(string(v))
	case quad.TypedString:
		return types.Literal(string(v.Value))
	case quad.LangString:
		return types.Literal(string(v.Value))
	default:
		return types.Literal(fmt.Sprint(quad.NativeOf(v)))
	}
}
