// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Sigil Contributors

// Package turtle decodes Turtle and RDF/XML documents.
package turtle

import (
	"bytes"
	"context"
	"errors"
	"io"

	"github.com/knakk/rdf"

	"github.com/sigil-dev/rdfexplorer/internal/source"
	rdferr "github.com/sigil-dev/rdfexplorer/pkg/errors"
	"github.com/sigil-dev/rdfexplorer/pkg/types"
)

// ctxCheckInterval is how many statements are decoded between context checks.
const ctxCheckInterval = 1024

func init() {
	source.RegisterFormat(source.FormatTurtle, source.Backend{Decode: decoder(rdf.Turtle, source.FormatTurtle, markTurtleLabels)})
	source.RegisterFormat(source.FormatRDFXML, source.Backend{Decode: decoder(rdf.RDFXML, source.FormatRDFXML, markXMLLabels)})
}

func decoder(syntax rdf.Format, name source.Format, mark func([]byte) []byte) source.DecodeFunc {
	return func(ctx context.Context, r io.Reader, _ source.Options) ([]types.Statement, error) {
		src, err := io.ReadAll(r)
		if err != nil {
			return nil, rdferr.Wrapf(err, rdferr.CodeSourceOpenFailure, "reading %s document", name)
		}
		dec := rdf.NewTripleDecoder(bytes.NewReader(mark(src)), syntax)
		var out []types.Statement
		for {
			if len(out)%ctxCheckInterval == 0 {
				if err := ctx.Err(); err != nil {
					return nil, err
				}
			}
			tr, err := dec.Decode()
			if errors.Is(err, io.EOF) {
				return out, nil
			}
			if err != nil {
				return nil, rdferr.Wrapf(err, rdferr.CodeSourceDecodeInvalid,
					"decoding %s statement %d", name, len(out)+1)
			}
			out = append(out, statement(tr))
		}
	}
}

// statement converts a decoded triple from a marked document. Blank-node
// terms become anonymous identifiers.
func statement(tr rdf.Triple) types.Statement {
	return types.Statement{
		Subject:   identifier(tr.Subj),
		Predicate: types.Named(tr.Pred.String()),
		Object:    object(tr.Obj),
	}
}

func identifier(t rdf.Term) types.Identifier {
	if t.Type() == rdf.TermBlank {
		return types.Anonymous(blankLocal(t.String()))
	}
	return types.Named(t.String())
}

func object(t rdf.Term) types.Object {
	if t.Type() == rdf.TermLiteral {
		return types.Literal(t.String())
	}
	return types.Resource(identifier(t))
}
