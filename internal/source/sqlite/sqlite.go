// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Sigil Contributors

// Package sqlite reads statements from a SQLite database holding a single
// triples table:
//
//	CREATE TABLE triples (
//		subject     TEXT NOT NULL,
//		predicate   TEXT NOT NULL,
//		object      TEXT NOT NULL,
//		object_kind TEXT NOT NULL DEFAULT 'resource'
//	);
//
// Rows are read in rowid order. Identifiers are plain strings, so blank
// nodes are recognised through Options.Classify.
package sqlite

import (
	"context"
	"database/sql"
	"net/url"

	_ "github.com/mattn/go-sqlite3"

	"github.com/sigil-dev/rdfexplorer/internal/source"
	rdferr "github.com/sigil-dev/rdfexplorer/pkg/errors"
	"github.com/sigil-dev/rdfexplorer/pkg/types"
)

func init() {
	source.RegisterFormat(source.FormatSQLite, source.Backend{Open: Open})
}

// Schema creates the triples table. Exposed for fixtures and exporters.
const Schema = `
CREATE TABLE IF NOT EXISTS triples (
	subject     TEXT NOT NULL,
	predicate   TEXT NOT NULL,
	object      TEXT NOT NULL,
	object_kind TEXT NOT NULL DEFAULT 'resource'
);
`

// Open reads every row of the triples table at path. The database is opened
// read-only.
func Open(ctx context.Context, path string, opts source.Options) ([]types.Statement, error) {
	dsn := "file:" + (&url.URL{Path: path}).EscapedPath() + "?mode=ro&_busy_timeout=5000"
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, rdferr.Wrap(err, rdferr.CodeSourceOpenFailure, "opening sqlite source", rdferr.FieldPath(path))
	}
	defer func() { _ = db.Close() }()

	if err := db.PingContext(ctx); err != nil {
		return nil, rdferr.Wrap(err, rdferr.CodeSourceOpenFailure, "opening sqlite source", rdferr.FieldPath(path))
	}

	const q = `SELECT subject, predicate, object, object_kind FROM triples ORDER BY rowid`
	rows, err := db.QueryContext(ctx, q)
	if err != nil {
		return nil, rdferr.Wrap(err, rdferr.CodeSourceQueryFailure, "querying triples", rdferr.FieldPath(path))
	}
	defer func() { _ = rows.Close() }()

	var out []types.Statement
	for rows.Next() {
		var subject, predicate, object, kind string
		if err := rows.Scan(&subject, &predicate, &object, &kind); err != nil {
			return nil, rdferr.Wrap(err, rdferr.CodeSourceQueryFailure, "scanning triple", rdferr.FieldPath(path))
		}

		st := types.Statement{
			Subject:   opts.ClassifyOrNamed(subject),
			Predicate: types.Named(predicate),
		}
		switch types.ObjectKind(kind) {
		case types.ObjectLiteral:
			st.Object = types.Literal(object)
		case types.ObjectResource:
			st.Object = types.Resource(opts.ClassifyOrNamed(object))
		default:
			return nil, rdferr.New(rdferr.CodeSourceDecodeInvalid,
				"row "+subject+" "+predicate+": unknown object_kind "+kind, rdferr.FieldPath(path))
		}
		out = append(out, st)
	}
	if err := rows.Err(); err != nil {
		return nil, rdferr.Wrap(err, rdferr.CodeSourceQueryFailure, "iterating triples", rdferr.FieldPath(path))
	}
	return out, nil
}
