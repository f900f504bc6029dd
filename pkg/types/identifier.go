// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Sigil Contributors

package types

import "strings"

// IdentifierKind distinguishes globally meaningful identifiers from
// document-local ones.
type IdentifierKind uint8

const (
	// KindNamed is a URI-like identifier with meaning outside the source document.
	KindNamed IdentifierKind = iota
	// KindAnonymous is a blank node scoped to the source document.
	KindAnonymous
)

// String returns the kind name.
func (k IdentifierKind) String() string {
	switch k {
	case KindNamed:
		return "named"
	case KindAnonymous:
		return "anonymous"
	default:
		return "unknown"
	}
}

// AnonymousPrefix is prepended to anonymous local ids to form table keys.
const AnonymousPrefix = "_:"

// Identifier names a resource. The kind is decided once by the decoder that
// produced it and is never re-derived from the value.
type Identifier struct {
	Kind  IdentifierKind
	Value string
}

// Named returns a named identifier for uri.
func Named(uri string) Identifier {
	return Identifier{Kind: KindNamed, Value: uri}
}

// Anonymous returns an anonymous identifier for a document-local id.
// A leading "_:" on local is dropped so both parser conventions key alike.
func Anonymous(local string) Identifier {
	return Identifier{Kind: KindAnonymous, Value: strings.TrimPrefix(local, AnonymousPrefix)}
}

// IsAnonymous reports whether the identifier is document-local.
func (id Identifier) IsAnonymous() bool {
	return id.Kind == KindAnonymous
}

// Key is the string used to index the identifier in entity tables and
// relation endpoints. Named identifiers key by their URI.
func (id Identifier) Key() string {
	if id.Kind == KindAnonymous {
		return AnonymousPrefix + id.Value
	}
	return id.Value
}

// String implements fmt.Stringer.
func (id Identifier) String() string {
	return id.Key()
}

// IsZero reports whether the identifier is unset.
func (id Identifier) IsZero() bool {
	return id.Value == ""
}

// LocalName returns the final segment of uri after the last '#', else after
// the last '/', else uri itself.
func LocalName(uri string) string {
	if i := strings.LastIndex(uri, "#"); i != -1 {
		return uri[i+1:]
	}
	if i := strings.LastIndex(uri, "/"); i != -1 {
		return uri[i+1:]
	}
	return uri
}
