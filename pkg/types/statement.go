// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Sigil Contributors

package types

// ObjectKind says whether a statement object references another resource or
// carries a raw value.
type ObjectKind string

const (
	ObjectResource ObjectKind = "resource"
	ObjectLiteral  ObjectKind = "literal"
)

// Valid reports whether the object kind is known.
func (k ObjectKind) Valid() bool {
	switch k {
	case ObjectResource, ObjectLiteral:
		return true
	default:
		return false
	}
}

// Object is the third position of a statement. Exactly one of ID or Literal
// is meaningful, selected by Kind.
type Object struct {
	Kind    ObjectKind
	ID      Identifier
	Literal string
}

// Resource returns a resource-valued object.
func Resource(id Identifier) Object {
	return Object{Kind: ObjectResource, ID: id}
}

// Literal returns a literal-valued object.
func Literal(value string) Object {
	return Object{Kind: ObjectLiteral, Literal: value}
}

// IsLiteral reports whether the object carries a raw value.
func (o Object) IsLiteral() bool {
	return o.Kind == ObjectLiteral
}

// Value returns the literal value or the referenced identifier key.
func (o Object) Value() string {
	if o.Kind == ObjectLiteral {
		return o.Literal
	}
	return o.ID.Key()
}

// Statement is one parsed subject-predicate-object fact. Statements are
// immutable once produced by a decoder.
type Statement struct {
	Subject   Identifier
	Predicate Identifier
	Object    Object
}
