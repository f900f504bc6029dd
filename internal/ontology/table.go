// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Sigil Contributors

// Package ontology turns a parsed statement sequence into the entity table,
// the filtered domain graph, and per-node categories.
package ontology

import (
	"encoding/json"

	"github.com/sigil-dev/rdfexplorer/internal/vocab"
	"github.com/sigil-dev/rdfexplorer/pkg/types"
)

// Entity is the record kept for every distinct identifier referenced by a
// statement. Only Category and CategoryLabel change after Build returns.
type Entity struct {
	ID            string              `json:"id"`
	Label         string              `json:"label"`
	Type          string              `json:"type"`
	Anonymous     bool                `json:"anonymous,omitempty"`
	Properties    map[string][]string `json:"properties"`
	Category      string              `json:"category"`
	CategoryLabel string              `json:"categoryLabel,omitempty"`
}

// MarshalJSON renders an unset type or category as null.
func (e Entity) MarshalJSON() ([]byte, error) {
	type alias Entity
	return json.Marshal(struct {
		alias
		Type     *string `json:"type"`
		Category *string `json:"category"`
	}{
		alias:    alias(e),
		Type:     nullable(e.Type),
		Category: nullable(e.Category),
	})
}

// Property returns the first value recorded for a property label.
func (e *Entity) Property(name string) (string, bool) {
	values := e.Properties[name]
	if len(values) == 0 {
		return "", false
	}
	return values[0], true
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// Relation is one resource-valued statement other than a type assertion.
type Relation struct {
	Source    string `json:"source"`
	Target    string `json:"target"`
	Predicate string `json:"predicate"`
	Label     string `json:"label"`
}

// Detail is the unfiltered view used to resolve references.
type Detail struct {
	AllNodes []*Entity  `json:"allNodes"`
	AllLinks []Relation `json:"allLinks"`
}

// Table holds every entity in first-reference order and every relation in
// statement order.
type Table struct {
	entities   []*Entity
	byID       map[string]*Entity
	relations  []Relation
	statements int
	labelProp  string
}

// Build runs the single ingest pass over stmts. It is the only place
// entities are created.
func Build(stmts []types.Statement, v *vocab.Vocabulary) *Table {
	t := &Table{
		entities:   []*Entity{},
		byID:       make(map[string]*Entity),
		relations:  []Relation{},
		statements: len(stmts),
		labelProp:  v.LabelProperty,
	}

	for _, st := range stmts {
		subject := t.ensure(st.Subject)
		predicate := st.Predicate.Key()

		if st.Object.IsLiteral() {
			label := types.LocalName(predicate)
			subject.Properties[label] = append(subject.Properties[label], st.Object.Literal)
			continue
		}

		object := t.ensure(st.Object.ID)
		if predicate == v.TypePredicate {
			subject.Type = object.ID
			continue
		}

		t.relations = append(t.relations, Relation{
			Source:    subject.ID,
			Target:    object.ID,
			Predicate: predicate,
			Label:     types.LocalName(predicate),
		})
	}

	return t
}

func (t *Table) ensure(id types.Identifier) *Entity {
	key := id.Key()
	if e, ok := t.byID[key]; ok {
		return e
	}
	e := &Entity{
		ID:         key,
		Label:      types.LocalName(key),
		Anonymous:  id.IsAnonymous(),
		Properties: make(map[string][]string),
	}
	t.byID[key] = e
	t.entities = append(t.entities, e)
	return e
}

// Entity looks up an entity by key.
func (t *Table) Entity(id string) (*Entity, bool) {
	e, ok := t.byID[id]
	return e, ok
}

// Entities returns all entities in first-reference order. The slice is shared.
func (t *Table) Entities() []*Entity { return t.entities }

// Relations returns all relations in statement order. The slice is shared.
func (t *Table) Relations() []Relation { return t.relations }

// Len is the number of entities.
func (t *Table) Len() int { return len(t.entities) }

// Statements is the number of statements consumed by Build.
func (t *Table) Statements() int { return t.statements }

// LabelProperty is the property label preferred for display.
func (t *Table) LabelProperty() string { return t.labelProp }

// Detail returns the unfiltered view.
func (t *Table) Detail() Detail {
	return Detail{AllNodes: t.entities, AllLinks: t.relations}
}
