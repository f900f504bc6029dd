// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Sigil Contributors

package ontology

import (
	"regexp"
	"strings"

	"github.com/sigil-dev/rdfexplorer/pkg/types"
)

var camelBoundary = regexp.MustCompile(`([a-z])([A-Z])`)

// Humanize turns a derived label into display text: underscores become
// spaces and lower-to-upper case boundaries are split.
func Humanize(s string) string {
	return camelBoundary.ReplaceAllString(strings.ReplaceAll(s, "_", " "), "$1 $2")
}

// DisplayLabel prefers the entity's label property over its humanized
// derived label.
func (t *Table) DisplayLabel(e *Entity) string {
	if lbl, ok := e.Property(t.labelProp); ok && lbl != "" {
		return lbl
	}
	return Humanize(e.Label)
}

// ResolveLabel never fails: unknown identifiers fall back to their last path
// segment.
func (t *Table) ResolveLabel(id string) string {
	if e, ok := t.byID[id]; ok {
		return t.DisplayLabel(e)
	}
	return types.LocalName(id)
}

// categoryLabel names a cluster. Only underscores are replaced so cluster
// names keep the ontology's own casing.
func (t *Table) categoryLabel(id string) string {
	e, ok := t.byID[id]
	if !ok {
		return types.LocalName(id)
	}
	if lbl, ok := e.Property(t.labelProp); ok && lbl != "" {
		return lbl
	}
	if e.Label != "" {
		return strings.ReplaceAll(e.Label, "_", " ")
	}
	return types.LocalName(id)
}
