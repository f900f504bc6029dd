// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Sigil Contributors

package navigate

import (
	"github.com/sigil-dev/rdfexplorer/internal/ontology"
	"github.com/sigil-dev/rdfexplorer/pkg/types"
)

// Properties shown in their own sections of the detail view.
var specialProperties = map[string]bool{
	"label":                        true,
	"definition":                   true,
	"description":                  true,
	"comment":                      true,
	"deprecated":                   true,
	"seeAlso":                      true,
	"deprecatedInVersion":          true,
	"deprecationMitigationMessage": true,
}

// NodeInfo is the wiki-style summary of one entity.
type NodeInfo struct {
	ID                 string              `json:"id"`
	DisplayName        string              `json:"displayName"`
	Type               string              `json:"type,omitempty"`
	TypeLabel          string              `json:"typeLabel,omitempty"`
	Domain             bool                `json:"domain"`
	Anonymous          bool                `json:"anonymous,omitempty"`
	Category           string              `json:"category,omitempty"`
	CategoryLabel      string              `json:"categoryLabel,omitempty"`
	Definition         string              `json:"definition,omitempty"`
	Comment            string              `json:"comment,omitempty"`
	Deprecated         bool                `json:"deprecated"`
	DeprecationMessage string              `json:"deprecationMessage,omitempty"`
	SeeAlso            []string            `json:"seeAlso"`
	Properties         map[string][]string `json:"properties"`
}

// Inspect summarizes id. ok is false for ids unknown to the table.
func Inspect(t *ontology.Table, g *ontology.DomainGraph, id string) (NodeInfo, bool) {
	e, ok := t.Entity(id)
	if !ok {
		return NodeInfo{}, false
	}

	info := NodeInfo{
		ID:            e.ID,
		DisplayName:   t.DisplayLabel(e),
		Type:          e.Type,
		Domain:        g.Has(e.ID),
		Anonymous:     e.Anonymous,
		Category:      e.Category,
		CategoryLabel: e.CategoryLabel,
		SeeAlso:       append([]string{}, e.Properties["seeAlso"]...),
		Properties:    make(map[string][]string),
	}
	if c, ok := g.Class(e.Type); ok {
		info.TypeLabel = c.Label
	} else if e.Type != "" {
		info.TypeLabel = ontology.Humanize(types.LocalName(e.Type))
	}

	if def, ok := e.Property("definition"); ok {
		info.Definition = def
	} else if desc, ok := e.Property("description"); ok {
		info.Definition = desc
	}
	info.Comment, _ = e.Property("comment")

	if dep, _ := e.Property("deprecated"); dep == "true" {
		info.Deprecated = true
		info.DeprecationMessage, _ = e.Property("deprecationMitigationMessage")
	}

	for k, v := range e.Properties {
		if specialProperties[k] || k == t.LabelProperty() {
			continue
		}
		info.Properties[k] = v
	}
	return info, true
}
