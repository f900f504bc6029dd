// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Sigil Contributors

package navigate_test

import (
	"testing"

	"github.com/sigil-dev/rdfexplorer/internal/navigate"
	"github.com/sigil-dev/rdfexplorer/internal/ontology"
	"github.com/sigil-dev/rdfexplorer/internal/vocab"
	"github.com/sigil-dev/rdfexplorer/pkg/types"
	"github.com/stretchr/testify/require"
)

const (
	ex         = "http://example.org/"
	rdfType    = "http://www.w3.org/1999/02/22-rdf-syntax-ns#type"
	subClassOf = "http://www.w3.org/2000/01/rdf-schema#subClassOf"
	labelPred  = "http://www.w3.org/2000/01/rdf-schema#label"
	thing      = ex + "Thing"
	other      = ex + "Other"
	relatedTo  = ex + "relatedTo"
	equivalent = "http://www.w3.org/2002/07/owl#equivalentClass"
)

type fixture struct {
	vocab  *vocab.Vocabulary
	table  *ontology.Table
	graph  *ontology.DomainGraph
	forest *navigate.Forest
}

func newFixture(t *testing.T, stmts ...types.Statement) *fixture {
	t.Helper()
	p := &vocab.Profile{
		Name:               "test",
		TypePredicate:      rdfType,
		HierarchyPredicate: subClassOf,
		DomainTypes:        []string{thing, other},
		SemanticPredicates: []string{subClassOf, relatedTo, equivalent},
		ClassLabels:        map[string]string{thing: "Thing", other: "Other"},
		RelationGroups: vocab.RelationGroups{
			Hierarchy:   []string{"subClassOf"},
			Equivalents: []string{"equivalentClass"},
			Tags:        []string{"hasAssociatedTag"},
			Quantities:  []string{"hasQuantity"},
			Substances:  []string{"hasSubstance"},
			Units:       []string{"applicableUnit"},
		},
	}
	v, err := p.Compile()
	require.NoError(t, err)

	table := ontology.Build(stmts, v)
	graph := ontology.Filter(table, v)
	ontology.NewResolver(table, graph, v, nil).Assign()
	return &fixture{vocab: v, table: table, graph: graph, forest: navigate.BuildForest(table, graph, v)}
}

func rel(s, p, o string) types.Statement {
	return types.Statement{Subject: types.Named(ex + s), Predicate: types.Named(p), Object: types.Resource(types.Named(ex + o))}
}

func lit(s, p, v string) types.Statement {
	return types.Statement{Subject: types.Named(ex + s), Predicate: types.Named(p), Object: types.Literal(v)}
}

func isA(class string, names ...string) []types.Statement {
	out := make([]types.Statement, 0, len(names))
	for _, n := range names {
		out = append(out, types.Statement{
			Subject:   types.Named(ex + n),
			Predicate: types.Named(rdfType),
			Object:    types.Resource(types.Named(class)),
		})
	}
	return out
}

func concat(groups ...[]types.Statement) []types.Statement {
	var out []types.Statement
	for _, g := range groups {
		out = append(out, g...)
	}
	return out
}

func names(ids []string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, id[len(ex):])
	}
	return out
}

func nodeNames(nodes []*ontology.Entity) []string {
	out := make([]string, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, n.ID[len(ex):])
	}
	return out
}
