// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Sigil Contributors

package navigate_test

import (
	"fmt"
	"testing"

	"github.com/sigil-dev/rdfexplorer/internal/navigate"
	"github.com/sigil-dev/rdfexplorer/pkg/types"
	"github.com/stretchr/testify/assert"
)

func focusFixture(t *testing.T) *fixture {
	return newFixture(t, concat(
		isA(thing, "X", "Y", "Z", "W"),
		[]types.Statement{
			rel("X", relatedTo, "Y"),
			rel("Z", relatedTo, "W"),
		},
	)...)
}

func TestWindow_FocusScenario(t *testing.T) {
	w := navigate.NewWindower(focusFixture(t).graph)

	got := w.Window(navigate.WindowRequest{Focus: ex + "Z", Limit: 2})
	assert.Equal(t, []string{"Z", "W"}, nodeNames(got.Nodes))
	assert.Len(t, got.Links, 1)

	got = w.Window(navigate.WindowRequest{Focus: ex + "Z", Limit: 3})
	assert.Equal(t, []string{"Z", "W", "X"}, nodeNames(got.Nodes), "spare slot goes to the best-ranked other node")
}

func TestWindow_FocusNeighborhoodExceedsLimit(t *testing.T) {
	w := navigate.NewWindower(focusFixture(t).graph)

	got := w.Window(navigate.WindowRequest{Focus: ex + "Z", Limit: 1})
	assert.ElementsMatch(t, []string{"Z", "W"}, nodeNames(got.Nodes))
}

func TestWindow_NoFocusRespectsLimit(t *testing.T) {
	f := newFixture(t, concat(
		isA(thing, "A", "B", "C", "D", "E"),
		[]types.Statement{
			rel("C", relatedTo, "D"),
			rel("C", relatedTo, "E"),
			rel("A", relatedTo, "B"),
		},
	)...)
	w := navigate.NewWindower(f.graph)

	assert.Equal(t, 2, w.Degree(ex+"C"))
	got := w.Window(navigate.WindowRequest{Limit: 3})
	assert.Equal(t, []string{"C", "A", "B"}, nodeNames(got.Nodes), "degree descending, input order on ties")
	assert.Len(t, got.Links, 1)
}

func TestWindow_DefaultLimit(t *testing.T) {
	w := navigate.NewWindower(focusFixture(t).graph)
	got := w.Window(navigate.WindowRequest{Limit: 0})
	assert.Len(t, got.Nodes, 4)
	assert.Len(t, got.Links, 2)
}

func classFixture(t *testing.T) *fixture {
	return newFixture(t, concat(
		isA(other, "P"),
		isA(thing, "Q", "R", "S", "U"),
		[]types.Statement{
			rel("P", relatedTo, "Q"),
			rel("Q", relatedTo, "R"),
			rel("S", relatedTo, "U"),
		},
	)...)
}

func TestWindow_ClassFilterExpandsOneHop(t *testing.T) {
	w := navigate.NewWindower(classFixture(t).graph)

	got := w.Window(navigate.WindowRequest{Class: other})
	assert.Equal(t, []string{"P", "Q"}, nodeNames(got.Nodes))
	assert.Len(t, got.Links, 1)
}

func TestWindow_FocusOutsideClassFilter(t *testing.T) {
	w := navigate.NewWindower(classFixture(t).graph)

	got := w.Window(navigate.WindowRequest{Class: other, Focus: ex + "S"})
	assert.Equal(t, []string{"P", "Q", "S", "U"}, nodeNames(got.Nodes))
}

func TestWindow_FocusInsideClassFilterStillGetsNeighbors(t *testing.T) {
	w := navigate.NewWindower(classFixture(t).graph)

	got := w.Window(navigate.WindowRequest{Class: other, Focus: ex + "Q"})
	assert.Equal(t, []string{"P", "Q", "R"}, nodeNames(got.Nodes))
}

func TestWindow_UnknownFocusIgnored(t *testing.T) {
	w := navigate.NewWindower(focusFixture(t).graph)
	got := w.Window(navigate.WindowRequest{Focus: ex + "missing", Limit: 2})
	assert.Len(t, got.Nodes, 2)
}

// Exhaustive check over every focus, class and small limit.
func TestWindow_Guarantees(t *testing.T) {
	f := newFixture(t, concat(
		isA(other, "P", "V"),
		isA(thing, "Q", "R", "S", "U", "T"),
		[]types.Statement{
			rel("P", relatedTo, "Q"),
			rel("Q", relatedTo, "R"),
			rel("S", relatedTo, "U"),
			rel("T", subClassOf, "S"),
			rel("T", relatedTo, "Q"),
			rel("V", relatedTo, "T"),
		},
	)...)
	w := navigate.NewWindower(f.graph)

	focuses := []string{""}
	for _, n := range f.graph.Nodes {
		focuses = append(focuses, n.ID)
	}
	for _, class := range []string{"", thing, other} {
		for _, focus := range focuses {
			for limit := 1; limit <= len(f.graph.Nodes)+1; limit++ {
				name := fmt.Sprintf("class=%s/focus=%s/limit=%d", class, focus, limit)
				got := w.Window(navigate.WindowRequest{Class: class, Focus: focus, Limit: limit})

				in := make(map[string]bool)
				for _, n := range got.Nodes {
					assert.False(t, in[n.ID], "%s: duplicate %s", name, n.ID)
					in[n.ID] = true
				}
				for _, l := range got.Links {
					assert.True(t, in[l.Source] && in[l.Target], "%s: dangling link", name)
				}

				if focus == "" {
					assert.LessOrEqual(t, len(got.Nodes), limit, name)
					continue
				}
				hood := w.Neighborhood(focus)
				for id := range hood {
					assert.True(t, in[id], "%s: missing focus neighbor %s", name, id)
				}
				assert.LessOrEqual(t, len(got.Nodes), max(limit, len(hood)), name)
			}
		}
	}
}

func TestSnapLimit(t *testing.T) {
	steps := navigate.DefaultLimitSteps
	assert.Equal(t, 100, navigate.SnapLimit(steps, 1))
	assert.Equal(t, 500, navigate.SnapLimit(steps, 500))
	assert.Equal(t, 1000, navigate.SnapLimit(steps, 501))
	assert.Equal(t, 10000, navigate.SnapLimit(steps, 50000))
	assert.Equal(t, 42, navigate.SnapLimit(nil, 42))
}

func TestLargeDataset(t *testing.T) {
	f := focusFixture(t)
	assert.False(t, navigate.LargeDataset(f.graph, 0))
	assert.True(t, navigate.LargeDataset(f.graph, 3))
}
