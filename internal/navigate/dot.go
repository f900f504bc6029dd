// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Sigil Contributors

package navigate

import (
	"fmt"
	"strings"

	"github.com/sigil-dev/rdfexplorer/internal/ontology"
)

// ExportDOT renders a window in Graphviz DOT format. Nodes sharing a category
// are grouped in a cluster.
func ExportDOT(t *ontology.Table, w Window) string {
	var b strings.Builder
	b.WriteString("digraph ontology {\n")
	b.WriteString("  rankdir=BT;\n")
	b.WriteString("  node [shape=box, style=rounded];\n\n")

	var order []string
	clusters := make(map[string][]*ontology.Entity)
	for _, n := range w.Nodes {
		if _, ok := clusters[n.Category]; !ok {
			order = append(order, n.Category)
		}
		clusters[n.Category] = append(clusters[n.Category], n)
	}

	for i, cat := range order {
		indent := "  "
		if cat != "" {
			fmt.Fprintf(&b, "  subgraph cluster_%d {\n", i)
			fmt.Fprintf(&b, "    label=%s;\n", dotQuote(t.ResolveLabel(cat)))
			indent = "    "
		}
		for _, n := range clusters[cat] {
			fmt.Fprintf(&b, "%s%s [label=%s];\n", indent, dotQuote(n.ID), dotQuote(t.DisplayLabel(n)))
		}
		if cat != "" {
			b.WriteString("  }\n")
		}
	}

	b.WriteString("\n")
	for _, l := range w.Links {
		fmt.Fprintf(&b, "  %s -> %s [label=%s];\n", dotQuote(l.Source), dotQuote(l.Target), dotQuote(l.Label))
	}

	b.WriteString("}\n")
	return b.String()
}

// DOT strings only understand \" and \\. Newlines become the \n line
// break; every other byte passes through, UTF-8 included.
var dotEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\r\n", `\n`, "\n", `\n`, "\r", "")

func dotQuote(s string) string {
	return `"` + dotEscaper.Replace(s) + `"`
}
