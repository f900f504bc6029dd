// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Sigil Contributors

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sigil-dev/rdfexplorer/internal/navigate"
	"github.com/sigil-dev/rdfexplorer/internal/server"
	"github.com/sigil-dev/rdfexplorer/internal/ui"
	rdferr "github.com/sigil-dev/rdfexplorer/pkg/errors"
)

func itoa(n int) string { return strconv.Itoa(n) }

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newStatsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats [source]",
		Short: "Print dataset statistics",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := a.loadSnapshot(background(cmd), args)
			if err != nil {
				return err
			}
			top, _ := cmd.Flags().GetInt("top")
			stats := snap.Stats(top)

			out := cmd.OutOrStdout()
			if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
				return writeJSON(out, stats)
			}

			_, _ = fmt.Fprintln(out, ui.Title("Dataset"))
			_, _ = fmt.Fprintln(out, ui.Table([]string{"Metric", "Count"}, [][]string{
				{"statements", itoa(stats.Statements)},
				{"entities", itoa(stats.Entities)},
				{"relations", itoa(stats.Relations)},
				{"domain nodes", itoa(stats.DomainNodes)},
				{"domain links", itoa(stats.DomainLinks)},
				{"tree roots", itoa(stats.Roots)},
				{"promoted roots", itoa(stats.Promoted)},
			}))

			if len(stats.Classes) > 0 {
				rows := make([][]string, 0, len(stats.Classes))
				for _, c := range stats.Classes {
					rows = append(rows, []string{c.Label, itoa(c.Nodes)})
				}
				_, _ = fmt.Fprintln(out, ui.Title("Classes"))
				_, _ = fmt.Fprintln(out, ui.Table([]string{"Class", "Nodes"}, rows))
			}

			if len(stats.TopRoots) > 0 {
				rows := make([][]string, 0, len(stats.TopRoots))
				for _, r := range stats.TopRoots {
					rows = append(rows, []string{r.Label, itoa(r.DirectChildren), itoa(r.Descendants)})
				}
				_, _ = fmt.Fprintln(out, ui.Title("Top roots"))
				_, _ = fmt.Fprintln(out, ui.Table([]string{"Root", "Children", "Descendants"}, rows))
			}

			if snap.Cycles > 0 {
				ui.Warnf(out, "%d nodes sit on subclass cycles", snap.Cycles)
			}
			return nil
		},
	}

	cmd.Flags().Int("top", server.DefaultTopRoots, "number of top roots to list")
	cmd.Flags().Bool("json", false, "print JSON instead of tables")

	return cmd
}

func newTreeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tree [source]",
		Short: "Print the ontology tree",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := a.loadSnapshot(background(cmd), args)
			if err != nil {
				return err
			}

			var opts ui.TreeOptions
			opts.Root, _ = cmd.Flags().GetString("root")
			opts.Depth, _ = cmd.Flags().GetInt("depth")
			opts.MaxChildren, _ = cmd.Flags().GetInt("max-children")

			if opts.Root != "" && !snap.Graph.Has(opts.Root) {
				return rdferr.New(rdferr.CodeCLIInputInvalid, "node "+opts.Root+" is not in the tree", rdferr.FieldNodeID(opts.Root))
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), ui.Forest(snap.Forest, snap.Table, opts))
			return err
		},
	}

	cmd.Flags().String("root", "", "only print the subtree under this node id")
	cmd.Flags().Int("depth", 0, "maximum depth (0 for unlimited)")
	cmd.Flags().Int("max-children", 0, "maximum children listed per node (0 for unlimited)")

	return cmd
}

func newInspectCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect <id> [source]",
		Short: "Show one node's details and relations",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := a.loadSnapshot(background(cmd), args[1:])
			if err != nil {
				return err
			}
			id := args[0]

			info, ok := navigate.Inspect(snap.Table, snap.Graph, id)
			if !ok {
				return rdferr.New(rdferr.CodeOntologyEntityNotFound, "entity "+id+" not found", rdferr.FieldNodeID(id))
			}
			rels, _ := snap.Relations.Resolve(id)
			parent, _ := snap.Forest.Parent(id)

			out := cmd.OutOrStdout()
			if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
				return writeJSON(out, server.NodeBody{NodeInfo: info, Parent: parent, Relations: rels})
			}

			_, _ = fmt.Fprintln(out, ui.Title(info.DisplayName))
			pairs := [][2]string{
				{"id", info.ID},
				{"type", info.TypeLabel},
				{"category", info.CategoryLabel},
				{"parent", snap.Table.ResolveLabel(parent)},
				{"definition", info.Definition},
				{"comment", info.Comment},
			}
			if parent == "" {
				pairs[3][1] = ""
			}
			if info.Deprecated {
				pairs = append(pairs, [2]string{"deprecated", strings.TrimSpace("yes " + info.DeprecationMessage)})
			}
			if len(rels.Ancestors) > 0 {
				labels := make([]string, len(rels.Ancestors))
				for i, an := range rels.Ancestors {
					labels[i] = an.Label
				}
				pairs = append(pairs, [2]string{"inherits from", strings.Join(labels, " › ")})
			}
			_, _ = fmt.Fprint(out, ui.Fields(pairs))

			groups := []struct {
				name string
				refs []navigate.RelationRef
			}{
				{"Parents", rels.Groups.Parents},
				{"Children", rels.Groups.Children},
				{"Equivalents", rels.Groups.Equivalents},
				{"Tags", rels.Groups.Tags},
				{"Quantities", rels.Groups.Quantities},
				{"Substances", rels.Groups.Substances},
				{"Units", rels.Groups.Units},
				{"Other outgoing", rels.Groups.OtherOut},
				{"Other incoming", rels.Groups.OtherIn},
			}
			for _, g := range groups {
				if len(g.refs) == 0 {
					continue
				}
				rows := make([][]string, 0, len(g.refs))
				for _, r := range g.refs {
					rows = append(rows, []string{r.Predicate, r.Label, r.ID})
				}
				_, _ = fmt.Fprintln(out, ui.Title(g.name))
				_, _ = fmt.Fprintln(out, ui.Table([]string{"Predicate", "Label", "ID"}, rows))
			}
			if rels.Cycle {
				ui.Warnf(out, "ancestor chain loops back to %s", info.DisplayName)
			}
			return nil
		},
	}

	cmd.Flags().Bool("json", false, "print JSON instead of tables")

	return cmd
}

func newSearchCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search <query> [source]",
		Short: "Search node and class labels",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := a.loadSnapshot(background(cmd), args[1:])
			if err != nil {
				return err
			}
			limit, _ := cmd.Flags().GetInt("limit")
			if limit <= 0 {
				limit = a.cfg.View.SearchMaxResults
			}
			res := navigate.Search(snap.Graph, args[0], limit)

			out := cmd.OutOrStdout()
			if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
				return writeJSON(out, res)
			}

			if len(res.Classes) > 0 {
				rows := make([][]string, 0, len(res.Classes))
				for _, c := range res.Classes {
					rows = append(rows, []string{c.Label, c.URI})
				}
				_, _ = fmt.Fprintln(out, ui.Title("Classes"))
				_, _ = fmt.Fprintln(out, ui.Table([]string{"Class", "URI"}, rows))
			}
			if len(res.Nodes) > 0 {
				rows := make([][]string, 0, len(res.Nodes))
				for _, n := range res.Nodes {
					rows = append(rows, []string{snap.Table.DisplayLabel(n), n.CategoryLabel, n.ID})
				}
				_, _ = fmt.Fprintln(out, ui.Title("Nodes"))
				_, _ = fmt.Fprintln(out, ui.Table([]string{"Label", "Category", "ID"}, rows))
			}
			if len(res.Classes) == 0 && len(res.Nodes) == 0 {
				ui.Statusf(out, false, "no matches for %q", args[0])
			}
			if res.Truncated {
				ui.Warnf(out, "results truncated at %d nodes", limit)
			}
			return nil
		},
	}

	cmd.Flags().Int("limit", 0, "maximum node matches (0 uses view.search_max_results)")
	cmd.Flags().Bool("json", false, "print JSON instead of tables")

	return cmd
}

func newExportCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export [source]",
		Short: "Export a windowed subgraph as Graphviz DOT",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := a.loadSnapshot(background(cmd), args)
			if err != nil {
				return err
			}

			var req navigate.WindowRequest
			req.Class, _ = cmd.Flags().GetString("class")
			req.Focus, _ = cmd.Flags().GetString("focus")
			req.Limit, _ = cmd.Flags().GetInt("limit")
			if req.Limit < 0 {
				return rdferr.New(rdferr.CodeCLIInputInvalid, "--limit must not be negative")
			}
			if req.Limit == 0 {
				req.Limit = a.cfg.View.DefaultLimit
			}
			dot := navigate.ExportDOT(snap.Table, snap.Windower.Window(req))

			outPath, _ := cmd.Flags().GetString("out")
			if outPath == "" || outPath == "-" {
				_, err = io.WriteString(cmd.OutOrStdout(), dot)
				return err
			}
			if err := os.WriteFile(outPath, []byte(dot), 0o644); err != nil {
				return rdferr.Wrap(err, rdferr.CodeCLISetupFailure, "writing DOT output", rdferr.FieldPath(outPath))
			}
			ui.Statusf(cmd.ErrOrStderr(), true, "wrote %s", outPath)
			return nil
		},
	}

	cmd.Flags().String("class", "", "only nodes of this type URI, plus their direct neighbors")
	cmd.Flags().String("focus", "", "node id whose neighborhood is always included")
	cmd.Flags().Int("limit", 0, "maximum node count (0 uses view.default_limit)")
	cmd.Flags().StringP("out", "o", "", "output file (default stdout)")

	return cmd
}
