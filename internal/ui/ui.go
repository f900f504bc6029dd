// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Sigil Contributors

// Package ui renders CLI output: trees and tables through lipgloss, one-line
// status messages through fatih/color.
package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/charmbracelet/lipgloss/tree"
	"github.com/fatih/color"

	"github.com/sigil-dev/rdfexplorer/internal/navigate"
	"github.com/sigil-dev/rdfexplorer/internal/ontology"
)

// Status colors.
var (
	Good   = color.New(color.FgGreen)
	Bad    = color.New(color.FgRed)
	Warn   = color.New(color.FgYellow)
	Subtle = color.New(color.FgHiBlack)
)

// --- lipgloss styles ---

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("99"))
	keyStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
)

// StatusIcon returns a check mark or a cross.
func StatusIcon(ok bool) string {
	if ok {
		return Good.Sprint("✓")
	}
	return Bad.Sprint("✗")
}

// Statusf writes one status line prefixed with StatusIcon(ok).
func Statusf(w io.Writer, ok bool, format string, args ...any) {
	_, _ = fmt.Fprintf(w, "%s %s\n", StatusIcon(ok), fmt.Sprintf(format, args...))
}

// Warnf writes one warning line.
func Warnf(w io.Writer, format string, args ...any) {
	_, _ = fmt.Fprintf(w, "%s %s\n", Warn.Sprint("⚠"), fmt.Sprintf(format, args...))
}

// Title renders a section heading.
func Title(s string) string {
	return titleStyle.Render(s)
}

// Table renders rows under headers with a rounded border.
func Table(headers []string, rows [][]string) string {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(dimStyle).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	return t.Render()
}

// Fields renders aligned key/value lines, skipping empty values.
func Fields(pairs [][2]string) string {
	width := 0
	for _, p := range pairs {
		if p[1] != "" && len(p[0]) > width {
			width = len(p[0])
		}
	}
	var b strings.Builder
	for _, p := range pairs {
		if p[1] == "" {
			continue
		}
		b.WriteString(keyStyle.Render(fmt.Sprintf("%-*s", width, p[0])))
		b.WriteString("  ")
		b.WriteString(p[1])
		b.WriteString("\n")
	}
	return b.String()
}

// TreeOptions bounds a rendered forest.
type TreeOptions struct {
	// Root renders only the subtree under this id.
	Root string
	// Depth limits levels below the top; zero means unlimited.
	Depth int
	// MaxChildren limits children listed per node; zero means unlimited.
	MaxChildren int
}

// Forest renders the ontology tree.
func Forest(f *navigate.Forest, t *ontology.Table, opts TreeOptions) string {
	label := func(id string) string {
		s := t.ResolveLabel(id)
		if n := f.Descendants(id); n > 0 {
			s += " " + dimStyle.Render(fmt.Sprintf("(%d)", n))
		}
		return s
	}

	var build func(id string, depth int) *tree.Tree
	build = func(id string, depth int) *tree.Tree {
		node := tree.Root(label(id))
		if opts.Depth > 0 && depth >= opts.Depth {
			return node
		}
		children := f.Children(id)
		shown := children
		if opts.MaxChildren > 0 && len(children) > opts.MaxChildren {
			shown = children[:opts.MaxChildren]
		}
		for _, c := range shown {
			if len(f.Children(c)) == 0 || (opts.Depth > 0 && depth+1 >= opts.Depth) {
				node.Child(label(c))
				continue
			}
			node.Child(build(c, depth+1))
		}
		if hidden := len(children) - len(shown); hidden > 0 {
			node.Child(dimStyle.Render(fmt.Sprintf("… %d more", hidden)))
		}
		return node
	}

	if opts.Root != "" {
		return build(opts.Root, 0).String()
	}

	top := tree.Root(titleStyle.Render("ontology"))
	roots := f.Roots()
	shown := roots
	if opts.MaxChildren > 0 && len(roots) > opts.MaxChildren {
		shown = roots[:opts.MaxChildren]
	}
	for _, r := range shown {
		if len(f.Children(r)) == 0 || opts.Depth == 1 {
			top.Child(label(r))
			continue
		}
		top.Child(build(r, 1))
	}
	if hidden := len(roots) - len(shown); hidden > 0 {
		top.Child(dimStyle.Render(fmt.Sprintf("… %d more", hidden)))
	}
	return top.String()
}
