// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Sigil Contributors

package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/sigil-dev/rdfexplorer/internal/ui"
	rdferr "github.com/sigil-dev/rdfexplorer/pkg/errors"
	"github.com/sigil-dev/rdfexplorer/pkg/health"
)

func newStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show server status",
		Long:  "Query a running server's health endpoint and display the loaded dataset.",
		RunE:  runStatus,
	}

	cmd.Flags().String("address", "127.0.0.1:3000", "server address to check")

	return cmd
}

func runStatus(cmd *cobra.Command, _ []string) error {
	addr, _ := cmd.Flags().GetString("address")
	out := cmd.OutOrStdout()

	var st health.Status
	if err := newAPIClient(addr).getJSON("/health", &st); err != nil {
		if rdferr.HasCode(err, rdferr.CodeCLIServerNotRunning) {
			ui.Statusf(out, false, "rdfexplorer at %s is not running (connection refused)", addr)
			return nil
		}
		ui.Statusf(out, false, "rdfexplorer at %s: %s", addr, err)
		return nil
	}

	if st.Status != health.StatusOK {
		ui.Warnf(out, "rdfexplorer at %s: %s", addr, st.Status)
	} else {
		ui.Statusf(out, true, "rdfexplorer at %s: %s", addr, st.Status)
	}

	pairs := [][2]string{
		{"source", st.Source},
		{"generation", st.Generation},
	}
	if st.LoadedAt != nil {
		pairs = append(pairs, [2]string{"loaded", st.LoadedAt.Format(time.RFC3339)})
	}
	if st.Status == health.StatusOK {
		pairs = append(pairs,
			[2]string{"statements", itoa(st.Statements)},
			[2]string{"entities", itoa(st.Entities)},
			[2]string{"domain nodes", itoa(st.DomainNodes)},
			[2]string{"domain links", itoa(st.DomainLinks)},
			[2]string{"reloads", itoa(int(st.Reloads))},
		)
	}
	_, _ = out.Write([]byte(ui.Fields(pairs)))

	if st.LastError != "" {
		ui.Warnf(out, "last reload failed: %s", st.LastError)
	}
	return nil
}
