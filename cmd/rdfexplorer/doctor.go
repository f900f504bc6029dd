// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Sigil Contributors

package main

import (
	"fmt"
	"os"
	"runtime"
	"slices"

	"github.com/spf13/cobra"

	"github.com/sigil-dev/rdfexplorer/internal/config"
	"github.com/sigil-dev/rdfexplorer/internal/source"
	"github.com/sigil-dev/rdfexplorer/internal/ui"
	rdferr "github.com/sigil-dev/rdfexplorer/pkg/errors"
	"github.com/sigil-dev/rdfexplorer/pkg/health"
)

func newDoctorCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Run diagnostics",
		Long:  "Check the binary, configuration, source document, vocabulary profile and a running server.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			addr, _ := cmd.Flags().GetString("address")
			return a.runDoctor(cmd, addr)
		},
	}

	cmd.Flags().String("address", "127.0.0.1:3000", "server address to check")

	return cmd
}

// check is one diagnostic line. ok=false marks a problem.
type check struct {
	name   string
	ok     bool
	detail string
}

func (a *app) runDoctor(cmd *cobra.Command, addr string) error {
	w := cmd.OutOrStdout()

	checks := []check{
		{"Binary", true, fmt.Sprintf("rdfexplorer %s (%s/%s, %s)", version, runtime.GOOS, runtime.GOARCH, runtime.Version())},
		a.checkConfigFile(),
	}

	cfg, err := a.config()
	if err != nil {
		checks = append(checks, check{"Config", false, err.Error()})
	} else {
		checks = append(checks,
			check{"Config", true, "valid"},
			checkSource(cfg),
			checkVocabulary(cfg),
		)
	}
	checks = append(checks, checkServer(addr))

	for _, c := range checks {
		if _, err := fmt.Fprintf(w, "%s %-12s %s\n", ui.StatusIcon(c.ok), c.name+":", c.detail); err != nil {
			return err
		}
	}
	return nil
}

func (a *app) checkConfigFile() check {
	if used := a.v.ConfigFileUsed(); used != "" {
		return check{"Config file", true, "loaded from " + used}
	}
	return check{"Config file", true, "using defaults (no config file found)"}
}

func checkSource(cfg *config.Config) check {
	path := cfg.Source.Path
	if path == "" {
		return check{"Source", false, "source.path is not set"}
	}
	info, err := os.Stat(path)
	if err != nil {
		return check{"Source", false, err.Error()}
	}
	if info.IsDir() {
		return check{"Source", false, path + " is a directory"}
	}

	f, err := source.ParseFormat(cfg.Source.Format)
	if err == nil && f == source.FormatAuto {
		f, err = source.Detect(path)
	}
	if err != nil {
		return check{"Source", false, err.Error()}
	}
	if !slices.Contains(source.Formats(), f) {
		return check{"Source", false, fmt.Sprintf("no decoder registered for %s", f)}
	}
	return check{"Source", true, fmt.Sprintf("%s (%s, %s)", path, f, formatBytes(uint64(info.Size())))}
}

func checkVocabulary(cfg *config.Config) check {
	v, err := vocabulary(cfg)
	if err != nil {
		return check{"Vocabulary", false, err.Error()}
	}
	return check{"Vocabulary", true, fmt.Sprintf("profile %s (%d domain types)", cfg.Vocabulary.Profile, v.DomainTypeCount())}
}

func checkServer(addr string) check {
	var st health.Status
	if err := newAPIClient(addr).getJSON("/health", &st); err != nil {
		if rdferr.HasCode(err, rdferr.CodeCLIServerNotRunning) {
			// Not running is informational; serve is optional.
			return check{"Server", true, fmt.Sprintf("not running at %s (run 'rdfexplorer serve')", addr)}
		}
		return check{"Server", false, err.Error()}
	}
	return check{"Server", st.Status == health.StatusOK, fmt.Sprintf("%s at %s", st.Status, addr)}
}

// formatBytes formats a byte count as a human-readable string.
func formatBytes(b uint64) string {
	const (
		gb = 1024 * 1024 * 1024
		mb = 1024 * 1024
		kb = 1024
	)
	switch {
	case b >= gb:
		return fmt.Sprintf("%.1f GB", float64(b)/float64(gb))
	case b >= mb:
		return fmt.Sprintf("%.1f MB", float64(b)/float64(mb))
	case b >= kb:
		return fmt.Sprintf("%.1f KB", float64(b)/float64(kb))
	default:
		return fmt.Sprintf("%d bytes", b)
	}
}
