// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Sigil Contributors

package main

import (
	"github.com/spf13/cobra"

	"github.com/sigil-dev/rdfexplorer/internal/config"
	"github.com/sigil-dev/rdfexplorer/internal/ui"
)

func newInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a commented default config file",
		Long:  "Write the default rdfexplorer.yaml to ~/.config/rdfexplorer/ or the given --path. Existing files are kept unless --force is set.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, _ := cmd.Flags().GetString("path")
			force, _ := cmd.Flags().GetBool("force")
			if path == "" {
				var err error
				if path, err = config.DefaultConfigPath(); err != nil {
					return err
				}
			}

			wrote, err := config.WriteDefault(path, force)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if !wrote {
				ui.Warnf(out, "%s already exists; pass --force to overwrite", path)
				return nil
			}
			ui.Statusf(out, true, "wrote %s", path)
			return nil
		},
	}

	cmd.Flags().String("path", "", "config file to write")
	cmd.Flags().Bool("force", false, "overwrite an existing file")

	return cmd
}
