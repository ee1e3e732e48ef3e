// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/canonical/pelada-admin/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the build information",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		info := version.Info()

		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			return json.NewEncoder(cmd.OutOrStdout()).Encode(info)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "pelada-admin %s", info.Version)
		if info.Commit != "" {
			fmt.Fprintf(cmd.OutOrStdout(), " (%s)", info.Commit)
		}
		fmt.Fprintf(cmd.OutOrStdout(), " %s\n", info.GoVersion)

		return nil
	},
}

func init() {
	versionCmd.Flags().Bool("json", false, "print the build information as json")

	rootCmd.AddCommand(versionCmd)
}
