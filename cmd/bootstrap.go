// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/canonical/pelada-admin/pkg/credentials"
	"github.com/canonical/pelada-admin/pkg/setup"
)

var bootstrapCmd = &cobra.Command{
	Use:   "bootstrap",
	Short: "Create the pelada schema in the backend of a client",
	Long:  `Create the pelada tables in the backend of a registered client, and optionally its admin user. Safe to run more than once.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		email, _ := cmd.Flags().GetString("email")
		adminPassword, _ := cmd.Flags().GetString("admin-password")

		specs, err := loadSpecs()
		if err != nil {
			return err
		}

		tracer, monitor, logger := cliTelemetry(specs)
		defer logger.Sync()

		r, err := newRegistry(cmd.Context(), specs, tracer, monitor, logger)
		if err != nil {
			return err
		}
		defer r.close()

		connections := newConnectionFactory(specs, r, tracer, monitor, logger)
		defer connections.ClearCache()

		hasher := credentials.NewBcryptVerifier(0, tracer, monitor, logger)

		if err := setup.NewService(connections, hasher, tracer, monitor, logger).Bootstrap(cmd.Context(), email, adminPassword); err != nil {
			return fmt.Errorf("failed to bootstrap %s: %w", email, err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Schema ready for %s\n", email)
		if adminPassword != "" {
			fmt.Fprintf(cmd.OutOrStdout(), "User %q can now log in\n", setup.AdminUsername)
		}
		return nil
	},
}

var printSchemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the pelada schema instead of applying it",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprint(cmd.OutOrStdout(), setup.Schema)
	},
}

func init() {
	bootstrapCmd.Flags().String("email", "", "login email of the client")
	bootstrapCmd.Flags().String("admin-password", "", "password of the admin user, no user is created when empty")
	_ = bootstrapCmd.MarkFlagRequired("email")

	bootstrapCmd.AddCommand(printSchemaCmd)
	rootCmd.AddCommand(bootstrapCmd)
}
