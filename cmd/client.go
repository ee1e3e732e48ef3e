// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/canonical/pelada-admin/internal/types"
	"github.com/canonical/pelada-admin/pkg/credentials"
)

var clientCmd = &cobra.Command{
	Use:   "client",
	Short: "Manage the client registry",
}

var addClientCmd = &cobra.Command{
	Use:   "add",
	Short: "Register or replace a client",
	RunE: func(cmd *cobra.Command, args []string) error {
		specs, err := loadSpecs()
		if err != nil {
			return err
		}

		tracer, monitor, logger := cliTelemetry(specs)
		defer logger.Sync()

		if specs.RegistryBackend != registryPostgres {
			logger.Warnf("registry backend is %q, the client is only kept for this run", specs.RegistryBackend)
		}

		flags := cmd.Flags()
		cfg := new(types.TenantConfig)
		cfg.Name, _ = flags.GetString("name")
		cfg.Email, _ = flags.GetString("email")
		cfg.URL, _ = flags.GetString("url")
		cfg.Key, _ = flags.GetString("key")
		cfg.ResponsibleName, _ = flags.GetString("responsible")
		cfg.Phone, _ = flags.GetString("phone")
		cfg.PeladaName, _ = flags.GetString("pelada")

		status, _ := flags.GetString("status")
		cfg.Status = types.TenantStatus(status)

		if password, _ := flags.GetString("system-password"); password != "" {
			if cfg.SystemPasswordHash, err = credentials.HashPassword(password); err != nil {
				return err
			}
		}

		r, err := newRegistry(cmd.Context(), specs, tracer, monitor, logger)
		if err != nil {
			return err
		}
		defer r.close()

		stored, err := r.Add(cmd.Context(), cfg)
		if err != nil {
			return fmt.Errorf("failed to add client: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Client registered: %s (ID: %s)\n", stored.Email, stored.ID)
		return nil
	},
}

var listClientsCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered clients",
	RunE: func(cmd *cobra.Command, args []string) error {
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

		clients, err := r.ListAll(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to list clients: %w", err)
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "EMAIL\tNAME\tPELADA\tSTATUS\tURL")
		for _, c := range clients {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", c.Email, c.Name, c.PeladaName, c.Status, c.URL)
		}
		w.Flush()
		return nil
	},
}

var validateClientCmd = &cobra.Command{
	Use:   "validate [email]",
	Short: "Check that the backend of a client accepts its key",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
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

		cfg, found, err := r.Lookup(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		if !found {
			return fmt.Errorf("client %s is not registered", args[0])
		}

		connections := newConnectionFactory(specs, r, tracer, monitor, logger)
		defer connections.ClearCache()

		if !connections.ValidateConnection(cmd.Context(), cfg.URL, cfg.Key) {
			return fmt.Errorf("backend of %s rejected its credentials", cfg.Email)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Connection of %s is valid\n", cfg.Email)
		return nil
	},
}

func init() {
	addClientCmd.Flags().String("name", "", "client display name")
	addClientCmd.Flags().String("email", "", "login email of the client")
	addClientCmd.Flags().String("url", "", "backend url, http(s) for the REST driver or postgres:// for direct SQL")
	addClientCmd.Flags().String("key", "", "backend key")
	addClientCmd.Flags().String("responsible", "", "name of the person responsible")
	addClientCmd.Flags().String("phone", "", "contact phone")
	addClientCmd.Flags().String("pelada", "", "pelada name")
	addClientCmd.Flags().String("status", string(types.TenantActive), "active, inactive or suspended")
	addClientCmd.Flags().String("system-password", "", "system login password, stored as a bcrypt hash")
	_ = addClientCmd.MarkFlagRequired("email")
	_ = addClientCmd.MarkFlagRequired("url")

	clientCmd.AddCommand(addClientCmd)
	clientCmd.AddCommand(listClientsCmd)
	clientCmd.AddCommand(validateClientCmd)

	rootCmd.AddCommand(clientCmd)
}
