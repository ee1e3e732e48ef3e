// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package cmd

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/spf13/cobra"

	"github.com/canonical/pelada-admin/migrations"
)

const (
	formatText = "text"
	formatJSON = "json"

	// latest is the target of a plain "down", one step back
	latest int64 = -1
)

// migration is a parsed migrate invocation.
type migration struct {
	command string
	target  int64
}

// migrationReport is the json output of every migrate subcommand.
type migrationReport struct {
	Status  string                   `json:"status,omitempty"`
	Version int64                    `json:"version"`
	Applied []*goose.MigrationResult `json:"applied,omitempty"`
	Pending []string                 `json:"pending,omitempty"`
}

var migrateCmd = &cobra.Command{
	Use:   "migrate [up|down [version]|status|check]",
	Short: "Migrate the client registry database",
	Long:  `Apply or inspect the migrations of the control plane database holding the client registry. The DSN defaults to the DSN environment variable.`,
	Args: func(cmd *cobra.Command, args []string) error {
		_, err := parseMigration(args)
		return err
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		m, _ := parseMigration(args)

		dsn, _ := cmd.Flags().GetString("dsn")
		format, _ := cmd.Flags().GetString("format")

		if format != formatText && format != formatJSON {
			return fmt.Errorf("unknown output format %q", format)
		}

		if dsn == "" {
			specs, err := loadSpecs()
			if err != nil {
				return err
			}
			dsn = specs.DSN
		}

		if dsn == "" {
			return fmt.Errorf("no DSN given, set --dsn or DSN")
		}

		db, err := openMigrationDB(cmd.Context(), dsn)
		if err != nil {
			return err
		}
		defer db.Close()

		var opts []goose.ProviderOption
		if format == formatJSON {
			opts = append(opts, goose.WithLogger(goose.NopLogger()))
		}

		provider, err := goose.NewProvider(goose.DialectPostgres, db, migrations.EmbedMigrations, opts...)
		if err != nil {
			return fmt.Errorf("failed to load migrations: %w", err)
		}

		report, err := m.run(cmd.Context(), provider)
		if err != nil {
			return err
		}

		return writeReport(cmd.OutOrStdout(), format, m.command, report)
	},
}

func init() {
	migrateCmd.Flags().String("dsn", "", "control plane PostgreSQL DSN, defaults to the DSN environment variable")
	migrateCmd.Flags().StringP("format", "f", formatText, "output format, text or json")

	rootCmd.AddCommand(migrateCmd)
}

func parseMigration(args []string) (migration, error) {
	m := migration{command: "up", target: latest}

	if len(args) == 0 {
		return m, nil
	}

	if len(args) > 2 {
		return m, fmt.Errorf("too many arguments: %q", args)
	}

	m.command = args[0]

	switch m.command {
	case "up", "status", "check":
		if len(args) == 2 {
			return m, fmt.Errorf("%s takes no version", m.command)
		}
	case "down":
		if len(args) == 2 {
			v, err := strconv.ParseInt(args[1], 10, 64)
			if err != nil || v < 0 {
				return m, fmt.Errorf("invalid version number: %q", args[1])
			}
			m.target = v
		}
	default:
		return m, fmt.Errorf("unknown migrate command %q", m.command)
	}

	return m, nil
}

func openMigrationDB(ctx context.Context, dsn string) (*sql.DB, error) {
	config, err := pgx.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("invalid DSN: %w", err)
	}

	db := stdlib.OpenDB(*config)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("control plane database unreachable: %w", err)
	}

	return db, nil
}

func (m migration) run(ctx context.Context, provider *goose.Provider) (*migrationReport, error) {
	report := new(migrationReport)

	switch m.command {
	case "up":
		results, err := provider.Up(ctx)
		if err != nil {
			return nil, err
		}
		report.Applied = results
	case "down":
		if m.target == latest {
			result, err := provider.Down(ctx)
			if err != nil {
				return nil, err
			}
			report.Applied = []*goose.MigrationResult{result}
		} else {
			results, err := provider.DownTo(ctx, m.target)
			if err != nil {
				return nil, err
			}
			report.Applied = results
		}
	case "status", "check":
		statuses, err := provider.Status(ctx)
		if err != nil {
			return nil, err
		}

		for _, s := range statuses {
			if s.State != goose.StateApplied {
				report.Pending = append(report.Pending, s.Source.Path)
			}
		}

		report.Status = "ok"
		if len(report.Pending) > 0 {
			report.Status = "pending"
		}
	}

	version, err := provider.GetDBVersion(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read the database version: %w", err)
	}
	report.Version = version

	if m.command == "check" && report.Status == "pending" {
		return report, fmt.Errorf("%d migrations pending, database at version %d", len(report.Pending), version)
	}

	return report, nil
}

func writeReport(out io.Writer, format, command string, report *migrationReport) error {
	if format == formatJSON {
		return json.NewEncoder(out).Encode(report)
	}

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)

	switch command {
	case "up", "down":
		for _, r := range report.Applied {
			fmt.Fprintf(w, "%s\t%s\t%s\n", command, r.Source.Path, r.Duration.Round(time.Millisecond))
		}
	case "status":
		for _, p := range report.Pending {
			fmt.Fprintf(w, "pending\t%s\n", p)
		}
	}

	fmt.Fprintf(w, "version\t%d\n", report.Version)

	return w.Flush()
}
