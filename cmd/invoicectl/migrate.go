package main

import (
	"fmt"

	"github.com/SscSPs/invoice_management_app/internal/platform/config"
	"github.com/SscSPs/invoice_management_app/internal/platform/migrations"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:       "migrate [up|down]",
	Short:     "Apply or roll back database migrations",
	Long:      `"up" applies every pending migration; "down" rolls back the most recent one.`,
	Example:   "  invoicectl migrate up\n  invoicectl migrate down",
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{string(migrations.Up), string(migrations.Down)},
	RunE:      runMigrate,
}

func runMigrate(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	changed, err := migrations.Run(cfg.DatabaseURL, cfg.MigrationsPath, migrations.Direction(args[0]), cliLogger(cmd))
	if err != nil {
		return err
	}
	if !changed {
		_, err = fmt.Fprintln(cmd.OutOrStdout(), "no change")
		return err
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "migrate %s: done\n", args[0])
	return err
}
