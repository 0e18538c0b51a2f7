package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "invoicectl",
	Short: "Operations CLI for the invoice backend",
	Long: `invoicectl runs the invoice engine outside the HTTP API.

It can preview an invoice document without persisting it, print an installment
schedule, run the overdue installment sweep and apply database migrations.
Commands that touch the database read the same environment as the server
(PGSQL_URL, MIGRATIONS_PATH, REDIS_ADDR).`,
	Version:       "1.0.0",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(scheduleCmd)
	rootCmd.AddCommand(sweepCmd)
	rootCmd.AddCommand(migrateCmd)
}

func cliLogger(cmd *cobra.Command) *slog.Logger {
	return slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), nil)).With(slog.String("component", "invoicectl"))
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
