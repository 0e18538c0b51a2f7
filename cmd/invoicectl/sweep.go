package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/invoice_management_app/internal/core/services"
	"github.com/SscSPs/invoice_management_app/internal/jobs"
	"github.com/SscSPs/invoice_management_app/internal/platform/config"
	"github.com/SscSPs/invoice_management_app/internal/repositories/database/pgsql"
	"github.com/SscSPs/invoice_management_app/pkg/database"
	"github.com/hibiken/asynq"
	"github.com/spf13/cobra"
)

var sweepCmd = &cobra.Command{
	Use:   "sweep-overdue",
	Short: "Flag pending installments past their due date as overdue",
	Long: `Run the overdue installment sweep across all tenants. By default the sweep runs
in-process against PGSQL_URL; with --enqueue it is handed to the worker
through the Redis queue at REDIS_ADDR instead.`,
	Example: `  invoicectl sweep-overdue
  invoicectl sweep-overdue --as-of 2025-03-01
  invoicectl sweep-overdue --enqueue`,
	RunE: runSweep,
}

func init() {
	sweepCmd.Flags().String("as-of", "", "Sweep date (YYYY-MM-DD, default now)")
	sweepCmd.Flags().Bool("enqueue", false, "Enqueue the sweep for the worker instead of running it")
}

func runSweep(cmd *cobra.Command, _ []string) error {
	asOfStr, _ := cmd.Flags().GetString("as-of")
	enqueue, _ := cmd.Flags().GetBool("enqueue")
	logger := cliLogger(cmd)
	ctx := cmd.Context()

	var asOf *time.Time
	if asOfStr != "" {
		t, err := time.Parse(time.DateOnly, asOfStr)
		if err != nil {
			return fmt.Errorf("invalid --as-of %q: expected YYYY-MM-DD", asOfStr)
		}
		asOf = &t
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	if enqueue {
		client := jobs.NewClient(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
		defer client.Close()
		info, err := client.EnqueueSweepOverdue(ctx, asOf)
		if err != nil {
			return fmt.Errorf("enqueue sweep: %w", err)
		}
		logger.Info("Sweep enqueued", slog.String("task_id", info.ID), slog.String("queue", info.Queue))
		return nil
	}

	pool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, true)
	if err != nil {
		return err
	}
	defer pool.Close()

	svc := services.NewInvoiceService(pgsql.NewRepositoryProvider(pool).InvoiceRepo)
	when := time.Now().UTC()
	if asOf != nil {
		when = *asOf
	}
	flagged, err := svc.SweepOverdueInstallments(ctx, when)
	if err != nil {
		return err
	}
	logger.Info("Sweep finished", slog.Int("invoices_updated", flagged), slog.Time("as_of", when))
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "%d invoice(s) updated\n", flagged)
	return err
}
