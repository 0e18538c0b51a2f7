package main

import (
	"fmt"
	"time"

	"github.com/SscSPs/invoice_management_app/internal/core/domain"
	"github.com/SscSPs/invoice_management_app/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Print an equal monthly installment schedule",
	Long: `Split an amount into count monthly installments. The split truncates to the
currency's minor unit and the remainder goes on the last installment.`,
	Example: `  invoicectl schedule --amount 1000.00 --count 3 --start 2025-01-31
  invoicectl schedule --amount 5000 --count 4 --currency JPY`,
	RunE: runSchedule,
}

func init() {
	scheduleCmd.Flags().String("amount", "", "Amount to split (major units, e.g. 1000.00)")
	scheduleCmd.Flags().Int("count", 1, fmt.Sprintf("Number of installments (1-%d)", domain.MaxInstallments))
	scheduleCmd.Flags().String("start", "", "Schedule start (YYYY-MM-DD, default today); installment i is due i months later")
	scheduleCmd.Flags().String("currency", "SAR", "ISO 4217 currency code")
	_ = scheduleCmd.MarkFlagRequired("amount")
}

func runSchedule(cmd *cobra.Command, _ []string) error {
	amountStr, _ := cmd.Flags().GetString("amount")
	count, _ := cmd.Flags().GetInt("count")
	startStr, _ := cmd.Flags().GetString("start")
	code, _ := cmd.Flags().GetString("currency")

	cur := domain.CurrencyOf(code)
	d, err := decimal.NewFromString(amountStr)
	if err != nil {
		return fmt.Errorf("invalid --amount %q: %w", amountStr, err)
	}
	amount, err := domain.MoneyFromDecimal(d, cur)
	if err != nil {
		return fmt.Errorf("invalid --amount: %w", err)
	}

	start := time.Now().UTC()
	if startStr != "" {
		if start, err = time.Parse(dto.DateLayout, startStr); err != nil {
			return fmt.Errorf("invalid --start %q: expected YYYY-MM-DD", startStr)
		}
	}

	installments, err := domain.GenerateInstallments(amount, count, start)
	if err != nil {
		return err
	}
	return writeJSON(cmd.OutOrStdout(), dto.ToInstallmentResponses(installments, cur))
}
