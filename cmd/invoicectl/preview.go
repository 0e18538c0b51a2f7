package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/SscSPs/invoice_management_app/internal/apperrors"
	"github.com/SscSPs/invoice_management_app/internal/core/services"
	"github.com/SscSPs/invoice_management_app/internal/dto"
	"github.com/spf13/cobra"
)

var previewCmd = &cobra.Command{
	Use:   "preview [invoice.json]",
	Short: "Recompute an invoice document without saving it",
	Long: `Read an invoice document in the API request format, run the full recompute
and print the resulting invoice with its derived totals and schedule warnings.
Field errors are printed as JSON and the command exits non-zero.`,
	Example: `  invoicectl preview invoice.json
  invoicectl preview - < invoice.json`,
	Args: cobra.ExactArgs(1),
	RunE: runPreview,
}

func init() {
	previewCmd.Flags().String("tenant", "cli", "Tenant ID stamped on the previewed invoice")
}

func runPreview(cmd *cobra.Command, args []string) error {
	tenantID, _ := cmd.Flags().GetString("tenant")

	in := cmd.InOrStdin()
	if args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("open invoice document: %w", err)
		}
		defer f.Close()
		in = f
	}

	var req dto.InvoiceRequest
	dec := json.NewDecoder(in)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		return fmt.Errorf("decode invoice document: %w", err)
	}

	inv, err := services.BuildInvoice(tenantID, req)
	if err != nil {
		var verrs apperrors.ValidationErrors
		if errors.As(err, &verrs) {
			if werr := writeJSON(cmd.OutOrStdout(), verrs); werr != nil {
				return werr
			}
		}
		return err
	}
	return writeJSON(cmd.OutOrStdout(), dto.ToInvoiceResponse(&inv))
}
