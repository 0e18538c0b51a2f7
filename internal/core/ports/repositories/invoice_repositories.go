package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/invoice_management_app/internal/core/domain"
)

// InvoiceReader defines read operations for invoice data
type InvoiceReader interface {
	// FindInvoiceByID loads an invoice with its items, payments and installments.
	// Derived totals are not loaded; callers recompute them.
	FindInvoiceByID(ctx context.Context, tenantID, invoiceID string) (*domain.Invoice, error)

	// ListInvoices retrieves a page of invoice summaries for a tenant, newest invoice date first.
	// It returns the summaries, a token for the next page, and an error.
	ListInvoices(ctx context.Context, tenantID string, branchID *string, limit int, nextToken *string) ([]domain.InvoiceSummary, *string, error)

	// ListInvoicesWithDueInstallments finds invoices holding a pending installment due before asOf.
	ListInvoicesWithDueInstallments(ctx context.Context, asOf time.Time, limit int) ([]domain.InvoiceRef, error)
}

// InvoiceWriter defines write operations for invoice data
type InvoiceWriter interface {
	// SaveInvoice inserts a new invoice and its sub-collections at revision 1.
	// A taken invoice number yields apperrors.ErrDuplicate.
	SaveInvoice(ctx context.Context, invoice domain.Invoice) error

	// UpdateInvoice rewrites the invoice document if its stored revision still equals
	// expectedRevision, bumping the revision by one. A stale revision yields apperrors.ErrConflict.
	UpdateInvoice(ctx context.Context, invoice domain.Invoice, expectedRevision int64) error
}

// InvoiceRepositoryFacade combines all invoice-related repository interfaces
type InvoiceRepositoryFacade interface {
	InvoiceReader
	InvoiceWriter
}

// InvoiceRepositoryWithTx extends InvoiceRepositoryFacade with transaction capabilities
type InvoiceRepositoryWithTx interface {
	InvoiceRepositoryFacade
	TransactionManager
}
