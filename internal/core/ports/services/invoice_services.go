package services

import (
	"context"
	"time"

	"github.com/SscSPs/invoice_management_app/internal/core/domain"
	"github.com/SscSPs/invoice_management_app/internal/dto"
)

// InvoiceTarget identifies the invoice a sub-collection change applies to and the revision the
// caller last saw.
type InvoiceTarget struct {
	TenantID         string
	InvoiceID        string
	ExpectedRevision int64
	UserID           string
}

// InvoiceReaderSvc defines read operations for invoice data
type InvoiceReaderSvc interface {
	// GetInvoice loads and recomputes an invoice.
	GetInvoice(ctx context.Context, tenantID, invoiceID string) (*domain.Invoice, error)

	// ListInvoices retrieves a page of invoice summaries.
	ListInvoices(ctx context.Context, tenantID string, params dto.ListInvoicesParams) (*dto.ListInvoicesResponse, error)
}

// InvoiceWriterSvc defines whole-document write operations
type InvoiceWriterSvc interface {
	// CreateInvoice builds, validates and persists a new invoice at revision 1.
	CreateInvoice(ctx context.Context, tenantID string, req dto.InvoiceRequest, userID string) (*domain.Invoice, error)

	// UpdateInvoice replaces the invoice document if expectedRevision is still current.
	UpdateInvoice(ctx context.Context, tenantID, invoiceID string, req dto.InvoiceRequest, expectedRevision int64, userID string) (*domain.Invoice, error)

	// PreviewInvoice builds and recomputes an invoice without persisting it.
	PreviewInvoice(ctx context.Context, tenantID string, req dto.InvoiceRequest) (*domain.Invoice, error)
}

// InvoiceLedgerSvc defines line item and payment mutations
type InvoiceLedgerSvc interface {
	AddItem(ctx context.Context, target InvoiceTarget, req dto.LineItemRequest) (*domain.Invoice, error)
	UpdateItem(ctx context.Context, target InvoiceTarget, itemID string, req dto.LineItemPatchRequest) (*domain.Invoice, error)
	RemoveItem(ctx context.Context, target InvoiceTarget, itemID string) (*domain.Invoice, error)

	AddPayment(ctx context.Context, target InvoiceTarget, req dto.PaymentRequest) (*domain.Invoice, error)
	UpdatePayment(ctx context.Context, target InvoiceTarget, paymentID string, req dto.PaymentPatchRequest) (*domain.Invoice, error)
	RemovePayment(ctx context.Context, target InvoiceTarget, paymentID string) (*domain.Invoice, error)

	// ApplyPayment records an advance or an installment settlement as one change.
	ApplyPayment(ctx context.Context, target InvoiceTarget, req dto.ApplyPaymentRequest) (*domain.Invoice, error)
}

// InstallmentSvc defines installment schedule operations
type InstallmentSvc interface {
	GenerateInstallments(ctx context.Context, target InvoiceTarget, req dto.GenerateInstallmentsRequest) (*domain.Invoice, error)
	AddInstallment(ctx context.Context, target InvoiceTarget, req dto.InstallmentRequest) (*domain.Invoice, error)
	UpdateInstallment(ctx context.Context, target InvoiceTarget, installmentID string, req dto.InstallmentPatchRequest) (*domain.Invoice, error)
	RemoveInstallment(ctx context.Context, target InvoiceTarget, installmentID string) (*domain.Invoice, error)
	MarkInstallmentPaid(ctx context.Context, target InvoiceTarget, installmentID string, req dto.MarkInstallmentPaidRequest) (*domain.Invoice, error)

	// SweepOverdueInstallments flags pending installments due before asOf across all tenants
	// and returns how many invoices were updated.
	SweepOverdueInstallments(ctx context.Context, asOf time.Time) (int, error)
}

// InvoiceSvcFacade combines all invoice-related service interfaces
type InvoiceSvcFacade interface {
	InvoiceReaderSvc
	InvoiceWriterSvc
	InvoiceLedgerSvc
	InstallmentSvc
}
