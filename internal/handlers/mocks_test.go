package handlers_test

import (
	"context"
	"time"

	"github.com/SscSPs/invoice_management_app/internal/core/domain"
	portssvc "github.com/SscSPs/invoice_management_app/internal/core/ports/services"
	"github.com/SscSPs/invoice_management_app/internal/dto"
	"github.com/stretchr/testify/mock"
)

// --- Mock InvoiceService ---
type MockInvoiceService struct {
	mock.Mock
}

var _ portssvc.InvoiceSvcFacade = (*MockInvoiceService)(nil)

func (m *MockInvoiceService) invoice(args mock.Arguments) (*domain.Invoice, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *MockInvoiceService) GetInvoice(ctx context.Context, tenantID, invoiceID string) (*domain.Invoice, error) {
	return m.invoice(m.Called(ctx, tenantID, invoiceID))
}

func (m *MockInvoiceService) ListInvoices(ctx context.Context, tenantID string, params dto.ListInvoicesParams) (*dto.ListInvoicesResponse, error) {
	args := m.Called(ctx, tenantID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListInvoicesResponse), args.Error(1)
}

func (m *MockInvoiceService) CreateInvoice(ctx context.Context, tenantID string, req dto.InvoiceRequest, userID string) (*domain.Invoice, error) {
	return m.invoice(m.Called(ctx, tenantID, req, userID))
}

func (m *MockInvoiceService) UpdateInvoice(ctx context.Context, tenantID, invoiceID string, req dto.InvoiceRequest, expectedRevision int64, userID string) (*domain.Invoice, error) {
	return m.invoice(m.Called(ctx, tenantID, invoiceID, req, expectedRevision, userID))
}

func (m *MockInvoiceService) PreviewInvoice(ctx context.Context, tenantID string, req dto.InvoiceRequest) (*domain.Invoice, error) {
	return m.invoice(m.Called(ctx, tenantID, req))
}

func (m *MockInvoiceService) AddItem(ctx context.Context, target portssvc.InvoiceTarget, req dto.LineItemRequest) (*domain.Invoice, error) {
	return m.invoice(m.Called(ctx, target, req))
}

func (m *MockInvoiceService) UpdateItem(ctx context.Context, target portssvc.InvoiceTarget, itemID string, req dto.LineItemPatchRequest) (*domain.Invoice, error) {
	return m.invoice(m.Called(ctx, target, itemID, req))
}

func (m *MockInvoiceService) RemoveItem(ctx context.Context, target portssvc.InvoiceTarget, itemID string) (*domain.Invoice, error) {
	return m.invoice(m.Called(ctx, target, itemID))
}

func (m *MockInvoiceService) AddPayment(ctx context.Context, target portssvc.InvoiceTarget, req dto.PaymentRequest) (*domain.Invoice, error) {
	return m.invoice(m.Called(ctx, target, req))
}

func (m *MockInvoiceService) UpdatePayment(ctx context.Context, target portssvc.InvoiceTarget, paymentID string, req dto.PaymentPatchRequest) (*domain.Invoice, error) {
	return m.invoice(m.Called(ctx, target, paymentID, req))
}

func (m *MockInvoiceService) RemovePayment(ctx context.Context, target portssvc.InvoiceTarget, paymentID string) (*domain.Invoice, error) {
	return m.invoice(m.Called(ctx, target, paymentID))
}

func (m *MockInvoiceService) ApplyPayment(ctx context.Context, target portssvc.InvoiceTarget, req dto.ApplyPaymentRequest) (*domain.Invoice, error) {
	return m.invoice(m.Called(ctx, target, req))
}

func (m *MockInvoiceService) GenerateInstallments(ctx context.Context, target portssvc.InvoiceTarget, req dto.GenerateInstallmentsRequest) (*domain.Invoice, error) {
	return m.invoice(m.Called(ctx, target, req))
}

func (m *MockInvoiceService) AddInstallment(ctx context.Context, target portssvc.InvoiceTarget, req dto.InstallmentRequest) (*domain.Invoice, error) {
	return m.invoice(m.Called(ctx, target, req))
}

func (m *MockInvoiceService) UpdateInstallment(ctx context.Context, target portssvc.InvoiceTarget, installmentID string, req dto.InstallmentPatchRequest) (*domain.Invoice, error) {
	return m.invoice(m.Called(ctx, target, installmentID, req))
}

func (m *MockInvoiceService) RemoveInstallment(ctx context.Context, target portssvc.InvoiceTarget, installmentID string) (*domain.Invoice, error) {
	return m.invoice(m.Called(ctx, target, installmentID))
}

func (m *MockInvoiceService) MarkInstallmentPaid(ctx context.Context, target portssvc.InvoiceTarget, installmentID string, req dto.MarkInstallmentPaidRequest) (*domain.Invoice, error) {
	return m.invoice(m.Called(ctx, target, installmentID, req))
}

func (m *MockInvoiceService) SweepOverdueInstallments(ctx context.Context, asOf time.Time) (int, error) {
	args := m.Called(ctx, asOf)
	return args.Int(0), args.Error(1)
}

// --- Mock LookupService ---
type MockLookupService struct {
	mock.Mock
}

var _ portssvc.LookupSvc = (*MockLookupService)(nil)

func (m *MockLookupService) SearchEntities(ctx context.Context, tenantID string, params dto.SearchEntitiesParams) ([]domain.EntityRef, error) {
	args := m.Called(ctx, tenantID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.EntityRef), args.Error(1)
}

func (m *MockLookupService) ListCatalog(ctx context.Context, tenantID string, kind domain.CatalogKind) ([]domain.CatalogEntry, error) {
	args := m.Called(ctx, tenantID, kind)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CatalogEntry), args.Error(1)
}
