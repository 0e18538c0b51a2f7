package services_test

import (
	"context"
	"time"

	"github.com/SscSPs/invoice_management_app/internal/core/domain"
	portsrepo "github.com/SscSPs/invoice_management_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/mock"
)

// --- Mock InvoiceRepository ---
type MockInvoiceRepository struct {
	mock.Mock
}

var _ portsrepo.InvoiceRepositoryWithTx = (*MockInvoiceRepository)(nil)

func (m *MockInvoiceRepository) FindInvoiceByID(ctx context.Context, tenantID, invoiceID string) (*domain.Invoice, error) {
	args := m.Called(ctx, tenantID, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) ListInvoices(ctx context.Context, tenantID string, branchID *string, limit int, nextToken *string) ([]domain.InvoiceSummary, *string, error) {
	args := m.Called(ctx, tenantID, branchID, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var next *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		next = &tokenVal
	}
	return args.Get(0).([]domain.InvoiceSummary), next, args.Error(2)
}

func (m *MockInvoiceRepository) ListInvoicesWithDueInstallments(ctx context.Context, asOf time.Time, limit int) ([]domain.InvoiceRef, error) {
	args := m.Called(ctx, asOf, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.InvoiceRef), args.Error(1)
}

func (m *MockInvoiceRepository) SaveInvoice(ctx context.Context, invoice domain.Invoice) error {
	args := m.Called(ctx, invoice)
	return args.Error(0)
}

func (m *MockInvoiceRepository) UpdateInvoice(ctx context.Context, invoice domain.Invoice, expectedRevision int64) error {
	args := m.Called(ctx, invoice, expectedRevision)
	return args.Error(0)
}

func (m *MockInvoiceRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pgx.Tx), args.Error(1)
}

func (m *MockInvoiceRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	return m.Called(ctx, tx).Error(0)
}

func (m *MockInvoiceRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	return m.Called(ctx, tx).Error(0)
}

// --- Mock lookups ---
type MockEntityLookup struct {
	mock.Mock
}

var _ portsrepo.EntityLookup = (*MockEntityLookup)(nil)

func (m *MockEntityLookup) SearchEntities(ctx context.Context, tenantID string, kind domain.EntityKind, query string, limit int) ([]domain.EntityRef, error) {
	args := m.Called(ctx, tenantID, kind, query, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.EntityRef), args.Error(1)
}

func (m *MockEntityLookup) FindEntityByID(ctx context.Context, tenantID, entityID string) (*domain.EntityRef, error) {
	args := m.Called(ctx, tenantID, entityID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.EntityRef), args.Error(1)
}

type MockCatalogLookup struct {
	mock.Mock
}

var _ portsrepo.CatalogLookup = (*MockCatalogLookup)(nil)

func (m *MockCatalogLookup) ListCatalog(ctx context.Context, tenantID string, kind domain.CatalogKind) ([]domain.CatalogEntry, error) {
	args := m.Called(ctx, tenantID, kind)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CatalogEntry), args.Error(1)
}
