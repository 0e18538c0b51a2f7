package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/invoice_management_app/internal/apperrors"
	"github.com/SscSPs/invoice_management_app/internal/core/domain"
	portsrepo "github.com/SscSPs/invoice_management_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/invoice_management_app/internal/core/ports/services"
	"github.com/SscSPs/invoice_management_app/internal/dto"
	"github.com/google/uuid"
)

// SweepUserID is recorded as the last updater of invoices changed by the overdue sweep.
const SweepUserID = "system:overdue-sweep"

const sweepBatchSize = 100

type invoiceService struct {
	BaseService
	invoiceRepo portsrepo.InvoiceRepositoryWithTx
	entities    portsrepo.EntityLookup
	catalog     portsrepo.CatalogLookup
}

// InvoiceServiceOption configures the invoice service.
type InvoiceServiceOption func(*invoiceService)

// WithClock overrides the clock used for audit stamps and overdue checks.
func WithClock(now func() time.Time) InvoiceServiceOption {
	return func(s *invoiceService) { s.now = now }
}

// WithEntityLookup enables counterparty checks on create and update.
func WithEntityLookup(entities portsrepo.EntityLookup) InvoiceServiceOption {
	return func(s *invoiceService) { s.entities = entities }
}

// WithCatalogLookup enables unit, store and category checks on line items.
func WithCatalogLookup(catalog portsrepo.CatalogLookup) InvoiceServiceOption {
	return func(s *invoiceService) { s.catalog = catalog }
}

// NewInvoiceService creates a new InvoiceService.
func NewInvoiceService(invoiceRepo portsrepo.InvoiceRepositoryWithTx, opts ...InvoiceServiceOption) portssvc.InvoiceSvcFacade {
	s := &invoiceService{invoiceRepo: invoiceRepo}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateInvoice builds the invoice from the request and persists it at revision 1.
func (s *invoiceService) CreateInvoice(ctx context.Context, tenantID string, req dto.InvoiceRequest, userID string) (*domain.Invoice, error) {
	logger := s.GetLogger(ctx)

	inv, err := BuildInvoice(tenantID, req)
	if err != nil {
		return nil, err
	}
	if err := s.checkReferences(ctx, inv); err != nil {
		return nil, err
	}

	now := s.Now()
	inv.InvoiceID = uuid.NewString()
	inv.Revision = 1
	inv.CreatedAt = now
	inv.CreatedBy = userID
	inv.Touch(userID, now)

	if err := s.invoiceRepo.SaveInvoice(ctx, inv); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, apperrors.NewFieldError("invoiceNumber", "is already used by another invoice")
		}
		s.LogError(ctx, err, "failed to save invoice", slog.String("tenant_id", tenantID))
		return nil, fmt.Errorf("failed to save invoice: %w", err)
	}

	logger.Info("Invoice created",
		slog.String("invoice_id", inv.InvoiceID),
		slog.String("invoice_number", inv.InvoiceNumber),
		slog.String("total_invoice", inv.Totals().TotalInvoice.Format(inv.Currency())))
	return &inv, nil
}

// UpdateInvoice replaces the stored document. Totals are always recomputed from the request
// inputs, never taken from the client.
func (s *invoiceService) UpdateInvoice(ctx context.Context, tenantID, invoiceID string, req dto.InvoiceRequest, expectedRevision int64, userID string) (*domain.Invoice, error) {
	current, err := s.load(ctx, tenantID, invoiceID, expectedRevision)
	if err != nil {
		return nil, err
	}

	inv, err := BuildInvoice(tenantID, req)
	if err != nil {
		return nil, err
	}
	if err := s.checkReferences(ctx, inv); err != nil {
		return nil, err
	}

	inv.InvoiceID = current.InvoiceID
	inv.AuditFields = current.AuditFields
	return s.save(ctx, inv, current.Revision, userID)
}

// PreviewInvoice runs the engine without touching storage or reference data.
func (s *invoiceService) PreviewInvoice(ctx context.Context, tenantID string, req dto.InvoiceRequest) (*domain.Invoice, error) {
	inv, err := BuildInvoice(tenantID, req)
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

// GetInvoice retrieves an invoice by ID.
func (s *invoiceService) GetInvoice(ctx context.Context, tenantID, invoiceID string) (*domain.Invoice, error) {
	inv, err := s.invoiceRepo.FindInvoiceByID(ctx, tenantID, invoiceID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "failed to load invoice", slog.String("invoice_id", invoiceID))
		}
		return nil, err
	}
	return inv, nil
}

// ListInvoices retrieves a page of invoice summaries.
func (s *invoiceService) ListInvoices(ctx context.Context, tenantID string, params dto.ListInvoicesParams) (*dto.ListInvoicesResponse, error) {
	summaries, next, err := s.invoiceRepo.ListInvoices(ctx, tenantID, params.BranchID, params.Limit, params.NextToken)
	if err != nil {
		if !errors.Is(err, apperrors.ErrValidation) {
			s.LogError(ctx, err, "failed to list invoices", slog.String("tenant_id", tenantID))
		}
		return nil, err
	}
	resp := dto.ToListInvoicesResponse(summaries, next)
	return &resp, nil
}

func (s *invoiceService) AddItem(ctx context.Context, target portssvc.InvoiceTarget, req dto.LineItemRequest) (*domain.Invoice, error) {
	return s.mutate(ctx, target, func(inv *domain.Invoice) error {
		p := newFieldParser(inv.CurrencyCode)
		li := p.lineItem("", req)
		if err := p.errs.OrNil(); err != nil {
			return err
		}
		if err := s.checkCatalogRefs(ctx, inv.TenantID, []domain.LineItem{li}, ""); err != nil {
			return err
		}
		_, err := inv.AddItem(li)
		return err
	})
}

func (s *invoiceService) UpdateItem(ctx context.Context, target portssvc.InvoiceTarget, itemID string, req dto.LineItemPatchRequest) (*domain.Invoice, error) {
	return s.mutate(ctx, target, func(inv *domain.Invoice) error {
		p := newFieldParser(inv.CurrencyCode)
		patch := p.lineItemPatch(req)
		if err := p.errs.OrNil(); err != nil {
			return err
		}
		li, err := inv.UpdateItem(itemID, patch)
		if err != nil {
			return err
		}
		return s.checkCatalogRefs(ctx, inv.TenantID, []domain.LineItem{li}, "")
	})
}

func (s *invoiceService) RemoveItem(ctx context.Context, target portssvc.InvoiceTarget, itemID string) (*domain.Invoice, error) {
	return s.mutate(ctx, target, func(inv *domain.Invoice) error {
		return inv.RemoveItem(itemID)
	})
}

func (s *invoiceService) AddPayment(ctx context.Context, target portssvc.InvoiceTarget, req dto.PaymentRequest) (*domain.Invoice, error) {
	return s.mutate(ctx, target, func(inv *domain.Invoice) error {
		p := newFieldParser(inv.CurrencyCode)
		pay := p.payment("", req)
		pay.InstallmentID = req.InstallmentID
		if err := p.errs.OrNil(); err != nil {
			return err
		}
		_, err := inv.AddPayment(pay)
		return err
	})
}

func (s *invoiceService) UpdatePayment(ctx context.Context, target portssvc.InvoiceTarget, paymentID string, req dto.PaymentPatchRequest) (*domain.Invoice, error) {
	return s.mutate(ctx, target, func(inv *domain.Invoice) error {
		p := newFieldParser(inv.CurrencyCode)
		patch := p.paymentPatch(req)
		if err := p.errs.OrNil(); err != nil {
			return err
		}
		_, err := inv.UpdatePayment(paymentID, patch)
		return err
	})
}

func (s *invoiceService) RemovePayment(ctx context.Context, target portssvc.InvoiceTarget, paymentID string) (*domain.Invoice, error) {
	return s.mutate(ctx, target, func(inv *domain.Invoice) error {
		return inv.RemovePayment(paymentID, s.Now())
	})
}

// ApplyPayment records the payment event; a settlement and its installment change are saved together.
func (s *invoiceService) ApplyPayment(ctx context.Context, target portssvc.InvoiceTarget, req dto.ApplyPaymentRequest) (*domain.Invoice, error) {
	return s.mutate(ctx, target, func(inv *domain.Invoice) error {
		p := newFieldParser(inv.CurrencyCode)
		pay := p.payment("payment", req.Payment)
		if err := p.errs.OrNil(); err != nil {
			return err
		}
		_, err := inv.ApplyPayment(domain.PaymentApplied{
			Kind:          req.Kind,
			InstallmentID: req.InstallmentID,
			Payment:       pay,
		})
		return err
	})
}

// GenerateInstallments replaces the open schedule with count monthly installments.
func (s *invoiceService) GenerateInstallments(ctx context.Context, target portssvc.InvoiceTarget, req dto.GenerateInstallmentsRequest) (*domain.Invoice, error) {
	return s.mutate(ctx, target, func(inv *domain.Invoice) error {
		p := newFieldParser(inv.CurrencyCode)
		amount := inv.Totals().Balance
		if req.Amount != nil {
			amount = p.money("amount", *req.Amount)
		}
		start := inv.InvoiceDate
		if req.StartDate != nil {
			start = p.date("startDate", *req.StartDate)
		}
		if err := p.errs.OrNil(); err != nil {
			return err
		}
		_, err := inv.ScheduleInstallments(amount, req.Count, start)
		return err
	})
}

func (s *invoiceService) AddInstallment(ctx context.Context, target portssvc.InvoiceTarget, req dto.InstallmentRequest) (*domain.Invoice, error) {
	return s.mutate(ctx, target, func(inv *domain.Invoice) error {
		p := newFieldParser(inv.CurrencyCode)
		in := p.installment("", req)
		if err := p.errs.OrNil(); err != nil {
			return err
		}
		_, err := inv.AddInstallment(in)
		return err
	})
}

func (s *invoiceService) UpdateInstallment(ctx context.Context, target portssvc.InvoiceTarget, installmentID string, req dto.InstallmentPatchRequest) (*domain.Invoice, error) {
	return s.mutate(ctx, target, func(inv *domain.Invoice) error {
		p := newFieldParser(inv.CurrencyCode)
		patch := p.installmentPatch(req)
		if err := p.errs.OrNil(); err != nil {
			return err
		}
		_, err := inv.UpdateInstallment(installmentID, patch)
		return err
	})
}

func (s *invoiceService) RemoveInstallment(ctx context.Context, target portssvc.InvoiceTarget, installmentID string) (*domain.Invoice, error) {
	return s.mutate(ctx, target, func(inv *domain.Invoice) error {
		return inv.RemoveInstallment(installmentID)
	})
}

func (s *invoiceService) MarkInstallmentPaid(ctx context.Context, target portssvc.InvoiceTarget, installmentID string, req dto.MarkInstallmentPaidRequest) (*domain.Invoice, error) {
	return s.mutate(ctx, target, func(inv *domain.Invoice) error {
		p := newFieldParser(inv.CurrencyCode)
		amount := p.money("paidAmount", req.PaidAmount)
		date := p.date("paidDate", req.PaidDate)
		if err := p.errs.OrNil(); err != nil {
			return err
		}
		_, err := inv.MarkInstallmentPaid(installmentID, amount, date)
		return err
	})
}

// SweepOverdueInstallments walks invoices with pending installments past due and flags them
// overdue. Invoices changed concurrently are skipped and picked up by the next run.
func (s *invoiceService) SweepOverdueInstallments(ctx context.Context, asOf time.Time) (int, error) {
	logger := s.GetLogger(ctx)
	updated := 0
	for {
		refs, err := s.invoiceRepo.ListInvoicesWithDueInstallments(ctx, asOf, sweepBatchSize)
		if err != nil {
			return updated, err
		}
		progressed := 0
		for _, ref := range refs {
			if err := ctx.Err(); err != nil {
				return updated, err
			}
			changed, err := s.sweepInvoice(ctx, ref, asOf)
			switch {
			case errors.Is(err, apperrors.ErrConflict), errors.Is(err, apperrors.ErrNotFound):
				logger.Warn("Skipping invoice in overdue sweep",
					slog.String("invoice_id", ref.InvoiceID), slog.String("reason", err.Error()))
			case err != nil:
				return updated, err
			case changed:
				progressed++
			}
		}
		updated += progressed
		if len(refs) < sweepBatchSize || progressed == 0 {
			break
		}
	}
	logger.Info("Overdue sweep finished", slog.Int("invoices_updated", updated), slog.Time("as_of", asOf))
	return updated, nil
}

func (s *invoiceService) sweepInvoice(ctx context.Context, ref domain.InvoiceRef, asOf time.Time) (bool, error) {
	inv, err := s.invoiceRepo.FindInvoiceByID(ctx, ref.TenantID, ref.InvoiceID)
	if err != nil {
		return false, err
	}
	if inv.MarkOverdueInstallments(asOf) == 0 {
		return false, nil
	}
	if _, err := s.save(ctx, *inv, inv.Revision, SweepUserID); err != nil {
		return false, err
	}
	return true, nil
}

// mutate loads the target invoice, applies fn and saves the result under the revision guard.
// A failed fn is never saved.
func (s *invoiceService) mutate(ctx context.Context, target portssvc.InvoiceTarget, fn func(inv *domain.Invoice) error) (*domain.Invoice, error) {
	inv, err := s.load(ctx, target.TenantID, target.InvoiceID, target.ExpectedRevision)
	if err != nil {
		return nil, err
	}
	if err := fn(inv); err != nil {
		return nil, err
	}
	return s.save(ctx, *inv, inv.Revision, target.UserID)
}

// load fetches the invoice and rejects a stale expected revision early. Zero means the caller
// sent none; the storage guard still covers the load-to-save window.
func (s *invoiceService) load(ctx context.Context, tenantID, invoiceID string, expectedRevision int64) (*domain.Invoice, error) {
	inv, err := s.GetInvoice(ctx, tenantID, invoiceID)
	if err != nil {
		return nil, err
	}
	if expectedRevision != 0 && inv.Revision != expectedRevision {
		return nil, fmt.Errorf("%w: invoice %s is at revision %d, not %d",
			apperrors.ErrConflict, invoiceID, inv.Revision, expectedRevision)
	}
	return inv, nil
}

func (s *invoiceService) save(ctx context.Context, inv domain.Invoice, expectedRevision int64, userID string) (*domain.Invoice, error) {
	inv = domain.Recompute(inv)
	if err := inv.Validate(); err != nil {
		return nil, err
	}
	inv.Touch(userID, s.Now())

	if err := s.invoiceRepo.UpdateInvoice(ctx, inv, expectedRevision); err != nil {
		switch {
		case errors.Is(err, apperrors.ErrDuplicate):
			return nil, apperrors.NewFieldError("invoiceNumber", "is already used by another invoice")
		case errors.Is(err, apperrors.ErrConflict), errors.Is(err, apperrors.ErrNotFound):
			return nil, err
		}
		s.LogError(ctx, err, "failed to update invoice", slog.String("invoice_id", inv.InvoiceID))
		return nil, fmt.Errorf("failed to update invoice: %w", err)
	}
	inv.Revision = expectedRevision + 1

	s.LogInfo(ctx, "Invoice updated",
		slog.String("invoice_id", inv.InvoiceID),
		slog.Int64("revision", inv.Revision),
		slog.String("status", string(inv.Totals().Status)))
	return &inv, nil
}

// checkReferences verifies the counterparty and line item catalog references when lookups are wired.
func (s *invoiceService) checkReferences(ctx context.Context, inv domain.Invoice) error {
	var errs apperrors.ValidationErrors
	if s.entities != nil {
		ref, err := s.entities.FindEntityByID(ctx, inv.TenantID, inv.CounterpartyID)
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			errs.Add("counterpartyId", "does not reference a known entity")
		case err != nil:
			return err
		case ref.Kind != inv.CounterpartyKind():
			errs.Add("counterpartyId", fmt.Sprintf("must reference a %s for a %s invoice", inv.CounterpartyKind(), inv.Type))
		}
	}
	if err := s.checkCatalogRefs(ctx, inv.TenantID, inv.Items, "items"); err != nil {
		var verrs apperrors.ValidationErrors
		if !errors.As(err, &verrs) {
			return err
		}
		errs = append(errs, verrs...)
	}
	return errs.OrNil()
}

// checkCatalogRefs rejects unit, store or category IDs that are not in the tenant's catalogs.
// Each catalog is fetched at most once.
func (s *invoiceService) checkCatalogRefs(ctx context.Context, tenantID string, items []domain.LineItem, prefix string) error {
	if s.catalog == nil {
		return nil
	}
	known := map[domain.CatalogKind]map[string]bool{}
	lookup := func(kind domain.CatalogKind) (map[string]bool, error) {
		if ids, ok := known[kind]; ok {
			return ids, nil
		}
		entries, err := s.catalog.ListCatalog(ctx, tenantID, kind)
		if err != nil {
			return nil, err
		}
		ids := make(map[string]bool, len(entries))
		for _, e := range entries {
			ids[e.EntryID] = true
		}
		known[kind] = ids
		return ids, nil
	}

	var errs apperrors.ValidationErrors
	for i, li := range items {
		field := func(name string) string {
			if prefix == "" {
				return name
			}
			return join(indexedField(prefix, i), name)
		}
		for _, ref := range []struct {
			kind  domain.CatalogKind
			id    string
			field string
		}{
			{domain.CatalogUnit, li.UnitID, "unitId"},
			{domain.CatalogStore, li.StoreID, "storeId"},
			{domain.CatalogCategory, li.CategoryID, "categoryId"},
		} {
			if ref.id == "" {
				continue
			}
			ids, err := lookup(ref.kind)
			if err != nil {
				return err
			}
			if !ids[ref.id] {
				errs.Add(field(ref.field), fmt.Sprintf("does not reference a known %s", ref.kind))
			}
		}
	}
	return errs.OrNil()
}
