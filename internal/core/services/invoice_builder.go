package services

import (
	"strconv"
	"strings"
	"time"

	"github.com/SscSPs/invoice_management_app/internal/apperrors"
	"github.com/SscSPs/invoice_management_app/internal/core/domain"
	"github.com/SscSPs/invoice_management_app/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// fieldParser converts wire values to domain values, collecting every failure
// instead of stopping at the first.
type fieldParser struct {
	cur  domain.Currency
	errs apperrors.ValidationErrors
}

func newFieldParser(currencyCode string) *fieldParser {
	return &fieldParser{cur: domain.CurrencyOf(currencyCode)}
}

func (p *fieldParser) money(field string, d decimal.Decimal) domain.Money {
	m, err := domain.MoneyFromDecimal(d, p.cur)
	if err != nil {
		p.errs.Add(field, err.Error())
	}
	return m
}

func (p *fieldParser) date(field, s string) time.Time {
	t, err := time.Parse(dto.DateLayout, s)
	if err != nil {
		p.errs.Add(field, "must be a date formatted as "+dto.DateLayout)
	}
	return t
}

func join(prefix, field string) string {
	if prefix == "" {
		return field
	}
	return prefix + "." + field
}

func idOrNew(id string) string {
	if id == "" {
		return uuid.NewString()
	}
	return id
}

// BuildInvoice converts a submitted invoice document into a recomputed, validated domain invoice.
// Identity, revision and audit fields are left for the caller to set.
func BuildInvoice(tenantID string, req dto.InvoiceRequest) (domain.Invoice, error) {
	p := newFieldParser(req.CurrencyCode)
	inv := domain.Invoice{
		TenantID:       tenantID,
		BranchID:       req.BranchID,
		InvoiceNumber:  strings.TrimSpace(req.InvoiceNumber),
		Type:           req.Type,
		Kind:           req.InvoiceKind,
		InvoiceDate:    p.date("invoiceDate", req.InvoiceDate),
		CounterpartyID: req.CounterpartyID,
		TaxRate:        req.TaxRate,
		Discount:       p.money("discount", req.Discount),
		Extra:          p.money("extra", req.Extra),
		CurrencyCode:   strings.ToUpper(req.CurrencyCode),
		PaymentType:    req.PaymentType,
		Notes:          req.Notes,
		Items:          make([]domain.LineItem, len(req.Items)),
		Pays:           make([]domain.Payment, len(req.Pays)),
		Installments:   make([]domain.Installment, len(req.Installments)),
	}
	for i, r := range req.Items {
		inv.Items[i] = p.lineItem(indexedField("items", i), r)
	}
	for i, r := range req.Pays {
		inv.Pays[i] = p.payment(indexedField("pays", i), r)
		inv.Pays[i].InstallmentID = r.InstallmentID
	}
	for i, r := range req.Installments {
		inv.Installments[i] = p.installment(indexedField("installments", i), r)
	}
	if err := p.errs.OrNil(); err != nil {
		return domain.Invoice{}, err
	}

	inv = domain.Recompute(inv)
	if err := inv.Validate(); err != nil {
		return domain.Invoice{}, err
	}
	return inv, nil
}

func (p *fieldParser) lineItem(prefix string, r dto.LineItemRequest) domain.LineItem {
	return domain.LineItem{
		ItemID:     idOrNew(r.ID),
		Name:       r.Name,
		UnitPrice:  p.money(join(prefix, "unitPrice"), r.UnitPrice),
		Quantity:   r.Quantity,
		ProductID:  r.ProductID,
		UnitID:     r.UnitID,
		StoreID:    r.StoreID,
		CategoryID: r.CategoryID,
	}
}

func (p *fieldParser) payment(prefix string, r dto.PaymentRequest) domain.Payment {
	status := r.Status
	if status == "" {
		status = domain.PaymentPaid
	}
	return domain.Payment{
		PaymentID: idOrNew(r.ID),
		Date:      p.date(join(prefix, "date"), r.Date),
		Amount:    p.money(join(prefix, "amount"), r.Amount),
		Method:    r.Method,
		Status:    status,
		Notes:     r.Notes,
		Reference: r.Reference,
	}
}

func (p *fieldParser) installment(prefix string, r dto.InstallmentRequest) domain.Installment {
	status := r.Status
	if status == "" {
		status = domain.InstallmentPending
	}
	in := domain.Installment{
		InstallmentID: idOrNew(r.ID),
		DueDate:       p.date(join(prefix, "dueDate"), r.DueDate),
		Amount:        p.money(join(prefix, "amount"), r.Amount),
		Status:        status,
		PaidAmount:    p.money(join(prefix, "paidAmount"), r.PaidAmount),
	}
	if r.PaidDate != nil {
		paid := p.date(join(prefix, "paidDate"), *r.PaidDate)
		in.PaidDate = &paid
	}
	return in
}

func (p *fieldParser) lineItemPatch(r dto.LineItemPatchRequest) domain.LineItemPatch {
	patch := domain.LineItemPatch{
		Name:       r.Name,
		Quantity:   r.Quantity,
		ProductID:  r.ProductID,
		UnitID:     r.UnitID,
		StoreID:    r.StoreID,
		CategoryID: r.CategoryID,
	}
	if r.UnitPrice != nil {
		m := p.money("unitPrice", *r.UnitPrice)
		patch.UnitPrice = &m
	}
	return patch
}

func (p *fieldParser) paymentPatch(r dto.PaymentPatchRequest) domain.PaymentPatch {
	patch := domain.PaymentPatch{
		Method:    r.Method,
		Status:    r.Status,
		Notes:     r.Notes,
		Reference: r.Reference,
	}
	if r.Date != nil {
		d := p.date("date", *r.Date)
		patch.Date = &d
	}
	if r.Amount != nil {
		m := p.money("amount", *r.Amount)
		patch.Amount = &m
	}
	return patch
}

func (p *fieldParser) installmentPatch(r dto.InstallmentPatchRequest) domain.InstallmentPatch {
	var patch domain.InstallmentPatch
	if r.DueDate != nil {
		d := p.date("dueDate", *r.DueDate)
		patch.DueDate = &d
	}
	if r.Amount != nil {
		m := p.money("amount", *r.Amount)
		patch.Amount = &m
	}
	return patch
}

func indexedField(name string, i int) string {
	return name + "[" + strconv.Itoa(i) + "]"
}
