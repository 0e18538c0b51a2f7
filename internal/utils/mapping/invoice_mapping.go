package mapping

import (
	"github.com/SscSPs/invoice_management_app/internal/core/domain"
	"github.com/SscSPs/invoice_management_app/internal/models"
)

// ToModelInvoice converts a recomputed domain Invoice to its header row, snapshotting the totals.
func ToModelInvoice(d domain.Invoice) models.Invoice {
	totals := d.Totals()
	return models.Invoice{
		InvoiceID:      d.InvoiceID,
		TenantID:       d.TenantID,
		BranchID:       d.BranchID,
		InvoiceNumber:  d.InvoiceNumber,
		InvoiceType:    string(d.Type),
		InvoiceKind:    string(d.Kind),
		InvoiceDate:    d.InvoiceDate,
		CounterpartyID: d.CounterpartyID,
		TaxRate:        d.TaxRate,
		Discount:       int64(d.Discount),
		Extra:          int64(d.Extra),
		CurrencyCode:   d.CurrencyCode,
		PaymentType:    string(d.PaymentType),
		Notes:          d.Notes,
		TotalItems:     int64(totals.TotalItems),
		VATAmount:      int64(totals.VATAmount),
		TotalInvoice:   int64(totals.TotalInvoice),
		TotalPays:      int64(totals.TotalPays),
		Balance:        int64(totals.Balance),
		Status:         string(totals.Status),
		Revision:       d.Revision,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToModelInvoiceItems converts line items to rows, keeping their order in Position.
func ToModelInvoiceItems(invoiceID string, items []domain.LineItem) []models.InvoiceItem {
	rows := make([]models.InvoiceItem, len(items))
	for i, li := range items {
		rows[i] = models.InvoiceItem{
			ItemID:     li.ItemID,
			InvoiceID:  invoiceID,
			Position:   i,
			Name:       li.Name,
			UnitPrice:  int64(li.UnitPrice),
			Quantity:   li.Quantity,
			LineTotal:  int64(li.LineTotal()),
			ProductID:  nullable(li.ProductID),
			UnitID:     nullable(li.UnitID),
			StoreID:    nullable(li.StoreID),
			CategoryID: nullable(li.CategoryID),
		}
	}
	return rows
}

// ToModelInvoicePayments converts payments to rows.
func ToModelInvoicePayments(invoiceID string, pays []domain.Payment) []models.InvoicePayment {
	rows := make([]models.InvoicePayment, len(pays))
	for i, p := range pays {
		rows[i] = models.InvoicePayment{
			PaymentID:     p.PaymentID,
			InvoiceID:     invoiceID,
			Position:      i,
			PaymentDate:   p.Date,
			Amount:        int64(p.Amount),
			Method:        string(p.Method),
			Status:        string(p.Status),
			Notes:         p.Notes,
			Reference:     p.Reference,
			InstallmentID: nullable(p.InstallmentID),
		}
	}
	return rows
}

// ToModelInvoiceInstallments converts installments to rows.
func ToModelInvoiceInstallments(invoiceID string, installments []domain.Installment) []models.InvoiceInstallment {
	rows := make([]models.InvoiceInstallment, len(installments))
	for i, in := range installments {
		rows[i] = models.InvoiceInstallment{
			InstallmentID: in.InstallmentID,
			InvoiceID:     invoiceID,
			Position:      i,
			DueDate:       in.DueDate,
			Amount:        int64(in.Amount),
			Status:        string(in.Status),
			PaidDate:      in.PaidDate,
			PaidAmount:    int64(in.PaidAmount),
		}
	}
	return rows
}

// ToDomainInvoice assembles a domain Invoice from its rows. Persisted totals are dropped;
// the result must go through domain.Recompute before use.
func ToDomainInvoice(m models.Invoice, items []models.InvoiceItem, pays []models.InvoicePayment, installments []models.InvoiceInstallment) domain.Invoice {
	inv := domain.Invoice{
		InvoiceID:      m.InvoiceID,
		TenantID:       m.TenantID,
		BranchID:       m.BranchID,
		InvoiceNumber:  m.InvoiceNumber,
		Type:           domain.InvoiceType(m.InvoiceType),
		Kind:           domain.InvoiceKind(m.InvoiceKind),
		InvoiceDate:    m.InvoiceDate,
		CounterpartyID: m.CounterpartyID,
		TaxRate:        m.TaxRate,
		Discount:       domain.Money(m.Discount),
		Extra:          domain.Money(m.Extra),
		CurrencyCode:   m.CurrencyCode,
		PaymentType:    domain.PaymentType(m.PaymentType),
		Notes:          m.Notes,
		Revision:       m.Revision,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
		Items:          make([]domain.LineItem, len(items)),
		Pays:           make([]domain.Payment, len(pays)),
		Installments:   make([]domain.Installment, len(installments)),
	}
	for i, r := range items {
		inv.Items[i] = domain.LineItem{
			ItemID:     r.ItemID,
			Name:       r.Name,
			UnitPrice:  domain.Money(r.UnitPrice),
			Quantity:   r.Quantity,
			ProductID:  deref(r.ProductID),
			UnitID:     deref(r.UnitID),
			StoreID:    deref(r.StoreID),
			CategoryID: deref(r.CategoryID),
		}
	}
	for i, r := range pays {
		inv.Pays[i] = domain.Payment{
			PaymentID:     r.PaymentID,
			Date:          r.PaymentDate,
			Amount:        domain.Money(r.Amount),
			Method:        domain.PaymentMethod(r.Method),
			Status:        domain.PaymentStatus(r.Status),
			Notes:         r.Notes,
			Reference:     r.Reference,
			InstallmentID: deref(r.InstallmentID),
		}
	}
	for i, r := range installments {
		inv.Installments[i] = domain.Installment{
			InstallmentID: r.InstallmentID,
			DueDate:       r.DueDate,
			Amount:        domain.Money(r.Amount),
			Status:        domain.InstallmentStatus(r.Status),
			PaidDate:      r.PaidDate,
			PaidAmount:    domain.Money(r.PaidAmount),
		}
	}
	return inv
}

// ToDomainInvoiceSummary converts a header row to the listing projection, persisted totals included.
func ToDomainInvoiceSummary(m models.Invoice) domain.InvoiceSummary {
	return domain.InvoiceSummary{
		InvoiceID:      m.InvoiceID,
		TenantID:       m.TenantID,
		BranchID:       m.BranchID,
		InvoiceNumber:  m.InvoiceNumber,
		Type:           domain.InvoiceType(m.InvoiceType),
		Kind:           domain.InvoiceKind(m.InvoiceKind),
		InvoiceDate:    m.InvoiceDate,
		CounterpartyID: m.CounterpartyID,
		CurrencyCode:   m.CurrencyCode,
		PaymentType:    domain.PaymentType(m.PaymentType),
		TotalInvoice:   domain.Money(m.TotalInvoice),
		TotalPays:      domain.Money(m.TotalPays),
		Balance:        domain.Money(m.Balance),
		Status:         domain.InvoiceStatus(m.Status),
		Revision:       m.Revision,
		CreatedAt:      m.CreatedAt,
	}
}
