package mapping

import (
	"testing"
	"time"

	"github.com/SscSPs/invoice_management_app/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInvoiceRowsRoundTrip(t *testing.T) {
	paid := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	inv := domain.Recompute(domain.Invoice{
		InvoiceID:      "inv_1",
		TenantID:       "t1",
		BranchID:       "b1",
		InvoiceNumber:  "INV-1",
		Type:           domain.Revenue,
		Kind:           domain.KindTax,
		InvoiceDate:    time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		CounterpartyID: "c1",
		TaxRate:        decimal.RequireFromString("15"),
		CurrencyCode:   "SAR",
		PaymentType:    domain.PaymentTypeInstallment,
		Items:          []domain.LineItem{{ItemID: "i1", Name: "A", UnitPrice: 10000, Quantity: 2, UnitID: "u1"}},
		Installments: []domain.Installment{
			{InstallmentID: "s1", DueDate: paid, Amount: 23000, Status: domain.InstallmentPaid, PaidDate: &paid, PaidAmount: 23000},
		},
		Pays:     []domain.Payment{{PaymentID: "p1", Date: paid, Amount: 23000, Method: domain.MethodCash, Status: domain.PaymentPaid, InstallmentID: "s1"}},
		Revision: 3,
	})

	header := ToModelInvoice(inv)
	assert.Equal(t, int64(3000), header.VATAmount)
	assert.Equal(t, "paid", header.Status)

	items := ToModelInvoiceItems(inv.InvoiceID, inv.Items)
	require.Len(t, items, 1)
	assert.Equal(t, int64(20000), items[0].LineTotal)
	assert.Nil(t, items[0].ProductID)
	assert.Equal(t, "u1", *items[0].UnitID)

	back := domain.Recompute(ToDomainInvoice(header,
		items,
		ToModelInvoicePayments(inv.InvoiceID, inv.Pays),
		ToModelInvoiceInstallments(inv.InvoiceID, inv.Installments)))
	assert.Equal(t, inv, back)
}

func TestToDomainInvoice_IgnoresPersistedTotals(t *testing.T) {
	header := ToModelInvoice(domain.Recompute(domain.Invoice{InvoiceID: "x", Kind: domain.KindNormal, TaxRate: decimal.Zero}))
	header.TotalInvoice = 999
	header.Balance = 999

	inv := ToDomainInvoice(header, nil, nil, nil)
	assert.Equal(t, domain.Totals{}, inv.Totals())
	assert.Equal(t, domain.Money(0), domain.Recompute(inv).Totals().TotalInvoice)
}
