package domain_test

import (
	"testing"
	"time"

	"github.com/SscSPs/invoice_management_app/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func baseInvoice() domain.Invoice {
	return domain.Invoice{
		InvoiceID:      "inv_1",
		TenantID:       "tenant_1",
		BranchID:       "branch_1",
		InvoiceNumber:  "INV-0001",
		Type:           domain.Revenue,
		Kind:           domain.KindNormal,
		InvoiceDate:    time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC),
		CounterpartyID: "cust_1",
		TaxRate:        decimal.Zero,
		CurrencyCode:   "SAR",
		PaymentType:    domain.PaymentTypeCash,
		Items: []domain.LineItem{
			{ItemID: "item_1", Name: "Widget", UnitPrice: 10000, Quantity: 2},
		},
	}
}

func TestRecompute_Scenarios(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(inv *domain.Invoice)
		want   domain.Totals
	}{
		{
			name:   "normal invoice without charges",
			mutate: func(inv *domain.Invoice) {},
			want: domain.Totals{TotalItems: 20000, Taxable: 20000, TotalInvoice: 20000,
				Balance: 20000, Status: domain.InvoicePending},
		},
		{
			name: "tax invoice at 15 percent",
			mutate: func(inv *domain.Invoice) {
				inv.Kind = domain.KindTax
				inv.TaxRate = decimal.NewFromInt(15)
			},
			want: domain.Totals{TotalItems: 20000, Taxable: 20000, VATAmount: 3000, TotalInvoice: 23000,
				Balance: 23000, Status: domain.InvoicePending},
		},
		{
			name: "tax invoice fully paid",
			mutate: func(inv *domain.Invoice) {
				inv.Kind = domain.KindTax
				inv.TaxRate = decimal.NewFromInt(15)
				inv.Pays = []domain.Payment{{PaymentID: "pay_1", Amount: 23000, Status: domain.PaymentPaid}}
			},
			want: domain.Totals{TotalItems: 20000, Taxable: 20000, VATAmount: 3000, TotalInvoice: 23000,
				TotalPays: 23000, Balance: 0, Status: domain.InvoicePaid},
		},
		{
			name: "discount larger than items drives the total negative",
			mutate: func(inv *domain.Invoice) {
				inv.Discount = 25000
			},
			want: domain.Totals{TotalItems: 20000, Taxable: -5000, TotalInvoice: -5000,
				Balance: -5000, Status: domain.InvoicePending},
		},
		{
			name: "rate stored on a normal invoice is ignored",
			mutate: func(inv *domain.Invoice) {
				inv.TaxRate = decimal.NewFromInt(15)
			},
			want: domain.Totals{TotalItems: 20000, Taxable: 20000, TotalInvoice: 20000,
				Balance: 20000, Status: domain.InvoicePending},
		},
		{
			name: "vat is levied after discount and extra is added after vat",
			mutate: func(inv *domain.Invoice) {
				inv.Kind = domain.KindTax
				inv.TaxRate = decimal.NewFromInt(15)
				inv.Discount = 2000
				inv.Extra = 500
			},
			want: domain.Totals{TotalItems: 20000, Taxable: 18000, VATAmount: 2700, TotalInvoice: 21200,
				Balance: 21200, Status: domain.InvoicePending},
		},
		{
			name: "pending payments still count",
			mutate: func(inv *domain.Invoice) {
				inv.Pays = []domain.Payment{{PaymentID: "pay_1", Amount: 5000, Status: domain.PaymentPending}}
			},
			want: domain.Totals{TotalItems: 20000, Taxable: 20000, TotalInvoice: 20000,
				TotalPays: 5000, Balance: 15000, Status: domain.InvoicePending},
		},
		{
			name: "overpayment is paid with a negative balance",
			mutate: func(inv *domain.Invoice) {
				inv.Pays = []domain.Payment{{PaymentID: "pay_1", Amount: 25000}}
			},
			want: domain.Totals{TotalItems: 20000, Taxable: 20000, TotalInvoice: 20000,
				TotalPays: 25000, Balance: -5000, Status: domain.InvoicePaid},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv := baseInvoice()
			tt.mutate(&inv)
			got := domain.Recompute(inv)
			assert.Equal(t, tt.want, got.Totals())
		})
	}
}

func TestRecompute_VATRounding(t *testing.T) {
	tests := []struct {
		name    string
		taxable domain.Money
		rate    string
		wantVAT domain.Money
	}{
		{"half rounds up", 50, "15", 8},
		{"below half rounds down", 29, "15", 4},
		{"fractional rate", 10000, "12.5", 1250},
		{"negative half rounds away from zero", -50, "15", -8},
		{"zero rate", 10000, "0", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := domain.ComputeCharges(tt.taxable, 0, 0, domain.KindTax, decimal.RequireFromString(tt.rate))
			assert.Equal(t, tt.wantVAT, got.VATAmount)
			assert.Equal(t, tt.taxable+tt.wantVAT, got.TotalInvoice)
		})
	}
}

func TestRecompute_Idempotent(t *testing.T) {
	inv := baseInvoice()
	inv.Kind = domain.KindTax
	inv.TaxRate = decimal.RequireFromString("15")
	inv.Items = append(inv.Items, domain.LineItem{ItemID: "item_2", Name: "Bolt", UnitPrice: 333, Quantity: 7})
	inv.Pays = []domain.Payment{{PaymentID: "pay_1", Amount: 1234}}

	once := domain.Recompute(inv)
	twice := domain.Recompute(once)
	assert.Equal(t, once, twice)
}

func TestRecompute_DoesNotMutateInput(t *testing.T) {
	inv := baseInvoice()
	_ = domain.Recompute(inv)
	assert.Zero(t, inv.Items[0].LineTotal())
	assert.Equal(t, domain.Totals{}, inv.Totals())
}

func TestRecompute_Properties(t *testing.T) {
	inv := baseInvoice()
	inv.Kind = domain.KindTax
	inv.TaxRate = decimal.RequireFromString("5.5")
	inv.Discount = 137
	inv.Extra = 99
	inv.Items = []domain.LineItem{
		{ItemID: "a", Name: "A", UnitPrice: 199, Quantity: 3},
		{ItemID: "b", Name: "B", UnitPrice: 0, Quantity: 1},
		{ItemID: "c", Name: "C", UnitPrice: 1050, Quantity: 12},
	}
	inv.Pays = []domain.Payment{{Amount: 500}, {Amount: 750, Status: domain.PaymentPending}}

	got := domain.Recompute(inv)
	totals := got.Totals()

	var items domain.Money
	for _, li := range got.Items {
		assert.Equal(t, li.UnitPrice*domain.Money(li.Quantity), li.LineTotal())
		items += li.LineTotal()
	}
	assert.Equal(t, items, totals.TotalItems)
	assert.Equal(t, totals.TotalItems-inv.Discount+totals.VATAmount+inv.Extra, totals.TotalInvoice)
	assert.Equal(t, domain.Money(1250), totals.TotalPays)
	assert.Equal(t, totals.TotalInvoice-totals.TotalPays, totals.Balance)
}

func TestResolveBalance(t *testing.T) {
	tests := []struct {
		name        string
		total, pays domain.Money
		wantBalance domain.Money
		wantStatus  domain.InvoiceStatus
	}{
		{"nothing paid", 1000, 0, 1000, domain.InvoicePending},
		{"partially paid", 1000, 400, 600, domain.InvoicePending},
		{"exactly paid", 1000, 1000, 0, domain.InvoicePaid},
		{"overpaid", 1000, 1200, -200, domain.InvoicePaid},
		{"empty invoice is never paid", 0, 0, 0, domain.InvoicePending},
		{"negative invoice is never paid", -500, 0, -500, domain.InvoicePending},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			balance, status := domain.ResolveBalance(tt.total, tt.pays)
			assert.Equal(t, tt.wantBalance, balance)
			assert.Equal(t, tt.wantStatus, status)
		})
	}
}

func TestScheduleWarnings(t *testing.T) {
	inv := baseInvoice()
	inv.PaymentType = domain.PaymentTypeInstallment
	_, err := inv.ScheduleInstallments(20000, 2, inv.InvoiceDate)
	require.NoError(t, err)
	assert.Empty(t, inv.ScheduleWarnings())

	_, err = inv.AddItem(domain.LineItem{Name: "Extra", UnitPrice: 100, Quantity: 1})
	require.NoError(t, err)
	warnings := inv.ScheduleWarnings()
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "200.00")
	assert.Contains(t, warnings[0], "201.00")
}
