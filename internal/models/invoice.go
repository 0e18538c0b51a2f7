package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Invoice is a row of the invoices table. Amounts are stored in minor units.
// The total_* columns are a write-time snapshot used for listings only.
type Invoice struct {
	InvoiceID      string          `db:"invoice_id"`
	TenantID       string          `db:"tenant_id"`
	BranchID       string          `db:"branch_id"`
	InvoiceNumber  string          `db:"invoice_number"`
	InvoiceType    string          `db:"invoice_type"`
	InvoiceKind    string          `db:"invoice_kind"`
	InvoiceDate    time.Time       `db:"invoice_date"`
	CounterpartyID string          `db:"counterparty_id"`
	TaxRate        decimal.Decimal `db:"tax_rate"`
	Discount       int64           `db:"discount"`
	Extra          int64           `db:"extra"`
	CurrencyCode   string          `db:"currency_code"`
	PaymentType    string          `db:"payment_type"`
	Notes          string          `db:"notes"`
	TotalItems     int64           `db:"total_items"`
	VATAmount      int64           `db:"vat_amount"`
	TotalInvoice   int64           `db:"total_invoice"`
	TotalPays      int64           `db:"total_pays"`
	Balance        int64           `db:"balance"`
	Status         string          `db:"status"`
	Revision       int64           `db:"revision"`
	AuditFields
}

// InvoiceItem is a row of invoice_items.
type InvoiceItem struct {
	ItemID     string  `db:"item_id"`
	InvoiceID  string  `db:"invoice_id"`
	Position   int     `db:"position"`
	Name       string  `db:"name"`
	UnitPrice  int64   `db:"unit_price"`
	Quantity   int64   `db:"quantity"`
	LineTotal  int64   `db:"line_total"`
	ProductID  *string `db:"product_id"`
	UnitID     *string `db:"unit_id"`
	StoreID    *string `db:"store_id"`
	CategoryID *string `db:"category_id"`
}

// InvoicePayment is a row of invoice_payments.
type InvoicePayment struct {
	PaymentID     string    `db:"payment_id"`
	InvoiceID     string    `db:"invoice_id"`
	Position      int       `db:"position"`
	PaymentDate   time.Time `db:"payment_date"`
	Amount        int64     `db:"amount"`
	Method        string    `db:"method"`
	Status        string    `db:"status"`
	Notes         string    `db:"notes"`
	Reference     string    `db:"reference"`
	InstallmentID *string   `db:"installment_id"`
}

// InvoiceInstallment is a row of invoice_installments.
type InvoiceInstallment struct {
	InstallmentID string     `db:"installment_id"`
	InvoiceID     string     `db:"invoice_id"`
	Position      int        `db:"position"`
	DueDate       time.Time  `db:"due_date"`
	Amount        int64      `db:"amount"`
	Status        string     `db:"status"`
	PaidDate      *time.Time `db:"paid_date"`
	PaidAmount    int64      `db:"paid_amount"`
}

// Entity is a row of the entities table (customers and suppliers).
type Entity struct {
	EntityID string `db:"entity_id"`
	TenantID string `db:"tenant_id"`
	Kind     string `db:"kind"`
	Name     string `db:"name"`
}

// CatalogEntry is a row of catalog_entries.
type CatalogEntry struct {
	EntryID  string `db:"entry_id"`
	TenantID string `db:"tenant_id"`
	Kind     string `db:"kind"`
	Name     string `db:"name"`
	Code     string `db:"code"`
}
