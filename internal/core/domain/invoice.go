package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceType says whether the invoice records money coming in or going out.
type InvoiceType string

const (
	Revenue InvoiceType = "revenue"
	Expense InvoiceType = "expense"
)

// InvoiceKind selects whether VAT applies.
type InvoiceKind string

const (
	KindTax    InvoiceKind = "tax"
	KindNormal InvoiceKind = "normal"
)

// PaymentType is how the invoice is expected to be settled.
type PaymentType string

const (
	PaymentTypeCash        PaymentType = "cash"
	PaymentTypeCredit      PaymentType = "credit"
	PaymentTypeInstallment PaymentType = "installment"
)

// InvoiceStatus is the derived lifecycle status of an invoice.
type InvoiceStatus string

const (
	InvoicePending InvoiceStatus = "pending"
	InvoicePaid    InvoiceStatus = "paid"
)

// PaymentMethod enumerates how a payment was made.
type PaymentMethod string

const (
	MethodCash   PaymentMethod = "cash"
	MethodBank   PaymentMethod = "bank"
	MethodCheck  PaymentMethod = "check"
	MethodCredit PaymentMethod = "credit"
)

// PaymentStatus is informational; it does not affect totalPays.
type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPaid    PaymentStatus = "paid"
)

// InstallmentStatus is the lifecycle of a scheduled installment.
type InstallmentStatus string

const (
	InstallmentPending InstallmentStatus = "pending"
	InstallmentPaid    InstallmentStatus = "paid"
	InstallmentOverdue InstallmentStatus = "overdue"
)

// LineItem is a priced, quantified good or service on an invoice.
// Its line total is derived and only readable through LineTotal.
type LineItem struct {
	ItemID     string `json:"id"`
	Name       string `json:"name" validate:"required"`
	UnitPrice  Money  `json:"unitPrice" validate:"gte=0"`
	Quantity   int64  `json:"quantity" validate:"gte=1"`
	ProductID  string `json:"productId"`
	UnitID     string `json:"unitId"`
	StoreID    string `json:"storeId"`
	CategoryID string `json:"categoryId"`

	lineTotal Money
}

// LineTotal is unitPrice × quantity as of the last recompute.
func (li LineItem) LineTotal() Money {
	return li.lineTotal
}

// Payment is money already exchanged against the invoice.
type Payment struct {
	PaymentID     string        `json:"id"`
	Date          time.Time     `json:"date" validate:"required"`
	Amount        Money         `json:"amount" validate:"gte=0"`
	Method        PaymentMethod `json:"method" validate:"oneof=cash bank check credit"`
	Status        PaymentStatus `json:"status" validate:"oneof=pending paid"`
	Notes         string        `json:"notes"`
	Reference     string        `json:"reference"`
	InstallmentID string        `json:"installmentId"` // set only by an installment settlement
}

// Installment is a scheduled, future-due portion of the balance.
type Installment struct {
	InstallmentID string            `json:"id"`
	DueDate       time.Time         `json:"dueDate" validate:"required"`
	Amount        Money             `json:"amount" validate:"gte=0"`
	Status        InstallmentStatus `json:"status" validate:"oneof=pending paid overdue"`
	PaidDate      *time.Time        `json:"paidDate"`
	PaidAmount    Money             `json:"paidAmount" validate:"gte=0"`
}

// Totals are the derived financial fields of an invoice. Only Recompute produces them.
type Totals struct {
	TotalItems   Money
	Taxable      Money
	VATAmount    Money
	TotalInvoice Money
	TotalPays    Money
	Balance      Money
	Status       InvoiceStatus
}

// Invoice is the aggregate root that owns items, payments and installments.
type Invoice struct {
	InvoiceID      string          `json:"id"`
	TenantID       string          `json:"tenantId" validate:"required"`
	BranchID       string          `json:"branchId" validate:"required"`
	InvoiceNumber  string          `json:"invoiceNumber" validate:"required,max=64"`
	Type           InvoiceType     `json:"type" validate:"oneof=revenue expense"`
	Kind           InvoiceKind     `json:"invoiceKind" validate:"oneof=tax normal"`
	InvoiceDate    time.Time       `json:"invoiceDate" validate:"required"`
	CounterpartyID string          `json:"counterpartyId" validate:"required"`
	TaxRate        decimal.Decimal `json:"taxRate" validate:"-"`
	Discount       Money           `json:"discount" validate:"gte=0"`
	Extra          Money           `json:"extra"`
	CurrencyCode   string          `json:"currencyCode" validate:"required,iso4217"`
	PaymentType    PaymentType     `json:"paymentType" validate:"oneof=cash credit installment"`
	Notes          string          `json:"notes"`
	Items          []LineItem      `json:"items" validate:"dive"`
	Pays           []Payment       `json:"pays" validate:"dive"`
	Installments   []Installment   `json:"installments" validate:"dive"`
	Revision       int64           `json:"revision"`
	AuditFields

	totals Totals
}

// Totals returns the derived fields as of the last recompute.
func (inv Invoice) Totals() Totals {
	return inv.totals
}

// Currency returns the currency descriptor of the invoice.
func (inv Invoice) Currency() Currency {
	return CurrencyOf(inv.CurrencyCode)
}

// CounterpartyKind is the entity kind the invoice's counterparty must be.
func (inv Invoice) CounterpartyKind() EntityKind {
	if inv.Type == Expense {
		return EntitySupplier
	}
	return EntityCustomer
}

// InvoiceSummary is the listing projection of a persisted invoice.
// Its totals are whatever the engine computed at the last write.
type InvoiceSummary struct {
	InvoiceID      string
	TenantID       string
	BranchID       string
	InvoiceNumber  string
	Type           InvoiceType
	Kind           InvoiceKind
	InvoiceDate    time.Time
	CounterpartyID string
	CurrencyCode   string
	PaymentType    PaymentType
	TotalInvoice   Money
	TotalPays      Money
	Balance        Money
	Status         InvoiceStatus
	Revision       int64
	CreatedAt      time.Time
}

// InvoiceRef identifies an invoice within a tenant.
type InvoiceRef struct {
	TenantID  string
	InvoiceID string
}
