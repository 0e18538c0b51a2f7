package dto

import (
	"github.com/SscSPs/invoice_management_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// DateLayout is the wire format of every calendar date.
const DateLayout = "2006-01-02"

// InvoiceRequest is the full invoice document submitted on create, update and preview.
// It carries inputs only; derived totals are always computed server-side.
type InvoiceRequest struct {
	BranchID       string               `json:"branchId" binding:"required"`
	InvoiceNumber  string               `json:"invoiceNumber" binding:"required,max=64"`
	Type           domain.InvoiceType   `json:"type" binding:"required,oneof=revenue expense"`
	InvoiceKind    domain.InvoiceKind   `json:"invoiceKind" binding:"required,oneof=tax normal"`
	InvoiceDate    string               `json:"invoiceDate" binding:"required,datetime=2006-01-02"`
	CounterpartyID string               `json:"counterpartyId" binding:"required"`
	TaxRate        decimal.Decimal      `json:"taxRate" swaggertype:"string" example:"15"`
	Discount       decimal.Decimal      `json:"discount" swaggertype:"string" example:"0.00"`
	Extra          decimal.Decimal      `json:"extra" swaggertype:"string" example:"0.00"`
	CurrencyCode   string               `json:"currencyCode" binding:"required,len=3"`
	PaymentType    domain.PaymentType   `json:"paymentType" binding:"required,oneof=cash credit installment"`
	Notes          string               `json:"notes"`
	Items          []LineItemRequest    `json:"items" binding:"dive"`
	Pays           []PaymentRequest     `json:"pays" binding:"dive"`
	Installments   []InstallmentRequest `json:"installments" binding:"dive"`
	Revision       int64                `json:"revision"` // required on update unless If-Match is sent
}

// LineItemRequest is one line item of an invoice document or an added item.
type LineItemRequest struct {
	ID         string          `json:"id"`
	Name       string          `json:"name" binding:"required"`
	UnitPrice  decimal.Decimal `json:"unitPrice" swaggertype:"string" example:"100.00"`
	Quantity   int64           `json:"quantity"`
	ProductID  string          `json:"productId"`
	UnitID     string          `json:"unitId"`
	StoreID    string          `json:"storeId"`
	CategoryID string          `json:"categoryId"`
}

// LineItemPatchRequest edits a line item; omitted fields keep their value.
type LineItemPatchRequest struct {
	Name       *string          `json:"name" binding:"omitempty,min=1"`
	UnitPrice  *decimal.Decimal `json:"unitPrice" swaggertype:"string"`
	Quantity   *int64           `json:"quantity"`
	ProductID  *string          `json:"productId"`
	UnitID     *string          `json:"unitId"`
	StoreID    *string          `json:"storeId"`
	CategoryID *string          `json:"categoryId"`
}

// PaymentRequest is one payment of an invoice document or an added payment.
type PaymentRequest struct {
	ID            string               `json:"id"`
	Date          string               `json:"date" binding:"required,datetime=2006-01-02"`
	Amount        decimal.Decimal      `json:"amount" swaggertype:"string" example:"50.00"`
	Method        domain.PaymentMethod `json:"method" binding:"required,oneof=cash bank check credit"`
	Status        domain.PaymentStatus `json:"status" binding:"omitempty,oneof=pending paid"`
	Notes         string               `json:"notes"`
	Reference     string               `json:"reference"`
	InstallmentID string               `json:"installmentId"` // honoured only inside a full invoice document
}

// PaymentPatchRequest edits a payment; omitted fields keep their value.
type PaymentPatchRequest struct {
	Date      *string               `json:"date" binding:"omitempty,datetime=2006-01-02"`
	Amount    *decimal.Decimal      `json:"amount" swaggertype:"string"`
	Method    *domain.PaymentMethod `json:"method" binding:"omitempty,oneof=cash bank check credit"`
	Status    *domain.PaymentStatus `json:"status" binding:"omitempty,oneof=pending paid"`
	Notes     *string               `json:"notes"`
	Reference *string               `json:"reference"`
}

// ApplyPaymentRequest records money received, optionally settling an installment.
type ApplyPaymentRequest struct {
	Kind          domain.PaymentKind `json:"kind" binding:"required,oneof=advance installmentSettlement"`
	InstallmentID string             `json:"installmentId" binding:"required_if=Kind installmentSettlement"`
	Payment       PaymentRequest     `json:"payment" binding:"required"`
}

// InstallmentRequest is one installment of an invoice document or an added installment.
type InstallmentRequest struct {
	ID         string                   `json:"id"`
	DueDate    string                   `json:"dueDate" binding:"required,datetime=2006-01-02"`
	Amount     decimal.Decimal          `json:"amount" swaggertype:"string" example:"76.66"`
	Status     domain.InstallmentStatus `json:"status" binding:"omitempty,oneof=pending paid overdue"`
	PaidDate   *string                  `json:"paidDate" binding:"omitempty,datetime=2006-01-02"`
	PaidAmount decimal.Decimal          `json:"paidAmount" swaggertype:"string"`
}

// InstallmentPatchRequest edits an installment's due date or amount.
type InstallmentPatchRequest struct {
	DueDate *string          `json:"dueDate" binding:"omitempty,datetime=2006-01-02"`
	Amount  *decimal.Decimal `json:"amount" swaggertype:"string"`
}

// GenerateInstallmentsRequest asks for a monthly schedule. Amount defaults to the current balance
// and StartDate to the invoice date.
type GenerateInstallmentsRequest struct {
	Count     int              `json:"count" binding:"required,gte=1,lte=360"`
	Amount    *decimal.Decimal `json:"amount" swaggertype:"string"`
	StartDate *string          `json:"startDate" binding:"omitempty,datetime=2006-01-02"`
}

// MarkInstallmentPaidRequest flags an installment paid without recording a payment.
type MarkInstallmentPaidRequest struct {
	PaidAmount decimal.Decimal `json:"paidAmount" swaggertype:"string"`
	PaidDate   string          `json:"paidDate" binding:"required,datetime=2006-01-02"`
}

// ListInvoicesParams defines query parameters for listing invoices.
type ListInvoicesParams struct {
	BranchID  *string `form:"branchId"`
	Limit     int     `form:"limit,default=20" binding:"omitempty,min=1,max=100"`
	NextToken *string `form:"nextToken"`
}
