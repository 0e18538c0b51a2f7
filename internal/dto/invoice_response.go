package dto

import (
	"time"

	"github.com/SscSPs/invoice_management_app/internal/core/domain"
)

// LineItemResponse defines the data returned for a line item.
type LineItemResponse struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	UnitPrice  string `json:"unitPrice"`
	Quantity   int64  `json:"quantity"`
	LineTotal  string `json:"lineTotal"`
	ProductID  string `json:"productId,omitempty"`
	UnitID     string `json:"unitId,omitempty"`
	StoreID    string `json:"storeId,omitempty"`
	CategoryID string `json:"categoryId,omitempty"`
}

// PaymentResponse defines the data returned for a payment.
type PaymentResponse struct {
	ID            string               `json:"id"`
	Date          string               `json:"date"`
	Amount        string               `json:"amount"`
	Method        domain.PaymentMethod `json:"method"`
	Status        domain.PaymentStatus `json:"status"`
	Notes         string               `json:"notes"`
	Reference     string               `json:"reference"`
	InstallmentID string               `json:"installmentId,omitempty"`
}

// InstallmentResponse defines the data returned for an installment.
type InstallmentResponse struct {
	ID         string                   `json:"id"`
	DueDate    string                   `json:"dueDate"`
	Amount     string                   `json:"amount"`
	Status     domain.InstallmentStatus `json:"status"`
	PaidDate   *string                  `json:"paidDate"`
	PaidAmount string                   `json:"paidAmount"`
}

// InvoiceResponse is an invoice with its derived totals. Amounts are decimal strings with the
// currency's number of fraction digits.
type InvoiceResponse struct {
	ID             string                `json:"id"`
	TenantID       string                `json:"tenantId"`
	BranchID       string                `json:"branchId"`
	InvoiceNumber  string                `json:"invoiceNumber"`
	Type           domain.InvoiceType    `json:"type"`
	InvoiceKind    domain.InvoiceKind    `json:"invoiceKind"`
	InvoiceDate    string                `json:"invoiceDate"`
	CounterpartyID string                `json:"counterpartyId"`
	CurrencyCode   string                `json:"currencyCode"`
	PaymentType    domain.PaymentType    `json:"paymentType"`
	Notes          string                `json:"notes"`
	TaxRate        string                `json:"taxRate"`
	Discount       string                `json:"discount"`
	Extra          string                `json:"extra"`
	Items          []LineItemResponse    `json:"items"`
	Pays           []PaymentResponse     `json:"pays"`
	Installments   []InstallmentResponse `json:"installments"`
	TotalItems     string                `json:"totalItems"`
	VATAmount      string                `json:"vatAmount"`
	TotalInvoice   string                `json:"totalInvoice"`
	TotalPays      string                `json:"totalPays"`
	Balance        string                `json:"balance"`
	Status         domain.InvoiceStatus  `json:"status"`
	Revision       int64                 `json:"revision"`
	Warnings       []string              `json:"warnings"`
	CreatedAt      time.Time             `json:"createdAt"`
	CreatedBy      string                `json:"createdBy"`
	LastUpdatedAt  time.Time             `json:"lastUpdatedAt"`
	LastUpdatedBy  string                `json:"lastUpdatedBy"`
}

// UpdateInvoiceResponse is returned by a full update.
type UpdateInvoiceResponse struct {
	OK bool `json:"ok"`
	InvoiceResponse
}

// InvoiceSummaryResponse is one row of an invoice listing.
type InvoiceSummaryResponse struct {
	ID             string               `json:"id"`
	BranchID       string               `json:"branchId"`
	InvoiceNumber  string               `json:"invoiceNumber"`
	Type           domain.InvoiceType   `json:"type"`
	InvoiceKind    domain.InvoiceKind   `json:"invoiceKind"`
	InvoiceDate    string               `json:"invoiceDate"`
	CounterpartyID string               `json:"counterpartyId"`
	CurrencyCode   string               `json:"currencyCode"`
	PaymentType    domain.PaymentType   `json:"paymentType"`
	TotalInvoice   string               `json:"totalInvoice"`
	TotalPays      string               `json:"totalPays"`
	Balance        string               `json:"balance"`
	Status         domain.InvoiceStatus `json:"status"`
	Revision       int64                `json:"revision"`
	CreatedAt      time.Time            `json:"createdAt"`
}

// ListInvoicesResponse wraps a page of invoice summaries.
type ListInvoicesResponse struct {
	Invoices  []InvoiceSummaryResponse `json:"invoices"`
	NextToken *string                  `json:"nextToken,omitempty"`
}

// ToInvoiceResponse converts a recomputed domain.Invoice to InvoiceResponse DTO.
func ToInvoiceResponse(inv *domain.Invoice) InvoiceResponse {
	cur := inv.Currency()
	totals := inv.Totals()
	warnings := inv.ScheduleWarnings()
	if warnings == nil {
		warnings = []string{}
	}
	return InvoiceResponse{
		ID:             inv.InvoiceID,
		TenantID:       inv.TenantID,
		BranchID:       inv.BranchID,
		InvoiceNumber:  inv.InvoiceNumber,
		Type:           inv.Type,
		InvoiceKind:    inv.Kind,
		InvoiceDate:    inv.InvoiceDate.Format(DateLayout),
		CounterpartyID: inv.CounterpartyID,
		CurrencyCode:   inv.CurrencyCode,
		PaymentType:    inv.PaymentType,
		Notes:          inv.Notes,
		TaxRate:        inv.TaxRate.String(),
		Discount:       inv.Discount.Format(cur),
		Extra:          inv.Extra.Format(cur),
		Items:          toLineItemResponses(inv.Items, cur),
		Pays:           toPaymentResponses(inv.Pays, cur),
		Installments:   ToInstallmentResponses(inv.Installments, cur),
		TotalItems:     totals.TotalItems.Format(cur),
		VATAmount:      totals.VATAmount.Format(cur),
		TotalInvoice:   totals.TotalInvoice.Format(cur),
		TotalPays:      totals.TotalPays.Format(cur),
		Balance:        totals.Balance.Format(cur),
		Status:         totals.Status,
		Revision:       inv.Revision,
		Warnings:       warnings,
		CreatedAt:      inv.CreatedAt,
		CreatedBy:      inv.CreatedBy,
		LastUpdatedAt:  inv.LastUpdatedAt,
		LastUpdatedBy:  inv.LastUpdatedBy,
	}
}

func toLineItemResponses(items []domain.LineItem, cur domain.Currency) []LineItemResponse {
	res := make([]LineItemResponse, len(items))
	for i, li := range items {
		res[i] = LineItemResponse{
			ID:         li.ItemID,
			Name:       li.Name,
			UnitPrice:  li.UnitPrice.Format(cur),
			Quantity:   li.Quantity,
			LineTotal:  li.LineTotal().Format(cur),
			ProductID:  li.ProductID,
			UnitID:     li.UnitID,
			StoreID:    li.StoreID,
			CategoryID: li.CategoryID,
		}
	}
	return res
}

func toPaymentResponses(pays []domain.Payment, cur domain.Currency) []PaymentResponse {
	res := make([]PaymentResponse, len(pays))
	for i, p := range pays {
		res[i] = PaymentResponse{
			ID:            p.PaymentID,
			Date:          p.Date.Format(DateLayout),
			Amount:        p.Amount.Format(cur),
			Method:        p.Method,
			Status:        p.Status,
			Notes:         p.Notes,
			Reference:     p.Reference,
			InstallmentID: p.InstallmentID,
		}
	}
	return res
}

// ToInstallmentResponses formats a schedule in the invoice currency.
func ToInstallmentResponses(installments []domain.Installment, cur domain.Currency) []InstallmentResponse {
	res := make([]InstallmentResponse, len(installments))
	for i, in := range installments {
		var paidDate *string
		if in.PaidDate != nil {
			s := in.PaidDate.Format(DateLayout)
			paidDate = &s
		}
		res[i] = InstallmentResponse{
			ID:         in.InstallmentID,
			DueDate:    in.DueDate.Format(DateLayout),
			Amount:     in.Amount.Format(cur),
			Status:     in.Status,
			PaidDate:   paidDate,
			PaidAmount: in.PaidAmount.Format(cur),
		}
	}
	return res
}

// ToListInvoicesResponse converts a page of summaries.
func ToListInvoicesResponse(summaries []domain.InvoiceSummary, nextToken *string) ListInvoicesResponse {
	res := make([]InvoiceSummaryResponse, len(summaries))
	for i, s := range summaries {
		cur := domain.CurrencyOf(s.CurrencyCode)
		res[i] = InvoiceSummaryResponse{
			ID:             s.InvoiceID,
			BranchID:       s.BranchID,
			InvoiceNumber:  s.InvoiceNumber,
			Type:           s.Type,
			InvoiceKind:    s.Kind,
			InvoiceDate:    s.InvoiceDate.Format(DateLayout),
			CounterpartyID: s.CounterpartyID,
			CurrencyCode:   s.CurrencyCode,
			PaymentType:    s.PaymentType,
			TotalInvoice:   s.TotalInvoice.Format(cur),
			TotalPays:      s.TotalPays.Format(cur),
			Balance:        s.Balance.Format(cur),
			Status:         s.Status,
			Revision:       s.Revision,
			CreatedAt:      s.CreatedAt,
		}
	}
	return ListInvoicesResponse{Invoices: res, NextToken: nextToken}
}
