package domain

import "github.com/shopspring/decimal"

// Charges is the output of the charge calculation.
type Charges struct {
	Taxable      Money // subtotal - discount
	VATAmount    Money
	TotalInvoice Money
}

// ComputeCharges applies discount, flat-rate VAT and extra charges to a subtotal.
// VAT is levied on the discounted subtotal and only for tax-kind invoices; a stored rate on a
// normal invoice is ignored. Neither discount nor extra is clamped, so the total may go negative.
func ComputeCharges(subtotal, discount, extra Money, kind InvoiceKind, taxRate decimal.Decimal) Charges {
	taxable := subtotal - discount
	var vat Money
	if kind == KindTax {
		vat = percentOf(taxable, taxRate)
	}
	return Charges{
		Taxable:      taxable,
		VATAmount:    vat,
		TotalInvoice: taxable + vat + extra,
	}
}
