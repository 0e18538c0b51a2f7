package domain

// ResolveBalance derives the outstanding balance and the invoice status.
// An invoice is paid once something was owed and nothing remains.
func ResolveBalance(totalInvoice, totalPays Money) (Money, InvoiceStatus) {
	balance := totalInvoice - totalPays
	if balance <= 0 && totalInvoice > 0 {
		return balance, InvoicePaid
	}
	return balance, InvoicePending
}
