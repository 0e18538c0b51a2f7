package domain

import (
	"fmt"
	"slices"
)

// Recompute derives every computed field of inv from its inputs and returns the result.
// It is pure and idempotent; inv itself is left untouched.
func Recompute(inv Invoice) Invoice {
	items := slices.Clone(inv.Items)
	for i := range items {
		items[i].lineTotal = items[i].UnitPrice * Money(items[i].Quantity)
	}
	inv.Items = items

	totalItems := Subtotal(items)
	charges := ComputeCharges(totalItems, inv.Discount, inv.Extra, inv.Kind, inv.TaxRate)
	totalPays := TotalPaid(inv.Pays)
	balance, status := ResolveBalance(charges.TotalInvoice, totalPays)

	inv.totals = Totals{
		TotalItems:   totalItems,
		Taxable:      charges.Taxable,
		VATAmount:    charges.VATAmount,
		TotalInvoice: charges.TotalInvoice,
		TotalPays:    totalPays,
		Balance:      balance,
		Status:       status,
	}
	return inv
}

func (inv *Invoice) recompute() {
	*inv = Recompute(*inv)
}

// ScheduleWarnings lists advisory problems that never block a write.
// Today that is an installment schedule whose open entries do not cover the balance.
func (inv Invoice) ScheduleWarnings() []string {
	if inv.PaymentType != PaymentTypeInstallment || len(inv.Installments) == 0 {
		return nil
	}
	open := slices.DeleteFunc(slices.Clone(inv.Installments), func(in Installment) bool {
		return in.Status == InstallmentPaid
	})
	if IsScheduleBalanced(open, inv.totals.Balance) {
		return nil
	}
	cur := inv.Currency()
	return []string{fmt.Sprintf("open installments total %s but the balance is %s",
		ScheduleTotal(open).Format(cur), inv.totals.Balance.Format(cur))}
}
