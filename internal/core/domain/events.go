package domain

import (
	"slices"

	"github.com/SscSPs/invoice_management_app/internal/apperrors"
)

// PaymentKind tells an advance payment from one that settles an installment.
type PaymentKind string

const (
	PaymentAdvance               PaymentKind = "advance"
	PaymentInstallmentSettlement PaymentKind = "installmentSettlement"
)

// PaymentApplied is money received against an invoice, optionally earmarked for an installment.
type PaymentApplied struct {
	Kind          PaymentKind
	InstallmentID string
	Payment       Payment
}

// ApplyPayment records the event. A settlement appends the payment linked to the installment and
// marks the installment paid with the payment's amount and date; either both happen or neither.
func (inv *Invoice) ApplyPayment(ev PaymentApplied) (Payment, error) {
	switch ev.Kind {
	case PaymentAdvance:
		return inv.AddPayment(ev.Payment)
	case PaymentInstallmentSettlement:
	default:
		return Payment{}, apperrors.NewFieldError("kind", "must be one of: advance, installmentSettlement")
	}

	i, ok := inv.installmentIndex(ev.InstallmentID)
	if !ok {
		return Payment{}, apperrors.NewFieldError("installmentId", "does not reference an installment on this invoice")
	}
	if inv.Installments[i].Status == InstallmentPaid {
		return Payment{}, apperrors.NewFieldError("installmentId", "is already paid")
	}
	p := ev.Payment
	p.InstallmentID = ev.InstallmentID
	p, err := newPayment(p)
	if err != nil {
		return Payment{}, err
	}
	if _, dup := inv.paymentIndex(p.PaymentID); dup {
		return Payment{}, apperrors.NewFieldError("id", "duplicates an existing payment")
	}

	inv.Pays = append(slices.Clip(inv.Pays), p)
	inv.Installments = slices.Clone(inv.Installments)
	inv.Installments[i] = settle(inv.Installments[i], p.Amount, p.Date)
	inv.recompute()
	return p, nil
}
