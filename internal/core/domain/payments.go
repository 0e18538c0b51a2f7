package domain

import (
	"fmt"
	"slices"
	"time"

	"github.com/SscSPs/invoice_management_app/internal/apperrors"
)

// PaymentPatch carries the fields of a payment edit; nil means unchanged.
type PaymentPatch struct {
	Date      *time.Time
	Amount    *Money
	Method    *PaymentMethod
	Status    *PaymentStatus
	Notes     *string
	Reference *string
}

func (p PaymentPatch) apply(pay Payment) Payment {
	if p.Date != nil {
		pay.Date = *p.Date
	}
	if p.Amount != nil {
		pay.Amount = *p.Amount
	}
	if p.Method != nil {
		pay.Method = *p.Method
	}
	if p.Status != nil {
		pay.Status = *p.Status
	}
	if p.Notes != nil {
		pay.Notes = *p.Notes
	}
	if p.Reference != nil {
		pay.Reference = *p.Reference
	}
	return pay
}

// TotalPaid is Σ amount over payments. Status does not matter.
func TotalPaid(pays []Payment) Money {
	return sumMoney(pays, func(p Payment) Money { return p.Amount })
}

func newPayment(p Payment) (Payment, error) {
	if p.Status == "" {
		p.Status = PaymentPaid
	}
	if errs := validateStruct(p); len(errs) > 0 {
		return Payment{}, errs
	}
	if p.PaymentID == "" {
		p.PaymentID = newID()
	}
	return p, nil
}

// AddPayment records an advance payment. Payments that settle an installment go
// through ApplyPayment with a settlement event instead.
func (inv *Invoice) AddPayment(p Payment) (Payment, error) {
	if p.InstallmentID != "" {
		return Payment{}, apperrors.NewFieldError("installmentId", "is set by installment settlement only")
	}
	p, err := newPayment(p)
	if err != nil {
		return Payment{}, err
	}
	if _, dup := inv.paymentIndex(p.PaymentID); dup {
		return Payment{}, apperrors.NewFieldError("id", "duplicates an existing payment")
	}
	inv.Pays = append(slices.Clip(inv.Pays), p)
	inv.recompute()
	return p, nil
}

// UpdatePayment applies patch to a payment. When the payment settles an installment,
// the installment's paid amount and date follow the edit.
func (inv *Invoice) UpdatePayment(paymentID string, patch PaymentPatch) (Payment, error) {
	i, ok := inv.paymentIndex(paymentID)
	if !ok {
		return Payment{}, fmt.Errorf("%w: payment %s", apperrors.ErrNotFound, paymentID)
	}
	p, err := newPayment(patch.apply(inv.Pays[i]))
	if err != nil {
		return Payment{}, err
	}
	inv.Pays = slices.Clone(inv.Pays)
	inv.Pays[i] = p
	if j, linked := inv.installmentIndex(p.InstallmentID); linked {
		inv.Installments = slices.Clone(inv.Installments)
		paidDate := p.Date
		inv.Installments[j].PaidAmount = p.Amount
		inv.Installments[j].PaidDate = &paidDate
	}
	inv.recompute()
	return p, nil
}

// RemovePayment drops a payment. Removing the payment that settled an installment
// reopens that installment as pending, or overdue when asOf is past its due date.
func (inv *Invoice) RemovePayment(paymentID string, asOf time.Time) error {
	i, ok := inv.paymentIndex(paymentID)
	if !ok {
		return fmt.Errorf("%w: payment %s", apperrors.ErrNotFound, paymentID)
	}
	removed := inv.Pays[i]
	inv.Pays = slices.Delete(slices.Clone(inv.Pays), i, i+1)
	if j, linked := inv.installmentIndex(removed.InstallmentID); linked {
		inv.Installments = slices.Clone(inv.Installments)
		inv.Installments[j] = reopen(inv.Installments[j], asOf)
	}
	inv.recompute()
	return nil
}

func (inv Invoice) paymentIndex(paymentID string) (int, bool) {
	if paymentID == "" {
		return -1, false
	}
	i := slices.IndexFunc(inv.Pays, func(p Payment) bool { return p.PaymentID == paymentID })
	return i, i >= 0
}

// settlementFor returns the index of the payment settling installmentID, if any.
func (inv Invoice) settlementFor(installmentID string) (int, bool) {
	i := slices.IndexFunc(inv.Pays, func(p Payment) bool { return p.InstallmentID == installmentID })
	return i, i >= 0
}
