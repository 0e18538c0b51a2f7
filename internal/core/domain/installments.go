package domain

import (
	"fmt"
	"slices"
	"time"

	"github.com/SscSPs/invoice_management_app/internal/apperrors"
)

// MaxInstallments caps how many installments one schedule may generate.
const MaxInstallments = 360

// InstallmentPatch carries the fields of a free-form installment edit; nil means unchanged.
type InstallmentPatch struct {
	DueDate *time.Time
	Amount  *Money
}

// GenerateInstallments splits balance into count monthly installments.
// Each entry gets balance/count truncated to the minor unit and the last one absorbs the remainder,
// so the amounts always add up to balance. Entry i (1-based) is due i months after start.
func GenerateInstallments(balance Money, count int, start time.Time) ([]Installment, error) {
	var errs apperrors.ValidationErrors
	if count < 1 {
		errs.Add("count", "must be at least 1")
	}
	if count > MaxInstallments {
		errs.Add("count", fmt.Sprintf("must be at most %d", MaxInstallments))
	}
	if balance < 0 {
		errs.Add("balance", "must be greater than or equal to 0")
	}
	if len(errs) > 0 {
		return nil, errs
	}

	share := balance / Money(count)
	out := make([]Installment, count)
	for i := range out {
		amount := share
		if i == count-1 {
			amount = balance - share*Money(count-1)
		}
		out[i] = Installment{
			InstallmentID: newID(),
			DueDate:       addMonthsClamped(start, i+1),
			Amount:        amount,
			Status:        InstallmentPending,
		}
	}
	return out, nil
}

// ScheduleTotal is Σ amount over installments.
func ScheduleTotal(installments []Installment) Money {
	return sumMoney(installments, func(in Installment) Money { return in.Amount })
}

// IsScheduleBalanced reports whether the schedule adds up to target within one minor unit.
func IsScheduleBalanced(installments []Installment, target Money) bool {
	diff := ScheduleTotal(installments) - target
	return diff > -1 && diff < 1
}

// ScheduleInstallments replaces the open part of the schedule with count generated installments
// covering amount. Paid installments are kept as they are.
func (inv *Invoice) ScheduleInstallments(amount Money, count int, start time.Time) ([]Installment, error) {
	generated, err := GenerateInstallments(amount, count, start)
	if err != nil {
		return nil, err
	}
	kept := slices.DeleteFunc(slices.Clone(inv.Installments), func(in Installment) bool {
		return in.Status != InstallmentPaid
	})
	inv.Installments = append(kept, generated...)
	inv.recompute()
	return generated, nil
}

// AddInstallment appends a manually entered installment. No re-balancing happens.
func (inv *Invoice) AddInstallment(in Installment) (Installment, error) {
	if in.Status == "" {
		in.Status = InstallmentPending
	}
	if errs := validateStruct(in); len(errs) > 0 {
		return Installment{}, errs
	}
	if in.InstallmentID == "" {
		in.InstallmentID = newID()
	}
	if _, dup := inv.installmentIndex(in.InstallmentID); dup {
		return Installment{}, apperrors.NewFieldError("id", "duplicates an existing installment")
	}
	inv.Installments = append(slices.Clip(inv.Installments), in)
	inv.recompute()
	return in, nil
}

// UpdateInstallment edits due date and amount. No re-balancing happens.
func (inv *Invoice) UpdateInstallment(installmentID string, patch InstallmentPatch) (Installment, error) {
	i, ok := inv.installmentIndex(installmentID)
	if !ok {
		return Installment{}, fmt.Errorf("%w: installment %s", apperrors.ErrNotFound, installmentID)
	}
	in := inv.Installments[i]
	if patch.DueDate != nil {
		in.DueDate = *patch.DueDate
	}
	if patch.Amount != nil {
		in.Amount = *patch.Amount
	}
	if errs := validateStruct(in); len(errs) > 0 {
		return Installment{}, errs
	}
	inv.Installments = slices.Clone(inv.Installments)
	inv.Installments[i] = in
	inv.recompute()
	return in, nil
}

// RemoveInstallment drops an installment. One still settled by a payment cannot be removed
// until that payment is.
func (inv *Invoice) RemoveInstallment(installmentID string) error {
	i, ok := inv.installmentIndex(installmentID)
	if !ok {
		return fmt.Errorf("%w: installment %s", apperrors.ErrNotFound, installmentID)
	}
	if j, settled := inv.settlementFor(installmentID); settled {
		return apperrors.NewFieldError("id", "is settled by payment "+inv.Pays[j].PaymentID+"; remove the payment first")
	}
	inv.Installments = slices.Delete(slices.Clone(inv.Installments), i, i+1)
	inv.recompute()
	return nil
}

// MarkInstallmentPaid flags an installment as paid. It records no payment, so totalPays and
// balance are unchanged; ApplyPayment with a settlement event does both. An installment
// settled by a payment follows that payment and cannot be marked here.
func (inv *Invoice) MarkInstallmentPaid(installmentID string, paidAmount Money, paidDate time.Time) (Installment, error) {
	i, ok := inv.installmentIndex(installmentID)
	if !ok {
		return Installment{}, fmt.Errorf("%w: installment %s", apperrors.ErrNotFound, installmentID)
	}
	if j, settled := inv.settlementFor(installmentID); settled {
		return Installment{}, apperrors.NewFieldError("id", "is settled by payment "+inv.Pays[j].PaymentID+"; edit the payment instead")
	}
	var errs apperrors.ValidationErrors
	if paidAmount < 0 {
		errs.Add("paidAmount", "must be greater than or equal to 0")
	}
	if paidDate.IsZero() {
		errs.Add("paidDate", "is required")
	}
	if len(errs) > 0 {
		return Installment{}, errs
	}
	inv.Installments = slices.Clone(inv.Installments)
	inv.Installments[i] = settle(inv.Installments[i], paidAmount, paidDate)
	inv.recompute()
	return inv.Installments[i], nil
}

// MarkOverdueInstallments flags pending installments due strictly before asOf's date and
// returns how many changed. The invoice status is not affected.
func (inv *Invoice) MarkOverdueInstallments(asOf time.Time) int {
	today := dateOnly(asOf)
	changed := 0
	for i, in := range inv.Installments {
		if in.Status != InstallmentPending || !dateOnly(in.DueDate).Before(today) {
			continue
		}
		if changed == 0 {
			inv.Installments = slices.Clone(inv.Installments)
		}
		inv.Installments[i].Status = InstallmentOverdue
		changed++
	}
	return changed
}

func (inv Invoice) installmentIndex(installmentID string) (int, bool) {
	if installmentID == "" {
		return -1, false
	}
	i := slices.IndexFunc(inv.Installments, func(in Installment) bool { return in.InstallmentID == installmentID })
	return i, i >= 0
}

func settle(in Installment, paidAmount Money, paidDate time.Time) Installment {
	in.Status = InstallmentPaid
	in.PaidAmount = paidAmount
	in.PaidDate = &paidDate
	return in
}

func reopen(in Installment, asOf time.Time) Installment {
	in.Status = InstallmentPending
	if dateOnly(in.DueDate).Before(dateOnly(asOf)) {
		in.Status = InstallmentOverdue
	}
	in.PaidAmount = 0
	in.PaidDate = nil
	return in
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// addMonthsClamped moves t forward n months, pinning the day to the end of shorter months
// (Jan 31 + 1 month is Feb 28 or 29).
func addMonthsClamped(t time.Time, n int) time.Time {
	y, m, d := t.Date()
	first := time.Date(y, m+time.Month(n), 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1).Day()
	if d > last {
		d = last
	}
	return time.Date(first.Year(), first.Month(), d, 0, 0, 0, 0, time.UTC)
}
