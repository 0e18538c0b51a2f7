package domain_test

import (
	"testing"
	"time"

	"github.com/SscSPs/invoice_management_app/internal/apperrors"
	"github.com/SscSPs/invoice_management_app/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateInstallments(t *testing.T) {
	start := time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		name        string
		balance     domain.Money
		count       int
		wantAmounts []domain.Money
	}{
		{"even split", 30000, 3, []domain.Money{10000, 10000, 10000}},
		{"remainder on last", 23000, 3, []domain.Money{7666, 7666, 7668}},
		{"single entry", 999, 1, []domain.Money{999}},
		{"more entries than minor units", 2, 3, []domain.Money{0, 0, 2}},
		{"zero balance", 0, 2, []domain.Money{0, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := domain.GenerateInstallments(tt.balance, tt.count, start)
			require.NoError(t, err)
			require.Len(t, got, tt.count)

			amounts := make([]domain.Money, len(got))
			for i, in := range got {
				amounts[i] = in.Amount
				assert.Equal(t, domain.InstallmentPending, in.Status)
				assert.NotEmpty(t, in.InstallmentID)
				if i > 0 {
					assert.True(t, in.DueDate.After(got[i-1].DueDate))
				}
			}
			assert.Equal(t, tt.wantAmounts, amounts)
			assert.True(t, domain.IsScheduleBalanced(got, tt.balance))
		})
	}
}

func TestGenerateInstallments_DueDatesClampToMonthEnd(t *testing.T) {
	start := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)
	got, err := domain.GenerateInstallments(400, 4, start)
	require.NoError(t, err)

	want := []time.Time{
		time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 4, 30, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 5, 31, 0, 0, 0, 0, time.UTC),
	}
	for i, in := range got {
		assert.True(t, want[i].Equal(in.DueDate), "entry %d: got %s", i, in.DueDate)
	}
}

func TestGenerateInstallments_Rejects(t *testing.T) {
	_, err := domain.GenerateInstallments(100, 0, time.Now())
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	_, err = domain.GenerateInstallments(-1, 2, time.Now())
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	_, err = domain.GenerateInstallments(100, domain.MaxInstallments+1, time.Now())
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	got, err := domain.GenerateInstallments(100, domain.MaxInstallments, time.Now())
	require.NoError(t, err)
	assert.Len(t, got, domain.MaxInstallments)
}

func TestIsScheduleBalanced(t *testing.T) {
	schedule := []domain.Installment{{Amount: 100}, {Amount: 50}}
	assert.True(t, domain.IsScheduleBalanced(schedule, 150))
	assert.False(t, domain.IsScheduleBalanced(schedule, 151))
	assert.False(t, domain.IsScheduleBalanced(schedule, 149))
	assert.True(t, domain.IsScheduleBalanced(nil, 0))
}

func TestInvoice_ScheduleInstallments_KeepsPaid(t *testing.T) {
	inv := domain.Recompute(baseInvoice())
	first, err := inv.ScheduleInstallments(20000, 2, inv.InvoiceDate)
	require.NoError(t, err)
	_, err = inv.MarkInstallmentPaid(first[0].InstallmentID, 10000, payDate)
	require.NoError(t, err)

	regenerated, err := inv.ScheduleInstallments(10000, 4, inv.InvoiceDate)
	require.NoError(t, err)
	assert.Len(t, regenerated, 4)
	require.Len(t, inv.Installments, 5)
	assert.Equal(t, first[0].InstallmentID, inv.Installments[0].InstallmentID)
}

func TestInvoice_InstallmentEdits(t *testing.T) {
	inv := domain.Recompute(baseInvoice())
	due := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	in, err := inv.AddInstallment(domain.Installment{DueDate: due, Amount: 7000})
	require.NoError(t, err)
	assert.Equal(t, domain.InstallmentPending, in.Status)

	updated, err := inv.UpdateInstallment(in.InstallmentID, domain.InstallmentPatch{Amount: ptr(domain.Money(9000))})
	require.NoError(t, err)
	assert.Equal(t, domain.Money(9000), updated.Amount)
	assert.True(t, due.Equal(updated.DueDate))

	_, err = inv.UpdateInstallment(in.InstallmentID, domain.InstallmentPatch{Amount: ptr(domain.Money(-1))})
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = inv.AddInstallment(domain.Installment{Amount: 1})
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	require.NoError(t, inv.RemoveInstallment(in.InstallmentID))
	assert.Empty(t, inv.Installments)
	assert.ErrorIs(t, inv.RemoveInstallment(in.InstallmentID), apperrors.ErrNotFound)
}

func TestInvoice_MarkInstallmentPaid_LeavesBalance(t *testing.T) {
	inv := domain.Recompute(baseInvoice())
	schedule, err := inv.ScheduleInstallments(20000, 2, inv.InvoiceDate)
	require.NoError(t, err)

	in, err := inv.MarkInstallmentPaid(schedule[0].InstallmentID, 10000, payDate)
	require.NoError(t, err)
	assert.Equal(t, domain.InstallmentPaid, in.Status)
	assert.Equal(t, domain.Money(10000), in.PaidAmount)
	require.NotNil(t, in.PaidDate)
	assert.Empty(t, inv.Pays)
	assert.Equal(t, domain.Money(20000), inv.Totals().Balance)

	_, err = inv.MarkInstallmentPaid("missing", 1, payDate)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	_, err = inv.MarkInstallmentPaid(schedule[1].InstallmentID, -1, payDate)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestInvoice_MarkOverdueInstallments(t *testing.T) {
	inv := domain.Recompute(baseInvoice())
	schedule, err := inv.ScheduleInstallments(30000, 3, time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	_, err = inv.MarkInstallmentPaid(schedule[0].InstallmentID, 10000, payDate)
	require.NoError(t, err)

	// second installment is due 2025-03-10; the same day is not overdue yet
	assert.Equal(t, 0, inv.MarkOverdueInstallments(time.Date(2025, 3, 10, 23, 0, 0, 0, time.UTC)))
	assert.Equal(t, 1, inv.MarkOverdueInstallments(time.Date(2025, 3, 11, 0, 0, 0, 0, time.UTC)))

	assert.Equal(t, domain.InstallmentPaid, inv.Installments[0].Status)
	assert.Equal(t, domain.InstallmentOverdue, inv.Installments[1].Status)
	assert.Equal(t, domain.InstallmentPending, inv.Installments[2].Status)
	assert.Equal(t, domain.InvoicePending, inv.Totals().Status)
}
