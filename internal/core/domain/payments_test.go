package domain_test

import (
	"testing"
	"time"

	"github.com/SscSPs/invoice_management_app/internal/apperrors"
	"github.com/SscSPs/invoice_management_app/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var payDate = time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)

func TestInvoice_PaymentLifecycle(t *testing.T) {
	inv := domain.Recompute(baseInvoice())

	p, err := inv.AddPayment(domain.Payment{Date: payDate, Amount: 5000, Method: domain.MethodCash})
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentPaid, p.Status)
	assert.Equal(t, domain.Money(15000), inv.Totals().Balance)

	_, err = inv.UpdatePayment(p.PaymentID, domain.PaymentPatch{Amount: ptr(domain.Money(20000))})
	require.NoError(t, err)
	assert.Equal(t, domain.Money(0), inv.Totals().Balance)
	assert.Equal(t, domain.InvoicePaid, inv.Totals().Status)

	require.NoError(t, inv.RemovePayment(p.PaymentID, payDate))
	assert.Equal(t, domain.Money(20000), inv.Totals().Balance)
	assert.Equal(t, domain.InvoicePending, inv.Totals().Status)
}

func TestInvoice_AddPayment_Validation(t *testing.T) {
	inv := domain.Recompute(baseInvoice())

	_, err := inv.AddPayment(domain.Payment{Date: payDate, Amount: -1, Method: domain.MethodCash})
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = inv.AddPayment(domain.Payment{Amount: 1, Method: domain.MethodCash})
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = inv.AddPayment(domain.Payment{Date: payDate, Amount: 1, Method: "barter"})
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = inv.AddPayment(domain.Payment{Date: payDate, Amount: 1, Method: domain.MethodCash, InstallmentID: "x"})
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	assert.Empty(t, inv.Pays)
}

func TestInvoice_PaymentNotFound(t *testing.T) {
	inv := domain.Recompute(baseInvoice())
	_, err := inv.UpdatePayment("nope", domain.PaymentPatch{})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.ErrorIs(t, inv.RemovePayment("nope", payDate), apperrors.ErrNotFound)
}

func TestTotalPaid(t *testing.T) {
	assert.Equal(t, domain.Money(300), domain.TotalPaid([]domain.Payment{
		{Amount: 100, Status: domain.PaymentPaid},
		{Amount: 200, Status: domain.PaymentPending},
	}))
}
