package domain_test

import (
	"errors"
	"testing"

	"github.com/SscSPs/invoice_management_app/internal/apperrors"
	"github.com/SscSPs/invoice_management_app/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func TestInvoice_AddItem(t *testing.T) {
	inv := domain.Recompute(baseInvoice())

	li, err := inv.AddItem(domain.LineItem{Name: "Gadget", UnitPrice: 250, Quantity: 4})
	require.NoError(t, err)
	assert.NotEmpty(t, li.ItemID)
	assert.Equal(t, domain.Money(1000), li.LineTotal())
	assert.Len(t, inv.Items, 2)
	assert.Equal(t, domain.Money(21000), inv.Totals().TotalItems)
}

func TestInvoice_AddItem_RejectsInvalidWithoutMutating(t *testing.T) {
	tests := []struct {
		name      string
		item      domain.LineItem
		wantField string
	}{
		{"negative price", domain.LineItem{Name: "X", UnitPrice: -1, Quantity: 1}, "unitPrice"},
		{"zero quantity", domain.LineItem{Name: "X", UnitPrice: 1, Quantity: 0}, "quantity"},
		{"missing name", domain.LineItem{UnitPrice: 1, Quantity: 1}, "name"},
		{"line total overflows", domain.LineItem{Name: "X", UnitPrice: 10000, Quantity: 1_000_000_000_000_000_000}, "quantity"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv := domain.Recompute(baseInvoice())
			before := inv

			_, err := inv.AddItem(tt.item)
			require.Error(t, err)
			assert.True(t, errors.Is(err, apperrors.ErrValidation))

			var verrs apperrors.ValidationErrors
			require.True(t, errors.As(err, &verrs))
			assert.Equal(t, tt.wantField, verrs[0].Field)
			assert.Equal(t, before, inv)
		})
	}
}

func TestInvoice_UpdateItem(t *testing.T) {
	inv := domain.Recompute(baseInvoice())

	li, err := inv.UpdateItem("item_1", domain.LineItemPatch{Quantity: ptr(int64(5))})
	require.NoError(t, err)
	assert.Equal(t, "Widget", li.Name)
	assert.Equal(t, domain.Money(50000), li.LineTotal())
	assert.Equal(t, domain.Money(50000), inv.Totals().TotalInvoice)

	_, err = inv.UpdateItem("item_1", domain.LineItemPatch{UnitPrice: ptr(domain.Money(-5))})
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	assert.Equal(t, domain.Money(10000), inv.Items[0].UnitPrice)

	_, err = inv.UpdateItem("missing", domain.LineItemPatch{})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestInvoice_RemoveItem(t *testing.T) {
	inv := domain.Recompute(baseInvoice())
	original := inv.Items

	require.NoError(t, inv.RemoveItem("item_1"))
	assert.Empty(t, inv.Items)
	assert.Zero(t, inv.Totals().TotalInvoice)
	assert.Len(t, original, 1, "caller's slice must not be modified")

	assert.ErrorIs(t, inv.RemoveItem("item_1"), apperrors.ErrNotFound)
}

func TestSubtotal(t *testing.T) {
	assert.Zero(t, domain.Subtotal(nil))
	assert.Equal(t, domain.Money(1700), domain.Subtotal([]domain.LineItem{
		{UnitPrice: 500, Quantity: 3},
		{UnitPrice: 100, Quantity: 2},
	}))
}
