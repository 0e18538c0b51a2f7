package domain

import (
	"fmt"
	"slices"

	"github.com/SscSPs/invoice_management_app/internal/apperrors"
	"github.com/google/uuid"
)

var newID = uuid.NewString

// LineItemPatch carries the fields of a line item edit; nil means unchanged.
type LineItemPatch struct {
	Name       *string
	UnitPrice  *Money
	Quantity   *int64
	ProductID  *string
	UnitID     *string
	StoreID    *string
	CategoryID *string
}

func (p LineItemPatch) apply(li LineItem) LineItem {
	if p.Name != nil {
		li.Name = *p.Name
	}
	if p.UnitPrice != nil {
		li.UnitPrice = *p.UnitPrice
	}
	if p.Quantity != nil {
		li.Quantity = *p.Quantity
	}
	if p.ProductID != nil {
		li.ProductID = *p.ProductID
	}
	if p.UnitID != nil {
		li.UnitID = *p.UnitID
	}
	if p.StoreID != nil {
		li.StoreID = *p.StoreID
	}
	if p.CategoryID != nil {
		li.CategoryID = *p.CategoryID
	}
	return li
}

// NewLineItem validates an item and computes its line total.
func NewLineItem(li LineItem) (LineItem, error) {
	if errs := validateStruct(li); len(errs) > 0 {
		return LineItem{}, errs
	}
	lineTotal, ok := mulQuantity(li.UnitPrice, li.Quantity)
	if !ok {
		return LineItem{}, apperrors.NewFieldError("quantity", outOfRange)
	}
	if li.ItemID == "" {
		li.ItemID = newID()
	}
	li.lineTotal = lineTotal
	return li, nil
}

// Subtotal is Σ unitPrice × quantity over items. It does not check for overflow;
// Invoice.Validate rejects items whose totals do not fit in Money.
func Subtotal(items []LineItem) Money {
	return sumMoney(items, func(li LineItem) Money { return li.UnitPrice * Money(li.Quantity) })
}

// AddItem appends a line item and recomputes the invoice.
func (inv *Invoice) AddItem(li LineItem) (LineItem, error) {
	li, err := NewLineItem(li)
	if err != nil {
		return LineItem{}, err
	}
	if _, dup := inv.itemIndex(li.ItemID); dup {
		return LineItem{}, apperrors.NewFieldError("id", "duplicates an existing line item")
	}
	inv.Items = append(slices.Clip(inv.Items), li)
	inv.recompute()
	return li, nil
}

// UpdateItem applies patch to the item with the given id and recomputes the invoice.
func (inv *Invoice) UpdateItem(itemID string, patch LineItemPatch) (LineItem, error) {
	i, ok := inv.itemIndex(itemID)
	if !ok {
		return LineItem{}, fmt.Errorf("%w: line item %s", apperrors.ErrNotFound, itemID)
	}
	li, err := NewLineItem(patch.apply(inv.Items[i]))
	if err != nil {
		return LineItem{}, err
	}
	inv.Items = slices.Clone(inv.Items)
	inv.Items[i] = li
	inv.recompute()
	return li, nil
}

// RemoveItem drops the item with the given id and recomputes the invoice.
func (inv *Invoice) RemoveItem(itemID string) error {
	i, ok := inv.itemIndex(itemID)
	if !ok {
		return fmt.Errorf("%w: line item %s", apperrors.ErrNotFound, itemID)
	}
	inv.Items = slices.Delete(slices.Clone(inv.Items), i, i+1)
	inv.recompute()
	return nil
}

func (inv Invoice) itemIndex(itemID string) (int, bool) {
	i := slices.IndexFunc(inv.Items, func(li LineItem) bool { return li.ItemID == itemID })
	return i, i >= 0
}

func indexed(name string, i int) string {
	return fmt.Sprintf("%s[%d]", name, i)
}
