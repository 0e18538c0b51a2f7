package domain

import (
	"errors"
	"math"
	"reflect"
	"strings"

	"github.com/SscSPs/invoice_management_app/internal/apperrors"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

const (
	maxTaxRateScale = 4
	outOfRange      = "is out of range"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// validateStruct runs the struct tags of s and reports failures keyed by JSON path,
// e.g. "items[0].unitPrice".
func validateStruct(s any) apperrors.ValidationErrors {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return apperrors.NewFieldError("", err.Error())
	}
	out := make(apperrors.ValidationErrors, 0, len(verrs))
	for _, fe := range verrs {
		out.Add(fieldPath(fe.Namespace()), FieldMessage(fe.Tag(), fe.Param()))
	}
	return out
}

// fieldPath drops the root struct name from a validator namespace.
func fieldPath(ns string) string {
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

// FieldMessage renders a human message for a validator tag.
func FieldMessage(tag, param string) string {
	switch tag {
	case "required", "required_if":
		return "is required"
	case "gte":
		return "must be greater than or equal to " + param
	case "lte":
		return "must be less than or equal to " + param
	case "gt":
		return "must be greater than " + param
	case "min":
		return "must be at least " + param
	case "max":
		return "must be at most " + param + " characters"
	case "oneof":
		return "must be one of: " + strings.ReplaceAll(param, " ", ", ")
	case "iso4217":
		return "must be an ISO 4217 currency code"
	case "datetime":
		return "must be a date formatted as " + param
	case "len":
		return "must have length " + param
	}
	return "is invalid (" + tag + ")"
}

func validateTaxRate(rate decimal.Decimal) apperrors.ValidationErrors {
	var errs apperrors.ValidationErrors
	if rate.IsNegative() || rate.GreaterThan(hundred) {
		errs.Add("taxRate", "must be between 0 and 100")
	}
	if !rate.Shift(maxTaxRateScale).IsInteger() {
		errs.Add("taxRate", "must have at most 4 decimal places")
	}
	return errs
}

// Validate checks every field rule of the invoice and its sub-collections.
// The returned error is apperrors.ValidationErrors or nil.
func (inv Invoice) Validate() error {
	errs := validateStruct(inv)
	errs = append(errs, validateTaxRate(inv.TaxRate)...)
	errs = append(errs, validateUniqueIDs(inv)...)
	errs = append(errs, validateInstallmentLinks(inv)...)
	errs = append(errs, validateMagnitudes(inv)...)
	return errs.OrNil()
}

// validateUniqueIDs rejects a child id used twice in its collection and an installment
// settled by more than one payment.
func validateUniqueIDs(inv Invoice) apperrors.ValidationErrors {
	var errs apperrors.ValidationErrors
	for _, i := range duplicates(inv.Items, func(li LineItem) string { return li.ItemID }) {
		errs.Add(indexed("items", i)+".id", "duplicates another line item")
	}
	for _, i := range duplicates(inv.Pays, func(p Payment) string { return p.PaymentID }) {
		errs.Add(indexed("pays", i)+".id", "duplicates another payment")
	}
	for _, i := range duplicates(inv.Installments, func(in Installment) string { return in.InstallmentID }) {
		errs.Add(indexed("installments", i)+".id", "duplicates another installment")
	}
	for _, i := range duplicates(inv.Pays, func(p Payment) string { return p.InstallmentID }) {
		errs.Add(indexed("pays", i)+".installmentId", "is already settled by another payment")
	}
	return errs
}

// duplicates returns the indexes of elements whose non-empty key appeared earlier in xs.
func duplicates[T any](xs []T, key func(T) string) []int {
	seen := make(map[string]struct{}, len(xs))
	var out []int
	for i, x := range xs {
		k := key(x)
		if k == "" {
			continue
		}
		if _, dup := seen[k]; dup {
			out = append(out, i)
			continue
		}
		seen[k] = struct{}{}
	}
	return out
}

// validateMagnitudes reports inputs whose derived amounts do not fit in Money.
// Recompute does not check, so a wrapped total never gets past Validate.
func validateMagnitudes(inv Invoice) apperrors.ValidationErrors {
	var errs apperrors.ValidationErrors
	var subtotal Money
	for i, li := range inv.Items {
		line, ok := mulQuantity(li.UnitPrice, li.Quantity)
		if !ok {
			errs.Add(indexed("items", i)+".quantity", outOfRange)
			continue
		}
		if subtotal, ok = addMoney(subtotal, line); !ok {
			errs.Add("items", "total of line items "+outOfRange)
			return errs
		}
	}
	if len(errs) > 0 {
		return errs
	}

	total, ok := subtotal, inv.Discount != math.MinInt64
	if ok {
		total, ok = addMoney(total, -inv.Discount)
	}
	if !ok {
		errs.Add("discount", outOfRange)
		return errs
	}
	if inv.Kind == KindTax && !inv.TaxRate.IsNegative() && !inv.TaxRate.GreaterThan(hundred) {
		if total, ok = addMoney(total, percentOf(total, inv.TaxRate)); !ok {
			errs.Add("items", "invoice total "+outOfRange)
			return errs
		}
	}
	if total, ok = addMoney(total, inv.Extra); !ok {
		errs.Add("extra", outOfRange)
		return errs
	}

	var paid Money
	for _, p := range inv.Pays {
		if paid, ok = addMoney(paid, p.Amount); !ok {
			errs.Add("pays", "total of payments "+outOfRange)
			return errs
		}
	}
	if paid != math.MinInt64 {
		_, ok = addMoney(total, -paid)
	}
	if paid == math.MinInt64 || !ok {
		errs.Add("pays", "balance "+outOfRange)
	}

	var scheduled Money
	for _, in := range inv.Installments {
		if scheduled, ok = addMoney(scheduled, in.Amount); !ok {
			errs.Add("installments", "total of installments "+outOfRange)
			break
		}
	}
	return errs
}

// validateInstallmentLinks checks that settlement payments point at existing installments.
func validateInstallmentLinks(inv Invoice) apperrors.ValidationErrors {
	var errs apperrors.ValidationErrors
	for i, p := range inv.Pays {
		if p.InstallmentID == "" {
			continue
		}
		if _, ok := inv.installmentIndex(p.InstallmentID); !ok {
			errs.Add(indexed("pays", i)+".installmentId", "does not reference an installment on this invoice")
		}
	}
	return errs
}
