package domain

import "strings"

// DefaultCurrencyExponent is the number of minor-unit digits used when a currency is not listed below.
const DefaultCurrencyExponent int32 = 2

// Currencies whose minor unit differs from the default (ISO 4217).
var currencyExponents = map[string]int32{
	"BIF": 0, "CLP": 0, "DJF": 0, "GNF": 0, "ISK": 0, "JPY": 0, "KMF": 0, "KRW": 0,
	"PYG": 0, "RWF": 0, "UGX": 0, "VND": 0, "VUV": 0, "XAF": 0, "XOF": 0, "XPF": 0,
	"BHD": 3, "IQD": 3, "JOD": 3, "KWD": 3, "LYD": 3, "OMR": 3, "TND": 3,
}

// Currency represents a supported currency in the domain.
type Currency struct {
	CurrencyCode string `json:"currencyCode"` // e.g. "SAR"
	Exponent     int32  `json:"exponent"`     // minor-unit digits, e.g. 2
}

// CurrencyOf returns the currency descriptor for an ISO 4217 code.
func CurrencyOf(code string) Currency {
	code = strings.ToUpper(code)
	exp, ok := currencyExponents[code]
	if !ok {
		exp = DefaultCurrencyExponent
	}
	return Currency{CurrencyCode: code, Exponent: exp}
}
