package entity

import (
	"strings"

	"github.com/shopspring/decimal"
)

type Currency string

const (
	CurrencyRUB Currency = "RUB"
	CurrencyUSD Currency = "USD"
	CurrencyEUR Currency = "EUR"
	CurrencyGBP Currency = "GBP"
)

// minorUnitExponent is the number of minor-unit digits per currency (ISO 4217).
var minorUnitExponent = map[Currency]int32{
	CurrencyRUB: 2,
	CurrencyUSD: 2,
	CurrencyEUR: 2,
	CurrencyGBP: 2,
}

// ParseCurrency accepts a currency code in any letter case.
func ParseCurrency(code string) (Currency, bool) {
	c := Currency(strings.ToUpper(strings.TrimSpace(code)))
	if !c.Valid() {
		return "", false
	}
	return c, true
}

func (c Currency) Valid() bool {
	_, ok := minorUnitExponent[c]
	return ok
}

func (c Currency) String() string {
	return string(c)
}

// Format renders an amount of minor units in major units, e.g. 1050 USD -> "10.50".
func (c Currency) Format(minor int64) string {
	exp, ok := minorUnitExponent[c]
	if !ok {
		return decimal.NewFromInt(minor).String()
	}
	return decimal.New(minor, -exp).StringFixed(exp)
}
