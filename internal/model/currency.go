package model

import "fmt"

// Currency is an ISO-style currency code supported by the tracker.
type Currency string

// Supported currencies.
const (
	CurrencyUSD Currency = "USD"
	CurrencyCOP Currency = "COP"
	CurrencyEUR Currency = "EUR"
	CurrencyMXN Currency = "MXN"
	CurrencyGBP Currency = "GBP"
	CurrencyJPY Currency = "JPY"
	CurrencyCAD Currency = "CAD"
	CurrencyAUD Currency = "AUD"
	CurrencyCHF Currency = "CHF"
	CurrencyCNY Currency = "CNY"
	CurrencyBRL Currency = "BRL"
	CurrencyARS Currency = "ARS"
)

// DefaultCurrency is assumed when a record omits its currency.
const DefaultCurrency = CurrencyUSD

// CurrencyValues returns all supported currency codes.
func CurrencyValues() []Currency {
	return []Currency{
		CurrencyUSD, CurrencyCOP, CurrencyEUR, CurrencyMXN,
		CurrencyGBP, CurrencyJPY, CurrencyCAD, CurrencyAUD,
		CurrencyCHF, CurrencyCNY, CurrencyBRL, CurrencyARS,
	}
}

// Valid reports whether c is one of the supported currency codes.
func (c Currency) Valid() bool {
	switch c {
	case CurrencyUSD, CurrencyCOP, CurrencyEUR, CurrencyMXN,
		CurrencyGBP, CurrencyJPY, CurrencyCAD, CurrencyAUD,
		CurrencyCHF, CurrencyCNY, CurrencyBRL, CurrencyARS:
		return true
	}
	return false
}

// ParseCurrency converts untrusted input into a Currency.
func ParseCurrency(s string) (Currency, error) {
	c := Currency(s)
	if !c.Valid() {
		return "", fmt.Errorf("unsupported currency %q", s)
	}
	return c, nil
}

// UnmarshalJSON rejects currency codes outside the supported set.
func (c *Currency) UnmarshalJSON(data []byte) error {
	s, err := unquote(data)
	if err != nil {
		return fmt.Errorf("currency: %w", err)
	}
	parsed, err := ParseCurrency(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
