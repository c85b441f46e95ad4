package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

const DefaultCurrency = "USD"

var currencySymbols = map[string]string{
	"USD": "$",
	"EUR": "€",
	"GBP": "£",
}

// Money is the canonical price representation: an amount plus a currency code.
// Formatting happens only at render time. On the wire it is written as the
// formatted string ("$5.00") because that is what the remote store holds.
// The zero Money (no currency) means the record carried no price at all.
type Money struct {
	Amount   decimal.Decimal
	Currency string
}

func USD(amount float64) Money {
	return Money{Amount: decimal.NewFromFloat(amount), Currency: DefaultCurrency}
}

func (m Money) IsZero() bool {
	return m.Amount.IsZero()
}

// Present reports whether a price was stored, even a $0.00 one.
func (m Money) Present() bool {
	return m.Currency != ""
}

func (m Money) Equal(other Money) bool {
	return m.Currency == other.Currency && m.Amount.Equal(other.Amount)
}

// Fixed is the bare amount with two decimals, the way the price input shows it.
func (m Money) Fixed() string {
	return m.Amount.StringFixed(2)
}

// String formats the amount with its currency symbol and two decimals.
func (m Money) String() string {
	currency := m.Currency
	if currency == "" {
		currency = DefaultCurrency
	}
	symbol, ok := currencySymbols[currency]
	if !ok {
		return m.Fixed() + " " + currency
	}
	return symbol + m.Fixed()
}

// PerUnit formats a rate such as "$2.50/hr".
func (m Money) PerUnit(unit string) string {
	if unit == "" {
		return m.String()
	}
	return m.String() + "/" + unit
}

// ParseMoney accepts the formats seen in stored records: "$2.50/hr", "$6.00",
// "6", "12.5 EUR". It returns the amount and the rate unit if one was present.
func ParseMoney(raw string) (Money, string, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return Money{}, "", fmt.Errorf("domain.ParseMoney: empty price")
	}

	unit := ""
	if i := strings.LastIndex(s, "/"); i >= 0 {
		unit = strings.TrimSpace(s[i+1:])
		s = strings.TrimSpace(s[:i])
	}

	currency := DefaultCurrency
	for code, symbol := range currencySymbols {
		if strings.HasPrefix(s, symbol) {
			currency = code
			s = strings.TrimSpace(strings.TrimPrefix(s, symbol))
			break
		}
	}
	if fields := strings.Fields(s); len(fields) == 2 {
		if _, known := currencySymbols[strings.ToUpper(fields[1])]; known {
			currency = strings.ToUpper(fields[1])
			s = fields[0]
		}
	}

	amount, err := decimal.NewFromString(strings.ReplaceAll(s, ",", ""))
	if err != nil {
		return Money{}, "", fmt.Errorf("domain.ParseMoney: invalid price %q", raw)
	}
	return Money{Amount: amount, Currency: currency}, unit, nil
}

func (m Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

// UnmarshalJSON accepts a formatted string or a bare number. null and ""
// decode to the zero amount.
func (m *Money) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*m = Money{}
		return nil
	}
	if data[0] != '"' {
		amount, err := decimal.NewFromString(string(data))
		if err != nil {
			return fmt.Errorf("domain.Money: %w", err)
		}
		*m = Money{Amount: amount, Currency: DefaultCurrency}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("domain.Money: %w", err)
	}
	if strings.TrimSpace(s) == "" {
		*m = Money{}
		return nil
	}
	parsed, _, err := ParseMoney(s)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
