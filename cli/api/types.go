package api

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// Flex holds a value the API may send either as a JSON string or a JSON number.
type Flex string

// UnmarshalJSON accepts strings, numbers and null.
func (f *Flex) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = Flex(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("expected string or number, got %s", string(data))
	}
	*f = Flex(n.String())
	return nil
}

func (f Flex) String() string {
	return string(f)
}

// Decimal parses the value as a decimal number.
func (f Flex) Decimal() (decimal.Decimal, bool) {
	d, err := decimal.NewFromString(string(f))
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

// Product is a record managed by the products API.
type Product struct {
	ID    Flex   `json:"id"    yaml:"id"`
	Type  string `json:"type"  yaml:"type"`
	Name  string `json:"name"  yaml:"name"`
	Price Flex   `json:"price" yaml:"price"`
}

// FormatPrice renders the price as sent by the API with a dollar sign.
func (p Product) FormatPrice() string {
	return "$" + p.Price.String()
}

// NewProduct is the body of a create request. Values are sent exactly as typed.
type NewProduct struct {
	Type  string `json:"type"`
	Name  string `json:"name"`
	Price string `json:"price"`
}
