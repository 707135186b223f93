package types

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// FlexString accepts a JSON string or number and stores its text form.
// Upstream APIs have been observed switching ids between the two.
type FlexString string

func (f *FlexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*f = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FlexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("value is neither string nor number: %w", err)
	}
	*f = FlexString(n.String())
	return nil
}

func (f FlexString) String() string {
	return strings.TrimSpace(string(f))
}

// FlexDecimal accepts a JSON number or numeric string. Anything unparsable
// decodes to zero instead of failing the enclosing document.
type FlexDecimal decimal.Decimal

func (f *FlexDecimal) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*f = FlexDecimal(decimal.Zero)
		return nil
	}
	raw := string(data)
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		raw = strings.TrimSpace(s)
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		*f = FlexDecimal(decimal.Zero)
		return nil
	}
	*f = FlexDecimal(d)
	return nil
}

func (f FlexDecimal) Decimal() decimal.Decimal {
	return decimal.Decimal(f)
}

// FlexInt accepts a JSON integer or a numeric string.
type FlexInt int

func (f *FlexInt) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*f = 0
		return nil
	}
	raw := string(data)
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		raw = strings.TrimSpace(s)
	}
	var n json.Number
	if err := json.Unmarshal([]byte(raw), &n); err != nil {
		return fmt.Errorf("value is not numeric: %w", err)
	}
	v, err := n.Int64()
	if err != nil {
		return err
	}
	*f = FlexInt(v)
	return nil
}

func (f FlexInt) Int() int {
	return int(f)
}
