package ripple

import (
	"encoding/json"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// NativeCurrency is the ledger's built-in settlement currency. Native
// amounts never carry a counterparty and travel on the wire as integer
// drops strings.
const NativeCurrency = "XRP"

const dropsShift = 6

// Ceiling sentinels used when minimum-delivery semantics must stop the
// destination amount from becoming the binding constraint.
const (
	maxNativeValue = "100000000000"
	maxIssuedValue = "9999999999999999e80"
)

// Amount is a currency amount as callers express it: a decimal value, a
// currency code and, for issued currencies, the counterparty the amount
// is tracked against.
type Amount struct {
	Currency     string  `json:"currency"`
	Value        string  `json:"value"`
	Counterparty Address `json:"counterparty,omitempty"`
}

func (a Amount) IsNative() bool {
	return a.Currency == NativeCurrency
}

// WithDefaultCounterparty returns a copy with the counterparty set to the
// owning side's address when the amount is issued and has none. Native
// amounts are returned unmodified.
func (a Amount) WithDefaultCounterparty(owner Address) Amount {
	if !a.IsNative() && a.Counterparty == "" {
		a.Counterparty = owner
	}
	return a
}

// Maximal returns a copy with the value replaced by the currency-specific
// ceiling sentinel, currency and counterparty preserved.
func (a Amount) Maximal() Amount {
	if a.IsNative() {
		a.Value = maxNativeValue
	} else {
		a.Value = maxIssuedValue
	}
	return a
}

// Wire encodes the amount into the shape rippled expects: a drops string
// for XRP, a currency/issuer/value object for issued currencies.
func (a Amount) Wire() (w WireAmount, err error) {
	if a.IsNative() {
		w.Drops, err = XrpToDrops(a.Value)
		return
	}

	w.Issued = &IssuedAmount{
		Currency: a.Currency,
		Issuer:   a.Counterparty,
		Value:    a.Value,
	}

	return
}

// IssuedAmount is the structured wire shape of an issued-currency amount.
type IssuedAmount struct {
	Currency string  `json:"currency"`
	Issuer   Address `json:"issuer,omitempty"`
	Value    string  `json:"value"`
}

// WireAmount is a rippled amount field: either an XRP drops string or an
// issued-currency object. Exactly one of Drops/Issued is set.
type WireAmount struct {
	Drops  string
	Issued *IssuedAmount
}

func (w WireAmount) IsNative() bool {
	return w.Issued == nil
}

// Amount converts the wire shape back to the caller-facing form, drops
// scaled to whole XRP and issuer renamed to counterparty.
func (w WireAmount) Amount() (amount Amount, err error) {
	if w.Issued != nil {
		amount = Amount{
			Currency:     w.Issued.Currency,
			Value:        w.Issued.Value,
			Counterparty: w.Issued.Issuer,
		}
		return
	}

	value, err := DropsToXrp(w.Drops)
	if err != nil {
		return
	}

	amount = Amount{Currency: NativeCurrency, Value: value}
	return
}

func (w WireAmount) MarshalJSON() ([]byte, error) {
	if w.Issued != nil {
		return json.Marshal(w.Issued)
	}
	return json.Marshal(w.Drops)
}

func (w *WireAmount) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		w.Issued = nil
		return errors.WithStack(json.Unmarshal(data, &w.Drops))
	}
	w.Drops = ""
	w.Issued = &IssuedAmount{}
	return errors.WithStack(json.Unmarshal(data, w.Issued))
}

// ParseDecimal parses an amount value with arbitrary precision. All value
// comparisons in this package go through decimals, never floats.
func ParseDecimal(value string) (d decimal.Decimal, err error) {
	d, err = decimal.NewFromString(value)
	if err != nil {
		err = errors.Wrapf(ErrInvalidDecimal, "'%s'", value)
	}
	return
}

// XrpToDrops converts a whole-XRP decimal string to an integer drops
// string. Values with more than 6 decimal places are not representable.
func XrpToDrops(value string) (drops string, err error) {
	d, err := ParseDecimal(value)
	if err != nil {
		return
	}

	shifted := d.Shift(dropsShift)
	if !shifted.IsInteger() {
		err = errors.Wrapf(ErrInvalidDropsValue, "'%s'", value)
		return
	}

	drops = shifted.String()
	return
}

// DropsToXrp converts an integer drops string to a whole-XRP decimal
// string.
func DropsToXrp(drops string) (value string, err error) {
	d, err := ParseDecimal(drops)
	if err != nil {
		return
	}

	if !d.IsInteger() {
		err = errors.Wrapf(ErrInvalidDecimal, "drops value '%s' must be a whole number", drops)
		return
	}

	value = d.Shift(-dropsShift).String()
	return
}
