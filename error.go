package ripple

import (
	"fmt"
	"strings"
)

var (
	ErrAddressMismatch      = fmt.Errorf("address must match payment source address")
	ErrAmbiguousAdjustment  = fmt.Errorf("payment must specify either (source maxAmount and destination amount) or (source amount and destination minAmount)")
	ErrPartialPaymentNative = fmt.Errorf("partial payment is not allowed for XRP to XRP payments")
	ErrConflictingAmounts   = fmt.Errorf("cannot specify both source amount and destination amount value in a path query")
	ErrInvalidDropsValue    = fmt.Errorf("amount has more than 6 decimal places and cannot be expressed in drops")
	ErrInvalidDecimal       = fmt.Errorf("invalid decimal value")
	ErrInvalidAddress       = fmt.Errorf("invalid classic address")
	ErrInvalidPublicKey     = fmt.Errorf("invalid public key")
	ErrRpcFailed            = fmt.Errorf("rpc failed")
	ErrClientNotConnected   = fmt.Errorf("client not connected")
)

// NotFoundError is returned when a completed path discovery round trip
// yields no usable route. DestinationCurrencies is populated when the
// failure is diagnosed as the destination not accepting the requested
// currency.
type NotFoundError struct {
	Message               string
	DestinationCurrencies []string
}

func (e *NotFoundError) Error() string {
	if len(e.DestinationCurrencies) > 0 {
		return fmt.Sprintf("%s, they only accept: %s", e.Message, strings.Join(e.DestinationCurrencies, ", "))
	}
	return e.Message
}
