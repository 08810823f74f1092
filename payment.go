package ripple

import (
	"github.com/pkg/errors"
)

// AdjustmentKind tags a participant's side of a payment. The kind is
// chosen by constructor, which rules out the "both set" and "neither
// set" shapes a presence-based encoding would allow.
type AdjustmentKind int

const (
	AdjustmentFixed AdjustmentKind = iota + 1
	AdjustmentCappedAtMax
	AdjustmentFloorAtMin
)

// Adjustment is one side of a payment: an address, a tag, and an amount
// whose meaning depends on the kind (exact, spend ceiling, or delivery
// floor).
type Adjustment struct {
	kind    AdjustmentKind
	Address Address
	Amount  Amount
	Tag     *uint32
}

// FixedAdjustment fixes the side to an exact amount.
func FixedAdjustment(address Address, amount Amount) Adjustment {
	return Adjustment{kind: AdjustmentFixed, Address: address, Amount: amount}
}

// MaxAdjustment caps the side at a maximum spend.
func MaxAdjustment(address Address, maxAmount Amount) Adjustment {
	return Adjustment{kind: AdjustmentCappedAtMax, Address: address, Amount: maxAmount}
}

// MinAdjustment floors the side at a minimum delivery.
func MinAdjustment(address Address, minAmount Amount) Adjustment {
	return Adjustment{kind: AdjustmentFloorAtMin, Address: address, Amount: minAmount}
}

func (a Adjustment) Kind() AdjustmentKind {
	return a.kind
}

// WithTag returns a copy carrying a source/destination tag.
func (a Adjustment) WithTag(tag uint32) Adjustment {
	a.Tag = &tag
	return a
}

// PaymentIntent is a high-level payment: exactly one of
// (source capped-at-max, destination fixed) or (source fixed,
// destination floored-at-min) must hold.
type PaymentIntent struct {
	Source              Adjustment
	Destination         Adjustment
	Paths               string
	Memos               []MemoInput
	InvoiceID           string
	AllowPartialPayment bool
	NoDirectRoute       bool
	LimitQuality        bool
}

// IsAllNative reports whether both resolved adjustment amounts are in
// the native currency.
func (p PaymentIntent) IsAllNative() bool {
	return p.Source.Amount.IsNative() && p.Destination.Amount.IsNative()
}

// CompilePayment validates a payment intent and compiles it into a plain
// Payment transaction object. The intent is copied before any
// normalization, so caller data is never aliased. Validation failures
// are reported before the output is assembled; nothing here touches the
// network.
func CompilePayment(address Address, intent PaymentIntent) (tx *Transaction, err error) {
	payment := intent

	payment.Source.Amount = payment.Source.Amount.WithDefaultCounterparty(payment.Source.Address)
	payment.Destination.Amount = payment.Destination.Amount.WithDefaultCounterparty(payment.Destination.Address)

	if address != payment.Source.Address {
		return nil, errors.Wrapf(ErrAddressMismatch, "address %s, source address %s", address, payment.Source.Address)
	}

	sourceIsMax := payment.Source.Kind() == AdjustmentCappedAtMax && payment.Destination.Kind() == AdjustmentFixed
	destinationIsMin := payment.Source.Kind() == AdjustmentFixed && payment.Destination.Kind() == AdjustmentFloorAtMin
	if !sourceIsMax && !destinationIsMin {
		return nil, errors.WithStack(ErrAmbiguousAdjustment)
	}

	sourceAmount := payment.Source.Amount
	destinationAmount := payment.Destination.Amount
	allNative := payment.IsAllNative()

	// When a delivery floor is in play the Amount field must not become
	// the binding constraint, so it is lifted to the currency ceiling.
	deliveryAmount := destinationAmount
	if destinationIsMin && !allNative {
		deliveryAmount = destinationAmount.Maximal()
	}

	amountWire, err := deliveryAmount.Wire()
	if err != nil {
		return
	}

	flags := uint32(0)
	tx = &Transaction{
		TransactionType: TxTypePayment,
		Account:         payment.Source.Address,
		Destination:     payment.Destination.Address,
		Amount:          &amountWire,
		Flags:           &flags,
	}

	if payment.InvoiceID != "" {
		tx.InvoiceID = payment.InvoiceID
	}
	if payment.Source.Tag != nil {
		tag := *payment.Source.Tag
		tx.SourceTag = &tag
	}
	if payment.Destination.Tag != nil {
		tag := *payment.Destination.Tag
		tx.DestinationTag = &tag
	}
	for _, memo := range payment.Memos {
		tx.Memos = append(tx.Memos, EncodeMemo(memo))
	}

	if payment.NoDirectRoute {
		*tx.Flags |= FlagNoDirectRipple
	}
	if payment.LimitQuality {
		*tx.Flags |= FlagLimitQuality
	}

	if allNative {
		// SendMax is redundant for a native-to-native transfer, and such
		// a transfer can never be partial.
		if payment.AllowPartialPayment {
			tx = nil
			err = errors.WithStack(ErrPartialPaymentNative)
		}
		return
	}

	sendMaxWire, err := sourceAmount.Wire()
	if err != nil {
		tx = nil
		return
	}
	tx.SendMax = &sendMaxWire

	if payment.AllowPartialPayment || destinationIsMin {
		*tx.Flags |= FlagPartialPayment
	}

	if destinationIsMin {
		deliverMinWire, err2 := destinationAmount.Wire()
		if err2 != nil {
			return nil, err2
		}
		tx.DeliverMin = &deliverMinWire
	}

	if payment.Paths != "" {
		tx.Paths, err = DecodePaths(payment.Paths)
		if err != nil {
			tx = nil
			return
		}
	}

	return
}
