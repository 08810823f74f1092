package ripple

import "time"

// CheckIntent describes a check creation: the destination may later cash
// the check for any amount up to SendMax.
type CheckIntent struct {
	Destination    Address
	SendMax        Amount
	DestinationTag *uint32
	Expiration     *time.Time
	InvoiceID      string
}

// CompileCheckCreate compiles a check intent into a plain CheckCreate
// transaction object. Simpler sibling of CompilePayment: no adjustment
// shapes, no flags, no path handling.
func CompileCheckCreate(address Address, intent CheckIntent) (tx *Transaction, err error) {
	sendMax, err := intent.SendMax.WithDefaultCounterparty(address).Wire()
	if err != nil {
		return
	}

	tx = &Transaction{
		TransactionType: TxTypeCheckCreate,
		Account:         address,
		Destination:     intent.Destination,
		SendMax:         &sendMax,
	}

	if intent.DestinationTag != nil {
		tag := *intent.DestinationTag
		tx.DestinationTag = &tag
	}
	if intent.Expiration != nil {
		expiration := ToLedgerTime(*intent.Expiration)
		tx.Expiration = &expiration
	}
	if intent.InvoiceID != "" {
		tx.InvoiceID = intent.InvoiceID
	}

	return
}
