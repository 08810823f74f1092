package ripple

// TxType names a ledger transaction kind.
type TxType string

const (
	TxTypePayment     TxType = "Payment"
	TxTypeCheckCreate TxType = "CheckCreate"
)

// Payment transaction flag bits, fixed by the ledger's transaction
// format.
const (
	FlagNoDirectRipple uint32 = 0x00010000
	FlagPartialPayment uint32 = 0x00020000
	FlagLimitQuality   uint32 = 0x00040000
)

// Transaction is the plain protocol transaction object handed to the
// preparation pipeline. Field names and presence rules follow rippled's
// transaction format exactly: optional fields are omitted entirely when
// unset, while a Payment always carries a Flags field, even when zero.
type Transaction struct {
	TransactionType    TxType      `json:"TransactionType"`
	Account            Address     `json:"Account"`
	Destination        Address     `json:"Destination"`
	Amount             *WireAmount `json:"Amount,omitempty"`
	SendMax            *WireAmount `json:"SendMax,omitempty"`
	DeliverMin         *WireAmount `json:"DeliverMin,omitempty"`
	Flags              *uint32     `json:"Flags,omitempty"`
	SourceTag          *uint32     `json:"SourceTag,omitempty"`
	DestinationTag     *uint32     `json:"DestinationTag,omitempty"`
	InvoiceID          string      `json:"InvoiceID,omitempty"`
	Expiration         *uint32     `json:"Expiration,omitempty"`
	Memos              []Memo      `json:"Memos,omitempty"`
	Paths              PathSet     `json:"Paths,omitempty"`
	Sequence           uint32      `json:"Sequence,omitempty"`
	Fee                string      `json:"Fee,omitempty"`
	LastLedgerSequence *uint32     `json:"LastLedgerSequence,omitempty"`
}

// Memo is the wire envelope for a single memo.
type Memo struct {
	Memo MemoFields `json:"Memo"`
}

type MemoFields struct {
	MemoType   string `json:"MemoType,omitempty"`
	MemoFormat string `json:"MemoFormat,omitempty"`
	MemoData   string `json:"MemoData,omitempty"`
}

// PathStep is one hop of a payment path as rippled reports it.
type PathStep struct {
	Account  Address `json:"account,omitempty"`
	Currency string  `json:"currency,omitempty"`
	Issuer   Address `json:"issuer,omitempty"`
	Type     *int    `json:"type,omitempty"`
	TypeHex  string  `json:"type_hex,omitempty"`
}

// PathSet is a list of alternative payment paths.
type PathSet [][]PathStep
