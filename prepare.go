package ripple

import (
	"context"

	"github.com/pkg/errors"
	"github.com/tidwall/gjson"
)

// Instructions lets a caller pin any of the values the preparation
// pipeline would otherwise fetch from the network.
type Instructions struct {
	Fee                    string `json:"fee,omitempty"`
	Sequence               uint32 `json:"sequence,omitempty"`
	MaxLedgerVersion       uint32 `json:"maxLedgerVersion,omitempty"`
	MaxLedgerVersionOffset uint32 `json:"maxLedgerVersionOffset,omitempty"`
}

const defaultMaxLedgerVersionOffset = 3

// PrepareTransaction stamps Fee, Sequence and LastLedgerSequence onto a
// copy of the compiled transaction. It does not sign and does not
// serialize to wire bytes.
func PrepareTransaction(ctx context.Context, rq Requester, tx *Transaction, instructions *Instructions) (prepared *Transaction, err error) {
	instr := Instructions{}
	if instructions != nil {
		instr = *instructions
	}

	out := *tx
	prepared = &out

	prepared.Fee = instr.Fee
	if prepared.Fee == "" {
		prepared.Fee, err = fetchBaseFee(ctx, rq)
		if err != nil {
			return nil, err
		}
	}

	prepared.Sequence = instr.Sequence
	if prepared.Sequence == 0 {
		prepared.Sequence, err = fetchSequence(ctx, rq, tx.Account)
		if err != nil {
			return nil, err
		}
	}

	lastLedger := instr.MaxLedgerVersion
	if lastLedger == 0 {
		offset := instr.MaxLedgerVersionOffset
		if offset == 0 {
			offset = defaultMaxLedgerVersionOffset
		}
		current, err2 := fetchCurrentLedger(ctx, rq)
		if err2 != nil {
			return nil, err2
		}
		lastLedger = current + offset
	}
	prepared.LastLedgerSequence = &lastLedger

	return
}

func fetchBaseFee(ctx context.Context, rq Requester) (fee string, err error) {
	result, err := rq.Request(ctx, "fee", nil)
	if err != nil {
		return
	}

	baseFee := gjson.GetBytes(result, "drops.base_fee")
	if !baseFee.Exists() {
		err = errors.Wrapf(ErrRpcFailed, "fee result has no drops.base_fee: %s", string(result))
		return
	}

	fee = baseFee.String()
	return
}

func fetchSequence(ctx context.Context, rq Requester, account Address) (sequence uint32, err error) {
	result, err := rq.Request(ctx, "account_info", map[string]any{
		"account":      account,
		"ledger_index": "current",
	})
	if err != nil {
		return
	}

	seq := gjson.GetBytes(result, "account_data.Sequence")
	if !seq.Exists() {
		err = errors.Wrapf(ErrRpcFailed, "account_info result has no account_data.Sequence: %s", string(result))
		return
	}

	sequence = uint32(seq.Uint())
	return
}

func fetchCurrentLedger(ctx context.Context, rq Requester) (index uint32, err error) {
	result, err := rq.Request(ctx, "ledger_current", nil)
	if err != nil {
		return
	}

	current := gjson.GetBytes(result, "ledger_current_index")
	if !current.Exists() {
		err = errors.Wrapf(ErrRpcFailed, "ledger_current result has no ledger_current_index: %s", string(result))
		return
	}

	index = uint32(current.Uint())
	return
}
