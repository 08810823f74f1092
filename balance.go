package ripple

import (
	"context"

	"github.com/pkg/errors"
	"github.com/tidwall/gjson"
)

// GetNativeBalance fetches an account's XRP balance in drops, as a
// decimal string.
func GetNativeBalance(ctx context.Context, rq Requester, address Address) (drops string, err error) {
	result, err := rq.Request(ctx, "account_info", map[string]any{
		"account":      address,
		"ledger_index": "validated",
	})
	if err != nil {
		return
	}

	balance := gjson.GetBytes(result, "account_data.Balance")
	if !balance.Exists() {
		err = errors.Wrapf(ErrRpcFailed, "account_info result has no account_data.Balance: %s", string(result))
		return
	}

	drops = balance.String()
	return
}

// GetXrpBalance is GetNativeBalance scaled to whole XRP.
func GetXrpBalance(ctx context.Context, rq Requester, address Address) (value string, err error) {
	drops, err := GetNativeBalance(ctx, rq, address)
	if err != nil {
		return
	}
	return DropsToXrp(drops)
}
