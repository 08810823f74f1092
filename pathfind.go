package ripple

import (
	"context"
	"encoding/json"

	"github.com/pkg/errors"
)

// Value used for the destination amount when the caller wants to
// discover the maximum deliverable amount. The network interprets it
// specially.
const discoverMaxValue = "-1"

// Currency names a currency a route query may draw on, optionally pinned
// to a counterparty.
type Currency struct {
	Currency     string  `json:"currency"`
	Counterparty Address `json:"counterparty,omitempty"`
}

type PathSource struct {
	Address    Address
	Amount     *Amount
	Currencies []Currency
}

type PathDestination struct {
	Address Address
	// Amount.Value left empty means "discover the maximum deliverable".
	Amount Amount
}

// PathFindIntent is a high-level route query.
type PathFindIntent struct {
	Source      PathSource
	Destination PathDestination
}

// RouteAlternative is one discovered way to move value from source to
// destination. RouteSet is ordered, cheapest alternative first.
type RouteAlternative struct {
	SourceAmount Amount  `json:"sourceAmount"`
	ComputedPath PathSet `json:"computedPath,omitempty"`
}

type RouteSet []RouteAlternative

// PathFindRequest is the ripple_path_find request body, field names
// fixed by rippled's RPC contract.
type PathFindRequest struct {
	SourceAccount      Address        `json:"source_account"`
	DestinationAccount Address        `json:"destination_account"`
	DestinationAmount  WireAmount     `json:"destination_amount"`
	SendMax            *WireAmount    `json:"send_max,omitempty"`
	SourceCurrencies   []wireCurrency `json:"source_currencies,omitempty"`
}

type wireCurrency struct {
	Currency string  `json:"currency"`
	Issuer   Address `json:"issuer,omitempty"`
}

type pathFindResult struct {
	Alternatives          []rawAlternative `json:"alternatives"`
	DestinationCurrencies []string         `json:"destination_currencies,omitempty"`
}

type rawAlternative struct {
	SourceAmount  WireAmount `json:"source_amount"`
	PathsComputed PathSet    `json:"paths_computed,omitempty"`
}

// BuildPathFindRequest compiles a route query into a ripple_path_find
// request. Pure and synchronous; the request is handed verbatim to the
// transport for a single round trip.
func BuildPathFindRequest(intent PathFindIntent) (request *PathFindRequest, err error) {
	destinationAmount := intent.Destination.Amount
	if destinationAmount.Value == "" {
		destinationAmount.Value = discoverMaxValue
	}

	destinationWire, err := destinationAmount.Wire()
	if err != nil {
		return
	}

	// The network resolves issued-currency receipt against the
	// recipient, so an unset issuer defaults from the destination here,
	// not from the owning side as in payment compilation.
	if destinationWire.Issued != nil && destinationWire.Issued.Issuer == "" {
		destinationWire.Issued.Issuer = intent.Destination.Address
	}

	request = &PathFindRequest{
		SourceAccount:      intent.Source.Address,
		DestinationAccount: intent.Destination.Address,
		DestinationAmount:  destinationWire,
	}

	for _, currency := range intent.Source.Currencies {
		request.SourceCurrencies = append(request.SourceCurrencies, wireCurrency{
			Currency: currency.Currency,
			Issuer:   currency.Counterparty,
		})
	}

	if intent.Source.Amount != nil {
		if intent.Destination.Amount.Value != "" {
			return nil, errors.WithStack(ErrConflictingAmounts)
		}

		sendMax := intent.Source.Amount.WithDefaultCounterparty(intent.Source.Address)
		sendMaxWire, err2 := sendMax.Wire()
		if err2 != nil {
			return nil, err2
		}
		request.SendMax = &sendMaxWire
	}

	return
}

// FindPaths runs the full route discovery pipeline: build the request,
// one ripple_path_find round trip, then an ordered post-processing chain
// with at most one further round trip (the conditional balance lookup).
// No retries anywhere; a failed round trip fails the whole call.
func FindPaths(ctx context.Context, rq Requester, intent PathFindIntent) (routes RouteSet, err error) {
	request, err := BuildPathFindRequest(intent)
	if err != nil {
		return
	}

	raw, err := rq.Request(ctx, "ripple_path_find", request)
	if err != nil {
		return
	}

	result := &pathFindResult{}
	if err = json.Unmarshal(raw, result); err != nil {
		err = errors.Wrapf(err, "unable to decode path find result: %s", string(raw))
		return
	}

	alternatives, err := addDirectRoute(ctx, rq, request, result)
	if err != nil {
		return
	}

	alternatives = filterLowFundPaths(intent, alternatives)

	return formatRoutes(intent, result, alternatives)
}

// addDirectRoute prepends a synthetic zero-hop alternative when the
// destination accepts the native currency and the source holds enough
// native balance to cover the destination amount. The balance lookup
// only happens when the destination-currency check passes.
func addDirectRoute(ctx context.Context, rq Requester, request *PathFindRequest, result *pathFindResult) (alternatives []rawAlternative, err error) {
	alternatives = result.Alternatives

	if !request.DestinationAmount.IsNative() {
		return
	}
	if !containsCurrency(result.DestinationCurrencies, NativeCurrency) {
		return
	}

	balance, err := GetNativeBalance(ctx, rq, request.SourceAccount)
	if err != nil {
		return
	}

	balanceDrops, err := ParseDecimal(balance)
	if err != nil {
		return
	}
	wantedDrops, err := ParseDecimal(request.DestinationAmount.Drops)
	if err != nil {
		return
	}

	if balanceDrops.Cmp(wantedDrops) >= 0 {
		direct := rawAlternative{SourceAmount: request.DestinationAmount}
		alternatives = append([]rawAlternative{direct}, alternatives...)
	}

	return
}

// filterLowFundPaths drops alternatives whose source amount differs from
// a fixed query source amount. Only meaningful for "how much can this
// spend deliver" queries, where the destination amount was left open.
func filterLowFundPaths(intent PathFindIntent, alternatives []rawAlternative) []rawAlternative {
	if intent.Source.Amount == nil || intent.Destination.Amount.Value != "" {
		return alternatives
	}

	wanted, err := ParseDecimal(intent.Source.Amount.Value)
	if err != nil {
		return alternatives
	}

	kept := make([]rawAlternative, 0, len(alternatives))
	for _, alternative := range alternatives {
		amount, err := alternative.SourceAmount.Amount()
		if err != nil {
			continue
		}
		value, err := ParseDecimal(amount.Value)
		if err != nil {
			continue
		}
		if value.Equal(wanted) {
			kept = append(kept, alternative)
		}
	}

	return kept
}

// formatRoutes decodes the surviving alternatives, or diagnoses why no
// route exists. The diagnosis checks are ordered and mutually exclusive.
func formatRoutes(intent PathFindIntent, result *pathFindResult, alternatives []rawAlternative) (routes RouteSet, err error) {
	if len(alternatives) > 0 {
		for _, alternative := range alternatives {
			sourceAmount, err2 := alternative.SourceAmount.Amount()
			if err2 != nil {
				return nil, err2
			}
			routes = append(routes, RouteAlternative{
				SourceAmount: sourceAmount,
				ComputedPath: alternative.PathsComputed,
			})
		}
		return
	}

	wanted := intent.Destination.Amount.Currency
	if result.DestinationCurrencies != nil && !containsCurrency(result.DestinationCurrencies, wanted) {
		return nil, errors.WithStack(&NotFoundError{
			Message:               "no paths found: the destination account does not accept " + wanted,
			DestinationCurrencies: result.DestinationCurrencies,
		})
	}

	if len(intent.Source.Currencies) > 0 {
		return nil, errors.WithStack(&NotFoundError{
			Message: "no paths found: ensure the source account has sufficient funds in one of the specified " +
				"source currencies; if it does, there may be insufficient liquidity in the network right now",
		})
	}

	return nil, errors.WithStack(&NotFoundError{
		Message: "no paths found: ensure the source account has sufficient funds to execute the payment; " +
			"if it does, there may be insufficient liquidity in the network right now",
	})
}
