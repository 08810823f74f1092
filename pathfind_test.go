package ripple

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRequester struct {
	t        *testing.T
	commands []string
	handlers map[string]func(params any) (json.RawMessage, error)
}

func (f *fakeRequester) Request(_ context.Context, command string, params any) (json.RawMessage, error) {
	f.commands = append(f.commands, command)

	handler, ok := f.handlers[command]
	if !ok {
		f.t.Fatalf("unexpected command '%s'", command)
	}

	return handler(params)
}

func TestBuildPathFindRequest_DiscoverMaximum(t *testing.T) {
	request, err := BuildPathFindRequest(PathFindIntent{
		Source: PathSource{
			Address: testSource,
			Amount:  &Amount{Currency: "USD", Value: "5"},
		},
		Destination: PathDestination{
			Address: testDestination,
			Amount:  Amount{Currency: "USD"},
		},
	})
	require.NoError(t, err)

	require.NotNil(t, request.DestinationAmount.Issued)
	assert.Equal(t, "-1", request.DestinationAmount.Issued.Value)
	assert.Equal(t, testDestination, request.DestinationAmount.Issued.Issuer)

	require.NotNil(t, request.SendMax)
	require.NotNil(t, request.SendMax.Issued)
	assert.Equal(t, "5", request.SendMax.Issued.Value)
	assert.Equal(t, testSource, request.SendMax.Issued.Issuer)
}

func TestBuildPathFindRequest_ConflictingAmounts(t *testing.T) {
	_, err := BuildPathFindRequest(PathFindIntent{
		Source: PathSource{
			Address: testSource,
			Amount:  &Amount{Currency: "USD", Value: "5"},
		},
		Destination: PathDestination{
			Address: testDestination,
			Amount:  Amount{Currency: "USD", Value: "10"},
		},
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrConflictingAmounts))
}

func TestBuildPathFindRequest_SourceCurrencies(t *testing.T) {
	request, err := BuildPathFindRequest(PathFindIntent{
		Source: PathSource{
			Address: testSource,
			Currencies: []Currency{
				{Currency: "USD", Counterparty: testIssuer},
				{Currency: "EUR"},
			},
		},
		Destination: PathDestination{
			Address: testDestination,
			Amount:  Amount{Currency: "XRP", Value: "1"},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "1000000", request.DestinationAmount.Drops)
	require.Len(t, request.SourceCurrencies, 2)
	assert.Equal(t, "USD", request.SourceCurrencies[0].Currency)
	assert.Equal(t, testIssuer, request.SourceCurrencies[0].Issuer)
	assert.Equal(t, "EUR", request.SourceCurrencies[1].Currency)
	assert.Equal(t, Address(""), request.SourceCurrencies[1].Issuer)
}

func TestFindPaths_DirectRouteInjection(t *testing.T) {
	rq := &fakeRequester{t: t, handlers: map[string]func(any) (json.RawMessage, error){
		"ripple_path_find": func(any) (json.RawMessage, error) {
			return json.RawMessage(`{"alternatives":[],"destination_currencies":["USD","XRP"]}`), nil
		},
		"account_info": func(any) (json.RawMessage, error) {
			return json.RawMessage(`{"account_data":{"Balance":"2000000"}}`), nil
		},
	}}

	routes, err := FindPaths(context.Background(), rq, PathFindIntent{
		Source:      PathSource{Address: testSource},
		Destination: PathDestination{Address: testDestination, Amount: Amount{Currency: "XRP", Value: "1"}},
	})
	require.NoError(t, err)

	require.Len(t, routes, 1)
	assert.Equal(t, Amount{Currency: "XRP", Value: "1"}, routes[0].SourceAmount)
	assert.Empty(t, routes[0].ComputedPath)
	assert.Equal(t, []string{"ripple_path_find", "account_info"}, rq.commands)
}

func TestFindPaths_DirectRouteInsufficientBalance(t *testing.T) {
	rq := &fakeRequester{t: t, handlers: map[string]func(any) (json.RawMessage, error){
		"ripple_path_find": func(any) (json.RawMessage, error) {
			return json.RawMessage(`{"alternatives":[],"destination_currencies":["USD","XRP"]}`), nil
		},
		"account_info": func(any) (json.RawMessage, error) {
			return json.RawMessage(`{"account_data":{"Balance":"999999"}}`), nil
		},
	}}

	_, err := FindPaths(context.Background(), rq, PathFindIntent{
		Source:      PathSource{Address: testSource},
		Destination: PathDestination{Address: testDestination, Amount: Amount{Currency: "XRP", Value: "1"}},
	})
	require.Error(t, err)

	notFound := &NotFoundError{}
	require.True(t, errors.As(err, &notFound))
	assert.Empty(t, notFound.DestinationCurrencies)
}

func TestFindPaths_SkipsBalanceLookupWithoutNativeDestination(t *testing.T) {
	rq := &fakeRequester{t: t, handlers: map[string]func(any) (json.RawMessage, error){
		"ripple_path_find": func(any) (json.RawMessage, error) {
			return json.RawMessage(`{"alternatives":[],"destination_currencies":["USD"]}`), nil
		},
	}}

	_, err := FindPaths(context.Background(), rq, PathFindIntent{
		Source:      PathSource{Address: testSource},
		Destination: PathDestination{Address: testDestination, Amount: Amount{Currency: "XRP", Value: "1"}},
	})
	require.Error(t, err)

	// The destination does not accept XRP: no balance lookup happens and
	// the failure enumerates what it does accept.
	assert.Equal(t, []string{"ripple_path_find"}, rq.commands)

	notFound := &NotFoundError{}
	require.True(t, errors.As(err, &notFound))
	assert.Equal(t, []string{"USD"}, notFound.DestinationCurrencies)
	assert.Contains(t, notFound.Error(), "does not accept XRP")
	assert.Contains(t, notFound.Error(), "they only accept: USD")
}

func TestFindPaths_LowFundsFiltering(t *testing.T) {
	rq := &fakeRequester{t: t, handlers: map[string]func(any) (json.RawMessage, error){
		"ripple_path_find": func(any) (json.RawMessage, error) {
			return json.RawMessage(`{
				"alternatives": [
					{"source_amount": "4000000", "paths_computed": [[{"currency": "USD", "issuer": "rrrrrrrrrrrrrrrrrrrrrhoLvTp"}]]},
					{"source_amount": "5000000", "paths_computed": [[{"currency": "USD", "issuer": "rrrrrrrrrrrrrrrrrrrrrhoLvTp"}]]}
				],
				"destination_currencies": ["USD"]
			}`), nil
		},
	}}

	routes, err := FindPaths(context.Background(), rq, PathFindIntent{
		Source: PathSource{
			Address: testSource,
			Amount:  &Amount{Currency: "XRP", Value: "5"},
		},
		Destination: PathDestination{Address: testDestination, Amount: Amount{Currency: "USD"}},
	})
	require.NoError(t, err)

	// Only the alternative spending exactly the fixed source amount
	// survives.
	require.Len(t, routes, 1)
	assert.Equal(t, Amount{Currency: "XRP", Value: "5"}, routes[0].SourceAmount)
	require.Len(t, routes[0].ComputedPath, 1)
}

func TestFindPaths_NoFilteringWhenDestinationAmountFixed(t *testing.T) {
	rq := &fakeRequester{t: t, handlers: map[string]func(any) (json.RawMessage, error){
		"ripple_path_find": func(any) (json.RawMessage, error) {
			return json.RawMessage(`{
				"alternatives": [
					{"source_amount": {"currency": "USD", "issuer": "rrrrrrrrrrrrrrrrrrrrrhoLvTp", "value": "4"}},
					{"source_amount": {"currency": "USD", "issuer": "rrrrrrrrrrrrrrrrrrrrrhoLvTp", "value": "5"}}
				],
				"destination_currencies": ["EUR"]
			}`), nil
		},
	}}

	routes, err := FindPaths(context.Background(), rq, PathFindIntent{
		Source:      PathSource{Address: testSource},
		Destination: PathDestination{Address: testDestination, Amount: Amount{Currency: "EUR", Value: "3", Counterparty: testIssuer}},
	})
	require.NoError(t, err)

	require.Len(t, routes, 2)
	assert.Equal(t, "4", routes[0].SourceAmount.Value)
	assert.Equal(t, "5", routes[1].SourceAmount.Value)
}

func TestFindPaths_LiquidityDiagnosis(t *testing.T) {
	rq := &fakeRequester{t: t, handlers: map[string]func(any) (json.RawMessage, error){
		"ripple_path_find": func(any) (json.RawMessage, error) {
			return json.RawMessage(`{"alternatives":[],"destination_currencies":["USD"]}`), nil
		},
	}}

	_, err := FindPaths(context.Background(), rq, PathFindIntent{
		Source: PathSource{
			Address:    testSource,
			Currencies: []Currency{{Currency: "EUR"}},
		},
		Destination: PathDestination{Address: testDestination, Amount: Amount{Currency: "USD", Value: "1", Counterparty: testIssuer}},
	})
	require.Error(t, err)

	notFound := &NotFoundError{}
	require.True(t, errors.As(err, &notFound))
	assert.Empty(t, notFound.DestinationCurrencies)
	assert.Contains(t, notFound.Error(), "source currencies")
	assert.Contains(t, notFound.Error(), "liquidity")
}

func TestFindPaths_SourceBalanceDiagnosis(t *testing.T) {
	rq := &fakeRequester{t: t, handlers: map[string]func(any) (json.RawMessage, error){
		"ripple_path_find": func(any) (json.RawMessage, error) {
			return json.RawMessage(`{"alternatives":[],"destination_currencies":["USD"]}`), nil
		},
	}}

	_, err := FindPaths(context.Background(), rq, PathFindIntent{
		Source:      PathSource{Address: testSource},
		Destination: PathDestination{Address: testDestination, Amount: Amount{Currency: "USD", Value: "1", Counterparty: testIssuer}},
	})
	require.Error(t, err)

	notFound := &NotFoundError{}
	require.True(t, errors.As(err, &notFound))
	assert.Empty(t, notFound.DestinationCurrencies)
	assert.Contains(t, notFound.Error(), "sufficient funds")
}

func TestFindPaths_TransportFailurePropagates(t *testing.T) {
	boom := errors.New("socket closed")

	rq := &fakeRequester{t: t, handlers: map[string]func(any) (json.RawMessage, error){
		"ripple_path_find": func(any) (json.RawMessage, error) {
			return nil, boom
		},
	}}

	_, err := FindPaths(context.Background(), rq, PathFindIntent{
		Source:      PathSource{Address: testSource},
		Destination: PathDestination{Address: testDestination, Amount: Amount{Currency: "XRP", Value: "1"}},
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, boom))
}
