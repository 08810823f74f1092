package ripple

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompileCheckCreate(t *testing.T) {
	tx, err := CompileCheckCreate(testSource, CheckIntent{
		Destination: testDestination,
		SendMax:     Amount{Currency: "XRP", Value: "1.5"},
	})
	require.NoError(t, err)

	assert.Equal(t, TxTypeCheckCreate, tx.TransactionType)
	assert.Equal(t, testSource, tx.Account)
	assert.Equal(t, testDestination, tx.Destination)
	require.NotNil(t, tx.SendMax)
	assert.Equal(t, "1500000", tx.SendMax.Drops)

	// No flags and no payment-only fields on the wire.
	encoded, err := json.Marshal(tx)
	require.NoError(t, err)
	assert.NotContains(t, string(encoded), "Flags")
	assert.NotContains(t, string(encoded), "Amount")
	assert.NotContains(t, string(encoded), "DeliverMin")
}

func TestCompileCheckCreate_OptionalFields(t *testing.T) {
	destinationTag := uint32(23480)
	expiration := time.Date(2021, 3, 14, 9, 26, 53, 0, time.UTC)

	tx, err := CompileCheckCreate(testSource, CheckIntent{
		Destination:    testDestination,
		SendMax:        Amount{Currency: "USD", Value: "100"},
		DestinationTag: &destinationTag,
		Expiration:     &expiration,
		InvoiceID:      "6F1DFD1D0FE8A32E40E1F2C05CF1C15545BAB56B617F9C6C2D63A6B704BEF59B",
	})
	require.NoError(t, err)

	require.NotNil(t, tx.DestinationTag)
	assert.Equal(t, destinationTag, *tx.DestinationTag)
	require.NotNil(t, tx.Expiration)
	assert.Equal(t, ToLedgerTime(expiration), *tx.Expiration)
	assert.Equal(t, "6F1DFD1D0FE8A32E40E1F2C05CF1C15545BAB56B617F9C6C2D63A6B704BEF59B", tx.InvoiceID)

	// An issued SendMax with no counterparty resolves against the
	// check's sender.
	require.NotNil(t, tx.SendMax)
	require.NotNil(t, tx.SendMax.Issued)
	assert.Equal(t, testSource, tx.SendMax.Issued.Issuer)
}
