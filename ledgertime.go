package ripple

import "time"

// The ledger counts seconds since the ripple epoch, 2000-01-01T00:00:00Z.
const rippleEpochOffset = 946684800

// ToLedgerTime converts a calendar timestamp to ledger seconds.
func ToLedgerTime(t time.Time) uint32 {
	return uint32(t.Unix() - rippleEpochOffset)
}

// FromLedgerTime converts ledger seconds back to a calendar timestamp.
func FromLedgerTime(ledgerSeconds uint32) time.Time {
	return time.Unix(int64(ledgerSeconds)+rippleEpochOffset, 0).UTC()
}
