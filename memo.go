package ripple

import (
	"encoding/hex"
	"strings"
)

// MemoInput is a caller-supplied memo in plain text.
type MemoInput struct {
	Type   string `json:"type,omitempty"`
	Format string `json:"format,omitempty"`
	Data   string `json:"data,omitempty"`
}

// EncodeMemo converts a plain memo to the protocol envelope. rippled
// stores memo fields as uppercase hex; empty fields stay absent.
func EncodeMemo(input MemoInput) (memo Memo) {
	memo.Memo = MemoFields{
		MemoType:   hexField(input.Type),
		MemoFormat: hexField(input.Format),
		MemoData:   hexField(input.Data),
	}
	return
}

func hexField(s string) string {
	if s == "" {
		return ""
	}
	return strings.ToUpper(hex.EncodeToString([]byte(s)))
}
