package ripple

import "encoding/hex"

type HexString string

func (h HexString) Bytes() []byte {
	b, _ := hex.DecodeString(string(h))
	return b
}

func (h HexString) String() string {
	return string(h)
}

func containsCurrency(currencies []string, currency string) bool {
	for _, c := range currencies {
		if c == currency {
			return true
		}
	}
	return false
}
