package ripple

import (
	"bytes"
	"crypto/sha256"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"
	"golang.org/x/crypto/ripemd160"
)

// The XRP Ledger uses its own base58 dictionary, ordered so that account
// addresses always start with 'r'.
var rippleAlphabet = base58.NewAlphabet("rpshnaf39wBUDNEGHJKLM4PQRST7VWXYZ2bcdeCg65jkm8oFqi1tuvAxyz")

const (
	accountIDVersion  = 0x00
	accountIDLength   = 20
	addressChecksumLn = 4
)

// Address is a classic XRP Ledger account address.
type Address string

func (a Address) String() string {
	return string(a)
}

// AccountID decodes the address and returns the 20-byte account
// identifier, after verifying version byte and checksum.
func (a Address) AccountID() (accountID []byte, err error) {
	payload, err := base58.FastBase58DecodingAlphabet(string(a), rippleAlphabet)
	if err != nil {
		err = errors.Wrapf(ErrInvalidAddress, "'%s': %v", a, err)
		return
	}

	if len(payload) != 1+accountIDLength+addressChecksumLn {
		err = errors.Wrapf(ErrInvalidAddress, "'%s': unexpected payload length %d", a, len(payload))
		return
	}

	if payload[0] != accountIDVersion {
		err = errors.Wrapf(ErrInvalidAddress, "'%s': unexpected version byte %#x", a, payload[0])
		return
	}

	body := payload[:1+accountIDLength]
	if !bytes.Equal(addressChecksum(body), payload[1+accountIDLength:]) {
		err = errors.Wrapf(ErrInvalidAddress, "'%s': checksum mismatch", a)
		return
	}

	accountID = payload[1 : 1+accountIDLength]
	return
}

func (a Address) Valid() bool {
	_, err := a.AccountID()
	return err == nil
}

func (a Address) Validate() (err error) {
	_, err = a.AccountID()
	return
}

// EncodeAccountID wraps a 20-byte account identifier in the classic
// base58check envelope.
func EncodeAccountID(accountID []byte) (address Address, err error) {
	if len(accountID) != accountIDLength {
		err = errors.Errorf("account id must be %d bytes, got %d", accountIDLength, len(accountID))
		return
	}

	body := append([]byte{accountIDVersion}, accountID...)
	payload := append(body, addressChecksum(body)...)
	address = Address(base58.FastBase58EncodingAlphabet(payload, rippleAlphabet))

	return
}

// EncodeAddress derives the classic address for a 33-byte account public
// key: SHA-256 then RIPEMD-160 of the key, base58check encoded.
func EncodeAddress(publicKey []byte) (address Address, err error) {
	if len(publicKey) != 33 {
		err = errors.Wrapf(ErrInvalidPublicKey, "expected 33 bytes, got %d", len(publicKey))
		return
	}

	inner := sha256.Sum256(publicKey)
	hasher := ripemd160.New()
	if _, err = hasher.Write(inner[:]); err != nil {
		err = errors.WithStack(err)
		return
	}

	return EncodeAccountID(hasher.Sum(nil))
}

func addressChecksum(body []byte) []byte {
	first := sha256.Sum256(body)
	second := sha256.Sum256(first[:])
	return second[:addressChecksumLn]
}
