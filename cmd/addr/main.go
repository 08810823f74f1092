package main

import (
	"flag"
	"fmt"
	"strings"

	. "github.com/lunefox/ripple-go"
)

var log = Log()

var address string
var pubkey string

func main() {
	flag.StringVar(&address, "address", "", "The classic address to decode")
	flag.StringVar(&pubkey, "pubkey", "", "A 33-byte account public key (hex) to encode as a classic address")
	flag.Parse()

	if address == "" && pubkey == "" {
		fmt.Println("usage: addr --address CLASSIC | --pubkey HEX")
		return
	}

	if pubkey != "" {
		encoded, err := EncodeAddress(HexString(pubkey).Bytes())
		if err != nil {
			log.Fatal().Msgf("%+v", err)
		}

		fmt.Printf("pubkey:            %s\n", pubkey)
		fmt.Printf("classic address:   %s\n", encoded)
		return
	}

	address = strings.Trim(address, " \"")

	fmt.Printf("\ndecoding address:  %s\n\n", address)

	accountID, err := Address(address).AccountID()
	if err != nil {
		log.Fatal().Msgf("%+v", err)
	}

	reencoded, err := EncodeAccountID(accountID)
	if err != nil {
		log.Fatal().Msgf("%+v", err)
	}

	fmt.Printf("account id:        %x\n", accountID)
	fmt.Printf("classic address:   %s\n", reencoded)
}
