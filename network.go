package ripple

import "github.com/pkg/errors"

func init() {
	MainNetParams.Name = NetworkMainNet
	MainNetParams.WebsocketURL = "wss://s1.ripple.com:443"

	TestNetParams.Name = NetworkTestNet
	TestNetParams.WebsocketURL = "wss://s.altnet.rippletest.net:51233"

	DevNetParams.Name = NetworkDevNet
	DevNetParams.WebsocketURL = "wss://s.devnet.rippletest.net:51233"
}

type NetworkParams struct {
	Name         Network
	WebsocketURL string
}

var MainNetParams = NetworkParams{}
var TestNetParams = NetworkParams{}
var DevNetParams = NetworkParams{}

const (
	NetworkMainNet Network = "mainnet"
	NetworkTestNet Network = "testnet"
	NetworkDevNet  Network = "devnet"
)

type Network string

func (n Network) Valid() bool {
	return n == NetworkMainNet || n == NetworkTestNet || n == NetworkDevNet
}

func (n Network) Validate() (err error) {
	if !n.Valid() {
		err = errors.Errorf("invalid network: '%s'", n)
	}
	return
}

func (n Network) Params() (params *NetworkParams, err error) {
	if err = n.Validate(); err != nil {
		return
	}

	switch n {
	case NetworkMainNet:
		return &MainNetParams, nil
	case NetworkTestNet:
		return &TestNetParams, nil
	case NetworkDevNet:
		return &DevNetParams, nil
	}

	return
}
