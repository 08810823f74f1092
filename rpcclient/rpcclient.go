package rpcclient

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	. "github.com/lunefox/ripple-go"
	"github.com/pkg/errors"
)

func NewRpcClient(hostPort string) (client *RpcClient, err error) {
	client = &RpcClient{
		HostPort: hostPort,
	}
	return
}

// RpcClient is a typed HTTP client for the ripple gateway.
type RpcClient struct {
	HostPort string
}

type RpcError struct {
	Message string `json:"error"`
	Details string `json:"details"`
}

func (e *RpcError) Error() string {
	return e.Message
}

func (c *RpcClient) req(method string, path string, body io.Reader) (rsp *http.Response, out []byte, err error) {
	req, err2 := http.NewRequest(method, c.HostPort+path, body)
	if err2 != nil {
		err = err2
		return
	}

	if method == http.MethodPost {
		req.Header.Set("Content-Type", "application/json")
	}

	rsp, err = http.DefaultClient.Do(req)
	if err != nil {
		err = errors.WithStack(err)
		return
	}

	out, err = io.ReadAll(rsp.Body)
	if err != nil {
		err = errors.WithStack(err)
		return
	}

	if rsp.Status[0] != '2' {
		errRsp := &RpcError{}
		if decodeErr := json.Unmarshal(out, errRsp); decodeErr == nil && errRsp.Message != "" {
			err = errRsp
			return
		}

		err = errors.Wrapf(ErrRpcFailed, "rpc response code %d with body %s", rsp.StatusCode, string(out))
		return
	}

	return
}

func (c *RpcClient) reqUnmarshal(method string, path string, body io.Reader, target any) (err error) {
	_, rspBody, err := c.req(method, path, body)
	if err != nil {
		err = errors.WithStack(err)
		return
	}

	err = json.Unmarshal(rspBody, target)
	if err != nil {
		err = errors.Wrapf(err, "unable to unmarshal body: %s", string(rspBody))
		return
	}

	return
}

func (c *RpcClient) get(path string, target any) (err error) {
	return c.reqUnmarshal(http.MethodGet, path, nil, target)
}

func (c *RpcClient) post(path string, in any, target any) (err error) {
	jsn, err := json.Marshal(in)
	if err != nil {
		err = errors.WithStack(err)
		return
	}

	return c.reqUnmarshal(http.MethodPost, path, bytes.NewReader(jsn), target)
}

// AdjustmentSpec is the presence-based JSON shape of one payment side.
// Exactly one of Amount/MaxAmount (source) or Amount/MinAmount
// (destination) must be set; the gateway rejects every other
// combination.
type AdjustmentSpec struct {
	Address   Address `json:"address"`
	Amount    *Amount `json:"amount,omitempty"`
	MaxAmount *Amount `json:"maxAmount,omitempty"`
	MinAmount *Amount `json:"minAmount,omitempty"`
	Tag       *uint32 `json:"tag,omitempty"`
}

type PaymentSpec struct {
	Source              AdjustmentSpec `json:"source"`
	Destination         AdjustmentSpec `json:"destination"`
	Paths               string         `json:"paths,omitempty"`
	Memos               []MemoInput    `json:"memos,omitempty"`
	InvoiceID           string         `json:"invoiceID,omitempty"`
	AllowPartialPayment bool           `json:"allowPartialPayment,omitempty"`
	NoDirectRoute       bool           `json:"noDirectRoute,omitempty"`
	LimitQuality        bool           `json:"limitQuality,omitempty"`
}

type PreparePaymentIn struct {
	Address      Address       `json:"address"`
	Payment      PaymentSpec   `json:"payment"`
	Instructions *Instructions `json:"instructions,omitempty"`
}

type PrepareOut struct {
	Tx *Transaction `json:"tx"`
}

func (c *RpcClient) PreparePayment(in *PreparePaymentIn) (out *PrepareOut, err error) {
	out = &PrepareOut{}
	err = c.post("/payment/prepare", in, out)
	return
}

type CheckSpec struct {
	Destination    Address    `json:"destination"`
	SendMax        Amount     `json:"sendMax"`
	DestinationTag *uint32    `json:"destinationTag,omitempty"`
	Expiration     *time.Time `json:"expiration,omitempty"`
	InvoiceID      string     `json:"invoiceID,omitempty"`
}

type PrepareCheckCreateIn struct {
	Address      Address       `json:"address"`
	Check        CheckSpec     `json:"check"`
	Instructions *Instructions `json:"instructions,omitempty"`
}

func (c *RpcClient) PrepareCheckCreate(in *PrepareCheckCreateIn) (out *PrepareOut, err error) {
	out = &PrepareOut{}
	err = c.post("/check/prepare", in, out)
	return
}

type PathSourceSpec struct {
	Address    Address    `json:"address"`
	Amount     *Amount    `json:"amount,omitempty"`
	Currencies []Currency `json:"currencies,omitempty"`
}

type PathDestinationSpec struct {
	Address Address `json:"address"`
	Amount  Amount  `json:"amount"`
}

type FindPathsIn struct {
	Source      PathSourceSpec      `json:"source"`
	Destination PathDestinationSpec `json:"destination"`
}

type FindPathsOut struct {
	Routes RouteSet `json:"routes"`
}

func (c *RpcClient) FindPaths(in *FindPathsIn) (out *FindPathsOut, err error) {
	out = &FindPathsOut{}
	err = c.post("/paths/find", in, out)
	return
}

type GetBalanceOut struct {
	Address Address `json:"address"`
	Drops   string  `json:"drops"`
	Xrp     string  `json:"xrp"`
}

func (c *RpcClient) GetBalance(address Address) (out *GetBalanceOut, err error) {
	out = &GetBalanceOut{}
	err = c.get(fmt.Sprintf("/balance/%s", address), out)
	return
}

type PublicKeyToAddressIn struct {
	PublicKeyHex string `json:"publicKeyHex"`
}

type PublicKeyToAddressOut struct {
	Address Address `json:"address"`
}

func (c *RpcClient) PublicKeyToAddress(in *PublicKeyToAddressIn) (out *PublicKeyToAddressOut, err error) {
	out = &PublicKeyToAddressOut{}
	err = c.post("/tools/pubkey-to-address", in, out)
	return
}

func (c *RpcClient) GetStatus() (out json.RawMessage, err error) {
	err = c.get("/status", &out)
	return
}
