package ripple

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// Requester is the narrow transport interface the core consumes: a
// single round trip over an already-established connection. The caller
// owns retry policy; none is applied here.
type Requester interface {
	Request(ctx context.Context, command string, params any) (result json.RawMessage, err error)
}

type ClientOptions struct {
	URL              string
	Network          Network
	HandshakeTimeout time.Duration
}

func (o *ClientOptions) setDefaults() (err error) {
	if o.Network == "" {
		o.Network = defaultClientOptions.Network
	}

	if o.URL == "" {
		params, err2 := o.Network.Params()
		if err2 != nil {
			return err2
		}
		o.URL = params.WebsocketURL
	}

	if o.HandshakeTimeout == 0 {
		o.HandshakeTimeout = defaultClientOptions.HandshakeTimeout
	}

	return
}

var defaultClientOptions = &ClientOptions{
	Network:          NetworkMainNet,
	HandshakeTimeout: time.Second * 10,
}

func NewClient(options *ClientOptions) (client *Client, err error) {
	if options == nil {
		options = &ClientOptions{}
	}
	if err = options.setDefaults(); err != nil {
		return
	}

	client = &Client{
		options: options,
		pending: map[uint64]chan *wsResponse{},
		log:     Log(),
	}

	return
}

// Client is a WebSocket connection to a rippled node, correlating
// responses to requests by id. It implements Requester.
type Client struct {
	options  *ClientOptions
	conn     *websocket.Conn
	writeMu  sync.Mutex
	mu       sync.Mutex
	pending  map[uint64]chan *wsResponse
	nextID   uint64
	done     chan struct{}
	shutdown bool
	log      *zerolog.Logger
}

type wsResponse struct {
	ID           uint64          `json:"id"`
	Type         string          `json:"type"`
	Status       string          `json:"status"`
	Result       json.RawMessage `json:"result"`
	ErrorCode    string          `json:"error"`
	ErrorMessage string          `json:"error_message"`
}

func (c *Client) Connect(ctx context.Context) (err error) {
	c.log.Info().Msgf("dialing node %s", c.options.URL)

	dialer := websocket.Dialer{HandshakeTimeout: c.options.HandshakeTimeout}
	c.conn, _, err = dialer.DialContext(ctx, c.options.URL, nil)
	if err != nil {
		return errors.WithStack(err)
	}

	c.log.Info().Msg("connected to node")

	c.done = make(chan struct{})
	go c.readLoop()

	return
}

func (c *Client) Close() (err error) {
	if c.shutdown {
		return
	}
	c.shutdown = true
	c.log.Info().Msg("closing connection")

	if c.conn != nil {
		err = errors.WithStack(c.conn.Close())
	}

	return
}

func (c *Client) readLoop() {
	defer close(c.done)

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if !c.shutdown {
				c.log.Error().Msgf("conn read error: %+v", errors.WithStack(err))
			}
			return
		}

		rsp := &wsResponse{}
		if err = json.Unmarshal(data, rsp); err != nil {
			c.log.Error().Msgf("unable to decode message: %+v", errors.WithStack(err))
			continue
		}

		if rsp.Type != "response" {
			// Streams are not subscribed to, anything else is dropped.
			c.log.Debug().Msgf("ignoring message type '%s'", rsp.Type)
			continue
		}

		c.mu.Lock()
		ch, ok := c.pending[rsp.ID]
		if ok {
			delete(c.pending, rsp.ID)
		}
		c.mu.Unlock()

		if !ok {
			c.log.Debug().Msgf("no pending request for response id %d", rsp.ID)
			continue
		}

		ch <- rsp
	}
}

// Request performs one round trip: the command and params are flattened
// into the rippled request envelope, and the matching response's result
// is returned. An error-status response surfaces as ErrRpcFailed.
func (c *Client) Request(ctx context.Context, command string, params any) (result json.RawMessage, err error) {
	if c.conn == nil || c.shutdown {
		return nil, errors.WithStack(ErrClientNotConnected)
	}

	payload := map[string]any{}
	if params != nil {
		encoded, err2 := json.Marshal(params)
		if err2 != nil {
			return nil, errors.WithStack(err2)
		}
		if err2 = json.Unmarshal(encoded, &payload); err2 != nil {
			return nil, errors.WithStack(err2)
		}
	}

	c.mu.Lock()
	c.nextID++
	id := c.nextID
	ch := make(chan *wsResponse, 1)
	c.pending[id] = ch
	c.mu.Unlock()

	payload["id"] = id
	payload["command"] = command

	c.log.Debug().Msgf("message out: %s (id %d)", command, id)

	c.writeMu.Lock()
	err = c.conn.WriteJSON(payload)
	c.writeMu.Unlock()
	if err != nil {
		c.unregister(id)
		return nil, errors.WithStack(err)
	}

	select {
	case rsp := <-ch:
		c.log.Debug().Msgf("message in: %s (id %d) status %s", command, id, rsp.Status)
		if rsp.Status != "success" {
			return nil, errors.Wrapf(ErrRpcFailed, "%s: %s: %s", command, rsp.ErrorCode, rsp.ErrorMessage)
		}
		return rsp.Result, nil

	case <-c.done:
		c.unregister(id)
		return nil, errors.New("message stream closed")

	case <-ctx.Done():
		c.unregister(id)
		return nil, errors.WithStack(ctx.Err())
	}
}

func (c *Client) unregister(id uint64) {
	c.mu.Lock()
	delete(c.pending, id)
	c.mu.Unlock()
}

// PreparePayment compiles a payment intent and runs it through the
// preparation pipeline.
func (c *Client) PreparePayment(ctx context.Context, address Address, intent PaymentIntent, instructions *Instructions) (tx *Transaction, err error) {
	tx, err = CompilePayment(address, intent)
	if err != nil {
		return
	}
	return PrepareTransaction(ctx, c, tx, instructions)
}

// PrepareCheckCreate compiles a check intent and runs it through the
// preparation pipeline.
func (c *Client) PrepareCheckCreate(ctx context.Context, address Address, intent CheckIntent, instructions *Instructions) (tx *Transaction, err error) {
	tx, err = CompileCheckCreate(address, intent)
	if err != nil {
		return
	}
	return PrepareTransaction(ctx, c, tx, instructions)
}

// FindPaths runs a route query over this connection.
func (c *Client) FindPaths(ctx context.Context, intent PathFindIntent) (routes RouteSet, err error) {
	return FindPaths(ctx, c, intent)
}
