package main

import (
	"encoding/hex"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	. "github.com/lunefox/ripple-go"
	"github.com/lunefox/ripple-go/rpcclient"
	"github.com/pkg/errors"
)

func NewHttpRpcServer(config *_config, client *Client) (server *HttpRpcServer, err error) {
	server = &HttpRpcServer{
		config: config,
		client: client,
	}

	return
}

type HttpRpcServer struct {
	app    *fiber.App
	client *Client
	config *_config
}

func (s *HttpRpcServer) Start() (err error) {
	s.app = fiber.New(fiber.Config{
		ReadTimeout:           30 * time.Second,
		WriteTimeout:          30 * time.Second,
		IdleTimeout:           120 * time.Second,
		DisableStartupMessage: true,
	})
	s.app.Use(recover.New())
	s.app.Use(func(c *fiber.Ctx) error {
		rsp := c.Next()
		log.Info().Msgf("http response: [%d] %s - %s %s", c.Response().StatusCode(), c.IP(), c.Method(), c.Path())
		return rsp
	})

	s.app.Post("/payment/prepare", s.postPaymentPrepare)
	s.app.Post("/check/prepare", s.postCheckPrepare)
	s.app.Post("/paths/find", s.postPathsFind)
	s.app.Get("/balance/:address", s.getBalance)
	s.app.Get("/status", s.getStatus)
	s.app.Post("/tools/pubkey-to-address", s.postPubkeyToAddress)

	log.Info().Msgf("http/rpc server listening on %s", config.RpcHostPort)

	err = errors.WithStack(s.app.Listen(config.RpcHostPort))

	return
}

func (s *HttpRpcServer) Stop() (err error) {
	return errors.WithStack(s.app.Shutdown())
}

func (s *HttpRpcServer) errorResponse(c *fiber.Ctx, err error) error {
	statusCode := http.StatusInternalServerError

	reportedErr := err

	for _, match := range []error{
		ErrAddressMismatch,
		ErrAmbiguousAdjustment,
		ErrPartialPaymentNative,
		ErrConflictingAmounts,
		ErrInvalidDropsValue,
		ErrInvalidDecimal,
		ErrInvalidAddress,
		ErrInvalidPublicKey,
	} {
		if errors.Is(err, match) {
			reportedErr = match
			statusCode = http.StatusBadRequest
			break
		}
	}

	notFound := &NotFoundError{}
	if errors.As(err, &notFound) {
		reportedErr = notFound
		statusCode = http.StatusNotFound
	}

	return c.Status(statusCode).JSON(map[string]any{
		"error":   reportedErr.Error(),
		"details": errors.Cause(err).Error(),
	})
}

func sourceAdjustment(spec rpcclient.AdjustmentSpec) (adjustment Adjustment, err error) {
	switch {
	case spec.Amount != nil && spec.MaxAmount == nil:
		adjustment = FixedAdjustment(spec.Address, *spec.Amount)
	case spec.MaxAmount != nil && spec.Amount == nil:
		adjustment = MaxAdjustment(spec.Address, *spec.MaxAmount)
	default:
		err = errors.WithStack(ErrAmbiguousAdjustment)
		return
	}

	if spec.Tag != nil {
		adjustment = adjustment.WithTag(*spec.Tag)
	}

	return
}

func destinationAdjustment(spec rpcclient.AdjustmentSpec) (adjustment Adjustment, err error) {
	switch {
	case spec.Amount != nil && spec.MinAmount == nil:
		adjustment = FixedAdjustment(spec.Address, *spec.Amount)
	case spec.MinAmount != nil && spec.Amount == nil:
		adjustment = MinAdjustment(spec.Address, *spec.MinAmount)
	default:
		err = errors.WithStack(ErrAmbiguousAdjustment)
		return
	}

	if spec.Tag != nil {
		adjustment = adjustment.WithTag(*spec.Tag)
	}

	return
}

func paymentIntent(spec rpcclient.PaymentSpec) (intent PaymentIntent, err error) {
	source, err := sourceAdjustment(spec.Source)
	if err != nil {
		return
	}

	destination, err := destinationAdjustment(spec.Destination)
	if err != nil {
		return
	}

	intent = PaymentIntent{
		Source:              source,
		Destination:         destination,
		Paths:               spec.Paths,
		Memos:               spec.Memos,
		InvoiceID:           spec.InvoiceID,
		AllowPartialPayment: spec.AllowPartialPayment,
		NoDirectRoute:       spec.NoDirectRoute,
		LimitQuality:        spec.LimitQuality,
	}

	return
}

func (s *HttpRpcServer) postPaymentPrepare(c *fiber.Ctx) error {
	in := &rpcclient.PreparePaymentIn{}
	if err := s.unmarshalJson(c, in); err != nil {
		return err
	}

	intent, err := paymentIntent(in.Payment)
	if err != nil {
		return s.errorResponse(c, err)
	}

	tx, err := s.client.PreparePayment(c.Context(), in.Address, intent, in.Instructions)
	if err != nil {
		return s.errorResponse(c, err)
	}

	return c.JSON(&rpcclient.PrepareOut{Tx: tx})
}

func (s *HttpRpcServer) postCheckPrepare(c *fiber.Ctx) error {
	in := &rpcclient.PrepareCheckCreateIn{}
	if err := s.unmarshalJson(c, in); err != nil {
		return err
	}

	intent := CheckIntent{
		Destination:    in.Check.Destination,
		SendMax:        in.Check.SendMax,
		DestinationTag: in.Check.DestinationTag,
		Expiration:     in.Check.Expiration,
		InvoiceID:      in.Check.InvoiceID,
	}

	tx, err := s.client.PrepareCheckCreate(c.Context(), in.Address, intent, in.Instructions)
	if err != nil {
		return s.errorResponse(c, err)
	}

	return c.JSON(&rpcclient.PrepareOut{Tx: tx})
}

func (s *HttpRpcServer) postPathsFind(c *fiber.Ctx) error {
	in := &rpcclient.FindPathsIn{}
	if err := s.unmarshalJson(c, in); err != nil {
		return err
	}

	intent := PathFindIntent{
		Source: PathSource{
			Address:    in.Source.Address,
			Amount:     in.Source.Amount,
			Currencies: in.Source.Currencies,
		},
		Destination: PathDestination{
			Address: in.Destination.Address,
			Amount:  in.Destination.Amount,
		},
	}

	routes, err := s.client.FindPaths(c.Context(), intent)
	if err != nil {
		return s.errorResponse(c, err)
	}

	return c.JSON(&rpcclient.FindPathsOut{Routes: routes})
}

func (s *HttpRpcServer) getBalance(c *fiber.Ctx) error {
	address := Address(c.Params("address"))
	if err := address.Validate(); err != nil {
		return s.errorResponse(c, err)
	}

	drops, err := GetNativeBalance(c.Context(), s.client, address)
	if err != nil {
		return s.errorResponse(c, err)
	}

	xrp, err := DropsToXrp(drops)
	if err != nil {
		return s.errorResponse(c, err)
	}

	return c.JSON(&rpcclient.GetBalanceOut{
		Address: address,
		Drops:   drops,
		Xrp:     xrp,
	})
}

func (s *HttpRpcServer) getStatus(c *fiber.Ctx) error {
	result, err := s.client.Request(c.Context(), "server_info", nil)
	if err != nil {
		return s.errorResponse(c, err)
	}

	c.Type("json")

	return c.Send(result)
}

func (s *HttpRpcServer) postPubkeyToAddress(c *fiber.Ctx) error {
	in := &rpcclient.PublicKeyToAddressIn{}
	if err := s.unmarshalJson(c, in); err != nil {
		return s.errorResponse(c, err)
	}

	log.Debug().Msgf("converting public key to address | pubkey hex '%s'", in.PublicKeyHex)

	publicKeyBytes, err := hex.DecodeString(in.PublicKeyHex)
	if err != nil {
		return s.errorResponse(c, errors.WithStack(ErrInvalidPublicKey))
	}

	address, err := EncodeAddress(publicKeyBytes)
	if err != nil {
		return s.errorResponse(c, err)
	}

	log.Debug().Msgf("encoded address: '%s'", address)

	return c.JSON(&rpcclient.PublicKeyToAddressOut{Address: address})
}

func (s *HttpRpcServer) unmarshalJson(c *fiber.Ctx, target any) (err error) {
	if c.Get("Content-Type") != "application/json" {
		return c.SendStatus(http.StatusBadRequest)
	}

	return c.BodyParser(target)
}
