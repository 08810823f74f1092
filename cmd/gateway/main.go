package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	. "github.com/lunefox/ripple-go"
	"github.com/rs/zerolog"
)

type _config struct {
	NodeURL     string `json:"nodeurl"`
	Network     string `json:"network"`
	RpcHostPort string `json:"rpchostport"`
	LogLevel    string `json:"loglevel"`
}

func (c *_config) Load() (err error) {
	flag.StringVar(&c.NodeURL, "nodeurl", "", "Set the rippled websocket url (defaults to the network's public endpoint)")
	flag.StringVar(&c.Network, "network", "mainnet", "Set network (mainnet|testnet|devnet)")
	flag.StringVar(&c.RpcHostPort, "rpchostport", "localhost:3002", "Set host:port for the http/rpc listener")
	flag.StringVar(&c.LogLevel, "loglevel", "", "Set the log level (trace|debug|info|warn|error|fatal) Can also be set via the RIPPLE_GATEWAY_LOG_LEVEL environment variable")
	flag.Parse()

	return
}

var log = Log()

var config *_config

func main() {
	config = &_config{}

	if err := config.Load(); err != nil {
		log.Fatal().Msgf("%+v", err)
	}

	if config.LogLevel == "" {
		envLogLevel := os.Getenv("RIPPLE_GATEWAY_LOG_LEVEL")
		if envLogLevel != "" {
			config.LogLevel = envLogLevel
		} else {
			config.LogLevel = "info"
		}
	}
	logLevel, err := zerolog.ParseLevel(config.LogLevel)
	if err != nil {
		log.Fatal().Msgf("%+v", err)
	}

	log.Info().Msgf("setting log level to: '%s'", logLevel)
	zerolog.SetGlobalLevel(logLevel)

	network := Network(config.Network)
	if err = network.Validate(); err != nil {
		log.Fatal().Msgf("%+v", err)
	}

	client, err := NewClient(&ClientOptions{
		URL:     config.NodeURL,
		Network: network,
	})
	if err != nil {
		log.Fatal().Msgf("%+v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*15)
	if err = client.Connect(ctx); err != nil {
		cancel()
		log.Fatal().Msgf("%+v", err)
	}
	cancel()

	httpServer, err := NewHttpRpcServer(config, client)
	if err != nil {
		log.Fatal().Msgf("%+v", err)
	}

	go func() {
		if err = httpServer.Start(); err != nil {
			log.Fatal().Msgf("%+v", err)
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
	<-c

	log.Info().Msg("caught interrupt/terminate signal, attempting graceful shutdown...")

	if err = httpServer.Stop(); err != nil {
		log.Fatal().Msgf("%+v", err)
	}

	if err = client.Close(); err != nil {
		log.Fatal().Msgf("%+v", err)
	}
}
