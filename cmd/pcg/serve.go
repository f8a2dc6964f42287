package main

import (
	"github.com/lox/pcg128/cmd/pcg/shared"
	"github.com/lox/pcg128/internal/config"
	"github.com/lox/pcg128/internal/stream"
	"github.com/lox/pcg128/pcg"
)

// ServeCmd runs the WebSocket stream service
type ServeCmd struct {
	Config   string  `short:"c" default:"pcg.hcl" help:"Path to HCL configuration file"`
	Addr     string  `help:"Listen address (overrides config, default localhost:8080)"`
	Seed     *string `help:"Seed for connections that do not pass one (default: clock)"`
	Debug    bool    `help:"Enable debug logging"`
	JSONLogs bool    `name:"json-logs" help:"Emit structured JSON logs"`
	Trace    bool    `help:"Log every generator operation at debug level"`
}

func (c *ServeCmd) Run() error {
	cfg, err := config.Load(c.Config)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	debug := c.Debug || c.Trace || cfg.Stream.LogLevel == "debug"
	logger := shared.SetupLogger(debug)
	if c.JSONLogs {
		logger = shared.SetupStructuredLogger(debug)
	}

	opts := []stream.Option{stream.WithTrace(c.Trace)}
	if c.Seed != nil {
		seed, err := pcg.ParseUint128(*c.Seed)
		if err != nil {
			return err
		}
		logger.Info().Str("seed", seed.String()).Msg("Using fixed seed")
		opts = append(opts, stream.WithSeed(seed))
	}

	addr := c.Addr
	if addr == "" {
		addr = cfg.GetStreamAddress()
	}

	ctx := shared.SetupSignalHandler(logger)
	s := stream.NewServer(logger, opts...)
	if err := s.Run(ctx, addr); err != nil {
		logger.Error().Err(err).Msg("Stream server failed")
		return err
	}
	logger.Info().Msg("Stream server stopped")
	return nil
}
