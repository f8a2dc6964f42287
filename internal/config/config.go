// Package config loads the HCL configuration shared by the pcg commands.
package config

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/lox/pcg128/pcg"
)

// Fixed seeding used by the demo unless random seeding is requested.
const (
	DefaultSeed     = "42"
	DefaultSequence = "54"
)

// Config represents the complete configuration file
type Config struct {
	Demo   *DemoSettings   `hcl:"demo,block"`
	Stream *StreamSettings `hcl:"stream,block"`
}

// DemoSettings configures the interactive demo
type DemoSettings struct {
	Rounds    int    `hcl:"rounds,optional"`
	FixedSeed *bool  `hcl:"fixed_seed,optional"`
	Seed      string `hcl:"seed,optional"`
	Sequence  string `hcl:"sequence,optional"`
	Trace     bool   `hcl:"trace,optional"`
}

// StreamSettings configures the WebSocket stream service
type StreamSettings struct {
	Address  string `hcl:"address,optional"`
	Port     int    `hcl:"port,optional"`
	LogLevel string `hcl:"log_level,optional"`
}

// Default returns the configuration used when no file is present
func Default() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

// Load loads configuration from an HCL file. A missing file yields the
// defaults.
func Load(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return Default(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var config Config
	diags = gohcl.DecodeBody(file.Body, nil, &config)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	config.applyDefaults()
	return &config, nil
}

func (c *Config) applyDefaults() {
	if c.Demo == nil {
		c.Demo = &DemoSettings{}
	}
	if c.Demo.Rounds == 0 {
		c.Demo.Rounds = 5
	}
	if c.Demo.FixedSeed == nil {
		fixed := true
		c.Demo.FixedSeed = &fixed
	}
	if c.Demo.Seed == "" {
		c.Demo.Seed = DefaultSeed
	}
	if c.Demo.Sequence == "" {
		c.Demo.Sequence = DefaultSequence
	}

	if c.Stream == nil {
		c.Stream = &StreamSettings{}
	}
	if c.Stream.Address == "" {
		c.Stream.Address = "localhost"
	}
	if c.Stream.Port == 0 {
		c.Stream.Port = 8080
	}
	if c.Stream.LogLevel == "" {
		c.Stream.LogLevel = "info"
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Demo.Rounds < 1 {
		return fmt.Errorf("demo: rounds must be at least 1, got %d", c.Demo.Rounds)
	}
	if _, _, err := c.Demo.SeedValues(); err != nil {
		return fmt.Errorf("demo: %w", err)
	}
	if c.Stream.Port < 1 || c.Stream.Port > 65535 {
		return fmt.Errorf("stream: invalid port: %d", c.Stream.Port)
	}
	switch c.Stream.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("stream: invalid log level %q", c.Stream.LogLevel)
	}
	return nil
}

// SeedValues parses the configured fixed seed and sequence.
func (d *DemoSettings) SeedValues() (seed, sequence pcg.Uint128, err error) {
	if seed, err = pcg.ParseUint128(d.Seed); err != nil {
		return seed, sequence, fmt.Errorf("seed: %w", err)
	}
	if sequence, err = pcg.ParseUint128(d.Sequence); err != nil {
		return seed, sequence, fmt.Errorf("sequence: %w", err)
	}
	return seed, sequence, nil
}

// GetStreamAddress returns the full listen address of the stream service
func (c *Config) GetStreamAddress() string {
	return fmt.Sprintf("%s:%d", c.Stream.Address, c.Stream.Port)
}
