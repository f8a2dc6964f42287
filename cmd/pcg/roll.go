package main

import (
	"fmt"
	"io"
	"os"

	"github.com/lox/pcg128/pcg"
)

// RollCmd prints raw or bounded output of one generator stream.
type RollCmd struct {
	Seed     string `default:"42" help:"Seed (decimal or 0x hex, up to 128 bits)"`
	Sequence string `default:"54" help:"Stream selector (decimal or 0x hex, up to 128 bits)"`
	Count    int    `short:"n" default:"6" help:"Number of values to print"`
	Jump     int64  `help:"Advance (or rewind when negative) the stream before printing"`
	Bound    uint64 `help:"Print values in [0, bound) instead of raw output"`
	Format   string `enum:"hex,dec" default:"hex" help:"Output format (hex, dec)"`

	out io.Writer `kong:"-"`
}

func (c *RollCmd) Run() error {
	out := c.out
	if out == nil {
		out = os.Stdout
	}

	if c.Count < 0 {
		return fmt.Errorf("count must not be negative, got %d", c.Count)
	}
	seed, err := pcg.ParseUint128(c.Seed)
	if err != nil {
		return fmt.Errorf("seed: %w", err)
	}
	seq, err := pcg.ParseUint128(c.Sequence)
	if err != nil {
		return fmt.Errorf("sequence: %w", err)
	}

	g := pcg.New128(seed, seq)
	if c.Jump != 0 {
		g.Jump(c.Jump)
	}

	for i := 0; i < c.Count; i++ {
		var v uint64
		if c.Bound > 0 {
			if v, err = g.Bind(c.Bound); err != nil {
				return err
			}
		} else {
			v = g.Roll()
		}

		if c.Format == "dec" {
			_, err = fmt.Fprintf(out, "%d\n", v)
		} else {
			_, err = fmt.Fprintf(out, "0x%016x\n", v)
		}
		if err != nil {
			return err
		}
	}
	return nil
}
