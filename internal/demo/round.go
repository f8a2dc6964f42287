// Package demo renders the generator showcase: raw outputs, a rewind, coin
// flips, dice, a card deal and a long combined number.
package demo

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lox/pcg128/internal/deck"
	"github.com/lox/pcg128/pcg"
)

const (
	rawPerRound = 6
	coinFlips   = 113
	diceRolls   = 57
	comboDigits = 113
	cardsPerRow = 26
)

// Header describes the generator shown by the demo.
func Header() string {
	var b strings.Builder
	b.WriteString(TitleStyle.Render("pcg128:"))
	b.WriteString("\n\t- result:\t64-bit unsigned int")
	b.WriteString("\n\t- period:\t2^128\t(* 2^127 streams)")
	b.WriteString("\n\t- output func:\tXSL-RR\n")
	return b.String()
}

// Round renders round number n drawn from g.
func Round(g *pcg.Generator, n int) (string, error) {
	var b strings.Builder
	b.WriteString(RoundStyle.Render(fmt.Sprintf("Round %d:", n)))

	label(&b, "64bit:")
	writeRaw(&b, g)
	// rewind and replay the same outputs
	g.Jump(-rawPerRound)
	label(&b, "Again:")
	writeRaw(&b, g)

	label(&b, "Coins: ")
	for i := 0; i < coinFlips; i++ {
		v, err := g.Bind(2)
		if err != nil {
			return "", err
		}
		if v == 1 {
			b.WriteByte('H')
		} else {
			b.WriteByte('T')
		}
	}

	label(&b, "Rolls:")
	for i := 0; i < diceRolls; i++ {
		v, err := g.Bind(6)
		if err != nil {
			return "", err
		}
		fmt.Fprintf(&b, " %d", v+1)
	}

	label(&b, "Cards:")
	d := deck.NewDeck(g)
	if err := d.Shuffle(); err != nil {
		return "", err
	}
	for i, c := range d.DealN(deck.Size) {
		if i > 0 && i%cardsPerRow == 0 {
			b.WriteString("\n\t")
		}
		b.WriteByte(' ')
		if c.IsRed() {
			b.WriteString(RedCardStyle.Render(c.String()))
		} else {
			b.WriteString(c.String())
		}
	}

	combo, err := Combo(g)
	if err != nil {
		return "", err
	}
	label(&b, "Combo: ")
	b.WriteString(combo)
	b.WriteString("\n")
	return b.String(), nil
}

// Combo builds a comboDigits long number from a wide integer clip, a float
// clip and raw outputs, topped up with further raw outputs when short.
func Combo(g *pcg.Generator) (string, error) {
	var b strings.Builder
	for j := 0; j < 6; j++ {
		switch j {
		case 0:
			v, err := g.Clip(-1_000_000_000_000_000_000, 1_000_000_000_000_000_000)
			if err != nil {
				return "", err
			}
			b.WriteString(strconv.FormatInt(v, 10))
		case 3:
			v, err := g.ClipFloat(0, 9)
			if err != nil {
				return "", err
			}
			b.WriteString(strconv.FormatFloat(v, 'f', -1, 64))
		default:
			b.WriteString(strconv.FormatUint(g.Roll(), 10))
		}
	}
	for b.Len() < comboDigits {
		b.WriteString(strconv.FormatUint(g.Roll(), 10))
	}
	return b.String()[:comboDigits], nil
}

func label(b *strings.Builder, s string) {
	b.WriteString("\n  ")
	b.WriteString(LabelStyle.Render(s))
}

func writeRaw(b *strings.Builder, g *pcg.Generator) {
	for i := 0; i < rawPerRound; i++ {
		fmt.Fprintf(b, " 0x%016x", g.Roll())
	}
}
