package deck

import "fmt"

// Size is the number of cards in a full deck.
const Size = 52

// Binder draws a uniform index in [0, n).
type Binder interface {
	Bind(n uint64) (uint64, error)
}

// Deck represents a deck of playing cards
type Deck struct {
	cards []Card
	rng   Binder
}

// NewDeck creates a new ordered 52-card deck drawing from rng
func NewDeck(rng Binder) *Deck {
	d := &Deck{
		cards: make([]Card, 0, Size),
		rng:   rng,
	}
	d.fill()
	return d
}

func (d *Deck) fill() {
	d.cards = d.cards[:0]
	for c := Card(0); c < Size; c++ {
		d.cards = append(d.cards, c)
	}
}

// Shuffle randomizes the remaining cards with Fisher-Yates, one Bind per
// position.
func (d *Deck) Shuffle() error {
	for j := len(d.cards); j > 1; j-- {
		p, err := d.rng.Bind(uint64(j))
		if err != nil {
			return fmt.Errorf("shuffle: %w", err)
		}
		d.cards[p], d.cards[j-1] = d.cards[j-1], d.cards[p]
	}
	return nil
}

// Deal removes and returns the top card from the deck
func (d *Deck) Deal() (Card, bool) {
	if len(d.cards) == 0 {
		return 0, false
	}

	card := d.cards[0]
	d.cards = d.cards[1:]
	return card, true
}

// DealN deals n cards from the deck, fewer if the deck runs out
func (d *Deck) DealN(n int) []Card {
	if n > len(d.cards) {
		n = len(d.cards)
	}

	cards := make([]Card, n)
	copy(cards, d.cards[:n])
	d.cards = d.cards[n:]
	return cards
}

// CardsRemaining returns the number of cards left in the deck
func (d *Deck) CardsRemaining() int {
	return len(d.cards)
}

// IsEmpty returns true if the deck has no cards left
func (d *Deck) IsEmpty() bool {
	return len(d.cards) == 0
}

// Reset restores the deck to a full 52-card deck and shuffles it
func (d *Deck) Reset() error {
	if cap(d.cards) < Size {
		d.cards = make([]Card, 0, Size)
	}
	d.fill()
	return d.Shuffle()
}

// Peek returns the top card without removing it from the deck
func (d *Deck) Peek() (Card, bool) {
	if len(d.cards) == 0 {
		return 0, false
	}
	return d.cards[0], true
}
