package deck

// Suit is a card suit, in the order hearts, diamonds, clubs, spades.
type Suit uint8

const (
	Hearts Suit = iota
	Diamonds
	Clubs
	Spades
)

// String returns the one-letter suit code (h, d, c, s).
func (s Suit) String() string {
	if s > Spades {
		return "?"
	}
	return string("hdcs"[s])
}

// IsRed returns true for hearts and diamonds
func (s Suit) IsRed() bool {
	return s == Hearts || s == Diamonds
}

// Rank is a card rank from Ace (0) to King (12).
type Rank uint8

const (
	Ace Rank = iota
	Two
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
)

// String returns the one-character rank code (A, 2-9, T, J, Q, K).
func (r Rank) String() string {
	if r > King {
		return "?"
	}
	return string("A23456789TJQK"[r])
}

// Card is an index 0-51 into an ordered deck: each suit holds thirteen
// consecutive ranks.
type Card uint8

// NewCard creates a new card
func NewCard(suit Suit, rank Rank) Card {
	return Card(uint8(suit)*13 + uint8(rank))
}

func (c Card) Suit() Suit { return Suit(c / 13) }
func (c Card) Rank() Rank { return Rank(c % 13) }

// String returns the two-character form of a card, e.g. "Ah" or "Ts".
func (c Card) String() string {
	if c >= 52 {
		return "??"
	}
	return c.Rank().String() + c.Suit().String()
}

// IsRed returns true if the card is red
func (c Card) IsRed() bool {
	return c.Suit().IsRed()
}

// IsFaceCard returns true if the card is a face card (J, Q, K)
func (c Card) IsFaceCard() bool {
	r := c.Rank()
	return r >= Jack && r <= King
}
