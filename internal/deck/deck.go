package deck

import "github.com/lox/flushrush/internal/rng"

// Size is the number of cards in a full deck.
const Size = 52

// Deck is an ordered sequence of 52 unique cards.
type Deck []Card

// New creates the canonical 52-card deck: suit-major, rank ascending. Every
// simulation starts from this fixed ordering so shuffles are a pure function
// of the random stream.
func New() Deck {
	d := make(Deck, 0, Size)
	for suit := Spades; suit <= Clubs; suit++ {
		for rank := Two; rank <= Ace; rank++ {
			d = append(d, NewCard(suit, rank))
		}
	}
	return d
}

// Shuffle returns a Fisher-Yates permutation of d driven by the stream. The
// receiver is never mutated; repeated shuffles of the canonical deck with the
// same stream state produce identical sequences.
func (d Deck) Shuffle(stream *rng.Stream) Deck {
	shuffled := make(Deck, len(d))
	copy(shuffled, d)
	for i := len(shuffled) - 1; i > 0; i-- {
		j := int(stream.Next() * float64(i+1))
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	}
	return shuffled
}
