package deck

import (
	"testing"

	"github.com/lox/flushrush/internal/rng"
)

func TestNewDeckCanonicalOrder(t *testing.T) {
	d := New()
	if len(d) != Size {
		t.Fatalf("Expected %d cards, got %d", Size, len(d))
	}

	// Suit-major, rank ascending.
	if d[0] != NewCard(Spades, Two) {
		t.Errorf("First card should be 2♠, got %s", d[0])
	}
	if d[12] != NewCard(Spades, Ace) {
		t.Errorf("Card 12 should be A♠, got %s", d[12])
	}
	if d[13] != NewCard(Hearts, Two) {
		t.Errorf("Card 13 should be 2♥, got %s", d[13])
	}
	if d[51] != NewCard(Clubs, Ace) {
		t.Errorf("Last card should be A♣, got %s", d[51])
	}

	seen := make(map[Card]bool, Size)
	for _, c := range d {
		if seen[c] {
			t.Errorf("Duplicate card %s", c)
		}
		seen[c] = true
	}
}

func TestShuffleDoesNotMutateInput(t *testing.T) {
	d := New()
	before := make(Deck, len(d))
	copy(before, d)

	_ = d.Shuffle(rng.New(42))

	for i := range d {
		if d[i] != before[i] {
			t.Fatalf("Shuffle mutated input at index %d", i)
		}
	}
}

func TestShuffleIsPermutation(t *testing.T) {
	shuffled := New().Shuffle(rng.New(7))
	if len(shuffled) != Size {
		t.Fatalf("Expected %d cards, got %d", Size, len(shuffled))
	}

	seen := make(map[Card]bool, Size)
	for _, c := range shuffled {
		if seen[c] {
			t.Errorf("Duplicate card %s after shuffle", c)
		}
		seen[c] = true
	}
	if len(seen) != Size {
		t.Errorf("Expected %d unique cards, got %d", Size, len(seen))
	}
}

func TestShuffleDeterminism(t *testing.T) {
	a := New().Shuffle(rng.New(12345))
	b := New().Shuffle(rng.New(12345))

	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("Same seed produced different shuffles at index %d: %s != %s", i, a[i], b[i])
		}
	}

	c := New().Shuffle(rng.New(54321))
	identical := true
	for i := range a {
		if a[i] != c[i] {
			identical = false
			break
		}
	}
	if identical {
		t.Error("Different seeds produced identical shuffles")
	}
}
