package deck

import "testing"

func TestParseCards(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []Card
		wantErr  bool
	}{
		{
			name:  "spade run",
			input: "AsKsQsJsTs",
			expected: []Card{
				{Suit: Spades, Rank: Ace},
				{Suit: Spades, Rank: King},
				{Suit: Spades, Rank: Queen},
				{Suit: Spades, Rank: Jack},
				{Suit: Spades, Rank: Ten},
			},
		},
		{
			name:  "mixed suits",
			input: "AhKdQcJs9s",
			expected: []Card{
				{Suit: Hearts, Rank: Ace},
				{Suit: Diamonds, Rank: King},
				{Suit: Clubs, Rank: Queen},
				{Suit: Spades, Rank: Jack},
				{Suit: Spades, Rank: Nine},
			},
		},
		{
			name:  "case insensitive",
			input: "asKHqDjc",
			expected: []Card{
				{Suit: Spades, Rank: Ace},
				{Suit: Hearts, Rank: King},
				{Suit: Diamonds, Rank: Queen},
				{Suit: Clubs, Rank: Jack},
			},
		},
		{
			name:    "invalid rank",
			input:   "XsKs",
			wantErr: true,
		},
		{
			name:    "invalid suit",
			input:   "Ax",
			wantErr: true,
		},
		{
			name:    "odd length",
			input:   "AsK",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cards, err := ParseCards(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseCards(%q) expected error, got %v", tt.input, cards)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseCards(%q) failed: %v", tt.input, err)
			}
			if len(cards) != len(tt.expected) {
				t.Fatalf("Expected %d cards, got %d", len(tt.expected), len(cards))
			}
			for i, want := range tt.expected {
				if cards[i] != want {
					t.Errorf("Card %d: expected %s, got %s", i, want, cards[i])
				}
			}
		})
	}
}

func TestCardString(t *testing.T) {
	aceSpades := NewCard(Spades, Ace)
	if aceSpades.String() != "A♠" {
		t.Errorf("Expected 'A♠', got %s", aceSpades.String())
	}

	twoClubs := NewCard(Clubs, Two)
	if twoClubs.String() != "2♣" {
		t.Errorf("Expected '2♣', got %s", twoClubs.String())
	}
}

func TestIsAce(t *testing.T) {
	if !NewCard(Hearts, Ace).IsAce() {
		t.Error("Ace of hearts should be an ace")
	}
	if NewCard(Hearts, King).IsAce() {
		t.Error("King of hearts is not an ace")
	}
}
