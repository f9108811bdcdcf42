package deck

import (
	"crypto/sha1" // nolint:gosec
	"encoding/hex"
	"errors"
	"tienlen-server/internal/rng"
)

// Size is the number of cards in a deck: 13 ranks in 4 suits plus two jokers
const Size = 54

// ErrEndOfDeck is an error when Draw() is attempted and there are no more cards
var ErrEndOfDeck = errors.New("end of deck reached")

// Deck represents a playing deck
type Deck struct {
	Cards []Card `json:"cards"`
}

// New returns a new deck of cards in canonical order.
// Every call builds a fresh deck, nothing is shared between decks.
// Important! this deck is unshuffled. You must call the Shuffle() method to shuffle the cards
func New() *Deck {
	cards := make([]Card, len(catalog))
	copy(cards, catalog)

	return &Deck{Cards: cards}
}

// Shuffle will shuffle the remaining cards in place
func (d *Deck) Shuffle(gen rng.Generator) {
	Shuffle(d.Cards, gen)
}

// Shuffle performs a Fisher-Yates shuffle of cards in place
func Shuffle(cards []Card, gen rng.Generator) {
	for j := len(cards) - 1; j > 0; j-- {
		i := gen.Intn(j + 1)

		cards[i], cards[j] = cards[j], cards[i]
	}
}

// HashCode returns a SHA1 hash code of the deck.
func (d *Deck) HashCode() string {
	hash := sha1.New() // nolint:gosec
	for _, card := range d.Cards {
		_, _ = hash.Write([]byte(card.ID()))
	}

	return hex.EncodeToString(hash.Sum(nil)[:])
}

// Draw will draw the next card
// If there are no more cards, an ErrEndOfDeck is returned
func (d *Deck) Draw() (Card, error) {
	if len(d.Cards) <= 0 {
		return Card{}, ErrEndOfDeck
	}

	card := d.Cards[0]
	d.Cards = d.Cards[1:]

	return card, nil
}

// CanDraw returns true if there are {want} cards left in the deck
func (d *Deck) CanDraw(want int) bool {
	return len(d.Cards) >= want
}

// CardsLeft returns the number of cards left in the deck
func (d *Deck) CardsLeft() int {
	return len(d.Cards)
}
