package deck

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Suit represents a card suit
type Suit string

// suit constants
// Jokers carry NoSuit
const (
	Hearts   Suit = "Hearts"
	Spades   Suit = "Spades"
	Clubs    Suit = "Clubs"
	Diamonds Suit = "Diamonds"
	NoSuit   Suit = ""
)

// ranks in game order, 3 is the weakest and the big joker the strongest
const (
	Three = iota
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
	Ace
	Two
	SmallJoker
	BigJoker
)

// Suits is the canonical suit order of a fresh deck
var Suits = [...]Suit{Hearts, Spades, Clubs, Diamonds}

var rankNames = [...]string{
	"3", "4", "5", "6", "7", "8", "9", "10", "Jack", "Queen", "King", "Ace", "2", "Small Joker", "Big Joker",
}

// Card is an individual playing card
// A card is immutable, so values can be shared freely between hands, plays and decks
type Card struct {
	rank int
	suit Suit
}

// Rank returns the rank ordinal (Three..BigJoker)
func (c Card) Rank() int {
	return c.rank
}

// Suit returns the suit, or NoSuit for a joker
func (c Card) Suit() Suit {
	return c.suit
}

// IsJoker returns true for the small and big jokers
func (c Card) IsJoker() bool {
	return c.rank >= SmallJoker
}

// ID returns the natural key of the card, i.e., "5 of Hearts" or "Small Joker"
func (c Card) ID() string {
	if c.IsJoker() {
		return rankNames[c.rank]
	}

	return rankNames[c.rank] + " of " + string(c.suit)
}

func (c Card) String() string {
	if c.IsJoker() {
		if c.rank == SmallJoker {
			return "SJ"
		}

		return "BJ"
	}

	var rank string
	switch c.rank {
	case Jack:
		rank = "J"
	case Queen:
		rank = "Q"
	case King:
		rank = "K"
	case Ace:
		rank = "A"
	default:
		rank = rankNames[c.rank]
	}

	var suit string
	switch c.suit {
	case Clubs:
		suit = "♣"
	case Diamonds:
		suit = "♢"
	case Hearts:
		suit = "♡"
	case Spades:
		suit = "♠"
	default:
		panic("unknown suit")
	}

	return rank + suit
}

type cardJSON struct {
	ID   string `json:"id"`
	Rank int    `json:"rank"`
	Suit Suit   `json:"suit,omitempty"`
}

// MarshalJSON encodes the card with its id
func (c Card) MarshalJSON() ([]byte, error) {
	return json.Marshal(cardJSON{ID: c.ID(), Rank: c.rank, Suit: c.suit})
}

// UnmarshalJSON only accepts cards that exist in the catalog
func (c *Card) UnmarshalJSON(b []byte) error {
	var cj cardJSON
	if err := json.Unmarshal(b, &cj); err != nil {
		return err
	}

	card, ok := CardByID(cj.ID)
	if !ok {
		return fmt.Errorf("unknown card: %q", cj.ID)
	}

	*c = card
	return nil
}

// catalog is the immutable table of every card in canonical deck order
var catalog = buildCatalog()

var catalogByID = func() map[string]Card {
	m := make(map[string]Card, len(catalog))
	for _, card := range catalog {
		m[card.ID()] = card
	}

	return m
}()

func buildCatalog() []Card {
	cards := make([]Card, 0, Size)
	for _, suit := range Suits {
		for rank := Three; rank <= Two; rank++ {
			cards = append(cards, Card{rank: rank, suit: suit})
		}
	}

	return append(cards, Card{rank: SmallJoker}, Card{rank: BigJoker})
}

// CardByID returns the card with the natural key id
func CardByID(id string) (Card, bool) {
	card, ok := catalogByID[id]
	return card, ok
}

var cardRx = regexp.MustCompile(`(?i)^(?:(10|[2-9]|[jqka])([cdhs])|(sj|bj))\z`)

// CardFromString returns a Card from a short code.
// The string must be in the format of <rank><suit> where rank is 2-10, j, q, k or a and suit in [cdhs],
// or sj/bj for the jokers
func CardFromString(s string) Card {
	match := cardRx.FindStringSubmatch(s)
	if match == nil {
		panic(fmt.Sprintf("could not parse card: %s", s))
	}

	switch strings.ToLower(match[3]) {
	case "sj":
		return Card{rank: SmallJoker}
	case "bj":
		return Card{rank: BigJoker}
	}

	var rank int
	switch strings.ToLower(match[1]) {
	case "j":
		rank = Jack
	case "q":
		rank = Queen
	case "k":
		rank = King
	case "a":
		rank = Ace
	case "2":
		rank = Two
	default:
		n, err := strconv.Atoi(match[1])
		if err != nil {
			panic(fmt.Sprintf("could not parse card `%s`: %v", s, err))
		}
		rank = n - 3
	}

	var suit Suit
	switch strings.ToLower(match[2]) {
	case "c":
		suit = Clubs
	case "d":
		suit = Diamonds
	case "h":
		suit = Hearts
	case "s":
		suit = Spades
	default:
		// should never be hit due to the regexp
		panic("unknown suit")
	}

	return Card{rank: rank, suit: suit}
}

// CardsFromString will return a slice of cards from comma separated short codes
func CardsFromString(s string) []Card {
	if s == "" {
		return []Card{}
	}

	codes := strings.Split(s, ",")
	cards := make([]Card, len(codes))
	for i, code := range codes {
		cards[i] = CardFromString(code)
	}

	return cards
}

// CardToString converts a card (Ace of Clubs) to a short code (ac)
func CardToString(card Card) string {
	switch card.rank {
	case SmallJoker:
		return "sj"
	case BigJoker:
		return "bj"
	}

	var rank string
	switch card.rank {
	case Jack:
		rank = "j"
	case Queen:
		rank = "q"
	case King:
		rank = "k"
	case Ace:
		rank = "a"
	default:
		rank = rankNames[card.rank]
	}

	return rank + strings.ToLower(string(card.suit)[0:1])
}

// CardsToString will convert a slice of cards to a string in the format of 3h,4s,ac,...
func CardsToString(cards []Card) string {
	c := make([]string, len(cards))
	for i, card := range cards {
		c[i] = CardToString(card)
	}

	return strings.Join(c, ",")
}

// IDs returns the natural keys of the cards
func IDs(cards []Card) []string {
	ids := make([]string, len(cards))
	for i, card := range cards {
		ids[i] = card.ID()
	}

	return ids
}
