package tienlen

import (
	"encoding/json"
	"fmt"
	"tienlen-server/pkg/deck"
)

// Kind is the category of a play
type Kind int

// play kinds
const (
	Invalid Kind = iota
	Singles
	Pairs
	Triples
	Bomb
	PairsSisters
	TriplesSisters
	Straight
	StraightFlush
	FullHouse
)

var kindLabels = map[Kind]string{
	Invalid:        "INVALID",
	Singles:        "SINGLES",
	Pairs:          "PAIRS",
	Triples:        "TRIPLES",
	Bomb:           "BOMB",
	PairsSisters:   "PAIRS_SISTERS",
	TriplesSisters: "TRIPLES_SISTERS",
	Straight:       "STRAIGHT",
	StraightFlush:  "STRAIGHT_FLUSH",
	FullHouse:      "FULL_HOUSE",
}

func (k Kind) String() string {
	if label, ok := kindLabels[k]; ok {
		return label
	}

	return fmt.Sprintf("Kind(%d)", int(k))
}

// Type is the classification of a play
// Size is the number of groups for the sisters kinds and the length of a Straight, zero otherwise.
// Two types are the same only if both Kind and Size match.
type Type struct {
	Kind Kind `json:"kind"`
	Size int  `json:"size,omitempty"`
}

// String returns labels such as PAIRS, PAIRS_SISTERS_X3 or STRAIGHT_X6
func (t Type) String() string {
	if t.Size > 0 {
		return fmt.Sprintf("%s_X%d", t.Kind, t.Size)
	}

	return t.Kind.String()
}

// IsValid returns false for the Invalid kind
func (t Type) IsValid() bool {
	return t.Kind != Invalid
}

// trumpsAll is true for the kinds that beat a play of any other type
func (t Type) trumpsAll() bool {
	return t.Kind == Bomb || t.Kind == StraightFlush
}

// Play is a set of cards played together
type Play struct {
	cards []deck.Card
	typ   Type
}

// NewPlay sorts a copy of the cards by rank and classifies it
func NewPlay(cards []deck.Card) *Play {
	sorted := append([]deck.Card{}, cards...)
	deck.SortByRank(sorted)

	return &Play{
		cards: sorted,
		typ:   classifySorted(sorted),
	}
}

// Cards returns the cards in ascending rank order
func (p *Play) Cards() []deck.Card {
	return append([]deck.Card{}, p.cards...)
}

// Type returns the classification of the play
func (p *Play) Type() Type {
	return p.typ
}

func (p *Play) String() string {
	return fmt.Sprintf("%s(%s)", p.typ, deck.CardsToString(p.cards))
}

// MarshalJSON encodes the cards and the type label
func (p *Play) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Cards []deck.Card `json:"cards"`
		Type  string      `json:"type"`
	}{
		Cards: p.cards,
		Type:  p.typ.String(),
	})
}

// IsTrumpedBy returns true if other legally beats p
// Plays of the same type compare by their lowest card, or by the rank of the triple for a full house.
// A Bomb or a StraightFlush beats any play of a different type. Nothing else crosses types.
func (p *Play) IsTrumpedBy(other *Play) bool {
	if p.typ == other.typ {
		if len(p.cards) == 0 || len(other.cards) == 0 {
			return false
		}

		if p.typ.Kind == FullHouse {
			return FullHouseRank(p.cards) < FullHouseRank(other.cards)
		}

		return p.cards[0].Rank() < other.cards[0].Rank()
	}

	return other.typ.trumpsAll()
}

// Classify returns the type of the cards in any order
func Classify(cards []deck.Card) Type {
	return NewPlay(cards).typ
}

func classifySorted(cards []deck.Card) Type {
	n := len(cards)
	switch n {
	case 0:
		return Type{Kind: Invalid}
	case 1:
		return Type{Kind: Singles}
	case 2:
		if sameRank(cards) {
			return Type{Kind: Pairs}
		}
	case 3:
		if sameRank(cards) {
			return Type{Kind: Triples}
		}
	case 4:
		// four of a kind is never sisters
		if sameRank(cards) {
			return Type{Kind: Bomb}
		}

		if isSisters(cards, 2) {
			return Type{Kind: PairsSisters, Size: 2}
		}
	case 5:
		if isStraight(cards) {
			if sameSuit(cards) {
				return Type{Kind: StraightFlush}
			}

			return Type{Kind: Straight, Size: 5}
		}

		if isFullHouse(cards) {
			return Type{Kind: FullHouse}
		}
	default:
		// runs longer than five are never flushes
		switch {
		case isSisters(cards, 2):
			return Type{Kind: PairsSisters, Size: n / 2}
		case isSisters(cards, 3):
			return Type{Kind: TriplesSisters, Size: n / 3}
		case isStraight(cards):
			return Type{Kind: Straight, Size: n}
		}
	}

	return Type{Kind: Invalid}
}

// sameAttribute is vacuously true for zero or one card
func sameAttribute(cards []deck.Card, attr func(deck.Card) interface{}) bool {
	for i := 1; i < len(cards); i++ {
		if attr(cards[i]) != attr(cards[0]) {
			return false
		}
	}

	return true
}

func sameRank(cards []deck.Card) bool {
	return sameAttribute(cards, func(c deck.Card) interface{} { return c.Rank() })
}

func sameSuit(cards []deck.Card) bool {
	return sameAttribute(cards, func(c deck.Card) interface{} { return c.Suit() })
}

// isStraight expects cards sorted by rank
func isStraight(cards []deck.Card) bool {
	for i := 1; i < len(cards); i++ {
		if cards[i].Rank()-cards[i-1].Rank() != 1 {
			return false
		}
	}

	return true
}

// groupBySize splits cards into consecutive chunks of size
// len(cards) must be divisible by size
func groupBySize(cards []deck.Card, size int) [][]deck.Card {
	groups := make([][]deck.Card, 0, len(cards)/size)
	for i := 0; i+size <= len(cards); i += size {
		groups = append(groups, cards[i:i+size])
	}

	return groups
}

// isSisters expects cards sorted by rank
func isSisters(cards []deck.Card, size int) bool {
	if len(cards)%size != 0 || len(cards)/size < 2 {
		return false
	}

	groups := groupBySize(cards, size)
	leads := make([]deck.Card, len(groups))
	for i, group := range groups {
		if !sameRank(group) {
			return false
		}

		leads[i] = group[0]
	}

	return isStraight(leads)
}

// isFullHouse expects five cards sorted by rank
func isFullHouse(cards []deck.Card) bool {
	if len(cards) != 5 {
		return false
	}

	return (sameRank(cards[0:2]) && sameRank(cards[2:5])) || // XX YYY
		(sameRank(cards[0:3]) && sameRank(cards[3:5])) // XXX YY
}

// FullHouseRank returns the rank of the triple of a full house
// The cards must be sorted by rank. The middle card always belongs to the triple.
func FullHouseRank(cards []deck.Card) int {
	return cards[2].Rank()
}
