package deck

import "sort"

// Hand represents a collection of cards
type Hand []Card

func (h Hand) Len() int {
	return len(h)
}

// Less orders by rank, then by the canonical suit order
func (h Hand) Less(i, j int) bool {
	if h[i].rank != h[j].rank {
		return h[i].rank < h[j].rank
	}

	return suitIndex(h[i].suit) < suitIndex(h[j].suit)
}

func (h Hand) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
}

func suitIndex(s Suit) int {
	for i, suit := range Suits {
		if suit == s {
			return i
		}
	}

	return len(Suits)
}

// SortByRank sorts cards by rank only, keeping the input order of equal ranks
func SortByRank(cards []Card) {
	sort.SliceStable(cards, func(i, j int) bool {
		return cards[i].rank < cards[j].rank
	})
}

// AddCard adds a card to the hand
func (h *Hand) AddCard(card Card) {
	*h = append(*h, card)
}

// HasCard returns true if the hand contains the card with the given id
func (h Hand) HasCard(id string) bool {
	for _, c := range h {
		if c.ID() == id {
			return true
		}
	}

	return false
}

// HasAllCards returns true if every id is in the hand
func (h Hand) HasAllCards(ids []string) bool {
	have := make(map[string]bool, len(h))
	for _, c := range h {
		have[c.ID()] = true
	}

	for _, id := range ids {
		if !have[id] {
			return false
		}
	}

	return true
}

// Discard removes every card whose id is in ids and returns the number removed
// The remaining cards keep their relative order, unknown ids are ignored
func (h *Hand) Discard(ids ...string) int {
	remove := make(map[string]bool, len(ids))
	for _, id := range ids {
		remove[id] = true
	}

	newHand := make(Hand, 0, len(*h))
	for _, c := range *h {
		if !remove[c.ID()] {
			newHand = append(newHand, c)
		}
	}

	count := len(*h) - len(newHand)
	*h = newHand
	return count
}

// Cards returns the cards matching ids, in hand order
func (h Hand) Cards(ids []string) []Card {
	want := make(map[string]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}

	cards := make([]Card, 0, len(ids))
	for _, c := range h {
		if want[c.ID()] {
			cards = append(cards, c)
		}
	}

	return cards
}

// FirstCard returns the first card in the hand, ok is false if the hand is empty
func (h Hand) FirstCard() (card Card, ok bool) {
	if len(h) == 0 {
		return Card{}, false
	}

	return h[0], true
}

// LastCard returns the last card in the hand, ok is false if the hand is empty
func (h Hand) LastCard() (card Card, ok bool) {
	n := len(h)
	if n == 0 {
		return Card{}, false
	}

	return h[n-1], true
}

func (h Hand) String() string {
	return CardsToString(h)
}

// Clone returns a clone of the hand
func (h Hand) Clone() Hand {
	h2 := make(Hand, len(h))
	copy(h2, h)

	return h2
}
