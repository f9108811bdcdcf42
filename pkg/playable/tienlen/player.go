package tienlen

import (
	"tienlen-server/pkg/deck"
)

// Player is an individual in the game
type Player struct {
	PlayerID string
	hand     deck.Hand
}

// NewPlayer returns a new player
func NewPlayer(pid string, cards ...deck.Card) *Player {
	return &Player{
		PlayerID: pid,
		hand:     append(deck.Hand{}, cards...),
	}
}

// Hand returns a shallow clone of the player's hand
func (p *Player) Hand() deck.Hand {
	return p.hand.Clone()
}

// CardsLeft returns the number of cards in the player's hand
func (p *Player) CardsLeft() int {
	return len(p.hand)
}

// HasAllCards returns true if the player holds every card in cardIDs
func (p *Player) HasAllCards(cardIDs []string) bool {
	return p.hand.HasAllCards(cardIDs)
}

// RemoveCards removes the cards from the hand, keeping the order of the rest
// Cards the player does not hold are ignored
func (p *Player) RemoveCards(cardIDs []string) {
	p.hand.Discard(cardIDs...)
}

// addCard is only used while dealing
func (p *Player) addCard(card deck.Card) {
	p.hand.AddCard(card)
}
