package tienlen

import (
	"tienlen-server/pkg/deck"
	"tienlen-server/pkg/playable"
)

// GameState is the overall game state
// This is safe for all players to see
type GameState struct {
	Players      []*GameStatePlayer `json:"players"`
	CurrentTurn  string             `json:"currentTurn"`
	LastPlay     *Play              `json:"lastPlay"`
	LastPlayerID string             `json:"lastPlayerId"`
	Winner       string             `json:"winner"`
	IsGameOver   bool               `json:"isGameOver"`
}

// GameStatePlayer is the state of an individual player
// This is safe for all players to see
type GameStatePlayer struct {
	PlayerID    string `json:"playerId"`
	CardsInHand int    `json:"cardsInHand"`
}

// Response is the response format for this game
type Response struct {
	GameState *GameState `json:"gameState"`
	// Data below is player specific, and must only be shown to the intended player
	Hand []deck.Card `json:"hand"`
}

// GetGameState returns the public state of the game
func (g *Game) GetGameState() *GameState {
	players := make([]*GameStatePlayer, len(g.players))
	for i, player := range g.players {
		players[i] = &GameStatePlayer{
			PlayerID:    player.PlayerID,
			CardsInHand: player.CardsLeft(),
		}
	}

	return &GameState{
		Players:      players,
		CurrentTurn:  g.CurrentTurnsPlayer().PlayerID,
		LastPlay:     g.lastPlay,
		LastPlayerID: g.lastPlayerID,
		Winner:       g.winner,
		IsGameOver:   g.winner != "",
	}
}

// GetPlayerState returns the state for the given player
// A player that is not in the game only sees the public state
func (g *Game) GetPlayerState(playerID string) (*playable.Response, error) {
	var hand []deck.Card
	if player, ok := g.idToPlayer[playerID]; ok {
		hand = player.Hand()
		deck.SortByRank(hand)
	}

	return &playable.Response{
		Key:   "game",
		Value: "tienlen",
		Data: &Response{
			GameState: g.GetGameState(),
			Hand:      hand,
		},
	}, nil
}
