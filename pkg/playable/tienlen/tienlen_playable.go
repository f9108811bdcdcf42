package tienlen

import (
	"fmt"
	"tienlen-server/pkg/playable"
)

// ActionPlay is the only action a player can take
const ActionPlay = "play"

// Name returns "tienlen"
func (g *Game) Name() string {
	return "tienlen"
}

// LogChan returns a channel for sending log messages
func (g *Game) LogChan() <-chan []*playable.LogMessage {
	return g.logChan
}

// Action performs an action
func (g *Game) Action(playerID string, message *playable.PayloadIn) (playerResponse *playable.Response, updateState bool, err error) {
	switch message.Action {
	case ActionPlay:
		if err := g.Play(playerID, message.Cards); err != nil {
			return nil, false, err
		}

		return playable.OK(message.Context), true, nil
	default:
		return nil, false, fmt.Errorf("unknown action: %s", message.Action)
	}
}

// GameLog is the record of a finished game
type GameLog struct {
	Players  []string `json:"players"`
	Winner   string   `json:"winner"`
	LastPlay *Play    `json:"lastPlay"`
}

// GetEndOfGameDetails returns details once a player has run out of cards
func (g *Game) GetEndOfGameDetails() (gameOverDetails *playable.GameOverDetails, isGameOver bool) {
	if g.winner == "" {
		return nil, false
	}

	players := make([]string, len(g.players))
	for i, player := range g.players {
		players[i] = player.PlayerID
	}

	return &playable.GameOverDetails{
		Winners: []string{g.winner},
		Log: &GameLog{
			Players:  players,
			Winner:   g.winner,
			LastPlay: g.lastPlay,
		},
	}, true
}
