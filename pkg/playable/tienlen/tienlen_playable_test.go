package tienlen

import (
	"testing"
	"tienlen-server/pkg/deck"
	"tienlen-server/pkg/playable"
	"tienlen-server/pkg/snapshot"

	"github.com/stretchr/testify/assert"
)

var _ playable.Playable = &Game{}

func TestGame_Action(t *testing.T) {
	a := assert.New(t)

	g, _ := setupGame("3h,4h", "5h,6h")
	a.Equal("tienlen", g.Name())

	res, updateState, err := g.Action("p1", &playable.PayloadIn{Action: "pass"})
	a.EqualError(err, "unknown action: pass")
	a.False(updateState)
	a.Nil(res)

	res, updateState, err = g.Action("p2", &playable.PayloadIn{Action: ActionPlay, Cards: ids("5h")})
	assertError(t, err, ErrInvalidTurn, "p2")
	a.False(updateState)
	a.Nil(res)

	res, updateState, err = g.Action("p1", &playable.PayloadIn{Action: ActionPlay, Cards: ids("3h"), Context: "abc"})
	a.NoError(err)
	a.True(updateState)
	a.Equal(playable.OK("abc"), res)
	a.Equal("p2", g.CurrentTurnsPlayer().PlayerID)
}

func TestGame_GetPlayerState(t *testing.T) {
	a := assert.New(t)

	g, _ := setupGame("2h,3h,4h", "5h,6h")

	res, err := g.GetPlayerState("p1")
	a.NoError(err)
	a.Equal("game", res.Key)
	a.Equal("tienlen", res.Value)

	data := res.Data.(*Response)
	a.Equal("3h,4h,2h", deck.CardsToString(data.Hand))
	a.Equal("p1", data.GameState.CurrentTurn)
	a.Nil(data.GameState.LastPlay)
	a.False(data.GameState.IsGameOver)
	a.Equal([]*GameStatePlayer{
		{PlayerID: "p1", CardsInHand: 3},
		{PlayerID: "p2", CardsInHand: 2},
	}, data.GameState.Players)

	a.NoError(g.Play("p1", ids("3h")))

	res, err = g.GetPlayerState("p2")
	a.NoError(err)
	data = res.Data.(*Response)
	a.Equal("5h,6h", deck.CardsToString(data.Hand))
	a.Equal("p1", data.GameState.LastPlayerID)
	a.Equal("p2", data.GameState.CurrentTurn)
	a.Equal(2, data.GameState.Players[0].CardsInHand)

	// an observer only sees the public state
	res, err = g.GetPlayerState("observer")
	a.NoError(err)
	data = res.Data.(*Response)
	a.Nil(data.Hand)
	a.Equal("p2", data.GameState.CurrentTurn)
}

func TestGameState_snapshot(t *testing.T) {
	g, _ := setupGame("3h,4h", "5h,6h")
	assert.NoError(t, g.Play("p1", ids("3h")))

	snapshot.ValidateSnapshot(t, g.GetGameState(), 0)
}
