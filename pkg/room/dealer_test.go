package room

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"tienlen-server/pkg/playable"
	"tienlen-server/pkg/playable/tienlen"

	"github.com/stretchr/testify/assert"
)

var cbg = context.Background()

type savedGame struct {
	uuid      string
	gameType  string
	playerIDs []string
	data      interface{}
}

type fakeStore struct {
	lock  sync.Mutex
	saved []savedGame
	ended map[string]interface{}
	err   error
}

func (f *fakeStore) SaveGame(ctx context.Context, uuid, gameType string, playerIDs []string, data interface{}) error {
	f.lock.Lock()
	defer f.lock.Unlock()

	f.saved = append(f.saved, savedGame{uuid: uuid, gameType: gameType, playerIDs: playerIDs, data: data})
	return f.err
}

func (f *fakeStore) EndGame(ctx context.Context, uuid string, result interface{}) error {
	f.lock.Lock()
	defer f.lock.Unlock()

	if f.ended == nil {
		f.ended = make(map[string]interface{})
	}

	f.ended[uuid] = result
	return f.err
}

func (f *fakeStore) savedCount() int {
	f.lock.Lock()
	defer f.lock.Unlock()
	return len(f.saved)
}

// fakeGame ends after a configurable number of actions
type fakeGame struct {
	actions  int
	endAfter int
	logChan  chan []*playable.LogMessage
}

func newFakeGame(endAfter int) *fakeGame {
	return &fakeGame{
		endAfter: endAfter,
		logChan:  make(chan []*playable.LogMessage, 256),
	}
}

func (f *fakeGame) Action(playerID string, message *playable.PayloadIn) (*playable.Response, bool, error) {
	if message.Action != "tick" {
		return nil, false, errors.New("bad action")
	}

	f.actions++
	f.logChan <- playable.SimpleLogMessageSlice(playerID, "{} ticked %d", f.actions)
	return playable.OK(), true, nil
}

func (f *fakeGame) GetPlayerState(playerID string) (*playable.Response, error) {
	if playerID == "broken" {
		return nil, errors.New("broken state")
	}

	return &playable.Response{Key: "game", Value: "fake", Data: f.actions}, nil
}

func (f *fakeGame) GetEndOfGameDetails() (*playable.GameOverDetails, bool) {
	if f.actions < f.endAfter {
		return nil, false
	}

	return &playable.GameOverDetails{Winners: []string{"a"}, Log: f.actions}, true
}

func (f *fakeGame) Name() string {
	return "fake"
}

func (f *fakeGame) LogChan() <-chan []*playable.LogMessage {
	return f.logChan
}

func TestDealer_tienlen(t *testing.T) {
	a := assert.New(t)

	game, err := tienlen.NewGame(nil, []string{"a", "b"}, tienlen.DefaultOptions())
	a.NoError(err)

	store := &fakeStore{}
	d := NewDealer("uuid", "Lucky Dragon", []string{"a", "b"}, game, store)
	d.StartShift()
	defer d.EndShift()

	state, err := d.State(cbg, "a")
	a.NoError(err)
	a.Equal("uuid", state.UUID)
	a.Equal("Lucky Dragon", state.Name)
	a.Equal(2, len(state.Log), "the opening messages")
	a.Nil(state.GameOverDetails)

	res := state.Game.Data.(*tienlen.Response)
	a.Equal(27, len(res.Hand))

	opener := res.GameState.CurrentTurn
	other := "a"
	if opener == "a" {
		other = "b"
	}

	_, err = d.Action(cbg, other, &playable.PayloadIn{Action: tienlen.ActionPlay, Cards: []string{tienlen.OpeningCardID}})
	a.True(errors.Is(err, tienlen.ErrInvalidTurn))
	a.Equal(0, store.savedCount())

	out, err := d.Action(cbg, opener, &playable.PayloadIn{Action: tienlen.ActionPlay, Cards: []string{tienlen.OpeningCardID}, Context: "ctx"})
	a.NoError(err)
	a.Equal("ctx", out.Context)
	a.Equal(1, store.savedCount())
	a.Equal("tienlen", store.saved[0].gameType)

	state, err = d.State(cbg, other)
	a.NoError(err)
	a.Equal(3, len(state.Log))
	a.Equal("{} played a single", state.Log[2].Message)
	a.Equal(other, state.Game.Data.(*tienlen.Response).GameState.CurrentTurn)
}

func TestDealer_endOfGame(t *testing.T) {
	a := assert.New(t)

	store := &fakeStore{}
	d := NewDealer("uuid", "name", []string{"a", "b"}, newFakeGame(2), store)
	d.StartShift()
	defer d.EndShift()

	_, err := d.Action(cbg, "a", &playable.PayloadIn{Action: "tick"})
	a.NoError(err)
	a.Nil(store.ended)

	_, err = d.Action(cbg, "a", &playable.PayloadIn{Action: "tick"})
	a.NoError(err)
	a.Equal(1, len(store.ended))
	a.Equal([]string{"a"}, store.ended["uuid"].(*playable.GameOverDetails).Winners)

	// the result is only stored once
	_, err = d.Action(cbg, "a", &playable.PayloadIn{Action: "tick"})
	a.NoError(err)
	a.Equal(2, store.ended["uuid"].(*playable.GameOverDetails).Log)

	state, err := d.State(cbg, "a")
	a.NoError(err)
	a.Equal([]string{"a"}, state.GameOverDetails.Winners)
	a.Equal(3, state.Game.Data)
}

func TestDealer_storeErrorsAreNotFatal(t *testing.T) {
	store := &fakeStore{err: errors.New("db is down")}
	d := NewDealer("uuid", "name", []string{"a"}, newFakeGame(1), store)
	d.StartShift()
	defer d.EndShift()

	res, err := d.Action(cbg, "a", &playable.PayloadIn{Action: "tick"})
	assert.NoError(t, err)
	assert.Equal(t, playable.OK(), res)
}

func TestDealer_withoutStore(t *testing.T) {
	d := NewDealer("uuid", "name", []string{"a"}, newFakeGame(1), nil)
	d.StartShift()
	defer d.EndShift()

	_, err := d.Action(cbg, "a", &playable.PayloadIn{Action: "tick"})
	assert.NoError(t, err)

	_, err = d.Action(cbg, "a", &playable.PayloadIn{Action: "bad"})
	assert.EqualError(t, err, "bad action")

	state, err := d.State(cbg, "broken")
	assert.Nil(t, state)
	assert.EqualError(t, err, "broken state")
}

func TestDealer_EndShift(t *testing.T) {
	d := NewDealer("uuid", "name", []string{"a"}, newFakeGame(1), nil)
	d.StartShift()
	d.EndShift()
	d.EndShift()

	_, err := d.Action(cbg, "a", &playable.PayloadIn{Action: "tick"})
	assert.Equal(t, ErrDealerClosed, err)

	_, err = d.State(cbg, "a")
	assert.Equal(t, ErrDealerClosed, err)
}

func TestDealer_canceledContext(t *testing.T) {
	// the run loop is never started, so nothing can complete
	d := NewDealer("uuid", "name", []string{"a"}, newFakeGame(1), nil)

	ctx, cancel := context.WithCancel(cbg)
	cancel()

	_, err := d.State(ctx, "a")
	assert.Equal(t, context.Canceled, err)
}

func TestDealer_IsSeated(t *testing.T) {
	d := NewDealer("uuid", "name", []string{"a", "b"}, newFakeGame(1), nil)
	assert.True(t, d.IsSeated("a"))
	assert.True(t, d.IsSeated("b"))
	assert.False(t, d.IsSeated("c"))
}

func TestDealer_addLogMessages(t *testing.T) {
	a := assert.New(t)
	d := NewDealer("uuid", "name", []string{"a"}, newFakeGame(1), nil)

	for i := 0; i < 30; i++ {
		d.addLogMessages(playable.SimpleLogMessageSlice("", "message %d", i))
	}

	a.Equal(logMessageLimit, len(d.logMessages))
	a.Equal("message 5", d.logMessages[0].Message)
	a.Equal("message 29", d.logMessages[24].Message)

	d.addLogMessages([]*playable.LogMessage{})
	a.Equal(logMessageLimit, len(d.logMessages))
}

func TestDealer_concurrentActions(t *testing.T) {
	game := newFakeGame(1000)
	d := NewDealer("uuid", "name", []string{"a"}, game, nil)
	d.StartShift()
	defer d.EndShift()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := d.Action(cbg, "a", &playable.PayloadIn{Action: "tick", Context: fmt.Sprint(i)})
			assert.NoError(t, err)
		}(i)
	}

	wg.Wait()

	state, err := d.State(cbg, "a")
	assert.NoError(t, err)
	assert.Equal(t, 50, state.Game.Data)
	assert.Equal(t, logMessageLimit, len(state.Log))
}
