package room

import (
	"context"
	"errors"
	"sync"
	"time"
	"tienlen-server/pkg/playable"

	"github.com/sirupsen/logrus"
)

// ErrDealerClosed is returned once the dealer's shift has ended
var ErrDealerClosed = errors.New("table is closed")

// persistTimeout bounds a single write to the store
const persistTimeout = time.Second * 5

// Store persists snapshots of hosted games
type Store interface {
	SaveGame(ctx context.Context, uuid, gameType string, playerIDs []string, data interface{}) error
	EndGame(ctx context.Context, uuid string, result interface{}) error
}

// Dealer is responsible for controlling a single game
// Every call into the game is executed on the dealer's run loop
type Dealer struct {
	UUID      string
	Name      string
	PlayerIDs []string
	Created   time.Time

	game        playable.Playable
	store       Store
	logMessages []*playable.LogMessage
	ended       bool

	execInRunLoop chan func()
	close         chan bool
	closeOnce     sync.Once
}

// State is what a player sees of a table
type State struct {
	UUID            string                    `json:"uuid"`
	Name            string                    `json:"name"`
	PlayerIDs       []string                  `json:"playerIds"`
	Created         time.Time                 `json:"created"`
	Game            *playable.Response        `json:"game"`
	Log             []*playable.LogMessage    `json:"log"`
	GameOverDetails *playable.GameOverDetails `json:"gameOverDetails,omitempty"`
}

// NewDealer creates a new dealer object
// store is optional
func NewDealer(uuid, name string, playerIDs []string, game playable.Playable, store Store) *Dealer {
	return &Dealer{
		UUID:          uuid,
		Name:          name,
		PlayerIDs:     append([]string{}, playerIDs...),
		Created:       time.Now(),
		game:          game,
		store:         store,
		logMessages:   make([]*playable.LogMessage, 0, logMessageLimit),
		execInRunLoop: make(chan func(), 256),
		close:         make(chan bool),
	}
}

// StartShift starts the run loop
func (d *Dealer) StartShift() {
	go d.runLoop()
}

// EndShift is called when the dealer is no longer needed
func (d *Dealer) EndShift() {
	d.closeOnce.Do(func() {
		close(d.close)
	})
}

func (d *Dealer) runLoop() {
	log := logrus.WithFields(logrus.Fields{
		"uuid": d.UUID,
		"name": d.Name,
	})

	log.Debug("creating dealer run loop")
	for {
		select {
		case fn := <-d.execInRunLoop:
			fn()
		case messages := <-d.game.LogChan():
			d.addLogMessages(messages)
		case <-d.close:
			log.Debug("terminating dealer run loop")
			return
		}
	}
}

// exec runs fn on the run loop and waits for it to finish
func (d *Dealer) exec(ctx context.Context, fn func()) error {
	select {
	case <-d.close:
		return ErrDealerClosed
	default:
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	done := make(chan bool)
	wrapped := func() {
		defer close(done)
		d.drainLogMessages()
		fn()
		d.drainLogMessages()
	}

	select {
	case d.execInRunLoop <- wrapped:
	case <-d.close:
		return ErrDealerClosed
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case <-done:
		return nil
	case <-d.close:
		select {
		case <-done:
			return nil
		default:
			return ErrDealerClosed
		}
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Action performs the player's action on the game
// The error is the game's error if the action was rejected
func (d *Dealer) Action(ctx context.Context, playerID string, msg *playable.PayloadIn) (*playable.Response, error) {
	var res *playable.Response
	var actionErr error

	err := d.exec(ctx, func() {
		var updateState bool
		res, updateState, actionErr = d.game.Action(playerID, msg)
		if actionErr != nil {
			logrus.WithError(actionErr).WithFields(logrus.Fields{
				"uuid":     d.UUID,
				"playerID": playerID,
			}).Debug("could not perform action")
			return
		}

		if res != nil {
			res.Context = msg.Context
		}

		if updateState {
			d.saveSnapshot()
		}

		if details, isOver := d.game.GetEndOfGameDetails(); isOver && !d.ended {
			d.ended = true
			d.endGame(details)
		}
	})

	if err != nil {
		return nil, err
	}

	return res, actionErr
}

// State returns the table as seen by the player
func (d *Dealer) State(ctx context.Context, playerID string) (*State, error) {
	var state *State
	var stateErr error

	err := d.exec(ctx, func() {
		res, err := d.game.GetPlayerState(playerID)
		if err != nil {
			stateErr = err
			return
		}

		details, _ := d.game.GetEndOfGameDetails()
		state = &State{
			UUID:            d.UUID,
			Name:            d.Name,
			PlayerIDs:       d.PlayerIDs,
			Created:         d.Created,
			Game:            res,
			Log:             append([]*playable.LogMessage{}, d.logMessages...),
			GameOverDetails: details,
		}
	})

	if err != nil {
		return nil, err
	}

	return state, stateErr
}

// IsSeated returns true if the player is part of the game
func (d *Dealer) IsSeated(playerID string) bool {
	for _, id := range d.PlayerIDs {
		if id == playerID {
			return true
		}
	}

	return false
}

// saveSnapshot stores the public state of the game
// NOTE: must only be called from the run loop, or before the shift starts
func (d *Dealer) saveSnapshot() {
	if d.store == nil {
		return
	}

	res, err := d.game.GetPlayerState("")
	if err != nil {
		logrus.WithError(err).WithField("uuid", d.UUID).Error("could not get game state")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()

	if err := d.store.SaveGame(ctx, d.UUID, d.game.Name(), d.PlayerIDs, res.Data); err != nil {
		logrus.WithError(err).WithField("uuid", d.UUID).Error("could not save game")
	}
}

// NOTE: must only be called from the run loop
func (d *Dealer) endGame(details *playable.GameOverDetails) {
	logrus.WithFields(logrus.Fields{
		"uuid":    d.UUID,
		"winners": details.Winners,
	}).Info("game ended")

	if d.store == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()

	if err := d.store.EndGame(ctx, d.UUID, details); err != nil {
		logrus.WithError(err).WithField("uuid", d.UUID).Error("could not end game")
	}
}
