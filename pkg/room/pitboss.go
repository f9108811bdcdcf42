package room

import (
	"context"
	"errors"
	"sort"
	"sync"
	"tienlen-server/internal/rng"
	"tienlen-server/internal/util"
	"tienlen-server/pkg/room/gamefactory"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// ErrTableNotFound happens when there is no dealer for the UUID
var ErrTableNotFound = errors.New("table not found")

// PitBoss is responsible for dispatching players to dealers
type PitBoss struct {
	dealers map[string]*Dealer
	lock    sync.RWMutex
	store   Store
}

// NewPitBoss returns a new dispatch object
// store is optional, games are not persisted without one
func NewPitBoss(store Store) *PitBoss {
	return &PitBoss{
		dealers: make(map[string]*Dealer),
		store:   store,
	}
}

// OpenTable creates a game for the players and a dealer to host it
// playerIDs are in turn order
func (p *PitBoss) OpenTable(ctx context.Context, gameName string, playerIDs []string) (*Dealer, error) {
	factory, err := gamefactory.Get(gameName)
	if err != nil {
		return nil, err
	}

	tableUUID := uuid.New().String()
	game, err := factory.CreateGame(tableUUID, playerIDs)
	if err != nil {
		return nil, err
	}

	dealer := NewDealer(tableUUID, util.GetRandomName(rng.Crypto{}), playerIDs, game, p.store)
	dealer.saveSnapshot()

	p.lock.Lock()
	p.dealers[tableUUID] = dealer
	p.lock.Unlock()

	dealer.StartShift()

	logrus.WithFields(logrus.Fields{
		"uuid":    tableUUID,
		"name":    dealer.Name,
		"game":    factory.Name(),
		"players": len(playerIDs),
	}).Info("table opened")

	return dealer, nil
}

// Dealer returns the dealer for the table
func (p *PitBoss) Dealer(tableUUID string) (*Dealer, error) {
	p.lock.RLock()
	defer p.lock.RUnlock()

	dealer, ok := p.dealers[tableUUID]
	if !ok {
		return nil, ErrTableNotFound
	}

	return dealer, nil
}

// TableCount returns the number of open tables
func (p *PitBoss) TableCount() int {
	p.lock.RLock()
	defer p.lock.RUnlock()

	return len(p.dealers)
}

// Tables returns the open tables, newest first
func (p *PitBoss) Tables(offset int64, limit int) []*Dealer {
	p.lock.RLock()
	dealers := make([]*Dealer, 0, len(p.dealers))
	for _, dealer := range p.dealers {
		dealers = append(dealers, dealer)
	}
	p.lock.RUnlock()

	sort.Slice(dealers, func(i, j int) bool {
		if dealers[i].Created.Equal(dealers[j].Created) {
			return dealers[i].UUID < dealers[j].UUID
		}

		return dealers[i].Created.After(dealers[j].Created)
	})

	if offset >= int64(len(dealers)) {
		return []*Dealer{}
	}

	dealers = dealers[offset:]
	if limit < len(dealers) {
		dealers = dealers[:limit]
	}

	return dealers
}

// CloseTable ends the dealer's shift and forgets the table
func (p *PitBoss) CloseTable(tableUUID string) error {
	p.lock.Lock()
	dealer, ok := p.dealers[tableUUID]
	delete(p.dealers, tableUUID)
	p.lock.Unlock()

	if !ok {
		return ErrTableNotFound
	}

	dealer.EndShift()
	logrus.WithField("uuid", tableUUID).Info("table closed")
	return nil
}

// EndShift closes every table
func (p *PitBoss) EndShift() {
	p.lock.Lock()
	dealers := p.dealers
	p.dealers = make(map[string]*Dealer)
	p.lock.Unlock()

	for _, dealer := range dealers {
		dealer.EndShift()
	}
}
