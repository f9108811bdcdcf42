package gamefactory

import (
	"fmt"
	"tienlen-server/pkg/playable"
)

// DefaultGame is created when no game is named
const DefaultGame = "tienlen"

var factories = map[string]GameFactory{
	"tienlen": tienLenFactory{},
}

// GameFactory is a factory for creating games that implement the Playable interface
type GameFactory interface {
	CreateGame(tableUUID string, playerIDs []string) (playable.Playable, error)
	Name() string
}

// Get returns a factory by the given name
func Get(name string) (GameFactory, error) {
	if name == "" {
		name = DefaultGame
	}

	factory, ok := factories[name]
	if !ok {
		return nil, playable.UserError(fmt.Sprintf("no factory with name: %s", name))
	}

	return factory, nil
}
