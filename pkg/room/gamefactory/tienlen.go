package gamefactory

import (
	"tienlen-server/pkg/playable"
	"tienlen-server/pkg/playable/tienlen"

	"github.com/sirupsen/logrus"
)

type tienLenFactory struct{}

func (tienLenFactory) CreateGame(tableUUID string, playerIDs []string) (playable.Playable, error) {
	logger := logrus.WithField("uuid", tableUUID)
	game, err := tienlen.NewGame(logger, playerIDs, tienlen.DefaultOptions())
	if err != nil {
		return nil, err
	}

	return game, nil
}

func (tienLenFactory) Name() string {
	return "Tiến Lên"
}
