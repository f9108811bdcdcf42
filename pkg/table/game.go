package table

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"
	"tienlen-server/pkg/db"

	"github.com/lib/pq"
)

// Game is a record in the `games` table
type Game struct {
	UUID      string
	GameType  string
	PlayerIDs []string
	Created   time.Time
	Updated   time.Time
	Ended     time.Time

	data   interface{}
	result interface{}
}

const gamesColumns = `uuid, game_type, player_ids, data, result, created, updated, ended`

// Data returns the last snapshot of the game
func (g *Game) Data() interface{} {
	return g.data
}

// Result returns the end of game details, or nil while the game is in progress
func (g *Game) Result() interface{} {
	return g.result
}

// IsEnded returns true once the game has a result
func (g *Game) IsEnded() bool {
	return !g.Ended.IsZero()
}

// GameStore persists game snapshots in Postgres
type GameStore struct {
	db *sql.DB
}

// NewGameStore returns a store backed by dbh
// If dbh is nil, the shared db instance is used
func NewGameStore(dbh *sql.DB) *GameStore {
	if dbh == nil {
		dbh = db.Instance()
	}

	return &GameStore{db: dbh}
}

// SaveGame creates the record, or replaces the snapshot if the record exists
func (s *GameStore) SaveGame(ctx context.Context, uuid, gameType string, playerIDs []string, data interface{}) error {
	b, err := json.Marshal(data)
	if err != nil {
		return err
	}

	const query = `
INSERT INTO games (uuid, game_type, player_ids, data)
VALUES ($1, $2, $3, $4)
ON CONFLICT (uuid) DO UPDATE
SET data = EXCLUDED.data, updated = NOW() AT TIME ZONE 'UTC'`

	_, err = s.db.ExecContext(ctx, query, uuid, gameType, pq.Array(playerIDs), b)
	return err
}

// EndGame will end the game and set the result
func (s *GameStore) EndGame(ctx context.Context, uuid string, result interface{}) error {
	b, err := json.Marshal(result)
	if err != nil {
		return err
	}

	const query = `
UPDATE games
SET result = $1, ended = NOW() AT TIME ZONE 'UTC', updated = NOW() AT TIME ZONE 'UTC'
WHERE uuid = $2
RETURNING ended`

	var ended time.Time
	return s.db.QueryRowContext(ctx, query, b, uuid).Scan(&ended)
}

// GameByUUID returns a game record by its UUID
func (s *GameStore) GameByUUID(ctx context.Context, uuid string) (*Game, error) {
	const query = `
SELECT ` + gamesColumns + `
FROM games
WHERE uuid = $1`

	return gameByRow(s.db.QueryRowContext(ctx, query, uuid))
}

func gameByRow(row db.Scanner) (*Game, error) {
	var g Game
	var data, result []byte
	var ended sql.NullTime

	if err := row.Scan(&g.UUID, &g.GameType, pq.Array(&g.PlayerIDs), &data, &result, &g.Created, &g.Updated, &ended); err != nil {
		return nil, err
	}

	if data != nil {
		if err := json.Unmarshal(data, &g.data); err != nil {
			return nil, err
		}
	}

	if result != nil {
		if err := json.Unmarshal(result, &g.result); err != nil {
			return nil, err
		}
	}

	g.Ended = ended.Time

	return &g, nil
}
