package tienlen

import (
	"fmt"
	"time"
	"tienlen-server/pkg/deck"
	"tienlen-server/pkg/playable"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// OpeningCardID is the card whose holder makes the first play
const OpeningCardID = "3 of Hearts"

// every player needs at least one card
const playersLimit = deck.Size

// Game is a game of Tiến Lên
// A Game is not safe for concurrent use
type Game struct {
	players     []*Player
	idToPlayer  map[string]*Player
	currentTurn int

	// lastPlay is nil until the first play is accepted
	lastPlay     *Play
	lastPlayerID string

	// winner is the first player to run out of cards
	winner    string
	startTime time.Time

	logger  logrus.FieldLogger
	logChan chan []*playable.LogMessage
}

// NewGame shuffles a fresh deck and deals it round-robin to the players
// playerIDs must be unique, their order is the turn order
func NewGame(logger logrus.FieldLogger, playerIDs []string, opts Options) (*Game, error) {
	if len(playerIDs) < 2 || len(playerIDs) > playersLimit {
		return nil, PlayerCountError(len(playerIDs))
	}

	seen := make(map[string]bool, len(playerIDs))
	players := make([]*Player, len(playerIDs))
	for i, pid := range playerIDs {
		if pid == "" || seen[pid] {
			return nil, InvalidPlayerIDError(pid)
		}

		seen[pid] = true
		players[i] = NewPlayer(pid)
	}

	if opts.RNG == nil {
		opts.RNG = DefaultOptions().RNG
	}

	d := deck.New()
	d.Shuffle(opts.RNG)

	return newGame(logger, players, d)
}

func newGame(logger logrus.FieldLogger, players []*Player, d *deck.Deck) (*Game, error) {
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	idToPlayer := make(map[string]*Player, len(players))
	for _, player := range players {
		idToPlayer[player.PlayerID] = player
	}

	g := &Game{
		players:    players,
		idToPlayer: idToPlayer,
		startTime:  time.Now(),
		logger:     logger,
		logChan:    make(chan []*playable.LogMessage, 256),
	}

	g.deal(d)

	opener := g.holderOf(OpeningCardID)
	if opener < 0 {
		return nil, newError(ErrInternalInvariantViolation, "", []string{OpeningCardID}, "no player holds the opening card")
	}

	g.currentTurn = opener

	g.logger.WithField("currentTurn", g.players[opener].PlayerID).Debug("new game dealt")
	g.sendLogMessages(
		newLogMessage("", nil, "New game of Tiến Lên started with %d players", len(players)),
		newLogMessage(g.players[opener].PlayerID, nil, "{} holds the %s and plays first", OpeningCardID),
	)

	return g, nil
}

// deal gives card i of the deck to player i mod n
func (g *Game) deal(d *deck.Deck) {
	for i := 0; d.CanDraw(1); i++ {
		card, err := d.Draw()
		if err != nil {
			panic(err)
		}

		g.players[i%len(g.players)].addCard(card)
	}
}

func (g *Game) holderOf(cardID string) int {
	for i, player := range g.players {
		if player.hand.HasCard(cardID) {
			return i
		}
	}

	return -1
}

// Players returns the players in turn order
func (g *Game) Players() []*Player {
	return append([]*Player{}, g.players...)
}

// PlayerByID returns the player with the ID
func (g *Game) PlayerByID(playerID string) (*Player, bool) {
	player, ok := g.idToPlayer[playerID]
	return player, ok
}

// CurrentTurnsPlayer returns the player whose play is awaited
func (g *Game) CurrentTurnsPlayer() *Player {
	return g.players[g.currentTurn]
}

// LastPlay returns the last accepted play, or nil before the first play
func (g *Game) LastPlay() *Play {
	return g.lastPlay
}

// Play plays cardIDs for playerID.
// Nothing changes unless every check passes: it must be the player's turn, the player must hold the cards,
// the cards must form a valid play and that play must beat the last play.
// On success the cards leave the player's hand and the turn moves to the next player.
func (g *Game) Play(playerID string, cardIDs []string) error {
	log := g.logger.WithFields(logrus.Fields{
		"playerID": playerID,
		"cards":    cardIDs,
	})

	play, err := g.validatePlay(playerID, cardIDs)
	if err != nil {
		log.WithError(err).Debug("play rejected")
		return err
	}

	player := g.players[g.currentTurn]
	player.RemoveCards(cardIDs)
	g.lastPlay = play
	g.lastPlayerID = playerID
	g.currentTurn = (g.currentTurn + 1) % len(g.players)

	log.WithField("type", play.Type().String()).Debug("play accepted")

	messages := []*playable.LogMessage{newLogMessage(playerID, play.Cards(), "{} played %s", describeType(play.Type()))}
	if player.CardsLeft() == 0 && g.winner == "" {
		g.winner = playerID
		messages = append(messages, newLogMessage(playerID, nil, "{} is out of cards"))
	}

	g.sendLogMessages(messages...)
	return nil
}

func (g *Game) validatePlay(playerID string, cardIDs []string) (*Play, error) {
	player := g.players[g.currentTurn]
	if player.PlayerID != playerID {
		return nil, newError(ErrInvalidTurn, playerID, nil, fmt.Sprintf("waiting on %s", player.PlayerID))
	}

	if !player.HasAllCards(cardIDs) {
		return nil, newError(ErrMissingCards, playerID, missingCards(player, cardIDs), "")
	}

	if dupes := duplicateCards(cardIDs); len(dupes) > 0 {
		return nil, newError(ErrInvalidPlay, playerID, dupes, "a card can only be played once")
	}

	play := NewPlay(player.hand.Cards(cardIDs))
	if !play.Type().IsValid() {
		return nil, newError(ErrInvalidPlay, playerID, cardIDs, "")
	}

	if g.lastPlay != nil && !g.lastPlay.IsTrumpedBy(play) {
		return nil, newError(ErrPlayDoesNotBeatPrevious, playerID, cardIDs, fmt.Sprintf("%s does not beat %s", play.Type(), g.lastPlay.Type()))
	}

	return play, nil
}

func missingCards(player *Player, cardIDs []string) []string {
	missing := make([]string, 0)
	for _, id := range cardIDs {
		if !player.hand.HasCard(id) {
			missing = append(missing, id)
		}
	}

	return missing
}

func duplicateCards(cardIDs []string) []string {
	seen := make(map[string]bool, len(cardIDs))
	dupes := make([]string, 0)
	for _, id := range cardIDs {
		if seen[id] {
			dupes = append(dupes, id)
		}

		seen[id] = true
	}

	return dupes
}

func describeType(t Type) string {
	switch t.Kind {
	case Singles:
		return "a single"
	case Pairs:
		return "a pair"
	case Triples:
		return "a triple"
	case Bomb:
		return "a bomb"
	case PairsSisters:
		return fmt.Sprintf("%d consecutive pairs", t.Size)
	case TriplesSisters:
		return fmt.Sprintf("%d consecutive triples", t.Size)
	case Straight:
		return fmt.Sprintf("a %d card straight", t.Size)
	case StraightFlush:
		return "a straight flush"
	case FullHouse:
		return "a full house"
	}

	return t.String()
}

func (g *Game) sendLogMessages(msg ...*playable.LogMessage) {
	if g.logChan == nil {
		return
	}

	select {
	case g.logChan <- msg:
	default:
		g.logger.Warn("log channel is full, dropping messages")
	}
}

func newLogMessage(playerID string, cards []deck.Card, format string, a ...interface{}) *playable.LogMessage {
	var playerIDs []string
	if playerID != "" {
		playerIDs = []string{playerID}
	}

	return &playable.LogMessage{
		UUID:      uuid.New().String(),
		PlayerIDs: playerIDs,
		Cards:     cards,
		Message:   fmt.Sprintf(format, a...),
		Time:      time.Now(),
	}
}
