package tienlen

import (
	"fmt"
	"strings"
)

// ErrorKind is the closed set of rule violations a game reports
// An ErrorKind is itself an error, so errors.Is(err, ErrMissingCards) works on any *Error
type ErrorKind int

// error kinds
const (
	// ErrInvalidTurn happens when a player other than the current player tries to play
	ErrInvalidTurn ErrorKind = iota + 1

	// ErrMissingCards happens when the player tries to play a card they don't have
	ErrMissingCards

	// ErrInvalidPlay happens when the cards do not form a recognized combination
	ErrInvalidPlay

	// ErrPlayDoesNotBeatPrevious happens when a valid play does not trump the last play
	ErrPlayDoesNotBeatPrevious

	// ErrInternalInvariantViolation means the deal produced an impossible state. This is a bug, not a user error
	ErrInternalInvariantViolation
)

func (k ErrorKind) Error() string {
	switch k {
	case ErrInvalidTurn:
		return "not player's turn"
	case ErrMissingCards:
		return "card is not in player's hand"
	case ErrInvalidPlay:
		return "cards do not form a valid play"
	case ErrPlayDoesNotBeatPrevious:
		return "play does not beat the previous play"
	case ErrInternalInvariantViolation:
		return "internal invariant violation"
	}

	return fmt.Sprintf("unknown error kind %d", int(k))
}

// Name returns a stable identifier of the kind for clients
func (k ErrorKind) Name() string {
	switch k {
	case ErrInvalidTurn:
		return "InvalidTurn"
	case ErrMissingCards:
		return "MissingCards"
	case ErrInvalidPlay:
		return "InvalidPlay"
	case ErrPlayDoesNotBeatPrevious:
		return "PlayDoesNotBeatPrevious"
	case ErrInternalInvariantViolation:
		return "InternalInvariantViolation"
	}

	return "Unknown"
}

// IsUserError returns true for the kinds caused by a player's move
func (k ErrorKind) IsUserError() bool {
	return k >= ErrInvalidTurn && k <= ErrPlayDoesNotBeatPrevious
}

// Error is a rule violation with the context of the offending move
type Error struct {
	Kind     ErrorKind
	PlayerID string
	CardIDs  []string
	// Detail is optional extra information
	Detail string
}

func (e *Error) Error() string {
	var sb strings.Builder
	sb.WriteString(e.Kind.Error())
	if e.PlayerID != "" {
		fmt.Fprintf(&sb, ": player %s", e.PlayerID)
	}

	if len(e.CardIDs) > 0 {
		fmt.Fprintf(&sb, ", cards [%s]", strings.Join(e.CardIDs, ", "))
	}

	if e.Detail != "" {
		sb.WriteString(": ")
		sb.WriteString(e.Detail)
	}

	return sb.String()
}

// Unwrap returns the kind
func (e *Error) Unwrap() error {
	return e.Kind
}

func newError(kind ErrorKind, playerID string, cardIDs []string, detail string) *Error {
	return &Error{
		Kind:     kind,
		PlayerID: playerID,
		CardIDs:  append([]string{}, cardIDs...),
		Detail:   detail,
	}
}

// PlayerCountError is an error on the number of players in the game
type PlayerCountError int

func (p PlayerCountError) Error() string {
	return fmt.Sprintf("expected 2–%d players, got %d", playersLimit, int(p))
}

// InvalidPlayerIDError is returned for an empty or duplicated player ID
type InvalidPlayerIDError string

func (i InvalidPlayerIDError) Error() string {
	if i == "" {
		return "player ID cannot be empty"
	}

	return fmt.Sprintf("duplicate player ID: %s", string(i))
}
