package mux

import (
	"errors"
	"net/http"
	"time"
	"tienlen-server/pkg/playable"
	"tienlen-server/pkg/playable/tienlen"
	"tienlen-server/pkg/room"
)

type tableSummary struct {
	UUID      string    `json:"uuid"`
	Name      string    `json:"name"`
	PlayerIDs []string  `json:"playerIds"`
	Created   time.Time `json:"created"`
}

func (m *Mux) getTable() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		offset, limit, err := parsePaginationOptions(r)
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, err)
			return
		}

		dealers := m.pitBoss.Tables(offset, limit)
		tables := make([]tableSummary, len(dealers))
		for i, dealer := range dealers {
			tables[i] = tableSummary{
				UUID:      dealer.UUID,
				Name:      dealer.Name,
				PlayerIDs: dealer.PlayerIDs,
				Created:   dealer.Created,
			}
		}

		writeJSON(w, http.StatusOK, tables)
	}
}

type postTablePayload struct {
	Game      string   `json:"game"`
	PlayerIDs []string `json:"playerIds"`
}

type postTableResponse struct {
	UUID string `json:"uuid"`
	Name string `json:"name"`
	// Tokens are the seat tokens keyed by player ID
	Tokens map[string]string `json:"tokens"`
	State  *room.State       `json:"state"`
}

func (m *Mux) postTable() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var pp postTablePayload
		if !decodeRequest(w, r, &pp) {
			return
		}

		dealer, err := m.pitBoss.OpenTable(r.Context(), pp.Game, pp.PlayerIDs)
		if err != nil {
			if isUserError(err) {
				writeJSONError(w, http.StatusBadRequest, err)
			} else {
				writeJSONError(w, http.StatusInternalServerError, err)
			}
			return
		}

		tokens := make(map[string]string, len(dealer.PlayerIDs))
		for _, playerID := range dealer.PlayerIDs {
			token, err := m.signer.Sign(dealer.UUID, playerID)
			if err != nil {
				writeJSONError(w, http.StatusInternalServerError, err)
				return
			}

			tokens[playerID] = token
		}

		// the public view, nobody's hand
		state, err := dealer.State(r.Context(), "")
		if err != nil {
			writeJSONError(w, http.StatusInternalServerError, err)
			return
		}

		writeJSON(w, http.StatusCreated, postTableResponse{
			UUID:   dealer.UUID,
			Name:   dealer.Name,
			Tokens: tokens,
			State:  state,
		})
	}
}

func (m *Mux) getTableUUID() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		dealer := r.Context().Value(ctxDealerKey).(*room.Dealer)
		playerID := r.Context().Value(ctxPlayerKey).(string)

		state, err := dealer.State(r.Context(), playerID)
		if err != nil {
			writeDealerError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, state)
	}
}

func (m *Mux) deleteTableUUID() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		dealer := r.Context().Value(ctxDealerKey).(*room.Dealer)
		if err := m.pitBoss.CloseTable(dealer.UUID); err != nil {
			writeDealerError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, playable.OK())
	}
}

type postTableUUIDPlayPayload struct {
	Cards   []string `json:"cards"`
	Context string   `json:"context"`
}

func (m *Mux) postTableUUIDPlay() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var pp postTableUUIDPlayPayload
		if !decodeRequest(w, r, &pp) {
			return
		}

		dealer := r.Context().Value(ctxDealerKey).(*room.Dealer)
		playerID := r.Context().Value(ctxPlayerKey).(string)

		_, err := dealer.Action(r.Context(), playerID, &playable.PayloadIn{
			Action:  tienlen.ActionPlay,
			Cards:   pp.Cards,
			Context: pp.Context,
		})

		if err != nil {
			writeDealerError(w, err)
			return
		}

		state, err := dealer.State(r.Context(), playerID)
		if err != nil {
			writeDealerError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, state)
	}
}

// writeDealerError maps rule violations to 4xx and everything else to 5xx
func writeDealerError(w http.ResponseWriter, err error) {
	var ruleErr *tienlen.Error
	switch {
	case errors.As(err, &ruleErr) && ruleErr.Kind == tienlen.ErrInvalidTurn:
		writeJSONError(w, http.StatusForbidden, err)
	case errors.As(err, &ruleErr) && ruleErr.Kind.IsUserError():
		writeJSONError(w, http.StatusBadRequest, err)
	case errors.Is(err, room.ErrDealerClosed), errors.Is(err, room.ErrTableNotFound):
		writeJSONError(w, http.StatusNotFound, err)
	case isUserError(err):
		writeJSONError(w, http.StatusBadRequest, err)
	default:
		writeJSONError(w, http.StatusInternalServerError, err)
	}
}

func isUserError(err error) bool {
	var ue playable.UserError
	var countErr tienlen.PlayerCountError
	var idErr tienlen.InvalidPlayerIDError

	return errors.As(err, &ue) || errors.As(err, &countErr) || errors.As(err, &idErr)
}
