package mux

import (
	"context"
	"net/http"
	"strings"
	"tienlen-server/internal/jwt"
	"tienlen-server/pkg/room"

	gmux "github.com/gorilla/mux"
)

type ctxKey int

const (
	ctxPlayerKey ctxKey = iota
	ctxDealerKey
)

// Mux handles HTTP requests
type Mux struct {
	*gmux.Router
	version string
	pitBoss *room.PitBoss
	signer  *jwt.Signer

	// store for testing purposes
	seatRouter *gmux.Router
}

// NewMux returns a new HTTP mux
func NewMux(version string, pitBoss *room.PitBoss, signer *jwt.Signer) *Mux {
	this := &Mux{
		Router:  gmux.NewRouter(),
		version: version,
		pitBoss: pitBoss,
		signer:  signer,
	}

	// unauthorized endpoints
	{
		r := this.Router
		r.Methods(http.MethodGet).Path("/health").Handler(this.getHealth())
		r.Methods(http.MethodGet).Path("/table").Handler(this.getTable())
		r.Methods(http.MethodPost).Path("/table").Handler(this.postTable())
	}

	// requires a seat token for the table
	{
		r := this.Router.PathPrefix("/table/{uuid:(?i)[a-f0-9]{8}(?:-[a-f0-9]{4}){3}-[a-f0-9]{12}}").Subrouter()
		r.Use(this.seatMiddleware, this.tableMiddleware)
		this.seatRouter = r

		r.Methods(http.MethodGet).Path("").Handler(this.getTableUUID())
		r.Methods(http.MethodDelete).Path("").Handler(this.deleteTableUUID())
		r.Methods(http.MethodPost).Path("/play").Handler(this.postTableUUIDPlay())
	}

	return this
}

// seatMiddleware validates the bearer seat token against the table in the path
func (m *Mux) seatMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := r.FormValue("access_token")
		if token == "" {
			authHeader := strings.Split(r.Header.Get("Authorization"), " ")
			if len(authHeader) != 2 || strings.ToLower(authHeader[0]) != "bearer" {
				writeJSONError(w, http.StatusUnauthorized, nil)
				return
			}

			token = authHeader[1]
		}

		tableUUID := strings.ToLower(gmux.Vars(r)["uuid"])
		playerID, err := m.signer.ValidPlayerID(token, tableUUID)
		if err != nil {
			writeJSONError(w, http.StatusUnauthorized, nil)
			return
		}

		newCtx := context.WithValue(r.Context(), ctxPlayerKey, playerID)
		w.Header().Set("TienLen-PlayerID", playerID)
		next.ServeHTTP(w, r.WithContext(newCtx))
	})
}

// tableMiddleware requires seatMiddleware to execute first
func (m *Mux) tableMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		dealer, err := m.pitBoss.Dealer(strings.ToLower(gmux.Vars(r)["uuid"]))
		if err != nil {
			writeJSONError(w, http.StatusNotFound, err)
			return
		}

		playerID := r.Context().Value(ctxPlayerKey).(string)
		if !dealer.IsSeated(playerID) {
			writeJSONError(w, http.StatusForbidden, nil)
			return
		}

		newCtx := context.WithValue(r.Context(), ctxDealerKey, dealer)
		next.ServeHTTP(w, r.WithContext(newCtx))
	})
}
