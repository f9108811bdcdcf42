package main

import (
	"flag"
	"net/http"
	"os"
	"strings"
	"tienlen-server/internal/config"
	"tienlen-server/internal/jwt"
	"tienlen-server/internal/mux"
	"tienlen-server/pkg/db"
	"tienlen-server/pkg/room"
	"tienlen-server/pkg/table"
	"time"

	"github.com/gorilla/handlers"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"
)

const readTimeout = time.Second * 5
const writeTimeout = time.Second * 10

// Version is the server version
var Version = "v0.0.0-dev"

var addr = flag.String("addr", "", "the listen address, overrides the config")

func main() {
	flag.Parse()
	setupLogger()

	cfg := config.Instance()

	// fail fast
	signer, err := jwt.NewSignerFromConfig()
	if err != nil {
		logrus.WithError(err).Fatal("could not create seat token signer")
	}

	var store room.Store
	if cfg.PersistGames {
		// run the db migrations
		db.Migrate()
		store = table.NewGameStore(db.Instance())
	}

	pitBoss := room.NewPitBoss(store)
	defer pitBoss.EndShift()

	c := cors.New(cors.Options{
		AllowedHeaders: []string{"Origin", "Accept", "Content-Type", "X-Requested-With", "Authorization"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete},
		ExposedHeaders: []string{"TienLen-PlayerID"},
	})

	listen := cfg.Addr
	if *addr != "" {
		listen = *addr
	}

	srv := &http.Server{
		Addr:         listen,
		Handler:      loggingHandler(c.Handler(mux.NewMux(Version, pitBoss, signer))),
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
	}

	logrus.WithFields(logrus.Fields{
		"addr":         srv.Addr,
		"persistGames": cfg.PersistGames,
	}).Info("listening")
	logrus.Fatal(srv.ListenAndServe())
}

func loggingHandler(next http.Handler) http.Handler {
	if config.Instance().Log.DisableAccessLogs {
		return next
	}

	return handlers.CombinedLoggingHandler(os.Stdout, next)
}

func setupLogger() {
	if lvl := config.Instance().Log.Level; lvl != "" {
		level, err := logrus.ParseLevel(lvl)
		if err != nil {
			logrus.WithError(err).Fatal("could not parse level")
		}

		logrus.SetLevel(level)
	}

	if strings.ToLower(os.Getenv("LOG_FORMAT")) == "json" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}
}
