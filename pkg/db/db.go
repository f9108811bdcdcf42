package db

import (
	"database/sql"
	"errors"
	"fmt"
	"tienlen-server/internal/config"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/sirupsen/logrus"

	_ "github.com/golang-migrate/migrate/v4/source/file" // needed
)

var instance *sql.DB

// Instance returns a database instance
func Instance() *sql.DB {
	if instance == nil {
		LoadInstance()
	}

	return instance
}

// LoadInstance will load the database instance from the configured DSN
func LoadInstance() {
	dbh, err := Open(config.Instance().PGDSN)
	if err != nil {
		panic(err)
	}

	instance = dbh
}

// Open opens and pings a Postgres connection
func Open(dsn string) (*sql.DB, error) {
	dbh, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}

	if err := dbh.Ping(); err != nil {
		_ = dbh.Close()
		return nil, err
	}

	return dbh, nil
}

// Migrate runs the configured migrations against the instance
func Migrate() {
	if err := MigrateInstance(Instance(), config.Instance().MigrationsPath); err != nil {
		panic(err)
	}
}

// MigrateInstance runs the migrations in migrationsPath against dbh
func MigrateInstance(dbh *sql.DB, migrationsPath string) error {
	logrus.WithField("migrationsPath", migrationsPath).Info("running migrations")
	driver, err := postgres.WithInstance(dbh, &postgres.Config{})
	if err != nil {
		return err
	}

	m, err := migrate.NewWithDatabaseInstance(fmt.Sprintf("file://%s", migrationsPath), "postgres", driver)
	if err != nil {
		return err
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}

	return nil
}

// Scanner is an interface that sql should've provided
// No snark here...
type Scanner interface {
	Scan(...interface{}) error
}
