package config

import (
	"errors"
	"os"
	"tienlen-server/internal/util"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config provides configuration for the Tiến Lên server
type Config struct {
	loaded         bool
	Addr           string `yaml:"addr" envconfig:"addr"`
	PGDSN          string `yaml:"pgDsn" envconfig:"pg_dsn"`
	MigrationsPath string `yaml:"migrationsPath" envconfig:"migrations_path"`
	// PersistGames stores a snapshot of every game in Postgres
	PersistGames bool `yaml:"persistGames" envconfig:"persist_games"`
	JWT          struct {
		Secret string `yaml:"secret" envconfig:"secret"`
		Issuer string `yaml:"issuer" envconfig:"issuer"`
	} `yaml:"jwt"`
	Log struct {
		Level             string `yaml:"level" envconfig:"level"`
		DisableAccessLogs bool   `yaml:"disableAccessLogs" envconfig:"disable_access_logs"`
	} `yaml:"log"`
}

var config Config

// DefaultConfig returns the configuration used when no file or environment overrides a value
func DefaultConfig() Config {
	var cfg Config
	cfg.Addr = ":5000"
	cfg.PGDSN = "postgres://postgres@localhost:5432/postgres?sslmode=disable"
	cfg.MigrationsPath = "./sql"
	cfg.JWT.Issuer = "tienlen-server"
	cfg.Log.Level = "info"

	return cfg
}

// Instance returns a singleton instance
// If the config hasn't been loaded, it will be loaded
func Instance() Config {
	if !config.loaded {
		if err := Load(); err != nil {
			panic(err)
		}
	}

	return config
}

// Load will load the configuration
// A missing config file is not an error, the defaults and the environment still apply
func Load() error {
	cfg := DefaultConfig()

	configFile := util.Getenv("TL_CONFIG_FILE", "config.yaml")
	file, err := os.Open(configFile)
	if err == nil {
		defer file.Close()

		if err := yaml.NewDecoder(file).Decode(&cfg); err != nil {
			return err
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return err
	}

	if err := envconfig.Process("tl", &cfg); err != nil {
		return err
	}

	cfg.loaded = true
	config = cfg
	return nil
}
