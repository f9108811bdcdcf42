package config

import (
	"os"
	"testing"
	"tienlen-server/internal/util"

	"github.com/stretchr/testify/assert"
)

func TestInstance(t *testing.T) {
	unset1 := util.SetEnv("TL_CONFIG_FILE", "testdata/config.yaml")
	defer unset1()
	unset2 := util.SetEnv("TL_JWT_SECRET", "env-secret")
	defer unset2()

	config = Config{}

	a := assert.New(t)
	cfg := Instance()
	a.Equal(":8080", cfg.Addr)
	a.Equal("postgres://tienlen@db:5432/tienlen?sslmode=disable", cfg.PGDSN)
	a.True(cfg.PersistGames)
	a.Equal("tienlen-test", cfg.JWT.Issuer)
	a.Equal("env-secret", cfg.JWT.Secret)
	a.Equal("debug", cfg.Log.Level)

	// defaults survive a partial file
	a.Equal("./sql", cfg.MigrationsPath)

	// ensure that it's only loaded once
	_ = os.Setenv("TL_JWT_SECRET", "env-secret-2")
	// ensure we aren't using a pointer
	cfg.JWT.Secret = "bad"
	cfg = Instance()
	a.Equal("env-secret", cfg.JWT.Secret)
}

func TestLoad_missingFile(t *testing.T) {
	unset := util.SetEnv("TL_CONFIG_FILE", "testdata/does-not-exist.yaml")
	defer unset()

	assert.NoError(t, Load())
	assert.Equal(t, DefaultConfig().Addr, Instance().Addr)
	assert.False(t, Instance().PersistGames)
}

func TestLoad_badEnvironment(t *testing.T) {
	unset1 := util.SetEnv("TL_CONFIG_FILE", "testdata/does-not-exist.yaml")
	defer unset1()
	unset2 := util.SetEnv("TL_PERSIST_GAMES", "not-a-bool")
	defer unset2()

	assert.Error(t, Load())
}
