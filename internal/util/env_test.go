package util

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetenv(t *testing.T) {
	a := assert.New(t)

	a.Equal("fallback", Getenv("TL_TEST_GETENV", "fallback"))

	defer SetEnv("TL_TEST_GETENV", "")()
	a.Equal("fallback", Getenv("TL_TEST_GETENV", "fallback"), "empty values fall back")

	defer SetEnv("TL_TEST_GETENV", "set")()
	a.Equal("set", Getenv("TL_TEST_GETENV", "fallback"))
}

func TestSetEnv(t *testing.T) {
	a := assert.New(t)
	_, found := os.LookupEnv("TL_TEST_SETENV")
	a.False(found)

	restore1 := SetEnv("TL_TEST_SETENV", "one")
	a.Equal("one", os.Getenv("TL_TEST_SETENV"))

	restore2 := SetEnv("TL_TEST_SETENV", "two")
	a.Equal("two", os.Getenv("TL_TEST_SETENV"))

	restore2()
	a.Equal("one", os.Getenv("TL_TEST_SETENV"))

	restore1()
	_, found = os.LookupEnv("TL_TEST_SETENV")
	a.False(found)
}
