// Package snapshot compares JSON encodings against files in testdata/
// It is only meant to be imported from tests.
package snapshot

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

// UpdateEnv rewrites every snapshot when set to 1
const UpdateEnv = "UPDATE_SNAPSHOTS"

var (
	funcCount = make(map[string]int)
	lock      sync.Mutex
)

// ValidateSnapshot compares the indented JSON of obj with testdata/<func>-<call>.json
// Missing snapshot files are created. depth is the number of helper frames between the test and this call.
func ValidateSnapshot(t *testing.T, obj interface{}, depth int, msgAndArgs ...interface{}) {
	t.Helper()

	filename := nextFilename(1 + depth)

	objJSON, err := json.MarshalIndent(obj, "", "  ")
	if err != nil {
		t.Fatal(err)
	}

	expects, err := os.ReadFile(filename)
	if os.IsNotExist(err) || os.Getenv(UpdateEnv) == "1" {
		write(t, filename, objJSON)
		return
	} else if err != nil {
		t.Fatal(err)
	}

	if !assert.Equal(t, strings.TrimSpace(string(expects)), strings.TrimSpace(string(objJSON)), msgAndArgs...) {
		t.Logf("snapshot %s", filename)
	}
}

func nextFilename(skip int) string {
	pc, _, _, _ := runtime.Caller(skip + 1)
	funcName := filepath.Base(runtime.FuncForPC(pc).Name())

	lock.Lock()
	defer lock.Unlock()

	call := funcCount[funcName]
	funcCount[funcName] = call + 1

	return filepath.Join("testdata", fmt.Sprintf("%s-%d.json", funcName, call))
}

func write(t *testing.T, filename string, b []byte) {
	logrus.WithField("filename", filename).Info("writing snapshot file")
	if err := os.MkdirAll(filepath.Dir(filename), 0755); err != nil {
		t.Fatal(err)
	}

	if err := os.WriteFile(filename, append(b, '\n'), 0644); err != nil {
		t.Fatal(err)
	}
}
