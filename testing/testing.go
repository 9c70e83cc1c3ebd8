// Package testing forces test mode for packages that import it blank.
package testing

import (
	"os"
	"sync"
	stdtesting "testing"
)

var once sync.Once

func ensureTestMode() {
	once.Do(func() {
		_ = os.Setenv("BONEVET_TEST_MODE", "1")
	})
}

func init() {
	ensureTestMode()
}

// TestMain ensures test mode is active before any test runs.
func TestMain(m *stdtesting.M) {
	ensureTestMode()
	os.Exit(m.Run())
}
