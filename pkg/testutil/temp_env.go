package testutil

import (
	"os"
	"strings"
)

// Setenv sets an environment variable until the test finishes.
func Setenv(c Cleanuper, name, value string) {
	restoreEnv(c, name)
	os.Setenv(name, value)
}

// Unsetenv unsets an environment variable until the test finishes.
func Unsetenv(c Cleanuper, name string) {
	restoreEnv(c, name)
	os.Unsetenv(name)
}

// UnsetenvPrefix unsets every environment variable whose name starts with
// prefix until the test finishes. Variables set during the test with that
// prefix are not removed unless they were set with Setenv.
func UnsetenvPrefix(c Cleanuper, prefix string) {
	for _, kv := range os.Environ() {
		if name, _, _ := strings.Cut(kv, "="); strings.HasPrefix(name, prefix) {
			Unsetenv(c, name)
		}
	}
}

func restoreEnv(c Cleanuper, name string) {
	if old, ok := os.LookupEnv(name); ok {
		c.Cleanup(func() { os.Setenv(name, old) })
		return
	}
	c.Cleanup(func() { os.Unsetenv(name) })
}
