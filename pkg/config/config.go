package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// ErrKeyMissing reports an absent required configuration key. It surfaces at
// the point of use, not at load time.
var ErrKeyMissing = errors.New("configuration key is not set")

// Settings is a read-only key to value snapshot of the process environment,
// optionally overlaid by a local dotenv file at startup.
type Settings struct {
	values map[string]string
}

// Load reads the optional dotenv file and snapshots the environment. Values
// already present in the environment win over the file.
func Load(envFile string) *Settings {
	if envFile != "" {
		_ = godotenv.Load(envFile)
	}

	values := make(map[string]string)
	for _, kv := range os.Environ() {
		key, value, ok := strings.Cut(kv, "=")
		if !ok {
			continue
		}
		values[key] = value
	}

	return &Settings{values: values}
}

// Get returns the value for key, or an error wrapping ErrKeyMissing when the
// key is absent or blank.
func (s *Settings) Get(key string) (string, error) {
	value := strings.TrimSpace(s.values[key])
	if value == "" {
		return "", fmt.Errorf("%s: %w", key, ErrKeyMissing)
	}

	return value, nil
}

// Lookup returns the value for key, or the empty string when absent.
func (s *Settings) Lookup(key string) string {
	return strings.TrimSpace(s.values[key])
}
