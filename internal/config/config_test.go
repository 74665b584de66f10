package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	return path
}

func TestMustLoad(t *testing.T) {
	t.Run("Reads the file and fills defaults", func(t *testing.T) {
		// Given: a config file that only sets the ports and the game ttl
		path := writeConfig(t, "http-port: \"9191\"\nsocket-port: \"8181\"\ngame:\n  ttl: 30m\n")

		// When: it is loaded
		conf := MustLoad(path)

		// Then: set values are kept and the rest falls back to defaults
		assert.Equal(t, "9191", conf.HTTPPort)
		assert.Equal(t, "8181", conf.SocketPort)
		assert.Equal(t, "info", conf.LogLevel)
		assert.Equal(t, 30*time.Minute, conf.Game.TTL)
		assert.Equal(t, 64, conf.Game.PartitionAttempts)
		assert.Equal(t, 5, conf.Game.GenerationRetries)
		assert.Equal(t, "localhost:6379", conf.Redis.GetRedisAddr())
	})

	t.Run("Panics on a missing file", func(t *testing.T) {
		assert.Panics(t, func() {
			MustLoad(filepath.Join(t.TempDir(), "absent.yml"))
		})
	})
}
