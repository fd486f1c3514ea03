package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := load(nil, "")
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:5000", cfg.APIBaseURL)
	assert.Equal(t, "gophcards.db", cfg.DatabasePath)
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, MediaLocal, cfg.MediaBackend)
	assert.Equal(t, 24*time.Hour, cfg.S3PresignTTL)
	assert.True(t, cfg.RemindersEnabled)
	assert.False(t, cfg.TelegramEnabled())
}

func TestLoad_Precedence(t *testing.T) {
	envFile := writeTemp(t, ".env", "GOPHCARDS_DATABASE_PATH=from-dotenv.db\nGOPHCARDS_LOG_LEVEL=warn\n")
	// godotenv writes into the process environment; unset through t.Setenv so
	// the previous state is restored afterwards.
	t.Setenv("GOPHCARDS_DATABASE_PATH", "")
	require.NoError(t, os.Unsetenv("GOPHCARDS_DATABASE_PATH"))
	t.Setenv("GOPHCARDS_API_BASE_URL", "http://env:1")
	t.Setenv("GOPHCARDS_REQUEST_TIMEOUT", "5s")
	// the .env file never overrides a variable that is already set
	t.Setenv("GOPHCARDS_LOG_LEVEL", "error")

	file := writeTemp(t, "cfg.json", `{"api_base_url":"http://file:2","media_dir":"m"}`)

	cfg, err := load([]string{"-c", file, "-t", "7"}, envFile)
	require.NoError(t, err)

	assert.Equal(t, "http://file:2", cfg.APIBaseURL)
	assert.Equal(t, "from-dotenv.db", cfg.DatabasePath)
	assert.Equal(t, "error", cfg.LogLevel)
	assert.Equal(t, "m", cfg.MediaDir)
	assert.Equal(t, 7*time.Second, cfg.RequestTimeout)

	cfg, err = load([]string{"-config=" + file, "-a", "http://flag:3"}, envFile)
	require.NoError(t, err)
	assert.Equal(t, "http://flag:3", cfg.APIBaseURL)
	assert.Equal(t, 5*time.Second, cfg.RequestTimeout)
}

func TestLoad_YAMLFile(t *testing.T) {
	file := writeTemp(t, "cfg.yaml", `
api_base_url: http://yaml:5000
request_timeout: 1m
media_backend: s3
s3_bucket: cards
s3_presign_ttl: 1h
reminders_enabled: false
telegram_token: tok
telegram_chat_id: 42
`)

	cfg, err := load([]string{"--config", file}, "")
	require.NoError(t, err)

	assert.Equal(t, "http://yaml:5000", cfg.APIBaseURL)
	assert.Equal(t, time.Minute, cfg.RequestTimeout)
	assert.Equal(t, MediaS3, cfg.MediaBackend)
	assert.Equal(t, "cards", cfg.S3Bucket)
	assert.Equal(t, time.Hour, cfg.S3PresignTTL)
	assert.False(t, cfg.RemindersEnabled)
	assert.True(t, cfg.TelegramEnabled())
	assert.Equal(t, int64(42), cfg.TelegramChatID)
}

func TestLoad_EnvTypedValues(t *testing.T) {
	t.Setenv("GOPHCARDS_REMINDERS_ENABLED", "false")
	t.Setenv("GOPHCARDS_TELEGRAM_CHAT_ID", "-100")
	t.Setenv("GOPHCARDS_S3_PRESIGN_TTL", "2h")

	cfg, err := load(nil, "")
	require.NoError(t, err)
	assert.False(t, cfg.RemindersEnabled)
	assert.Equal(t, int64(-100), cfg.TelegramChatID)
	assert.Equal(t, 2*time.Hour, cfg.S3PresignTTL)
}

func TestLoad_Errors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := load([]string{"-c", filepath.Join(t.TempDir(), "nope.json")}, "")
		require.Error(t, err)
	})

	t.Run("malformed json", func(t *testing.T) {
		file := writeTemp(t, "bad.json", `{"api_base_url":`)
		_, err := load([]string{"-c", file}, "")
		require.Error(t, err)
	})

	t.Run("bad env duration", func(t *testing.T) {
		t.Setenv("GOPHCARDS_REQUEST_TIMEOUT", "soon")
		_, err := load(nil, "")
		require.Error(t, err)
	})

	t.Run("bad flag value", func(t *testing.T) {
		_, err := load([]string{"-t", "abc"}, "")
		require.ErrorIs(t, err, ErrInvalidConfig)
	})

	t.Run("relative base url", func(t *testing.T) {
		_, err := load([]string{"-a", "localhost"}, "")
		require.ErrorIs(t, err, ErrInvalidConfig)
	})

	t.Run("s3 without bucket", func(t *testing.T) {
		t.Setenv("GOPHCARDS_MEDIA_BACKEND", "s3")
		_, err := load(nil, "")
		require.ErrorIs(t, err, ErrInvalidConfig)
	})

	t.Run("unknown backend", func(t *testing.T) {
		t.Setenv("GOPHCARDS_MEDIA_BACKEND", "ftp")
		_, err := load(nil, "")
		require.ErrorIs(t, err, ErrInvalidConfig)
	})
}
