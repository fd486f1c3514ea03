package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const envPrefix = "GOPHCARDS_"

// parseEnv loads envFile (a missing file is fine) into the process
// environment without overriding variables already set, then applies every
// GOPHCARDS_* variable.
func parseEnv(cfg *Config, envFile string) error {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to load %s: %w", envFile, err)
		}
	}

	strs := map[string]*string{
		"API_BASE_URL":   &cfg.APIBaseURL,
		"DATABASE_PATH":  &cfg.DatabasePath,
		"LOG_LEVEL":      &cfg.LogLevel,
		"LOG_FORMAT":     &cfg.LogFormat,
		"LOG_FILE":       &cfg.LogFile,
		"MEDIA_BACKEND":  &cfg.MediaBackend,
		"MEDIA_DIR":      &cfg.MediaDir,
		"S3_ENDPOINT":    &cfg.S3Endpoint,
		"S3_REGION":      &cfg.S3Region,
		"S3_BUCKET":      &cfg.S3Bucket,
		"S3_ACCESS_KEY":  &cfg.S3AccessKey,
		"S3_SECRET_KEY":  &cfg.S3SecretKey,
		"TELEGRAM_TOKEN": &cfg.TelegramToken,
	}
	for name, dst := range strs {
		if v, ok := os.LookupEnv(envPrefix + name); ok {
			*dst = v
		}
	}

	durations := map[string]*time.Duration{
		"REQUEST_TIMEOUT": &cfg.RequestTimeout,
		"S3_PRESIGN_TTL":  &cfg.S3PresignTTL,
	}
	for name, dst := range durations {
		if v, ok := os.LookupEnv(envPrefix + name); ok {
			d, err := time.ParseDuration(v)
			if err != nil {
				return fmt.Errorf("%s%s: %w", envPrefix, name, err)
			}
			*dst = d
		}
	}

	if v, ok := os.LookupEnv(envPrefix + "REMINDERS_ENABLED"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%sREMINDERS_ENABLED: %w", envPrefix, err)
		}
		cfg.RemindersEnabled = b
	}

	if v, ok := os.LookupEnv(envPrefix + "TELEGRAM_CHAT_ID"); ok {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("%sTELEGRAM_CHAT_ID: %w", envPrefix, err)
		}
		cfg.TelegramChatID = id
	}

	return nil
}
