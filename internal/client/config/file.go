package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/gophcards/internal/flagx"
	"github.com/dmitrijs2005/gophcards/internal/timex"
	"gopkg.in/yaml.v3"
)

// FileConfig is the on-disk schema. Pointer fields distinguish "absent" from
// "set to the zero value" so a file only overrides the keys it names.
type FileConfig struct {
	APIBaseURL     *string         `json:"api_base_url" yaml:"api_base_url"`
	DatabasePath   *string         `json:"database_path" yaml:"database_path"`
	RequestTimeout *timex.Duration `json:"request_timeout" yaml:"request_timeout"`

	LogLevel  *string `json:"log_level" yaml:"log_level"`
	LogFormat *string `json:"log_format" yaml:"log_format"`
	LogFile   *string `json:"log_file" yaml:"log_file"`

	MediaBackend *string `json:"media_backend" yaml:"media_backend"`
	MediaDir     *string `json:"media_dir" yaml:"media_dir"`

	S3Endpoint   *string         `json:"s3_endpoint" yaml:"s3_endpoint"`
	S3Region     *string         `json:"s3_region" yaml:"s3_region"`
	S3Bucket     *string         `json:"s3_bucket" yaml:"s3_bucket"`
	S3AccessKey  *string         `json:"s3_access_key" yaml:"s3_access_key"`
	S3SecretKey  *string         `json:"s3_secret_key" yaml:"s3_secret_key"`
	S3PresignTTL *timex.Duration `json:"s3_presign_ttl" yaml:"s3_presign_ttl"`

	RemindersEnabled *bool   `json:"reminders_enabled" yaml:"reminders_enabled"`
	TelegramToken    *string `json:"telegram_token" yaml:"telegram_token"`
	TelegramChatID   *int64  `json:"telegram_chat_id" yaml:"telegram_chat_id"`
}

// parseFile overlays cfg with the file named by -c/-config, if any.
func parseFile(cfg *Config, args []string) error {
	path := flagx.ConfigFileFlag(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	var fc FileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &fc)
	default:
		err = json.Unmarshal(data, &fc)
	}
	if err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	fc.apply(cfg)
	return nil
}

func (fc *FileConfig) apply(cfg *Config) {
	setString(&cfg.APIBaseURL, fc.APIBaseURL)
	setString(&cfg.DatabasePath, fc.DatabasePath)
	if fc.RequestTimeout != nil {
		cfg.RequestTimeout = fc.RequestTimeout.Duration
	}

	setString(&cfg.LogLevel, fc.LogLevel)
	setString(&cfg.LogFormat, fc.LogFormat)
	setString(&cfg.LogFile, fc.LogFile)

	setString(&cfg.MediaBackend, fc.MediaBackend)
	setString(&cfg.MediaDir, fc.MediaDir)

	setString(&cfg.S3Endpoint, fc.S3Endpoint)
	setString(&cfg.S3Region, fc.S3Region)
	setString(&cfg.S3Bucket, fc.S3Bucket)
	setString(&cfg.S3AccessKey, fc.S3AccessKey)
	setString(&cfg.S3SecretKey, fc.S3SecretKey)
	if fc.S3PresignTTL != nil {
		cfg.S3PresignTTL = fc.S3PresignTTL.Duration
	}

	if fc.RemindersEnabled != nil {
		cfg.RemindersEnabled = *fc.RemindersEnabled
	}
	setString(&cfg.TelegramToken, fc.TelegramToken)
	if fc.TelegramChatID != nil {
		cfg.TelegramChatID = *fc.TelegramChatID
	}
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
