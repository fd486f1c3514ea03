package config

import (
	"errors"
	"fmt"
	"net/url"
	"time"
)

const (
	MediaLocal = "local"
	MediaS3    = "s3"
)

type Config struct {
	APIBaseURL     string
	DatabasePath   string
	RequestTimeout time.Duration

	LogLevel  string
	LogFormat string
	LogFile   string

	MediaBackend string
	MediaDir     string

	S3Endpoint   string
	S3Region     string
	S3Bucket     string
	S3AccessKey  string
	S3SecretKey  string
	S3PresignTTL time.Duration

	RemindersEnabled bool
	TelegramToken    string
	TelegramChatID   int64
}

func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://localhost:5000"
	c.DatabasePath = "gophcards.db"
	c.RequestTimeout = 30 * time.Second
	c.LogLevel = "info"
	c.LogFormat = "text"
	c.MediaBackend = MediaLocal
	c.MediaDir = "media"
	c.S3Region = "us-east-1"
	c.S3PresignTTL = 24 * time.Hour
	c.RemindersEnabled = true
}

const defaultEnvFile = ".env"

// Load builds a Config from all sources; args are the command-line
// arguments without the program name.
func Load(args []string) (*Config, error) {
	return load(args, defaultEnvFile)
}

func load(args []string, envFile string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseEnv(cfg, envFile); err != nil {
		return nil, err
	}
	if err := parseFile(cfg, args); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

var ErrInvalidConfig = errors.New("invalid configuration")

func (c *Config) Validate() error {
	u, err := url.Parse(c.APIBaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("%w: api_base_url %q is not an absolute URL", ErrInvalidConfig, c.APIBaseURL)
	}
	if c.DatabasePath == "" {
		return fmt.Errorf("%w: database_path is empty", ErrInvalidConfig)
	}
	if c.RequestTimeout < 0 {
		return fmt.Errorf("%w: request_timeout is negative", ErrInvalidConfig)
	}

	switch c.MediaBackend {
	case MediaLocal:
	case MediaS3:
		if c.S3Bucket == "" {
			return fmt.Errorf("%w: s3_bucket is required for the s3 media backend", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown media_backend %q", ErrInvalidConfig, c.MediaBackend)
	}
	return nil
}

// TelegramEnabled reports whether both bot credentials are set.
func (c *Config) TelegramEnabled() bool {
	return c.TelegramToken != "" && c.TelegramChatID != 0
}
