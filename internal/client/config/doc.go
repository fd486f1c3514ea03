// Package config loads runtime configuration for the gophcards CLI.
//
// Sources, lowest precedence first:
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. A .env file and GOPHCARDS_* environment variables (see parseEnv).
//  3. A JSON or YAML file given with -c or -config (see parseFile). The
//     format follows the extension: .yaml/.yml is YAML, anything else JSON.
//  4. Command-line flags (see parseFlags).
//
// Flags
//
//	-a string   backend base URL
//	-d string   path of the local SQLite database
//	-t int      request timeout in seconds (0 disables)
//	-l string   log level: debug, info, warn, error
//
// # File schema
//
// Durations accept "30s" style strings or integer nanoseconds:
//
//	{
//	  "api_base_url": "http://localhost:5000",
//	  "request_timeout": "30s",
//	  "media_backend": "s3",
//	  "s3_bucket": "gophcards",
//	  "s3_presign_ttl": "24h"
//	}
package config
