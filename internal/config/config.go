package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// ServerConfig holds configuration for the Lich server.
type ServerConfig struct {
	Addr      string       `json:"addr"`       // Listen address (default ":8080")
	LogLevel  string       `json:"log_level"`  // Log level: debug, info, warn, error
	LogFormat string       `json:"log_format"` // Log format: text, json
	DBPath    string       `json:"db_path"`    // SQLite database path (default ~/.lich/lich.db, ":memory:" for testing)
	Backup    BackupConfig `json:"backup"`
}

// BackupConfig selects where state snapshots are written. Both targets
// may be empty, in which case the backup endpoint reports unavailable.
type BackupConfig struct {
	Dir      string `json:"dir"`       // Local directory for snapshot files
	S3Bucket string `json:"s3_bucket"` // S3 bucket for snapshot objects
	S3Prefix string `json:"s3_prefix"` // Key prefix inside the bucket
}

// DefaultServerConfig returns sensible defaults.
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Addr:      ":8080",
		LogLevel:  "info",
		LogFormat: "text",
	}
}

// Load builds the server configuration from an optional config file
// (json or yaml, by extension) with LICH_-prefixed environment variables
// layered on top. Nested keys use a double underscore in the
// environment, e.g. LICH_BACKUP__S3_BUCKET sets backup.s3_bucket.
func Load(path string) (ServerConfig, error) {
	cfg := DefaultServerConfig()

	k := koanf.New(".")
	if path != "" {
		ext := strings.ToLower(filepath.Ext(path))
		var parser koanf.Parser
		switch ext {
		case ".yaml", ".yml":
			parser = yaml.Parser()
		case ".json":
			parser = json.Parser()
		default:
			return cfg, fmt.Errorf("unsupported config format: %s", ext)
		}
		if err := k.Load(file.Provider(path), parser); err != nil {
			return cfg, err
		}
	}
	if err := k.Load(env.Provider("LICH_", ".", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), "lich_")
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return cfg, err
	}
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate rejects values that would only fail later at runtime.
func (c ServerConfig) Validate() error {
	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		return fmt.Errorf("log_format %q: want text or json", c.LogFormat)
	}
	if c.Addr == "" {
		return fmt.Errorf("addr must not be empty")
	}
	return nil
}
