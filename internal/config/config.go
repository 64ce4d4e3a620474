// Package config loads tmsim settings from a .tmsim.yaml or .tmsim.toml file.
// Command line flags take precedence over file values; the cmd package applies them.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// FileNames are the config files looked up by Discover, in order.
var FileNames = []string{".tmsim.yaml", ".tmsim.yml", ".tmsim.toml"}

// Config holds every tunable of the CLI and servers.
type Config struct {
	Format    string       `mapstructure:"format"`
	LogLevel  string       `mapstructure:"log_level"`
	LogFormat string       `mapstructure:"log_format"`
	Jobs      int          `mapstructure:"jobs"`
	Server    ServerConfig `mapstructure:"server"`
	Cache     CacheConfig  `mapstructure:"cache"`
}

type ServerConfig struct {
	Port string `mapstructure:"port"`
}

// CacheConfig selects the document cache. An empty RedisAddr means in-memory.
type CacheConfig struct {
	RedisAddr     string        `mapstructure:"redis_addr"`
	RedisPassword string        `mapstructure:"redis_password"`
	RedisDB       int           `mapstructure:"redis_db"`
	TTL           time.Duration `mapstructure:"ttl"`
	Prefix        string        `mapstructure:"prefix"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Format:    "json",
		LogLevel:  "warn",
		LogFormat: "text",
		Jobs:      4,
		Server:    ServerConfig{Port: "8080"},
		Cache:     CacheConfig{Prefix: "tmsim:doc:", TTL: time.Hour},
	}
}

// Discover returns the first config file present in dir, or "".
func Discover(dir string) string {
	for _, name := range FileNames {
		path := filepath.Join(dir, name)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path
		}
	}
	return ""
}

// Load reads path on top of the defaults. An empty path returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}

	raw := make(map[string]any)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		if _, err := toml.Decode(string(data), &raw); err != nil {
			return cfg, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return cfg, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
		}
	default:
		return cfg, fmt.Errorf("unsupported config format %q", ext)
	}

	if err := Decode(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("invalid config %s: %w", filepath.Base(path), err)
	}
	return cfg, nil
}

// Decode overlays raw onto cfg. Unknown keys are rejected.
func Decode(raw map[string]any, cfg *Config) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           cfg,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
	})
	if err != nil {
		return err
	}
	return decoder.Decode(raw)
}
