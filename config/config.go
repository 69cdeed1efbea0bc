package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// FileName is the configuration file looked up in the working directory and
// then in the user's home directory.
const FileName = ".githistory.json"

// Config is the root configuration structure.
type Config struct {
	Git     GitConfig     `json:"git"`
	History HistoryConfig `json:"history"`
	Filters FilterConfig  `json:"filters"`
	Cache   CacheConfig   `json:"cache"`
	Log     LogConfig     `json:"log"`
}

// GitConfig locates and bounds the git executable.
type GitConfig struct {
	Path           string `json:"path"`           // Empty means git on PATH
	TimeoutSeconds int    `json:"timeoutSeconds"` // 0 disables the per-command deadline
}

// HistoryConfig holds history query defaults.
type HistoryConfig struct {
	PageSize           int    `json:"pageSize"`           // Default: 100
	AllBranches        bool   `json:"allBranches"`        // Default: true
	MergeDetectWorkers int    `json:"mergeDetectWorkers"` // Default: 4
	CountMode          string `json:"countMode"`          // "client" or "shell"
}

// FilterConfig holds file path filtering options.
type FilterConfig struct {
	Include []string `json:"include"`
	Exclude []string `json:"exclude"`
}

// CacheConfig selects the commit cache backend.
type CacheConfig struct {
	Backend  string      `json:"backend"` // "none", "bolt" or "redis"
	BoltPath string      `json:"boltPath"`
	Redis    RedisConfig `json:"redis"`
}

// RedisConfig holds the redis connection settings.
type RedisConfig struct {
	Addr       string `json:"addr"`
	Username   string `json:"username"`
	Password   string `json:"password"`
	Database   int    `json:"database"`
	TTLSeconds int    `json:"ttlSeconds"`
}

// LogConfig holds diagnostic output options.
type LogConfig struct {
	Level string `json:"level"` // none, error, info, trace
}

// DefaultConfig returns a configuration with default values.
func DefaultConfig() *Config {
	boltPath := ""
	if dir, err := os.UserCacheDir(); err == nil && dir != "" {
		boltPath = filepath.Join(dir, "githistory", "commits.db")
	}

	return &Config{
		Git: GitConfig{
			TimeoutSeconds: 60,
		},
		History: HistoryConfig{
			PageSize:           100,
			AllBranches:        true,
			MergeDetectWorkers: 4,
			CountMode:          "client",
		},
		Filters: FilterConfig{
			Include: []string{},
			Exclude: []string{},
		},
		Cache: CacheConfig{
			Backend:  "none",
			BoltPath: boltPath,
			Redis: RedisConfig{
				Addr: "localhost:6379",
			},
		},
		Log: LogConfig{
			Level: "error",
		},
	}
}

// Validate reports the first setting that cannot be used.
func (c *Config) Validate() error {
	if c.History.PageSize <= 0 {
		return fmt.Errorf("history.pageSize must be positive, got %d", c.History.PageSize)
	}
	if c.History.MergeDetectWorkers < 0 {
		return fmt.Errorf("history.mergeDetectWorkers must not be negative, got %d", c.History.MergeDetectWorkers)
	}
	switch c.History.CountMode {
	case "", "client", "shell":
	default:
		return fmt.Errorf("history.countMode must be client or shell, got %q", c.History.CountMode)
	}
	if c.Git.TimeoutSeconds < 0 {
		return fmt.Errorf("git.timeoutSeconds must not be negative, got %d", c.Git.TimeoutSeconds)
	}
	switch c.Cache.Backend {
	case "", "none", "redis":
	case "bolt":
		if c.Cache.BoltPath == "" {
			return fmt.Errorf("cache.boltPath is required for the bolt backend")
		}
	default:
		return fmt.Errorf("cache.backend must be none, bolt or redis, got %q", c.Cache.Backend)
	}
	return nil
}

// LoadConfig loads configuration from a file, merging with defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		// Try default locations
		candidates := []string{FileName}
		if home, err := os.UserHomeDir(); err == nil && home != "" {
			candidates = append(candidates, filepath.Join(home, FileName))
		} else if envHome := os.Getenv("HOME"); envHome != "" {
			candidates = append(candidates, filepath.Join(envHome, FileName))
		}
		for _, p := range candidates {
			if _, err := os.Stat(p); err == nil {
				path = p
				break
			}
		}
	}

	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	return cfg, nil
}

// SaveConfig saves configuration to a file.
func SaveConfig(cfg *Config, path string) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
