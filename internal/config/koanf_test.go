// Marquee - Item-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/tomtom215/marquee/internal/catalog"
)

// TestDefaultConfig verifies that defaultConfig() returns proper defaults
func TestDefaultConfig(t *testing.T) {
	cfg := defaultConfig()

	// Server defaults
	if cfg.Server.Port != 8501 {
		t.Errorf("Server.Port = %d, want 8501", cfg.Server.Port)
	}
	if cfg.Server.Host != "0.0.0.0" {
		t.Errorf("Server.Host = %q, want 0.0.0.0", cfg.Server.Host)
	}

	// Data defaults
	if cfg.Data.MoviesPath != "data/movies.dat" {
		t.Errorf("Data.MoviesPath = %q, want data/movies.dat", cfg.Data.MoviesPath)
	}
	if cfg.Data.ImageBaseURL != catalog.DefaultImageBaseURL {
		t.Errorf("Data.ImageBaseURL = %q, want %q", cfg.Data.ImageBaseURL, catalog.DefaultImageBaseURL)
	}

	// Recommend defaults
	if cfg.Recommend.DefaultTopN != 10 {
		t.Errorf("Recommend.DefaultTopN = %d, want 10", cfg.Recommend.DefaultTopN)
	}
	if cfg.Recommend.MinSupport != 50 {
		t.Errorf("Recommend.MinSupport = %d, want 50", cfg.Recommend.MinSupport)
	}
	if cfg.Recommend.MinAverage != 3.5 {
		t.Errorf("Recommend.MinAverage = %v, want 3.5", cfg.Recommend.MinAverage)
	}

	// Cache defaults
	if cfg.Cache.Backend != "memory" {
		t.Errorf("Cache.Backend = %q, want memory", cfg.Cache.Backend)
	}
	if cfg.Cache.TTL != 5*time.Minute {
		t.Errorf("Cache.TTL = %v, want 5m", cfg.Cache.TTL)
	}

	// Security defaults
	if cfg.Security.RateLimitReqs != 100 {
		t.Errorf("Security.RateLimitReqs = %d, want 100", cfg.Security.RateLimitReqs)
	}
	if len(cfg.Security.CORSOrigins) != 1 || cfg.Security.CORSOrigins[0] != "*" {
		t.Errorf("Security.CORSOrigins = %v, want [*]", cfg.Security.CORSOrigins)
	}

	// Logging defaults
	if cfg.Logging.Level != "info" {
		t.Errorf("Logging.Level = %q, want info", cfg.Logging.Level)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("defaultConfig().Validate() error = %v", err)
	}
}

// TestEnvTransformFunc verifies environment variable name transformations
func TestEnvTransformFunc(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		// Server
		{"HTTP_PORT", "server.port"},
		{"HTTP_HOST", "server.host"},
		{"HTTP_TIMEOUT", "server.timeout"},

		// Data
		{"MOVIES_PATH", "data.movies_path"},
		{"RATINGS_PATH", "data.ratings_path"},
		{"SIMILARITY_PATH", "data.similarity_path"},
		{"IMAGE_BASE_URL", "data.image_base_url"},

		// Recommend
		{"RECOMMEND_MIN_SUPPORT", "recommend.min_support"},
		{"RECOMMEND_BREAKER_FAULTS", "recommend.breaker_faults"},

		// Cache
		{"CACHE_BACKEND", "cache.backend"},
		{"REDIS_ADDR", "cache.redis_addr"},

		// Security
		{"CORS_ORIGINS", "security.cors_origins"},
		{"RATE_LIMIT_REQUESTS", "security.rate_limit_reqs"},
		{"DISABLE_RATE_LIMIT", "security.rate_limit_disabled"},

		// Logging
		{"LOG_LEVEL", "logging.level"},
		{"log_format", "logging.format"},

		// Unknown (should return empty)
		{"RANDOM_VAR", ""},
		{"PATH", ""},
		{"HOME", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result := envTransformFunc(tt.input)
			if result != tt.expected {
				t.Errorf("envTransformFunc(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

// TestFindConfigFile verifies config file discovery
func TestFindConfigFile(t *testing.T) {
	tmpDir := t.TempDir()
	t.Chdir(tmpDir)

	t.Run("no config file exists", func(t *testing.T) {
		t.Setenv(ConfigPathEnvVar, "")
		if result := findConfigFile(); result != "" {
			t.Errorf("findConfigFile() = %q, want empty string", result)
		}
	})

	t.Run("config.yaml exists", func(t *testing.T) {
		configPath := filepath.Join(tmpDir, "config.yaml")
		if err := os.WriteFile(configPath, []byte("server:\n  port: 9000\n"), 0o644); err != nil {
			t.Fatalf("Failed to create config file: %v", err)
		}
		defer os.Remove(configPath)

		t.Setenv(ConfigPathEnvVar, "")
		if result := findConfigFile(); result != "config.yaml" {
			t.Errorf("findConfigFile() = %q, want config.yaml", result)
		}
	})

	t.Run("CONFIG_PATH env var takes precedence", func(t *testing.T) {
		customPath := filepath.Join(tmpDir, "custom_config.yaml")
		if err := os.WriteFile(customPath, []byte("server:\n  port: 9000\n"), 0o644); err != nil {
			t.Fatalf("Failed to create custom config file: %v", err)
		}
		defer os.Remove(customPath)

		t.Setenv(ConfigPathEnvVar, customPath)
		if result := findConfigFile(); result != customPath {
			t.Errorf("findConfigFile() = %q, want %q", result, customPath)
		}
	})

	t.Run("CONFIG_PATH env var with non-existent file", func(t *testing.T) {
		t.Setenv(ConfigPathEnvVar, "/non/existent/config.yaml")
		if result := findConfigFile(); result != "" {
			t.Errorf("findConfigFile() = %q, want empty string", result)
		}
	})
}

// TestLoadWithKoanfEnvVars tests loading configuration from environment variables
func TestLoadWithKoanfEnvVars(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv(ConfigPathEnvVar, "")
	t.Setenv("HTTP_PORT", "9000")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("MOVIES_PATH", "/srv/movies.dat")
	t.Setenv("RECOMMEND_MIN_AVERAGE", "4.0")
	t.Setenv("CACHE_TTL", "90s")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example")

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}

	if cfg.Server.Port != 9000 {
		t.Errorf("Server.Port = %d, want 9000", cfg.Server.Port)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want debug", cfg.Logging.Level)
	}
	if cfg.Data.MoviesPath != "/srv/movies.dat" {
		t.Errorf("Data.MoviesPath = %q, want /srv/movies.dat", cfg.Data.MoviesPath)
	}
	if cfg.Recommend.MinAverage != 4.0 {
		t.Errorf("Recommend.MinAverage = %v, want 4.0", cfg.Recommend.MinAverage)
	}
	if cfg.Cache.TTL != 90*time.Second {
		t.Errorf("Cache.TTL = %v, want 90s", cfg.Cache.TTL)
	}
	wantOrigins := []string{"https://a.example", "https://b.example"}
	if strings.Join(cfg.Security.CORSOrigins, "|") != strings.Join(wantOrigins, "|") {
		t.Errorf("Security.CORSOrigins = %v, want %v", cfg.Security.CORSOrigins, wantOrigins)
	}

	// Verify defaults are still applied for unset values
	if cfg.Server.Host != "0.0.0.0" {
		t.Errorf("Server.Host = %q, want 0.0.0.0 (default)", cfg.Server.Host)
	}
	if cfg.Data.RatingsPath != "data/ratings.csv" {
		t.Errorf("Data.RatingsPath = %q, want data/ratings.csv (default)", cfg.Data.RatingsPath)
	}
}

// TestLoadWithKoanfConfigFile tests loading configuration from a YAML file
func TestLoadWithKoanfConfigFile(t *testing.T) {
	tmpDir := t.TempDir()
	configContent := `
server:
  port: 8888
  host: "127.0.0.1"

data:
  similarity_path: "/data/top30.csv"

recommend:
  max_top_n: 50
  breaker_enabled: false

logging:
  level: "warn"
`
	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte(configContent), 0o644); err != nil {
		t.Fatalf("Failed to create config file: %v", err)
	}
	t.Setenv(ConfigPathEnvVar, configPath)

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}

	if cfg.Server.Port != 8888 {
		t.Errorf("Server.Port = %d, want 8888", cfg.Server.Port)
	}
	if cfg.Server.Host != "127.0.0.1" {
		t.Errorf("Server.Host = %q, want 127.0.0.1", cfg.Server.Host)
	}
	if cfg.Data.SimilarityPath != "/data/top30.csv" {
		t.Errorf("Data.SimilarityPath = %q, want /data/top30.csv", cfg.Data.SimilarityPath)
	}
	if cfg.Recommend.MaxTopN != 50 {
		t.Errorf("Recommend.MaxTopN = %d, want 50", cfg.Recommend.MaxTopN)
	}
	if cfg.Recommend.BreakerEnabled {
		t.Error("Recommend.BreakerEnabled = true, want false (from file)")
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("Logging.Level = %q, want warn", cfg.Logging.Level)
	}

	// Verify defaults are still applied for unset values
	if cfg.Data.MoviesPath != "data/movies.dat" {
		t.Errorf("Data.MoviesPath = %q, want data/movies.dat (default)", cfg.Data.MoviesPath)
	}
}

// TestLoadWithKoanfEnvOverridesFile tests that env vars override config file
func TestLoadWithKoanfEnvOverridesFile(t *testing.T) {
	tmpDir := t.TempDir()
	configContent := `
server:
  port: 8888

cache:
  backend: "memory"
  max_entries: 500

logging:
  level: "warn"
`
	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte(configContent), 0o644); err != nil {
		t.Fatalf("Failed to create config file: %v", err)
	}
	t.Setenv(ConfigPathEnvVar, configPath)
	t.Setenv("HTTP_PORT", "9999")
	t.Setenv("LOG_LEVEL", "error")
	t.Setenv("CACHE_BACKEND", "redis")
	t.Setenv("REDIS_ADDR", "localhost:6379")

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}

	// Verify values from config file (not overridden by env)
	if cfg.Cache.MaxEntries != 500 {
		t.Errorf("Cache.MaxEntries = %d, want 500 (from file)", cfg.Cache.MaxEntries)
	}

	// Verify env vars override config file
	if cfg.Server.Port != 9999 {
		t.Errorf("Server.Port = %d, want 9999 (env override)", cfg.Server.Port)
	}
	if cfg.Logging.Level != "error" {
		t.Errorf("Logging.Level = %q, want error (env override)", cfg.Logging.Level)
	}
	if cfg.Cache.Backend != "redis" {
		t.Errorf("Cache.Backend = %q, want redis (env override)", cfg.Cache.Backend)
	}
	if cfg.Cache.RedisAddr != "localhost:6379" {
		t.Errorf("Cache.RedisAddr = %q, want localhost:6379", cfg.Cache.RedisAddr)
	}
}

// TestLoadWithKoanfValidation tests that invalid values are rejected at load time
func TestLoadWithKoanfValidation(t *testing.T) {
	tests := []struct {
		name    string
		envVars map[string]string
		errMsg  string
	}{
		{
			name:    "port out of range",
			envVars: map[string]string{"HTTP_PORT": "70000"},
			errMsg:  "HTTP_PORT",
		},
		{
			name:    "invalid log level",
			envVars: map[string]string{"LOG_LEVEL": "verbose"},
			errMsg:  "LOG_LEVEL",
		},
		{
			name:    "redis without address",
			envVars: map[string]string{"CACHE_BACKEND": "redis"},
			errMsg:  "REDIS_ADDR",
		},
		{
			name:    "max top n below default",
			envVars: map[string]string{"RECOMMEND_MAX_TOP_N": "5"},
			errMsg:  "max_top_n",
		},
		{
			name:    "relative image base url",
			envVars: map[string]string{"IMAGE_BASE_URL": "ftp://images.example"},
			errMsg:  "IMAGE_BASE_URL",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Chdir(t.TempDir())
			t.Setenv(ConfigPathEnvVar, "")
			for k, v := range tt.envVars {
				t.Setenv(k, v)
			}

			_, err := LoadWithKoanf()
			if err == nil {
				t.Fatal("LoadWithKoanf() error = nil, want validation error")
			}
			if !strings.Contains(err.Error(), tt.errMsg) {
				t.Errorf("error = %q, want it to mention %s", err.Error(), tt.errMsg)
			}
		})
	}
}

func TestEngineConfig(t *testing.T) {
	cfg := defaultConfig()
	cfg.Recommend.BreakerFaults = 3
	cfg.Cache.Enabled = false

	ec := cfg.EngineConfig()
	if ec.Breaker.ConsecutiveFaults != 3 {
		t.Errorf("Breaker.ConsecutiveFaults = %d, want 3", ec.Breaker.ConsecutiveFaults)
	}
	if ec.Cache.Enabled {
		t.Error("Cache.Enabled = true, want false")
	}
	if ec.Limits.MaxTopN != 100 {
		t.Errorf("Limits.MaxTopN = %d, want 100", ec.Limits.MaxTopN)
	}
	if err := ec.Validate(); err != nil {
		t.Errorf("EngineConfig().Validate() error = %v", err)
	}
}

func TestCacheStoreConfig(t *testing.T) {
	cfg := defaultConfig()
	cfg.Cache.Backend = "redis"
	cfg.Cache.RedisAddr = "cache:6379"

	sc := cfg.CacheStoreConfig()
	if sc.Backend != "redis" || sc.Redis.Addr != "cache:6379" || sc.Redis.KeyPrefix != "marquee:" {
		t.Errorf("CacheStoreConfig() = %+v", sc)
	}
}
