package config

import (
	"os"
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	vars := []string{
		"MACROLENS_SERVER_PORT",
		"MACROLENS_SERVER_ENVIRONMENT",
		"MACROLENS_DETECTION_MIN_KEYWORD_MATCHES",
		"MACROLENS_DETECTION_MIN_CONFIDENCE",
		"MACROLENS_DETECTION_WORKOUT_WEIGHTS_KEYWORD",
		"MACROLENS_CACHE_TYPE",
		"MACROLENS_CACHE_TTL",
		"MACROLENS_RATELIMIT_PER_IP",
		"MACROLENS_RECOGNITION_TIMEOUT",
		"MACROLENS_LOGGING_LEVEL",
	}
	cleanupEnv := func() {
		for _, name := range vars {
			os.Unsetenv(name)
		}
	}

	t.Run("loads with defaults when no env vars set", func(t *testing.T) {
		cleanupEnv()
		defer cleanupEnv()

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v, want nil", err)
		}

		if cfg.Server.Port != "8080" {
			t.Errorf("Server.Port = %s, want 8080", cfg.Server.Port)
		}
		if cfg.Detection.MinKeywordMatches != 2 {
			t.Errorf("Detection.MinKeywordMatches = %d, want 2", cfg.Detection.MinKeywordMatches)
		}
		if cfg.Detection.MinConfidence != 0.5 {
			t.Errorf("Detection.MinConfidence = %g, want 0.5", cfg.Detection.MinConfidence)
		}
		if cfg.Detection.NutritionWeights.Keyword != 0.4 {
			t.Errorf("Detection.NutritionWeights.Keyword = %g, want 0.4", cfg.Detection.NutritionWeights.Keyword)
		}
		if cfg.Detection.WorkoutWeights.Completeness != 0.4 {
			t.Errorf("Detection.WorkoutWeights.Completeness = %g, want 0.4", cfg.Detection.WorkoutWeights.Completeness)
		}
		if cfg.Files.MinRecoveredChars != 50 {
			t.Errorf("Files.MinRecoveredChars = %d, want 50", cfg.Files.MinRecoveredChars)
		}
		if cfg.Recognition.Timeout != 15*time.Second {
			t.Errorf("Recognition.Timeout = %v, want 15s", cfg.Recognition.Timeout)
		}
		if cfg.Cache.TTL != 24*time.Hour {
			t.Errorf("Cache.TTL = %v, want 24h", cfg.Cache.TTL)
		}
		if cfg.RateLimit.PerIP != 100 {
			t.Errorf("RateLimit.PerIP = %d, want 100", cfg.RateLimit.PerIP)
		}
		if cfg.Logging.Level != "info" {
			t.Errorf("Logging.Level = %s, want info", cfg.Logging.Level)
		}
	})

	t.Run("loads custom values from environment variables", func(t *testing.T) {
		cleanupEnv()
		os.Setenv("MACROLENS_SERVER_PORT", "9090")
		os.Setenv("MACROLENS_SERVER_ENVIRONMENT", "production")
		os.Setenv("MACROLENS_DETECTION_MIN_KEYWORD_MATCHES", "3")
		os.Setenv("MACROLENS_DETECTION_MIN_CONFIDENCE", "0.65")
		os.Setenv("MACROLENS_CACHE_TTL", "1h")
		os.Setenv("MACROLENS_RATELIMIT_PER_IP", "200")
		os.Setenv("MACROLENS_RECOGNITION_TIMEOUT", "5s")
		os.Setenv("MACROLENS_LOGGING_LEVEL", "debug")
		defer cleanupEnv()

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v, want nil", err)
		}

		if cfg.Server.Port != "9090" {
			t.Errorf("Server.Port = %s, want 9090", cfg.Server.Port)
		}
		if cfg.Server.Environment != "production" {
			t.Errorf("Server.Environment = %s, want production", cfg.Server.Environment)
		}
		if cfg.Detection.MinKeywordMatches != 3 {
			t.Errorf("Detection.MinKeywordMatches = %d, want 3", cfg.Detection.MinKeywordMatches)
		}
		if cfg.Detection.MinConfidence != 0.65 {
			t.Errorf("Detection.MinConfidence = %g, want 0.65", cfg.Detection.MinConfidence)
		}
		if cfg.Cache.TTL != time.Hour {
			t.Errorf("Cache.TTL = %v, want 1h", cfg.Cache.TTL)
		}
		if cfg.RateLimit.PerIP != 200 {
			t.Errorf("RateLimit.PerIP = %d, want 200", cfg.RateLimit.PerIP)
		}
		if cfg.Recognition.Timeout != 5*time.Second {
			t.Errorf("Recognition.Timeout = %v, want 5s", cfg.Recognition.Timeout)
		}
		if cfg.Logging.Level != "debug" {
			t.Errorf("Logging.Level = %s, want debug", cfg.Logging.Level)
		}
	})

	t.Run("fails validation when weights do not sum to one", func(t *testing.T) {
		cleanupEnv()
		os.Setenv("MACROLENS_DETECTION_WORKOUT_WEIGHTS_KEYWORD", "0.9")
		defer cleanupEnv()

		_, err := Load()
		if err == nil {
			t.Error("Load() error = nil, want error for unbalanced weights")
		}
	})

	t.Run("fails validation for invalid cache type", func(t *testing.T) {
		cleanupEnv()
		os.Setenv("MACROLENS_CACHE_TYPE", "redis")
		defer cleanupEnv()

		_, err := Load()
		if err == nil {
			t.Error("Load() error = nil, want error for unsupported cache type")
		}
	})
}

func validConfig() *Config {
	return &Config{
		Detection: DetectionConfig{
			MinKeywordMatches: 2,
			MinConfidence:     0.5,
			NutritionWeights:  WeightsConfig{Structural: 0.3, Keyword: 0.4, Completeness: 0.3},
			WorkoutWeights:    WeightsConfig{Structural: 0.3, Keyword: 0.3, Completeness: 0.4},
		},
		Files:     FilesConfig{MaxUploadBytes: 1 << 20},
		Cache:     CacheConfig{Type: "memory"},
		RateLimit: RateLimitConfig{PerIP: 10, Burst: 5},
		Logging:   LoggingConfig{Level: "info"},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{"valid", func(c *Config) {}, false},
		{"zero keyword matches", func(c *Config) { c.Detection.MinKeywordMatches = 0 }, true},
		{"confidence above one", func(c *Config) { c.Detection.MinConfidence = 1.5 }, true},
		{"negative weight", func(c *Config) { c.Detection.NutritionWeights.Structural = -0.3 }, true},
		{"zero upload limit", func(c *Config) { c.Files.MaxUploadBytes = 0 }, true},
		{"redis cache", func(c *Config) { c.Cache.Type = "redis" }, true},
		{"zero burst", func(c *Config) { c.RateLimit.Burst = 0 }, true},
		{"bad log level", func(c *Config) { c.Logging.Level = "loud" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := validate(cfg)
			if (err != nil) != tt.wantErr {
				t.Errorf("validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
