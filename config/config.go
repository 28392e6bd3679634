package config

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"
)

// Config holds all configuration for the application
type Config struct {
	Server      ServerConfig
	Detection   DetectionConfig
	Files       FilesConfig
	Recognition RecognitionConfig
	Cache       CacheConfig
	RateLimit   RateLimitConfig
	Logging     LoggingConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// WeightsConfig weights the structural, keyword and completeness signals
type WeightsConfig struct {
	Structural   float64 `mapstructure:"structural"`
	Keyword      float64 `mapstructure:"keyword"`
	Completeness float64 `mapstructure:"completeness"`
}

// DetectionConfig holds the text routing thresholds
type DetectionConfig struct {
	MinKeywordMatches int           `mapstructure:"min_keyword_matches"`
	MinConfidence     float64       `mapstructure:"min_confidence"`
	BlockSaturation   int           `mapstructure:"block_saturation"`
	LengthSaturation  int           `mapstructure:"length_saturation"`
	KeywordSaturation int           `mapstructure:"keyword_saturation"`
	NutritionWeights  WeightsConfig `mapstructure:"nutrition_weights"`
	WorkoutWeights    WeightsConfig `mapstructure:"workout_weights"`
}

// FilesConfig holds spreadsheet and document upload configuration
type FilesConfig struct {
	MinRecoveredChars int   `mapstructure:"min_recovered_chars"`
	MinRunLength      int   `mapstructure:"min_run_length"`
	MaxUploadBytes    int64 `mapstructure:"max_upload_bytes"`
}

// RecognitionConfig holds the text recognizer and barcode decoder binaries
type RecognitionConfig struct {
	TesseractBinary string        `mapstructure:"tesseract_binary"`
	ZbarBinary      string        `mapstructure:"zbar_binary"`
	Language        string        `mapstructure:"language"`
	PSM             int           `mapstructure:"psm"`
	Timeout         time.Duration `mapstructure:"timeout"`
}

// CacheConfig holds cache-related configuration
type CacheConfig struct {
	Type string        `mapstructure:"type"` // only "memory" is supported
	TTL  time.Duration `mapstructure:"ttl"`
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	PerIP int `mapstructure:"per_ip"` // requests per minute
	Burst int `mapstructure:"burst"`
}

// LoggingConfig holds logger configuration
type LoggingConfig struct {
	Level string `mapstructure:"level"`
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	v := viper.New()

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/macrolens/")

	// MACROLENS_DETECTION_MIN_CONFIDENCE -> detection.min_confidence
	v.SetEnvPrefix("MACROLENS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	// Read config file (optional - will use env vars if file doesn't exist)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"*"})

	// Detection defaults
	v.SetDefault("detection.min_keyword_matches", 2)
	v.SetDefault("detection.min_confidence", 0.5)
	v.SetDefault("detection.block_saturation", 8)
	v.SetDefault("detection.length_saturation", 200)
	v.SetDefault("detection.keyword_saturation", 5)
	v.SetDefault("detection.nutrition_weights.structural", 0.3)
	v.SetDefault("detection.nutrition_weights.keyword", 0.4)
	v.SetDefault("detection.nutrition_weights.completeness", 0.3)
	v.SetDefault("detection.workout_weights.structural", 0.3)
	v.SetDefault("detection.workout_weights.keyword", 0.3)
	v.SetDefault("detection.workout_weights.completeness", 0.4)

	// File defaults
	v.SetDefault("files.min_recovered_chars", 50)
	v.SetDefault("files.min_run_length", 4)
	v.SetDefault("files.max_upload_bytes", 20<<20)

	// Recognition defaults
	v.SetDefault("recognition.tesseract_binary", "tesseract")
	v.SetDefault("recognition.zbar_binary", "zbarimg")
	v.SetDefault("recognition.language", "eng+deu")
	v.SetDefault("recognition.psm", 0)
	v.SetDefault("recognition.timeout", "15s")

	// Cache defaults
	v.SetDefault("cache.type", "memory")
	v.SetDefault("cache.ttl", "24h")

	// Rate limit defaults
	v.SetDefault("ratelimit.per_ip", 100)
	v.SetDefault("ratelimit.burst", 20)

	v.SetDefault("logging.level", "info")
}

// validate validates the configuration
func validate(config *Config) error {
	d := config.Detection
	if d.MinKeywordMatches < 1 {
		return fmt.Errorf("detection.min_keyword_matches must be at least 1, got: %d", d.MinKeywordMatches)
	}
	if d.MinConfidence < 0 || d.MinConfidence > 1 {
		return fmt.Errorf("detection.min_confidence must be within [0,1], got: %g", d.MinConfidence)
	}
	if err := validateWeights("nutrition_weights", d.NutritionWeights); err != nil {
		return err
	}
	if err := validateWeights("workout_weights", d.WorkoutWeights); err != nil {
		return err
	}

	if config.Files.MaxUploadBytes <= 0 {
		return fmt.Errorf("files.max_upload_bytes must be positive")
	}

	if config.Cache.Type != "memory" {
		return fmt.Errorf("cache type must be 'memory', got: %s", config.Cache.Type)
	}

	if config.RateLimit.PerIP <= 0 || config.RateLimit.Burst <= 0 {
		return fmt.Errorf("ratelimit.per_ip and ratelimit.burst must be positive")
	}

	if _, err := zapcore.ParseLevel(config.Logging.Level); err != nil {
		return fmt.Errorf("invalid logging level: %w", err)
	}

	return nil
}

func validateWeights(name string, w WeightsConfig) error {
	if w.Structural < 0 || w.Keyword < 0 || w.Completeness < 0 {
		return fmt.Errorf("detection.%s must not be negative", name)
	}
	if sum := w.Structural + w.Keyword + w.Completeness; math.Abs(sum-1) > 1e-6 {
		return fmt.Errorf("detection.%s must sum to 1, got: %g", name, sum)
	}
	return nil
}
