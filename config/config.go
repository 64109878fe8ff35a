// Package config reads the service configuration from the environment and an optional .env file.
package config

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/CODEX19/FarmLink-Africa/gemini"
	"github.com/CODEX19/FarmLink-Africa/queue"
	"github.com/CODEX19/FarmLink-Africa/retry"
	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"go.uber.org/zap/zapcore"
)

var (
	ErrParsingConfig = errors.New("failed to parse environment variables into config")
	ErrInvalidConfig = errors.New("invalid configuration")
)

type Config struct {
	Port int `env:"PORT" envDefault:"8080"`

	APIKey        string `env:"API_KEY"`
	GeminiBaseURL string `env:"GEMINI_BASE_URL"`
	ProModel      string `env:"GEMINI_PRO_MODEL"`
	FlashModel    string `env:"GEMINI_FLASH_MODEL"`
	LiteModel     string `env:"GEMINI_LITE_MODEL"`
	MapsModel     string `env:"GEMINI_MAPS_MODEL"`
	SpeechModel   string `env:"GEMINI_SPEECH_MODEL"`

	Retries        int           `env:"AI_RETRIES" envDefault:"3"`
	RetryBaseDelay time.Duration `env:"AI_RETRY_BASE_DELAY" envDefault:"2s"`
	RetryMaxJitter time.Duration `env:"AI_RETRY_MAX_JITTER" envDefault:"1s"`

	// Without a project the service runs on in-memory stores and without async dispatch.
	ProjectID       string `env:"GOOGLE_CLOUD_PROJECT"`
	LocationID      string `env:"LOCATION_ID"`
	QueueName       string `env:"QUEUE_NAME" envDefault:"default"`
	AudioBucket     string `env:"AUDIO_BUCKET" envDefault:"farmlink-audio"`
	BigQueryDataset string `env:"BIGQUERY_DATASET"`
	BigQueryTable   string `env:"BIGQUERY_TABLE" envDefault:"AdviceSummary"`

	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

var dotEnvLoaded sync.Once

// Load parses the environment, after loading .env from the working directory if present.
func Load() (Config, error) {
	dotEnvLoaded.Do(func() {
		// the .env file is optional
		_ = godotenv.Load()
	})

	var cfg Config
	err := env.Parse(&cfg)
	if err != nil {
		return Config{}, errors.Join(ErrParsingConfig, err)
	}

	err = cfg.Validate()
	if err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (cfg Config) Validate() error {
	if cfg.Port <= 0 || cfg.Port > 65535 {
		return fmt.Errorf("%w: port %d out of range", ErrInvalidConfig, cfg.Port)
	}
	if cfg.Retries < 0 || cfg.Retries > retry.MaxRetries {
		return fmt.Errorf("%w: retry budget %d not in [0, %d]", ErrInvalidConfig, cfg.Retries, retry.MaxRetries)
	}
	if cfg.RetryBaseDelay <= 0 {
		return fmt.Errorf("%w: retry base delay must be positive", ErrInvalidConfig)
	}
	if cfg.RetryMaxJitter < 0 {
		return fmt.Errorf("%w: negative retry jitter", ErrInvalidConfig)
	}
	if _, err := zapcore.ParseLevel(cfg.LogLevel); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, err)
	}
	if cfg.ProjectID != "" && cfg.LocationID == "" {
		return fmt.Errorf("%w: LOCATION_ID is required with GOOGLE_CLOUD_PROJECT", ErrInvalidConfig)
	}
	return nil
}

func (cfg Config) HasCloudProject() bool {
	return cfg.ProjectID != ""
}

// Models overrides the default Gemini models with the configured ones.
func (cfg Config) Models() gemini.Models {
	models := gemini.DefaultModels()
	override(&models.Pro, cfg.ProModel)
	override(&models.Flash, cfg.FlashModel)
	override(&models.Lite, cfg.LiteModel)
	override(&models.Maps, cfg.MapsModel)
	override(&models.Speech, cfg.SpeechModel)
	return models
}

func override(model *string, configured string) {
	if configured != "" {
		*model = configured
	}
}

func (cfg Config) RetryPolicy() retry.Policy {
	policy := retry.DefaultPolicy()
	policy.Retries = cfg.Retries
	policy.BaseDelay = cfg.RetryBaseDelay
	policy.MaxJitter = cfg.RetryMaxJitter
	policy.Classify = gemini.Classify
	return policy
}

func (cfg Config) QueueConfig() queue.Config {
	return queue.Config{
		ProjectID:  cfg.ProjectID,
		LocationID: cfg.LocationID,
		QueueName:  cfg.QueueName,
	}
}
