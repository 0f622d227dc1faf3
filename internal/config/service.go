package config

import (
	"errors"
	"time"

	"github.com/spf13/viper"

	"github.com/kubux/ai-image-studio/internal/platform"
)

// ServiceConfig carries everything needed to reach the generation service
// and tune the retry pipeline. Values come from an optional config.yaml next
// to the binary, overridden by environment variables (TOGETHER_API_KEY etc).
type ServiceConfig struct {
	APIKey         string        `mapstructure:"api_key"`
	BaseURL        string        `mapstructure:"base_url"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
	MaxAttempts    int           `mapstructure:"max_attempts"`
	RetryBaseDelay time.Duration `mapstructure:"retry_base_delay"`
	RetryMaxDelay  time.Duration `mapstructure:"retry_max_delay"`
	JobTimeout     time.Duration `mapstructure:"job_timeout"`
}

// ErrMissingAPIKey means no API key was found in config or environment; the
// app starts with generation disabled.
var ErrMissingAPIKey = errors.New("no API key configured (set TOGETHER_API_KEY)")

// LoadServiceConfig reads the service configuration. A missing config file
// is fine; a missing API key is reported via ErrMissingAPIKey together with
// otherwise usable defaults.
func LoadServiceConfig() (*ServiceConfig, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if dir, err := platform.GetConfigDir(AppName); err == nil {
		v.AddConfigPath(dir)
	}

	v.SetDefault("base_url", "")
	v.SetDefault("request_timeout", 2*time.Minute)
	v.SetDefault("max_attempts", 3)
	v.SetDefault("retry_base_delay", 2*time.Second)
	v.SetDefault("retry_max_delay", 30*time.Second)
	v.SetDefault("job_timeout", 5*time.Minute)

	v.SetEnvPrefix("together")
	v.BindEnv("api_key") // TOGETHER_API_KEY

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	var cfg ServiceConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if cfg.APIKey == "" {
		return &cfg, ErrMissingAPIKey
	}
	return &cfg, nil
}
