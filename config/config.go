package config

import (
	"os"
	"time"

	"github.com/HexmosTech/oairequest/endpoint"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// Config holds credentials and defaults loaded from the environment, an
// optional .env file and an optional config file.
type Config struct {
	APIKey         string        `mapstructure:"api_key"`
	Organization   string        `mapstructure:"organization"`
	BaseURL        string        `mapstructure:"base_url" validate:"required,url"`
	TimeoutSeconds int64         `mapstructure:"timeout" validate:"gt=0"`
	LogLevel       string        `mapstructure:"log_level" validate:"oneof=debug info warn warning error"`
	Timeout        time.Duration `mapstructure:"-"`
}

var validate = validator.New()

// Load reads the configuration. configFile may be empty, in which case
// OAIREQ_CONFIG is consulted.
func Load(configFile string) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("base_url", endpoint.DefaultBaseURL)
	v.SetDefault("timeout", 60)
	v.SetDefault("log_level", "warn")
	v.SetDefault("api_key", "")
	v.SetDefault("organization", "")

	bindings := map[string]string{
		"api_key":      "OPENAI_API_KEY",
		"organization": "OPENAI_ORGANIZATION",
		"base_url":     "OPENAI_BASE_URL",
		"timeout":      "OAIREQ_TIMEOUT",
		"log_level":    "OAIREQ_LOG_LEVEL",
	}
	for key, env := range bindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, errors.Wrapf(err, "binding %s", env)
		}
	}

	if configFile == "" {
		configFile = os.Getenv("OAIREQ_CONFIG")
	}
	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "reading config file %s", configFile)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "unmarshal config")
	}
	if err := validate.Struct(&cfg); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}
	cfg.Timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
	return &cfg, nil
}
