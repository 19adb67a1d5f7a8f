package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/gish-shell/gish/internal/prompt"
)

// Config holds the user-tunable settings.
type Config struct {
	Prompt  PromptConfig  `mapstructure:"prompt"`
	History HistoryConfig `mapstructure:"history"`
	Log     LogConfig     `mapstructure:"log"`
}

// PromptConfig controls prompt rendering.
type PromptConfig struct {
	// Template is the prompt template. The PS1 shell variable, when set,
	// takes precedence at render time.
	Template string `mapstructure:"template"`
}

// HistoryConfig controls command history.
type HistoryConfig struct {
	// Limit caps how many entries are loaded into the line editor and
	// shown by `gish history list` by default.
	Limit int `mapstructure:"limit"`
}

// LogConfig controls file logging.
type LogConfig struct {
	Level string `mapstructure:"level"`
}

// Load reads configuration from the given file, or from
// ConfigDir()/config.yaml when path is empty. GISH_* environment variables
// override file values (GISH_PROMPT_TEMPLATE, GISH_LOG_LEVEL, ...). A
// missing config file is not an error; defaults apply.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetDefault("prompt.template", prompt.DefaultTemplate)
	v.SetDefault("history.limit", 1000)
	v.SetDefault("log.level", "info")

	v.SetEnvPrefix("GISH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(ConfigDir())
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if cfg.History.Limit <= 0 {
		cfg.History.Limit = 1000
	}

	return &cfg, nil
}
