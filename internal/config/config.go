// Package config loads runtime settings from defaults, an optional YAML
// file, an optional .env file and the environment, in increasing order of
// precedence.
//
// Environment variables use the EDUCHAIN_ prefix with dots replaced by
// underscores (EDUCHAIN_LLM_PROVIDER, EDUCHAIN_PIPELINE_TIMEOUT). Provider
// API keys are also read from their conventional names: GOOGLE_API_KEY or
// GEMINI_API_KEY, OPENAI_API_KEY and ANTHROPIC_API_KEY.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/HendryAvila/educhain-mcp/internal/content"
	"github.com/HendryAvila/educhain-mcp/internal/llm"
	"github.com/HendryAvila/educhain-mcp/internal/pipeline"
)

const (
	// EnvPrefix prefixes every environment override.
	EnvPrefix = "EDUCHAIN"

	// FileName is the config file searched for in the working directory
	// when no explicit path is given.
	FileName = "educhain"
)

// Config holds all application configuration.
type Config struct {
	OutputDir    string `mapstructure:"output_dir" validate:"required"`
	DefaultTopic string `mapstructure:"default_topic" validate:"required"`

	LLM      LLMConfig      `mapstructure:"llm"`
	Pipeline PipelineConfig `mapstructure:"pipeline"`
	Server   ServerConfig   `mapstructure:"server"`
	Log      LogConfig      `mapstructure:"log"`
}

// LLMConfig selects the generation provider.
type LLMConfig struct {
	Provider    string  `mapstructure:"provider" validate:"required,oneof=gemini openai anthropic mock"`
	Model       string  `mapstructure:"model"`
	APIKey      string  `mapstructure:"api_key"`
	BaseURL     string  `mapstructure:"base_url" validate:"omitempty,url"`
	MaxTokens   int     `mapstructure:"max_tokens" validate:"gt=0"`
	Temperature float64 `mapstructure:"temperature" validate:"gte=0,lte=2"`
}

// PipelineConfig bounds every generation call.
type PipelineConfig struct {
	Timeout        time.Duration `mapstructure:"timeout" validate:"gt=0"`
	MaxAttempts    int           `mapstructure:"max_attempts" validate:"gte=1,lte=10"`
	RetryDelay     time.Duration `mapstructure:"retry_delay" validate:"gte=0"`
	RetryOnTimeout bool          `mapstructure:"retry_on_timeout"`
}

// ServerConfig controls the MCP server.
type ServerConfig struct {
	// Strict makes serve exit when cache files are missing.
	Strict bool `mapstructure:"strict"`

	// LiveGeneration routes cache misses and non-default topics through
	// the generator instead of serving fallback content.
	LiveGeneration bool `mapstructure:"live_generation"`
}

// LogConfig controls the zap logger.
type LogConfig struct {
	Level  string `mapstructure:"level" validate:"oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"oneof=console json"`

	// File, when set, also writes JSON logs to a rotated file.
	File string `mapstructure:"file"`
}

var validate = validator.New()

// setDefaults registers every default on v.
func setDefaults(v *viper.Viper) {
	v.SetDefault("output_dir", "outputs")
	v.SetDefault("default_topic", content.DefaultTopic)

	v.SetDefault("llm.provider", llm.ProviderGemini)
	v.SetDefault("llm.model", "")
	v.SetDefault("llm.api_key", "")
	v.SetDefault("llm.base_url", "")
	v.SetDefault("llm.max_tokens", 4096)
	v.SetDefault("llm.temperature", 0.2)

	def := pipeline.DefaultConfig()
	v.SetDefault("pipeline.timeout", def.Timeout)
	v.SetDefault("pipeline.max_attempts", def.MaxAttempts)
	v.SetDefault("pipeline.retry_delay", def.RetryDelay)
	v.SetDefault("pipeline.retry_on_timeout", false)

	v.SetDefault("server.strict", false)
	v.SetDefault("server.live_generation", false)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("log.file", "")
}

// providerKeyEnv lists the conventional API key variables per provider.
var providerKeyEnv = map[string][]string{
	llm.ProviderGemini:    {"GOOGLE_API_KEY", "GEMINI_API_KEY"},
	llm.ProviderOpenAI:    {"OPENAI_API_KEY"},
	llm.ProviderAnthropic: {"ANTHROPIC_API_KEY"},
}

// Load reads configuration. An empty path searches the working directory
// for educhain.yaml and tolerates its absence; an explicit path must exist.
func Load(path string) (*Config, error) {
	if err := loadDotEnv(".env"); err != nil {
		return nil, err
	}

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		}
	} else {
		v.SetConfigName(FileName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("reading config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}

	if cfg.LLM.APIKey == "" {
		for _, name := range providerKeyEnv[cfg.LLM.Provider] {
			if key := os.Getenv(name); key != "" {
				cfg.LLM.APIKey = key
				break
			}
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks field constraints. It does not require an API key;
// see ValidateGeneration.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// ValidateGeneration checks that the configured provider can actually be
// built, which for the hosted providers means an API key is present.
func (c *Config) ValidateGeneration() error {
	if err := c.LLMProvider().Validate(); err != nil {
		if c.LLM.APIKey == "" {
			if names, ok := providerKeyEnv[c.LLM.Provider]; ok {
				return fmt.Errorf("%w: set %s or %s_LLM_API_KEY", err, strings.Join(names, " or "), EnvPrefix)
			}
		}
		return err
	}
	return nil
}

// LLMProvider returns the provider selection for llm.NewProvider.
func (c *Config) LLMProvider() llm.Config {
	return llm.Config{
		Provider: c.LLM.Provider,
		APIKey:   c.LLM.APIKey,
		Model:    c.LLM.Model,
		BaseURL:  c.LLM.BaseURL,
	}
}

// PipelineSettings returns the pipeline bounds.
func (c *Config) PipelineSettings() pipeline.Config {
	return pipeline.Config{
		Timeout:        c.Pipeline.Timeout,
		MaxAttempts:    c.Pipeline.MaxAttempts,
		RetryDelay:     c.Pipeline.RetryDelay,
		RetryOnTimeout: c.Pipeline.RetryOnTimeout,
		MaxTokens:      c.LLM.MaxTokens,
		Temperature:    c.LLM.Temperature,
	}
}

// loadDotEnv exports the variables of a dotenv file into the process
// environment without overriding variables that are already set. A
// missing file is not an error.
func loadDotEnv(path string) error {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("env")
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	for _, key := range v.AllKeys() {
		name := strings.ToUpper(key)
		if _, set := os.LookupEnv(name); set {
			continue
		}
		if err := os.Setenv(name, v.GetString(key)); err != nil {
			return fmt.Errorf("exporting %s: %w", name, err)
		}
	}
	return nil
}
