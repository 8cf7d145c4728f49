package llm

import "fmt"

// Provider names accepted by NewProvider.
const (
	ProviderGemini    = "gemini"
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
	ProviderMock      = "mock"
)

// Config selects and configures one provider.
type Config struct {
	Provider string
	APIKey   string

	// Model is a friendly alias (e.g. "gemini-flash") or a provider model
	// ID. Empty selects the provider default.
	Model string

	// BaseURL overrides the OpenAI endpoint for compatible APIs.
	BaseURL string
}

// defaultModels is the model used when Config.Model is empty.
var defaultModels = map[string]string{
	ProviderGemini:    "gemini-flash",
	ProviderOpenAI:    "gpt-4o-mini",
	ProviderAnthropic: "claude-haiku",
}

// Validate checks that the selected provider is known and has a key.
func (c Config) Validate() error {
	switch c.Provider {
	case ProviderGemini, ProviderOpenAI, ProviderAnthropic:
		if c.APIKey == "" {
			return fmt.Errorf("an API key is required for the %s provider", c.Provider)
		}
	case ProviderMock:
	default:
		return fmt.Errorf("unknown generation provider: %q", c.Provider)
	}
	return nil
}

// modelOrDefault returns the configured model or the provider default.
func (c Config) modelOrDefault() string {
	if c.Model != "" {
		return c.Model
	}
	return defaultModels[c.Provider]
}

// resolveModel maps a friendly model name to a provider model ID.
// Unknown names pass through so callers can use raw model IDs.
func resolveModel(name string, models map[string]string) string {
	if id, ok := models[name]; ok {
		return id
	}
	return name
}
