package llm

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// NewProvider builds the configured provider wrapped with call logging.
// Retry and timeout policy belong to the caller.
func NewProvider(ctx context.Context, cfg Config, log *zap.Logger) (Provider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var (
		base Provider
		err  error
	)
	model := cfg.modelOrDefault()
	switch cfg.Provider {
	case ProviderGemini:
		base, err = NewGeminiProvider(ctx, cfg.APIKey, model)
	case ProviderOpenAI:
		base, err = NewOpenAIProvider(cfg.APIKey, model, cfg.BaseURL)
	case ProviderAnthropic:
		base, err = NewAnthropicProvider(cfg.APIKey, model)
	case ProviderMock:
		base = NewMockProvider()
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	return WithLogging(base, log), nil
}
