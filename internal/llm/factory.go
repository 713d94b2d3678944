package llm

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/abhisek/studyos/internal/store"
)

// NewProvider builds the configured provider and wraps it as
// caller → timeout → retry → logging → vendor adapter.
func NewProvider(ctx context.Context, cfg Config, recorder store.LLMEventRecorder, logger *slog.Logger) (Provider, error) {
	var (
		base Provider
		err  error
	)

	switch cfg.Provider {
	case ProviderGemini:
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case ProviderOpenAI:
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case ProviderAnthropic:
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case ProviderOpenRouter:
		base, err = NewOpenRouterProvider(cfg.OpenRouter)
	case ProviderMock:
		return NewMockProvider(), nil
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	p := WithLogging(base, cfg.Provider, recorder, logger)
	p = WithRetry(p, cfg.Retry, logger)
	return WithTimeout(p, cfg.Timeout), nil
}

// NewProviderFromEnv resolves configuration from the environment and
// builds the provider stack. Callers that must keep working without a key
// should fall back to NewUnavailableProvider on error.
func NewProviderFromEnv(ctx context.Context, recorder store.LLMEventRecorder, logger *slog.Logger) (Provider, error) {
	cfg, err := ResolveConfig()
	if err != nil {
		return nil, err
	}
	return NewProvider(ctx, cfg, recorder, logger)
}

// UnavailableProvider fails every call. It stands in for a provider that
// could not be configured so consumers degrade instead of crashing.
type UnavailableProvider struct {
	reason error
}

func NewUnavailableProvider(reason error) *UnavailableProvider {
	return &UnavailableProvider{reason: reason}
}

func (u *UnavailableProvider) Generate(context.Context, Request) (*Response, error) {
	return nil, &ErrProviderUnavailable{Err: u.reason}
}

func (u *UnavailableProvider) ModelID() string {
	return "unavailable"
}
