package llm

import (
	"fmt"
	"os"
	"strings"
	"time"
)

const envPrefix = "STUDYOS_"

// Provider names accepted in Config.Provider.
const (
	ProviderGemini     = "gemini"
	ProviderOpenAI     = "openai"
	ProviderAnthropic  = "anthropic"
	ProviderOpenRouter = "openrouter"
	ProviderMock       = "mock"
)

// Config holds provider selection and per-provider settings.
type Config struct {
	// Provider is one of gemini, openai, anthropic, openrouter or mock.
	Provider string

	Gemini     GeminiConfig
	OpenAI     OpenAIConfig
	Anthropic  AnthropicConfig
	OpenRouter OpenRouterConfig
	Retry      RetryConfig

	// Timeout bounds one Generate call including retries.
	Timeout time.Duration
}

type GeminiConfig struct {
	APIKey string
	Model  string
}

type OpenAIConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

type AnthropicConfig struct {
	APIKey string
	Model  string
}

type OpenRouterConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

// RetryConfig controls backoff for transient failures.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// DefaultConfig targets Gemini 2.5 Flash, the model the study assistant
// persona was tuned on.
func DefaultConfig() Config {
	return Config{
		Provider: ProviderGemini,
		Gemini: GeminiConfig{
			Model: "gemini-flash",
		},
		OpenAI: OpenAIConfig{
			Model: "gpt-4o-mini",
		},
		Anthropic: AnthropicConfig{
			Model: "claude-haiku",
		},
		OpenRouter: OpenRouterConfig{
			Model: "google/gemini-2.5-flash",
		},
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: 500 * time.Millisecond,
			MaxWait:     8 * time.Second,
			Multiplier:  2.0,
		},
		Timeout: 60 * time.Second,
	}
}

func env(name string) string {
	return os.Getenv(envPrefix + name)
}

// ConfigFromEnv reads STUDYOS_* variables on top of DefaultConfig.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()

	if p := env("LLM_PROVIDER"); p != "" {
		cfg.Provider = p
	}
	if d, err := time.ParseDuration(env("LLM_TIMEOUT")); err == nil && d > 0 {
		cfg.Timeout = d
	}

	setIf(&cfg.Gemini.APIKey, env("GEMINI_API_KEY"))
	setIf(&cfg.Gemini.Model, env("GEMINI_MODEL"))

	setIf(&cfg.OpenAI.APIKey, env("OPENAI_API_KEY"))
	setIf(&cfg.OpenAI.Model, env("OPENAI_MODEL"))
	setIf(&cfg.OpenAI.BaseURL, env("OPENAI_BASE_URL"))

	setIf(&cfg.Anthropic.APIKey, env("ANTHROPIC_API_KEY"))
	setIf(&cfg.Anthropic.Model, env("ANTHROPIC_MODEL"))

	setIf(&cfg.OpenRouter.APIKey, env("OPENROUTER_API_KEY"))
	setIf(&cfg.OpenRouter.Model, env("OPENROUTER_MODEL"))
	setIf(&cfg.OpenRouter.BaseURL, env("OPENROUTER_BASE_URL"))

	return cfg
}

func setIf(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

// DiscoverConfig probes the vendors' conventional key variables, Gemini
// first, and returns a Config for the first one found.
func DiscoverConfig() (Config, bool) {
	cfg := DefaultConfig()

	for _, name := range []string{"GEMINI_API_KEY", "API_KEY"} {
		if k := os.Getenv(name); k != "" {
			cfg.Provider = ProviderGemini
			cfg.Gemini.APIKey = k
			return cfg, true
		}
	}
	if k := os.Getenv("OPENAI_API_KEY"); k != "" {
		cfg.Provider = ProviderOpenAI
		cfg.OpenAI.APIKey = k
		return cfg, true
	}
	if k := os.Getenv("ANTHROPIC_API_KEY"); k != "" {
		cfg.Provider = ProviderAnthropic
		cfg.Anthropic.APIKey = k
		return cfg, true
	}
	if k := os.Getenv("OPENROUTER_API_KEY"); k != "" {
		cfg.Provider = ProviderOpenRouter
		cfg.OpenRouter.APIKey = k
		return cfg, true
	}

	return Config{}, false
}

// ResolveConfig prefers explicit STUDYOS_* settings and falls back to
// discovery. It returns ErrNoCredentials when neither yields a usable key.
func ResolveConfig() (Config, error) {
	cfg := ConfigFromEnv()
	if err := cfg.Validate(); err == nil {
		return cfg, nil
	} else if env("LLM_PROVIDER") != "" {
		return Config{}, err
	}

	discovered, ok := DiscoverConfig()
	if !ok {
		return Config{}, ErrNoCredentials
	}
	discovered.Timeout = cfg.Timeout
	return discovered, nil
}

// Validate checks the selected provider has a key.
func (c Config) Validate() error {
	missing := func(name string) error {
		return fmt.Errorf("%s%s_API_KEY is required for the %s provider: %w",
			envPrefix, strings.ToUpper(name), name, ErrNoCredentials)
	}

	switch c.Provider {
	case ProviderGemini:
		if c.Gemini.APIKey == "" {
			return missing(ProviderGemini)
		}
	case ProviderOpenAI:
		if c.OpenAI.APIKey == "" {
			return missing(ProviderOpenAI)
		}
	case ProviderAnthropic:
		if c.Anthropic.APIKey == "" {
			return missing(ProviderAnthropic)
		}
	case ProviderOpenRouter:
		if c.OpenRouter.APIKey == "" {
			return missing(ProviderOpenRouter)
		}
	case ProviderMock:
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	return nil
}
