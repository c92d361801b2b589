package llm

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Provider names accepted in Config.Provider.
const (
	ProviderGemini     = "gemini"
	ProviderOpenAI     = "openai"
	ProviderAnthropic  = "anthropic"
	ProviderOpenRouter = "openrouter"
	ProviderMock       = "mock"
)

// DefaultModel is the model content generation runs against unless
// overridden.
const DefaultModel = "gemini-2.5-flash"

// Config holds generation provider configuration.
type Config struct {
	Provider string

	Gemini     GeminiConfig
	OpenAI     OpenAIConfig
	Anthropic  AnthropicConfig
	OpenRouter OpenRouterConfig
	Retry      RetryConfig

	// Timeout bounds a single generation call including retries.
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

// RetryConfig configures retry behavior for transient failures.
// MaxAttempts of 1 disables retrying.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// DefaultConfig returns the Gemini-backed defaults. A failed generation
// is surfaced to the student immediately, so retries are off.
func DefaultConfig() Config {
	return Config{
		Provider: ProviderGemini,
		Gemini:   GeminiConfig{Model: DefaultModel},
		OpenAI:   OpenAIConfig{Model: "gpt-4o-mini"},
		Anthropic: AnthropicConfig{
			Model: "claude-haiku",
		},
		OpenRouter: OpenRouterConfig{Model: "google/gemini-2.5-flash"},
		Retry: RetryConfig{
			MaxAttempts: 1,
			InitialWait: 1 * time.Second,
			MaxWait:     8 * time.Second,
			Multiplier:  2.0,
		},
		Timeout: 60 * time.Second,
	}
}

// ConfigFromEnv builds a Config from ZAMBEZI_* variables. When no
// ZAMBEZI_ key is set for the selected provider, the conventional
// vendor variables are consulted through DiscoverConfig.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()

	if p := os.Getenv("ZAMBEZI_LLM_PROVIDER"); p != "" {
		cfg.Provider = p
	}

	setIf(&cfg.Gemini.APIKey, "ZAMBEZI_GEMINI_API_KEY")
	setIf(&cfg.Gemini.Model, "ZAMBEZI_GEMINI_MODEL")
	setIf(&cfg.OpenAI.APIKey, "ZAMBEZI_OPENAI_API_KEY")
	setIf(&cfg.OpenAI.Model, "ZAMBEZI_OPENAI_MODEL")
	setIf(&cfg.OpenAI.BaseURL, "ZAMBEZI_OPENAI_BASE_URL")
	setIf(&cfg.Anthropic.APIKey, "ZAMBEZI_ANTHROPIC_API_KEY")
	setIf(&cfg.Anthropic.Model, "ZAMBEZI_ANTHROPIC_MODEL")
	setIf(&cfg.OpenRouter.APIKey, "ZAMBEZI_OPENROUTER_API_KEY")
	setIf(&cfg.OpenRouter.Model, "ZAMBEZI_OPENROUTER_MODEL")

	if v := os.Getenv("ZAMBEZI_LLM_MAX_ATTEMPTS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Retry.MaxAttempts = n
		}
	}
	if v := os.Getenv("ZAMBEZI_LLM_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.Timeout = d
		}
	}

	if cfg.Validate() != nil && os.Getenv("ZAMBEZI_LLM_PROVIDER") == "" {
		if found, ok := DiscoverConfig(); ok {
			found.Retry = cfg.Retry
			found.Timeout = cfg.Timeout
			return found
		}
	}
	return cfg
}

func setIf(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

// DiscoverConfig probes vendor API key variables in priority order
// (Gemini, then OpenAI, Anthropic, OpenRouter). API_KEY is treated as a
// Gemini key. Returns false if none is set.
func DiscoverConfig() (Config, bool) {
	cfg := DefaultConfig()

	for _, key := range []string{"GEMINI_API_KEY", "API_KEY"} {
		if k := os.Getenv(key); k != "" {
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

// Validate checks that the selected provider has an API key.
func (c Config) Validate() error {
	var key, env string
	switch c.Provider {
	case ProviderGemini:
		key, env = c.Gemini.APIKey, "ZAMBEZI_GEMINI_API_KEY"
	case ProviderOpenAI:
		key, env = c.OpenAI.APIKey, "ZAMBEZI_OPENAI_API_KEY"
	case ProviderAnthropic:
		key, env = c.Anthropic.APIKey, "ZAMBEZI_ANTHROPIC_API_KEY"
	case ProviderOpenRouter:
		key, env = c.OpenRouter.APIKey, "ZAMBEZI_OPENROUTER_API_KEY"
	case ProviderMock:
		return nil
	default:
		return fmt.Errorf("unknown provider %q", c.Provider)
	}
	if key == "" {
		return fmt.Errorf("%w: %s is required for the %s provider", ErrNotConfigured, env, c.Provider)
	}
	return nil
}
