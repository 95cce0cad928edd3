package tts

import (
	"context"
	"fmt"
	"os"
)

// Voice describes one synthesis voice offered by a provider.
type Voice struct {
	Name   string // identifier passed back to Synthesize
	Locale string // BCP-47-ish language code, e.g. "cmn-CN"
	Gender string
}

// Provider defines the interface for text-to-speech backends.
type Provider interface {
	// Synthesize generates audio for text with the given voice and writes
	// it to outputFile.
	Synthesize(ctx context.Context, text, voice, outputFile string) error

	// ListVoices returns the voices the backend offers.
	ListVoices(ctx context.Context) ([]Voice, error)

	// Name returns the provider name.
	Name() string

	// IsAvailable checks if the provider is properly configured and available.
	IsAvailable() error
}

// Config holds common configuration for speech providers. Voice selection is
// an explicit value carried through the pipeline, never process-global state.
type Config struct {
	Provider     string  // "google", "openai" or "espeak"
	ChineseVoice string  // default voice for the primary (Chinese) text
	EnglishVoice string  // default voice for the secondary (English) text
	SpeakingRate float64 // 1.0 is normal speed

	// OpenAI-specific settings
	OpenAIKey   string
	OpenAIModel string // "tts-1", "tts-1-hd" or "gpt-4o-mini-tts"

	// On-disk synthesis cache (OpenAI provider)
	EnableCache bool
	CacheDir    string
}

// DefaultConfig returns default configuration: Google voices at a slightly
// reduced rate, the pace the word lists were originally recorded at.
func DefaultConfig() *Config {
	return &Config{
		Provider:     "google",
		ChineseVoice: "cmn-CN-Wavenet-A",
		EnglishVoice: "en-US-Wavenet-F",
		SpeakingRate: 0.9,
		OpenAIModel:  "gpt-4o-mini-tts",
	}
}

// NewProvider creates the appropriate speech provider based on configuration.
func NewProvider(config *Config) (Provider, error) {
	if config == nil {
		config = DefaultConfig()
	}

	switch config.Provider {
	case "google":
		return NewGoogleProvider(config), nil

	case "openai":
		if config.OpenAIKey == "" {
			return nil, fmt.Errorf("OpenAI API key is required")
		}
		return NewOpenAIProvider(config)

	case "espeak":
		return NewESpeakProvider(config)

	default:
		return nil, fmt.Errorf("unknown speech provider: %s", config.Provider)
	}
}

// ProviderWithFallback chains two providers: every Synthesize call goes to
// the primary first, and the fallback handles the ones the primary cannot.
// Enabled with --fallback for offline-capable runs against cloud backends.
type ProviderWithFallback struct {
	primary  Provider
	fallback Provider
}

// NewProviderWithFallback wraps primary so that fallback picks up failed calls.
func NewProviderWithFallback(primary, fallback Provider) Provider {
	return &ProviderWithFallback{
		primary:  primary,
		fallback: fallback,
	}
}

func (p *ProviderWithFallback) Synthesize(ctx context.Context, text, voice, outputFile string) error {
	err := p.primary.Synthesize(ctx, text, voice, outputFile)
	if err == nil {
		return nil
	}
	fmt.Fprintf(os.Stderr, "    %s failed (%v), retrying with %s\n",
		p.primary.Name(), err, p.fallback.Name())
	return p.fallback.Synthesize(ctx, text, voice, outputFile)
}

// ListVoices prefers the primary's catalogue and only consults the fallback
// when the primary cannot be reached.
func (p *ProviderWithFallback) ListVoices(ctx context.Context) ([]Voice, error) {
	voices, err := p.primary.ListVoices(ctx)
	if err != nil {
		return p.fallback.ListVoices(ctx)
	}
	return voices, nil
}

func (p *ProviderWithFallback) Name() string {
	return fmt.Sprintf("%s (fallback: %s)", p.primary.Name(), p.fallback.Name())
}

// IsAvailable succeeds when either provider can serve requests.
func (p *ProviderWithFallback) IsAvailable() error {
	primaryErr := p.primary.IsAvailable()
	if primaryErr == nil {
		return nil
	}
	if fallbackErr := p.fallback.IsAvailable(); fallbackErr == nil {
		return nil
	}
	return fmt.Errorf("no usable speech backend: %v", primaryErr)
}
