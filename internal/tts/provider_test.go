package tts

import (
	"context"
	"fmt"
	"testing"
	"time"
)

func TestNewProvider(t *testing.T) {
	tests := []struct {
		name      string
		config    *Config
		expectErr bool
	}{
		{
			name:   "google provider",
			config: &Config{Provider: "google"},
		},
		{
			name:   "openai provider with key",
			config: &Config{Provider: "openai", OpenAIKey: "sk-test"},
		},
		{
			name:      "openai provider without key",
			config:    &Config{Provider: "openai"},
			expectErr: true,
		},
		{
			name:      "unknown provider",
			config:    &Config{Provider: "festival"},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider, err := NewProvider(tt.config)
			if tt.expectErr {
				if err == nil {
					t.Error("Expected error but got none")
				}
				return
			}
			if err != nil {
				t.Fatalf("NewProvider() error: %v", err)
			}
			if provider == nil {
				t.Error("Expected provider but got nil")
			}
		})
	}
}

func TestNewProvider_NilConfigUsesDefaults(t *testing.T) {
	provider, err := NewProvider(nil)
	if err != nil {
		t.Fatalf("NewProvider(nil) error: %v", err)
	}
	if provider.Name() != "google" {
		t.Errorf("default provider = %s, want google", provider.Name())
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Provider != "google" {
		t.Errorf("Provider = %s, want google", cfg.Provider)
	}
	if cfg.ChineseVoice != "cmn-CN-Wavenet-A" {
		t.Errorf("ChineseVoice = %s, want cmn-CN-Wavenet-A", cfg.ChineseVoice)
	}
	if cfg.EnglishVoice != "en-US-Wavenet-F" {
		t.Errorf("EnglishVoice = %s, want en-US-Wavenet-F", cfg.EnglishVoice)
	}
	if cfg.SpeakingRate != 0.9 {
		t.Errorf("SpeakingRate = %v, want 0.9", cfg.SpeakingRate)
	}
}

func TestLocaleOf(t *testing.T) {
	tests := []struct {
		voice string
		want  string
	}{
		{"cmn-CN-Wavenet-A", "cmn-CN"},
		{"en-US-Standard-C", "en-US"},
		{"en-GB-Neural2-B", "en-GB"},
		{"nova", "nova"},
	}
	for _, tt := range tests {
		if got := localeOf(tt.voice); got != tt.want {
			t.Errorf("localeOf(%q) = %q, want %q", tt.voice, got, tt.want)
		}
	}
}

func TestParseESpeakVoices(t *testing.T) {
	output := []byte(`Pty Language       Age/Gender VoiceName          File                 Other Languages
 5  af              --/M      Afrikaans          gmw/af
 5  cmn             --/M      Chinese_(Mandarin) sit/cmn              (zh-cmn 5)(zh 5)
 2  en-gb           --/M      English_(Great_Britain) gmw/en         (en 2)
bad line
`)
	voices := parseESpeakVoices(output)
	if len(voices) != 3 {
		t.Fatalf("parsed %d voices, want 3", len(voices))
	}
	if voices[1].Name != "cmn" {
		t.Errorf("voices[1].Name = %s, want cmn", voices[1].Name)
	}
	if voices[2].Locale != "en-gb" {
		t.Errorf("voices[2].Locale = %s, want en-gb", voices[2].Locale)
	}
}

// fakeProvider is a scripted Provider for fallback tests.
type fakeProvider struct {
	name       string
	synthErr   error
	availErr   error
	voices     []Voice
	voicesErr  error
	synthCalls int
}

func (f *fakeProvider) Synthesize(ctx context.Context, text, voice, outputFile string) error {
	f.synthCalls++
	return f.synthErr
}

func (f *fakeProvider) ListVoices(ctx context.Context) ([]Voice, error) {
	return f.voices, f.voicesErr
}

func (f *fakeProvider) Name() string       { return f.name }
func (f *fakeProvider) IsAvailable() error { return f.availErr }

func TestProviderWithFallback_Synthesize(t *testing.T) {
	tests := []struct {
		name          string
		primaryErr    error
		fallbackErr   error
		wantErr       bool
		wantFallbacks int
	}{
		{
			name:          "primary succeeds, fallback untouched",
			wantFallbacks: 0,
		},
		{
			name:          "primary fails, fallback takes over",
			primaryErr:    fmt.Errorf("quota exceeded"),
			wantFallbacks: 1,
		},
		{
			name:          "both fail",
			primaryErr:    fmt.Errorf("quota exceeded"),
			fallbackErr:   fmt.Errorf("not installed"),
			wantErr:       true,
			wantFallbacks: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			primary := &fakeProvider{name: "google", synthErr: tt.primaryErr}
			fallback := &fakeProvider{name: "espeak-ng", synthErr: tt.fallbackErr}
			p := NewProviderWithFallback(primary, fallback)

			err := p.Synthesize(context.Background(), "苹果", "cmn-CN-Wavenet-A", "out.mp3")
			if (err != nil) != tt.wantErr {
				t.Errorf("Synthesize() error = %v, wantErr = %v", err, tt.wantErr)
			}
			if primary.synthCalls != 1 {
				t.Errorf("primary called %d times, want 1", primary.synthCalls)
			}
			if fallback.synthCalls != tt.wantFallbacks {
				t.Errorf("fallback called %d times, want %d", fallback.synthCalls, tt.wantFallbacks)
			}
		})
	}
}

func TestProviderWithFallback_ListVoices(t *testing.T) {
	primary := &fakeProvider{name: "google", voicesErr: fmt.Errorf("unreachable")}
	fallback := &fakeProvider{name: "espeak-ng", voices: []Voice{{Name: "cmn", Locale: "cmn"}}}
	p := NewProviderWithFallback(primary, fallback)

	voices, err := p.ListVoices(context.Background())
	if err != nil {
		t.Fatalf("ListVoices() error: %v", err)
	}
	if len(voices) != 1 || voices[0].Name != "cmn" {
		t.Errorf("voices = %v, want the fallback's set", voices)
	}
}

func TestProviderWithFallback_Name(t *testing.T) {
	p := NewProviderWithFallback(&fakeProvider{name: "google"}, &fakeProvider{name: "espeak-ng"})
	if got := p.Name(); got != "google (fallback: espeak-ng)" {
		t.Errorf("Name() = %q", got)
	}
}

func TestDefaultRetryPolicy(t *testing.T) {
	fallbackRan := false
	policy := DefaultRetryPolicy(func(ctx context.Context) error {
		fallbackRan = true
		return nil
	})

	if policy.MaxAttempts != 3 {
		t.Errorf("MaxAttempts = %d, want 3", policy.MaxAttempts)
	}
	if policy.Delay != time.Second {
		t.Errorf("Delay = %v, want 1s", policy.Delay)
	}
	if policy.Fallback == nil {
		t.Fatal("Fallback not set")
	}
	if err := policy.Fallback(context.Background()); err != nil || !fallbackRan {
		t.Errorf("Fallback() = %v, ran = %v", err, fallbackRan)
	}
}

func TestRetryPolicy_Do(t *testing.T) {
	tests := []struct {
		name         string
		failures     int // attempts that fail before succeeding
		fallbackErr  error
		wantAttempts int
		wantWarning  bool
		wantErr      bool
		wantFallback bool
	}{
		{
			name:         "first attempt succeeds",
			failures:     0,
			wantAttempts: 1,
		},
		{
			name:         "second attempt succeeds",
			failures:     1,
			wantAttempts: 2,
		},
		{
			name:         "all attempts fail, fallback degrades",
			failures:     3,
			wantAttempts: 3,
			wantWarning:  true,
			wantFallback: true,
		},
		{
			name:         "fallback failure is fatal",
			failures:     3,
			fallbackErr:  fmt.Errorf("no disk"),
			wantAttempts: 3,
			wantErr:      true,
			wantFallback: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			attempts := 0
			fallbackRan := false
			policy := RetryPolicy{
				MaxAttempts: 3,
				Delay:       0,
				Fallback: func(ctx context.Context) error {
					fallbackRan = true
					return tt.fallbackErr
				},
			}

			warning, err := policy.Do(context.Background(), "苹果", func(ctx context.Context) error {
				attempts++
				if attempts <= tt.failures {
					return fmt.Errorf("attempt %d failed", attempts)
				}
				return nil
			})

			if attempts != tt.wantAttempts {
				t.Errorf("attempts = %d, want %d", attempts, tt.wantAttempts)
			}
			if (warning != nil) != tt.wantWarning {
				t.Errorf("warning = %v, wantWarning = %v", warning, tt.wantWarning)
			}
			if (err != nil) != tt.wantErr {
				t.Errorf("err = %v, wantErr = %v", err, tt.wantErr)
			}
			if fallbackRan != tt.wantFallback {
				t.Errorf("fallbackRan = %v, want %v", fallbackRan, tt.wantFallback)
			}
		})
	}
}

func TestRetryPolicy_OnRetryCalledBetweenAttempts(t *testing.T) {
	var retries []int
	policy := RetryPolicy{
		MaxAttempts: 3,
		Delay:       0,
		Fallback:    func(ctx context.Context) error { return nil },
		OnRetry: func(attempt, max int, err error) {
			retries = append(retries, attempt)
		},
	}
	_, err := policy.Do(context.Background(), "x", func(ctx context.Context) error {
		return fmt.Errorf("always fails")
	})
	if err != nil {
		t.Fatalf("Do() error: %v", err)
	}
	// Two re-attempts after the first failure; no callback after the last.
	if len(retries) != 2 || retries[0] != 1 || retries[1] != 2 {
		t.Errorf("OnRetry attempts = %v, want [1 2]", retries)
	}
}

func TestRetryPolicy_ContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	policy := RetryPolicy{
		MaxAttempts: 3,
		Delay:       time.Minute, // would stall the test if the context is ignored
		Fallback:    func(ctx context.Context) error { return nil },
	}
	_, err := policy.Do(ctx, "x", func(ctx context.Context) error {
		return fmt.Errorf("fail")
	})
	if err == nil {
		t.Error("Expected context cancellation error")
	}
}

func TestWarning_String(t *testing.T) {
	w := &Warning{Text: "香蕉", Err: fmt.Errorf("quota exceeded")}
	got := w.String()
	if got != `could not synthesize "香蕉": quota exceeded` {
		t.Errorf("String() = %q", got)
	}
}
