package tts

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	gctts "cloud.google.com/go/texttospeech/apiv1"
	ttspb "cloud.google.com/go/texttospeech/apiv1/texttospeechpb"
)

// GoogleProvider implements Provider for Google Cloud Text-to-Speech.
type GoogleProvider struct {
	config  *Config
	breaker breakerFunc
}

// NewGoogleProvider creates a new Google Cloud TTS provider.
func NewGoogleProvider(config *Config) Provider {
	return &GoogleProvider{
		config:  config,
		breaker: wrapBreaker(newBreaker("google-tts")),
	}
}

// Synthesize generates MP3 audio for text using Google Cloud TTS.
func (p *GoogleProvider) Synthesize(ctx context.Context, text, voice, outputFile string) error {
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("text cannot be empty")
	}

	audio, err := p.breaker(func() ([]byte, error) {
		return p.synthesizeOnce(ctx, text, voice)
	})
	if err != nil {
		return fmt.Errorf("google tts: %w", err)
	}

	if dir := filepath.Dir(outputFile); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	return os.WriteFile(outputFile, audio, 0644)
}

func (p *GoogleProvider) synthesizeOnce(ctx context.Context, text, voice string) ([]byte, error) {
	client, err := gctts.NewClient(ctx)
	if err != nil {
		return nil, err
	}
	defer client.Close()

	req := &ttspb.SynthesizeSpeechRequest{
		Input: &ttspb.SynthesisInput{
			InputSource: &ttspb.SynthesisInput_Text{Text: text},
		},
		Voice: &ttspb.VoiceSelectionParams{
			LanguageCode: localeOf(voice),
			Name:         voice,
		},
		AudioConfig: &ttspb.AudioConfig{
			AudioEncoding: ttspb.AudioEncoding_MP3,
			SpeakingRate:  p.config.SpeakingRate,
		},
	}

	resp, err := client.SynthesizeSpeech(ctx, req)
	if err != nil {
		return nil, err
	}
	if len(resp.GetAudioContent()) == 0 {
		return nil, fmt.Errorf("no audio data received")
	}
	return resp.GetAudioContent(), nil
}

// ListVoices returns all voices the service offers.
func (p *GoogleProvider) ListVoices(ctx context.Context) ([]Voice, error) {
	client, err := gctts.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("google tts: %w", err)
	}
	defer client.Close()

	resp, err := client.ListVoices(ctx, &ttspb.ListVoicesRequest{})
	if err != nil {
		return nil, fmt.Errorf("google tts: %w", err)
	}

	voices := make([]Voice, 0, len(resp.GetVoices()))
	for _, v := range resp.GetVoices() {
		locale := ""
		if codes := v.GetLanguageCodes(); len(codes) > 0 {
			locale = codes[0]
		}
		voices = append(voices, Voice{
			Name:   v.GetName(),
			Locale: locale,
			Gender: strings.ToLower(v.GetSsmlGender().String()),
		})
	}
	return voices, nil
}

// Name returns the provider name.
func (p *GoogleProvider) Name() string {
	return "google"
}

// IsAvailable checks that application default credentials are configured.
func (p *GoogleProvider) IsAvailable() error {
	if os.Getenv("GOOGLE_APPLICATION_CREDENTIALS") == "" {
		return fmt.Errorf("GOOGLE_APPLICATION_CREDENTIALS not set")
	}
	return nil
}

// localeOf derives the language code from a voice name like
// "cmn-CN-Wavenet-A" or "en-US-Standard-C".
func localeOf(voice string) string {
	parts := strings.SplitN(voice, "-", 3)
	if len(parts) >= 2 {
		return parts[0] + "-" + parts[1]
	}
	return voice
}
