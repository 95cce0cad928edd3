package tts

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/sashabaranov/go-openai"
)

// openAIVoices is the fixed voice set the OpenAI speech API accepts. The
// voices are multilingual, so the same identifier serves both languages.
var openAIVoices = []string{
	"alloy", "ash", "ballad", "coral", "echo", "fable",
	"onyx", "nova", "sage", "shimmer", "verse",
}

// OpenAIProvider implements Provider for OpenAI TTS.
type OpenAIProvider struct {
	client      *openai.Client
	config      *Config
	breaker     breakerFunc
	cacheDir    string
	enableCache bool
}

// NewOpenAIProvider creates a new OpenAI TTS provider.
func NewOpenAIProvider(config *Config) (Provider, error) {
	if config.OpenAIKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}

	provider := &OpenAIProvider{
		client:      openai.NewClient(config.OpenAIKey),
		config:      config,
		breaker:     wrapBreaker(newBreaker("openai-tts")),
		cacheDir:    config.CacheDir,
		enableCache: config.EnableCache,
	}

	if provider.enableCache && provider.cacheDir != "" {
		if err := os.MkdirAll(provider.cacheDir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create cache directory: %w", err)
		}
	}

	return provider, nil
}

// Synthesize generates audio using OpenAI TTS.
func (p *OpenAIProvider) Synthesize(ctx context.Context, text, voice, outputFile string) error {
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("text cannot be empty")
	}
	if voice == "" {
		voice = "nova"
	}

	if p.enableCache {
		cacheFile := p.getCacheFilePath(text, voice)
		if _, err := os.Stat(cacheFile); err == nil {
			return copyFile(cacheFile, outputFile)
		}
	}

	audio, err := p.breaker(func() ([]byte, error) {
		return p.synthesizeOnce(ctx, text, voice)
	})
	if err != nil {
		return fmt.Errorf("OpenAI TTS API error: %w", err)
	}

	if dir := filepath.Dir(outputFile); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := os.WriteFile(outputFile, audio, 0644); err != nil {
		return fmt.Errorf("failed to write audio file: %w", err)
	}

	if p.enableCache {
		// Ignore cache errors
		_ = copyFile(outputFile, p.getCacheFilePath(text, voice))
	}
	return nil
}

func (p *OpenAIProvider) synthesizeOnce(ctx context.Context, text, voice string) ([]byte, error) {
	req := openai.CreateSpeechRequest{
		Model:          openai.SpeechModel(p.config.OpenAIModel),
		Input:          text,
		Voice:          openai.SpeechVoice(voice),
		Speed:          p.config.SpeakingRate,
		ResponseFormat: openai.SpeechResponseFormatMp3,
	}

	response, err := p.client.CreateSpeech(ctx, req)
	if err != nil {
		return nil, err
	}
	defer response.Close()

	audio, err := io.ReadAll(response)
	if err != nil {
		return nil, err
	}
	if len(audio) == 0 {
		return nil, fmt.Errorf("no audio data received")
	}
	return audio, nil
}

// ListVoices returns the fixed OpenAI voice set.
func (p *OpenAIProvider) ListVoices(ctx context.Context) ([]Voice, error) {
	voices := make([]Voice, 0, len(openAIVoices))
	for _, name := range openAIVoices {
		voices = append(voices, Voice{Name: name, Locale: "multilingual"})
	}
	return voices, nil
}

// Name returns the provider name.
func (p *OpenAIProvider) Name() string {
	return "openai"
}

// IsAvailable checks if the OpenAI API is accessible.
func (p *OpenAIProvider) IsAvailable() error {
	if p.config.OpenAIKey == "" {
		return fmt.Errorf("OpenAI API key not configured")
	}
	return nil
}

// getCacheFilePath generates a cache file path for the given request.
func (p *OpenAIProvider) getCacheFilePath(text, voice string) string {
	h := md5.New()
	h.Write([]byte(text))
	h.Write([]byte(voice))
	h.Write([]byte(p.config.OpenAIModel))
	h.Write([]byte(fmt.Sprintf("%.2f", p.config.SpeakingRate)))
	hash := hex.EncodeToString(h.Sum(nil))

	// First 2 chars as subdirectory for better file system performance
	return filepath.Join(p.cacheDir, hash[:2], hash[2:]+".mp3")
}

// copyFile copies a file from src to dst.
func copyFile(src, dst string) error {
	if dir := filepath.Dir(dst); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	source, err := os.Open(src)
	if err != nil {
		return err
	}
	defer source.Close()

	destination, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer destination.Close()

	_, err = io.Copy(destination, source)
	return err
}
