package tts

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"codeberg.org/taozui/vocaudio/internal/ffmpeg"
)

// espeakBaseWPM is espeak-ng's default speaking speed; SpeakingRate scales it.
const espeakBaseWPM = 175

// ESpeakProvider implements Provider for the espeak-ng engine. It needs no
// network or API key, which makes it the offline fallback backend.
type ESpeakProvider struct {
	config *Config
}

// NewESpeakProvider creates a new espeak-ng provider.
func NewESpeakProvider(config *Config) (Provider, error) {
	if err := checkESpeakInstalled(); err != nil {
		return nil, err
	}
	return &ESpeakProvider{config: config}, nil
}

// Synthesize generates audio via espeak-ng. espeak only writes WAV, so the
// clip is converted to MP3 afterwards to match the other backends.
func (p *ESpeakProvider) Synthesize(ctx context.Context, text, voice, outputFile string) error {
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("text cannot be empty")
	}
	if voice == "" {
		voice = "en"
	}

	if dir := filepath.Dir(outputFile); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	tempWAV := strings.TrimSuffix(outputFile, filepath.Ext(outputFile)) + "_temp.wav"

	speed := int(p.config.SpeakingRate * espeakBaseWPM)
	if speed < 80 {
		speed = 80
	} else if speed > 450 {
		speed = 450
	}

	args := []string{
		"-v", voice,
		"-s", fmt.Sprintf("%d", speed),
		"-w", tempWAV,
		text,
	}
	cmd := exec.CommandContext(ctx, "espeak-ng", args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		os.Remove(tempWAV)
		return fmt.Errorf("espeak-ng failed: %w\nOutput: %s", err, string(output))
	}

	if err := ffmpeg.WAVToMP3(tempWAV, outputFile); err != nil {
		os.Remove(tempWAV)
		return err
	}
	return os.Remove(tempWAV)
}

// ListVoices parses `espeak-ng --voices` output.
func (p *ESpeakProvider) ListVoices(ctx context.Context) ([]Voice, error) {
	cmd := exec.CommandContext(ctx, "espeak-ng", "--voices")
	output, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("espeak-ng --voices failed: %w", err)
	}
	return parseESpeakVoices(output), nil
}

// parseESpeakVoices reads the table espeak-ng prints:
//
//	Pty Language       Age/Gender VoiceName       File    Other Languages
//	 5  en-gb           --/M      English_(Great_Britain) gmw/en
func parseESpeakVoices(output []byte) []Voice {
	var voices []Voice
	scanner := bufio.NewScanner(bytes.NewReader(output))
	first := true
	for scanner.Scan() {
		if first {
			first = false // header row
			continue
		}
		fields := strings.Fields(scanner.Text())
		if len(fields) < 4 {
			continue
		}
		voices = append(voices, Voice{
			Name:   fields[1],
			Locale: fields[1],
			Gender: strings.ToLower(fields[2]),
		})
	}
	return voices
}

// Name returns the provider name.
func (p *ESpeakProvider) Name() string {
	return "espeak-ng"
}

// IsAvailable checks if espeak-ng is installed.
func (p *ESpeakProvider) IsAvailable() error {
	return checkESpeakInstalled()
}

// checkESpeakInstalled verifies that espeak-ng is available on the system.
func checkESpeakInstalled() error {
	cmd := exec.Command("espeak-ng", "--version")
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("espeak-ng is not installed or not in PATH: %w", err)
	}
	return nil
}
