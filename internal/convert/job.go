// Package convert implements the word-list-to-audio pipeline: parse the
// list, synthesize each entry, interleave pauses and merge everything into
// one MP3 per input file.
package convert

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"codeberg.org/taozui/vocaudio/internal/tts"
	"codeberg.org/taozui/vocaudio/internal/wordlist"
)

// Job is one conversion unit: one input word list, one output audio file and
// a temporary workspace scoped to the run.
type Job struct {
	InputPath  string
	OutputPath string

	provider tts.Provider
	muxer    Muxer
	cfg      *Config
}

// NewJob creates a conversion job. An empty outputPath derives the output
// from the input path with the extension replaced by .mp3.
func NewJob(inputPath, outputPath string, provider tts.Provider, muxer Muxer, cfg *Config) *Job {
	if outputPath == "" {
		outputPath = strings.TrimSuffix(inputPath, filepath.Ext(inputPath)) + ".mp3"
	}
	return &Job{
		InputPath:  inputPath,
		OutputPath: outputPath,
		provider:   provider,
		muxer:      muxer,
		cfg:        cfg,
	}
}

// Run executes the job. The workspace holding the intermediate fragments is
// removed on every exit path.
func (j *Job) Run(ctx context.Context) error {
	fmt.Printf("Processing: %s\n", j.InputPath)
	fmt.Printf("Output file: %s\n", j.OutputPath)

	entries, err := wordlist.ParseFile(j.InputPath)
	if err != nil {
		return err
	}
	fmt.Printf("Found %d entries\n", len(entries))

	workspace, err := os.MkdirTemp("", "vocaudio_*")
	if err != nil {
		return fmt.Errorf("failed to create workspace: %w", err)
	}
	defer os.RemoveAll(workspace)

	assembler := NewAssembler(j.provider, j.muxer, j.cfg)
	stats, err := assembler.Run(ctx, entries, workspace, j.OutputPath)
	if err != nil {
		return err
	}

	if stats.Warnings > 0 {
		fmt.Fprintf(os.Stderr, "%d word(s) degraded to silence\n", stats.Warnings)
	}
	fmt.Printf("Conversion complete: %s\n", j.OutputPath)
	return nil
}
