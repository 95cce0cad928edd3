package convert

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"codeberg.org/taozui/vocaudio/internal/tts"
	"codeberg.org/taozui/vocaudio/internal/wordlist"
)

// RunDirectory converts every *.txt word list in dir, one independent job
// per file, sequentially. A file that fails validation (no usable entries)
// is skipped and the run continues; an infrastructure failure (ffmpeg,
// workspace) aborts the whole run.
func RunDirectory(ctx context.Context, dir string, provider tts.Provider, muxer Muxer, cfg *Config) error {
	files, err := filepath.Glob(filepath.Join(dir, "*.txt"))
	if err != nil {
		return fmt.Errorf("failed to scan directory: %w", err)
	}
	if len(files) == 0 {
		fmt.Printf("No .txt files found in %s\n", dir)
		return nil
	}
	sort.Strings(files)

	fmt.Printf("Found %d word list file(s)\n\n", len(files))

	converted := 0
	skipped := 0
	for _, file := range files {
		job := NewJob(file, "", provider, muxer, cfg)
		err := job.Run(ctx)
		switch {
		case errors.Is(err, wordlist.ErrEmptyInput):
			fmt.Fprintf(os.Stderr, "Skipping: %v\n", err)
			skipped++
		case err != nil:
			return err
		default:
			converted++
		}
		fmt.Println()
	}

	fmt.Printf("=== Conversion Summary ===\n")
	fmt.Printf("Total files: %d\n", len(files))
	fmt.Printf("Converted: %d\n", converted)
	if skipped > 0 {
		fmt.Printf("Skipped (no entries): %d\n", skipped)
	}
	fmt.Printf("==========================\n")
	return nil
}
