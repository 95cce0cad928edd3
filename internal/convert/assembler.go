package convert

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"codeberg.org/taozui/vocaudio/internal/tts"
	"codeberg.org/taozui/vocaudio/internal/wordlist"
)

// FragmentKind classifies an audio fragment by its role in the recording.
type FragmentKind int

const (
	FragmentWord FragmentKind = iota
	FragmentLanguagePause
	FragmentWordPause
)

// Fragment is one file-backed audio clip destined for concatenation. All
// fragments live inside the job workspace and die with it.
type Fragment struct {
	Path string
	Kind FragmentKind
}

// Config holds the conversion pipeline settings.
type Config struct {
	TTS *tts.Config

	WordPause     time.Duration // pause between word entries
	LanguagePause time.Duration // pause between Chinese and English
	RetryAttempts int
	RetryDelay    time.Duration
}

// DefaultConfig returns the standard pause and retry settings.
func DefaultConfig() *Config {
	return &Config{
		TTS:           tts.DefaultConfig(),
		WordPause:     800 * time.Millisecond,
		LanguagePause: 500 * time.Millisecond,
		RetryAttempts: 3,
		RetryDelay:    time.Second,
	}
}

// fallbackSilence is the duration substituted for a word that could not be
// synthesized.
const fallbackSilence = 100 * time.Millisecond

// Stats summarizes one assembly run.
type Stats struct {
	Entries  int
	Warnings int // words degraded to silence
}

// Assembler turns an ordered word list into one concatenated audio file.
type Assembler struct {
	provider tts.Provider
	muxer    Muxer
	cfg      *Config
}

// NewAssembler creates an assembler over the given synthesis backend and muxer.
func NewAssembler(provider tts.Provider, muxer Muxer, cfg *Config) *Assembler {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return &Assembler{provider: provider, muxer: muxer, cfg: cfg}
}

// Run synthesizes every entry in document order and concatenates the result
// into outputFile. All intermediate fragments are written to workspace. The
// fragment order is exactly the entry order: word, language pause, word, and
// a word pause between entries. A word that cannot be synthesized keeps its
// slot as a short silent clip.
func (a *Assembler) Run(ctx context.Context, entries []wordlist.Entry, workspace, outputFile string) (Stats, error) {
	stats := Stats{Entries: len(entries)}

	seq, err := a.Assemble(ctx, entries, workspace, &stats)
	if err != nil {
		return stats, err
	}

	fmt.Println("Merging audio fragments...")
	paths := make([]string, len(seq))
	for i, frag := range seq {
		paths[i] = frag.Path
	}
	if err := a.muxer.Concat(paths, workspace, outputFile); err != nil {
		return stats, err
	}
	return stats, nil
}

// Assemble builds the ordered fragment sequence without merging it.
func (a *Assembler) Assemble(ctx context.Context, entries []wordlist.Entry, workspace string, stats *Stats) ([]Fragment, error) {
	// The two pause clips are shared by every interleave point; generating
	// them once avoids an ffmpeg invocation per word.
	wordPause := Fragment{Path: filepath.Join(workspace, "word_pause.mp3"), Kind: FragmentWordPause}
	langPause := Fragment{Path: filepath.Join(workspace, "lang_pause.mp3"), Kind: FragmentLanguagePause}
	if err := a.muxer.Silence(wordPause.Path, a.cfg.WordPause); err != nil {
		return nil, err
	}
	if err := a.muxer.Silence(langPause.Path, a.cfg.LanguagePause); err != nil {
		return nil, err
	}

	seq := make([]Fragment, 0, 4*len(entries))
	for i, entry := range entries {
		zhPath := filepath.Join(workspace, fmt.Sprintf("word_%d_zh.mp3", i))

		if entry.Secondary == "" {
			// Title line: Chinese only.
			fmt.Printf("Processing (%d/%d): %s\n", i+1, len(entries), entry.Primary)
			warn, err := a.synthesize(ctx, entry.Primary, a.cfg.TTS.ChineseVoice, zhPath)
			if err != nil {
				return nil, err
			}
			if warn != nil {
				stats.Warnings++
			}
			seq = append(seq, Fragment{Path: zhPath, Kind: FragmentWord})
		} else {
			fmt.Printf("Processing (%d/%d): %s - %s\n", i+1, len(entries), entry.Primary, entry.Secondary)
			enPath := filepath.Join(workspace, fmt.Sprintf("word_%d_en.mp3", i))

			// The Chinese and English clips are independent requests
			// writing to distinct files; run them concurrently and wait
			// for both before moving on.
			var wg sync.WaitGroup
			var zhWarn, enWarn *tts.Warning
			var zhErr, enErr error
			wg.Add(2)
			go func() {
				defer wg.Done()
				zhWarn, zhErr = a.synthesize(ctx, entry.Primary, a.cfg.TTS.ChineseVoice, zhPath)
			}()
			go func() {
				defer wg.Done()
				enWarn, enErr = a.synthesize(ctx, entry.Secondary, a.cfg.TTS.EnglishVoice, enPath)
			}()
			wg.Wait()

			if zhErr != nil {
				return nil, zhErr
			}
			if enErr != nil {
				return nil, enErr
			}
			if zhWarn != nil {
				stats.Warnings++
			}
			if enWarn != nil {
				stats.Warnings++
			}

			seq = append(seq,
				Fragment{Path: zhPath, Kind: FragmentWord},
				langPause,
				Fragment{Path: enPath, Kind: FragmentWord},
			)
		}

		if i < len(entries)-1 {
			seq = append(seq, wordPause)
		}
	}
	return seq, nil
}

// synthesize requests one clip under the retry policy. A nil warning means
// success; a non-nil warning means the slot holds fallback silence. The
// returned error is fatal (fallback failure or cancellation).
func (a *Assembler) synthesize(ctx context.Context, text, voice, path string) (*tts.Warning, error) {
	policy := tts.DefaultRetryPolicy(func(ctx context.Context) error {
		return a.muxer.Silence(path, fallbackSilence)
	})
	policy.MaxAttempts = a.cfg.RetryAttempts
	policy.Delay = a.cfg.RetryDelay
	policy.OnRetry = func(attempt, max int, err error) {
		fmt.Printf("    retry (%d/%d): %s\n", attempt, max, text)
	}

	warn, err := policy.Do(ctx, text, func(ctx context.Context) error {
		return a.provider.Synthesize(ctx, text, voice, path)
	})
	if err != nil {
		return nil, err
	}
	if warn != nil {
		fmt.Fprintf(os.Stderr, "    Warning: %s\n", warn)
	}
	return warn, nil
}
