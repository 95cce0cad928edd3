package convert

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"codeberg.org/taozui/vocaudio/internal/tts"
	"codeberg.org/taozui/vocaudio/internal/wordlist"
)

// mockProvider implements tts.Provider. Texts listed in FailTexts fail on
// every attempt.
type mockProvider struct {
	mu        sync.Mutex
	FailTexts map[string]bool
	Calls     []string
}

func (m *mockProvider) Synthesize(ctx context.Context, text, voice, outputFile string) error {
	m.mu.Lock()
	m.Calls = append(m.Calls, text)
	m.mu.Unlock()

	if m.FailTexts[text] {
		return fmt.Errorf("backend unavailable")
	}
	return os.WriteFile(outputFile, []byte("audio:"+text), 0644)
}

func (m *mockProvider) ListVoices(ctx context.Context) ([]tts.Voice, error) { return nil, nil }
func (m *mockProvider) Name() string                                        { return "mock" }
func (m *mockProvider) IsAvailable() error                                  { return nil }

func (m *mockProvider) callCount(text string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, c := range m.Calls {
		if c == text {
			n++
		}
	}
	return n
}

// mockMuxer implements Muxer, recording every call.
type mockMuxer struct {
	SilenceCalls []time.Duration
	ConcatCalls  [][]string
	FailSilence  bool
}

func (m *mockMuxer) Silence(path string, duration time.Duration) error {
	if m.FailSilence {
		return fmt.Errorf("ffmpeg exploded")
	}
	m.SilenceCalls = append(m.SilenceCalls, duration)
	return os.WriteFile(path, []byte("silence"), 0644)
}

func (m *mockMuxer) Concat(fragments []string, listDir, outputFile string) error {
	m.ConcatCalls = append(m.ConcatCalls, append([]string(nil), fragments...))
	return os.WriteFile(outputFile, []byte("merged"), 0644)
}

func testConfig() *Config {
	cfg := DefaultConfig()
	cfg.RetryDelay = 0 // no reason to sleep in tests
	return cfg
}

func bilingualEntries(n int) []wordlist.Entry {
	entries := make([]wordlist.Entry, n)
	for i := range entries {
		entries[i] = wordlist.Entry{
			Primary:   fmt.Sprintf("中文%d", i),
			Secondary: fmt.Sprintf("english%d", i),
		}
	}
	return entries
}

func TestAssemble_FragmentSequence(t *testing.T) {
	tests := []struct {
		name    string
		entries []wordlist.Entry
		// expected kinds in order
		want []FragmentKind
	}{
		{
			name:    "single bilingual entry",
			entries: bilingualEntries(1),
			want:    []FragmentKind{FragmentWord, FragmentLanguagePause, FragmentWord},
		},
		{
			name:    "two bilingual entries",
			entries: bilingualEntries(2),
			want: []FragmentKind{
				FragmentWord, FragmentLanguagePause, FragmentWord,
				FragmentWordPause,
				FragmentWord, FragmentLanguagePause, FragmentWord,
			},
		},
		{
			name: "title line between words",
			entries: []wordlist.Entry{
				{Primary: "水果词汇"},
				{Primary: "苹果", Secondary: "apple"},
			},
			want: []FragmentKind{
				FragmentWord,
				FragmentWordPause,
				FragmentWord, FragmentLanguagePause, FragmentWord,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			asm := NewAssembler(&mockProvider{}, &mockMuxer{}, testConfig())
			var stats Stats
			seq, err := asm.Assemble(context.Background(), tt.entries, t.TempDir(), &stats)
			if err != nil {
				t.Fatalf("Assemble() error: %v", err)
			}
			if len(seq) != len(tt.want) {
				t.Fatalf("Assemble() produced %d fragments, want %d", len(seq), len(tt.want))
			}
			for i, frag := range seq {
				if frag.Kind != tt.want[i] {
					t.Errorf("fragment %d kind = %v, want %v", i, frag.Kind, tt.want[i])
				}
			}
		})
	}
}

func TestAssemble_FragmentCountFormula(t *testing.T) {
	// N bilingual entries produce 3N word/gap fragments plus N-1 pauses.
	for _, n := range []int{1, 2, 5} {
		asm := NewAssembler(&mockProvider{}, &mockMuxer{}, testConfig())
		var stats Stats
		seq, err := asm.Assemble(context.Background(), bilingualEntries(n), t.TempDir(), &stats)
		if err != nil {
			t.Fatalf("Assemble() error: %v", err)
		}
		want := 3*n + (n - 1)
		if len(seq) != want {
			t.Errorf("N=%d: got %d fragments, want %d", n, len(seq), want)
		}
	}
}

func TestAssemble_SharedSilencesGeneratedOnce(t *testing.T) {
	muxer := &mockMuxer{}
	asm := NewAssembler(&mockProvider{}, muxer, testConfig())
	var stats Stats
	if _, err := asm.Assemble(context.Background(), bilingualEntries(5), t.TempDir(), &stats); err != nil {
		t.Fatalf("Assemble() error: %v", err)
	}
	// One word pause clip and one language pause clip, regardless of N.
	if len(muxer.SilenceCalls) != 2 {
		t.Errorf("Silence called %d times, want 2", len(muxer.SilenceCalls))
	}
}

func TestAssemble_DegradesToSilence(t *testing.T) {
	provider := &mockProvider{FailTexts: map[string]bool{"banana": true}}
	muxer := &mockMuxer{}
	asm := NewAssembler(provider, muxer, testConfig())

	entries := []wordlist.Entry{
		{Primary: "苹果", Secondary: "apple"},
		{Primary: "香蕉", Secondary: "banana"},
	}
	var stats Stats
	seq, err := asm.Assemble(context.Background(), entries, t.TempDir(), &stats)
	if err != nil {
		t.Fatalf("Assemble() must not fail for a degraded word, got: %v", err)
	}

	if stats.Warnings != 1 {
		t.Errorf("Warnings = %d, want 1", stats.Warnings)
	}
	// The failing word keeps its slot: sequence length is unchanged.
	if want := 3*2 + 1; len(seq) != want {
		t.Errorf("got %d fragments, want %d", len(seq), want)
	}
	// The failing attempts were retried the full 3 times.
	if got := provider.callCount("banana"); got != 3 {
		t.Errorf("failing word attempted %d times, want 3", got)
	}
	// The slot file exists (fallback silence written by the muxer).
	enFrag := seq[len(seq)-1]
	if _, err := os.Stat(enFrag.Path); err != nil {
		t.Errorf("degraded slot file missing: %v", err)
	}
}

func TestAssemble_SilenceFailureIsFatal(t *testing.T) {
	asm := NewAssembler(&mockProvider{}, &mockMuxer{FailSilence: true}, testConfig())
	var stats Stats
	_, err := asm.Assemble(context.Background(), bilingualEntries(1), t.TempDir(), &stats)
	if err == nil {
		t.Error("Expected fatal error when silence generation fails")
	}
}

func TestRun_ConcatsInDocumentOrder(t *testing.T) {
	muxer := &mockMuxer{}
	asm := NewAssembler(&mockProvider{}, muxer, testConfig())

	workspace := t.TempDir()
	out := filepath.Join(workspace, "out.mp3")
	stats, err := asm.Run(context.Background(), bilingualEntries(3), workspace, out)
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if stats.Entries != 3 {
		t.Errorf("Entries = %d, want 3", stats.Entries)
	}
	if len(muxer.ConcatCalls) != 1 {
		t.Fatalf("Concat called %d times, want exactly 1", len(muxer.ConcatCalls))
	}

	fragments := muxer.ConcatCalls[0]
	// Word fragments appear as zh then en per entry, ascending entry index.
	var words []string
	for _, f := range fragments {
		base := filepath.Base(f)
		if strings.HasPrefix(base, "word_") && !strings.Contains(base, "pause") {
			words = append(words, base)
		}
	}
	want := []string{"word_0_zh.mp3", "word_0_en.mp3", "word_1_zh.mp3", "word_1_en.mp3", "word_2_zh.mp3", "word_2_en.mp3"}
	if len(words) != len(want) {
		t.Fatalf("got %d word fragments, want %d", len(words), len(want))
	}
	for i := range want {
		if words[i] != want[i] {
			t.Errorf("word fragment %d = %s, want %s", i, words[i], want[i])
		}
	}

	if _, err := os.Stat(out); err != nil {
		t.Errorf("Run() did not produce output file: %v", err)
	}
}
