package classify

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"codeberg.org/taozui/vocaudio/internal/lexicon"
	"codeberg.org/taozui/vocaudio/internal/testutil"
)

const senseIndex = `apple%1:13:00:: 07755101 1 10
bread%1:13:00:: 07695965 1 7
cat%1:05:00:: 02124272 1 18
dog%1:05:00:: 02086723 1 42
run%2:38:00:: 01926311 1 106
happy%3:00:00:: 01148283 1 37
`

func loadTestLexicon(t *testing.T) *lexicon.Lexicon {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "index.sense"), []byte(senseIndex), 0644); err != nil {
		t.Fatalf("Failed to write index.sense: %v", err)
	}
	lex, err := lexicon.Load(dir)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	return lex
}

func TestCategoryOf(t *testing.T) {
	lex := loadTestLexicon(t)

	tests := []struct {
		word   string
		want   string
		wantOK bool
	}{
		{"apple", "食物饮品", true}, // noun.food survives the merge unchanged
		{"cat", "动物自然", true},   // noun.animal merges into 动物自然
		{"run", "运动出行", true},   // verb.motion merges into 运动出行
		{"happy", "描述形容", true}, // adj.all merges into 描述形容
		{"zzzz", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.word, func(t *testing.T) {
			got, ok := CategoryOf(lex, tt.word)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("CategoryOf(%q) = %q, %v; want %q, %v", tt.word, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestCategorize(t *testing.T) {
	lex := loadTestLexicon(t)
	categories := Categorize(lex, []string{"apple", "bread", "cat", "dog", "zzzz"})

	if got := categories["食物饮品"]; len(got) != 2 || got[0] != "apple" || got[1] != "bread" {
		t.Errorf("食物饮品 = %v, want [apple bread] in input order", got)
	}
	if got := categories["动物自然"]; len(got) != 2 {
		t.Errorf("动物自然 = %v, want 2 words", got)
	}
	if got := categories[Uncategorized]; len(got) != 1 || got[0] != "zzzz" {
		t.Errorf("%s = %v, want [zzzz]", Uncategorized, got)
	}
}

func TestSplitLarge(t *testing.T) {
	words := func(n int) []string {
		out := make([]string, n)
		for i := range out {
			out[i] = fmt.Sprintf("w%03d", i)
		}
		return out
	}

	tests := []struct {
		name      string
		input     map[string][]string
		wantParts map[string]int
	}{
		{
			name:      "at the limit stays whole",
			input:     map[string][]string{"食物饮品": words(60)},
			wantParts: map[string]int{"食物饮品": 60},
		},
		{
			name:      "one over the limit splits 60+1",
			input:     map[string][]string{"食物饮品": words(61)},
			wantParts: map[string]int{"食物饮品_1": 60, "食物饮品_2": 1},
		},
		{
			name:      "several parts",
			input:     map[string][]string{"描述形容": words(150)},
			wantParts: map[string]int{"描述形容_1": 60, "描述形容_2": 60, "描述形容_3": 30},
		},
		{
			name:      "small bucket untouched",
			input:     map[string][]string{"时间": words(3)},
			wantParts: map[string]int{"时间": 3},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitLarge(tt.input, 60)
			if len(got) != len(tt.wantParts) {
				t.Fatalf("got %d buckets %v, want %d", len(got), keys(got), len(tt.wantParts))
			}
			for name, size := range tt.wantParts {
				if len(got[name]) != size {
					t.Errorf("bucket %s has %d words, want %d", name, len(got[name]), size)
				}
			}
			// No bucket may exceed the limit.
			for name, ws := range got {
				if len(ws) > 60 {
					t.Errorf("bucket %s has %d words, over the limit", name, len(ws))
				}
			}
		})
	}
}

func TestSplitLarge_PreservesOrderAcrossParts(t *testing.T) {
	input := make([]string, 70)
	for i := range input {
		input[i] = fmt.Sprintf("w%03d", i)
	}
	got := SplitLarge(map[string][]string{"c": input}, 60)
	if got["c_1"][0] != "w000" || got["c_1"][59] != "w059" {
		t.Errorf("part 1 boundaries = %s..%s, want w000..w059", got["c_1"][0], got["c_1"][59])
	}
	if got["c_2"][0] != "w060" || got["c_2"][9] != "w069" {
		t.Errorf("part 2 boundaries = %s..%s, want w060..w069", got["c_2"][0], got["c_2"][9])
	}
}

func TestSave(t *testing.T) {
	dir := t.TempDir()
	categories := map[string][]string{
		"食物饮品_1": {"bread", "apple"},
	}
	translations := map[string]string{"apple": "苹果", "bread": "面包"}

	if err := Save(categories, dir, translations); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "食物饮品_1.txt"))
	if err != nil {
		t.Fatalf("category file missing: %v", err)
	}
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	want := []string{
		"食物饮品1", // title drops the part underscore
		"苹果 apple",
		"面包 bread",
	}
	if len(lines) != len(want) {
		t.Fatalf("file has %d lines, want %d: %q", len(lines), len(want), lines)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, lines[i], want[i])
		}
	}
}

func TestSave_MissingTranslationFallsBackToWord(t *testing.T) {
	dir := t.TempDir()
	if err := Save(map[string][]string{"时间": {"today"}}, dir, nil); err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	testutil.AssertFileContains(t, filepath.Join(dir, "时间.txt"), "today today")
}

func keys(m map[string][]string) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
