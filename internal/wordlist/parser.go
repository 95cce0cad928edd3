package wordlist

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"
	"unicode"
)

// Entry represents one line of a vocabulary file: a Chinese word or phrase
// and its English counterpart. Secondary is empty for title lines that carry
// only the Chinese part.
type Entry struct {
	Primary   string
	Secondary string
}

// ErrEmptyInput is returned when a word list contains no usable entries.
var ErrEmptyInput = errors.New("no usable entries in word list")

// ParseFile reads a word list file into ordered entries.
//
// Each non-blank line is split on the first run of whitespace into at most
// two parts: `<chinese> <english...>`. The English part may itself contain
// spaces. Lines starting with '#' are comments. Blank and comment lines are
// dropped.
func ParseFile(path string) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open word list: %w", err)
	}
	defer f.Close()

	var entries []Entry
	scanner := bufio.NewScanner(f)
	first := true
	for scanner.Scan() {
		line := scanner.Text()
		if first {
			line = strings.TrimPrefix(line, "\uFEFF")
			first = false
		}
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if idx := strings.IndexFunc(line, unicode.IsSpace); idx >= 0 {
			entries = append(entries, Entry{
				Primary:   line[:idx],
				Secondary: strings.TrimSpace(line[idx:]),
			})
		} else {
			// Title line: Chinese only, no English part.
			entries = append(entries, Entry{Primary: line})
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read word list: %w", err)
	}

	if len(entries) == 0 {
		return nil, fmt.Errorf("%s: %w", path, ErrEmptyInput)
	}
	return entries, nil
}

// LoadWords reads a plain one-word-per-line file, dropping duplicates while
// preserving first-seen order. Used by the categorizer.
func LoadWords(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open word file: %w", err)
	}
	defer f.Close()

	var words []string
	seen := make(map[string]bool)
	scanner := bufio.NewScanner(f)
	first := true
	for scanner.Scan() {
		word := scanner.Text()
		if first {
			word = strings.TrimPrefix(word, "\uFEFF")
			first = false
		}
		word = strings.TrimSpace(word)
		if word == "" || seen[word] {
			continue
		}
		words = append(words, word)
		seen[word] = true
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read word file: %w", err)
	}
	return words, nil
}
