package translate

import (
	"context"
	"fmt"
	"os"
	"strings"
)

// batchSize is the number of words sent per translation request.
const batchSize = 50

// TranslateAll returns a Chinese translation for every word, consulting the
// cache first and translating the rest in batches. When a batch response
// does not line up word for word, the batch falls back to one request per
// word; a word that still cannot be translated maps to itself so the
// pipeline never loses an entry. New translations are persisted to the
// cache after every batch.
func TranslateAll(ctx context.Context, tr Translator, cache *Cache, words []string) (map[string]string, error) {
	result := make(map[string]string, len(words))

	var missing []string
	for _, word := range words {
		if translation, ok := cache.Get(word); ok {
			result[word] = translation
		} else {
			missing = append(missing, word)
		}
	}

	if len(missing) == 0 {
		fmt.Printf("All %d words found in translation cache\n", len(words))
		return result, nil
	}
	fmt.Printf("Translating %d word(s) via %s (%d cached)\n", len(missing), tr.Name(), len(words)-len(missing))

	for start := 0; start < len(missing); start += batchSize {
		end := start + batchSize
		if end > len(missing) {
			end = len(missing)
		}
		batch := missing[start:end]
		fmt.Printf("  batch %d-%d of %d\n", start+1, end, len(missing))

		translations, err := translateBatch(ctx, tr, batch)
		if err != nil {
			return nil, err
		}
		for i, word := range batch {
			result[word] = translations[i]
			cache.Put(word, translations[i])
		}
		if err := cache.Save(); err != nil {
			return nil, err
		}
	}
	return result, nil
}

// translateBatch translates one batch, falling back to per-word requests if
// the batched response cannot be aligned with the input.
func translateBatch(ctx context.Context, tr Translator, words []string) ([]string, error) {
	response, err := tr.Translate(ctx, strings.Join(words, "\n"))
	if err == nil {
		lines := splitLines(response)
		if len(lines) == len(words) {
			return lines, nil
		}
		fmt.Fprintf(os.Stderr, "Warning: batch returned %d lines for %d words, retrying one by one\n",
			len(lines), len(words))
	} else {
		fmt.Fprintf(os.Stderr, "Warning: batch translation failed (%v), retrying one by one\n", err)
	}

	translations := make([]string, len(words))
	for i, word := range words {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		translation, err := tr.Translate(ctx, word)
		if err != nil || strings.TrimSpace(translation) == "" {
			fmt.Fprintf(os.Stderr, "Warning: could not translate %q, keeping the word as-is\n", word)
			translations[i] = word
			continue
		}
		translations[i] = firstLine(translation)
	}
	return translations, nil
}

func splitLines(s string) []string {
	var lines []string
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

func firstLine(s string) string {
	lines := splitLines(s)
	if len(lines) == 0 {
		return s
	}
	return lines[0]
}
