package translate

import (
	"encoding/json"
	"fmt"
	"os"
)

// Cache is a word → translation map persisted as a JSON file, so repeated
// runs only pay for words they have not seen before.
type Cache struct {
	path    string
	entries map[string]string
}

// LoadCache reads the cache file at path. A missing file yields an empty
// cache; a corrupt file is an error.
func LoadCache(path string) (*Cache, error) {
	c := &Cache{
		path:    path,
		entries: make(map[string]string),
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return c, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read translation cache: %w", err)
	}
	if err := json.Unmarshal(data, &c.entries); err != nil {
		return nil, fmt.Errorf("failed to parse translation cache %s: %w", path, err)
	}
	return c, nil
}

// Get returns the cached translation for word.
func (c *Cache) Get(word string) (string, bool) {
	translation, ok := c.entries[word]
	return translation, ok
}

// Put stores a translation. Save must be called to persist it.
func (c *Cache) Put(word, translation string) {
	c.entries[word] = translation
}

// Len returns the number of cached translations.
func (c *Cache) Len() int {
	return len(c.entries)
}

// Save writes the cache back to its file.
func (c *Cache) Save() error {
	data, err := json.MarshalIndent(c.entries, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode translation cache: %w", err)
	}
	if err := os.WriteFile(c.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write translation cache: %w", err)
	}
	return nil
}
