// Package lexicon answers "what kind of word is this?" from a WordNet
// dictionary directory, using the index.sense flat file. Each sense key
// embeds the lexicographer file number of its synset, which names the
// semantic field (noun.food, verb.motion, ...).
package lexicon

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// lexnames maps a lexicographer file number to its name, per the WordNet
// lexnames(5WN) table.
var lexnames = [45]string{
	"adj.all", "adj.pert", "adv.all", "noun.Tops", "noun.act",
	"noun.animal", "noun.artifact", "noun.attribute", "noun.body", "noun.cognition",
	"noun.communication", "noun.event", "noun.feeling", "noun.food", "noun.group",
	"noun.location", "noun.motive", "noun.object", "noun.person", "noun.phenomenon",
	"noun.plant", "noun.possession", "noun.process", "noun.quantity", "noun.relation",
	"noun.shape", "noun.state", "noun.substance", "noun.time", "verb.body",
	"verb.change", "verb.cognition", "verb.communication", "verb.competition", "verb.consumption",
	"verb.contact", "verb.creation", "verb.emotion", "verb.motion", "verb.perception",
	"verb.possession", "verb.social", "verb.stative", "verb.weather", "adj.ppl",
}

// sense is one parsed index.sense line for a lemma.
type sense struct {
	posRank  int // noun < verb < adjective < adverb
	senseNum int // 1-based sense number within the POS
	lexnum   int // lexicographer file number
}

// Lexicon holds every lemma's senses, keyed by lowercase lemma.
type Lexicon struct {
	senses map[string][]sense
}

// Load reads dictDir/index.sense. dictDir is the WordNet dict directory
// (the one holding index.sense, data.noun, ...).
func Load(dictDir string) (*Lexicon, error) {
	path := filepath.Join(dictDir, "index.sense")
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open WordNet sense index: %w", err)
	}
	defer f.Close()

	lex := &Lexicon{senses: make(map[string][]sense)}
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lemma, s, ok := parseSenseLine(scanner.Text())
		if !ok {
			continue
		}
		lex.senses[lemma] = append(lex.senses[lemma], s)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	if len(lex.senses) == 0 {
		return nil, fmt.Errorf("%s contains no senses", path)
	}
	return lex, nil
}

// parseSenseLine parses one index.sense line:
//
//	apple%1:13:00:: 07755101 1 10
//
// The sense key before the '%' is the lemma; the fields after it are
// ss_type:lex_filenum:lex_id[:head_word:head_id]; the third whitespace
// field is the sense number within the POS.
func parseSenseLine(line string) (string, sense, bool) {
	fields := strings.Fields(line)
	if len(fields) < 3 {
		return "", sense{}, false
	}
	key := fields[0]
	percent := strings.IndexByte(key, '%')
	if percent < 0 {
		return "", sense{}, false
	}
	lemma := key[:percent]

	parts := strings.Split(key[percent+1:], ":")
	if len(parts) < 3 {
		return "", sense{}, false
	}
	ssType, err := strconv.Atoi(parts[0])
	if err != nil {
		return "", sense{}, false
	}
	lexnum, err := strconv.Atoi(parts[1])
	if err != nil || lexnum < 0 || lexnum >= len(lexnames) {
		return "", sense{}, false
	}
	senseNum, err := strconv.Atoi(fields[2])
	if err != nil {
		return "", sense{}, false
	}

	rank, ok := posRank(ssType)
	if !ok {
		return "", sense{}, false
	}
	return lemma, sense{posRank: rank, senseNum: senseNum, lexnum: lexnum}, true
}

// posRank orders synset types the way sense enumeration does: nouns first,
// then verbs, adjectives (including satellites), adverbs.
func posRank(ssType int) (int, bool) {
	switch ssType {
	case 1: // noun
		return 0, true
	case 2: // verb
		return 1, true
	case 3, 5: // adjective, adjective satellite
		return 2, true
	case 4: // adverb
		return 3, true
	}
	return 0, false
}

// Lexname returns the lexicographer file name of the word's primary sense.
// Multi-word phrases are looked up with spaces replaced by underscores, then
// with spaces removed. Unknown words return ok=false.
func (l *Lexicon) Lexname(word string) (string, bool) {
	lemma := strings.ToLower(strings.TrimSpace(word))
	candidates := []string{
		strings.ReplaceAll(lemma, " ", "_"),
		strings.ReplaceAll(lemma, " ", ""),
	}
	for _, c := range candidates {
		if senses, ok := l.senses[c]; ok {
			return lexnames[primary(senses).lexnum], true
		}
	}
	return "", false
}

// primary picks the first sense in POS-then-sense-number order.
func primary(senses []sense) sense {
	best := senses[0]
	for _, s := range senses[1:] {
		if s.posRank < best.posRank ||
			(s.posRank == best.posRank && s.senseNum < best.senseNum) {
			best = s
		}
	}
	return best
}

// Len returns the number of distinct lemmas loaded.
func (l *Lexicon) Len() int {
	return len(l.senses)
}
