// Package catalog holds the static, read-only vocabulary dataset.
package catalog

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/vytor/artikelfinder/internal/logger"
	"github.com/vytor/artikelfinder/internal/models"
)

//go:embed data/words.json
var defaultWords []byte

// Catalog is the immutable word collection. Safe for concurrent reads.
type Catalog struct {
	words  []models.WordEntry
	byID   map[int64]int
	byWord map[string][]int
	sorted []int // indexes into words, German collation order
}

// rawEntry accepts the legacy "turkish" key as translation.
type rawEntry struct {
	ID          int64  `json:"id"`
	Word        string `json:"word"`
	Article     string `json:"article"`
	Plural      string `json:"plural"`
	Translation string `json:"translation"`
	Turkish     string `json:"turkish"`
}

// Default returns the catalog bundled with the binary.
func Default() (*Catalog, error) {
	return Parse(bytes.NewReader(defaultWords))
}

// Load reads a catalog from a JSON file. An empty path loads the bundled dataset.
func Load(path string) (*Catalog, error) {
	log := logger.Default().WithPrefix("catalog")
	if path == "" {
		log.Info("loading bundled word catalog")
		return Default()
	}

	log.Info("loading word catalog: %s", path)
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()

	c, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parse catalog %s: %w", path, err)
	}
	log.Info("catalog loaded: %d words", c.Len())
	return c, nil
}

// Parse decodes a JSON array of word entries.
func Parse(r io.Reader) (*Catalog, error) {
	var raw []rawEntry
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode words: %w", err)
	}

	words := make([]models.WordEntry, 0, len(raw))
	for _, e := range raw {
		translation := e.Translation
		if translation == "" {
			translation = e.Turkish
		}
		words = append(words, models.WordEntry{
			ID:          e.ID,
			Word:        strings.TrimSpace(e.Word),
			Article:     models.Article(strings.TrimSpace(e.Article)),
			Plural:      e.Plural,
			Translation: translation,
		})
	}
	return New(words)
}

// New builds a catalog from entries, rejecting duplicate ids, empty words and
// unknown articles.
func New(words []models.WordEntry) (*Catalog, error) {
	c := &Catalog{
		words:  make([]models.WordEntry, len(words)),
		byID:   make(map[int64]int, len(words)),
		byWord: make(map[string][]int, len(words)),
	}
	copy(c.words, words)

	for i, w := range c.words {
		if w.Word == "" {
			return nil, fmt.Errorf("word %d: empty word", w.ID)
		}
		if !w.Article.Valid() {
			return nil, fmt.Errorf("word %d (%s): unknown article %q", w.ID, w.Word, w.Article)
		}
		if _, dup := c.byID[w.ID]; dup {
			return nil, fmt.Errorf("duplicate word id %d", w.ID)
		}
		c.byID[w.ID] = i
		c.byWord[w.Word] = append(c.byWord[w.Word], i)
	}

	c.sorted = make([]int, len(c.words))
	for i := range c.sorted {
		c.sorted[i] = i
	}
	col := collate.New(language.German)
	keys := make([]string, len(c.words))
	for i, w := range c.words {
		keys[i] = w.Word
	}
	slices.SortStableFunc(c.sorted, func(a, b int) int { return col.CompareString(keys[a], keys[b]) })

	return c, nil
}

// Len returns the number of words.
func (c *Catalog) Len() int { return len(c.words) }

// All returns a copy of every entry in dataset order.
func (c *Catalog) All() []models.WordEntry {
	out := make([]models.WordEntry, len(c.words))
	copy(out, c.words)
	return out
}

// Get looks up a word by id.
func (c *Catalog) Get(id int64) (models.WordEntry, bool) {
	i, ok := c.byID[id]
	if !ok {
		return models.WordEntry{}, false
	}
	return c.words[i], true
}

// Has reports whether id exists.
func (c *Catalog) Has(id int64) bool {
	_, ok := c.byID[id]
	return ok
}

// IDsForWord returns the ids sharing the surface form word, lowest first.
func (c *Catalog) IDsForWord(word string) []int64 {
	idx := c.byWord[word]
	out := make([]int64, 0, len(idx))
	for _, i := range idx {
		out = append(out, c.words[i].ID)
	}
	slices.Sort(out)
	return out
}

// Random picks a uniformly random entry. A nil r uses the global source.
func (c *Catalog) Random(r *rand.Rand) (models.WordEntry, bool) {
	if len(c.words) == 0 {
		return models.WordEntry{}, false
	}
	var i int
	if r != nil {
		i = r.IntN(len(c.words))
	} else {
		i = rand.IntN(len(c.words))
	}
	return c.words[i], true
}

// Alphabetical lists entries in German collation order, keeping those whose
// word starts with prefix (case-insensitive). An empty prefix keeps all.
func (c *Catalog) Alphabetical(prefix string) []models.WordEntry {
	prefix = strings.ToLower(prefix)
	out := make([]models.WordEntry, 0, len(c.sorted))
	for _, i := range c.sorted {
		w := c.words[i]
		if prefix != "" && !strings.HasPrefix(strings.ToLower(w.Word), prefix) {
			continue
		}
		out = append(out, w)
	}
	return out
}
