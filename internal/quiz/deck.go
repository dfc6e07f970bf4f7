// Package quiz is the article quiz engine: it builds a shuffled deck from a
// word source, hands out one question at a time, scores answers into lifetime
// per-word stats and credits the daily goal streak.
package quiz

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/vytor/artikelfinder/internal/models"
)

var (
	// ErrEmptySource means the chosen source resolved to no words; the session
	// must not start and the user should be told how to fill the source.
	ErrEmptySource = errors.New("quiz: word source is empty")
	// ErrUnknownSource means the source kind is not one of the known variants.
	ErrUnknownSource = errors.New("quiz: unknown word source")
)

// Deck is the ordered working set of one session. Questions are drawn from the end.
type Deck struct {
	words     []models.WordEntry
	exhausted bool
}

// NewDeck wraps words as a deck without shuffling. The last element is drawn first.
func NewDeck(words []models.WordEntry) *Deck {
	d := &Deck{words: make([]models.WordEntry, len(words))}
	copy(d.words, words)
	return d
}

// BuildDeck resolves src against words, shuffles the candidates uniformly and
// truncates them to limit when limit > 0. Neither words nor favorites are modified.
func BuildDeck(src models.QuizSource, words []models.WordEntry, favorites map[int64]struct{}, limit int, rng *rand.Rand) (*Deck, error) {
	candidates, err := resolveSource(src, words, favorites)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptySource, src.Kind)
	}

	shuffle(candidates, rng)

	if limit > 0 && len(candidates) > limit {
		candidates = candidates[:limit]
	}
	return &Deck{words: candidates}, nil
}

// resolveSource always returns a fresh slice.
func resolveSource(src models.QuizSource, words []models.WordEntry, favorites map[int64]struct{}) ([]models.WordEntry, error) {
	var out []models.WordEntry
	switch src.Kind {
	case models.SourceAllWords:
		out = make([]models.WordEntry, len(words))
		copy(out, words)
	case models.SourceFavoritesOnly:
		for _, w := range words {
			if _, ok := favorites[w.ID]; ok {
				out = append(out, w)
			}
		}
	case models.SourceCuratedList:
		names := make(map[string]struct{}, len(src.Words))
		for _, n := range src.Words {
			names[n] = struct{}{}
		}
		for _, w := range words {
			if _, ok := names[w.Word]; ok {
				out = append(out, w)
			}
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownSource, src.Kind)
	}
	return out, nil
}

// shuffle is an in-place Fisher-Yates shuffle; every permutation is equally likely.
func shuffle(words []models.WordEntry, rng *rand.Rand) {
	swap := func(i, j int) { words[i], words[j] = words[j], words[i] }
	if rng == nil {
		rand.Shuffle(len(words), swap)
		return
	}
	rng.Shuffle(len(words), swap)
}

// Len returns the number of words not yet drawn.
func (d *Deck) Len() int { return len(d.words) }

// Words returns a copy of the undrawn words in deck order.
func (d *Deck) Words() []models.WordEntry {
	out := make([]models.WordEntry, len(d.words))
	copy(out, d.words)
	return out
}
