package quiz

import "github.com/vytor/artikelfinder/internal/models"

// Next pops the last word of the deck. It reports false once the deck is
// exhausted and keeps doing so on every later call.
func (d *Deck) Next() (models.WordEntry, bool) {
	if d.exhausted || len(d.words) == 0 {
		d.exhausted = true
		d.words = nil
		return models.WordEntry{}, false
	}
	last := len(d.words) - 1
	w := d.words[last]
	d.words = d.words[:last]
	return w, true
}

// Exhausted reports whether Next has already run past the last word.
func (d *Deck) Exhausted() bool { return d.exhausted }
