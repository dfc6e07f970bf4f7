package models

// Article is a German grammatical-gender marker.
type Article string

const (
	ArticleDer Article = "der"
	ArticleDie Article = "die"
	ArticleDas Article = "das"
)

// Articles lists the closed set of answer options, in the order they are offered.
var Articles = []Article{ArticleDer, ArticleDie, ArticleDas}

// Valid reports whether a is one of the known articles.
func (a Article) Valid() bool {
	switch a {
	case ArticleDer, ArticleDie, ArticleDas:
		return true
	}
	return false
}

// WordEntry is an immutable catalog record. Word never includes the article.
type WordEntry struct {
	ID          int64   `json:"id"`
	Word        string  `json:"word"`
	Article     Article `json:"article"`
	Plural      string  `json:"plural,omitempty"`
	Translation string  `json:"translation,omitempty"`
}
