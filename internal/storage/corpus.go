package storage

import (
	"path/filepath"

	"github.com/shelfdata/bookharvest/internal/catalog"
)

type authorsDoc struct {
	Authors []string `json:"authors"`
}

type genresDoc struct {
	Genres []string `json:"genres"`
}

// CorpusWriter emits the derived artifacts of a merge run.
type CorpusWriter struct {
	dir string
}

// NewCorpusWriter roots the writer at dir, creating it if needed.
func NewCorpusWriter(dir string) (*CorpusWriter, error) {
	if err := ensureDir(dir); err != nil {
		return nil, err
	}
	return &CorpusWriter{dir: dir}, nil
}

// WriteAuthors emits authors.json.
func (w *CorpusWriter) WriteAuthors(authors []string) error {
	if authors == nil {
		authors = []string{}
	}
	return writeJSON(filepath.Join(w.dir, "authors.json"), authorsDoc{Authors: authors})
}

// WriteGenres emits genres.json.
func (w *CorpusWriter) WriteGenres(genres []string) error {
	if genres == nil {
		genres = []string{}
	}
	return writeJSON(filepath.Join(w.dir, "genres.json"), genresDoc{Genres: genres})
}

// WriteBooks emits books.json, the cleaned corpus itself.
func (w *CorpusWriter) WriteBooks(books []catalog.BookRecord) error {
	if books == nil {
		books = []catalog.BookRecord{}
	}
	return writeJSON(filepath.Join(w.dir, "books.json"), bookListDoc{Books: books})
}
