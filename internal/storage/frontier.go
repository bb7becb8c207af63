package storage

import (
	"path/filepath"

	"github.com/shelfdata/bookharvest/internal/catalog"
)

type frontierDoc struct {
	BookURLs []string `json:"books_urls"`
}

// FrontierStore caches the resolved book-URL list of each task, one JSON
// file per (category, page).
type FrontierStore struct {
	dir string
}

// NewFrontierStore roots the store at dir, creating it if needed.
func NewFrontierStore(dir string) (*FrontierStore, error) {
	if err := ensureDir(dir); err != nil {
		return nil, err
	}
	return &FrontierStore{dir: dir}, nil
}

// Save persists the frontier for task, replacing any prior copy.
func (s *FrontierStore) Save(task catalog.Task, urls []string) error {
	if urls == nil {
		urls = []string{}
	}
	return writeJSON(s.path(task), frontierDoc{BookURLs: urls})
}

// Load reads the cached frontier for task. A missing file surfaces as
// fs.ErrNotExist for the caller to fall back to a listing fetch.
func (s *FrontierStore) Load(task catalog.Task) ([]string, error) {
	var doc frontierDoc
	if err := readJSON(s.path(task), &doc); err != nil {
		return nil, err
	}
	if doc.BookURLs == nil {
		doc.BookURLs = []string{}
	}
	return doc.BookURLs, nil
}

func (s *FrontierStore) path(task catalog.Task) string {
	return filepath.Join(s.dir, task.Key()+".json")
}
