package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/shelfdata/bookharvest/internal/catalog"
)

type bookListDoc struct {
	Books []catalog.BookRecord `json:"books"`
}

// ShardStore holds the per-task record shards the merge pipeline consumes,
// one JSON file per (category, page).
type ShardStore struct {
	dir string
}

// NewShardStore roots the store at dir, creating it if needed.
func NewShardStore(dir string) (*ShardStore, error) {
	if err := ensureDir(dir); err != nil {
		return nil, err
	}
	return &ShardStore{dir: dir}, nil
}

// Save persists the records scraped for task, replacing any prior shard.
func (s *ShardStore) Save(task catalog.Task, books []catalog.BookRecord) error {
	if books == nil {
		books = []catalog.BookRecord{}
	}
	return writeJSON(filepath.Join(s.dir, task.Key()+".json"), bookListDoc{Books: books})
}

// Has reports whether a shard for task already exists, for resume checks.
func (s *ShardStore) Has(task catalog.Task) bool {
	_, err := os.Stat(filepath.Join(s.dir, task.Key()+".json"))
	return err == nil
}

// List returns every shard filename in lexicographic order. Merge results
// depend on this ordering, so it is pinned here rather than left to
// directory enumeration.
func (s *ShardStore) List() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("list shards: %w", err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names, nil
}

// Load reads one shard by filename, as returned by List.
func (s *ShardStore) Load(name string) ([]catalog.BookRecord, error) {
	var doc bookListDoc
	if err := readJSON(filepath.Join(s.dir, name), &doc); err != nil {
		return nil, err
	}
	return doc.Books, nil
}
