// Package catalog defines the record types shared by the crawl and merge
// halves of the system.
package catalog

import "fmt"

// Task identifies one listing page of one category. The full crawl is a
// flat sequence of tasks, each producing at most one shard.
type Task struct {
	Category string
	Page     int
}

// Key returns the shard and ledger key for the task, "{category}_{page}".
func (t Task) Key() string {
	return fmt.Sprintf("%s_%d", t.Category, t.Page)
}

// BookRecord is the unit of harvested data, one per book detail page.
// Optional fields are pointers: nil means extraction failed for that field
// and marshals as JSON null. Genres is never null; a page without genre
// links yields an empty list.
type BookRecord struct {
	ISBN          *string  `json:"isbn"`
	Title         *string  `json:"title"`
	Author        *string  `json:"author"`
	Settings      Settings `json:"settings"`
	Description   *string  `json:"description"`
	Publisher     *string  `json:"publisher"`
	DatePublished *string  `json:"date_published"`
	RatingCount   *int     `json:"rating_count"`
	RatingAverage *float64 `json:"rating_average"`
	BookFormat    *string  `json:"book_format"`
	Pages         *int     `json:"pages"`
	Language      *string  `json:"language"`
	Genres        []string `json:"genres"`
	GoodreadsURL  string   `json:"goodreads_url"`
}

// StringFields returns pointers to every free-text field so normalization
// passes can treat them uniformly instead of naming each one.
func (r *BookRecord) StringFields() []**string {
	return []**string{
		&r.ISBN,
		&r.Title,
		&r.Author,
		&r.Description,
		&r.Publisher,
		&r.DatePublished,
		&r.BookFormat,
		&r.Language,
	}
}
