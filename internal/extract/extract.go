// Package extract pulls book fields out of fetched catalog documents. Every
// field is extracted independently so one bad element never poisons the
// rest of the record.
package extract

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/shelfdata/bookharvest/internal/catalog"
)

// ErrMetaColumnMissing marks a detail document without the meta column that
// carries title and author. Such a book is unrecoverable and gets dropped.
var ErrMetaColumnMissing = errors.New("meta column missing")

// Document parses raw fetched bytes into a queryable document.
func Document(data []byte) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}
	return doc, nil
}

// Extract builds a BookRecord from one detail document. Title and author are
// mandatory; everything else nulls out on its own extraction failure without
// affecting other fields.
func Extract(doc *goquery.Document, bookURL string) (catalog.BookRecord, error) {
	meta := doc.Find("#metacol")
	title := firstText(meta.Find("h1#bookTitle"))
	author := firstText(meta.Find("a.authorName span[itemprop='name']"))
	if meta.Length() == 0 || title == "" || author == "" {
		return catalog.BookRecord{}, fmt.Errorf("extract %s: %w", bookURL, ErrMetaColumnMissing)
	}

	rec := catalog.BookRecord{
		Title:        &title,
		Author:       &author,
		Genres:       genres(doc),
		GoodreadsURL: bookURL,
	}
	rec.ISBN = isbn(doc)
	rec.Description = description(doc)
	rec.RatingCount = ratingCount(doc)
	rec.RatingAverage = ratingAverage(doc)
	rec.Pages = pageCount(doc)
	rec.BookFormat = optionalText(doc, "span[itemprop='bookFormat']")
	rec.Language = optionalText(doc, "div[itemprop='inLanguage']")
	rec.DatePublished, rec.Publisher = publication(doc)
	rec.Settings = settings(doc)
	return rec, nil
}

// isbn reads the page metadata tag; the catalog emits the literal string
// "null" when it has no ISBN.
func isbn(doc *goquery.Document) *string {
	content, ok := doc.Find("meta[property='books:isbn']").First().Attr("content")
	if !ok {
		return nil
	}
	content = strings.TrimSpace(content)
	if content == "" || content == "null" {
		return nil
	}
	return &content
}

// description prefers the last span in the description block, which holds
// the expanded text when the page renders a truncated preview first.
func description(doc *goquery.Document) *string {
	spans := doc.Find("#description span")
	if spans.Length() == 0 {
		return nil
	}
	text := strings.TrimSpace(spans.Last().Text())
	if text == "" {
		return nil
	}
	return &text
}

func ratingCount(doc *goquery.Document) *int {
	content, ok := doc.Find("meta[itemprop='ratingCount']").First().Attr("content")
	if !ok {
		return nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(content))
	if err != nil {
		return nil
	}
	return &n
}

func ratingAverage(doc *goquery.Document) *float64 {
	raw := firstText(doc.Find("span[itemprop='ratingValue']"))
	if raw == "" {
		return nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	return &f
}

// pageCount parses the leading integer of a "312 pages" label.
func pageCount(doc *goquery.Document) *int {
	raw := firstText(doc.Find("span[itemprop='numberOfPages']"))
	if raw == "" {
		return nil
	}
	n, err := strconv.Atoi(strings.Fields(raw)[0])
	if err != nil {
		return nil
	}
	return &n
}

// genres collects every genre link label in document order, duplicates
// included. A page without genre links yields an empty list, never null.
func genres(doc *goquery.Document) []string {
	out := []string{}
	doc.Find("a.bookPageGenreLink").Each(func(_ int, s *goquery.Selection) {
		if label := strings.TrimSpace(s.Text()); label != "" {
			out = append(out, label)
		}
	})
	return out
}

// publication splits the second details row by line position: line 1 is the
// publication date, line 2 the "by <publisher>" credit. Any missing index
// nulls only the dependent field.
func publication(doc *goquery.Document) (datePublished, publisher *string) {
	row := doc.Find("#details .row").Eq(1)
	if row.Length() == 0 {
		return nil, nil
	}
	lines := strings.Split(row.Text(), "\n")
	if len(lines) > 1 {
		if v := strings.TrimSpace(lines[1]); v != "" {
			datePublished = &v
		}
	}
	if len(lines) > 2 {
		v := strings.TrimPrefix(strings.TrimSpace(lines[2]), "by ")
		if v != "" {
			publisher = &v
		}
	}
	return datePublished, publisher
}

// settings reads the element positionally following the "Setting" row title
// in the data box. The value is kept untrimmed; on malformed markup the
// sibling can be a script body, which the merge pipeline rectifies later.
func settings(doc *goquery.Document) catalog.Settings {
	var out catalog.Settings
	doc.Find("#bookDataBox .infoBoxRowTitle").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if !strings.Contains(s.Text(), "Setting") {
			return true
		}
		if value := s.Next().Text(); strings.TrimSpace(value) != "" {
			out = catalog.RawSettings(value)
		}
		return false
	})
	return out
}

func optionalText(doc *goquery.Document, selector string) *string {
	text := firstText(doc.Find(selector))
	if text == "" {
		return nil
	}
	return &text
}

func firstText(sel *goquery.Selection) string {
	return strings.TrimSpace(sel.First().Text())
}
