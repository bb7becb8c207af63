package pipeline

import (
	"sort"
	"strings"

	"github.com/shelfdata/bookharvest/internal/catalog"
)

// scriptMarker betrays a settings block that swallowed page script instead
// of text; such values carry no usable place information.
const scriptMarker = "//<![CDATA["

// genreRepairs maps truncated genre labels back to their full form. The
// list is ordered and the first fragment contained in a label wins, so
// longer fragments come first.
var genreRepairs = []struct {
	fragment string
	full     string
}{
	{"International Rel...", "International Relations"},
	{"Historical Ficti...", "Historical Fiction"},
	{"Science Ficti...", "Science Fiction"},
	{"Nonficti...", "Nonfiction"},
	{"Hi...", "History"},
}

// Dedup collapses records sharing a goodreads_url. The record seen last
// wins, but it keeps the slot where its URL first appeared, so the output
// order is stable across runs.
func Dedup(records []catalog.BookRecord) []catalog.BookRecord {
	index := make(map[string]int, len(records))
	out := make([]catalog.BookRecord, 0, len(records))
	for _, rec := range records {
		if at, ok := index[rec.GoodreadsURL]; ok {
			out[at] = rec
			continue
		}
		index[rec.GoodreadsURL] = len(out)
		out = append(out, rec)
	}
	return out
}

// Validate drops records missing a title or author.
func Validate(records []catalog.BookRecord) []catalog.BookRecord {
	out := make([]catalog.BookRecord, 0, len(records))
	for _, rec := range records {
		if rec.Title == nil || rec.Author == nil {
			continue
		}
		out = append(out, rec)
	}
	return out
}

// RectifySettings converts raw settings text into recognized country
// lists. Text that swallowed page script becomes null; null values pass
// through without invoking the extractor.
func RectifySettings(records []catalog.BookRecord, extractor CountryExtractor) {
	for i := range records {
		s := records[i].Settings
		if s.IsNull() || s.Rectified() {
			continue
		}
		text := *s.Text
		if strings.Contains(text, scriptMarker) {
			records[i].Settings = catalog.Settings{}
			continue
		}
		records[i].Settings = catalog.PlaceSettings(extractor.Countries(text))
	}
}

// NullifyBlanks nulls every free-text field whose trimmed value is empty,
// in one generic pass over all of them.
func NullifyBlanks(records []catalog.BookRecord) {
	for i := range records {
		for _, field := range records[i].StringFields() {
			if *field != nil && strings.TrimSpace(**field) == "" {
				*field = nil
			}
		}
	}
}

// CleanGenres repairs truncated labels and deduplicates each record's
// genre list. Output order is sorted; the scraped order carries no
// meaning.
func CleanGenres(records []catalog.BookRecord) {
	for i := range records {
		records[i].Genres = cleanGenreList(records[i].Genres)
	}
}

func cleanGenreList(genres []string) []string {
	seen := make(map[string]struct{}, len(genres))
	out := make([]string, 0, len(genres))
	for _, g := range genres {
		g = repairGenre(g)
		if _, dup := seen[g]; dup {
			continue
		}
		seen[g] = struct{}{}
		out = append(out, g)
	}
	sort.Strings(out)
	return out
}

func repairGenre(label string) string {
	for _, r := range genreRepairs {
		if strings.Contains(label, r.fragment) {
			return r.full
		}
	}
	return label
}

// CleanAuthors collapses whitespace runs in author names to single spaces.
func CleanAuthors(records []catalog.BookRecord) {
	for i := range records {
		if records[i].Author == nil {
			continue
		}
		collapsed := strings.Join(strings.Fields(*records[i].Author), " ")
		records[i].Author = &collapsed
	}
}

func collectAuthors(records []catalog.BookRecord) []string {
	seen := make(map[string]struct{}, len(records))
	out := make([]string, 0, len(records))
	for _, rec := range records {
		if rec.Author == nil {
			continue
		}
		if _, dup := seen[*rec.Author]; dup {
			continue
		}
		seen[*rec.Author] = struct{}{}
		out = append(out, *rec.Author)
	}
	sort.Strings(out)
	return out
}

func collectGenres(records []catalog.BookRecord) []string {
	seen := make(map[string]struct{})
	out := []string{}
	for _, rec := range records {
		for _, g := range rec.Genres {
			if _, dup := seen[g]; dup {
				continue
			}
			seen[g] = struct{}{}
			out = append(out, g)
		}
	}
	sort.Strings(out)
	return out
}
