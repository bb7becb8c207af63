// Package places recognizes country names in free text, such as the
// "setting" blurb scraped from a book page.
package places

import (
	"regexp"
	"sort"
	"strings"
	"unicode"

	ahocorasick "github.com/cloudflare/ahocorasick"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Gazetteer matches a fixed country table against free text. The
// Aho-Corasick automaton finds candidate aliases in one pass; a
// word-boundary check then drops hits buried inside larger words
// ("Oman" in "romance", "India" in "Indiana").
type Gazetteer struct {
	matcher  *ahocorasick.Matcher
	boundary []*regexp.Regexp
	canon    []string
}

// NewGazetteer builds the automaton from the country table.
func NewGazetteer() *Gazetteer {
	var (
		aliases  []string
		boundary []*regexp.Regexp
		canon    []string
	)
	for _, c := range countries {
		for _, alias := range c.aliases {
			aliases = append(aliases, alias)
			boundary = append(boundary, regexp.MustCompile(`\b`+regexp.QuoteMeta(alias)+`\b`))
			canon = append(canon, c.name)
		}
	}
	return &Gazetteer{
		matcher:  ahocorasick.NewStringMatcher(aliases),
		boundary: boundary,
		canon:    canon,
	}
}

// Countries returns the deduplicated, sorted country names recognized in
// text. Unrecognized text yields an empty list, never nil.
func (g *Gazetteer) Countries(text string) []string {
	folded := foldText(text)
	out := []string{}
	if folded == "" {
		return out
	}

	seen := make(map[string]struct{})
	for _, idx := range g.matcher.MatchThreadSafe([]byte(folded)) {
		if !g.boundary[idx].MatchString(folded) {
			continue
		}
		name := g.canon[idx]
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// foldText lowercases, strips diacritics, and reduces everything that is
// not a letter or digit to single spaces, so aliases match regardless of
// punctuation and accents.
func foldText(text string) string {
	text = strings.ToLower(text)
	text = removeAccents(text)

	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		} else {
			b.WriteByte(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

func removeAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}
