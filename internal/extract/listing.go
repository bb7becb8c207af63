package extract

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// BookURLs returns the absolute book detail URLs linked from one listing
// page, in document order with duplicates removed.
func BookURLs(doc *goquery.Document, base *url.URL) []string {
	seen := make(map[string]struct{})
	out := []string{}
	doc.Find("a.bookTitle[href]").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		href = strings.TrimSpace(href)
		if href == "" {
			return
		}
		ref, err := url.Parse(href)
		if err != nil {
			return
		}
		abs := base.ResolveReference(ref).String()
		if _, dup := seen[abs]; dup {
			return
		}
		seen[abs] = struct{}{}
		out = append(out, abs)
	})
	return out
}

// HasMarker reports whether the raw document contains the given marker
// substring. The orchestrator uses it to verify the crawl session is signed
// in before any task runs.
func HasMarker(data []byte, marker string) bool {
	return marker != "" && strings.Contains(string(data), marker)
}
