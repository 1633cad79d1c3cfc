package screener

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ExtractRelatedLinks collects peer-company anchors in DOM order. Company
// links are recognized by their "/company/" path; fragment links are noise
// from in-page navigation and are dropped. An absent region yields an empty
// slice, not an error.
func ExtractRelatedLinks(doc *goquery.Document, baseURL string) []RelatedLink {
	var links []RelatedLink

	doc.Find("a").Each(func(i int, s *goquery.Selection) {
		href, ok := s.Attr("href")
		if !ok || href == "" {
			return
		}
		if !strings.Contains(href, "/company/") || strings.Contains(href, "#") {
			return
		}
		text := strings.TrimSpace(s.Text())
		if text == "" {
			return
		}
		links = append(links, RelatedLink{Text: text, URL: absoluteURL(baseURL, href)})
	})

	return links
}

func absoluteURL(base, href string) string {
	if strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://") {
		return href
	}
	return base + href
}
