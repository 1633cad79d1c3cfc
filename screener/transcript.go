package screener

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"sync"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/PuerkitoBio/goquery"
	"github.com/phuslu/log"

	"screenerscraper/fetch"
)

var transcriptPattern = regexp.MustCompile(`(?i)concall|transcript`)

// RenderFunc fetches a page through a real browser. Used as a fallback for
// transcript hosts that build their content with scripts.
type RenderFunc func(ctx context.Context, url string) (string, error)

// TranscriptLinks filters the related links down to concall transcripts.
func TranscriptLinks(links []RelatedLink) []RelatedLink {
	var out []RelatedLink
	for _, l := range links {
		if transcriptPattern.MatchString(l.Text) {
			out = append(out, l)
		}
	}
	return out
}

// FetchTranscripts fetches every transcript link with bounded concurrency.
// One link's failure is recorded as a warning and never cancels the others;
// successful transcripts come back in link order.
func FetchTranscripts(ctx context.Context, f fetch.Fetcher, links []RelatedLink, concurrency int, render RenderFunc) ([]Transcript, []string) {
	if len(links) == 0 {
		return nil, nil
	}
	if concurrency < 1 {
		concurrency = 1
	}

	results := make([]*Transcript, len(links))
	errs := make([]error, len(links))

	sem := make(chan struct{}, concurrency)
	var wg sync.WaitGroup
	for i, link := range links {
		wg.Add(1)
		go func(i int, link RelatedLink) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			body, err := fetchTranscriptBody(ctx, f, link.URL, render)
			if err != nil {
				errs[i] = err
				return
			}
			results[i] = &Transcript{LinkText: link.Text, Body: body}
		}(i, link)
	}
	wg.Wait()

	var transcripts []Transcript
	var warnings []string
	for i, link := range links {
		if errs[i] != nil {
			log.Warn().Str("link", link.Text).Err(errs[i]).Msg("transcript fetch failed")
			warnings = append(warnings, fmt.Sprintf("transcript %q: %v", link.Text, errs[i]))
			continue
		}
		transcripts = append(transcripts, *results[i])
	}
	return transcripts, warnings
}

func fetchTranscriptBody(ctx context.Context, f fetch.Fetcher, url string, render RenderFunc) (string, error) {
	raw, err := f.Get(ctx, url)
	if err != nil {
		return "", err
	}

	body, err := extractText(string(raw))
	if err != nil {
		return "", err
	}

	if body == "" && render != nil {
		rendered, err := render(ctx, url)
		if err != nil {
			return "", err
		}
		body, err = extractText(rendered)
		if err != nil {
			return "", err
		}
	}

	return body, nil
}

// extractText pulls the main content region and flattens it to plain text.
// HTML goes through the markdown converter first so lists and headings keep
// a readable shape before whitespace normalization.
func extractText(markup string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return "", err
	}

	region := doc.Find("main")
	if region.Length() == 0 {
		region = doc.Find("body")
	}

	html, err := goquery.OuterHtml(region)
	if err != nil {
		return "", err
	}

	converter := md.NewConverter("", true, nil)
	text, err := converter.ConvertString(html)
	if err != nil {
		text = region.Text()
	}

	return normalizeWhitespace(text), nil
}

var (
	horizontalRuns = regexp.MustCompile(`[ \t]+`)
	newlinePadding = regexp.MustCompile(` ?\n ?`)
	blankRuns      = regexp.MustCompile(`\n{2,}`)
)

func normalizeWhitespace(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = horizontalRuns.ReplaceAllString(s, " ")
	s = newlinePadding.ReplaceAllString(s, "\n")
	s = blankRuns.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}
