package screener

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"

	"screenerscraper/cache"
	"screenerscraper/fetch"
)

type searchHit struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// ResolveCompanyURL asks the site's search API for the company matching name
// and returns its page URL. The first hit wins; no hits is ErrNoMatch.
// Resolutions move slowly, so they are memoized.
func ResolveCompanyURL(ctx context.Context, f fetch.Fetcher, baseURL, name string) (string, error) {
	if strings.TrimSpace(name) == "" {
		return "", ErrEmptyName
	}

	key := "company-search:" + strings.ToLower(strings.TrimSpace(name))
	return cache.Memoize(ctx, key, 12*time.Hour, func() (string, error) {
		searchURL := fmt.Sprintf("%s/api/company/search/?q=%s", baseURL, url.QueryEscape(name))

		body, err := f.Get(ctx, searchURL)
		if err != nil {
			return "", err
		}

		var hits []searchHit
		if err := json.Unmarshal(body, &hits); err != nil {
			return "", fmt.Errorf("unexpected search response: %w", err)
		}
		if len(hits) == 0 || hits[0].URL == "" {
			return "", ErrNoMatch
		}

		return baseURL + hits[0].URL, nil
	})
}
