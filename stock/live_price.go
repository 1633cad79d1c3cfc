// Package stock resolves a ticker symbol to a live price off the quote page.
package stock

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"screenerscraper/cache"
	"screenerscraper/fetch"
	"screenerscraper/state"
)

// Tickers are uppercase letters and digits, and must lead with a letter so a
// bare number is never mistaken for a symbol.
var tickerPattern = regexp.MustCompile(`^[A-Z][A-Z0-9]*$`)

// ErrInvalidTicker rejects a malformed ticker before any network call.
var ErrInvalidTicker = errors.New("ticker must be uppercase letters and digits, starting with a letter")

// ErrPriceNotFound means neither the embedded state nor the rendered markup
// carried a price.
var ErrPriceNotFound = errors.New("no price found on quote page")

var pricePaths = []string{"company.current_price", "company.price"}

// ValidateTicker checks the ticker format.
func ValidateTicker(ticker string) error {
	if !tickerPattern.MatchString(ticker) {
		return ErrInvalidTicker
	}
	return nil
}

// Resolver fetches live prices for validated tickers.
type Resolver struct {
	fetcher fetch.Fetcher
	baseURL string
}

// NewResolver creates a price resolver against the given site root.
func NewResolver(f fetch.Fetcher, baseURL string) *Resolver {
	return &Resolver{fetcher: f, baseURL: baseURL}
}

// FetchLivePrice returns the price exactly as the source formats it, no
// rounding or reformatting. The embedded state is tried first, then the
// rendered quote element.
func (r *Resolver) FetchLivePrice(ctx context.Context, ticker string) (string, error) {
	if err := ValidateTicker(ticker); err != nil {
		return "", err
	}

	return cache.Memoize(ctx, "live-price:"+ticker, 5*time.Minute, func() (string, error) {
		quoteURL := r.baseURL + "/company/" + ticker + "/"

		body, err := r.fetcher.Get(ctx, quoteURL)
		if err != nil {
			return "", err
		}
		markup := string(body)

		if st, err := state.Locate(markup); err == nil {
			for _, p := range pricePaths {
				if v := st.Get(p); v.Exists() {
					return v.String(), nil
				}
			}
		}

		if price := priceFromMarkup(markup); price != "" {
			return price, nil
		}
		return "", ErrPriceNotFound
	})
}

// priceFromMarkup reads the quote element the page renders for the current
// price, the same label/value list the company page uses.
func priceFromMarkup(markup string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return ""
	}

	var price string
	doc.Find(".company-ratios li").EachWithBreak(func(i int, s *goquery.Selection) bool {
		label := strings.TrimSpace(s.Find(".name").Text())
		if strings.Contains(label, "Current Price") {
			price = strings.TrimSpace(s.Find(".number").Text())
			return false
		}
		return true
	})
	return price
}
