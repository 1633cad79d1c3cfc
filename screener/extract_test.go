package screener

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"screenerscraper/cache"
	"screenerscraper/state"
)

const testBase = "https://example.com"

// Keep the memoizer away from any real Redis so every lookup hits the stub.
func TestMain(m *testing.M) {
	cache.SetAddr("localhost:1")
	os.Exit(m.Run())
}

// stubFetcher serves canned bodies per URL and counts invocations.
type stubFetcher struct {
	mu    sync.Mutex
	calls int
	pages map[string]string
	errs  map[string]error
}

func (s *stubFetcher) Get(ctx context.Context, url string) ([]byte, error) {
	s.mu.Lock()
	s.calls++
	s.mu.Unlock()
	if err, ok := s.errs[url]; ok {
		return nil, err
	}
	if body, ok := s.pages[url]; ok {
		return []byte(body), nil
	}
	return nil, fmt.Errorf("unexpected fetch: %s", url)
}

func (s *stubFetcher) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func searchURL(name string) string {
	return testBase + "/api/company/search/?q=" + name
}

const companyPage = `<html><head>
<script>window.__INITIAL_STATE__ = {"company":{"name":"TCS","mcap":"1234567"},"ratios":{"P/E":"28.5"}};</script>
</head><body>
<h2>Quarterly Results</h2>
<table class="data-table">
  <thead><tr><th>Mar 2023</th><th>Jun 2023</th></tr></thead>
  <tbody><tr><td>100</td><td>110</td></tr></tbody>
</table>
</body></html>`

func TestExtractAssemblesRecord(t *testing.T) {
	f := &stubFetcher{pages: map[string]string{
		searchURL("TCSX1"): `[{"name":"TCS","url":"/company/TCS/"}]`,
		testBase + "/company/TCS/": companyPage,
	}}
	s := NewScraper(f, ScraperConfig{BaseURL: testBase})

	rec, err := s.Extract(context.Background(), "TCSX1")
	require.NoError(t, err)

	assert.Equal(t, "TCS", rec.Info.Name)
	assert.Equal(t, "1234567", rec.Info.MarketCap)
	assert.Equal(t, testBase+"/company/TCS/", rec.Info.URL)

	require.Len(t, rec.Ratios, 1)
	assert.Equal(t, Ratio{Label: "P/E", Value: "28.5"}, rec.Ratios[0])

	require.Len(t, rec.Tables, 1)
	assert.Equal(t, "Quarterly Results", rec.Tables[0].Title)
	assert.Equal(t, []string{"Mar 2023", "Jun 2023"}, rec.Tables[0].Headers)
	assert.Equal(t, [][]string{{"100", "110"}}, rec.Tables[0].Rows)

	assert.Empty(t, rec.Links)
	assert.Empty(t, rec.Warnings)
}

func TestExtractEmptyNameRejectedBeforeFetch(t *testing.T) {
	f := &stubFetcher{}
	s := NewScraper(f, ScraperConfig{BaseURL: testBase})

	_, err := s.Extract(context.Background(), "  ")
	assert.ErrorIs(t, err, ErrEmptyName)
	assert.Zero(t, f.callCount())
}

func TestExtractNoSearchMatch(t *testing.T) {
	f := &stubFetcher{pages: map[string]string{
		searchURL("NOSUCHCO1"): `[]`,
	}}
	s := NewScraper(f, ScraperConfig{BaseURL: testBase})

	_, err := s.Extract(context.Background(), "NOSUCHCO1")
	assert.ErrorIs(t, err, ErrNoMatch)
}

func TestExtractMissingStateAborts(t *testing.T) {
	f := &stubFetcher{pages: map[string]string{
		searchURL("NOSTATE1"): `[{"name":"NoState","url":"/company/NOSTATE1/"}]`,
		testBase + "/company/NOSTATE1/": `<html><body><h2>Peers</h2><table><thead><tr><th>Name</th></tr></thead></table></body></html>`,
	}}
	s := NewScraper(f, ScraperConfig{BaseURL: testBase})

	_, err := s.Extract(context.Background(), "NOSTATE1")
	assert.ErrorIs(t, err, state.ErrNotFound)
}

func TestExtractMissingStateDegradesWhenPartialAllowed(t *testing.T) {
	f := &stubFetcher{pages: map[string]string{
		searchURL("NOSTATE2"): `[{"name":"NoState","url":"/company/NOSTATE2/"}]`,
		testBase + "/company/NOSTATE2/": `<html><body><h2>Peers</h2><table><thead><tr><th>Name</th></tr></thead></table></body></html>`,
	}}
	s := NewScraper(f, ScraperConfig{BaseURL: testBase, AllowPartial: true})

	rec, err := s.Extract(context.Background(), "NOSTATE2")
	require.NoError(t, err)

	assert.Empty(t, rec.Info.Name)
	assert.Equal(t, testBase+"/company/NOSTATE2/", rec.Info.URL)
	assert.Empty(t, rec.Ratios)
	require.Len(t, rec.Tables, 1)
	require.Len(t, rec.Warnings, 1)
	assert.Contains(t, rec.Warnings[0], "embedded state unavailable")
}

func TestAssembleNeverReorders(t *testing.T) {
	tables := []NamedTable{{Title: "B"}, {Title: "A"}}
	rec := Assemble(CompanyInfo{}, nil, tables, nil, nil)

	// Harvest order survives assembly untouched.
	assert.Equal(t, "B", rec.Tables[0].Title)
	assert.Equal(t, "A", rec.Tables[1].Title)
}
