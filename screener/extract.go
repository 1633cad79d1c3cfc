package screener

import (
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/phuslu/log"

	"screenerscraper/fetch"
	"screenerscraper/state"
)

// ScraperConfig tunes one Scraper instance.
type ScraperConfig struct {
	BaseURL string

	// AllowPartial keeps the extraction alive when the embedded state is
	// missing or malformed, degrading to a tables/links-only record. The
	// default aborts, since without state the company and ratio sections
	// cannot be populated.
	AllowPartial bool

	TranscriptConcurrency int

	// Render, when set, is used as a fallback for script-built transcript
	// pages.
	Render RenderFunc
}

// Scraper runs the extraction pipeline for one company at a time.
type Scraper struct {
	fetcher fetch.Fetcher
	cfg     ScraperConfig
}

// NewScraper creates a scraper instance.
func NewScraper(f fetch.Fetcher, cfg ScraperConfig) *Scraper {
	if cfg.TranscriptConcurrency < 1 {
		cfg.TranscriptConcurrency = 3
	}
	return &Scraper{fetcher: f, cfg: cfg}
}

// Extract resolves a company name, fetches its page and assembles a
// StockRecord. Validation and lookup failures surface immediately; section
// absences degrade to warnings on the record.
func (s *Scraper) Extract(ctx context.Context, name string) (*StockRecord, error) {
	pageURL, err := ResolveCompanyURL(ctx, s.fetcher, s.cfg.BaseURL, name)
	if err != nil {
		return nil, err
	}

	raw, err := s.fetcher.Get(ctx, pageURL)
	if err != nil {
		return nil, err
	}
	markup := string(raw)

	var info CompanyInfo
	var ratios RatioSet
	var warnings []string

	st, err := state.Locate(markup)
	if err != nil {
		if !s.cfg.AllowPartial {
			return nil, err
		}
		log.Warn().Str("company", name).Err(err).Msg("embedded state unavailable, building partial record")
		warnings = append(warnings, "embedded state unavailable: "+err.Error())
	} else {
		info = ExtractCompanyInfo(st)
		ratios = ExtractRatios(st)
	}
	if info.URL == "" {
		info.URL = pageURL
	}

	tables, tableWarnings := HarvestTables(markup)
	warnings = append(warnings, tableWarnings...)

	var links []RelatedLink
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		warnings = append(warnings, "related links unavailable: "+err.Error())
	} else {
		links = ExtractRelatedLinks(doc, s.cfg.BaseURL)
	}

	return Assemble(info, ratios, tables, links, warnings), nil
}

// Transcripts fetches the concall transcripts referenced by a record's
// related links. Failures are per-transcript warnings, never an error.
func (s *Scraper) Transcripts(ctx context.Context, rec *StockRecord) ([]Transcript, []string) {
	return FetchTranscripts(ctx, s.fetcher, TranscriptLinks(rec.Links), s.cfg.TranscriptConcurrency, s.cfg.Render)
}

// Assemble merges the independently extracted sections into a StockRecord.
// Section order is fixed by the record's shape and never depends on content;
// assembly itself cannot fail.
func Assemble(info CompanyInfo, ratios RatioSet, tables []NamedTable, links []RelatedLink, warnings []string) *StockRecord {
	return &StockRecord{
		Info:     info,
		Ratios:   ratios,
		Tables:   tables,
		Links:    links,
		Warnings: warnings,
	}
}
