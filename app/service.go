// Package app wires the extraction pipeline, price resolver and file output
// behind the operations both protocol surfaces expose.
package app

import (
	"context"

	"github.com/phuslu/log"

	"screenerscraper/browser"
	"screenerscraper/cache"
	"screenerscraper/config"
	"screenerscraper/fetch"
	"screenerscraper/output"
	"screenerscraper/screener"
	"screenerscraper/stock"
)

// Service executes one unit of work per call: a company extraction or a
// price lookup. It holds no per-call state.
type Service struct {
	Scraper *screener.Scraper
	Prices  *stock.Resolver
	Writer  *output.Writer
}

// New builds a Service from configuration.
func New(cfg config.Config) *Service {
	cache.SetAddr(cfg.RedisAddr)

	fetcher := fetch.NewClient(cfg.Timeout, cfg.FetchDelay)

	scfg := screener.ScraperConfig{
		BaseURL:               cfg.BaseURL,
		AllowPartial:          cfg.AllowPartial,
		TranscriptConcurrency: cfg.TranscriptConcurrency,
	}
	if cfg.BrowserFallback {
		scfg.Render = browser.NewRenderer(cfg.Timeout).Render
	}

	return &Service{
		Scraper: screener.NewScraper(fetcher, scfg),
		Prices:  stock.NewResolver(fetcher, cfg.BaseURL),
		Writer:  output.NewWriter(cfg.OutputDir),
	}
}

// SectionsSummary describes what landed in the CSV.
type SectionsSummary struct {
	CompanyName  string   `json:"company_name,omitempty"`
	Ratios       int      `json:"ratios"`
	Tables       []string `json:"tables"`
	RelatedLinks int      `json:"related_links"`
	Transcripts  int      `json:"transcripts"`
}

// StockDataResult is the successful outcome of GetStockData.
type StockDataResult struct {
	Message         string          `json:"message"`
	CSVPath         string          `json:"csv_path"`
	Sections        SectionsSummary `json:"sections"`
	TranscriptPaths []string        `json:"transcript_paths,omitempty"`
	Warnings        []string        `json:"warnings,omitempty"`
}

// GetStockData runs the full pipeline for one company: extract, write the
// CSV, then resolve and write transcripts. Transcript failures never undo
// the already-written CSV.
func (s *Service) GetStockData(ctx context.Context, stockName string) (*StockDataResult, error) {
	rec, err := s.Scraper.Extract(ctx, stockName)
	if err != nil {
		return nil, err
	}

	companyName := rec.Info.Name
	if companyName == "" {
		companyName = stockName
	}

	csvPath, err := s.Writer.WriteRecord(rec, companyName)
	if err != nil {
		return nil, err
	}
	log.Info().Str("company", companyName).Str("path", csvPath).Msg("stock data saved")

	transcripts, tWarnings := s.Scraper.Transcripts(ctx, rec)
	paths, wWarnings := s.Writer.WriteTranscripts(companyName, transcripts)

	warnings := append(append(rec.Warnings, tWarnings...), wWarnings...)

	tables := make([]string, 0, len(rec.Tables))
	for _, t := range rec.Tables {
		tables = append(tables, t.Title)
	}

	return &StockDataResult{
		Message: "Data fetched and saved successfully.",
		CSVPath: csvPath,
		Sections: SectionsSummary{
			CompanyName:  rec.Info.Name,
			Ratios:       len(rec.Ratios),
			Tables:       tables,
			RelatedLinks: len(rec.Links),
			Transcripts:  len(paths),
		},
		TranscriptPaths: paths,
		Warnings:        warnings,
	}, nil
}

// FetchLivePrice resolves a ticker to its current price string. No
// filesystem side effects.
func (s *Service) FetchLivePrice(ctx context.Context, ticker string) (string, error) {
	return s.Prices.FetchLivePrice(ctx, ticker)
}
