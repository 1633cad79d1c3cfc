// Package screener extracts company data from the upstream site's pages:
// the embedded state blob, the rendered tables, related-company links and
// concall transcripts.
package screener

import "errors"

// ErrEmptyName rejects a blank stock name before any network call.
var ErrEmptyName = errors.New("stock name must not be empty")

// ErrNoMatch means the search API returned no company for the given name.
var ErrNoMatch = errors.New("no results found for the given stock name")

// CompanyInfo holds the identity and market metrics pulled from the embedded
// state. An empty string means the source field was absent; absent fields are
// never serialized.
type CompanyInfo struct {
	Name         string
	URL          string
	MarketCap    string
	CurrentPrice string
	HighLow      string
}

// Ratio is one label/value pair from the ratios container. Values keep their
// source formatting (units, commas, percent signs).
type Ratio struct {
	Label string
	Value string
}

// RatioSet preserves the source order of the ratios container. Labels are not
// an enum; whatever the page carries is kept.
type RatioSet []Ratio

// NamedTable is one rendered table in document order. Header and row widths
// are preserved exactly as found, including duplicates and ragged rows.
type NamedTable struct {
	Title   string
	Headers []string
	Rows    [][]string
}

// RelatedLink is an anchor from the related-companies region.
type RelatedLink struct {
	Text string
	URL  string
}

// Transcript is one fetched concall transcript. LinkText feeds filename
// derivation, Body is whitespace-normalized plain text.
type Transcript struct {
	LinkText string
	Body     string
}

// StockRecord is the assembled extraction result. It is built once per call
// and read-only afterwards; a record with every section empty is still valid
// and serializable.
type StockRecord struct {
	Info     CompanyInfo
	Ratios   RatioSet
	Tables   []NamedTable
	Links    []RelatedLink
	Warnings []string
}
