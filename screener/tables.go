package screener

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/phuslu/log"
)

// HarvestTables pulls every rendered table out of raw markup, independent of
// the embedded state. Tables are collected in document order; a region whose
// opening tag never terminates is skipped with a warning and the scan resumes
// at the next table. Returned warnings feed the record, not an error.
func HarvestTables(markup string) ([]NamedTable, []string) {
	var tables []NamedTable
	var warnings []string

	pos := 0
	for {
		start := indexTableOpen(markup, pos)
		if start < 0 {
			break
		}

		end := strings.Index(markup[start:], "</table>")
		next := indexTableOpen(markup, start+len("<table"))

		if end < 0 || (next >= 0 && next < start+end) {
			log.Warn().Int("offset", start).Msg("skipping unterminated table region")
			warnings = append(warnings, "skipped a malformed table region")
			if next < 0 {
				break
			}
			pos = next
			continue
		}

		region := markup[start : start+end+len("</table>")]
		table := parseTableRegion(region)
		table.Title = precedingHeading(markup[:start])
		tables = append(tables, table)

		pos = start + end + len("</table>")
	}

	return tables, warnings
}

// indexTableOpen finds the next "<table" tag at or after pos, rejecting
// lookalikes such as "<tablex".
func indexTableOpen(markup string, pos int) int {
	for pos < len(markup) {
		i := strings.Index(markup[pos:], "<table")
		if i < 0 {
			return -1
		}
		abs := pos + i
		rest := markup[abs+len("<table"):]
		if rest == "" || rest[0] == '>' || rest[0] == ' ' || rest[0] == '\t' || rest[0] == '\n' {
			return abs
		}
		pos = abs + len("<table")
	}
	return -1
}

func parseTableRegion(region string) NamedTable {
	var table NamedTable

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(region))
	if err != nil {
		return table
	}

	doc.Find("thead th").Each(func(i int, s *goquery.Selection) {
		table.Headers = append(table.Headers, strings.TrimSpace(s.Text()))
	})

	rows := doc.Find("tbody tr")
	if rows.Length() == 0 {
		rows = doc.Find("table tr").Not("thead tr")
	}
	rows.Each(func(i int, tr *goquery.Selection) {
		var cells []string
		tr.Find("td").Each(func(j int, td *goquery.Selection) {
			cells = append(cells, strings.TrimSpace(td.Text()))
		})
		if cells != nil {
			table.Rows = append(table.Rows, cells)
		}
	})

	return table
}

// precedingHeading returns the text of the nearest <h2> before the table
// region, which is how the page labels its tables.
func precedingHeading(before string) string {
	open := strings.LastIndex(before, "<h2")
	if open < 0 {
		return ""
	}
	rest := before[open:]
	gt := strings.IndexByte(rest, '>')
	if gt < 0 {
		return ""
	}
	closeTag := strings.Index(rest[gt:], "</h2>")
	if closeTag < 0 {
		return ""
	}
	inner := rest[gt+1 : gt+closeTag]
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(inner))
	if err != nil {
		return strings.TrimSpace(inner)
	}
	return strings.TrimSpace(doc.Text())
}
