package output

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"screenerscraper/screener"
)

func sampleRecord() *screener.StockRecord {
	return &screener.StockRecord{
		Info: screener.CompanyInfo{
			Name:      "TCS",
			URL:       "https://example.com/company/TCS/",
			MarketCap: "1234567",
		},
		Ratios: screener.RatioSet{{Label: "P/E", Value: "28.5"}},
		Tables: []screener.NamedTable{{
			Title:   "Quarterly Results",
			Headers: []string{"Mar 2023", "Jun 2023"},
			Rows:    [][]string{{"100", "110"}},
		}},
	}
}

func TestRenderSectionOrder(t *testing.T) {
	data := Render(sampleRecord())
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")

	var sections []string
	for _, l := range lines {
		switch l {
		case "Company Information", "Key Ratios", "Quarterly Results", "Related Links":
			sections = append(sections, l)
		}
	}
	assert.Equal(t, []string{"Company Information", "Key Ratios", "Quarterly Results", "Related Links"}, sections)

	// Related Links is empty: header rows only, nothing after them.
	assert.Equal(t, "Related Links", lines[len(lines)-2])
	assert.Equal(t, "Link Text,URL", lines[len(lines)-1])
}

func TestRenderOmitsAbsentCompanyFields(t *testing.T) {
	data := string(Render(sampleRecord()))

	assert.Contains(t, data, "Company Name,TCS")
	assert.Contains(t, data, "Market Cap,1234567")
	assert.NotContains(t, data, "Current Price")
	assert.NotContains(t, data, "52 Week High/Low")
}

func TestRenderDeterministic(t *testing.T) {
	rec := sampleRecord()
	assert.True(t, bytes.Equal(Render(rec), Render(rec)))
}

func TestRenderEmptyRecordStillHasSections(t *testing.T) {
	data := string(Render(&screener.StockRecord{}))

	assert.Contains(t, data, "Company Information\n")
	assert.Contains(t, data, "Key Ratios\n")
	assert.Contains(t, data, "Related Links\n")
}

func TestRenderRaggedRowsRoundTrip(t *testing.T) {
	rec := &screener.StockRecord{
		Tables: []screener.NamedTable{{
			Title:   "Shareholding",
			Headers: []string{"Holder", "Percent"},
			Rows:    [][]string{{"Promoters", "72.3", "extra"}, {"Public"}},
		}},
	}

	r := csv.NewReader(bytes.NewReader(Render(rec)))
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	require.NoError(t, err)

	var idx int
	for i, row := range records {
		if len(row) == 1 && row[0] == "Shareholding" {
			idx = i
			break
		}
	}
	assert.Equal(t, []string{"Holder", "Percent"}, records[idx+1])
	assert.Equal(t, []string{"Promoters", "72.3", "extra"}, records[idx+2])
	assert.Equal(t, []string{"Public"}, records[idx+3])
}

func TestWriteRecord(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir)
	w.now = func() time.Time { return time.Date(2024, 2, 12, 10, 30, 0, 0, time.UTC) }

	path, err := w.WriteRecord(sampleRecord(), "TCS Ltd")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "TCS_Ltd_2024-02-12T10-30-00.csv"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.Equal(Render(sampleRecord()), data))
}

func TestWriteRecordNeverOverwrites(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir)
	w.now = func() time.Time { return time.Date(2024, 2, 12, 10, 30, 0, 0, time.UTC) }

	first, err := w.WriteRecord(sampleRecord(), "TCS")
	require.NoError(t, err)
	second, err := w.WriteRecord(sampleRecord(), "TCS")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.Equal(t, filepath.Join(dir, "TCS_2024-02-12T10-30-00_2.csv"), second)
}

func TestWriteRecordCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "out")
	w := NewWriter(dir)

	_, err := w.WriteRecord(sampleRecord(), "TCS")
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestSanitize(t *testing.T) {
	assert.Equal(t, "Tata_Motors_Ltd.", Sanitize("Tata Motors Ltd."))
	assert.Equal(t, "A_B_C", Sanitize(`A/B\C`))
}
