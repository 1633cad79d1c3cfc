// Package output renders assembled records to disk: the multi-section CSV
// and the per-transcript text files.
package output

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"screenerscraper/screener"
)

const timestampLayout = "2006-01-02T15-04-05"

var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// Writer emits files under a single root directory, creating it on demand.
type Writer struct {
	Dir string

	// now is swapped out in tests to pin filenames.
	now func() time.Time
}

// NewWriter creates a Writer rooted at dir.
func NewWriter(dir string) *Writer {
	return &Writer{Dir: dir, now: time.Now}
}

// Render serializes a record into the fixed CSV layout. Equal records always
// produce identical bytes; nothing here depends on the clock.
func Render(rec *screener.StockRecord) []byte {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	w.Write([]string{"Company Information"})
	writeIfPresent(w, "Company Name", rec.Info.Name)
	writeIfPresent(w, "Company URL", rec.Info.URL)
	writeIfPresent(w, "Market Cap", rec.Info.MarketCap)
	writeIfPresent(w, "Current Price", rec.Info.CurrentPrice)
	writeIfPresent(w, "52 Week High/Low", rec.Info.HighLow)
	blank(w)

	w.Write([]string{"Key Ratios"})
	for _, r := range rec.Ratios {
		w.Write([]string{r.Label, r.Value})
	}
	blank(w)

	for _, table := range rec.Tables {
		w.Write([]string{table.Title})
		w.Write(table.Headers)
		for _, row := range table.Rows {
			w.Write(row)
		}
		blank(w)
	}

	w.Write([]string{"Related Links"})
	w.Write([]string{"Link Text", "URL"})
	for _, link := range rec.Links {
		w.Write([]string{link.Text, link.URL})
	}

	w.Flush()
	return buf.Bytes()
}

// WriteRecord renders rec and writes it to a timestamped, company-named file.
// Every run produces a new file; an existing path gets a numeric suffix
// instead of being overwritten.
func (w *Writer) WriteRecord(rec *screener.StockRecord, companyName string) (string, error) {
	if err := os.MkdirAll(w.Dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output dir: %w", err)
	}

	base := fmt.Sprintf("%s_%s", Sanitize(companyName), w.now().Format(timestampLayout))
	data := Render(rec)

	path, err := writeUnique(w.Dir, base, ".csv", data)
	if err != nil {
		return "", fmt.Errorf("failed to write CSV: %w", err)
	}
	return path, nil
}

// Sanitize reduces a name to a filesystem-safe token.
func Sanitize(name string) string {
	return unsafeChars.ReplaceAllString(name, "_")
}

// writeUnique writes data to dir/base+ext, appending _2, _3, ... when the
// path already exists.
func writeUnique(dir, base, ext string, data []byte) (string, error) {
	for i := 1; ; i++ {
		name := base + ext
		if i > 1 {
			name = fmt.Sprintf("%s_%d%s", base, i, ext)
		}
		path := filepath.Join(dir, name)

		f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if os.IsExist(err) {
			continue
		}
		if err != nil {
			return "", err
		}
		if _, err := f.Write(data); err != nil {
			f.Close()
			return "", err
		}
		return path, f.Close()
	}
}

func writeIfPresent(w *csv.Writer, label, value string) {
	if value != "" {
		w.Write([]string{label, value})
	}
}

// blank emits the separator row between sections.
func blank(w *csv.Writer) {
	w.Write([]string{""})
}
