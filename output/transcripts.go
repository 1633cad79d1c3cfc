package output

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/phuslu/log"

	"screenerscraper/screener"
)

// datePattern picks a date-ish token out of a transcript link's text, e.g.
// "Feb 2024", "Feb-2024" or "12-02-2024".
var datePattern = regexp.MustCompile(`[A-Z][a-z]{2}[ -]?\d{4}|\d{1,2}[-/]\d{1,2}[-/]\d{2,4}|\d{4}`)

// WriteTranscripts writes each transcript under <company>_transcripts/. One
// transcript failing to write is a warning; the rest still land on disk.
// Filenames derived from identical link texts get numeric disambiguators.
func (w *Writer) WriteTranscripts(companyName string, transcripts []screener.Transcript) ([]string, []string) {
	if len(transcripts) == 0 {
		return nil, nil
	}

	dir := filepath.Join(w.Dir, Sanitize(companyName)+"_transcripts")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, []string{fmt.Sprintf("failed to create transcript dir: %v", err)}
	}

	var paths []string
	var warnings []string
	for _, t := range transcripts {
		base := transcriptBase(companyName, t.LinkText)
		path, err := writeUnique(dir, base, ".txt", []byte(t.Body))
		if err != nil {
			log.Warn().Str("transcript", t.LinkText).Err(err).Msg("transcript write failed")
			warnings = append(warnings, fmt.Sprintf("transcript %q: %v", t.LinkText, err))
			continue
		}
		paths = append(paths, path)
	}
	return paths, warnings
}

func transcriptBase(companyName, linkText string) string {
	token := datePattern.FindString(linkText)
	if token == "" {
		token = linkText
		if len(token) > 40 {
			token = token[:40]
		}
	}
	return Sanitize(companyName + "_" + token)
}
