package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"xsearch/pkg/models"
)

// Format selects the output serialization.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
)

// ParseFormat validates a format string.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatCSV, FormatJSON:
		return Format(s), nil
	default:
		return "", fmt.Errorf("unsupported format %q (expected csv or json)", s)
	}
}

// csvColumns is the column order of the tabular output.
var csvColumns = []string{
	"id", "date", "user_username", "user_displayname", "content",
	"like_count", "retweet_count", "reply_count", "quote_count",
	"lang", "url", "external_urls",
}

// Writer persists fetched records as one timestamp-named file per run.
type Writer struct {
	dir    string
	prefix string

	// now is swapped out in tests
	now func() time.Time
}

// NewWriter creates a writer targeting dir, creating it if needed.
func NewWriter(dir, prefix string) (*Writer, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}
	if prefix == "" {
		prefix = "tweets"
	}
	return &Writer{dir: dir, prefix: prefix, now: time.Now}, nil
}

// Write serializes records in the given format and returns the path of
// the written file. The filename carries the UTC invocation timestamp,
// so concurrent runs never overwrite each other. The file is written
// to a temp path and renamed into place.
func (w *Writer) Write(records []models.TweetRecord, format Format) (string, error) {
	timestamp := w.now().UTC().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.%s", w.prefix, timestamp, format)
	path := filepath.Join(w.dir, filename)

	tempPath := path + ".tmp"
	f, err := os.Create(tempPath)
	if err != nil {
		return "", fmt.Errorf("failed to create output file: %w", err)
	}

	switch format {
	case FormatCSV:
		err = writeCSV(f, records)
	case FormatJSON:
		err = writeJSON(f, records)
	default:
		err = fmt.Errorf("unsupported format %q", format)
	}

	closeErr := f.Close()
	if err != nil {
		os.Remove(tempPath)
		return "", fmt.Errorf("failed to write %s: %w", format, err)
	}
	if closeErr != nil {
		os.Remove(tempPath)
		return "", fmt.Errorf("failed to close output file: %w", closeErr)
	}

	if err := os.Rename(tempPath, path); err != nil {
		os.Remove(tempPath)
		return "", fmt.Errorf("failed to rename output file: %w", err)
	}

	return path, nil
}

func writeCSV(f *os.File, records []models.TweetRecord) error {
	cw := csv.NewWriter(f)
	if err := cw.Write(csvColumns); err != nil {
		return err
	}
	for _, r := range records {
		row := []string{
			r.ID,
			r.Date,
			r.UserUsername,
			r.UserDisplayname,
			r.Content,
			strconv.Itoa(r.LikeCount),
			strconv.Itoa(r.RetweetCount),
			strconv.Itoa(r.ReplyCount),
			strconv.Itoa(r.QuoteCount),
			r.Lang,
			r.URL,
			strings.Join(r.ExternalURLs, " "),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func writeJSON(f *os.File, records []models.TweetRecord) error {
	// keep the output a JSON array even with zero records
	if records == nil {
		records = []models.TweetRecord{}
	}
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(records)
}
