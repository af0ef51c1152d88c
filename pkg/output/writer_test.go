package output

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"xsearch/pkg/models"
)

func testRecords() []models.TweetRecord {
	return []models.TweetRecord{
		{
			ID:              "101",
			Date:            "2026-08-30T10:15:00.000Z",
			UserUsername:    "ana_f",
			UserDisplayname: "Ana",
			Content:         "living with #Fabry, más info aquí",
			LikeCount:       3,
			RetweetCount:    1,
			ReplyCount:      0,
			QuoteCount:      2,
			Lang:            "es",
			URL:             "https://x.com/i/web/status/101",
			ExternalURLs:    []string{"https://example.org/a", "https://example.org/b"},
		},
		{
			ID:           "102",
			Date:         "2026-08-30T11:00:00.000Z",
			UserUsername: "bob",
			Content:      "text with, comma and \"quotes\"",
			Lang:         "en",
			URL:          "https://x.com/i/web/status/102",
		},
	}
}

func newTestWriter(t *testing.T) (*Writer, string) {
	t.Helper()
	dir := t.TempDir()
	w, err := NewWriter(dir, "tweets")
	require.NoError(t, err)
	w.now = func() time.Time {
		return time.Date(2026, 8, 31, 9, 30, 15, 0, time.UTC)
	}
	return w, dir
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("csv")
	require.NoError(t, err)
	assert.Equal(t, FormatCSV, f)

	f, err = ParseFormat("json")
	require.NoError(t, err)
	assert.Equal(t, FormatJSON, f)

	_, err = ParseFormat("parquet")
	assert.Error(t, err)
}

func TestWriteCSV(t *testing.T) {
	w, dir := newTestWriter(t)

	path, err := w.Write(testRecords(), FormatCSV)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "tweets_20260831_093015.csv"), path)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, csvColumns, rows[0])
	assert.Equal(t, "101", rows[1][0])
	assert.Equal(t, "Ana", rows[1][3])
	assert.Equal(t, "3", rows[1][5])
	// external URLs are space-joined in tabular output
	assert.Equal(t, "https://example.org/a https://example.org/b", rows[1][11])
	assert.Equal(t, "text with, comma and \"quotes\"", rows[2][4])
	assert.Equal(t, "", rows[2][11])
}

func TestWriteJSON(t *testing.T) {
	w, _ := newTestWriter(t)

	path, err := w.Write(testRecords(), FormatJSON)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(path, "tweets_20260831_093015.json"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded []models.TweetRecord
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Len(t, decoded, 2)
	assert.Equal(t, testRecords(), decoded)
}

func TestWriteEmptyRunStillProducesFile(t *testing.T) {
	w, _ := newTestWriter(t)

	path, err := w.Write(nil, FormatJSON)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[]", strings.TrimSpace(string(data)))

	path, err = w.Write(nil, FormatCSV)
	require.NoError(t, err)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	// header only
	require.Len(t, rows, 1)
}

func TestWriteLeavesNoTempFile(t *testing.T) {
	w, dir := newTestWriter(t)

	_, err := w.Write(testRecords(), FormatCSV)
	require.NoError(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	for _, e := range entries {
		assert.False(t, strings.HasSuffix(e.Name(), ".tmp"))
	}
}

func TestNewWriterCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")
	_, err := NewWriter(dir, "tweets")
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
