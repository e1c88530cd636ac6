package render

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aatrey56/fpl-season-report/internal/analysis"
	"github.com/aatrey56/fpl-season-report/internal/awards"
	"github.com/aatrey56/fpl-season-report/internal/chart"
	"github.com/aatrey56/fpl-season-report/internal/season"
)

func parse(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc
}

func TestAwardsDocument(t *testing.T) {
	var buf bytes.Buffer
	err := Awards(&buf, AwardsPage{
		League:         "Office League",
		Season:         "2024/2025",
		GeneratedAtUTC: "2025-05-26T10:00:00Z",
		Awards: []awards.Award{
			{Key: "captain", Title: "Captain Fantastic", Team: "Alpha", Reason: "Most captain points", Value: "210"},
			{Key: "bench", Title: "Bench Warmer", Team: "Beta <b>", Reason: "Most points on the bench", Value: "150"},
		},
	})
	require.NoError(t, err)

	doc := parse(t, buf.String())
	assert.Equal(t, "Office League", doc.Find(".cover h1").Text())
	assert.Equal(t, "Season 2024/2025", doc.Find(".cover .season").Text())
	assert.Equal(t, 2, doc.Find(".award").Length())
	assert.Equal(t, "Captain Fantastic", doc.Find("#award-captain h2").Text())
	assert.Equal(t, "Beta <b>", doc.Find("#award-bench .team").Text())
	assert.Equal(t, "150", doc.Find("#award-bench .value").Text())
	assert.Contains(t, doc.Find("style").Text(), ".award")
}

func TestReportDocument(t *testing.T) {
	var buf bytes.Buffer
	err := Report(&buf, ReportPage{
		League:    "Office League",
		Season:    "2024/2025",
		Gameweeks: 38,
		Aggregates: []season.Aggregate{
			{EntryName: "Alpha", PlayerName: "Ann", Points: 2100, AvgGWPoints: 55.26},
			{EntryName: "Beta", PlayerName: "Bob", Points: 2000},
		},
		TopCaptains: []awards.CaptainPick{{EntryName: "Alpha", CaptainName: "Salah", Points: 30, Gameweek: 3}},
		Charts:      Images([]chart.Chart{{Name: "bench", Title: "Bench", PNG: []byte{0x89, 'P', 'N', 'G'}}}),
		Streaks:     []analysis.Streak{{EntryName: "Alpha", LongestGood: 4}},
	})
	require.NoError(t, err)

	doc := parse(t, buf.String())
	rows := doc.Find("#aggregates tbody tr")
	require.Equal(t, 2, rows.Length())
	assert.Equal(t, "1", rows.First().Find("td").First().Text())
	assert.Equal(t, "55.3", rows.First().Find("td").Eq(4).Text())

	src, ok := doc.Find("#chart-bench img").Attr("src")
	require.True(t, ok)
	assert.True(t, strings.HasPrefix(src, "data:image/png;base64,"), src)

	assert.Equal(t, "Salah", doc.Find("#top-captains tbody td").Eq(2).Text())
	assert.Equal(t, 0, doc.Find("#awards").Length())
	assert.Equal(t, 0, doc.Find("#predictions").Length())
}

func TestWriteFileCreatesDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "awards.html")
	err := WriteFile(path, func(w io.Writer) error {
		return Awards(w, AwardsPage{League: "L", Season: "S"})
	})
	require.NoError(t, err)
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(b), "<h1>L</h1>")
}
