package dashboard

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aatrey56/fpl-season-report/internal/chart"
	"github.com/aatrey56/fpl-season-report/internal/model"
	"github.com/aatrey56/fpl-season-report/internal/report"
	"github.com/aatrey56/fpl-season-report/internal/season"
)

// ---- helpers ----

func buildReport(t *testing.T) *report.Report {
	t.Helper()
	rows := []model.GameweekRow{
		{Gameweek: 1, EntryName: "Alpha", Points: 70, Bench: 4, CaptainID: 10, CaptainPoints: 12},
		{Gameweek: 1, EntryName: "Beta", Points: 40, Bench: 9, Hits: 4, CaptainID: 20, CaptainPoints: 2},
		{Gameweek: 2, EntryName: "Alpha", Points: 50, Bench: 15, CaptainID: 10, CaptainPoints: 5},
		{Gameweek: 2, EntryName: "Beta", Points: 90, Bench: 1, CaptainID: 20, CaptainPoints: 15},
	}
	rep, err := report.Build(rows, nil, report.Options{
		League: "Office",
		Season: "2024/2025",
		Charts: chart.NewRenderer(3, 2),
		Now:    func() time.Time { return time.Date(2025, 5, 26, 0, 0, 0, 0, time.UTC) },
	})
	require.NoError(t, err)
	return rep
}

func newTestServer(t *testing.T, opts Options) *httptest.Server {
	t.Helper()
	s, err := New(buildReport(t), nil, opts)
	require.NoError(t, err)
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func get(t *testing.T, url string) (*http.Response, []byte) {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, body
}

// ---- tests ----

func TestDocuments(t *testing.T) {
	ts := newTestServer(t, Options{})

	resp, body := get(t, ts.URL+"/")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(string(body)))
	require.NoError(t, err)
	assert.Equal(t, 2, doc.Find("#aggregates tbody tr").Length())

	resp, body = get(t, ts.URL+"/awards")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	doc, err = goquery.NewDocumentFromReader(strings.NewReader(string(body)))
	require.NoError(t, err)
	assert.Equal(t, "Office", doc.Find(".cover h1").Text())
	assert.Positive(t, doc.Find(".award").Length())
}

func TestCharts(t *testing.T) {
	ts := newTestServer(t, Options{})

	resp, body := get(t, ts.URL+"/charts/captain_points.png")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/png", resp.Header.Get("Content-Type"))
	assert.True(t, strings.HasPrefix(string(body), "\x89PNG"))

	resp, _ = get(t, ts.URL+"/charts/nope.png")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp, _ = get(t, ts.URL+"/charts/captain_points")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestAPI(t *testing.T) {
	ts := newTestServer(t, Options{})

	resp, body := get(t, ts.URL+"/api/aggregates")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var aggs []season.Aggregate
	require.NoError(t, json.Unmarshal(body, &aggs))
	require.Len(t, aggs, 2)
	// Alpha sorts first by name but Beta leads on points.
	assert.Equal(t, "Beta", aggs[0].EntryName)
	assert.Equal(t, 130, aggs[0].Points)
	assert.Equal(t, "Alpha", aggs[1].EntryName)
	assert.Equal(t, 120, aggs[1].Points)

	_, body = get(t, ts.URL+"/api/positions")
	var positions []map[string]any
	require.NoError(t, json.Unmarshal(body, &positions))
	assert.Len(t, positions, 2)

	_, body = get(t, ts.URL+"/api/charts")
	var charts []chartRef
	require.NoError(t, json.Unmarshal(body, &charts))
	require.NotEmpty(t, charts)
	assert.Equal(t, "/charts/captain_points.png", charts[0].URL)
}

func TestHealthAndMetrics(t *testing.T) {
	ts := newTestServer(t, Options{})

	resp, body := get(t, ts.URL+"/healthz")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"status":"ok","season":"2024/2025"}`, string(body))

	resp, body = get(t, ts.URL+"/metrics")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	metrics := string(body)
	assert.Contains(t, metrics, `fpl_season_points{entry="Alpha"} 120`)
	assert.Contains(t, metrics, `fpl_season_points{entry="Beta"} 130`)
	assert.Contains(t, metrics, `fpl_season_bench_points{entry="Beta"} 10`)
	assert.Contains(t, metrics, "fpl_season_gameweeks 2")
}

func TestCORS(t *testing.T) {
	ts := newTestServer(t, Options{AllowedOrigins: []string{"https://league.example"}})

	req, err := http.NewRequest(http.MethodGet, ts.URL+"/api/awards", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "https://league.example")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, "https://league.example", resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestRateLimit(t *testing.T) {
	ts := newTestServer(t, Options{RateLimit: 2})

	for i := 0; i < 2; i++ {
		resp, _ := get(t, ts.URL+"/api/awards")
		require.Equal(t, http.StatusOK, resp.StatusCode)
	}
	resp, _ := get(t, ts.URL+"/api/awards")
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)

	// Documents are not limited.
	resp, _ = get(t, ts.URL+"/")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
