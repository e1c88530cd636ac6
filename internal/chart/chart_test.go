package chart

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aatrey56/fpl-season-report/internal/analysis"
	"github.com/aatrey56/fpl-season-report/internal/model"
	"github.com/aatrey56/fpl-season-report/internal/season"
)

func fixture() []model.GameweekRow {
	return []model.GameweekRow{
		{Gameweek: 1, EntryName: "Alpha", Points: 60, Bench: 4, CaptainPoints: 8, Team: model.Team{{PlayerID: 1}, {PlayerID: 2}}},
		{Gameweek: 1, EntryName: "Beta", Points: 45, Bench: 9, Hits: 4, CaptainPoints: 2, Team: model.Team{{PlayerID: 1}, {PlayerID: 3}}},
		{Gameweek: 2, EntryName: "Alpha", Points: 52, Chip: model.ChipWildcard1, Team: model.Team{{PlayerID: 1}}},
		{Gameweek: 2, EntryName: "Beta", Points: 71, Chip: model.ChipTripleCaptain, CaptainPoints: 13, Team: model.Team{{PlayerID: 3}}},
	}
}

func assertPNG(t *testing.T, c Chart) {
	t.Helper()
	require.NotEmpty(t, c.PNG, c.Name)
	_, err := png.Decode(bytes.NewReader(c.PNG))
	assert.NoError(t, err, c.Name)
}

func TestMetricCharts(t *testing.T) {
	r := NewRenderer(4, 3)

	charts, err := r.MetricCharts(season.Aggregates(fixture()))
	require.NoError(t, err)
	require.Len(t, charts, len(Metrics))
	for _, c := range charts {
		assertPNG(t, c)
	}
	assert.Equal(t, "captain_points", charts[0].Name)
}

func TestSeasonCharts(t *testing.T) {
	rows := fixture()
	entries := season.Entries(rows)
	r := NewRenderer(4, 3)

	build := []func() (Chart, error){
		func() (Chart, error) { return r.WildcardChart(analysis.Wildcards(rows)) },
		func() (Chart, error) { return r.StreakChart(analysis.Streaks(rows)) },
		func() (Chart, error) { return r.HeadToHeadChart(entries, analysis.HeadToHeads(rows)) },
		func() (Chart, error) { return r.PositionsChart(analysis.LeaguePositions(rows)) },
		func() (Chart, error) { return r.WhatIfChart(analysis.WhatIfs(rows)) },
		func() (Chart, error) { return r.CorrelationChart(entries, analysis.Correlations(rows)) },
	}
	for _, b := range build {
		c, err := b()
		require.NoError(t, err)
		assertPNG(t, c)
	}

	chips, err := r.ChipCharts(analysis.ChipBoards(rows))
	require.NoError(t, err)
	require.Len(t, chips, 2)
	assert.Equal(t, "chip_3xc", chips[0].Name)
	assertPNG(t, chips[0])
}

func TestEmptyInputsError(t *testing.T) {
	r := NewRenderer(0, 0)

	_, err := r.Bars("x", "x", "", nil, nil)
	assert.Error(t, err)
	_, err = r.Lines("x", "x", "", "", nil, false)
	assert.Error(t, err)
	_, err = r.Network("x", "x", nil, nil)
	assert.Error(t, err)
}

func TestFormatValue(t *testing.T) {
	assert.Equal(t, "12", formatValue(12))
	assert.Equal(t, "3.14", formatValue(3.14159))
}
