package chart

import (
	"fmt"
	"sort"

	"gonum.org/v1/plot/plotter"

	"github.com/aatrey56/fpl-season-report/internal/analysis"
	"github.com/aatrey56/fpl-season-report/internal/season"
)

// Metric is an aggregate column that gets its own bar chart.
type Metric struct {
	Name  string
	Title string
	Label string
	Value func(season.Aggregate) float64
}

var Metrics = []Metric{
	{"captain_points", "Captain points", "points", func(a season.Aggregate) float64 { return float64(a.CaptainPoints) }},
	{"avg_gw_points", "Average points per gameweek", "points", func(a season.Aggregate) float64 { return a.AvgGWPoints }},
	{"efficiency", "Net points per gameweek", "points", func(a season.Aggregate) float64 { return a.Efficiency }},
	{"bench", "Points left on the bench", "points", func(a season.Aggregate) float64 { return float64(a.Bench) }},
	{"avg_bench_points", "Average bench points", "points", func(a season.Aggregate) float64 { return a.AvgBenchPoints }},
	{"total_hits", "Hits taken", "hits", func(a season.Aggregate) float64 { return float64(a.TotalHits) }},
	{"best_gw_count", "Gameweeks with the top score", "gameweeks", func(a season.Aggregate) float64 { return float64(a.BestGWCount) }},
	{"worst_gw_count", "Gameweeks with the lowest score", "gameweeks", func(a season.Aggregate) float64 { return float64(a.WorstGWCount) }},
}

// MetricCharts draws one chart per metric, highest value at the top.
func (r *Renderer) MetricCharts(aggs []season.Aggregate) ([]Chart, error) {
	out := make([]Chart, 0, len(Metrics))
	for _, m := range Metrics {
		sorted := season.SortBy(aggs, m.Value, true)
		labels := make([]string, len(sorted))
		values := make([]float64, len(sorted))
		for i, a := range sorted {
			labels[i] = a.EntryName
			values[i] = m.Value(a)
		}
		c, err := r.Bars(m.Name, m.Title, m.Label, labels, values)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

// ChipCharts draws one leaderboard chart per played chip.
func (r *Renderer) ChipCharts(boards []analysis.ChipBoard) ([]Chart, error) {
	out := make([]Chart, 0, len(boards))
	for _, b := range boards {
		n := len(b.Scores)
		labels := make([]string, n)
		values := make([]float64, n)
		for i, s := range b.Scores {
			// Scores are best first; bars draw bottom-up.
			labels[n-1-i] = fmt.Sprintf("%s (GW %d)", s.EntryName, s.Gameweek)
			values[n-1-i] = float64(s.Score)
		}
		c, err := r.Bars("chip_"+b.Chip, b.Name, "points", labels, values)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

func (r *Renderer) WildcardChart(uses []analysis.WildcardUse) (Chart, error) {
	labels := make([]string, len(uses))
	first := make([]float64, len(uses))
	second := make([]float64, len(uses))
	for i, u := range uses {
		labels[i] = u.EntryName
		first[i] = float64(u.FirstPoints)
		second[i] = float64(u.SecondPoints)
	}
	return r.GroupedBars("wildcards", "Wildcard gameweeks", "points", labels, []Series{
		{Name: "1st round", Values: first},
		{Name: "2nd round", Values: second},
	})
}

func (r *Renderer) StreakChart(streaks []analysis.Streak) (Chart, error) {
	labels := make([]string, len(streaks))
	good := make([]float64, len(streaks))
	bad := make([]float64, len(streaks))
	for i, s := range streaks {
		labels[i] = s.EntryName
		good[i] = float64(s.LongestGood)
		bad[i] = float64(s.LongestBad)
	}
	return r.GroupedBars("streaks", "Longest runs above and below the league average", "gameweeks", labels, []Series{
		{Name: "above average", Values: good},
		{Name: "below average", Values: bad},
	})
}

// HeadToHeadChart shows, per row entry, the gameweeks won against each
// column entry.
func (r *Renderer) HeadToHeadChart(entries []string, h2h []analysis.HeadToHead) (Chart, error) {
	idx := make(map[string]int, len(entries))
	for i, e := range entries {
		idx[e] = i
	}
	matrix := make([][]float64, len(entries))
	for i := range matrix {
		matrix[i] = make([]float64, len(entries))
	}
	for _, h := range h2h {
		i, ok1 := idx[h.Entry1]
		j, ok2 := idx[h.Entry2]
		if !ok1 || !ok2 {
			continue
		}
		matrix[i][j] = float64(h.Wins1)
		matrix[j][i] = float64(h.Wins2)
	}
	return r.Heatmap("head_to_head", "Head-to-head gameweek wins", entries, matrix)
}

func (r *Renderer) PositionsChart(stats []analysis.PositionStats) (Chart, error) {
	series := make([]LineSeries, 0, len(stats))
	for _, s := range stats {
		if len(s.History) == 0 {
			continue
		}
		xys := make(plotter.XYs, len(s.History))
		for i, h := range s.History {
			xys[i] = plotter.XY{X: float64(h.Gameweek), Y: float64(h.Position)}
		}
		series = append(series, LineSeries{Name: s.EntryName, XYs: xys})
	}
	return r.Lines("positions", "League position by gameweek", "gameweek", "position", series, true)
}

func (r *Renderer) WhatIfChart(list []analysis.WhatIf) (Chart, error) {
	labels := make([]string, len(list))
	actual := make([]float64, len(list))
	captain := make([]float64, len(list))
	noHits := make([]float64, len(list))
	bench := make([]float64, len(list))
	for i, w := range list {
		labels[i] = w.EntryName
		actual[i] = float64(w.ActualPoints)
		captain[i] = float64(w.BestCaptainPoints)
		noHits[i] = float64(w.WithoutHits)
		bench[i] = float64(w.WithBestBench)
	}
	return r.GroupedBars("what_if", "What if", "points", labels, []Series{
		{Name: "actual", Values: actual},
		{Name: "best captains", Values: captain},
		{Name: "no hits", Values: noHits},
		{Name: "best bench", Values: bench},
	})
}

// CorrelationChart links managers whose squads overlapped, thicker for more
// overlap.
func (r *Renderer) CorrelationChart(entries []string, corr []analysis.Correlation) (Chart, error) {
	idx := make(map[string]int, len(entries))
	for i, e := range entries {
		idx[e] = i
	}
	edges := make([]Edge, 0, len(corr))
	for _, c := range corr {
		i, ok1 := idx[c.Entry1]
		j, ok2 := idx[c.Entry2]
		if !ok1 || !ok2 {
			continue
		}
		edges = append(edges, Edge{From: i, To: j, Weight: c.SquadSimilarity})
	}
	sort.Slice(edges, func(a, b int) bool { return edges[a].Weight < edges[b].Weight })
	return r.Network("correlation", "Squad similarity", entries, edges)
}
