package analysis

import (
	"sort"

	"github.com/aatrey56/fpl-season-report/internal/model"
	"github.com/aatrey56/fpl-season-report/internal/season"
)

type GWPosition struct {
	Gameweek         int `json:"gw"`
	Position         int `json:"position"`
	CumulativePoints int `json:"cumulative_points"`
}

type PositionStats struct {
	EntryName       string       `json:"entry_name"`
	Highest         int          `json:"highest"`
	Lowest          int          `json:"lowest"`
	WeeksAtTop      int          `json:"weeks_at_top"`
	AvgPosition     float64      `json:"avg_position"`
	PositionChanges int          `json:"position_changes"`
	CurrentStreak   int          `json:"current_streak"`
	History         []GWPosition `json:"history"`
}

// LeaguePositions ranks the entries that played each gameweek by cumulative
// points, ties broken by name, and summarises each entry's trajectory.
func LeaguePositions(rows []model.GameweekRow) []PositionStats {
	entries := season.Entries(rows)
	byGW := season.ByGameweek(rows)
	cumulative := make(map[string]int, len(entries))
	history := make(map[string][]GWPosition, len(entries))

	for _, gw := range season.Gameweeks(rows) {
		played := make([]string, 0, len(byGW[gw]))
		seen := make(map[string]bool)
		for _, r := range byGW[gw] {
			cumulative[r.EntryName] += r.Points
			if !seen[r.EntryName] {
				seen[r.EntryName] = true
				played = append(played, r.EntryName)
			}
		}
		sort.Slice(played, func(i, j int) bool {
			pi, pj := cumulative[played[i]], cumulative[played[j]]
			if pi != pj {
				return pi > pj
			}
			return played[i] < played[j]
		})
		for i, name := range played {
			history[name] = append(history[name], GWPosition{Gameweek: gw, Position: i + 1, CumulativePoints: cumulative[name]})
		}
	}

	out := make([]PositionStats, 0, len(entries))
	for _, name := range entries {
		h := history[name]
		ps := PositionStats{EntryName: name, History: h}
		if len(h) == 0 {
			out = append(out, ps)
			continue
		}
		ps.Highest, ps.Lowest = h[0].Position, h[0].Position
		sum := 0
		for i, p := range h {
			ps.Highest = min(ps.Highest, p.Position)
			ps.Lowest = max(ps.Lowest, p.Position)
			if p.Position == 1 {
				ps.WeeksAtTop++
			}
			if i > 0 && p.Position != h[i-1].Position {
				ps.PositionChanges++
			}
			sum += p.Position
		}
		ps.AvgPosition = float64(sum) / float64(len(h))
		last := h[len(h)-1].Position
		for i := len(h) - 1; i >= 0 && h[i].Position == last; i-- {
			ps.CurrentStreak++
		}
		out = append(out, ps)
	}
	return out
}
