package main

import (
	"math"
	"sort"

	"github.com/aatrey56/fpl-season-report/internal/analysis"
	"github.com/aatrey56/fpl-season-report/internal/season"
)

// ManagerSeasonArgs are the input arguments for the manager_season tool.
type ManagerSeasonArgs struct {
	EntryName string `json:"entry_name" jsonschema:"Team name or manager name (required)"`
}

// SeasonGameweek is one gameweek in a manager's season.
type SeasonGameweek struct {
	Gameweek      int     `json:"gameweek"`
	Points        int     `json:"points"`
	Bench         int     `json:"bench"`
	Hits          int     `json:"hits"`
	Chip          string  `json:"chip,omitempty"`
	Captain       string  `json:"captain"`
	CaptainPoints int     `json:"captain_points"`
	LeagueAvg     float64 `json:"league_avg"`
	Position      int     `json:"position,omitempty"`
}

// ManagerSeasonOutput is the output of the manager_season tool.
type ManagerSeasonOutput struct {
	Season     string                  `json:"season"`
	EntryName  string                  `json:"entry_name"`
	PlayerName string                  `json:"player_name"`
	Totals     season.Aggregate        `json:"totals"`
	HighestGW  int                     `json:"highest_scoring_gw"`
	HighestPts int                     `json:"highest_score"`
	LowestGW   int                     `json:"lowest_scoring_gw"`
	LowestPts  int                     `json:"lowest_score"`
	Streak     analysis.Streak         `json:"streak"`
	Positions  *analysis.PositionStats `json:"positions,omitempty"`
	Prediction *analysis.Prediction    `json:"prediction,omitempty"`
	Gameweeks  []SeasonGameweek        `json:"gameweeks"`
}

func buildManagerSeason(cfg ServerConfig, args ManagerSeasonArgs) (ManagerSeasonOutput, error) {
	d, err := loadSeasonData(cfg)
	if err != nil {
		return ManagerSeasonOutput{}, err
	}
	name, err := d.resolveEntry(args.EntryName, "entry_name")
	if err != nil {
		return ManagerSeasonOutput{}, err
	}

	out := ManagerSeasonOutput{Season: d.Label, EntryName: name}
	if agg, ok := season.Find(season.Aggregates(d.Rows), name); ok {
		out.Totals = agg
		out.PlayerName = agg.PlayerName
	}

	avg := make(map[int]float64)
	for gw, rows := range season.ByGameweek(d.Rows) {
		sum := 0
		for _, r := range rows {
			sum += r.Points
		}
		avg[gw] = float64(sum) / float64(len(rows))
	}

	posByGW := make(map[int]int)
	for _, p := range analysis.LeaguePositions(d.Rows) {
		if p.EntryName != name {
			continue
		}
		out.Positions = &p
		for _, h := range p.History {
			posByGW[h.Gameweek] = h.Position
		}
	}
	for _, s := range analysis.Streaks(d.Rows) {
		if s.EntryName == name {
			out.Streak = s
		}
	}

	out.LowestPts = math.MaxInt
	out.HighestPts = math.MinInt
	last := 0
	for _, r := range season.ByEntry(d.Rows)[name] {
		out.Gameweeks = append(out.Gameweeks, SeasonGameweek{
			Gameweek:      r.Gameweek,
			Points:        r.Points,
			Bench:         r.Bench,
			Hits:          r.Hits,
			Chip:          r.Chip,
			Captain:       d.Names.Name(r.CaptainID),
			CaptainPoints: r.CaptainPoints,
			LeagueAvg:     math.Round(avg[r.Gameweek]*10) / 10,
			Position:      posByGW[r.Gameweek],
		})
		if r.Points > out.HighestPts {
			out.HighestPts, out.HighestGW = r.Points, r.Gameweek
		}
		if r.Points < out.LowestPts {
			out.LowestPts, out.LowestGW = r.Points, r.Gameweek
		}
		if r.Gameweek > last {
			last = r.Gameweek
		}
	}
	sort.Slice(out.Gameweeks, func(i, j int) bool {
		return out.Gameweeks[i].Gameweek < out.Gameweeks[j].Gameweek
	})
	if len(out.Gameweeks) == 0 {
		out.LowestPts, out.HighestPts = 0, 0
	}
	if p, ok := analysis.Predict(d.Rows, name, last); ok {
		out.Prediction = &p
	}
	return out, nil
}
