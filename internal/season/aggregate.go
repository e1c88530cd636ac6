package season

import (
	"sort"

	"github.com/aatrey56/fpl-season-report/internal/model"
)

// Aggregate is one manager's season totals and derived ratios.
type Aggregate struct {
	EntryName      string  `json:"entry_name"`
	PlayerName     string  `json:"player_name"`
	Gameweeks      int     `json:"gameweeks"`
	Points         int     `json:"points"`
	Bench          int     `json:"bench"`
	Hits           int     `json:"hits"`
	CaptainPoints  int     `json:"captain_points"`
	TransferGain   int     `json:"transfer_gain"`
	AutosubCount   int     `json:"autosub_count"`
	EventTransfers int     `json:"event_transfers"`
	AvgGWPoints    float64 `json:"avg_gw_points"`
	AvgBenchPoints float64 `json:"avg_bench_points"`
	Efficiency     float64 `json:"efficiency"`
	TransferLoss   int     `json:"transfer_loss"`
	TotalHits      int     `json:"total_hits"`
	MaxBenchPoints int     `json:"max_bench_points"`
	BestGWCount    int     `json:"best_gw_count"`
	WorstGWCount   int     `json:"worst_gw_count"`
	Round1         int     `json:"round_1"`
	Round2         int     `json:"round_2"`
	RoundDiff      int     `json:"round_diff"`
}

// Aggregates computes per-entry season aggregates, sorted by entry name.
//
// Efficiency divides net points by the number of distinct gameweeks in the
// whole table, so a manager who joined late is not flattered. Best and worst
// gameweek counts credit the first row in file order on ties.
func Aggregates(rows []model.GameweekRow) []Aggregate {
	numGW := len(Gameweeks(rows))
	best, worst := gameweekExtremes(rows)

	byEntry := ByEntry(rows)
	out := make([]Aggregate, 0, len(byEntry))
	for _, name := range Entries(rows) {
		entryRows := byEntry[name]
		a := Aggregate{EntryName: name, Gameweeks: len(entryRows)}
		for _, r := range entryRows {
			if a.PlayerName == "" {
				a.PlayerName = r.PlayerName
			}
			a.Points += r.Points
			a.Bench += r.Bench
			a.Hits += r.Hits
			a.CaptainPoints += r.CaptainPoints
			a.TransferGain += r.TransferGain
			a.AutosubCount += r.AutosubCount
			a.EventTransfers += r.EventTransfers
			if r.TransferGain < 0 {
				a.TransferLoss += r.TransferGain
			}
			if r.Chip != model.ChipBenchBoost {
				a.MaxBenchPoints += r.Bench
			}
			if model.FirstHalf(r.Gameweek) {
				a.Round1 += r.Points
			} else {
				a.Round2 += r.Points
			}
		}
		if len(entryRows) > 0 {
			a.AvgGWPoints = float64(a.Points) / float64(len(entryRows))
			a.AvgBenchPoints = float64(a.Bench) / float64(len(entryRows))
		}
		if numGW > 0 {
			a.Efficiency = float64(a.Points-a.Hits) / float64(numGW)
		}
		a.TotalHits = a.Hits / 4
		a.BestGWCount = best[name]
		a.WorstGWCount = worst[name]
		a.RoundDiff = a.Round2 - a.Round1
		out = append(out, a)
	}
	return out
}

// gameweekExtremes counts, per entry, the gameweeks in which it posted the
// league's highest and lowest score.
func gameweekExtremes(rows []model.GameweekRow) (map[string]int, map[string]int) {
	type extreme struct {
		bestIdx, worstIdx int
	}
	byGW := make(map[int]*extreme)
	order := make([]int, 0)
	for i, r := range rows {
		e, ok := byGW[r.Gameweek]
		if !ok {
			byGW[r.Gameweek] = &extreme{bestIdx: i, worstIdx: i}
			order = append(order, r.Gameweek)
			continue
		}
		if r.Points > rows[e.bestIdx].Points {
			e.bestIdx = i
		}
		if r.Points < rows[e.worstIdx].Points {
			e.worstIdx = i
		}
	}
	best := make(map[string]int)
	worst := make(map[string]int)
	for _, gw := range order {
		e := byGW[gw]
		best[rows[e.bestIdx].EntryName]++
		worst[rows[e.worstIdx].EntryName]++
	}
	return best, worst
}

// Find returns the aggregate for name.
func Find(aggs []Aggregate, name string) (Aggregate, bool) {
	for _, a := range aggs {
		if a.EntryName == name {
			return a, true
		}
	}
	return Aggregate{}, false
}

// SortBy returns a copy of aggs ordered by key, descending unless asc. Ties
// keep entry-name order.
func SortBy(aggs []Aggregate, key func(Aggregate) float64, asc bool) []Aggregate {
	out := append([]Aggregate(nil), aggs...)
	sort.SliceStable(out, func(i, j int) bool {
		if asc {
			return key(out[i]) < key(out[j])
		}
		return key(out[i]) > key(out[j])
	})
	return out
}
