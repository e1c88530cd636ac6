// Package analysis derives season narratives from the gameweek table: form
// streaks, rivalries, chip timing, league position history and what-if
// scenarios.
package analysis

import (
	"sort"

	"github.com/aatrey56/fpl-season-report/internal/model"
	"github.com/aatrey56/fpl-season-report/internal/season"
)

// Streak compares a manager's weekly score against the league average.
// Current is positive while above average and negative while at or below.
type Streak struct {
	EntryName   string `json:"entry_name"`
	LongestGood int    `json:"longest_good"`
	LongestBad  int    `json:"longest_bad"`
	Current     int    `json:"current"`
}

func Streaks(rows []model.GameweekRow) []Streak {
	avg := gameweekAverages(rows)
	byEntry := season.ByEntry(rows)

	out := make([]Streak, 0, len(byEntry))
	for _, name := range season.Entries(rows) {
		s := Streak{EntryName: name}
		for _, r := range sortedByGW(byEntry[name]) {
			if float64(r.Points) > avg[r.Gameweek] {
				if s.Current >= 0 {
					s.Current++
				} else {
					s.Current = 1
				}
				s.LongestGood = max(s.LongestGood, s.Current)
			} else {
				if s.Current <= 0 {
					s.Current--
				} else {
					s.Current = -1
				}
				s.LongestBad = max(s.LongestBad, -s.Current)
			}
		}
		out = append(out, s)
	}
	return out
}

func gameweekAverages(rows []model.GameweekRow) map[int]float64 {
	sum := make(map[int]int)
	n := make(map[int]int)
	for _, r := range rows {
		sum[r.Gameweek] += r.Points
		n[r.Gameweek]++
	}
	out := make(map[int]float64, len(sum))
	for gw, s := range sum {
		out[gw] = float64(s) / float64(n[gw])
	}
	return out
}

func sortedByGW(rows []model.GameweekRow) []model.GameweekRow {
	out := append([]model.GameweekRow(nil), rows...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Gameweek < out[j].Gameweek })
	return out
}

// rowsByGW indexes one entry's rows by gameweek. The first row wins when a
// gameweek repeats.
func rowsByGW(rows []model.GameweekRow) map[int]model.GameweekRow {
	out := make(map[int]model.GameweekRow, len(rows))
	for _, r := range rows {
		if _, ok := out[r.Gameweek]; !ok {
			out[r.Gameweek] = r
		}
	}
	return out
}

// sharedGameweeks returns the gameweeks both entries played, ascending.
func sharedGameweeks(a, b map[int]model.GameweekRow) []int {
	out := make([]int, 0, len(a))
	for gw := range a {
		if _, ok := b[gw]; ok {
			out = append(out, gw)
		}
	}
	sort.Ints(out)
	return out
}
