package analysis

import (
	"sort"

	"github.com/aatrey56/fpl-season-report/internal/model"
	"github.com/aatrey56/fpl-season-report/internal/season"
)

const benchSlots = 11

var whatIfChips = []string{model.ChipTripleCaptain, model.ChipBenchBoost, model.ChipFreeHit}

type ChipGain struct {
	Chip string `json:"chip"`
	Gain int    `json:"gain"`
}

type WhatIf struct {
	EntryName         string     `json:"entry_name"`
	ActualPoints      int        `json:"actual_points"`
	BestCaptainPoints int        `json:"points_with_best_captains"`
	WithoutHits       int        `json:"points_without_hits"`
	WithBestBench     int        `json:"points_with_best_bench"`
	ChipGains         []ChipGain `json:"optimal_chip_gains"`
}

// WhatIfs replays each season under alternative decisions:
//   - captaining the league's best captain every gameweek
//   - never taking a hit
//   - swapping the season's bench total for its 11 best non-Bench-Boost weeks
//   - how far each chip fell short of the league's best use of it
func WhatIfs(rows []model.GameweekRow) []WhatIf {
	bestCaptain := make(map[int]int)
	for _, r := range rows {
		bestCaptain[r.Gameweek] = max(bestCaptain[r.Gameweek], r.CaptainPoints)
	}
	bestChip := make(map[string]int)
	for _, r := range rows {
		if r.Chip == "" {
			continue
		}
		if v, ok := bestChip[r.Chip]; !ok || r.Points > v {
			bestChip[r.Chip] = r.Points
		}
	}

	byEntry := season.ByEntry(rows)
	out := make([]WhatIf, 0, len(byEntry))
	for _, name := range season.Entries(rows) {
		entryRows := sortedByGW(byEntry[name])
		w := WhatIf{EntryName: name}
		captainGain, hits, benchTotal := 0, 0, 0
		benches := make([]int, 0, len(entryRows))
		for _, r := range entryRows {
			w.ActualPoints += r.Points
			captainGain += bestCaptain[r.Gameweek] - r.CaptainPoints
			hits += r.Hits
			benchTotal += r.Bench
			if r.Chip != model.ChipBenchBoost {
				benches = append(benches, r.Bench)
			}
		}
		sort.Sort(sort.Reverse(sort.IntSlice(benches)))
		best := 0
		for i := 0; i < len(benches) && i < benchSlots; i++ {
			best += benches[i]
		}
		w.BestCaptainPoints = w.ActualPoints + captainGain
		w.WithoutHits = w.ActualPoints + hits
		w.WithBestBench = w.ActualPoints + best - benchTotal

		for _, chip := range whatIfChips {
			for _, r := range entryRows {
				if r.Chip == chip {
					w.ChipGains = append(w.ChipGains, ChipGain{Chip: chip, Gain: bestChip[chip] - r.Points})
					break
				}
			}
		}
		out = append(out, w)
	}
	return out
}
