package analysis

import (
	"github.com/aatrey56/fpl-season-report/internal/model"
	"github.com/aatrey56/fpl-season-report/internal/season"
)

type HeadToHead struct {
	Entry1    string  `json:"entry_1"`
	Entry2    string  `json:"entry_2"`
	Wins1     int     `json:"wins_1"`
	Wins2     int     `json:"wins_2"`
	Draws     int     `json:"draws"`
	Gameweeks int     `json:"gameweeks"`
	AvgMargin float64 `json:"avg_margin"`
}

// HeadToHeads compares every pair of entries over the gameweeks both played.
// AvgMargin is Entry1's mean points lead.
func HeadToHeads(rows []model.GameweekRow) []HeadToHead {
	entries := season.Entries(rows)
	byEntry := season.ByEntry(rows)
	indexed := make(map[string]map[int]model.GameweekRow, len(entries))
	for _, name := range entries {
		indexed[name] = rowsByGW(byEntry[name])
	}

	out := make([]HeadToHead, 0, len(entries)*(len(entries)-1)/2)
	for i := 0; i < len(entries); i++ {
		for j := i + 1; j < len(entries); j++ {
			out = append(out, compare(entries[i], entries[j], indexed[entries[i]], indexed[entries[j]]))
		}
	}
	return out
}

// HeadToHeadFor compares two named entries.
func HeadToHeadFor(rows []model.GameweekRow, entry1, entry2 string) HeadToHead {
	byEntry := season.ByEntry(rows)
	return compare(entry1, entry2, rowsByGW(byEntry[entry1]), rowsByGW(byEntry[entry2]))
}

func compare(name1, name2 string, a, b map[int]model.GameweekRow) HeadToHead {
	h := HeadToHead{Entry1: name1, Entry2: name2}
	margin := 0
	for _, gw := range sharedGameweeks(a, b) {
		p1, p2 := a[gw].Points, b[gw].Points
		switch {
		case p1 > p2:
			h.Wins1++
		case p2 > p1:
			h.Wins2++
		default:
			h.Draws++
		}
		margin += p1 - p2
		h.Gameweeks++
	}
	if h.Gameweeks > 0 {
		h.AvgMargin = float64(margin) / float64(h.Gameweeks)
	}
	return h
}
