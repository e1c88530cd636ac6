package analysis

import (
	"sort"

	"github.com/aatrey56/fpl-season-report/internal/model"
	"github.com/aatrey56/fpl-season-report/internal/season"
)

const DefaultLoyaltyWeeks = 5

type LoyalPlayer struct {
	PlayerID  int     `json:"player_id"`
	Weeks     int     `json:"weeks"`
	AvgPoints float64 `json:"avg_points"`
}

type Loyalty struct {
	EntryName string        `json:"entry_name"`
	Players   []LoyalPlayer `json:"players"`
}

// PlayerLoyalty finds players each manager kept for at least minWeeks
// consecutive gameweeks, longest spell first.
func PlayerLoyalty(rows []model.GameweekRow, minWeeks int) []Loyalty {
	if minWeeks <= 0 {
		minWeeks = DefaultLoyaltyWeeks
	}
	byEntry := season.ByEntry(rows)
	out := make([]Loyalty, 0, len(byEntry))
	for _, name := range season.Entries(rows) {
		run := make(map[int]int)
		longest := make(map[int]int)
		total := make(map[int]int)
		seen := make(map[int]int)

		for _, r := range sortedByGW(byEntry[name]) {
			inTeam := make(map[int]bool, len(r.Team))
			for _, p := range r.Team {
				if inTeam[p.PlayerID] {
					continue
				}
				inTeam[p.PlayerID] = true
				run[p.PlayerID]++
				longest[p.PlayerID] = max(longest[p.PlayerID], run[p.PlayerID])
				total[p.PlayerID] += p.Points
				seen[p.PlayerID]++
			}
			for id := range run {
				if !inTeam[id] {
					run[id] = 0
				}
			}
		}

		l := Loyalty{EntryName: name}
		for id, weeks := range longest {
			if weeks < minWeeks {
				continue
			}
			l.Players = append(l.Players, LoyalPlayer{
				PlayerID:  id,
				Weeks:     weeks,
				AvgPoints: float64(total[id]) / float64(seen[id]),
			})
		}
		sort.Slice(l.Players, func(i, j int) bool {
			if l.Players[i].Weeks != l.Players[j].Weeks {
				return l.Players[i].Weeks > l.Players[j].Weeks
			}
			return l.Players[i].PlayerID < l.Players[j].PlayerID
		})
		out = append(out, l)
	}
	return out
}
