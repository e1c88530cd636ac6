// Package awards ranks managers per category and picks each category's
// winner.
package awards

import (
	"errors"
	"fmt"
	"sort"

	"github.com/aatrey56/fpl-season-report/internal/model"
	"github.com/aatrey56/fpl-season-report/internal/players"
	"github.com/aatrey56/fpl-season-report/internal/season"
)

var ErrNoData = errors.New("no season data to award")

type Award struct {
	Key    string `json:"key"`
	Title  string `json:"title"`
	Team   string `json:"team"`
	Reason string `json:"reason"`
	Value  string `json:"value"`
}

// Assign computes every award the data supports, in catalog order. Chip
// awards are omitted when nobody played the chip.
func Assign(rows []model.GameweekRow, aggs []season.Aggregate, names players.Names, cat Catalog) ([]Award, error) {
	if len(rows) == 0 || len(aggs) == 0 {
		return nil, ErrNoData
	}
	if cat == nil {
		cat = DefaultCatalog()
	}

	out := make([]Award, 0, len(Keys))
	add := func(key, team, value, reasonSuffix string) {
		e := cat.Entry(key)
		reason := e.Reason
		if reasonSuffix != "" {
			reason = fmt.Sprintf("%s (%s)", reason, reasonSuffix)
		}
		out = append(out, Award{Key: key, Title: e.Title, Team: team, Reason: reason, Value: value})
	}
	top := func(key string, metric func(season.Aggregate) float64, asc bool) {
		a := season.SortBy(aggs, metric, asc)[0]
		add(key, a.EntryName, fmt.Sprintf("%d", int(metric(a))), "")
	}

	for _, key := range Keys {
		switch key {
		case KeyCaptain:
			top(key, func(a season.Aggregate) float64 { return float64(a.CaptainPoints) }, false)
		case KeyBench:
			top(key, func(a season.Aggregate) float64 { return float64(a.Bench) }, false)
		case KeyHits:
			top(key, func(a season.Aggregate) float64 { return float64(a.Hits) }, false)
		case KeyTransferGain:
			top(key, func(a season.Aggregate) float64 { return float64(a.TransferGain) }, false)
		case KeyBestGW:
			top(key, func(a season.Aggregate) float64 { return float64(a.BestGWCount) }, false)
		case KeyWorstGW:
			top(key, func(a season.Aggregate) float64 { return float64(a.WorstGWCount) }, false)
		case KeyRoundProgress:
			top(key, func(a season.Aggregate) float64 { return float64(a.RoundDiff) }, false)
		case KeyRoundRegress:
			top(key, func(a season.Aggregate) float64 { return float64(a.RoundDiff) }, true)
		case KeyEfficiency:
			a := season.SortBy(aggs, func(a season.Aggregate) float64 { return a.Efficiency }, false)[0]
			add(key, a.EntryName, fmt.Sprintf("%.2f", a.Efficiency), "")
		case KeyAutosubs:
			top(key, func(a season.Aggregate) float64 { return float64(a.AutosubCount) }, false)
		case KeyTransfers:
			top(key, func(a season.Aggregate) float64 { return float64(a.EventTransfers) }, false)
		case KeyBenchBoost:
			if r, ok := bestRow(rows, chipFilter(model.ChipBenchBoost), func(r model.GameweekRow) int { return r.Bench }); ok {
				add(key, r.EntryName, pts(r.Bench), gwLabel(r.Gameweek))
			}
		case KeyTripleCaptain:
			if r, ok := bestRow(rows, chipFilter(model.ChipTripleCaptain), func(r model.GameweekRow) int { return r.CaptainPoints }); ok {
				add(key, r.EntryName, pts(r.CaptainPoints*3), gwLabel(r.Gameweek))
			}
		case KeyFreeHit:
			if r, ok := bestRow(rows, chipFilter(model.ChipFreeHit), func(r model.GameweekRow) int { return r.Points }); ok {
				add(key, r.EntryName, pts(r.Points), gwLabel(r.Gameweek))
			}
		case KeyMostPicked:
			if id, n, ok := MostPicked(rows); ok {
				add(key, names.Name(id), fmt.Sprintf("%d times", n), "")
			}
		case KeyLowestGW:
			if r, ok := bestRow(rows, nil, func(r model.GameweekRow) int { return -r.Points }); ok {
				add(key, r.EntryName, pts(r.Points), gwLabel(r.Gameweek))
			}
		case KeyHighestGW:
			if r, ok := bestRow(rows, nil, func(r model.GameweekRow) int { return r.Points }); ok {
				add(key, r.EntryName, pts(r.Points), gwLabel(r.Gameweek))
			}
		case KeyHighestBenchGW:
			if r, ok := bestRow(rows, nil, func(r model.GameweekRow) int { return r.Bench }); ok {
				add(key, r.EntryName, pts(r.Bench), gwLabel(r.Gameweek))
			}
		}
	}
	return out, nil
}

func pts(n int) string { return fmt.Sprintf("%d pts", n) }

func gwLabel(gw int) string { return fmt.Sprintf("GW %d", gw) }

func chipFilter(chip string) func(model.GameweekRow) bool {
	return func(r model.GameweekRow) bool { return r.Chip == chip }
}

// bestRow returns the first row with the highest metric among rows passing
// keep (all rows when keep is nil).
func bestRow(rows []model.GameweekRow, keep func(model.GameweekRow) bool, metric func(model.GameweekRow) int) (model.GameweekRow, bool) {
	var best model.GameweekRow
	found := false
	for _, r := range rows {
		if keep != nil && !keep(r) {
			continue
		}
		if !found || metric(r) > metric(best) {
			best = r
			found = true
		}
	}
	return best, found
}

// MostPicked returns the element that appears in the most squads across all
// rows. Ties go to the lower id.
func MostPicked(rows []model.GameweekRow) (int, int, bool) {
	counts := make(map[int]int)
	for _, r := range rows {
		for _, p := range r.Team {
			counts[p.PlayerID]++
		}
	}
	bestID, bestN := 0, 0
	for id, n := range counts {
		if n > bestN || (n == bestN && id < bestID) {
			bestID, bestN = id, n
		}
	}
	return bestID, bestN, bestN > 0
}

// CaptainPick is a manager's best return from one captain choice.
type CaptainPick struct {
	EntryName   string `json:"entry_name"`
	CaptainID   int    `json:"captain_id"`
	CaptainName string `json:"captain_name"`
	Points      int    `json:"points"`
	Gameweek    int    `json:"gw"`
	Label       string `json:"label"`
}

// TopCaptains ranks (entry, captain) pairs by the captain's best single
// gameweek, highest first, and keeps the top n.
func TopCaptains(rows []model.GameweekRow, names players.Names, n int) []CaptainPick {
	type key struct {
		entry   string
		captain int
	}
	best := make(map[key]*CaptainPick)
	for _, r := range rows {
		if r.CaptainID == 0 {
			continue
		}
		k := key{r.EntryName, r.CaptainID}
		cp, ok := best[k]
		if !ok {
			best[k] = &CaptainPick{EntryName: r.EntryName, CaptainID: r.CaptainID, Points: r.CaptainPoints, Gameweek: r.Gameweek}
			continue
		}
		if r.CaptainPoints > cp.Points {
			cp.Points = r.CaptainPoints
			cp.Gameweek = r.Gameweek
		}
	}

	out := make([]CaptainPick, 0, len(best))
	for _, cp := range best {
		cp.CaptainName = names.Name(cp.CaptainID)
		cp.Label = fmt.Sprintf("%s – %s – %d pts - GW%d", cp.EntryName, cp.CaptainName, cp.Points, cp.Gameweek)
		out = append(out, *cp)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Points != out[j].Points {
			return out[i].Points > out[j].Points
		}
		if out[i].EntryName != out[j].EntryName {
			return out[i].EntryName < out[j].EntryName
		}
		return out[i].CaptainID < out[j].CaptainID
	})
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}
