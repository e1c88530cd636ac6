package analysis

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/aatrey56/fpl-season-report/internal/model"
	"github.com/aatrey56/fpl-season-report/internal/season"
)

type Correlation struct {
	Entry1              string  `json:"entry_1"`
	Entry2              string  `json:"entry_2"`
	SharedGameweeks     int     `json:"shared_gameweeks"`
	SquadSimilarity     float64 `json:"squad_similarity"`
	CaptainSimilarity   float64 `json:"captain_similarity"`
	TransferCorrelation float64 `json:"transfer_correlation"`
	ChipSimilarity      float64 `json:"chip_similarity"`
}

// Correlations measures how alike each pair of managers played:
//   - squad: mean Jaccard index of the two squads per shared gameweek
//   - captain: share of the season's gameweeks with the same captain
//   - transfers: Pearson correlation of weekly transfer counts
//   - chips: share of chip weeks where both played the same chip
func Correlations(rows []model.GameweekRow) []Correlation {
	entries := season.Entries(rows)
	numGW := len(season.Gameweeks(rows))
	byEntry := season.ByEntry(rows)
	indexed := make(map[string]map[int]model.GameweekRow, len(entries))
	for _, name := range entries {
		indexed[name] = rowsByGW(byEntry[name])
	}

	out := make([]Correlation, 0, len(entries)*(len(entries)-1)/2)
	for i := 0; i < len(entries); i++ {
		for j := i + 1; j < len(entries); j++ {
			out = append(out, correlate(entries[i], entries[j], indexed[entries[i]], indexed[entries[j]], numGW))
		}
	}
	return out
}

func correlate(name1, name2 string, a, b map[int]model.GameweekRow, numGW int) Correlation {
	c := Correlation{Entry1: name1, Entry2: name2}
	shared := sharedGameweeks(a, b)
	c.SharedGameweeks = len(shared)
	if len(shared) == 0 {
		return c
	}

	jaccardSum, jaccardN := 0.0, 0
	sameCaptain := 0
	chipWeeks, sameChip := 0, 0
	t1 := make([]float64, 0, len(shared))
	t2 := make([]float64, 0, len(shared))
	for _, gw := range shared {
		r1, r2 := a[gw], b[gw]
		if j, ok := jaccard(r1.Team.PlayerIDs(), r2.Team.PlayerIDs()); ok {
			jaccardSum += j
			jaccardN++
		}
		if r1.CaptainID != 0 && r1.CaptainID == r2.CaptainID {
			sameCaptain++
		}
		if r1.Chip != "" || r2.Chip != "" {
			chipWeeks++
			if r1.Chip == r2.Chip {
				sameChip++
			}
		}
		t1 = append(t1, float64(r1.EventTransfers))
		t2 = append(t2, float64(r2.EventTransfers))
	}

	if jaccardN > 0 {
		c.SquadSimilarity = jaccardSum / float64(jaccardN)
	}
	if numGW > 0 {
		c.CaptainSimilarity = float64(sameCaptain) / float64(numGW)
	}
	if len(t1) > 1 {
		if r := stat.Correlation(t1, t2, nil); !math.IsNaN(r) && !math.IsInf(r, 0) {
			c.TransferCorrelation = r
		}
	}
	c.ChipSimilarity = float64(sameChip) / float64(max(chipWeeks, 1))
	return c
}

func jaccard(a, b []int) (float64, bool) {
	set := make(map[int]int, len(a)+len(b))
	for _, id := range a {
		set[id] |= 1
	}
	for _, id := range b {
		set[id] |= 2
	}
	if len(set) == 0 {
		return 0, false
	}
	both := 0
	for _, v := range set {
		if v == 3 {
			both++
		}
	}
	return float64(both) / float64(len(set)), true
}
