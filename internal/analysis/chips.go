package analysis

import (
	"sort"

	"github.com/aatrey56/fpl-season-report/internal/model"
	"github.com/aatrey56/fpl-season-report/internal/season"
)

// timedChips are the chips whose early/late usage is compared.
var timedChips = []string{
	model.ChipTripleCaptain,
	model.ChipBenchBoost,
	model.ChipFreeHit,
	model.ChipWildcard1,
	model.ChipWildcard2,
}

type ChipTiming struct {
	Chip       string  `json:"chip"`
	Name       string  `json:"name"`
	EarlyUses  int     `json:"early_uses"`
	LateUses   int     `json:"late_uses"`
	EarlyAvg   float64 `json:"early_avg"`
	LateAvg    float64 `json:"late_avg"`
	BestGW     int     `json:"best_gw"`
	BestPoints int     `json:"best_points"`
}

// ChipTimings reports, for each played chip, average points in each half of
// the season and the best gameweek it was played in.
func ChipTimings(rows []model.GameweekRow) []ChipTiming {
	out := make([]ChipTiming, 0, len(timedChips))
	for _, chip := range timedChips {
		ct := ChipTiming{Chip: chip, Name: model.ChipName(chip)}
		early, late := 0, 0
		found := false
		for _, r := range rows {
			if r.Chip != chip {
				continue
			}
			if !found || r.Points > ct.BestPoints {
				ct.BestGW, ct.BestPoints = r.Gameweek, r.Points
				found = true
			}
			if model.FirstHalf(r.Gameweek) {
				ct.EarlyUses++
				early += r.Points
			} else {
				ct.LateUses++
				late += r.Points
			}
		}
		if !found {
			continue
		}
		if ct.EarlyUses > 0 {
			ct.EarlyAvg = float64(early) / float64(ct.EarlyUses)
		}
		if ct.LateUses > 0 {
			ct.LateAvg = float64(late) / float64(ct.LateUses)
		}
		out = append(out, ct)
	}
	return out
}

type ChipScore struct {
	EntryName string `json:"entry_name"`
	Gameweek  int    `json:"gw"`
	Score     int    `json:"score"`
}

type ChipBoard struct {
	Chip   string      `json:"chip"`
	Name   string      `json:"name"`
	Scores []ChipScore `json:"scores"`
}

// ChipScoreOf is what a chip earned in one row: the manager's points for
// Assistant Manager, three times the captain for Triple Captain, the bench for
// Bench Boost and the gameweek total otherwise.
func ChipScoreOf(r model.GameweekRow) int {
	switch r.Chip {
	case model.ChipManager:
		return r.ManagerPoints()
	case model.ChipTripleCaptain:
		return r.CaptainPoints * 3
	case model.ChipBenchBoost:
		return r.Bench
	default:
		return r.Points
	}
}

// ChipBoards ranks the managers who played each chip. Triple Captain keeps
// the best use; the other chips add up every use.
func ChipBoards(rows []model.GameweekRow) []ChipBoard {
	out := make([]ChipBoard, 0, len(model.Chips))
	for _, chip := range model.Chips {
		byEntry := make(map[string]*ChipScore)
		order := make([]string, 0)
		for _, r := range rows {
			if r.Chip != chip {
				continue
			}
			score := ChipScoreOf(r)
			cs, ok := byEntry[r.EntryName]
			if !ok {
				byEntry[r.EntryName] = &ChipScore{EntryName: r.EntryName, Gameweek: r.Gameweek, Score: score}
				order = append(order, r.EntryName)
				continue
			}
			if chip == model.ChipTripleCaptain {
				if score > cs.Score {
					cs.Score, cs.Gameweek = score, r.Gameweek
				}
				continue
			}
			cs.Score += score
		}
		if len(order) == 0 {
			continue
		}
		board := ChipBoard{Chip: chip, Name: model.ChipName(chip)}
		for _, name := range order {
			board.Scores = append(board.Scores, *byEntry[name])
		}
		sort.SliceStable(board.Scores, func(i, j int) bool {
			if board.Scores[i].Score != board.Scores[j].Score {
				return board.Scores[i].Score > board.Scores[j].Score
			}
			return board.Scores[i].EntryName < board.Scores[j].EntryName
		})
		out = append(out, board)
	}
	return out
}

type WildcardUse struct {
	EntryName    string `json:"entry_name"`
	FirstGW      int    `json:"first_gw"`
	FirstPoints  int    `json:"first_points"`
	SecondGW     int    `json:"second_gw"`
	SecondPoints int    `json:"second_points"`
}

// Wildcards lists both wildcard gameweeks for every entry; zero means unused.
func Wildcards(rows []model.GameweekRow) []WildcardUse {
	byEntry := season.ByEntry(rows)
	out := make([]WildcardUse, 0, len(byEntry))
	for _, name := range season.Entries(rows) {
		w := WildcardUse{EntryName: name}
		for _, r := range byEntry[name] {
			switch r.Chip {
			case model.ChipWildcard1:
				if w.FirstGW == 0 {
					w.FirstGW, w.FirstPoints = r.Gameweek, r.Points
				}
			case model.ChipWildcard2:
				if w.SecondGW == 0 {
					w.SecondGW, w.SecondPoints = r.Gameweek, r.Points
				}
			}
		}
		out = append(out, w)
	}
	return out
}

// ChipUsage lists, per entry, the chips played and when.
type ChipUsage struct {
	EntryName string         `json:"entry_name"`
	Chips     map[string]int `json:"chips"`
}

func ChipUsages(rows []model.GameweekRow) []ChipUsage {
	byEntry := season.ByEntry(rows)
	out := make([]ChipUsage, 0, len(byEntry))
	for _, name := range season.Entries(rows) {
		u := ChipUsage{EntryName: name, Chips: map[string]int{}}
		for _, r := range sortedByGW(byEntry[name]) {
			if r.Chip == "" {
				continue
			}
			if _, ok := u.Chips[r.Chip]; !ok {
				u.Chips[r.Chip] = r.Gameweek
			}
		}
		out = append(out, u)
	}
	return out
}
