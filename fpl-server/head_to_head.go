package main

import (
	"sort"

	"github.com/aatrey56/fpl-season-report/internal/analysis"
	"github.com/aatrey56/fpl-season-report/internal/season"
)

// HeadToHeadArgs are the input arguments for the head_to_head tool.
type HeadToHeadArgs struct {
	EntryNameA string `json:"entry_name_a" jsonschema:"First team (or manager) name (required)"`
	EntryNameB string `json:"entry_name_b" jsonschema:"Second team (or manager) name (required)"`
}

// H2HMatch compares the two teams' scores in one gameweek.
type H2HMatch struct {
	Gameweek int    `json:"gameweek"`
	ScoreA   int    `json:"score_a"`
	ScoreB   int    `json:"score_b"`
	ResultA  string `json:"result_a"`
}

// HeadToHeadOutput is the output of the head_to_head tool.
type HeadToHeadOutput struct {
	Season  string              `json:"season"`
	Record  analysis.HeadToHead `json:"record"`
	Matches []H2HMatch          `json:"matches"`
}

func buildHeadToHead(cfg ServerConfig, args HeadToHeadArgs) (HeadToHeadOutput, error) {
	d, err := loadSeasonData(cfg)
	if err != nil {
		return HeadToHeadOutput{}, err
	}
	a, err := d.resolveEntry(args.EntryNameA, "entry_name_a")
	if err != nil {
		return HeadToHeadOutput{}, err
	}
	b, err := d.resolveEntry(args.EntryNameB, "entry_name_b")
	if err != nil {
		return HeadToHeadOutput{}, err
	}

	byEntry := season.ByEntry(d.Rows)
	scoresB := make(map[int]int, len(byEntry[b]))
	for _, r := range byEntry[b] {
		scoresB[r.Gameweek] = r.Points
	}
	matches := make([]H2HMatch, 0, len(byEntry[a]))
	for _, r := range byEntry[a] {
		sb, ok := scoresB[r.Gameweek]
		if !ok {
			continue
		}
		matches = append(matches, H2HMatch{
			Gameweek: r.Gameweek,
			ScoreA:   r.Points,
			ScoreB:   sb,
			ResultA:  resultFromScore(r.Points, sb),
		})
	}
	sort.Slice(matches, func(i, j int) bool {
		return matches[i].Gameweek < matches[j].Gameweek
	})

	return HeadToHeadOutput{
		Season:  d.Label,
		Record:  analysis.HeadToHeadFor(d.Rows, a, b),
		Matches: matches,
	}, nil
}

func resultFromScore(a, b int) string {
	switch {
	case a > b:
		return "W"
	case a < b:
		return "L"
	default:
		return "D"
	}
}
