package main

import (
	"fmt"
	"strings"

	"github.com/aatrey56/fpl-season-report/internal/analysis"
	"github.com/aatrey56/fpl-season-report/internal/awards"
	"github.com/aatrey56/fpl-season-report/internal/season"
)

type LeagueEntriesArgs struct{}

type LeagueEntry struct {
	EntryName  string `json:"entry_name"`
	PlayerName string `json:"player_name"`
	Gameweeks  int    `json:"gameweeks"`
}

type LeagueEntriesOutput struct {
	Season  string        `json:"season"`
	Entries []LeagueEntry `json:"entries"`
}

func buildLeagueEntries(cfg ServerConfig, _ LeagueEntriesArgs) (LeagueEntriesOutput, error) {
	d, err := loadSeasonData(cfg)
	if err != nil {
		return LeagueEntriesOutput{}, err
	}
	byEntry := season.ByEntry(d.Rows)
	out := LeagueEntriesOutput{Season: d.Label, Entries: make([]LeagueEntry, 0, len(byEntry))}
	for _, name := range season.Entries(d.Rows) {
		rows := byEntry[name]
		out.Entries = append(out.Entries, LeagueEntry{
			EntryName:  name,
			PlayerName: rows[0].PlayerName,
			Gameweeks:  len(rows),
		})
	}
	return out, nil
}

// SeasonAggregatesArgs are the input arguments for the season_aggregates tool.
type SeasonAggregatesArgs struct {
	SortBy string `json:"sort_by,omitempty" jsonschema:"points|efficiency|captain_points|bench|hits|transfer_gain (default points)"`
	Asc    bool   `json:"asc,omitempty" jsonschema:"Sort ascending instead of descending"`
	Limit  int    `json:"limit,omitempty" jsonschema:"Max managers to return (0 = all)"`
}

type SeasonAggregatesOutput struct {
	Season     string             `json:"season"`
	SortBy     string             `json:"sort_by"`
	Gameweeks  int                `json:"gameweeks"`
	Aggregates []season.Aggregate `json:"aggregates"`
}

var aggregateKeys = map[string]func(season.Aggregate) float64{
	"points":         func(a season.Aggregate) float64 { return float64(a.Points) },
	"efficiency":     func(a season.Aggregate) float64 { return a.Efficiency },
	"captain_points": func(a season.Aggregate) float64 { return float64(a.CaptainPoints) },
	"bench":          func(a season.Aggregate) float64 { return float64(a.Bench) },
	"hits":           func(a season.Aggregate) float64 { return float64(a.TotalHits) },
	"transfer_gain":  func(a season.Aggregate) float64 { return float64(a.TransferGain) },
}

func buildSeasonAggregates(cfg ServerConfig, args SeasonAggregatesArgs) (SeasonAggregatesOutput, error) {
	sortBy := strings.ToLower(strings.TrimSpace(args.SortBy))
	if sortBy == "" {
		sortBy = "points"
	}
	key, ok := aggregateKeys[sortBy]
	if !ok {
		return SeasonAggregatesOutput{}, fmt.Errorf("unknown sort_by: %s", args.SortBy)
	}
	d, err := loadSeasonData(cfg)
	if err != nil {
		return SeasonAggregatesOutput{}, err
	}
	aggs := season.SortBy(season.Aggregates(d.Rows), key, args.Asc)
	return SeasonAggregatesOutput{
		Season:     d.Label,
		SortBy:     sortBy,
		Gameweeks:  len(season.Gameweeks(d.Rows)),
		Aggregates: aggs[:limitOrAll(args.Limit, len(aggs))],
	}, nil
}

type AwardsArgs struct {
	Key string `json:"key,omitempty" jsonschema:"Only this award key (e.g. captain, bench, hits)"`
}

type AwardsOutput struct {
	Season string         `json:"season"`
	Awards []awards.Award `json:"awards"`
}

func buildAwards(cfg ServerConfig, args AwardsArgs) (AwardsOutput, error) {
	d, err := loadSeasonData(cfg)
	if err != nil {
		return AwardsOutput{}, err
	}
	cat := cfg.Catalog
	if cat == nil {
		cat = awards.DefaultCatalog()
	}
	list, err := awards.Assign(d.Rows, season.Aggregates(d.Rows), d.Names, cat)
	if err != nil {
		return AwardsOutput{}, err
	}
	if k := strings.TrimSpace(args.Key); k != "" {
		for _, a := range list {
			if a.Key == k {
				return AwardsOutput{Season: d.Label, Awards: []awards.Award{a}}, nil
			}
		}
		return AwardsOutput{}, fmt.Errorf("award not assigned: %s", k)
	}
	return AwardsOutput{Season: d.Label, Awards: list}, nil
}

type TopCaptainsArgs struct {
	Limit int `json:"limit,omitempty" jsonschema:"How many picks (default 10)"`
}

type TopCaptainsOutput struct {
	Season string               `json:"season"`
	Picks  []awards.CaptainPick `json:"picks"`
}

func buildTopCaptains(cfg ServerConfig, args TopCaptainsArgs) (TopCaptainsOutput, error) {
	n := args.Limit
	if n <= 0 {
		n = 10
	}
	d, err := loadSeasonData(cfg)
	if err != nil {
		return TopCaptainsOutput{}, err
	}
	return TopCaptainsOutput{Season: d.Label, Picks: awards.TopCaptains(d.Rows, d.Names, n)}, nil
}

type FormStreaksArgs struct{}

type FormStreaksOutput struct {
	Season  string            `json:"season"`
	Streaks []analysis.Streak `json:"streaks"`
}

func buildFormStreaks(cfg ServerConfig, _ FormStreaksArgs) (FormStreaksOutput, error) {
	d, err := loadSeasonData(cfg)
	if err != nil {
		return FormStreaksOutput{}, err
	}
	return FormStreaksOutput{Season: d.Label, Streaks: analysis.Streaks(d.Rows)}, nil
}

type LeaguePositionsArgs struct {
	EntryName string `json:"entry_name,omitempty" jsonschema:"Only this team (or manager) name"`
}

type LeaguePositionsOutput struct {
	Season    string                   `json:"season"`
	Positions []analysis.PositionStats `json:"positions"`
}

func buildLeaguePositions(cfg ServerConfig, args LeaguePositionsArgs) (LeaguePositionsOutput, error) {
	d, err := loadSeasonData(cfg)
	if err != nil {
		return LeaguePositionsOutput{}, err
	}
	all := analysis.LeaguePositions(d.Rows)
	if strings.TrimSpace(args.EntryName) == "" {
		return LeaguePositionsOutput{Season: d.Label, Positions: all}, nil
	}
	name, err := d.resolveEntry(args.EntryName, "entry_name")
	if err != nil {
		return LeaguePositionsOutput{}, err
	}
	for _, p := range all {
		if p.EntryName == name {
			return LeaguePositionsOutput{Season: d.Label, Positions: []analysis.PositionStats{p}}, nil
		}
	}
	return LeaguePositionsOutput{Season: d.Label, Positions: []analysis.PositionStats{}}, nil
}

type WhatIfArgs struct {
	EntryName string `json:"entry_name,omitempty" jsonschema:"Only this team (or manager) name"`
}

type WhatIfOutput struct {
	Season    string            `json:"season"`
	Scenarios []analysis.WhatIf `json:"scenarios"`
}

func buildWhatIf(cfg ServerConfig, args WhatIfArgs) (WhatIfOutput, error) {
	d, err := loadSeasonData(cfg)
	if err != nil {
		return WhatIfOutput{}, err
	}
	all := analysis.WhatIfs(d.Rows)
	if strings.TrimSpace(args.EntryName) == "" {
		return WhatIfOutput{Season: d.Label, Scenarios: all}, nil
	}
	name, err := d.resolveEntry(args.EntryName, "entry_name")
	if err != nil {
		return WhatIfOutput{}, err
	}
	out := WhatIfOutput{Season: d.Label, Scenarios: []analysis.WhatIf{}}
	for _, w := range all {
		if w.EntryName == name {
			out.Scenarios = append(out.Scenarios, w)
		}
	}
	return out, nil
}

type ChipUsageArgs struct{}

type ChipUsageOutput struct {
	Season    string                 `json:"season"`
	Usage     []analysis.ChipUsage   `json:"usage"`
	Timings   []analysis.ChipTiming  `json:"timings"`
	Wildcards []analysis.WildcardUse `json:"wildcards"`
}

func buildChipUsage(cfg ServerConfig, _ ChipUsageArgs) (ChipUsageOutput, error) {
	d, err := loadSeasonData(cfg)
	if err != nil {
		return ChipUsageOutput{}, err
	}
	return ChipUsageOutput{
		Season:    d.Label,
		Usage:     analysis.ChipUsages(d.Rows),
		Timings:   analysis.ChipTimings(d.Rows),
		Wildcards: analysis.Wildcards(d.Rows),
	}, nil
}
