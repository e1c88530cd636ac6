package ledger

import (
	"encoding/json"
	"fmt"

	"github.com/aatrey56/fpl-season-report/internal/model"
	"github.com/aatrey56/fpl-season-report/internal/points"
)

type EntryHistory struct {
	Event              int `json:"event"`
	Points             int `json:"points"`
	TotalPoints        int `json:"total_points"`
	EventTransfers     int `json:"event_transfers"`
	EventTransfersCost int `json:"event_transfers_cost"`
	PointsOnBench      int `json:"points_on_bench"`
}

// EntryPicksRaw is the /entry/{id}/event/{gw}/picks/ payload.
type EntryPicksRaw struct {
	ActiveChip    string           `json:"active_chip"`
	AutomaticSubs []points.AutoSub `json:"automatic_subs"`
	EntryHistory  EntryHistory     `json:"entry_history"`
	Picks         []points.Pick    `json:"picks"`
}

// EventLiveRaw is the /event/{gw}/live/ payload.
type EventLiveRaw struct {
	Elements []struct {
		ID    int              `json:"id"`
		Stats points.LiveStats `json:"stats"`
	} `json:"elements"`
}

func ParseEntryPicks(b []byte) (EntryPicksRaw, error) {
	var raw EntryPicksRaw
	if err := json.Unmarshal(b, &raw); err != nil {
		return EntryPicksRaw{}, fmt.Errorf("decode picks: %w", err)
	}
	return raw, nil
}

// ParseEventLive returns live stats keyed by element id.
func ParseEventLive(b []byte) (map[int]points.LiveStats, error) {
	var raw EventLiveRaw
	if err := json.Unmarshal(b, &raw); err != nil {
		return nil, fmt.Errorf("decode live: %w", err)
	}
	out := make(map[int]points.LiveStats, len(raw.Elements))
	for _, e := range raw.Elements {
		out[e.ID] = e.Stats
	}
	return out, nil
}

// BuildRow turns one manager's picks for a gameweek into a season row.
func BuildRow(entry StandingEntry, gw int, raw EntryPicksRaw, live map[int]points.LiveStats) model.GameweekRow {
	res := points.BuildResult(entry.Entry, gw, raw.Picks, raw.AutomaticSubs, live)

	bench := raw.EntryHistory.PointsOnBench
	if raw.ActiveChip == model.ChipBenchBoost {
		bench = res.BenchPoints
	}

	team := make(model.Team, 0, len(res.Players))
	for _, p := range res.Players {
		team = append(team, model.Pick{PlayerID: p.Element, Points: p.Points})
	}

	in := make([]int, 0, len(raw.AutomaticSubs))
	out := make([]int, 0, len(raw.AutomaticSubs))
	for _, s := range raw.AutomaticSubs {
		in = append(in, s.ElementIn)
		out = append(out, s.ElementOut)
	}

	return model.GameweekRow{
		Gameweek:       gw,
		Points:         raw.EntryHistory.Points,
		Team:           team,
		Bench:          bench,
		Hits:           raw.EntryHistory.EventTransfersCost,
		EventTransfers: raw.EntryHistory.EventTransfers,
		Chip:           model.SeasonChip(raw.ActiveChip, gw),
		AutosubCount:   len(raw.AutomaticSubs),
		CaptainID:      res.CaptainID,
		CaptainPoints:  res.CaptainPoints,
		TransferInIDs:  in,
		TransferOutIDs: out,
		TransferGain:   res.AutosubGain,
		PlayerName:     entry.PlayerName,
		EntryName:      entry.EntryName,
	}
}
