// Package ledger collects a classic league's season, one row per manager per
// gameweek, from the FPL API.
package ledger

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/aatrey56/fpl-season-report/internal/fetch"
	"github.com/aatrey56/fpl-season-report/internal/model"
	"github.com/aatrey56/fpl-season-report/internal/points"
)

type StandingEntry struct {
	Entry      int    `json:"entry"`
	EntryName  string `json:"entry_name"`
	PlayerName string `json:"player_name"`
	Rank       int    `json:"rank"`
	Total      int    `json:"total"`
}

type StandingsPage struct {
	League struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
	} `json:"league"`
	Standings struct {
		HasNext bool            `json:"has_next"`
		Page    int             `json:"page"`
		Results []StandingEntry `json:"results"`
	} `json:"standings"`
}

// Source is the subset of the API client the collector needs.
type Source interface {
	LeagueStandings(ctx context.Context, leagueID int, page int, force bool) ([]byte, error)
	EventLive(ctx context.Context, gw int, force bool) ([]byte, error)
	EntryPicks(ctx context.Context, entryID int, gw int, force bool) ([]byte, error)
}

var _ Source = (*fetch.Client)(nil)

type Collector struct {
	Source   Source
	Log      *zap.Logger
	FirstGW  int
	LastGW   int
	Workers  int
	Force    bool
	MaxPages int
}

func NewCollector(src Source, log *zap.Logger) *Collector {
	if log == nil {
		log = zap.NewNop()
	}
	return &Collector{
		Source:   src,
		Log:      log,
		FirstGW:  1,
		LastGW:   model.NumGameweeks,
		Workers:  1,
		MaxPages: 100,
	}
}

// Entries pages through the league standings until has_next is false.
func (c *Collector) Entries(ctx context.Context, leagueID int) ([]StandingEntry, error) {
	out := make([]StandingEntry, 0, 50)
	for page := 1; page <= c.MaxPages; page++ {
		b, err := c.Source.LeagueStandings(ctx, leagueID, page, c.Force)
		if err != nil {
			return nil, fmt.Errorf("standings page %d: %w", page, err)
		}
		var sp StandingsPage
		if err := json.Unmarshal(b, &sp); err != nil {
			return nil, fmt.Errorf("standings page %d: %w", page, err)
		}
		out = append(out, sp.Standings.Results...)
		if !sp.Standings.HasNext {
			break
		}
	}
	return out, nil
}

// Collect builds every manager's season rows. A manager/gameweek that fails
// to fetch or decode is logged and skipped.
func (c *Collector) Collect(ctx context.Context, leagueID int) ([]model.GameweekRow, error) {
	entries, err := c.Entries(ctx, leagueID)
	if err != nil {
		return nil, err
	}
	c.Log.Info("league entries loaded", zap.Int("league_id", leagueID), zap.Int("entries", len(entries)))

	live := make(map[int]map[int]points.LiveStats, c.LastGW)
	for gw := c.FirstGW; gw <= c.LastGW; gw++ {
		b, err := c.Source.EventLive(ctx, gw, c.Force)
		if err == nil {
			live[gw], err = ParseEventLive(b)
		}
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			c.Log.Warn("skipping gameweek", zap.Int("gw", gw), zap.Error(err))
			continue
		}
	}

	perEntry := make([][]model.GameweekRow, len(entries))
	g, gctx := errgroup.WithContext(ctx)
	workers := c.Workers
	if workers <= 0 {
		workers = 1
	}
	g.SetLimit(workers)
	for i, entry := range entries {
		g.Go(func() error {
			rows, err := c.collectEntry(gctx, entry, live)
			perEntry[i] = rows
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	rows := make([]model.GameweekRow, 0, len(entries)*len(live))
	for _, r := range perEntry {
		rows = append(rows, r...)
	}
	return rows, nil
}

func (c *Collector) collectEntry(ctx context.Context, entry StandingEntry, live map[int]map[int]points.LiveStats) ([]model.GameweekRow, error) {
	rows := make([]model.GameweekRow, 0, len(live))
	for gw := c.FirstGW; gw <= c.LastGW; gw++ {
		gwLive, ok := live[gw]
		if !ok {
			continue
		}
		b, err := c.Source.EntryPicks(ctx, entry.Entry, gw, c.Force)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			c.Log.Warn("skipping entry gameweek",
				zap.Int("entry", entry.Entry), zap.String("entry_name", entry.EntryName),
				zap.Int("gw", gw), zap.Error(err))
			continue
		}
		raw, err := ParseEntryPicks(b)
		if err != nil {
			c.Log.Warn("skipping entry gameweek",
				zap.Int("entry", entry.Entry), zap.Int("gw", gw), zap.Error(err))
			continue
		}
		rows = append(rows, BuildRow(entry, gw, raw, gwLive))
	}
	c.Log.Debug("entry collected", zap.String("entry_name", entry.EntryName), zap.Int("rows", len(rows)))
	return rows, nil
}
