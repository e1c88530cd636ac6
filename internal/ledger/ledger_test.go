package ledger

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aatrey56/fpl-season-report/internal/model"
	"github.com/aatrey56/fpl-season-report/internal/points"
)

// ---- helpers ----

// fakeSource serves canned payloads keyed by request.
type fakeSource struct {
	pages map[int]any
	live  map[int]any
	picks map[string]any
}

func mustJSON(v any) []byte {
	b, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return b
}

func (f *fakeSource) LeagueStandings(ctx context.Context, leagueID int, page int, force bool) ([]byte, error) {
	p, ok := f.pages[page]
	if !ok {
		return nil, fmt.Errorf("no page %d", page)
	}
	return mustJSON(p), nil
}

func (f *fakeSource) EventLive(ctx context.Context, gw int, force bool) ([]byte, error) {
	l, ok := f.live[gw]
	if !ok {
		return nil, fmt.Errorf("no live for gw %d", gw)
	}
	return mustJSON(l), nil
}

func (f *fakeSource) EntryPicks(ctx context.Context, entryID int, gw int, force bool) ([]byte, error) {
	p, ok := f.picks[fmt.Sprintf("%d/%d", entryID, gw)]
	if !ok {
		return nil, fmt.Errorf("no picks for %d gw %d", entryID, gw)
	}
	return mustJSON(p), nil
}

func standingsPage(hasNext bool, entries ...StandingEntry) map[string]any {
	return map[string]any{
		"league":    map[string]any{"id": 1, "name": "Test"},
		"standings": map[string]any{"has_next": hasNext, "results": entries},
	}
}

func livePayload(pts map[int]int) map[string]any {
	els := make([]any, 0, len(pts))
	for id, p := range pts {
		els = append(els, map[string]any{"id": id, "stats": map[string]any{"total_points": p, "minutes": 90}})
	}
	return map[string]any{"elements": els}
}

// squad returns 15 picks for elements base+1..base+15 with the first as captain.
func squad(base int) []any {
	out := make([]any, 0, 15)
	for i := 1; i <= 15; i++ {
		mult := 1
		if i == 1 {
			mult = 2
		}
		if i > 11 {
			mult = 0
		}
		out = append(out, map[string]any{
			"element": base + i, "position": i, "multiplier": mult, "is_captain": i == 1,
		})
	}
	return out
}

// ---- tests ----

func TestEntriesFollowsPagination(t *testing.T) {
	src := &fakeSource{pages: map[int]any{
		1: standingsPage(true, StandingEntry{Entry: 1, EntryName: "A"}),
		2: standingsPage(false, StandingEntry{Entry: 2, EntryName: "B"}),
	}}
	c := NewCollector(src, nil)

	entries, err := c.Entries(context.Background(), 99)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "B", entries[1].EntryName)
}

func TestBuildRowBenchBoostAndWildcard(t *testing.T) {
	live := map[int]points.LiveStats{}
	for i := 1; i <= 15; i++ {
		live[100+i] = points.LiveStats{TotalPoints: i}
	}
	var raw EntryPicksRaw
	require.NoError(t, json.Unmarshal(mustJSON(map[string]any{
		"active_chip":    "bboost",
		"entry_history":  map[string]any{"points": 80, "event_transfers": 2, "event_transfers_cost": 4, "points_on_bench": 3},
		"picks":          squad(100),
		"automatic_subs": []any{map[string]any{"element_in": 112, "element_out": 105}},
	}), &raw))

	row := BuildRow(StandingEntry{Entry: 5, EntryName: "Alpha", PlayerName: "Ann"}, 7, raw, live)

	assert.Equal(t, 12+13+14+15, row.Bench)
	assert.Equal(t, 4, row.Hits)
	assert.Equal(t, 2, row.EventTransfers)
	assert.Equal(t, 101, row.CaptainID)
	assert.Equal(t, 1, row.CaptainPoints)
	assert.Equal(t, 12-5, row.TransferGain)
	assert.Equal(t, 1, row.AutosubCount)
	assert.Equal(t, []int{112}, row.TransferInIDs)
	assert.Len(t, row.Team, 15)

	raw.ActiveChip = "wildcard"
	assert.Equal(t, model.ChipWildcard1, BuildRow(StandingEntry{}, 7, raw, live).Chip)
	assert.Equal(t, model.ChipWildcard2, BuildRow(StandingEntry{}, 25, raw, live).Chip)
	assert.Equal(t, 3, BuildRow(StandingEntry{}, 25, raw, live).Bench)
}

func TestCollectSkipsFailures(t *testing.T) {
	src := &fakeSource{
		pages: map[int]any{1: standingsPage(false,
			StandingEntry{Entry: 1, EntryName: "A"},
			StandingEntry{Entry: 2, EntryName: "B"},
		)},
		live: map[int]any{
			1: livePayload(map[int]int{101: 5}),
			2: livePayload(map[int]int{101: 2}),
			// gw 3 live missing: skipped for everyone
		},
		picks: map[string]any{
			"1/1": map[string]any{"entry_history": map[string]any{"points": 50}, "picks": squad(100)},
			"1/2": map[string]any{"entry_history": map[string]any{"points": 40}, "picks": squad(100)},
			"2/1": map[string]any{"entry_history": map[string]any{"points": 60}, "picks": squad(100)},
			// 2/2 missing: skipped
		},
	}
	c := NewCollector(src, nil)
	c.LastGW = 3
	c.Workers = 2

	rows, err := c.Collect(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "A", rows[0].EntryName)
	assert.Equal(t, 1, rows[0].Gameweek)
	assert.Equal(t, 2, rows[1].Gameweek)
	assert.Equal(t, "B", rows[2].EntryName)
	assert.Equal(t, 5, rows[0].CaptainPoints)
}
