package season

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aatrey56/fpl-season-report/internal/model"
)

// ---- helpers ----

const header = "gw,points,team,bench,hits,event_transfers,chip,autosub_count,captain_id,captain_points,transfer_in_ids,transfer_out_ids,transfer_gain,player_name,entry_name\n"

func writeCSV(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "csv", "fpl_season_data.csv")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func row(gw int, entry string, pts int) model.GameweekRow {
	return model.GameweekRow{Gameweek: gw, EntryName: entry, Points: pts}
}

// ---- Load ----

func TestLoadParsesPandasStyleCSV(t *testing.T) {
	path := writeCSV(t, header+
		`1,65,"[1, 2, 3]",4.0,0,0,,1,1,12,[5],[6],3,Ann,Alpha`+"\n"+
		`2,70,"[{'player_id': 1, 'points': 2}, {'player_id': 9, 'points': 7}]",0,4,2,manager,0,1,8,[],[],-2,Ann,Alpha`+"\n")

	rows, err := Load(path)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, 4, rows[0].Bench)
	assert.Equal(t, []int{1, 2, 3}, rows[0].Team.PlayerIDs())
	assert.Equal(t, []int{5}, rows[0].TransferInIDs)
	assert.Equal(t, "", rows[0].Chip)
	assert.Equal(t, 7, rows[1].ManagerPoints())
	assert.Equal(t, -2, rows[1].TransferGain)
}

func TestLoadErrors(t *testing.T) {
	t.Run("MissingFile", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.csv"))
		assert.True(t, errors.Is(err, os.ErrNotExist))
	})
	t.Run("Empty", func(t *testing.T) {
		_, err := Load(writeCSV(t, ""))
		assert.True(t, errors.Is(err, ErrEmptyData))
	})
	t.Run("HeaderOnly", func(t *testing.T) {
		_, err := Load(writeCSV(t, header))
		assert.True(t, errors.Is(err, ErrEmptyData))
	})
	t.Run("MissingColumns", func(t *testing.T) {
		_, err := Load(writeCSV(t, "gw,points,entry_name\n1,2,A\n"))
		require.True(t, errors.Is(err, ErrMissingColumns))
		var mc *MissingColumnsError
		require.True(t, errors.As(err, &mc))
		assert.Contains(t, mc.Columns, "captain_points")
		assert.NotContains(t, mc.Columns, "gw")
	})
	t.Run("BadNumber", func(t *testing.T) {
		_, err := Load(writeCSV(t, header+"x,1,[],0,0,0,,0,0,0,[],[],0,A,B\n"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "gw")
	})
}

func TestWriteCSVRoundTrip(t *testing.T) {
	in := []model.GameweekRow{{
		Gameweek: 3, Points: 55, Team: model.Team{{PlayerID: 1, Points: 6}, {PlayerID: 2}},
		Bench: 2, Hits: 4, EventTransfers: 2, Chip: "bboost", AutosubCount: 1,
		CaptainID: 1, CaptainPoints: 6, TransferInIDs: []int{2}, TransferOutIDs: []int{3},
		TransferGain: 1, PlayerName: "Ann", EntryName: "Alpha, FC",
	}}
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, in))

	out, err := Read(strings.NewReader(buf.String()))
	require.NoError(t, err)
	if diff := cmp.Diff(in, out, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

// ---- Aggregates ----

func TestAggregates(t *testing.T) {
	rows := []model.GameweekRow{
		{Gameweek: 1, EntryName: "B", Points: 60, Bench: 5, Hits: 4, CaptainPoints: 10, TransferGain: -3, EventTransfers: 2},
		{Gameweek: 1, EntryName: "A", Points: 60, Bench: 2},
		{Gameweek: 20, EntryName: "A", Points: 80, Bench: 12, Chip: "bboost", TransferGain: 4},
		{Gameweek: 20, EntryName: "B", Points: 40, Bench: 1, Hits: 8, TransferGain: -1},
	}

	aggs := Aggregates(rows)
	require.Len(t, aggs, 2)
	a, b := aggs[0], aggs[1]
	assert.Equal(t, "A", a.EntryName)

	assert.Equal(t, 140, a.Points)
	assert.Equal(t, 14, a.Bench)
	assert.Equal(t, 2, a.MaxBenchPoints)
	assert.InDelta(t, 70.0, a.AvgGWPoints, 1e-9)
	assert.InDelta(t, 70.0, a.Efficiency, 1e-9)
	assert.Equal(t, 60, a.Round1)
	assert.Equal(t, 80, a.Round2)
	assert.Equal(t, 20, a.RoundDiff)
	assert.Equal(t, 1, a.BestGWCount)
	assert.Equal(t, 0, a.WorstGWCount)

	// gw1 tie at 60: first row (B) takes both best and worst.
	assert.Equal(t, 1, b.BestGWCount)
	assert.Equal(t, 2, b.WorstGWCount)
	assert.Equal(t, 12, b.Hits)
	assert.Equal(t, 3, b.TotalHits)
	assert.Equal(t, -4, b.TransferLoss)
	assert.InDelta(t, (100.0-12.0)/2.0, b.Efficiency, 1e-9)
	assert.Equal(t, -20, b.RoundDiff)
}

func TestEfficiencyUsesLeagueGameweeks(t *testing.T) {
	rows := []model.GameweekRow{row(1, "A", 50), row(2, "A", 50), row(2, "Late", 60)}

	late, ok := Find(Aggregates(rows), "Late")
	require.True(t, ok)
	assert.InDelta(t, 30.0, late.Efficiency, 1e-9)
	assert.InDelta(t, 60.0, late.AvgGWPoints, 1e-9)
}

func TestValidate(t *testing.T) {
	assert.ErrorIs(t, Validate(nil), ErrEmptyData)
	assert.ErrorIs(t, Validate([]model.GameweekRow{row(0, "A", 1)}), ErrNoGameweeks)
	assert.ErrorIs(t, Validate([]model.GameweekRow{row(1, "", 1)}), ErrNoEntries)
	assert.NoError(t, Validate([]model.GameweekRow{row(1, "A", 1)}))
}

func TestSortByKeepsNameOrderOnTies(t *testing.T) {
	aggs := []Aggregate{{EntryName: "A", Points: 5}, {EntryName: "B", Points: 9}, {EntryName: "C", Points: 5}}

	got := SortBy(aggs, func(a Aggregate) float64 { return float64(a.Points) }, false)
	assert.Equal(t, []string{"B", "A", "C"}, []string{got[0].EntryName, got[1].EntryName, got[2].EntryName})

	got = SortBy(aggs, func(a Aggregate) float64 { return float64(a.Points) }, true)
	assert.Equal(t, "A", got[0].EntryName)
}

func TestSeasonLabel(t *testing.T) {
	now := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)
	first, second := SeasonYears(now)
	assert.Equal(t, 2024, first)
	assert.Equal(t, 2025, second)
	assert.Equal(t, "2024/2025", SeasonLabel(now))
}
