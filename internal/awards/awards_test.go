package awards

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aatrey56/fpl-season-report/internal/model"
	"github.com/aatrey56/fpl-season-report/internal/players"
	"github.com/aatrey56/fpl-season-report/internal/season"
)

// ---- helpers ----

func team(ids ...int) model.Team {
	t := make(model.Team, 0, len(ids))
	for _, id := range ids {
		t = append(t, model.Pick{PlayerID: id})
	}
	return t
}

func fixture() []model.GameweekRow {
	return []model.GameweekRow{
		{Gameweek: 1, EntryName: "Alpha", Points: 70, Bench: 4, CaptainID: 10, CaptainPoints: 12, Team: team(10, 11), AutosubCount: 1},
		{Gameweek: 1, EntryName: "Beta", Points: 40, Bench: 9, Hits: 4, EventTransfers: 3, CaptainID: 20, CaptainPoints: 2, Team: team(10, 20)},
		{Gameweek: 2, EntryName: "Alpha", Points: 50, Bench: 15, Chip: model.ChipBenchBoost, CaptainID: 10, CaptainPoints: 5, Team: team(10, 11)},
		{Gameweek: 2, EntryName: "Beta", Points: 90, Bench: 1, Chip: model.ChipTripleCaptain, CaptainID: 20, CaptainPoints: 15, TransferGain: 6, Team: team(10, 21)},
		{Gameweek: 20, EntryName: "Alpha", Points: 30, Chip: model.ChipFreeHit, CaptainID: 11, CaptainPoints: 2, Team: team(11)},
		{Gameweek: 20, EntryName: "Beta", Points: 80, CaptainID: 20, CaptainPoints: 12, Team: team(20)},
	}
}

func byKey(list []Award) map[string]Award {
	out := make(map[string]Award, len(list))
	for _, a := range list {
		out[a.Key] = a
	}
	return out
}

// ---- tests ----

func TestAssign(t *testing.T) {
	rows := fixture()
	names := players.Names{10: "Salah", 20: "Haaland"}

	list, err := Assign(rows, season.Aggregates(rows), names, nil)
	require.NoError(t, err)
	got := byKey(list)

	cases := []struct {
		key, team, value string
	}{
		{KeyCaptain, "Beta", "29"},
		{KeyBench, "Alpha", "19"},
		{KeyHits, "Beta", "4"},
		{KeyTransferGain, "Beta", "6"},
		{KeyBestGW, "Beta", "2"},
		{KeyWorstGW, "Alpha", "2"},
		{KeyRoundProgress, "Beta", "-50"},
		{KeyRoundRegress, "Alpha", "-90"},
		{KeyEfficiency, "Beta", "68.67"},
		{KeyAutosubs, "Alpha", "1"},
		{KeyTransfers, "Beta", "3"},
		{KeyBenchBoost, "Alpha", "15 pts"},
		{KeyTripleCaptain, "Beta", "45 pts"},
		{KeyFreeHit, "Alpha", "30 pts"},
		{KeyMostPicked, "Salah", "4 times"},
		{KeyLowestGW, "Alpha", "30 pts"},
		{KeyHighestGW, "Beta", "90 pts"},
		{KeyHighestBenchGW, "Alpha", "15 pts"},
	}
	require.Len(t, list, len(cases))
	for _, tc := range cases {
		t.Run(tc.key, func(t *testing.T) {
			a, ok := got[tc.key]
			require.True(t, ok)
			assert.Equal(t, tc.team, a.Team)
			assert.Equal(t, tc.value, a.Value)
			assert.NotEmpty(t, a.Title)
		})
	}
	assert.Equal(t, "Best Bench Boost (GW 2)", got[KeyBenchBoost].Reason)
	assert.Equal(t, list[0].Key, KeyCaptain)
}

func TestAssignSkipsUnusedChips(t *testing.T) {
	rows := []model.GameweekRow{
		{Gameweek: 1, EntryName: "Alpha", Points: 50},
		{Gameweek: 1, EntryName: "Beta", Points: 60},
	}

	list, err := Assign(rows, season.Aggregates(rows), players.Names{}, nil)
	require.NoError(t, err)
	got := byKey(list)
	for _, k := range []string{KeyBenchBoost, KeyTripleCaptain, KeyFreeHit, KeyMostPicked} {
		_, ok := got[k]
		assert.False(t, ok, k)
	}
	assert.Equal(t, "Beta", got[KeyHighestGW].Team)
}

func TestAssignNoData(t *testing.T) {
	_, err := Assign(nil, nil, nil, nil)
	assert.ErrorIs(t, err, ErrNoData)
}

func TestCatalogOverrides(t *testing.T) {
	rows := fixture()
	cat := DefaultCatalog().Merge(Catalog{KeyCaptain: {Title: "Kto na kapitanie?"}})

	list, err := Assign(rows, season.Aggregates(rows), nil, cat)
	require.NoError(t, err)
	a := byKey(list)[KeyCaptain]
	assert.Equal(t, "Kto na kapitanie?", a.Title)
	assert.Equal(t, "Most captain points", a.Reason)

	assert.Equal(t, "unknown", Catalog{}.Entry("unknown").Title)
}

func TestTopCaptains(t *testing.T) {
	names := players.Names{10: "Salah", 20: "Haaland"}

	top := TopCaptains(fixture(), names, 2)
	require.Len(t, top, 2)
	assert.Equal(t, "Beta", top[0].EntryName)
	assert.Equal(t, 15, top[0].Points)
	assert.Equal(t, 2, top[0].Gameweek)
	assert.Equal(t, "Beta – Haaland – 15 pts - GW2", top[0].Label)
	assert.Equal(t, "Alpha", top[1].EntryName)
	assert.Equal(t, 12, top[1].Points)

	all := TopCaptains(fixture(), nil, 0)
	assert.Len(t, all, 3)
	assert.Equal(t, "11", all[2].CaptainName)
}

func TestMarkdown(t *testing.T) {
	md := Markdown("2024/2025", []Award{{Title: "A|B", Team: "T", Reason: "R", Value: "1"}})
	assert.Contains(t, md, "# Season 2024/2025 awards")
	assert.Contains(t, md, `| A\|B | T | R | 1 |`)
}
