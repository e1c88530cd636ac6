package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeasonChip(t *testing.T) {
	assert.Equal(t, ChipWildcard1, SeasonChip(ChipWildcard, 1))
	assert.Equal(t, ChipWildcard1, SeasonChip(ChipWildcard, FirstHalfLastGW))
	assert.Equal(t, ChipWildcard2, SeasonChip(ChipWildcard, FirstHalfLastGW+1))
	assert.Equal(t, ChipFreeHit, SeasonChip(ChipFreeHit, 30))
	assert.Equal(t, "", SeasonChip("", 5))
}

func TestChipName(t *testing.T) {
	assert.Equal(t, "Bench Boost", ChipName(ChipBenchBoost))
	assert.Equal(t, "Wildcard - 2nd Round", ChipName(ChipWildcard2))
	assert.Equal(t, "mystery", ChipName("mystery"))
}

func TestParseTeam(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want Team
	}{
		{"Empty", "", nil},
		{"NaN", "nan", nil},
		{"EmptyList", "[]", nil},
		{"IDs", "[1, 2, 3]", Team{{PlayerID: 1}, {PlayerID: 2}, {PlayerID: 3}}},
		{"FloatIDs", "[4.0, 5.0]", Team{{PlayerID: 4}, {PlayerID: 5}}},
		{"PythonDicts", "[{'player_id': 7, 'points': 9}, {'player_id': 8, 'points': None}]", Team{{PlayerID: 7, Points: 9}, {PlayerID: 8}}},
		{"ElementKey", `[{"element": 11, "points": 2}]`, Team{{PlayerID: 11, Points: 2}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseTeam(tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}

	_, err := ParseTeam("[1, 2")
	assert.Error(t, err)
}

func TestParseIDList(t *testing.T) {
	ids, err := ParseIDList("[5, 6]")
	require.NoError(t, err)
	assert.Equal(t, []int{5, 6}, ids)

	ids, err = ParseIDList("[]")
	require.NoError(t, err)
	assert.Nil(t, ids)
}

func TestTeamJSONShape(t *testing.T) {
	b, err := json.Marshal(Team{{PlayerID: 1}, {PlayerID: 2}})
	require.NoError(t, err)
	assert.JSONEq(t, `[1,2]`, string(b))

	b, err = json.Marshal(Team{{PlayerID: 1, Points: 6}, {PlayerID: 2}})
	require.NoError(t, err)
	assert.JSONEq(t, `[{"player_id":1,"points":6},{"player_id":2,"points":0}]`, string(b))
}

func TestManagerPoints(t *testing.T) {
	r := GameweekRow{Chip: ChipManager, Team: Team{{PlayerID: 1, Points: 4}, {PlayerID: 99, Points: 11}}}
	assert.Equal(t, 11, r.ManagerPoints())

	r.Chip = ChipBenchBoost
	assert.Equal(t, 0, r.ManagerPoints())

	assert.Equal(t, 0, GameweekRow{Chip: ChipManager}.ManagerPoints())
}
