package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

const (
	NumGameweeks    = 38
	FirstHalfLastGW = 19
)

const (
	ChipTripleCaptain = "3xc"
	ChipBenchBoost    = "bboost"
	ChipFreeHit       = "freehit"
	ChipManager       = "manager"
	ChipWildcard      = "wildcard"
	ChipWildcard1     = "wildcard1"
	ChipWildcard2     = "wildcard2"
)

// Chips lists the chips in report order.
var Chips = []string{
	ChipTripleCaptain,
	ChipBenchBoost,
	ChipFreeHit,
	ChipManager,
	ChipWildcard1,
	ChipWildcard2,
}

var chipNames = map[string]string{
	ChipTripleCaptain: "Triple Captain",
	ChipBenchBoost:    "Bench Boost",
	ChipFreeHit:       "Free Hit",
	ChipManager:       "Assistant Manager",
	ChipWildcard:      "Wildcard",
	ChipWildcard1:     "Wildcard - 1st Round",
	ChipWildcard2:     "Wildcard - 2nd Round",
}

// ChipName returns the display name of a chip code, or the code itself.
func ChipName(chip string) string {
	if name, ok := chipNames[chip]; ok {
		return name
	}
	return chip
}

// SeasonChip maps the API's "wildcard" to the half-season wildcard it was
// played in. Other chips pass through.
func SeasonChip(chip string, gw int) string {
	if chip != ChipWildcard {
		return chip
	}
	if gw <= FirstHalfLastGW {
		return ChipWildcard1
	}
	return ChipWildcard2
}

type Pick struct {
	PlayerID int `json:"player_id"`
	Points   int `json:"points"`
}

// Team is a manager's squad for one gameweek. It decodes either a list of
// element ids or a list of pick objects.
type Team []Pick

func (t Team) PlayerIDs() []int {
	out := make([]int, 0, len(t))
	for _, p := range t {
		out = append(out, p.PlayerID)
	}
	return out
}

func (t Team) MarshalJSON() ([]byte, error) {
	ids := true
	for _, p := range t {
		if p.Points != 0 {
			ids = false
			break
		}
	}
	if ids {
		return json.Marshal(t.PlayerIDs())
	}
	return json.Marshal([]Pick(t))
}

func (t *Team) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*t = nil
		return nil
	}
	var items []json.RawMessage
	if err := json.Unmarshal(b, &items); err != nil {
		return fmt.Errorf("team: %w", err)
	}
	out := make(Team, 0, len(items))
	for _, item := range items {
		item = bytes.TrimSpace(item)
		if len(item) > 0 && item[0] == '{' {
			var obj struct {
				PlayerID *int `json:"player_id"`
				Element  *int `json:"element"`
				ID       *int `json:"id"`
				Points   int  `json:"points"`
			}
			if err := json.Unmarshal(item, &obj); err != nil {
				return fmt.Errorf("team pick: %w", err)
			}
			p := Pick{Points: obj.Points}
			switch {
			case obj.PlayerID != nil:
				p.PlayerID = *obj.PlayerID
			case obj.Element != nil:
				p.PlayerID = *obj.Element
			case obj.ID != nil:
				p.PlayerID = *obj.ID
			}
			out = append(out, p)
			continue
		}
		var id float64
		if err := json.Unmarshal(item, &id); err != nil {
			return fmt.Errorf("team pick: %w", err)
		}
		out = append(out, Pick{PlayerID: int(id)})
	}
	*t = out
	return nil
}

// ParseTeam parses a team cell. Python literal quoting is accepted.
func ParseTeam(s string) (Team, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == "nan" || s == "[]" {
		return nil, nil
	}
	var t Team
	if err := json.Unmarshal([]byte(pythonToJSON(s)), &t); err != nil {
		return nil, err
	}
	return t, nil
}

// ParseIDList parses an id list cell such as "[1, 2]".
func ParseIDList(s string) ([]int, error) {
	t, err := ParseTeam(s)
	if err != nil {
		return nil, err
	}
	if len(t) == 0 {
		return nil, nil
	}
	return t.PlayerIDs(), nil
}

var pythonLiterals = strings.NewReplacer(
	"'", `"`,
	"None", "null",
	"True", "true",
	"False", "false",
)

func pythonToJSON(s string) string {
	return pythonLiterals.Replace(s)
}

// GameweekRow is one manager's result for one gameweek.
type GameweekRow struct {
	Gameweek       int    `json:"gw"`
	Points         int    `json:"points"`
	Team           Team   `json:"team"`
	Bench          int    `json:"bench"`
	Hits           int    `json:"hits"`
	EventTransfers int    `json:"event_transfers"`
	Chip           string `json:"chip"`
	AutosubCount   int    `json:"autosub_count"`
	CaptainID      int    `json:"captain_id"`
	CaptainPoints  int    `json:"captain_points"`
	TransferInIDs  []int  `json:"transfer_in_ids"`
	TransferOutIDs []int  `json:"transfer_out_ids"`
	TransferGain   int    `json:"transfer_gain"`
	PlayerName     string `json:"player_name"`
	EntryName      string `json:"entry_name"`
}

// ManagerPoints is the Assistant Manager score: the points of the last squad
// element when the manager chip is active.
func (r GameweekRow) ManagerPoints() int {
	if r.Chip != ChipManager || len(r.Team) == 0 {
		return 0
	}
	return r.Team[len(r.Team)-1].Points
}

func FirstHalf(gw int) bool {
	return gw <= FirstHalfLastGW
}
