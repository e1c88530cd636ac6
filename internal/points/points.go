package points

type LiveStats struct {
	Minutes     int `json:"minutes"`
	TotalPoints int `json:"total_points"`
}

type Pick struct {
	Element       int  `json:"element"`
	Position      int  `json:"position"`
	Multiplier    int  `json:"multiplier"`
	IsCaptain     bool `json:"is_captain"`
	IsViceCaptain bool `json:"is_vice_captain"`
}

type AutoSub struct {
	ElementIn  int `json:"element_in"`
	ElementOut int `json:"element_out"`
	Event      int `json:"event"`
}

type PlayerPoints struct {
	Element    int `json:"element"`
	Position   int `json:"position"`
	Minutes    int `json:"minutes"`
	Points     int `json:"points"`
	Multiplier int `json:"multiplier"`
	Total      int `json:"total"`
}

type Result struct {
	EntryID       int            `json:"entry_id"`
	Gameweek      int            `json:"gameweek"`
	Players       []PlayerPoints `json:"players"`
	StarterPoints int            `json:"starter_points"`
	BenchPoints   int            `json:"bench_points"`
	CaptainID     int            `json:"captain_id"`
	CaptainPoints int            `json:"captain_points"`
	AutosubGain   int            `json:"autosub_gain"`
}

// BuildResult scores a classic FPL squad. Starters (positions 1-11) score
// points times multiplier; bench players (12-15) are summed raw. The captain
// figure is the captain's raw, unmultiplied total.
func BuildResult(entryID int, gw int, picks []Pick, subs []AutoSub, liveByElement map[int]LiveStats) *Result {
	res := &Result{
		EntryID:  entryID,
		Gameweek: gw,
		Players:  make([]PlayerPoints, 0, len(picks)),
	}

	for _, p := range picks {
		live := liveByElement[p.Element]
		pp := PlayerPoints{
			Element:    p.Element,
			Position:   p.Position,
			Minutes:    live.Minutes,
			Points:     live.TotalPoints,
			Multiplier: p.Multiplier,
		}
		if p.Position > 11 {
			res.BenchPoints += live.TotalPoints
		} else {
			pp.Total = live.TotalPoints * p.Multiplier
			res.StarterPoints += pp.Total
		}
		if p.IsCaptain {
			res.CaptainID = p.Element
			res.CaptainPoints = live.TotalPoints
		}
		res.Players = append(res.Players, pp)
	}

	res.AutosubGain = AutosubGain(subs, liveByElement)
	return res
}

// AutosubGain is the points of subbed-in players minus the points of the
// players they replaced.
func AutosubGain(subs []AutoSub, liveByElement map[int]LiveStats) int {
	gain := 0
	for _, s := range subs {
		gain += liveByElement[s.ElementIn].TotalPoints - liveByElement[s.ElementOut].TotalPoints
	}
	return gain
}
