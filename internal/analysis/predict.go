package analysis

import (
	"gonum.org/v1/gonum/stat"

	"github.com/aatrey56/fpl-season-report/internal/model"
	"github.com/aatrey56/fpl-season-report/internal/season"
)

const (
	formWindow   = 5
	weightForm   = 0.5
	weightSeason = 0.3
	weightHist   = 0.2
)

type Prediction struct {
	EntryName       string  `json:"entry_name"`
	AfterGW         int     `json:"after_gw"`
	PredictedPoints float64 `json:"predicted_points"`
	RecentForm      float64 `json:"recent_form"`
	SeasonAvg       float64 `json:"season_avg"`
	HistoricalAvg   float64 `json:"historical_avg"`
	Trend           string  `json:"trend"`
	Confidence      float64 `json:"confidence"`
}

// Predict blends recent form, the season average and the manager's scores in
// the gameweeks that mirror the next five (wrapping past 38) into a
// next-gameweek estimate.
func Predict(rows []model.GameweekRow, entry string, currentGW int) (Prediction, bool) {
	entryRows := season.ByEntry(rows)[entry]
	if len(entryRows) == 0 {
		return Prediction{}, false
	}

	all := make([]float64, 0, len(entryRows))
	recent := make([]float64, 0, formWindow)
	for _, r := range entryRows {
		all = append(all, float64(r.Points))
		if r.Gameweek > currentGW-formWindow && r.Gameweek <= currentGW {
			recent = append(recent, float64(r.Points))
		}
	}

	similar := make(map[int]bool, formWindow)
	for week := currentGW + 1; week <= currentGW+formWindow; week++ {
		if week > model.NumGameweeks {
			similar[week%model.NumGameweeks] = true
		} else {
			similar[week] = true
		}
	}
	hist := make([]float64, 0, formWindow)
	for _, r := range entryRows {
		if similar[r.Gameweek] {
			hist = append(hist, float64(r.Points))
		}
	}

	p := Prediction{EntryName: entry, AfterGW: currentGW}
	p.SeasonAvg = stat.Mean(all, nil)
	p.RecentForm = p.SeasonAvg
	if len(recent) > 0 {
		p.RecentForm = stat.Mean(recent, nil)
	}
	p.HistoricalAvg = p.SeasonAvg
	if len(hist) > 0 {
		p.HistoricalAvg = stat.Mean(hist, nil)
	}
	p.PredictedPoints = weightForm*p.RecentForm + weightSeason*p.SeasonAvg + weightHist*p.HistoricalAvg
	p.Trend = "negative"
	if p.RecentForm > p.SeasonAvg {
		p.Trend = "positive"
	}
	if len(all) > 1 && p.SeasonAvg > 0 {
		consistency := (1 - stat.StdDev(all, nil)/p.SeasonAvg) * 100
		p.Confidence = min(max(consistency, 0), 100)
	}
	return p, true
}

// Predictions estimates the gameweek after the last one in the data for
// every entry.
func Predictions(rows []model.GameweekRow) []Prediction {
	gws := season.Gameweeks(rows)
	if len(gws) == 0 {
		return nil
	}
	current := gws[len(gws)-1]
	out := make([]Prediction, 0)
	for _, name := range season.Entries(rows) {
		if p, ok := Predict(rows, name, current); ok {
			out = append(out, p)
		}
	}
	return out
}
