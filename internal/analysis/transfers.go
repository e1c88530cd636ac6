package analysis

import (
	"github.com/aatrey56/fpl-season-report/internal/model"
	"github.com/aatrey56/fpl-season-report/internal/season"
)

type TransferTiming struct {
	EntryName            string  `json:"entry_name"`
	TotalTransfers       int     `json:"total_transfers"`
	Hits                 int     `json:"hits"`
	TransferGain         int     `json:"transfer_gain"`
	AvgPointsPerTransfer float64 `json:"avg_points_per_transfer"`
}

func TransferTimings(rows []model.GameweekRow) []TransferTiming {
	byEntry := season.ByEntry(rows)
	out := make([]TransferTiming, 0, len(byEntry))
	for _, name := range season.Entries(rows) {
		t := TransferTiming{EntryName: name}
		for _, r := range byEntry[name] {
			t.TotalTransfers += r.EventTransfers
			t.Hits += r.Hits
			t.TransferGain += r.TransferGain
		}
		t.AvgPointsPerTransfer = float64(t.TransferGain) / float64(max(t.TotalTransfers, 1))
		out = append(out, t)
	}
	return out
}
