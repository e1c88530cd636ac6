package export

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	parquet "github.com/parquet-go/parquet-go"

	"github.com/aatrey56/fpl-season-report/internal/model"
)

// ParquetRow is one gameweek of one manager, flattened for columnar
// storage. Team holds the JSON encoding of model.Team.
type ParquetRow struct {
	Season         string  `parquet:"season"`
	Gameweek       int64   `parquet:"gw"`
	EntryName      string  `parquet:"entry_name"`
	PlayerName     string  `parquet:"player_name"`
	Points         int64   `parquet:"points"`
	Bench          int64   `parquet:"bench"`
	Hits           int64   `parquet:"hits"`
	EventTransfers int64   `parquet:"event_transfers"`
	Chip           *string `parquet:"chip,optional"`
	AutosubCount   int64   `parquet:"autosub_count"`
	CaptainID      int64   `parquet:"captain_id"`
	CaptainPoints  int64   `parquet:"captain_points"`
	TransferGain   int64   `parquet:"transfer_gain"`
	TransferInIDs  []int64 `parquet:"transfer_in_ids"`
	TransferOutIDs []int64 `parquet:"transfer_out_ids"`
	Team           string  `parquet:"team"`
}

func toParquet(seasonLabel string, r model.GameweekRow) (ParquetRow, error) {
	team, err := json.Marshal(r.Team)
	if err != nil {
		return ParquetRow{}, err
	}
	out := ParquetRow{
		Season:         seasonLabel,
		Gameweek:       int64(r.Gameweek),
		EntryName:      r.EntryName,
		PlayerName:     r.PlayerName,
		Points:         int64(r.Points),
		Bench:          int64(r.Bench),
		Hits:           int64(r.Hits),
		EventTransfers: int64(r.EventTransfers),
		AutosubCount:   int64(r.AutosubCount),
		CaptainID:      int64(r.CaptainID),
		CaptainPoints:  int64(r.CaptainPoints),
		TransferGain:   int64(r.TransferGain),
		TransferInIDs:  int64s(r.TransferInIDs),
		TransferOutIDs: int64s(r.TransferOutIDs),
		Team:           string(team),
	}
	if r.Chip != "" {
		chip := r.Chip
		out.Chip = &chip
	}
	return out, nil
}

func (p ParquetRow) row() (model.GameweekRow, error) {
	var team model.Team
	if p.Team != "" {
		if err := json.Unmarshal([]byte(p.Team), &team); err != nil {
			return model.GameweekRow{}, fmt.Errorf("team of %s GW %d: %w", p.EntryName, p.Gameweek, err)
		}
	}
	r := model.GameweekRow{
		Gameweek:       int(p.Gameweek),
		EntryName:      p.EntryName,
		PlayerName:     p.PlayerName,
		Points:         int(p.Points),
		Bench:          int(p.Bench),
		Hits:           int(p.Hits),
		EventTransfers: int(p.EventTransfers),
		AutosubCount:   int(p.AutosubCount),
		CaptainID:      int(p.CaptainID),
		CaptainPoints:  int(p.CaptainPoints),
		TransferGain:   int(p.TransferGain),
		TransferInIDs:  ints(p.TransferInIDs),
		TransferOutIDs: ints(p.TransferOutIDs),
		Team:           team,
	}
	if p.Chip != nil {
		r.Chip = *p.Chip
	}
	return r, nil
}

// WriteParquet stores the season table as a Snappy-compressed Parquet file.
func WriteParquet(path, seasonLabel string, rows []model.GameweekRow) error {
	out := make([]ParquetRow, 0, len(rows))
	for _, r := range rows {
		pr, err := toParquet(seasonLabel, r)
		if err != nil {
			return err
		}
		out = append(out, pr)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	w := parquet.NewWriter(f, parquet.SchemaOf(new(ParquetRow)), parquet.Compression(&parquet.Snappy))
	for _, r := range out {
		if err := w.Write(r); err != nil {
			_ = w.Close()
			_ = f.Close()
			return err
		}
	}
	if err := w.Close(); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// ReadParquet loads a file written by WriteParquet.
func ReadParquet(path string) ([]model.GameweekRow, error) {
	prs, err := parquet.ReadFile[ParquetRow](path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	out := make([]model.GameweekRow, 0, len(prs))
	for _, p := range prs {
		r, err := p.row()
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}

func int64s(v []int) []int64 {
	if len(v) == 0 {
		return nil
	}
	out := make([]int64, len(v))
	for i, x := range v {
		out[i] = int64(x)
	}
	return out
}

func ints(v []int64) []int {
	if len(v) == 0 {
		return nil
	}
	out := make([]int, len(v))
	for i, x := range v {
		out[i] = int(x)
	}
	return out
}
