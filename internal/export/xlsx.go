// Package export writes season results for spreadsheets and data tools.
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/aatrey56/fpl-season-report/internal/awards"
	"github.com/aatrey56/fpl-season-report/internal/model"
	"github.com/aatrey56/fpl-season-report/internal/season"
)

const (
	SheetAggregates  = "Aggregates"
	SheetAwards      = "Awards"
	SheetTopCaptains = "TopCaptains"
	SheetGameweeks   = "Gameweeks"
)

// Workbook is what WriteXLSX lays out, one sheet per field.
type Workbook struct {
	Aggregates  []season.Aggregate
	Awards      []awards.Award
	TopCaptains []awards.CaptainPick
	Rows        []model.GameweekRow
}

type sheet struct {
	name   string
	header []any
	rows   [][]any
}

func (wb Workbook) sheets() []sheet {
	aggs := sheet{name: SheetAggregates, header: []any{
		"entry_name", "player_name", "gameweeks", "points", "bench", "hits",
		"captain_points", "transfer_gain", "autosub_count", "event_transfers",
		"avg_gw_points", "avg_bench_points", "efficiency", "transfer_loss",
		"total_hits", "max_bench_points", "best_gw_count", "worst_gw_count",
		"round1", "round2", "round_diff",
	}}
	for _, a := range wb.Aggregates {
		aggs.rows = append(aggs.rows, []any{
			a.EntryName, a.PlayerName, a.Gameweeks, a.Points, a.Bench, a.Hits,
			a.CaptainPoints, a.TransferGain, a.AutosubCount, a.EventTransfers,
			a.AvgGWPoints, a.AvgBenchPoints, a.Efficiency, a.TransferLoss,
			a.TotalHits, a.MaxBenchPoints, a.BestGWCount, a.WorstGWCount,
			a.Round1, a.Round2, a.RoundDiff,
		})
	}

	aw := sheet{name: SheetAwards, header: []any{"key", "title", "team", "reason", "value"}}
	for _, a := range wb.Awards {
		aw.rows = append(aw.rows, []any{a.Key, a.Title, a.Team, a.Reason, a.Value})
	}

	caps := sheet{name: SheetTopCaptains, header: []any{"entry_name", "captain_id", "captain_name", "points", "gw", "label"}}
	for _, c := range wb.TopCaptains {
		caps.rows = append(caps.rows, []any{c.EntryName, c.CaptainID, c.CaptainName, c.Points, c.Gameweek, c.Label})
	}

	gws := sheet{name: SheetGameweeks, header: make([]any, len(season.Columns))}
	for i, c := range season.Columns {
		gws.header[i] = c
	}
	for _, r := range wb.Rows {
		gws.rows = append(gws.rows, []any{
			r.Gameweek, r.Points, joinIDs(r.Team.PlayerIDs()), r.Bench, r.Hits,
			r.EventTransfers, r.Chip, r.AutosubCount, r.CaptainID, r.CaptainPoints,
			joinIDs(r.TransferInIDs), joinIDs(r.TransferOutIDs), r.TransferGain,
			r.PlayerName, r.EntryName,
		})
	}
	return []sheet{aggs, aw, caps, gws}
}

// WriteXLSX saves the workbook with a bold, frozen header row on every sheet.
func WriteXLSX(path string, wb Workbook) error {
	f := excelize.NewFile()
	defer f.Close()

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	for i, s := range wb.sheets() {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", s.name); err != nil {
				return err
			}
		} else if _, err := f.NewSheet(s.name); err != nil {
			return err
		}
		if err := writeSheet(f, s, bold); err != nil {
			return fmt.Errorf("sheet %s: %w", s.name, err)
		}
	}
	f.SetActiveSheet(0)

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return f.SaveAs(path)
}

func writeSheet(f *excelize.File, s sheet, style int) error {
	if err := f.SetSheetRow(s.name, "A1", &s.header); err != nil {
		return err
	}
	if err := f.SetRowStyle(s.name, 1, 1, style); err != nil {
		return err
	}
	for i, row := range s.rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(s.name, cell, &row); err != nil {
			return err
		}
	}
	last, err := excelize.CoordinatesToCellName(len(s.header), 1)
	if err != nil {
		return err
	}
	if err := f.SetColWidth(s.name, "A", strings.TrimSuffix(last, "1"), 16); err != nil {
		return err
	}
	return f.SetPanes(s.name, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
}

func joinIDs(ids []int) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = fmt.Sprint(id)
	}
	return strings.Join(parts, ",")
}
