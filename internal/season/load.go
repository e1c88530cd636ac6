// Package season loads a league's season table and derives per-manager
// aggregates from it.
package season

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/aatrey56/fpl-season-report/internal/model"
)

var (
	ErrEmptyData      = errors.New("season data is empty")
	ErrMissingColumns = errors.New("season data is missing required columns")
	ErrNoGameweeks    = errors.New("season data has no gameweeks")
	ErrNoEntries      = errors.New("season data has no entries")
)

// RequiredColumns must be present in every season CSV.
var RequiredColumns = []string{
	"points", "bench", "hits", "captain_points", "team",
	"chip", "gw", "entry_name", "captain_id", "transfer_gain",
}

// Columns is the order WriteCSV emits.
var Columns = []string{
	"gw", "points", "team", "bench", "hits", "event_transfers", "chip",
	"autosub_count", "captain_id", "captain_points", "transfer_in_ids",
	"transfer_out_ids", "transfer_gain", "player_name", "entry_name",
}

type MissingColumnsError struct {
	Columns []string
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("%v: %s", ErrMissingColumns, strings.Join(e.Columns, ", "))
}

func (e *MissingColumnsError) Unwrap() error { return ErrMissingColumns }

// Load reads and validates a season CSV.
func Load(path string) ([]model.GameweekRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open season data: %w", err)
	}
	defer f.Close()

	rows, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if err := Validate(rows); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return rows, nil
}

// Read parses season rows from CSV. Optional columns default to zero.
func Read(r io.Reader) ([]model.GameweekRow, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrEmptyData
	}
	if err != nil {
		return nil, err
	}

	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))] = i
	}
	var missing []string
	for _, c := range RequiredColumns {
		if _, ok := idx[c]; !ok {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return nil, &MissingColumnsError{Columns: missing}
	}

	var out []model.GameweekRow
	line := 1
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		line++
		row, err := parseRecord(rec, idx)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		out = append(out, row)
	}
	if len(out) == 0 {
		return nil, ErrEmptyData
	}
	return out, nil
}

func parseRecord(rec []string, idx map[string]int) (model.GameweekRow, error) {
	cell := func(name string) string {
		i, ok := idx[name]
		if !ok || i >= len(rec) {
			return ""
		}
		v := strings.TrimSpace(rec[i])
		if strings.EqualFold(v, "nan") || v == "None" {
			return ""
		}
		return v
	}
	var firstErr error
	num := func(name string) int {
		n, err := parseInt(cell(name))
		if err != nil && firstErr == nil {
			firstErr = fmt.Errorf("%s: %w", name, err)
		}
		return n
	}

	row := model.GameweekRow{
		Gameweek:       num("gw"),
		Points:         num("points"),
		Bench:          num("bench"),
		Hits:           num("hits"),
		EventTransfers: num("event_transfers"),
		Chip:           cell("chip"),
		AutosubCount:   num("autosub_count"),
		CaptainID:      num("captain_id"),
		CaptainPoints:  num("captain_points"),
		TransferGain:   num("transfer_gain"),
		PlayerName:     cell("player_name"),
		EntryName:      cell("entry_name"),
	}
	if firstErr != nil {
		return model.GameweekRow{}, firstErr
	}

	var err error
	if row.Team, err = model.ParseTeam(cell("team")); err != nil {
		return model.GameweekRow{}, fmt.Errorf("team: %w", err)
	}
	if row.TransferInIDs, err = model.ParseIDList(cell("transfer_in_ids")); err != nil {
		return model.GameweekRow{}, fmt.Errorf("transfer_in_ids: %w", err)
	}
	if row.TransferOutIDs, err = model.ParseIDList(cell("transfer_out_ids")); err != nil {
		return model.GameweekRow{}, fmt.Errorf("transfer_out_ids: %w", err)
	}
	return row, nil
}

// parseInt accepts integers and integral floats such as "4.0".
func parseInt(s string) (int, error) {
	if s == "" {
		return 0, nil
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	return int(math.Round(f)), nil
}

// Validate checks the loaded table is usable for reporting.
func Validate(rows []model.GameweekRow) error {
	if len(rows) == 0 {
		return ErrEmptyData
	}
	if len(Gameweeks(rows)) == 0 {
		return ErrNoGameweeks
	}
	if len(Entries(rows)) == 0 {
		return ErrNoEntries
	}
	return nil
}

// Gameweeks returns the distinct positive gameweeks, ascending.
func Gameweeks(rows []model.GameweekRow) []int {
	seen := make(map[int]bool)
	out := make([]int, 0, model.NumGameweeks)
	for _, r := range rows {
		if r.Gameweek <= 0 || seen[r.Gameweek] {
			continue
		}
		seen[r.Gameweek] = true
		out = append(out, r.Gameweek)
	}
	sort.Ints(out)
	return out
}

// Entries returns the distinct non-empty entry names, sorted.
func Entries(rows []model.GameweekRow) []string {
	seen := make(map[string]bool)
	out := make([]string, 0)
	for _, r := range rows {
		if r.EntryName == "" || seen[r.EntryName] {
			continue
		}
		seen[r.EntryName] = true
		out = append(out, r.EntryName)
	}
	sort.Strings(out)
	return out
}

// ByEntry groups rows per entry, keeping file order within each entry.
func ByEntry(rows []model.GameweekRow) map[string][]model.GameweekRow {
	out := make(map[string][]model.GameweekRow)
	for _, r := range rows {
		out[r.EntryName] = append(out[r.EntryName], r)
	}
	return out
}

// ByGameweek groups rows per gameweek, keeping file order within each week.
func ByGameweek(rows []model.GameweekRow) map[int][]model.GameweekRow {
	out := make(map[int][]model.GameweekRow)
	for _, r := range rows {
		out[r.Gameweek] = append(out[r.Gameweek], r)
	}
	return out
}

// WriteCSV writes rows in the format Read accepts.
func WriteCSV(path string, rows []model.GameweekRow) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Write(f, rows); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func Write(w io.Writer, rows []model.GameweekRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Columns); err != nil {
		return err
	}
	for _, r := range rows {
		team, err := r.Team.MarshalJSON()
		if err != nil {
			return err
		}
		rec := []string{
			strconv.Itoa(r.Gameweek),
			strconv.Itoa(r.Points),
			string(team),
			strconv.Itoa(r.Bench),
			strconv.Itoa(r.Hits),
			strconv.Itoa(r.EventTransfers),
			r.Chip,
			strconv.Itoa(r.AutosubCount),
			strconv.Itoa(r.CaptainID),
			strconv.Itoa(r.CaptainPoints),
			idList(r.TransferInIDs),
			idList(r.TransferOutIDs),
			strconv.Itoa(r.TransferGain),
			r.PlayerName,
			r.EntryName,
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func idList(ids []int) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// SeasonYears returns the season that ended in now's year, e.g. 2024 and 2025.
func SeasonYears(now time.Time) (int, int) {
	return now.Year() - 1, now.Year()
}

// SeasonLabel formats SeasonYears as "2024/2025".
func SeasonLabel(now time.Time) string {
	first, second := SeasonYears(now)
	return fmt.Sprintf("%d/%d", first, second)
}
