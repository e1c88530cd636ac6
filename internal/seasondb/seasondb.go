// Package seasondb keeps season tables in SQLite so past seasons stay
// queryable after the raw API cache is gone.
package seasondb

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/aatrey56/fpl-season-report/internal/model"
)

// GameweekRecord is the stored form of model.GameweekRow.
type GameweekRecord struct {
	gorm.Model
	Season         string `gorm:"index:idx_season_entry_gw,priority:1"`
	EntryName      string `gorm:"index:idx_season_entry_gw,priority:2"`
	Gameweek       int    `gorm:"index:idx_season_entry_gw,priority:3"`
	PlayerName     string
	Points         int
	Bench          int
	Hits           int
	EventTransfers int
	Chip           string
	AutosubCount   int
	CaptainID      int
	CaptainPoints  int
	TransferGain   int
	TransferInIDs  datatypes.JSON `gorm:"type:json"`
	TransferOutIDs datatypes.JSON `gorm:"type:json"`
	Team           datatypes.JSON `gorm:"type:json"`
}

type Store struct {
	db *gorm.DB
}

// Open creates or migrates the database at path. ":memory:" is accepted.
func Open(path string) (*Store, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, err
		}
	}
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open season db: %w", err)
	}
	if path == ":memory:" {
		// Every connection would get its own empty database.
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
	}
	if err := db.AutoMigrate(&GameweekRecord{}); err != nil {
		return nil, fmt.Errorf("migrate season db: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Replace swaps the stored rows of a season for rows in one transaction.
func (s *Store) Replace(season string, rows []model.GameweekRow) error {
	records := make([]GameweekRecord, 0, len(rows))
	for _, r := range rows {
		rec, err := toRecord(season, r)
		if err != nil {
			return err
		}
		records = append(records, rec)
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("season = ?", season).Delete(&GameweekRecord{}).Error; err != nil {
			return err
		}
		if len(records) == 0 {
			return nil
		}
		return tx.CreateInBatches(records, 200).Error
	})
}

// Rows returns a season in the order it was stored. Row-level award ties go
// to the earlier row, so file order has to survive the round trip.
func (s *Store) Rows(season string) ([]model.GameweekRow, error) {
	var records []GameweekRecord
	err := s.db.Where("season = ?", season).Order("id").Find(&records).Error
	if err != nil {
		return nil, err
	}
	out := make([]model.GameweekRow, 0, len(records))
	for _, rec := range records {
		r, err := rec.row()
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}

// SeasonCount is a stored season and how many rows it holds.
type SeasonCount struct {
	Season string
	Rows   int64 `gorm:"column:row_count"`
}

func (s *Store) Seasons() ([]SeasonCount, error) {
	var out []SeasonCount
	err := s.db.Model(&GameweekRecord{}).
		Select("season, count(*) as row_count").
		Group("season").
		Order("season").
		Scan(&out).Error
	return out, err
}

func toRecord(season string, r model.GameweekRow) (GameweekRecord, error) {
	team, err := json.Marshal(r.Team)
	if err != nil {
		return GameweekRecord{}, err
	}
	in, err := json.Marshal(nonNil(r.TransferInIDs))
	if err != nil {
		return GameweekRecord{}, err
	}
	out, err := json.Marshal(nonNil(r.TransferOutIDs))
	if err != nil {
		return GameweekRecord{}, err
	}
	return GameweekRecord{
		Season:         season,
		EntryName:      r.EntryName,
		Gameweek:       r.Gameweek,
		PlayerName:     r.PlayerName,
		Points:         r.Points,
		Bench:          r.Bench,
		Hits:           r.Hits,
		EventTransfers: r.EventTransfers,
		Chip:           r.Chip,
		AutosubCount:   r.AutosubCount,
		CaptainID:      r.CaptainID,
		CaptainPoints:  r.CaptainPoints,
		TransferGain:   r.TransferGain,
		TransferInIDs:  datatypes.JSON(in),
		TransferOutIDs: datatypes.JSON(out),
		Team:           datatypes.JSON(team),
	}, nil
}

func (rec GameweekRecord) row() (model.GameweekRow, error) {
	r := model.GameweekRow{
		Gameweek:       rec.Gameweek,
		Points:         rec.Points,
		Bench:          rec.Bench,
		Hits:           rec.Hits,
		EventTransfers: rec.EventTransfers,
		Chip:           rec.Chip,
		AutosubCount:   rec.AutosubCount,
		CaptainID:      rec.CaptainID,
		CaptainPoints:  rec.CaptainPoints,
		TransferGain:   rec.TransferGain,
		PlayerName:     rec.PlayerName,
		EntryName:      rec.EntryName,
	}
	for _, f := range []struct {
		raw datatypes.JSON
		dst any
	}{
		{rec.Team, &r.Team},
		{rec.TransferInIDs, &r.TransferInIDs},
		{rec.TransferOutIDs, &r.TransferOutIDs},
	} {
		if len(f.raw) == 0 {
			continue
		}
		if err := json.Unmarshal(f.raw, f.dst); err != nil {
			return r, fmt.Errorf("%s GW %d: %w", rec.EntryName, rec.Gameweek, err)
		}
	}
	return r, nil
}

func nonNil(ids []int) []int {
	if ids == nil {
		return []int{}
	}
	return ids
}
