package main

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/aatrey56/fpl-season-report/internal/model"
	"github.com/aatrey56/fpl-season-report/internal/players"
	"github.com/aatrey56/fpl-season-report/internal/season"
)

var timeNow = time.Now

// seasonData is one load of the season CSV and player mapping.
type seasonData struct {
	Label string
	Rows  []model.GameweekRow
	Names players.Names
}

func loadSeasonData(cfg ServerConfig) (seasonData, error) {
	if cfg.CSVPath == "" {
		return seasonData{}, fmt.Errorf("season csv path is not configured")
	}
	rows, err := season.Load(cfg.CSVPath)
	if err != nil {
		return seasonData{}, err
	}
	names := players.Names{}
	if cfg.MappingPath != "" {
		n, err := players.Load(cfg.MappingPath)
		switch {
		case err == nil:
			names = n
		case !errors.Is(err, os.ErrNotExist):
			return seasonData{}, err
		}
	}
	label := cfg.Season
	if label == "" {
		label = season.SeasonLabel(timeNow())
	}
	return seasonData{Label: label, Rows: rows, Names: names}, nil
}

// resolveEntry matches an entry name, or the manager's name, case-insensitively.
func (d seasonData) resolveEntry(name, label string) (string, error) {
	n := strings.TrimSpace(name)
	if n == "" {
		return "", fmt.Errorf("%s is required", label)
	}
	for _, r := range d.Rows {
		if strings.EqualFold(r.EntryName, n) || strings.EqualFold(r.PlayerName, n) {
			return r.EntryName, nil
		}
	}
	return "", fmt.Errorf("%s: no entry found for name: %s", label, n)
}

func limitOrAll(n, total int) int {
	if n <= 0 || n > total {
		return total
	}
	return n
}
