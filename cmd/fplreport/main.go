// Command fplreport collects a classic FPL league's season and turns it into
// awards, charts and reports.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/aatrey56/fpl-season-report/internal/config"
	"github.com/aatrey56/fpl-season-report/internal/logging"
	"github.com/aatrey56/fpl-season-report/internal/model"
	"github.com/aatrey56/fpl-season-report/internal/players"
	"github.com/aatrey56/fpl-season-report/internal/season"
	"github.com/aatrey56/fpl-season-report/internal/seasondb"
)

var timeNow = time.Now

// app is the state every subcommand shares once flags are parsed.
type app struct {
	cfgPath string
	verbose bool

	cfg *config.Config
	log *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "fplreport",
		Short: "FPL classic league season statistics, awards and reports",
		Long: `fplreport fetches a classic league's season from the FPL API, stores it as
a CSV table and derives per-manager aggregates, awards, analyses and charts.

Typical run:
  fplreport fetch --league 12345
  fplreport players
  fplreport report --pdf`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(a.cfgPath)
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			a.cfg = cfg
			a.log, err = logging.New(a.verbose)
			return err
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.log != nil {
				_ = a.log.Sync()
			}
		},
	}
	root.PersistentFlags().StringVarP(&a.cfgPath, "config", "c", config.DefaultPath, "YAML config file")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Enable debug logging")

	root.AddCommand(
		newFetchCmd(a),
		newPlayersCmd(a),
		newReportCmd(a),
		newAwardsCmd(a),
		newExportCmd(a),
		newDBCmd(a),
		newServeCmd(a),
		newPublishCmd(a),
		newInventoryCmd(a),
	)
	return root
}

// loadSeason reads the season CSV and the player mapping.
func (a *app) loadSeason(csvPath string) ([]model.GameweekRow, players.Names, error) {
	if csvPath == "" {
		csvPath = a.cfg.Paths.SeasonCSV
	}
	rows, err := season.Load(csvPath)
	if err != nil {
		return nil, nil, err
	}
	names, err := a.loadNames()
	if err != nil {
		return nil, nil, err
	}
	a.log.Info("season loaded",
		zap.String("csv", csvPath),
		zap.Int("rows", len(rows)),
		zap.Int("entries", len(season.Entries(rows))),
		zap.Int("gameweeks", len(season.Gameweeks(rows))),
	)
	return rows, names, nil
}

// loadArchived reads a season stored with "db import".
func (a *app) loadArchived(label string) ([]model.GameweekRow, players.Names, error) {
	db, err := seasondb.Open(a.cfg.DB.Path)
	if err != nil {
		return nil, nil, err
	}
	defer db.Close()
	rows, err := db.Rows(label)
	if err != nil {
		return nil, nil, err
	}
	if len(rows) == 0 {
		return nil, nil, fmt.Errorf("season %s not found in %s", label, a.cfg.DB.Path)
	}
	names, err := a.loadNames()
	if err != nil {
		return nil, nil, err
	}
	a.log.Info("season loaded", zap.String("db", a.cfg.DB.Path), zap.String("season", label), zap.Int("rows", len(rows)))
	return rows, names, nil
}

// loadRows picks the CSV or, when fromDB is set, the stored season, and
// returns the label to report it under.
func (a *app) loadRows(csvPath, fromDB string) ([]model.GameweekRow, players.Names, string, error) {
	if fromDB == "" {
		rows, names, err := a.loadSeason(csvPath)
		return rows, names, a.seasonLabel(), err
	}
	rows, names, err := a.loadArchived(fromDB)
	return rows, names, fromDB, err
}

// loadNames reads the player mapping. A missing mapping only costs player
// names, so it is logged instead of failing.
func (a *app) loadNames() (players.Names, error) {
	names, err := players.Load(a.cfg.Paths.PlayerMap)
	if err == nil {
		return names, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}
	a.log.Warn("player mapping missing, using element ids", zap.String("path", a.cfg.Paths.PlayerMap))
	return names, nil
}

func (a *app) seasonLabel() string {
	if a.cfg.Report.Season != "" {
		return a.cfg.Report.Season
	}
	return season.SeasonLabel(timeNow())
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
