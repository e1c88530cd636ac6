package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/aatrey56/fpl-season-report/internal/fetch"
	"github.com/aatrey56/fpl-season-report/internal/ledger"
	"github.com/aatrey56/fpl-season-report/internal/season"
	"github.com/aatrey56/fpl-season-report/internal/store"
)

func (a *app) newClient(live bool) *fetch.Client {
	client := fetch.NewClient(store.NewJSONStore(a.cfg.Fetch.RawRoot))
	client.Log = a.log
	client.BaseURL = a.cfg.Fetch.BaseURL
	client.Cookie = a.cfg.Fetch.Cookie
	client.Sleep = time.Duration(a.cfg.Fetch.SleepMS) * time.Millisecond
	client.UseCache = a.cfg.Fetch.UseCache && !live
	client.DisableWrite = live
	client.PrettyWrite = !live
	return client
}

func newFetchCmd(a *app) *cobra.Command {
	var (
		leagueID int
		firstGW  int
		lastGW   int
		workers  int
		live     bool
		force    bool
		out      string
	)
	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Collect every manager's gameweeks into the season CSV",
		Long: `Pages through the league standings, then downloads picks and live points for
every manager and gameweek. Raw responses are cached under fetch.raw_root;
a manager or gameweek that fails is logged and skipped.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if leagueID > 0 {
				a.cfg.Fetch.LeagueID = leagueID
			}
			if err := a.cfg.RequireFetch(); err != nil {
				return err
			}
			if lastGW == 0 {
				lastGW = a.cfg.Fetch.Gameweeks
			}
			if firstGW < 1 || lastGW < firstGW {
				return fmt.Errorf("invalid gameweek range %d-%d", firstGW, lastGW)
			}
			if workers == 0 {
				workers = a.cfg.Fetch.Workers
			}
			if out == "" {
				out = a.cfg.Paths.SeasonCSV
			}

			c := ledger.NewCollector(a.newClient(live), a.log)
			c.FirstGW, c.LastGW = firstGW, lastGW
			c.Workers = workers
			c.Force = force

			rows, err := c.Collect(cmd.Context(), a.cfg.Fetch.LeagueID)
			if err != nil {
				return err
			}
			if err := season.Validate(rows); err != nil {
				return fmt.Errorf("league %d: %w", a.cfg.Fetch.LeagueID, err)
			}
			if err := season.WriteCSV(out, rows); err != nil {
				return err
			}
			a.log.Info("season written", zap.String("csv", out), zap.Int("rows", len(rows)))
			return nil
		},
	}
	cmd.Flags().IntVar(&leagueID, "league", 0, "classic league id (overrides fetch.league_id)")
	cmd.Flags().IntVar(&firstGW, "gw-min", 1, "first gameweek to fetch")
	cmd.Flags().IntVar(&lastGW, "gw-max", 0, "last gameweek to fetch (0 = fetch.gameweeks)")
	cmd.Flags().IntVar(&workers, "workers", 0, "managers fetched concurrently (0 = fetch.workers)")
	cmd.Flags().BoolVar(&live, "live", false, "disable cache reads and disk writes of raw JSON")
	cmd.Flags().BoolVar(&force, "force", false, "refetch even when a cached response exists")
	cmd.Flags().StringVar(&out, "out", "", "season CSV path (default paths.season_csv)")
	return cmd
}
