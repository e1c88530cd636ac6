package main

import (
	"github.com/spf13/cobra"

	"github.com/aatrey56/fpl-season-report/internal/dashboard"
)

func newServeCmd(a *app) *cobra.Command {
	var (
		csvPath  string
		addr     string
		fromDB   string
		noCharts bool
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the season report, charts, JSON and metrics over HTTP",
		Long: `Builds the report once and serves it until interrupted:
  /             season report
  /awards       awards document
  /charts/*.png chart images
  /api/...      aggregates, awards, positions, top-captains, head-to-head
  /healthz      liveness
  /metrics      Prometheus gauges
--from-db serves a season stored with "db import" instead of the CSV.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			rows, names, label, err := a.loadRows(csvPath, fromDB)
			if err != nil {
				return err
			}
			rep, err := a.buildReport(rows, names, label, !noCharts)
			if err != nil {
				return err
			}
			srv, err := dashboard.New(rep, a.log, dashboard.Options{
				RateLimit:      a.cfg.Dashboard.RateLimit,
				AllowedOrigins: a.cfg.Dashboard.AllowedOrigins,
			})
			if err != nil {
				return err
			}
			if addr == "" {
				addr = a.cfg.Dashboard.Addr
			}
			return srv.ListenAndServe(cmd.Context(), addr)
		},
	}
	cmd.Flags().StringVar(&csvPath, "csv", "", "season CSV (default paths.season_csv)")
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default dashboard.addr)")
	cmd.Flags().StringVar(&fromDB, "from-db", "", "serve this stored season label from db.path")
	cmd.Flags().BoolVar(&noCharts, "no-charts", false, "skip chart rendering")
	return cmd
}
