package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/aatrey56/fpl-season-report/internal/seasondb"
)

func newDBCmd(a *app) *cobra.Command {
	var dbPath string
	cmd := &cobra.Command{
		Use:   "db",
		Short: "Keep seasons in the SQLite archive",
	}
	cmd.PersistentFlags().StringVar(&dbPath, "db", "", "database path (default db.path)")
	open := func() (*seasondb.Store, error) {
		if dbPath == "" {
			dbPath = a.cfg.DB.Path
		}
		return seasondb.Open(dbPath)
	}

	var csvPath string
	importCmd := &cobra.Command{
		Use:   "import",
		Short: "Store the season CSV under the configured season label",
		RunE: func(cmd *cobra.Command, args []string) error {
			rows, _, err := a.loadSeason(csvPath)
			if err != nil {
				return err
			}
			db, err := open()
			if err != nil {
				return err
			}
			defer db.Close()
			label := a.seasonLabel()
			if err := db.Replace(label, rows); err != nil {
				return err
			}
			a.log.Info("season stored", zap.String("season", label), zap.Int("rows", len(rows)), zap.String("db", dbPath))
			return nil
		},
	}
	importCmd.Flags().StringVar(&csvPath, "csv", "", "season CSV (default paths.season_csv)")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List stored seasons",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := open()
			if err != nil {
				return err
			}
			defer db.Close()
			seasons, err := db.Seasons()
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "SEASON\tROWS")
			for _, s := range seasons {
				fmt.Fprintf(tw, "%s\t%d\n", s.Season, s.Rows)
			}
			return tw.Flush()
		},
	}

	cmd.AddCommand(importCmd, listCmd)
	return cmd
}
