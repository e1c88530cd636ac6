package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/aatrey56/fpl-season-report/internal/fetch"
	"github.com/aatrey56/fpl-season-report/internal/store"
)

func newInventoryCmd(a *app) *cobra.Command {
	var (
		outPath  string
		maxFiles int
	)
	cmd := &cobra.Command{
		Use:   "inventory",
		Short: "Summarise the JSON shape of every cached API response",
		RunE: func(cmd *cobra.Command, args []string) error {
			inv, err := fetch.BuildInventory(store.NewJSONStore(a.cfg.Fetch.RawRoot), maxFiles, timeNow(), a.log)
			if err != nil {
				return err
			}
			if outPath == "" {
				outPath = filepath.Join(a.cfg.Paths.OutputDir, "data", "raw_inventory.json")
			}
			if err := store.NewJSONStore(filepath.Dir(outPath)).WriteJSON(filepath.Base(outPath), inv); err != nil {
				return err
			}
			a.log.Info("inventory written", zap.String("path", outPath), zap.Int("endpoints", len(inv.Endpoints)))
			fmt.Fprintln(cmd.OutOrStdout(), outPath)
			return nil
		},
	}
	cmd.Flags().StringVar(&outPath, "out", "", "output path (default <output_dir>/data/raw_inventory.json)")
	cmd.Flags().IntVar(&maxFiles, "max-files", 0, "max files per endpoint (0 = no limit)")
	return cmd
}
