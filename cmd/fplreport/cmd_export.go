package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/aatrey56/fpl-season-report/internal/awards"
	"github.com/aatrey56/fpl-season-report/internal/export"
	"github.com/aatrey56/fpl-season-report/internal/season"
)

func newExportCmd(a *app) *cobra.Command {
	var (
		csvPath string
		outDir  string
		formats []string
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the season as an XLSX workbook and/or Parquet file",
		RunE: func(cmd *cobra.Command, args []string) error {
			rows, names, err := a.loadSeason(csvPath)
			if err != nil {
				return err
			}
			if outDir == "" {
				outDir = a.cfg.Paths.OutputDir
			}
			label := a.seasonLabel()
			base := "fpl_season_" + strings.ReplaceAll(label, "/", "-")

			for _, f := range formats {
				var path string
				switch strings.ToLower(strings.TrimSpace(f)) {
				case "xlsx":
					aggs := season.Aggregates(rows)
					list, err := awards.Assign(rows, aggs, names, a.cfg.Catalog())
					if err != nil {
						return err
					}
					path = filepath.Join(outDir, base+".xlsx")
					err = export.WriteXLSX(path, export.Workbook{
						Aggregates:  aggs,
						Awards:      list,
						TopCaptains: awards.TopCaptains(rows, names, a.cfg.Report.TopCaptains),
						Rows:        rows,
					})
					if err != nil {
						return err
					}
				case "parquet":
					path = filepath.Join(outDir, base+".parquet")
					if err := export.WriteParquet(path, label, rows); err != nil {
						return err
					}
				default:
					return fmt.Errorf("unknown export format %q (want xlsx or parquet)", f)
				}
				a.log.Info("exported", zap.String("path", path))
				fmt.Fprintln(cmd.OutOrStdout(), path)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&csvPath, "csv", "", "season CSV (default paths.season_csv)")
	cmd.Flags().StringVarP(&outDir, "out", "o", "", "output directory (default paths.output_dir)")
	cmd.Flags().StringSliceVar(&formats, "format", []string{"xlsx", "parquet"}, "formats to write: xlsx, parquet")
	return cmd
}
