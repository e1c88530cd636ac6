package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/aatrey56/fpl-season-report/internal/chart"
	"github.com/aatrey56/fpl-season-report/internal/model"
	"github.com/aatrey56/fpl-season-report/internal/players"
	"github.com/aatrey56/fpl-season-report/internal/render"
	"github.com/aatrey56/fpl-season-report/internal/report"
)

// buildReport runs the pipeline with the report section of the config.
func (a *app) buildReport(rows []model.GameweekRow, names players.Names, label string, charts bool) (*report.Report, error) {
	opts := report.Options{
		League:      a.cfg.Report.League,
		Season:      label,
		TopCaptains: a.cfg.Report.TopCaptains,
		Catalog:     a.cfg.Catalog(),
		Now:         timeNow,
	}
	if charts {
		opts.Charts = chart.NewRenderer(a.cfg.Report.ChartWidth, a.cfg.Report.ChartHeight)
	}
	return report.Build(rows, names, opts)
}

func newReportCmd(a *app) *cobra.Command {
	var (
		csvPath  string
		outDir   string
		pdf      bool
		noCharts bool
	)
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Render the awards and season report",
		Long: `Loads the season CSV, computes aggregates, awards and analyses, draws the
charts and writes awards.html, report.html, charts/*.png and data/*.json to
the output directory. With --pdf (or report.pdf) both documents are printed
through headless Chrome as well.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			rows, names, err := a.loadSeason(csvPath)
			if err != nil {
				return err
			}
			rep, err := a.buildReport(rows, names, a.seasonLabel(), !noCharts)
			if err != nil {
				return err
			}
			if outDir == "" {
				outDir = a.cfg.Paths.OutputDir
			}

			var printer render.Printer
			if pdf || a.cfg.Report.PDF {
				printer = render.NewChromePrinter(a.cfg.Report.ChromeBin, a.log)
			}
			out, err := report.Write(cmd.Context(), rep, outDir, printer, a.log)
			if err != nil {
				return err
			}
			a.log.Info("report done",
				zap.String("awards", out.AwardsHTML),
				zap.String("report", out.ReportHTML),
				zap.String("awards_pdf", out.AwardsPDF),
				zap.Int("awards_count", len(rep.Awards)),
			)
			fmt.Fprintln(cmd.OutOrStdout(), out.ReportHTML)
			return nil
		},
	}
	cmd.Flags().StringVar(&csvPath, "csv", "", "season CSV (default paths.season_csv)")
	cmd.Flags().StringVarP(&outDir, "out", "o", "", "output directory (default paths.output_dir)")
	cmd.Flags().BoolVar(&pdf, "pdf", false, "also print PDFs with headless Chrome")
	cmd.Flags().BoolVar(&noCharts, "no-charts", false, "skip chart rendering")
	return cmd
}
