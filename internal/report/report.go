// Package report runs the season pipeline: load once, compute every
// statistic, draw the charts and write the documents.
package report

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/aatrey56/fpl-season-report/internal/analysis"
	"github.com/aatrey56/fpl-season-report/internal/awards"
	"github.com/aatrey56/fpl-season-report/internal/chart"
	"github.com/aatrey56/fpl-season-report/internal/model"
	"github.com/aatrey56/fpl-season-report/internal/players"
	"github.com/aatrey56/fpl-season-report/internal/render"
	"github.com/aatrey56/fpl-season-report/internal/season"
	"github.com/aatrey56/fpl-season-report/internal/store"
)

const (
	DefaultLeague      = "FPL League"
	DefaultTopCaptains = 30
)

type Options struct {
	League      string
	Season      string // empty means the season ending this year
	TopCaptains int
	Catalog     awards.Catalog
	Charts      *chart.Renderer // nil skips chart drawing
	Now         func() time.Time
}

// Report holds everything computed for one season.
type Report struct {
	League      string    `json:"league"`
	Season      string    `json:"season"`
	GeneratedAt time.Time `json:"generated_at"`
	Gameweeks   []int     `json:"gameweeks"`

	Rows        []model.GameweekRow  `json:"-"`
	Aggregates  []season.Aggregate   `json:"aggregates"`
	Awards      []awards.Award       `json:"awards"`
	TopCaptains []awards.CaptainPick `json:"top_captains"`

	Streaks      []analysis.Streak         `json:"streaks"`
	HeadToHeads  []analysis.HeadToHead     `json:"head_to_heads"`
	ChipTimings  []analysis.ChipTiming     `json:"chip_timings"`
	ChipBoards   []analysis.ChipBoard      `json:"chip_boards"`
	ChipUsages   []analysis.ChipUsage      `json:"chip_usages"`
	Wildcards    []analysis.WildcardUse    `json:"wildcards"`
	Loyalty      []analysis.Loyalty        `json:"loyalty"`
	Transfers    []analysis.TransferTiming `json:"transfers"`
	Predictions  []analysis.Prediction     `json:"predictions"`
	Correlations []analysis.Correlation    `json:"correlations"`
	Positions    []analysis.PositionStats  `json:"positions"`
	WhatIfs      []analysis.WhatIf         `json:"what_ifs"`

	Charts []chart.Chart `json:"charts"`
}

func Build(rows []model.GameweekRow, names players.Names, opts Options) (*Report, error) {
	if err := season.Validate(rows); err != nil {
		return nil, err
	}
	now := time.Now
	if opts.Now != nil {
		now = opts.Now
	}
	if opts.League == "" {
		opts.League = DefaultLeague
	}
	if opts.Season == "" {
		opts.Season = season.SeasonLabel(now())
	}
	if opts.TopCaptains <= 0 {
		opts.TopCaptains = DefaultTopCaptains
	}

	aggs := season.Aggregates(rows)
	list, err := awards.Assign(rows, aggs, names, opts.Catalog)
	if err != nil {
		return nil, err
	}

	r := &Report{
		League:       opts.League,
		Season:       opts.Season,
		GeneratedAt:  now().UTC(),
		Gameweeks:    season.Gameweeks(rows),
		Rows:         rows,
		Aggregates:   aggs,
		Awards:       list,
		TopCaptains:  awards.TopCaptains(rows, names, opts.TopCaptains),
		Streaks:      analysis.Streaks(rows),
		HeadToHeads:  analysis.HeadToHeads(rows),
		ChipTimings:  analysis.ChipTimings(rows),
		ChipBoards:   analysis.ChipBoards(rows),
		ChipUsages:   analysis.ChipUsages(rows),
		Wildcards:    analysis.Wildcards(rows),
		Loyalty:      analysis.PlayerLoyalty(rows, analysis.DefaultLoyaltyWeeks),
		Transfers:    analysis.TransferTimings(rows),
		Predictions:  analysis.Predictions(rows),
		Correlations: analysis.Correlations(rows),
		Positions:    analysis.LeaguePositions(rows),
		WhatIfs:      analysis.WhatIfs(rows),
	}
	if opts.Charts != nil {
		if r.Charts, err = drawCharts(opts.Charts, r); err != nil {
			return nil, err
		}
	}
	return r, nil
}

func drawCharts(cr *chart.Renderer, r *Report) ([]chart.Chart, error) {
	out, err := cr.MetricCharts(r.Aggregates)
	if err != nil {
		return nil, err
	}
	chips, err := cr.ChipCharts(r.ChipBoards)
	if err != nil {
		return nil, err
	}
	out = append(out, chips...)

	entries := season.Entries(r.Rows)
	for _, draw := range []func() (chart.Chart, error){
		func() (chart.Chart, error) { return cr.WildcardChart(r.Wildcards) },
		func() (chart.Chart, error) { return cr.StreakChart(r.Streaks) },
		func() (chart.Chart, error) { return cr.HeadToHeadChart(entries, r.HeadToHeads) },
		func() (chart.Chart, error) { return cr.PositionsChart(r.Positions) },
		func() (chart.Chart, error) { return cr.WhatIfChart(r.WhatIfs) },
		func() (chart.Chart, error) { return cr.CorrelationChart(entries, r.Correlations) },
	} {
		c, err := draw()
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

// AwardsPage is the awards ceremony view of the report.
func (r *Report) AwardsPage() render.AwardsPage {
	return render.AwardsPage{
		League:         r.League,
		Season:         r.Season,
		GeneratedAtUTC: r.GeneratedAt.Format(time.RFC3339),
		Awards:         r.Awards,
	}
}

func (r *Report) ReportPage() render.ReportPage {
	return render.ReportPage{
		League:         r.League,
		Season:         r.Season,
		GeneratedAtUTC: r.GeneratedAt.Format(time.RFC3339),
		Gameweeks:      len(r.Gameweeks),
		Aggregates:     season.SortBy(r.Aggregates, func(a season.Aggregate) float64 { return float64(a.Points) }, false),
		Awards:         r.Awards,
		TopCaptains:    r.TopCaptains,
		Charts:         render.Images(r.Charts),
		Streaks:        r.Streaks,
		Positions:      r.Positions,
		Predictions:    r.Predictions,
		WhatIfs:        r.WhatIfs,
		Transfers:      r.Transfers,
		ChipTimings:    r.ChipTimings,
	}
}

// Chart returns the named chart.
func (r *Report) Chart(name string) (chart.Chart, bool) {
	for _, c := range r.Charts {
		if c.Name == name {
			return c, true
		}
	}
	return chart.Chart{}, false
}

// Outputs lists the files Write produced. PDF paths are empty without a
// printer.
type Outputs struct {
	AwardsHTML string   `json:"awards_html"`
	ReportHTML string   `json:"report_html"`
	AwardsPDF  string   `json:"awards_pdf,omitempty"`
	ReportPDF  string   `json:"report_pdf,omitempty"`
	Markdown   string   `json:"markdown"`
	Charts     []string `json:"charts"`
	Data       []string `json:"data"`
}

// Write lays the report out under dir:
//
//	awards.html, report.html, awards.md
//	charts/<name>.png
//	data/{aggregates,awards,top_captains,analysis}.json
//	awards.pdf, report.pdf (printer only)
func Write(ctx context.Context, r *Report, dir string, printer render.Printer, log *zap.Logger) (Outputs, error) {
	if log == nil {
		log = zap.NewNop()
	}
	var out Outputs

	for _, c := range r.Charts {
		path := filepath.Join(dir, "charts", c.Name+".png")
		if err := writeFile(path, c.PNG); err != nil {
			return out, err
		}
		out.Charts = append(out.Charts, path)
	}

	data := store.NewJSONStore(filepath.Join(dir, "data"))
	for _, d := range []struct {
		rel string
		v   any
	}{
		{"aggregates.json", r.Aggregates},
		{"awards.json", r.Awards},
		{"top_captains.json", r.TopCaptains},
		{"analysis.json", r},
	} {
		rel := d.rel
		if err := data.WriteJSON(rel, d.v); err != nil {
			return out, fmt.Errorf("write %s: %w", rel, err)
		}
		out.Data = append(out.Data, data.Path(rel))
	}

	out.Markdown = filepath.Join(dir, "awards.md")
	if err := writeFile(out.Markdown, []byte(awards.Markdown(r.Season, r.Awards))); err != nil {
		return out, err
	}

	out.AwardsHTML = filepath.Join(dir, "awards.html")
	if err := render.WriteFile(out.AwardsHTML, func(w io.Writer) error { return render.Awards(w, r.AwardsPage()) }); err != nil {
		return out, err
	}
	out.ReportHTML = filepath.Join(dir, "report.html")
	if err := render.WriteFile(out.ReportHTML, func(w io.Writer) error { return render.Report(w, r.ReportPage()) }); err != nil {
		return out, err
	}
	log.Info("report written", zap.String("dir", dir), zap.Int("charts", len(out.Charts)))

	if printer == nil {
		return out, nil
	}
	awardsPDF := filepath.Join(dir, "awards.pdf")
	if err := printer.PrintPDF(ctx, out.AwardsHTML, awardsPDF); err != nil {
		return out, fmt.Errorf("awards pdf: %w", err)
	}
	out.AwardsPDF = awardsPDF
	reportPDF := filepath.Join(dir, "report.pdf")
	if err := printer.PrintPDF(ctx, out.ReportHTML, reportPDF); err != nil {
		return out, fmt.Errorf("report pdf: %w", err)
	}
	out.ReportPDF = reportPDF
	log.Info("pdf written", zap.String("awards", awardsPDF), zap.String("report", reportPDF))
	return out, nil
}

func writeFile(path string, b []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}
