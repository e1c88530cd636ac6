// Package render turns season results into standalone HTML documents and,
// through headless Chrome, PDFs.
package render

import (
	"embed"
	"encoding/base64"
	"fmt"
	"html/template"
	"io"
	"os"
	"path/filepath"

	"github.com/aatrey56/fpl-season-report/internal/analysis"
	"github.com/aatrey56/fpl-season-report/internal/awards"
	"github.com/aatrey56/fpl-season-report/internal/chart"
	"github.com/aatrey56/fpl-season-report/internal/season"
)

//go:embed templates
var templateFS embed.FS

var templates = template.Must(template.New("").Funcs(template.FuncMap{
	"inc": func(i int) int { return i + 1 },
}).ParseFS(templateFS, "templates/*.tmpl"))

func stylesheet() template.CSS {
	b, err := templateFS.ReadFile("templates/style.css")
	if err != nil {
		return ""
	}
	return template.CSS(b)
}

// AwardsPage is the data behind the awards ceremony document.
type AwardsPage struct {
	League         string
	Season         string
	GeneratedAtUTC string
	Awards         []awards.Award
}

// Image is a chart inlined as a data URI so the document has no siblings.
type Image struct {
	Name  string
	Title string
	Src   template.URL
}

func Images(charts []chart.Chart) []Image {
	out := make([]Image, 0, len(charts))
	for _, c := range charts {
		out = append(out, Image{
			Name:  c.Name,
			Title: c.Title,
			Src:   template.URL("data:image/png;base64," + base64.StdEncoding.EncodeToString(c.PNG)),
		})
	}
	return out
}

type ReportPage struct {
	League         string
	Season         string
	GeneratedAtUTC string
	Gameweeks      int
	Aggregates     []season.Aggregate
	Awards         []awards.Award
	TopCaptains    []awards.CaptainPick
	Charts         []Image
	Streaks        []analysis.Streak
	Positions      []analysis.PositionStats
	Predictions    []analysis.Prediction
	WhatIfs        []analysis.WhatIf
	Transfers      []analysis.TransferTiming
	ChipTimings    []analysis.ChipTiming
}

type awardsDoc struct {
	AwardsPage
	CSS template.CSS
}

type reportDoc struct {
	ReportPage
	CSS template.CSS
}

func Awards(w io.Writer, p AwardsPage) error {
	return execute(w, "awards.html.tmpl", awardsDoc{AwardsPage: p, CSS: stylesheet()})
}

func Report(w io.Writer, p ReportPage) error {
	return execute(w, "report.html.tmpl", reportDoc{ReportPage: p, CSS: stylesheet()})
}

func execute(w io.Writer, name string, data any) error {
	if err := templates.ExecuteTemplate(w, name, data); err != nil {
		return fmt.Errorf("render %s: %w", name, err)
	}
	return nil
}

// WriteFile renders into path, creating parent directories.
func WriteFile(path string, fn func(io.Writer) error) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := fn(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
