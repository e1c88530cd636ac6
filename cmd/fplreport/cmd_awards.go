package main

import (
	"encoding/json"
	"fmt"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"github.com/aatrey56/fpl-season-report/internal/awards"
	"github.com/aatrey56/fpl-season-report/internal/season"
)

func newAwardsCmd(a *app) *cobra.Command {
	var (
		csvPath string
		fromDB  string
		pretty  bool
		asJSON  bool
		top     int
	)
	cmd := &cobra.Command{
		Use:   "awards",
		Short: "Compute the season awards",
		Long: `Prints the awards table as markdown. --print renders it for the terminal,
--json emits the award list instead. --top also lists the best captain
picks. --from-db reads a season stored with "db import" instead of the CSV.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			rows, names, label, err := a.loadRows(csvPath, fromDB)
			if err != nil {
				return err
			}
			list, err := awards.Assign(rows, season.Aggregates(rows), names, a.cfg.Catalog())
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()

			if asJSON {
				enc := json.NewEncoder(w)
				enc.SetIndent("", "  ")
				return enc.Encode(list)
			}

			md := awards.Markdown(label, list)
			if top > 0 {
				md += "\n## Top captain picks\n\n"
				for i, c := range awards.TopCaptains(rows, names, top) {
					md += fmt.Sprintf("%d. %s\n", i+1, c.Label)
				}
			}
			if !pretty {
				_, err := fmt.Fprint(w, md)
				return err
			}
			r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(100))
			if err != nil {
				return err
			}
			out, err := r.Render(md)
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(w, out)
			return err
		},
	}
	cmd.Flags().StringVar(&csvPath, "csv", "", "season CSV (default paths.season_csv)")
	cmd.Flags().StringVar(&fromDB, "from-db", "", "read this stored season label from db.path")
	cmd.Flags().BoolVar(&pretty, "print", false, "render the markdown for the terminal")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the awards as JSON")
	cmd.Flags().IntVar(&top, "top", 0, "also list the N best captain picks")
	return cmd
}
