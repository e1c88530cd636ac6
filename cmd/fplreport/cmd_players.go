package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/aatrey56/fpl-season-report/internal/players"
)

func newPlayersCmd(a *app) *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "players",
		Short: "Write the element id to player name mappings",
		Long: `Downloads bootstrap-static and writes two mappings: paths.player_map_raw
with the web names as published and paths.player_map with names reduced to
ASCII letters, digits, dots and spaces for chart and PDF fonts.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := a.newClient(false).BootstrapStatic(cmd.Context(), force)
			if err != nil {
				return err
			}
			raw, err := players.RawMapping(body)
			if err != nil {
				return err
			}
			if err := players.Write(a.cfg.Paths.PlayerMapRaw, raw); err != nil {
				return err
			}
			clean, err := players.BuildMapping(body)
			if err != nil {
				return err
			}
			if err := players.Write(a.cfg.Paths.PlayerMap, clean); err != nil {
				return err
			}
			a.log.Info("player mappings written",
				zap.Int("players", len(clean)),
				zap.String("raw", a.cfg.Paths.PlayerMapRaw),
				zap.String("sanitized", a.cfg.Paths.PlayerMap),
			)
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "refetch bootstrap-static even when cached")
	return cmd
}
