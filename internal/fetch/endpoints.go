package fetch

import (
	"context"
	"fmt"
)

// /leagues-classic/{league_id}/standings/?page_standings={page}
func (c *Client) LeagueStandings(ctx context.Context, leagueID int, page int, force bool) ([]byte, error) {
	return c.FetchRaw(ctx,
		fmt.Sprintf("/leagues-classic/%d/standings/?page_standings=%d", leagueID, page),
		fmt.Sprintf("league/%d/standings/page_%d.json", leagueID, page),
		force,
	)
}

// /bootstrap-static/
func (c *Client) BootstrapStatic(ctx context.Context, force bool) ([]byte, error) {
	return c.FetchRaw(ctx, "/bootstrap-static/", "bootstrap/bootstrap-static.json", force)
}

// /event/{gw}/live/
func (c *Client) EventLive(ctx context.Context, gw int, force bool) ([]byte, error) {
	return c.FetchRaw(ctx,
		fmt.Sprintf("/event/%d/live/", gw),
		fmt.Sprintf("gw/%d/live.json", gw),
		force,
	)
}

// /entry/{entry_id}/event/{gw}/picks/
func (c *Client) EntryPicks(ctx context.Context, entryID int, gw int, force bool) ([]byte, error) {
	return c.FetchRaw(ctx,
		fmt.Sprintf("/entry/%d/event/%d/picks/", entryID, gw),
		fmt.Sprintf("entry/%d/gw/%d/picks.json", entryID, gw),
		force,
	)
}
