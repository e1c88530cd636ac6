package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aatrey56/fpl-season-report/internal/awards"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"FPL_COOKIE", "FPL_LEAGUE_ID", "FPL_SEASON", "FPL_S3_BUCKET"} {
		t.Setenv(k, "")
	}
}

func write(t *testing.T, dir, name, body string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	return p
}

func TestLoadMissingFileGivesDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(filepath.Join(t.TempDir(), "fplreport.yaml"))
	require.NoError(t, err)

	assert.Equal(t, Default(), cfg)
	assert.Equal(t, "csv/fpl_season_data.csv", cfg.Paths.SeasonCSV)
	assert.Equal(t, "fpl_output", cfg.Paths.OutputDir)
	assert.NoError(t, cfg.Validate())
	assert.Error(t, cfg.RequireFetch())
}

func TestLoadYAML(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	path := write(t, dir, "fplreport.yaml", `
fetch:
  league_id: 12345
  gameweeks: 10
  workers: 4
report:
  league: Office League
  pdf: true
awards:
  captain:
    title: Kto na kapitanie?
publish:
  bucket: reports
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 12345, cfg.Fetch.LeagueID)
	assert.Equal(t, 10, cfg.Fetch.Gameweeks)
	assert.Equal(t, 4, cfg.Fetch.Workers)
	assert.Equal(t, 300, cfg.Fetch.SleepMS, "unset keys keep defaults")
	assert.True(t, cfg.Report.PDF)
	assert.Equal(t, "reports", cfg.Publish.Bucket)

	cat := cfg.Catalog()
	assert.Equal(t, "Kto na kapitanie?", cat.Entry(awards.KeyCaptain).Title)
	assert.Equal(t, awards.DefaultCatalog().Entry(awards.KeyCaptain).Reason, cat.Entry(awards.KeyCaptain).Reason)
	assert.Equal(t, awards.DefaultCatalog().Entry(awards.KeyBench), cat.Entry(awards.KeyBench))
}

func TestEnvOverrides(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	path := write(t, dir, "fplreport.yaml", "fetch:\n  league_id: 1\n")
	t.Setenv("FPL_LEAGUE_ID", "777")
	t.Setenv("FPL_COOKIE", "pl_profile=abc")
	t.Setenv("FPL_SEASON", "2023/2024")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 777, cfg.Fetch.LeagueID)
	assert.Equal(t, "pl_profile=abc", cfg.Fetch.Cookie)
	assert.Equal(t, "2023/2024", cfg.Report.Season)
}

func TestDotEnvDoesNotOverrideEnvironment(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	write(t, dir, ".env", "FPL_S3_BUCKET=from-dotenv\n")
	t.Setenv("FPL_S3_BUCKET", "from-env")

	cfg, err := Load(filepath.Join(dir, "fplreport.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Publish.Bucket)
}

func TestInvalidLeagueID(t *testing.T) {
	clearEnv(t)
	t.Setenv("FPL_LEAGUE_ID", "abc")
	_, err := Load(filepath.Join(t.TempDir(), "none.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Fetch.Gameweeks = 39
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.Fetch.Workers = 0
	assert.Error(t, cfg.Validate())
}

func TestPolishAwardsFile(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(filepath.Join("..", "..", "configs", "awards.pl.yaml"))
	require.NoError(t, err)

	cat := cfg.Catalog()
	assert.Equal(t, "Kto na kapitanie?", cat[awards.KeyCaptain].Title)
	for _, k := range awards.Keys {
		assert.NotEmpty(t, cfg.Awards[k].Title, k)
	}
}
