package fetch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aatrey56/fpl-season-report/internal/store"
)

func newTestClient(t *testing.T, h http.HandlerFunc) (*Client, *store.JSONStore) {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	st := store.NewJSONStore(t.TempDir())
	c := NewClient(st)
	c.BaseURL = srv.URL
	c.Sleep = 0
	return c, st
}

func TestFetchRawSendsHeaders(t *testing.T) {
	var gotCookie, gotUA, gotPath string
	c, st := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotCookie = r.Header.Get("Cookie")
		gotUA = r.Header.Get("User-Agent")
		gotPath = r.URL.RequestURI()
		w.Write([]byte(`{"ok":true}`))
	})
	c.Cookie = "pl_profile=abc"

	body, err := c.LeagueStandings(context.Background(), 42, 2, false)
	require.NoError(t, err)
	assert.JSONEq(t, `{"ok":true}`, string(body))
	assert.Equal(t, "pl_profile=abc", gotCookie)
	assert.Equal(t, "Mozilla/5.0", gotUA)
	assert.Equal(t, "/leagues-classic/42/standings/?page_standings=2", gotPath)
	assert.True(t, st.Exists("league/42/standings/page_2.json"))
}

func TestFetchRawUsesCache(t *testing.T) {
	var calls int32
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.Write([]byte(`{"elements":[]}`))
	})

	ctx := context.Background()
	_, err := c.BootstrapStatic(ctx, false)
	require.NoError(t, err)
	_, err = c.BootstrapStatic(ctx, false)
	require.NoError(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))

	_, err = c.BootstrapStatic(ctx, true)
	require.NoError(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestFetchRawStatusError(t *testing.T) {
	c, st := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusForbidden)
	})

	_, err := c.EntryPicks(context.Background(), 7, 3, false)
	require.Error(t, err)
	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusForbidden, se.StatusCode)
	assert.False(t, st.Exists("entry/7/gw/3/picks.json"))
}

func TestFetchRawDisableWrite(t *testing.T) {
	c, st := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"elements":[]}`))
	})
	c.DisableWrite = true

	_, err := c.EventLive(context.Background(), 1, false)
	require.NoError(t, err)
	assert.False(t, st.Exists("gw/1/live.json"))
}
