package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/aatrey56/fpl-season-report/internal/store"
)

const DefaultBaseURL = "https://fantasy.premierleague.com/api"

type Client struct {
	HTTP         *http.Client
	Store        *store.JSONStore
	Log          *zap.Logger
	BaseURL      string
	UserAgent    string
	Cookie       string
	Sleep        time.Duration
	PrettyWrite  bool
	UseCache     bool
	DisableWrite bool
}

func NewClient(st *store.JSONStore) *Client {
	return &Client{
		HTTP:        &http.Client{Timeout: 20 * time.Second},
		Store:       st,
		Log:         zap.NewNop(),
		BaseURL:     DefaultBaseURL,
		UserAgent:   "Mozilla/5.0",
		Sleep:       300 * time.Millisecond,
		PrettyWrite: true,
		UseCache:    true,
	}
}

// StatusError is returned for non-2xx responses.
type StatusError struct {
	Path       string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s failed: %d body=%s", e.Path, e.StatusCode, e.Body)
}

// FetchRaw downloads urlPath (like "/bootstrap-static/") and writes it to
// relPath in the store. Returns raw bytes (from cache or network).
func (c *Client) FetchRaw(ctx context.Context, urlPath string, relPath string, force bool) ([]byte, error) {
	if !force && c.UseCache && c.Store != nil && c.Store.Exists(relPath) {
		return c.Store.ReadRaw(relPath)
	}

	if c.Sleep > 0 {
		timer := time.NewTimer(c.Sleep)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+urlPath, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.UserAgent)
	req.Header.Set("Accept", "application/json")
	if c.Cookie != "" {
		req.Header.Set("Cookie", c.Cookie)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("GET %s: read body: %w", urlPath, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{Path: urlPath, StatusCode: resp.StatusCode, Body: string(body)}
	}
	c.logger().Debug("fetched", zap.String("path", urlPath), zap.Int("bytes", len(body)))

	if !c.DisableWrite && c.Store != nil {
		if err := c.Store.WriteRaw(relPath, body, c.PrettyWrite); err != nil {
			return nil, err
		}
	}
	return body, nil
}

func (c *Client) logger() *zap.Logger {
	if c.Log == nil {
		return zap.NewNop()
	}
	return c.Log
}
