// Command fpl-server exposes a stored league season over MCP (streamable
// HTTP) so assistants can query aggregates, awards and analyses.
package main

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"github.com/aatrey56/fpl-season-report/internal/awards"
	"github.com/aatrey56/fpl-season-report/internal/config"
	"github.com/aatrey56/fpl-season-report/internal/logging"
)

type ServerConfig struct {
	CSVPath     string
	MappingPath string
	Season      string
	Catalog     awards.Catalog
}

type toolInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func main() {
	var (
		addr        = flag.String("addr", ":8080", "HTTP listen address")
		mcpPath     = flag.String("path", "/mcp", "HTTP path for MCP endpoint")
		cfgPath     = flag.String("config", config.DefaultPath, "YAML config file")
		csvPath     = flag.String("csv", "", "season CSV (default paths.season_csv)")
		requireAuth = flag.Bool("require-auth", true, "require API key auth via FPL_MCP_API_KEY")
		authHeader  = flag.String("auth-header", "X-API-Key", "HTTP header to read API key from")
		verbose     = flag.Bool("verbose", false, "debug logging")
	)
	flag.Parse()

	log, err := logging.New(*verbose)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer log.Sync()

	appCfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatal("load config", zap.Error(err))
	}
	cfg := ServerConfig{
		CSVPath:     appCfg.Paths.SeasonCSV,
		MappingPath: appCfg.Paths.PlayerMap,
		Season:      appCfg.Report.Season,
		Catalog:     appCfg.Catalog(),
	}
	if *csvPath != "" {
		cfg.CSVPath = *csvPath
	}

	apiKey := strings.TrimSpace(os.Getenv("FPL_MCP_API_KEY"))
	if *requireAuth && apiKey == "" {
		log.Fatal("FPL_MCP_API_KEY is required (set env var or run with --require-auth=false)")
	}

	mux, registry := newMux(cfg, *mcpPath, apiKey, *authHeader)
	log.Info("MCP HTTP server listening",
		zap.String("addr", *addr),
		zap.String("path", *mcpPath),
		zap.String("csv", cfg.CSVPath),
		zap.Int("tools", len(registry)),
	)
	if err := http.ListenAndServe(*addr, mux); err != nil {
		log.Fatal("serve", zap.Error(err))
	}
}

func newServer(cfg ServerConfig) (*mcp.Server, []toolInfo) {
	server := mcp.NewServer(
		&mcp.Implementation{
			Name:    "fpl-season-mcp",
			Version: "0.3.0",
		},
		nil,
	)
	registry := make([]toolInfo, 0, 16)

	addTool(server, &registry, &mcp.Tool{
		Name:        "league_entries",
		Description: "List the league's teams with manager names and gameweeks played",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args LeagueEntriesArgs) (*mcp.CallToolResult, any, error) {
		return toolOutput(buildLeagueEntries(cfg, args))
	})

	addTool(server, &registry, &mcp.Tool{
		Name:        "season_aggregates",
		Description: "Per-manager season totals (points, bench, hits, captaincy, efficiency, rounds)",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args SeasonAggregatesArgs) (*mcp.CallToolResult, any, error) {
		return toolOutput(buildSeasonAggregates(cfg, args))
	})

	addTool(server, &registry, &mcp.Tool{
		Name:        "awards",
		Description: "End-of-season awards with winner, reason and value",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args AwardsArgs) (*mcp.CallToolResult, any, error) {
		return toolOutput(buildAwards(cfg, args))
	})

	addTool(server, &registry, &mcp.Tool{
		Name:        "top_captains",
		Description: "Best single-gameweek captain picks across the league",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args TopCaptainsArgs) (*mcp.CallToolResult, any, error) {
		return toolOutput(buildTopCaptains(cfg, args))
	})

	addTool(server, &registry, &mcp.Tool{
		Name:        "manager_season",
		Description: "One manager's season: totals, gameweek log, streaks, positions and prediction",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args ManagerSeasonArgs) (*mcp.CallToolResult, any, error) {
		return toolOutput(buildManagerSeason(cfg, args))
	})

	addTool(server, &registry, &mcp.Tool{
		Name:        "head_to_head",
		Description: "Gameweek-by-gameweek record between two managers",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args HeadToHeadArgs) (*mcp.CallToolResult, any, error) {
		return toolOutput(buildHeadToHead(cfg, args))
	})

	addTool(server, &registry, &mcp.Tool{
		Name:        "form_streaks",
		Description: "Longest runs above and below the league average per manager",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args FormStreaksArgs) (*mcp.CallToolResult, any, error) {
		return toolOutput(buildFormStreaks(cfg, args))
	})

	addTool(server, &registry, &mcp.Tool{
		Name:        "league_positions",
		Description: "League table position history with highs, lows and weeks at the top",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args LeaguePositionsArgs) (*mcp.CallToolResult, any, error) {
		return toolOutput(buildLeaguePositions(cfg, args))
	})

	addTool(server, &registry, &mcp.Tool{
		Name:        "what_if",
		Description: "Counterfactual totals: best captains, no hits, best bench, optimal chips",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args WhatIfArgs) (*mcp.CallToolResult, any, error) {
		return toolOutput(buildWhatIf(cfg, args))
	})

	addTool(server, &registry, &mcp.Tool{
		Name:        "chip_usage",
		Description: "First gameweek each manager played each chip, plus league-wide chip timing",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args ChipUsageArgs) (*mcp.CallToolResult, any, error) {
		return toolOutput(buildChipUsage(cfg, args))
	})

	return server, registry
}

func newMux(cfg ServerConfig, mcpPath, apiKey, authHeader string) (*http.ServeMux, []toolInfo) {
	server, registry := newServer(cfg)
	handler := mcp.NewStreamableHTTPHandler(func(r *http.Request) *mcp.Server {
		return server
	}, &mcp.StreamableHTTPOptions{JSONResponse: true})

	withAuth := func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			if apiKey == "" {
				next(w, r)
				return
			}
			key := strings.TrimSpace(r.Header.Get(authHeader))
			if key == "" {
				if authz := r.Header.Get("Authorization"); strings.HasPrefix(strings.ToLower(authz), "bearer ") {
					key = strings.TrimSpace(authz[7:])
				}
			}
			if subtle.ConstantTimeCompare([]byte(key), []byte(apiKey)) != 1 {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				w.Write([]byte(`{"error":"unauthorized"}`))
				return
			}
			next(w, r)
		}
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/health", withAuth(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}))
	mux.HandleFunc("/tools", withAuth(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		b, _ := json.MarshalIndent(map[string]any{"tools": registry}, "", "  ")
		w.Write(b)
	}))
	mux.HandleFunc(mcpPath, withAuth(handler.ServeHTTP))
	return mux, registry
}

func addTool[T any](server *mcp.Server, registry *[]toolInfo, tool *mcp.Tool, handler func(context.Context, *mcp.CallToolRequest, T) (*mcp.CallToolResult, any, error)) {
	*registry = append(*registry, toolInfo{Name: tool.Name, Description: tool.Description})
	mcp.AddTool(server, tool, handler)
}

// toolOutput renders a build* result as indented JSON text content.
func toolOutput[T any](out T, err error) (*mcp.CallToolResult, any, error) {
	if err != nil {
		return toolError(err), nil, nil
	}
	b, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return toolError(err), nil, nil
	}
	return toolJSONBytes(b), nil, nil
}

func toolJSONBytes(res []byte) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: string(res)},
		},
	}
}

func toolError(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{
			&mcp.TextContent{Text: fmt.Sprintf("error: %v", err)},
		},
	}
}
