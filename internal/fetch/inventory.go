package fetch

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/aatrey56/fpl-season-report/internal/store"
)

// CachedEndpoint is one endpoint's file pattern inside the raw cache.
type CachedEndpoint struct {
	Name string
	Glob string
}

// CachedEndpoints mirrors the paths written by the endpoint helpers.
var CachedEndpoints = []CachedEndpoint{
	{"bootstrap-static", "bootstrap/bootstrap-static.json"},
	{"league-standings", "league/*/standings/page_*.json"},
	{"event-live", "gw/*/live.json"},
	{"entry-picks", "entry/*/gw/*/picks.json"},
}

type Inventory struct {
	GeneratedAtUTC string           `json:"generated_at_utc"`
	RawRoot        string           `json:"raw_root"`
	Endpoints      []EndpointSchema `json:"endpoints"`
}

type EndpointSchema struct {
	Name         string   `json:"name"`
	FilesScanned int      `json:"files_scanned"`
	Fields       []Field  `json:"fields"`
	Unreadable   []string `json:"unreadable,omitempty"`
}

// Field is a JSON path ($.a.b[]) and every type seen there.
type Field struct {
	Path  string   `json:"path"`
	Types []string `json:"types"`
}

// BuildInventory walks the cached responses and records the JSON shape of
// each endpoint, so API changes show up before they break the collector.
// maxFiles caps the files read per endpoint (0 reads all).
func BuildInventory(st *store.JSONStore, maxFiles int, now time.Time, log *zap.Logger) (Inventory, error) {
	if log == nil {
		log = zap.NewNop()
	}
	inv := Inventory{
		GeneratedAtUTC: now.UTC().Format(time.RFC3339),
		RawRoot:        st.Root,
		Endpoints:      make([]EndpointSchema, 0, len(CachedEndpoints)),
	}
	for _, ep := range CachedEndpoints {
		files, err := filepath.Glob(st.Path(ep.Glob))
		if err != nil {
			return Inventory{}, fmt.Errorf("glob %s: %w", ep.Glob, err)
		}
		sort.Strings(files)
		if maxFiles > 0 && len(files) > maxFiles {
			files = files[:maxFiles]
		}
		if len(files) == 0 {
			log.Debug("no cached files", zap.String("endpoint", ep.Name), zap.String("glob", ep.Glob))
			continue
		}

		shapes := make(map[string]map[string]bool)
		out := EndpointSchema{Name: ep.Name}
		for _, f := range files {
			rel, err := filepath.Rel(st.Root, f)
			if err != nil {
				return Inventory{}, err
			}
			raw, err := st.ReadRaw(rel)
			var v any
			if err == nil {
				err = json.Unmarshal(raw, &v)
			}
			if err != nil {
				log.Warn("skipping cached file", zap.String("path", f), zap.Error(err))
				out.Unreadable = append(out.Unreadable, filepath.ToSlash(rel))
				continue
			}
			collectShape(v, "$", shapes)
			out.FilesScanned++
		}
		out.Fields = fieldsOf(shapes)
		inv.Endpoints = append(inv.Endpoints, out)
	}
	return inv, nil
}

func collectShape(v any, path string, shapes map[string]map[string]bool) {
	switch x := v.(type) {
	case map[string]any:
		note(shapes, path, "object")
		for k, child := range x {
			collectShape(child, path+"."+k, shapes)
		}
	case []any:
		note(shapes, path, "array")
		if len(x) == 0 {
			note(shapes, path+"[]", "unknown")
		}
		for _, item := range x {
			collectShape(item, path+"[]", shapes)
		}
	case string:
		note(shapes, path, "string")
	case bool:
		note(shapes, path, "bool")
	case float64:
		note(shapes, path, "number")
	case nil:
		note(shapes, path, "null")
	default:
		note(shapes, path, fmt.Sprintf("%T", v))
	}
}

func note(shapes map[string]map[string]bool, path, typ string) {
	if shapes[path] == nil {
		shapes[path] = make(map[string]bool)
	}
	shapes[path][typ] = true
}

func fieldsOf(shapes map[string]map[string]bool) []Field {
	paths := make([]string, 0, len(shapes))
	for p := range shapes {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	out := make([]Field, 0, len(paths))
	for _, p := range paths {
		types := make([]string, 0, len(shapes[p]))
		for t := range shapes[p] {
			types = append(types, t)
		}
		sort.Strings(types)
		out = append(out, Field{Path: p, Types: types})
	}
	return out
}
