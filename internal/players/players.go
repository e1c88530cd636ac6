// Package players maps FPL element ids to printable player names.
package players

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Letters that NFKD does not decompose into ASCII.
var specialChars = strings.NewReplacer(
	"Ø", "O", "ø", "o",
	"ß", "ss",
	"Æ", "Ae", "æ", "ae",
	"Œ", "Oe", "œ", "oe",
	"Ł", "L", "ł", "l",
	"Đ", "D", "đ", "d",
	"Ð", "D", "ð", "d",
	"Þ", "Th", "þ", "th",
	"ı", "i",
	"Ħ", "H", "ħ", "h",
)

// Sanitize reduces a web name to ASCII letters, digits, dots and spaces.
func Sanitize(name string) string {
	s := specialChars.Replace(name)
	t := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)))
	if out, _, err := transform.String(t, s); err == nil {
		s = out
	}
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'A' && r <= 'Z', r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '.', r == ' ':
			b.WriteRune(r)
		}
	}
	return b.String()
}

type Mapping struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// BuildMapping extracts sanitized web names from a bootstrap-static payload.
func BuildMapping(bootstrap []byte) ([]Mapping, error) {
	raw, err := RawMapping(bootstrap)
	if err != nil {
		return nil, err
	}
	for i := range raw {
		raw[i].Name = Sanitize(raw[i].Name)
	}
	return raw, nil
}

// RawMapping is BuildMapping without sanitizing, for the unmodified copy.
func RawMapping(bootstrap []byte) ([]Mapping, error) {
	var resp struct {
		Elements []struct {
			ID      int    `json:"id"`
			WebName string `json:"web_name"`
		} `json:"elements"`
	}
	if err := json.Unmarshal(bootstrap, &resp); err != nil {
		return nil, fmt.Errorf("decode bootstrap: %w", err)
	}
	out := make([]Mapping, 0, len(resp.Elements))
	for _, e := range resp.Elements {
		out = append(out, Mapping{ID: e.ID, Name: e.WebName})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func Write(path string, mappings []Mapping) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	b, err := json.MarshalIndent(mappings, "", "  ")
	if err != nil {
		return err
	}
	b = append(b, '\n')
	return os.WriteFile(path, b, 0o644)
}

// Names resolves element ids to names.
type Names map[int]string

// Name returns the mapped name, or the id itself when unknown.
func (n Names) Name(id int) string {
	if name, ok := n[id]; ok && name != "" {
		return name
	}
	return strconv.Itoa(id)
}

// Load reads a mapping file. A missing file returns empty Names and an error
// wrapping os.ErrNotExist so callers can downgrade it to a warning.
func Load(path string) (Names, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Names{}, fmt.Errorf("player mapping %s: %w", path, err)
		}
		return nil, err
	}
	var list []Mapping
	if err := json.Unmarshal(b, &list); err != nil {
		return nil, fmt.Errorf("decode player mapping %s: %w", path, err)
	}
	out := make(Names, len(list))
	for _, m := range list {
		out[m.ID] = m.Name
	}
	return out, nil
}
