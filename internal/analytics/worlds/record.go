package worlds

import (
	"math"
	"strconv"
	"strings"
)

// Record is one world appearance as read from a snapshot document, after
// field coercion. Alternate key spellings from older exporters are accepted.
type Record struct {
	ID         string
	Name       string
	Occupants  int
	ImageURL   string
	AuthorID   string
	AuthorName string
	BioLinks   []string
	Bio        string
	Heat       float64
	Popularity float64
}

// decodeRecord coerces one document entry. ok is false when the entry
// carries no usable world id.
func decodeRecord(m map[string]any) (Record, bool) {
	id := strings.TrimSpace(pickText(m, "id", "worldId", "world_id"))
	if id == "" {
		return Record{}, false
	}
	return Record{
		ID:         id,
		Name:       pickText(m, "name"),
		Occupants:  pickCount(m, "occupants", "currentUsers", "users"),
		ImageURL:   pickText(m, "imageUrl", "image_url"),
		AuthorID:   pickText(m, "authorId", "author_id"),
		AuthorName: pickText(m, "authorName", "author_name"),
		BioLinks:   pickLinks(m, "bioLinks", "bio_links"),
		Bio:        pickText(m, "bio", "description", "bio_description"),
		Heat:       coerceFloat(m["heat"]),
		Popularity: coerceFloat(m["popularity"]),
	}, true
}

func pickText(m map[string]any, keys ...string) string {
	for _, k := range keys {
		if s := coerceText(m[k]); s != "" {
			return s
		}
	}
	return ""
}

// pickCount returns the count under the first key carrying a real value.
// Null and empty-string values count as absent so an alternate spelling can
// still supply the field; any other value is coerced, junk included.
func pickCount(m map[string]any, keys ...string) int {
	for _, k := range keys {
		v, present := m[k]
		if !present || v == nil {
			continue
		}
		if s, ok := v.(string); ok && strings.TrimSpace(s) == "" {
			continue
		}
		return coerceCount(v)
	}
	return 0
}

func pickLinks(m map[string]any, keys ...string) []string {
	for _, k := range keys {
		if links := coerceLinks(m[k]); len(links) > 0 {
			return links
		}
	}
	return nil
}

func coerceText(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	default:
		return ""
	}
}

// coerceCount yields a non-negative occupant count. Fractions truncate,
// anything non-numeric, negative or beyond int range collapses to zero.
func coerceCount(v any) int {
	switch x := v.(type) {
	case float64:
		if math.IsNaN(x) || x < 0 || x >= math.MaxInt {
			return 0
		}
		return int(x)
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(x))
		if err != nil || n < 0 {
			return 0
		}
		return n
	default:
		return 0
	}
}

func coerceFloat(v any) float64 {
	var f float64
	switch x := v.(type) {
	case float64:
		f = x
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err != nil {
			return 0
		}
		f = parsed
	default:
		return 0
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

func coerceLinks(v any) []string {
	switch x := v.(type) {
	case []any:
		var out []string
		for _, e := range x {
			if s := coerceText(e); s != "" {
				out = append(out, s)
			}
		}
		return out
	case string:
		if strings.TrimSpace(x) == "" {
			return nil
		}
		return []string{x}
	default:
		return nil
	}
}
