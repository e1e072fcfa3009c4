package worlds

import (
	"fmt"

	"worldpulse.ai/internal/analytics/source"
)

// Accumulator folds every appearance of one world across the input set.
// Occupancy fields fold all occurrences; presentation fields keep the first
// non-empty value; heat and popularity keep the first non-zero value. Fields
// fill independently, so an appearance missing a name can still contribute
// its author or image.
type Accumulator struct {
	WorldID      string
	Name         string
	OccupantSum  int
	Occurrences  int
	MinOccupants int
	MaxOccupants int
	ImageURL     string
	AuthorID     string
	AuthorName   string
	BioLinks     []string
	Bio          string
	Heat         float64
	Popularity   float64
}

func (a *Accumulator) observe(r Record) {
	if a.Occurrences == 0 {
		a.MinOccupants = r.Occupants
		a.MaxOccupants = r.Occupants
	} else {
		if r.Occupants < a.MinOccupants {
			a.MinOccupants = r.Occupants
		}
		if r.Occupants > a.MaxOccupants {
			a.MaxOccupants = r.Occupants
		}
	}
	a.Occurrences++
	a.OccupantSum += r.Occupants

	if a.Name == "" {
		a.Name = r.Name
	}
	if a.ImageURL == "" {
		a.ImageURL = r.ImageURL
	}
	if a.AuthorID == "" {
		a.AuthorID = r.AuthorID
	}
	if a.AuthorName == "" {
		a.AuthorName = r.AuthorName
	}
	if len(a.BioLinks) == 0 {
		a.BioLinks = r.BioLinks
	}
	if a.Bio == "" {
		a.Bio = r.Bio
	}
	if a.Heat == 0 {
		a.Heat = r.Heat
	}
	if a.Popularity == 0 {
		a.Popularity = r.Popularity
	}
}

type DiagKind string

const (
	DiagBadFile  DiagKind = "bad_file"
	DiagBadShape DiagKind = "bad_shape"
	DiagBadEntry DiagKind = "bad_entry"
)

// Diagnostic reports one skipped file, document or entry. The fold never
// aborts on malformed input; it hands these back for the caller to log.
type Diagnostic struct {
	Kind   DiagKind
	File   string
	Detail string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: %s", d.File, d.Detail)
}

// Aggregate folds a sequence of decode results into per-world accumulators
// keyed by world id. It performs no I/O and no logging.
func Aggregate(next func() (source.Doc, bool)) (map[string]*Accumulator, []Diagnostic) {
	accs := map[string]*Accumulator{}
	var diags []Diagnostic

	for d, ok := next(); ok; d, ok = next() {
		if d.Err != nil {
			diags = append(diags, Diagnostic{Kind: DiagBadFile, File: d.File, Detail: d.Err.Error()})
			continue
		}
		entries, ok := docEntries(d.Value)
		if !ok {
			diags = append(diags, Diagnostic{Kind: DiagBadShape, File: d.File, Detail: "not a world array or worlds object"})
			continue
		}
		for i, e := range entries {
			m, ok := e.(map[string]any)
			if !ok {
				diags = append(diags, Diagnostic{Kind: DiagBadEntry, File: d.File, Detail: fmt.Sprintf("entry %d is not an object", i)})
				continue
			}
			rec, ok := decodeRecord(m)
			if !ok {
				diags = append(diags, Diagnostic{Kind: DiagBadEntry, File: d.File, Detail: fmt.Sprintf("entry %d has no world id", i)})
				continue
			}
			acc := accs[rec.ID]
			if acc == nil {
				acc = &Accumulator{WorldID: rec.ID}
				accs[rec.ID] = acc
			}
			acc.observe(rec)
		}
	}
	return accs, diags
}

// docEntries extracts the world entries from a decoded document. Accepted
// shapes: a raw array, or an object with a "worlds" array.
func docEntries(v any) ([]any, bool) {
	switch x := v.(type) {
	case []any:
		return x, true
	case map[string]any:
		if arr, ok := x["worlds"].([]any); ok {
			return arr, true
		}
	}
	return nil, false
}
