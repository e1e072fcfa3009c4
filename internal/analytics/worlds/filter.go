package worlds

import "sort"

// FilterSort retains worlds with enough occurrences and marketing headroom,
// ordered by average occupants descending with world id ascending as the
// tie-break. The ordering is total, so the result is deterministic for any
// input permutation, and re-filtering a filtered slice changes nothing.
func FilterSort(in []Summary, minOccurrences int, minMarketingSpend float64) []Summary {
	out := make([]Summary, 0, len(in))
	for _, s := range in {
		if s.Occurrences < minOccurrences {
			continue
		}
		if s.MaxMarketingSpend < minMarketingSpend {
			continue
		}
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].AverageOccupants != out[j].AverageOccupants {
			return out[i].AverageOccupants > out[j].AverageOccupants
		}
		return out[i].WorldID < out[j].WorldID
	})
	return out
}
