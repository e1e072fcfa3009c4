package worlds

import (
	"math"
	"sort"
	"strings"
)

// NA is the placeholder written for presentation fields with no data.
const NA = "NA"

// Revenue projection constants: a 30-day month, one order per 10k daily
// visitors, 400 per order, 35% of order value available for marketing.
const (
	orderWindowDays  = 30
	visitorsPerOrder = 10000
	orderValue       = 400
	marketingShare   = 0.35
)

// Summary is one world's finished analytics row. Derived values are fixed
// at construction; nothing downstream mutates a Summary.
type Summary struct {
	WorldID           string
	Name              string
	AverageOccupants  float64
	Occurrences       int
	MaxOccupants      int
	MinOccupants      int
	Heat              float64
	Popularity        float64
	EstimatedOrders   float64
	MaxMarketingSpend float64
	ImageURL          string
	AuthorID          string
	AuthorName        string
	Bio               string
	SocialLinks       string
}

// Summarize derives the business metrics for one finished accumulator.
// heatPopularityFactor scales average occupants into estimated daily
// visitors; max marketing spend is computed from the already rounded order
// estimate.
func Summarize(a *Accumulator, heatPopularityFactor float64) Summary {
	avg := float64(a.OccupantSum) / float64(a.Occurrences)
	visitors := avg * heatPopularityFactor
	orders := round2(visitors * orderWindowDays / visitorsPerOrder)
	spend := round2(orders * orderValue * marketingShare)

	social := NA
	if len(a.BioLinks) > 0 {
		social = strings.Join(a.BioLinks, ";")
	}
	bio := a.Bio
	if bio == "" {
		bio = NA
	}

	return Summary{
		WorldID:           a.WorldID,
		Name:              a.Name,
		AverageOccupants:  avg,
		Occurrences:       a.Occurrences,
		MaxOccupants:      a.MaxOccupants,
		MinOccupants:      a.MinOccupants,
		Heat:              a.Heat,
		Popularity:        a.Popularity,
		EstimatedOrders:   orders,
		MaxMarketingSpend: spend,
		ImageURL:          a.ImageURL,
		AuthorID:          a.AuthorID,
		AuthorName:        a.AuthorName,
		Bio:               bio,
		SocialLinks:       social,
	}
}

// SummarizeAll summarizes every accumulator in sorted world-id order.
func SummarizeAll(accs map[string]*Accumulator, heatPopularityFactor float64) []Summary {
	ids := make([]string, 0, len(accs))
	for id := range accs {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	out := make([]Summary, 0, len(ids))
	for _, id := range ids {
		out = append(out, Summarize(accs[id], heatPopularityFactor))
	}
	return out
}

// round2 rounds half away from zero to two decimal places.
func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
