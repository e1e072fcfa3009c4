package report

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/klauspost/compress/zstd"

	"worldpulse.ai/internal/analytics/worlds"
)

// Columns is the fixed report layout. Order is part of the contract.
var Columns = []string{
	"world_name",
	"world_id",
	"average_occupants",
	"total_occurrences",
	"max_occupants",
	"min_occupants",
	"heat",
	"popularity",
	"estimated_orders",
	"max_marketing_spend",
	"image_url",
	"user_id",
	"user_name",
	"bio_description",
	"social_links",
}

// WriteCSV writes the report to path, zstd-compressing when the path ends
// in .zst. The header row is always present, even when no worlds survived
// the filter.
func WriteCSV(path string, sums []worlds.Summary) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	var sink io.Writer = f
	var enc *zstd.Encoder
	if strings.HasSuffix(path, ".zst") {
		enc, err = zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedDefault))
		if err != nil {
			_ = f.Close()
			return err
		}
		sink = enc
	}
	closeAll := func() error {
		var first error
		if enc != nil {
			first = enc.Close()
		}
		if err := f.Close(); first == nil {
			first = err
		}
		return first
	}

	w := csv.NewWriter(sink)
	if err := w.Write(Columns); err != nil {
		_ = closeAll()
		return err
	}
	for _, s := range sums {
		if err := w.Write(row(s)); err != nil {
			_ = closeAll()
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		_ = closeAll()
		return err
	}
	return closeAll()
}

func row(s worlds.Summary) []string {
	return []string{
		displayName(s),
		s.WorldID,
		fixed2(s.AverageOccupants),
		strconv.Itoa(s.Occurrences),
		strconv.Itoa(s.MaxOccupants),
		strconv.Itoa(s.MinOccupants),
		compact(s.Heat),
		compact(s.Popularity),
		fixed2(s.EstimatedOrders),
		fixed2(s.MaxMarketingSpend),
		orNA(s.ImageURL),
		orNA(s.AuthorID),
		orNA(s.AuthorName),
		s.Bio,
		s.SocialLinks,
	}
}

// displayName falls back to the world id for worlds that never reported a
// name.
func displayName(s worlds.Summary) string {
	if s.Name != "" {
		return s.Name
	}
	return s.WorldID
}

func orNA(v string) string {
	if v == "" {
		return worlds.NA
	}
	return v
}

func fixed2(f float64) string {
	return strconv.FormatFloat(f, 'f', 2, 64)
}

func compact(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
