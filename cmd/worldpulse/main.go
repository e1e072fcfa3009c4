package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"worldpulse.ai/internal/analytics/report"
	"worldpulse.ai/internal/analytics/source"
	"worldpulse.ai/internal/analytics/tuning"
	"worldpulse.ai/internal/analytics/worlds"
)

func main() {
	var (
		configPath = flag.String("config", "", "optional YAML tuning file")
		dataDir    = flag.String("data", "", "override data_location")
		outPath    = flag.String("out", "", "override output path")
		format     = flag.String("format", "", "override report format (csv|sqlite)")
		minOcc     = flag.Int("min_occurrences", -1, "override min_occurrences")
		minSpend   = flag.Float64("min_marketing_spend", -1, "override min_marketing_spend")
		factor     = flag.Float64("heat_popularity_factor", 0, "override heat_popularity_factor")
	)
	flag.Parse()

	cfg, err := tuning.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "load tuning:", err)
		os.Exit(2)
	}
	if *dataDir != "" {
		cfg.DataLocation = *dataDir
	}
	if *outPath != "" {
		cfg.Output = *outPath
	}
	if *format != "" {
		cfg.Format = *format
	}
	if *minOcc != -1 {
		cfg.MinOccurrences = *minOcc
	}
	if *minSpend != -1 {
		cfg.MinMarketingSpend = *minSpend
	}
	if *factor != 0 {
		cfg.HeatPopularityFactor = *factor
	}
	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, "tuning:", err)
		os.Exit(2)
	}

	logger := log.New(os.Stderr, "[worldpulse] ", log.LstdFlags|log.Lmicroseconds)
	logger.Printf("data=%s min_occurrences=%d min_marketing_spend=%g heat_popularity_factor=%g output=%s format=%s",
		cfg.DataLocation, cfg.MinOccurrences, cfg.MinMarketingSpend, cfg.HeatPopularityFactor, cfg.Output, cfg.Format)

	res, err := run(cfg, logger)
	if err != nil {
		fmt.Fprintln(os.Stderr, "worldpulse:", err)
		os.Exit(1)
	}

	fmt.Printf("report written: %s (%s)\n", cfg.Output, cfg.Format)
	fmt.Printf("files=%d entries=%d worlds=%d retained=%d\n", res.Files, res.Entries, res.Worlds, res.Retained)
	printTop(res.Top)
}

type runResult struct {
	Files    int
	Entries  int
	Worlds   int
	Retained int
	Top      []worlds.Summary
}

func run(cfg tuning.Tuning, logger *log.Logger) (runResult, error) {
	var res runResult

	files, err := source.List(cfg.DataLocation)
	if err != nil {
		return res, fmt.Errorf("scan %s: %w", cfg.DataLocation, err)
	}
	res.Files = len(files)
	if len(files) == 0 {
		logger.Printf("no snapshot files in %s, writing an empty report", cfg.DataLocation)
	}

	accs, diags := worlds.Aggregate(source.Docs(cfg.DataLocation, files))
	for _, d := range diags {
		logger.Printf("skip %s", d)
	}
	for _, a := range accs {
		res.Entries += a.Occurrences
	}
	res.Worlds = len(accs)

	sums := worlds.SummarizeAll(accs, cfg.HeatPopularityFactor)
	retained := worlds.FilterSort(sums, cfg.MinOccurrences, cfg.MinMarketingSpend)
	res.Retained = len(retained)

	switch cfg.Format {
	case tuning.FormatSQLite:
		err = report.WriteSQLite(cfg.Output, retained)
	default:
		err = report.WriteCSV(cfg.Output, retained)
	}
	if err != nil {
		return res, fmt.Errorf("write %s: %w", cfg.Output, err)
	}

	n := len(retained)
	if n > 5 {
		n = 5
	}
	res.Top = retained[:n]
	return res, nil
}

func printTop(top []worlds.Summary) {
	if len(top) == 0 {
		return
	}
	fmt.Println("top worlds by average occupants:")
	for i, s := range top {
		name := s.Name
		if name == "" {
			name = s.WorldID
		}
		fmt.Printf("  %d. %s avg=%.2f occurrences=%d spend=%.2f\n",
			i+1, name, s.AverageOccupants, s.Occurrences, s.MaxMarketingSpend)
	}
}
