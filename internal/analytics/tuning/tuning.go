package tuning

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	FormatCSV    = "csv"
	FormatSQLite = "sqlite"
)

// Tuning holds the knobs for one analytics run. Values resolve in layers:
// built-in defaults, then the optional YAML file, then WP_* environment
// variables. Command-line overrides are applied by the caller, which then
// runs Validate.
type Tuning struct {
	DataLocation         string  `yaml:"data_location"`
	MinOccurrences       int     `yaml:"min_occurrences"`
	MinMarketingSpend    float64 `yaml:"min_marketing_spend"`
	HeatPopularityFactor float64 `yaml:"heat_popularity_factor"`
	Output               string  `yaml:"output"`
	Format               string  `yaml:"format"`
}

func Defaults() Tuning {
	return Tuning{
		DataLocation:         "data",
		MinOccurrences:       7,
		MinMarketingSpend:    15,
		HeatPopularityFactor: 1.0,
		Output:               "worlds_aggregated.csv",
		Format:               FormatCSV,
	}
}

func Load(path string) (Tuning, error) {
	t := Defaults()
	if strings.TrimSpace(path) != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return t, err
		}
		if err := yaml.Unmarshal(raw, &t); err != nil {
			return t, fmt.Errorf("%s: %w", path, err)
		}
	}
	t.applyEnv()
	t.Normalize()
	return t, nil
}

func (t *Tuning) applyEnv() {
	t.DataLocation = envStr("WP_DATA_LOCATION", t.DataLocation)
	t.MinOccurrences = envInt("WP_MIN_OCCURRENCES", t.MinOccurrences)
	t.MinMarketingSpend = envFloat("WP_MIN_MARKETING_SPEND", t.MinMarketingSpend)
	t.HeatPopularityFactor = envFloat("WP_HEAT_POPULARITY_FACTOR", t.HeatPopularityFactor)
	t.Output = envStr("WP_OUTPUT", t.Output)
	t.Format = envStr("WP_FORMAT", t.Format)
}

func (t *Tuning) Normalize() {
	t.DataLocation = strings.TrimSpace(t.DataLocation)
	t.Output = strings.TrimSpace(t.Output)
	t.Format = strings.ToLower(strings.TrimSpace(t.Format))
	if t.Format == "" {
		t.Format = FormatCSV
	}
}

func (t Tuning) Validate() error {
	if t.DataLocation == "" {
		return fmt.Errorf("data_location must not be empty")
	}
	if t.MinOccurrences < 1 {
		return fmt.Errorf("min_occurrences must be >= 1, got %d", t.MinOccurrences)
	}
	if t.MinMarketingSpend < 0 {
		return fmt.Errorf("min_marketing_spend must be >= 0, got %g", t.MinMarketingSpend)
	}
	if t.HeatPopularityFactor <= 0 {
		return fmt.Errorf("heat_popularity_factor must be > 0, got %g", t.HeatPopularityFactor)
	}
	if t.Output == "" {
		return fmt.Errorf("output must not be empty")
	}
	if t.Format != FormatCSV && t.Format != FormatSQLite {
		return fmt.Errorf("format must be %q or %q, got %q", FormatCSV, FormatSQLite, t.Format)
	}
	return nil
}

func envStr(key, def string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	return v
}

func envInt(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func envFloat(key string, def float64) float64 {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return def
	}
	return f
}
