package config

import (
	"log/slog"
	"os"
	"strconv"
	"time"

	"hoboqc/internal/errors"
)

// Layout of the optional analysis interval bounds in the environment.
const intervalLayout = "2006-01-02 15:04"

// Config represents the complete pipeline configuration
type Config struct {
	Primary  PrimaryConfig
	Stations []StationConfig
	Output   OutputConfig
	Interval IntervalConfig
	LogLevel slog.Level
}

// PrimaryConfig holds the primary sensor input settings
type PrimaryConfig struct {
	File       string
	WarmupRows int // leading instrument warm-up rows skipped on load
}

// StationConfig names one reference weather-station input
type StationConfig struct {
	Name string
	File string
}

// OutputConfig holds the output sinks. ArchiveDB and ReportFile are optional;
// empty disables that sink.
type OutputConfig struct {
	TableFile  string
	ArchiveDB  string
	ReportFile string
}

// IntervalConfig bounds the analysis interval. Zero times leave the
// corresponding side open, defaulting to the primary file's full extent
// after warm-up trimming.
type IntervalConfig struct {
	Start time.Time
	End   time.Time
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	cfg := &Config{
		Primary: PrimaryConfig{
			File:       os.Getenv("HOBO_FILE"),
			WarmupRows: getEnvInt("HOBO_WARMUP_ROWS", 0),
		},
		Stations: []StationConfig{
			{Name: "WS", File: os.Getenv("WS_FILE")},
			{Name: "WBI", File: os.Getenv("WBI_FILE")},
		},
		Output: OutputConfig{
			TableFile:  os.Getenv("OUTPUT_FILE"),
			ArchiveDB:  os.Getenv("ARCHIVE_DB"),
			ReportFile: os.Getenv("REPORT_FILE"),
		},
		LogLevel: parseLogLevel(os.Getenv("LOG_LEVEL")),
	}

	start, err := parseIntervalBound("ANALYSIS_START")
	if err != nil {
		return nil, err
	}
	end, err := parseIntervalBound("ANALYSIS_END")
	if err != nil {
		return nil, err
	}
	cfg.Interval = IntervalConfig{Start: start, End: end}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Primary.File == "" {
		return errors.ConfigInvalid("HOBO_FILE is required")
	}
	if c.Primary.WarmupRows < 0 {
		return errors.ConfigInvalid("HOBO_WARMUP_ROWS must not be negative")
	}
	for _, st := range c.Stations {
		if st.File == "" {
			return errors.ConfigInvalid(st.Name + "_FILE is required")
		}
	}
	if c.Output.TableFile == "" {
		return errors.ConfigInvalid("OUTPUT_FILE is required")
	}
	if !c.Interval.Start.IsZero() && !c.Interval.End.IsZero() && c.Interval.End.Before(c.Interval.Start) {
		return errors.ConfigInvalid("ANALYSIS_END precedes ANALYSIS_START")
	}
	return nil
}

func parseIntervalBound(key string) (time.Time, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(intervalLayout, raw)
	if err != nil {
		return time.Time{}, errors.ConfigInvalid(key + " must look like " + intervalLayout)
	}
	return t, nil
}

func parseLogLevel(raw string) slog.Level {
	switch raw {
	case "DEBUG":
		return slog.LevelDebug
	case "WARN":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func getEnvInt(key string, fallback int) int {
	if raw := os.Getenv(key); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			return v
		}
	}
	return fallback
}
