package analytics

import (
	"context"
	"log/slog"
	"strings"

	"ecogenius/internal/logging"
)

// Report is everything the analytics view renders.
type Report struct {
	Trends       []YearTrend     `json:"trends"`
	MaterialYear string          `json:"material_year"`
	Materials    []MaterialTotal `json:"materials"`
	Summary      Summary         `json:"summary"`
	// Fallback is set when built-in figures replaced a dataset.
	Fallback bool   `json:"fallback"`
	Warning  string `json:"warning,omitempty"`
}

// Source loads reports from the configured CSV paths.
type Source struct {
	summaryPath string
	detailPath  string
	logger      *slog.Logger
}

// NewSource reads summaryPath and detailPath on every Load.
func NewSource(summaryPath, detailPath string, logger *slog.Logger) *Source {
	return &Source{
		summaryPath: strings.TrimSpace(summaryPath),
		detailPath:  strings.TrimSpace(detailPath),
		logger:      logging.NewComponentLogger(logger, "analytics"),
	}
}

// Load builds a report. A dataset that is unconfigured, unreadable or empty
// is replaced by the built-in figures and noted in Warning.
func (s *Source) Load(ctx context.Context) Report {
	logger := logging.WithContext(ctx, s.logger)
	var report Report
	var warnings []string

	trends, err := s.loadTrends()
	if err != nil {
		logging.WarnWithContext(logger, "waste summary unavailable; using built-in figures",
			"analytics_fallback", "set analytics.summary_csv in config.toml",
			logging.Error(err),
		)
		trends = FallbackTrends()
		report.Fallback = true
		warnings = append(warnings, err.Error())
	}
	report.Trends = trends

	year, materials, err := s.loadMaterials()
	if err != nil {
		logging.WarnWithContext(logger, "waste detail unavailable; using built-in figures",
			"analytics_fallback", "set analytics.detail_csv in config.toml",
			logging.Error(err),
		)
		year, materials = DefaultMaterialYear, FallbackMaterials()
		report.Fallback = true
		warnings = append(warnings, err.Error())
	}
	report.MaterialYear = year
	report.Materials = materials
	report.Summary = Summarize(report.Trends)
	report.Warning = strings.Join(warnings, "; ")
	return report
}

func (s *Source) loadTrends() ([]YearTrend, error) {
	rows, err := s.read(s.summaryPath, "summary")
	if err != nil {
		return nil, err
	}
	trends := Trends(rows)
	if len(trends) == 0 {
		return nil, errNoRows("summary")
	}
	return trends, nil
}

func (s *Source) loadMaterials() (string, []MaterialTotal, error) {
	rows, err := s.read(s.detailPath, "detail")
	if err != nil {
		return "", nil, err
	}
	year, materials := MaterialBreakdown(rows)
	if len(materials) == 0 {
		return "", nil, errNoRows("detail")
	}
	return year, materials, nil
}

func (s *Source) read(path, name string) ([]Row, error) {
	if path == "" {
		return nil, errUnconfigured(name)
	}
	return ReadCSVFile(path)
}
