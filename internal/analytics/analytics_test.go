package analytics_test

import (
	"context"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"ecogenius/internal/analytics"
	"ecogenius/internal/logging"
)

const summaryCSV = `"Financial Year","Total Generation","Disposal","Recoverd locally (including Waste to Energy)","Exports","Diversion Rate (%)"
2016-2017,12620000,4200000,7260000,1160000,66.72
2015-2016,12330000,4140000,7020000,1170000,66.42
,,,,,
2017-2018,0,0,0,0,0
`

const detailCSV = `Financial Year,Material Type,Source Sector,Total Generation
2022-2023,Glass,MSW,999999
2023-2024,"Aggregate, masonry and soils",CND,8500000
2023-2024,"Aggregate, masonry and soils",MSW,245000
2023-2024,Glass,MSW,400000
2023-2024,Glass,CNI,200000
2023-2024,Glass,XYZ,500000
2023-2024,Textiles,MSW,0
`

func near(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestTrends(t *testing.T) {
	rows, err := analytics.ReadCSV(strings.NewReader(summaryCSV))
	if err != nil {
		t.Fatalf("ReadCSV: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("rows = %d, want blank row dropped", len(rows))
	}
	trends := analytics.Trends(rows)
	if len(trends) != 2 {
		t.Fatalf("trends = %+v", trends)
	}
	first := trends[0]
	if first.Year != "2015-16" || !near(first.TotalGeneration, 12.33) || !near(first.Recovered, 7.02) || first.DiversionRate != 66.42 {
		t.Fatalf("first = %+v", first)
	}
	if trends[1].Year != "2016-17" {
		t.Fatalf("not sorted: %+v", trends)
	}
}

func TestShortYear(t *testing.T) {
	for in, want := range map[string]string{"2015-2016": "2015-16", "2023-24": "2023-24", "FY24": "FY24"} {
		if got := analytics.ShortYear(in); got != want {
			t.Errorf("ShortYear(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestMaterialBreakdown(t *testing.T) {
	rows, err := analytics.ReadCSV(strings.NewReader(detailCSV))
	if err != nil {
		t.Fatalf("ReadCSV: %v", err)
	}
	year, materials := analytics.MaterialBreakdown(rows)
	if year != "2023-2024" {
		t.Fatalf("year = %q", year)
	}
	if len(materials) != 2 {
		t.Fatalf("materials = %+v", materials)
	}
	agg := materials[0]
	if agg.Material != "Aggregate & Masonry" || !near(agg.Total, 8.745) || !near(agg.MSW, 0.245) {
		t.Fatalf("aggregate = %+v", agg)
	}
	glass := materials[1]
	if glass.Material != "Glass" || !near(glass.Total, 0.6) || !near(glass.CNI, 0.2) {
		t.Fatalf("glass = %+v", glass)
	}
}

func TestSummarize(t *testing.T) {
	s := analytics.Summarize(analytics.FallbackTrends())
	if s.Year != "2023-24" || s.DiversionRate != 69.53 || s.DiversionTarget != 80 {
		t.Fatalf("summary = %+v", s)
	}
	if !near(s.CO2Tonnes, 4.34*1_000_000*0.65) {
		t.Fatalf("co2 = %v", s.CO2Tonnes)
	}
	if got := analytics.FormatQuantity(s.CO2Tonnes); got != "2.8M" {
		t.Fatalf("FormatQuantity = %q", got)
	}
	if got := analytics.FormatQuantity(s.CarsEquivalent); got != "613.3" {
		t.Fatalf("cars = %q", got)
	}
	if got := analytics.FormatQuantity(12.34); got != "12.3" {
		t.Fatalf("small = %q", got)
	}
	if empty := analytics.Summarize(nil); empty.Year != "" || empty.DiversionTarget != 80 {
		t.Fatalf("empty summary = %+v", empty)
	}
}

func TestSourceFallsBack(t *testing.T) {
	dir := t.TempDir()
	summaryPath := filepath.Join(dir, "summary.csv")
	if err := os.WriteFile(summaryPath, []byte(summaryCSV), 0o644); err != nil {
		t.Fatal(err)
	}

	report := analytics.NewSource(summaryPath, filepath.Join(dir, "missing.csv"), logging.NewNop()).Load(context.Background())
	if !report.Fallback || report.Warning == "" {
		t.Fatalf("report should note fallback: %+v", report)
	}
	if len(report.Trends) != 2 {
		t.Fatalf("trends should come from the file, got %d", len(report.Trends))
	}
	if report.MaterialYear != analytics.DefaultMaterialYear || len(report.Materials) != 8 {
		t.Fatalf("materials = %s %d", report.MaterialYear, len(report.Materials))
	}
	if report.Summary.Year != "2016-17" {
		t.Fatalf("summary year = %q", report.Summary.Year)
	}

	unconfigured := analytics.NewSource("", "", logging.NewNop()).Load(context.Background())
	if len(unconfigured.Trends) != 9 || !unconfigured.Fallback {
		t.Fatalf("unconfigured = %+v", unconfigured)
	}
}
