package analytics

import (
	"slices"
	"strings"
)

// Summary dataset columns. The recovered column name is spelled as published.
const (
	ColumnFinancialYear   = "Financial Year"
	ColumnTotalGeneration = "Total Generation"
	ColumnDisposal        = "Disposal"
	ColumnRecovered       = "Recoverd locally (including Waste to Energy)"
	ColumnExports         = "Exports"
	ColumnDiversionRate   = "Diversion Rate (%)"
	ColumnMaterialType    = "Material Type"
	ColumnSourceSector    = "Source Sector"
)

const million = 1_000_000

// YearTrend is one financial year in millions of tonnes.
type YearTrend struct {
	Year            string  `json:"year"`
	TotalGeneration float64 `json:"total_generation"`
	Disposal        float64 `json:"disposal"`
	Recovered       float64 `json:"recovered"`
	Exports         float64 `json:"exports"`
	DiversionRate   float64 `json:"diversion_rate"`
}

// ShortYear turns "2015-2016" into "2015-16". Other labels pass through.
func ShortYear(year string) string {
	return strings.Replace(year, "-20", "-", 1)
}

// Trends builds the yearly series from summary rows, oldest first. Rows
// without a year or with no generation are skipped.
func Trends(rows []Row) []YearTrend {
	out := make([]YearTrend, 0, len(rows))
	for _, row := range rows {
		year := row.String(ColumnFinancialYear)
		total := row.Float(ColumnTotalGeneration)
		if year == "" || total == 0 {
			continue
		}
		out = append(out, YearTrend{
			Year:            ShortYear(year),
			TotalGeneration: total / million,
			Disposal:        row.Float(ColumnDisposal) / million,
			Recovered:       row.Float(ColumnRecovered) / million,
			Exports:         row.Float(ColumnExports) / million,
			DiversionRate:   row.Float(ColumnDiversionRate),
		})
	}
	slices.SortStableFunc(out, func(a, b YearTrend) int { return strings.Compare(a.Year, b.Year) })
	return out
}
