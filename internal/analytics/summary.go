package analytics

import "fmt"

// DiversionTarget is the state's 2030 diversion goal, in percent.
const DiversionTarget = 80.0

const (
	co2PerDisposedTonne = 0.65
	carTonnesPerYear    = 4600.0
)

// Summary headlines the latest year.
type Summary struct {
	Year            string  `json:"year"`
	WasteGenerated  float64 `json:"waste_generated"`
	DiversionRate   float64 `json:"diversion_rate"`
	DiversionTarget float64 `json:"diversion_target"`
	// CO2Tonnes estimates emissions from landfilled waste.
	CO2Tonnes      float64 `json:"co2_tonnes"`
	CarsEquivalent float64 `json:"cars_equivalent"`
}

// Summarize reports on the last entry of trends.
func Summarize(trends []YearTrend) Summary {
	if len(trends) == 0 {
		return Summary{DiversionTarget: DiversionTarget}
	}
	latest := trends[len(trends)-1]
	co2 := latest.Disposal * million * co2PerDisposedTonne
	return Summary{
		Year:            latest.Year,
		WasteGenerated:  latest.TotalGeneration,
		DiversionRate:   latest.DiversionRate,
		DiversionTarget: DiversionTarget,
		CO2Tonnes:       co2,
		CarsEquivalent:  co2 / carTonnesPerYear,
	}
}

// FormatQuantity abbreviates n as 1.2M, 3.4K or 5.6.
func FormatQuantity(n float64) string {
	switch {
	case n >= million:
		return fmt.Sprintf("%.1fM", n/million)
	case n >= 1000:
		return fmt.Sprintf("%.1fK", n/1000)
	default:
		return fmt.Sprintf("%.1f", n)
	}
}
