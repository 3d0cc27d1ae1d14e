package analytics

import (
	"cmp"
	"slices"
	"strings"
)

// Source sectors in the detail dataset.
const (
	SectorMSW = "MSW"
	SectorCND = "CND"
	SectorCNI = "CNI"
)

// DefaultMaterialYear is used when the detail rows carry no year.
const DefaultMaterialYear = "2023-2024"

// MaterialTotal is one material's generation by sector, in millions of tonnes.
type MaterialTotal struct {
	Material string  `json:"material"`
	MSW      float64 `json:"msw"`
	CND      float64 `json:"cnd"`
	CNI      float64 `json:"cni"`
	Total    float64 `json:"total"`
}

var materialLabels = strings.NewReplacer(
	"Aggregate, masonry and soils", "Aggregate & Masonry",
	"Paper and cardboard", "Paper & Cardboard",
	"Tyres and rubber", "Tyres & Rubber",
)

// LatestYear returns the greatest financial year in rows.
func LatestYear(rows []Row) string {
	latest := ""
	for _, row := range rows {
		if y := row.String(ColumnFinancialYear); y > latest {
			latest = y
		}
	}
	if latest == "" {
		return DefaultMaterialYear
	}
	return latest
}

// MaterialBreakdown aggregates the latest year's generation by material and
// sector, largest total first. It returns the year it used.
func MaterialBreakdown(rows []Row) (string, []MaterialTotal) {
	year := LatestYear(rows)
	byMaterial := make(map[string]*MaterialTotal)
	var order []string
	for _, row := range rows {
		if row.String(ColumnFinancialYear) != year {
			continue
		}
		material := row.String(ColumnMaterialType)
		generation := row.Float(ColumnTotalGeneration)
		if material == "" || generation <= 0 {
			continue
		}
		sector := row.String(ColumnSourceSector)
		if sector != SectorMSW && sector != SectorCND && sector != SectorCNI {
			continue
		}
		total, ok := byMaterial[material]
		if !ok {
			total = &MaterialTotal{Material: materialLabels.Replace(material)}
			byMaterial[material] = total
			order = append(order, material)
		}
		switch sector {
		case SectorMSW:
			total.MSW += generation
		case SectorCND:
			total.CND += generation
		case SectorCNI:
			total.CNI += generation
		}
	}

	out := make([]MaterialTotal, 0, len(order))
	for _, material := range order {
		t := byMaterial[material]
		t.Total = (t.MSW + t.CND + t.CNI) / million
		t.MSW /= million
		t.CND /= million
		t.CNI /= million
		if t.Total > 0 {
			out = append(out, *t)
		}
	}
	slices.SortStableFunc(out, func(a, b MaterialTotal) int { return cmp.Compare(b.Total, a.Total) })
	return year, out
}
