package analytics

import "slices"

var fallbackTrends = []YearTrend{
	{Year: "2015-16", TotalGeneration: 12.33, Disposal: 4.14, Recovered: 7.02, Exports: 1.17, DiversionRate: 66.42},
	{Year: "2016-17", TotalGeneration: 12.62, Disposal: 4.20, Recovered: 7.26, Exports: 1.16, DiversionRate: 66.72},
	{Year: "2017-18", TotalGeneration: 14.04, Disposal: 4.39, Recovered: 8.33, Exports: 1.32, DiversionRate: 68.72},
	{Year: "2018-19", TotalGeneration: 14.76, Disposal: 4.54, Recovered: 9.05, Exports: 1.17, DiversionRate: 69.26},
	{Year: "2019-20", TotalGeneration: 15.49, Disposal: 4.76, Recovered: 9.57, Exports: 1.16, DiversionRate: 69.25},
	{Year: "2020-21", TotalGeneration: 15.81, Disposal: 4.69, Recovered: 10.11, Exports: 1.01, DiversionRate: 70.32},
	{Year: "2021-22", TotalGeneration: 14.43, Disposal: 4.53, Recovered: 8.87, Exports: 1.04, DiversionRate: 68.65},
	{Year: "2022-23", TotalGeneration: 14.46, Disposal: 4.52, Recovered: 9.03, Exports: 0.91, DiversionRate: 68.77},
	{Year: "2023-24", TotalGeneration: 14.23, Disposal: 4.34, Recovered: 8.81, Exports: 1.09, DiversionRate: 69.53},
}

var fallbackMaterials = []MaterialTotal{
	{Material: "Aggregate & Masonry", MSW: 0.245, CND: 8.5, CNI: 2.2, Total: 10.945},
	{Material: "Organics", MSW: 2.8, CND: 1.2, CNI: 0.5, Total: 4.5},
	{Material: "Paper & Cardboard", MSW: 1.5, CND: 0.8, CNI: 1.1, Total: 3.4},
	{Material: "Metals", MSW: 0.3, CND: 1.8, CNI: 0.9, Total: 3.0},
	{Material: "Plastic", MSW: 0.9, CND: 0.2, CNI: 0.4, Total: 1.5},
	{Material: "Glass", MSW: 0.4, CND: 0.1, CNI: 0.2, Total: 0.7},
	{Material: "Textiles", MSW: 0.2, CND: 0.1, CNI: 0.1, Total: 0.4},
	{Material: "Tyres & Rubber", MSW: 0.05, CND: 0.1, CNI: 0.15, Total: 0.3},
}

// FallbackTrends returns the built-in yearly series.
func FallbackTrends() []YearTrend { return slices.Clone(fallbackTrends) }

// FallbackMaterials returns the built-in material breakdown for DefaultMaterialYear.
func FallbackMaterials() []MaterialTotal { return slices.Clone(fallbackMaterials) }
