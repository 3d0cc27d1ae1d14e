// Package analytics turns the Victorian waste datasets into the series the
// analytics view charts: yearly generation trends and a per-material
// breakdown by source sector.
//
// Two CSV files feed it. The summary file has one row per financial year;
// the detail file has one row per year, material and sector. When either
// file cannot be read the package falls back to a built-in snapshot of the
// published figures so callers always have something to show.
package analytics
