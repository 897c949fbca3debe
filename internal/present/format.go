// Package present turns query results into percentage tables and chart
// series, and renders them for the terminal, Markdown files, and JSON.
package present

import (
	"fmt"
	"math"
	"sort"

	"github.com/KaramelBytes/mbtiboard/internal/query"
)

// MinAxisMax is the smallest suggested chart axis bound, in ratio units.
const MinAxisMax = 0.25

// AxisHeadroom scales the largest ratio to leave room above the tallest bar.
const AxisHeadroom = 1.2

// Entry is a labeled ratio, the common shape of ranked and profile results.
type Entry struct {
	Label string
	Ratio float64
}

// TableRow is one display row. Ratio carries the untouched source value.
type TableRow struct {
	Label   string  `json:"label"`
	Ratio   float64 `json:"ratio"`
	Percent string  `json:"percent"`
}

// Point is one bar of a chart.
type Point struct {
	Category string  `json:"category"`
	Value    float64 `json:"value"`
	Label    string  `json:"label"`
}

// Series is a bar chart's data with a suggested upper bound for the value axis.
type Series struct {
	Points  []Point `json:"points"`
	AxisMax float64 `json:"axis_max"`
}

// FromRanked adapts rank results.
func FromRanked(in []query.RankedEntry) []Entry {
	out := make([]Entry, len(in))
	for i, e := range in {
		out[i] = Entry{Label: e.Country, Ratio: e.Ratio}
	}
	return out
}

// FromProfile adapts profile results.
func FromProfile(in []query.ProfileEntry) []Entry {
	out := make([]Entry, len(in))
	for i, e := range in {
		out[i] = Entry{Label: e.Type.String(), Ratio: e.Ratio}
	}
	return out
}

// Percent formats a ratio as a percentage with the given decimals, e.g.
// Percent(0.1234, 2) == "12.34".
func Percent(ratio float64, decimals int) string {
	return fmt.Sprintf("%.*f", decimals, ratio*100)
}

// PercentTable formats entries for tabular display with two decimals.
func PercentTable(entries []Entry) []TableRow {
	out := make([]TableRow, len(entries))
	for i, e := range entries {
		out[i] = TableRow{Label: e.Label, Ratio: e.Ratio, Percent: Percent(e.Ratio, 2)}
	}
	return out
}

// ChartSeries builds bar data in entry order, labeled with one decimal.
func ChartSeries(entries []Entry) Series {
	s := Series{Points: make([]Point, len(entries))}
	maxRatio := math.Inf(-1)
	for i, e := range entries {
		s.Points[i] = Point{Category: e.Label, Value: e.Ratio, Label: Percent(e.Ratio, 1) + "%"}
		if e.Ratio > maxRatio {
			maxRatio = e.Ratio
		}
	}
	s.AxisMax = AxisMax(maxRatio)
	return s
}

// AxisMax returns max(MinAxisMax, maxRatio*AxisHeadroom).
func AxisMax(maxRatio float64) float64 {
	return math.Max(MinAxisMax, maxRatio*AxisHeadroom)
}

// sortedDescending returns a copy of entries ordered by ratio, largest first.
func sortedDescending(entries []Entry) []Entry {
	out := make([]Entry, len(entries))
	copy(out, entries)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Ratio > out[j].Ratio })
	return out
}
