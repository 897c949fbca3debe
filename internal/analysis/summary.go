package analysis

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/KaramelBytes/mbtiboard/internal/dataset"
	"github.com/KaramelBytes/mbtiboard/internal/present"
)

// Options controls the dataset summary.
type Options struct {
	// SampleRows determines how many rows from the top of the table to include.
	SampleRows int
	// SumTolerance is the allowed distance of a row's ratio total from 1.
	SumTolerance float64
	// Outliers counts robust Z-score (MAD) outliers per type column.
	Outliers         bool
	OutlierThreshold float64
	// MaxWarnings caps the per-row notes; 0 means unlimited.
	MaxWarnings int
}

// DefaultOptions returns reasonable defaults for a dataset summary.
func DefaultOptions() Options {
	return Options{
		SampleRows:       5,
		SumTolerance:     0.02,
		Outliers:         true,
		OutlierThreshold: 3.5,
		MaxWarnings:      20,
	}
}

// Report summarizes a loaded table.
type Report struct {
	Name     string          `json:"name"`
	Rows     int             `json:"rows"`
	Cols     []ColumnSummary `json:"columns"`
	Samples  []dataset.Row   `json:"-"`
	Warnings []string        `json:"warnings"`
}

// ColumnSummary captures statistics of one type column.
type ColumnSummary struct {
	Type dataset.Type `json:"type"`
	Min  float64      `json:"min"`
	Max  float64      `json:"max"`
	Mean float64      `json:"mean"`
	Std  float64      `json:"std"`
	// Countries holding the extremes; first in source order on ties.
	MinCountry string `json:"min_country"`
	MaxCountry string `json:"max_country"`
	// Outliers (robust Z via MAD)
	OutliersCount    int      `json:"outliers_count"`
	OutlierCountries []string `json:"outlier_countries,omitempty"`
	OutlierThreshold float64  `json:"outlier_threshold,omitempty"`
}

// Summarize computes per-type statistics and flags rows whose ratios are out
// of range or do not total 1. Flagged rows are reported, never altered.
func Summarize(t *dataset.Table, opt Options) *Report {
	rep := &Report{Name: t.Source(), Rows: t.Len()}
	sampleRows := opt.SampleRows
	if sampleRows <= 0 {
		sampleRows = 5
	}
	rep.Samples = t.Head(sampleRows)

	type colAcc struct {
		n        int
		mean, m2 float64
		min, max float64
		minAt    string
		maxAt    string
		vals     []float64
	}
	cols := make([]*colAcc, dataset.NumTypes)
	for i := range cols {
		cols[i] = &colAcc{min: math.Inf(1), max: math.Inf(-1), vals: make([]float64, 0, t.Len())}
	}

	tol := opt.SumTolerance
	if tol <= 0 {
		tol = 0.02
	}
	var notes []string
	for _, row := range t.Rows() {
		var bad []string
		for _, typ := range dataset.AllTypes() {
			x := row.Ratio(typ)
			c := cols[typ]
			// Welford update
			c.n++
			if x < c.min {
				c.min, c.minAt = x, row.Country
			}
			if x > c.max {
				c.max, c.maxAt = x, row.Country
			}
			delta := x - c.mean
			c.mean += delta / float64(c.n)
			c.m2 += delta * (x - c.mean)
			c.vals = append(c.vals, x)
			if x < 0 || x > 1 {
				bad = append(bad, fmt.Sprintf("%s=%g", typ, x))
			}
		}
		if len(bad) > 0 {
			notes = append(notes, fmt.Sprintf("%s: ratios outside [0,1]: %s", row.Country, strings.Join(bad, ", ")))
		}
		if s := row.Sum(); math.Abs(s-1) > tol {
			notes = append(notes, fmt.Sprintf("%s: ratios sum to %.4f (expected 1 ± %.2f)", row.Country, s, tol))
		}
	}
	if opt.MaxWarnings > 0 && len(notes) > opt.MaxWarnings {
		extra := len(notes) - opt.MaxWarnings
		notes = append(notes[:opt.MaxWarnings], fmt.Sprintf("... and %d more", extra))
	}
	rep.Warnings = notes

	if t.Len() == 0 {
		return rep
	}
	countries := t.Countries()
	rep.Cols = make([]ColumnSummary, 0, dataset.NumTypes)
	for _, typ := range dataset.AllTypes() {
		c := cols[typ]
		s := ColumnSummary{Type: typ, Min: c.min, Max: c.max, Mean: c.mean, MinCountry: c.minAt, MaxCountry: c.maxAt}
		if c.n > 1 {
			s.Std = math.Sqrt(c.m2 / float64(c.n-1))
		}
		if opt.Outliers && len(c.vals) >= 8 {
			thr := opt.OutlierThreshold
			if thr <= 0 {
				thr = 3.5
			}
			median, mad := medianMAD(c.vals)
			if mad > 0 {
				for i, v := range c.vals {
					if math.Abs(0.6745*(v-median)/mad) > thr {
						s.OutliersCount++
						s.OutlierCountries = append(s.OutlierCountries, countries[i])
					}
				}
			}
			s.OutlierThreshold = thr
		}
		rep.Cols = append(rep.Cols, s)
	}
	return rep
}

// Markdown renders a compact report suitable for standalone docs.
func (r *Report) Markdown() string {
	var b strings.Builder
	b.WriteString("[DATASET SUMMARY]\n")
	if r.Name != "" {
		b.WriteString(fmt.Sprintf("Source: %s\n", r.Name))
	}
	b.WriteString(fmt.Sprintf("Rows: %d\n", r.Rows))
	b.WriteString(fmt.Sprintf("Type columns: %d\n\n", dataset.NumTypes))

	if len(r.Cols) > 0 {
		b.WriteString("[SCHEMA]\n")
		for _, c := range r.Cols {
			b.WriteString(fmt.Sprintf("- %s: min %s%% (%s), max %s%% (%s), mean %s%%, std %.4g",
				c.Type, present.Percent(c.Min, 2), c.MinCountry, present.Percent(c.Max, 2), c.MaxCountry,
				present.Percent(c.Mean, 2), c.Std))
			if c.OutlierThreshold > 0 {
				b.WriteString(fmt.Sprintf("; outliers: %d above |z|>%.1f", c.OutliersCount, c.OutlierThreshold))
				if len(c.OutlierCountries) > 0 {
					shown := c.OutlierCountries
					if len(shown) > 5 {
						shown = shown[:5]
					}
					b.WriteString(" (" + strings.Join(shown, ", ") + ")")
				}
			}
			b.WriteString("\n")
		}
	}

	if len(r.Samples) > 0 {
		b.WriteString("\n[HEAD AND SAMPLE ROWS]\n")
		b.WriteString("| " + dataset.CountryColumn)
		for _, l := range dataset.Labels() {
			b.WriteString(" | " + l)
		}
		b.WriteString(" |\n|")
		for i := 0; i <= dataset.NumTypes; i++ {
			b.WriteString(" --- |")
		}
		b.WriteString("\n")
		for _, row := range r.Samples {
			b.WriteString("| " + safeVal(row.Country))
			for _, v := range row.Ratios {
				b.WriteString(fmt.Sprintf(" | %.4g", v))
			}
			b.WriteString(" |\n")
		}
	}
	if len(r.Warnings) > 0 {
		b.WriteString("\n[NOTES]\n")
		for _, w := range r.Warnings {
			b.WriteString("- ")
			b.WriteString(w)
			b.WriteString("\n")
		}
	}
	return b.String()
}

func safeVal(s string) string { return strings.ReplaceAll(strings.ReplaceAll(s, "\n", " "), "|", "/") }

// medianMAD computes median and MAD (median absolute deviation) of values.
func medianMAD(vals []float64) (median, mad float64) {
	if len(vals) == 0 {
		return 0, 0
	}
	cp := make([]float64, len(vals))
	copy(cp, vals)
	sort.Float64s(cp)
	median = quantile(cp, 0.5)
	dev := make([]float64, len(cp))
	for i, v := range cp {
		dev[i] = math.Abs(v - median)
	}
	sort.Float64s(dev)
	mad = quantile(dev, 0.5)
	return
}

func quantile(sorted []float64, q float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if q <= 0 {
		return sorted[0]
	}
	if q >= 1 {
		return sorted[len(sorted)-1]
	}
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	w := pos - float64(lo)
	return sorted[lo]*(1-w) + sorted[hi]*w
}
