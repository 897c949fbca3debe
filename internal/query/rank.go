// Package query derives the rank and profile views from a loaded table.
// Every function here is a pure function of its inputs.
package query

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/KaramelBytes/mbtiboard/internal/dataset"
)

// ErrInvalidCount is returned when a rank is requested for n <= 0.
var ErrInvalidCount = errors.New("count must be positive")

// Order selects the direction of a result sequence.
type Order int

const (
	Descending Order = iota
	Ascending
)

func (o Order) String() string {
	if o == Ascending {
		return "asc"
	}
	return "desc"
}

// ParseOrder accepts "asc"/"ascending" or "desc"/"descending" (any case).
// Empty input means descending.
func ParseOrder(s string) (Order, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "desc", "descending":
		return Descending, nil
	case "asc", "ascending":
		return Ascending, nil
	default:
		return 0, fmt.Errorf("unknown order %q (use asc|desc)", s)
	}
}

// RankedEntry is one country's value for the ranked type.
type RankedEntry struct {
	Country string  `json:"country"`
	Ratio   float64 `json:"ratio"`
}

// TopN returns the n countries with the highest ratio for typ, then orders
// that selection by order. n is clamped to the table size. Ties keep source
// row order in both the selection and the final ordering.
func TopN(t *dataset.Table, typ dataset.Type, n int, order Order) ([]RankedEntry, error) {
	if !typ.Valid() {
		return nil, fmt.Errorf("%w: %v", dataset.ErrUnknownType, typ)
	}
	if n <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidCount, n)
	}
	all := make([]RankedEntry, t.Len())
	for i := range all {
		r := t.At(i)
		all[i] = RankedEntry{Country: r.Country, Ratio: r.Ratio(typ)}
	}
	sort.SliceStable(all, func(i, j int) bool { return all[i].Ratio > all[j].Ratio })
	if n > len(all) {
		n = len(all)
	}
	top := all[:n:n]
	if order == Ascending {
		// Re-sort rather than reverse so equal values stay in source order.
		sort.SliceStable(top, func(i, j int) bool { return top[i].Ratio < top[j].Ratio })
	}
	return top, nil
}

// TopNLabel is TopN with the type given as its label.
func TopNLabel(t *dataset.Table, label string, n int, order Order) ([]RankedEntry, error) {
	typ, err := dataset.ParseType(label)
	if err != nil {
		return nil, err
	}
	return TopN(t, typ, n, order)
}
