package query

import (
	"sort"

	"github.com/KaramelBytes/mbtiboard/internal/dataset"
)

// ProfileEntry is one type's ratio within a country.
type ProfileEntry struct {
	Type  dataset.Type `json:"type"`
	Ratio float64      `json:"ratio"`
}

// Profile returns all 16 type ratios for country, sorted by ratio.
// Equal ratios keep type declaration order.
func Profile(t *dataset.Table, country string, sortDescending bool) ([]ProfileEntry, error) {
	row, err := t.Lookup(country)
	if err != nil {
		return nil, err
	}
	out := make([]ProfileEntry, 0, dataset.NumTypes)
	for _, typ := range dataset.AllTypes() {
		out = append(out, ProfileEntry{Type: typ, Ratio: row.Ratio(typ)})
	}
	if sortDescending {
		sort.SliceStable(out, func(i, j int) bool { return out[i].Ratio > out[j].Ratio })
	} else {
		sort.SliceStable(out, func(i, j int) bool { return out[i].Ratio < out[j].Ratio })
	}
	return out, nil
}
