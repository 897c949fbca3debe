package present

import (
	"fmt"

	"github.com/KaramelBytes/mbtiboard/internal/dataset"
	"github.com/KaramelBytes/mbtiboard/internal/query"
)

// Kind names which dashboard view a View was built for.
type Kind string

const (
	KindRank    Kind = "rank"
	KindProfile Kind = "profile"
)

// View is a fully formatted table plus chart, ready for any renderer.
type View struct {
	Kind        Kind       `json:"kind"`
	Title       string     `json:"title"`
	Subject     string     `json:"subject"`
	LabelHeader string     `json:"label_header"`
	ValueHeader string     `json:"value_header"`
	Rows        []TableRow `json:"rows"`
	Chart       Series     `json:"chart"`
}

// RankView presents a top-N result. The table keeps the query's order; the
// chart is always drawn largest first.
func RankView(typ dataset.Type, entries []query.RankedEntry) View {
	in := FromRanked(entries)
	return View{
		Kind:        KindRank,
		Title:       fmt.Sprintf("Top %d countries for %s", len(entries), typ),
		Subject:     typ.String(),
		LabelHeader: "Country",
		ValueHeader: typ.String() + " ratio (%)",
		Rows:        PercentTable(in),
		Chart:       ChartSeries(sortedDescending(in)),
	}
}

// ProfileView presents one country's 16 ratios in the order given.
func ProfileView(country string, entries []query.ProfileEntry) View {
	in := FromProfile(entries)
	return View{
		Kind:        KindProfile,
		Title:       fmt.Sprintf("MBTI distribution for %s", country),
		Subject:     country,
		LabelHeader: "Type",
		ValueHeader: "Ratio (%)",
		Rows:        PercentTable(in),
		Chart:       ChartSeries(in),
	}
}
