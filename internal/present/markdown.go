package present

import (
	"fmt"
	"math"
	"strings"
)

// DefaultBarWidth is the character width of a full-axis bar.
const DefaultBarWidth = 40

// Markdown renders a view as a Markdown table followed by a fenced text bar chart.
func Markdown(v View) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("## %s\n\n", v.Title))
	b.WriteString(fmt.Sprintf("| # | %s | %s |\n", safeCell(v.LabelHeader), safeCell(v.ValueHeader)))
	b.WriteString("| ---: | --- | ---: |\n")
	for i, r := range v.Rows {
		b.WriteString(fmt.Sprintf("| %d | %s | %s |\n", i+1, safeCell(r.Label), r.Percent))
	}
	if len(v.Chart.Points) > 0 {
		b.WriteString("\n```text\n")
		b.WriteString(TextChart(v.Chart, DefaultBarWidth))
		b.WriteString("```\n")
	}
	return b.String()
}

// TextChart draws horizontal bars scaled against the series' AxisMax.
func TextChart(s Series, width int) string {
	if width <= 0 {
		width = DefaultBarWidth
	}
	labelW := 0
	for _, p := range s.Points {
		if n := len([]rune(p.Category)); n > labelW {
			labelW = n
		}
	}
	var b strings.Builder
	for _, p := range s.Points {
		pad := labelW - len([]rune(p.Category))
		b.WriteString(p.Category)
		b.WriteString(strings.Repeat(" ", pad))
		b.WriteString(" |")
		b.WriteString(strings.Repeat("█", BarLength(p.Value, s.AxisMax, width)))
		b.WriteString(" ")
		b.WriteString(p.Label)
		b.WriteString("\n")
	}
	return b.String()
}

// BarLength scales value into [0, width] cells relative to axisMax.
func BarLength(value, axisMax float64, width int) int {
	if axisMax <= 0 || value <= 0 || width <= 0 {
		return 0
	}
	n := int(math.Round(value / axisMax * float64(width)))
	if n > width {
		n = width
	}
	return n
}

func safeCell(s string) string {
	return strings.ReplaceAll(strings.ReplaceAll(s, "\n", " "), "|", "/")
}
