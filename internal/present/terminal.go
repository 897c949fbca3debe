package present

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/KaramelBytes/mbtiboard/internal/dataset"
)

// Pastel palette for per-type bars (ColorBrewer Set3).
var palette = []lipgloss.Color{
	"#8DD3C7", "#FFFFB3", "#BEBADA", "#FB8072", "#80B1D3", "#FDB462",
	"#B3DE69", "#FCCDE5", "#D9D9D9", "#BC80BD", "#CCEBC5", "#FFED6F",
}

// Styles holds the lipgloss styles used by the terminal renderer.
type Styles struct {
	Title  lipgloss.Style
	Header lipgloss.Style
	Body   lipgloss.Style
	Muted  lipgloss.Style
	Bar    lipgloss.Style
}

// DefaultStyles returns the standard terminal styles.
func DefaultStyles() Styles {
	return Styles{
		Title:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#8BC34A")).MarginBottom(1),
		Header: lipgloss.NewStyle().Bold(true).Padding(0, 1),
		Body:   lipgloss.NewStyle().Padding(0, 1),
		Muted:  lipgloss.NewStyle().Foreground(lipgloss.Color("#6b7280")),
		Bar:    lipgloss.NewStyle().Foreground(lipgloss.Color("#4db6ac")),
	}
}

// Terminal renders a view as a styled table and a horizontal bar chart.
func Terminal(v View, barWidth int, styles Styles) string {
	var sb strings.Builder
	sb.WriteString(styles.Title.Render(v.Title))
	sb.WriteString("\n")

	headers := []string{"#", v.LabelHeader, v.ValueHeader}
	rows := make([][]string, len(v.Rows))
	for i, r := range v.Rows {
		rows[i] = []string{strconv.Itoa(i + 1), r.Label, r.Percent}
	}
	sb.WriteString(renderTable(headers, rows, []lipgloss.Position{lipgloss.Right, lipgloss.Left, lipgloss.Right}, styles))
	sb.WriteString("\n")
	sb.WriteString(renderChart(v, barWidth, styles))
	return sb.String()
}

// RenderTable draws a plain header/rows grid with the given styles.
func RenderTable(headers []string, rows [][]string, styles Styles) string {
	return renderTable(headers, rows, nil, styles)
}

func renderTable(headers []string, rows [][]string, align []lipgloss.Position, styles Styles) string {
	if len(headers) == 0 {
		return ""
	}
	colWidths := make([]int, len(headers))
	for i, h := range headers {
		colWidths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(colWidths) {
				if w := lipgloss.Width(cell); w > colWidths[i] {
					colWidths[i] = w
				}
			}
		}
	}
	// lipgloss widths include padding
	for i := range colWidths {
		colWidths[i] += 2
	}
	sep := styles.Muted.Render("|")

	var sb strings.Builder
	for i, h := range headers {
		sb.WriteString(styles.Header.Width(colWidths[i]).Render(h))
		if i < len(headers)-1 {
			sb.WriteString(sep)
		}
	}
	sb.WriteString("\n")
	total := len(headers) - 1
	for _, w := range colWidths {
		total += w
	}
	sb.WriteString(styles.Muted.Render(strings.Repeat("-", total)))
	sb.WriteString("\n")
	for _, row := range rows {
		for i := range headers {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			st := styles.Body.Width(colWidths[i])
			if i < len(align) {
				st = st.Align(align[i])
			}
			sb.WriteString(st.Render(cell))
			if i < len(headers)-1 {
				sb.WriteString(sep)
			}
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func renderChart(v View, barWidth int, styles Styles) string {
	if barWidth <= 0 {
		barWidth = DefaultBarWidth
	}
	labelW := 0
	for _, p := range v.Chart.Points {
		if w := lipgloss.Width(p.Category); w > labelW {
			labelW = w
		}
	}
	label := lipgloss.NewStyle().Width(labelW).Align(lipgloss.Right)
	var sb strings.Builder
	for _, p := range v.Chart.Points {
		bar := strings.Repeat("█", BarLength(p.Value, v.Chart.AxisMax, barWidth))
		sb.WriteString(label.Render(p.Category))
		sb.WriteString(styles.Muted.Render(" │"))
		sb.WriteString(barStyle(v.Kind, p.Category, styles).Render(bar))
		sb.WriteString(" ")
		sb.WriteString(p.Label)
		sb.WriteString("\n")
	}
	sb.WriteString(styles.Muted.Render(strings.Repeat(" ", labelW) + " └ axis 0–" + Percent(v.Chart.AxisMax, 0) + "%"))
	sb.WriteString("\n")
	return sb.String()
}

// barStyle colors profile bars per type; rank bars share one color.
func barStyle(kind Kind, category string, styles Styles) lipgloss.Style {
	if kind != KindProfile {
		return styles.Bar
	}
	typ, err := dataset.ParseType(category)
	if err != nil {
		return styles.Bar
	}
	return lipgloss.NewStyle().Foreground(palette[int(typ)%len(palette)])
}
