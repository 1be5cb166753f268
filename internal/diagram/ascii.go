package diagram

import (
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/guptarohit/asciigraph"
)

// ProfileData holds a field magnitude profile sampled along a line.
type ProfileData struct {
	Title string

	// Position along the line for every sample (m)
	Positions []float64
	XLabel    string

	// |B| at every position (T). Analytical may be empty.
	Numerical  []float64
	Analytical []float64

	// Root mean square error between the two series (T), 0 if unknown
	RMSE float64
}

// Scale used for terminal charts; Tesla values are too small for the
// axis labels.
const microTesla = 1e6

// DrawFieldProfile renders the profile as a terminal line chart. The
// numerical series is drawn first, the analytical one (if any) in red.
func DrawFieldProfile(data ProfileData, width, height int) string {
	if len(data.Numerical) == 0 {
		return ""
	}

	series := [][]float64{scaled(data.Numerical, microTesla)}
	colors := []asciigraph.AnsiColor{asciigraph.Blue}
	if len(data.Analytical) == len(data.Numerical) {
		series = append(series, scaled(data.Analytical, microTesla))
		colors = append(colors, asciigraph.Red)
	}

	caption := "|B| (µT)"
	if len(data.Positions) > 0 {
		caption = fmt.Sprintf("|B| (µT) from %s = %.3g to %.3g m",
			axisName(data.XLabel), data.Positions[0], data.Positions[len(data.Positions)-1])
	}

	var sb strings.Builder
	sb.WriteString("\n")
	if data.Title != "" {
		sb.WriteString("  " + data.Title + "\n")
		sb.WriteString("  " + strings.Repeat("─", utf8.RuneCountInString(data.Title)) + "\n\n")
	}
	sb.WriteString(asciigraph.PlotMany(series,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Precision(3),
		asciigraph.Offset(4),
		asciigraph.SeriesColors(colors...),
		asciigraph.Caption(caption),
	))
	sb.WriteString("\n")

	if len(series) > 1 {
		sb.WriteString("\n  Legend: blue = numerical, red = analytical\n")
	}
	return sb.String()
}

// scaled multiplies v by k. Infinite samples become NaN, which asciigraph
// leaves as gaps.
func scaled(v []float64, k float64) []float64 {
	out := make([]float64, len(v))
	for i, x := range v {
		if math.IsInf(x, 0) {
			x = math.NaN()
		}
		out[i] = x * k
	}
	return out
}

func axisName(label string) string {
	if label == "" {
		return "s"
	}
	return label
}

// DrawSummaryBox creates a summary box for results
func DrawSummaryBox(title string, lines []string) string {
	var sb strings.Builder

	maxLen := utf8.RuneCountInString(title)
	for _, line := range lines {
		maxLen = max(maxLen, utf8.RuneCountInString(line))
	}
	maxLen += 4

	border := strings.Repeat("═", maxLen)
	sb.WriteString(fmt.Sprintf("  ╔%s╗\n", border))
	sb.WriteString(fmt.Sprintf("  ║  %-*s  ║\n", maxLen-4, title))
	sb.WriteString(fmt.Sprintf("  ╠%s╣\n", border))
	for _, line := range lines {
		sb.WriteString(fmt.Sprintf("  ║  %-*s  ║\n", maxLen-4, line))
	}
	sb.WriteString(fmt.Sprintf("  ╚%s╝\n", border))

	return sb.String()
}
