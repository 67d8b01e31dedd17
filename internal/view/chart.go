package view

import (
	"fmt"
	"strings"

	"github.com/vfg2006/studio-console/internal/domain"
	"github.com/vfg2006/studio-console/internal/usecases/dashboarding"
	cmp "maragu.dev/gomponents"
	g "maragu.dev/gomponents/html"
)

const (
	chartWidth   = 600.0
	chartHeight  = 240.0
	chartPadding = 32.0
)

// LineChart draws chart.Points as an SVG polyline of income per month.
func LineChart(chart dashboarding.Chart) cmp.Node {
	coords := chartCoordinates(chart.Points)

	points := make([]string, len(coords))
	for i, c := range coords {
		points[i] = fmt.Sprintf("%.1f,%.1f", c[0], c[1])
	}

	return g.Figure(
		g.Class("chart"),
		g.Data("x-key", chart.XKey),
		g.Data("line", chart.Line),
		g.SVG(
			cmp.Attr("viewBox", fmt.Sprintf("0 0 %.0f %.0f", chartWidth, chartHeight)),
			g.Width("100%"),
			g.Role("img"),
			g.Aria("label", "Income per month"),
			svgEl("line",
				cmp.Attr("x1", fmt.Sprintf("%.1f", chartPadding)),
				cmp.Attr("y1", fmt.Sprintf("%.1f", chartHeight-chartPadding)),
				cmp.Attr("x2", fmt.Sprintf("%.1f", chartWidth-chartPadding)),
				cmp.Attr("y2", fmt.Sprintf("%.1f", chartHeight-chartPadding)),
				cmp.Attr("stroke", "#d0d4de"),
			),
			cmp.If(len(points) > 0, svgEl("polyline",
				cmp.Attr("points", strings.Join(points, " ")),
				cmp.Attr("fill", "none"),
				cmp.Attr("stroke", "#5b5bd6"),
				cmp.Attr("stroke-width", "2"),
			)),
			chartMarkers(chart.Points, coords),
		),
	)
}

func chartMarkers(points []domain.EarningsGraphPoint, coords [][2]float64) cmp.Node {
	markers := make(cmp.Group, 0, len(points))
	for i, p := range points {
		x := fmt.Sprintf("%.1f", coords[i][0])
		markers = append(markers, svgEl("g",
			svgEl("circle",
				cmp.Attr("cx", x),
				cmp.Attr("cy", fmt.Sprintf("%.1f", coords[i][1])),
				cmp.Attr("r", "3"),
				cmp.Attr("fill", "#5b5bd6"),
				svgEl("title", cmp.Text(fmt.Sprintf("%s: %.2f", p.Month, p.Income))),
			),
			svgEl("text",
				cmp.Attr("x", x),
				cmp.Attr("y", fmt.Sprintf("%.1f", chartHeight-chartPadding/3)),
				cmp.Attr("text-anchor", "middle"),
				cmp.Attr("font-size", "11"),
				cmp.Text(p.Month),
			),
		))
	}
	return markers
}

// chartCoordinates maps points into the drawing area. Income is scaled to the
// largest value; a single point is centered.
func chartCoordinates(points []domain.EarningsGraphPoint) [][2]float64 {
	coords := make([][2]float64, len(points))
	if len(points) == 0 {
		return coords
	}

	maxIncome := 0.0
	for _, p := range points {
		if p.Income > maxIncome {
			maxIncome = p.Income
		}
	}

	plotWidth := chartWidth - 2*chartPadding
	plotHeight := chartHeight - 2*chartPadding
	baseline := chartHeight - chartPadding

	for i, p := range points {
		x := chartWidth / 2
		if len(points) > 1 {
			x = chartPadding + float64(i)*plotWidth/float64(len(points)-1)
		}

		y := baseline
		if maxIncome > 0 && p.Income > 0 {
			y = baseline - p.Income/maxIncome*plotHeight
		}

		coords[i] = [2]float64{x, y}
	}

	return coords
}

func svgEl(name string, children ...cmp.Node) cmp.Node {
	return cmp.El(name, children...)
}
