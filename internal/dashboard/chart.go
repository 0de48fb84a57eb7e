package dashboard

import (
	"fmt"
	"strings"

	"github.com/sophiakit/sophiakit/internal/artifact"
)

const (
	chartWidth  = 720
	chartHeight = 220
	chartPad    = 12.0

	// Above this many samples the per-point dots clutter the line.
	maxChartDots = 60
)

type chartDot struct {
	X, Y string
}

// chartView is the precomputed geometry for the score-over-time SVG.
type chartView struct {
	Width      int
	Height     int
	Points     string // polyline points attribute
	Dots       []chartDot
	StartLabel string
	EndLabel   string
	MinScore   string
	MaxScore   string
}

// buildChart scales a sorted score series into the fixed viewBox. A flat or
// single-point series sits on the midline rather than dividing by zero.
func buildChart(points []artifact.ScorePoint) chartView {
	view := chartView{Width: chartWidth, Height: chartHeight}
	if len(points) == 0 {
		return view
	}

	minT, maxT := points[0].Time, points[len(points)-1].Time
	minS, maxS := points[0].Score, points[0].Score
	for _, p := range points[1:] {
		if p.Score < minS {
			minS = p.Score
		}
		if p.Score > maxS {
			maxS = p.Score
		}
	}

	spanT := maxT.Sub(minT).Seconds()
	spanS := maxS - minS
	plotW := float64(chartWidth) - 2*chartPad
	plotH := float64(chartHeight) - 2*chartPad

	var b strings.Builder
	for _, p := range points {
		x := chartPad + plotW/2
		if spanT > 0 {
			x = chartPad + p.Time.Sub(minT).Seconds()/spanT*plotW
		}
		y := chartPad + plotH/2
		if spanS > 0 {
			y = chartPad + (1-(p.Score-minS)/spanS)*plotH
		}
		fmt.Fprintf(&b, "%.1f,%.1f ", x, y)
		if len(points) <= maxChartDots {
			view.Dots = append(view.Dots, chartDot{
				X: fmt.Sprintf("%.1f", x),
				Y: fmt.Sprintf("%.1f", y),
			})
		}
	}

	view.Points = strings.TrimSpace(b.String())
	view.StartLabel = minT.Format("2006-01-02 15:04")
	view.EndLabel = maxT.Format("2006-01-02 15:04")
	view.MinScore = fmt.Sprintf("%.2f", minS)
	view.MaxScore = fmt.Sprintf("%.2f", maxS)
	return view
}
