// Package chart turns a language distribution into pie-slice geometry and a
// matching legend.
//
// Angles are in degrees and grow clockwise from the positive x axis, which is
// the direction SVG's y-down coordinate system gives for a positive sweep.
package chart

import (
	"fmt"
	"math"
	"strconv"

	"github.com/vukan322/ghcard/internal/core"
)

// DegreesPerPercent maps one percentage point to its share of a full turn.
const DegreesPerPercent = 360.0 / 100.0

const fullTurnEpsilon = 1e-9

type Point struct {
	X, Y float64
}

type Slice struct {
	Language   string
	Percentage float64
	Color      string

	StartAngle float64
	EndAngle   float64
	LargeArc   bool
	// Full is set when the slice covers the whole circle; its arc endpoints
	// coincide and it has to be drawn as a circle instead.
	Full bool

	Center Point
	Radius float64
	Start  Point
	End    Point
}

func (s Slice) Width() float64 {
	return s.EndAngle - s.StartAngle
}

// PathData returns the SVG path for the wedge: move to the center, line to
// the start point, arc to the end point, close.
func (s Slice) PathData() string {
	large := 0
	if s.LargeArc {
		large = 1
	}
	return fmt.Sprintf("M%s,%s L%s,%s A%s,%s 0 %d,1 %s,%s Z",
		num(s.Center.X), num(s.Center.Y),
		num(s.Start.X), num(s.Start.Y),
		num(s.Radius), num(s.Radius),
		large,
		num(s.End.X), num(s.End.Y),
	)
}

type LegendEntry struct {
	Language   string
	Percentage float64
	Color      string
}

type Pie struct {
	Center Point
	Radius float64
	Slices []Slice
	Legend []LegendEntry
}

// EndAngle is the cumulative angle after the last slice, 0 for an empty pie.
func (p Pie) EndAngle() float64 {
	if len(p.Slices) == 0 {
		return 0
	}
	return p.Slices[len(p.Slices)-1].EndAngle
}

// Build lays the distribution out as consecutive slices starting at 0°. Each
// slice starts where the previous one ended and is pct × 3.6° wide. Colors
// cycle through palette in order.
func Build(dist []core.LanguageStat, center Point, radius float64, palette Palette) Pie {
	if len(palette) == 0 {
		palette = DefaultPalette
	}

	pie := Pie{
		Center: center,
		Radius: radius,
		Slices: make([]Slice, 0, len(dist)),
		Legend: make([]LegendEntry, 0, len(dist)),
	}

	var angle float64
	for i, ls := range dist {
		width := ls.Percentage * DegreesPerPercent
		start := angle
		end := start + width
		color := palette[i%len(palette)]

		pie.Slices = append(pie.Slices, Slice{
			Language:   ls.Name,
			Percentage: ls.Percentage,
			Color:      color,
			StartAngle: start,
			EndAngle:   end,
			LargeArc:   width > 180,
			Full:       width >= 360-fullTurnEpsilon,
			Center:     center,
			Radius:     radius,
			Start:      project(center, radius, start),
			End:        project(center, radius, end),
		})
		pie.Legend = append(pie.Legend, LegendEntry{
			Language:   ls.Name,
			Percentage: ls.Percentage,
			Color:      color,
		})

		angle = end
	}

	return pie
}

func project(c Point, r, deg float64) Point {
	rad := deg * math.Pi / 180
	return Point{
		X: c.X + r*math.Cos(rad),
		Y: c.Y + r*math.Sin(rad),
	}
}

func num(f float64) string {
	return strconv.FormatFloat(round(f, 4), 'f', -1, 64)
}

func round(f float64, places int) float64 {
	p := math.Pow(10, float64(places))
	v := math.Round(f*p) / p
	if v == 0 {
		// avoid "-0"
		return 0
	}
	return v
}
