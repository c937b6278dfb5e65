package render

import (
	"fmt"
	"strconv"

	"github.com/vukan322/ghcard/internal/chart"
	"github.com/vukan322/ghcard/internal/core"
	"github.com/vukan322/ghcard/internal/render/svg"
)

const (
	svgWidth      = 800
	svgBaseHeight = 400

	labelX = 30
	valueX = 260
	rowTop = 80
	rowGap = 30

	pieCX     = 600
	pieCY     = 150
	pieRadius = 80

	legendTop      = 320
	legendStep     = 20
	legendHeight   = 22
	legendDotX     = 30
	legendDotR     = 5
	legendTextX    = 45
	footerFromBase = 20

	dateLayout = "02 Jan 2006"
)

const stylesheet = `
    .title { font: bold 24px sans-serif; fill: #24292e; }
    .label { font: 14px sans-serif; fill: #57606a; }
    .value { font: bold 14px sans-serif; fill: #0366d6; }
    .small { font: 12px sans-serif; fill: #57606a; }
`

type Options struct {
	// Palette colors the pie slices; nil means chart.DefaultPalette.
	Palette chart.Palette
}

type row struct {
	label string
	value string
}

func rows(stats core.AccountStats) []row {
	return []row{
		{"📅 Last updated:", stats.GeneratedAt.Format(dateLayout)},
		{"📌 Featured repository:", stats.FeaturedRepo},
		{"📈 Contributions (last year):", stats.ContributionNote},
		{"📧 Public email:", stats.Email},
		{"📁 Public repositories:", strconv.Itoa(stats.PublicRepos)},
		{"⭐ Total stars:", strconv.Itoa(stats.Stars)},
		{"👥 Followers / Following:", fmt.Sprintf("%d / %d", stats.Followers, stats.Following)},
		{fmt.Sprintf("📝 Commits in %d:", stats.Year), strconv.Itoa(stats.Commits)},
	}
}

func RenderSVG(stats core.AccountStats, opts Options) ([]byte, error) {
	pie := chart.Build(stats.Languages, chart.Point{X: pieCX, Y: pieCY}, pieRadius, opts.Palette)

	height := float64(svgBaseHeight + len(pie.Legend)*legendHeight)
	doc := &svg.Document{Width: svgWidth, Height: height}

	doc.Add(
		svg.Style{CSS: stylesheet},
		svg.Text{X: labelX, Y: 40, Class: "title", Content: "📊 GitHub Stats: @" + stats.Login},
	)

	for i, r := range rows(stats) {
		y := float64(rowTop + i*rowGap)
		doc.Add(
			svg.Text{X: labelX, Y: y, Class: "label", Content: r.label},
			svg.Text{X: valueX, Y: y, Class: "value", Content: r.value},
		)
	}

	doc.Add(svg.Comment("pie chart"), pieGroup(pie))
	doc.Add(svg.Comment("language legend"), legendGroup(pie.Legend))

	doc.Add(svg.Text{
		X:       labelX,
		Y:       height - footerFromBase,
		Class:   "small",
		Content: "Generated automatically with the GitHub API",
	})

	out, err := doc.Bytes()
	if err != nil {
		return nil, fmt.Errorf("render svg: %w", err)
	}
	return out, nil
}

func pieGroup(pie chart.Pie) svg.Group {
	g := svg.Group{Class: "pie"}
	for _, s := range pie.Slices {
		if s.Full {
			g.Children = append(g.Children, svg.Circle{CX: s.Center.X, CY: s.Center.Y, R: s.Radius, Fill: s.Color})
			continue
		}
		g.Children = append(g.Children, svg.Path{D: s.PathData(), Fill: s.Color})
	}
	return g
}

func legendGroup(entries []chart.LegendEntry) svg.Group {
	g := svg.Group{Class: "legend"}
	for i, e := range entries {
		y := float64(legendTop + i*legendStep)
		g.Children = append(g.Children,
			svg.Circle{CX: legendDotX, CY: y, R: legendDotR, Fill: e.Color},
			svg.Text{X: legendTextX, Y: y + 5, Class: "value", Content: fmt.Sprintf("%s (%.2f%%)", e.Language, e.Percentage)},
		)
	}
	return g
}
