package render

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vukan322/ghcard/internal/chart"
	"github.com/vukan322/ghcard/internal/core"
)

func sampleStats() core.AccountStats {
	return core.AccountStats{
		Login:            "octo<cat>",
		Email:            core.EmailNotPublic,
		PublicRepos:      12,
		Followers:        34,
		Following:        5,
		Stars:            77,
		FeaturedRepo:     "octo/app & friends",
		ContributionNote: core.ContributionNote,
		Year:             2026,
		Commits:          128,
		Languages: []core.LanguageStat{
			{Name: "Go", Percentage: 60},
			{Name: "C++", Percentage: 40},
		},
		GeneratedAt: time.Date(2026, time.March, 9, 8, 0, 0, 0, time.UTC),
	}
}

func TestRenderSVG(t *testing.T) {
	out, err := RenderSVG(sampleStats(), Options{Palette: chart.Palette{"#aaa", "#bbb"}})
	require.NoError(t, err)
	s := string(out)

	assert.True(t, strings.HasPrefix(s, `<svg xmlns="http://www.w3.org/2000/svg" width="800" height="444">`))
	assert.Contains(t, s, "@octo&lt;cat&gt;")
	assert.Contains(t, s, "09 Mar 2026")
	assert.Contains(t, s, "octo/app &amp; friends")
	assert.Contains(t, s, "Not public")
	assert.Contains(t, s, ">34 / 5<")
	assert.Contains(t, s, "Commits in 2026:")
	assert.Contains(t, s, ">128<")
	assert.Contains(t, s, ">77<")
	assert.Contains(t, s, "Go (60.00%)")
	assert.Contains(t, s, "C++ (40.00%)")
	assert.Contains(t, s, `fill="#aaa"`)
	assert.Contains(t, s, `fill="#bbb"`)
	assert.Contains(t, s, `A80,80 0 1,1`)
	assert.Contains(t, s, `y="424"`)
	assert.Contains(t, s, "Generated automatically with the GitHub API")
	assert.Equal(t, 2, strings.Count(s, "<path "))
}

func TestRenderSVG_SingleLanguageDrawsCircle(t *testing.T) {
	stats := sampleStats()
	stats.Languages = []core.LanguageStat{{Name: "Go", Percentage: 100}}

	out, err := RenderSVG(stats, Options{Palette: chart.Palette{"#00ADD8"}})
	require.NoError(t, err)
	s := string(out)

	assert.NotContains(t, s, "<path ")
	assert.Contains(t, s, `<circle cx="600" cy="150" r="80" fill="#00ADD8" />`)
}

func TestRenderSVG_NoLanguages(t *testing.T) {
	stats := sampleStats()
	stats.Languages = nil

	out, err := RenderSVG(stats, Options{})
	require.NoError(t, err)
	s := string(out)

	assert.Contains(t, s, `height="400"`)
	assert.NotContains(t, s, "<path ")
}
