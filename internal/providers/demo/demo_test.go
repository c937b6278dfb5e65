package demo

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vukan322/ghcard/internal/core"
)

func fixedClock() Option {
	return WithClock(func() time.Time { return time.Date(2026, time.May, 1, 0, 0, 0, 0, time.UTC) })
}

func TestDemoProvider_Fetch(t *testing.T) {
	d := New(fixedClock())

	stats, err := d.Fetch(context.Background(), "someone")
	require.NoError(t, err)

	assert.Equal(t, "demo", d.Name())
	assert.Equal(t, "someone", stats.Login)
	assert.Equal(t, core.EmailNotPublic, stats.Email)
	assert.Equal(t, 32, stats.Stars)
	assert.Equal(t, "demo/ghcard", stats.FeaturedRepo)
	assert.Equal(t, 92, stats.Commits)
	assert.Equal(t, 2026, stats.Year)
	require.NotEmpty(t, stats.Languages)
	assert.Equal(t, "Go", stats.Languages[0].Name)
}

func TestDemoProvider_Options(t *testing.T) {
	tests := []struct {
		name     string
		opts     []Option
		featured string
		stars    int
		year     int
		langs    int
		first    string
	}{
		{
			name:     "defaults",
			featured: "demo/ghcard",
			stars:    32,
			year:     2026,
			langs:    5,
			first:    "Go",
		},
		{
			name:     "forks and top languages",
			opts:     []Option{WithForkPolicy(core.ForksIncluded), WithTopLanguages(2)},
			featured: "demo/upstream",
			stars:    1232,
			year:     2026,
			langs:    2,
			first:    "C",
		},
		{
			name:     "year",
			opts:     []Option{WithYear(2020)},
			featured: "demo/ghcard",
			stars:    32,
			year:     2020,
			langs:    5,
			first:    "Go",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := New(append([]Option{fixedClock()}, tt.opts...)...)

			stats, err := d.Fetch(context.Background(), "someone")
			require.NoError(t, err)

			assert.Equal(t, tt.featured, stats.FeaturedRepo)
			assert.Equal(t, tt.stars, stats.Stars)
			assert.Equal(t, tt.year, stats.Year)
			require.Len(t, stats.Languages, tt.langs)
			assert.Equal(t, tt.first, stats.Languages[0].Name)
		})
	}
}

func TestDemoProvider_UsesLogger(t *testing.T) {
	var buf bytes.Buffer
	d := New(fixedClock(), WithLogger(log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel})))

	_, err := d.Fetch(context.Background(), "someone")
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "fetched languages")
	assert.Contains(t, buf.String(), "demo/ghcard")
}
