package demo

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vukan322/ghcard/internal/core"
)

// DemoProvider serves a fixed account so the card can be rendered offline.
// It runs the same aggregation as the GitHub provider.
type DemoProvider struct {
	forks  core.ForkPolicy
	topN   int
	year   int
	logger *log.Logger
	now    func() time.Time
}

// Option configures a DemoProvider. The set mirrors the GitHub provider's
// aggregation options so --demo honors the same flags.
type Option func(*DemoProvider)

func WithForkPolicy(fp core.ForkPolicy) Option {
	return func(d *DemoProvider) { d.forks = fp }
}

func WithTopLanguages(n int) Option {
	return func(d *DemoProvider) { d.topN = n }
}

// WithYear counts commits since January 1 of year instead of the current year.
func WithYear(year int) Option {
	return func(d *DemoProvider) { d.year = year }
}

func WithLogger(l *log.Logger) Option {
	return func(d *DemoProvider) { d.logger = l }
}

func WithClock(now func() time.Time) Option {
	return func(d *DemoProvider) { d.now = now }
}

func New(opts ...Option) *DemoProvider {
	d := &DemoProvider{
		logger: log.Default(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

func (d *DemoProvider) Name() string {
	return "demo"
}

var repos = []core.Repository{
	{Name: "ghcard", FullName: "demo/ghcard", Stars: 21},
	{Name: "dotfiles", FullName: "demo/dotfiles", Stars: 3},
	{Name: "tiny-lsp", FullName: "demo/tiny-lsp", Stars: 8},
	{Name: "upstream", FullName: "demo/upstream", Stars: 1200, Fork: true},
}

var languages = map[string]map[string]int64{
	"ghcard":   {"Go": 48210, "Makefile": 640},
	"dotfiles": {"Shell": 5120, "Lua": 7730},
	"tiny-lsp": {"TypeScript": 18400, "Go": 2100},
	"upstream": {"C": 900000},
}

var commits = map[string]int{
	"ghcard":   57,
	"dotfiles": 12,
	"tiny-lsp": 23,
	"upstream": 400,
}

func (d *DemoProvider) Languages(_ context.Context, repo core.Repository) (map[string]int64, error) {
	return languages[repo.Name], nil
}

func (d *DemoProvider) CommitsSince(_ context.Context, repo core.Repository, _ time.Time) (int, error) {
	return commits[repo.Name], nil
}

func (d *DemoProvider) Fetch(ctx context.Context, handle string) (core.AccountStats, error) {
	agg := &core.Aggregator{
		Source: d,
		Forks:  d.forks,
		TopN:   d.topN,
		Year:   d.year,
		Logger: d.logger,
	}
	profile := core.Profile{
		Login:       handle,
		Name:        "Demo Developer",
		PublicRepos: len(repos),
		Followers:   10,
		Following:   5,
	}
	return agg.Aggregate(ctx, profile, repos, d.now())
}
