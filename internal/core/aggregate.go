package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
)

var ErrNoRepositories = errors.New("no repositories found")

// Source fetches the per-repository data the aggregator needs. Calls are
// made one at a time, in repository order.
type Source interface {
	Languages(ctx context.Context, repo Repository) (map[string]int64, error)
	CommitsSince(ctx context.Context, repo Repository, since time.Time) (int, error)
}

type Aggregator struct {
	Source Source
	Forks  ForkPolicy
	TopN   int
	// Year overrides the commit year taken from now when non-zero.
	Year   int
	Logger *log.Logger
}

func (a *Aggregator) logger() *log.Logger {
	if a.Logger != nil {
		return a.Logger
	}
	return log.Default()
}

func (a *Aggregator) LanguageDistribution(ctx context.Context, repos []Repository) ([]LanguageStat, error) {
	selected := a.Forks.Select(repos)
	maps := make([]map[string]int64, 0, len(selected))

	for _, r := range selected {
		langs, err := a.Source.Languages(ctx, r)
		if err != nil {
			return nil, fmt.Errorf("languages for %s: %w", r.FullName, err)
		}
		a.logger().Debug("fetched languages", "repo", r.FullName, "languages", len(langs))
		maps = append(maps, langs)
	}

	return LanguageDistribution(maps, a.TopN), nil
}

// YearlyCommitCount sums commits made since January 1 of year (UTC). A
// repository whose commits cannot be fetched counts as zero.
func (a *Aggregator) YearlyCommitCount(ctx context.Context, repos []Repository, year int) int {
	since := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)

	var total int
	for _, r := range a.Forks.Select(repos) {
		n, err := a.Source.CommitsSince(ctx, r, since)
		if err != nil {
			a.logger().Warn("commit count unavailable, counting zero", "repo", r.FullName, "err", err)
			continue
		}
		total += n
	}
	return total
}

func (a *Aggregator) StarTotal(repos []Repository) int {
	return StarTotal(a.Forks.Select(repos))
}

func (a *Aggregator) FeaturedRepository(repos []Repository) string {
	return FeaturedRepository(a.Forks.Select(repos))
}

// Aggregate builds the account snapshot. now stamps the snapshot and picks
// the commit year unless Year is set.
func (a *Aggregator) Aggregate(ctx context.Context, profile Profile, repos []Repository, now time.Time) (AccountStats, error) {
	if len(repos) == 0 {
		return AccountStats{}, ErrNoRepositories
	}

	langs, err := a.LanguageDistribution(ctx, repos)
	if err != nil {
		return AccountStats{}, err
	}

	year := a.Year
	if year == 0 {
		year = now.UTC().Year()
	}

	return AccountStats{
		Login:            profile.Login,
		Email:            PublicEmail(profile.Email),
		PublicRepos:      profile.PublicRepos,
		Followers:        profile.Followers,
		Following:        profile.Following,
		Stars:            a.StarTotal(repos),
		FeaturedRepo:     a.FeaturedRepository(repos),
		ContributionNote: ContributionNote,
		Year:             year,
		Commits:          a.YearlyCommitCount(ctx, repos, year),
		Languages:        langs,
		GeneratedAt:      now,
	}, nil
}
