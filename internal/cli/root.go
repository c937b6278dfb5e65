// Package cli implements the ghcard command line.
//
// The root command fetches one account's statistics, renders the SVG card
// and writes it to disk. --verbose switches the charmbracelet logger to
// debug level; the logger travels through the command context.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vukan322/ghcard/internal/chart"
	"github.com/vukan322/ghcard/internal/config"
	"github.com/vukan322/ghcard/internal/core"
	"github.com/vukan322/ghcard/internal/httputil"
	"github.com/vukan322/ghcard/internal/providers"
	"github.com/vukan322/ghcard/internal/providers/demo"
	githubprovider "github.com/vukan322/ghcard/internal/providers/github"
	"github.com/vukan322/ghcard/internal/render"
)

var version = "dev"

func SetVersion(v string) {
	version = v
}

type flags struct {
	configPath   string
	user         string
	output       string
	top          int
	includeForks bool
	shuffle      bool
	seed         uint64
	year         int
	demo         bool
	verbose      bool
}

// Execute runs the root command against os.Args.
func Execute() error {
	return newRootCmd(os.Stdout, os.Stderr).ExecuteContext(context.Background())
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	var f flags

	cmd := &cobra.Command{
		Use:          "ghcard",
		Short:        "Render a GitHub account's stats as an SVG card",
		Long:         `ghcard reads a GitHub account's profile, repositories, languages and this year's commits and writes an SVG card for a profile README.`,
		Version:      version,
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if f.verbose {
				level = charmlog.DebugLevel
			}
			cmd.SetContext(withLogger(cmd.Context(), newLogger(stderr, level)))
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(f.configPath)
			if err != nil {
				return err
			}
			f.apply(cmd, cfg)
			if f.demo && cfg.User == "" {
				cfg.User = "demo"
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			return run(cmd.Context(), cfg, f, stdout, stderr)
		},
	}

	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	fl := cmd.Flags()
	fl.StringVarP(&f.configPath, "config", "c", "", "path to a TOML config file")
	fl.StringVarP(&f.user, "user", "u", "", "GitHub username")
	fl.StringVarP(&f.output, "out", "o", config.DefaultOutput, "output SVG file path")
	fl.IntVar(&f.top, "top", 0, "keep only the top N languages (0 = all)")
	fl.BoolVar(&f.includeForks, "include-forks", false, "count forked repositories in stars, featured repo, languages and commits (forks are left out by default)")
	fl.BoolVar(&f.shuffle, "shuffle", false, "shuffle the pie chart palette")
	fl.Uint64Var(&f.seed, "seed", 0, "palette shuffle seed (0 = random)")
	fl.IntVar(&f.year, "year", 0, "count commits since January 1 of this year (default: current year)")
	fl.BoolVar(&f.demo, "demo", false, "render built-in demo data without calling the API")
	cmd.PersistentFlags().BoolVarP(&f.verbose, "verbose", "v", false, "enable debug logging")

	return cmd
}

// apply copies explicitly set flags over cfg.
func (f flags) apply(cmd *cobra.Command, cfg *config.Config) {
	changed := cmd.Flags().Changed
	if changed("user") {
		cfg.User = f.user
	}
	if changed("out") {
		cfg.Output = f.output
	}
	if changed("top") {
		cfg.TopLanguages = f.top
	}
	if changed("include-forks") {
		cfg.IncludeForks = f.includeForks
	}
	if changed("shuffle") {
		cfg.ShufflePalette = f.shuffle
	}
	if changed("seed") {
		cfg.PaletteSeed = f.seed
		cfg.ShufflePalette = true
	}
}

func run(ctx context.Context, cfg *config.Config, f flags, stdout, stderr io.Writer) error {
	logger := loggerFromContext(ctx)

	forks := core.ForksExcluded
	if cfg.IncludeForks {
		forks = core.ForksIncluded
	}

	var provider providers.Provider
	if f.demo {
		provider = demo.New(
			demo.WithLogger(logger),
			demo.WithForkPolicy(forks),
			demo.WithTopLanguages(cfg.TopLanguages),
			demo.WithYear(f.year),
		)
	} else {
		if cfg.Token == "" {
			logger.Warn("GHCARD_TOKEN not set, using unauthenticated GitHub API (rate limited)")
		}
		opts := []githubprovider.Option{
			githubprovider.WithHTTPClient(&http.Client{Timeout: cfg.Timeout.Duration}),
			githubprovider.WithRetry(cfg.Retries, httputil.DefaultDelay),
			githubprovider.WithLogger(logger),
			githubprovider.WithForkPolicy(forks),
			githubprovider.WithTopLanguages(cfg.TopLanguages),
			githubprovider.WithYear(f.year),
		}
		if cfg.APIURL != "" {
			opts = append(opts, githubprovider.WithBaseURL(cfg.APIURL))
		}
		provider = githubprovider.New(cfg.Token, opts...)
	}

	prog := newProgress(logger)
	stats, err := provider.Fetch(ctx, cfg.User)
	if errors.Is(err, core.ErrNoRepositories) {
		printError(stderr, "no repositories found for %q, nothing written", cfg.User)
		return nil
	}
	if err != nil {
		return fmt.Errorf("provider %s failed: %w", provider.Name(), err)
	}
	prog.done(fmt.Sprintf("Collected stats for %s", stats.Login))

	palette := chart.DefaultPalette
	if cfg.ShufflePalette {
		seed := cfg.PaletteSeed
		if seed == 0 {
			seed = uint64(time.Now().UnixNano())
		}
		logger.Debug("shuffling palette", "seed", seed)
		palette = palette.Shuffle(seed)
	}

	svg, err := render.RenderSVG(stats, render.Options{Palette: palette})
	if err != nil {
		return fmt.Errorf("failed to render SVG: %w", err)
	}

	if err := os.WriteFile(cfg.Output, svg, 0o644); err != nil {
		return fmt.Errorf("failed to write SVG to %s: %w", cfg.Output, err)
	}

	printSummary(stdout, stats, provider.Name())
	printSuccess(stdout, "wrote %s", cfg.Output)
	return nil
}
