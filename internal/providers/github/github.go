package github

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vukan322/ghcard/internal/core"
	"github.com/vukan322/ghcard/internal/httputil"
)

const (
	defaultBaseURL   = "https://api.github.com"
	defaultUserAgent = "ghcard/0.1"
	defaultTimeout   = 10 * time.Second
	perPage          = 100
)

var ErrUserNotFound = errors.New("user not found")

// StatusError is a non-2xx response from the API.
type StatusError struct {
	Code int
	URL  string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d from %s", e.Code, e.URL)
}

type Provider struct {
	client   *http.Client
	baseURL  string
	token    string
	attempts int
	delay    time.Duration
	logger   *log.Logger

	forks core.ForkPolicy
	topN  int
	year  int
	now   func() time.Time
}

type Option func(*Provider)

func WithBaseURL(u string) Option {
	return func(p *Provider) { p.baseURL = strings.TrimSuffix(u, "/") }
}

func WithHTTPClient(c *http.Client) Option {
	return func(p *Provider) { p.client = c }
}

// WithRetry sets how often a transient failure (transport error, 429, 5xx)
// is attempted and the first backoff delay.
func WithRetry(attempts int, delay time.Duration) Option {
	return func(p *Provider) {
		p.attempts = attempts
		p.delay = delay
	}
}

func WithLogger(l *log.Logger) Option {
	return func(p *Provider) { p.logger = l }
}

func WithForkPolicy(fp core.ForkPolicy) Option {
	return func(p *Provider) { p.forks = fp }
}

func WithTopLanguages(n int) Option {
	return func(p *Provider) { p.topN = n }
}

func WithYear(year int) Option {
	return func(p *Provider) { p.year = year }
}

func WithClock(now func() time.Time) Option {
	return func(p *Provider) { p.now = now }
}

func New(token string, opts ...Option) *Provider {
	p := &Provider{
		client:   &http.Client{Timeout: defaultTimeout},
		baseURL:  defaultBaseURL,
		token:    token,
		attempts: httputil.DefaultAttempts,
		delay:    httputil.DefaultDelay,
		logger:   log.Default(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Provider) Name() string {
	return "github"
}

type githubUser struct {
	Login       string `json:"login"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	PublicRepos int    `json:"public_repos"`
	Followers   int    `json:"followers"`
	Following   int    `json:"following"`
}

type githubRepo struct {
	Name            string `json:"name"`
	FullName        string `json:"full_name"`
	StargazersCount int    `json:"stargazers_count"`
	Fork            bool   `json:"fork"`
	LanguagesURL    string `json:"languages_url"`
}

type githubCommit struct {
	SHA string `json:"sha"`
}

func (p *Provider) Fetch(ctx context.Context, handle string) (core.AccountStats, error) {
	profile, err := p.FetchUser(ctx, handle)
	if err != nil {
		return core.AccountStats{}, fmt.Errorf("github: fetch user: %w", err)
	}

	repos, err := p.FetchRepos(ctx, handle)
	if err != nil {
		return core.AccountStats{}, fmt.Errorf("github: fetch repos: %w", err)
	}
	p.logger.Info("fetched repositories", "user", profile.Login, "count", len(repos))

	agg := &core.Aggregator{
		Source: &source{provider: p, author: profile.Login},
		Forks:  p.forks,
		TopN:   p.topN,
		Year:   p.year,
		Logger: p.logger,
	}

	stats, err := agg.Aggregate(ctx, profile, repos, p.now())
	if err != nil {
		return core.AccountStats{}, fmt.Errorf("github: %w", err)
	}
	return stats, nil
}

func (p *Provider) FetchUser(ctx context.Context, handle string) (core.Profile, error) {
	endpoint := fmt.Sprintf("%s/users/%s", p.baseURL, url.PathEscape(handle))

	var u githubUser
	if _, err := p.getJSON(ctx, endpoint, &u); err != nil {
		var se *StatusError
		if errors.As(err, &se) && se.Code == http.StatusNotFound {
			return core.Profile{}, fmt.Errorf("%w: %q", ErrUserNotFound, handle)
		}
		return core.Profile{}, err
	}

	login := u.Login
	if login == "" {
		login = handle
	}

	return core.Profile{
		Login:       login,
		Name:        u.Name,
		Email:       u.Email,
		PublicRepos: u.PublicRepos,
		Followers:   u.Followers,
		Following:   u.Following,
	}, nil
}

// FetchRepos walks /users/{handle}/repos page by page until an empty page.
// A non-2xx page ends the walk and keeps what was collected so far.
func (p *Provider) FetchRepos(ctx context.Context, handle string) ([]core.Repository, error) {
	var all []core.Repository

	for page := 1; ; page++ {
		endpoint := fmt.Sprintf("%s/users/%s/repos?per_page=%d&page=%d",
			p.baseURL, url.PathEscape(handle), perPage, page)

		var repos []githubRepo
		if _, err := p.getJSON(ctx, endpoint, &repos); err != nil {
			var se *StatusError
			if errors.As(err, &se) {
				p.logger.Warn("repository listing stopped early", "page", page, "status", se.Code)
				break
			}
			return nil, err
		}
		if len(repos) == 0 {
			break
		}

		for _, r := range repos {
			all = append(all, core.Repository{
				Name:         r.Name,
				FullName:     r.FullName,
				Stars:        r.StargazersCount,
				Fork:         r.Fork,
				LanguagesURL: r.LanguagesURL,
			})
		}
		p.logger.Debug("fetched repository page", "page", page, "count", len(repos))
	}

	return all, nil
}

func (p *Provider) Languages(ctx context.Context, repo core.Repository) (map[string]int64, error) {
	endpoint := repo.LanguagesURL
	if endpoint == "" {
		endpoint = fmt.Sprintf("%s/repos/%s/languages", p.baseURL, repoPath(repo))
	}

	langs := make(map[string]int64)
	if _, err := p.getJSON(ctx, endpoint, &langs); err != nil {
		return nil, err
	}
	return langs, nil
}

// CommitsSince counts commits by author on the default branch since the given
// time, following pagination links.
func (p *Provider) CommitsSince(ctx context.Context, repo core.Repository, author string, since time.Time) (int, error) {
	q := url.Values{}
	q.Set("author", author)
	q.Set("since", since.UTC().Format(time.RFC3339))
	q.Set("per_page", fmt.Sprint(perPage))

	nextURL := fmt.Sprintf("%s/repos/%s/commits?%s", p.baseURL, repoPath(repo), q.Encode())

	var total int
	for nextURL != "" {
		var commits []githubCommit
		header, err := p.getJSON(ctx, nextURL, &commits)
		if err != nil {
			return 0, err
		}
		total += len(commits)
		nextURL = extractNextLink(header.Get("Link"))
	}
	return total, nil
}

func (p *Provider) getJSON(ctx context.Context, endpoint string, v any) (http.Header, error) {
	var resp *http.Response

	err := httputil.Retry(ctx, p.attempts, p.delay, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return fmt.Errorf("new request: %w", err)
		}
		p.applyHeaders(req)

		r, err := p.client.Do(req)
		if err != nil {
			return &httputil.RetryableError{Err: fmt.Errorf("do request: %w", err)}
		}

		if r.StatusCode < 200 || r.StatusCode >= 300 {
			_ = r.Body.Close()
			se := &StatusError{Code: r.StatusCode, URL: endpoint}
			if httputil.RetryableStatus(r.StatusCode) {
				p.logger.Debug("transient status, retrying", "status", r.StatusCode, "url", endpoint)
				return &httputil.RetryableError{Err: se}
			}
			return se
		}

		resp = r
		return nil
	})
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return nil, fmt.Errorf("decode response from %s: %w", endpoint, err)
	}
	return resp.Header, nil
}

func (p *Provider) applyHeaders(req *http.Request) {
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("User-Agent", defaultUserAgent)
	if p.token != "" {
		req.Header.Set("Authorization", "Bearer "+p.token)
	}
}

// source adapts the provider to core.Source for one author.
type source struct {
	provider *Provider
	author   string
}

func (s *source) Languages(ctx context.Context, repo core.Repository) (map[string]int64, error) {
	return s.provider.Languages(ctx, repo)
}

func (s *source) CommitsSince(ctx context.Context, repo core.Repository, since time.Time) (int, error) {
	return s.provider.CommitsSince(ctx, repo, s.author, since)
}

func repoPath(repo core.Repository) string {
	full := repo.FullName
	if full == "" {
		full = repo.Name
	}
	parts := strings.Split(full, "/")
	for i, part := range parts {
		parts[i] = url.PathEscape(part)
	}
	return strings.Join(parts, "/")
}

func extractNextLink(linkHeader string) string {
	for _, link := range splitLinks(linkHeader) {
		target, params, ok := strings.Cut(link, ";")
		if !ok {
			continue
		}
		for _, param := range strings.Split(params, ";") {
			if strings.TrimSpace(param) == `rel="next"` {
				return strings.Trim(strings.TrimSpace(target), "<>")
			}
		}
	}
	return ""
}

// splitLinks splits a Link header on the commas between entries. Commas
// inside <...> belong to the URL.
func splitLinks(header string) []string {
	var links []string
	start, inBracket := 0, false
	for i, ch := range header {
		switch {
		case ch == '<':
			inBracket = true
		case ch == '>':
			inBracket = false
		case ch == ',' && !inBracket:
			links = append(links, header[start:i])
			start = i + 1
		}
	}
	if start < len(header) {
		links = append(links, header[start:])
	}
	return links
}
