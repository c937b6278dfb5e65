package core

import "time"

const (
	EmailNotPublic       = "Not public"
	NoFeaturedRepository = "N/A"
	ContributionNote     = "See profile (not available via REST API)"
)

type Repository struct {
	Name         string
	FullName     string
	Stars        int
	Fork         bool
	LanguagesURL string
}

type Profile struct {
	Login       string
	Name        string
	Email       string
	PublicRepos int
	Followers   int
	Following   int
}

type LanguageStat struct {
	Name       string
	Bytes      int64
	Percentage float64
}

// AccountStats is the snapshot handed to the renderer. It is built once per
// run by Aggregator.Aggregate.
type AccountStats struct {
	Login            string
	Email            string
	PublicRepos      int
	Followers        int
	Following        int
	Stars            int
	FeaturedRepo     string
	ContributionNote string
	Year             int
	Commits          int
	Languages        []LanguageStat
	GeneratedAt      time.Time
}

func PublicEmail(email string) string {
	if email == "" {
		return EmailNotPublic
	}
	return email
}
