package core

import "fmt"

// ForkPolicy decides whether forked repositories take part in aggregation.
// The same policy applies to languages, stars, the featured repository and
// commit counts.
type ForkPolicy int

const (
	ForksExcluded ForkPolicy = iota
	ForksIncluded
)

func (p ForkPolicy) String() string {
	switch p {
	case ForksExcluded:
		return "excluded"
	case ForksIncluded:
		return "included"
	default:
		return fmt.Sprintf("ForkPolicy(%d)", int(p))
	}
}

// Select returns the repositories the policy lets through. The input is not
// modified.
func (p ForkPolicy) Select(repos []Repository) []Repository {
	if p == ForksIncluded {
		return repos
	}

	out := make([]Repository, 0, len(repos))
	for _, r := range repos {
		if r.Fork {
			continue
		}
		out = append(out, r)
	}
	return out
}
