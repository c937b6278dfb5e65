package core

import (
	"cmp"
	"slices"
)

// LanguageDistribution folds per-repository language byte maps into a
// distribution sorted by bytes, largest first. When 0 < topN < the number of
// languages, only the first topN are kept and percentages are computed
// against their combined bytes, so the result always sums to 100.
// No bytes at all yields a nil distribution.
func LanguageDistribution(maps []map[string]int64, topN int) []LanguageStat {
	totals := make(map[string]int64)
	for _, m := range maps {
		for lang, n := range m {
			if n <= 0 {
				continue
			}
			totals[lang] += n
		}
	}
	if len(totals) == 0 {
		return nil
	}

	langs := make([]LanguageStat, 0, len(totals))
	for name, n := range totals {
		langs = append(langs, LanguageStat{Name: name, Bytes: n})
	}

	slices.SortFunc(langs, func(a, b LanguageStat) int {
		if c := cmp.Compare(b.Bytes, a.Bytes); c != 0 {
			return c
		}
		return cmp.Compare(a.Name, b.Name)
	})

	if topN > 0 && topN < len(langs) {
		langs = langs[:topN]
	}

	var sum int64
	for _, ls := range langs {
		sum += ls.Bytes
	}
	if sum == 0 {
		return nil
	}

	for i := range langs {
		langs[i].Percentage = float64(langs[i].Bytes) / float64(sum) * 100.0
	}

	return langs
}

func StarTotal(repos []Repository) int {
	var total int
	for _, r := range repos {
		total += r.Stars
	}
	return total
}

// FeaturedRepository returns the full name of the most-starred repository.
// The first one encountered wins a tie.
func FeaturedRepository(repos []Repository) string {
	if len(repos) == 0 {
		return NoFeaturedRepository
	}

	best := repos[0]
	for _, r := range repos[1:] {
		if r.Stars > best.Stars {
			best = r
		}
	}

	if best.FullName != "" {
		return best.FullName
	}
	return best.Name
}
