package chart

import "math/rand/v2"

type Palette []string

var DefaultPalette = Palette{
	"#f1e05a", "#3572A5", "#4F5D95", "#563d7c", "#701516", "#e34c26", "#2b7489",
	"#f34b7d", "#cc0000", "#00ADD8", "#b07219", "#555555", "#f0db4f", "#89e051",
	"#1e4aec", "#c6538c", "#29bcb1", "#b83998", "#e44b23", "#ff9900",
}

// Shuffle returns a permuted copy of p. The same seed always gives the same
// order.
func (p Palette) Shuffle(seed uint64) Palette {
	out := make(Palette, len(p))
	copy(out, p)

	r := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	r.Shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})
	return out
}
