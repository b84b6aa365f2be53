package parser

import (
	"strings"

	"github.com/aluiziolira/go-artist-catalog/models"
)

type regionHint struct {
	region   models.Region
	keywords []string
}

// Checked in order; the first region with any matching keyword wins.
var regionHints = []regionHint{
	{models.RegionFR, []string{"nekfeu", "damso", "laylow", "freeze corleone", "vald", "pnl", "ninho", "gazo", "alpha wann", "booba", "jul", "sch"}},
	{models.RegionUK, []string{"central cee", "dave", "stormzy", "aj tracey", "skepta", "headie one", "arrdee", "unknown t", "digga d"}},
	{models.RegionUS, []string{"kendrick lamar", "travis scott", "kanye west", "drake", "j. cole", "21 savage", "future", "lil baby", "playboi carti", "young thug"}},
}

const frenchAccents = "éèàùçîïôêâ"

// GuessRegion maps an artist name to a region tag using keyword substrings,
// falling back to French accented vowels, then RegionOther.
func GuessRegion(name string) models.Region {
	n := strings.ToLower(name)
	for _, hint := range regionHints {
		for _, kw := range hint.keywords {
			if strings.Contains(n, kw) {
				return hint.region
			}
		}
	}
	if strings.ContainsAny(n, frenchAccents) {
		return models.RegionFR
	}
	return models.RegionOther
}
