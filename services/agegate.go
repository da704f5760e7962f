package services

import "game_mate/config"

// AgeGate suppresses adult-only candidates for underage users. It is
// applied at every point where a candidate can be emitted; decisions are
// never cached because the caller's age is read fresh per request.
type AgeGate struct {
	restricted map[int64]bool
	adultAge   int
}

func NewAgeGate(cfg *config.Config) *AgeGate {
	restricted := make(map[int64]bool, len(cfg.Recommend.RestrictedTagIDs))
	for _, id := range cfg.Recommend.RestrictedTagIDs {
		restricted[id] = true
	}
	return &AgeGate{restricted: restricted, adultAge: cfg.Recommend.AdultAge}
}

// Restricted reports whether any tag id marks adult-only content.
func (g *AgeGate) Restricted(tagIDs []int64) bool {
	for _, id := range tagIDs {
		if g.restricted[id] {
			return true
		}
	}
	return false
}

// Adult reports whether the age clears the restriction threshold.
func (g *AgeGate) Adult(age int) bool {
	return age >= g.adultAge
}

// Allows reports whether a candidate with the given tags may be shown to a
// user of the given age.
func (g *AgeGate) Allows(age int, tagIDs []int64) bool {
	return g.Adult(age) || !g.Restricted(tagIDs)
}
