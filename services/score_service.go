package services

import "game_mate/models"

// Match weights for the interest-driven bulk list and the deliberately
// lighter playtime-driven variant.
const (
	interestTagWeight      = 50.0
	interestGenreWeight    = 50.0
	interestCategoryWeight = 30.0

	playtimeTagWeight      = 20.0
	playtimeGenreWeight    = 20.0
	playtimeCategoryWeight = 15.0
)

// Quality floor for the playtime-driven variant.
const (
	criticFloor        = 75
	highOwnerBandScore = 80.0
)

// ownerBandScores maps the catalog's estimated-owner band strings to fixed
// points, increasing with band size. Unknown bands score the minimum.
var ownerBandScores = map[string]float64{
	"0 - 0":                 10,
	"0 - 20000":             10,
	"20000 - 50000":         20,
	"50000 - 100000":        30,
	"100000 - 200000":       40,
	"200000 - 500000":       50,
	"500000 - 1000000":      60,
	"1000000 - 2000000":     70,
	"2000000 - 5000000":     80,
	"5000000 - 10000000":    90,
	"10000000 - 20000000":   100,
	"20000000 - 50000000":   110,
	"50000000 - 100000000":  120,
	"100000000 - 200000000": 130,
}

// ScoreInterest is the interest-driven score: tag/genre/category name
// matches at full weight, playtime as clamp(median/10, 100), owner band,
// and the raw critic score. Pure; higher is better.
func ScoreInterest(g models.Game, names map[string]bool) float64 {
	score := float64(tagMatchCount(g.Tags, names)) * interestTagWeight
	score += float64(nameMatchCount(g.Genres, names)) * interestGenreWeight
	score += float64(nameMatchCount(g.Categories, names)) * interestCategoryWeight

	playtime := float64(g.MedianPlaytimeForever) / 10
	if playtime > 100 {
		playtime = 100
	}
	score += playtime

	score += ownerBandScore(g.EstimatedOwners)
	score += float64(g.MetacriticScore)
	return score
}

// ScorePlaytime is the playtime-driven variant: lighter match weights and a
// banded playtime bonus instead of the linear term.
func ScorePlaytime(g models.Game, names map[string]bool) float64 {
	score := float64(tagMatchCount(g.Tags, names)) * playtimeTagWeight
	score += float64(nameMatchCount(g.Genres, names)) * playtimeGenreWeight
	score += float64(nameMatchCount(g.Categories, names)) * playtimeCategoryWeight

	score += playtimeBandScore(g.MedianPlaytimeForever)
	score += ownerBandScore(g.EstimatedOwners)
	score += float64(g.MetacriticScore)
	return score
}

// PassesQualityFloor gates candidates for the playtime-driven list: a
// strong critic score or a high-population owner band, checked before
// scoring.
func PassesQualityFloor(g models.Game) bool {
	return g.MetacriticScore >= criticFloor || ownerBandScore(g.EstimatedOwners) >= highOwnerBandScore
}

func playtimeBandScore(minutes int) float64 {
	switch {
	case minutes >= 120 && minutes <= 3000:
		return 50
	case minutes >= 60 && minutes <= 119:
		return 25
	case minutes >= 3001 && minutes <= 6000:
		return 35
	default:
		return 10
	}
}

func ownerBandScore(band string) float64 {
	if score, ok := ownerBandScores[band]; ok {
		return score
	}
	return 10
}

func tagMatchCount(tags map[string]int, names map[string]bool) int {
	count := 0
	for tag := range tags {
		if names[tag] {
			count++
		}
	}
	return count
}

func nameMatchCount(values []string, names map[string]bool) int {
	count := 0
	for _, v := range values {
		if names[v] {
			count++
		}
	}
	return count
}
