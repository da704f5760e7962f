package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"game_mate/models"
)

func TestScoreInterest(t *testing.T) {
	game := models.Game{
		AppID:                 10,
		Name:                  "Game A",
		RequiredAge:           16,
		MetacriticScore:       80,
		MedianPlaytimeForever: 600,
		EstimatedOwners:       "1000000 - 2000000",
		Tags:                  map[string]int{"X": 100},
	}

	t.Run("known composition", func(t *testing.T) {
		// 50 tag match + 60 playtime + 70 owners + 80 critic.
		score := ScoreInterest(game, map[string]bool{"X": true})
		assert.Equal(t, 260.0, score)
	})

	t.Run("playtime clamps at 100", func(t *testing.T) {
		long := game
		long.MedianPlaytimeForever = 5000
		score := ScoreInterest(long, nil)
		assert.Equal(t, 100.0+70+80, score)
	})

	t.Run("more matches never score lower", func(t *testing.T) {
		two := game
		two.Tags = map[string]int{"X": 100, "Y": 50}
		oneScore := ScoreInterest(game, map[string]bool{"X": true, "Y": true})
		twoScore := ScoreInterest(two, map[string]bool{"X": true, "Y": true})
		assert.GreaterOrEqual(t, twoScore, oneScore)
	})

	t.Run("genre and category weights", func(t *testing.T) {
		g := models.Game{
			Genres:     []string{"Roguelike"},
			Categories: []string{"Co-op"},
		}
		score := ScoreInterest(g, map[string]bool{"Roguelike": true, "Co-op": true})
		// 50 genre + 30 category + 0 playtime + 10 unknown owners band.
		assert.Equal(t, 50.0+30+0+10, score)
	})
}

func TestScorePlaytime(t *testing.T) {
	t.Run("banded playtime bonus", func(t *testing.T) {
		assert.Equal(t, 25.0, playtimeBandScore(60))
		assert.Equal(t, 25.0, playtimeBandScore(119))
		assert.Equal(t, 50.0, playtimeBandScore(120))
		assert.Equal(t, 50.0, playtimeBandScore(3000))
		assert.Equal(t, 35.0, playtimeBandScore(3001))
		assert.Equal(t, 35.0, playtimeBandScore(6000))
		assert.Equal(t, 10.0, playtimeBandScore(0))
		assert.Equal(t, 10.0, playtimeBandScore(9000))
	})

	t.Run("lighter match weights", func(t *testing.T) {
		g := models.Game{
			Tags:                  map[string]int{"X": 1},
			Genres:                []string{"X"},
			Categories:            []string{"X"},
			MedianPlaytimeForever: 200,
			EstimatedOwners:       "1000000 - 2000000",
			MetacriticScore:       80,
		}
		score := ScorePlaytime(g, map[string]bool{"X": true})
		assert.Equal(t, 20.0+20+15+50+70+80, score)
	})
}

func TestOwnerBandScore(t *testing.T) {
	assert.Equal(t, 70.0, ownerBandScore("1000000 - 2000000"))
	assert.Equal(t, 10.0, ownerBandScore("not a band"))
	assert.Equal(t, 130.0, ownerBandScore("100000000 - 200000000"))

	// Bands score monotonically with population.
	bands := []string{
		"0 - 20000", "20000 - 50000", "50000 - 100000", "100000 - 200000",
		"200000 - 500000", "500000 - 1000000", "1000000 - 2000000",
		"2000000 - 5000000", "5000000 - 10000000", "10000000 - 20000000",
		"20000000 - 50000000", "50000000 - 100000000", "100000000 - 200000000",
	}
	for i := 1; i < len(bands); i++ {
		assert.GreaterOrEqual(t, ownerBandScore(bands[i]), ownerBandScore(bands[i-1]), bands[i])
	}
}

func TestPassesQualityFloor(t *testing.T) {
	assert.True(t, PassesQualityFloor(models.Game{MetacriticScore: 75}))
	assert.True(t, PassesQualityFloor(models.Game{MetacriticScore: 60, EstimatedOwners: "2000000 - 5000000"}))
	assert.False(t, PassesQualityFloor(models.Game{MetacriticScore: 60, EstimatedOwners: "100000 - 200000"}))
}

func TestBuildLists(t *testing.T) {
	gameA := models.Game{
		AppID:                 10,
		Name:                  "Game A",
		RequiredAge:           16,
		MetacriticScore:       80,
		MedianPlaytimeForever: 600,
		EstimatedOwners:       "1000000 - 2000000",
		Tags:                  map[string]int{"X": 100},
	}
	gameC := models.Game{AppID: 30, Name: "Game C", MetacriticScore: 70}
	owned := models.Game{AppID: 40, Name: "Owned", MetacriticScore: 90}

	lists := BuildLists(
		[]models.Game{gameC, gameA, owned},
		[]string{"X"}, []string{"X"},
		map[int64]bool{40: true},
		15,
	)

	require.Len(t, lists.InterestGames, 2)
	assert.Equal(t, int64(10), lists.InterestGames[0].Game.AppID)
	assert.Equal(t, 260.0, lists.InterestGames[0].Score)

	// Game C misses the quality floor, the owned game is excluded.
	require.Len(t, lists.PlaytimeGames, 1)
	assert.Equal(t, int64(10), lists.PlaytimeGames[0].Game.AppID)

	assert.Equal(t, []string{"X"}, lists.InterestTags)
	assert.Equal(t, []string{"X"}, lists.PlaytimeTags)
}

func TestBuildListsLimit(t *testing.T) {
	games := make([]models.Game, 0, 20)
	for i := 0; i < 20; i++ {
		games = append(games, models.Game{AppID: int64(i + 1), MetacriticScore: 80})
	}
	lists := BuildLists(games, nil, nil, nil, 15)
	assert.Len(t, lists.InterestGames, 15)
	assert.Len(t, lists.PlaytimeGames, 15)
}
