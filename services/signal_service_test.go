package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"game_mate/models"
)

func TestTagGroupsInterestOnly(t *testing.T) {
	store := newFakeStore()
	store.interestGroups[1] = [][]int64{{10, 20}, {30}}

	groups, err := NewSignalAggregator(store, newFakeStoreClient()).TagGroups(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, [][]int64{{10, 20}, {30}}, groups)
}

func TestTagGroupsReviewSignalWinsOverPlaytime(t *testing.T) {
	store := newFakeStore()
	store.interestGroups[1] = [][]int64{{10}}
	store.profiles[1] = &models.SteamProfile{AccountID: 1, IsReview: true, IsPlaytime: true}
	store.reviewed[1] = []int64{100}
	store.playtimes[1] = []int64{200}
	store.nameToID["Roguelike"] = 1716
	store.nameToID["Co-op"] = 1685

	client := newFakeStoreClient()
	client.popular[100] = []string{"Roguelike", "Co-op"}
	client.popular[200] = []string{"Roguelike"}

	groups, err := NewSignalAggregator(store, client).TagGroups(context.Background(), 1)
	require.NoError(t, err)
	// One interest group plus the reviewed game's group; the playtime game
	// never contributes when review signal exists.
	assert.Equal(t, [][]int64{{10}, {1716, 1685}}, groups)
}

func TestTagGroupsScrapeFailureSkipsGroup(t *testing.T) {
	store := newFakeStore()
	store.profiles[1] = &models.SteamProfile{AccountID: 1, IsReview: true}
	store.reviewed[1] = []int64{100, 200}
	store.nameToID["Survival"] = 1662

	client := newFakeStoreClient()
	client.popularErr[100] = errors.New("page unavailable")
	client.popular[200] = []string{"Survival"}

	groups, err := NewSignalAggregator(store, client).TagGroups(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, [][]int64{{1662}}, groups)
}

func TestTagGroupsCapsSteamRows(t *testing.T) {
	store := newFakeStore()
	store.profiles[1] = &models.SteamProfile{AccountID: 1, IsPlaytime: true}
	store.playtimes[1] = []int64{100, 200, 300} // above the playtime cap
	store.nameToID["Indie"] = 492

	client := newFakeStoreClient()
	for _, appID := range []int64{100, 200, 300} {
		client.popular[appID] = []string{"Indie"}
	}

	groups, err := NewSignalAggregator(store, client).TagGroups(context.Background(), 1)
	require.NoError(t, err)
	assert.Len(t, groups, maxPlaytimeGames)
}

func TestFlatTags(t *testing.T) {
	flat := FlatTags([][]int64{{10, 20}, {20, 30}, {10}})
	assert.Equal(t, []int64{10, 20, 30}, flat)
	assert.Empty(t, FlatTags(nil))
}
