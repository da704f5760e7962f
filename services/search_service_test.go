package services

import (
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"game_mate/models"
)

func newTestSearcher(client *fakeStoreClient, seed int64) *Searcher {
	return NewSearcher(client, NewAgeGate(testConfig()), rand.NewSource(seed))
}

func TestSearcherStrictTierPreference(t *testing.T) {
	client := newFakeStoreClient()
	client.tagEntries = []models.SearchEntry{
		{AppID: 1, TagIDs: []int64{100}},
		{AppID: 2, TagIDs: []int64{100, 200}},
		{AppID: 3, TagIDs: []int64{100}},
		{AppID: 4, TagIDs: []int64{300}}, // fallback only
		{AppID: 5, TagIDs: []int64{300}}, // fallback only
	}
	s := newTestSearcher(client, 1)

	found, err := s.Find(context.Background(), SearchParams{
		Tags:        []int64{100, 300},
		MustOverlap: []int64{100},
		Target:      3,
		PageLimit:   10,
		Age:         25,
	})
	require.NoError(t, err)
	require.Len(t, found, 3)
	// Enough strict entries exist, so the fallback tier contributes nothing.
	assert.ElementsMatch(t, []int64{1, 2, 3}, found)
}

func TestSearcherFallbackTier(t *testing.T) {
	client := newFakeStoreClient()
	client.tagEntries = []models.SearchEntry{
		{AppID: 1, TagIDs: []int64{100}},
		{AppID: 4, TagIDs: []int64{300}},
	}
	s := newTestSearcher(client, 1)

	found, err := s.Find(context.Background(), SearchParams{
		Tags:        []int64{100},
		MustOverlap: []int64{100},
		Target:      3,
		PageLimit:   10,
		Age:         25,
	})
	require.NoError(t, err)
	assert.ElementsMatch(t, []int64{1, 4}, found)
}

func TestSearcherExclusionAndDedup(t *testing.T) {
	client := newFakeStoreClient()
	client.tagEntries = []models.SearchEntry{
		{AppID: 1, TagIDs: []int64{100}},
		{AppID: 1, TagIDs: []int64{100}}, // duplicate row
		{AppID: 2, TagIDs: []int64{100}},
		{AppID: 3, TagIDs: []int64{100}},
	}
	s := newTestSearcher(client, 1)

	found, err := s.Find(context.Background(), SearchParams{
		Tags:        []int64{100},
		MustOverlap: []int64{100},
		Exclude:     map[int64]bool{2: true},
		Target:      5,
		PageLimit:   10,
		Age:         25,
	})
	require.NoError(t, err)
	assert.ElementsMatch(t, []int64{1, 3}, found)
}

func TestSearcherAgeGate(t *testing.T) {
	client := newFakeStoreClient()
	client.tagEntries = []models.SearchEntry{
		{AppID: 1, TagIDs: []int64{100, 12095}}, // restricted
		{AppID: 2, TagIDs: []int64{100}},
	}
	s := newTestSearcher(client, 1)

	found, err := s.Find(context.Background(), SearchParams{
		Tags:        []int64{100},
		MustOverlap: []int64{100},
		Target:      3,
		PageLimit:   10,
		Age:         15,
	})
	require.NoError(t, err)
	assert.Equal(t, []int64{2}, found)

	// An adult sees both.
	adult, err := newTestSearcher(client, 1).Find(context.Background(), SearchParams{
		Tags:        []int64{100},
		MustOverlap: []int64{100},
		Target:      3,
		PageLimit:   10,
		Age:         20,
	})
	require.NoError(t, err)
	assert.ElementsMatch(t, []int64{1, 2}, adult)
}

func TestSearcherNoResults(t *testing.T) {
	client := newFakeStoreClient()
	client.tagEntries = []models.SearchEntry{
		{AppID: 1, TagIDs: []int64{12095}},
	}
	s := newTestSearcher(client, 1)

	_, err := s.Find(context.Background(), SearchParams{
		Tags:      []int64{12095},
		Target:    3,
		PageLimit: 10,
		Age:       15,
	})
	assert.ErrorIs(t, err, ErrNoResults)
}

func TestSearcherSeededShuffleIsDeterministic(t *testing.T) {
	entries := []models.SearchEntry{
		{AppID: 1, TagIDs: []int64{100}},
		{AppID: 2, TagIDs: []int64{100}},
		{AppID: 3, TagIDs: []int64{100}},
		{AppID: 4, TagIDs: []int64{100}},
		{AppID: 5, TagIDs: []int64{100}},
	}
	params := SearchParams{Tags: []int64{100}, MustOverlap: []int64{100}, Target: 2, PageLimit: 10, Age: 25}

	clientA := newFakeStoreClient()
	clientA.tagEntries = entries
	firstRun, err := newTestSearcher(clientA, 42).Find(context.Background(), params)
	require.NoError(t, err)

	clientB := newFakeStoreClient()
	clientB.tagEntries = entries
	secondRun, err := newTestSearcher(clientB, 42).Find(context.Background(), params)
	require.NoError(t, err)

	assert.Equal(t, firstRun, secondRun)
}

func TestSeedByTerm(t *testing.T) {
	client := newFakeStoreClient()
	client.termEntries["portal"] = []models.SearchEntry{
		{AppID: 400, TagIDs: []int64{1600, 12095}},
	}
	s := newTestSearcher(client, 1)

	// A restricted seed for a minor is restricted, not skipped; an adult
	// gets the seed.
	_, err := s.SeedByTerm(context.Background(), "portal", 50, 15)
	assert.ErrorIs(t, err, ErrRestricted)

	seed, err := s.SeedByTerm(context.Background(), "portal", 50, 25)
	require.NoError(t, err)
	assert.Equal(t, int64(400), seed.AppID)

	_, err = s.SeedByTerm(context.Background(), "unknown", 50, 25)
	assert.ErrorIs(t, err, ErrNoResults)
}
