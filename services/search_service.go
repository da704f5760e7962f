package services

import (
	"context"
	"math/rand"
	"sync"

	"game_mate/models"
)

// SearchParams drives one candidate collection pass.
type SearchParams struct {
	Tags        []int64        // tag set sent to the store search
	MustOverlap []int64        // strict-tier filter; empty means no strict tier
	Exclude     map[int64]bool // owned or already-selected app ids
	Target      int
	PageLimit   int
	Age         int
}

// Searcher collects candidate app ids from the store's tag-filtered search
// with a two-tier acceptance policy: entries overlapping the must-overlap
// set first, the rest as fallback. Result order is randomized per call so
// repeated identical requests can surface different games.
type Searcher struct {
	store StoreClient
	gate  *AgeGate

	mu  sync.Mutex // guards rng
	rng *rand.Rand
}

// NewSearcher creates a searcher. The rand source is injected so tests can
// fix the shuffle order.
func NewSearcher(store StoreClient, gate *AgeGate, src rand.Source) *Searcher {
	return &Searcher{store: store, gate: gate, rng: rand.New(src)}
}

// Find returns up to Target accepted app ids, strict tier before fallback.
// Zero accepted entries is ErrNoResults.
func (s *Searcher) Find(ctx context.Context, p SearchParams) ([]int64, error) {
	entries, err := s.store.SearchByTags(ctx, p.Tags, p.PageLimit)
	if err != nil {
		return nil, err
	}
	s.shuffle(entries)

	overlap := make(map[int64]bool, len(p.MustOverlap))
	for _, id := range p.MustOverlap {
		overlap[id] = true
	}
	var strict, fallback []models.SearchEntry
	for _, e := range entries {
		if anyTagIn(e.TagIDs, overlap) {
			strict = append(strict, e)
		} else {
			fallback = append(fallback, e)
		}
	}

	accepted := make([]int64, 0, p.Target)
	collected := make(map[int64]bool, p.Target)
	for _, tier := range [][]models.SearchEntry{strict, fallback} {
		for _, e := range tier {
			if len(accepted) >= p.Target {
				break
			}
			if p.Exclude[e.AppID] || collected[e.AppID] {
				continue
			}
			if !s.gate.Allows(p.Age, e.TagIDs) {
				continue
			}
			collected[e.AppID] = true
			accepted = append(accepted, e.AppID)
		}
	}

	if len(accepted) == 0 {
		return nil, ErrNoResults
	}
	return accepted, nil
}

// SeedByTerm runs a term search and returns one entry, in randomized
// order, to seed a similar-game lookup. A seed that fails the age gate is
// a restricted outcome, not a skip.
func (s *Searcher) SeedByTerm(ctx context.Context, term string, limit, age int) (models.SearchEntry, error) {
	entries, err := s.store.SearchByTerm(ctx, term, limit)
	if err != nil {
		return models.SearchEntry{}, err
	}
	if len(entries) == 0 {
		return models.SearchEntry{}, ErrNoResults
	}
	s.shuffle(entries)

	seed := entries[0]
	if !s.gate.Allows(age, seed.TagIDs) {
		return models.SearchEntry{}, ErrRestricted
	}
	return seed, nil
}

func (s *Searcher) shuffle(entries []models.SearchEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rng.Shuffle(len(entries), func(i, j int) {
		entries[i], entries[j] = entries[j], entries[i]
	})
}

func anyTagIn(tagIDs []int64, set map[int64]bool) bool {
	for _, id := range tagIDs {
		if set[id] {
			return true
		}
	}
	return false
}
