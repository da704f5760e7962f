package services

import (
	"context"
	"sort"
	"sync"

	"game_mate/config"
	"game_mate/logger"
)

// SimilarUserFinder ranks other users by tag-set overlap with the
// requester. Flattened tag sets (fingerprints) are cached per user and
// invalidated when that user's signal changes, so the population scan does
// not re-scrape on every request.
type SimilarUserFinder struct {
	store   Store
	signals *SignalAggregator

	threshold float64
	limit     int

	mu           sync.Mutex
	fingerprints map[int64][]int64
}

func NewSimilarUserFinder(store Store, signals *SignalAggregator, cfg *config.Config) *SimilarUserFinder {
	return &SimilarUserFinder{
		store:        store,
		signals:      signals,
		threshold:    cfg.Recommend.SimilarityThreshold,
		limit:        cfg.Recommend.SimilarUserLimit,
		fingerprints: make(map[int64][]int64),
	}
}

// Fingerprint returns the user's flattened tag set, computing and caching
// it on first use.
func (f *SimilarUserFinder) Fingerprint(ctx context.Context, accountID int64) ([]int64, error) {
	f.mu.Lock()
	cached, ok := f.fingerprints[accountID]
	f.mu.Unlock()
	if ok {
		return cached, nil
	}

	groups, err := f.signals.TagGroups(ctx, accountID)
	if err != nil {
		return nil, err
	}
	flat := FlatTags(groups)

	f.mu.Lock()
	f.fingerprints[accountID] = flat
	f.mu.Unlock()
	return flat, nil
}

// Invalidate drops a user's cached fingerprint after a signal change.
func (f *SimilarUserFinder) Invalidate(accountID int64) {
	f.mu.Lock()
	delete(f.fingerprints, accountID)
	f.mu.Unlock()
}

// FindSimilar returns up to the configured number of account ids whose
// tag overlap ratio with the requester meets the threshold, most-overlapping
// first. An empty requester set matches nobody.
func (f *SimilarUserFinder) FindSimilar(ctx context.Context, requesterID int64, requesterTags []int64) ([]int64, error) {
	if len(requesterTags) == 0 {
		return nil, nil
	}

	ids, err := f.store.ListAccountIDs()
	if err != nil {
		return nil, err
	}

	requester := make(map[int64]bool, len(requesterTags))
	for _, id := range requesterTags {
		requester[id] = true
	}

	type match struct {
		accountID    int64
		intersection int
	}
	matches := make([]match, 0)
	for _, id := range ids {
		if id == requesterID {
			continue
		}
		tags, err := f.Fingerprint(ctx, id)
		if err != nil {
			logger.Warn("skipping user in similarity scan", "account_id", id, "error", err)
			continue
		}
		intersection := 0
		for _, t := range tags {
			if requester[t] {
				intersection++
			}
		}
		ratio := float64(intersection) / float64(len(requesterTags))
		if ratio >= f.threshold {
			matches = append(matches, match{accountID: id, intersection: intersection})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].intersection > matches[j].intersection
	})

	similar := make([]int64, 0, f.limit)
	for _, m := range matches {
		if len(similar) >= f.limit {
			break
		}
		similar = append(similar, m.accountID)
	}
	return similar, nil
}
