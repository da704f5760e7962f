package services

import (
	"context"

	"game_mate/logger"
)

// Caps on the Steam-derived signal rows one user contributes.
const (
	maxReviewedGames = 3
	maxPlaytimeGames = 2
)

// SignalAggregator turns a user's stored signal rows into store tag-id
// groups: one group per linked interest, plus one group per reviewed game
// or per most-played game, never both Steam sources at once.
type SignalAggregator struct {
	store Store
	tags  StoreClient
}

func NewSignalAggregator(store Store, tags StoreClient) *SignalAggregator {
	return &SignalAggregator{store: store, tags: tags}
}

// TagGroups aggregates the user's tag signal. Reviewed-game signal wins
// over playtime signal when both flags are set. A scrape failure or an app
// with no mappable tags skips that game's group rather than failing.
func (s *SignalAggregator) TagGroups(ctx context.Context, accountID int64) ([][]int64, error) {
	groups, err := s.store.ListInterestTagGroups(accountID)
	if err != nil {
		return nil, err
	}

	profile, err := s.store.GetSteamProfile(accountID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return groups, nil
	}

	var appIDs []int64
	var limit int
	switch {
	case profile.IsReview:
		appIDs, err = s.store.ListReviewedAppIDs(accountID)
		limit = maxReviewedGames
	case profile.IsPlaytime:
		appIDs, err = s.store.ListPlaytimeAppIDs(accountID)
		limit = maxPlaytimeGames
	default:
		return groups, nil
	}
	if err != nil {
		return nil, err
	}
	if len(appIDs) > limit {
		appIDs = appIDs[:limit]
	}

	for _, appID := range appIDs {
		group, err := s.gameTagGroup(ctx, appID)
		if err != nil {
			logger.Warn("skipping game signal group", "app_id", appID, "error", err)
			continue
		}
		if len(group) > 0 {
			groups = append(groups, group)
		}
	}
	return groups, nil
}

// gameTagGroup maps one app's popular-tag labels to store tag ids through
// the catalog. Labels without a catalog row are dropped.
func (s *SignalAggregator) gameTagGroup(ctx context.Context, appID int64) ([]int64, error) {
	labels, err := s.tags.PopularTags(ctx, appID)
	if err != nil {
		return nil, err
	}
	if len(labels) == 0 {
		return nil, nil
	}
	return s.store.GetSteamTagIDsByNamesEN(labels)
}

// InterestTagNamesEN is the name-based signal consumer used by the bulk
// listing.
func (s *SignalAggregator) InterestTagNamesEN(accountID int64) ([]string, error) {
	return s.store.GetInterestTagNamesEN(accountID)
}

// FlatTags flattens tag groups into a deduplicated set, preserving first
// appearance order.
func FlatTags(groups [][]int64) []int64 {
	seen := make(map[int64]bool)
	flat := make([]int64, 0)
	for _, group := range groups {
		for _, id := range group {
			if !seen[id] {
				seen[id] = true
				flat = append(flat, id)
			}
		}
	}
	return flat
}
