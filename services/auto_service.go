package services

import (
	"context"
	"sort"

	"game_mate/models"
)

// How many of the most frequent signal tags drive the auto search.
const autoTagCount = 3

// AutoRecommend recommends without a query: the tags appearing in the most
// of the user's signal groups drive the search. A signal where no tag
// repeats across groups is too weak to act on.
func (s *RecommendService) AutoRecommend(ctx context.Context, accountID int64) (*models.ChatResult, error) {
	account, err := s.store.GetAccountByID(accountID)
	if err != nil {
		return nil, err
	}

	groups, err := s.signals.TagGroups(ctx, accountID)
	if err != nil {
		return nil, err
	}

	finalTags := mostFrequentTags(groups, autoTagCount)
	if len(finalTags) == 0 {
		return nil, ErrInsufficientSignal
	}

	appIDs, err := s.searcher.Find(ctx, SearchParams{
		Tags:      finalTags,
		Exclude:   s.ownedSet(ctx, account),
		Target:    s.cfg.Recommend.ChatResultCount,
		PageLimit: s.cfg.Recommend.WideSearchPageLimit,
		Age:       account.Age,
	})
	if err != nil {
		return nil, err
	}
	return s.respond(ctx, MsgSuccess, appIDs)
}

// mostFrequentTags counts tag occurrences across groups and returns the n
// most common, first-seen order breaking ties. If no tag occurs more than
// once there is no consensus and the result is empty.
func mostFrequentTags(groups [][]int64, n int) []int64 {
	counts := make(map[int64]int)
	order := make([]int64, 0)
	for _, group := range groups {
		for _, id := range group {
			if counts[id] == 0 {
				order = append(order, id)
			}
			counts[id]++
		}
	}
	if len(order) == 0 {
		return nil
	}

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})
	if counts[order[0]] <= 1 {
		return nil
	}
	if len(order) > n {
		order = order[:n]
	}
	return order
}
