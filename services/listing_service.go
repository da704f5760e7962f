package services

import (
	"context"
	"sort"

	"game_mate/config"
	"game_mate/logger"
	"game_mate/models"
	"game_mate/utils"
)

// ListingService builds the bulk dual-list recommendation: the catalog
// scored against the user's interest tag names and, separately, against a
// playtime-derived name subset, each returned as a top-N list.
type ListingService struct {
	store   Store
	steam   StoreClient
	player  PlayerClient
	signals *SignalAggregator
	cfg     *config.Config
}

func NewListingService(store Store, steamClient StoreClient, player PlayerClient, signals *SignalAggregator, cfg *config.Config) *ListingService {
	return &ListingService{store: store, steam: steamClient, player: player, signals: signals, cfg: cfg}
}

// RecommendedLists scores the age-filtered catalog for one user. Owned
// games are excluded before scoring; a failed library fetch degrades to an
// empty exclusion set.
func (s *ListingService) RecommendedLists(ctx context.Context, accountID int64) (*models.RecommendedLists, error) {
	account, err := s.store.GetAccountByID(accountID)
	if err != nil {
		return nil, err
	}

	interestNames, err := s.signals.InterestTagNamesEN(accountID)
	if err != nil {
		return nil, err
	}
	playedNames := s.playedTagNames(ctx, accountID, len(interestNames))

	owned := make(map[int64]bool)
	if account.SteamID != "" {
		ids, err := s.player.OwnedAppIDs(ctx, account.SteamID)
		if err != nil {
			logger.Warn("owned games unavailable, skipping exclusion", "account_id", accountID, "error", err)
		}
		for _, id := range ids {
			owned[id] = true
		}
	}

	games, err := s.store.ListScorableGames(account.Age)
	if err != nil {
		return nil, err
	}

	lists := BuildLists(games, interestNames, playedNames, owned, s.cfg.Recommend.ListResultCount)
	return &lists, nil
}

// playedTagNames derives a tag-name set from the user's most-played games,
// capped to the interest set's cardinality so the playtime list never
// out-weighs the explicit signal. Any failure degrades to empty.
func (s *ListingService) playedTagNames(ctx context.Context, accountID int64, limit int) []string {
	if limit <= 0 {
		return nil
	}
	appIDs, err := s.store.ListPlaytimeAppIDs(accountID)
	if err != nil {
		logger.Warn("playtime rows unavailable", "account_id", accountID, "error", err)
		return nil
	}

	names := make([]string, 0, limit)
	for _, appID := range appIDs {
		labels, err := s.steam.PopularTags(ctx, appID)
		if err != nil {
			logger.Warn("popular tags unavailable", "app_id", appID, "error", err)
			continue
		}
		names = append(names, labels...)
	}
	names = utils.DeduplicateSlice(names)
	if len(names) > limit {
		names = names[:limit]
	}
	return names
}

// BuildLists is the pure dual-list scorer: games already filtered by age
// come in, two descending top-limit lists and both tag-set echoes come out.
func BuildLists(games []models.Game, interestNames, playedNames []string, owned map[int64]bool, limit int) models.RecommendedLists {
	interestSet := nameSet(interestNames)
	playedSet := nameSet(playedNames)

	interestScored := make([]models.ScoredGame, 0, len(games))
	playtimeScored := make([]models.ScoredGame, 0, len(games))
	for _, g := range games {
		if owned[g.AppID] {
			continue
		}
		interestScored = append(interestScored, models.ScoredGame{Game: g, Score: ScoreInterest(g, interestSet)})
		if PassesQualityFloor(g) {
			playtimeScored = append(playtimeScored, models.ScoredGame{Game: g, Score: ScorePlaytime(g, playedSet)})
		}
	}

	sortByScore(interestScored)
	sortByScore(playtimeScored)

	return models.RecommendedLists{
		InterestGames: topN(interestScored, limit),
		PlaytimeGames: topN(playtimeScored, limit),
		InterestTags:  interestNames,
		PlaytimeTags:  playedNames,
	}
}

func sortByScore(scored []models.ScoredGame) {
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
}

func topN(scored []models.ScoredGame, n int) []models.ScoredGame {
	if len(scored) > n {
		scored = scored[:n]
	}
	return scored
}

func nameSet(names []string) map[string]bool {
	set := make(map[string]bool, len(names))
	for _, name := range names {
		set[name] = true
	}
	return set
}
