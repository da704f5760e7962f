package services

import (
	"context"
	"errors"
	"math/rand"
	"sync"

	"game_mate/config"
	"game_mate/logger"
	"game_mate/models"
	"game_mate/steam"
)

// Inferred-tag caps per mode. Both modes infer within the user's own
// signal vocabulary; collaborative mode gets fewer slots.
const (
	maxContentInferTags = 3
	maxCollabInferTags  = 2
)

// How many of a pooled game's popular tags participate in the overlap
// check during collaborative collection.
const poolOverlapTagCount = 7

// Fallback text when an app page has no description blocks.
const noDescriptionFallback = "No description available."

// RecommendService is the chat-facing orchestrator: it routes a message by
// intent, selects content-based or collaborative search by population size,
// and enriches the final candidates.
type RecommendService struct {
	store    Store
	steam    StoreClient
	player   PlayerClient
	text     TextClient
	signals  *SignalAggregator
	similar  *SimilarUserFinder
	searcher *Searcher
	gate     *AgeGate
	cfg      *config.Config

	mu  sync.Mutex // guards rng
	rng *rand.Rand
}

func NewRecommendService(
	store Store,
	steamClient StoreClient,
	player PlayerClient,
	text TextClient,
	signals *SignalAggregator,
	similar *SimilarUserFinder,
	searcher *Searcher,
	gate *AgeGate,
	cfg *config.Config,
	src rand.Source,
) *RecommendService {
	return &RecommendService{
		store:    store,
		steam:    steamClient,
		player:   player,
		text:     text,
		signals:  signals,
		similar:  similar,
		searcher: searcher,
		gate:     gate,
		cfg:      cfg,
		rng:      rand.New(src),
	}
}

// Chat handles one chat message end to end. Terminal recommendation
// outcomes come back as sentinel errors for the handler to translate.
func (s *RecommendService) Chat(ctx context.Context, accountID int64, message string) (*models.ChatResult, error) {
	account, err := s.store.GetAccountByID(accountID)
	if err != nil {
		return nil, err
	}

	action, err := s.text.ClassifyIntent(ctx, message)
	if err != nil {
		return nil, err
	}

	switch action.Action {
	case models.ActionSearchGame:
		return s.searchGame(ctx, account, action.ActionOutput)
	case models.ActionSearchGameInfo:
		return s.searchGameInfo(ctx, account, action.ActionOutput)
	case models.ActionSearchLikeGame:
		return s.searchLikeGame(ctx, account, action.ActionOutput)
	default:
		return &models.ChatResult{Message: MsgNotSupported, GameData: []models.GameData{}}, nil
	}
}

// searchGame picks the strategy by population size: collaborative once the
// user base is large enough to pool from, content-based below that.
func (s *RecommendService) searchGame(ctx context.Context, account *models.Account, query string) (*models.ChatResult, error) {
	count, err := s.store.CountAccounts()
	if err != nil {
		return nil, err
	}
	if count >= s.cfg.Recommend.CollabUserThreshold {
		return s.collaborativeSearch(ctx, account, query)
	}
	return s.contentSearch(ctx, account, query)
}

// contentSearch drives candidates from the query's extracted tags plus
// tags inferred within the user's own signal vocabulary.
func (s *RecommendService) contentSearch(ctx context.Context, account *models.Account, query string) (*models.ChatResult, error) {
	catalog, err := s.store.GetTagOptions()
	if err != nil {
		return nil, err
	}

	direct, err := s.text.ExtractTags(ctx, query, catalog)
	if err != nil {
		return nil, err
	}
	// Restricted queries short-circuit before any search runs.
	if !s.gate.Allows(account.Age, direct) {
		return nil, ErrRestricted
	}

	// Only direct extraction sees the full catalog; inference is confined
	// to the user's aggregated signal tags.
	groups, err := s.signals.TagGroups(ctx, account.ID)
	if err != nil {
		return nil, err
	}
	vocabulary, err := s.store.GetTagOptionsBySteamIDs(FlatTags(groups))
	if err != nil {
		return nil, err
	}
	inferred, err := s.text.InferTags(ctx, query, vocabulary, maxContentInferTags)
	if err != nil {
		return nil, err
	}

	searchTags := unionTags(direct, inferred)
	if len(searchTags) == 0 {
		return nil, ErrNeedsClarification
	}

	appIDs, err := s.searcher.Find(ctx, SearchParams{
		Tags:        searchTags,
		MustOverlap: direct,
		Exclude:     s.ownedSet(ctx, account),
		Target:      s.cfg.Recommend.ChatResultCount,
		PageLimit:   s.cfg.Recommend.SearchPageLimit,
		Age:         account.Age,
	})
	if err != nil {
		return nil, err
	}
	return s.respond(ctx, MsgSuccess, appIDs)
}

// collaborativeSearch pools games from similar users first: full overlap
// with every input tag wins, any overlap is the relaxation, and the store
// search tops up whatever is still missing.
func (s *RecommendService) collaborativeSearch(ctx context.Context, account *models.Account, query string) (*models.ChatResult, error) {
	groups, err := s.signals.TagGroups(ctx, account.ID)
	if err != nil {
		return nil, err
	}
	flat := FlatTags(groups)
	if len(flat) == 0 {
		return nil, ErrInsufficientSignal
	}

	catalog, err := s.store.GetTagOptions()
	if err != nil {
		return nil, err
	}
	direct, err := s.text.ExtractTags(ctx, query, catalog)
	if err != nil {
		return nil, err
	}
	if !s.gate.Allows(account.Age, direct) {
		return nil, ErrRestricted
	}

	vocabulary, err := s.store.GetTagOptionsBySteamIDs(flat)
	if err != nil {
		return nil, err
	}
	inferred, err := s.text.InferTags(ctx, query, vocabulary, maxCollabInferTags)
	if err != nil {
		return nil, err
	}

	inputTags := unionTags(direct, inferred)
	if len(inputTags) == 0 {
		return nil, ErrNeedsClarification
	}

	similarIDs, err := s.similar.FindSimilar(ctx, account.ID, flat)
	if err != nil {
		return nil, err
	}
	pool := s.similarUsersGamePool(similarIDs)
	s.shuffleIDs(pool)

	owned := s.ownedSet(ctx, account)
	target := s.cfg.Recommend.ChatResultCount
	found := s.collectFromPool(ctx, pool, inputTags, owned, account.Age, target)

	if len(found) < target {
		exclude := make(map[int64]bool, len(owned)+len(pool)+len(found))
		for id := range owned {
			exclude[id] = true
		}
		for _, id := range pool {
			exclude[id] = true
		}
		for _, id := range found {
			exclude[id] = true
		}
		topUp, err := s.searcher.Find(ctx, SearchParams{
			Tags:        inputTags,
			MustOverlap: direct,
			Exclude:     exclude,
			Target:      target - len(found),
			PageLimit:   s.cfg.Recommend.WideSearchPageLimit,
			Age:         account.Age,
		})
		if err == nil {
			found = append(found, topUp...)
		} else if !errors.Is(err, ErrNoResults) {
			return nil, err
		}
	}

	if len(found) == 0 {
		return nil, ErrNoResults
	}
	return s.respond(ctx, MsgSuccess, found)
}

// collectFromPool accepts pooled games whose first popular tags contain all
// input tags; only if that pass yields nothing does any overlap count.
func (s *RecommendService) collectFromPool(ctx context.Context, pool, inputTags []int64, owned map[int64]bool, age, target int) []int64 {
	poolTags := make(map[int64][]int64, len(pool))
	for _, appID := range pool {
		if owned[appID] {
			continue
		}
		tags, err := s.poolGameTags(ctx, appID)
		if err != nil {
			logger.Warn("skipping pooled game", "app_id", appID, "error", err)
			continue
		}
		poolTags[appID] = tags
	}

	found := make([]int64, 0, target)
	taken := make(map[int64]bool, target)
	for _, appID := range pool {
		if len(found) >= target {
			break
		}
		tags, ok := poolTags[appID]
		if !ok || taken[appID] {
			continue
		}
		if containsAll(tags, inputTags) && s.gate.Allows(age, tags) {
			taken[appID] = true
			found = append(found, appID)
		}
	}
	if len(found) > 0 {
		return found
	}

	for _, appID := range pool {
		if len(found) >= target {
			break
		}
		tags, ok := poolTags[appID]
		if !ok || taken[appID] {
			continue
		}
		if overlapsAny(tags, inputTags) && s.gate.Allows(age, tags) {
			taken[appID] = true
			found = append(found, appID)
		}
	}
	return found
}

// poolGameTags resolves a pooled game's first popular tags to store tag
// ids through the catalog.
func (s *RecommendService) poolGameTags(ctx context.Context, appID int64) ([]int64, error) {
	labels, err := s.steam.PopularTags(ctx, appID)
	if err != nil {
		return nil, err
	}
	ids, err := s.store.GetSteamTagIDsByNamesEN(labels)
	if err != nil {
		return nil, err
	}
	if len(ids) > poolOverlapTagCount {
		ids = ids[:poolOverlapTagCount]
	}
	return ids, nil
}

// similarUsersGamePool gathers the reviewed and most-played games of the
// similar users, deduplicated. Per-user row failures are skipped.
func (s *RecommendService) similarUsersGamePool(similarIDs []int64) []int64 {
	seen := make(map[int64]bool)
	pool := make([]int64, 0)
	for _, accountID := range similarIDs {
		reviewed, err := s.store.ListReviewedAppIDs(accountID)
		if err != nil {
			logger.Warn("reviewed rows unavailable", "account_id", accountID, "error", err)
		}
		played, err := s.store.ListPlaytimeAppIDs(accountID)
		if err != nil {
			logger.Warn("playtime rows unavailable", "account_id", accountID, "error", err)
		}
		for _, appID := range append(reviewed, played...) {
			if !seen[appID] {
				seen[appID] = true
				pool = append(pool, appID)
			}
		}
	}
	return pool
}

// searchGameInfo looks up one named game. Minors skip rows without tag
// data, since those cannot be age-checked; a restricted hit is then a
// restricted outcome, not a skip.
func (s *RecommendService) searchGameInfo(ctx context.Context, account *models.Account, title string) (*models.ChatResult, error) {
	entries, err := s.steam.SearchByTerm(ctx, title, s.cfg.Recommend.SearchPageLimit)
	if err != nil {
		return nil, err
	}
	if !s.gate.Adult(account.Age) {
		tagged := make([]models.SearchEntry, 0, len(entries))
		for _, e := range entries {
			if len(e.TagIDs) > 0 {
				tagged = append(tagged, e)
			}
		}
		entries = tagged
	}
	if len(entries) == 0 {
		return nil, ErrNoResults
	}

	first := entries[0]
	if !s.gate.Allows(account.Age, first.TagIDs) {
		return nil, ErrRestricted
	}
	return s.respond(ctx, MsgGameInfo, []int64{first.AppID})
}

// searchLikeGame finds games similar to a named seed game: the seed's
// leading tags drive a tag search that excludes the seed and the library.
func (s *RecommendService) searchLikeGame(ctx context.Context, account *models.Account, title string) (*models.ChatResult, error) {
	seed, err := s.searcher.SeedByTerm(ctx, title, s.cfg.Recommend.WideSearchPageLimit, account.Age)
	if err != nil {
		return nil, err
	}

	seedTags := seed.TagIDs
	if len(seedTags) > 3 {
		seedTags = seedTags[:3]
	}
	if len(seedTags) == 0 {
		return nil, ErrNoResults
	}

	exclude := s.ownedSet(ctx, account)
	exclude[seed.AppID] = true

	appIDs, err := s.searcher.Find(ctx, SearchParams{
		Tags:      seedTags,
		Exclude:   exclude,
		Target:    s.cfg.Recommend.ChatResultCount,
		PageLimit: s.cfg.Recommend.WideSearchPageLimit,
		Age:       account.Age,
	})
	if err != nil {
		return nil, err
	}
	return s.respond(ctx, MsgSuccess, appIDs)
}

// respond enriches the final candidates into chat game entries. Individual
// enrichment failures drop that game; losing all of them is a no-result.
func (s *RecommendService) respond(ctx context.Context, message string, appIDs []int64) (*models.ChatResult, error) {
	games := make([]models.GameData, 0, len(appIDs))
	for _, appID := range appIDs {
		data, err := s.enrichGame(ctx, appID)
		if err != nil {
			logger.Warn("dropping unenrichable game", "app_id", appID, "error", err)
			continue
		}
		games = append(games, data)
	}
	if len(games) == 0 {
		return nil, ErrNoResults
	}
	return &models.ChatResult{Message: message, GameData: games}, nil
}

func (s *RecommendService) enrichGame(ctx context.Context, appID int64) (models.GameData, error) {
	detail, data, err := s.steam.Detail(ctx, appID)
	if err != nil {
		return models.GameData{}, err
	}

	description := detail.ShortInform
	if description == "" {
		description = detail.LongInform
	}
	if description == "" {
		description = noDescriptionFallback
	}

	r := s.cfg.Recommend
	good, err := s.steam.Reviews(ctx, appID, steam.ReviewsPositive, r.ReviewDayRange, r.ReviewPageSize, r.ReviewPageSize)
	if err != nil {
		logger.Warn("positive reviews unavailable", "app_id", appID, "error", err)
		good = nil
	}
	bad, err := s.steam.Reviews(ctx, appID, steam.ReviewsNegative, r.ReviewDayRange, r.ReviewPageSize, r.ReviewPageSize)
	if err != nil {
		logger.Warn("negative reviews unavailable", "app_id", appID, "error", err)
		bad = nil
	}

	summary, err := s.text.Summarize(ctx, description, good, bad)
	if err != nil {
		logger.Warn("summary unavailable, using raw description", "app_id", appID, "error", err)
		data.Description = description
		return data, nil
	}
	data.Description = summary.Description
	data.GoodReview = summary.GoodReview
	data.BadReview = summary.BadReview
	return data, nil
}

// ownedSet builds the don't-recommend-owned exclusion set. Users without a
// linked library, or a failed fetch, exclude nothing.
func (s *RecommendService) ownedSet(ctx context.Context, account *models.Account) map[int64]bool {
	owned := make(map[int64]bool)
	if account.SteamID == "" {
		return owned
	}
	ids, err := s.player.OwnedAppIDs(ctx, account.SteamID)
	if err != nil {
		logger.Warn("owned games unavailable, skipping exclusion", "account_id", account.ID, "error", err)
		return owned
	}
	for _, id := range ids {
		owned[id] = true
	}
	return owned
}

func (s *RecommendService) shuffleIDs(ids []int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rng.Shuffle(len(ids), func(i, j int) {
		ids[i], ids[j] = ids[j], ids[i]
	})
}

func unionTags(a, b []int64) []int64 {
	seen := make(map[int64]bool, len(a)+len(b))
	union := make([]int64, 0, len(a)+len(b))
	for _, list := range [][]int64{a, b} {
		for _, id := range list {
			if !seen[id] {
				seen[id] = true
				union = append(union, id)
			}
		}
	}
	return union
}

func containsAll(tags, wanted []int64) bool {
	set := make(map[int64]bool, len(tags))
	for _, id := range tags {
		set[id] = true
	}
	for _, id := range wanted {
		if !set[id] {
			return false
		}
	}
	return true
}

func overlapsAny(tags, wanted []int64) bool {
	set := make(map[int64]bool, len(wanted))
	for _, id := range wanted {
		set[id] = true
	}
	return anyTagIn(tags, set)
}
