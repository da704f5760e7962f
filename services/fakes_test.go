package services

import (
	"context"
	"database/sql"
	"sync"

	"game_mate/config"
	"game_mate/models"
	"game_mate/steam"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	r := &cfg.Recommend
	r.CollabUserThreshold = 30
	r.SimilarityThreshold = 0.3
	r.SimilarUserLimit = 3
	r.ChatResultCount = 3
	r.ListResultCount = 15
	r.AdultAge = 20
	r.SearchPageLimit = 10
	r.WideSearchPageLimit = 50
	r.ReviewDayRange = 100
	r.ReviewPageSize = 100
	r.RestrictedTagIDs = []int64{12095, 6650, 5611, 9130, 24904}
	cfg.Sync.Concurrency = 2
	return cfg
}

// fakeStore is an in-memory Store.
type fakeStore struct {
	accounts       map[int64]*models.Account
	count          int
	accountIDs     []int64
	interestGroups map[int64][][]int64
	profiles       map[int64]*models.SteamProfile
	reviewed       map[int64][]int64
	playtimes      map[int64][]int64
	tagOptions     []models.TagOption
	nameToID       map[string]int64
	interestNames  map[int64][]string
	games          []models.Game
	linked         []models.Account

	mu                sync.Mutex // sync workers write concurrently
	upserts           map[int64][2]bool
	insertedReviews   [][2]int64
	insertedPlaytimes [][2]int64
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		accounts:       make(map[int64]*models.Account),
		interestGroups: make(map[int64][][]int64),
		profiles:       make(map[int64]*models.SteamProfile),
		reviewed:       make(map[int64][]int64),
		playtimes:      make(map[int64][]int64),
		nameToID:       make(map[string]int64),
		interestNames:  make(map[int64][]string),
		upserts:        make(map[int64][2]bool),
	}
}

func (s *fakeStore) GetAccountByID(id int64) (*models.Account, error) {
	if a, ok := s.accounts[id]; ok {
		return a, nil
	}
	return nil, sql.ErrNoRows
}

func (s *fakeStore) CountAccounts() (int, error) { return s.count, nil }

func (s *fakeStore) ListAccountIDs() ([]int64, error) { return s.accountIDs, nil }

func (s *fakeStore) ListSteamLinkedAccounts() ([]models.Account, error) { return s.linked, nil }

func (s *fakeStore) ListInterestTagGroups(accountID int64) ([][]int64, error) {
	return s.interestGroups[accountID], nil
}

func (s *fakeStore) GetSteamProfile(accountID int64) (*models.SteamProfile, error) {
	return s.profiles[accountID], nil
}

func (s *fakeStore) UpsertSteamProfile(accountID int64, isReview, isPlaytime bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.upserts[accountID] = [2]bool{isReview, isPlaytime}
	return nil
}

func (s *fakeStore) ListReviewedAppIDs(accountID int64) ([]int64, error) {
	return s.reviewed[accountID], nil
}

func (s *fakeStore) ListPlaytimeAppIDs(accountID int64) ([]int64, error) {
	return s.playtimes[accountID], nil
}

func (s *fakeStore) InsertReviewedGame(accountID, appID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.insertedReviews = append(s.insertedReviews, [2]int64{accountID, appID})
	return nil
}

func (s *fakeStore) InsertPlaytimeGame(accountID, appID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.insertedPlaytimes = append(s.insertedPlaytimes, [2]int64{accountID, appID})
	return nil
}

func (s *fakeStore) GetTagOptions() ([]models.TagOption, error) { return s.tagOptions, nil }

func (s *fakeStore) GetTagOptionsBySteamIDs(steamTagIDs []int64) ([]models.TagOption, error) {
	wanted := make(map[int64]bool, len(steamTagIDs))
	for _, id := range steamTagIDs {
		wanted[id] = true
	}
	options := make([]models.TagOption, 0)
	for _, opt := range s.tagOptions {
		if wanted[opt.SteamTagID] {
			options = append(options, opt)
		}
	}
	return options, nil
}

func (s *fakeStore) GetSteamTagIDsByNamesEN(names []string) ([]int64, error) {
	ids := make([]int64, 0, len(names))
	for _, name := range names {
		if id, ok := s.nameToID[name]; ok {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func (s *fakeStore) GetInterestTagNamesEN(accountID int64) ([]string, error) {
	return s.interestNames[accountID], nil
}

func (s *fakeStore) ListScorableGames(maxAge int) ([]models.Game, error) {
	eligible := make([]models.Game, 0, len(s.games))
	for _, g := range s.games {
		if g.RequiredAge <= maxAge {
			eligible = append(eligible, g)
		}
	}
	return eligible, nil
}

// fakeStoreClient is an in-memory StoreClient.
type fakeStoreClient struct {
	tagEntries  []models.SearchEntry
	termEntries map[string][]models.SearchEntry
	popular     map[int64][]string
	popularErr  map[int64]error
	details     map[int64]models.GameDetail
	gameData    map[int64]models.GameData
	reviewTexts []string

	searchByTagsCalls int
	lastSearchTags    []int64
}

func newFakeStoreClient() *fakeStoreClient {
	return &fakeStoreClient{
		termEntries: make(map[string][]models.SearchEntry),
		popular:     make(map[int64][]string),
		popularErr:  make(map[int64]error),
		details:     make(map[int64]models.GameDetail),
		gameData:    make(map[int64]models.GameData),
	}
}

func (c *fakeStoreClient) SearchByTags(_ context.Context, tagIDs []int64, limit int) ([]models.SearchEntry, error) {
	c.searchByTagsCalls++
	c.lastSearchTags = tagIDs
	if len(c.tagEntries) > limit {
		return append([]models.SearchEntry(nil), c.tagEntries[:limit]...), nil
	}
	return append([]models.SearchEntry(nil), c.tagEntries...), nil
}

func (c *fakeStoreClient) SearchByTerm(_ context.Context, term string, limit int) ([]models.SearchEntry, error) {
	entries := c.termEntries[term]
	if len(entries) > limit {
		entries = entries[:limit]
	}
	return append([]models.SearchEntry(nil), entries...), nil
}

func (c *fakeStoreClient) PopularTags(_ context.Context, appID int64) ([]string, error) {
	if err := c.popularErr[appID]; err != nil {
		return nil, err
	}
	return c.popular[appID], nil
}

func (c *fakeStoreClient) Detail(_ context.Context, appID int64) (models.GameDetail, models.GameData, error) {
	data, ok := c.gameData[appID]
	if !ok {
		data = models.GameData{SteamAppID: appID, Title: "Unknown Title"}
	}
	return c.details[appID], data, nil
}

func (c *fakeStoreClient) Reviews(_ context.Context, _ int64, _ steam.ReviewFilter, _, _, _ int) ([]string, error) {
	return c.reviewTexts, nil
}

// fakePlayer is an in-memory PlayerClient.
type fakePlayer struct {
	visible     map[string]bool
	owned       map[string][]int64
	topPlaytime map[string][]int64
	recommended map[string][]int64
}

func newFakePlayer() *fakePlayer {
	return &fakePlayer{
		visible:     make(map[string]bool),
		owned:       make(map[string][]int64),
		topPlaytime: make(map[string][]int64),
		recommended: make(map[string][]int64),
	}
}

func (p *fakePlayer) ProfileVisible(_ context.Context, steamID string) (bool, error) {
	return p.visible[steamID], nil
}

func (p *fakePlayer) OwnedAppIDs(_ context.Context, steamID string) ([]int64, error) {
	return p.owned[steamID], nil
}

func (p *fakePlayer) TopPlaytimeAppIDs(_ context.Context, steamID string, limit int) ([]int64, error) {
	ids := p.topPlaytime[steamID]
	if len(ids) > limit {
		ids = ids[:limit]
	}
	return ids, nil
}

func (p *fakePlayer) RecommendedAppIDs(_ context.Context, steamID string, limit int) ([]int64, error) {
	ids := p.recommended[steamID]
	if len(ids) > limit {
		ids = ids[:limit]
	}
	return ids, nil
}

// fakeText is a canned TextClient. Like the real client, InferTags only
// returns ids present in the supplied vocabulary.
type fakeText struct {
	action   models.AgentAction
	direct   []int64
	inferred []int64
	summary  models.GameSummary

	inferVocab []models.TagOption
}

func (t *fakeText) ClassifyIntent(_ context.Context, _ string) (models.AgentAction, error) {
	return t.action, nil
}

func (t *fakeText) ExtractTags(_ context.Context, _ string, _ []models.TagOption) ([]int64, error) {
	return t.direct, nil
}

func (t *fakeText) InferTags(_ context.Context, _ string, vocabulary []models.TagOption, maxTags int) ([]int64, error) {
	t.inferVocab = vocabulary
	known := make(map[int64]bool, len(vocabulary))
	for _, opt := range vocabulary {
		known[opt.SteamTagID] = true
	}
	kept := make([]int64, 0, maxTags)
	for _, id := range t.inferred {
		if len(kept) >= maxTags {
			break
		}
		if known[id] {
			kept = append(kept, id)
		}
	}
	return kept, nil
}

func (t *fakeText) Summarize(_ context.Context, _ string, _, _ []string) (models.GameSummary, error) {
	return t.summary, nil
}
