package services

import (
	"context"

	"game_mate/models"
	"game_mate/steam"
)

// StoreClient is the game-store surface the recommendation pipeline
// consumes: tag/term search, app-page scraping, and the review endpoint.
type StoreClient interface {
	SearchByTags(ctx context.Context, tagIDs []int64, limit int) ([]models.SearchEntry, error)
	SearchByTerm(ctx context.Context, term string, limit int) ([]models.SearchEntry, error)
	PopularTags(ctx context.Context, appID int64) ([]string, error)
	Detail(ctx context.Context, appID int64) (models.GameDetail, models.GameData, error)
	Reviews(ctx context.Context, appID int64, filter steam.ReviewFilter, dayRange, pageSize, maxCount int) ([]string, error)
}

// PlayerClient is the player-data surface used for exclusion sets and the
// daily signal sync.
type PlayerClient interface {
	ProfileVisible(ctx context.Context, steamID string) (bool, error)
	OwnedAppIDs(ctx context.Context, steamID string) ([]int64, error)
	TopPlaytimeAppIDs(ctx context.Context, steamID string, limit int) ([]int64, error)
	RecommendedAppIDs(ctx context.Context, steamID string, limit int) ([]int64, error)
}

// TextClient is the language-model surface: intent routing, tag mapping,
// and review summarization. Implementations must only return tag ids
// present in the supplied vocabulary.
type TextClient interface {
	ClassifyIntent(ctx context.Context, message string) (models.AgentAction, error)
	ExtractTags(ctx context.Context, query string, catalog []models.TagOption) ([]int64, error)
	InferTags(ctx context.Context, query string, vocabulary []models.TagOption, maxTags int) ([]int64, error)
	Summarize(ctx context.Context, description string, goodReviews, badReviews []string) (models.GameSummary, error)
}

// Store is the database surface behind the services, implemented over the
// repository package and replaced by fakes in tests.
type Store interface {
	GetAccountByID(id int64) (*models.Account, error)
	CountAccounts() (int, error)
	ListAccountIDs() ([]int64, error)
	ListSteamLinkedAccounts() ([]models.Account, error)
	ListInterestTagGroups(accountID int64) ([][]int64, error)
	GetSteamProfile(accountID int64) (*models.SteamProfile, error)
	UpsertSteamProfile(accountID int64, isReview, isPlaytime bool) error
	ListReviewedAppIDs(accountID int64) ([]int64, error)
	ListPlaytimeAppIDs(accountID int64) ([]int64, error)
	InsertReviewedGame(accountID, appID int64) error
	InsertPlaytimeGame(accountID, appID int64) error
	GetTagOptions() ([]models.TagOption, error)
	GetTagOptionsBySteamIDs(steamTagIDs []int64) ([]models.TagOption, error)
	GetSteamTagIDsByNamesEN(names []string) ([]int64, error)
	GetInterestTagNamesEN(accountID int64) ([]string, error)
	ListScorableGames(maxAge int) ([]models.Game, error)
}
