package models

// Game is one row of the offline-ingested game catalog, the scoring
// substrate for the bulk recommendation lists.
type Game struct {
	AppID                 int64          `json:"app_id"`
	Name                  string         `json:"name"`
	ReleaseDate           string         `json:"release_date"`
	RequiredAge           int            `json:"required_age"`
	Price                 float64        `json:"price"`
	HeaderImage           string         `json:"header_image"`
	MetacriticScore       int            `json:"metacritic_score"`
	Categories            []string       `json:"categories"`
	Genres                []string       `json:"genres"`
	EstimatedOwners       string         `json:"estimated_owners"`
	MedianPlaytimeForever int            `json:"median_playtime_forever"`
	Tags                  map[string]int `json:"tags"`
}

// ScoredGame pairs a catalog game with its recommendation score.
type ScoredGame struct {
	Game  Game    `json:"game"`
	Score float64 `json:"score"`
}

// SearchEntry is one row of the store's tag-filtered search listing:
// an app id plus the small tag-id list the listing itself carries.
type SearchEntry struct {
	AppID  int64   `json:"app_id"`
	TagIDs []int64 `json:"tag_ids"`
}

// GameDetail holds the two description blocks scraped from an app page.
type GameDetail struct {
	ShortInform string `json:"short_inform"`
	LongInform  string `json:"long_inform"`
}

// GameData is one enriched recommendation entry in a chat response.
type GameData struct {
	SteamAppID  int64  `json:"steam_app_id"`
	Title       string `json:"title"`
	Image       string `json:"image"`
	Description string `json:"description"`
	GoodReview  string `json:"good_review"`
	BadReview   string `json:"bad_review"`
}

// GameSummary is the summarizer output for one game.
type GameSummary struct {
	Description string `json:"description"`
	GoodReview  string `json:"good_review"`
	BadReview   string `json:"bad_review"`
}

// RecommendedLists is the bulk dual-list output: the top games scored
// against the interest-derived tag names and against the playtime-derived
// subset, together with both tag-set echoes.
type RecommendedLists struct {
	InterestGames []ScoredGame `json:"interest_games"`
	PlaytimeGames []ScoredGame `json:"playtime_games"`
	InterestTags  []string     `json:"interest_tags"`
	PlaytimeTags  []string     `json:"playtime_tags"`
}
