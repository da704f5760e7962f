package models

// Account is the platform user as the recommendation engine sees it.
type Account struct {
	ID       int64  `json:"id"`
	UserID   string `json:"user_id"`
	Nickname string `json:"nickname"`
	Age      int    `json:"age"`
	SteamID  string `json:"steam_id"`
}

// SteamProfile records whether richer Steam signal is available for an
// account. The flags are re-derived from the profile's privacy state on
// every sync; a private profile clears both.
type SteamProfile struct {
	AccountID  int64 `json:"account_id"`
	IsReview   bool  `json:"is_review"`
	IsPlaytime bool  `json:"is_playtime"`
}

// SteamReviewedGame is one of up to three games the account recommended on
// its Steam profile.
type SteamReviewedGame struct {
	AccountID int64 `json:"account_id"`
	AppID     int64 `json:"app_id"`
}

// SteamPlaytimeGame is one of up to two games ranked by total playtime.
type SteamPlaytimeGame struct {
	AccountID int64 `json:"account_id"`
	AppID     int64 `json:"app_id"`
}
