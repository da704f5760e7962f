package repository

import (
	"database/sql"
	"errors"

	"game_mate/db"
	"game_mate/models"
)

// =====================
// Accounts
// =====================

func GetAccountByID(id int64) (*models.Account, error) {
	row := db.DB.QueryRow(`
		SELECT id, user_id, nickname, age, IFNULL(steam_id, '')
		FROM accounts WHERE id = ?
	`, id)
	a := &models.Account{}
	if err := row.Scan(&a.ID, &a.UserID, &a.Nickname, &a.Age, &a.SteamID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sql.ErrNoRows
		}
		return nil, err
	}
	return a, nil
}

// CountAccounts returns the registered user population, the input of the
// content-based vs collaborative mode switch.
func CountAccounts() (int, error) {
	var count int
	err := db.DB.QueryRow(`SELECT COUNT(*) FROM accounts`).Scan(&count)
	return count, err
}

func ListAccountIDs() ([]int64, error) {
	rows, err := db.DB.Query(`SELECT id FROM accounts`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := make([]int64, 0)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			continue
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// ListSteamLinkedAccounts returns every account with a Steam id, the
// candidate set for the daily signal sync.
func ListSteamLinkedAccounts() ([]models.Account, error) {
	rows, err := db.DB.Query(`
		SELECT id, user_id, nickname, age, steam_id
		FROM accounts WHERE steam_id IS NOT NULL AND steam_id != ''
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	accounts := make([]models.Account, 0)
	for rows.Next() {
		var a models.Account
		if err := rows.Scan(&a.ID, &a.UserID, &a.Nickname, &a.Age, &a.SteamID); err != nil {
			continue
		}
		accounts = append(accounts, a)
	}
	return accounts, rows.Err()
}

// =====================
// Interest signal
// =====================

// ListInterestTagGroups returns the user's interest-derived store tag ids
// grouped per interest, one group per linked interest.
func ListInterestTagGroups(accountID int64) ([][]int64, error) {
	rows, err := db.DB.Query(`
		SELECT ai.interest_id, t.steam_tag_id
		FROM account_interests ai
		JOIN interest_tags it ON it.interest_id = ai.interest_id
		JOIN tags t ON t.id = it.tag_id
		WHERE ai.account_id = ?
		ORDER BY ai.interest_id
	`, accountID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	groups := make([][]int64, 0)
	var current []int64
	var currentInterest int64 = -1
	for rows.Next() {
		var interestID, steamTagID int64
		if err := rows.Scan(&interestID, &steamTagID); err != nil {
			continue
		}
		if interestID != currentInterest {
			if len(current) > 0 {
				groups = append(groups, current)
			}
			current = nil
			currentInterest = interestID
		}
		current = append(current, steamTagID)
	}
	if len(current) > 0 {
		groups = append(groups, current)
	}
	return groups, rows.Err()
}

// =====================
// Steam signal rows
// =====================

// GetSteamProfile returns the account's signal-availability flags, or nil
// when the account was never synced.
func GetSteamProfile(accountID int64) (*models.SteamProfile, error) {
	row := db.DB.QueryRow(`
		SELECT account_id, is_review, is_playtime
		FROM steam_profiles WHERE account_id = ?
	`, accountID)
	p := &models.SteamProfile{}
	if err := row.Scan(&p.AccountID, &p.IsReview, &p.IsPlaytime); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return p, nil
}

func UpsertSteamProfile(accountID int64, isReview, isPlaytime bool) error {
	_, err := db.DB.Exec(`
		INSERT INTO steam_profiles (account_id, is_review, is_playtime)
		VALUES (?, ?, ?)
		ON DUPLICATE KEY UPDATE is_review=VALUES(is_review), is_playtime=VALUES(is_playtime)
	`, accountID, isReview, isPlaytime)
	return err
}

func ListReviewedAppIDs(accountID int64) ([]int64, error) {
	return queryInt64s(`SELECT app_id FROM steam_reviews WHERE account_id = ?`, accountID)
}

func ListPlaytimeAppIDs(accountID int64) ([]int64, error) {
	return queryInt64s(`SELECT app_id FROM steam_playtimes WHERE account_id = ?`, accountID)
}

// InsertReviewedGame adds a reviewed-game row, skipping duplicates.
func InsertReviewedGame(accountID, appID int64) error {
	_, err := db.DB.Exec(`
		INSERT IGNORE INTO steam_reviews (account_id, app_id) VALUES (?, ?)
	`, accountID, appID)
	return err
}

// InsertPlaytimeGame adds a playtime-ranked row, skipping duplicates.
func InsertPlaytimeGame(accountID, appID int64) error {
	_, err := db.DB.Exec(`
		INSERT IGNORE INTO steam_playtimes (account_id, app_id) VALUES (?, ?)
	`, accountID, appID)
	return err
}

// queryInt64s runs a query returning a single int64 column.
func queryInt64s(query string, args ...interface{}) ([]int64, error) {
	rows, err := db.DB.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	results := make([]int64, 0)
	for rows.Next() {
		var v int64
		if err := rows.Scan(&v); err != nil {
			continue
		}
		results = append(results, v)
	}
	return results, rows.Err()
}
