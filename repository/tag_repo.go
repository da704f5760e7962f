package repository

import (
	"strings"

	"game_mate/db"
	"game_mate/models"
)

// placeholders builds a "?, ?, ?" list for IN clauses.
func placeholders(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.Repeat("?,", n-1) + "?"
}

func int64Args(ids []int64) []interface{} {
	args := make([]interface{}, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	return args
}

// GetTagOptions returns the full {name_ko, steam_tag_id} vocabulary handed
// to the tag-extraction prompts.
func GetTagOptions() ([]models.TagOption, error) {
	rows, err := db.DB.Query(`SELECT name_ko, steam_tag_id FROM tags`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	options := make([]models.TagOption, 0)
	for rows.Next() {
		var opt models.TagOption
		if err := rows.Scan(&opt.NameKO, &opt.SteamTagID); err != nil {
			continue
		}
		options = append(options, opt)
	}
	return options, rows.Err()
}

// GetTagOptionsBySteamIDs returns the vocabulary rows for the given store
// tag ids, used to re-label signal groups before tag inference.
func GetTagOptionsBySteamIDs(steamTagIDs []int64) ([]models.TagOption, error) {
	if len(steamTagIDs) == 0 {
		return nil, nil
	}
	query := `SELECT name_ko, steam_tag_id FROM tags WHERE steam_tag_id IN (` + placeholders(len(steamTagIDs)) + `)`
	rows, err := db.DB.Query(query, int64Args(steamTagIDs)...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	options := make([]models.TagOption, 0)
	for rows.Next() {
		var opt models.TagOption
		if err := rows.Scan(&opt.NameKO, &opt.SteamTagID); err != nil {
			continue
		}
		options = append(options, opt)
	}
	return options, rows.Err()
}

// GetSteamTagIDsByNamesEN maps the English labels scraped from an app
// page's popular-tag panel back to store tag ids. Exact name match only.
func GetSteamTagIDsByNamesEN(names []string) ([]int64, error) {
	if len(names) == 0 {
		return nil, nil
	}
	args := make([]interface{}, len(names))
	for i, name := range names {
		args[i] = name
	}
	query := `SELECT steam_tag_id FROM tags WHERE name_en IN (` + placeholders(len(names)) + `)`
	rows, err := db.DB.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := make([]int64, 0, len(names))
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			continue
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// GetInterestTagNamesEN returns the distinct English names of the user's
// interest tags, skipping rows without a store counterpart.
func GetInterestTagNamesEN(accountID int64) ([]string, error) {
	rows, err := db.DB.Query(`
		SELECT DISTINCT t.name_en
		FROM account_interests ai
		JOIN interest_tags it ON it.interest_id = ai.interest_id
		JOIN tags t ON t.id = it.tag_id
		WHERE ai.account_id = ? AND t.steam_tag_id != 0
	`, accountID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	names := make([]string, 0)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			continue
		}
		names = append(names, name)
	}
	return names, rows.Err()
}
