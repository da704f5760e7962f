package repository

import (
	"encoding/json"

	"game_mate/db"
	"game_mate/logger"
	"game_mate/models"
)

// ListScorableGames returns the catalog rows eligible for the bulk
// recommendation lists: age-appropriate and carrying a critic score.
// The age filter runs in SQL so restricted rows never reach the scorer.
func ListScorableGames(maxAge int) ([]models.Game, error) {
	rows, err := db.DB.Query(`
		SELECT app_id, name, IFNULL(release_date, ''), required_age, price,
		       IFNULL(header_image, ''), metacritic_score,
		       IFNULL(categories, '[]'), IFNULL(genres, '[]'),
		       IFNULL(estimated_owners, ''), median_playtime_forever,
		       IFNULL(tags, '{}')
		FROM games
		WHERE required_age <= ? AND metacritic_score IS NOT NULL
	`, maxAge)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	games := make([]models.Game, 0)
	for rows.Next() {
		var g models.Game
		var categoriesJSON, genresJSON, tagsJSON []byte
		if err := rows.Scan(
			&g.AppID, &g.Name, &g.ReleaseDate, &g.RequiredAge, &g.Price,
			&g.HeaderImage, &g.MetacriticScore,
			&categoriesJSON, &genresJSON,
			&g.EstimatedOwners, &g.MedianPlaytimeForever,
			&tagsJSON,
		); err != nil {
			logger.Warn("skipping unreadable game row", "error", err)
			continue
		}
		if err := json.Unmarshal(categoriesJSON, &g.Categories); err != nil {
			g.Categories = nil
		}
		if err := json.Unmarshal(genresJSON, &g.Genres); err != nil {
			g.Genres = nil
		}
		if err := json.Unmarshal(tagsJSON, &g.Tags); err != nil {
			g.Tags = nil
		}
		games = append(games, g)
	}
	return games, rows.Err()
}
