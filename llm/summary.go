package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"game_mate/models"
)

const summarySystemPrompt = `You summarize a game for a recommendation chat.
You receive the store description plus positive and negative player reviews.
Answer with a JSON object only:
{"description": "...", "good_review": "...", "bad_review": "..."}

- description: 2-3 sentences on what the game is and how it plays.
- good_review: 1-2 sentences on what players praise.
- bad_review: 1-2 sentences on what players criticize.
Do not include code fences or any text outside the JSON object.`

// Summarize condenses a game description and its reviews into the three
// summary fields shown in chat responses.
func (c *Client) Summarize(ctx context.Context, description string, goodReviews, badReviews []string) (models.GameSummary, error) {
	var sb strings.Builder
	sb.WriteString("## Description\n")
	sb.WriteString(description)
	sb.WriteString("\n\n## Positive reviews\n")
	for _, r := range goodReviews {
		sb.WriteString("- ")
		sb.WriteString(r)
		sb.WriteString("\n")
	}
	sb.WriteString("\n## Negative reviews\n")
	for _, r := range badReviews {
		sb.WriteString("- ")
		sb.WriteString(r)
		sb.WriteString("\n")
	}

	content, err := c.complete(ctx, summarySystemPrompt, sb.String())
	if err != nil {
		return models.GameSummary{}, fmt.Errorf("summarize game: %w", err)
	}

	var summary models.GameSummary
	if err := json.Unmarshal([]byte(extractJSONFromText(content)), &summary); err != nil {
		return models.GameSummary{}, fmt.Errorf("parse game summary: %w", err)
	}
	return summary, nil
}
