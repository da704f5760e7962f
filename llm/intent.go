package llm

import (
	"context"
	"encoding/json"
	"fmt"

	"game_mate/models"
)

const intentSystemPrompt = `You route chat messages for a game recommendation assistant.
Decide one action for the user's message and answer with a JSON object:
{"action": "...", "action_output": "..."}

Action rules:
- "search_game": the user wants game recommendations matching a mood, theme,
  genre, or situation. Set action_output to the user's message unchanged.
- "search_game_info": the user asks about one specific named game. Set
  action_output to that game's title only.
- "search_like_game": the user wants games similar to one specific named game.
  Set action_output to that game's title only.
- "not_supported": anything else (greetings, off-topic, unanswerable). Set
  action_output to an empty string.

Answer with the JSON object only, no extra text.`

// ClassifyIntent maps a chat message onto one of the four agent actions.
// Replies that cannot be parsed or carry an unknown action fall back to
// not_supported.
func (c *Client) ClassifyIntent(ctx context.Context, userMessage string) (models.AgentAction, error) {
	content, err := c.complete(ctx, intentSystemPrompt, userMessage)
	if err != nil {
		return models.AgentAction{}, fmt.Errorf("classify intent: %w", err)
	}

	var action models.AgentAction
	if err := json.Unmarshal([]byte(extractJSONFromText(content)), &action); err != nil {
		return models.AgentAction{Action: models.ActionNotSupported}, nil
	}

	switch action.Action {
	case models.ActionSearchGame, models.ActionSearchGameInfo, models.ActionSearchLikeGame:
		return action, nil
	default:
		return models.AgentAction{Action: models.ActionNotSupported}, nil
	}
}
