package models

// Chat intent actions returned by the classifier.
const (
	ActionSearchGame     = "search_game"
	ActionSearchGameInfo = "search_game_info"
	ActionSearchLikeGame = "search_like_game"
	ActionNotSupported   = "not_supported"
)

// AgentAction is the classifier's decision for one chat query.
type AgentAction struct {
	Action       string `json:"action"`
	ActionOutput string `json:"action_output"`
}

// ChatRequest is the chat endpoint request body.
type ChatRequest struct {
	Message string `json:"message" example:"recommend a cozy farming game"`
}

// ChatResult is the terminal chat response: a fixed message plus zero or
// more enriched games. Error outcomes carry a message and no games.
type ChatResult struct {
	Message  string     `json:"message"`
	GameData []GameData `json:"game_data"`
}
