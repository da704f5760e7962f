package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "game_mate/docs" // swagger docs
	"game_mate/models"
	"game_mate/services"
	"game_mate/utils"
)

// Handler bundles the services behind the HTTP surface.
type Handler struct {
	Recommend *services.RecommendService
	Listing   *services.ListingService
	Sync      *services.SyncService
}

// ChatHandler godoc
// @Summary Chat-driven game recommendation
// @Description Routes a chat message by intent: recommend games, look up one game, or find similar games
// @Tags chat
// @Accept json
// @Produce json
// @Param account_id path int true "Account ID"
// @Param request body models.ChatRequest true "Chat message"
// @Success 200 {object} models.APIResponse{data=models.ChatResult} "success"
// @Failure 400 {object} models.APIResponse "invalid parameters"
// @Failure 500 {object} models.APIResponse "server error"
// @Router /api/chat/{account_id} [post]
func (h *Handler) ChatHandler(w http.ResponseWriter, r *http.Request) {
	accountID, ok := utils.ParseAccountID(w, chi.URLParam(r, "account_id"))
	if !ok {
		return
	}

	var req models.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Message == "" {
		utils.WriteErrorResponse(w, models.CodeInvalidParams, map[string]interface{}{
			"param": "message",
		})
		return
	}

	result, err := h.Recommend.Chat(r.Context(), accountID, req.Message)
	writeChatOutcome(w, result, err)
}

// AutoRecommendHandler godoc
// @Summary Automatic recommendation from stored signal
// @Description Recommends games from the user's interest and Steam signal without a query
// @Tags chat
// @Produce json
// @Param account_id path int true "Account ID"
// @Success 200 {object} models.APIResponse{data=models.ChatResult} "success"
// @Failure 400 {object} models.APIResponse "invalid parameters"
// @Failure 500 {object} models.APIResponse "server error"
// @Router /api/chat/auto/{account_id} [get]
func (h *Handler) AutoRecommendHandler(w http.ResponseWriter, r *http.Request) {
	accountID, ok := utils.ParseAccountID(w, chi.URLParam(r, "account_id"))
	if !ok {
		return
	}

	result, err := h.Recommend.AutoRecommend(r.Context(), accountID)
	writeChatOutcome(w, result, err)
}

// RecommendedListsHandler godoc
// @Summary Bulk recommended-game lists
// @Description Scores the game catalog against the user's interest tags and playtime-derived tags, returning both top lists
// @Tags recommendation
// @Produce json
// @Param account_id path int true "Account ID"
// @Success 200 {object} models.APIResponse{data=models.RecommendedLists} "success"
// @Failure 400 {object} models.APIResponse "invalid parameters"
// @Failure 500 {object} models.APIResponse "server error"
// @Router /api/recommendation/games/{account_id} [get]
func (h *Handler) RecommendedListsHandler(w http.ResponseWriter, r *http.Request) {
	accountID, ok := utils.ParseAccountID(w, chi.URLParam(r, "account_id"))
	if !ok {
		return
	}

	lists, err := h.Listing.RecommendedLists(r.Context(), accountID)
	if err != nil {
		utils.HandleServiceError(w, err, models.CodeUserNotFound)
		return
	}
	utils.WriteSuccessResponse(w, lists)
}

// SyncAllHandler godoc
// @Summary Trigger the Steam signal sync
// @Description Refreshes profile visibility, reviewed games, and playtime games for every Steam-linked account
// @Tags steam
// @Produce json
// @Success 200 {object} models.APIResponse "success"
// @Failure 500 {object} models.APIResponse "server error"
// @Router /api/steam/sync [post]
func (h *Handler) SyncAllHandler(w http.ResponseWriter, r *http.Request) {
	if err := h.Sync.SyncAll(r.Context()); err != nil {
		utils.WriteCustomErrorResponse(w, models.CodeServerError, err.Error(), map[string]interface{}{})
		return
	}
	utils.WriteSuccessResponse(w, map[string]interface{}{})
}

// writeChatOutcome maps the recommendation sentinels onto their fixed chat
// messages; anything else is a real error.
func writeChatOutcome(w http.ResponseWriter, result *models.ChatResult, err error) {
	switch {
	case err == nil:
		utils.WriteSuccessResponse(w, result)
	case errors.Is(err, services.ErrRestricted):
		writeChatMessage(w, services.MsgRestricted)
	case errors.Is(err, services.ErrNoResults):
		writeChatMessage(w, services.MsgNoResults)
	case errors.Is(err, services.ErrInsufficientSignal):
		writeChatMessage(w, services.MsgInsufficientSignal)
	case errors.Is(err, services.ErrNeedsClarification):
		writeChatMessage(w, services.MsgNeedsClarification)
	case utils.IsSQLNoRowsError(err):
		utils.WriteErrorResponse(w, models.CodeUserNotFound, map[string]interface{}{})
	default:
		utils.WriteCustomErrorResponse(w, models.CodeServerError, err.Error(), map[string]interface{}{})
	}
}

func writeChatMessage(w http.ResponseWriter, message string) {
	utils.WriteSuccessResponse(w, models.ChatResult{
		Message:  message,
		GameData: []models.GameData{},
	})
}

// RegisterRoutes mounts the API and the swagger UI.
func RegisterRoutes(r *chi.Mux, h *Handler) {
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	r.Post("/api/chat/{account_id}", h.ChatHandler)
	r.Get("/api/chat/auto/{account_id}", h.AutoRecommendHandler)
	r.Get("/api/recommendation/games/{account_id}", h.RecommendedListsHandler)
	r.Post("/api/steam/sync", h.SyncAllHandler)
}
