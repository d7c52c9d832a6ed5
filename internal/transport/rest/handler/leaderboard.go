package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"triviasnake/internal/model"
	"triviasnake/internal/service"
	"triviasnake/internal/transport/rest/middleware"
)

// LeaderboardHandler handles leaderboard endpoints
type LeaderboardHandler struct {
	leaderboardSvc *service.LeaderboardService
}

// NewLeaderboardHandler creates a new leaderboard handler
func NewLeaderboardHandler(leaderboardSvc *service.LeaderboardService) *LeaderboardHandler {
	return &LeaderboardHandler{leaderboardSvc: leaderboardSvc}
}

// SubmitScoreRequest is the request body for submitting a score
type SubmitScoreRequest struct {
	UserID        string  `json:"userId"`
	Username      string  `json:"username"`
	AdventureID   string  `json:"adventureId"`
	AdventureName string  `json:"adventureName"`
	Score         float64 `json:"score"`
	Time          float64 `json:"time"`
}

// Top handles GET /v1/leaderboard
func (h *LeaderboardHandler) Top(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "limit must be an integer")
			return
		}
		limit = parsed
	}

	scores, err := h.leaderboardSvc.TopScores(r.Context(), limit)
	if err != nil {
		respondError(w, err)
		return
	}
	if scores == nil {
		scores = []model.ScoreRecord{}
	}

	writeJSON(w, http.StatusOK, scores)
}

// Submit handles POST /v1/leaderboard
func (h *LeaderboardHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req SubmitScoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	// Authenticated callers default identity fields from their token.
	if req.UserID == "" {
		req.UserID = middleware.GetUserID(r.Context())
	}
	if req.Username == "" {
		req.Username = middleware.GetUsername(r.Context())
	}

	accepted, err := h.leaderboardSvc.RecordScore(r.Context(), model.ScoreRecord{
		UserID:        req.UserID,
		Username:      req.Username,
		AdventureID:   req.AdventureID,
		AdventureName: req.AdventureName,
		Score:         req.Score,
		Time:          req.Time,
	})
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message":  "score processed",
		"accepted": accepted,
	})
}
