package handler

import (
	"encoding/json"
	"net/http"

	"triviasnake/internal/service"
)

// QuizHandler handles AI quiz generation endpoints
type QuizHandler struct {
	quizSvc *service.QuizAIService
}

// NewQuizHandler creates a new quiz handler
func NewQuizHandler(quizSvc *service.QuizAIService) *QuizHandler {
	return &QuizHandler{quizSvc: quizSvc}
}

// GenerateQuizRequest is the request body for generating a quiz
type GenerateQuizRequest struct {
	Topic         string `json:"topic"`
	QuestionCount int    `json:"questionCount"`
}

// Generate handles POST /v1/generate-quiz
func (h *QuizHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var req GenerateQuizRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	questions, err := h.quizSvc.GenerateQuiz(r.Context(), req.Topic, req.QuestionCount)
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"topic":     req.Topic,
		"questions": questions,
	})
}
