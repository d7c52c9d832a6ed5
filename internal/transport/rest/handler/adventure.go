package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"triviasnake/internal/service"
	"triviasnake/internal/transport/rest/middleware"
)

// AdventureHandler handles adventure CRUD and cover image endpoints
type AdventureHandler struct {
	adventureSvc *service.AdventureService
}

// NewAdventureHandler creates a new adventure handler
func NewAdventureHandler(adventureSvc *service.AdventureService) *AdventureHandler {
	return &AdventureHandler{adventureSvc: adventureSvc}
}

// List handles GET /v1/adventures
func (h *AdventureHandler) List(w http.ResponseWriter, r *http.Request) {
	adventures, err := h.adventureSvc.List(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, adventures)
}

// Create handles POST /v1/adventures
func (h *AdventureHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input service.SubmitAdventureInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if input.CreatedBy == "" {
		input.CreatedBy = middleware.GetUserID(r.Context())
	}

	adventure, err := h.adventureSvc.Submit(r.Context(), input)
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, adventure)
}

// Get handles GET /v1/adventures/{adventureId}
func (h *AdventureHandler) Get(w http.ResponseWriter, r *http.Request) {
	adventureID := mux.Vars(r)["adventureId"]

	adventure, err := h.adventureSvc.Get(r.Context(), adventureID)
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, adventure)
}

// Update handles PUT /v1/adventures/{adventureId}
func (h *AdventureHandler) Update(w http.ResponseWriter, r *http.Request) {
	adventureID := mux.Vars(r)["adventureId"]

	var input service.SubmitAdventureInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	adventure, err := h.adventureSvc.Update(r.Context(), adventureID, input)
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, adventure)
}

// Delete handles DELETE /v1/adventures/{adventureId}
func (h *AdventureHandler) Delete(w http.ResponseWriter, r *http.Request) {
	adventureID := mux.Vars(r)["adventureId"]

	if err := h.adventureSvc.Delete(r.Context(), adventureID); err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "adventure deleted"})
}

// Image handles GET /v1/images/{imageId}
func (h *AdventureHandler) Image(w http.ResponseWriter, r *http.Request) {
	imageID := mux.Vars(r)["imageId"]

	data, contentType, err := h.adventureSvc.Image(r.Context(), imageID)
	if err != nil {
		respondError(w, err)
		return
	}

	if contentType == "" {
		contentType = "application/octet-stream"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Cache-Control", "public, max-age=86400")
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}
