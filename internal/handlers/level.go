package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"trailgen.dev/internal/models"
	"trailgen.dev/internal/services"
)

// LevelHandler handles level diagnostics and frontier endpoints
type LevelHandler struct {
	levelService *services.LevelService
}

// NewLevelHandler creates a new LevelHandler
func NewLevelHandler(ls *services.LevelService) *LevelHandler {
	return &LevelHandler{levelService: ls}
}

// GetWorld handles GET /api/world - returns the level manifest
func (h *LevelHandler) GetWorld(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.levelService.GetWorld())
}

// GetRows handles GET /api/rows/{from}/{to} - returns a window of cells
func (h *LevelHandler) GetRows(w http.ResponseWriter, r *http.Request) {
	from, err := strconv.Atoi(chi.URLParam(r, "from"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid from row")
		return
	}
	to, err := strconv.Atoi(chi.URLParam(r, "to"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid to row")
		return
	}

	rows, err := h.levelService.GetRows(from, to)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, rows)
}

// GetPath handles GET /api/path - returns the retained golden path
func (h *LevelHandler) GetPath(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.levelService.GetPath())
}

// GetContradictions handles GET /api/contradictions
func (h *LevelHandler) GetContradictions(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.levelService.GetContradictions())
}

// GetStats handles GET /api/stats
func (h *LevelHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.levelService.GetStats())
}

// PostBiome handles POST /api/biome - stages a biome switch for the next
// chunk boundary. The request body is a partial generation config overlaid
// on the active one.
func (h *LevelHandler) PostBiome(w http.ResponseWriter, r *http.Request) {
	cfg := h.levelService.ActiveConfig()
	if err := json.NewDecoder(r.Body).Decode(&cfg); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid biome config")
		return
	}
	if err := h.levelService.SwitchBiome(&cfg); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"staged": cfg.Biome})
}

// PostFrontier handles POST /api/frontier - the external tick input
func (h *LevelHandler) PostFrontier(w http.ResponseWriter, r *http.Request) {
	var req models.FrontierRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid frontier request")
		return
	}
	if req.Row < 0 {
		respondError(w, http.StatusBadRequest, "Frontier row must be non-negative")
		return
	}
	respondJSON(w, http.StatusOK, h.levelService.AdvanceFrontier(req.Row))
}
