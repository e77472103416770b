package handlers

import (
	"net/http"

	"github.com/halftime-club/paddock-predict/middleware"
	"github.com/halftime-club/paddock-predict/models"
	"github.com/halftime-club/paddock-predict/services"
)

type ScoreHandler struct {
	scoreService services.ScoreService
}

func NewScoreHandler(scoreService services.ScoreService) *ScoreHandler {
	return &ScoreHandler{scoreService: scoreService}
}

// Calculate пересчитывает и сохраняет очки этапа. Только админ.
func (h *ScoreHandler) Calculate(w http.ResponseWriter, r *http.Request) {
	raceID, err := readIDParam(r, "raceID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	result, err := h.scoreService.Calculate(r.Context(), raceID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, result, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// Preview — тот же расчёт без записи в БД. Только админ.
func (h *ScoreHandler) Preview(w http.ResponseWriter, r *http.Request) {
	raceID, err := readIDParam(r, "raceID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	result, err := h.scoreService.Preview(r.Context(), raceID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, result, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *ScoreHandler) ListByRace(w http.ResponseWriter, r *http.Request) {
	raceID, err := readIDParam(r, "raceID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	scores, err := h.scoreService.ListByRace(r.Context(), raceID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"scores": scores}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// Breakdown — послотовая детализация очков текущего игрока на этапе.
func (h *ScoreHandler) Breakdown(w http.ResponseWriter, r *http.Request) {
	playerID, err := middleware.GetPlayerIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, "invalid token claims")
		return
	}

	raceID, err := readIDParam(r, "raceID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	breakdown, err := h.scoreService.Breakdown(r.Context(), playerID, raceID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"breakdown": breakdown}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// Penalties — аудит штрафов игрока. Игрок видит свои, админ — любые.
func (h *ScoreHandler) Penalties(w http.ResponseWriter, r *http.Request) {
	targetID, err := readIDParam(r, "playerID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	callerID, err := middleware.GetPlayerIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, "invalid token claims")
		return
	}
	role, err := middleware.GetPlayerRoleFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, "invalid token claims")
		return
	}
	if callerID != targetID && role != models.RoleAdmin {
		forbiddenResponse(w, r, "cannot view another player's penalties")
		return
	}

	penalties, err := h.scoreService.PenaltyHistory(r.Context(), targetID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"penalties": penalties}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
