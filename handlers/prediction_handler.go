package handlers

import (
	"net/http"

	"github.com/halftime-club/paddock-predict/middleware"
	"github.com/halftime-club/paddock-predict/services"
)

type PredictionHandler struct {
	predictionService services.PredictionService
}

func NewPredictionHandler(predictionService services.PredictionService) *PredictionHandler {
	return &PredictionHandler{predictionService: predictionService}
}

func (h *PredictionHandler) Submit(w http.ResponseWriter, r *http.Request) {
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

	var input services.SubmitPredictionInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	input.RaceID = raceID

	prediction, err := h.predictionService.Submit(r.Context(), playerID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"prediction": prediction}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GetMine возвращает прогноз текущего игрока на этап.
func (h *PredictionHandler) GetMine(w http.ResponseWriter, r *http.Request) {
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

	prediction, err := h.predictionService.GetForPlayer(r.Context(), playerID, raceID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"prediction": prediction}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
