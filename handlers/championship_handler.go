package handlers

import (
	"net/http"

	"github.com/halftime-club/paddock-predict/middleware"
	"github.com/halftime-club/paddock-predict/services"
)

type ChampionshipHandler struct {
	championshipService services.ChampionshipService
}

func NewChampionshipHandler(championshipService services.ChampionshipService) *ChampionshipHandler {
	return &ChampionshipHandler{championshipService: championshipService}
}

func (h *ChampionshipHandler) SubmitPrediction(w http.ResponseWriter, r *http.Request) {
	playerID, err := middleware.GetPlayerIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, "invalid token claims")
		return
	}

	season, err := readSeasonQuery(r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input services.PodiumInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	prediction, err := h.championshipService.SubmitPrediction(r.Context(), playerID, season, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"prediction": prediction}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *ChampionshipHandler) GetMyPrediction(w http.ResponseWriter, r *http.Request) {
	playerID, err := middleware.GetPlayerIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, "invalid token claims")
		return
	}

	season, err := readSeasonQuery(r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	prediction, err := h.championshipService.GetPrediction(r.Context(), playerID, season)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"prediction": prediction}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// RecordResult фиксирует итоговый подиум чемпионата. Только админ.
func (h *ChampionshipHandler) RecordResult(w http.ResponseWriter, r *http.Request) {
	season, err := readSeasonQuery(r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input services.PodiumInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	result, err := h.championshipService.RecordResult(r.Context(), season, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"result": result}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *ChampionshipHandler) GetResult(w http.ResponseWriter, r *http.Request) {
	season, err := readSeasonQuery(r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	result, err := h.championshipService.GetResult(r.Context(), season)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"result": result}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
