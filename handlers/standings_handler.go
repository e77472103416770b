package handlers

import (
	"net/http"

	"github.com/halftime-club/paddock-predict/services"
)

type StandingsHandler struct {
	standingsService services.StandingsService
}

func NewStandingsHandler(standingsService services.StandingsService) *StandingsHandler {
	return &StandingsHandler{standingsService: standingsService}
}

func (h *StandingsHandler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	season, err := readSeasonQuery(r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	entries, err := h.standingsService.Leaderboard(r.Context(), season)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"leaderboard": entries}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *StandingsHandler) Progression(w http.ResponseWriter, r *http.Request) {
	season, err := readSeasonQuery(r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	progressions, err := h.standingsService.Progression(r.Context(), season)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"progression": progressions}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
