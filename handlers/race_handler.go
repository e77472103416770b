package handlers

import (
	"net/http"

	"github.com/halftime-club/paddock-predict/models"
	"github.com/halftime-club/paddock-predict/services"
)

type RaceHandler struct {
	raceService services.RaceService
}

func NewRaceHandler(raceService services.RaceService) *RaceHandler {
	return &RaceHandler{raceService: raceService}
}

func (h *RaceHandler) ListBySeason(w http.ResponseWriter, r *http.Request) {
	season, err := readSeasonQuery(r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	races, err := h.raceService.ListBySeason(r.Context(), season)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"races": races}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *RaceHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := readIDParam(r, "raceID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	race, err := h.raceService.GetByID(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"race": race}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *RaceHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := readIDParam(r, "raceID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input struct {
		Status models.RaceStatus `json:"status"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	race, err := h.raceService.UpdateStatus(r.Context(), id, input.Status)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"race": race}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
