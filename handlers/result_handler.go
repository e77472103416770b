package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/halftime-club/paddock-predict/models"
	"github.com/halftime-club/paddock-predict/services"
)

type ResultHandler struct {
	resultService services.ResultService
}

func NewResultHandler(resultService services.ResultService) *ResultHandler {
	return &ResultHandler{resultService: resultService}
}

func resultTypeParam(r *http.Request) models.ResultType {
	return models.ResultType(chi.URLParam(r, "resultType"))
}

// Replace заменяет официальные результаты сессии целиком. Только админ.
func (h *ResultHandler) Replace(w http.ResponseWriter, r *http.Request) {
	raceID, err := readIDParam(r, "raceID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input struct {
		Results []services.ResultEntryInput `json:"results"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	results, err := h.resultService.Replace(r.Context(), raceID, resultTypeParam(r), input.Results)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"results": results}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *ResultHandler) ListByRace(w http.ResponseWriter, r *http.Request) {
	raceID, err := readIDParam(r, "raceID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	results, err := h.resultService.ListByRace(r.Context(), raceID, resultTypeParam(r))
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"results": results}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// SetGloriousSeven фиксирует состав Glorious 7 этапа. Только админ.
func (h *ResultHandler) SetGloriousSeven(w http.ResponseWriter, r *http.Request) {
	raceID, err := readIDParam(r, "raceID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input struct {
		RiderIDs []int `json:"rider_ids"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	entries, err := h.resultService.SetGloriousSeven(r.Context(), raceID, input.RiderIDs)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"glorious_seven": entries}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GenerateGloriousSeven собирает семёрку автоматически из середины зачёта
// гонщиков. Только админ.
func (h *ResultHandler) GenerateGloriousSeven(w http.ResponseWriter, r *http.Request) {
	raceID, err := readIDParam(r, "raceID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	entries, err := h.resultService.GenerateGloriousSeven(r.Context(), raceID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"glorious_seven": entries}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *ResultHandler) GetGloriousSeven(w http.ResponseWriter, r *http.Request) {
	raceID, err := readIDParam(r, "raceID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	entries, err := h.resultService.GetGloriousSeven(r.Context(), raceID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"glorious_seven": entries}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
