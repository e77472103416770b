package handlers

import (
	"net/http"

	"github.com/halftime-club/paddock-predict/services"
)

type RiderHandler struct {
	riderService services.RiderService
}

func NewRiderHandler(riderService services.RiderService) *RiderHandler {
	return &RiderHandler{riderService: riderService}
}

func (h *RiderHandler) List(w http.ResponseWriter, r *http.Request) {
	activeOnly := r.URL.Query().Get("all") == ""

	riders, err := h.riderService.List(r.Context(), activeOnly)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"riders": riders}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *RiderHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := readIDParam(r, "riderID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	rider, err := h.riderService.GetByID(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"rider": rider}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
