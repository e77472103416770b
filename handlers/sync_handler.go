package handlers

import (
	"net/http"

	"github.com/halftime-club/paddock-predict/services"
)

type SyncHandler struct {
	syncService services.SyncService
}

func NewSyncHandler(syncService services.SyncService) *SyncHandler {
	return &SyncHandler{syncService: syncService}
}

// SyncSeason запускает полную синхронизацию сезона из внешнего API.
// Только админ.
func (h *SyncHandler) SyncSeason(w http.ResponseWriter, r *http.Request) {
	season, err := readSeasonQuery(r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	report, err := h.syncService.SyncSeason(r.Context(), season)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"report": report}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// SyncRiders синхронизирует только классификацию гонщиков. Только админ.
func (h *SyncHandler) SyncRiders(w http.ResponseWriter, r *http.Request) {
	season, err := readSeasonQuery(r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	report, err := h.syncService.SyncRiders(r.Context(), season)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"report": report}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// SyncCalendar синхронизирует только календарь этапов. Только админ.
func (h *SyncHandler) SyncCalendar(w http.ResponseWriter, r *http.Request) {
	season, err := readSeasonQuery(r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	report, err := h.syncService.SyncCalendar(r.Context(), season)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"report": report}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
