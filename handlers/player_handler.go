package handlers

import (
	"errors"
	"net/http"

	"github.com/halftime-club/paddock-predict/middleware"
	"github.com/halftime-club/paddock-predict/models"
	"github.com/halftime-club/paddock-predict/services"
)

const maxAvatarSize = 5 << 20 // 5MB

type PlayerHandler struct {
	playerService services.PlayerService
}

func NewPlayerHandler(playerService services.PlayerService) *PlayerHandler {
	return &PlayerHandler{playerService: playerService}
}

func (h *PlayerHandler) List(w http.ResponseWriter, r *http.Request) {
	players, err := h.playerService.List(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"players": players}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *PlayerHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := readIDParam(r, "playerID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	player, err := h.playerService.GetByID(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"player": player}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// UploadAvatar принимает multipart-форму с полем "avatar". Игрок меняет
// только свой аватар, админ — любой.
func (h *PlayerHandler) UploadAvatar(w http.ResponseWriter, r *http.Request) {
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
		forbiddenResponse(w, r, "cannot change another player's avatar")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxAvatarSize)
	if err := r.ParseMultipartForm(maxAvatarSize); err != nil {
		badRequestResponse(w, r, errors.New("failed to parse multipart form, file may be too large"))
		return
	}

	file, header, err := r.FormFile("avatar")
	if err != nil {
		badRequestResponse(w, r, errors.New("avatar file is required"))
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	player, err := h.playerService.UploadAvatar(r.Context(), targetID, contentType, file)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"player": player}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
