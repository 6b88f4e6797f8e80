package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"sisdisfraz-backend/internal/domain"
	"sisdisfraz-backend/internal/service"
)

type SeasonHandler struct {
	seasons service.SeasonService
}

func NewSeasonHandler(seasons service.SeasonService) *SeasonHandler {
	return &SeasonHandler{seasons: seasons}
}

func (h *SeasonHandler) Create(w http.ResponseWriter, r *http.Request) {
	op, ok := identityFrom(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, service.Unauthorized("missing access token"))
		return
	}

	var s domain.Season
	if !decodeBody(w, r, &s) {
		return
	}

	if err := h.seasons.Create(r.Context(), op, &s); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, s)
}

func (h *SeasonHandler) Update(w http.ResponseWriter, r *http.Request) {
	op, ok := identityFrom(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, service.Unauthorized("missing access token"))
		return
	}

	var s domain.Season
	if !decodeBody(w, r, &s) {
		return
	}
	s.ID = mux.Vars(r)["id"]

	if err := h.seasons.Update(r.Context(), op, &s); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, s)
}

func (h *SeasonHandler) List(w http.ResponseWriter, r *http.Request) {
	seasons, err := h.seasons.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"seasons": seasons})
}
