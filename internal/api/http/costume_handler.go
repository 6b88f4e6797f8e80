package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"sisdisfraz-backend/internal/domain"
	"sisdisfraz-backend/internal/service"
)

type CostumeHandler struct {
	costumes service.CostumeService
}

func NewCostumeHandler(costumes service.CostumeService) *CostumeHandler {
	return &CostumeHandler{costumes: costumes}
}

type costumePayload struct {
	domain.Costume
	Pieces []domain.CostumePiece `json:"pieces,omitempty"`
}

func (h *CostumeHandler) Create(w http.ResponseWriter, r *http.Request) {
	op, ok := identityFrom(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, service.Unauthorized("missing access token"))
		return
	}

	var payload costumePayload
	if !decodeBody(w, r, &payload) {
		return
	}

	if err := h.costumes.Create(r.Context(), op, &payload.Costume, payload.Pieces); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, payload)
}

func (h *CostumeHandler) Get(w http.ResponseWriter, r *http.Request) {
	costume, pieces, err := h.costumes.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, costumePayload{Costume: *costume, Pieces: pieces})
}

func (h *CostumeHandler) Update(w http.ResponseWriter, r *http.Request) {
	op, ok := identityFrom(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, service.Unauthorized("missing access token"))
		return
	}

	var c domain.Costume
	if !decodeBody(w, r, &c) {
		return
	}
	c.ID = mux.Vars(r)["id"]

	if err := h.costumes.Update(r.Context(), op, &c); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (h *CostumeHandler) Deactivate(w http.ResponseWriter, r *http.Request) {
	op, ok := identityFrom(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, service.Unauthorized("missing access token"))
		return
	}

	if err := h.costumes.Deactivate(r.Context(), op, mux.Vars(r)["id"]); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

type costumeListResponse struct {
	Costumes []domain.Costume `json:"costumes"`
	Total    int32            `json:"total"`
}

func (h *CostumeHandler) List(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pagination(r)
	activeOnly := r.URL.Query().Get("active") != "false"

	costumes, total, err := h.costumes.List(r.Context(), activeOnly, page, pageSize)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, costumeListResponse{Costumes: costumes, Total: total})
}
