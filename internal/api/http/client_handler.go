package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"sisdisfraz-backend/internal/domain"
	"sisdisfraz-backend/internal/service"
)

type ClientHandler struct {
	clients service.ClientService
}

func NewClientHandler(clients service.ClientService) *ClientHandler {
	return &ClientHandler{clients: clients}
}

func (h *ClientHandler) Create(w http.ResponseWriter, r *http.Request) {
	op, ok := identityFrom(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, service.Unauthorized("missing access token"))
		return
	}

	var c domain.Client
	if !decodeBody(w, r, &c) {
		return
	}

	if err := h.clients.Create(r.Context(), op, &c); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

func (h *ClientHandler) Get(w http.ResponseWriter, r *http.Request) {
	c, err := h.clients.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

// Lookup finds a client by DNI, the front desk's usual starting point.
func (h *ClientHandler) Lookup(w http.ResponseWriter, r *http.Request) {
	nationalID := r.URL.Query().Get("national_id")
	if nationalID == "" {
		writeJSON(w, http.StatusBadRequest, service.BadRequest("national_id query parameter is required"))
		return
	}

	c, err := h.clients.FindByNationalID(r.Context(), nationalID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (h *ClientHandler) Update(w http.ResponseWriter, r *http.Request) {
	op, ok := identityFrom(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, service.Unauthorized("missing access token"))
		return
	}

	var c domain.Client
	if !decodeBody(w, r, &c) {
		return
	}
	c.ID = mux.Vars(r)["id"]

	if err := h.clients.Update(r.Context(), op, &c); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

type clientListResponse struct {
	Clients []domain.Client `json:"clients"`
	Total   int32           `json:"total"`
}

func (h *ClientHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("national_id") != "" {
		h.Lookup(w, r)
		return
	}

	page, pageSize := pagination(r)
	query := r.URL.Query().Get("q")

	clients, total, err := h.clients.List(r.Context(), query, page, pageSize)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, clientListResponse{Clients: clients, Total: total})
}
