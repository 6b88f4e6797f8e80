package http

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"sisdisfraz-backend/internal/domain"
	"sisdisfraz-backend/internal/service"
)

type RentalHandler struct {
	rentals service.RentalService
}

func NewRentalHandler(rentals service.RentalService) *RentalHandler {
	return &RentalHandler{rentals: rentals}
}

func (h *RentalHandler) Register(w http.ResponseWriter, r *http.Request) {
	op, ok := identityFrom(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, service.Unauthorized("missing access token"))
		return
	}

	var in service.RegisterRentalInput
	if !decodeBody(w, r, &in) {
		return
	}

	receipt, err := h.rentals.RegisterRental(r.Context(), op, in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, receipt)
}

func (h *RentalHandler) Activate(w http.ResponseWriter, r *http.Request) {
	op, ok := identityFrom(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, service.Unauthorized("missing access token"))
		return
	}

	var payment *service.RegisterPaymentInput
	if r.ContentLength > 0 {
		payment = &service.RegisterPaymentInput{}
		if !decodeBody(w, r, payment) {
			return
		}
	}

	rental, err := h.rentals.ActivateReservation(r.Context(), op, mux.Vars(r)["id"], payment)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rental)
}

func (h *RentalHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	op, ok := identityFrom(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, service.Unauthorized("missing access token"))
		return
	}

	var in struct {
		Reason string `json:"reason"`
	}
	if r.ContentLength > 0 && !decodeBody(w, r, &in) {
		return
	}

	rental, err := h.rentals.CancelReservation(r.Context(), op, mux.Vars(r)["id"], in.Reason)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rental)
}

func (h *RentalHandler) Return(w http.ResponseWriter, r *http.Request) {
	op, ok := identityFrom(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, service.Unauthorized("missing access token"))
		return
	}

	var in service.ProcessReturnInput
	if !decodeBody(w, r, &in) {
		return
	}

	rental, err := h.rentals.ProcessReturn(r.Context(), op, mux.Vars(r)["id"], in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rental)
}

func (h *RentalHandler) RegisterPayment(w http.ResponseWriter, r *http.Request) {
	op, ok := identityFrom(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, service.Unauthorized("missing access token"))
		return
	}

	var in service.RegisterPaymentInput
	if !decodeBody(w, r, &in) {
		return
	}

	payment, err := h.rentals.RegisterPayment(r.Context(), op, mux.Vars(r)["id"], in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, payment)
}

type rentalDetail struct {
	Rental *domain.Rental       `json:"rental"`
	Pieces []domain.RentalPiece `json:"pieces"`
}

func (h *RentalHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	rental, err := h.rentals.GetRental(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	pieces, err := h.rentals.GetRentalPieces(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rentalDetail{Rental: rental, Pieces: pieces})
}

func (h *RentalHandler) Pieces(w http.ResponseWriter, r *http.Request) {
	pieces, err := h.rentals.GetRentalPieces(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, pieces)
}

type rentalListResponse struct {
	Rentals []domain.Rental `json:"rentals"`
	Total   int32           `json:"total"`
}

func (h *RentalHandler) List(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pagination(r)
	status := r.URL.Query().Get("status")

	rentals, total, err := h.rentals.ListRentals(r.Context(), status, page, pageSize)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rentalListResponse{Rentals: rentals, Total: total})
}

// pagination parses page/page_size query parameters with sane bounds.
func pagination(r *http.Request) (int32, int32) {
	page := int64(1)
	pageSize := int64(20)
	if v := r.URL.Query().Get("page"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 32); err == nil && n > 0 {
			page = n
		}
	}
	if v := r.URL.Query().Get("page_size"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 32); err == nil && n > 0 && n <= 100 {
			pageSize = n
		}
	}
	return int32(page), int32(pageSize)
}
