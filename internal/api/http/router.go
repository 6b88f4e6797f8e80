// Package http wires the JSON API. All routes under /api/v1 except
// login, refresh and the health check require a bearer access token.
package http

import (
	"net/http"

	"github.com/gorilla/mux"
)

type Handlers struct {
	Auth    *AuthHandler
	Rental  *RentalHandler
	Client  *ClientHandler
	Costume *CostumeHandler
	Season  *SeasonHandler
	Report  *ReportHandler
	Health  *HealthHandler
}

func NewRouter(h Handlers, auth *AuthMiddleware) *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/healthz", h.Health.Check).Methods(http.MethodGet)

	api := r.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/auth/login", h.Auth.Login).Methods(http.MethodPost)
	api.HandleFunc("/auth/refresh", h.Auth.Refresh).Methods(http.MethodPost)

	protected := api.NewRoute().Subrouter()
	protected.Use(auth.Authenticate)

	protected.HandleFunc("/rentals", h.Rental.Register).Methods(http.MethodPost)
	protected.HandleFunc("/rentals", h.Rental.List).Methods(http.MethodGet)
	protected.HandleFunc("/rentals/{id}", h.Rental.Get).Methods(http.MethodGet)
	protected.HandleFunc("/rentals/{id}/pieces", h.Rental.Pieces).Methods(http.MethodGet)
	protected.HandleFunc("/rentals/{id}/activate", h.Rental.Activate).Methods(http.MethodPost)
	protected.HandleFunc("/rentals/{id}/cancel", h.Rental.Cancel).Methods(http.MethodPost)
	protected.HandleFunc("/rentals/{id}/return", h.Rental.Return).Methods(http.MethodPost)
	protected.HandleFunc("/rentals/{id}/payments", h.Rental.RegisterPayment).Methods(http.MethodPost)

	protected.HandleFunc("/clients", h.Client.Create).Methods(http.MethodPost)
	protected.HandleFunc("/clients", h.Client.List).Methods(http.MethodGet)
	protected.HandleFunc("/clients/lookup", h.Client.Lookup).Methods(http.MethodGet)
	protected.HandleFunc("/clients/{id}", h.Client.Get).Methods(http.MethodGet)
	protected.HandleFunc("/clients/{id}", h.Client.Update).Methods(http.MethodPut)

	protected.HandleFunc("/costumes", h.Costume.Create).Methods(http.MethodPost)
	protected.HandleFunc("/costumes", h.Costume.List).Methods(http.MethodGet)
	protected.HandleFunc("/costumes/{id}", h.Costume.Get).Methods(http.MethodGet)
	protected.HandleFunc("/costumes/{id}", h.Costume.Update).Methods(http.MethodPut)
	protected.HandleFunc("/costumes/{id}", h.Costume.Deactivate).Methods(http.MethodDelete)

	protected.HandleFunc("/seasons", h.Season.Create).Methods(http.MethodPost)
	protected.HandleFunc("/seasons", h.Season.List).Methods(http.MethodGet)
	protected.HandleFunc("/seasons/{id}", h.Season.Update).Methods(http.MethodPut)

	protected.HandleFunc("/reports/cash-daily", h.Report.DailyCash).Methods(http.MethodGet)

	return r
}
