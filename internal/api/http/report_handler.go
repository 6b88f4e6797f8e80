package http

import (
	"database/sql"
	"net/http"
	"time"

	"sisdisfraz-backend/internal/service"
	"sisdisfraz-backend/internal/utils"
)

type ReportHandler struct {
	reports service.ReportService
}

func NewReportHandler(reports service.ReportService) *ReportHandler {
	return &ReportHandler{reports: reports}
}

// DailyCash returns the till summary by payment method. ?date= picks
// the day (yyyy-mm-dd); the default is today.
func (h *ReportHandler) DailyCash(w http.ResponseWriter, r *http.Request) {
	day := time.Now()
	if v := r.URL.Query().Get("date"); v != "" {
		parsed, err := utils.ParseDate(v)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, service.BadRequest("invalid date, use yyyy-mm-dd"))
			return
		}
		day = parsed
	}

	summary, err := h.reports.DailyCash(r.Context(), day)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"date":    utils.FormatDate(day),
		"methods": summary,
	})
}

type HealthHandler struct {
	db *sql.DB
}

func NewHealthHandler(db *sql.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	if err := h.db.PingContext(r.Context()); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded", "database": "down"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
