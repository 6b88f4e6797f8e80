package service

import (
	"context"
	"time"

	"sisdisfraz-backend/internal/domain"
	"sisdisfraz-backend/internal/repository"
)

type reportService struct {
	paymentRepo repository.PaymentRepository
}

func NewReportService(paymentRepo repository.PaymentRepository) ReportService {
	return &reportService{paymentRepo: paymentRepo}
}

// DailyCash totals the day's collected payments grouped by method, for
// the end-of-day till close.
func (s *reportService) DailyCash(ctx context.Context, day time.Time) ([]domain.MethodSummary, error) {
	return s.paymentRepo.DailySummary(ctx, day)
}
