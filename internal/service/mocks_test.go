package service_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"sisdisfraz-backend/internal/domain"
)

// MockRentalRepo
type MockRentalRepo struct {
	mock.Mock
}

func (m *MockRentalRepo) CreateRecorded(ctx context.Context, rec *domain.RentalRecord) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}
func (m *MockRentalRepo) ActivateReservation(ctx context.Context, rec *domain.RentalRecord) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}
func (m *MockRentalRepo) CancelReservation(ctx context.Context, rec *domain.RentalRecord) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}
func (m *MockRentalRepo) RecordReturn(ctx context.Context, rec *domain.ReturnRecord) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}
func (m *MockRentalRepo) GetByID(ctx context.Context, id string) (*domain.Rental, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rental), args.Error(1)
}
func (m *MockRentalRepo) Update(ctx context.Context, r *domain.Rental) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}
func (m *MockRentalRepo) List(ctx context.Context, status string, page, pageSize int32) ([]domain.Rental, int32, error) {
	args := m.Called(ctx, status, page, pageSize)
	return args.Get(0).([]domain.Rental), args.Get(1).(int32), args.Error(2)
}
func (m *MockRentalRepo) GetPieces(ctx context.Context, rentalID string) ([]domain.RentalPiece, error) {
	args := m.Called(ctx, rentalID)
	return args.Get(0).([]domain.RentalPiece), args.Error(1)
}
func (m *MockRentalRepo) MarkOverdue(ctx context.Context, today time.Time) ([]string, error) {
	args := m.Called(ctx, today)
	return args.Get(0).([]string), args.Error(1)
}
func (m *MockRentalRepo) ListDueBetween(ctx context.Context, from, to time.Time) ([]domain.Rental, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).([]domain.Rental), args.Error(1)
}

// MockClientRepo
type MockClientRepo struct {
	mock.Mock
}

func (m *MockClientRepo) Create(ctx context.Context, c *domain.Client) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}
func (m *MockClientRepo) GetByID(ctx context.Context, id string) (*domain.Client, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Client), args.Error(1)
}
func (m *MockClientRepo) GetByNationalID(ctx context.Context, nationalID string) (*domain.Client, error) {
	args := m.Called(ctx, nationalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Client), args.Error(1)
}
func (m *MockClientRepo) Update(ctx context.Context, c *domain.Client) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}
func (m *MockClientRepo) List(ctx context.Context, query string, page, pageSize int32) ([]domain.Client, int32, error) {
	args := m.Called(ctx, query, page, pageSize)
	return args.Get(0).([]domain.Client), args.Get(1).(int32), args.Error(2)
}

// MockCostumeRepo
type MockCostumeRepo struct {
	mock.Mock
}

func (m *MockCostumeRepo) Create(ctx context.Context, c *domain.Costume, pieces []domain.CostumePiece) error {
	args := m.Called(ctx, c, pieces)
	return args.Error(0)
}
func (m *MockCostumeRepo) GetByID(ctx context.Context, id string) (*domain.Costume, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Costume), args.Error(1)
}
func (m *MockCostumeRepo) Update(ctx context.Context, c *domain.Costume) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}
func (m *MockCostumeRepo) Deactivate(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockCostumeRepo) List(ctx context.Context, activeOnly bool, page, pageSize int32) ([]domain.Costume, int32, error) {
	args := m.Called(ctx, activeOnly, page, pageSize)
	return args.Get(0).([]domain.Costume), args.Get(1).(int32), args.Error(2)
}
func (m *MockCostumeRepo) GetPieces(ctx context.Context, costumeID string) ([]domain.CostumePiece, error) {
	args := m.Called(ctx, costumeID)
	return args.Get(0).([]domain.CostumePiece), args.Error(1)
}

// MockSeasonRepo
type MockSeasonRepo struct {
	mock.Mock
}

func (m *MockSeasonRepo) Create(ctx context.Context, s *domain.Season) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}
func (m *MockSeasonRepo) Update(ctx context.Context, s *domain.Season) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}
func (m *MockSeasonRepo) List(ctx context.Context) ([]domain.Season, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Season), args.Error(1)
}
func (m *MockSeasonRepo) ActiveHighSeasonOn(ctx context.Context, date time.Time) (*domain.Season, error) {
	args := m.Called(ctx, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Season), args.Error(1)
}

// MockPaymentRepo
type MockPaymentRepo struct {
	mock.Mock
}

func (m *MockPaymentRepo) Create(ctx context.Context, p *domain.Payment, audit *domain.AuditEntry) error {
	args := m.Called(ctx, p, audit)
	return args.Error(0)
}
func (m *MockPaymentRepo) ListByRental(ctx context.Context, rentalID string) ([]domain.Payment, error) {
	args := m.Called(ctx, rentalID)
	return args.Get(0).([]domain.Payment), args.Error(1)
}
func (m *MockPaymentRepo) DailySummary(ctx context.Context, day time.Time) ([]domain.MethodSummary, error) {
	args := m.Called(ctx, day)
	return args.Get(0).([]domain.MethodSummary), args.Error(1)
}

// MockProfileRepo
type MockProfileRepo struct {
	mock.Mock
}

func (m *MockProfileRepo) Create(ctx context.Context, p *domain.Profile) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}
func (m *MockProfileRepo) GetByID(ctx context.Context, id string) (*domain.Profile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Profile), args.Error(1)
}
func (m *MockProfileRepo) GetByEmail(ctx context.Context, email string) (*domain.Profile, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Profile), args.Error(1)
}
func (m *MockProfileRepo) Update(ctx context.Context, p *domain.Profile) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

// MockAuditRepo
type MockAuditRepo struct {
	mock.Mock
}

func (m *MockAuditRepo) Create(ctx context.Context, e *domain.AuditEntry) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}
func (m *MockAuditRepo) ListByRecord(ctx context.Context, entity, recordID string) ([]domain.AuditEntry, error) {
	args := m.Called(ctx, entity, recordID)
	return args.Get(0).([]domain.AuditEntry), args.Error(1)
}
