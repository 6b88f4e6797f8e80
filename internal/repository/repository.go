package repository

import (
	"context"
	"time"

	"sisdisfraz-backend/internal/domain"
)

type ProfileRepository interface {
	Create(ctx context.Context, p *domain.Profile) error
	GetByID(ctx context.Context, id string) (*domain.Profile, error)
	GetByEmail(ctx context.Context, email string) (*domain.Profile, error)
	Update(ctx context.Context, p *domain.Profile) error
}

type ClientRepository interface {
	Create(ctx context.Context, c *domain.Client) error
	GetByID(ctx context.Context, id string) (*domain.Client, error)
	GetByNationalID(ctx context.Context, nationalID string) (*domain.Client, error)
	Update(ctx context.Context, c *domain.Client) error
	List(ctx context.Context, query string, page, pageSize int32) ([]domain.Client, int32, error)
}

type CostumeRepository interface {
	Create(ctx context.Context, c *domain.Costume, pieces []domain.CostumePiece) error
	GetByID(ctx context.Context, id string) (*domain.Costume, error)
	Update(ctx context.Context, c *domain.Costume) error
	Deactivate(ctx context.Context, id string) error
	List(ctx context.Context, activeOnly bool, page, pageSize int32) ([]domain.Costume, int32, error)
	GetPieces(ctx context.Context, costumeID string) ([]domain.CostumePiece, error)
}

type SeasonRepository interface {
	Create(ctx context.Context, s *domain.Season) error
	Update(ctx context.Context, s *domain.Season) error
	List(ctx context.Context) ([]domain.Season, error)
	// ActiveHighSeasonOn returns the active high season whose closed
	// interval contains the given date, or nil when none does.
	ActiveHighSeasonOn(ctx context.Context, date time.Time) (*domain.Season, error)
}

type RentalRepository interface {
	// CreateRecorded writes the whole registration unit of work in one
	// transaction: conditional stock decrement (when consuming stock),
	// rental, initial payment, checklist pieces, audit entry and queued
	// notification. Returns ErrNoStock without any write when the
	// decrement matches no row.
	CreateRecorded(ctx context.Context, rec *domain.RentalRecord) error
	// ActivateReservation flips a reserved rental to active, consuming
	// one stock unit with the same conditional decrement.
	ActivateReservation(ctx context.Context, rec *domain.RentalRecord) error
	// CancelReservation flips a reserved rental to cancelled and writes
	// the audit entry. Reservations never consumed stock, so no stock
	// work happens. Returns ErrNotFound when the rental is not reserved.
	CancelReservation(ctx context.Context, rec *domain.RentalRecord) error
	// RecordReturn writes the return unit of work in one transaction:
	// rental update, checklist updates, optional damage payment, stock
	// restore or laundry intake, audit entry.
	RecordReturn(ctx context.Context, rec *domain.ReturnRecord) error
	GetByID(ctx context.Context, id string) (*domain.Rental, error)
	Update(ctx context.Context, r *domain.Rental) error
	List(ctx context.Context, status string, page, pageSize int32) ([]domain.Rental, int32, error)
	GetPieces(ctx context.Context, rentalID string) ([]domain.RentalPiece, error)
	// MarkOverdue stamps active rentals past their due date and returns
	// the affected rental IDs.
	MarkOverdue(ctx context.Context, today time.Time) ([]string, error)
	// ListDueBetween returns unreturned rentals with due dates inside
	// the closed day interval, for the reminder job.
	ListDueBetween(ctx context.Context, from, to time.Time) ([]domain.Rental, error)
}

type PaymentRepository interface {
	// Create appends a payment and, in the same transaction, refreshes
	// the rental's balance and collected totals and the client's
	// lifetime spend.
	Create(ctx context.Context, p *domain.Payment, audit *domain.AuditEntry) error
	ListByRental(ctx context.Context, rentalID string) ([]domain.Payment, error)
	DailySummary(ctx context.Context, day time.Time) ([]domain.MethodSummary, error)
}

type NotificationRepository interface {
	Create(ctx context.Context, n *domain.Notification) error
	// ListPending returns unsent rows oldest first.
	ListPending(ctx context.Context, limit int32) ([]domain.Notification, error)
	MarkSent(ctx context.Context, id string, sentOn time.Time) error
	MarkFailed(ctx context.Context, id string, reason string) error
	// ExistsForRentalKindOn prevents duplicate reminders for the same
	// rental, tier and day.
	ExistsForRentalKindOn(ctx context.Context, rentalID string, kind domain.NotificationKind, day time.Time) (bool, error)
}

type AuditRepository interface {
	Create(ctx context.Context, e *domain.AuditEntry) error
	ListByRecord(ctx context.Context, entity, recordID string) ([]domain.AuditEntry, error)
}
