package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"sisdisfraz-backend/internal/domain"
	"sisdisfraz-backend/internal/repository"
	"sisdisfraz-backend/internal/repository/postgres"
)

func walkInRecord() *domain.RentalRecord {
	return &domain.RentalRecord{
		Rental: &domain.Rental{
			ClientID:            "cl-1",
			CostumeID:           "co-1",
			OperatorID:          "op-1",
			Status:              domain.RentalStatusActive,
			SeasonApplied:       domain.SeasonStandard,
			PickupDate:          time.Date(2026, 5, 10, 0, 0, 0, 0, time.UTC),
			DueDate:             time.Date(2026, 5, 13, 0, 0, 0, 0, time.UTC),
			PriceCents:          10000,
			DepositCents:        10000,
			TotalCollectedCents: 10000,
		},
		Payment: &domain.Payment{
			OperatorID:  "op-1",
			Method:      domain.PaymentMethodCash,
			AmountCents: 10000,
			Concept:     "Pago completo alquiler contado",
		},
		Pieces: []domain.RentalPiece{
			{PieceID: "p-1", PieceName: "Máscara", OutCondition: domain.PieceConditionGood},
		},
		Audit: &domain.AuditEntry{
			ProfileID: "op-1",
			Action:    domain.AuditActionRentalCreated,
			Entity:    "rentals",
		},
		Notification: &domain.Notification{
			ClientID: "cl-1",
			Phone:    "+51987654321",
			Kind:     domain.NotificationRentalConfirm,
			Message:  "hola",
		},
		ConsumeStock: true,
	}
}

func TestRentalRepository_CreateRecorded(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewRentalRepository(db)
	ctx := context.Background()

	t.Run("Writes the whole unit of work in one transaction", func(t *testing.T) {
		rec := walkInRecord()

		mock.ExpectBegin()
		mock.ExpectExec("UPDATE costumes SET stock_available = stock_available - 1").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("INSERT INTO rentals").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("INSERT INTO payments").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("INSERT INTO rental_pieces").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("UPDATE clients SET total_rentals").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("INSERT INTO audit_log").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("INSERT INTO notifications").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := repo.CreateRecorded(ctx, rec)
		assert.NoError(t, err)
		assert.NotEmpty(t, rec.Rental.ID)
		assert.Equal(t, rec.Rental.ID, rec.Payment.RentalID)
		assert.Equal(t, rec.Rental.ID, rec.Audit.RecordID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Losing the last unit rolls everything back", func(t *testing.T) {
		rec := walkInRecord()

		mock.ExpectBegin()
		mock.ExpectExec("UPDATE costumes SET stock_available = stock_available - 1").
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		err := repo.CreateRecorded(ctx, rec)
		assert.ErrorIs(t, err, repository.ErrNoStock)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Reservations skip the stock decrement", func(t *testing.T) {
		rec := walkInRecord()
		rec.ConsumeStock = false
		rec.Rental.Reservation = true
		rec.Rental.Status = domain.RentalStatusReserved

		mock.ExpectBegin()
		mock.ExpectExec("INSERT INTO rentals").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("INSERT INTO payments").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("INSERT INTO rental_pieces").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("UPDATE clients SET total_rentals").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("INSERT INTO audit_log").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("INSERT INTO notifications").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := repo.CreateRecorded(ctx, rec)
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRentalRepository_ActivateReservation(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewRentalRepository(db)
	ctx := context.Background()

	rec := &domain.RentalRecord{
		Rental: &domain.Rental{ID: "r-1", ClientID: "cl-1", CostumeID: "co-1", Status: domain.RentalStatusReserved},
		Payment: &domain.Payment{
			OperatorID:  "op-1",
			Method:      domain.PaymentMethodCash,
			AmountCents: 10500,
			Concept:     "Saldo al recoger",
		},
		Audit: &domain.AuditEntry{ProfileID: "op-1", Action: domain.AuditActionRentalActivated, Entity: "rentals", RecordID: "r-1"},
	}

	t.Run("Consumes stock and flips status", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec("UPDATE costumes SET stock_available = stock_available - 1").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("UPDATE rentals SET status").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("INSERT INTO payments").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("UPDATE rentals SET deposit_cents").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("UPDATE clients SET total_spent_cents").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("INSERT INTO audit_log").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := repo.ActivateReservation(ctx, rec)
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Missing reservation row surfaces as not found", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec("UPDATE costumes SET stock_available = stock_available - 1").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("UPDATE rentals SET status").
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		err := repo.ActivateReservation(ctx, rec)
		assert.ErrorIs(t, err, repository.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRentalRepository_RecordReturn(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewRentalRepository(db)
	ctx := context.Background()

	now := time.Now()
	rec := &domain.ReturnRecord{
		Rental: &domain.Rental{
			ID:         "r-1",
			ClientID:   "cl-1",
			CostumeID:  "co-1",
			Status:     domain.RentalStatusReturned,
			ReturnDate: &now,
		},
		Pieces: []domain.RentalPiece{
			{PieceID: "p-1", ReturnCondition: domain.PieceConditionLightDamage, ChargedCents: 2000},
		},
		Audit:   &domain.AuditEntry{ProfileID: "op-1", Action: domain.AuditActionRentalReturned, Entity: "rentals", RecordID: "r-1"},
		Laundry: &domain.LaundryItem{RentalID: "r-1", CostumeID: "co-1", Status: domain.LaundryStatusReceived},
	}

	t.Run("Laundry intake instead of stock restore", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec("UPDATE rentals SET status").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("UPDATE rental_pieces SET return_condition").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("UPDATE costumes SET stock_laundry").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("INSERT INTO laundry").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("INSERT INTO audit_log").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := repo.RecordReturn(ctx, rec)
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Checklist row miss aborts before any money moves", func(t *testing.T) {
		stray := &domain.ReturnRecord{
			Rental: &domain.Rental{ID: "r-1", ClientID: "cl-1", CostumeID: "co-1", Status: domain.RentalStatusReturned, ReturnDate: &now},
			Pieces: []domain.RentalPiece{
				{PieceID: "p-other", ReturnCondition: domain.PieceConditionLightDamage, ChargedCents: 5000},
			},
			DamagePayment: &domain.Payment{OperatorID: "op-1", Method: domain.PaymentMethodCash, AmountCents: 5000, Concept: "Cobro por daños"},
			Audit:         &domain.AuditEntry{ProfileID: "op-1", Action: domain.AuditActionRentalReturned, Entity: "rentals", RecordID: "r-1"},
			RestoreStock:  true,
		}

		mock.ExpectBegin()
		mock.ExpectExec("UPDATE rentals SET status").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("UPDATE rental_pieces SET return_condition").
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		err := repo.RecordReturn(ctx, stray)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "p-other")
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRentalRepository_CancelReservation(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewRentalRepository(db)
	ctx := context.Background()

	rec := &domain.RentalRecord{
		Rental: &domain.Rental{ID: "r-1", ClientID: "cl-1", CostumeID: "co-1", Status: domain.RentalStatusReserved},
		Audit:  &domain.AuditEntry{ProfileID: "op-1", Action: domain.AuditActionRentalCancelled, Entity: "rentals", RecordID: "r-1"},
	}

	t.Run("Flips reserved to cancelled with audit, no stock work", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec("UPDATE rentals SET status").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("INSERT INTO audit_log").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := repo.CancelReservation(ctx, rec)
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Non-reserved rental surfaces as not found", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec("UPDATE rentals SET status").
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		err := repo.CancelReservation(ctx, rec)
		assert.ErrorIs(t, err, repository.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRentalRepository_MarkOverdue(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewRentalRepository(db)
	ctx := context.Background()

	rows := sqlmock.NewRows([]string{"id"}).AddRow("r-1").AddRow("r-2")
	mock.ExpectQuery("UPDATE rentals SET status").WillReturnRows(rows)

	ids, err := repo.MarkOverdue(ctx, time.Now())
	assert.NoError(t, err)
	assert.Equal(t, []string{"r-1", "r-2"}, ids)
	assert.NoError(t, mock.ExpectationsWereMet())
}
