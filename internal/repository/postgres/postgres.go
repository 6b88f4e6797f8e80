package postgres

import (
	"database/sql"
	"fmt"

	"sisdisfraz-backend/internal/repository"

	_ "github.com/lib/pq"
)

type Store struct {
	db *sql.DB
	repository.ProfileRepository
	repository.ClientRepository
	repository.CostumeRepository
	repository.SeasonRepository
	repository.RentalRepository
	repository.PaymentRepository
	repository.NotificationRepository
	repository.AuditRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                     db,
		ProfileRepository:      NewProfileRepository(db),
		ClientRepository:       NewClientRepository(db),
		CostumeRepository:      NewCostumeRepository(db),
		SeasonRepository:       NewSeasonRepository(db),
		RentalRepository:       NewRentalRepository(db),
		PaymentRepository:      NewPaymentRepository(db),
		NotificationRepository: NewNotificationRepository(db),
		AuditRepository:        NewAuditRepository(db),
	}
}

// nullable maps empty strings to SQL NULL for optional text columns.
func nullable(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

func placeholder(n int) string {
	return fmt.Sprintf("$%d", n)
}
