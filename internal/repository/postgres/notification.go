package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"sisdisfraz-backend/internal/domain"
	"sisdisfraz-backend/internal/logger"
	"sisdisfraz-backend/internal/repository"
)

type notificationRepository struct {
	db *sql.DB
}

func NewNotificationRepository(db *sql.DB) repository.NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(ctx context.Context, n *domain.Notification) error {
	logger.EnterMethod("notificationRepository.Create", "clientID", n.ClientID, "kind", n.Kind)

	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	now := time.Now()
	query := `INSERT INTO notifications (id, rental_id, client_id, phone, kind, message, sent, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6, false, $7)`
	logger.DatabaseCall("INSERT", "notifications", "clientID", n.ClientID)

	_, err := r.db.ExecContext(ctx, query, n.ID, nullable(n.RentalID), n.ClientID, n.Phone, n.Kind, n.Message, now)
	logger.DatabaseResult("INSERT", 1, err, "notificationID", n.ID)

	if err != nil {
		logger.ExitMethodWithError("notificationRepository.Create", err, "clientID", n.ClientID)
		return err
	}
	n.CreatedOn = now
	logger.ExitMethod("notificationRepository.Create", "notificationID", n.ID)
	return nil
}

func (r *notificationRepository) ListPending(ctx context.Context, limit int32) ([]domain.Notification, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, rental_id, client_id, phone, kind, message, sent, error, sent_on, created_on
		 FROM notifications WHERE sent = false ORDER BY created_on ASC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notes []domain.Notification
	for rows.Next() {
		var n domain.Notification
		var rentalID, errMsg sql.NullString
		var sentOn sql.NullTime
		if err := rows.Scan(&n.ID, &rentalID, &n.ClientID, &n.Phone, &n.Kind, &n.Message, &n.Sent, &errMsg, &sentOn, &n.CreatedOn); err != nil {
			return nil, err
		}
		n.RentalID, n.Error = rentalID.String, errMsg.String
		if sentOn.Valid {
			n.SentOn = &sentOn.Time
		}
		notes = append(notes, n)
	}
	return notes, rows.Err()
}

func (r *notificationRepository) MarkSent(ctx context.Context, id string, sentOn time.Time) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE notifications SET sent = true, error = NULL, sent_on = $1 WHERE id = $2`, sentOn, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *notificationRepository) MarkFailed(ctx context.Context, id string, reason string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE notifications SET error = $1 WHERE id = $2`, reason, id)
	return err
}

func (r *notificationRepository) ExistsForRentalKindOn(ctx context.Context, rentalID string, kind domain.NotificationKind, day time.Time) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM notifications
		   WHERE rental_id = $1 AND kind = $2 AND created_on >= $3 AND created_on < $4)`,
		rentalID, kind, day, day.AddDate(0, 0, 1)).Scan(&exists)
	return exists, err
}
