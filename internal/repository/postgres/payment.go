package postgres

import (
	"context"
	"database/sql"
	"time"

	"sisdisfraz-backend/internal/domain"
	"sisdisfraz-backend/internal/repository"
)

type paymentRepository struct {
	db *sql.DB
}

func NewPaymentRepository(db *sql.DB) repository.PaymentRepository {
	return &paymentRepository{db: db}
}

// Create appends a payment against an existing rental and keeps the
// rental balance and client lifetime spend in step, all in one
// transaction.
func (r *paymentRepository) Create(ctx context.Context, p *domain.Payment, audit *domain.AuditEntry) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	now := time.Now()
	if err := insertPaymentTx(ctx, tx, p, now); err != nil {
		return err
	}

	res, err := tx.ExecContext(ctx,
		`UPDATE rentals SET balance_cents = GREATEST(balance_cents - $1, 0),
		        total_collected_cents = total_collected_cents + $1, updated_on = $2
		 WHERE id = $3`, p.AmountCents, now, p.RentalID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return repository.ErrNotFound
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE clients SET total_spent_cents = total_spent_cents + $1, updated_on = $2
		 WHERE id = (SELECT client_id FROM rentals WHERE id = $3)`, p.AmountCents, now, p.RentalID)
	if err != nil {
		return err
	}

	if audit != nil {
		audit.RecordID = p.RentalID
		if err := insertAuditTx(ctx, tx, audit, now); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (r *paymentRepository) ListByRental(ctx context.Context, rentalID string) ([]domain.Payment, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, rental_id, operator_id, method, amount_cents, concept, reference, origin_number, created_on
		 FROM payments WHERE rental_id = $1 ORDER BY created_on ASC`, rentalID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payments []domain.Payment
	for rows.Next() {
		var p domain.Payment
		var ref, origin sql.NullString
		if err := rows.Scan(&p.ID, &p.RentalID, &p.OperatorID, &p.Method, &p.AmountCents, &p.Concept, &ref, &origin, &p.CreatedOn); err != nil {
			return nil, err
		}
		p.Reference, p.OriginNumber = ref.String, origin.String
		payments = append(payments, p)
	}
	return payments, rows.Err()
}

func (r *paymentRepository) DailySummary(ctx context.Context, day time.Time) ([]domain.MethodSummary, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT method, count(*), COALESCE(sum(amount_cents), 0)
		 FROM payments WHERE created_on >= $1 AND created_on < $2
		 GROUP BY method ORDER BY method`, day, day.AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var summary []domain.MethodSummary
	for rows.Next() {
		var s domain.MethodSummary
		if err := rows.Scan(&s.Method, &s.Transactions, &s.TotalCents); err != nil {
			return nil, err
		}
		summary = append(summary, s)
	}
	return summary, rows.Err()
}
