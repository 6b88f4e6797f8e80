package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"sisdisfraz-backend/internal/domain"
	"sisdisfraz-backend/internal/repository"
)

type rentalRepository struct {
	db *sql.DB
}

func NewRentalRepository(db *sql.DB) repository.RentalRepository {
	return &rentalRepository{db: db}
}

const rentalColumns = `id, client_id, costume_id, operator_id, reservation, status, season_applied,
	pickup_date, due_date, return_date, price_cents, deposit_cents, balance_cents, late_fee_cents,
	damage_fee_cents, total_collected_cents, id_photo_url, notes, created_on, updated_on`

// consumeStockTx is the atomic stock gate: decrement only while a unit
// remains. Zero rows affected means another request took the last one.
func consumeStockTx(ctx context.Context, tx *sql.Tx, costumeID string, now time.Time) error {
	res, err := tx.ExecContext(ctx,
		`UPDATE costumes SET stock_available = stock_available - 1, stock_rented = stock_rented + 1, updated_on = $1
		 WHERE id = $2 AND stock_available > 0`, now, costumeID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return repository.ErrNoStock
	}
	return nil
}

func (r *rentalRepository) CreateRecorded(ctx context.Context, rec *domain.RentalRecord) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	now := time.Now()
	rt := rec.Rental
	if rt.ID == "" {
		rt.ID = uuid.NewString()
	}

	if rec.ConsumeStock {
		if err := consumeStockTx(ctx, tx, rt.CostumeID, now); err != nil {
			return err
		}
	}

	query := `INSERT INTO rentals (id, client_id, costume_id, operator_id, reservation, status, season_applied,
	            pickup_date, due_date, price_cents, deposit_cents, balance_cents, late_fee_cents, damage_fee_cents,
	            total_collected_cents, id_photo_url, notes, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, 0, 0, $13, $14, $15, $16, $17)`
	_, err = tx.ExecContext(ctx, query, rt.ID, rt.ClientID, rt.CostumeID, rt.OperatorID, rt.Reservation, rt.Status,
		rt.SeasonApplied, rt.PickupDate, rt.DueDate, rt.PriceCents, rt.DepositCents, rt.BalanceCents,
		rt.TotalCollectedCents, nullable(rt.IDPhotoURL), nullable(rt.Notes), now, now)
	if err != nil {
		return fmt.Errorf("insert rental: %w", err)
	}

	rec.Payment.RentalID = rt.ID
	if err := insertPaymentTx(ctx, tx, rec.Payment, now); err != nil {
		return fmt.Errorf("insert payment: %w", err)
	}

	for i := range rec.Pieces {
		p := &rec.Pieces[i]
		if p.ID == "" {
			p.ID = uuid.NewString()
		}
		p.RentalID = rt.ID
		_, err = tx.ExecContext(ctx,
			`INSERT INTO rental_pieces (id, rental_id, piece_id, piece_name, out_condition, charged_cents)
			 VALUES ($1, $2, $3, $4, $5, 0)`,
			p.ID, p.RentalID, p.PieceID, p.PieceName, p.OutCondition)
		if err != nil {
			return fmt.Errorf("insert rental piece: %w", err)
		}
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE clients SET total_rentals = total_rentals + 1, total_spent_cents = total_spent_cents + $1, updated_on = $2
		 WHERE id = $3`, rec.Payment.AmountCents, now, rt.ClientID)
	if err != nil {
		return fmt.Errorf("update client aggregates: %w", err)
	}

	rec.Audit.RecordID = rt.ID
	if err := insertAuditTx(ctx, tx, rec.Audit, now); err != nil {
		return fmt.Errorf("insert audit entry: %w", err)
	}

	rec.Notification.RentalID = rt.ID
	if err := insertNotificationTx(ctx, tx, rec.Notification, now); err != nil {
		return fmt.Errorf("insert notification: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	rt.CreatedOn, rt.UpdatedOn = now, now
	return nil
}

func (r *rentalRepository) ActivateReservation(ctx context.Context, rec *domain.RentalRecord) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	now := time.Now()
	rt := rec.Rental

	if err := consumeStockTx(ctx, tx, rt.CostumeID, now); err != nil {
		return err
	}

	res, err := tx.ExecContext(ctx,
		`UPDATE rentals SET status = $1, updated_on = $2 WHERE id = $3 AND status = $4`,
		domain.RentalStatusActive, now, rt.ID, domain.RentalStatusReserved)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return repository.ErrNotFound
	}

	if rec.Payment != nil {
		rec.Payment.RentalID = rt.ID
		if err := insertPaymentTx(ctx, tx, rec.Payment, now); err != nil {
			return err
		}
		_, err = tx.ExecContext(ctx,
			`UPDATE rentals SET deposit_cents = deposit_cents + $1,
			        total_collected_cents = total_collected_cents + $1,
			        balance_cents = GREATEST(balance_cents - $1, 0), updated_on = $2
			 WHERE id = $3`, rec.Payment.AmountCents, now, rt.ID)
		if err != nil {
			return err
		}
		_, err = tx.ExecContext(ctx,
			`UPDATE clients SET total_spent_cents = total_spent_cents + $1, updated_on = $2 WHERE id = $3`,
			rec.Payment.AmountCents, now, rt.ClientID)
		if err != nil {
			return err
		}
	}

	if err := insertAuditTx(ctx, tx, rec.Audit, now); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *rentalRepository) CancelReservation(ctx context.Context, rec *domain.RentalRecord) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	now := time.Now()
	rt := rec.Rental

	res, err := tx.ExecContext(ctx,
		`UPDATE rentals SET status = $1, balance_cents = 0, updated_on = $2 WHERE id = $3 AND status = $4`,
		domain.RentalStatusCancelled, now, rt.ID, domain.RentalStatusReserved)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return repository.ErrNotFound
	}

	if err := insertAuditTx(ctx, tx, rec.Audit, now); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *rentalRepository) RecordReturn(ctx context.Context, rec *domain.ReturnRecord) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	now := time.Now()
	rt := rec.Rental

	res, err := tx.ExecContext(ctx,
		`UPDATE rentals SET status = $1, return_date = $2, damage_fee_cents = $3, late_fee_cents = $4,
		        balance_cents = $5, total_collected_cents = $6, updated_on = $7
		 WHERE id = $8 AND status IN ($9, $10)`,
		domain.RentalStatusReturned, rt.ReturnDate, rt.DamageFeeCents, rt.LateFeeCents,
		rt.BalanceCents, rt.TotalCollectedCents, now, rt.ID,
		domain.RentalStatusActive, domain.RentalStatusOverdue)
	if err != nil {
		return fmt.Errorf("update rental: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return repository.ErrNotFound
	}

	for i := range rec.Pieces {
		p := &rec.Pieces[i]
		res, err := tx.ExecContext(ctx,
			`UPDATE rental_pieces SET return_condition = $1, damage_photo_url = $2, charged_cents = $3
			 WHERE rental_id = $4 AND piece_id = $5`,
			p.ReturnCondition, nullable(p.DamagePhotoURL), p.ChargedCents, rt.ID, p.PieceID)
		if err != nil {
			return fmt.Errorf("update rental piece: %w", err)
		}
		// A charge must land on a checklist row or the whole return
		// aborts; otherwise the fee would book with no piece marked.
		if n, _ := res.RowsAffected(); n == 0 {
			return fmt.Errorf("rental piece %s: no matching checklist row", p.PieceID)
		}
	}

	if rec.DamagePayment != nil {
		rec.DamagePayment.RentalID = rt.ID
		if err := insertPaymentTx(ctx, tx, rec.DamagePayment, now); err != nil {
			return fmt.Errorf("insert damage payment: %w", err)
		}
		_, err = tx.ExecContext(ctx,
			`UPDATE clients SET total_spent_cents = total_spent_cents + $1, updated_on = $2 WHERE id = $3`,
			rec.DamagePayment.AmountCents, now, rt.ClientID)
		if err != nil {
			return err
		}
	}

	// The unit leaves the rented counter either way; destination decides
	// whether it is rentable again immediately or parked in laundry.
	if rec.RestoreStock {
		_, err = tx.ExecContext(ctx,
			`UPDATE costumes SET stock_available = stock_available + 1, stock_rented = stock_rented - 1, updated_on = $1
			 WHERE id = $2`, now, rt.CostumeID)
	} else {
		_, err = tx.ExecContext(ctx,
			`UPDATE costumes SET stock_laundry = stock_laundry + 1, stock_rented = stock_rented - 1, updated_on = $1
			 WHERE id = $2`, now, rt.CostumeID)
	}
	if err != nil {
		return fmt.Errorf("update stock: %w", err)
	}

	if rec.Laundry != nil {
		l := rec.Laundry
		if l.ID == "" {
			l.ID = uuid.NewString()
		}
		_, err = tx.ExecContext(ctx,
			`INSERT INTO laundry (id, rental_id, costume_id, status, urgent, processed_by, received_on)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			l.ID, l.RentalID, l.CostumeID, l.Status, l.Urgent, nullable(l.ProcessedBy), now)
		if err != nil {
			return fmt.Errorf("insert laundry item: %w", err)
		}
	}

	if err := insertAuditTx(ctx, tx, rec.Audit, now); err != nil {
		return fmt.Errorf("insert audit entry: %w", err)
	}
	return tx.Commit()
}

func (r *rentalRepository) GetByID(ctx context.Context, id string) (*domain.Rental, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+rentalColumns+` FROM rentals WHERE id = $1`, id)
	rt, err := scanRental(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	return rt, err
}

func (r *rentalRepository) Update(ctx context.Context, rt *domain.Rental) error {
	query := `UPDATE rentals SET status=$1, return_date=$2, balance_cents=$3, late_fee_cents=$4,
	            damage_fee_cents=$5, total_collected_cents=$6, notes=$7, updated_on=$8 WHERE id=$9`
	res, err := r.db.ExecContext(ctx, query, rt.Status, rt.ReturnDate, rt.BalanceCents, rt.LateFeeCents,
		rt.DamageFeeCents, rt.TotalCollectedCents, nullable(rt.Notes), time.Now(), rt.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *rentalRepository) List(ctx context.Context, status string, page, pageSize int32) ([]domain.Rental, int32, error) {
	offset := (page - 1) * pageSize
	where := ""
	args := []interface{}{}
	if status != "" {
		where = ` WHERE status = $1`
		args = append(args, status)
	}

	var count int32
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM rentals`+where, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	listSQL := `SELECT ` + rentalColumns + ` FROM rentals` + where +
		` ORDER BY created_on DESC LIMIT ` + placeholder(len(args)+1) + ` OFFSET ` + placeholder(len(args)+2)
	args = append(args, pageSize, offset)

	rows, err := r.db.QueryContext(ctx, listSQL, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var rentals []domain.Rental
	for rows.Next() {
		rt, err := scanRental(rows)
		if err != nil {
			return nil, 0, err
		}
		rentals = append(rentals, *rt)
	}
	return rentals, count, rows.Err()
}

func (r *rentalRepository) GetPieces(ctx context.Context, rentalID string) ([]domain.RentalPiece, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, rental_id, piece_id, piece_name, out_condition, return_condition, damage_photo_url, charged_cents
		 FROM rental_pieces WHERE rental_id = $1`, rentalID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var pieces []domain.RentalPiece
	for rows.Next() {
		var p domain.RentalPiece
		var retCond, photo sql.NullString
		if err := rows.Scan(&p.ID, &p.RentalID, &p.PieceID, &p.PieceName, &p.OutCondition, &retCond, &photo, &p.ChargedCents); err != nil {
			return nil, err
		}
		p.ReturnCondition = domain.PieceCondition(retCond.String)
		p.DamagePhotoURL = photo.String
		pieces = append(pieces, p)
	}
	return pieces, rows.Err()
}

func (r *rentalRepository) MarkOverdue(ctx context.Context, today time.Time) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		`UPDATE rentals SET status = $1, updated_on = $2 WHERE status = $3 AND due_date < $4 RETURNING id`,
		domain.RentalStatusOverdue, time.Now(), domain.RentalStatusActive, today)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *rentalRepository) ListDueBetween(ctx context.Context, from, to time.Time) ([]domain.Rental, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+rentalColumns+` FROM rentals WHERE status IN ($1, $2) AND due_date >= $3 AND due_date <= $4`,
		domain.RentalStatusActive, domain.RentalStatusOverdue, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rentals []domain.Rental
	for rows.Next() {
		rt, err := scanRental(rows)
		if err != nil {
			return nil, err
		}
		rentals = append(rentals, *rt)
	}
	return rentals, rows.Err()
}

func scanRental(s rowScanner) (*domain.Rental, error) {
	rt := &domain.Rental{}
	var returnDate sql.NullTime
	var photo, notes sql.NullString
	err := s.Scan(&rt.ID, &rt.ClientID, &rt.CostumeID, &rt.OperatorID, &rt.Reservation, &rt.Status, &rt.SeasonApplied,
		&rt.PickupDate, &rt.DueDate, &returnDate, &rt.PriceCents, &rt.DepositCents, &rt.BalanceCents,
		&rt.LateFeeCents, &rt.DamageFeeCents, &rt.TotalCollectedCents, &photo, &notes, &rt.CreatedOn, &rt.UpdatedOn)
	if err != nil {
		return nil, err
	}
	if returnDate.Valid {
		rt.ReturnDate = &returnDate.Time
	}
	rt.IDPhotoURL, rt.Notes = photo.String, notes.String
	return rt, nil
}

func insertPaymentTx(ctx context.Context, tx *sql.Tx, p *domain.Payment, now time.Time) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	_, err := tx.ExecContext(ctx,
		`INSERT INTO payments (id, rental_id, operator_id, method, amount_cents, concept, reference, origin_number, created_on)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		p.ID, p.RentalID, p.OperatorID, p.Method, p.AmountCents, p.Concept,
		nullable(p.Reference), nullable(p.OriginNumber), now)
	if err == nil {
		p.CreatedOn = now
	}
	return err
}

func insertAuditTx(ctx context.Context, tx *sql.Tx, e *domain.AuditEntry, now time.Time) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	before, err := json.Marshal(e.Before)
	if err != nil {
		return err
	}
	after, err := json.Marshal(e.After)
	if err != nil {
		return err
	}
	_, err = tx.ExecContext(ctx,
		`INSERT INTO audit_log (id, profile_id, action, entity, record_id, before, after, created_on)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		e.ID, e.ProfileID, e.Action, e.Entity, e.RecordID, before, after, now)
	return err
}

func insertNotificationTx(ctx context.Context, tx *sql.Tx, n *domain.Notification, now time.Time) error {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	_, err := tx.ExecContext(ctx,
		`INSERT INTO notifications (id, rental_id, client_id, phone, kind, message, sent, created_on)
		 VALUES ($1, $2, $3, $4, $5, $6, false, $7)`,
		n.ID, nullable(n.RentalID), n.ClientID, n.Phone, n.Kind, n.Message, now)
	if err == nil {
		n.CreatedOn = now
	}
	return err
}
