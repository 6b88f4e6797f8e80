package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"sisdisfraz-backend/internal/domain"
	"sisdisfraz-backend/internal/repository"
)

type auditRepository struct {
	db *sql.DB
}

func NewAuditRepository(db *sql.DB) repository.AuditRepository {
	return &auditRepository{db: db}
}

func (r *auditRepository) Create(ctx context.Context, e *domain.AuditEntry) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()
	if err := insertAuditTx(ctx, tx, e, time.Now()); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *auditRepository) ListByRecord(ctx context.Context, entity, recordID string) ([]domain.AuditEntry, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, profile_id, action, entity, record_id, before, after, created_on
		 FROM audit_log WHERE entity = $1 AND record_id = $2 ORDER BY created_on ASC`, entity, recordID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []domain.AuditEntry
	for rows.Next() {
		var e domain.AuditEntry
		var before, after []byte
		if err := rows.Scan(&e.ID, &e.ProfileID, &e.Action, &e.Entity, &e.RecordID, &before, &after, &e.CreatedOn); err != nil {
			return nil, err
		}
		if len(before) > 0 {
			if err := json.Unmarshal(before, &e.Before); err != nil {
				return nil, err
			}
		}
		if len(after) > 0 {
			if err := json.Unmarshal(after, &e.After); err != nil {
				return nil, err
			}
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
