package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"sisdisfraz-backend/internal/domain"
	"sisdisfraz-backend/internal/repository"
)

type profileRepository struct {
	db *sql.DB
}

func NewProfileRepository(db *sql.DB) repository.ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) Create(ctx context.Context, p *domain.Profile) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	now := time.Now()
	query := `INSERT INTO profiles (id, name, email, role, password_hash, active, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.db.ExecContext(ctx, query, p.ID, p.Name, p.Email, p.Role, p.PasswordHash, p.Active, now, now)
	if isUniqueViolation(err) {
		return repository.ErrDuplicate
	}
	if err == nil {
		p.CreatedOn, p.UpdatedOn = now, now
	}
	return err
}

func (r *profileRepository) GetByID(ctx context.Context, id string) (*domain.Profile, error) {
	query := `SELECT id, name, email, role, password_hash, active, created_on, updated_on
	          FROM profiles WHERE id = $1`
	return scanProfile(r.db.QueryRowContext(ctx, query, id))
}

func (r *profileRepository) GetByEmail(ctx context.Context, email string) (*domain.Profile, error) {
	query := `SELECT id, name, email, role, password_hash, active, created_on, updated_on
	          FROM profiles WHERE email = $1`
	return scanProfile(r.db.QueryRowContext(ctx, query, email))
}

func (r *profileRepository) Update(ctx context.Context, p *domain.Profile) error {
	query := `UPDATE profiles SET name=$1, email=$2, role=$3, password_hash=$4, active=$5, updated_on=$6 WHERE id=$7`
	_, err := r.db.ExecContext(ctx, query, p.Name, p.Email, p.Role, p.PasswordHash, p.Active, time.Now(), p.ID)
	return err
}

func scanProfile(row *sql.Row) (*domain.Profile, error) {
	p := &domain.Profile{}
	err := row.Scan(&p.ID, &p.Name, &p.Email, &p.Role, &p.PasswordHash, &p.Active, &p.CreatedOn, &p.UpdatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
