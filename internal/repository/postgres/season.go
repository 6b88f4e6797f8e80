package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"sisdisfraz-backend/internal/domain"
	"sisdisfraz-backend/internal/repository"
)

type seasonRepository struct {
	db *sql.DB
}

func NewSeasonRepository(db *sql.DB) repository.SeasonRepository {
	return &seasonRepository{db: db}
}

func (r *seasonRepository) Create(ctx context.Context, s *domain.Season) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	query := `INSERT INTO seasons (id, name, kind, start_date, end_date, active) VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.db.ExecContext(ctx, query, s.ID, s.Name, s.Kind, s.StartDate, s.EndDate, s.Active)
	return err
}

func (r *seasonRepository) Update(ctx context.Context, s *domain.Season) error {
	query := `UPDATE seasons SET name=$1, kind=$2, start_date=$3, end_date=$4, active=$5 WHERE id=$6`
	res, err := r.db.ExecContext(ctx, query, s.Name, s.Kind, s.StartDate, s.EndDate, s.Active, s.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *seasonRepository) List(ctx context.Context) ([]domain.Season, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, kind, start_date, end_date, active FROM seasons ORDER BY start_date ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var seasons []domain.Season
	for rows.Next() {
		var s domain.Season
		if err := rows.Scan(&s.ID, &s.Name, &s.Kind, &s.StartDate, &s.EndDate, &s.Active); err != nil {
			return nil, err
		}
		seasons = append(seasons, s)
	}
	return seasons, rows.Err()
}

// ActiveHighSeasonOn resolves against the season table as of call time;
// boundary dates count as inside (closed interval).
func (r *seasonRepository) ActiveHighSeasonOn(ctx context.Context, date time.Time) (*domain.Season, error) {
	s := &domain.Season{}
	query := `SELECT id, name, kind, start_date, end_date, active FROM seasons
	          WHERE kind = 'high' AND active = true AND start_date <= $1 AND end_date >= $1
	          ORDER BY start_date ASC LIMIT 1`
	err := r.db.QueryRowContext(ctx, query, date).Scan(&s.ID, &s.Name, &s.Kind, &s.StartDate, &s.EndDate, &s.Active)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}
