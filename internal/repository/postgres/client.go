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

type clientRepository struct {
	db *sql.DB
}

func NewClientRepository(db *sql.DB) repository.ClientRepository {
	return &clientRepository{db: db}
}

const clientColumns = `id, name, national_id, phone, id_photo_url, total_rentals, total_spent_cents, created_on, updated_on`

func (r *clientRepository) Create(ctx context.Context, c *domain.Client) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	now := time.Now()
	query := `INSERT INTO clients (id, name, national_id, phone, id_photo_url, total_rentals, total_spent_cents, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, 0, 0, $6, $7)`
	_, err := r.db.ExecContext(ctx, query, c.ID, c.Name, c.NationalID, c.Phone, nullable(c.IDPhotoURL), now, now)
	if isUniqueViolation(err) {
		return repository.ErrDuplicate
	}
	if err == nil {
		c.CreatedOn, c.UpdatedOn = now, now
	}
	return err
}

func (r *clientRepository) GetByID(ctx context.Context, id string) (*domain.Client, error) {
	return scanClient(r.db.QueryRowContext(ctx, `SELECT `+clientColumns+` FROM clients WHERE id = $1`, id))
}

func (r *clientRepository) GetByNationalID(ctx context.Context, nationalID string) (*domain.Client, error) {
	return scanClient(r.db.QueryRowContext(ctx, `SELECT `+clientColumns+` FROM clients WHERE national_id = $1`, nationalID))
}

func (r *clientRepository) Update(ctx context.Context, c *domain.Client) error {
	query := `UPDATE clients SET name=$1, phone=$2, id_photo_url=$3, updated_on=$4 WHERE id=$5`
	res, err := r.db.ExecContext(ctx, query, c.Name, c.Phone, nullable(c.IDPhotoURL), time.Now(), c.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *clientRepository) List(ctx context.Context, query string, page, pageSize int32) ([]domain.Client, int32, error) {
	offset := (page - 1) * pageSize
	where := ""
	args := []interface{}{}
	if query != "" {
		where = ` WHERE name ILIKE $1 OR national_id = $2`
		args = append(args, "%"+query+"%", query)
	}

	var count int32
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM clients`+where, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	listSQL := `SELECT ` + clientColumns + ` FROM clients` + where +
		` ORDER BY name ASC LIMIT ` + placeholder(len(args)+1) + ` OFFSET ` + placeholder(len(args)+2)
	args = append(args, pageSize, offset)

	rows, err := r.db.QueryContext(ctx, listSQL, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var clients []domain.Client
	for rows.Next() {
		var c domain.Client
		var photo sql.NullString
		if err := rows.Scan(&c.ID, &c.Name, &c.NationalID, &c.Phone, &photo, &c.TotalRentals, &c.TotalSpentCents, &c.CreatedOn, &c.UpdatedOn); err != nil {
			return nil, 0, err
		}
		c.IDPhotoURL = photo.String
		clients = append(clients, c)
	}
	return clients, count, rows.Err()
}

func scanClient(row *sql.Row) (*domain.Client, error) {
	c := &domain.Client{}
	var photo sql.NullString
	err := row.Scan(&c.ID, &c.Name, &c.NationalID, &c.Phone, &photo, &c.TotalRentals, &c.TotalSpentCents, &c.CreatedOn, &c.UpdatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	c.IDPhotoURL = photo.String
	return c, nil
}
