package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"sisdisfraz-backend/internal/domain"
	"sisdisfraz-backend/internal/repository"
)

type costumeRepository struct {
	db *sql.DB
}

func NewCostumeRepository(db *sql.DB) repository.CostumeRepository {
	return &costumeRepository{db: db}
}

const costumeColumns = `id, name, dance, size, description, photo_url, base_price_cents, high_season_price_cents,
	condition, stock_total, stock_available, stock_rented, stock_laundry, active, created_on, updated_on`

func (r *costumeRepository) Create(ctx context.Context, c *domain.Costume, pieces []domain.CostumePiece) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	now := time.Now()
	query := `INSERT INTO costumes (id, name, dance, size, description, photo_url, base_price_cents, high_season_price_cents,
	            condition, stock_total, stock_available, stock_rented, stock_laundry, active, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, 0, 0, $12, $13, $14)`
	_, err = tx.ExecContext(ctx, query, c.ID, c.Name, c.Dance, c.Size, nullable(c.Description), nullable(c.PhotoURL),
		c.BasePriceCents, c.HighSeasonPriceCents, c.Condition, c.StockTotal, c.StockAvailable, c.Active, now, now)
	if err != nil {
		return err
	}

	for i := range pieces {
		p := &pieces[i]
		if p.ID == "" {
			p.ID = uuid.NewString()
		}
		p.CostumeID = c.ID
		_, err = tx.ExecContext(ctx,
			`INSERT INTO costume_pieces (id, costume_id, name, required, position) VALUES ($1, $2, $3, $4, $5)`,
			p.ID, p.CostumeID, p.Name, p.Required, p.Position)
		if err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	c.CreatedOn, c.UpdatedOn = now, now
	return nil
}

func (r *costumeRepository) GetByID(ctx context.Context, id string) (*domain.Costume, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+costumeColumns+` FROM costumes WHERE id = $1`, id)
	return scanCostume(row)
}

func (r *costumeRepository) Update(ctx context.Context, c *domain.Costume) error {
	query := `UPDATE costumes SET name=$1, dance=$2, size=$3, description=$4, photo_url=$5, base_price_cents=$6,
	            high_season_price_cents=$7, condition=$8, stock_total=$9, active=$10, updated_on=$11
	          WHERE id=$12`
	res, err := r.db.ExecContext(ctx, query, c.Name, c.Dance, c.Size, nullable(c.Description), nullable(c.PhotoURL),
		c.BasePriceCents, c.HighSeasonPriceCents, c.Condition, c.StockTotal, c.Active, time.Now(), c.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *costumeRepository) Deactivate(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE costumes SET active=false, updated_on=$1 WHERE id=$2`, time.Now(), id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *costumeRepository) List(ctx context.Context, activeOnly bool, page, pageSize int32) ([]domain.Costume, int32, error) {
	offset := (page - 1) * pageSize
	where := ""
	if activeOnly {
		where = ` WHERE active = true`
	}

	var count int32
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM costumes`+where).Scan(&count); err != nil {
		return nil, 0, err
	}

	listSQL := fmt.Sprintf(`SELECT %s FROM costumes%s ORDER BY name ASC LIMIT $1 OFFSET $2`, costumeColumns, where)
	rows, err := r.db.QueryContext(ctx, listSQL, pageSize, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var costumes []domain.Costume
	for rows.Next() {
		c, err := scanCostumeRows(rows)
		if err != nil {
			return nil, 0, err
		}
		costumes = append(costumes, *c)
	}
	return costumes, count, rows.Err()
}

func (r *costumeRepository) GetPieces(ctx context.Context, costumeID string) ([]domain.CostumePiece, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, costume_id, name, required, position FROM costume_pieces WHERE costume_id = $1 ORDER BY position ASC`,
		costumeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var pieces []domain.CostumePiece
	for rows.Next() {
		var p domain.CostumePiece
		if err := rows.Scan(&p.ID, &p.CostumeID, &p.Name, &p.Required, &p.Position); err != nil {
			return nil, err
		}
		pieces = append(pieces, p)
	}
	return pieces, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanCostume(row *sql.Row) (*domain.Costume, error) {
	c, err := scanCostumeRows(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	return c, err
}

func scanCostumeRows(s rowScanner) (*domain.Costume, error) {
	c := &domain.Costume{}
	var desc, photo sql.NullString
	err := s.Scan(&c.ID, &c.Name, &c.Dance, &c.Size, &desc, &photo, &c.BasePriceCents, &c.HighSeasonPriceCents,
		&c.Condition, &c.StockTotal, &c.StockAvailable, &c.StockRented, &c.StockLaundry, &c.Active, &c.CreatedOn, &c.UpdatedOn)
	if err != nil {
		return nil, err
	}
	c.Description, c.PhotoURL = desc.String, photo.String
	return c, nil
}
