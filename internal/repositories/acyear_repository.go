package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"temple-backend/internal/apperr"
	"temple-backend/internal/models"
)

type AcYearRepository struct {
	DB *pgxpool.Pool
}

func NewAcYearRepository(db *pgxpool.Pool) *AcYearRepository {
	return &AcYearRepository{DB: db}
}

// GetActive returns the active accounting year, nil if none is active.
func (r *AcYearRepository) GetActive(ctx context.Context) (*models.AcYear, error) {
	var y models.AcYear
	err := r.DB.QueryRow(ctx,
		`SELECT id, date_from, date_to, status FROM ac_years WHERE status = 1`,
	).Scan(&y.ID, &y.From, &y.To, &y.Status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &y, nil
}

// Get retrieves an accounting year by ID
func (r *AcYearRepository) Get(ctx context.Context, id int) (*models.AcYear, error) {
	var y models.AcYear
	err := r.DB.QueryRow(ctx,
		`SELECT id, date_from, date_to, status FROM ac_years WHERE id = $1`, id,
	).Scan(&y.ID, &y.From, &y.To, &y.Status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("accounting year", id)
		}
		return nil, err
	}
	return &y, nil
}

// List returns all accounting years, newest first.
func (r *AcYearRepository) List(ctx context.Context) ([]models.AcYear, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT id, date_from, date_to, status FROM ac_years ORDER BY date_from DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var years []models.AcYear
	for rows.Next() {
		var y models.AcYear
		if err := rows.Scan(&y.ID, &y.From, &y.To, &y.Status); err != nil {
			return nil, err
		}
		years = append(years, y)
	}
	return years, rows.Err()
}

// Create inserts a new accounting year (inactive).
func (r *AcYearRepository) Create(ctx context.Context, y *models.AcYear) error {
	err := r.DB.QueryRow(ctx,
		`INSERT INTO ac_years (date_from, date_to, status) VALUES ($1, $2, $3) RETURNING id`,
		y.From, y.To, y.Status,
	).Scan(&y.ID)
	if err != nil {
		return fmt.Errorf("failed to create accounting year: %w", err)
	}
	return nil
}

// Activate makes the given year the single active one. Deactivate-then-
// activate runs in one transaction under the partial unique index, so two
// concurrent activations cannot leave two active years.
func (r *AcYearRepository) Activate(ctx context.Context, id int) error {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `UPDATE ac_years SET status = 0 WHERE status = 1`); err != nil {
		return err
	}

	tag, err := tx.Exec(ctx, `UPDATE ac_years SET status = 1 WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to activate accounting year: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("accounting year", id)
	}

	return tx.Commit(ctx)
}

// Overlaps reports whether any existing year overlaps [from, to].
func (r *AcYearRepository) Overlaps(ctx context.Context, y *models.AcYear) (bool, error) {
	var count int
	err := r.DB.QueryRow(ctx,
		`SELECT COUNT(*) FROM ac_years WHERE date_from <= $2 AND date_to >= $1 AND id <> $3`,
		y.From, y.To, y.ID,
	).Scan(&count)
	return count > 0, err
}
