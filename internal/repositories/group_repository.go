package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"temple-backend/internal/apperr"
	"temple-backend/internal/models"
)

const pgUniqueViolation = "23505"

type GroupRepository struct {
	DB *pgxpool.Pool
}

func NewGroupRepository(db *pgxpool.Pool) *GroupRepository {
	return &GroupRepository{DB: db}
}

// GetAll returns every group. The table is small (a chart of accounts is a
// few hundred rows at most), so callers load it whole and walk it in memory.
func (r *GroupRepository) GetAll(ctx context.Context) ([]models.Group, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT id, name, code, parent_id, fixed FROM groups ORDER BY code`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var groups []models.Group
	for rows.Next() {
		var g models.Group
		if err := rows.Scan(&g.ID, &g.Name, &g.Code, &g.ParentID, &g.Fixed); err != nil {
			return nil, err
		}
		groups = append(groups, g)
	}
	return groups, rows.Err()
}

// Get retrieves a group by ID
func (r *GroupRepository) Get(ctx context.Context, id int) (*models.Group, error) {
	var g models.Group
	err := r.DB.QueryRow(ctx,
		`SELECT id, name, code, parent_id, fixed FROM groups WHERE id = $1`, id,
	).Scan(&g.ID, &g.Name, &g.Code, &g.ParentID, &g.Fixed)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("group", id)
		}
		return nil, err
	}
	return &g, nil
}

// Create inserts a new group. The code uniqueness constraint backstops the
// service's check-then-act validation under concurrent writers.
func (r *GroupRepository) Create(ctx context.Context, g *models.Group) error {
	err := r.DB.QueryRow(ctx,
		`INSERT INTO groups (name, code, parent_id, fixed)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id`,
		g.Name, g.Code, g.ParentID, g.Fixed,
	).Scan(&g.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return apperr.Conflict("group code %s already exists", g.Code)
		}
		return fmt.Errorf("failed to create group: %w", err)
	}
	return nil
}

// Update rewrites a group's name, code and parent, refreshing the left_code
// denormalized onto its direct ledgers in the same transaction.
func (r *GroupRepository) Update(ctx context.Context, g *models.Group) error {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx,
		`UPDATE groups SET name = $1, code = $2, parent_id = $3 WHERE id = $4`,
		g.Name, g.Code, g.ParentID, g.ID,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return apperr.Conflict("group code %s already exists", g.Code)
		}
		return fmt.Errorf("failed to update group: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("group", g.ID)
	}

	if _, err := tx.Exec(ctx,
		`UPDATE ledgers SET left_code = $1 WHERE group_id = $2`,
		g.Code, g.ID,
	); err != nil {
		return fmt.Errorf("failed to update ledger codes: %w", err)
	}

	return tx.Commit(ctx)
}

// Delete removes a group after re-checking the dependent guards inside one
// transaction, so a ledger or child created between validation and delete
// cannot orphan itself.
func (r *GroupRepository) Delete(ctx context.Context, id int) error {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var ledgerCount int
	if err := tx.QueryRow(ctx,
		`SELECT COUNT(*) FROM ledgers WHERE group_id = $1`, id,
	).Scan(&ledgerCount); err != nil {
		return err
	}
	if ledgerCount > 0 {
		return apperr.Referential("group has %d ledger(s)", ledgerCount)
	}

	var childCount int
	if err := tx.QueryRow(ctx,
		`SELECT COUNT(*) FROM groups WHERE parent_id = $1`, id,
	).Scan(&childCount); err != nil {
		return err
	}
	if childCount > 0 {
		return apperr.Referential("group has %d child group(s)", childCount)
	}

	tag, err := tx.Exec(ctx, `DELETE FROM groups WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete group: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("group", id)
	}

	return tx.Commit(ctx)
}
