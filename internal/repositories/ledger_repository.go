package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"temple-backend/internal/apperr"
	"temple-backend/internal/models"
)

const ledgerColumns = `id, name, group_id, left_code, right_code,
	bank, pa, hb, aging, credit_aging, iv`

type LedgerRepository struct {
	DB *pgxpool.Pool
}

func NewLedgerRepository(db *pgxpool.Pool) *LedgerRepository {
	return &LedgerRepository{DB: db}
}

func scanLedger(row pgx.Row) (*models.Ledger, error) {
	var l models.Ledger
	err := row.Scan(&l.ID, &l.Name, &l.GroupID, &l.LeftCode, &l.RightCode,
		&l.Bank, &l.PA, &l.HB, &l.Aging, &l.CreditAging, &l.IV)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

// GetAll returns every ledger ordered by full code.
func (r *LedgerRepository) GetAll(ctx context.Context) ([]models.Ledger, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT `+ledgerColumns+` FROM ledgers ORDER BY left_code, right_code`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ledgers []models.Ledger
	for rows.Next() {
		l, err := scanLedger(rows)
		if err != nil {
			return nil, err
		}
		ledgers = append(ledgers, *l)
	}
	return ledgers, rows.Err()
}

// GetByGroup returns the ledgers directly under one group.
func (r *LedgerRepository) GetByGroup(ctx context.Context, groupID int) ([]models.Ledger, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT `+ledgerColumns+` FROM ledgers WHERE group_id = $1 ORDER BY right_code`,
		groupID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ledgers []models.Ledger
	for rows.Next() {
		l, err := scanLedger(rows)
		if err != nil {
			return nil, err
		}
		ledgers = append(ledgers, *l)
	}
	return ledgers, rows.Err()
}

// Get retrieves a ledger by ID
func (r *LedgerRepository) Get(ctx context.Context, id int) (*models.Ledger, error) {
	l, err := scanLedger(r.DB.QueryRow(ctx,
		`SELECT `+ledgerColumns+` FROM ledgers WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("ledger", id)
		}
		return nil, err
	}
	return l, nil
}

// GetByIDs retrieves the given ledgers, skipping unknown IDs.
func (r *LedgerRepository) GetByIDs(ctx context.Context, ids []int) ([]models.Ledger, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT `+ledgerColumns+` FROM ledgers WHERE id = ANY($1) ORDER BY left_code, right_code`,
		ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ledgers []models.Ledger
	for rows.Next() {
		l, err := scanLedger(rows)
		if err != nil {
			return nil, err
		}
		ledgers = append(ledgers, *l)
	}
	return ledgers, rows.Err()
}

// Create inserts a ledger and, when opening is non-nil, its opening balance
// row for the given accounting year, atomically.
func (r *LedgerRepository) Create(ctx context.Context, l *models.Ledger, opening *models.AcYearLedgerBalance) error {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx,
		`INSERT INTO ledgers (name, group_id, left_code, right_code, bank, pa, hb, aging, credit_aging, iv)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 RETURNING id`,
		l.Name, l.GroupID, l.LeftCode, l.RightCode,
		l.Bank, l.PA, l.HB, l.Aging, l.CreditAging, l.IV,
	).Scan(&l.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return apperr.Conflict("ledger code %s/%s already exists", l.LeftCode, l.RightCode)
		}
		return fmt.Errorf("failed to create ledger: %w", err)
	}

	if opening != nil {
		opening.LedgerID = l.ID
		if err := upsertOpeningBalance(ctx, tx, opening); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

// Update rewrites a ledger and its opening balance row atomically.
func (r *LedgerRepository) Update(ctx context.Context, l *models.Ledger, opening *models.AcYearLedgerBalance) error {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx,
		`UPDATE ledgers SET name = $1, group_id = $2, left_code = $3, right_code = $4,
		        bank = $5, pa = $6, hb = $7, aging = $8, credit_aging = $9, iv = $10
		 WHERE id = $11`,
		l.Name, l.GroupID, l.LeftCode, l.RightCode,
		l.Bank, l.PA, l.HB, l.Aging, l.CreditAging, l.IV, l.ID,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return apperr.Conflict("ledger code %s/%s already exists", l.LeftCode, l.RightCode)
		}
		return fmt.Errorf("failed to update ledger: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("ledger", l.ID)
	}

	if opening != nil {
		opening.LedgerID = l.ID
		if err := upsertOpeningBalance(ctx, tx, opening); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

// Delete removes a ledger unless journal items still reference it. The
// reference check runs inside the delete transaction.
func (r *LedgerRepository) Delete(ctx context.Context, id int) error {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var itemCount int
	if err := tx.QueryRow(ctx,
		`SELECT COUNT(*) FROM entryitems WHERE ledger_id = $1`, id,
	).Scan(&itemCount); err != nil {
		return err
	}
	if itemCount > 0 {
		return apperr.Referential("ledger has %d posted transaction(s)", itemCount)
	}

	if _, err := tx.Exec(ctx,
		`DELETE FROM ac_year_ledger_balance WHERE ledger_id = $1`, id); err != nil {
		return err
	}

	tag, err := tx.Exec(ctx, `DELETE FROM ledgers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete ledger: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("ledger", id)
	}

	return tx.Commit(ctx)
}

func upsertOpeningBalance(ctx context.Context, tx pgx.Tx, b *models.AcYearLedgerBalance) error {
	_, err := tx.Exec(ctx,
		`INSERT INTO ac_year_ledger_balance (ac_year_id, ledger_id, dr_amount, cr_amount)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (ac_year_id, ledger_id)
		 DO UPDATE SET dr_amount = EXCLUDED.dr_amount, cr_amount = EXCLUDED.cr_amount`,
		b.AcYearID, b.LedgerID, b.DrAmount, b.CrAmount,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert opening balance: %w", err)
	}
	return nil
}

// GetOpeningBalance returns the opening snapshot for (year, ledger), a zero
// balance when no row exists.
func (r *LedgerRepository) GetOpeningBalance(ctx context.Context, acYearID, ledgerID int) (*models.AcYearLedgerBalance, error) {
	b := &models.AcYearLedgerBalance{
		AcYearID: acYearID,
		LedgerID: ledgerID,
		DrAmount: decimal.Zero,
		CrAmount: decimal.Zero,
	}
	err := r.DB.QueryRow(ctx,
		`SELECT dr_amount, cr_amount FROM ac_year_ledger_balance
		 WHERE ac_year_id = $1 AND ledger_id = $2`,
		acYearID, ledgerID,
	).Scan(&b.DrAmount, &b.CrAmount)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return b, nil
		}
		return nil, err
	}
	return b, nil
}

// GetOpeningBalances returns every opening snapshot for a year keyed by
// ledger ID. Ledgers with no row simply have no key.
func (r *LedgerRepository) GetOpeningBalances(ctx context.Context, acYearID int) (map[int]models.AcYearLedgerBalance, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT ledger_id, dr_amount, cr_amount FROM ac_year_ledger_balance
		 WHERE ac_year_id = $1`, acYearID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	balances := make(map[int]models.AcYearLedgerBalance)
	for rows.Next() {
		b := models.AcYearLedgerBalance{AcYearID: acYearID}
		if err := rows.Scan(&b.LedgerID, &b.DrAmount, &b.CrAmount); err != nil {
			return nil, err
		}
		balances[b.LedgerID] = b
	}
	return balances, rows.Err()
}
