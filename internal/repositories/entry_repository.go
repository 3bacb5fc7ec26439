package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"temple-backend/internal/apperr"
	"temple-backend/internal/models"
)

// signedAmount folds the dc flag into a signed expression, positive = debit.
// Every aggregate in this repository sums this one expression.
const signedAmount = `CASE WHEN ei.dc = 'D' THEN ei.amount ELSE -ei.amount END`

type EntryRepository struct {
	DB *pgxpool.Pool
}

func NewEntryRepository(db *pgxpool.Pool) *EntryRepository {
	return &EntryRepository{DB: db}
}

// Create inserts the entry header and all posting lines in one transaction.
// The service has already verified the set balances.
func (r *EntryRepository) Create(ctx context.Context, entry *models.Entry, items []models.EntryItem) error {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx,
		`INSERT INTO entries (date, entrytype, narration, invoice_type)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at`,
		entry.Date, entry.EntryType, entry.Narration, entry.InvoiceType,
	).Scan(&entry.ID, &entry.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create entry: %w", err)
	}

	for i := range items {
		items[i].EntryID = entry.ID
		err = tx.QueryRow(ctx,
			`INSERT INTO entryitems (entry_id, ledger_id, dc, amount)
			 VALUES ($1, $2, $3, $4)
			 RETURNING id`,
			entry.ID, items[i].LedgerID, items[i].DC, items[i].Amount,
		).Scan(&items[i].ID)
		if err != nil {
			return fmt.Errorf("failed to create entry item: %w", err)
		}
	}

	return tx.Commit(ctx)
}

// Get retrieves an entry with its items
func (r *EntryRepository) Get(ctx context.Context, id int) (*models.EntryWithItems, error) {
	var e models.EntryWithItems
	err := r.DB.QueryRow(ctx,
		`SELECT id, date, entrytype, narration, invoice_type, created_at
		 FROM entries WHERE id = $1`, id,
	).Scan(&e.ID, &e.Date, &e.EntryType, &e.Narration, &e.InvoiceType, &e.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("entry", id)
		}
		return nil, err
	}

	rows, err := r.DB.Query(ctx,
		`SELECT id, entry_id, ledger_id, dc, amount FROM entryitems
		 WHERE entry_id = $1 ORDER BY id`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var it models.EntryItem
		if err := rows.Scan(&it.ID, &it.EntryID, &it.LedgerID, &it.DC, &it.Amount); err != nil {
			return nil, err
		}
		e.Items = append(e.Items, it)
	}
	return &e, rows.Err()
}

// List returns entry headers in a date window, oldest first.
func (r *EntryRepository) List(ctx context.Context, from, to time.Time) ([]models.Entry, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT id, date, entrytype, narration, invoice_type, created_at
		 FROM entries WHERE date >= $1 AND date <= $2
		 ORDER BY date, id`, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []models.Entry
	for rows.Next() {
		var e models.Entry
		if err := rows.Scan(&e.ID, &e.Date, &e.EntryType, &e.Narration, &e.InvoiceType, &e.CreatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// TransactionsForLedger returns a ledger's posting lines joined with their
// headers, ordered (date ASC, entry id ASC) so running balances are
// deterministic. invoiceType filters entries: "" = all, "manual" = entries
// with no invoice tag, anything else = exact tag match.
func (r *EntryRepository) TransactionsForLedger(ctx context.Context, ledgerID int, from, to time.Time, invoiceType string) ([]models.LedgerTransaction, error) {
	query := `
		SELECT e.id, e.date, e.entrytype, e.narration, e.invoice_type,
		       ei.ledger_id, ei.dc, ei.amount
		FROM entryitems ei
		JOIN entries e ON e.id = ei.entry_id
		WHERE ei.ledger_id = $1 AND e.date >= $2 AND e.date <= $3
	`
	args := []interface{}{ledgerID, from, to}
	switch invoiceType {
	case "":
	case "manual":
		query += " AND e.invoice_type IS NULL"
	default:
		query += " AND e.invoice_type = $4"
		args = append(args, invoiceType)
	}
	query += " ORDER BY e.date ASC, e.id ASC"

	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var txns []models.LedgerTransaction
	for rows.Next() {
		var t models.LedgerTransaction
		if err := rows.Scan(&t.EntryID, &t.Date, &t.EntryType, &t.Narration,
			&t.InvoiceType, &t.LedgerID, &t.DC, &t.Amount); err != nil {
			return nil, err
		}
		txns = append(txns, t)
	}
	return txns, rows.Err()
}

// SumSignedBefore sums a ledger's signed postings dated in [start, cutoff).
// Used to roll the year-opening snapshot forward to a report window's start.
func (r *EntryRepository) SumSignedBefore(ctx context.Context, ledgerID int, start, cutoff time.Time) (decimal.Decimal, error) {
	var sum decimal.Decimal
	err := r.DB.QueryRow(ctx,
		`SELECT COALESCE(SUM(`+signedAmount+`), 0)
		 FROM entryitems ei
		 JOIN entries e ON e.id = ei.entry_id
		 WHERE ei.ledger_id = $1 AND e.date >= $2 AND e.date < $3`,
		ledgerID, start, cutoff,
	).Scan(&sum)
	return sum, err
}

// SumSignedPerLedgerBefore returns each ledger's signed sum over [start,
// cutoff), keyed by ledger ID. Ledgers without postings have no key. Reports
// bulk-load these once per call instead of issuing a query per tree frame.
func (r *EntryRepository) SumSignedPerLedgerBefore(ctx context.Context, start, cutoff time.Time) (map[int]decimal.Decimal, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT ei.ledger_id, COALESCE(SUM(`+signedAmount+`), 0)
		 FROM entryitems ei
		 JOIN entries e ON e.id = ei.entry_id
		 WHERE e.date >= $1 AND e.date < $2
		 GROUP BY ei.ledger_id`,
		start, cutoff)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanLedgerSums(rows)
}

// SumSignedPerLedgerThrough returns each ledger's signed sum over [from, to],
// keyed by ledger ID.
func (r *EntryRepository) SumSignedPerLedgerThrough(ctx context.Context, from, to time.Time) (map[int]decimal.Decimal, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT ei.ledger_id, COALESCE(SUM(`+signedAmount+`), 0)
		 FROM entryitems ei
		 JOIN entries e ON e.id = ei.entry_id
		 WHERE e.date >= $1 AND e.date <= $2
		 GROUP BY ei.ledger_id`,
		from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanLedgerSums(rows)
}

func scanLedgerSums(rows pgx.Rows) (map[int]decimal.Decimal, error) {
	sums := make(map[int]decimal.Decimal)
	for rows.Next() {
		var ledgerID int
		var sum decimal.Decimal
		if err := rows.Scan(&ledgerID, &sum); err != nil {
			return nil, err
		}
		sums[ledgerID] = sum
	}
	return sums, rows.Err()
}

// SumSignedForLedgerSet sums signed postings over a set of ledgers in
// [from, to]. Callers choose the set; filters like the pass-through
// exclusion are applied when picking the IDs.
func (r *EntryRepository) SumSignedForLedgerSet(ctx context.Context, ledgerIDs []int, from, to time.Time) (decimal.Decimal, error) {
	var sum decimal.Decimal
	err := r.DB.QueryRow(ctx,
		`SELECT COALESCE(SUM(`+signedAmount+`), 0)
		 FROM entryitems ei
		 JOIN entries e ON e.id = ei.entry_id
		 WHERE ei.ledger_id = ANY($1) AND e.date >= $2 AND e.date <= $3`,
		ledgerIDs, from, to,
	).Scan(&sum)
	return sum, err
}

// SumOpeningForLedgerSet sums the signed year-opening snapshots (dr - cr)
// over a set of ledgers.
func (r *EntryRepository) SumOpeningForLedgerSet(ctx context.Context, acYearID int, ledgerIDs []int) (decimal.Decimal, error) {
	var sum decimal.Decimal
	err := r.DB.QueryRow(ctx,
		`SELECT COALESCE(SUM(b.dr_amount - b.cr_amount), 0)
		 FROM ac_year_ledger_balance b
		 WHERE b.ac_year_id = $1 AND b.ledger_id = ANY($2)`,
		acYearID, ledgerIDs,
	).Scan(&sum)
	return sum, err
}

// SumSignedByRootPrefix sums signed postings in [from, to] over every ledger
// whose left code starts with one of the given first digits. The profit and
// loss movement is computed from the income and expense code families.
func (r *EntryRepository) SumSignedByRootPrefix(ctx context.Context, prefixes []string, from, to time.Time) (decimal.Decimal, error) {
	var sum decimal.Decimal
	err := r.DB.QueryRow(ctx,
		`SELECT COALESCE(SUM(`+signedAmount+`), 0)
		 FROM entryitems ei
		 JOIN entries e ON e.id = ei.entry_id
		 JOIN ledgers l ON l.id = ei.ledger_id
		 WHERE LEFT(l.left_code, 1) = ANY($1) AND e.date >= $2 AND e.date <= $3`,
		prefixes, from, to,
	).Scan(&sum)
	return sum, err
}
