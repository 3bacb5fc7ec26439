package models

import (
	"time"

	"github.com/shopspring/decimal"

	"temple-backend/internal/timeutil"
)

// AcYearStatus marks whether an accounting year is open for posting.
type AcYearStatus int

const (
	AcYearInactive AcYearStatus = 0
	AcYearActive   AcYearStatus = 1
)

// AcYear is an accounting period. Exactly one year is active at a time,
// enforced by a partial unique index on ac_years(status).
type AcYear struct {
	ID     int          `json:"id"`
	From   time.Time    `json:"from"`
	To     time.Time    `json:"to"`
	Status AcYearStatus `json:"status"`
}

// Contains reports whether d falls inside the year's date range (inclusive).
// Boundaries are civil dates: the database scans DATE columns as midnight
// UTC while request dates parse as midnight IST, so the instants differ by
// the zone offset even on the same day. Comparing the IST calendar dates
// keeps the year's own first and last day inside the year.
func (y *AcYear) Contains(d time.Time) bool {
	day := timeutil.FormatDate(d)
	return day >= timeutil.FormatDate(y.From) && day <= timeutil.FormatDate(y.To)
}

// AcYearLedgerBalance is a ledger's opening snapshot for one accounting year.
// At most one row exists per (year, ledger); at most one of DrAmount/CrAmount
// is non-zero.
type AcYearLedgerBalance struct {
	AcYearID int             `json:"ac_year_id"`
	LedgerID int             `json:"ledger_id"`
	DrAmount decimal.Decimal `json:"dr_amount"`
	CrAmount decimal.Decimal `json:"cr_amount"`
}

// Net returns the signed opening balance, positive = debit.
func (b *AcYearLedgerBalance) Net() decimal.Decimal {
	return b.DrAmount.Sub(b.CrAmount)
}

// CreateAcYearRequest creates a new accounting year.
type CreateAcYearRequest struct {
	From string `json:"from"` // YYYY-MM-DD
	To   string `json:"to"`
}
