package models

import (
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"temple-backend/internal/timeutil"
)

func TestLedgerFullCode(t *testing.T) {
	l := Ledger{LeftCode: "1110", RightCode: "0007"}
	assert.Equal(t, "1110/0007", l.FullCode())
}

func TestGroupIsRoot(t *testing.T) {
	assert.True(t, (&Group{ParentID: 0}).IsRoot())
	assert.False(t, (&Group{ParentID: 3}).IsRoot())
}

func TestAcYearContains(t *testing.T) {
	year := AcYear{
		From: time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
		To:   time.Date(2027, 3, 31, 0, 0, 0, 0, time.UTC),
	}

	assert.True(t, year.Contains(year.From))
	assert.True(t, year.Contains(year.To))
	assert.True(t, year.Contains(time.Date(2026, 11, 15, 0, 0, 0, 0, time.UTC)))
	assert.False(t, year.Contains(time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)))
	assert.False(t, year.Contains(time.Date(2027, 4, 1, 0, 0, 0, 0, time.UTC)))
}

func TestAcYearContainsScannedDateBoundaries(t *testing.T) {
	// The repository scans DATE columns as midnight UTC while request
	// dates parse as midnight IST. The year must still contain its own
	// first and last day.
	var from, to pgtype.Date
	require.NoError(t, from.Scan("2026-04-01"))
	require.NoError(t, to.Scan("2027-03-31"))
	year := AcYear{From: from.Time, To: to.Time}

	firstDay, err := timeutil.ParseDate("2026-04-01")
	require.NoError(t, err)
	assert.True(t, year.Contains(firstDay), "the year's own first day must be inside the year")

	lastDay, err := timeutil.ParseDate("2027-03-31")
	require.NoError(t, err)
	assert.True(t, year.Contains(lastDay), "the year's own last day must be inside the year")

	dayBefore, err := timeutil.ParseDate("2026-03-31")
	require.NoError(t, err)
	assert.False(t, year.Contains(dayBefore))

	dayAfter, err := timeutil.ParseDate("2027-04-01")
	require.NoError(t, err)
	assert.False(t, year.Contains(dayAfter))
}

func TestAcYearLedgerBalanceNet(t *testing.T) {
	b := AcYearLedgerBalance{
		DrAmount: decimal.NewFromInt(500),
		CrAmount: decimal.NewFromInt(200),
	}
	assert.True(t, b.Net().Equal(decimal.NewFromInt(300)))

	b = AcYearLedgerBalance{CrAmount: decimal.NewFromInt(750)}
	assert.True(t, b.Net().Equal(decimal.NewFromInt(-750)))
}

func TestSignedAmount(t *testing.T) {
	amount := decimal.NewFromInt(120)

	debit := EntryItem{DC: Debit, Amount: amount}
	assert.True(t, debit.SignedAmount().Equal(amount))

	credit := EntryItem{DC: Credit, Amount: amount}
	assert.True(t, credit.SignedAmount().Equal(amount.Neg()))

	txn := LedgerTransaction{DC: Credit, Amount: amount}
	assert.True(t, txn.SignedAmount().Equal(amount.Neg()))
}
