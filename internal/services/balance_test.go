package services

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"temple-backend/internal/models"
)

func d(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

func TestSplitNet(t *testing.T) {
	tests := []struct {
		net        string
		wantDebit  string
		wantCredit string
	}{
		{"1500.00", "1500.00", "0"},
		{"-230.50", "0", "230.50"},
		{"0", "0", "0"},
		{"0.01", "0.01", "0"},
	}
	for _, tt := range tests {
		p := SplitNet(d(tt.net))
		assert.True(t, p.Debit.Equal(d(tt.wantDebit)), "SplitNet(%s) debit = %s", tt.net, p.Debit)
		assert.True(t, p.Credit.Equal(d(tt.wantCredit)), "SplitNet(%s) credit = %s", tt.net, p.Credit)
	}
}

func TestSplitNetPairNetRoundTrip(t *testing.T) {
	for _, s := range []string{"-99999.99", "-0.01", "0", "0.01", "123456.78"} {
		net := d(s)
		assert.True(t, PairNet(SplitNet(net)).Equal(net), "round trip %s", s)
	}
}

func TestIsBalanced(t *testing.T) {
	assert.True(t, IsBalanced(d("100.00"), d("100.00")))
	assert.True(t, IsBalanced(d("100.005"), d("100.00")))
	assert.False(t, IsBalanced(d("100.01"), d("100.00")))
	assert.False(t, IsBalanced(d("100.00"), d("250.00")))
	assert.True(t, IsBalanced(decimal.Zero, decimal.Zero))
}

func txn(entryID int, dc models.DCFlag, amount string) models.LedgerTransaction {
	return models.LedgerTransaction{
		EntryID: entryID,
		DC:      dc,
		Amount:  d(amount),
	}
}

func TestSumSigned(t *testing.T) {
	txns := []models.LedgerTransaction{
		txn(1, models.Debit, "500.00"),
		txn(2, models.Credit, "200.00"),
		txn(3, models.Debit, "50.25"),
	}
	assert.True(t, SumSigned(txns).Equal(d("350.25")))
	assert.True(t, SumSigned(nil).IsZero())
}

func TestRunningRowsDebitOpening(t *testing.T) {
	// Cash opens at 1000 Dr, receives 500, pays out 2000, receives 300.
	opening := models.BalancePair{Debit: d("1000.00"), Credit: decimal.Zero}
	txns := []models.LedgerTransaction{
		txn(1, models.Debit, "500.00"),
		txn(2, models.Credit, "2000.00"),
		txn(3, models.Debit, "300.00"),
	}

	rows := RunningRows(opening, txns)
	require.Len(t, rows, 3)

	assert.True(t, rows[0].RunningBalance.Equal(d("1500.00")))
	assert.Equal(t, "Dr", rows[0].BalanceType)

	assert.True(t, rows[1].RunningBalance.Equal(d("500.00")))
	assert.Equal(t, "Cr", rows[1].BalanceType)

	assert.True(t, rows[2].RunningBalance.Equal(d("200.00")))
	assert.Equal(t, "Cr", rows[2].BalanceType)
}

func TestRunningRowsTieIsDebit(t *testing.T) {
	opening := models.BalancePair{Debit: d("100.00"), Credit: decimal.Zero}
	rows := RunningRows(opening, []models.LedgerTransaction{
		txn(1, models.Credit, "100.00"),
	})
	require.Len(t, rows, 1)
	assert.True(t, rows[0].RunningBalance.IsZero())
	assert.Equal(t, "Dr", rows[0].BalanceType)
}

func TestRunningRowsColumns(t *testing.T) {
	rows := RunningRows(models.BalancePair{}, []models.LedgerTransaction{
		txn(1, models.Debit, "75.00"),
		txn(2, models.Credit, "25.00"),
	})
	require.Len(t, rows, 2)

	assert.True(t, rows[0].Debit.Equal(d("75.00")))
	assert.True(t, rows[0].Credit.IsZero())
	assert.True(t, rows[1].Credit.Equal(d("25.00")))
	assert.True(t, rows[1].Debit.IsZero())
}

func TestRunningRowsClosingMatchesSum(t *testing.T) {
	openingNet := d("-400.00")
	txns := []models.LedgerTransaction{
		txn(1, models.Debit, "150.00"),
		txn(2, models.Debit, "950.00"),
		txn(3, models.Credit, "75.50"),
	}

	rows := RunningRows(SplitNet(openingNet), txns)
	require.Len(t, rows, 3)

	closing := openingNet.Add(SumSigned(txns))
	last := rows[len(rows)-1]
	assert.True(t, last.RunningBalance.Equal(closing.Abs()))
	if closing.Sign() >= 0 {
		assert.Equal(t, "Dr", last.BalanceType)
	} else {
		assert.Equal(t, "Cr", last.BalanceType)
	}
}

func TestSafeRatio(t *testing.T) {
	assert.True(t, SafeRatio(d("50"), d("200")).Equal(d("0.25")))
	assert.True(t, SafeRatio(d("50"), decimal.Zero).IsZero())
	assert.True(t, SafeRatio(decimal.Zero, decimal.Zero).IsZero())
}
