package services

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"temple-backend/internal/models"
)

func testLedgers() []models.Ledger {
	return []models.Ledger{
		{ID: 10, Name: "Cash", GroupID: 3, LeftCode: "1110", RightCode: "0001"},
		{ID: 11, Name: "Bank", GroupID: 3, LeftCode: "1110", RightCode: "0002", Bank: true},
		{ID: 12, Name: "Deposits", GroupID: 2, LeftCode: "1100", RightCode: "0001"},
		{ID: 13, Name: "Creditors", GroupID: 5, LeftCode: "2100", RightCode: "0001"},
	}
}

func netsFor(opening, closing map[int]string) *LedgerNets {
	nets := &LedgerNets{
		Opening: make(map[int]decimal.Decimal),
		Closing: make(map[int]decimal.Decimal),
	}
	for id, s := range opening {
		nets.Opening[id] = d(s)
	}
	for id, s := range closing {
		nets.Closing[id] = d(s)
	}
	return nets
}

func TestBuildTrialBalanceRollup(t *testing.T) {
	arena := newGroupArena(testGroups())
	nets := netsFor(
		map[int]string{10: "1000.00", 11: "5000.00", 12: "250.00", 13: "-6250.00"},
		map[int]string{10: "1500.00", 11: "4500.00", 12: "250.00", 13: "-6250.00"},
	)

	rows, grand := buildTrialBalance(arena, testLedgers(), nets)
	require.Len(t, rows, 2)

	assets := rows[0]
	assert.Equal(t, "1000", assets.Code)
	assert.True(t, assets.TotalOpeningDebit.Equal(d("6250.00")))
	assert.True(t, assets.TotalClosingDebit.Equal(d("6250.00")))
	assert.True(t, assets.TotalClosingCredit.IsZero())

	liabilities := rows[1]
	assert.Equal(t, "2000", liabilities.Code)
	assert.True(t, liabilities.TotalClosingCredit.Equal(d("6250.00")))

	// Grand totals equal the flat sum over all ledgers.
	assert.True(t, grand.TotalClosingDebit.Equal(d("6250.00")))
	assert.True(t, grand.TotalClosingCredit.Equal(d("6250.00")))
	assert.True(t, IsBalanced(grand.TotalClosingDebit, grand.TotalClosingCredit))
}

func TestBuildTrialBalanceParentTotalsIncludeChildren(t *testing.T) {
	arena := newGroupArena(testGroups())
	nets := netsFor(
		map[int]string{10: "100.00", 12: "40.00"},
		map[int]string{10: "100.00", 12: "40.00"},
	)

	rows, _ := buildTrialBalance(arena, testLedgers(), nets)
	require.Len(t, rows, 1)

	assets := rows[0]
	// 1000 -> 1100 (Deposits) -> 1110 (Cash)
	assert.True(t, assets.TotalClosingDebit.Equal(d("140.00")))
	require.Len(t, assets.Children, 1)

	currentAssets := assets.Children[0]
	assert.Equal(t, "1100", currentAssets.Code)
	assert.True(t, currentAssets.TotalClosingDebit.Equal(d("140.00")))
	require.Len(t, currentAssets.Children, 1)
	assert.True(t, currentAssets.Children[0].TotalClosingDebit.Equal(d("100.00")))
}

func TestBuildTrialBalancePrunesInactive(t *testing.T) {
	arena := newGroupArena(testGroups())
	// Only Creditors moved; the whole asset subtree must vanish.
	nets := netsFor(nil, map[int]string{13: "-500.00"})

	rows, grand := buildTrialBalance(arena, testLedgers(), nets)
	require.Len(t, rows, 1)
	assert.Equal(t, "2000", rows[0].Code)
	assert.True(t, grand.TotalClosingCredit.Equal(d("500.00")))
	assert.True(t, grand.TotalClosingDebit.IsZero())
}

func TestBuildTrialBalanceZeroActivityLedgerDropped(t *testing.T) {
	arena := newGroupArena(testGroups())
	nets := netsFor(
		map[int]string{10: "100.00", 11: "0"},
		map[int]string{10: "100.00", 11: "0"},
	)

	rows, _ := buildTrialBalance(arena, testLedgers(), nets)
	require.Len(t, rows, 1)

	cashBank := rows[0].Children[0].Children[0]
	require.Len(t, cashBank.Ledgers, 1)
	assert.Equal(t, "Cash", cashBank.Ledgers[0].Name)
}

func TestBuildBalanceSheetNode(t *testing.T) {
	arena := newGroupArena(testGroups())
	byGroup := ledgersByGroup(testLedgers())
	nets := netsFor(
		map[int]string{10: "900.00", 13: "-900.00"},
		map[int]string{10: "1200.00", 13: "-1200.00"},
	)

	assets := buildBalanceSheetNode(arena, byGroup, nets, nets, 1, 0)
	require.NotNil(t, assets)
	assert.True(t, assets.CurrentBalance.Equal(d("1200.00")))
	assert.True(t, assets.PreviousBalance.Equal(d("900.00")))

	liabilities := buildBalanceSheetNode(arena, byGroup, nets, nets, 4, 0)
	require.NotNil(t, liabilities)
	assert.True(t, liabilities.CurrentBalance.Equal(d("-1200.00")))

	// Assets and liabilities cancel when the book is balanced.
	assert.True(t, assets.CurrentBalance.Add(liabilities.CurrentBalance).IsZero())
}

func TestBuildBalanceSheetNodeEmptySubtree(t *testing.T) {
	arena := newGroupArena(testGroups())
	byGroup := ledgersByGroup(testLedgers())
	nets := netsFor(nil, nil)

	node := buildBalanceSheetNode(arena, byGroup, nets, nets, 1, 0)
	assert.Nil(t, node)
}

func TestLedgersByGroupSortsByRightCode(t *testing.T) {
	ledgers := []models.Ledger{
		{ID: 1, GroupID: 3, RightCode: "0005"},
		{ID: 2, GroupID: 3, RightCode: "0001"},
		{ID: 3, GroupID: 3, RightCode: "0003"},
	}
	byGroup := ledgersByGroup(ledgers)
	require.Len(t, byGroup[3], 3)
	assert.Equal(t, "0001", byGroup[3][0].RightCode)
	assert.Equal(t, "0005", byGroup[3][2].RightCode)
}
