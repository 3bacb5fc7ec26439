package services

import (
	"github.com/shopspring/decimal"

	"temple-backend/internal/models"
)

// balanceTolerance is the explicit threshold under which total debits and
// credits count as equal. Historical data carries legacy rounding, so the
// comparison is never exact equality.
var balanceTolerance = decimal.NewFromFloat(0.01)

// SplitNet unfolds one signed balance into its Dr/Cr display pair. A
// non-negative net is a debit balance, a negative net a credit balance of
// the same magnitude; exactly one side of the pair is ever non-zero. All
// internal arithmetic stays on the signed value, this split happens only at
// the presentation boundary.
func SplitNet(net decimal.Decimal) models.BalancePair {
	if net.Sign() >= 0 {
		return models.BalancePair{Debit: net, Credit: decimal.Zero}
	}
	return models.BalancePair{Debit: decimal.Zero, Credit: net.Neg()}
}

// PairNet folds a Dr/Cr pair back into its signed value.
func PairNet(p models.BalancePair) decimal.Decimal {
	return p.Debit.Sub(p.Credit)
}

// IsBalanced reports whether debit and credit totals agree within the
// tolerance.
func IsBalanced(totalDebit, totalCredit decimal.Decimal) bool {
	return totalDebit.Sub(totalCredit).Abs().LessThan(balanceTolerance)
}

// SumSigned totals the signed amounts of a transaction slice.
func SumSigned(txns []models.LedgerTransaction) decimal.Decimal {
	sum := decimal.Zero
	for i := range txns {
		sum = sum.Add(txns[i].SignedAmount())
	}
	return sum
}

// RunningRows walks transactions already ordered (date ASC, entry id ASC)
// and produces display rows with running balances. Two accumulators run in
// parallel, seeded from the opening pair; each row shows the absolute
// difference tagged "Dr" when debits lead (ties included) and "Cr"
// otherwise.
func RunningRows(opening models.BalancePair, txns []models.LedgerTransaction) []models.GeneralLedgerRow {
	debitAcc := opening.Debit
	creditAcc := opening.Credit

	rows := make([]models.GeneralLedgerRow, 0, len(txns))
	for i := range txns {
		t := &txns[i]
		row := models.GeneralLedgerRow{
			EntryID:     t.EntryID,
			Date:        t.Date,
			EntryType:   t.EntryType,
			Narration:   t.Narration,
			InvoiceType: t.InvoiceType,
			Debit:       decimal.Zero,
			Credit:      decimal.Zero,
		}
		if t.DC == models.Debit {
			row.Debit = t.Amount
			debitAcc = debitAcc.Add(t.Amount)
		} else {
			row.Credit = t.Amount
			creditAcc = creditAcc.Add(t.Amount)
		}

		row.RunningBalance = debitAcc.Sub(creditAcc).Abs()
		if debitAcc.GreaterThanOrEqual(creditAcc) {
			row.BalanceType = "Dr"
		} else {
			row.BalanceType = "Cr"
		}
		rows = append(rows, row)
	}
	return rows
}

// SafeRatio divides num by den, returning zero for a zero denominator
// instead of raising. Dashboard share figures rely on this guard when no
// postings exist yet.
func SafeRatio(num, den decimal.Decimal) decimal.Decimal {
	if den.IsZero() {
		return decimal.Zero
	}
	return num.Div(den)
}
