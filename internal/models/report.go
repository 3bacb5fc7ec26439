package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// BalancePair is one signed balance unfolded into Dr/Cr display columns.
// Exactly one of Debit/Credit is non-zero for a non-zero balance.
type BalancePair struct {
	Debit  decimal.Decimal `json:"debit"`
	Credit decimal.Decimal `json:"credit"`
}

// LedgerFigures are one ledger's opening and closing balances for a period.
type LedgerFigures struct {
	LedgerID int         `json:"ledger_id"`
	Name     string      `json:"name"`
	Code     string      `json:"code"`
	Opening  BalancePair `json:"opening"`
	Closing  BalancePair `json:"closing"`
}

// GroupNode is one group in a report tree with rolled-up totals. Children and
// direct ledgers that had no activity in the period are pruned.
type GroupNode struct {
	ID                 int             `json:"id"`
	Code               string          `json:"code"`
	Name               string          `json:"name"`
	Level              int             `json:"level"`
	Ledgers            []LedgerFigures `json:"ledgers"`
	Children           []*GroupNode    `json:"children"`
	TotalOpeningDebit  decimal.Decimal `json:"total_opening_debit"`
	TotalOpeningCredit decimal.Decimal `json:"total_opening_credit"`
	TotalClosingDebit  decimal.Decimal `json:"total_closing_debit"`
	TotalClosingCredit decimal.Decimal `json:"total_closing_credit"`
}

// TrialBalanceReport proves total debits equal total credits over a period.
type TrialBalanceReport struct {
	Rows        []*GroupNode    `json:"rows"`
	GrandTotals GroupNode       `json:"grand_totals"`
	IsBalanced  bool            `json:"is_balanced"`
	Difference  decimal.Decimal `json:"difference"`
	From        time.Time       `json:"from"`
	To          time.Time       `json:"to"`
}

// BalanceSheetNode is a group in the balance sheet with current and
// year-opening net balances.
type BalanceSheetNode struct {
	ID              int                 `json:"id"`
	Code            string              `json:"code"`
	Name            string              `json:"name"`
	Level           int                 `json:"level"`
	CurrentBalance  decimal.Decimal     `json:"current_balance"`
	PreviousBalance decimal.Decimal     `json:"previous_balance"`
	Ledgers         []BalanceSheetEntry `json:"ledgers"`
	Children        []*BalanceSheetNode `json:"children"`
	Synthetic       bool                `json:"synthetic,omitempty"` // injected line, not a posted account
}

// BalanceSheetEntry is a ledger line on the balance sheet.
type BalanceSheetEntry struct {
	LedgerID        int             `json:"ledger_id"`
	Name            string          `json:"name"`
	Code            string          `json:"code"`
	CurrentBalance  decimal.Decimal `json:"current_balance"`
	PreviousBalance decimal.Decimal `json:"previous_balance"`
}

// BalanceSheetReport is the Assets/Liabilities/Equity rollup as of a date.
type BalanceSheetReport struct {
	Sections   []*BalanceSheetNode `json:"sections"`
	Totals     BalancePair         `json:"totals"`
	ProfitLoss decimal.Decimal     `json:"profit_loss"` // current-year P&L, credit-positive
	AsOn       time.Time           `json:"as_on"`
}

// GeneralLedgerRow is one transaction line with its running balance.
type GeneralLedgerRow struct {
	EntryID        int             `json:"entry_id"`
	Date           time.Time       `json:"date"`
	EntryType      EntryType       `json:"entrytype"`
	Narration      string          `json:"narration"`
	InvoiceType    *string         `json:"invoice_type"`
	Debit          decimal.Decimal `json:"debit"`
	Credit         decimal.Decimal `json:"credit"`
	RunningBalance decimal.Decimal `json:"running_balance"`
	BalanceType    string          `json:"balance_type"` // "Dr" or "Cr"
}

// LedgerReport is the general ledger statement for one ledger.
type LedgerReport struct {
	LedgerID         int                `json:"ledger_id"`
	Name             string             `json:"name"`
	Code             string             `json:"code"`
	Opening          BalancePair        `json:"opening"`
	Rows             []GeneralLedgerRow `json:"rows"`
	Closing          BalancePair        `json:"closing"`
	TransactionCount int                `json:"transaction_count"`
}

// GeneralLedgerReport covers one or more ledgers for a period.
type GeneralLedgerReport struct {
	LedgerReports []LedgerReport `json:"ledger_reports"`
	From          time.Time      `json:"from"`
	To            time.Time      `json:"to"`
}

// SummaryTotals are the dashboard buckets as of a date. Shares are each
// bucket's fraction of the debit+credit whole; zero when nothing is posted.
type SummaryTotals struct {
	Assets         decimal.Decimal `json:"assets"`
	Liabilities    decimal.Decimal `json:"liabilities"`
	Income         decimal.Decimal `json:"income"`
	Expense        decimal.Decimal `json:"expense"`
	ProfitLoss     decimal.Decimal `json:"profit_loss"`
	AssetShare     decimal.Decimal `json:"asset_share"`
	LiabilityShare decimal.Decimal `json:"liability_share"`
	AsOn           time.Time       `json:"as_on"`
}
