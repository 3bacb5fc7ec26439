package models

import "github.com/shopspring/decimal"

// Ledger is a leaf account that receives journal postings. LeftCode is the
// owning group's code denormalized onto the row; RightCode is the ledger's
// own 4-digit suffix, zero-padded. The pair is unique across all ledgers.
type Ledger struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	GroupID   int    `json:"group_id"`
	LeftCode  string `json:"left_code"`
	RightCode string `json:"right_code"`

	// Behaviour flags carried from the account master.
	Bank        bool `json:"bank"`         // bank/cash ledger
	PA          bool `json:"pa"`           // pass-through account, excluded from some subtotals
	HB          bool `json:"hb"`           // hundi/box collection ledger
	Aging       bool `json:"aging"`        // receivable aging tracked
	CreditAging bool `json:"credit_aging"` // payable aging tracked
	IV          bool `json:"iv"`           // inventory-linked ledger
}

// FullCode is the display code, left and right halves joined with a slash.
func (l *Ledger) FullCode() string {
	return l.LeftCode + "/" + l.RightCode
}

// CreateLedgerRequest creates a ledger, optionally attaching an opening
// balance for the active accounting year.
type CreateLedgerRequest struct {
	Name      string `json:"name"`
	GroupID   int    `json:"group_id"`
	RightCode string `json:"right_code"`

	Bank        bool `json:"bank"`
	PA          bool `json:"pa"`
	HB          bool `json:"hb"`
	Aging       bool `json:"aging"`
	CreditAging bool `json:"credit_aging"`
	IV          bool `json:"iv"`

	OpeningBalance decimal.Decimal `json:"opening_balance"`
	OpeningSide    string          `json:"opening_side"` // "dr" or "cr", defaults to "dr"
}

// UpdateLedgerRequest mirrors CreateLedgerRequest for updates.
type UpdateLedgerRequest struct {
	Name      string `json:"name"`
	GroupID   int    `json:"group_id"`
	RightCode string `json:"right_code"`

	Bank        bool `json:"bank"`
	PA          bool `json:"pa"`
	HB          bool `json:"hb"`
	Aging       bool `json:"aging"`
	CreditAging bool `json:"credit_aging"`
	IV          bool `json:"iv"`

	OpeningBalance decimal.Decimal `json:"opening_balance"`
	OpeningSide    string          `json:"opening_side"`
}
