package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// DCFlag marks a posting line as debit or credit.
type DCFlag string

const (
	Debit  DCFlag = "D"
	Credit DCFlag = "C"
)

// EntryType classifies a journal transaction.
type EntryType int

const (
	EntryTypeJournal    EntryType = 0
	EntryTypeReceipt    EntryType = 1
	EntryTypePayment    EntryType = 2
	EntryTypeContra     EntryType = 3
	EntryTypeSales      EntryType = 4
	EntryTypePurchase   EntryType = 5
	EntryTypeCreditNote EntryType = 6
	EntryTypeDebitNote  EntryType = 7
)

// Entry is a journal transaction header. It owns its EntryItems.
type Entry struct {
	ID          int       `json:"id"`
	Date        time.Time `json:"date"`
	EntryType   EntryType `json:"entrytype"`
	Narration   string    `json:"narration"`
	InvoiceType *string   `json:"invoice_type"` // nil = manual entry
	CreatedAt   time.Time `json:"created_at"`
}

// EntryItem is one posting line of an Entry. The ledger is referenced, not
// owned: deleting a ledger is blocked while items point at it.
type EntryItem struct {
	ID       int             `json:"id"`
	EntryID  int             `json:"entry_id"`
	LedgerID int             `json:"ledger_id"`
	DC       DCFlag          `json:"dc"`
	Amount   decimal.Decimal `json:"amount"`
}

// SignedAmount is the item's contribution to its ledger's balance,
// positive for debits. The whole balance engine works on signed amounts;
// the flag is only unfolded back into Dr/Cr columns at display time.
func (it *EntryItem) SignedAmount() decimal.Decimal {
	if it.DC == Debit {
		return it.Amount
	}
	return it.Amount.Neg()
}

// EntryWithItems is an entry header together with its posting lines.
type EntryWithItems struct {
	Entry
	Items []EntryItem `json:"items"`
}

// CreateEntryRequest posts a new journal transaction. Items must balance:
// the sum of debit amounts must equal the sum of credit amounts exactly.
type CreateEntryRequest struct {
	Date        string                   `json:"date"` // YYYY-MM-DD
	EntryType   EntryType                `json:"entrytype"`
	Narration   string                   `json:"narration"`
	InvoiceType *string                  `json:"invoice_type"`
	Items       []CreateEntryItemRequest `json:"items"`
}

// CreateEntryItemRequest is one line of a posting request.
type CreateEntryItemRequest struct {
	LedgerID int             `json:"ledger_id"`
	DC       DCFlag          `json:"dc"`
	Amount   decimal.Decimal `json:"amount"`
}

// LedgerTransaction is a posting line joined with its entry header, the shape
// the balance calculator consumes. Rows are ordered (date ASC, entry id ASC)
// so running balances are deterministic.
type LedgerTransaction struct {
	EntryID     int             `json:"entry_id"`
	Date        time.Time       `json:"date"`
	EntryType   EntryType       `json:"entrytype"`
	Narration   string          `json:"narration"`
	InvoiceType *string         `json:"invoice_type"`
	LedgerID    int             `json:"ledger_id"`
	DC          DCFlag          `json:"dc"`
	Amount      decimal.Decimal `json:"amount"`
}

// SignedAmount mirrors EntryItem.SignedAmount for joined rows.
func (t *LedgerTransaction) SignedAmount() decimal.Decimal {
	if t.DC == Debit {
		return t.Amount
	}
	return t.Amount.Neg()
}
