package services

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"temple-backend/internal/models"
	"temple-backend/internal/repositories"
)

// BalanceCalculator derives ledger balances for a date window within one
// accounting year. Opening at a date is the year's snapshot net plus all
// signed postings from the year start up to but excluding that date;
// closing adds the signed postings of the window itself.
type BalanceCalculator struct {
	EntryRepo  *repositories.EntryRepository
	LedgerRepo *repositories.LedgerRepository
}

func NewBalanceCalculator(entryRepo *repositories.EntryRepository, ledgerRepo *repositories.LedgerRepository) *BalanceCalculator {
	return &BalanceCalculator{EntryRepo: entryRepo, LedgerRepo: ledgerRepo}
}

// OpeningNet returns one ledger's signed opening balance at fromDate.
func (c *BalanceCalculator) OpeningNet(ctx context.Context, year *models.AcYear, ledgerID int, fromDate time.Time) (decimal.Decimal, error) {
	snapshot, err := c.LedgerRepo.GetOpeningBalance(ctx, year.ID, ledgerID)
	if err != nil {
		return decimal.Zero, err
	}
	posted, err := c.EntryRepo.SumSignedBefore(ctx, ledgerID, year.From, fromDate)
	if err != nil {
		return decimal.Zero, err
	}
	return snapshot.Net().Add(posted), nil
}

// LedgerNets holds signed opening and closing balances keyed by ledger ID.
type LedgerNets struct {
	Opening map[int]decimal.Decimal
	Closing map[int]decimal.Decimal
}

// AllLedgerNets computes opening and closing nets for every ledger in three
// bulk queries, so report builders never loop over per-ledger SQL.
func (c *BalanceCalculator) AllLedgerNets(ctx context.Context, year *models.AcYear, from, to time.Time) (*LedgerNets, error) {
	snapshots, err := c.LedgerRepo.GetOpeningBalances(ctx, year.ID)
	if err != nil {
		return nil, err
	}
	before, err := c.EntryRepo.SumSignedPerLedgerBefore(ctx, year.From, from)
	if err != nil {
		return nil, err
	}
	window, err := c.EntryRepo.SumSignedPerLedgerThrough(ctx, from, to)
	if err != nil {
		return nil, err
	}

	nets := &LedgerNets{
		Opening: make(map[int]decimal.Decimal),
		Closing: make(map[int]decimal.Decimal),
	}
	for id, b := range snapshots {
		nets.Opening[id] = b.Net()
	}
	for id, sum := range before {
		nets.Opening[id] = nets.opening(id).Add(sum)
	}
	for id := range nets.Opening {
		nets.Closing[id] = nets.Opening[id]
	}
	for id, sum := range window {
		nets.Closing[id] = nets.closing(id).Add(sum)
		if _, ok := nets.Opening[id]; !ok {
			nets.Opening[id] = decimal.Zero
		}
	}
	return nets, nil
}

func (n *LedgerNets) opening(id int) decimal.Decimal {
	if v, ok := n.Opening[id]; ok {
		return v
	}
	return decimal.Zero
}

func (n *LedgerNets) closing(id int) decimal.Decimal {
	if v, ok := n.Closing[id]; ok {
		return v
	}
	return decimal.Zero
}

// HasActivity reports whether a ledger shows any figure in the window.
func (n *LedgerNets) HasActivity(id int) bool {
	return !n.opening(id).IsZero() || !n.closing(id).IsZero()
}
