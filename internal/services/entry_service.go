package services

import (
	"context"

	"github.com/shopspring/decimal"

	"temple-backend/internal/apperr"
	"temple-backend/internal/cache"
	"temple-backend/internal/metrics"
	"temple-backend/internal/models"
	"temple-backend/internal/repositories"
	"temple-backend/internal/timeutil"
)

// EntryService posts double-entry transactions. Every entry must carry at
// least two items and balance exactly: the sum of debit amounts equals the
// sum of credit amounts, no tolerance.
type EntryService struct {
	EntryRepo  *repositories.EntryRepository
	LedgerRepo *repositories.LedgerRepository
	AcYears    *AcYearService
}

func NewEntryService(entryRepo *repositories.EntryRepository, ledgerRepo *repositories.LedgerRepository, acYears *AcYearService) *EntryService {
	return &EntryService{
		EntryRepo:  entryRepo,
		LedgerRepo: ledgerRepo,
		AcYears:    acYears,
	}
}

// CreateEntry validates and posts one balanced entry inside the active year.
func (s *EntryService) CreateEntry(ctx context.Context, req *models.CreateEntryRequest) (*models.EntryWithItems, error) {
	date, err := timeutil.ParseDate(req.Date)
	if err != nil {
		return nil, apperr.Validation("date", "invalid date %q, want YYYY-MM-DD", req.Date)
	}
	if req.EntryType < models.EntryTypeJournal || req.EntryType > models.EntryTypeDebitNote {
		return nil, apperr.Validation("entrytype", "unknown entry type %d", req.EntryType)
	}
	if len(req.Items) < 2 {
		return nil, apperr.Validation("items", "an entry needs at least two items, got %d", len(req.Items))
	}

	var debits, credits decimal.Decimal
	items := make([]models.EntryItem, 0, len(req.Items))
	seen := make(map[int]bool, len(req.Items))
	for i, it := range req.Items {
		if it.Amount.Sign() <= 0 {
			return nil, apperr.Validation("items", "item %d amount must be positive", i)
		}
		switch it.DC {
		case models.Debit:
			debits = debits.Add(it.Amount)
		case models.Credit:
			credits = credits.Add(it.Amount)
		default:
			return nil, apperr.Validation("items", "item %d dc must be D or C, got %q", i, it.DC)
		}
		seen[it.LedgerID] = true
		items = append(items, models.EntryItem{
			LedgerID: it.LedgerID,
			DC:       it.DC,
			Amount:   it.Amount,
		})
	}
	if !debits.Equal(credits) {
		return nil, apperr.Validation("items", "entry does not balance: debits %s, credits %s", debits, credits)
	}

	year, err := s.AcYears.Active(ctx)
	if err != nil {
		return nil, err
	}
	if !year.Contains(date) {
		return nil, apperr.Validation("date", "%s is outside the active accounting year", req.Date)
	}

	ids := make([]int, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	ledgers, err := s.LedgerRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	if len(ledgers) != len(ids) {
		known := make(map[int]bool, len(ledgers))
		for _, l := range ledgers {
			known[l.ID] = true
		}
		for _, id := range ids {
			if !known[id] {
				return nil, apperr.NotFound("ledger", id)
			}
		}
	}

	header := models.Entry{
		Date:        date,
		EntryType:   req.EntryType,
		Narration:   req.Narration,
		InvoiceType: req.InvoiceType,
	}
	if err := s.EntryRepo.Create(ctx, &header, items); err != nil {
		return nil, err
	}

	metrics.EntriesPosted.Inc()
	cache.InvalidateSummaries(ctx)
	return &models.EntryWithItems{Entry: header, Items: items}, nil
}

// GetEntry returns one entry with its items.
func (s *EntryService) GetEntry(ctx context.Context, id int) (*models.EntryWithItems, error) {
	return s.EntryRepo.Get(ctx, id)
}

// ListEntries returns entry headers within a date range.
func (s *EntryService) ListEntries(ctx context.Context, from, to string) ([]models.Entry, error) {
	fromDate, err := timeutil.ParseDate(from)
	if err != nil {
		return nil, apperr.Validation("from", "invalid date %q, want YYYY-MM-DD", from)
	}
	toDate, err := timeutil.ParseDate(to)
	if err != nil {
		return nil, apperr.Validation("to", "invalid date %q, want YYYY-MM-DD", to)
	}
	if toDate.Before(fromDate) {
		return nil, apperr.Validation("to", "must not be before from")
	}
	return s.EntryRepo.List(ctx, fromDate, toDate)
}
