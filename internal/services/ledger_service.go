package services

import (
	"context"
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"

	"temple-backend/internal/apperr"
	"temple-backend/internal/models"
	"temple-backend/internal/repositories"
)

// LedgerService manages leaf accounts and their opening balances.
type LedgerService struct {
	LedgerRepo *repositories.LedgerRepository
	GroupRepo  *repositories.GroupRepository
	AcYearRepo *repositories.AcYearRepository
}

func NewLedgerService(ledgerRepo *repositories.LedgerRepository, groupRepo *repositories.GroupRepository, acYearRepo *repositories.AcYearRepository) *LedgerService {
	return &LedgerService{
		LedgerRepo: ledgerRepo,
		GroupRepo:  groupRepo,
		AcYearRepo: acYearRepo,
	}
}

// normalizeRightCode zero-pads a numeric suffix to 4 digits.
func normalizeRightCode(code string) (string, error) {
	if code == "" || len(code) > 4 {
		return "", apperr.Validation("right_code", "must be 1-4 digits, got %q", code)
	}
	n, err := strconv.Atoi(code)
	if err != nil || n < 0 {
		return "", apperr.Validation("right_code", "must be numeric, got %q", code)
	}
	return fmt.Sprintf("%04d", n), nil
}

// openingFromRequest builds the opening snapshot row for the active year,
// nil when no opening amount was supplied. Side "dr" maps the amount to
// dr_amount, "cr" to cr_amount; the other side stays zero.
func openingFromRequest(amount decimal.Decimal, side string, year *models.AcYear) (*models.AcYearLedgerBalance, error) {
	if amount.IsZero() {
		return nil, nil
	}
	if amount.Sign() < 0 {
		return nil, apperr.Validation("opening_balance", "must not be negative")
	}
	if year == nil {
		return nil, apperr.ErrNoActiveYear
	}

	b := &models.AcYearLedgerBalance{
		AcYearID: year.ID,
		DrAmount: decimal.Zero,
		CrAmount: decimal.Zero,
	}
	switch side {
	case "dr", "":
		b.DrAmount = amount
	case "cr":
		b.CrAmount = amount
	default:
		return nil, apperr.Validation("opening_side", "must be \"dr\" or \"cr\", got %q", side)
	}
	return b, nil
}

// CreateLedger creates a leaf account under a group, deriving left_code from
// the group and optionally attaching an opening balance for the active year.
func (s *LedgerService) CreateLedger(ctx context.Context, req *models.CreateLedgerRequest) (*models.Ledger, error) {
	if req.Name == "" {
		return nil, apperr.Validation("name", "must not be empty")
	}
	rightCode, err := normalizeRightCode(req.RightCode)
	if err != nil {
		return nil, err
	}
	group, err := s.GroupRepo.Get(ctx, req.GroupID)
	if err != nil {
		return nil, err
	}

	year, err := s.AcYearRepo.GetActive(ctx)
	if err != nil {
		return nil, err
	}
	opening, err := openingFromRequest(req.OpeningBalance, req.OpeningSide, year)
	if err != nil {
		return nil, err
	}

	l := &models.Ledger{
		Name:        req.Name,
		GroupID:     group.ID,
		LeftCode:    group.Code,
		RightCode:   rightCode,
		Bank:        req.Bank,
		PA:          req.PA,
		HB:          req.HB,
		Aging:       req.Aging,
		CreditAging: req.CreditAging,
		IV:          req.IV,
	}
	if err := s.LedgerRepo.Create(ctx, l, opening); err != nil {
		return nil, err
	}
	return l, nil
}

// UpdateLedger rewrites a ledger; moving it to another group re-derives
// left_code. The opening balance row for the active year is upserted when
// an amount is supplied.
func (s *LedgerService) UpdateLedger(ctx context.Context, id int, req *models.UpdateLedgerRequest) (*models.Ledger, error) {
	if req.Name == "" {
		return nil, apperr.Validation("name", "must not be empty")
	}
	rightCode, err := normalizeRightCode(req.RightCode)
	if err != nil {
		return nil, err
	}
	if _, err := s.LedgerRepo.Get(ctx, id); err != nil {
		return nil, err
	}
	group, err := s.GroupRepo.Get(ctx, req.GroupID)
	if err != nil {
		return nil, err
	}

	year, err := s.AcYearRepo.GetActive(ctx)
	if err != nil {
		return nil, err
	}
	opening, err := openingFromRequest(req.OpeningBalance, req.OpeningSide, year)
	if err != nil {
		return nil, err
	}

	l := &models.Ledger{
		ID:          id,
		Name:        req.Name,
		GroupID:     group.ID,
		LeftCode:    group.Code,
		RightCode:   rightCode,
		Bank:        req.Bank,
		PA:          req.PA,
		HB:          req.HB,
		Aging:       req.Aging,
		CreditAging: req.CreditAging,
		IV:          req.IV,
	}
	if err := s.LedgerRepo.Update(ctx, l, opening); err != nil {
		return nil, err
	}
	return l, nil
}

// DeleteLedger removes a ledger. Ledgers referenced by posted transactions
// are protected; the repository re-checks inside the delete transaction.
func (s *LedgerService) DeleteLedger(ctx context.Context, id int) error {
	if _, err := s.LedgerRepo.Get(ctx, id); err != nil {
		return err
	}
	return s.LedgerRepo.Delete(ctx, id)
}

// ListLedgers returns all ledgers, or those under one group.
func (s *LedgerService) ListLedgers(ctx context.Context, groupID int) ([]models.Ledger, error) {
	if groupID > 0 {
		return s.LedgerRepo.GetByGroup(ctx, groupID)
	}
	return s.LedgerRepo.GetAll(ctx)
}

// GetLedger retrieves one ledger.
func (s *LedgerService) GetLedger(ctx context.Context, id int) (*models.Ledger, error) {
	return s.LedgerRepo.Get(ctx, id)
}
