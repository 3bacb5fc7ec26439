package services

import (
	"context"

	"temple-backend/internal/apperr"
	"temple-backend/internal/models"
	"temple-backend/internal/repositories"
	"temple-backend/internal/timeutil"
)

// AcYearService manages accounting-year lifecycles. At most one year is
// active at any time; the database enforces this with a partial unique
// index, and Activate flips the current one off in the same transaction.
type AcYearService struct {
	AcYearRepo *repositories.AcYearRepository
}

func NewAcYearService(acYearRepo *repositories.AcYearRepository) *AcYearService {
	return &AcYearService{AcYearRepo: acYearRepo}
}

// Active returns the active year, or ErrNoActiveYear when none is flagged.
func (s *AcYearService) Active(ctx context.Context) (*models.AcYear, error) {
	year, err := s.AcYearRepo.GetActive(ctx)
	if err != nil {
		return nil, err
	}
	if year == nil {
		return nil, apperr.ErrNoActiveYear
	}
	return year, nil
}

// List returns all years, newest first.
func (s *AcYearService) List(ctx context.Context) ([]models.AcYear, error) {
	return s.AcYearRepo.List(ctx)
}

// Create registers a new inactive year after checking its range is sane
// and does not overlap an existing year.
func (s *AcYearService) Create(ctx context.Context, req *models.CreateAcYearRequest) (*models.AcYear, error) {
	from, err := timeutil.ParseDate(req.From)
	if err != nil {
		return nil, apperr.Validation("from", "invalid date %q, want YYYY-MM-DD", req.From)
	}
	to, err := timeutil.ParseDate(req.To)
	if err != nil {
		return nil, apperr.Validation("to", "invalid date %q, want YYYY-MM-DD", req.To)
	}
	if !from.Before(to) {
		return nil, apperr.Validation("to", "must be after from")
	}

	year := &models.AcYear{From: from, To: to, Status: models.AcYearInactive}
	overlaps, err := s.AcYearRepo.Overlaps(ctx, year)
	if err != nil {
		return nil, err
	}
	if overlaps {
		return nil, apperr.Conflict("year range overlaps an existing accounting year")
	}

	if err := s.AcYearRepo.Create(ctx, year); err != nil {
		return nil, err
	}
	return year, nil
}

// Activate makes the given year the active one.
func (s *AcYearService) Activate(ctx context.Context, id int) (*models.AcYear, error) {
	if err := s.AcYearRepo.Activate(ctx, id); err != nil {
		return nil, err
	}
	return s.AcYearRepo.Get(ctx, id)
}
