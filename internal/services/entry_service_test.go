package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"temple-backend/internal/apperr"
	"temple-backend/internal/models"
)

// Request validation runs before any repository access, so a zero-value
// service is enough to exercise the rejection paths.
func TestCreateEntryValidation(t *testing.T) {
	s := &EntryService{}

	balanced := []models.CreateEntryItemRequest{
		{LedgerID: 1, DC: models.Debit, Amount: d("100.00")},
		{LedgerID: 2, DC: models.Credit, Amount: d("100.00")},
	}

	tests := []struct {
		name string
		req  models.CreateEntryRequest
	}{
		{
			name: "bad date",
			req:  models.CreateEntryRequest{Date: "01-04-2026", Items: balanced},
		},
		{
			name: "unknown entry type",
			req:  models.CreateEntryRequest{Date: "2026-04-01", EntryType: 9, Items: balanced},
		},
		{
			name: "single item",
			req: models.CreateEntryRequest{Date: "2026-04-01", Items: []models.CreateEntryItemRequest{
				{LedgerID: 1, DC: models.Debit, Amount: d("100.00")},
			}},
		},
		{
			name: "zero amount",
			req: models.CreateEntryRequest{Date: "2026-04-01", Items: []models.CreateEntryItemRequest{
				{LedgerID: 1, DC: models.Debit, Amount: d("0")},
				{LedgerID: 2, DC: models.Credit, Amount: d("0")},
			}},
		},
		{
			name: "negative amount",
			req: models.CreateEntryRequest{Date: "2026-04-01", Items: []models.CreateEntryItemRequest{
				{LedgerID: 1, DC: models.Debit, Amount: d("-50.00")},
				{LedgerID: 2, DC: models.Credit, Amount: d("-50.00")},
			}},
		},
		{
			name: "bad dc flag",
			req: models.CreateEntryRequest{Date: "2026-04-01", Items: []models.CreateEntryItemRequest{
				{LedgerID: 1, DC: "X", Amount: d("100.00")},
				{LedgerID: 2, DC: models.Credit, Amount: d("100.00")},
			}},
		},
		{
			name: "unbalanced",
			req: models.CreateEntryRequest{Date: "2026-04-01", Items: []models.CreateEntryItemRequest{
				{LedgerID: 1, DC: models.Debit, Amount: d("100.00")},
				{LedgerID: 2, DC: models.Credit, Amount: d("99.99")},
			}},
		},
		{
			name: "one-sided set",
			req: models.CreateEntryRequest{Date: "2026-04-01", Items: []models.CreateEntryItemRequest{
				{LedgerID: 1, DC: models.Debit, Amount: d("100.00")},
				{LedgerID: 2, DC: models.Debit, Amount: d("100.00")},
			}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.CreateEntry(context.Background(), &tt.req)
			require.Error(t, err)
			var validation *apperr.ValidationError
			assert.True(t, errors.As(err, &validation), "want ValidationError, got %v", err)
		})
	}
}
