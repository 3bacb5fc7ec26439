package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"temple-backend/internal/models"
)

func TestSummaryBuckets(t *testing.T) {
	ledgers := []models.Ledger{
		{ID: 10, Name: "Cash", LeftCode: "1110"},
		{ID: 11, Name: "Bank", LeftCode: "1110"},
		{ID: 20, Name: "Creditors", LeftCode: "2100"},
		{ID: 21, Name: "Pooja Advance", LeftCode: "2200", PA: true},
		{ID: 30, Name: "Corpus Fund", LeftCode: "3100"},
		{ID: 40, Name: "Donations", LeftCode: "4100"},
		{ID: 41, Name: "Hall Rent", LeftCode: "8100"},
		{ID: 50, Name: "Salaries", LeftCode: "5100"},
		{ID: 51, Name: "Festival Expense", LeftCode: "9100"},
	}

	b := summaryBuckets(ledgers)

	assert.Equal(t, []int{10, 11}, b.Assets)
	assert.Equal(t, []int{20, 30}, b.Liabilities, "pass-through ledgers stay out of liabilities")
	assert.NotContains(t, b.Liabilities, 21)
	assert.Equal(t, []int{40, 41}, b.Income)
	assert.Equal(t, []int{50, 51}, b.Expense)
}

func TestSummaryBucketsSkipsUncodedLedgers(t *testing.T) {
	b := summaryBuckets([]models.Ledger{
		{ID: 1, Name: "Unplaced"},
		{ID: 2, Name: "Electricity", LeftCode: "6100"},
	})

	assert.Empty(t, b.Assets)
	assert.Empty(t, b.Liabilities)
	assert.Empty(t, b.Income)
	assert.Equal(t, []int{2}, b.Expense)
}
