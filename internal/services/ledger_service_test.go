package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"temple-backend/internal/apperr"
	"temple-backend/internal/models"
)

func TestNormalizeRightCode(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"1", "0001", false},
		{"42", "0042", false},
		{"0042", "0042", false},
		{"9999", "9999", false},
		{"", "", true},
		{"12345", "", true},
		{"12a", "", true},
		{"-1", "", true},
	}
	for _, tt := range tests {
		got, err := normalizeRightCode(tt.in)
		if tt.wantErr {
			assert.Error(t, err, "normalizeRightCode(%q)", tt.in)
		} else {
			require.NoError(t, err, "normalizeRightCode(%q)", tt.in)
			assert.Equal(t, tt.want, got)
		}
	}
}

func TestOpeningFromRequest(t *testing.T) {
	year := &models.AcYear{ID: 3, Status: models.AcYearActive}

	b, err := openingFromRequest(d("500.00"), "dr", year)
	require.NoError(t, err)
	require.NotNil(t, b)
	assert.Equal(t, 3, b.AcYearID)
	assert.True(t, b.DrAmount.Equal(d("500.00")))
	assert.True(t, b.CrAmount.IsZero())

	b, err = openingFromRequest(d("250.00"), "cr", year)
	require.NoError(t, err)
	assert.True(t, b.CrAmount.Equal(d("250.00")))
	assert.True(t, b.DrAmount.IsZero())

	// Unspecified side defaults to debit.
	b, err = openingFromRequest(d("10.00"), "", year)
	require.NoError(t, err)
	assert.True(t, b.DrAmount.Equal(d("10.00")))

	// A zero amount means no snapshot row at all.
	b, err = openingFromRequest(d("0"), "dr", year)
	require.NoError(t, err)
	assert.Nil(t, b)
}

func TestOpeningFromRequestRejections(t *testing.T) {
	year := &models.AcYear{ID: 3, Status: models.AcYearActive}

	_, err := openingFromRequest(d("-5.00"), "dr", year)
	var validation *apperr.ValidationError
	assert.True(t, errors.As(err, &validation))

	_, err = openingFromRequest(d("5.00"), "sideways", year)
	assert.True(t, errors.As(err, &validation))

	// Opening balances need an active year to attach to.
	_, err = openingFromRequest(d("5.00"), "dr", nil)
	var state *apperr.StateError
	assert.True(t, errors.As(err, &state))
}
