package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorMessages(t *testing.T) {
	assert.Equal(t, "validation: code: must be 4 digits", Validation("code", "must be %d digits", 4).Error())
	assert.Equal(t, "validation: bad input", Validation("", "bad input").Error())
	assert.Equal(t, "conflict: code 1100 in use", Conflict("code %s in use", "1100").Error())
	assert.Equal(t, "referential integrity: group has 3 ledgers", Referential("group has %d ledgers", 3).Error())
	assert.Equal(t, "ledger 42 not found", NotFound("ledger", 42).Error())
	assert.Equal(t, "state: no active accounting year", ErrNoActiveYear.Error())
}

func TestErrorsAsThroughWrapping(t *testing.T) {
	wrapped := fmt.Errorf("creating group: %w", Conflict("duplicate code"))

	var conflict *ConflictError
	assert.True(t, errors.As(wrapped, &conflict))
	assert.Equal(t, "duplicate code", conflict.Reason)

	var validation *ValidationError
	assert.False(t, errors.As(wrapped, &validation))
}

func TestErrNoActiveYearIsStateError(t *testing.T) {
	var state *StateError
	assert.True(t, errors.As(fmt.Errorf("report: %w", ErrNoActiveYear), &state))
}
