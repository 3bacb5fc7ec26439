package timeutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	got, err := ParseDate("2026-04-01")
	require.NoError(t, err)
	assert.Equal(t, 2026, got.Year())
	assert.Equal(t, time.April, got.Month())
	assert.Equal(t, 1, got.Day())
	assert.Equal(t, "2026-04-01", FormatDate(got))

	_, err = ParseDate("01-04-2026")
	assert.Error(t, err)
	_, err = ParseDate("2026-13-40")
	assert.Error(t, err)
}

func TestDateTruncation(t *testing.T) {
	// 20:00 UTC is already the next civil day in IST.
	utcEvening := time.Date(2026, 4, 1, 20, 0, 0, 0, time.UTC)
	assert.Equal(t, "2026-04-02", FormatDate(Date(utcEvening)))

	noon := time.Date(2026, 4, 1, 12, 0, 0, 0, IST)
	truncated := Date(noon)
	assert.Equal(t, 0, truncated.Hour())
	assert.Equal(t, "2026-04-01", FormatDate(truncated))
}
