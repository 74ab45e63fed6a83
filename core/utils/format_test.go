package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatReservedDate(t *testing.T) {
	date := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)

	out, err := FormatReservedDate(date, "10:00:00", "11:30:00")
	require.NoError(t, err)
	assert.Equal(t, "2026-09-10 10:00AM ~ 11:30AM", out)

	// afternoon times switch to PM
	out, err = FormatReservedDate(date, "13:00:00", "14:00:00")
	require.NoError(t, err)
	assert.Equal(t, "2026-09-10 01:00PM ~ 02:00PM", out)

	// clock values without seconds are accepted too
	out, err = FormatReservedDate(date, "09:15", "10:45")
	require.NoError(t, err)
	assert.Equal(t, "2026-09-10 09:15AM ~ 10:45AM", out)

	_, err = FormatReservedDate(date, "not-a-time", "11:00:00")
	assert.Error(t, err)
}
