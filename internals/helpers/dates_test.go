package helper

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWeekdayName(t *testing.T) {
	tests := []struct {
		date string
		want string
	}{
		{"2024-01-07", "Sunday"},
		{"2024-01-08", "Monday"},
		{"2024-01-10", "Wednesday"},
		{"2024-01-13", "Saturday"},
	}

	for _, tt := range tests {
		d, err := time.Parse(DateLayout, tt.date)
		require.NoError(t, err)
		assert.Equal(t, tt.want, WeekdayName(d), tt.date)
	}
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-01-10")
	require.NoError(t, err)
	assert.Equal(t, "2024-01-10", FormatDate(d))

	d, err = ParseDate("  2024-01-10 ")
	require.NoError(t, err)
	assert.Equal(t, "2024-01-10", FormatDate(d))

	_, err = ParseDate("10/01/2024")
	assert.Error(t, err)
	_, err = ParseDate("")
	assert.Error(t, err)
}

func TestParseDateOrToday(t *testing.T) {
	d, err := ParseDateOrToday("")
	require.NoError(t, err)
	assert.Equal(t, FormatDate(Today()), FormatDate(d))

	d, err = ParseDateOrToday("2024-01-10")
	require.NoError(t, err)
	assert.Equal(t, "2024-01-10", FormatDate(d))
}
