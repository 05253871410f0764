package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		input   string
		want    string
		wantErr error
	}{
		{"2024-03-01", "2024-03-01", nil},
		{" 2024-03-01 ", "2024-03-01", nil},
		{"2024/03/01", "2024-03-01", nil},
		{"2024-03-01T23:30", "2024-03-01", nil},
		{"2024-03-01T23:30:00+09:00", "2024-03-01", nil},
		{"", "", ErrEmptyDate},
		{"2024-13-01", "", ErrInvalidDate},
		{"yesterday", "", ErrInvalidDate},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseDate(tt.input)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveDate_Keywords(t *testing.T) {
	now := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	got, err := ResolveDate("today", now)
	require.NoError(t, err)
	assert.Equal(t, "2024-03-01", got)

	got, err = ResolveDate("Yesterday", now)
	require.NoError(t, err)
	assert.Equal(t, "2024-02-29", got)

	got, err = ResolveDate("tomorrow", now)
	require.NoError(t, err)
	assert.Equal(t, "2024-03-02", got)

	got, err = ResolveDate("2023-12-31", now)
	require.NoError(t, err)
	assert.Equal(t, "2023-12-31", got)
}

func TestParseMonth(t *testing.T) {
	got, err := ParseMonth("2024-03")
	require.NoError(t, err)
	assert.Equal(t, "2024-03", got)

	_, err = ParseMonth("2024-3-1")
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestShiftDate(t *testing.T) {
	got, err := ShiftDate("2024-03-01", -1)
	require.NoError(t, err)
	assert.Equal(t, "2024-02-29", got)

	got, err = ShiftDate("2024-12-31", 1)
	require.NoError(t, err)
	assert.Equal(t, "2025-01-01", got)

	_, err = ShiftDate("bad", 1)
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		seconds int
		want    string
	}{
		{0, "00:00"},
		{5, "00:05"},
		{65, "01:05"},
		{125, "02:05"},
		{3599, "59:59"},
		{3725, "62:05"},
		{-3, "00:00"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatDuration(tt.seconds), "seconds=%d", tt.seconds)
	}
}
