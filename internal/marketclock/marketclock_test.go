package marketclock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMicFor(t *testing.T) {
	tests := []struct {
		ticker string
		want   string
	}{
		{"AAPL", "xnys"},
		{"VOD.L", "xlon"},
		{"7203.T", "xtks"},
		{"0700.HK", "xhkg"},
		{"SHOP.TO", "xtse"},
		{"", "xnys"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, micFor(tt.ticker), "ticker %q", tt.ticker)
	}
}

func TestFallbackIsOpen(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	tests := []struct {
		name string
		t    time.Time
		want bool
	}{
		{"wednesday mid-session", time.Date(2026, 3, 11, 10, 0, 0, 0, ny), true},
		{"wednesday at the open", time.Date(2026, 3, 11, 9, 30, 0, 0, ny), true},
		{"wednesday before the open", time.Date(2026, 3, 11, 9, 29, 0, 0, ny), false},
		{"wednesday at the close", time.Date(2026, 3, 11, 16, 0, 0, 0, ny), false},
		{"saturday", time.Date(2026, 3, 14, 10, 0, 0, 0, ny), false},
		{"sunday", time.Date(2026, 3, 15, 10, 0, 0, 0, ny), false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, fallbackIsOpen(tt.t), tt.name)
	}
}

func TestIsTradingDay(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	// A regular Wednesday with no US market holiday.
	assert.True(t, IsTradingDay("AAPL", time.Date(2026, 3, 11, 12, 0, 0, 0, ny)))
	// Weekends are closed everywhere.
	assert.False(t, IsTradingDay("AAPL", time.Date(2026, 3, 14, 12, 0, 0, 0, ny)))
}
