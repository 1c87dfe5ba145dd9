package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseVacationDuration(t *testing.T) {
	cases := []struct {
		raw     string
		dur     time.Duration
		display string
	}{
		{"3д", 3 * 24 * time.Hour, "1-3 дня"},
		{"3 дня", 3 * 24 * time.Hour, "1-3 дня"},
		{"неделя", 7 * 24 * time.Hour, "неделю"},
		{"НЕДЕЛЯ", 7 * 24 * time.Hour, "неделю"},
		{"2недели", 14 * 24 * time.Hour, "2 недели"},
		{" 14д ", 14 * 24 * time.Hour, "2 недели"},
	}
	for _, tc := range cases {
		dur, display, err := ParseVacationDuration(tc.raw)
		require.NoError(t, err, tc.raw)
		assert.Equal(t, tc.dur, dur, tc.raw)
		assert.Equal(t, tc.display, display, tc.raw)
	}
}

func TestParseVacationDurationUnknown(t *testing.T) {
	for _, raw := range []string{"", "месяц", "5д", "завтра"} {
		_, _, err := ParseVacationDuration(raw)
		assert.ErrorIs(t, err, ErrValidation, raw)
	}
}
