package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePeriod(t *testing.T) {
	t.Run("valid month", func(t *testing.T) {
		p, err := ParsePeriod("2024-02")
		require.NoError(t, err)
		assert.Equal(t, Period{Year: 2024, Month: time.February}, p)
		assert.Equal(t, "2024-02", p.String())
	})

	t.Run("rejects malformed input", func(t *testing.T) {
		for _, s := range []string{"", "2024", "2024-13", "24-01", "2024-01-05"} {
			_, err := ParsePeriod(s)
			assert.ErrorIs(t, err, ErrInvalidPeriod, s)
		}
	})
}

func TestPeriod_DaysIn(t *testing.T) {
	tests := []struct {
		period string
		want   int
	}{
		{"2024-02", 29},
		{"2023-02", 28},
		{"1900-02", 28},
		{"2000-02", 29},
		{"2024-04", 30},
		{"2024-12", 31},
	}

	for _, tt := range tests {
		t.Run(tt.period, func(t *testing.T) {
			p, err := ParsePeriod(tt.period)
			require.NoError(t, err)
			assert.Equal(t, tt.want, p.DaysIn())
		})
	}
}

func TestPeriod_Navigation(t *testing.T) {
	jan := Period{Year: 2024, Month: time.January}

	assert.Equal(t, Period{Year: 2023, Month: time.December}, jan.AddMonths(-1))
	assert.Equal(t, Period{Year: 2024, Month: time.April}, jan.AddMonths(3))
	assert.True(t, jan.AddMonths(-1).Before(jan))
	assert.False(t, jan.Before(jan))

	assert.True(t, jan.Contains(time.Date(2024, 1, 31, 23, 0, 0, 0, time.UTC)))
	assert.False(t, jan.Contains(time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), jan.End())
}

func TestPeriod_Text(t *testing.T) {
	var p Period
	require.NoError(t, p.UnmarshalText([]byte("2025-07")))
	out, err := p.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "2025-07", string(out))
	assert.True(t, Period{}.IsZero())
}
