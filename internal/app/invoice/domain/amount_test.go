package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmount_RejectsNonPositive(t *testing.T) {
	for _, raw := range []string{"0", "-5", "-0.01", "0.00", "-1e3", "0.004", "", "   ", "abc", "NaN", "Inf", "-Inf", "1/2", "1e999"} {
		t.Run(raw, func(t *testing.T) {
			_, err := ParseAmount(raw)
			require.ErrorIs(t, err, ErrInvalidAmount)
		})
	}
}

func TestParseAmount_ConvertsToRoundedCents(t *testing.T) {
	cases := map[string]int64{
		"10.50":   1050,
		"10.5":    1050,
		"0.01":    1,
		"0.005":   1,
		"0.29":    29,
		"19.99":   1999,
		"1e2":     10000,
		" 42 ":    4200,
		"1.235":   124,
		"1.2349":  123,
		"1000000": 100000000,
	}
	for raw, want := range cases {
		t.Run(raw, func(t *testing.T) {
			a, err := ParseAmount(raw)
			require.NoError(t, err)
			assert.Equal(t, want, a.Cents())
		})
	}
}

func TestNewAmountFromCents(t *testing.T) {
	a, err := NewAmountFromCents(1050)
	require.NoError(t, err)
	assert.Equal(t, int64(1050), a.Cents())
	assert.Equal(t, "10.50", a.String())
	assert.InDelta(t, 10.5, a.Float64(), 1e-9)

	_, err = NewAmountFromCents(0)
	assert.ErrorIs(t, err, ErrInvalidAmount)
}

func TestAmount_ZeroValue(t *testing.T) {
	var a Amount
	assert.True(t, a.IsZero())
	assert.Equal(t, int64(0), a.Cents())
	assert.Equal(t, "0.00", a.String())
}
