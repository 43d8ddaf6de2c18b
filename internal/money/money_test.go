package money

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExceeds(t *testing.T) {
	tests := []struct {
		name    string
		amount  float64
		current float64
		want    bool
	}{
		{name: "higher", amount: 1500, current: 1000, want: true},
		{name: "equal", amount: 1000, current: 1000, want: false},
		{name: "lower", amount: 500, current: 1000, want: false},
		{name: "same_decimal_literal", amount: 0.3, current: 0.3, want: false},
		{name: "one_cent_higher", amount: 10.01, current: 10, want: true},
		{name: "sub_cent_higher", amount: 10.001, current: 10, want: true},
		{name: "sub_cent_over_round_price", amount: 1000.004, current: 1000, want: true},
		{name: "sub_cent_lower", amount: 999.996, current: 1000, want: false},
		{name: "max_float", amount: math.MaxFloat64, current: 100, want: true},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tc.want, Exceeds(tc.amount, tc.current))
		})
	}
}

func TestPositive(t *testing.T) {
	require.True(t, Positive(0.01))
	require.False(t, Positive(0))
	require.False(t, Positive(-5))
	require.False(t, Positive(0.001))
}
