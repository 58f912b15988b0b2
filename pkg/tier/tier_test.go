package tier

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string   { return &s }
func f64Ptr(f float64) *float64 { return &f }

func TestResolve_NoReserveNoExplicit(t *testing.T) {
	require.Equal(t, Standard, Resolve(nil, nil))
}

func TestResolve_InferredFromReserve(t *testing.T) {
	tests := []struct {
		name    string
		reserve float64
		want    Tier
	}{
		{"below premium threshold", 4999, Standard},
		{"at premium threshold", 5000, Premium},
		{"mid premium band", 10000, Premium},
		{"just under white glove", 24999, Premium},
		{"at white glove threshold", 25000, WhiteGlove},
		{"far above white glove", 100000, WhiteGlove},
		{"zero reserve", 0, Standard},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, Resolve(nil, f64Ptr(tt.reserve)))
		})
	}
}

func TestResolve_ExplicitOverridesReserve(t *testing.T) {
	require.Equal(t, WhiteGlove, Resolve(strPtr("white_glove"), f64Ptr(100)))
	require.Equal(t, Standard, Resolve(strPtr("standard"), f64Ptr(50000)))
	require.Equal(t, Premium, Resolve(strPtr("premium"), nil))
}

func TestResolve_EmptyExplicitFallsThrough(t *testing.T) {
	require.Equal(t, Premium, Resolve(strPtr(""), f64Ptr(6000)))
}

func TestMeetsReserve(t *testing.T) {
	require.False(t, MeetsReserve(nil, 1000000))
	require.False(t, MeetsReserve(f64Ptr(3000), 2999))
	require.True(t, MeetsReserve(f64Ptr(3000), 3000))
	require.True(t, MeetsReserve(f64Ptr(3000), 3500))
}

func TestIsValid(t *testing.T) {
	require.True(t, IsValid("standard"))
	require.True(t, IsValid("premium"))
	require.True(t, IsValid("white_glove"))
	require.False(t, IsValid(""))
	require.False(t, IsValid("vip"))
}
