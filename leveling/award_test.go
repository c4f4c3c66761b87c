package leveling

import (
	"testing"

	"github.com/stretchr/testify/require"

	"level-bot/model"
)

func TestAwardAmount_Bounds(t *testing.T) {
	r := AwardRange{Min: 15, Max: 40}
	require.Equal(t, int64(15), AwardAmount(0, r, nil))
	require.Equal(t, int64(40), AwardAmount(0.9999999, r, nil))
	require.Equal(t, int64(40), AwardAmount(1, r, nil))
	require.Equal(t, int64(15), AwardAmount(-0.5, r, nil))

	for u := 0.0; u < 1; u += 0.001 {
		got := AwardAmount(u, r, nil)
		require.GreaterOrEqual(t, got, r.Min)
		require.LessOrEqual(t, got, r.Max)
	}
}

func TestAwardAmount_SkewedLow(t *testing.T) {
	r := AwardRange{Min: 0, Max: 99}
	// u = 0.5 squares to 0.25, a quarter of the way up.
	require.Equal(t, int64(25), AwardAmount(0.5, r, nil))

	low := 0
	for i := 0; i < 1000; i++ {
		if AwardAmount(float64(i)/1000, r, nil) < 50 {
			low++
		}
	}
	require.Greater(t, low, 600)
}

func TestAwardAmount_IgnoresMultipliers(t *testing.T) {
	r := AwardRange{Min: 15, Max: 40}
	mults := []model.Multiplier{{Name: "weekend", Factor: 2}}
	require.Equal(t, AwardAmount(0.3, r, nil), AwardAmount(0.3, r, mults))
}

func TestAwardAmount_InvertedRange(t *testing.T) {
	require.Equal(t, int64(10), AwardAmount(0.7, AwardRange{Min: 10, Max: 5}, nil))
}
