package number

import (
	"testing"

	"github.com/bmizerany/assert"
	"github.com/holiman/uint256"
	"github.com/shopspring/decimal"
)

func TestCeil(t *testing.T) {
	data := map[string]string{
		"0.10304":     "0.11",
		"0.100000001": "0.11",
		"0.108":       "0.11",
	}

	for k, v := range data {
		t.Run(k, func(t *testing.T) {
			_k := decimal.RequireFromString(k)
			c := Ceil(_k, 2)
			t.Log(k, c, _k.Round(2))
			assert.Equal(t, v, c.String(), "should be ceil")
		})
	}
}

func TestFromUint256(t *testing.T) {
	data := []struct {
		raw      uint64
		decimals int32
		want     string
	}{
		{1_500_000, 6, "1.5"},
		{1, 6, "0.000001"},
		{0, 18, "0"},
		{42, 0, "42"},
	}

	for _, d := range data {
		t.Run(d.want, func(t *testing.T) {
			got := FromUint256(uint256.NewInt(d.raw), d.decimals)
			assert.Equal(t, d.want, got.String())
		})
	}

	assert.Equal(t, "0", FromUint256(nil, 6).String())
	assert.Equal(t, "0.86", FromWad(uint256.NewInt(860_000_000_000_000_000)).String())
}
