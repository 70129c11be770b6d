package pricing

import (
	"math"
	"testing"
	"testing/quick"

	"perfume-boutique-ws/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputePointsBoundaries(t *testing.T) {
	cases := []struct {
		total int64
		want  int64
	}{
		{0, 0},
		{9, 0},
		{10, 1},
		{19, 1},
		{20, 2},
		{1098, 109},
		{-5, 0},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ComputePoints(tc.total), "total=%d", tc.total)
	}
}

func TestComputeTotal(t *testing.T) {
	lines := []model.CartLine{
		{Size: "30ml", UnitPrice: 549, Quantity: 2},
		{Size: "100ml", UnitPrice: 1599, Quantity: 1},
	}
	total, err := ComputeTotal(lines)
	require.NoError(t, err)
	assert.Equal(t, int64(549*2+1599), total)

	total, err = ComputeTotal(nil)
	require.NoError(t, err)
	assert.Equal(t, int64(0), total)
}

func TestComputeTotalOverflow(t *testing.T) {
	cases := []struct {
		name  string
		lines []model.CartLine
	}{
		{"huge quantity", []model.CartLine{{UnitPrice: 549, Quantity: 1 << 62}}},
		{"huge price", []model.CartLine{{UnitPrice: math.MaxInt64 / 2, Quantity: 3}}},
		{"sum of lines", []model.CartLine{
			{UnitPrice: math.MaxInt64 / 2, Quantity: 1},
			{UnitPrice: math.MaxInt64 / 2, Quantity: 1},
			{UnitPrice: 2, Quantity: 1},
		}},
		{"negative quantity", []model.CartLine{{UnitPrice: 549, Quantity: -1}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ComputeTotal(tc.lines)
			assert.ErrorIs(t, err, ErrTotalOverflow)
		})
	}

	total, err := ComputeTotal([]model.CartLine{{UnitPrice: math.MaxInt64, Quantity: 1}})
	require.NoError(t, err)
	assert.Equal(t, int64(math.MaxInt64), total)
}

func TestComputeTotalMatchesSum(t *testing.T) {
	property := func(prices []uint16, qtys []uint8) bool {
		n := len(prices)
		if len(qtys) < n {
			n = len(qtys)
		}
		lines := make([]model.CartLine, 0, n)
		var want int64
		for i := 0; i < n; i++ {
			qty := int(qtys[i]%20) + 1
			lines = append(lines, model.CartLine{UnitPrice: int64(prices[i]), Quantity: qty})
			want += int64(prices[i]) * int64(qty)
		}
		got, err := ComputeTotal(lines)
		return err == nil && got == want
	}
	require.NoError(t, quick.Check(property, nil))
}

func TestComputePointsIsFloor(t *testing.T) {
	property := func(total uint32) bool {
		got := ComputePoints(int64(total))
		return got*PointsRate <= int64(total) && (got+1)*PointsRate > int64(total)
	}
	require.NoError(t, quick.Check(property, nil))
}

func TestNextTier(t *testing.T) {
	assert.Equal(t, int64(500), NextTier(0))
	assert.Equal(t, int64(500), NextTier(450))
	assert.Equal(t, int64(1000), NextTier(500))
	assert.Equal(t, int64(500), NextTier(-3))
}
