package morpho

import (
	"math/big"
	"math/rand"
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var maxUint256 = new(uint256.Int).SetAllOne()

func wad(n uint64) *uint256.Int {
	return new(uint256.Int).Mul(uint256.NewInt(n), WAD)
}

func randUint256(r *rand.Rand, bytes int) *uint256.Int {
	buf := make([]byte, bytes)
	r.Read(buf)
	return new(uint256.Int).SetBytes(buf)
}

func refMulDiv(x, y, d *uint256.Int, up bool) *big.Int {
	p := new(big.Int).Mul(x.ToBig(), y.ToBig())
	q, m := new(big.Int).QuoRem(p, d.ToBig(), new(big.Int))
	if up && m.Sign() != 0 {
		q.Add(q, big.NewInt(1))
	}
	return q
}

func TestMulDivDownExact(t *testing.T) {
	r := rand.New(rand.NewSource(1))

	for i := 0; i < 2000; i++ {
		x := randUint256(r, 1+r.Intn(32))
		y := randUint256(r, 1+r.Intn(32))
		d := randUint256(r, 1+r.Intn(32))
		if d.IsZero() {
			continue
		}

		want := refMulDiv(x, y, d, false)
		got, err := MulDivDown(x, y, d)
		if want.BitLen() > 256 {
			assert.ErrorIs(t, err, ErrOverflow, "x=%s y=%s d=%s", x, y, d)
			continue
		}

		require.NoError(t, err, "x=%s y=%s d=%s", x, y, d)
		assert.Equal(t, want.String(), got.Dec(), "x=%s y=%s d=%s", x, y, d)
	}
}

func TestMulDivUpExact(t *testing.T) {
	r := rand.New(rand.NewSource(2))

	for i := 0; i < 2000; i++ {
		x := randUint256(r, 1+r.Intn(16))
		y := randUint256(r, 1+r.Intn(16))
		d := randUint256(r, 1+r.Intn(16))
		if d.IsZero() {
			continue
		}

		up, err := MulDivUp(x, y, d)
		require.NoError(t, err)
		assert.Equal(t, refMulDiv(x, y, d, true).String(), up.Dec())

		down, err := MulDivDown(x, y, d)
		require.NoError(t, err)
		diff := new(uint256.Int).Sub(up, down)
		assert.True(t, diff.Cmp(uint256.NewInt(1)) <= 0, "up and down differ by more than one")
	}
}

func TestMulDivDownTruncates(t *testing.T) {
	z, err := MulDivDown(uint256.NewInt(1), uint256.NewInt(1), uint256.NewInt(2))
	require.NoError(t, err)
	assert.True(t, z.IsZero())

	z, err = MulDivDown(uint256.NewInt(5), uint256.NewInt(3), uint256.NewInt(4))
	require.NoError(t, err)
	assert.Equal(t, uint64(3), z.Uint64())

	z, err = MulDivUp(uint256.NewInt(1), uint256.NewInt(1), uint256.NewInt(2))
	require.NoError(t, err)
	assert.Equal(t, uint64(1), z.Uint64())
}

func TestMulDivDownZero(t *testing.T) {
	for _, y := range []*uint256.Int{uint256.NewInt(0), uint256.NewInt(7), maxUint256} {
		z, err := MulDivDown(uint256.NewInt(0), y, uint256.NewInt(3))
		require.NoError(t, err)
		assert.True(t, z.IsZero())
	}
}

func TestMulDivDivideByZero(t *testing.T) {
	_, err := MulDivDown(uint256.NewInt(1), uint256.NewInt(1), uint256.NewInt(0))
	assert.ErrorIs(t, err, ErrDivideByZero)

	_, err = MulDivUp(uint256.NewInt(1), uint256.NewInt(1), uint256.NewInt(0))
	assert.ErrorIs(t, err, ErrDivideByZero)

	_, err = WDivDown(WAD, uint256.NewInt(0))
	assert.ErrorIs(t, err, ErrDivideByZero)
}

func TestMulDivWideIntermediate(t *testing.T) {
	z, err := MulDivDown(maxUint256, maxUint256, maxUint256)
	require.NoError(t, err)
	assert.True(t, z.Eq(maxUint256))

	z, err = MulDivUp(maxUint256, maxUint256, maxUint256)
	require.NoError(t, err)
	assert.True(t, z.Eq(maxUint256))

	// (2^255 * 4) / 8 needs 258 bits before the division
	half := new(uint256.Int).Lsh(uint256.NewInt(1), 255)
	z, err = MulDivDown(half, uint256.NewInt(4), uint256.NewInt(8))
	require.NoError(t, err)
	assert.True(t, z.Eq(new(uint256.Int).Lsh(uint256.NewInt(1), 254)))

	z, err = MulDivUp(half, uint256.NewInt(4), uint256.NewInt(8))
	require.NoError(t, err)
	assert.True(t, z.Eq(new(uint256.Int).Lsh(uint256.NewInt(1), 254)))

	_, err = MulDivDown(maxUint256, maxUint256, uint256.NewInt(1))
	assert.ErrorIs(t, err, ErrOverflow)

	_, err = MulDivUp(maxUint256, uint256.NewInt(3), uint256.NewInt(2))
	assert.ErrorIs(t, err, ErrOverflow)
}

func TestWMulDown(t *testing.T) {
	z, err := WMulDown(wad(2), wad(3))
	require.NoError(t, err)
	assert.True(t, z.Eq(wad(6)))

	// 0.5 * 0.000000000000000001 truncates to zero
	z, err = WMulDown(uint256.NewInt(5e17), uint256.NewInt(1))
	require.NoError(t, err)
	assert.True(t, z.IsZero())

	z, err = WDivDown(wad(6), wad(4))
	require.NoError(t, err)
	assert.Equal(t, uint64(15e17), z.Uint64())

	z, err = WDivUp(uint256.NewInt(1), wad(3))
	require.NoError(t, err)
	assert.Equal(t, uint64(1), z.Uint64())
}

func TestWTaylorCompoundedZero(t *testing.T) {
	z, err := WTaylorCompounded(uint256.NewInt(0), uint256.NewInt(10000))
	require.NoError(t, err)
	assert.True(t, z.IsZero())

	z, err = WTaylorCompounded(uint256.NewInt(317097919), uint256.NewInt(0))
	require.NoError(t, err)
	assert.True(t, z.IsZero())

	z, err = WTaylorCompounded(maxUint256, uint256.NewInt(0))
	require.NoError(t, err)
	assert.True(t, z.IsZero())
}

func TestWTaylorCompoundedOneYear(t *testing.T) {
	rate := uint256.NewInt(317097919)
	elapsed := uint256.NewInt(31536000)

	z, err := WTaylorCompounded(rate, elapsed)
	require.NoError(t, err)
	// 9999999973584000 + 49999999735840 + 166666665345
	assert.Equal(t, "10050166639985185", z.Dec())

	w := big.NewInt(1e18)
	first := new(big.Int).Mul(rate.ToBig(), elapsed.ToBig())
	second := new(big.Int).Mul(first, first)
	second.Quo(second, new(big.Int).Mul(w, big.NewInt(2)))
	third := new(big.Int).Mul(second, first)
	third.Quo(third, new(big.Int).Mul(w, big.NewInt(3)))
	want := new(big.Int).Add(first, second)
	want.Add(want, third)
	assert.Equal(t, want.String(), z.Dec())

	totalBorrowAssets := wad(1_000_000)
	interest, err := WMulDown(totalBorrowAssets, z)
	require.NoError(t, err)

	wantInterest := new(big.Int).Mul(totalBorrowAssets.ToBig(), want)
	wantInterest.Quo(wantInterest, w)
	assert.Equal(t, wantInterest.String(), interest.Dec())
	assert.Equal(t, "10050166639985185000000", interest.Dec())
}

func TestWTaylorCompoundedMonotonic(t *testing.T) {
	rates := []uint64{0, 1, 1000, 317097919, 3170979198, 31709791983, 1e12}
	elapsed := []uint64{0, 1, 12, 3600, 86400, 31536000, 315360000}

	for _, r := range rates {
		prev := uint256.NewInt(0)
		for _, n := range elapsed {
			z, err := WTaylorCompounded(uint256.NewInt(r), uint256.NewInt(n))
			require.NoError(t, err)
			assert.True(t, z.Cmp(prev) >= 0, "rate %d: not monotonic at elapsed %d", r, n)
			prev = z
		}
	}

	for _, n := range elapsed {
		prev := uint256.NewInt(0)
		for _, r := range rates {
			z, err := WTaylorCompounded(uint256.NewInt(r), uint256.NewInt(n))
			require.NoError(t, err)
			assert.True(t, z.Cmp(prev) >= 0, "elapsed %d: not monotonic at rate %d", n, r)
			prev = z
		}
	}
}

func TestWTaylorCompoundedOverflow(t *testing.T) {
	_, err := WTaylorCompounded(maxUint256, uint256.NewInt(2))
	assert.ErrorIs(t, err, ErrOverflow)

	// first term fits, second term does not
	huge := new(uint256.Int).Lsh(uint256.NewInt(1), 200)
	_, err = WTaylorCompounded(huge, uint256.NewInt(1))
	assert.ErrorIs(t, err, ErrOverflow)
}
