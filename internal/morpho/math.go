package morpho

import (
	"errors"

	"github.com/holiman/uint256"
)

var (
	// ErrDivideByZero denominator of a mul-div is zero
	ErrDivideByZero = errors.New("morpho: divide by zero")
	// ErrOverflow result does not fit in 256 bits
	ErrOverflow = errors.New("morpho: uint256 overflow")
)

var (
	// WAD fixed point unit, 1.0 = 1e18
	WAD = uint256.NewInt(1e18)

	wad2 = uint256.NewInt(2e18)
	wad3 = uint256.NewInt(3e18)
	one  = uint256.NewInt(1)
)

// MulDivDown returns floor(x * y / denominator).
//
// The product is kept in a 512-bit intermediate, so only a quotient wider than
// 256 bits is reported as ErrOverflow.
func MulDivDown(x, y, denominator *uint256.Int) (*uint256.Int, error) {
	if denominator.IsZero() {
		return nil, ErrDivideByZero
	}

	z, overflow := new(uint256.Int).MulDivOverflow(x, y, denominator)
	if overflow {
		return nil, ErrOverflow
	}

	return z, nil
}

// MulDivUp returns ceil(x * y / denominator)
func MulDivUp(x, y, denominator *uint256.Int) (*uint256.Int, error) {
	z, err := MulDivDown(x, y, denominator)
	if err != nil {
		return nil, err
	}

	if new(uint256.Int).MulMod(x, y, denominator).IsZero() {
		return z, nil
	}

	if _, overflow := z.AddOverflow(z, one); overflow {
		return nil, ErrOverflow
	}

	return z, nil
}

// WMulDown fixed point product of two WAD numbers, truncated
func WMulDown(x, y *uint256.Int) (*uint256.Int, error) {
	return MulDivDown(x, y, WAD)
}

// WDivDown fixed point quotient of two WAD numbers, truncated
func WDivDown(x, y *uint256.Int) (*uint256.Int, error) {
	return MulDivDown(x, WAD, y)
}

// WDivUp fixed point quotient of two WAD numbers, rounded up
func WDivUp(x, y *uint256.Int) (*uint256.Int, error) {
	return MulDivUp(x, WAD, y)
}

// WTaylorCompounded approximates e^(x*n) - 1 at WAD scale with the first
// three terms of its Taylor expansion.
//
// x is a WAD per-second rate and n a plain count of seconds, so the first
// term is a raw product and is already WAD scaled.
func WTaylorCompounded(x, n *uint256.Int) (*uint256.Int, error) {
	firstTerm, overflow := new(uint256.Int).MulOverflow(x, n)
	if overflow {
		return nil, ErrOverflow
	}

	secondTerm, err := MulDivDown(firstTerm, firstTerm, wad2)
	if err != nil {
		return nil, err
	}

	thirdTerm, err := MulDivDown(secondTerm, firstTerm, wad3)
	if err != nil {
		return nil, err
	}

	sum, overflow := new(uint256.Int).AddOverflow(firstTerm, secondTerm)
	if overflow {
		return nil, ErrOverflow
	}

	if _, overflow := sum.AddOverflow(sum, thirdTerm); overflow {
		return nil, ErrOverflow
	}

	return sum, nil
}
