package keeper

import (
	"math/big"

	sdkerrors "cosmossdk.io/errors"
	"cosmossdk.io/math"

	"github.com/vortex-dex/vortex/x/swaprouter/types"
)

// Overflow-safe arithmetic for fee and slippage calculations. Amounts are
// capped at 2^256 so results stay representable on every venue the router
// talks to. An underflowing subtraction is a hard failure, never clamped.

// maxInt is the exclusive upper bound for all amounts (2^256).
var maxInt = new(big.Int).Exp(big.NewInt(2), big.NewInt(256), nil)

// SafeAdd adds two math.Int values with overflow checking
func SafeAdd(a, b math.Int) (math.Int, error) {
	result := new(big.Int).Add(a.BigInt(), b.BigInt())
	if result.Cmp(maxInt) >= 0 {
		return math.Int{}, sdkerrors.Wrapf(types.ErrOverflow, "add: %s + %s exceeds maximum value", a, b)
	}
	return math.NewIntFromBigInt(result), nil
}

// SafeSub subtracts b from a with underflow checking
func SafeSub(a, b math.Int) (math.Int, error) {
	if a.LT(b) {
		return math.Int{}, sdkerrors.Wrapf(types.ErrOverflow, "sub: cannot subtract %s from %s", b, a)
	}
	return math.NewIntFromBigInt(new(big.Int).Sub(a.BigInt(), b.BigInt())), nil
}

// SafeMul multiplies two math.Int values with overflow checking
func SafeMul(a, b math.Int) (math.Int, error) {
	if a.IsZero() || b.IsZero() {
		return math.ZeroInt(), nil
	}
	result := new(big.Int).Mul(a.BigInt(), b.BigInt())
	if result.Cmp(maxInt) >= 0 {
		return math.Int{}, sdkerrors.Wrapf(types.ErrOverflow, "mul: %s * %s exceeds maximum value", a, b)
	}
	return math.NewIntFromBigInt(result), nil
}

// SafeQuo divides a by b with division by zero checking
func SafeQuo(a, b math.Int) (math.Int, error) {
	if b.IsZero() {
		return math.Int{}, sdkerrors.Wrap(types.ErrOverflow, "quo: division by zero")
	}
	return math.NewIntFromBigInt(new(big.Int).Quo(a.BigInt(), b.BigInt())), nil
}

// SafeMulDiv computes floor(a * b / c) with overflow protection on the
// intermediate product. All bps arithmetic in the router goes through here so
// rounding is floor everywhere.
func SafeMulDiv(a, b, c math.Int) (math.Int, error) {
	if c.IsZero() {
		return math.Int{}, sdkerrors.Wrap(types.ErrOverflow, "muldiv: division by zero")
	}
	intermediate := new(big.Int).Mul(a.BigInt(), b.BigInt())
	if intermediate.Cmp(maxInt) >= 0 {
		return math.Int{}, sdkerrors.Wrapf(types.ErrOverflow, "muldiv: %s * %s exceeds maximum value", a, b)
	}
	return math.NewIntFromBigInt(new(big.Int).Quo(intermediate, c.BigInt())), nil
}

// BpsOf computes floor(amount * bps / 10000), the fee and slippage primitive.
func BpsOf(amount math.Int, bps uint32) (math.Int, error) {
	return SafeMulDiv(amount, math.NewInt(int64(bps)), math.NewInt(types.BpsDenominator))
}
