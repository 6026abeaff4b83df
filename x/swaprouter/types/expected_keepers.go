package types

import (
	"context"

	sdkmath "cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// BankKeeper defines the bank operations the router needs: balance reads for
// delta measurement and transfers for fee settlement and custody moves.
type BankKeeper interface {
	GetBalance(ctx context.Context, addr sdk.AccAddress, denom string) sdk.Coin
	SpendableCoins(ctx context.Context, addr sdk.AccAddress) sdk.Coins
	SendCoins(ctx context.Context, fromAddr, toAddr sdk.AccAddress, amt sdk.Coins) error
	SendCoinsFromAccountToModule(ctx context.Context, senderAddr sdk.AccAddress, recipientModule string, amt sdk.Coins) error
	SendCoinsFromModuleToAccount(ctx context.Context, senderModule string, recipientAddr sdk.AccAddress, amt sdk.Coins) error
}

// ExecutionRouter is the shared external router that generation-2/3
// strategies drive. It runs a whole call plan on behalf of the caller account
// or fails it as a unit; partial execution must not leave state behind.
type ExecutionRouter interface {
	Run(ctx context.Context, caller sdk.AccAddress, plan CallPlan) error
}

// WrappedNative is the wrap/unwrap contract for the native currency.
type WrappedNative interface {
	// Denom returns the wrapped form's denom.
	Denom() string

	// Wrap converts amount of native currency held by addr into wrapped form.
	Wrap(ctx context.Context, addr sdk.AccAddress, amount sdkmath.Int) error

	// Unwrap converts amount of wrapped currency held by addr back to native.
	Unwrap(ctx context.Context, addr sdk.AccAddress, amount sdkmath.Int) error
}

// SettlementSession is the transient handle a pool manager grants for the
// duration of one acquire/callback settlement. Swaps accrue per-denom deltas
// owed between the router and the manager; Settle pays debts, Take withdraws
// credits. The manager verifies every delta returned to zero when the
// callback ends.
type SettlementSession interface {
	// Swap trades amountIn of denomIn inside the keyed pool, crediting the
	// session with the computed output. Both legs stay inside the session
	// ledger until settled or taken.
	Swap(key PoolKey, denomIn string, amountIn sdkmath.Int, hookData []byte) (amountOut sdkmath.Int, err error)

	// Settle pays amount of denom from the router's account into the manager,
	// clearing debt accrued by Swap inputs.
	Settle(denom string, amount sdkmath.Int) error

	// Take withdraws amount of denom credit from the manager to recipient.
	Take(denom string, recipient sdk.AccAddress, amount sdkmath.Int) error
}

// PoolManager is the generation-4 singleton venue. Acquire grants a
// settlement session and synchronously invokes cb before returning; every
// balance-affecting operation is only legal inside cb. A non-nil error from
// cb, or session deltas left unsettled, fail the acquire as a whole.
type PoolManager interface {
	Acquire(ctx context.Context, cb func(SettlementSession) error) error

	// QuotePool estimates an exact-in swap against one pool without touching
	// state.
	QuotePool(ctx context.Context, key PoolKey, denomIn string, amountIn sdkmath.Int) (amountOut, liquidity sdkmath.Int, err error)
}

// LegacyAMM exposes generation-2 constant-product pair state for quoting.
type LegacyAMM interface {
	// PairReserves returns the pair's reserves oriented to the given
	// input/output denoms.
	PairReserves(ctx context.Context, denomIn, denomOut string) (reserveIn, reserveOut sdkmath.Int, err error)
}

// ConcentratedAMM exposes generation-3 quoting across discrete fee tiers.
type ConcentratedAMM interface {
	// QuoteExactIn estimates an exact-in swap through the pool at the given
	// fee tier, returning the expected output and the pool's active
	// liquidity.
	QuoteExactIn(ctx context.Context, denomIn, denomOut string, feeTierBps uint32, amountIn sdkmath.Int) (amountOut, liquidity sdkmath.Int, err error)
}

// AllowanceDelegate is the allowance-delegation contract used to pull
// pre-approved funds from a trader without a fresh approval per swap.
type AllowanceDelegate interface {
	TransferFrom(ctx context.Context, owner, recipient sdk.AccAddress, denom string, amount sdkmath.Int) error
}

// FeeMarket optionally supplies the chain base fee for the MEV gas baseline.
// A nil FeeMarket collaborator degrades the heuristic to caller-derived
// tiers.
type FeeMarket interface {
	BaseFee(ctx context.Context) sdkmath.Int
}

// SwapRouterV1 is the versioned interface other modules consume.
type SwapRouterV1 interface {
	// Quote estimates the best route for a pair without executing.
	Quote(ctx context.Context, req QuoteRequest) (Quote, error)

	// ModuleOf resolves an operation tag to its registered module address.
	ModuleOf(ctx context.Context, tag OpTag) (string, bool)
}
