package keeper

import (
	"context"

	sdkerrors "cosmossdk.io/errors"
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/vortex-dex/vortex/x/swaprouter/types"
)

// executeSingleton runs a generation-4 swap through the pool manager's
// acquire/callback protocol. The route encoding is decoded into an ordered
// hop list and every hop executes inside one settlement session; the session
// input debt is settled once from module custody and the final output taken
// once at the end. A native source is wrapped before the lock is taken; a
// native destination is taken as wrapped into module custody and unwrapped
// after the lock releases.
func (k Keeper) executeSingleton(ctx context.Context, sender, recipient sdk.AccAddress, route types.Route, exec types.Execution, minOut math.Int, outputToModule bool) (math.Int, error) {
	params := k.GetParams(ctx)

	hops, err := types.DecodeRouteData(route.RouteData)
	if err != nil {
		return math.Int{}, err
	}

	venueSrc := canonicalDenom(route.SourceDenom, params)
	venueDst := canonicalDenom(route.DestDenom, params)

	if err := k.beginSettlement(ctx); err != nil {
		return math.Int{}, err
	}
	defer k.clearSettlement(ctx)

	if route.SourceDenom == params.NativeDenom {
		if err := k.wrappedNative.Wrap(ctx, k.ModuleAddress(), exec.AmountIn); err != nil {
			return math.Int{}, sdkerrors.Wrapf(types.ErrNativeTransferFailed, "wrap input: %v", err)
		}
	}

	takeRecipient := recipient
	measureAddr := recipient
	measureDenom := route.DestDenom
	if outputToModule {
		takeRecipient = k.ModuleAddress()
		measureAddr = k.ModuleAddress()
		measureDenom = params.WrappedDenom
	}

	before := k.bankKeeper.GetBalance(ctx, measureAddr, measureDenom).Amount

	err = k.poolManager.Acquire(ctx, func(session types.SettlementSession) error {
		return k.settleHops(ctx, session, hops, venueSrc, venueDst, exec.AmountIn, route.HookData, takeRecipient)
	})
	if err != nil {
		if sdkerrors.IsOf(err,
			types.ErrReentrancy,
			types.ErrInvalidRoute,
			types.ErrSettlementFailed,
			types.ErrInsufficientAmount,
			types.ErrOverflow,
		) {
			return math.Int{}, err
		}
		return math.Int{}, sdkerrors.Wrapf(types.ErrSettlementFailed, "pool manager: %v", err)
	}

	after := k.bankKeeper.GetBalance(ctx, measureAddr, measureDenom).Amount
	actual, err := SafeSub(after, before)
	if err != nil {
		return math.Int{}, err
	}
	if actual.IsNegative() {
		return math.Int{}, sdkerrors.Wrapf(types.ErrSettlementFailed, "destination balance decreased by %s", actual.Neg())
	}

	if actual.LT(minOut) {
		return math.Int{}, sdkerrors.Wrapf(types.ErrSlippageExceeded, "actual %s below minimum %s", actual, minOut)
	}

	if outputToModule {
		if err := k.wrappedNative.Unwrap(ctx, k.ModuleAddress(), actual); err != nil {
			return math.Int{}, sdkerrors.Wrapf(types.ErrNativeTransferFailed, "unwrap output: %v", err)
		}
	}

	return actual, nil
}

// settleHops is the designated entry point the pool manager calls back into.
// All balance-affecting settlement work happens here: the hop walk accruing
// session deltas, the input settle, and the output take. The session must
// end with every delta at zero or the manager fails the acquire.
func (k Keeper) settleHops(ctx context.Context, session types.SettlementSession, hops []types.PoolHop, denomIn, denomOut string, amountIn math.Int, hookData []byte, takeRecipient sdk.AccAddress) error {
	if phase := k.settlementPhase(ctx); phase != types.SettlementLockedPending {
		return sdkerrors.Wrapf(types.ErrReentrancy, "settlement callback entered in phase %s", phase)
	}
	k.setSettlementPhase(ctx, types.SettlementSettling)

	running := denomIn
	amount := amountIn
	for i, hop := range hops {
		next, ok := hop.Key.Other(running)
		if !ok {
			return sdkerrors.Wrapf(types.ErrInvalidRoute, "hop %d pool %s/%s does not contain %s", i, hop.Key.Token0, hop.Key.Token1, running)
		}

		out, err := session.Swap(hop.Key, running, amount, hookData)
		if err != nil {
			return sdkerrors.Wrapf(types.ErrSettlementFailed, "hop %d swap: %v", i, err)
		}
		if out.IsNil() || !out.IsPositive() {
			return sdkerrors.Wrapf(types.ErrSettlementFailed, "hop %d produced no output", i)
		}

		running = next
		amount = out
	}
	if running != denomOut {
		return sdkerrors.Wrapf(types.ErrInvalidRoute, "route ends at %s, want %s", running, denomOut)
	}

	if err := session.Settle(denomIn, amountIn); err != nil {
		return sdkerrors.Wrapf(types.ErrSettlementFailed, "settle %s debt: %v", denomIn, err)
	}
	if err := session.Take(denomOut, takeRecipient, amount); err != nil {
		return sdkerrors.Wrapf(types.ErrSettlementFailed, "take %s credit: %v", denomOut, err)
	}
	return nil
}

// beginSettlement moves the phase machine from Released to LockedPending,
// rejecting any call that arrives while a settlement is already in flight.
func (k Keeper) beginSettlement(ctx context.Context) error {
	if phase := k.settlementPhase(ctx); phase != types.SettlementReleased {
		return sdkerrors.Wrapf(types.ErrReentrancy, "settlement already in phase %s", phase)
	}
	k.setSettlementPhase(ctx, types.SettlementLockedPending)
	return nil
}

// settlementPhase reads the current phase, Released when unset.
func (k Keeper) settlementPhase(ctx context.Context) types.SettlementPhase {
	store := k.getStore(ctx)
	bz := store.Get(types.SettlementKey)
	if len(bz) == 0 {
		return types.SettlementReleased
	}
	return types.SettlementPhase(bz[0])
}

// setSettlementPhase persists the phase marker.
func (k Keeper) setSettlementPhase(ctx context.Context, phase types.SettlementPhase) {
	store := k.getStore(ctx)
	store.Set(types.SettlementKey, []byte{byte(phase)})
}

// clearSettlement returns the phase machine to Released.
func (k Keeper) clearSettlement(ctx context.Context) {
	store := k.getStore(ctx)
	store.Delete(types.SettlementKey)
}
