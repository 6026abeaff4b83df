package keeper

import (
	"context"
	"fmt"

	sdkerrors "cosmossdk.io/errors"
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/vortex-dex/vortex/x/swaprouter/types"
)

// executeRoute dispatches the route to its generation's strategy and returns
// the measured actual output. When outputToModule is set the destination
// funds land with the module account instead of the recipient, so output-side
// fees can be settled before the remainder is forwarded.
func (k Keeper) executeRoute(ctx context.Context, sender, recipient sdk.AccAddress, route types.Route, exec types.Execution, minOut math.Int, outputToModule bool) (math.Int, error) {
	switch route.Generation {
	case types.GenerationConstantProduct, types.GenerationConcentrated:
		return k.executeLegacy(ctx, sender, recipient, route, exec, minOut, outputToModule)
	case types.GenerationSingleton:
		return k.executeSingleton(ctx, sender, recipient, route, exec, minOut, outputToModule)
	default:
		return math.Int{}, sdkerrors.Wrapf(types.ErrInvalidGeneration, "generation %d", route.Generation)
	}
}

// executeLegacy runs a generation-2 or generation-3 swap as one batched call
// plan against the execution router. A native source is wrapped first in the
// same plan; a native destination is swapped to the wrapped denom, which is
// then unwrapped into module custody for output-side settlement. The plan
// always ends by sweeping unconsumed input back to the sender so nothing
// sticks to the module if the router under-consumes.
func (k Keeper) executeLegacy(ctx context.Context, sender, recipient sdk.AccAddress, route types.Route, exec types.Execution, minOut math.Int, outputToModule bool) (math.Int, error) {
	params := k.GetParams(ctx)

	if err := validateHopPath(route); err != nil {
		return math.Int{}, err
	}

	venuePath := make([]string, len(route.HopPath))
	for i, denom := range route.HopPath {
		venuePath[i] = canonicalDenom(denom, params)
	}

	var plan types.CallPlan

	if route.SourceDenom == params.NativeDenom {
		if err := plan.Append(types.OpWrapNative, types.WrapArgs{Amount: exec.AmountIn}); err != nil {
			return math.Int{}, fmt.Errorf("executeLegacy: %w", err)
		}
	}

	swapRecipient := recipient
	measureAddr := recipient
	measureDenom := route.DestDenom
	if outputToModule {
		swapRecipient = k.ModuleAddress()
		measureAddr = k.ModuleAddress()
		measureDenom = params.NativeDenom
	}

	switch route.Generation {
	case types.GenerationConstantProduct:
		err := plan.Append(types.OpSwapExactInV2, types.SwapV2Args{
			Path:      venuePath,
			AmountIn:  exec.AmountIn,
			MinOut:    minOut,
			Recipient: swapRecipient.String(),
		})
		if err != nil {
			return math.Int{}, fmt.Errorf("executeLegacy: %w", err)
		}
	case types.GenerationConcentrated:
		tiers := make([]uint32, len(venuePath)-1)
		for i := range tiers {
			tiers[i] = route.FeeTierBps
		}
		err := plan.Append(types.OpSwapExactInV3, types.SwapV3Args{
			Path:      venuePath,
			FeeTiers:  tiers,
			AmountIn:  exec.AmountIn,
			MinOut:    minOut,
			Recipient: swapRecipient.String(),
		})
		if err != nil {
			return math.Int{}, fmt.Errorf("executeLegacy: %w", err)
		}
	}

	if outputToModule {
		err := plan.Append(types.OpUnwrapNative, types.UnwrapArgs{
			MinAmount: minOut,
			Recipient: k.ModuleAddress().String(),
		})
		if err != nil {
			return math.Int{}, fmt.Errorf("executeLegacy: %w", err)
		}
	}

	err := plan.Append(types.OpSweep, types.SweepArgs{
		Denom:     venuePath[0],
		MinAmount: math.ZeroInt(),
		Recipient: sender.String(),
	})
	if err != nil {
		return math.Int{}, fmt.Errorf("executeLegacy: %w", err)
	}

	return k.runPlanMeasured(ctx, plan, measureAddr, measureDenom, minOut)
}

// runPlanMeasured executes one call plan and derives the actual output from
// the observed balance delta. The router's own accounting is never trusted;
// a router that under-reports or over-reports changes nothing here.
func (k Keeper) runPlanMeasured(ctx context.Context, plan types.CallPlan, measureAddr sdk.AccAddress, measureDenom string, minOut math.Int) (math.Int, error) {
	before := k.bankKeeper.GetBalance(ctx, measureAddr, measureDenom).Amount

	if err := k.router.Run(ctx, k.ModuleAddress(), plan); err != nil {
		return math.Int{}, sdkerrors.Wrapf(types.ErrSettlementFailed, "execution router: %v", err)
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
	return actual, nil
}

// validateHopPath pins the hop path's endpoints to the route's token pair.
func validateHopPath(route types.Route) error {
	if len(route.HopPath) < 2 {
		return sdkerrors.Wrapf(types.ErrInvalidRoute, "hop path needs at least 2 tokens, got %d", len(route.HopPath))
	}
	if first := route.HopPath[0]; first != route.SourceDenom {
		return sdkerrors.Wrapf(types.ErrInvalidRoute, "hop path starts at %s, want source %s", first, route.SourceDenom)
	}
	if last := route.HopPath[len(route.HopPath)-1]; last != route.DestDenom {
		return sdkerrors.Wrapf(types.ErrInvalidRoute, "hop path ends at %s, want destination %s", last, route.DestDenom)
	}
	return nil
}
