package keeper

import (
	"context"
	"fmt"
	"time"

	sdkerrors "cosmossdk.io/errors"
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/vortex-dex/vortex/x/swaprouter/types"
)

// ExecuteSwap validates, routes, and settles one swap atomically. The caller
// is expected to run it on a cached context so a failure anywhere unwinds
// every transfer already made.
func (k Keeper) ExecuteSwap(ctx context.Context, msg *types.MsgExecuteSwap) (types.SwapResult, error) {
	start := time.Now()
	res, err := k.executeSwap(ctx, msg)
	k.metrics.SwapLatency.Observe(time.Since(start).Seconds())

	gen := generationLabel(msg.Route.Generation)
	if err != nil {
		k.metrics.SwapsTotal.WithLabelValues(gen, "failed").Inc()
		return types.SwapResult{}, err
	}
	k.metrics.SwapsTotal.WithLabelValues(gen, "success").Inc()
	k.metrics.SwapVolume.WithLabelValues(msg.Route.SourceDenom).Add(float64(msg.AmountIn.Int64()))
	return res, nil
}

func (k Keeper) executeSwap(ctx context.Context, msg *types.MsgExecuteSwap) (types.SwapResult, error) {
	if err := msg.ValidateBasic(); err != nil {
		return types.SwapResult{}, err
	}

	sdkCtx := sdk.UnwrapSDKContext(ctx)
	params := k.GetParams(ctx)
	ledger := k.GetFeeLedger(ctx)
	now := sdkCtx.BlockTime()

	if msg.AmountIn.LT(params.MinSwapAmount) {
		return types.SwapResult{}, sdkerrors.Wrapf(types.ErrInvalidAmount, "amount %s below minimum %s", msg.AmountIn, params.MinSwapAmount)
	}
	if msg.Deadline > 0 && now.Unix() > msg.Deadline {
		return types.SwapResult{}, sdkerrors.Wrapf(types.ErrDeadlineExceeded, "deadline %d passed at %d", msg.Deadline, now.Unix())
	}

	sender, err := sdk.AccAddressFromBech32(msg.Sender)
	if err != nil {
		return types.SwapResult{}, sdkerrors.Wrapf(types.ErrInvalidAddress, "sender: %v", err)
	}
	recipient := sender
	if msg.Recipient != "" {
		recipient, err = sdk.AccAddressFromBech32(msg.Recipient)
		if err != nil {
			return types.SwapResult{}, sdkerrors.Wrapf(types.ErrInvalidAddress, "recipient: %v", err)
		}
	}

	// The in-progress flag goes up before any external call and comes down
	// on every exit path. A callee re-entering through a crafted callback
	// lands here and is rejected.
	if err := k.enterSwap(ctx); err != nil {
		return types.SwapResult{}, err
	}
	defer k.exitSwap(ctx)

	route := msg.Route
	touched := touchedDenoms(route, params)
	held := k.snapshotModuleBalances(ctx, touched)

	if err := k.collectPayment(ctx, sender, route, msg.AmountIn, msg.Payment, params); err != nil {
		return types.SwapResult{}, err
	}

	exec := types.Execution{
		AmountIn:       msg.AmountIn,
		ExpectedOutput: msg.ExpectedOutput,
		SlippageBps:    msg.SlippageBps,
		Deadline:       msg.Deadline,
		Recipient:      recipient.String(),
		ExactInput:     true,
		UsePinnedQuote: msg.UsePinnedQuote,
	}

	if err := k.resolveExpectedOutput(ctx, msg, &route, &exec); err != nil {
		return types.SwapResult{}, err
	}

	if err := applySlippageDefaults(&exec, params); err != nil {
		return types.SwapResult{}, err
	}

	if msg.Config.MevProtectionEnabled {
		gas := types.GasContext{
			CallerGasPrice: msg.Config.GasPriceHint,
			ChainBaseFee:   k.chainBaseFee(ctx),
		}
		if k.mevGuard.Adjust(&exec, gas, now) {
			k.metrics.MEVAdjustments.Inc()
			sdkCtx.EventManager().EmitEvent(
				sdk.NewEvent(
					types.EventTypeMEVAdjusted,
					sdk.NewAttribute(types.AttributeKeySlippageBps, fmt.Sprintf("%d", exec.SlippageBps)),
					sdk.NewAttribute(types.AttributeKeyDeadline, fmt.Sprintf("%d", exec.Deadline)),
				),
			)
		}
	}

	fee := types.FeeProcessing{
		ReferralAccount:    msg.ReferralAccount,
		ReferralFeeBps:     msg.ReferralFeeBps,
		PlatformFeeAmount:  math.ZeroInt(),
		ReferralFeeAmount:  math.ZeroInt(),
		FeeChargedOnOutput: feeChargedOnOutput(route, params),
	}

	if err := k.processInputFees(ctx, route.SourceDenom, &exec, &fee, ledger); err != nil {
		return types.SwapResult{}, err
	}

	minOut, err := minimumOutput(exec.ExpectedOutput, exec.SlippageBps)
	if err != nil {
		return types.SwapResult{}, err
	}

	actual, err := k.executeRoute(ctx, sender, recipient, route, exec, minOut, fee.FeeChargedOnOutput)
	if err != nil {
		return types.SwapResult{}, err
	}

	if fee.FeeChargedOnOutput {
		if _, err := k.settleOutputFees(ctx, recipient, params.NativeDenom, actual, &fee, ledger); err != nil {
			return types.SwapResult{}, err
		}
	}

	if err := k.assertNoResidual(ctx, touched, held); err != nil {
		return types.SwapResult{}, err
	}

	k.emitSwapExecuted(ctx, msg, route, exec, fee, actual, minOut)
	k.Logger(ctx).Info("swap executed",
		"sender", msg.Sender,
		"source", route.SourceDenom,
		"dest", route.DestDenom,
		"generation", route.Generation,
		"amount_in", msg.AmountIn.String(),
		"actual_output", actual.String(),
	)

	return types.SwapResult{
		ActualOutput: actual,
		Generation:   route.Generation,
		FeeInfo:      fee,
	}, nil
}

// resolveExpectedOutput fixes the price baseline for slippage bounds. A
// pinned quote must match the route it is executed against, otherwise the
// quote engine prices the caller's route live, pinned to the route's own
// generation so the estimate matches the venue that will execute. A
// generation-4 route that arrives without a pool-hop encoding adopts the
// quote's encoding, pinned or live.
func (k Keeper) resolveExpectedOutput(ctx context.Context, msg *types.MsgExecuteSwap, route *types.Route, exec *types.Execution) error {
	needsEncoding := route.Generation == types.GenerationSingleton && len(route.RouteData) == 0

	if msg.UsePinnedQuote {
		pinned := msg.PinnedQuote
		if pinned == nil || pinned.NoRoute() {
			return sdkerrors.Wrap(types.ErrInvalidQuote, "pinned quote has no route")
		}
		if pinned.Generation != route.Generation {
			return sdkerrors.Wrapf(types.ErrInvalidQuote, "pinned quote generation %d does not match route generation %d", pinned.Generation, route.Generation)
		}
		if needsEncoding {
			route.RouteData = pinned.RouteData
		}
		if route.FeeTierBps == 0 {
			route.FeeTierBps = pinned.FeeTierBps
		}
		if !exec.ExpectedOutput.IsPositive() {
			exec.ExpectedOutput = pinned.ExpectedOutput
		}
		return nil
	}

	if exec.ExpectedOutput.IsPositive() && !needsEncoding {
		return nil
	}

	req := types.QuoteRequest{
		SourceDenom: route.SourceDenom,
		DestDenom:   route.DestDenom,
		AmountIn:    exec.AmountIn,
		Hints: types.RoutingHints{
			RouteData:           route.RouteData,
			RouteTypePreference: route.Generation,
		},
	}
	quote, err := k.Quote(ctx, req)
	if err != nil {
		return err
	}
	if quote.NoRoute() {
		return sdkerrors.Wrapf(types.ErrNoRouteFound, "no route for %s to %s", route.SourceDenom, route.DestDenom)
	}

	if needsEncoding {
		route.RouteData = quote.RouteData
	}
	if route.FeeTierBps == 0 {
		route.FeeTierBps = quote.FeeTierBps
	}
	if !exec.ExpectedOutput.IsPositive() {
		exec.ExpectedOutput = quote.ExpectedOutput
	}
	return nil
}

// collectPayment moves the input amount into module custody. A native source
// requires the attached payment to equal the input amount exactly; any other
// source forbids attached payment and pulls funds through the allowance
// delegate instead.
func (k Keeper) collectPayment(ctx context.Context, sender sdk.AccAddress, route types.Route, amountIn math.Int, payment sdk.Coin, params types.Params) error {
	if route.SourceDenom == params.NativeDenom {
		if payment.IsNil() || payment.Denom != params.NativeDenom {
			return sdkerrors.Wrap(types.ErrInvalidPayment, "native source requires attached native payment")
		}
		if !payment.Amount.Equal(amountIn) {
			return sdkerrors.Wrapf(types.ErrInvalidPayment, "payment %s does not equal amount in %s", payment.Amount, amountIn)
		}
		coins := sdk.NewCoins(payment)
		if err := k.bankKeeper.SendCoinsFromAccountToModule(ctx, sender, types.ModuleName, coins); err != nil {
			return sdkerrors.Wrapf(types.ErrInvalidPayment, "collect native payment: %v", err)
		}
		return nil
	}

	if !payment.IsNil() && payment.Amount.IsPositive() {
		return sdkerrors.Wrapf(types.ErrInvalidPayment, "unexpected attached payment %s for non-native source", payment)
	}
	if err := k.allowance.TransferFrom(ctx, sender, k.ModuleAddress(), route.SourceDenom, amountIn); err != nil {
		return sdkerrors.Wrapf(types.ErrInvalidPayment, "pull %s via allowance: %v", route.SourceDenom, err)
	}
	return nil
}

// chainBaseFee reads the chain base fee when a fee market collaborator is
// wired, zero otherwise.
func (k Keeper) chainBaseFee(ctx context.Context) math.Int {
	if k.feeMarket == nil {
		return math.ZeroInt()
	}
	return k.feeMarket.BaseFee(ctx)
}

// enterSwap sets the per-call in-progress flag, rejecting nested entry.
func (k Keeper) enterSwap(ctx context.Context) error {
	store := k.getStore(ctx)
	if store.Has(types.ReentrancyKey) {
		k.metrics.ReentrancyBlocked.Inc()
		return sdkerrors.Wrap(types.ErrReentrancy, "swap already in progress")
	}
	store.Set(types.ReentrancyKey, []byte{0x01})
	return nil
}

// exitSwap clears the in-progress flag.
func (k Keeper) exitSwap(ctx context.Context) {
	store := k.getStore(ctx)
	store.Delete(types.ReentrancyKey)
}

// touchedDenoms lists every denom a swap can move through module custody.
func touchedDenoms(route types.Route, params types.Params) []string {
	seen := make(map[string]struct{}, 4)
	out := make([]string, 0, 4)
	for _, denom := range []string{route.SourceDenom, route.DestDenom, params.NativeDenom, params.WrappedDenom} {
		if _, dup := seen[denom]; dup {
			continue
		}
		seen[denom] = struct{}{}
		out = append(out, denom)
	}
	return out
}

// snapshotModuleBalances records the module's holdings for the given denoms.
func (k Keeper) snapshotModuleBalances(ctx context.Context, denoms []string) map[string]math.Int {
	held := make(map[string]math.Int, len(denoms))
	for _, denom := range denoms {
		held[denom] = k.bankKeeper.GetBalance(ctx, k.ModuleAddress(), denom).Amount
	}
	return held
}

// assertNoResidual verifies the module holds exactly what it held before the
// call for every touched denom. Custody is transient; anything left over
// means a settlement step leaked and the call must not commit.
func (k Keeper) assertNoResidual(ctx context.Context, denoms []string, held map[string]math.Int) error {
	for _, denom := range denoms {
		now := k.bankKeeper.GetBalance(ctx, k.ModuleAddress(), denom).Amount
		before, ok := held[denom]
		if !ok {
			before = math.ZeroInt()
		}
		if !now.Equal(before) {
			return sdkerrors.Wrapf(types.ErrSettlementFailed, "residual module balance %s%s after call (held %s before)", now.Sub(before), denom, before)
		}
	}
	return nil
}

// emitSwapExecuted emits the settlement event for one completed swap.
func (k Keeper) emitSwapExecuted(ctx context.Context, msg *types.MsgExecuteSwap, route types.Route, exec types.Execution, fee types.FeeProcessing, actual, minOut math.Int) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	event := sdk.NewEvent(
		types.EventTypeSwapExecuted,
		sdk.NewAttribute(types.AttributeKeySender, msg.Sender),
		sdk.NewAttribute(types.AttributeKeyRecipient, exec.Recipient),
		sdk.NewAttribute(types.AttributeKeySourceDenom, route.SourceDenom),
		sdk.NewAttribute(types.AttributeKeyDestDenom, route.DestDenom),
		sdk.NewAttribute(types.AttributeKeyGeneration, fmt.Sprintf("%d", route.Generation)),
		sdk.NewAttribute(types.AttributeKeyFeeTier, fmt.Sprintf("%d", route.FeeTierBps)),
		sdk.NewAttribute(types.AttributeKeyAmountIn, msg.AmountIn.String()),
		sdk.NewAttribute(types.AttributeKeyActualOutput, actual.String()),
		sdk.NewAttribute(types.AttributeKeyMinimumOutput, minOut.String()),
		sdk.NewAttribute(types.AttributeKeyPlatformFee, fee.PlatformFeeAmount.String()),
		sdk.NewAttribute(types.AttributeKeyReferralFee, fee.ReferralFeeAmount.String()),
		sdk.NewAttribute(types.AttributeKeyFeeOnOutput, fmt.Sprintf("%t", fee.FeeChargedOnOutput)),
		sdk.NewAttribute(types.AttributeKeySlippageBps, fmt.Sprintf("%d", exec.SlippageBps)),
	)
	if msg.Metadata.IntegratorID != "" {
		event = event.AppendAttributes(sdk.NewAttribute(types.AttributeKeyIntegrator, msg.Metadata.IntegratorID))
	}
	sdkCtx.EventManager().EmitEvent(event)
}
