package keeper

import (
	"context"
	"encoding/json"
	"fmt"

	sdkerrors "cosmossdk.io/errors"
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/vortex-dex/vortex/x/swaprouter/types"
)

// GetFeeLedger returns the process-wide fee configuration. Every fee read in
// the module goes through this accessor. An unset ledger means platform fees
// are disabled.
func (k Keeper) GetFeeLedger(ctx context.Context) types.FeeLedger {
	store := k.getStore(ctx)
	bz := store.Get(types.FeeLedgerKey)
	if bz == nil {
		return types.DefaultFeeLedger()
	}

	var ledger types.FeeLedger
	// Use encoding/json for non-protobuf types
	if err := json.Unmarshal(bz, &ledger); err != nil {
		k.Logger(ctx).Error("corrupt fee ledger in store, fees disabled", "error", err)
		return types.DefaultFeeLedger()
	}
	return ledger
}

// SetFeeLedger replaces the fee configuration. Owner-gated: only the module
// authority may mutate it.
func (k Keeper) SetFeeLedger(ctx context.Context, authority string, ledger types.FeeLedger) error {
	if authority != k.authority {
		return sdkerrors.Wrapf(types.ErrNotOwner, "got %s, want %s", authority, k.authority)
	}
	if err := ledger.Validate(); err != nil {
		return err
	}
	if err := k.setFeeLedger(ctx, ledger); err != nil {
		return err
	}

	sdkCtx := sdk.UnwrapSDKContext(ctx)
	sdkCtx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeFeeLedgerSet,
			sdk.NewAttribute(types.AttributeKeyFeeRecipient, ledger.FeeRecipient),
			sdk.NewAttribute(types.AttributeKeyPlatformFee, fmt.Sprintf("%d", ledger.PlatformFeeBps)),
		),
	)
	return nil
}

// setFeeLedger persists a ledger that has already been validated.
func (k Keeper) setFeeLedger(ctx context.Context, ledger types.FeeLedger) error {
	// Use encoding/json for non-protobuf types
	bz, err := json.Marshal(&ledger)
	if err != nil {
		return fmt.Errorf("setFeeLedger: marshal: %w", err)
	}
	k.getStore(ctx).Set(types.FeeLedgerKey, bz)
	return nil
}

// applySlippageDefaults fills in the default tolerance and enforces the hard
// ceiling, both taken from module params.
func applySlippageDefaults(exec *types.Execution, params types.Params) error {
	if exec.SlippageBps == 0 {
		exec.SlippageBps = params.DefaultSlippage
	}
	if exec.SlippageBps > params.MaxSlippage {
		return sdkerrors.Wrapf(types.ErrInvalidAmount, "slippage %d bps exceeds maximum %d", exec.SlippageBps, params.MaxSlippage)
	}
	return nil
}

// minimumOutput computes floor(expectedOutput * (10000 - slippageBps) / 10000).
func minimumOutput(expectedOutput math.Int, slippageBps uint32) (math.Int, error) {
	keep := math.NewInt(int64(types.BpsDenominator - slippageBps))
	return SafeMulDiv(expectedOutput, keep, math.NewInt(types.BpsDenominator))
}

// feeChargedOnOutput reports the output-side fee mode: destination is the
// native currency and the source is not. In that mode the module does not
// hold the fee currency until the swap lands, so fees settle after execution.
func feeChargedOnOutput(route types.Route, params types.Params) bool {
	return route.DestDenom == params.NativeDenom && route.SourceDenom != params.NativeDenom
}

// processInputFees deducts platform and referral fees from the input amount
// and pays them out immediately in the input currency. The module account
// must already hold the full input amount. The platform fee comes off the
// gross amount, the referral fee off the post-platform remainder; both are
// floor divisions. A fee that would exceed the amount it is deducted from
// fails hard, it is never clamped.
func (k Keeper) processInputFees(ctx context.Context, denom string, exec *types.Execution, fee *types.FeeProcessing, ledger types.FeeLedger) error {
	if fee.FeeChargedOnOutput {
		return nil
	}

	if ledger.Enabled() {
		platformFee, err := BpsOf(exec.AmountIn, ledger.PlatformFeeBps)
		if err != nil {
			return err
		}
		if platformFee.GT(exec.AmountIn) {
			return sdkerrors.Wrapf(types.ErrInsufficientAmount, "platform fee %s exceeds amount %s", platformFee, exec.AmountIn)
		}
		if platformFee.IsPositive() {
			if err := k.payFee(ctx, ledger.FeeRecipient, denom, platformFee); err != nil {
				return fmt.Errorf("processInputFees: platform fee: %w", err)
			}
			remaining, err := SafeSub(exec.AmountIn, platformFee)
			if err != nil {
				return err
			}
			exec.AmountIn = remaining
			fee.PlatformFeeAmount = platformFee
			k.emitFeeEvent(ctx, types.EventTypeFeesCharged, ledger.FeeRecipient, denom, platformFee)
			k.metrics.FeesCollected.WithLabelValues(denom, "input").Add(float64(platformFee.Int64()))
		}
	}

	if fee.ReferralFeeBps > 0 && fee.ReferralAccount != "" {
		referralFee, err := BpsOf(exec.AmountIn, fee.ReferralFeeBps)
		if err != nil {
			return err
		}
		if referralFee.GT(exec.AmountIn) {
			return sdkerrors.Wrapf(types.ErrInsufficientAmount, "referral fee %s exceeds amount %s", referralFee, exec.AmountIn)
		}
		if referralFee.IsPositive() {
			if err := k.payFee(ctx, fee.ReferralAccount, denom, referralFee); err != nil {
				return fmt.Errorf("processInputFees: referral fee: %w", err)
			}
			remaining, err := SafeSub(exec.AmountIn, referralFee)
			if err != nil {
				return err
			}
			exec.AmountIn = remaining
			fee.ReferralFeeAmount = referralFee
			k.emitFeeEvent(ctx, types.EventTypeReferralPaid, fee.ReferralAccount, denom, referralFee)
			k.metrics.ReferralsPaid.WithLabelValues(denom).Add(float64(referralFee.Int64()))
		}
	}

	if !exec.AmountIn.IsPositive() {
		return sdkerrors.Wrap(types.ErrInsufficientAmount, "nothing left to swap after fees")
	}
	return nil
}

// settleOutputFees deducts platform and referral fees from the actual output
// and forwards the remainder to the recipient, all in native currency held
// by the module. Returns the net amount paid to the recipient. Any transfer
// failure fails the whole call.
func (k Keeper) settleOutputFees(ctx context.Context, recipient sdk.AccAddress, nativeDenom string, actualOutput math.Int, fee *types.FeeProcessing, ledger types.FeeLedger) (math.Int, error) {
	remaining := actualOutput

	if ledger.Enabled() {
		platformFee, err := BpsOf(remaining, ledger.PlatformFeeBps)
		if err != nil {
			return math.Int{}, err
		}
		if platformFee.GT(remaining) {
			return math.Int{}, sdkerrors.Wrapf(types.ErrInsufficientAmount, "platform fee %s exceeds output %s", platformFee, remaining)
		}
		if platformFee.IsPositive() {
			if err := k.payFee(ctx, ledger.FeeRecipient, nativeDenom, platformFee); err != nil {
				return math.Int{}, sdkerrors.Wrapf(types.ErrNativeTransferFailed, "platform fee: %v", err)
			}
			remaining, err = SafeSub(remaining, platformFee)
			if err != nil {
				return math.Int{}, err
			}
			fee.PlatformFeeAmount = platformFee
			k.emitFeeEvent(ctx, types.EventTypeFeesCharged, ledger.FeeRecipient, nativeDenom, platformFee)
			k.metrics.FeesCollected.WithLabelValues(nativeDenom, "output").Add(float64(platformFee.Int64()))
		}
	}

	if fee.ReferralFeeBps > 0 && fee.ReferralAccount != "" {
		referralFee, err := BpsOf(remaining, fee.ReferralFeeBps)
		if err != nil {
			return math.Int{}, err
		}
		if referralFee.GT(remaining) {
			return math.Int{}, sdkerrors.Wrapf(types.ErrInsufficientAmount, "referral fee %s exceeds output %s", referralFee, remaining)
		}
		if referralFee.IsPositive() {
			if err := k.payFee(ctx, fee.ReferralAccount, nativeDenom, referralFee); err != nil {
				return math.Int{}, sdkerrors.Wrapf(types.ErrNativeTransferFailed, "referral fee: %v", err)
			}
			remaining, err = SafeSub(remaining, referralFee)
			if err != nil {
				return math.Int{}, err
			}
			fee.ReferralFeeAmount = referralFee
			k.emitFeeEvent(ctx, types.EventTypeReferralPaid, fee.ReferralAccount, nativeDenom, referralFee)
			k.metrics.ReferralsPaid.WithLabelValues(nativeDenom).Add(float64(referralFee.Int64()))
		}
	}

	if remaining.IsPositive() {
		coins := sdk.NewCoins(sdk.NewCoin(nativeDenom, remaining))
		if err := k.bankKeeper.SendCoinsFromModuleToAccount(ctx, types.ModuleName, recipient, coins); err != nil {
			return math.Int{}, sdkerrors.Wrapf(types.ErrNativeTransferFailed, "recipient payout: %v", err)
		}
	}
	return remaining, nil
}

// payFee sends one fee amount from the module account to a bech32 recipient.
func (k Keeper) payFee(ctx context.Context, recipient, denom string, amount math.Int) error {
	addr, err := sdk.AccAddressFromBech32(recipient)
	if err != nil {
		return sdkerrors.Wrapf(types.ErrInvalidAddress, "fee recipient %s: %v", recipient, err)
	}
	coins := sdk.NewCoins(sdk.NewCoin(denom, amount))
	return k.bankKeeper.SendCoinsFromModuleToAccount(ctx, types.ModuleName, addr, coins)
}

// emitFeeEvent emits one fee settlement event.
func (k Keeper) emitFeeEvent(ctx context.Context, eventType, recipient, denom string, amount math.Int) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	sdkCtx.EventManager().EmitEvent(
		sdk.NewEvent(
			eventType,
			sdk.NewAttribute(types.AttributeKeyFeeRecipient, recipient),
			sdk.NewAttribute(types.AttributeKeyDenom, denom),
			sdk.NewAttribute(types.AttributeKeyAmount, amount.String()),
		),
	)
}
