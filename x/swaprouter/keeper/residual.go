package keeper

import (
	"context"

	sdkerrors "cosmossdk.io/errors"
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/vortex-dex/vortex/x/swaprouter/types"
)

// SweepResidual sends the module account's full balance of one denom to a
// recipient. Settled swaps leave the account empty, so whatever is here was
// stranded by a direct transfer or an external failure. Only the module
// authority may sweep.
func (k Keeper) SweepResidual(ctx context.Context, authority, denom string, recipient sdk.AccAddress) (math.Int, error) {
	if authority != k.authority {
		return math.ZeroInt(), sdkerrors.Wrapf(types.ErrNotOwner, "got %s, want %s", authority, k.authority)
	}
	if err := types.ValidateDenom(denom); err != nil {
		return math.ZeroInt(), sdkerrors.Wrap(types.ErrInvalidToken, err.Error())
	}

	balance := k.bankKeeper.GetBalance(ctx, k.ModuleAddress(), denom)
	if !balance.Amount.IsPositive() {
		return math.ZeroInt(), sdkerrors.Wrapf(types.ErrInsufficientAmount, "no %s balance to sweep", denom)
	}

	if err := k.bankKeeper.SendCoinsFromModuleToAccount(ctx, types.ModuleName, recipient, sdk.NewCoins(balance)); err != nil {
		return math.ZeroInt(), sdkerrors.Wrapf(types.ErrNativeTransferFailed, "sweep %s: %v", denom, err)
	}

	sdkCtx := sdk.UnwrapSDKContext(ctx)
	sdkCtx.EventManager().EmitEvent(sdk.NewEvent(
		types.EventTypeResidualSwept,
		sdk.NewAttribute(types.AttributeKeyDenom, denom),
		sdk.NewAttribute(types.AttributeKeyAmount, balance.Amount.String()),
		sdk.NewAttribute(types.AttributeKeyRecipient, recipient.String()),
	))
	k.Logger(ctx).Info("residual swept", "denom", denom, "amount", balance.Amount.String(), "recipient", recipient.String())

	return balance.Amount, nil
}
