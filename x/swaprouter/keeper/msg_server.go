package keeper

import (
	"context"
	"encoding/json"
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"
	govtypes "github.com/cosmos/cosmos-sdk/x/gov/types"

	"github.com/vortex-dex/vortex/x/swaprouter/types"
)

type msgServer struct {
	*Keeper
}

// NewMsgServerImpl returns an implementation of the swap router MsgServer interface
func NewMsgServerImpl(keeper *Keeper) types.MsgServer {
	return &msgServer{Keeper: keeper}
}

var _ types.MsgServer = msgServer{}

// ExecuteSwap handles a swap request. The request dispatches through the
// registry, so a cut that rebinds the execute tag takes effect on the very
// next call. All state changes land in a cache first; a swap that fails
// mid-way, fees half-charged or output half-settled, leaves no trace.
func (ms msgServer) ExecuteSwap(goCtx context.Context, msg *types.MsgExecuteSwap) (*types.MsgExecuteSwapResponse, error) {
	// Validate message
	if err := msg.ValidateBasic(); err != nil {
		return nil, fmt.Errorf("ExecuteSwap: validate: %w", err)
	}

	input, err := json.Marshal(msg)
	if err != nil {
		return nil, fmt.Errorf("ExecuteSwap: encode: %w", err)
	}

	ctx := sdk.UnwrapSDKContext(goCtx)
	cacheCtx, writeCache := ctx.CacheContext()

	out, err := ms.Dispatch(cacheCtx, types.OpTagExecute, input)
	if err != nil {
		return nil, fmt.Errorf("ExecuteSwap: %w", err)
	}

	var result types.SwapResult
	if err := json.Unmarshal(out, &result); err != nil {
		return nil, fmt.Errorf("ExecuteSwap: decode result: %w", err)
	}

	writeCache()

	return &types.MsgExecuteSwapResponse{
		ActualOutput: result.ActualOutput,
		Generation:   result.Generation,
	}, nil
}

// ApplyCuts handles a registry mutation batch
func (ms msgServer) ApplyCuts(goCtx context.Context, msg *types.MsgApplyCuts) (*types.MsgApplyCutsResponse, error) {
	// Validate message
	if err := msg.ValidateBasic(); err != nil {
		return nil, fmt.Errorf("ApplyCuts: validate: %w", err)
	}

	if err := ms.Keeper.ApplyCuts(goCtx, msg.Authority, msg.Cuts, msg.InitModule, msg.InitData); err != nil {
		return nil, fmt.Errorf("ApplyCuts: %w", err)
	}

	return &types.MsgApplyCutsResponse{}, nil
}

// SetFeeLedger handles a platform fee configuration change
func (ms msgServer) SetFeeLedger(goCtx context.Context, msg *types.MsgSetFeeLedger) (*types.MsgSetFeeLedgerResponse, error) {
	// Validate message
	if err := msg.ValidateBasic(); err != nil {
		return nil, fmt.Errorf("SetFeeLedger: validate: %w", err)
	}

	if err := ms.Keeper.SetFeeLedger(goCtx, msg.Authority, msg.Ledger); err != nil {
		return nil, fmt.Errorf("SetFeeLedger: %w", err)
	}

	return &types.MsgSetFeeLedgerResponse{}, nil
}

// UpdateParams handles parameter updates (governance only)
func (ms msgServer) UpdateParams(goCtx context.Context, msg *types.MsgUpdateParams) (*types.MsgUpdateParamsResponse, error) {
	ctx := sdk.UnwrapSDKContext(goCtx)

	// Validate authority
	if ms.authority != msg.Authority {
		return nil, govtypes.ErrInvalidSigner.Wrapf(
			"invalid authority; expected %s, got %s",
			ms.authority,
			msg.Authority,
		)
	}

	// Validate message
	if err := msg.ValidateBasic(); err != nil {
		return nil, fmt.Errorf("UpdateParams: validate: %w", err)
	}

	if err := ms.SetParams(goCtx, msg.Params); err != nil {
		return nil, fmt.Errorf("UpdateParams: %w", err)
	}

	// Emit event
	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeParamsUpdated,
			sdk.NewAttribute("native_denom", msg.Params.NativeDenom),
			sdk.NewAttribute("wrapped_denom", msg.Params.WrappedDenom),
			sdk.NewAttribute("min_swap_amount", msg.Params.MinSwapAmount.String()),
			sdk.NewAttribute("default_slippage_bps", fmt.Sprintf("%d", msg.Params.DefaultSlippage)),
			sdk.NewAttribute("max_slippage_bps", fmt.Sprintf("%d", msg.Params.MaxSlippage)),
		),
	)

	return &types.MsgUpdateParamsResponse{}, nil
}

// SweepResidual handles recovery of funds stranded in the module account
func (ms msgServer) SweepResidual(goCtx context.Context, msg *types.MsgSweepResidual) (*types.MsgSweepResidualResponse, error) {
	// Validate message
	if err := msg.ValidateBasic(); err != nil {
		return nil, fmt.Errorf("SweepResidual: validate: %w", err)
	}

	recipient, err := sdk.AccAddressFromBech32(msg.Recipient)
	if err != nil {
		return nil, fmt.Errorf("SweepResidual: invalid recipient address: %w", err)
	}

	amount, err := ms.Keeper.SweepResidual(goCtx, msg.Authority, msg.Denom, recipient)
	if err != nil {
		return nil, fmt.Errorf("SweepResidual: %w", err)
	}

	return &types.MsgSweepResidualResponse{
		Amount: amount,
	}, nil
}
