package keeper

import (
	"context"
	"encoding/json"
	"fmt"

	sdkerrors "cosmossdk.io/errors"
	errortypes "github.com/cosmos/cosmos-sdk/types/errors"

	"github.com/vortex-dex/vortex/x/swaprouter/types"
)

// swapHandler adapts the keeper into the registry's handler shape so the
// built-in quote and execute operations dispatch exactly like operations
// served by any other registered module.
type swapHandler struct {
	k *Keeper
}

var _ types.ModuleHandler = swapHandler{}

// Run serves one dispatched operation.
func (h swapHandler) Run(ctx context.Context, tag types.OpTag, input []byte) ([]byte, error) {
	switch tag {
	case types.OpTagQuote:
		return h.runQuote(ctx, input)
	case types.OpTagExecute:
		return h.runExecute(ctx, input)
	default:
		return nil, sdkerrors.Wrapf(types.ErrNoSuchOperation, "tag %s not served by the router", tag)
	}
}

// Init runs the router's own migration hook during a cut batch. Non-empty
// data carries a replacement parameter set; the batch is owner-gated, so
// applying it here keeps the parameter change atomic with the cuts.
func (h swapHandler) Init(ctx context.Context, data []byte) error {
	if len(data) == 0 {
		return nil
	}

	var params types.Params
	if err := json.Unmarshal(data, &params); err != nil {
		return sdkerrors.Wrapf(errortypes.ErrInvalidRequest, "malformed init params: %v", err)
	}
	if err := h.k.SetParams(ctx, params); err != nil {
		return fmt.Errorf("swapHandler.Init: %w", err)
	}
	return nil
}

func (h swapHandler) runQuote(ctx context.Context, input []byte) ([]byte, error) {
	var payload types.QuotePayload
	if err := json.Unmarshal(input, &payload); err != nil {
		return nil, sdkerrors.Wrapf(errortypes.ErrInvalidRequest, "malformed quote payload: %v", err)
	}
	req, err := payload.QuoteRequest()
	if err != nil {
		return nil, err
	}

	quote, err := h.k.Quote(ctx, req)
	if err != nil {
		return nil, err
	}

	bz, err := json.Marshal(quote)
	if err != nil {
		return nil, fmt.Errorf("runQuote: encode quote: %w", err)
	}
	return bz, nil
}

func (h swapHandler) runExecute(ctx context.Context, input []byte) ([]byte, error) {
	var msg types.MsgExecuteSwap
	if err := json.Unmarshal(input, &msg); err != nil {
		return nil, sdkerrors.Wrapf(errortypes.ErrInvalidRequest, "malformed execute payload: %v", err)
	}

	res, err := h.k.ExecuteSwap(ctx, &msg)
	if err != nil {
		return nil, err
	}

	bz, err := json.Marshal(res)
	if err != nil {
		return nil, fmt.Errorf("runExecute: encode result: %w", err)
	}
	return bz, nil
}
