package keeper

import (
	"context"
	"encoding/json"
	"fmt"

	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"

	"github.com/vortex-dex/vortex/x/swaprouter/types"
)

type queryServer struct {
	*Keeper
}

// NewQueryServerImpl returns an implementation of the swap router QueryServer interface
func NewQueryServerImpl(keeper *Keeper) types.QueryServer {
	return &queryServer{Keeper: keeper}
}

var _ types.QueryServer = queryServer{}

// Params returns the module parameters
func (qs queryServer) Params(goCtx context.Context, req *types.QueryParamsRequest) (*types.QueryParamsResponse, error) {
	if req == nil {
		return nil, sdkerrors.ErrInvalidRequest
	}

	return &types.QueryParamsResponse{
		Params: qs.GetParams(goCtx),
	}, nil
}

// FeeLedger returns the platform fee configuration
func (qs queryServer) FeeLedger(goCtx context.Context, req *types.QueryFeeLedgerRequest) (*types.QueryFeeLedgerResponse, error) {
	if req == nil {
		return nil, sdkerrors.ErrInvalidRequest
	}

	return &types.QueryFeeLedgerResponse{
		Ledger: qs.GetFeeLedger(goCtx),
	}, nil
}

// Quote returns the best-venue estimate for a pair. The request dispatches
// through the registry like any other operation, so a rebound quote tag
// answers here too.
func (qs queryServer) Quote(goCtx context.Context, req *types.QueryQuoteRequest) (*types.QueryQuoteResponse, error) {
	if req == nil {
		return nil, sdkerrors.ErrInvalidRequest
	}

	payload := types.QuotePayload{
		Path:                req.Path,
		AmountIn:            req.AmountIn,
		RouteData:           req.RouteData,
		RouteTypePreference: req.RouteTypePreference,
	}
	input, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("Quote: encode: %w", err)
	}

	out, err := qs.Dispatch(goCtx, types.OpTagQuote, input)
	if err != nil {
		return nil, fmt.Errorf("Quote: %w", err)
	}

	var quote types.Quote
	if err := json.Unmarshal(out, &quote); err != nil {
		return nil, fmt.Errorf("Quote: decode result: %w", err)
	}

	return &types.QueryQuoteResponse{
		Quote: quote,
	}, nil
}

// Modules returns every registered module with its tag set
func (qs queryServer) Modules(goCtx context.Context, req *types.QueryModulesRequest) (*types.QueryModulesResponse, error) {
	if req == nil {
		return nil, sdkerrors.ErrInvalidRequest
	}

	return &types.QueryModulesResponse{
		Modules: qs.ListModules(goCtx),
	}, nil
}

// ModuleOf resolves one operation tag to its bound module address
func (qs queryServer) ModuleOf(goCtx context.Context, req *types.QueryModuleOfRequest) (*types.QueryModuleOfResponse, error) {
	if req == nil {
		return nil, sdkerrors.ErrInvalidRequest
	}

	tag, err := types.OpTagFromHex(req.Tag)
	if err != nil {
		return nil, sdkerrors.ErrInvalidRequest.Wrapf("tag: %v", err)
	}

	moduleAddr, _ := qs.Keeper.ModuleOf(goCtx, tag)
	return &types.QueryModuleOfResponse{
		ModuleAddress: moduleAddr,
	}, nil
}

// TagsOf lists the tags owned by one module address
func (qs queryServer) TagsOf(goCtx context.Context, req *types.QueryTagsOfRequest) (*types.QueryTagsOfResponse, error) {
	if req == nil {
		return nil, sdkerrors.ErrInvalidRequest
	}

	return &types.QueryTagsOfResponse{
		Tags: qs.Keeper.TagsOf(goCtx, req.ModuleAddress),
	}, nil
}
