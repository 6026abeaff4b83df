package keeper_test

import (
	"testing"

	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
	"github.com/stretchr/testify/require"

	keepertest "github.com/vortex-dex/vortex/testutil/keeper"
	"github.com/vortex-dex/vortex/x/swaprouter/keeper"
	"github.com/vortex-dex/vortex/x/swaprouter/types"
)

func TestQueryParams(t *testing.T) {
	k, _, ctx := keepertest.SwapRouterKeeper(t)
	qs := keeper.NewQueryServerImpl(k)

	resp, err := qs.Params(ctx, &types.QueryParamsRequest{})
	require.NoError(t, err)
	require.Equal(t, types.DefaultParams(), resp.Params)

	_, err = qs.Params(ctx, nil)
	require.ErrorIs(t, err, sdkerrors.ErrInvalidRequest)
}

func TestQueryFeeLedger(t *testing.T) {
	k, f, ctx := keepertest.SwapRouterKeeper(t)
	qs := keeper.NewQueryServerImpl(k)

	resp, err := qs.FeeLedger(ctx, &types.QueryFeeLedgerRequest{})
	require.NoError(t, err)
	require.False(t, resp.Ledger.Enabled())

	collector := keepertest.Addr("collector").String()
	require.NoError(t, k.SetFeeLedger(ctx, f.Authority, types.FeeLedger{
		FeeRecipient:   collector,
		PlatformFeeBps: 40,
	}))

	resp, err = qs.FeeLedger(ctx, &types.QueryFeeLedgerRequest{})
	require.NoError(t, err)
	require.True(t, resp.Ledger.Enabled())
	require.Equal(t, collector, resp.Ledger.FeeRecipient)

	_, err = qs.FeeLedger(ctx, nil)
	require.ErrorIs(t, err, sdkerrors.ErrInvalidRequest)
}

func TestQueryQuote(t *testing.T) {
	k, f, ctx := keepertest.SwapRouterKeeper(t)
	qs := keeper.NewQueryServerImpl(k)
	f.Venues.AddPairPool(t, ctx, denomWrapped, denomUSDC, deepReserve, deepReserve)

	resp, err := qs.Quote(ctx, &types.QueryQuoteRequest{
		Path:     []string{denomUSDC, denomWrapped},
		AmountIn: swapAmount,
	})
	require.NoError(t, err)
	require.Equal(t, types.GenerationConstantProduct, resp.Quote.Generation)
	require.Equal(t, "996006", resp.Quote.ExpectedOutput.String())

	// A preference with no venue comes back as the sentinel, not an error.
	resp, err = qs.Quote(ctx, &types.QueryQuoteRequest{
		Path:                []string{denomUSDC, denomWrapped},
		AmountIn:            swapAmount,
		RouteTypePreference: types.GenerationSingleton,
	})
	require.NoError(t, err)
	require.True(t, resp.Quote.NoRoute())

	_, err = qs.Quote(ctx, &types.QueryQuoteRequest{
		Path:     []string{denomUSDC},
		AmountIn: swapAmount,
	})
	require.ErrorIs(t, err, types.ErrInvalidRoute)

	_, err = qs.Quote(ctx, nil)
	require.ErrorIs(t, err, sdkerrors.ErrInvalidRequest)
}

func TestQueryQuoteThroughRegistry(t *testing.T) {
	k, f, ctx := keepertest.SwapRouterKeeper(t)
	qs := keeper.NewQueryServerImpl(k)

	// With the quote tag unbound the query has nowhere to dispatch.
	require.NoError(t, k.ApplyCuts(ctx, f.Authority, []types.Cut{
		{Tag: types.OpTagQuote, Action: types.CutActionRemove},
	}, "", nil))

	_, err := qs.Quote(ctx, &types.QueryQuoteRequest{
		Path:     []string{denomUSDC, denomWrapped},
		AmountIn: swapAmount,
	})
	require.ErrorIs(t, err, types.ErrNoSuchOperation)
}

func TestQueryModules(t *testing.T) {
	k, _, ctx := keepertest.SwapRouterKeeper(t)
	qs := keeper.NewQueryServerImpl(k)

	resp, err := qs.Modules(ctx, &types.QueryModulesRequest{})
	require.NoError(t, err)
	require.Len(t, resp.Modules, 1)
	require.Equal(t, types.RouterAddress().String(), resp.Modules[0].ModuleAddress)
	require.Len(t, resp.Modules[0].Tags, 2)

	_, err = qs.Modules(ctx, nil)
	require.ErrorIs(t, err, sdkerrors.ErrInvalidRequest)
}

func TestQueryModuleOf(t *testing.T) {
	k, _, ctx := keepertest.SwapRouterKeeper(t)
	qs := keeper.NewQueryServerImpl(k)

	resp, err := qs.ModuleOf(ctx, &types.QueryModuleOfRequest{Tag: types.OpTagQuote.String()})
	require.NoError(t, err)
	require.Equal(t, types.RouterAddress().String(), resp.ModuleAddress)

	// Unbound but well-formed: empty result, no error.
	resp, err = qs.ModuleOf(ctx, &types.QueryModuleOfRequest{Tag: "deadbeef"})
	require.NoError(t, err)
	require.Empty(t, resp.ModuleAddress)

	// Not hex at all.
	_, err = qs.ModuleOf(ctx, &types.QueryModuleOfRequest{Tag: "zzzz"})
	require.ErrorIs(t, err, sdkerrors.ErrInvalidRequest)

	_, err = qs.ModuleOf(ctx, nil)
	require.ErrorIs(t, err, sdkerrors.ErrInvalidRequest)
}

func TestQueryTagsOf(t *testing.T) {
	k, _, ctx := keepertest.SwapRouterKeeper(t)
	qs := keeper.NewQueryServerImpl(k)

	resp, err := qs.TagsOf(ctx, &types.QueryTagsOfRequest{ModuleAddress: types.RouterAddress().String()})
	require.NoError(t, err)
	require.ElementsMatch(t, []types.OpTag{types.OpTagQuote, types.OpTagExecute}, resp.Tags)

	resp, err = qs.TagsOf(ctx, &types.QueryTagsOfRequest{ModuleAddress: keepertest.Addr("stranger").String()})
	require.NoError(t, err)
	require.Empty(t, resp.Tags)

	_, err = qs.TagsOf(ctx, nil)
	require.ErrorIs(t, err, sdkerrors.ErrInvalidRequest)
}
