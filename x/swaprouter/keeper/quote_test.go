package keeper_test

import (
	"testing"

	"cosmossdk.io/math"
	"github.com/stretchr/testify/require"

	keepertest "github.com/vortex-dex/vortex/testutil/keeper"
	"github.com/vortex-dex/vortex/x/swaprouter/keeper"
	"github.com/vortex-dex/vortex/x/swaprouter/types"
)

func quoteReq(src, dst string, amountIn math.Int) types.QuoteRequest {
	return types.QuoteRequest{SourceDenom: src, DestDenom: dst, AmountIn: amountIn}
}

func TestQuoteDirectPair(t *testing.T) {
	k, f, ctx := keepertest.SwapRouterKeeper(t)
	f.Venues.AddPairPool(t, ctx, denomWrapped, denomUSDC, deepReserve, deepReserve)

	quote, err := k.Quote(ctx, quoteReq(denomWrapped, denomUSDC, swapAmount))
	require.NoError(t, err)
	require.False(t, quote.NoRoute())
	require.Equal(t, types.GenerationConstantProduct, quote.Generation)
	require.Equal(t, math.NewInt(996_006), quote.ExpectedOutput)
	require.Equal(t, uint32(30), quote.FeeTierBps)
	require.Equal(t, []string{denomWrapped, denomUSDC}, quote.ResolvedPath)
	require.Equal(t, deepReserve, quote.Liquidity)
}

func TestQuoteIsReadOnly(t *testing.T) {
	k, f, ctx := keepertest.SwapRouterKeeper(t)
	f.Venues.AddPairPool(t, ctx, denomWrapped, denomUSDC, deepReserve, deepReserve)

	before, err := k.ExportGenesis(ctx)
	require.NoError(t, err)

	// Quoting twice changes nothing: not the answer, not the store, not
	// the module account.
	first, err := k.Quote(ctx, quoteReq(denomWrapped, denomUSDC, swapAmount))
	require.NoError(t, err)
	second, err := k.Quote(ctx, quoteReq(denomWrapped, denomUSDC, swapAmount))
	require.NoError(t, err)
	require.Equal(t, first, second)

	after, err := k.ExportGenesis(ctx)
	require.NoError(t, err)
	require.Equal(t, before, after)

	require.True(t, f.Balance(ctx, types.RouterAddress(), denomUSDC).IsZero())
	msg, broken := keeper.AllInvariants(*k)(ctx)
	require.False(t, broken, msg)
}

func TestQuoteCanonicalizesNative(t *testing.T) {
	k, f, ctx := keepertest.SwapRouterKeeper(t)
	f.Venues.AddPairPool(t, ctx, denomWrapped, denomUSDC, deepReserve, deepReserve)

	// Venues only ever see the wrapped denom.
	quote, err := k.Quote(ctx, quoteReq(denomNative, denomUSDC, swapAmount))
	require.NoError(t, err)
	require.Equal(t, types.GenerationConstantProduct, quote.Generation)
	require.Equal(t, []string{denomWrapped, denomUSDC}, quote.ResolvedPath)
	require.Equal(t, math.NewInt(996_006), quote.ExpectedOutput)

	quote, err = k.Quote(ctx, quoteReq(denomUSDC, denomNative, swapAmount))
	require.NoError(t, err)
	require.Equal(t, []string{denomUSDC, denomWrapped}, quote.ResolvedPath)
}

func TestQuoteWrapIsNotASwap(t *testing.T) {
	k, f, ctx := keepertest.SwapRouterKeeper(t)
	f.Venues.AddPairPool(t, ctx, denomWrapped, denomUSDC, deepReserve, deepReserve)

	// Native<->wrapped collapses to the same venue denom. That is a wrap
	// conversion, not a swap, so no route is reported and no error raised.
	for _, pair := range [][2]string{
		{denomNative, denomWrapped},
		{denomWrapped, denomNative},
	} {
		quote, err := k.Quote(ctx, quoteReq(pair[0], pair[1], swapAmount))
		require.NoError(t, err)
		require.True(t, quote.NoRoute())
		require.Equal(t, types.GenerationNone, quote.Generation)
	}
}

func TestQuoteNoVenue(t *testing.T) {
	k, _, ctx := keepertest.SwapRouterKeeper(t)

	quote, err := k.Quote(ctx, quoteReq(denomUSDC, denomOSMO, swapAmount))
	require.NoError(t, err)
	require.True(t, quote.NoRoute())
	require.True(t, quote.ExpectedOutput.IsZero())
}

func TestQuoteTieKeepsLowerGeneration(t *testing.T) {
	k, f, ctx := keepertest.SwapRouterKeeper(t)
	f.Venues.AddPairPool(t, ctx, denomWrapped, denomUSDC, deepReserve, deepReserve)
	f.Venues.AddTierPool(t, ctx, denomWrapped, denomUSDC, 30, deepReserve, deepReserve)

	// Identical reserves and fee produce identical outputs. The earlier
	// generation wins the tie.
	quote, err := k.Quote(ctx, quoteReq(denomWrapped, denomUSDC, swapAmount))
	require.NoError(t, err)
	require.Equal(t, types.GenerationConstantProduct, quote.Generation)
	require.Equal(t, math.NewInt(996_006), quote.ExpectedOutput)
}

func TestQuoteBestOutputWins(t *testing.T) {
	k, f, ctx := keepertest.SwapRouterKeeper(t)
	f.Venues.AddPairPool(t, ctx, denomWrapped, denomUSDC, deepReserve, deepReserve)
	f.Venues.AddTierPool(t, ctx, denomWrapped, denomUSDC, 5, deepReserve, deepReserve)

	// The 5 bps tier beats the 30 bps pair on the same reserves.
	quote, err := k.Quote(ctx, quoteReq(denomWrapped, denomUSDC, swapAmount))
	require.NoError(t, err)
	require.Equal(t, types.GenerationConcentrated, quote.Generation)
	require.Equal(t, uint32(5), quote.FeeTierBps)
	require.Equal(t, math.NewInt(998_501), quote.ExpectedOutput)
}

func TestQuoteSweepsFeeTiers(t *testing.T) {
	k, f, ctx := keepertest.SwapRouterKeeper(t)
	f.Venues.AddTierPool(t, ctx, denomWrapped, denomUSDC, 30, deepReserve, deepReserve)
	f.Venues.AddTierPool(t, ctx, denomWrapped, denomUSDC, 5, deepReserve, deepReserve)
	f.Venues.AddTierPool(t, ctx, denomWrapped, denomUSDC, 100, deepReserve, deepReserve)

	quote, err := k.Quote(ctx, quoteReq(denomWrapped, denomUSDC, swapAmount))
	require.NoError(t, err)
	require.Equal(t, types.GenerationConcentrated, quote.Generation)
	require.Equal(t, uint32(5), quote.FeeTierBps)
	require.Equal(t, math.NewInt(998_501), quote.ExpectedOutput)
}

func TestQuoteGenerationPreference(t *testing.T) {
	k, f, ctx := keepertest.SwapRouterKeeper(t)
	f.Venues.AddPairPool(t, ctx, denomWrapped, denomUSDC, deepReserve, deepReserve)
	f.Venues.AddTierPool(t, ctx, denomWrapped, denomUSDC, 5, deepReserve, deepReserve)

	req := quoteReq(denomWrapped, denomUSDC, swapAmount)
	req.Hints.RouteTypePreference = types.GenerationConstantProduct

	// A pinned generation overrides the richer alternative.
	quote, err := k.Quote(ctx, req)
	require.NoError(t, err)
	require.Equal(t, types.GenerationConstantProduct, quote.Generation)
	require.Equal(t, math.NewInt(996_006), quote.ExpectedOutput)

	req.Hints.RouteTypePreference = types.GenerationConcentrated
	quote, err = k.Quote(ctx, req)
	require.NoError(t, err)
	require.Equal(t, types.GenerationConcentrated, quote.Generation)

	// Preferring a generation with no liquidity yields the sentinel.
	req.Hints.RouteTypePreference = types.GenerationSingleton
	quote, err = k.Quote(ctx, req)
	require.NoError(t, err)
	require.True(t, quote.NoRoute())
}

func TestQuoteSurvivesVenueFault(t *testing.T) {
	k, f, ctx := keepertest.SwapRouterKeeper(t)
	f.Venues.AddPairPool(t, ctx, denomWrapped, denomUSDC, deepReserve, deepReserve)
	f.Venues.AddTierPool(t, ctx, denomWrapped, denomUSDC, 5, deepReserve, deepReserve)

	// A panicking venue degrades its generation instead of killing the quote.
	f.Venues.PanicQuote[types.GenerationConcentrated] = true
	quote, err := k.Quote(ctx, quoteReq(denomWrapped, denomUSDC, swapAmount))
	require.NoError(t, err)
	require.Equal(t, types.GenerationConstantProduct, quote.Generation)
	require.Equal(t, math.NewInt(996_006), quote.ExpectedOutput)

	// All venues down degrades to the sentinel.
	f.Venues.PanicQuote[types.GenerationConstantProduct] = true
	quote, err = k.Quote(ctx, quoteReq(denomWrapped, denomUSDC, swapAmount))
	require.NoError(t, err)
	require.True(t, quote.NoRoute())
}

func TestQuoteSingletonDirect(t *testing.T) {
	k, f, ctx := keepertest.SwapRouterKeeper(t)
	key := types.NewPoolKey(denomWrapped, denomUSDC, 30, "")
	f.Venues.AddSingletonPool(t, ctx, key, deepReserve, deepReserve)

	quote, err := k.Quote(ctx, quoteReq(denomUSDC, denomWrapped, swapAmount))
	require.NoError(t, err)
	require.Equal(t, types.GenerationSingleton, quote.Generation)
	require.Equal(t, math.NewInt(996_006), quote.ExpectedOutput)
	require.Equal(t, uint32(30), quote.FeeTierBps)

	// The quote carries the executable hop encoding.
	hops, err := types.DecodeRouteData(quote.RouteData)
	require.NoError(t, err)
	require.Len(t, hops, 1)
	require.Equal(t, key, hops[0].Key)
}

func TestQuoteSingletonHintedPath(t *testing.T) {
	k, f, ctx := keepertest.SwapRouterKeeper(t)
	thinReserve := math.NewInt(500_000_000)
	first := types.NewPoolKey(denomUSDC, denomWrapped, 30, "")
	second := types.NewPoolKey(denomWrapped, denomOSMO, 30, "")
	f.Venues.AddSingletonPool(t, ctx, first, deepReserve, deepReserve)
	f.Venues.AddSingletonPool(t, ctx, second, thinReserve, thinReserve)

	hops := []types.PoolHop{{Key: first}, {Key: second}}
	data, err := types.EncodeRouteData(hops)
	require.NoError(t, err)

	req := quoteReq(denomUSDC, denomOSMO, swapAmount)
	req.Hints.RouteData = data

	quote, err := k.Quote(ctx, req)
	require.NoError(t, err)
	require.Equal(t, types.GenerationSingleton, quote.Generation)
	require.Equal(t, []string{denomUSDC, denomWrapped, denomOSMO}, quote.ResolvedPath)
	require.Equal(t, uint32(30), quote.FeeTierBps)

	// Reported liquidity is the thinnest hop.
	require.Equal(t, thinReserve, quote.Liquidity)

	h1, err := keeper.ConstantProductOutForTest(swapAmount, deepReserve, deepReserve)
	require.NoError(t, err)
	h2, err := keeper.ConstantProductOutForTest(h1, thinReserve, thinReserve)
	require.NoError(t, err)
	require.Equal(t, h2, quote.ExpectedOutput)
}

func TestQuoteSingletonHintMismatch(t *testing.T) {
	k, f, ctx := keepertest.SwapRouterKeeper(t)
	first := types.NewPoolKey(denomUSDC, denomWrapped, 30, "")
	f.Venues.AddSingletonPool(t, ctx, first, deepReserve, deepReserve)

	// Hinted path ends at the wrong token, so the generation drops out.
	data, err := types.EncodeRouteData([]types.PoolHop{{Key: first}})
	require.NoError(t, err)
	req := quoteReq(denomUSDC, denomOSMO, swapAmount)
	req.Hints.RouteData = data

	quote, err := k.Quote(ctx, req)
	require.NoError(t, err)
	require.True(t, quote.NoRoute())
}

func TestQuoteMalformedHint(t *testing.T) {
	k, f, ctx := keepertest.SwapRouterKeeper(t)
	f.Venues.AddSingletonPool(t, ctx, types.NewPoolKey(denomUSDC, denomWrapped, 30, ""), deepReserve, deepReserve)

	req := quoteReq(denomUSDC, denomWrapped, swapAmount)
	req.Hints.RouteData = []byte("not-a-route")
	req.Hints.RouteTypePreference = types.GenerationSingleton

	quote, err := k.Quote(ctx, req)
	require.NoError(t, err)
	require.True(t, quote.NoRoute())
}

func TestQuoteRejectsBadRequests(t *testing.T) {
	k, _, ctx := keepertest.SwapRouterKeeper(t)

	cases := []struct {
		name    string
		req     types.QuoteRequest
		wantErr error
	}{
		{
			name:    "same token",
			req:     quoteReq(denomUSDC, denomUSDC, swapAmount),
			wantErr: types.ErrInvalidToken,
		},
		{
			name:    "zero amount",
			req:     quoteReq(denomUSDC, denomOSMO, math.ZeroInt()),
			wantErr: types.ErrInvalidAmount,
		},
		{
			name:    "negative amount",
			req:     quoteReq(denomUSDC, denomOSMO, math.NewInt(-5)),
			wantErr: types.ErrInvalidAmount,
		},
		{
			name: "unknown generation preference",
			req: types.QuoteRequest{
				SourceDenom: denomUSDC,
				DestDenom:   denomOSMO,
				AmountIn:    swapAmount,
				Hints:       types.RoutingHints{RouteTypePreference: 7},
			},
			wantErr: types.ErrInvalidGeneration,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := k.Quote(ctx, tc.req)
			require.ErrorIs(t, err, tc.wantErr)
		})
	}
}
