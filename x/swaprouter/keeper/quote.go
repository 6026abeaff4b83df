package keeper

import (
	"context"
	"fmt"

	"cosmossdk.io/math"

	"github.com/vortex-dex/vortex/x/swaprouter/types"
)

// legacyPairFeeBps is the fixed swap fee of generation-2 constant-product
// pairs.
const legacyPairFeeBps = 30

// Quote estimates the best route for the pair and amount across supported
// AMM generations. Selection takes the strictly greatest expected output;
// ties go to the lower generation, which is cheaper to execute. A venue
// that fails to answer is downgraded to unavailable, never propagated, so
// the only errors returned here are request validation failures. When no
// venue produces a positive estimate the generation-0 sentinel is returned
// and callers must treat it as no route.
//
// The native denom never trades on a venue directly. Both sides are
// canonicalized to the wrapped denom before any venue is consulted, and the
// resolved path is reported in venue denoms.
func (k Keeper) Quote(ctx context.Context, req types.QuoteRequest) (types.Quote, error) {
	if err := req.Validate(); err != nil {
		return types.NoRouteQuote(), err
	}

	params := k.GetParams(ctx)
	src := canonicalDenom(req.SourceDenom, params)
	dst := canonicalDenom(req.DestDenom, params)
	if src == dst {
		// Wrapping is not a swap. Nothing to quote once both sides
		// collapse onto the wrapped denom.
		k.Logger(ctx).Debug("quote degenerates to wrap", "source", req.SourceDenom, "dest", req.DestDenom)
		k.metrics.NoRouteTotal.Inc()
		return types.NoRouteQuote(), nil
	}

	type estimator struct {
		generation uint32
		estimate   func() (types.Quote, error)
	}
	estimators := []estimator{
		{types.GenerationConstantProduct, func() (types.Quote, error) {
			return k.estimateConstantProduct(ctx, src, dst, req.AmountIn)
		}},
		{types.GenerationConcentrated, func() (types.Quote, error) {
			return k.estimateConcentrated(ctx, src, dst, req.AmountIn, params.SupportedFeeTiers)
		}},
		{types.GenerationSingleton, func() (types.Quote, error) {
			return k.estimateSingleton(ctx, src, dst, req.AmountIn, req.Hints, params.SupportedFeeTiers)
		}},
	}

	best := types.NoRouteQuote()
	for _, e := range estimators {
		if pref := req.Hints.RouteTypePreference; pref != 0 && pref != e.generation {
			continue
		}

		candidate, err := k.tryEstimate(e.generation, e.estimate)
		if err != nil {
			k.Logger(ctx).Debug("generation unavailable",
				"generation", e.generation,
				"source", src,
				"dest", dst,
				"error", err,
			)
			k.metrics.QuoteFallback.WithLabelValues(generationLabel(e.generation)).Inc()
			continue
		}
		if candidate.ExpectedOutput.IsNil() || !candidate.ExpectedOutput.IsPositive() {
			continue
		}

		// Strict GT keeps the lower generation on ties.
		if best.NoRoute() || candidate.ExpectedOutput.GT(best.ExpectedOutput) {
			best = candidate
		}
	}

	if best.NoRoute() {
		k.metrics.NoRouteTotal.Inc()
		return types.NoRouteQuote(), nil
	}

	k.metrics.QuotesTotal.WithLabelValues(generationLabel(best.Generation)).Inc()
	return best, nil
}

// tryEstimate runs one venue estimator, converting panics into plain errors
// so a misbehaving venue degrades to unavailable instead of aborting the
// whole quote.
func (k Keeper) tryEstimate(generation uint32, fn func() (types.Quote, error)) (q types.Quote, err error) {
	defer func() {
		if r := recover(); r != nil {
			q = types.NoRouteQuote()
			err = fmt.Errorf("generation %d estimator panic: %v", generation, r)
		}
	}()
	return fn()
}

// estimateConstantProduct prices the direct generation-2 pair.
func (k Keeper) estimateConstantProduct(ctx context.Context, src, dst string, amountIn math.Int) (types.Quote, error) {
	reserveIn, reserveOut, err := k.legacyAMM.PairReserves(ctx, src, dst)
	if err != nil {
		return types.NoRouteQuote(), fmt.Errorf("estimateConstantProduct: reserves: %w", err)
	}
	if reserveIn.IsNil() || reserveOut.IsNil() || !reserveIn.IsPositive() || !reserveOut.IsPositive() {
		return types.NoRouteQuote(), fmt.Errorf("estimateConstantProduct: pair %s/%s has no liquidity", src, dst)
	}

	out, err := constantProductOut(amountIn, reserveIn, reserveOut)
	if err != nil {
		return types.NoRouteQuote(), fmt.Errorf("estimateConstantProduct: %w", err)
	}

	return types.Quote{
		ExpectedOutput: out,
		Liquidity:      reserveOut,
		FeeTierBps:     legacyPairFeeBps,
		Generation:     types.GenerationConstantProduct,
		ResolvedPath:   []string{src, dst},
	}, nil
}

// constantProductOut applies the x*y=k output formula with the fixed pair
// fee taken from the input side.
func constantProductOut(amountIn, reserveIn, reserveOut math.Int) (math.Int, error) {
	amountInWithFee, err := SafeMul(amountIn, math.NewInt(types.BpsDenominator-legacyPairFeeBps))
	if err != nil {
		return math.Int{}, err
	}
	numerator, err := SafeMul(amountInWithFee, reserveOut)
	if err != nil {
		return math.Int{}, err
	}
	scaledReserveIn, err := SafeMul(reserveIn, math.NewInt(types.BpsDenominator))
	if err != nil {
		return math.Int{}, err
	}
	denominator, err := SafeAdd(scaledReserveIn, amountInWithFee)
	if err != nil {
		return math.Int{}, err
	}
	return SafeQuo(numerator, denominator)
}

// estimateConcentrated sweeps the supported fee tiers and keeps the tier
// with the greatest output. A tier that fails to answer is skipped; the
// generation is unavailable only when every tier fails.
func (k Keeper) estimateConcentrated(ctx context.Context, src, dst string, amountIn math.Int, tiers []uint32) (types.Quote, error) {
	best := types.NoRouteQuote()
	var lastErr error
	answered := false

	for _, tier := range tiers {
		out, liquidity, err := k.concentrated.QuoteExactIn(ctx, src, dst, tier, amountIn)
		if err != nil {
			lastErr = err
			continue
		}
		answered = true
		if out.IsNil() || !out.IsPositive() {
			continue
		}
		if best.NoRoute() || out.GT(best.ExpectedOutput) {
			best = types.Quote{
				ExpectedOutput: out,
				Liquidity:      liquidity,
				FeeTierBps:     tier,
				Generation:     types.GenerationConcentrated,
				ResolvedPath:   []string{src, dst},
			}
		}
	}

	if !answered && lastErr != nil {
		return types.NoRouteQuote(), fmt.Errorf("estimateConcentrated: all tiers failed: %w", lastErr)
	}
	return best, nil
}

// estimateSingleton prices the generation-4 route. With explicit route data
// in the hints the encoded hop list is walked in order; otherwise the
// hookless single-hop pools across supported fee tiers are tried and the
// best kept.
func (k Keeper) estimateSingleton(ctx context.Context, src, dst string, amountIn math.Int, hints types.RoutingHints, tiers []uint32) (types.Quote, error) {
	if len(hints.RouteData) > 0 {
		hops, err := types.DecodeRouteData(hints.RouteData)
		if err != nil {
			return types.NoRouteQuote(), fmt.Errorf("estimateSingleton: %w", err)
		}
		return k.estimateSingletonHops(ctx, src, dst, amountIn, hops)
	}

	best := types.NoRouteQuote()
	var lastErr error
	answered := false

	for _, tier := range tiers {
		hops := []types.PoolHop{{Key: types.NewPoolKey(src, dst, tier, "")}}
		candidate, err := k.estimateSingletonHops(ctx, src, dst, amountIn, hops)
		if err != nil {
			lastErr = err
			continue
		}
		answered = true
		if candidate.NoRoute() {
			continue
		}
		if best.NoRoute() || candidate.ExpectedOutput.GT(best.ExpectedOutput) {
			best = candidate
		}
	}

	if !answered && lastErr != nil {
		return types.NoRouteQuote(), fmt.Errorf("estimateSingleton: all tiers failed: %w", lastErr)
	}
	return best, nil
}

// estimateSingletonHops walks an ordered hop list through the pool manager,
// feeding each hop's output into the next. The walk must start at src and
// end at dst. Liquidity reported is the thinnest pool on the path.
func (k Keeper) estimateSingletonHops(ctx context.Context, src, dst string, amountIn math.Int, hops []types.PoolHop) (types.Quote, error) {
	running := src
	amount := amountIn
	minLiquidity := math.Int{}
	path := make([]string, 0, len(hops)+1)
	path = append(path, src)

	for i, hop := range hops {
		next, ok := hop.Key.Other(running)
		if !ok {
			return types.NoRouteQuote(), fmt.Errorf("estimateSingletonHops: hop %d pool %s/%s does not contain %s", i, hop.Key.Token0, hop.Key.Token1, running)
		}

		out, liquidity, err := k.poolManager.QuotePool(ctx, hop.Key, running, amount)
		if err != nil {
			return types.NoRouteQuote(), fmt.Errorf("estimateSingletonHops: hop %d: %w", i, err)
		}
		if out.IsNil() || !out.IsPositive() {
			return types.NoRouteQuote(), nil
		}

		if minLiquidity.IsNil() || liquidity.LT(minLiquidity) {
			minLiquidity = liquidity
		}
		amount = out
		running = next
		path = append(path, next)
	}

	if running != dst {
		return types.NoRouteQuote(), fmt.Errorf("estimateSingletonHops: path ends at %s, want %s", running, dst)
	}

	routeData, err := types.EncodeRouteData(hops)
	if err != nil {
		return types.NoRouteQuote(), fmt.Errorf("estimateSingletonHops: %w", err)
	}

	return types.Quote{
		ExpectedOutput: amount,
		Liquidity:      minLiquidity,
		FeeTierBps:     hops[0].Key.FeeBps,
		Generation:     types.GenerationSingleton,
		ResolvedPath:   path,
		RouteData:      routeData,
	}, nil
}

// canonicalDenom maps the native denom onto its wrapped form for venue
// reads. Every other denom passes through unchanged.
func canonicalDenom(denom string, params types.Params) string {
	if denom == params.NativeDenom {
		return params.WrappedDenom
	}
	return denom
}

// generationLabel renders a generation number for metric labels.
func generationLabel(generation uint32) string {
	return fmt.Sprintf("%d", generation)
}
