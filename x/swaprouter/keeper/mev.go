package keeper

import (
	"time"

	"cosmossdk.io/math"

	"github.com/vortex-dex/vortex/x/swaprouter/types"
)

// MEV protection constants. These are intentionally not governable: a
// governance proposal that loosens them would itself be a front-running
// target.
const (
	// MEVDeadlineWindow is the forced validity window for protected swaps.
	// The caller's own deadline is replaced outright, so a protected swap
	// can never stay executable long enough to be worth queuing against.
	MEVDeadlineWindow = 2 * time.Minute

	// MEVMinSlippageBps and MEVMaxSlippageBps bound the tightened slippage
	// tolerance. The floor keeps tiny tolerances executable at all; the
	// ceiling caps how much room a sandwich has even when the caller asked
	// for more.
	MEVMinSlippageBps = uint32(10)
	MEVMaxSlippageBps = uint32(300)

	// baseFeePremiumBps sets the gas baseline at base fee + 30%.
	baseFeePremiumBps = 13_000

	// contestedThresholdBps flags gas prices above 150% of baseline.
	contestedThresholdBps = 15_000

	// contestedScaleBps shrinks slippage to 80% once contested gas is seen.
	contestedScaleBps = 8_000
)

// MEVGuard tightens execution bounds against front-running. It is a pure
// strategy over explicit gas readings, never ambient chain state, so its
// behavior is reproducible in tests. Heuristic and best effort: it reduces
// the value extractable from a sandwiched swap, it does not prevent one.
type MEVGuard struct{}

// NewMEVGuard returns the stateless guard.
func NewMEVGuard() MEVGuard {
	return MEVGuard{}
}

// Adjust tightens exec in place and reports whether anything changed.
//
// The deadline is forced to now plus MEVDeadlineWindow regardless of caller
// input. Slippage tolerance is halved and clamped to
// [MEVMinSlippageBps, MEVMaxSlippageBps], then scaled by a further 80% when
// the caller's gas price runs above 150% of the gas baseline. The baseline
// is the chain base fee plus a 30% premium when the chain exposes one, else
// a coarse tier read off the caller's own gas price.
func (g MEVGuard) Adjust(exec *types.Execution, gas types.GasContext, now time.Time) bool {
	adjusted := false

	deadline := now.Add(MEVDeadlineWindow).Unix()
	if exec.Deadline != deadline {
		exec.Deadline = deadline
		adjusted = true
	}

	slippage := exec.SlippageBps / 2
	if slippage < MEVMinSlippageBps {
		slippage = MEVMinSlippageBps
	}
	if slippage > MEVMaxSlippageBps {
		slippage = MEVMaxSlippageBps
	}

	if g.contested(gas) {
		slippage = slippage * contestedScaleBps / types.BpsDenominator
		if slippage < MEVMinSlippageBps {
			slippage = MEVMinSlippageBps
		}
	}

	if exec.SlippageBps != slippage {
		exec.SlippageBps = slippage
		adjusted = true
	}

	return adjusted
}

// contested reports whether the caller's gas price exceeds 150% of the
// baseline. Without any usable gas reading it reports false: no signal is
// treated as a quiet chain, not a contested one.
func (g MEVGuard) contested(gas types.GasContext) bool {
	if gas.CallerGasPrice.IsNil() || !gas.CallerGasPrice.IsPositive() {
		return false
	}

	baseline := g.baseline(gas)
	if baseline.IsNil() || !baseline.IsPositive() {
		return false
	}

	threshold := baseline.MulRaw(contestedThresholdBps).QuoRaw(types.BpsDenominator)
	return gas.CallerGasPrice.GT(threshold)
}

// baseline derives the reference gas price the caller is measured against.
func (g MEVGuard) baseline(gas types.GasContext) math.Int {
	if !gas.ChainBaseFee.IsNil() && gas.ChainBaseFee.IsPositive() {
		return gas.ChainBaseFee.MulRaw(baseFeePremiumBps).QuoRaw(types.BpsDenominator)
	}
	return tieredGasBaseline(gas.CallerGasPrice)
}

// tieredGasBaseline is the fallback baseline for chains without a base fee.
// Each band carries a nominal price; a caller paying well past the nominal
// level for its band reads as contested. The lowest band never trips, so
// quiet traffic is never tightened on gas grounds alone.
func tieredGasBaseline(callerGasPrice math.Int) math.Int {
	switch {
	case callerGasPrice.LTE(math.NewInt(100)):
		return math.NewInt(100)
	case callerGasPrice.LTE(math.NewInt(1_000)):
		return math.NewInt(500)
	case callerGasPrice.LTE(math.NewInt(10_000)):
		return math.NewInt(5_000)
	default:
		return math.NewInt(50_000)
	}
}
