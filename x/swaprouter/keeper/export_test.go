package keeper

import (
	"context"

	"cosmossdk.io/math"

	"github.com/vortex-dex/vortex/x/swaprouter/types"
)

// ConstantProductOutForTest exposes the pair pricing formula for white-box tests.
func ConstantProductOutForTest(amountIn, reserveIn, reserveOut math.Int) (math.Int, error) {
	return constantProductOut(amountIn, reserveIn, reserveOut)
}

// MinimumOutputForTest exposes the slippage floor computation for white-box tests.
func MinimumOutputForTest(expectedOutput math.Int, slippageBps uint32) (math.Int, error) {
	return minimumOutput(expectedOutput, slippageBps)
}

// TieredGasBaselineForTest exposes the fallback gas baseline bands for white-box tests.
func TieredGasBaselineForTest(callerGasPrice math.Int) math.Int {
	return tieredGasBaseline(callerGasPrice)
}

// MarkExecutionInProgressForTest sets the in-progress execution flag so invariant tests can observe leaked transient state.
func MarkExecutionInProgressForTest(k *Keeper, ctx context.Context) {
	k.getStore(ctx).Set(types.ReentrancyKey, []byte{1})
}

// SetSettlementPhaseForTest forces the settlement phase so invariant tests can observe leaked transient state.
func SetSettlementPhaseForTest(k *Keeper, ctx context.Context, phase types.SettlementPhase) {
	k.setSettlementPhase(ctx, phase)
}

// BindTagForTest writes a raw tag binding without the registry's tag-set bookkeeping so consistency tests can seed corrupt state.
func BindTagForTest(k *Keeper, ctx context.Context, tag types.OpTag, moduleAddr string) {
	k.setBinding(ctx, tag, moduleAddr)
}

// SetModuleTagsForTest overwrites a module's owned tag set without touching bindings so consistency tests can seed corrupt state.
func SetModuleTagsForTest(k *Keeper, ctx context.Context, moduleAddr string, tags []types.OpTag) error {
	return k.setModuleTags(ctx, moduleAddr, tags)
}
