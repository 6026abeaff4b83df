package keeper

import (
	"fmt"

	storetypes "cosmossdk.io/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/vortex-dex/vortex/x/swaprouter/types"
)

// RegisterInvariants registers all swap router module invariants
func RegisterInvariants(ir sdk.InvariantRegistry, k Keeper) {
	ir.RegisterRoute(types.ModuleName, "module-balance",
		ModuleBalanceInvariant(k))
	ir.RegisterRoute(types.ModuleName, "registry-consistency",
		RegistryConsistencyInvariant(k))
	ir.RegisterRoute(types.ModuleName, "transient-state",
		TransientStateInvariant(k))
}

// AllInvariants runs all invariants of the swap router module
func AllInvariants(k Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		res, stop := ModuleBalanceInvariant(k)(ctx)
		if stop {
			return res, stop
		}
		res, stop = RegistryConsistencyInvariant(k)(ctx)
		if stop {
			return res, stop
		}
		return TransientStateInvariant(k)(ctx)
	}
}

// ModuleBalanceInvariant checks that the module account holds no funds between
// calls. Custody is transient within a single swap; anything left over was
// stranded by a broken settlement path.
func ModuleBalanceInvariant(k Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		var (
			broken bool
			msg    string
		)

		balances := k.bankKeeper.SpendableCoins(ctx, k.ModuleAddress())
		if !balances.IsZero() {
			broken = true
			msg = fmt.Sprintf(
				"module account holds residual funds\n"+
					"\taddress: %s\n"+
					"\tbalance: %s",
				k.ModuleAddress(), balances,
			)
		}

		return sdk.FormatInvariant(
			types.ModuleName, "module-balance",
			msg,
		), broken
	}
}

// RegistryConsistencyInvariant checks that tag bindings and per-module tag
// sets agree in both directions: every bound tag appears in its module's tag
// set, and every tag in a module's set binds back to that module.
func RegistryConsistencyInvariant(k Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		var (
			msg   string
			count int
		)

		store := k.getStore(ctx)
		iterator := storetypes.KVStorePrefixIterator(store, types.TagBindingKey)
		defer iterator.Close()

		for ; iterator.Valid(); iterator.Next() {
			var tag types.OpTag
			copy(tag[:], iterator.Key()[len(types.TagBindingKey):])
			moduleAddr := string(iterator.Value())

			tags, err := k.getModuleTags(ctx, moduleAddr)
			if err != nil {
				count++
				msg += fmt.Sprintf("tag %s: corrupt tag set for module %s: %v\n", tag, moduleAddr, err)
				continue
			}
			found := false
			for _, t := range tags {
				if t == tag {
					found = true
					break
				}
			}
			if !found {
				count++
				msg += fmt.Sprintf("tag %s bound to %s but missing from its tag set\n", tag, moduleAddr)
			}
		}

		for _, info := range k.ListModules(ctx) {
			for _, tag := range info.Tags {
				bound, ok := k.ModuleOf(ctx, tag)
				if !ok {
					count++
					msg += fmt.Sprintf("module %s lists tag %s but the tag is unbound\n", info.ModuleAddress, tag)
					continue
				}
				if bound != info.ModuleAddress {
					count++
					msg += fmt.Sprintf("module %s lists tag %s but the tag is bound to %s\n", info.ModuleAddress, tag, bound)
				}
			}
		}

		broken := count != 0
		return sdk.FormatInvariant(
			types.ModuleName, "registry-consistency",
			fmt.Sprintf("found %d registry inconsistencies\n%s", count, msg),
		), broken
	}
}

// TransientStateInvariant checks that the in-progress execution flag and the
// settlement phase are both clear. Both live only inside a single call; seeing
// either persisted means an execution path exited without its deferred
// cleanup.
func TransientStateInvariant(k Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		var (
			broken bool
			msg    string
		)

		store := k.getStore(ctx)
		if store.Has(types.ReentrancyKey) {
			broken = true
			msg += "in-progress execution flag persisted past the call\n"
		}
		if phase := k.settlementPhase(ctx); phase != types.SettlementReleased {
			broken = true
			msg += fmt.Sprintf("settlement phase persisted as %s\n", phase)
		}

		return sdk.FormatInvariant(
			types.ModuleName, "transient-state",
			msg,
		), broken
	}
}
