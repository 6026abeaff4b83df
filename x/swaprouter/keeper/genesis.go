package keeper

import (
	"context"
	"fmt"

	"github.com/vortex-dex/vortex/x/swaprouter/types"
)

// InitGenesis initializes the swap router module's state from a genesis state
func (k Keeper) InitGenesis(ctx context.Context, genState types.GenesisState) error {
	if err := genState.Validate(); err != nil {
		return fmt.Errorf("invalid genesis state: %w", err)
	}

	if err := k.SetParams(ctx, genState.Params); err != nil {
		return fmt.Errorf("failed to set params: %w", err)
	}
	if err := k.setFeeLedger(ctx, genState.FeeLedger); err != nil {
		return fmt.Errorf("failed to set fee ledger: %w", err)
	}

	for _, binding := range genState.Bindings {
		k.setBinding(ctx, binding.Tag, binding.ModuleAddress)
		if err := k.addModuleTag(ctx, binding.ModuleAddress, binding.Tag); err != nil {
			return fmt.Errorf("failed to index binding %s: %w", binding.Tag, err)
		}
		// Handlers register at wiring time, possibly after genesis runs.
		// An unresolved address only becomes an error when dispatched.
		if _, ok := k.handler(binding.ModuleAddress); !ok {
			k.Logger(ctx).Info("genesis binding has no registered handler yet",
				"tag", binding.Tag.String(),
				"module", binding.ModuleAddress,
			)
		}
	}

	return nil
}

// ExportGenesis exports the swap router module's state to a genesis state
func (k Keeper) ExportGenesis(ctx context.Context) (*types.GenesisState, error) {
	var bindings []types.ModuleBinding
	for _, info := range k.ListModules(ctx) {
		for _, tag := range info.Tags {
			bindings = append(bindings, types.ModuleBinding{
				Tag:           tag,
				ModuleAddress: info.ModuleAddress,
			})
		}
	}

	return &types.GenesisState{
		Params:    k.GetParams(ctx),
		FeeLedger: k.GetFeeLedger(ctx),
		Bindings:  bindings,
	}, nil
}
