package keeper

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/vortex-dex/vortex/x/swaprouter/types"
)

// GetParams returns the current module parameters, falling back to defaults
// when the store has none.
func (k Keeper) GetParams(ctx context.Context) types.Params {
	store := k.getStore(ctx)
	bz := store.Get(types.ParamsKey)
	if bz == nil {
		return types.DefaultParams()
	}

	var params types.Params
	// Use encoding/json for non-protobuf types
	if err := json.Unmarshal(bz, &params); err != nil {
		k.Logger(ctx).Error("corrupt params in store, using defaults", "error", err)
		return types.DefaultParams()
	}
	return params
}

// SetParams validates and persists the module parameters.
func (k Keeper) SetParams(ctx context.Context, params types.Params) error {
	if err := params.Validate(); err != nil {
		return fmt.Errorf("SetParams: validate: %w", err)
	}

	// Use encoding/json for non-protobuf types
	bz, err := json.Marshal(&params)
	if err != nil {
		return fmt.Errorf("SetParams: marshal: %w", err)
	}

	store := k.getStore(ctx)
	store.Set(types.ParamsKey, bz)
	return nil
}
