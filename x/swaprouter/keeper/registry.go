package keeper

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"

	sdkerrors "cosmossdk.io/errors"
	storetypes "cosmossdk.io/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/vortex-dex/vortex/x/swaprouter/types"
)

// ApplyCuts applies a batch of registry mutations atomically. Every cut is
// validated against the store as the batch runs inside a cache context; any
// invalid cut, or a failing init call, discards the whole batch. Only the
// module authority may mutate the registry.
func (k Keeper) ApplyCuts(ctx context.Context, authority string, cuts []types.Cut, initModule string, initData []byte) error {
	if authority != k.authority {
		return sdkerrors.Wrapf(types.ErrNotOwner, "got %s, want %s", authority, k.authority)
	}

	sdkCtx := sdk.UnwrapSDKContext(ctx)
	cacheCtx, writeCache := sdkCtx.CacheContext()

	for i, cut := range cuts {
		if err := cut.Validate(); err != nil {
			return sdkerrors.Wrapf(types.ErrInvalidCut, "cut %d: %v", i, err)
		}
		if err := k.applyCut(cacheCtx, cut); err != nil {
			return sdkerrors.Wrapf(err, "cut %d", i)
		}
	}

	if initModule != "" {
		h, ok := k.handler(initModule)
		if !ok {
			return sdkerrors.Wrapf(types.ErrInvalidCut, "init module %s has no registered handler", initModule)
		}
		if err := h.Init(cacheCtx, initData); err != nil {
			return sdkerrors.Wrapf(types.ErrInvalidCut, "init call on %s: %v", initModule, err)
		}
	}

	cacheCtx.EventManager().EmitEvent(sdk.NewEvent(
		types.EventTypeCutsApplied,
		sdk.NewAttribute(types.AttributeKeyCutCount, strconv.Itoa(len(cuts))),
		sdk.NewAttribute(types.AttributeKeyModule, initModule),
	))

	writeCache()

	k.metrics.CutsApplied.Add(float64(len(cuts)))
	k.Logger(ctx).Info("registry cuts applied", "cuts", len(cuts), "init_module", initModule)
	return nil
}

// applyCut applies one validated cut against the (cached) store, enforcing
// the binding-state rules for its action.
func (k Keeper) applyCut(ctx sdk.Context, cut types.Cut) error {
	bound, isBound := k.ModuleOf(ctx, cut.Tag)

	switch cut.Action {
	case types.CutActionAdd:
		if isBound {
			return sdkerrors.Wrapf(types.ErrInvalidCut, "add: tag %s already bound to %s", cut.Tag, bound)
		}
		if _, ok := k.handler(cut.ModuleAddress); !ok {
			return sdkerrors.Wrapf(types.ErrInvalidCut, "add: module %s has no registered handler", cut.ModuleAddress)
		}
		k.setBinding(ctx, cut.Tag, cut.ModuleAddress)
		if err := k.addModuleTag(ctx, cut.ModuleAddress, cut.Tag); err != nil {
			return err
		}
		ctx.EventManager().EmitEvent(sdk.NewEvent(
			types.EventTypeModuleAdded,
			sdk.NewAttribute(types.AttributeKeyTag, cut.Tag.String()),
			sdk.NewAttribute(types.AttributeKeyModule, cut.ModuleAddress),
		))

	case types.CutActionReplace:
		if !isBound {
			return sdkerrors.Wrapf(types.ErrInvalidCut, "replace: tag %s is not bound", cut.Tag)
		}
		if bound == cut.ModuleAddress {
			return sdkerrors.Wrapf(types.ErrInvalidCut, "replace: tag %s already bound to %s", cut.Tag, cut.ModuleAddress)
		}
		if _, ok := k.handler(cut.ModuleAddress); !ok {
			return sdkerrors.Wrapf(types.ErrInvalidCut, "replace: module %s has no registered handler", cut.ModuleAddress)
		}
		if err := k.removeModuleTag(ctx, bound, cut.Tag); err != nil {
			return err
		}
		k.setBinding(ctx, cut.Tag, cut.ModuleAddress)
		if err := k.addModuleTag(ctx, cut.ModuleAddress, cut.Tag); err != nil {
			return err
		}
		ctx.EventManager().EmitEvent(sdk.NewEvent(
			types.EventTypeModuleReplaced,
			sdk.NewAttribute(types.AttributeKeyTag, cut.Tag.String()),
			sdk.NewAttribute(types.AttributeKeyModule, cut.ModuleAddress),
		))

	case types.CutActionRemove:
		if !isBound {
			return sdkerrors.Wrapf(types.ErrInvalidCut, "remove: tag %s is not bound", cut.Tag)
		}
		if err := k.removeModuleTag(ctx, bound, cut.Tag); err != nil {
			return err
		}
		k.deleteBinding(ctx, cut.Tag)
		ctx.EventManager().EmitEvent(sdk.NewEvent(
			types.EventTypeModuleRemoved,
			sdk.NewAttribute(types.AttributeKeyTag, cut.Tag.String()),
			sdk.NewAttribute(types.AttributeKeyModule, bound),
		))
	}

	return nil
}

// Dispatch resolves an operation tag to its bound module handler and invokes
// it. Every public entry point routes through this one resolve-then-invoke
// step, so resolution is atomic with any registry mutation in the same block.
func (k Keeper) Dispatch(ctx context.Context, tag types.OpTag, input []byte) ([]byte, error) {
	moduleAddr, ok := k.ModuleOf(ctx, tag)
	if !ok {
		return nil, sdkerrors.Wrapf(types.ErrNoSuchOperation, "tag %s", tag)
	}
	h, ok := k.handler(moduleAddr)
	if !ok {
		return nil, sdkerrors.Wrapf(types.ErrNoSuchOperation, "tag %s bound to %s, which has no registered handler", tag, moduleAddr)
	}
	return h.Run(ctx, tag, input)
}

// ModuleOf resolves a tag to its bound module address. A pure read; unbound
// tags return false, never an error.
func (k Keeper) ModuleOf(ctx context.Context, tag types.OpTag) (string, bool) {
	bz := k.getStore(ctx).Get(types.GetTagBindingKey(tag))
	if len(bz) == 0 {
		return "", false
	}
	return string(bz), true
}

// TagsOf returns the tags owned by a module, sorted. A pure read; unknown
// modules return an empty slice.
func (k Keeper) TagsOf(ctx context.Context, moduleAddr string) []types.OpTag {
	tags, err := k.getModuleTags(ctx, moduleAddr)
	if err != nil {
		k.Logger(ctx).Error("corrupt module tag set", "module", moduleAddr, "err", err)
		return nil
	}
	return tags
}

// ListModules returns every registered module with its tag set, ordered by
// module address for determinism.
func (k Keeper) ListModules(ctx context.Context) []types.ModuleInfo {
	store := k.getStore(ctx)
	iterator := storetypes.KVStorePrefixIterator(store, types.ModuleTagsKey)
	defer iterator.Close()

	var infos []types.ModuleInfo
	for ; iterator.Valid(); iterator.Next() {
		addr := string(iterator.Key()[len(types.ModuleTagsKey):])
		var tags []types.OpTag
		if err := json.Unmarshal(iterator.Value(), &tags); err != nil {
			k.Logger(ctx).Error("corrupt module tag set", "module", addr, "err", err)
			continue
		}
		infos = append(infos, types.ModuleInfo{ModuleAddress: addr, Tags: tags})
	}
	return infos
}

func (k Keeper) setBinding(ctx context.Context, tag types.OpTag, moduleAddr string) {
	k.getStore(ctx).Set(types.GetTagBindingKey(tag), []byte(moduleAddr))
}

func (k Keeper) deleteBinding(ctx context.Context, tag types.OpTag) {
	k.getStore(ctx).Delete(types.GetTagBindingKey(tag))
}

func (k Keeper) getModuleTags(ctx context.Context, moduleAddr string) ([]types.OpTag, error) {
	bz := k.getStore(ctx).Get(types.GetModuleTagsKey(moduleAddr))
	if bz == nil {
		return nil, nil
	}
	var tags []types.OpTag
	if err := json.Unmarshal(bz, &tags); err != nil {
		return nil, fmt.Errorf("getModuleTags: unmarshal %s: %w", moduleAddr, err)
	}
	return tags, nil
}

func (k Keeper) setModuleTags(ctx context.Context, moduleAddr string, tags []types.OpTag) error {
	store := k.getStore(ctx)
	if len(tags) == 0 {
		store.Delete(types.GetModuleTagsKey(moduleAddr))
		return nil
	}
	sort.Slice(tags, func(i, j int) bool { return tags[i].String() < tags[j].String() })
	bz, err := json.Marshal(tags)
	if err != nil {
		return fmt.Errorf("setModuleTags: marshal %s: %w", moduleAddr, err)
	}
	store.Set(types.GetModuleTagsKey(moduleAddr), bz)
	return nil
}

func (k Keeper) addModuleTag(ctx context.Context, moduleAddr string, tag types.OpTag) error {
	tags, err := k.getModuleTags(ctx, moduleAddr)
	if err != nil {
		return err
	}
	for _, t := range tags {
		if t == tag {
			return nil
		}
	}
	return k.setModuleTags(ctx, moduleAddr, append(tags, tag))
}

func (k Keeper) removeModuleTag(ctx context.Context, moduleAddr string, tag types.OpTag) error {
	tags, err := k.getModuleTags(ctx, moduleAddr)
	if err != nil {
		return err
	}
	kept := tags[:0]
	for _, t := range tags {
		if t != tag {
			kept = append(kept, t)
		}
	}
	return k.setModuleTags(ctx, moduleAddr, kept)
}
