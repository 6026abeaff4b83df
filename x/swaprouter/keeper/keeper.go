package keeper

import (
	"context"

	"cosmossdk.io/log"
	storetypes "cosmossdk.io/store/types"
	"github.com/cosmos/cosmos-sdk/codec"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/vortex-dex/vortex/x/swaprouter/types"
)

// Keeper of the swap router store. Collaborator venues are fixed at
// construction and never change afterwards; the registry only swaps which
// in-process handler serves an operation tag.
type Keeper struct {
	storeKey  storetypes.StoreKey
	cdc       codec.BinaryCodec
	authority string

	bankKeeper    types.BankKeeper
	router        types.ExecutionRouter
	wrappedNative types.WrappedNative
	poolManager   types.PoolManager
	legacyAMM     types.LegacyAMM
	concentrated  types.ConcentratedAMM
	allowance     types.AllowanceDelegate
	feeMarket     types.FeeMarket

	handlers map[string]types.ModuleHandler
	mevGuard MEVGuard
	metrics  *RouterMetrics
}

// Collaborators bundles the external venues and contracts the router drives.
// FeeMarket may be nil; everything else is required.
type Collaborators struct {
	Router        types.ExecutionRouter
	WrappedNative types.WrappedNative
	PoolManager   types.PoolManager
	LegacyAMM     types.LegacyAMM
	Concentrated  types.ConcentratedAMM
	Allowance     types.AllowanceDelegate
	FeeMarket     types.FeeMarket
}

// NewKeeper creates a new swap router Keeper instance. The built-in swap
// handler is registered for the module's own account address so default
// genesis bindings resolve.
func NewKeeper(
	cdc codec.BinaryCodec,
	key storetypes.StoreKey,
	authority string,
	bankKeeper types.BankKeeper,
	collab Collaborators,
) *Keeper {
	k := &Keeper{
		storeKey:      key,
		cdc:           cdc,
		authority:     authority,
		bankKeeper:    bankKeeper,
		router:        collab.Router,
		wrappedNative: collab.WrappedNative,
		poolManager:   collab.PoolManager,
		legacyAMM:     collab.LegacyAMM,
		concentrated:  collab.Concentrated,
		allowance:     collab.Allowance,
		feeMarket:     collab.FeeMarket,
		handlers:      make(map[string]types.ModuleHandler),
		mevGuard:      NewMEVGuard(),
		metrics:       NewRouterMetrics(),
	}
	k.RegisterHandler(types.RouterAddress().String(), swapHandler{k})
	return k
}

// GetAuthority returns the module's authority address.
func (k Keeper) GetAuthority() string {
	return k.authority
}

// ModuleAddress returns the module account address holding transient custody
// during swaps.
func (k Keeper) ModuleAddress() sdk.AccAddress {
	return types.RouterAddress()
}

// RegisterHandler installs the in-process implementation for a module
// address. Cuts that bind a tag to an address require its handler to already
// be registered, the moral equivalent of requiring code at the address.
func (k *Keeper) RegisterHandler(moduleAddr string, h types.ModuleHandler) {
	k.handlers[moduleAddr] = h
}

// handler returns the in-process implementation for a module address.
func (k Keeper) handler(moduleAddr string) (types.ModuleHandler, bool) {
	h, ok := k.handlers[moduleAddr]
	return h, ok
}

// Logger returns a module-specific logger.
func (k Keeper) Logger(ctx context.Context) log.Logger {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	return sdkCtx.Logger().With("module", "x/"+types.ModuleName)
}

// getStore returns the KVStore for the swap router module
func (k Keeper) getStore(ctx context.Context) storetypes.KVStore {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	return sdkCtx.KVStore(k.storeKey)
}
