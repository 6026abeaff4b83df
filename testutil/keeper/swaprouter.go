package keeper

import (
	"context"
	"crypto/sha256"
	"testing"
	"time"

	"cosmossdk.io/log"
	"cosmossdk.io/math"
	"cosmossdk.io/store"
	"cosmossdk.io/store/metrics"
	storetypes "cosmossdk.io/store/types"
	cmtproto "github.com/cometbft/cometbft/proto/tendermint/types"
	dbm "github.com/cosmos/cosmos-db"
	"github.com/cosmos/cosmos-sdk/codec"
	"github.com/cosmos/cosmos-sdk/codec/address"
	codectypes "github.com/cosmos/cosmos-sdk/codec/types"
	"github.com/cosmos/cosmos-sdk/runtime"
	sdkstd "github.com/cosmos/cosmos-sdk/std"
	sdk "github.com/cosmos/cosmos-sdk/types"
	authkeeper "github.com/cosmos/cosmos-sdk/x/auth/keeper"
	authtypes "github.com/cosmos/cosmos-sdk/x/auth/types"
	bankkeeper "github.com/cosmos/cosmos-sdk/x/bank/keeper"
	banktypes "github.com/cosmos/cosmos-sdk/x/bank/types"
	govtypes "github.com/cosmos/cosmos-sdk/x/gov/types"
	"github.com/stretchr/testify/require"

	"github.com/vortex-dex/vortex/x/swaprouter/keeper"
	"github.com/vortex-dex/vortex/x/swaprouter/types"
)

// swapRouterBlockTime is the fixed block time swaprouter test contexts start
// at, so deadline arithmetic is reproducible.
var swapRouterBlockTime = time.Unix(1_700_000_000, 0).UTC()

// Fixture bundles the collaborators behind a swaprouter test keeper: the real
// bank keeper holding balances and the in-memory venue fakes.
type Fixture struct {
	Bank      bankkeeper.Keeper
	Venues    *Venues
	FeeMarket *StaticFeeMarket
	Authority string
}

// SwapRouterKeeper creates a test keeper for the swaprouter module. Balances
// live in a real bank keeper backed by the same multistore as the module, so
// cache-context rollback covers them; every venue the router drives is faked
// in memory and reachable through the returned fixture.
func SwapRouterKeeper(t testing.TB) (*keeper.Keeper, *Fixture, sdk.Context) {
	storeKey := storetypes.NewKVStoreKey(types.StoreKey)
	authStoreKey := storetypes.NewKVStoreKey(authtypes.StoreKey)
	bankStoreKey := storetypes.NewKVStoreKey(banktypes.StoreKey)

	db := dbm.NewMemDB()
	stateStore := store.NewCommitMultiStore(db, log.NewNopLogger(), metrics.NewNoOpMetrics())
	stateStore.MountStoreWithDB(storeKey, storetypes.StoreTypeIAVL, db)
	stateStore.MountStoreWithDB(authStoreKey, storetypes.StoreTypeIAVL, db)
	stateStore.MountStoreWithDB(bankStoreKey, storetypes.StoreTypeIAVL, db)
	require.NoError(t, stateStore.LoadLatestVersion())

	registry := codectypes.NewInterfaceRegistry()
	sdkstd.RegisterInterfaces(registry)
	authtypes.RegisterInterfaces(registry)
	banktypes.RegisterInterfaces(registry)
	cdc := codec.NewProtoCodec(registry)
	authority := authtypes.NewModuleAddress(govtypes.ModuleName)

	// The router module account doubles as the test faucet.
	maccPerms := map[string][]string{
		types.ModuleName: {authtypes.Minter},
	}

	accountKeeper := authkeeper.NewAccountKeeper(
		cdc,
		runtime.NewKVStoreService(authStoreKey),
		authtypes.ProtoBaseAccount,
		maccPerms,
		address.NewBech32Codec(sdk.GetConfig().GetBech32AccountAddrPrefix()),
		sdk.GetConfig().GetBech32AccountAddrPrefix(),
		authority.String(),
	)

	bankKeeper := bankkeeper.NewBaseKeeper(
		cdc,
		runtime.NewKVStoreService(bankStoreKey),
		accountKeeper,
		map[string]bool{},
		authority.String(),
		log.NewNopLogger(),
	)

	venues := NewVenues(bankKeeper)
	feeMarket := &StaticFeeMarket{}

	k := keeper.NewKeeper(
		cdc,
		storeKey,
		authority.String(),
		bankKeeper,
		keeper.Collaborators{
			Router:        venues,
			WrappedNative: venues,
			PoolManager:   venues,
			LegacyAMM:     venues,
			Concentrated:  venues,
			Allowance:     venues,
			FeeMarket:     feeMarket,
		},
	)

	ctx := sdk.NewContext(stateStore, cmtproto.Header{}, false, log.NewNopLogger()).
		WithBlockTime(swapRouterBlockTime)
	require.NoError(t, k.InitGenesis(ctx, *types.DefaultGenesis()))

	venues.seedWrapContract(t, ctx)

	fixture := &Fixture{
		Bank:      bankKeeper,
		Venues:    venues,
		FeeMarket: feeMarket,
		Authority: authority.String(),
	}
	return k, fixture, ctx
}

// Addr derives a deterministic test account address from a label.
func Addr(label string) sdk.AccAddress {
	sum := sha256.Sum256([]byte(label))
	return sdk.AccAddress(sum[:20])
}

// FundAccount mints coins to an account through the router module account.
func (f *Fixture) FundAccount(t testing.TB, ctx sdk.Context, addr sdk.AccAddress, coins ...sdk.Coin) {
	mintTo(t, ctx, f.Bank, addr, coins...)
}

// Balance reads one denom balance from the bank.
func (f *Fixture) Balance(ctx sdk.Context, addr sdk.AccAddress, denom string) math.Int {
	return f.Bank.GetBalance(ctx, addr, denom).Amount
}

// mintTo mints coins and forwards them to an account. The router module
// account carries the minter permission in test fixtures.
func mintTo(t testing.TB, ctx sdk.Context, bank bankkeeper.Keeper, addr sdk.AccAddress, coins ...sdk.Coin) {
	amt := sdk.NewCoins(coins...)
	require.NoError(t, bank.MintCoins(ctx, types.ModuleName, amt))
	require.NoError(t, bank.SendCoinsFromModuleToAccount(ctx, types.ModuleName, addr, amt))
}

// StaticFeeMarket reports a fixed chain base fee. The zero value reports a
// nil fee, which the router reads as a chain without a fee market.
type StaticFeeMarket struct {
	Fee math.Int
}

var _ types.FeeMarket = (*StaticFeeMarket)(nil)

// BaseFee implements types.FeeMarket.
func (m *StaticFeeMarket) BaseFee(ctx context.Context) math.Int {
	return m.Fee
}
