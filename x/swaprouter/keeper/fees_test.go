package keeper_test

import (
	"testing"

	"cosmossdk.io/math"
	"github.com/stretchr/testify/require"

	keepertest "github.com/vortex-dex/vortex/testutil/keeper"
	"github.com/vortex-dex/vortex/x/swaprouter/keeper"
	"github.com/vortex-dex/vortex/x/swaprouter/types"
)

func TestSwapChargesInputFees(t *testing.T) {
	k, f, ctx := keepertest.SwapRouterKeeper(t)
	f.Venues.AddPairPool(t, ctx, denomWrapped, denomUSDC, deepReserve, deepReserve)

	feeCollector := keepertest.Addr("fee-collector")
	require.NoError(t, k.SetFeeLedger(ctx, f.Authority, types.FeeLedger{
		FeeRecipient:   feeCollector.String(),
		PlatformFeeBps: 50,
	}))

	referral := keepertest.Addr("referral")
	sender := fundNativeTrader(t, f, ctx, "alice", swapAmount)

	msg := nativeSwapMsg(sender, pairRoute(denomNative, denomUSDC), swapAmount)
	msg.ReferralAccount = referral.String()
	msg.ReferralFeeBps = 20

	res, err := k.ExecuteSwap(ctx, msg)
	require.NoError(t, err)

	// 50 bps of the gross input, then 20 bps of the remainder, both in the
	// source currency.
	require.False(t, res.FeeInfo.FeeChargedOnOutput)
	require.Equal(t, math.NewInt(5_000), res.FeeInfo.PlatformFeeAmount)
	require.Equal(t, math.NewInt(1_990), res.FeeInfo.ReferralFeeAmount)
	require.Equal(t, math.NewInt(5_000), f.Balance(ctx, feeCollector, denomNative))
	require.Equal(t, math.NewInt(1_990), f.Balance(ctx, referral, denomNative))

	// Only the post-fee amount reached the venue.
	want, err := keeper.ConstantProductOutForTest(math.NewInt(993_010), deepReserve, deepReserve)
	require.NoError(t, err)
	require.Equal(t, want, res.ActualOutput)
	require.Equal(t, want, f.Balance(ctx, sender, denomUSDC))
	require.True(t, f.Balance(ctx, sender, denomNative).IsZero())

	requireModuleFlat(t, f, ctx, denomNative, denomWrapped, denomUSDC)
}

func TestSwapChargesOutputFees(t *testing.T) {
	k, f, ctx := keepertest.SwapRouterKeeper(t)
	f.Venues.AddPairPool(t, ctx, denomWrapped, denomUSDC, deepReserve, deepReserve)

	feeCollector := keepertest.Addr("fee-collector")
	require.NoError(t, k.SetFeeLedger(ctx, f.Authority, types.FeeLedger{
		FeeRecipient:   feeCollector.String(),
		PlatformFeeBps: 100,
	}))

	referral := keepertest.Addr("referral")
	sender := fundTokenTrader(t, f, ctx, "bob", denomUSDC, swapAmount)

	msg := swapMsg(sender, pairRoute(denomUSDC, denomNative), swapAmount)
	msg.ReferralAccount = referral.String()
	msg.ReferralFeeBps = 50

	res, err := k.ExecuteSwap(ctx, msg)
	require.NoError(t, err)

	// Buying native defers fees to the output side. The reported output is
	// gross, fees come out of the payout.
	require.True(t, res.FeeInfo.FeeChargedOnOutput)
	require.Equal(t, math.NewInt(996_006), res.ActualOutput)
	require.Equal(t, math.NewInt(9_960), res.FeeInfo.PlatformFeeAmount)
	require.Equal(t, math.NewInt(4_930), res.FeeInfo.ReferralFeeAmount)

	platform := f.Balance(ctx, feeCollector, denomNative)
	referralGot := f.Balance(ctx, referral, denomNative)
	net := f.Balance(ctx, sender, denomNative)
	require.Equal(t, math.NewInt(9_960), platform)
	require.Equal(t, math.NewInt(4_930), referralGot)
	require.Equal(t, math.NewInt(981_116), net)

	// The gross output splits exactly across the three recipients.
	require.Equal(t, res.ActualOutput, platform.Add(referralGot).Add(net))

	requireModuleFlat(t, f, ctx, denomNative, denomWrapped, denomUSDC)
}

func TestSwapWithoutFeeConfig(t *testing.T) {
	k, f, ctx := keepertest.SwapRouterKeeper(t)
	f.Venues.AddPairPool(t, ctx, denomUSDC, denomOSMO, deepReserve, deepReserve)

	sender := fundTokenTrader(t, f, ctx, "carol", denomUSDC, swapAmount)

	res, err := k.ExecuteSwap(ctx, swapMsg(sender, pairRoute(denomUSDC, denomOSMO), swapAmount))
	require.NoError(t, err)
	require.True(t, res.FeeInfo.PlatformFeeAmount.IsZero())
	require.True(t, res.FeeInfo.ReferralFeeAmount.IsZero())
	require.Equal(t, math.NewInt(996_006), res.ActualOutput)
	require.Equal(t, math.NewInt(996_006), f.Balance(ctx, sender, denomOSMO))
}

func TestSwapReferralWithoutPlatformFee(t *testing.T) {
	k, f, ctx := keepertest.SwapRouterKeeper(t)
	f.Venues.AddPairPool(t, ctx, denomUSDC, denomOSMO, deepReserve, deepReserve)

	referral := keepertest.Addr("referral")
	sender := fundTokenTrader(t, f, ctx, "dave", denomUSDC, swapAmount)

	msg := swapMsg(sender, pairRoute(denomUSDC, denomOSMO), swapAmount)
	msg.ReferralAccount = referral.String()
	msg.ReferralFeeBps = 100

	res, err := k.ExecuteSwap(ctx, msg)
	require.NoError(t, err)

	// Referral pays out even with no platform ledger configured.
	require.True(t, res.FeeInfo.PlatformFeeAmount.IsZero())
	require.Equal(t, math.NewInt(10_000), res.FeeInfo.ReferralFeeAmount)
	require.Equal(t, math.NewInt(10_000), f.Balance(ctx, referral, denomUSDC))

	want, err := keeper.ConstantProductOutForTest(math.NewInt(990_000), deepReserve, deepReserve)
	require.NoError(t, err)
	require.Equal(t, want, res.ActualOutput)
	require.Equal(t, want, f.Balance(ctx, sender, denomOSMO))
}

func TestSwapEmitsFeeEvents(t *testing.T) {
	k, f, ctx := keepertest.SwapRouterKeeper(t)
	f.Venues.AddPairPool(t, ctx, denomWrapped, denomUSDC, deepReserve, deepReserve)

	feeCollector := keepertest.Addr("fee-collector")
	require.NoError(t, k.SetFeeLedger(ctx, f.Authority, types.FeeLedger{
		FeeRecipient:   feeCollector.String(),
		PlatformFeeBps: 50,
	}))

	sender := fundNativeTrader(t, f, ctx, "erin", swapAmount)
	_, err := k.ExecuteSwap(ctx, nativeSwapMsg(sender, pairRoute(denomNative, denomUSDC), swapAmount))
	require.NoError(t, err)

	event, ok := findEvent(ctx, types.EventTypeFeesCharged)
	require.True(t, ok)
	require.Equal(t, feeCollector.String(), attrValue(event, types.AttributeKeyFeeRecipient))
	require.Equal(t, denomNative, attrValue(event, types.AttributeKeyDenom))
	require.Equal(t, "5000", attrValue(event, types.AttributeKeyAmount))
}

func TestSetFeeLedger(t *testing.T) {
	k, f, ctx := keepertest.SwapRouterKeeper(t)

	ledger := k.GetFeeLedger(ctx)
	require.False(t, ledger.Enabled())

	feeCollector := keepertest.Addr("fee-collector")
	good := types.FeeLedger{FeeRecipient: feeCollector.String(), PlatformFeeBps: 75}

	// Only the authority can touch the ledger.
	err := k.SetFeeLedger(ctx, keepertest.Addr("intruder").String(), good)
	require.ErrorIs(t, err, types.ErrNotOwner)

	require.NoError(t, k.SetFeeLedger(ctx, f.Authority, good))
	stored := k.GetFeeLedger(ctx)
	require.True(t, stored.Enabled())
	require.Equal(t, good.FeeRecipient, stored.FeeRecipient)
	require.Equal(t, uint32(75), stored.PlatformFeeBps)

	event, ok := findEvent(ctx, types.EventTypeFeeLedgerSet)
	require.True(t, ok)
	require.Equal(t, feeCollector.String(), attrValue(event, types.AttributeKeyFeeRecipient))
	require.Equal(t, "75", attrValue(event, types.AttributeKeyPlatformFee))

	// Out-of-range bps never lands in the store.
	bad := types.FeeLedger{FeeRecipient: feeCollector.String(), PlatformFeeBps: types.MaxPlatformFeeBps + 1}
	require.Error(t, k.SetFeeLedger(ctx, f.Authority, bad))
	require.Equal(t, uint32(75), k.GetFeeLedger(ctx).PlatformFeeBps)
}
