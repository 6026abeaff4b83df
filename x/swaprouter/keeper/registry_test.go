package keeper_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	keepertest "github.com/vortex-dex/vortex/testutil/keeper"
	"github.com/vortex-dex/vortex/x/swaprouter/types"
)

// stubHandler is a minimal pluggable module for registry tests.
type stubHandler struct {
	runFn  func(ctx context.Context, tag types.OpTag, input []byte) ([]byte, error)
	initFn func(ctx context.Context, data []byte) error
}

func (h *stubHandler) Run(ctx context.Context, tag types.OpTag, input []byte) ([]byte, error) {
	if h.runFn == nil {
		return []byte(`"ok"`), nil
	}
	return h.runFn(ctx, tag, input)
}

func (h *stubHandler) Init(ctx context.Context, data []byte) error {
	if h.initFn == nil {
		return nil
	}
	return h.initFn(ctx, data)
}

var pluginTag = types.NewOpTag("plugin(bytes)")

func TestApplyCutsAuthorityGate(t *testing.T) {
	k, _, ctx := keepertest.SwapRouterKeeper(t)

	err := k.ApplyCuts(ctx, keepertest.Addr("intruder").String(), []types.Cut{
		{Tag: pluginTag, ModuleAddress: keepertest.Addr("plugin").String(), Action: types.CutActionAdd},
	}, "", nil)
	require.ErrorIs(t, err, types.ErrNotOwner)
}

func TestApplyCutsAdd(t *testing.T) {
	k, f, ctx := keepertest.SwapRouterKeeper(t)

	plugin := keepertest.Addr("plugin").String()
	k.RegisterHandler(plugin, &stubHandler{
		runFn: func(_ context.Context, _ types.OpTag, _ []byte) ([]byte, error) {
			return []byte("plugin-answer"), nil
		},
	})

	require.NoError(t, k.ApplyCuts(ctx, f.Authority, []types.Cut{
		{Tag: pluginTag, ModuleAddress: plugin, Action: types.CutActionAdd},
	}, "", nil))

	bound, ok := k.ModuleOf(ctx, pluginTag)
	require.True(t, ok)
	require.Equal(t, plugin, bound)
	require.Equal(t, []types.OpTag{pluginTag}, k.TagsOf(ctx, plugin))

	out, err := k.Dispatch(ctx, pluginTag, nil)
	require.NoError(t, err)
	require.Equal(t, []byte("plugin-answer"), out)

	event, found := findEvent(ctx, types.EventTypeCutsApplied)
	require.True(t, found)
	require.Equal(t, "1", attrValue(event, types.AttributeKeyCutCount))
}

func TestApplyCutsAddRejectsDuplicate(t *testing.T) {
	k, f, ctx := keepertest.SwapRouterKeeper(t)

	plugin := keepertest.Addr("plugin").String()
	k.RegisterHandler(plugin, &stubHandler{})

	// The execute tag is already bound to the router at genesis.
	err := k.ApplyCuts(ctx, f.Authority, []types.Cut{
		{Tag: types.OpTagExecute, ModuleAddress: plugin, Action: types.CutActionAdd},
	}, "", nil)
	require.ErrorIs(t, err, types.ErrInvalidCut)
	require.Contains(t, err.Error(), "already bound")
}

func TestApplyCutsAddRequiresHandler(t *testing.T) {
	k, f, ctx := keepertest.SwapRouterKeeper(t)

	err := k.ApplyCuts(ctx, f.Authority, []types.Cut{
		{Tag: pluginTag, ModuleAddress: keepertest.Addr("unregistered").String(), Action: types.CutActionAdd},
	}, "", nil)
	require.ErrorIs(t, err, types.ErrInvalidCut)
	require.Contains(t, err.Error(), "no registered handler")
}

func TestApplyCutsReplace(t *testing.T) {
	k, f, ctx := keepertest.SwapRouterKeeper(t)

	plugin := keepertest.Addr("plugin").String()
	k.RegisterHandler(plugin, &stubHandler{
		runFn: func(_ context.Context, _ types.OpTag, _ []byte) ([]byte, error) {
			return []byte("rerouted"), nil
		},
	})

	require.NoError(t, k.ApplyCuts(ctx, f.Authority, []types.Cut{
		{Tag: types.OpTagQuote, ModuleAddress: plugin, Action: types.CutActionReplace},
	}, "", nil))

	// The binding moved and both tag sets reflect it.
	bound, ok := k.ModuleOf(ctx, types.OpTagQuote)
	require.True(t, ok)
	require.Equal(t, plugin, bound)

	router := types.RouterAddress().String()
	require.Equal(t, []types.OpTag{types.OpTagExecute}, k.TagsOf(ctx, router))
	require.Equal(t, []types.OpTag{types.OpTagQuote}, k.TagsOf(ctx, plugin))

	// Exactly one module owns the tag across the whole registry.
	owners := 0
	for _, info := range k.ListModules(ctx) {
		for _, tag := range info.Tags {
			if tag == types.OpTagQuote {
				owners++
			}
		}
	}
	require.Equal(t, 1, owners)

	out, err := k.Dispatch(ctx, types.OpTagQuote, nil)
	require.NoError(t, err)
	require.Equal(t, []byte("rerouted"), out)
}

func TestApplyCutsReplaceRules(t *testing.T) {
	k, f, ctx := keepertest.SwapRouterKeeper(t)

	plugin := keepertest.Addr("plugin").String()
	k.RegisterHandler(plugin, &stubHandler{})

	// Replacing an unbound tag fails.
	err := k.ApplyCuts(ctx, f.Authority, []types.Cut{
		{Tag: pluginTag, ModuleAddress: plugin, Action: types.CutActionReplace},
	}, "", nil)
	require.ErrorIs(t, err, types.ErrInvalidCut)
	require.Contains(t, err.Error(), "not bound")

	// Replacing with the module already bound is a no-op and rejected.
	err = k.ApplyCuts(ctx, f.Authority, []types.Cut{
		{Tag: types.OpTagQuote, ModuleAddress: types.RouterAddress().String(), Action: types.CutActionReplace},
	}, "", nil)
	require.ErrorIs(t, err, types.ErrInvalidCut)
	require.Contains(t, err.Error(), "already bound")
}

func TestApplyCutsRemove(t *testing.T) {
	k, f, ctx := keepertest.SwapRouterKeeper(t)

	require.NoError(t, k.ApplyCuts(ctx, f.Authority, []types.Cut{
		{Tag: types.OpTagQuote, Action: types.CutActionRemove},
	}, "", nil))

	_, ok := k.ModuleOf(ctx, types.OpTagQuote)
	require.False(t, ok)
	require.Equal(t, []types.OpTag{types.OpTagExecute}, k.TagsOf(ctx, types.RouterAddress().String()))

	_, err := k.Dispatch(ctx, types.OpTagQuote, nil)
	require.ErrorIs(t, err, types.ErrNoSuchOperation)

	// Removing again fails: the tag is gone.
	err = k.ApplyCuts(ctx, f.Authority, []types.Cut{
		{Tag: types.OpTagQuote, Action: types.CutActionRemove},
	}, "", nil)
	require.ErrorIs(t, err, types.ErrInvalidCut)
	require.Contains(t, err.Error(), "not bound")
}

func TestApplyCutsBatchIsAtomic(t *testing.T) {
	k, f, ctx := keepertest.SwapRouterKeeper(t)

	plugin := keepertest.Addr("plugin").String()
	k.RegisterHandler(plugin, &stubHandler{})

	// A valid add followed by an invalid remove: neither lands.
	err := k.ApplyCuts(ctx, f.Authority, []types.Cut{
		{Tag: pluginTag, ModuleAddress: plugin, Action: types.CutActionAdd},
		{Tag: types.NewOpTag("never-bound()"), Action: types.CutActionRemove},
	}, "", nil)
	require.ErrorIs(t, err, types.ErrInvalidCut)

	_, ok := k.ModuleOf(ctx, pluginTag)
	require.False(t, ok)
	require.Empty(t, k.TagsOf(ctx, plugin))
}

func TestApplyCutsInitRunsAtomically(t *testing.T) {
	k, f, ctx := keepertest.SwapRouterKeeper(t)

	// The router's own handler accepts params JSON as init data, giving the
	// batch a config change that commits with the cuts.
	params := types.DefaultParams()
	params.MinSwapAmount = params.MinSwapAmount.MulRaw(10)
	initData, err := json.Marshal(params)
	require.NoError(t, err)

	plugin := keepertest.Addr("plugin").String()
	k.RegisterHandler(plugin, &stubHandler{})

	require.NoError(t, k.ApplyCuts(ctx, f.Authority, []types.Cut{
		{Tag: pluginTag, ModuleAddress: plugin, Action: types.CutActionAdd},
	}, types.RouterAddress().String(), initData))

	require.Equal(t, params.MinSwapAmount, k.GetParams(ctx).MinSwapAmount)
	_, ok := k.ModuleOf(ctx, pluginTag)
	require.True(t, ok)
}

func TestApplyCutsInitFailureRollsBack(t *testing.T) {
	k, f, ctx := keepertest.SwapRouterKeeper(t)

	plugin := keepertest.Addr("plugin").String()
	k.RegisterHandler(plugin, &stubHandler{})

	// Init data the router handler cannot parse fails the batch, including
	// the cut that preceded it.
	err := k.ApplyCuts(ctx, f.Authority, []types.Cut{
		{Tag: pluginTag, ModuleAddress: plugin, Action: types.CutActionAdd},
	}, types.RouterAddress().String(), []byte("{not json"))
	require.ErrorIs(t, err, types.ErrInvalidCut)
	require.Contains(t, err.Error(), "init call")

	_, ok := k.ModuleOf(ctx, pluginTag)
	require.False(t, ok)
	require.Equal(t, types.DefaultParams(), k.GetParams(ctx))
}

func TestApplyCutsInitUnknownModule(t *testing.T) {
	k, f, ctx := keepertest.SwapRouterKeeper(t)

	err := k.ApplyCuts(ctx, f.Authority, nil, keepertest.Addr("nowhere").String(), nil)
	require.ErrorIs(t, err, types.ErrInvalidCut)
	require.Contains(t, err.Error(), "no registered handler")
}

func TestTagsOfUnknownModule(t *testing.T) {
	k, _, ctx := keepertest.SwapRouterKeeper(t)
	require.Empty(t, k.TagsOf(ctx, keepertest.Addr("stranger").String()))
}

func TestListModulesDefault(t *testing.T) {
	k, _, ctx := keepertest.SwapRouterKeeper(t)

	infos := k.ListModules(ctx)
	require.Len(t, infos, 1)
	require.Equal(t, types.RouterAddress().String(), infos[0].ModuleAddress)
	require.ElementsMatch(t, []types.OpTag{types.OpTagQuote, types.OpTagExecute}, infos[0].Tags)
}
