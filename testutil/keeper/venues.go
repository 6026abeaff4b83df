package keeper

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	bankkeeper "github.com/cosmos/cosmos-sdk/x/bank/keeper"

	"github.com/vortex-dex/vortex/x/swaprouter/types"
)

// pairPoolFeeBps is the fixed swap fee of faked generation-2 pairs, matching
// the constant-product fee the router quotes with.
const pairPoolFeeBps = 30

// wrapContractSeed is the wrap contract's starting inventory per denom.
var wrapContractSeed = math.NewInt(1_000_000_000_000_000)

// Venues is an in-memory stand-in for everything the router drives: the
// shared execution router, the singleton pool manager, generation-2 pairs,
// generation-3 tier pools, the wrap contract, and the allowance delegate.
// All token movement flows through the real bank keeper, so module-custody
// and recipient-balance assertions observe it.
//
// Pool reserve state lives outside the store and does not roll back with a
// discarded cache context. Tests that fail a swap on purpose should assert on
// bank balances, or rebuild the fixture before re-quoting.
type Venues struct {
	bank bankkeeper.Keeper

	routerAcct  sdk.AccAddress
	managerAcct sdk.AccAddress
	wrapAcct    sdk.AccAddress

	nativeDenom  string
	wrappedDenom string

	pairs      map[string]*pairPool
	tierPools  map[string]*pairPool
	singleton  map[string]*pairPool
	allowances map[string]math.Int

	// Hooks holds generation-4 pool hooks by name. A singleton pool whose key
	// names a hook invokes it before the hop executes.
	Hooks map[string]func(ctx context.Context, hookData []byte) error

	// RunErr fails every execution router plan when set.
	RunErr error

	// PanicQuote, keyed by generation, makes that generation's quote path
	// panic instead of answering.
	PanicQuote map[uint32]bool
}

var (
	_ types.ExecutionRouter   = (*Venues)(nil)
	_ types.WrappedNative     = (*Venues)(nil)
	_ types.PoolManager       = (*Venues)(nil)
	_ types.LegacyAMM         = (*Venues)(nil)
	_ types.ConcentratedAMM   = (*Venues)(nil)
	_ types.AllowanceDelegate = (*Venues)(nil)
)

// NewVenues creates the venue set over the given bank keeper.
func NewVenues(bank bankkeeper.Keeper) *Venues {
	return &Venues{
		bank:         bank,
		routerAcct:   Addr("execution-router"),
		managerAcct:  Addr("pool-manager"),
		wrapAcct:     Addr("wrap-contract"),
		nativeDenom:  types.DefaultNativeDenom,
		wrappedDenom: types.DefaultWrappedDenom,
		pairs:        make(map[string]*pairPool),
		tierPools:    make(map[string]*pairPool),
		singleton:    make(map[string]*pairPool),
		allowances:   make(map[string]math.Int),
		Hooks:        make(map[string]func(ctx context.Context, hookData []byte) error),
		PanicQuote:   make(map[uint32]bool),
	}
}

// seedWrapContract mints the wrap contract's two-sided inventory.
func (v *Venues) seedWrapContract(t testing.TB, ctx sdk.Context) {
	mintTo(t, ctx, v.bank, v.wrapAcct,
		sdk.NewCoin(v.nativeDenom, wrapContractSeed),
		sdk.NewCoin(v.wrappedDenom, wrapContractSeed),
	)
}

// AddPairPool seeds a generation-2 constant-product pair at the fixed 30 bps
// fee and mints its reserves to the execution router account.
func (v *Venues) AddPairPool(t testing.TB, ctx sdk.Context, denomA, denomB string, reserveA, reserveB math.Int) {
	pool := newPairPool(denomA, denomB, reserveA, reserveB, pairPoolFeeBps)
	v.pairs[pairKey(denomA, denomB)] = pool
	mintTo(t, ctx, v.bank, v.routerAcct, sdk.NewCoin(denomA, reserveA), sdk.NewCoin(denomB, reserveB))
}

// AddTierPool seeds a generation-3 pool at one fee tier and mints its
// reserves to the execution router account.
func (v *Venues) AddTierPool(t testing.TB, ctx sdk.Context, denomA, denomB string, feeBps uint32, reserveA, reserveB math.Int) {
	pool := newPairPool(denomA, denomB, reserveA, reserveB, feeBps)
	v.tierPools[tierKey(denomA, denomB, feeBps)] = pool
	mintTo(t, ctx, v.bank, v.routerAcct, sdk.NewCoin(denomA, reserveA), sdk.NewCoin(denomB, reserveB))
}

// AddSingletonPool seeds a generation-4 pool and mints its reserves to the
// pool manager account. Reserve order follows the key's sorted token order.
func (v *Venues) AddSingletonPool(t testing.TB, ctx sdk.Context, key types.PoolKey, reserve0, reserve1 math.Int) {
	pool := newPairPool(key.Token0, key.Token1, reserve0, reserve1, key.FeeBps)
	v.singleton[singletonKey(key)] = pool
	mintTo(t, ctx, v.bank, v.managerAcct, sdk.NewCoin(key.Token0, reserve0), sdk.NewCoin(key.Token1, reserve1))
}

// Approve grants the allowance delegate spending power over an owner's funds.
func (v *Venues) Approve(owner sdk.AccAddress, denom string, amount math.Int) {
	v.allowances[allowanceKey(owner, denom)] = amount
}

// Allowance reads the remaining approved amount.
func (v *Venues) Allowance(owner sdk.AccAddress, denom string) math.Int {
	remaining, ok := v.allowances[allowanceKey(owner, denom)]
	if !ok {
		return math.ZeroInt()
	}
	return remaining
}

// PairReserves implements types.LegacyAMM.
func (v *Venues) PairReserves(ctx context.Context, denomIn, denomOut string) (math.Int, math.Int, error) {
	if v.PanicQuote[types.GenerationConstantProduct] {
		panic("injected pair venue fault")
	}
	pool, ok := v.pairs[pairKey(denomIn, denomOut)]
	if !ok {
		return math.Int{}, math.Int{}, fmt.Errorf("no pair %s/%s", denomIn, denomOut)
	}
	reserveIn, reserveOut, ok := pool.oriented(denomIn)
	if !ok {
		return math.Int{}, math.Int{}, fmt.Errorf("pair %s/%s does not contain %s", pool.denom0, pool.denom1, denomIn)
	}
	return reserveIn, reserveOut, nil
}

// QuoteExactIn implements types.ConcentratedAMM.
func (v *Venues) QuoteExactIn(ctx context.Context, denomIn, denomOut string, feeTierBps uint32, amountIn math.Int) (math.Int, math.Int, error) {
	if v.PanicQuote[types.GenerationConcentrated] {
		panic("injected tier venue fault")
	}
	pool, ok := v.tierPools[tierKey(denomIn, denomOut, feeTierBps)]
	if !ok {
		return math.Int{}, math.Int{}, fmt.Errorf("no %d bps pool %s/%s", feeTierBps, denomIn, denomOut)
	}
	out, err := pool.quote(denomIn, amountIn)
	if err != nil {
		return math.Int{}, math.Int{}, err
	}
	_, reserveOut, _ := pool.oriented(denomIn)
	return out, reserveOut, nil
}

// QuotePool implements the read half of types.PoolManager.
func (v *Venues) QuotePool(ctx context.Context, key types.PoolKey, denomIn string, amountIn math.Int) (math.Int, math.Int, error) {
	if v.PanicQuote[types.GenerationSingleton] {
		panic("injected singleton venue fault")
	}
	pool, ok := v.singleton[singletonKey(key)]
	if !ok {
		return math.Int{}, math.Int{}, fmt.Errorf("no singleton pool %s/%s/%d", key.Token0, key.Token1, key.FeeBps)
	}
	out, err := pool.quote(denomIn, amountIn)
	if err != nil {
		return math.Int{}, math.Int{}, err
	}
	_, reserveOut, _ := pool.oriented(denomIn)
	return out, reserveOut, nil
}

// Acquire implements the lock half of types.PoolManager: grant a settlement
// session, run the callback, and fail unless every session delta returned to
// zero.
func (v *Venues) Acquire(ctx context.Context, cb func(types.SettlementSession) error) error {
	s := &session{ctx: ctx, v: v, deltas: make(map[string]math.Int)}
	if err := cb(s); err != nil {
		return err
	}
	for denom, delta := range s.deltas {
		if !delta.IsZero() {
			return fmt.Errorf("lock released with unsettled %s delta %s", denom, delta)
		}
	}
	return nil
}

// Denom implements types.WrappedNative.
func (v *Venues) Denom() string {
	return v.wrappedDenom
}

// Wrap implements types.WrappedNative.
func (v *Venues) Wrap(ctx context.Context, addr sdk.AccAddress, amount math.Int) error {
	if err := v.bank.SendCoins(ctx, addr, v.wrapAcct, sdk.NewCoins(sdk.NewCoin(v.nativeDenom, amount))); err != nil {
		return fmt.Errorf("wrap: %w", err)
	}
	return v.bank.SendCoins(ctx, v.wrapAcct, addr, sdk.NewCoins(sdk.NewCoin(v.wrappedDenom, amount)))
}

// Unwrap implements types.WrappedNative.
func (v *Venues) Unwrap(ctx context.Context, addr sdk.AccAddress, amount math.Int) error {
	if err := v.bank.SendCoins(ctx, addr, v.wrapAcct, sdk.NewCoins(sdk.NewCoin(v.wrappedDenom, amount))); err != nil {
		return fmt.Errorf("unwrap: %w", err)
	}
	return v.bank.SendCoins(ctx, v.wrapAcct, addr, sdk.NewCoins(sdk.NewCoin(v.nativeDenom, amount)))
}

// TransferFrom implements types.AllowanceDelegate.
func (v *Venues) TransferFrom(ctx context.Context, owner, recipient sdk.AccAddress, denom string, amount math.Int) error {
	key := allowanceKey(owner, denom)
	remaining, ok := v.allowances[key]
	if !ok || remaining.LT(amount) {
		if !ok {
			remaining = math.ZeroInt()
		}
		return fmt.Errorf("allowance %s%s below requested %s", remaining, denom, amount)
	}
	if err := v.bank.SendCoins(ctx, owner, recipient, sdk.NewCoins(sdk.NewCoin(denom, amount))); err != nil {
		return err
	}
	v.allowances[key] = remaining.Sub(amount)
	return nil
}

// Run implements types.ExecutionRouter. Ops execute in order; each op's
// transfers and reserve updates land only after its own checks pass.
func (v *Venues) Run(ctx context.Context, caller sdk.AccAddress, plan types.CallPlan) error {
	if v.RunErr != nil {
		return v.RunErr
	}
	for i, op := range plan.Ops {
		if err := v.runOp(ctx, caller, op); err != nil {
			return fmt.Errorf("op %d (%s): %w", i, op.Code, err)
		}
	}
	return nil
}

func (v *Venues) runOp(ctx context.Context, caller sdk.AccAddress, op types.CallOp) error {
	switch op.Code {
	case types.OpWrapNative:
		var args types.WrapArgs
		if err := json.Unmarshal(op.Args, &args); err != nil {
			return err
		}
		return v.Wrap(ctx, caller, args.Amount)

	case types.OpUnwrapNative:
		var args types.UnwrapArgs
		if err := json.Unmarshal(op.Args, &args); err != nil {
			return err
		}
		recipient, err := sdk.AccAddressFromBech32(args.Recipient)
		if err != nil {
			return err
		}
		balance := v.bank.GetBalance(ctx, caller, v.wrappedDenom).Amount
		if balance.LT(args.MinAmount) {
			return fmt.Errorf("wrapped balance %s below minimum %s", balance, args.MinAmount)
		}
		if !balance.IsPositive() {
			return nil
		}
		if err := v.bank.SendCoins(ctx, caller, v.wrapAcct, sdk.NewCoins(sdk.NewCoin(v.wrappedDenom, balance))); err != nil {
			return err
		}
		return v.bank.SendCoins(ctx, v.wrapAcct, recipient, sdk.NewCoins(sdk.NewCoin(v.nativeDenom, balance)))

	case types.OpSwapExactInV2:
		var args types.SwapV2Args
		if err := json.Unmarshal(op.Args, &args); err != nil {
			return err
		}
		return v.runPathSwap(ctx, caller, args.Path, nil, args.AmountIn, args.MinOut, args.Recipient)

	case types.OpSwapExactInV3:
		var args types.SwapV3Args
		if err := json.Unmarshal(op.Args, &args); err != nil {
			return err
		}
		if len(args.FeeTiers) != len(args.Path)-1 {
			return fmt.Errorf("want %d fee tiers, got %d", len(args.Path)-1, len(args.FeeTiers))
		}
		return v.runPathSwap(ctx, caller, args.Path, args.FeeTiers, args.AmountIn, args.MinOut, args.Recipient)

	case types.OpSweep:
		var args types.SweepArgs
		if err := json.Unmarshal(op.Args, &args); err != nil {
			return err
		}
		recipient, err := sdk.AccAddressFromBech32(args.Recipient)
		if err != nil {
			return err
		}
		balance := v.bank.GetBalance(ctx, caller, args.Denom).Amount
		if balance.LT(args.MinAmount) {
			return fmt.Errorf("%s balance %s below minimum %s", args.Denom, balance, args.MinAmount)
		}
		if !balance.IsPositive() {
			return nil
		}
		return v.bank.SendCoins(ctx, caller, recipient, sdk.NewCoins(sdk.NewCoin(args.Denom, balance)))

	default:
		return fmt.Errorf("unknown opcode %d", uint8(op.Code))
	}
}

// runPathSwap walks a multi-hop exact-in swap. Hop outputs are computed
// against current reserves first; reserves and bank transfers commit only
// after the final output clears the minimum.
func (v *Venues) runPathSwap(ctx context.Context, caller sdk.AccAddress, path []string, feeTiers []uint32, amountIn, minOut math.Int, recipientBech string) error {
	if len(path) < 2 {
		return fmt.Errorf("path needs at least 2 tokens, got %d", len(path))
	}
	recipient, err := sdk.AccAddressFromBech32(recipientBech)
	if err != nil {
		return err
	}

	hops := len(path) - 1
	pools := make([]*pairPool, hops)
	ins := make([]math.Int, hops)
	outs := make([]math.Int, hops)

	amount := amountIn
	for i := 0; i < hops; i++ {
		var pool *pairPool
		var ok bool
		if feeTiers == nil {
			pool, ok = v.pairs[pairKey(path[i], path[i+1])]
		} else {
			pool, ok = v.tierPools[tierKey(path[i], path[i+1], feeTiers[i])]
		}
		if !ok {
			return fmt.Errorf("no pool %s/%s", path[i], path[i+1])
		}
		out, err := pool.quote(path[i], amount)
		if err != nil {
			return err
		}
		pools[i], ins[i], outs[i] = pool, amount, out
		amount = out
	}

	if amount.LT(minOut) {
		return fmt.Errorf("output %s below minimum %s", amount, minOut)
	}

	for i := 0; i < hops; i++ {
		pools[i].apply(path[i], ins[i], outs[i])
	}
	if err := v.bank.SendCoins(ctx, caller, v.routerAcct, sdk.NewCoins(sdk.NewCoin(path[0], amountIn))); err != nil {
		return err
	}
	return v.bank.SendCoins(ctx, v.routerAcct, recipient, sdk.NewCoins(sdk.NewCoin(path[hops], amount)))
}

// session is one acquire's delta ledger. Negative deltas are debt the router
// owes the manager, positive deltas are credit it may take.
type session struct {
	ctx    context.Context
	v      *Venues
	deltas map[string]math.Int
}

var _ types.SettlementSession = (*session)(nil)

// Swap implements types.SettlementSession. A keyed hook runs before the hop.
func (s *session) Swap(key types.PoolKey, denomIn string, amountIn math.Int, hookData []byte) (math.Int, error) {
	if key.Hook != "" {
		hook, ok := s.v.Hooks[key.Hook]
		if !ok {
			return math.Int{}, fmt.Errorf("pool hook %q not installed", key.Hook)
		}
		if err := hook(s.ctx, hookData); err != nil {
			return math.Int{}, err
		}
	}

	pool, ok := s.v.singleton[singletonKey(key)]
	if !ok {
		return math.Int{}, fmt.Errorf("no singleton pool %s/%s/%d", key.Token0, key.Token1, key.FeeBps)
	}
	out, err := pool.swap(denomIn, amountIn)
	if err != nil {
		return math.Int{}, err
	}
	denomOut, _ := key.Other(denomIn)
	s.add(denomIn, amountIn.Neg())
	s.add(denomOut, out)
	return out, nil
}

// Settle implements types.SettlementSession: pay debt from router custody
// into the manager.
func (s *session) Settle(denom string, amount math.Int) error {
	if err := s.v.bank.SendCoins(s.ctx, types.RouterAddress(), s.v.managerAcct, sdk.NewCoins(sdk.NewCoin(denom, amount))); err != nil {
		return err
	}
	s.add(denom, amount)
	return nil
}

// Take implements types.SettlementSession: withdraw credit to a recipient.
func (s *session) Take(denom string, recipient sdk.AccAddress, amount math.Int) error {
	if s.delta(denom).LT(amount) {
		return fmt.Errorf("take %s%s exceeds session credit %s", amount, denom, s.delta(denom))
	}
	if err := s.v.bank.SendCoins(s.ctx, s.v.managerAcct, recipient, sdk.NewCoins(sdk.NewCoin(denom, amount))); err != nil {
		return err
	}
	s.add(denom, amount.Neg())
	return nil
}

func (s *session) add(denom string, amount math.Int) {
	s.deltas[denom] = s.delta(denom).Add(amount)
}

func (s *session) delta(denom string) math.Int {
	delta, ok := s.deltas[denom]
	if !ok {
		return math.ZeroInt()
	}
	return delta
}

// pairPool is the constant-product state shared by every faked generation.
type pairPool struct {
	denom0, denom1     string
	reserve0, reserve1 math.Int
	feeBps             uint32
}

func newPairPool(denomA, denomB string, reserveA, reserveB math.Int, feeBps uint32) *pairPool {
	if denomA > denomB {
		denomA, denomB = denomB, denomA
		reserveA, reserveB = reserveB, reserveA
	}
	return &pairPool{denom0: denomA, denom1: denomB, reserve0: reserveA, reserve1: reserveB, feeBps: feeBps}
}

// oriented returns the reserves facing denomIn.
func (p *pairPool) oriented(denomIn string) (math.Int, math.Int, bool) {
	switch denomIn {
	case p.denom0:
		return p.reserve0, p.reserve1, true
	case p.denom1:
		return p.reserve1, p.reserve0, true
	default:
		return math.Int{}, math.Int{}, false
	}
}

// quote prices an exact-in swap without touching reserves, using the same
// fee-on-input constant-product formula the router quotes with.
func (p *pairPool) quote(denomIn string, amountIn math.Int) (math.Int, error) {
	reserveIn, reserveOut, ok := p.oriented(denomIn)
	if !ok {
		return math.Int{}, fmt.Errorf("pool %s/%s does not contain %s", p.denom0, p.denom1, denomIn)
	}
	if !reserveIn.IsPositive() || !reserveOut.IsPositive() {
		return math.Int{}, fmt.Errorf("pool %s/%s has no liquidity", p.denom0, p.denom1)
	}
	amountInWithFee := amountIn.Mul(math.NewInt(int64(types.BpsDenominator - p.feeBps)))
	numerator := amountInWithFee.Mul(reserveOut)
	denominator := reserveIn.Mul(math.NewInt(types.BpsDenominator)).Add(amountInWithFee)
	return numerator.Quo(denominator), nil
}

// swap prices and applies an exact-in swap.
func (p *pairPool) swap(denomIn string, amountIn math.Int) (math.Int, error) {
	out, err := p.quote(denomIn, amountIn)
	if err != nil {
		return math.Int{}, err
	}
	p.apply(denomIn, amountIn, out)
	return out, nil
}

// apply moves reserves for an executed swap.
func (p *pairPool) apply(denomIn string, amountIn, amountOut math.Int) {
	if denomIn == p.denom0 {
		p.reserve0 = p.reserve0.Add(amountIn)
		p.reserve1 = p.reserve1.Sub(amountOut)
	} else {
		p.reserve1 = p.reserve1.Add(amountIn)
		p.reserve0 = p.reserve0.Sub(amountOut)
	}
}

func pairKey(denomA, denomB string) string {
	if denomA > denomB {
		denomA, denomB = denomB, denomA
	}
	return denomA + "|" + denomB
}

func tierKey(denomA, denomB string, feeBps uint32) string {
	return fmt.Sprintf("%s|%d", pairKey(denomA, denomB), feeBps)
}

func singletonKey(key types.PoolKey) string {
	return fmt.Sprintf("%s|%s|%d|%s", key.Token0, key.Token1, key.FeeBps, key.Hook)
}

func allowanceKey(owner sdk.AccAddress, denom string) string {
	return owner.String() + "|" + denom
}
