package types

import (
	"encoding/json"
	"fmt"

	sdkerrors "cosmossdk.io/errors"
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// Supported AMM generations. Generation numbers follow the protocol family
// the venue implements: constant-product pairs, concentrated-liquidity pools
// with discrete fee tiers, and the singleton pool manager with hooks.
const (
	GenerationNone            uint32 = 0
	GenerationConstantProduct uint32 = 2
	GenerationConcentrated    uint32 = 3
	GenerationSingleton       uint32 = 4
)

// ValidGeneration reports whether gen names a supported AMM generation.
func ValidGeneration(gen uint32) bool {
	switch gen {
	case GenerationConstantProduct, GenerationConcentrated, GenerationSingleton:
		return true
	default:
		return false
	}
}

// Bps denominators and bounds shared across fee and slippage arithmetic.
const (
	BpsDenominator     = 10_000
	DefaultSlippageBps = 300
	MaxSlippageBps     = 5_000
	MaxReferralFeeBps  = 1_000
)

// Route describes one resolved path from source to destination token. A route
// lives for a single call; nothing about it is persisted.
//
// HopPath is the ordered token list the swap traverses, source first. For
// generation 3 a fee tier is packed between each adjacent pair when the path
// is encoded for the execution router. RouteData carries the generation-4
// pool-hop encoding; HookData is passed opaquely to generation-4 hooks.
type Route struct {
	SourceDenom string   `json:"source_denom"`
	DestDenom   string   `json:"dest_denom"`
	Generation  uint32   `json:"generation"`
	FeeTierBps  uint32   `json:"fee_tier_bps"`
	HopPath     []string `json:"hop_path"`
	RouteData   []byte   `json:"route_data,omitempty"`
	HookData    []byte   `json:"hook_data,omitempty"`
}

// Validate checks the route's structural invariants.
func (r Route) Validate() error {
	if err := ValidateDenom(r.SourceDenom); err != nil {
		return sdkerrors.Wrap(ErrInvalidToken, err.Error())
	}
	if err := ValidateDenom(r.DestDenom); err != nil {
		return sdkerrors.Wrap(ErrInvalidToken, err.Error())
	}
	if r.SourceDenom == r.DestDenom {
		return sdkerrors.Wrap(ErrInvalidToken, "source and destination are the same token")
	}
	if !ValidGeneration(r.Generation) {
		return sdkerrors.Wrapf(ErrInvalidGeneration, "generation %d", r.Generation)
	}
	// A generation-4 route may arrive without a pool-hop encoding; the
	// quote adopted at execution time supplies one, and decoding rejects
	// the route if nothing did.
	if r.Generation == GenerationConstantProduct || r.Generation == GenerationConcentrated {
		if len(r.HopPath) < 2 {
			return sdkerrors.Wrapf(ErrInvalidRoute, "generation %d route needs a hop path of at least 2 tokens, got %d", r.Generation, len(r.HopPath))
		}
	}
	return nil
}

// Quote is the quote engine's estimate for one pair and amount. Generation 0
// marks "no route"; executing callers must treat it as a hard failure.
type Quote struct {
	ExpectedOutput math.Int `json:"expected_output"`
	Liquidity      math.Int `json:"liquidity"`
	FeeTierBps     uint32   `json:"fee_tier_bps"`
	Generation     uint32   `json:"generation"`
	ResolvedPath   []string `json:"resolved_path"`
	RouteData      []byte   `json:"route_data,omitempty"`
}

// NoRouteQuote returns the generation-0 sentinel quote.
func NoRouteQuote() Quote {
	return Quote{
		ExpectedOutput: math.ZeroInt(),
		Liquidity:      math.ZeroInt(),
		Generation:     GenerationNone,
	}
}

// NoRoute reports whether the quote is the generation-0 sentinel.
func (q Quote) NoRoute() bool {
	return q.Generation == GenerationNone || q.ExpectedOutput.IsNil() || !q.ExpectedOutput.IsPositive()
}

// Execution carries the mutable per-call swap parameters. AmountIn shrinks as
// input-side fees deduct; SlippageBps and Deadline tighten under MEV
// adjustment.
type Execution struct {
	AmountIn       math.Int `json:"amount_in"`
	ExpectedOutput math.Int `json:"expected_output"`
	SlippageBps    uint32   `json:"slippage_bps"`
	Deadline       int64    `json:"deadline"`
	Recipient      string   `json:"recipient"`
	ExactInput     bool     `json:"exact_input"`
	UsePinnedQuote bool     `json:"use_pinned_quote"`
}

// FeeProcessing accumulates the fee outcome of one call. FeeChargedOnOutput
// is true exactly when the destination is the native currency and the source
// is not; in that mode the amounts are filled in only after actual output is
// known.
type FeeProcessing struct {
	ReferralAccount    string   `json:"referral_account,omitempty"`
	ReferralFeeBps     uint32   `json:"referral_fee_bps"`
	PlatformFeeAmount  math.Int `json:"platform_fee_amount"`
	ReferralFeeAmount  math.Int `json:"referral_fee_amount"`
	FeeChargedOnOutput bool     `json:"fee_charged_on_output"`
}

// PlatformConfig is caller-supplied tuning, read-only to the module.
// GasPriceHint is the caller's own gas price, feeding the MEV baseline.
// RouteTypePreference restricts quoting to one generation (0 means any).
type PlatformConfig struct {
	GasPriceHint         math.Int `json:"gas_price_hint"`
	MevProtectionEnabled bool     `json:"mev_protection_enabled"`
	RouteTypePreference  uint32   `json:"route_type_preference"`
}

// SwapMetadata is opaque caller context carried through to events.
type SwapMetadata struct {
	IntegratorID string `json:"integrator_id,omitempty"`
	UserData     []byte `json:"user_data,omitempty"`
	Signature    []byte `json:"signature,omitempty"`
}

// GasContext feeds the MEV heuristic with explicit gas readings instead of
// ambient chain state.
type GasContext struct {
	CallerGasPrice math.Int `json:"caller_gas_price"`
	ChainBaseFee   math.Int `json:"chain_base_fee"`
}

// RoutingHints tune a quote request. RouteData, when set, is a generation-4
// pool-hop encoding to estimate instead of the canonical single-hop pool.
type RoutingHints struct {
	RouteData           []byte `json:"route_data,omitempty"`
	RouteTypePreference uint32 `json:"route_type_preference"`
}

// QuoteRequest is the quote engine's input.
type QuoteRequest struct {
	SourceDenom string       `json:"source_denom"`
	DestDenom   string       `json:"dest_denom"`
	AmountIn    math.Int     `json:"amount_in"`
	Hints       RoutingHints `json:"hints"`
}

// Validate checks the request before any venue is consulted.
func (req QuoteRequest) Validate() error {
	if err := ValidateDenom(req.SourceDenom); err != nil {
		return sdkerrors.Wrap(ErrInvalidToken, err.Error())
	}
	if err := ValidateDenom(req.DestDenom); err != nil {
		return sdkerrors.Wrap(ErrInvalidToken, err.Error())
	}
	if req.SourceDenom == req.DestDenom {
		return sdkerrors.Wrap(ErrInvalidToken, "source and destination are the same token")
	}
	if req.AmountIn.IsNil() || !req.AmountIn.IsPositive() {
		return sdkerrors.Wrap(ErrInvalidAmount, "amount in must be positive")
	}
	if pref := req.Hints.RouteTypePreference; pref != 0 && !ValidGeneration(pref) {
		return sdkerrors.Wrapf(ErrInvalidGeneration, "route type preference %d", pref)
	}
	return nil
}

// SwapResult is the orchestrator's outcome for one executed swap.
type SwapResult struct {
	ActualOutput math.Int      `json:"actual_output"`
	Generation   uint32        `json:"generation"`
	FeeInfo      FeeProcessing `json:"fee_info"`
}

// QuotePayload is the registry dispatch encoding for the quote operation:
// a token path with the source first and destination last, the input
// amount, and optional routing hints.
type QuotePayload struct {
	Path                []string `json:"path"`
	AmountIn            math.Int `json:"amount_in"`
	RouteData           []byte   `json:"route_data,omitempty"`
	RouteTypePreference uint32   `json:"route_type_preference,omitempty"`
}

// QuoteRequest converts the payload into the quote engine's request form.
func (p QuotePayload) QuoteRequest() (QuoteRequest, error) {
	if len(p.Path) < 2 {
		return QuoteRequest{}, sdkerrors.Wrap(ErrInvalidRoute, "quote path needs at least a source and a destination")
	}
	return QuoteRequest{
		SourceDenom: p.Path[0],
		DestDenom:   p.Path[len(p.Path)-1],
		AmountIn:    p.AmountIn,
		Hints: RoutingHints{
			RouteData:           p.RouteData,
			RouteTypePreference: p.RouteTypePreference,
		},
	}, nil
}

// maxDenomLength caps denom length ahead of the SDK's own validation.
const maxDenomLength = 128

// ValidateDenom checks that a denom is non-empty, bounded, and well-formed.
func ValidateDenom(denom string) error {
	if denom == "" {
		return fmt.Errorf("token denomination cannot be empty")
	}
	if len(denom) > maxDenomLength {
		return fmt.Errorf("token denomination too long: %d > %d", len(denom), maxDenomLength)
	}
	if err := sdk.ValidateDenom(denom); err != nil {
		return fmt.Errorf("token denomination %q: %w", denom, err)
	}
	return nil
}

// SettlementPhase tracks the acquire/callback settlement state machine. A
// fresh call starts Released; the strategy moves to LockedPending when it
// asks the pool manager for a lock and to Settling when the manager calls
// back in. The callback is the only legal exit from LockedPending, and any
// phase other than Released on entry is a reentrant attempt.
type SettlementPhase byte

const (
	SettlementReleased SettlementPhase = iota
	SettlementLockedPending
	SettlementSettling
)

// String renders the phase for logs and error messages.
func (p SettlementPhase) String() string {
	switch p {
	case SettlementReleased:
		return "released"
	case SettlementLockedPending:
		return "locked_pending"
	case SettlementSettling:
		return "settling"
	default:
		return fmt.Sprintf("unknown(%d)", byte(p))
	}
}

// PoolKey identifies one generation-4 pool: the sorted token pair, the fee
// tier, and the hook attached to the pool (empty for hookless pools).
type PoolKey struct {
	Token0 string `json:"token0"`
	Token1 string `json:"token1"`
	FeeBps uint32 `json:"fee_bps"`
	Hook   string `json:"hook,omitempty"`
}

// Validate checks the key's token ordering and pair validity.
func (pk PoolKey) Validate() error {
	if err := ValidateDenom(pk.Token0); err != nil {
		return err
	}
	if err := ValidateDenom(pk.Token1); err != nil {
		return err
	}
	if pk.Token0 == pk.Token1 {
		return fmt.Errorf("pool key tokens must differ")
	}
	if pk.Token0 > pk.Token1 {
		return fmt.Errorf("pool key tokens must be sorted: %s > %s", pk.Token0, pk.Token1)
	}
	return nil
}

// NewPoolKey builds a pool key with the pair in canonical order.
func NewPoolKey(tokenA, tokenB string, feeBps uint32, hook string) PoolKey {
	if tokenA > tokenB {
		tokenA, tokenB = tokenB, tokenA
	}
	return PoolKey{Token0: tokenA, Token1: tokenB, FeeBps: feeBps, Hook: hook}
}

// Other returns the pool token paired with denom, or false if denom is not in
// the pool.
func (pk PoolKey) Other(denom string) (string, bool) {
	switch denom {
	case pk.Token0:
		return pk.Token1, true
	case pk.Token1:
		return pk.Token0, true
	default:
		return "", false
	}
}

// PoolHop is one step of a generation-4 route. Direction is derived from the
// running input token while executing, so a hop is just its pool key.
type PoolHop struct {
	Key PoolKey `json:"key"`
}

// EncodeRouteData serializes a generation-4 hop list into the opaque route
// encoding carried by Route.RouteData and Quote.RouteData.
func EncodeRouteData(hops []PoolHop) ([]byte, error) {
	if len(hops) == 0 {
		return nil, fmt.Errorf("EncodeRouteData: empty hop list")
	}
	bz, err := json.Marshal(hops)
	if err != nil {
		return nil, fmt.Errorf("EncodeRouteData: marshal: %w", err)
	}
	return bz, nil
}

// DecodeRouteData parses a generation-4 route encoding and validates every
// pool key.
func DecodeRouteData(bz []byte) ([]PoolHop, error) {
	if len(bz) == 0 {
		return nil, sdkerrors.Wrap(ErrInvalidRoute, "empty route encoding")
	}
	var hops []PoolHop
	if err := json.Unmarshal(bz, &hops); err != nil {
		return nil, sdkerrors.Wrapf(ErrInvalidRoute, "malformed route encoding: %v", err)
	}
	if len(hops) == 0 {
		return nil, sdkerrors.Wrap(ErrInvalidRoute, "route encoding has no hops")
	}
	for i, hop := range hops {
		if err := hop.Key.Validate(); err != nil {
			return nil, sdkerrors.Wrapf(ErrInvalidRoute, "hop %d: %v", i, err)
		}
	}
	return hops, nil
}
