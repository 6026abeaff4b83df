package types

import (
	"fmt"

	"cosmossdk.io/math"
)

// Default parameter values
var (
	DefaultNativeDenom   = "uvtx"
	DefaultWrappedDenom  = "uwvtx"
	DefaultMinSwapAmount = math.NewInt(1000)
	DefaultFeeTiers      = []uint32{1, 5, 30, 100}
)

// Params holds the swap router module parameters.
type Params struct {
	NativeDenom       string   `json:"native_denom"`
	WrappedDenom      string   `json:"wrapped_denom"`
	MinSwapAmount     math.Int `json:"min_swap_amount"`
	DefaultSlippage   uint32   `json:"default_slippage_bps"`
	MaxSlippage       uint32   `json:"max_slippage_bps"`
	SupportedFeeTiers []uint32 `json:"supported_fee_tiers"`
}

// DefaultParams returns the default swap router parameters.
func DefaultParams() Params {
	return Params{
		NativeDenom:       DefaultNativeDenom,
		WrappedDenom:      DefaultWrappedDenom,
		MinSwapAmount:     DefaultMinSwapAmount,
		DefaultSlippage:   DefaultSlippageBps,
		MaxSlippage:       MaxSlippageBps,
		SupportedFeeTiers: DefaultFeeTiers,
	}
}

// String returns a human-readable representation of the parameters.
func (p Params) String() string {
	return fmt.Sprintf("Params{native=%s wrapped=%s min_swap=%s slippage=%d/%d tiers=%v}",
		p.NativeDenom, p.WrappedDenom, p.MinSwapAmount, p.DefaultSlippage, p.MaxSlippage, p.SupportedFeeTiers)
}

// Validate checks the parameter set.
func (p Params) Validate() error {
	if err := ValidateDenom(p.NativeDenom); err != nil {
		return fmt.Errorf("native denom: %w", err)
	}
	if err := ValidateDenom(p.WrappedDenom); err != nil {
		return fmt.Errorf("wrapped denom: %w", err)
	}
	if p.NativeDenom == p.WrappedDenom {
		return fmt.Errorf("native and wrapped denoms must differ")
	}
	if p.MinSwapAmount.IsNil() || !p.MinSwapAmount.IsPositive() {
		return fmt.Errorf("min swap amount must be positive")
	}
	if p.DefaultSlippage == 0 || p.DefaultSlippage > p.MaxSlippage {
		return fmt.Errorf("default slippage %d bps must be in (0, max %d]", p.DefaultSlippage, p.MaxSlippage)
	}
	if p.MaxSlippage == 0 || p.MaxSlippage >= BpsDenominator {
		return fmt.Errorf("max slippage %d bps must be in (0, %d)", p.MaxSlippage, BpsDenominator)
	}
	if len(p.SupportedFeeTiers) == 0 {
		return fmt.Errorf("at least one fee tier is required")
	}
	seen := make(map[uint32]struct{}, len(p.SupportedFeeTiers))
	for _, tier := range p.SupportedFeeTiers {
		if tier == 0 || tier >= BpsDenominator {
			return fmt.Errorf("fee tier %d bps out of range", tier)
		}
		if _, dup := seen[tier]; dup {
			return fmt.Errorf("duplicate fee tier %d", tier)
		}
		seen[tier] = struct{}{}
	}
	return nil
}

// FeeLedger is the process-wide platform fee configuration: who receives the
// platform fee and at what rate. Mutable only by the module authority, read
// on every settling call.
type FeeLedger struct {
	FeeRecipient   string `json:"fee_recipient"`
	PlatformFeeBps uint32 `json:"platform_fee_bps"`
}

// MaxPlatformFeeBps caps the platform fee rate at 10%.
const MaxPlatformFeeBps = 1_000

// DefaultFeeLedger returns an empty ledger: no recipient, zero rate. Swaps
// settle without a platform fee until the authority configures one.
func DefaultFeeLedger() FeeLedger {
	return FeeLedger{
		FeeRecipient:   "",
		PlatformFeeBps: 0,
	}
}

// String returns a human-readable representation of the ledger.
func (l FeeLedger) String() string {
	return fmt.Sprintf("FeeLedger{recipient=%s bps=%d}", l.FeeRecipient, l.PlatformFeeBps)
}

// Validate checks the ledger. A zero rate with no recipient is the unset
// state and is valid; a positive rate requires a recipient.
func (l FeeLedger) Validate() error {
	if l.PlatformFeeBps > MaxPlatformFeeBps {
		return fmt.Errorf("platform fee %d bps exceeds maximum %d", l.PlatformFeeBps, MaxPlatformFeeBps)
	}
	if l.PlatformFeeBps > 0 && l.FeeRecipient == "" {
		return fmt.Errorf("platform fee of %d bps has no fee recipient", l.PlatformFeeBps)
	}
	return nil
}

// Enabled reports whether a platform fee is currently charged.
func (l FeeLedger) Enabled() bool {
	return l.PlatformFeeBps > 0 && l.FeeRecipient != ""
}
