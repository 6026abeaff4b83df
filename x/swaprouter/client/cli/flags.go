package cli

// Flag constants for swap router CLI commands
const (
	// Swap flags
	FlagRecipient        = "recipient"
	FlagExpectedOutput   = "expected-output"
	FlagSlippageBps      = "slippage-bps"
	FlagDeadline         = "deadline"
	FlagFeeTierBps       = "fee-tier-bps"
	FlagVia              = "via"
	FlagRouteData        = "route-data"
	FlagHookData         = "hook-data"
	FlagPayment          = "payment"
	FlagReferral         = "referral"
	FlagReferralBps      = "referral-bps"
	FlagMevProtect       = "mev-protect"
	FlagGasPriceHint     = "gas-price-hint"
	FlagPreferGeneration = "prefer-generation"
	FlagIntegrator       = "integrator"

	// Registry flags
	FlagInitModule = "init-module"
	FlagInitData   = "init-data"
)
