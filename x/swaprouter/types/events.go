package types

// Event types emitted by the swap router module
const (
	EventTypeSwapExecuted   = "swap_executed"
	EventTypeFeesCharged    = "fees_charged"
	EventTypeReferralPaid   = "referral_paid"
	EventTypeMEVAdjusted    = "mev_adjusted"
	EventTypeCutsApplied    = "cuts_applied"
	EventTypeModuleAdded    = "module_added"
	EventTypeModuleReplaced = "module_replaced"
	EventTypeModuleRemoved  = "module_removed"
	EventTypeFeeLedgerSet   = "fee_ledger_updated"
	EventTypeParamsUpdated  = "params_updated"
	EventTypeResidualSwept  = "residual_swept"
)

// Event attribute keys
const (
	AttributeKeySender        = "sender"
	AttributeKeyRecipient     = "recipient"
	AttributeKeySourceDenom   = "source_denom"
	AttributeKeyDestDenom     = "dest_denom"
	AttributeKeyGeneration    = "generation"
	AttributeKeyFeeTier       = "fee_tier_bps"
	AttributeKeyAmountIn      = "amount_in"
	AttributeKeyActualOutput  = "actual_output"
	AttributeKeyMinimumOutput = "minimum_output"
	AttributeKeyPlatformFee   = "platform_fee"
	AttributeKeyReferralFee   = "referral_fee"
	AttributeKeyFeeOnOutput   = "fee_on_output"
	AttributeKeyFeeRecipient  = "fee_recipient"
	AttributeKeyReferral      = "referral"
	AttributeKeyIntegrator    = "integrator"
	AttributeKeySlippageBps   = "slippage_bps"
	AttributeKeyDeadline      = "deadline"
	AttributeKeyTag           = "tag"
	AttributeKeyModule        = "module"
	AttributeKeyCutCount      = "cut_count"
	AttributeKeyDenom         = "denom"
	AttributeKeyAmount        = "amount"
)
