// Package keeper implements the swap router module keeper.
//
// The swap router is the execution core of the Vortex aggregation stack. It
// quotes a pair across three AMM generations (constant-product pairs,
// concentrated-liquidity pools, and the singleton pool manager), picks the
// best venue, and settles the swap atomically with platform and referral fees
// deducted on the correct side of the trade.
//
// # Core Functionality
//
// Quoting: Estimate output across every supported venue generation and return
// the best, with optional pinning to a single generation and opaque route
// data for singleton multi-hop paths.
//
// Execution: Pull the caller's input (attached native payment or allowance
// delegate), charge input-side fees, drive the external execution router or
// the pool manager settlement session, measure the recipient's real balance
// delta, and enforce the slippage floor against it.
//
// Fees: Platform fee in basis points to the ledger recipient, then a referral
// fee on the remainder. Charged on input by default, on actual output when
// the swap lands in native currency from a non-native source.
//
// Registry: Operation tags resolve to module handlers through a mutable
// binding table behind the stable module account address. Cut batches add,
// replace, or remove bindings atomically, with an optional init call inside
// the same unit.
//
// MEV Protection: When a caller opts in, the deadline is forced to a short
// window and slippage tolerance is tightened, further under contested gas.
//
// # Key Types
//
// Keeper: Main module keeper managing state, venue collaborators, and the
// handler registry.
//
// MEVGuard: Stateless execution-parameter adjuster.
//
// RouterMetrics: Prometheus metrics for swaps, quotes, fees, and registry
// mutations.
//
// # Usage Patterns
//
// Quoting a pair:
//
//	quote, err := keeper.Quote(ctx, types.QuoteRequest{SourceDenom: "uatom", DestDenom: "uvtx", AmountIn: amount})
//
// Executing a swap:
//
//	result, err := keeper.ExecuteSwap(ctx, msg)
//
// Rebinding an operation:
//
//	err := keeper.ApplyCuts(ctx, authority, cuts, initModule, initData)
//
// # Custody
//
// The module account holds funds only inside a single swap call. Every exit
// path, success or failure, leaves the account empty; the module-balance
// invariant enforces this between blocks.
package keeper
