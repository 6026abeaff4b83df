package types

import (
	"encoding/json"
	"fmt"

	"cosmossdk.io/math"
)

// OpCode names one operation the shared execution router can run.
type OpCode uint8

const (
	OpWrapNative OpCode = iota + 1
	OpUnwrapNative
	OpSwapExactInV2
	OpSwapExactInV3
	OpSweep
)

// String returns the opcode's wire name.
func (op OpCode) String() string {
	switch op {
	case OpWrapNative:
		return "wrap_native"
	case OpUnwrapNative:
		return "unwrap_native"
	case OpSwapExactInV2:
		return "swap_exact_in_v2"
	case OpSwapExactInV3:
		return "swap_exact_in_v3"
	case OpSweep:
		return "sweep"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(op))
	}
}

// CallOp is one router operation: an opcode plus its argument buffer.
type CallOp struct {
	Code OpCode `json:"code"`
	Args []byte `json:"args"`
}

// CallPlan is the ordered operation sequence one strategy hands to the
// execution router. The router runs the whole plan on behalf of the caller
// account or fails it as a unit.
type CallPlan struct {
	Ops []CallOp `json:"ops"`
}

// Append encodes args and appends one operation to the plan.
func (p *CallPlan) Append(code OpCode, args any) error {
	bz, err := json.Marshal(args)
	if err != nil {
		return fmt.Errorf("CallPlan.Append: encode %s args: %w", code, err)
	}
	p.Ops = append(p.Ops, CallOp{Code: code, Args: bz})
	return nil
}

// WrapArgs converts native currency held by the caller into its wrapped form.
type WrapArgs struct {
	Amount math.Int `json:"amount"`
}

// UnwrapArgs converts the caller's full wrapped balance back to native and
// sends it to Recipient, failing if the balance is below MinAmount. The full
// balance is unwrapped because the exact swap output is unknown when the
// plan is built.
type UnwrapArgs struct {
	MinAmount math.Int `json:"min_amount"`
	Recipient string   `json:"recipient"`
}

// SwapV2Args runs an exact-in swap over constant-product pairs along Path.
type SwapV2Args struct {
	Path      []string `json:"path"`
	AmountIn  math.Int `json:"amount_in"`
	MinOut    math.Int `json:"min_out"`
	Recipient string   `json:"recipient"`
}

// SwapV3Args runs an exact-in swap over concentrated-liquidity pools; a fee
// tier is packed between each adjacent pair of Path, so len(FeeTiers) must be
// len(Path)-1.
type SwapV3Args struct {
	Path      []string `json:"path"`
	FeeTiers  []uint32 `json:"fee_tiers"`
	AmountIn  math.Int `json:"amount_in"`
	MinOut    math.Int `json:"min_out"`
	Recipient string   `json:"recipient"`
}

// SweepArgs forwards the caller's full balance of Denom to Recipient,
// failing if it is below MinAmount.
type SweepArgs struct {
	Denom     string   `json:"denom"`
	MinAmount math.Int `json:"min_amount"`
	Recipient string   `json:"recipient"`
}
