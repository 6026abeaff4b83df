package types

import (
	"encoding/json"
	"testing"

	"cosmossdk.io/math"
)

func TestOpCodeString(t *testing.T) {
	tests := []struct {
		code OpCode
		want string
	}{
		{OpWrapNative, "wrap_native"},
		{OpUnwrapNative, "unwrap_native"},
		{OpSwapExactInV2, "swap_exact_in_v2"},
		{OpSwapExactInV3, "swap_exact_in_v3"},
		{OpSweep, "sweep"},
		{OpCode(99), "unknown(99)"},
	}
	for _, tt := range tests {
		if got := tt.code.String(); got != tt.want {
			t.Errorf("OpCode(%d).String() = %q, want %q", uint8(tt.code), got, tt.want)
		}
	}
}

func TestCallPlanAppend(t *testing.T) {
	var plan CallPlan

	if err := plan.Append(OpWrapNative, WrapArgs{Amount: math.NewInt(500)}); err != nil {
		t.Fatalf("Append(wrap) error = %v", err)
	}
	if err := plan.Append(OpSwapExactInV2, SwapV2Args{
		Path:      []string{"uwvtx", "uusdc"},
		AmountIn:  math.NewInt(500),
		MinOut:    math.NewInt(450),
		Recipient: "recipient",
	}); err != nil {
		t.Fatalf("Append(swap) error = %v", err)
	}
	if err := plan.Append(OpSweep, SweepArgs{
		Denom:     "uwvtx",
		MinAmount: math.ZeroInt(),
		Recipient: "recipient",
	}); err != nil {
		t.Fatalf("Append(sweep) error = %v", err)
	}

	if len(plan.Ops) != 3 {
		t.Fatalf("plan has %d ops, want 3", len(plan.Ops))
	}
	if plan.Ops[0].Code != OpWrapNative || plan.Ops[1].Code != OpSwapExactInV2 || plan.Ops[2].Code != OpSweep {
		t.Errorf("op order = %s, %s, %s", plan.Ops[0].Code, plan.Ops[1].Code, plan.Ops[2].Code)
	}

	var wrap WrapArgs
	if err := json.Unmarshal(plan.Ops[0].Args, &wrap); err != nil {
		t.Fatalf("decode wrap args: %v", err)
	}
	if !wrap.Amount.Equal(math.NewInt(500)) {
		t.Errorf("wrap amount = %s, want 500", wrap.Amount)
	}

	var swap SwapV2Args
	if err := json.Unmarshal(plan.Ops[1].Args, &swap); err != nil {
		t.Fatalf("decode swap args: %v", err)
	}
	if len(swap.Path) != 2 || swap.Path[0] != "uwvtx" || swap.Path[1] != "uusdc" {
		t.Errorf("swap path = %v", swap.Path)
	}
	if !swap.MinOut.Equal(math.NewInt(450)) {
		t.Errorf("swap min out = %s, want 450", swap.MinOut)
	}
}
