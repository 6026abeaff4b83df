package types

import (
	"strings"
	"testing"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// Bech32 test addresses derived from fixed 20-byte seeds.
var (
	validSender    = sdk.AccAddress([]byte("swaprouter_sender___")).String()
	validRecipient = sdk.AccAddress([]byte("swaprouter_recipient")).String()
	validReferral  = sdk.AccAddress([]byte("swaprouter_referral_")).String()
	validAuthority = sdk.AccAddress([]byte("swaprouter_authority")).String()
	invalidAddress = "invalid"
)

func validPairRoute() Route {
	return Route{
		SourceDenom: "uvtx",
		DestDenom:   "uusdc",
		Generation:  GenerationConstantProduct,
		HopPath:     []string{"uvtx", "uusdc"},
	}
}

func TestMsgExecuteSwapValidateBasic(t *testing.T) {
	valid := func() MsgExecuteSwap {
		return MsgExecuteSwap{
			Sender:         validSender,
			Route:          validPairRoute(),
			AmountIn:       math.NewInt(1_000_000),
			ExpectedOutput: math.ZeroInt(),
		}
	}

	tests := []struct {
		name    string
		mutate  func(msg *MsgExecuteSwap)
		wantErr bool
		errMsg  string
	}{
		{
			name:    "valid minimal",
			mutate:  func(msg *MsgExecuteSwap) {},
			wantErr: false,
		},
		{
			name: "valid with recipient and referral",
			mutate: func(msg *MsgExecuteSwap) {
				msg.Recipient = validRecipient
				msg.ReferralAccount = validReferral
				msg.ReferralFeeBps = 25
			},
			wantErr: false,
		},
		{
			name: "valid with attached payment",
			mutate: func(msg *MsgExecuteSwap) {
				msg.Payment = sdk.NewCoin("uvtx", math.NewInt(1_000_000))
			},
			wantErr: false,
		},
		{
			name:    "invalid sender",
			mutate:  func(msg *MsgExecuteSwap) { msg.Sender = invalidAddress },
			wantErr: true,
			errMsg:  "invalid sender address",
		},
		{
			name:    "invalid recipient",
			mutate:  func(msg *MsgExecuteSwap) { msg.Recipient = invalidAddress },
			wantErr: true,
			errMsg:  "invalid recipient address",
		},
		{
			name:    "invalid route",
			mutate:  func(msg *MsgExecuteSwap) { msg.Route.DestDenom = msg.Route.SourceDenom },
			wantErr: true,
			errMsg:  "same token",
		},
		{
			name:    "nil amount in",
			mutate:  func(msg *MsgExecuteSwap) { msg.AmountIn = math.Int{} },
			wantErr: true,
			errMsg:  "amount in must be positive",
		},
		{
			name:    "zero amount in",
			mutate:  func(msg *MsgExecuteSwap) { msg.AmountIn = math.ZeroInt() },
			wantErr: true,
			errMsg:  "amount in must be positive",
		},
		{
			name:    "negative expected output",
			mutate:  func(msg *MsgExecuteSwap) { msg.ExpectedOutput = math.NewInt(-1) },
			wantErr: true,
			errMsg:  "expected output cannot be negative",
		},
		{
			name:    "slippage above ceiling",
			mutate:  func(msg *MsgExecuteSwap) { msg.SlippageBps = MaxSlippageBps + 1 },
			wantErr: true,
			errMsg:  "exceeds maximum",
		},
		{
			name:    "negative deadline",
			mutate:  func(msg *MsgExecuteSwap) { msg.Deadline = -5 },
			wantErr: true,
			errMsg:  "deadline cannot be negative",
		},
		{
			name: "referral fee above ceiling",
			mutate: func(msg *MsgExecuteSwap) {
				msg.ReferralAccount = validReferral
				msg.ReferralFeeBps = MaxReferralFeeBps + 1
			},
			wantErr: true,
			errMsg:  "referral fee",
		},
		{
			name:    "referral fee without account",
			mutate:  func(msg *MsgExecuteSwap) { msg.ReferralFeeBps = 25 },
			wantErr: true,
			errMsg:  "without referral account",
		},
		{
			name: "invalid referral account",
			mutate: func(msg *MsgExecuteSwap) {
				msg.ReferralAccount = invalidAddress
				msg.ReferralFeeBps = 25
			},
			wantErr: true,
			errMsg:  "invalid referral account",
		},
		{
			name:    "pinned flag without quote",
			mutate:  func(msg *MsgExecuteSwap) { msg.UsePinnedQuote = true },
			wantErr: true,
			errMsg:  "without a pinned quote",
		},
		{
			name: "invalid payment coin",
			mutate: func(msg *MsgExecuteSwap) {
				msg.Payment = sdk.Coin{Denom: "uvtx", Amount: math.NewInt(-5)}
			},
			wantErr: true,
			errMsg:  "invalid payment",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := valid()
			tt.mutate(&msg)
			err := msg.ValidateBasic()
			if (err != nil) != tt.wantErr {
				t.Fatalf("MsgExecuteSwap.ValidateBasic() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr && !strings.Contains(err.Error(), tt.errMsg) {
				t.Errorf("MsgExecuteSwap.ValidateBasic() error = %v, want error containing %q", err, tt.errMsg)
			}
		})
	}
}

func TestMsgExecuteSwapGetSigners(t *testing.T) {
	msg := NewMsgExecuteSwap(validSender, validPairRoute(), math.NewInt(1000), math.ZeroInt(), 0, 0)
	signers := msg.GetSigners()
	if len(signers) != 1 {
		t.Fatalf("got %d signers, want 1", len(signers))
	}
	if signers[0].String() != validSender {
		t.Errorf("signer = %s, want %s", signers[0], validSender)
	}
}

func TestMsgApplyCutsValidateBasic(t *testing.T) {
	validCut := Cut{Tag: OpTagQuote, ModuleAddress: validRecipient, Action: CutActionAdd}

	tests := []struct {
		name    string
		msg     MsgApplyCuts
		wantErr bool
		errMsg  string
	}{
		{
			name:    "valid single cut",
			msg:     MsgApplyCuts{Authority: validAuthority, Cuts: []Cut{validCut}},
			wantErr: false,
		},
		{
			name:    "valid init only",
			msg:     MsgApplyCuts{Authority: validAuthority, InitModule: validRecipient},
			wantErr: false,
		},
		{
			name: "valid cuts with init",
			msg: MsgApplyCuts{
				Authority:  validAuthority,
				Cuts:       []Cut{validCut},
				InitModule: validRecipient,
				InitData:   []byte(`{"native_denom":"uvtx"}`),
			},
			wantErr: false,
		},
		{
			name:    "invalid authority",
			msg:     MsgApplyCuts{Authority: invalidAddress, Cuts: []Cut{validCut}},
			wantErr: true,
			errMsg:  "invalid authority address",
		},
		{
			name:    "empty batch",
			msg:     MsgApplyCuts{Authority: validAuthority},
			wantErr: true,
			errMsg:  "no cuts and no init module",
		},
		{
			name: "zero tag cut",
			msg: MsgApplyCuts{
				Authority: validAuthority,
				Cuts:      []Cut{{ModuleAddress: validRecipient, Action: CutActionAdd}},
			},
			wantErr: true,
			errMsg:  "cut 0",
		},
		{
			name: "remove cut naming a module",
			msg: MsgApplyCuts{
				Authority: validAuthority,
				Cuts:      []Cut{{Tag: OpTagQuote, ModuleAddress: validRecipient, Action: CutActionRemove}},
			},
			wantErr: true,
			errMsg:  "must not name a module",
		},
		{
			name: "cut module address not bech32",
			msg: MsgApplyCuts{
				Authority: validAuthority,
				Cuts:      []Cut{{Tag: OpTagQuote, ModuleAddress: invalidAddress, Action: CutActionAdd}},
			},
			wantErr: true,
			errMsg:  "module address",
		},
		{
			name:    "invalid init module",
			msg:     MsgApplyCuts{Authority: validAuthority, InitModule: invalidAddress},
			wantErr: true,
			errMsg:  "invalid init module address",
		},
		{
			name: "init data without init module",
			msg: MsgApplyCuts{
				Authority: validAuthority,
				Cuts:      []Cut{validCut},
				InitData:  []byte("{}"),
			},
			wantErr: true,
			errMsg:  "init data without an init module",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.msg.ValidateBasic()
			if (err != nil) != tt.wantErr {
				t.Fatalf("MsgApplyCuts.ValidateBasic() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr && !strings.Contains(err.Error(), tt.errMsg) {
				t.Errorf("MsgApplyCuts.ValidateBasic() error = %v, want error containing %q", err, tt.errMsg)
			}
		})
	}
}

func TestMsgSetFeeLedgerValidateBasic(t *testing.T) {
	tests := []struct {
		name    string
		msg     MsgSetFeeLedger
		wantErr bool
		errMsg  string
	}{
		{
			name:    "valid",
			msg:     MsgSetFeeLedger{Authority: validAuthority, Ledger: FeeLedger{FeeRecipient: validRecipient, PlatformFeeBps: 50}},
			wantErr: false,
		},
		{
			name:    "valid unset ledger",
			msg:     MsgSetFeeLedger{Authority: validAuthority, Ledger: DefaultFeeLedger()},
			wantErr: false,
		},
		{
			name:    "invalid authority",
			msg:     MsgSetFeeLedger{Authority: invalidAddress, Ledger: DefaultFeeLedger()},
			wantErr: true,
			errMsg:  "invalid authority address",
		},
		{
			name:    "fee above ceiling",
			msg:     MsgSetFeeLedger{Authority: validAuthority, Ledger: FeeLedger{FeeRecipient: validRecipient, PlatformFeeBps: MaxPlatformFeeBps + 1}},
			wantErr: true,
			errMsg:  "exceeds maximum",
		},
		{
			name:    "fee without recipient",
			msg:     MsgSetFeeLedger{Authority: validAuthority, Ledger: FeeLedger{PlatformFeeBps: 50}},
			wantErr: true,
			errMsg:  "no fee recipient",
		},
		{
			name:    "recipient not bech32",
			msg:     MsgSetFeeLedger{Authority: validAuthority, Ledger: FeeLedger{FeeRecipient: invalidAddress, PlatformFeeBps: 50}},
			wantErr: true,
			errMsg:  "invalid fee recipient",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.msg.ValidateBasic()
			if (err != nil) != tt.wantErr {
				t.Fatalf("MsgSetFeeLedger.ValidateBasic() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr && !strings.Contains(err.Error(), tt.errMsg) {
				t.Errorf("MsgSetFeeLedger.ValidateBasic() error = %v, want error containing %q", err, tt.errMsg)
			}
		})
	}
}

func TestMsgUpdateParamsValidateBasic(t *testing.T) {
	badParams := DefaultParams()
	badParams.WrappedDenom = badParams.NativeDenom

	tests := []struct {
		name    string
		msg     MsgUpdateParams
		wantErr bool
		errMsg  string
	}{
		{
			name:    "valid",
			msg:     MsgUpdateParams{Authority: validAuthority, Params: DefaultParams()},
			wantErr: false,
		},
		{
			name:    "invalid authority",
			msg:     MsgUpdateParams{Authority: invalidAddress, Params: DefaultParams()},
			wantErr: true,
			errMsg:  "invalid authority address",
		},
		{
			name:    "invalid params",
			msg:     MsgUpdateParams{Authority: validAuthority, Params: badParams},
			wantErr: true,
			errMsg:  "must differ",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.msg.ValidateBasic()
			if (err != nil) != tt.wantErr {
				t.Fatalf("MsgUpdateParams.ValidateBasic() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr && !strings.Contains(err.Error(), tt.errMsg) {
				t.Errorf("MsgUpdateParams.ValidateBasic() error = %v, want error containing %q", err, tt.errMsg)
			}
		})
	}
}

func TestMsgSweepResidualValidateBasic(t *testing.T) {
	tests := []struct {
		name    string
		msg     MsgSweepResidual
		wantErr bool
		errMsg  string
	}{
		{
			name:    "valid",
			msg:     MsgSweepResidual{Authority: validAuthority, Denom: "uvtx", Recipient: validRecipient},
			wantErr: false,
		},
		{
			name:    "invalid authority",
			msg:     MsgSweepResidual{Authority: invalidAddress, Denom: "uvtx", Recipient: validRecipient},
			wantErr: true,
			errMsg:  "invalid authority address",
		},
		{
			name:    "empty denom",
			msg:     MsgSweepResidual{Authority: validAuthority, Denom: "", Recipient: validRecipient},
			wantErr: true,
			errMsg:  "cannot be empty",
		},
		{
			name:    "invalid recipient",
			msg:     MsgSweepResidual{Authority: validAuthority, Denom: "uvtx", Recipient: invalidAddress},
			wantErr: true,
			errMsg:  "invalid recipient address",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.msg.ValidateBasic()
			if (err != nil) != tt.wantErr {
				t.Fatalf("MsgSweepResidual.ValidateBasic() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr && !strings.Contains(err.Error(), tt.errMsg) {
				t.Errorf("MsgSweepResidual.ValidateBasic() error = %v, want error containing %q", err, tt.errMsg)
			}
		})
	}
}
