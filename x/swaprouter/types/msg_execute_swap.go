package types

import (
	"fmt"

	sdkerrors "cosmossdk.io/errors"
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

var _ sdk.Msg = &MsgExecuteSwap{}

// MsgExecuteSwap executes a swap along the given route. Payment must be
// attached exactly when the source token is the native currency, and must
// equal AmountIn.
type MsgExecuteSwap struct {
	Sender          string         `json:"sender"`
	Route           Route          `json:"route"`
	Recipient       string         `json:"recipient,omitempty"`
	ReferralAccount string         `json:"referral_account,omitempty"`
	ReferralFeeBps  uint32         `json:"referral_fee_bps"`
	AmountIn        math.Int       `json:"amount_in"`
	ExpectedOutput  math.Int       `json:"expected_output"`
	SlippageBps     uint32         `json:"slippage_bps"`
	Deadline        int64          `json:"deadline"`
	UsePinnedQuote  bool           `json:"use_pinned_quote"`
	PinnedQuote     *Quote         `json:"pinned_quote,omitempty"`
	Config          PlatformConfig `json:"config"`
	Metadata        SwapMetadata   `json:"metadata"`
	Payment         sdk.Coin       `json:"payment"`
}

// NewMsgExecuteSwap creates a new MsgExecuteSwap instance
func NewMsgExecuteSwap(sender string, route Route, amountIn, expectedOutput math.Int, slippageBps uint32, deadline int64) *MsgExecuteSwap {
	return &MsgExecuteSwap{
		Sender:         sender,
		Route:          route,
		AmountIn:       amountIn,
		ExpectedOutput: expectedOutput,
		SlippageBps:    slippageBps,
		Deadline:       deadline,
	}
}

// Reset implements the proto.Message interface
func (msg *MsgExecuteSwap) Reset() { *msg = MsgExecuteSwap{} }

// String implements the proto.Message interface
func (msg *MsgExecuteSwap) String() string {
	return fmt.Sprintf("MsgExecuteSwap{sender=%s %s->%s gen=%d amount_in=%s}",
		msg.Sender, msg.Route.SourceDenom, msg.Route.DestDenom, msg.Route.Generation, msg.AmountIn)
}

// ProtoMessage implements the proto.Message interface
func (*MsgExecuteSwap) ProtoMessage() {}

// Type implements the sdk.Msg interface
func (msg MsgExecuteSwap) Type() string {
	return "execute_swap"
}

// GetSigners implements the sdk.Msg interface
func (msg MsgExecuteSwap) GetSigners() []sdk.AccAddress {
	sender, err := sdk.AccAddressFromBech32(msg.Sender)
	if err != nil {
		panic(err)
	}
	return []sdk.AccAddress{sender}
}

// GetSignBytes implements the sdk.Msg interface
func (msg MsgExecuteSwap) GetSignBytes() []byte {
	bz := ModuleCdc.MustMarshalJSON(&msg)
	return sdk.MustSortJSON(bz)
}

// ValidateBasic implements the sdk.Msg interface
func (msg MsgExecuteSwap) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Sender); err != nil {
		return sdkerrors.Wrapf(ErrInvalidAddress, "invalid sender address: %s", err)
	}

	if msg.Recipient != "" {
		if _, err := sdk.AccAddressFromBech32(msg.Recipient); err != nil {
			return sdkerrors.Wrapf(ErrInvalidAddress, "invalid recipient address: %s", err)
		}
	}

	if err := msg.Route.Validate(); err != nil {
		return err
	}

	if msg.AmountIn.IsNil() || !msg.AmountIn.IsPositive() {
		return sdkerrors.Wrap(ErrInvalidAmount, "amount in must be positive")
	}

	if msg.ExpectedOutput.IsNil() || msg.ExpectedOutput.IsNegative() {
		return sdkerrors.Wrap(ErrInvalidAmount, "expected output cannot be negative")
	}

	if msg.SlippageBps > MaxSlippageBps {
		return sdkerrors.Wrapf(ErrInvalidAmount, "slippage %d bps exceeds maximum %d", msg.SlippageBps, MaxSlippageBps)
	}

	if msg.Deadline < 0 {
		return sdkerrors.Wrap(ErrInvalidAmount, "deadline cannot be negative")
	}

	if msg.ReferralFeeBps > MaxReferralFeeBps {
		return sdkerrors.Wrapf(ErrInvalidAmount, "referral fee %d bps exceeds maximum %d", msg.ReferralFeeBps, MaxReferralFeeBps)
	}
	if msg.ReferralFeeBps > 0 && msg.ReferralAccount == "" {
		return sdkerrors.Wrap(ErrInvalidAmount, "referral fee configured without referral account")
	}
	if msg.ReferralAccount != "" {
		if _, err := sdk.AccAddressFromBech32(msg.ReferralAccount); err != nil {
			return sdkerrors.Wrapf(ErrInvalidAddress, "invalid referral account: %s", err)
		}
	}

	if msg.UsePinnedQuote && msg.PinnedQuote == nil {
		return sdkerrors.Wrap(ErrInvalidQuote, "use_pinned_quote set without a pinned quote")
	}

	if !msg.Payment.IsNil() {
		if err := msg.Payment.Validate(); err != nil {
			return sdkerrors.Wrapf(ErrInvalidPayment, "invalid payment: %s", err)
		}
	}

	return nil
}
