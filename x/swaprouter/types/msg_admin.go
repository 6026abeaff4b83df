package types

import (
	"fmt"

	sdkerrors "cosmossdk.io/errors"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

var (
	_ sdk.Msg = &MsgSetFeeLedger{}
	_ sdk.Msg = &MsgUpdateParams{}
	_ sdk.Msg = &MsgSweepResidual{}
)

// MsgSetFeeLedger replaces the platform fee configuration.
type MsgSetFeeLedger struct {
	Authority string    `json:"authority"`
	Ledger    FeeLedger `json:"ledger"`
}

// NewMsgSetFeeLedger creates a new MsgSetFeeLedger instance
func NewMsgSetFeeLedger(authority string, ledger FeeLedger) *MsgSetFeeLedger {
	return &MsgSetFeeLedger{Authority: authority, Ledger: ledger}
}

// Reset implements the proto.Message interface
func (msg *MsgSetFeeLedger) Reset() { *msg = MsgSetFeeLedger{} }

// String implements the proto.Message interface
func (msg *MsgSetFeeLedger) String() string {
	return fmt.Sprintf("MsgSetFeeLedger{authority=%s recipient=%s bps=%d}",
		msg.Authority, msg.Ledger.FeeRecipient, msg.Ledger.PlatformFeeBps)
}

// ProtoMessage implements the proto.Message interface
func (*MsgSetFeeLedger) ProtoMessage() {}

// Route implements the sdk.Msg interface
func (msg MsgSetFeeLedger) Route() string { return RouterKey }

// Type implements the sdk.Msg interface
func (msg MsgSetFeeLedger) Type() string { return "set_fee_ledger" }

// GetSigners implements the sdk.Msg interface
func (msg MsgSetFeeLedger) GetSigners() []sdk.AccAddress {
	authority, err := sdk.AccAddressFromBech32(msg.Authority)
	if err != nil {
		panic(err)
	}
	return []sdk.AccAddress{authority}
}

// GetSignBytes implements the sdk.Msg interface
func (msg MsgSetFeeLedger) GetSignBytes() []byte {
	return sdk.MustSortJSON(ModuleCdc.MustMarshalJSON(&msg))
}

// ValidateBasic implements the sdk.Msg interface
func (msg MsgSetFeeLedger) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Authority); err != nil {
		return sdkerrors.Wrapf(ErrInvalidAddress, "invalid authority address: %s", err)
	}
	if err := msg.Ledger.Validate(); err != nil {
		return sdkerrors.Wrap(ErrInvalidAmount, err.Error())
	}
	if msg.Ledger.FeeRecipient != "" {
		if _, err := sdk.AccAddressFromBech32(msg.Ledger.FeeRecipient); err != nil {
			return sdkerrors.Wrapf(ErrInvalidAddress, "invalid fee recipient: %s", err)
		}
	}
	return nil
}

// MsgUpdateParams replaces the module parameters.
type MsgUpdateParams struct {
	Authority string `json:"authority"`
	Params    Params `json:"params"`
}

// NewMsgUpdateParams creates a new MsgUpdateParams instance
func NewMsgUpdateParams(authority string, params Params) *MsgUpdateParams {
	return &MsgUpdateParams{Authority: authority, Params: params}
}

// Reset implements the proto.Message interface
func (msg *MsgUpdateParams) Reset() { *msg = MsgUpdateParams{} }

// String implements the proto.Message interface
func (msg *MsgUpdateParams) String() string {
	return fmt.Sprintf("MsgUpdateParams{authority=%s}", msg.Authority)
}

// ProtoMessage implements the proto.Message interface
func (*MsgUpdateParams) ProtoMessage() {}

// Route implements the sdk.Msg interface
func (msg MsgUpdateParams) Route() string { return RouterKey }

// Type implements the sdk.Msg interface
func (msg MsgUpdateParams) Type() string { return "update_params" }

// GetSigners implements the sdk.Msg interface
func (msg MsgUpdateParams) GetSigners() []sdk.AccAddress {
	authority, err := sdk.AccAddressFromBech32(msg.Authority)
	if err != nil {
		panic(err)
	}
	return []sdk.AccAddress{authority}
}

// GetSignBytes implements the sdk.Msg interface
func (msg MsgUpdateParams) GetSignBytes() []byte {
	return sdk.MustSortJSON(ModuleCdc.MustMarshalJSON(&msg))
}

// ValidateBasic implements the sdk.Msg interface
func (msg MsgUpdateParams) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Authority); err != nil {
		return sdkerrors.Wrapf(ErrInvalidAddress, "invalid authority address: %s", err)
	}
	if err := msg.Params.Validate(); err != nil {
		return sdkerrors.Wrap(ErrInvalidAmount, err.Error())
	}
	return nil
}

// MsgSweepResidual recovers funds stranded in the module account. Settled
// swaps leave the account empty, so anything found here arrived by accident.
type MsgSweepResidual struct {
	Authority string `json:"authority"`
	Denom     string `json:"denom"`
	Recipient string `json:"recipient"`
}

// NewMsgSweepResidual creates a new MsgSweepResidual instance
func NewMsgSweepResidual(authority, denom, recipient string) *MsgSweepResidual {
	return &MsgSweepResidual{Authority: authority, Denom: denom, Recipient: recipient}
}

// Reset implements the proto.Message interface
func (msg *MsgSweepResidual) Reset() { *msg = MsgSweepResidual{} }

// String implements the proto.Message interface
func (msg *MsgSweepResidual) String() string {
	return fmt.Sprintf("MsgSweepResidual{authority=%s denom=%s to=%s}", msg.Authority, msg.Denom, msg.Recipient)
}

// ProtoMessage implements the proto.Message interface
func (*MsgSweepResidual) ProtoMessage() {}

// Route implements the sdk.Msg interface
func (msg MsgSweepResidual) Route() string { return RouterKey }

// Type implements the sdk.Msg interface
func (msg MsgSweepResidual) Type() string { return "sweep_residual" }

// GetSigners implements the sdk.Msg interface
func (msg MsgSweepResidual) GetSigners() []sdk.AccAddress {
	authority, err := sdk.AccAddressFromBech32(msg.Authority)
	if err != nil {
		panic(err)
	}
	return []sdk.AccAddress{authority}
}

// GetSignBytes implements the sdk.Msg interface
func (msg MsgSweepResidual) GetSignBytes() []byte {
	return sdk.MustSortJSON(ModuleCdc.MustMarshalJSON(&msg))
}

// ValidateBasic implements the sdk.Msg interface
func (msg MsgSweepResidual) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Authority); err != nil {
		return sdkerrors.Wrapf(ErrInvalidAddress, "invalid authority address: %s", err)
	}
	if err := ValidateDenom(msg.Denom); err != nil {
		return sdkerrors.Wrap(ErrInvalidToken, err.Error())
	}
	if _, err := sdk.AccAddressFromBech32(msg.Recipient); err != nil {
		return sdkerrors.Wrapf(ErrInvalidAddress, "invalid recipient address: %s", err)
	}
	return nil
}
