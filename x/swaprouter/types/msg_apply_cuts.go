package types

import (
	"fmt"

	sdkerrors "cosmossdk.io/errors"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

var _ sdk.Msg = &MsgApplyCuts{}

// MsgApplyCuts applies a batch of registry mutations atomically. If
// InitModule is set, its init handler runs with InitData inside the same
// atomic unit; its failure rolls back the whole batch.
type MsgApplyCuts struct {
	Authority  string `json:"authority"`
	Cuts       []Cut  `json:"cuts"`
	InitModule string `json:"init_module,omitempty"`
	InitData   []byte `json:"init_data,omitempty"`
}

// NewMsgApplyCuts creates a new MsgApplyCuts instance
func NewMsgApplyCuts(authority string, cuts []Cut, initModule string, initData []byte) *MsgApplyCuts {
	return &MsgApplyCuts{
		Authority:  authority,
		Cuts:       cuts,
		InitModule: initModule,
		InitData:   initData,
	}
}

// Reset implements the proto.Message interface
func (msg *MsgApplyCuts) Reset() { *msg = MsgApplyCuts{} }

// String implements the proto.Message interface
func (msg *MsgApplyCuts) String() string {
	return fmt.Sprintf("MsgApplyCuts{authority=%s cuts=%d init=%s}", msg.Authority, len(msg.Cuts), msg.InitModule)
}

// ProtoMessage implements the proto.Message interface
func (*MsgApplyCuts) ProtoMessage() {}

// Route implements the sdk.Msg interface
func (msg MsgApplyCuts) Route() string {
	return RouterKey
}

// Type implements the sdk.Msg interface
func (msg MsgApplyCuts) Type() string {
	return "apply_cuts"
}

// GetSigners implements the sdk.Msg interface
func (msg MsgApplyCuts) GetSigners() []sdk.AccAddress {
	authority, err := sdk.AccAddressFromBech32(msg.Authority)
	if err != nil {
		panic(err)
	}
	return []sdk.AccAddress{authority}
}

// GetSignBytes implements the sdk.Msg interface
func (msg MsgApplyCuts) GetSignBytes() []byte {
	bz := ModuleCdc.MustMarshalJSON(&msg)
	return sdk.MustSortJSON(bz)
}

// ValidateBasic implements the sdk.Msg interface
func (msg MsgApplyCuts) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Authority); err != nil {
		return sdkerrors.Wrapf(ErrInvalidAddress, "invalid authority address: %s", err)
	}

	if len(msg.Cuts) == 0 && msg.InitModule == "" {
		return sdkerrors.Wrap(ErrInvalidCut, "batch has no cuts and no init module")
	}

	for i, cut := range msg.Cuts {
		if err := cut.Validate(); err != nil {
			return sdkerrors.Wrapf(ErrInvalidCut, "cut %d: %s", i, err)
		}
		if cut.ModuleAddress != "" {
			if _, err := sdk.AccAddressFromBech32(cut.ModuleAddress); err != nil {
				return sdkerrors.Wrapf(ErrInvalidAddress, "cut %d module address: %s", i, err)
			}
		}
	}

	if msg.InitModule != "" {
		if _, err := sdk.AccAddressFromBech32(msg.InitModule); err != nil {
			return sdkerrors.Wrapf(ErrInvalidAddress, "invalid init module address: %s", err)
		}
	}
	if len(msg.InitData) > 0 && msg.InitModule == "" {
		return sdkerrors.Wrap(ErrInvalidCut, "init data without an init module")
	}

	return nil
}
