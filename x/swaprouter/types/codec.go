package types

import (
	"github.com/cosmos/cosmos-sdk/codec"
	cdctypes "github.com/cosmos/cosmos-sdk/codec/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// RegisterCodec registers the necessary interfaces and concrete types
func RegisterCodec(cdc *codec.LegacyAmino) {
	cdc.RegisterConcrete(&MsgExecuteSwap{}, "swaprouter/MsgExecuteSwap", nil)
	cdc.RegisterConcrete(&MsgApplyCuts{}, "swaprouter/MsgApplyCuts", nil)
	cdc.RegisterConcrete(&MsgSetFeeLedger{}, "swaprouter/MsgSetFeeLedger", nil)
	cdc.RegisterConcrete(&MsgUpdateParams{}, "swaprouter/MsgUpdateParams", nil)
	cdc.RegisterConcrete(&MsgSweepResidual{}, "swaprouter/MsgSweepResidual", nil)
}

// RegisterInterfaces registers the module's interfaces with the interface registry
func RegisterInterfaces(registry cdctypes.InterfaceRegistry) {
	registry.RegisterImplementations((*sdk.Msg)(nil),
		&MsgExecuteSwap{},
		&MsgApplyCuts{},
		&MsgSetFeeLedger{},
		&MsgUpdateParams{},
		&MsgSweepResidual{},
	)
}

// ModuleCdc is the module's amino codec, used for sign bytes.
var ModuleCdc = codec.NewLegacyAmino()

func init() {
	RegisterCodec(ModuleCdc)
	ModuleCdc.Seal()
}
