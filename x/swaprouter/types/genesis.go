package types

import (
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"
	authtypes "github.com/cosmos/cosmos-sdk/x/auth/types"
)

// RouterAddress returns the module account address: the router's stable,
// externally visible identity. Registry cuts swap handlers behind it.
func RouterAddress() sdk.AccAddress {
	return authtypes.NewModuleAddress(ModuleName)
}

// GenesisState holds the swap router module's genesis data.
type GenesisState struct {
	Params    Params          `json:"params"`
	FeeLedger FeeLedger       `json:"fee_ledger"`
	Bindings  []ModuleBinding `json:"bindings"`
}

// Reset implements the proto.Message interface
func (gs *GenesisState) Reset() { *gs = GenesisState{} }

// String implements the proto.Message interface
func (gs *GenesisState) String() string {
	return fmt.Sprintf("GenesisState{bindings=%d}", len(gs.Bindings))
}

// ProtoMessage implements the proto.Message interface
func (*GenesisState) ProtoMessage() {}

// DefaultGenesis returns the default genesis state: default params, an unset
// fee ledger, and the built-in swap handler bound to the quote and execute
// tags.
func DefaultGenesis() *GenesisState {
	self := RouterAddress().String()
	return &GenesisState{
		Params:    DefaultParams(),
		FeeLedger: DefaultFeeLedger(),
		Bindings: []ModuleBinding{
			{Tag: OpTagQuote, ModuleAddress: self},
			{Tag: OpTagExecute, ModuleAddress: self},
		},
	}
}

// Validate ensures the genesis state is well-formed.
func (gs GenesisState) Validate() error {
	if err := gs.Params.Validate(); err != nil {
		return fmt.Errorf("params: %w", err)
	}
	if err := gs.FeeLedger.Validate(); err != nil {
		return fmt.Errorf("fee ledger: %w", err)
	}
	if gs.FeeLedger.FeeRecipient != "" {
		if _, err := sdk.AccAddressFromBech32(gs.FeeLedger.FeeRecipient); err != nil {
			return fmt.Errorf("fee ledger recipient: %w", err)
		}
	}

	seen := make(map[OpTag]struct{}, len(gs.Bindings))
	for i, b := range gs.Bindings {
		if b.Tag.IsZero() {
			return fmt.Errorf("binding %d: zero operation tag", i)
		}
		if _, dup := seen[b.Tag]; dup {
			return fmt.Errorf("binding %d: duplicate tag %s", i, b.Tag)
		}
		seen[b.Tag] = struct{}{}
		if _, err := sdk.AccAddressFromBech32(b.ModuleAddress); err != nil {
			return fmt.Errorf("binding %d: module address: %w", i, err)
		}
	}
	return nil
}
