package types

import (
	"strings"
	"testing"
)

func TestDefaultGenesis(t *testing.T) {
	genesis := DefaultGenesis()
	if genesis == nil {
		t.Fatal("DefaultGenesis() returned nil")
	}
	if err := genesis.Validate(); err != nil {
		t.Fatalf("default genesis failed validation: %v", err)
	}

	if len(genesis.Bindings) != 2 {
		t.Fatalf("default genesis has %d bindings, want 2", len(genesis.Bindings))
	}
	self := RouterAddress().String()
	seen := map[OpTag]bool{}
	for _, b := range genesis.Bindings {
		if b.ModuleAddress != self {
			t.Errorf("binding %s points at %s, want the router address %s", b.Tag, b.ModuleAddress, self)
		}
		seen[b.Tag] = true
	}
	if !seen[OpTagQuote] || !seen[OpTagExecute] {
		t.Errorf("default bindings missing canonical tags: %v", seen)
	}

	if genesis.FeeLedger.Enabled() {
		t.Error("default genesis ships with platform fees enabled")
	}
}

func TestGenesisStateValidate(t *testing.T) {
	validModule := RouterAddress().String()

	tests := []struct {
		name    string
		genesis func() *GenesisState
		wantErr bool
		errMsg  string
	}{
		{
			name:    "valid default",
			genesis: DefaultGenesis,
			wantErr: false,
		},
		{
			name: "bad params",
			genesis: func() *GenesisState {
				gs := DefaultGenesis()
				gs.Params.NativeDenom = ""
				return gs
			},
			wantErr: true,
			errMsg:  "params",
		},
		{
			name: "bad ledger",
			genesis: func() *GenesisState {
				gs := DefaultGenesis()
				gs.FeeLedger.PlatformFeeBps = MaxPlatformFeeBps + 1
				gs.FeeLedger.FeeRecipient = validModule
				return gs
			},
			wantErr: true,
			errMsg:  "fee ledger",
		},
		{
			name: "ledger recipient not bech32",
			genesis: func() *GenesisState {
				gs := DefaultGenesis()
				gs.FeeLedger.FeeRecipient = "not-an-address"
				gs.FeeLedger.PlatformFeeBps = 50
				return gs
			},
			wantErr: true,
			errMsg:  "fee ledger recipient",
		},
		{
			name: "zero tag binding",
			genesis: func() *GenesisState {
				gs := DefaultGenesis()
				gs.Bindings = append(gs.Bindings, ModuleBinding{ModuleAddress: validModule})
				return gs
			},
			wantErr: true,
			errMsg:  "zero operation tag",
		},
		{
			name: "duplicate tag binding",
			genesis: func() *GenesisState {
				gs := DefaultGenesis()
				gs.Bindings = append(gs.Bindings, ModuleBinding{Tag: OpTagQuote, ModuleAddress: validModule})
				return gs
			},
			wantErr: true,
			errMsg:  "duplicate tag",
		},
		{
			name: "binding address not bech32",
			genesis: func() *GenesisState {
				gs := DefaultGenesis()
				gs.Bindings[0].ModuleAddress = "not-an-address"
				return gs
			},
			wantErr: true,
			errMsg:  "module address",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.genesis().Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("GenesisState.Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr && !strings.Contains(err.Error(), tt.errMsg) {
				t.Errorf("GenesisState.Validate() error = %v, want error containing %q", err, tt.errMsg)
			}
		})
	}
}
