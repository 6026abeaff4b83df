package types

const (
	// ModuleName defines the module name
	ModuleName = "swaprouter"

	// StoreKey defines the primary module store key
	StoreKey = ModuleName

	// RouterKey defines the module's message routing key
	RouterKey = ModuleName

	// QuerierRoute defines the module's query routing key
	QuerierRoute = ModuleName
)

// Store key prefixes
var (
	ParamsKey     = []byte{0x01} // key for module parameters
	FeeLedgerKey  = []byte{0x02} // key for the platform fee ledger
	TagBindingKey = []byte{0x03} // prefix for operation tag -> module bindings
	ModuleTagsKey = []byte{0x04} // prefix for per-module owned tag sets
	ReentrancyKey = []byte{0x05} // key for the in-progress execution flag
	SettlementKey = []byte{0x06} // key for the gen-4 settlement phase
)

// GetTagBindingKey returns the store key for an operation tag binding
func GetTagBindingKey(tag OpTag) []byte {
	return append(TagBindingKey, tag[:]...)
}

// GetModuleTagsKey returns the store key for a module's owned tag set
func GetModuleTagsKey(moduleAddr string) []byte {
	return append(ModuleTagsKey, []byte(moduleAddr)...)
}
