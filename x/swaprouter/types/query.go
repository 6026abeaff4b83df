package types

import (
	"context"
	"fmt"

	"cosmossdk.io/math"
)

// QueryServer defines the query server interface
type QueryServer interface {
	Params(context.Context, *QueryParamsRequest) (*QueryParamsResponse, error)
	FeeLedger(context.Context, *QueryFeeLedgerRequest) (*QueryFeeLedgerResponse, error)
	Quote(context.Context, *QueryQuoteRequest) (*QueryQuoteResponse, error)
	Modules(context.Context, *QueryModulesRequest) (*QueryModulesResponse, error)
	ModuleOf(context.Context, *QueryModuleOfRequest) (*QueryModuleOfResponse, error)
	TagsOf(context.Context, *QueryTagsOfRequest) (*QueryTagsOfResponse, error)
}

// QueryParamsRequest requests the module parameters
type QueryParamsRequest struct{}

// QueryParamsResponse returns the module parameters
type QueryParamsResponse struct {
	Params Params `json:"params"`
}

// QueryFeeLedgerRequest requests the platform fee configuration
type QueryFeeLedgerRequest struct{}

// QueryFeeLedgerResponse returns the platform fee configuration
type QueryFeeLedgerResponse struct {
	Ledger FeeLedger `json:"ledger"`
}

// QueryQuoteRequest requests a best-route estimate for a pair. Path carries
// the source and destination denoms (with optional intermediates for
// generation-2/3 multi-hop); RouteData optionally carries a generation-4
// route encoding.
type QueryQuoteRequest struct {
	Path                []string `json:"path"`
	AmountIn            math.Int `json:"amount_in"`
	RouteData           []byte   `json:"route_data,omitempty"`
	RouteTypePreference uint32   `json:"route_type_preference"`
}

// QueryQuoteResponse returns the quote engine's estimate
type QueryQuoteResponse struct {
	Quote Quote `json:"quote"`
}

// QueryModulesRequest requests every registered module with its tags
type QueryModulesRequest struct{}

// QueryModulesResponse returns every registered module with its tags
type QueryModulesResponse struct {
	Modules []ModuleInfo `json:"modules"`
}

// QueryModuleOfRequest resolves one operation tag (hex form)
type QueryModuleOfRequest struct {
	Tag string `json:"tag"`
}

// QueryModuleOfResponse returns the module bound to a tag, empty if unbound
type QueryModuleOfResponse struct {
	ModuleAddress string `json:"module_address"`
}

// QueryTagsOfRequest lists the tags owned by one module address
type QueryTagsOfRequest struct {
	ModuleAddress string `json:"module_address"`
}

// QueryTagsOfResponse returns the tags owned by the module
type QueryTagsOfResponse struct {
	Tags []OpTag `json:"tags"`
}

// proto.Message stubs so the query types travel through the gRPC codec.

func (m *QueryParamsRequest) Reset()          { *m = QueryParamsRequest{} }
func (m *QueryParamsRequest) String() string  { return "QueryParamsRequest{}" }
func (*QueryParamsRequest) ProtoMessage()     {}
func (m *QueryParamsResponse) Reset()         { *m = QueryParamsResponse{} }
func (m *QueryParamsResponse) String() string { return m.Params.String() }
func (*QueryParamsResponse) ProtoMessage()    {}

func (m *QueryFeeLedgerRequest) Reset()          { *m = QueryFeeLedgerRequest{} }
func (m *QueryFeeLedgerRequest) String() string  { return "QueryFeeLedgerRequest{}" }
func (*QueryFeeLedgerRequest) ProtoMessage()     {}
func (m *QueryFeeLedgerResponse) Reset()         { *m = QueryFeeLedgerResponse{} }
func (m *QueryFeeLedgerResponse) String() string { return m.Ledger.String() }
func (*QueryFeeLedgerResponse) ProtoMessage()    {}

func (m *QueryQuoteRequest) Reset()         { *m = QueryQuoteRequest{} }
func (m *QueryQuoteRequest) String() string { return fmt.Sprintf("QueryQuoteRequest{path=%v}", m.Path) }
func (*QueryQuoteRequest) ProtoMessage()    {}
func (m *QueryQuoteResponse) Reset()        { *m = QueryQuoteResponse{} }
func (m *QueryQuoteResponse) String() string {
	return fmt.Sprintf("QueryQuoteResponse{generation=%d}", m.Quote.Generation)
}
func (*QueryQuoteResponse) ProtoMessage() {}

func (m *QueryModulesRequest) Reset()         { *m = QueryModulesRequest{} }
func (m *QueryModulesRequest) String() string { return "QueryModulesRequest{}" }
func (*QueryModulesRequest) ProtoMessage()    {}
func (m *QueryModulesResponse) Reset()        { *m = QueryModulesResponse{} }
func (m *QueryModulesResponse) String() string {
	return fmt.Sprintf("QueryModulesResponse{modules=%d}", len(m.Modules))
}
func (*QueryModulesResponse) ProtoMessage() {}

func (m *QueryModuleOfRequest) Reset()          { *m = QueryModuleOfRequest{} }
func (m *QueryModuleOfRequest) String() string  { return fmt.Sprintf("QueryModuleOfRequest{tag=%s}", m.Tag) }
func (*QueryModuleOfRequest) ProtoMessage()     {}
func (m *QueryModuleOfResponse) Reset()         { *m = QueryModuleOfResponse{} }
func (m *QueryModuleOfResponse) String() string { return m.ModuleAddress }
func (*QueryModuleOfResponse) ProtoMessage()    {}

func (m *QueryTagsOfRequest) Reset()          { *m = QueryTagsOfRequest{} }
func (m *QueryTagsOfRequest) String() string  { return m.ModuleAddress }
func (*QueryTagsOfRequest) ProtoMessage()     {}
func (m *QueryTagsOfResponse) Reset()         { *m = QueryTagsOfResponse{} }
func (m *QueryTagsOfResponse) String() string { return fmt.Sprintf("QueryTagsOfResponse{tags=%d}", len(m.Tags)) }
func (*QueryTagsOfResponse) ProtoMessage()    {}
