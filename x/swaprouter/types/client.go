package types

import (
	"context"

	grpc1 "github.com/cosmos/gogoproto/grpc"
	grpc "google.golang.org/grpc"
)

// QueryClient is the client API for Query service.
type QueryClient interface {
	Params(ctx context.Context, in *QueryParamsRequest, opts ...grpc.CallOption) (*QueryParamsResponse, error)
	FeeLedger(ctx context.Context, in *QueryFeeLedgerRequest, opts ...grpc.CallOption) (*QueryFeeLedgerResponse, error)
	Quote(ctx context.Context, in *QueryQuoteRequest, opts ...grpc.CallOption) (*QueryQuoteResponse, error)
	Modules(ctx context.Context, in *QueryModulesRequest, opts ...grpc.CallOption) (*QueryModulesResponse, error)
	ModuleOf(ctx context.Context, in *QueryModuleOfRequest, opts ...grpc.CallOption) (*QueryModuleOfResponse, error)
	TagsOf(ctx context.Context, in *QueryTagsOfRequest, opts ...grpc.CallOption) (*QueryTagsOfResponse, error)
}

type queryClient struct {
	cc grpc1.ClientConn
}

// NewQueryClient builds a QueryClient over a client connection.
func NewQueryClient(cc grpc1.ClientConn) QueryClient {
	return &queryClient{cc}
}

func (c *queryClient) Params(ctx context.Context, in *QueryParamsRequest, opts ...grpc.CallOption) (*QueryParamsResponse, error) {
	out := new(QueryParamsResponse)
	err := c.cc.Invoke(ctx, "/vortex.swaprouter.v1.Query/Params", in, out, opts...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *queryClient) FeeLedger(ctx context.Context, in *QueryFeeLedgerRequest, opts ...grpc.CallOption) (*QueryFeeLedgerResponse, error) {
	out := new(QueryFeeLedgerResponse)
	err := c.cc.Invoke(ctx, "/vortex.swaprouter.v1.Query/FeeLedger", in, out, opts...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *queryClient) Quote(ctx context.Context, in *QueryQuoteRequest, opts ...grpc.CallOption) (*QueryQuoteResponse, error) {
	out := new(QueryQuoteResponse)
	err := c.cc.Invoke(ctx, "/vortex.swaprouter.v1.Query/Quote", in, out, opts...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *queryClient) Modules(ctx context.Context, in *QueryModulesRequest, opts ...grpc.CallOption) (*QueryModulesResponse, error) {
	out := new(QueryModulesResponse)
	err := c.cc.Invoke(ctx, "/vortex.swaprouter.v1.Query/Modules", in, out, opts...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *queryClient) ModuleOf(ctx context.Context, in *QueryModuleOfRequest, opts ...grpc.CallOption) (*QueryModuleOfResponse, error) {
	out := new(QueryModuleOfResponse)
	err := c.cc.Invoke(ctx, "/vortex.swaprouter.v1.Query/ModuleOf", in, out, opts...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *queryClient) TagsOf(ctx context.Context, in *QueryTagsOfRequest, opts ...grpc.CallOption) (*QueryTagsOfResponse, error) {
	out := new(QueryTagsOfResponse)
	err := c.cc.Invoke(ctx, "/vortex.swaprouter.v1.Query/TagsOf", in, out, opts...)
	if err != nil {
		return nil, err
	}
	return out, nil
}
