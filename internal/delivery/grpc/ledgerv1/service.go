// Package ledgerv1 holds the ledger.v1.Ledger service contract. Messages and
// descriptors mirror ledger.proto and are encoded with the JSON codec.
package ledgerv1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	Ledger_CreateAccount_FullMethodName = "/ledger.v1.Ledger/CreateAccount"
	Ledger_GetAccount_FullMethodName    = "/ledger.v1.Ledger/GetAccount"
	Ledger_Transfer_FullMethodName      = "/ledger.v1.Ledger/Transfer"
	Ledger_ListLegs_FullMethodName      = "/ledger.v1.Ledger/ListLegs"
)

type LedgerClient interface {
	CreateAccount(ctx context.Context, in *CreateAccountRequest, opts ...grpc.CallOption) (*CreateAccountResponse, error)
	GetAccount(ctx context.Context, in *GetAccountRequest, opts ...grpc.CallOption) (*Account, error)
	Transfer(ctx context.Context, in *TransferRequest, opts ...grpc.CallOption) (*TransferResponse, error)
	ListLegs(ctx context.Context, in *ListLegsRequest, opts ...grpc.CallOption) (*ListLegsResponse, error)
}

type ledgerClient struct {
	cc grpc.ClientConnInterface
}

// NewLedgerClient expects cc to be dialed with CallContentSubtype(CodecName).
func NewLedgerClient(cc grpc.ClientConnInterface) LedgerClient {
	return &ledgerClient{cc: cc}
}

func (c *ledgerClient) CreateAccount(ctx context.Context, in *CreateAccountRequest, opts ...grpc.CallOption) (*CreateAccountResponse, error) {
	out := new(CreateAccountResponse)
	if err := c.cc.Invoke(ctx, Ledger_CreateAccount_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *ledgerClient) GetAccount(ctx context.Context, in *GetAccountRequest, opts ...grpc.CallOption) (*Account, error) {
	out := new(Account)
	if err := c.cc.Invoke(ctx, Ledger_GetAccount_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *ledgerClient) Transfer(ctx context.Context, in *TransferRequest, opts ...grpc.CallOption) (*TransferResponse, error) {
	out := new(TransferResponse)
	if err := c.cc.Invoke(ctx, Ledger_Transfer_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *ledgerClient) ListLegs(ctx context.Context, in *ListLegsRequest, opts ...grpc.CallOption) (*ListLegsResponse, error) {
	out := new(ListLegsResponse)
	if err := c.cc.Invoke(ctx, Ledger_ListLegs_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

type LedgerServer interface {
	CreateAccount(context.Context, *CreateAccountRequest) (*CreateAccountResponse, error)
	GetAccount(context.Context, *GetAccountRequest) (*Account, error)
	Transfer(context.Context, *TransferRequest) (*TransferResponse, error)
	ListLegs(context.Context, *ListLegsRequest) (*ListLegsResponse, error)
}

// UnimplementedLedgerServer can be embedded to stay forward compatible.
type UnimplementedLedgerServer struct{}

func (UnimplementedLedgerServer) CreateAccount(context.Context, *CreateAccountRequest) (*CreateAccountResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method CreateAccount not implemented")
}

func (UnimplementedLedgerServer) GetAccount(context.Context, *GetAccountRequest) (*Account, error) {
	return nil, status.Error(codes.Unimplemented, "method GetAccount not implemented")
}

func (UnimplementedLedgerServer) Transfer(context.Context, *TransferRequest) (*TransferResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Transfer not implemented")
}

func (UnimplementedLedgerServer) ListLegs(context.Context, *ListLegsRequest) (*ListLegsResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ListLegs not implemented")
}

func RegisterLedgerServer(s grpc.ServiceRegistrar, srv LedgerServer) {
	s.RegisterService(&Ledger_ServiceDesc, srv)
}

func unaryHandler[Req any, Resp any](
	fullMethod string,
	call func(LedgerServer, context.Context, *Req) (*Resp, error),
) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(LedgerServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(LedgerServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

var Ledger_ServiceDesc = grpc.ServiceDesc{
	ServiceName: "ledger.v1.Ledger",
	HandlerType: (*LedgerServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "CreateAccount",
			Handler:    unaryHandler(Ledger_CreateAccount_FullMethodName, LedgerServer.CreateAccount),
		},
		{
			MethodName: "GetAccount",
			Handler:    unaryHandler(Ledger_GetAccount_FullMethodName, LedgerServer.GetAccount),
		},
		{
			MethodName: "Transfer",
			Handler:    unaryHandler(Ledger_Transfer_FullMethodName, LedgerServer.Transfer),
		},
		{
			MethodName: "ListLegs",
			Handler:    unaryHandler(Ledger_ListLegs_FullMethodName, LedgerServer.ListLegs),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "internal/delivery/grpc/ledgerv1/ledger.proto",
}
