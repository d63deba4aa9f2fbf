// Package customerpb describes the CustomerDirectory gRPC service. Messages
// are protobuf well-known types, so no generated message code is needed:
// customers travel as google.protobuf.Struct, ids as StringValue.
package customerpb

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

const ServiceName = "ecom.customer.v1.CustomerDirectory"

const (
	CustomerDirectory_CreateCustomer_FullMethodName   = "/" + ServiceName + "/CreateCustomer"
	CustomerDirectory_GetCustomer_FullMethodName      = "/" + ServiceName + "/GetCustomer"
	CustomerDirectory_ValidateCustomer_FullMethodName = "/" + ServiceName + "/ValidateCustomer"
)

// CustomerDirectoryClient is the client API for the CustomerDirectory service.
type CustomerDirectoryClient interface {
	// CreateCustomer takes {"name","email"} and returns the stored customer.
	CreateCustomer(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	GetCustomer(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*structpb.Struct, error)
	ValidateCustomer(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*wrapperspb.BoolValue, error)
}

type customerDirectoryClient struct {
	cc grpc.ClientConnInterface
}

func NewCustomerDirectoryClient(cc grpc.ClientConnInterface) CustomerDirectoryClient {
	return &customerDirectoryClient{cc}
}

func (c *customerDirectoryClient) CreateCustomer(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, CustomerDirectory_CreateCustomer_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *customerDirectoryClient) GetCustomer(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, CustomerDirectory_GetCustomer_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *customerDirectoryClient) ValidateCustomer(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*wrapperspb.BoolValue, error) {
	out := new(wrapperspb.BoolValue)
	if err := c.cc.Invoke(ctx, CustomerDirectory_ValidateCustomer_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// CustomerDirectoryServer is the server API for the CustomerDirectory service.
// Implementations must embed UnimplementedCustomerDirectoryServer.
type CustomerDirectoryServer interface {
	CreateCustomer(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetCustomer(context.Context, *wrapperspb.StringValue) (*structpb.Struct, error)
	ValidateCustomer(context.Context, *wrapperspb.StringValue) (*wrapperspb.BoolValue, error)
	mustEmbedUnimplementedCustomerDirectoryServer()
}

type UnimplementedCustomerDirectoryServer struct{}

func (UnimplementedCustomerDirectoryServer) CreateCustomer(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, status.Errorf(codes.Unimplemented, "method CreateCustomer not implemented")
}
func (UnimplementedCustomerDirectoryServer) GetCustomer(context.Context, *wrapperspb.StringValue) (*structpb.Struct, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetCustomer not implemented")
}
func (UnimplementedCustomerDirectoryServer) ValidateCustomer(context.Context, *wrapperspb.StringValue) (*wrapperspb.BoolValue, error) {
	return nil, status.Errorf(codes.Unimplemented, "method ValidateCustomer not implemented")
}
func (UnimplementedCustomerDirectoryServer) mustEmbedUnimplementedCustomerDirectoryServer() {}

func RegisterCustomerDirectoryServer(s grpc.ServiceRegistrar, srv CustomerDirectoryServer) {
	s.RegisterService(&CustomerDirectory_ServiceDesc, srv)
}

func _CustomerDirectory_CreateCustomer_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CustomerDirectoryServer).CreateCustomer(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: CustomerDirectory_CreateCustomer_FullMethodName}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(CustomerDirectoryServer).CreateCustomer(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

func _CustomerDirectory_GetCustomer_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(wrapperspb.StringValue)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CustomerDirectoryServer).GetCustomer(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: CustomerDirectory_GetCustomer_FullMethodName}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(CustomerDirectoryServer).GetCustomer(ctx, req.(*wrapperspb.StringValue))
	}
	return interceptor(ctx, in, info, handler)
}

func _CustomerDirectory_ValidateCustomer_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(wrapperspb.StringValue)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CustomerDirectoryServer).ValidateCustomer(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: CustomerDirectory_ValidateCustomer_FullMethodName}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(CustomerDirectoryServer).ValidateCustomer(ctx, req.(*wrapperspb.StringValue))
	}
	return interceptor(ctx, in, info, handler)
}

var CustomerDirectory_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*CustomerDirectoryServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "CreateCustomer", Handler: _CustomerDirectory_CreateCustomer_Handler},
		{MethodName: "GetCustomer", Handler: _CustomerDirectory_GetCustomer_Handler},
		{MethodName: "ValidateCustomer", Handler: _CustomerDirectory_ValidateCustomer_Handler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "ecom/customer/v1/customer.proto",
}
