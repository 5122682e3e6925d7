package invoice

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

const ServiceName = "invoice.v1.InvoiceMutations"

const (
	MethodCreateInvoice = "/" + ServiceName + "/CreateInvoice"
	MethodUpdateInvoice = "/" + ServiceName + "/UpdateInvoice"
	MethodDeleteInvoice = "/" + ServiceName + "/DeleteInvoice"
	MethodAuthenticate  = "/" + ServiceName + "/Authenticate"
)

// InvoiceMutationsServer is the server API. Requests carry form fields as a
// Struct; replies are {redirect} or {errors, message}.
type InvoiceMutationsServer interface {
	CreateInvoice(context.Context, *structpb.Struct) (*structpb.Struct, error)
	UpdateInvoice(context.Context, *structpb.Struct) (*structpb.Struct, error)
	DeleteInvoice(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Authenticate(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

func RegisterInvoiceMutationsServer(s grpc.ServiceRegistrar, srv InvoiceMutationsServer) {
	s.RegisterService(&ServiceDesc, srv)
}

func unary(method string, call func(InvoiceMutationsServer, context.Context, *structpb.Struct) (*structpb.Struct, error)) grpc.MethodHandler {
	return func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
		in := new(structpb.Struct)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(InvoiceMutationsServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: method}
		handler := func(ctx context.Context, req interface{}) (interface{}, error) {
			return call(srv.(InvoiceMutationsServer), ctx, req.(*structpb.Struct))
		}
		return interceptor(ctx, in, info, handler)
	}
}

var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*InvoiceMutationsServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "CreateInvoice", Handler: unary(MethodCreateInvoice, InvoiceMutationsServer.CreateInvoice)},
		{MethodName: "UpdateInvoice", Handler: unary(MethodUpdateInvoice, InvoiceMutationsServer.UpdateInvoice)},
		{MethodName: "DeleteInvoice", Handler: unary(MethodDeleteInvoice, InvoiceMutationsServer.DeleteInvoice)},
		{MethodName: "Authenticate", Handler: unary(MethodAuthenticate, InvoiceMutationsServer.Authenticate)},
	},
	Metadata: "invoice/v1/invoice.proto",
}

// Client is a thin client for the service.
type Client struct {
	cc grpc.ClientConnInterface
}

func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

func (c *Client) invoke(ctx context.Context, method string, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateInvoice(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, MethodCreateInvoice, in, opts...)
}

func (c *Client) UpdateInvoice(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, MethodUpdateInvoice, in, opts...)
}

func (c *Client) DeleteInvoice(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, MethodDeleteInvoice, in, opts...)
}

func (c *Client) Authenticate(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, MethodAuthenticate, in, opts...)
}
