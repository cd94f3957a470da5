package grpc

import (
	"context"

	"google.golang.org/grpc"
)

const serviceName = "subscriptions.SubscriptionsService"

const (
	SubscriptionsServiceUpsertFullMethodName = "/" + serviceName + "/Upsert"
	SubscriptionsServiceGetFullMethodName    = "/" + serviceName + "/Get"
	SubscriptionsServiceListFullMethodName   = "/" + serviceName + "/List"
	SubscriptionsServiceCancelFullMethodName = "/" + serviceName + "/Cancel"
	SubscriptionsServiceExpireFullMethodName = "/" + serviceName + "/Expire"
	SubscriptionsServiceDeleteFullMethodName = "/" + serviceName + "/Delete"
)

type SubscriptionsServiceServer interface {
	Upsert(context.Context, *UpsertSubscriptionRequest) (*SubscriptionResponse, error)
	Get(context.Context, *SubscriptionIDRequest) (*SubscriptionResponse, error)
	List(context.Context, *ListSubscriptionsRequest) (*ListSubscriptionsResponse, error)
	Cancel(context.Context, *SubscriptionIDRequest) (*SubscriptionResponse, error)
	Expire(context.Context, *SubscriptionIDRequest) (*SubscriptionResponse, error)
	Delete(context.Context, *SubscriptionIDRequest) (*DeleteSubscriptionResponse, error)
}

func RegisterSubscriptionsServiceServer(s grpc.ServiceRegistrar, srv SubscriptionsServiceServer) {
	s.RegisterService(&SubscriptionsServiceDesc, srv)
}

// unaryHandler adapts one typed server method to the grpc.MethodDesc handler shape.
func unaryHandler[Req any, Resp any](
	fullMethod string,
	call func(SubscriptionsServiceServer, context.Context, *Req) (*Resp, error),
) func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	return func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(SubscriptionsServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{
			Server:     srv,
			FullMethod: fullMethod,
		}
		handler := func(ctx context.Context, req interface{}) (interface{}, error) {
			return call(srv.(SubscriptionsServiceServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

var SubscriptionsServiceDesc = grpc.ServiceDesc{
	ServiceName: serviceName,
	HandlerType: (*SubscriptionsServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "Upsert",
			Handler:    unaryHandler(SubscriptionsServiceUpsertFullMethodName, SubscriptionsServiceServer.Upsert),
		},
		{
			MethodName: "Get",
			Handler:    unaryHandler(SubscriptionsServiceGetFullMethodName, SubscriptionsServiceServer.Get),
		},
		{
			MethodName: "List",
			Handler:    unaryHandler(SubscriptionsServiceListFullMethodName, SubscriptionsServiceServer.List),
		},
		{
			MethodName: "Cancel",
			Handler:    unaryHandler(SubscriptionsServiceCancelFullMethodName, SubscriptionsServiceServer.Cancel),
		},
		{
			MethodName: "Expire",
			Handler:    unaryHandler(SubscriptionsServiceExpireFullMethodName, SubscriptionsServiceServer.Expire),
		},
		{
			MethodName: "Delete",
			Handler:    unaryHandler(SubscriptionsServiceDeleteFullMethodName, SubscriptionsServiceServer.Delete),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "subscriptions.proto",
}

// SubscriptionsServiceClient calls the service over a connection created with
// grpc.CallContentSubtype(CodecName).
type SubscriptionsServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewSubscriptionsServiceClient(cc grpc.ClientConnInterface) *SubscriptionsServiceClient {
	return &SubscriptionsServiceClient{cc: cc}
}

func (c *SubscriptionsServiceClient) Upsert(ctx context.Context, in *UpsertSubscriptionRequest, opts ...grpc.CallOption) (*SubscriptionResponse, error) {
	out := new(SubscriptionResponse)
	if err := c.invoke(ctx, SubscriptionsServiceUpsertFullMethodName, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *SubscriptionsServiceClient) Get(ctx context.Context, in *SubscriptionIDRequest, opts ...grpc.CallOption) (*SubscriptionResponse, error) {
	out := new(SubscriptionResponse)
	if err := c.invoke(ctx, SubscriptionsServiceGetFullMethodName, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *SubscriptionsServiceClient) List(ctx context.Context, in *ListSubscriptionsRequest, opts ...grpc.CallOption) (*ListSubscriptionsResponse, error) {
	out := new(ListSubscriptionsResponse)
	if err := c.invoke(ctx, SubscriptionsServiceListFullMethodName, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *SubscriptionsServiceClient) Cancel(ctx context.Context, in *SubscriptionIDRequest, opts ...grpc.CallOption) (*SubscriptionResponse, error) {
	out := new(SubscriptionResponse)
	if err := c.invoke(ctx, SubscriptionsServiceCancelFullMethodName, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *SubscriptionsServiceClient) Expire(ctx context.Context, in *SubscriptionIDRequest, opts ...grpc.CallOption) (*SubscriptionResponse, error) {
	out := new(SubscriptionResponse)
	if err := c.invoke(ctx, SubscriptionsServiceExpireFullMethodName, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *SubscriptionsServiceClient) Delete(ctx context.Context, in *SubscriptionIDRequest, opts ...grpc.CallOption) (*DeleteSubscriptionResponse, error) {
	out := new(DeleteSubscriptionResponse)
	if err := c.invoke(ctx, SubscriptionsServiceDeleteFullMethodName, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *SubscriptionsServiceClient) invoke(ctx context.Context, method string, in, out interface{}, opts []grpc.CallOption) error {
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	return c.cc.Invoke(ctx, method, in, out, opts...)
}
