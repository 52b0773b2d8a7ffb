package grpcserver

import (
	"context"

	"google.golang.org/grpc"
)

const serviceName = "luggage.v1.Storage"

// StorageServer is the luggage.v1.Storage service.
type StorageServer interface {
	CreateReservation(ctx context.Context, req *CreateReservationRequest) (*CreateReservationResponse, error)
	CancelReservation(ctx context.Context, req *CancelReservationRequest) (*CancelReservationResponse, error)
	CheckIn(ctx context.Context, req *CheckInRequest) (*CheckInResponse, error)
	CheckOut(ctx context.Context, req *CheckOutRequest) (*CheckOutResponse, error)
	GetStoreOccupancy(ctx context.Context, req *GetStoreOccupancyRequest) (*GetStoreOccupancyResponse, error)
}

func RegisterStorageServer(s grpc.ServiceRegistrar, srv StorageServer) {
	s.RegisterService(&StorageServiceDesc, srv)
}

func unaryHandler[Req any, Resp any](method string, call func(StorageServer, context.Context, *Req) (*Resp, error)) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: method,
		Handler: func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(StorageServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/" + serviceName + "/" + method}
			handler := func(ctx context.Context, req interface{}) (interface{}, error) {
				return call(srv.(StorageServer), ctx, req.(*Req))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

var StorageServiceDesc = grpc.ServiceDesc{
	ServiceName: serviceName,
	HandlerType: (*StorageServer)(nil),
	Methods: []grpc.MethodDesc{
		unaryHandler("CreateReservation", StorageServer.CreateReservation),
		unaryHandler("CancelReservation", StorageServer.CancelReservation),
		unaryHandler("CheckIn", StorageServer.CheckIn),
		unaryHandler("CheckOut", StorageServer.CheckOut),
		unaryHandler("GetStoreOccupancy", StorageServer.GetStoreOccupancy),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "luggage/v1/storage.proto",
}

// Client calls luggage.v1.Storage with the JSON codec.
type Client struct {
	cc grpc.ClientConnInterface
}

func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in interface{}, opts ...grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append(opts, grpc.CallContentSubtype(CodecName))
	if err := cc.Invoke(ctx, "/"+serviceName+"/"+method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateReservation(ctx context.Context, in *CreateReservationRequest, opts ...grpc.CallOption) (*CreateReservationResponse, error) {
	return invoke[CreateReservationResponse](ctx, c.cc, "CreateReservation", in, opts...)
}

func (c *Client) CancelReservation(ctx context.Context, in *CancelReservationRequest, opts ...grpc.CallOption) (*CancelReservationResponse, error) {
	return invoke[CancelReservationResponse](ctx, c.cc, "CancelReservation", in, opts...)
}

func (c *Client) CheckIn(ctx context.Context, in *CheckInRequest, opts ...grpc.CallOption) (*CheckInResponse, error) {
	return invoke[CheckInResponse](ctx, c.cc, "CheckIn", in, opts...)
}

func (c *Client) CheckOut(ctx context.Context, in *CheckOutRequest, opts ...grpc.CallOption) (*CheckOutResponse, error) {
	return invoke[CheckOutResponse](ctx, c.cc, "CheckOut", in, opts...)
}

func (c *Client) GetStoreOccupancy(ctx context.Context, in *GetStoreOccupancyRequest, opts ...grpc.CallOption) (*GetStoreOccupancyResponse, error) {
	return invoke[GetStoreOccupancyResponse](ctx, c.cc, "GetStoreOccupancy", in, opts...)
}
