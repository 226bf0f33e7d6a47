package grpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// RegisterRiskServiceServer registers srv on s.
func RegisterRiskServiceServer(s grpc.ServiceRegistrar, srv RiskServiceServer) {
	s.RegisterService(&riskServiceDesc, srv)
}

var riskServiceDesc = grpc.ServiceDesc{
	ServiceName: RiskServiceName,
	HandlerType: (*RiskServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unaryMethod("Score", RiskServiceServer.Score),
		unaryMethod("Classify", RiskServiceServer.Classify),
		unaryMethod("Insights", RiskServiceServer.Insights),
		unaryMethod("Vulnerabilities", RiskServiceServer.Vulnerabilities),
		unaryMethod("AssessSignup", RiskServiceServer.AssessSignup),
		unaryMethod("AssessDomain", RiskServiceServer.AssessDomain),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "securepay/risk/v1/risk.proto",
}

type unaryCall func(RiskServiceServer, context.Context, *structpb.Struct) (*structpb.Struct, error)

// unaryMethod builds the method descriptor that protoc-gen-go-grpc would generate for name.
func unaryMethod(name string, call unaryCall) grpc.MethodDesc {
	fullMethod := "/" + RiskServiceName + "/" + name
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
			in := new(structpb.Struct)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(RiskServiceServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
			handler := func(ctx context.Context, req interface{}) (interface{}, error) {
				return call(srv.(RiskServiceServer), ctx, req.(*structpb.Struct))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

// RiskServiceClient is the client API of RiskService.
type RiskServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewRiskServiceClient creates a client on an existing connection.
func NewRiskServiceClient(cc grpc.ClientConnInterface) *RiskServiceClient {
	return &RiskServiceClient{cc: cc}
}

// Call invokes method with in and returns the response struct.
func (c *RiskServiceClient) Call(ctx context.Context, method string, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, "/"+RiskServiceName+"/"+method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
