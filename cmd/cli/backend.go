package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/types/known/structpb"

	appservice "github.com/turtacn/securepay/internal/application/service"
	domainservice "github.com/turtacn/securepay/internal/domain/service"
	grpchandlers "github.com/turtacn/securepay/internal/interfaces/grpc"
	"github.com/turtacn/securepay/pkg/logger"
)

// riskBackend executes one RiskService method.
type riskBackend interface {
	Call(ctx context.Context, method string, in *structpb.Struct) (*structpb.Struct, error)
	Close() error
}

// localBackend dispatches to an in-process RiskService.
type localBackend struct {
	methods map[string]func(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

func newLocalBackend() *localBackend {
	assessments := appservice.NewAssessmentAppService(domainservice.NewRiskCalculator(), nil, nil, nil, nil, logger.NewNoopLogger())
	svc := grpchandlers.NewRiskGRPCService(assessments, logger.NewNoopLogger())
	return &localBackend{methods: map[string]func(context.Context, *structpb.Struct) (*structpb.Struct, error){
		"Score":           svc.Score,
		"Classify":        svc.Classify,
		"Insights":        svc.Insights,
		"Vulnerabilities": svc.Vulnerabilities,
		"AssessSignup":    svc.AssessSignup,
		"AssessDomain":    svc.AssessDomain,
	}}
}

func (b *localBackend) Call(ctx context.Context, method string, in *structpb.Struct) (*structpb.Struct, error) {
	fn, ok := b.methods[method]
	if !ok {
		return nil, fmt.Errorf("unknown method %q", method)
	}
	return fn(ctx, in)
}

func (b *localBackend) Close() error { return nil }

// remoteBackend sends calls to a SecurePay gRPC server.
type remoteBackend struct {
	conn   *grpc.ClientConn
	client *grpchandlers.RiskServiceClient
}

func newRemoteBackend(addr string) (*remoteBackend, error) {
	conn, err := grpc.NewClient(addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", addr, err)
	}
	return &remoteBackend{conn: conn, client: grpchandlers.NewRiskServiceClient(conn)}, nil
}

func (b *remoteBackend) Call(ctx context.Context, method string, in *structpb.Struct) (*structpb.Struct, error) {
	return b.client.Call(ctx, method, in)
}

func (b *remoteBackend) Close() error { return b.conn.Close() }

func (o *options) backend() (riskBackend, error) {
	if o.server == "" {
		return newLocalBackend(), nil
	}
	return newRemoteBackend(o.server)
}

// callRisk runs method with fields as the request and prints the response.
func (o *options) callRisk(cmd *cobra.Command, method string, fields map[string]interface{}) error {
	in, err := structpb.NewStruct(fields)
	if err != nil {
		return err
	}

	b, err := o.backend()
	if err != nil {
		return err
	}
	defer b.Close()

	ctx, cancel := o.commandContext(cmd)
	defer cancel()

	out, err := b.Call(ctx, method, in)
	if err != nil {
		return err
	}
	return printJSON(cmd, out.AsMap())
}
