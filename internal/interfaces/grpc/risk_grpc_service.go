package grpc

import (
	"context"
	"encoding/json"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/turtacn/securepay/internal/application/dto"
	app_svc "github.com/turtacn/securepay/internal/application/service"
	"github.com/turtacn/securepay/pkg/logger"
	"github.com/turtacn/securepay/pkg/utils"
)

// RiskServiceName is the fully qualified gRPC service name.
const RiskServiceName = "securepay.risk.v1.RiskService"

// RiskServiceServer is the server API of RiskService. Requests and responses
// are google.protobuf.Struct values carrying the HTTP DTO shapes.
type RiskServiceServer interface {
	Score(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Classify(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Insights(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Vulnerabilities(context.Context, *structpb.Struct) (*structpb.Struct, error)
	AssessSignup(context.Context, *structpb.Struct) (*structpb.Struct, error)
	AssessDomain(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

// RiskGRPCService implements RiskServiceServer on top of the assessment application service.
type RiskGRPCService struct {
	assessments app_svc.AssessmentAppService
	log         logger.Logger
}

// NewRiskGRPCService creates the RiskService implementation.
func NewRiskGRPCService(assessments app_svc.AssessmentAppService, log logger.Logger) *RiskGRPCService {
	if log == nil {
		log = logger.NewNoopLogger()
	}
	return &RiskGRPCService{assessments: assessments, log: log.WithComponent("grpc")}
}

// NewRiskGRPCServer creates a gRPC server with RiskService and the standard health service registered.
func NewRiskGRPCServer(svc *RiskGRPCService, chain *InterceptorChain, opts ...grpc.ServerOption) *grpc.Server {
	if chain != nil {
		opts = append(opts, chain.ChainUnaryInterceptors())
	}
	server := grpc.NewServer(opts...)
	RegisterRiskServiceServer(server, svc)

	healthServer := health.NewServer()
	healthServer.SetServingStatus(RiskServiceName, healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(server, healthServer)
	return server
}

// Score handles the gRPC request to score an optional profile.
func (s *RiskGRPCService) Score(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var appReq dto.ScoreRequest
	if err := fromStruct(req, &appReq); err != nil {
		return nil, err
	}
	resp, err := s.assessments.ScoreProfile(ctx, &appReq)
	if err != nil {
		return nil, err
	}
	return toStruct(resp)
}

// Classify handles the gRPC request to classify a score.
func (s *RiskGRPCService) Classify(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	score, err := scoreField(req)
	if err != nil {
		return nil, err
	}
	resp, err := s.assessments.ClassifyScore(ctx, score)
	if err != nil {
		return nil, err
	}
	return toStruct(resp)
}

// Insights handles the gRPC request to list findings for a score.
func (s *RiskGRPCService) Insights(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	score, err := scoreField(req)
	if err != nil {
		return nil, err
	}
	resp, err := s.assessments.ListInsights(ctx, score, req.GetFields()["domain"].GetStringValue())
	if err != nil {
		return nil, err
	}
	return toStruct(resp)
}

// Vulnerabilities handles the gRPC request to list vulnerabilities for a score.
func (s *RiskGRPCService) Vulnerabilities(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	score, err := scoreField(req)
	if err != nil {
		return nil, err
	}
	resp, err := s.assessments.ListVulnerabilities(ctx, score)
	if err != nil {
		return nil, err
	}
	return toStruct(resp)
}

// AssessSignup handles the gRPC request to assess a signup form.
func (s *RiskGRPCService) AssessSignup(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var appReq dto.SignupAssessmentRequest
	if err := fromStruct(req, &appReq); err != nil {
		return nil, err
	}
	resp, err := s.assessments.AssessSignup(ctx, &appReq)
	if err != nil {
		return nil, err
	}
	return toStruct(resp)
}

// AssessDomain handles the gRPC request to produce a domain report.
func (s *RiskGRPCService) AssessDomain(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var appReq dto.DomainAssessmentRequest
	if err := fromStruct(req, &appReq); err != nil {
		return nil, err
	}
	resp, err := s.assessments.AssessDomain(ctx, &appReq)
	if err != nil {
		return nil, err
	}
	return toStruct(resp)
}

// scoreField reads the required finite "score" number of a request.
func scoreField(req *structpb.Struct) (float64, error) {
	v, ok := req.GetFields()["score"]
	if !ok {
		return 0, status.Error(codes.InvalidArgument, "score is required")
	}
	n, ok := v.GetKind().(*structpb.Value_NumberValue)
	if !ok {
		return 0, status.Error(codes.InvalidArgument, "score must be a number")
	}
	if err := utils.CheckScore(n.NumberValue); err != nil {
		return 0, status.Error(codes.InvalidArgument, err.Error())
	}
	return n.NumberValue, nil
}

func fromStruct(req *structpb.Struct, out interface{}) error {
	if req == nil {
		return nil
	}
	b, err := protojson.Marshal(req)
	if err != nil {
		return status.Errorf(codes.InvalidArgument, "malformed request: %v", err)
	}
	if err := json.Unmarshal(b, out); err != nil {
		return status.Errorf(codes.InvalidArgument, "malformed request: %v", err)
	}
	return nil
}

func toStruct(v interface{}) (*structpb.Struct, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "encode response: %v", err)
	}
	out := &structpb.Struct{}
	if err := protojson.Unmarshal(b, out); err != nil {
		return nil, status.Errorf(codes.Internal, "encode response: %v", err)
	}
	return out, nil
}
