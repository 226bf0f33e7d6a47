package grpc

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/google/uuid"
	"google.golang.org/grpc"
	grpcCodes "google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/peer"
	"google.golang.org/grpc/status"

	"github.com/turtacn/securepay/internal/domain/service"
	"github.com/turtacn/securepay/pkg/constants"
	"github.com/turtacn/securepay/pkg/errors"
	"github.com/turtacn/securepay/pkg/logger"
)

// InterceptorChain 拦截器链
type InterceptorChain struct {
	log         logger.Logger
	rateLimiter service.RateLimiter
	metrics     service.Metrics
}

// NewInterceptorChain 创建拦截器链，rateLimiter 与 metrics 可为空
func NewInterceptorChain(log logger.Logger, rateLimiter service.RateLimiter, metrics service.Metrics) *InterceptorChain {
	if log == nil {
		log = logger.NewNoopLogger()
	}
	return &InterceptorChain{
		log:         log.WithComponent("grpc"),
		rateLimiter: rateLimiter,
		metrics:     metrics,
	}
}

// UnaryRecoveryInterceptor 恢复拦截器(捕获 panic)
func (ic *InterceptorChain) UnaryRecoveryInterceptor() grpc.UnaryServerInterceptor {
	return func(
		ctx context.Context,
		req interface{},
		info *grpc.UnaryServerInfo,
		handler grpc.UnaryHandler,
	) (resp interface{}, err error) {
		defer func() {
			if r := recover(); r != nil {
				ic.log.Error(ctx, "gRPC handler panic recovered", fmt.Errorf("%v", r),
					logger.String("method", info.FullMethod),
				)
				err = status.Error(grpcCodes.Internal, "internal server error")
			}
		}()

		return handler(ctx, req)
	}
}

// UnaryRequestIDInterceptor 从 x-request-id 元数据中读取请求 ID，缺失时生成
func (ic *InterceptorChain) UnaryRequestIDInterceptor() grpc.UnaryServerInterceptor {
	return func(
		ctx context.Context,
		req interface{},
		info *grpc.UnaryServerInfo,
		handler grpc.UnaryHandler,
	) (interface{}, error) {
		requestID := firstMetadata(ctx, "x-request-id")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		_ = grpc.SetHeader(ctx, metadata.Pairs("x-request-id", requestID))
		ctx = context.WithValue(ctx, constants.ContextKeyRequestID, requestID)
		return handler(ctx, req)
	}
}

// UnaryLoggingInterceptor 日志拦截器
func (ic *InterceptorChain) UnaryLoggingInterceptor() grpc.UnaryServerInterceptor {
	return func(
		ctx context.Context,
		req interface{},
		info *grpc.UnaryServerInfo,
		handler grpc.UnaryHandler,
	) (interface{}, error) {
		startTime := time.Now()

		// 执行处理器
		resp, err := handler(ctx, req)

		statusCode := status.Code(err)
		fields := []logger.Field{
			logger.String("method", info.FullMethod),
			logger.String("client_ip", clientIP(ctx)),
			logger.Int64("duration_ms", time.Since(startTime).Milliseconds()),
			logger.String("status", statusCode.String()),
		}
		if statusCode == grpcCodes.Internal || statusCode == grpcCodes.Unavailable {
			ic.log.Warn(ctx, "gRPC request failed", fields...)
		} else {
			ic.log.Info(ctx, "gRPC request completed", fields...)
		}

		return resp, err
	}
}

// UnaryRateLimitInterceptor 限流拦截器，按客户端 IP 计数，限流服务故障时放行
func (ic *InterceptorChain) UnaryRateLimitInterceptor() grpc.UnaryServerInterceptor {
	return func(
		ctx context.Context,
		req interface{},
		info *grpc.UnaryServerInfo,
		handler grpc.UnaryHandler,
	) (interface{}, error) {
		if ic.rateLimiter == nil {
			return handler(ctx, req)
		}

		identifier := clientIP(ctx)
		allowed, _, _, err := ic.rateLimiter.Allow(ctx, constants.RateLimitScopeIP, identifier)
		if err != nil {
			ic.log.Error(ctx, "rate limit check failed", err,
				logger.String("identifier", identifier),
				logger.String("method", info.FullMethod),
			)
			return handler(ctx, req)
		}

		if !allowed {
			if ic.metrics != nil {
				ic.metrics.RecordRateLimitHit(string(constants.RateLimitScopeIP))
			}
			ic.log.Warn(ctx, "rate limit exceeded",
				logger.String("identifier", identifier),
				logger.String("method", info.FullMethod),
			)
			return nil, status.Errorf(grpcCodes.ResourceExhausted, "rate limit exceeded for %s", identifier)
		}

		return handler(ctx, req)
	}
}

// UnaryErrorInterceptor 错误转换拦截器(将服务错误转换为 gRPC 状态码)
func (ic *InterceptorChain) UnaryErrorInterceptor() grpc.UnaryServerInterceptor {
	return func(
		ctx context.Context,
		req interface{},
		info *grpc.UnaryServerInfo,
		handler grpc.UnaryHandler,
	) (interface{}, error) {
		resp, err := handler(ctx, req)
		if err == nil {
			return resp, nil
		}
		return resp, toGRPCError(err)
	}
}

// toGRPCError 将服务错误转换为 gRPC 错误，已是 gRPC 状态的错误原样返回
func toGRPCError(err error) error {
	if _, ok := status.FromError(err); ok {
		return err
	}
	svcErr, ok := errors.AsServiceError(err)
	if !ok {
		return status.Error(grpcCodes.Internal, "internal server error")
	}

	switch svcErr.HTTPStatus() {
	case http.StatusBadRequest:
		return status.Error(grpcCodes.InvalidArgument, describe(svcErr))
	case http.StatusNotFound:
		return status.Error(grpcCodes.NotFound, svcErr.Error())
	case http.StatusTooManyRequests:
		return status.Error(grpcCodes.ResourceExhausted, svcErr.Error())
	case http.StatusServiceUnavailable:
		return status.Error(grpcCodes.Unavailable, svcErr.Error())
	default:
		return status.Error(grpcCodes.Internal, "internal server error")
	}
}

// describe appends per-field validation messages to the error message.
func describe(svcErr errors.ServiceError) string {
	msg := svcErr.Error()
	if svcErr.Code() != constants.ErrCodeValidationFailed {
		return msg
	}
	for field, detail := range svcErr.Metadata() {
		msg += fmt.Sprintf("; %s: %v", field, detail)
	}
	return msg
}

// ChainUnaryInterceptors 链式调用所有拦截器
func (ic *InterceptorChain) ChainUnaryInterceptors() grpc.ServerOption {
	return grpc.ChainUnaryInterceptor(
		ic.UnaryRecoveryInterceptor(),  // 1. 恢复 panic
		ic.UnaryRequestIDInterceptor(), // 2. 请求 ID
		ic.UnaryLoggingInterceptor(),   // 3. 日志
		ic.UnaryRateLimitInterceptor(), // 4. 限流
		ic.UnaryErrorInterceptor(),     // 5. 错误转换
	)
}

func firstMetadata(ctx context.Context, key string) string {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return ""
	}
	if values := md.Get(key); len(values) > 0 {
		return values[0]
	}
	return ""
}

// clientIP 优先使用 x-forwarded-for，其次使用对端地址
func clientIP(ctx context.Context) string {
	if ip := firstMetadata(ctx, "x-forwarded-for"); ip != "" {
		return ip
	}
	if p, ok := peer.FromContext(ctx); ok && p.Addr != nil {
		if host, _, err := net.SplitHostPort(p.Addr.String()); err == nil {
			return host
		}
		return p.Addr.String()
	}
	return "unknown"
}
