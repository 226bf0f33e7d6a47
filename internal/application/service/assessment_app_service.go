// Package service provides application-level services that orchestrate the risk domain,
// caches, audit sinks and observability.
package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/turtacn/securepay/internal/application/dto"
	"github.com/turtacn/securepay/internal/domain/models"
	domainService "github.com/turtacn/securepay/internal/domain/service"
	"github.com/turtacn/securepay/pkg/constants"
	"github.com/turtacn/securepay/pkg/logger"
	"github.com/turtacn/securepay/pkg/utils"
)

const (
	flowSignup = "signup"
	flowDomain = "domain"
)

// AssessmentAppService defines the interface for the risk assessment application service
type AssessmentAppService interface {
	// ScoreProfile scores an optional business profile
	ScoreProfile(ctx context.Context, req *dto.ScoreRequest) (*dto.ScoreResponse, error)

	// ClassifyScore returns the risk tier for a score
	ClassifyScore(ctx context.Context, score float64) (*dto.LevelResponse, error)

	// ListInsights returns the findings for a score
	ListInsights(ctx context.Context, score float64, domain string) (*dto.InsightsResponse, error)

	// ListVulnerabilities returns the vulnerabilities for a score
	ListVulnerabilities(ctx context.Context, score float64) (*dto.VulnerabilitiesResponse, error)

	// AssessSignup validates a signup form and produces its risk assessment
	AssessSignup(ctx context.Context, req *dto.SignupAssessmentRequest) (*models.SignupAssessment, error)

	// AssessDomain validates a domain and produces the landing-page report
	AssessDomain(ctx context.Context, req *dto.DomainAssessmentRequest) (*models.DomainAssessment, error)
}

type assessmentAppServiceImpl struct {
	engine  domainService.RiskEngine
	memo    *findingsMemo
	audit   domainService.AuditSink
	metrics domainService.Metrics
	tracer  trace.Tracer
	logger  logger.Logger
}

// NewAssessmentAppService creates a new instance of AssessmentAppService.
// cache, audit, metrics and tracer are optional.
func NewAssessmentAppService(
	engine domainService.RiskEngine,
	cache domainService.AssessmentCache,
	audit domainService.AuditSink,
	metrics domainService.Metrics,
	tracer trace.Tracer,
	log logger.Logger,
) AssessmentAppService {
	if engine == nil {
		engine = domainService.NewRiskCalculator()
	}
	if metrics == nil {
		metrics = noopMetrics{}
	}
	if tracer == nil {
		tracer = otel.Tracer(constants.ServiceName)
	}
	if log == nil {
		log = logger.NewNoopLogger()
	}
	log = log.WithComponent("assessment")

	return &assessmentAppServiceImpl{
		engine:  engine,
		memo:    newFindingsMemo(cache, metrics, log),
		audit:   audit,
		metrics: metrics,
		tracer:  tracer,
		logger:  log,
	}
}

func (s *assessmentAppServiceImpl) ScoreProfile(ctx context.Context, req *dto.ScoreRequest) (*dto.ScoreResponse, error) {
	_, span := s.tracer.Start(ctx, "AssessmentAppService.ScoreProfile")
	defer span.End()

	var profile *dto.ProfileDTO
	if req != nil {
		profile = req.Profile
	}
	score := s.engine.CalculateRiskScore(profile.ToModel())
	span.SetAttributes(attribute.Float64("risk.score", score), attribute.Bool("risk.profile_supplied", profile != nil))

	return &dto.ScoreResponse{Score: score, ProfileSupplied: profile != nil}, nil
}

func (s *assessmentAppServiceImpl) ClassifyScore(ctx context.Context, score float64) (*dto.LevelResponse, error) {
	_, span := s.tracer.Start(ctx, "AssessmentAppService.ClassifyScore")
	defer span.End()

	tier := s.engine.GetRiskLevel(score)
	span.SetAttributes(attribute.String("risk.level", string(tier.Level)))
	return &dto.LevelResponse{Score: score, Tier: tier}, nil
}

func (s *assessmentAppServiceImpl) ListInsights(ctx context.Context, score float64, domain string) (*dto.InsightsResponse, error) {
	_, span := s.tracer.Start(ctx, "AssessmentAppService.ListInsights")
	defer span.End()

	insights := s.engine.GetRiskInsights(score, domain)
	span.SetAttributes(attribute.Int("risk.insights", len(insights)))
	return &dto.InsightsResponse{Score: score, Domain: domain, Insights: insights}, nil
}

func (s *assessmentAppServiceImpl) ListVulnerabilities(ctx context.Context, score float64) (*dto.VulnerabilitiesResponse, error) {
	_, span := s.tracer.Start(ctx, "AssessmentAppService.ListVulnerabilities")
	defer span.End()

	vulns := s.engine.GetVulnerabilities(score)
	span.SetAttributes(attribute.Int("risk.vulnerabilities", len(vulns)))
	return &dto.VulnerabilitiesResponse{Score: score, Vulnerabilities: vulns}, nil
}

// AssessSignup implements the signup funnel: validate, score, classify and list vulnerabilities
func (s *assessmentAppServiceImpl) AssessSignup(ctx context.Context, req *dto.SignupAssessmentRequest) (*models.SignupAssessment, error) {
	ctx, span := s.tracer.Start(ctx, "AssessmentAppService.AssessSignup")
	defer span.End()
	start := time.Now()

	// 1. Validate request payload
	if req == nil {
		req = &dto.SignupAssessmentRequest{}
	}
	if err := utils.ValidateStruct(req); err != nil {
		s.logger.Warn(ctx, "Invalid signup assessment request", logger.Any("fields", err.Metadata()))
		s.fail(span, flowSignup, start, err)
		return nil, err
	}

	// 2. Score the profile, memoized on the fields that influence the score
	profile := req.Profile().ToModel()
	key := memoKey(flowSignup, string(profile.BusinessType), string(profile.MonthlyVolume))
	findings := s.memo.load(ctx, key, func() riskFindings {
		score := s.engine.CalculateRiskScore(profile)
		return riskFindings{
			Score:           score,
			Tier:            s.engine.GetRiskLevel(score),
			Vulnerabilities: s.engine.GetVulnerabilities(score),
		}
	})

	assessment := &models.SignupAssessment{
		ID:              uuid.NewString(),
		Profile:         profile,
		Score:           findings.Score,
		Tier:            findings.Tier,
		Vulnerabilities: findings.Vulnerabilities,
		AssessedAt:      time.Now().UTC(),
	}

	// 3. Emit audit event and telemetry
	s.publish(ctx, models.AssessmentEvent{
		EventType:    constants.AuditEventSignupAssessed,
		AssessmentID: assessment.ID,
		Score:        assessment.Score,
		Level:        assessment.Tier.Level,
		BusinessType: profile.BusinessType,
	})
	s.succeed(span, flowSignup, start, assessment.Score, assessment.Tier.Level)

	s.logger.Info(ctx, "Signup assessed",
		logger.String("assessment_id", assessment.ID),
		logger.String("business_type", string(profile.BusinessType)),
		logger.String("monthly_volume", string(profile.MonthlyVolume)),
		logger.Float64("score", assessment.Score),
		logger.String("level", string(assessment.Tier.Level)),
	)
	return assessment, nil
}

// AssessDomain implements the landing flow. The domain is validated but the
// score is the profile-less default.
func (s *assessmentAppServiceImpl) AssessDomain(ctx context.Context, req *dto.DomainAssessmentRequest) (*models.DomainAssessment, error) {
	ctx, span := s.tracer.Start(ctx, "AssessmentAppService.AssessDomain")
	defer span.End()
	start := time.Now()

	if req == nil {
		req = &dto.DomainAssessmentRequest{}
	}
	span.SetAttributes(attribute.String("risk.domain", req.Domain))

	if err := utils.ValidateDomain(req.Domain); err != nil {
		s.logger.Warn(ctx, "Invalid domain submitted", logger.String("domain", req.Domain))
		s.fail(span, flowDomain, start, err)
		return nil, err
	}

	key := memoKey(flowDomain, req.Domain)
	findings := s.memo.load(ctx, key, func() riskFindings {
		score := s.engine.CalculateRiskScore(nil)
		return riskFindings{
			Score:           score,
			Tier:            s.engine.GetRiskLevel(score),
			Grade:           s.engine.GetRiskGrade(score),
			Insights:        s.engine.GetRiskInsights(score, req.Domain),
			Vulnerabilities: s.engine.GetVulnerabilities(score),
		}
	})

	assessment := &models.DomainAssessment{
		ID:              uuid.NewString(),
		Domain:          req.Domain,
		Score:           findings.Score,
		Tier:            findings.Tier,
		Grade:           findings.Grade,
		Insights:        findings.Insights,
		Vulnerabilities: findings.Vulnerabilities,
		AssessedAt:      time.Now().UTC(),
	}

	s.publish(ctx, models.AssessmentEvent{
		EventType:    constants.AuditEventDomainAssessed,
		AssessmentID: assessment.ID,
		Score:        assessment.Score,
		Level:        assessment.Tier.Level,
		Domain:       assessment.Domain,
	})
	s.succeed(span, flowDomain, start, assessment.Score, assessment.Tier.Level)

	s.logger.Info(ctx, "Domain assessed",
		logger.String("assessment_id", assessment.ID),
		logger.String("domain", assessment.Domain),
		logger.Float64("score", assessment.Score),
		logger.String("grade", string(assessment.Grade)),
	)
	return assessment, nil
}

func (s *assessmentAppServiceImpl) publish(ctx context.Context, event models.AssessmentEvent) {
	publishEvent(ctx, s.audit, s.metrics, s.logger, event)
}

func (s *assessmentAppServiceImpl) succeed(span trace.Span, flow string, start time.Time, score float64, level models.RiskLevel) {
	span.SetAttributes(attribute.Float64("risk.score", score), attribute.String("risk.level", string(level)))
	span.SetStatus(codes.Ok, "")
	s.metrics.RecordAssessment(flow, string(level), true, time.Since(start))
}

func (s *assessmentAppServiceImpl) fail(span trace.Span, flow string, start time.Time, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	s.metrics.RecordAssessment(flow, "", false, time.Since(start))
}

// publishEvent stamps and delivers an audit event. Delivery failures are
// logged and counted but never surface to the caller.
func publishEvent(ctx context.Context, sink domainService.AuditSink, metrics domainService.Metrics, log logger.Logger, event models.AssessmentEvent) {
	if sink == nil {
		return
	}
	event.EventID = uuid.NewString()
	event.Timestamp = time.Now().UTC()
	if requestID, ok := ctx.Value(constants.ContextKeyRequestID).(string); ok {
		event.RequestID = requestID
	}

	if err := sink.Publish(ctx, event); err != nil {
		log.Error(ctx, "Failed to publish assessment event", err, logger.String("event_type", string(event.EventType)))
		metrics.RecordAuditPublish("audit", false)
		return
	}
	metrics.RecordAuditPublish("audit", true)
}

type noopMetrics struct{}

func (noopMetrics) RecordAssessment(string, string, bool, time.Duration) {}
func (noopMetrics) RecordCacheAccess(string, bool)                       {}
func (noopMetrics) RecordRateLimitHit(string)                            {}
func (noopMetrics) RecordAuditPublish(string, bool)                      {}
func (noopMetrics) RecordQuote(string)                                   {}
