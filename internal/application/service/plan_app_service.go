package service

import (
	"context"

	"github.com/turtacn/securepay/internal/application/dto"
	"github.com/turtacn/securepay/internal/domain/models"
	domainService "github.com/turtacn/securepay/internal/domain/service"
	"github.com/turtacn/securepay/pkg/constants"
	"github.com/turtacn/securepay/pkg/logger"
	"github.com/turtacn/securepay/pkg/utils"
)

// PlanAppService exposes the plan catalog to the transports
type PlanAppService interface {
	// ListPlans returns every plan
	ListPlans(ctx context.Context) *dto.PlansResponse

	// AddOns returns add-ons with recommendations for a plan and profile
	AddOns(ctx context.Context, req *dto.AddOnsRequest) (*dto.AddOnsResponse, error)

	// Quote prices a plan with add-ons
	Quote(ctx context.Context, req *dto.QuoteRequest) (*models.Quote, error)
}

type planAppServiceImpl struct {
	catalog *domainService.PlanCatalog
	audit   domainService.AuditSink
	metrics domainService.Metrics
	logger  logger.Logger
}

// NewPlanAppService creates a new PlanAppService. audit and metrics are optional.
func NewPlanAppService(
	catalog *domainService.PlanCatalog,
	audit domainService.AuditSink,
	metrics domainService.Metrics,
	log logger.Logger,
) PlanAppService {
	if catalog == nil {
		catalog = domainService.NewPlanCatalog()
	}
	if metrics == nil {
		metrics = noopMetrics{}
	}
	if log == nil {
		log = logger.NewNoopLogger()
	}
	return &planAppServiceImpl{
		catalog: catalog,
		audit:   audit,
		metrics: metrics,
		logger:  log.WithComponent("plans"),
	}
}

func (s *planAppServiceImpl) ListPlans(ctx context.Context) *dto.PlansResponse {
	return &dto.PlansResponse{Plans: s.catalog.ListPlans()}
}

func (s *planAppServiceImpl) AddOns(ctx context.Context, req *dto.AddOnsRequest) (*dto.AddOnsResponse, error) {
	if req == nil {
		req = &dto.AddOnsRequest{}
	}
	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}

	addOns, err := s.catalog.AddOnsFor(req.PlanID, req.Profile.ToModel())
	if err != nil {
		return nil, err
	}
	return &dto.AddOnsResponse{PlanID: req.PlanID, AddOns: addOns}, nil
}

func (s *planAppServiceImpl) Quote(ctx context.Context, req *dto.QuoteRequest) (*models.Quote, error) {
	if req == nil {
		req = &dto.QuoteRequest{}
	}
	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}

	quote, err := s.catalog.Quote(req.PlanID, req.AddOnIDs)
	if err != nil {
		s.logger.Warn(ctx, "Quote rejected", logger.String("plan_id", req.PlanID), logger.Err(err))
		return nil, err
	}

	s.metrics.RecordQuote(quote.PlanID)
	publishEvent(ctx, s.audit, s.metrics, s.logger, models.AssessmentEvent{
		EventType: constants.AuditEventQuoteIssued,
		PlanID:    quote.PlanID,
	})
	s.logger.Info(ctx, "Quote issued",
		logger.String("plan_id", quote.PlanID),
		logger.Int("add_ons", len(quote.AddOnIDs)),
		logger.String("monthly_total", quote.MonthlyTotal.StringFixed(2)),
	)
	return quote, nil
}
