package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/turtacn/securepay/internal/application/dto"
	"github.com/turtacn/securepay/internal/application/service"
	"github.com/turtacn/securepay/pkg/errors"
)

// PlanHandler serves pricing plans, add-on recommendations and quotes.
type PlanHandler struct {
	plans service.PlanAppService
}

// NewPlanHandler creates a new PlanHandler.
func NewPlanHandler(plans service.PlanAppService) *PlanHandler {
	return &PlanHandler{plans: plans}
}

// ListPlans returns every plan.
func (h *PlanHandler) ListPlans(c *gin.Context) {
	dto.SendSuccess(c, http.StatusOK, h.plans.ListPlans(c.Request.Context()))
}

// AddOns returns the add-ons of a plan with recommendations for a profile.
func (h *PlanHandler) AddOns(c *gin.Context) {
	var req dto.AddOnsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.SendError(c, errors.ErrInvalidRequest("request body is not valid JSON").WithCause(err))
		return
	}

	result, err := h.plans.AddOns(c.Request.Context(), &req)
	if err != nil {
		dto.SendError(c, err)
		return
	}
	dto.SendSuccess(c, http.StatusOK, result)
}

// Quote prices a plan with the selected add-ons.
func (h *PlanHandler) Quote(c *gin.Context) {
	var req dto.QuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.SendError(c, errors.ErrInvalidRequest("request body is not valid JSON").WithCause(err))
		return
	}

	result, err := h.plans.Quote(c.Request.Context(), &req)
	if err != nil {
		dto.SendError(c, err)
		return
	}
	dto.SendSuccess(c, http.StatusOK, result)
}
