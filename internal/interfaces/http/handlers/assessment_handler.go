package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/turtacn/securepay/internal/application/dto"
	"github.com/turtacn/securepay/internal/application/service"
	"github.com/turtacn/securepay/pkg/errors"
)

// AssessmentHandler serves the signup and landing-page assessment flows.
type AssessmentHandler struct {
	assessments service.AssessmentAppService
}

// NewAssessmentHandler creates a new AssessmentHandler.
func NewAssessmentHandler(assessments service.AssessmentAppService) *AssessmentHandler {
	return &AssessmentHandler{assessments: assessments}
}

// Signup assesses a signup form.
func (h *AssessmentHandler) Signup(c *gin.Context) {
	var req dto.SignupAssessmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.SendError(c, errors.ErrInvalidRequest("request body is not valid JSON").WithCause(err))
		return
	}

	result, err := h.assessments.AssessSignup(c.Request.Context(), &req)
	if err != nil {
		dto.SendError(c, err)
		return
	}
	dto.SendSuccess(c, http.StatusCreated, result)
}

// Domain produces the landing-page report for a domain.
func (h *AssessmentHandler) Domain(c *gin.Context) {
	var req dto.DomainAssessmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.SendError(c, errors.ErrInvalidRequest("request body is not valid JSON").WithCause(err))
		return
	}

	result, err := h.assessments.AssessDomain(c.Request.Context(), &req)
	if err != nil {
		dto.SendError(c, err)
		return
	}
	dto.SendSuccess(c, http.StatusCreated, result)
}
