package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/turtacn/securepay/internal/application/dto"
	"github.com/turtacn/securepay/internal/application/service"
	svcerrors "github.com/turtacn/securepay/pkg/errors"
	"github.com/turtacn/securepay/pkg/utils"
)

// RiskHandler exposes the scoring, classification and findings operations.
type RiskHandler struct {
	assessments service.AssessmentAppService
}

// NewRiskHandler creates a new RiskHandler.
func NewRiskHandler(assessments service.AssessmentAppService) *RiskHandler {
	return &RiskHandler{assessments: assessments}
}

// Score scores an optional business profile. An empty body scores no profile.
func (h *RiskHandler) Score(c *gin.Context) {
	var req dto.ScoreRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		dto.SendError(c, svcerrors.ErrInvalidRequest("request body is not valid JSON").WithCause(err))
		return
	}

	result, err := h.assessments.ScoreProfile(c.Request.Context(), &req)
	if err != nil {
		dto.SendError(c, err)
		return
	}
	dto.SendSuccess(c, http.StatusOK, result)
}

// Level classifies the score query parameter.
func (h *RiskHandler) Level(c *gin.Context) {
	score, ok := scoreQuery(c)
	if !ok {
		return
	}
	result, err := h.assessments.ClassifyScore(c.Request.Context(), score)
	if err != nil {
		dto.SendError(c, err)
		return
	}
	dto.SendSuccess(c, http.StatusOK, result)
}

// Insights lists the findings for the score query parameter.
func (h *RiskHandler) Insights(c *gin.Context) {
	score, ok := scoreQuery(c)
	if !ok {
		return
	}
	result, err := h.assessments.ListInsights(c.Request.Context(), score, c.Query("domain"))
	if err != nil {
		dto.SendError(c, err)
		return
	}
	dto.SendSuccess(c, http.StatusOK, result)
}

// Vulnerabilities lists the vulnerabilities for the score query parameter.
func (h *RiskHandler) Vulnerabilities(c *gin.Context) {
	score, ok := scoreQuery(c)
	if !ok {
		return
	}
	result, err := h.assessments.ListVulnerabilities(c.Request.Context(), score)
	if err != nil {
		dto.SendError(c, err)
		return
	}
	dto.SendSuccess(c, http.StatusOK, result)
}

// scoreQuery reads the required score parameter. It writes a 400 and returns
// false when the value is missing, malformed or not finite.
func scoreQuery(c *gin.Context) (float64, bool) {
	raw, present := c.GetQuery("score")
	if !present {
		dto.SendError(c, svcerrors.ErrInvalidParameterFormat("score", "decimal number"))
		return 0, false
	}
	score, err := utils.ParseScore(raw)
	if err != nil {
		dto.SendError(c, svcerrors.ErrInvalidParameterFormat("score", "finite decimal number").WithCause(err))
		return 0, false
	}
	return score, true
}
