package handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"github.com/brandlens/ai-visibility/backend/internal/middleware"
	"github.com/brandlens/ai-visibility/backend/internal/models"
	"github.com/brandlens/ai-visibility/backend/pkg/utils"
)

// ReportFailureMessage is the error text of every failed report request
const ReportFailureMessage = "Failed to generate report"

type ReportAssembler interface {
	Assemble(ctx context.Context, req models.ReportRequest) (*models.Report, error)
}

type ReportHandler struct {
	assembler ReportAssembler
	validate  *validator.Validate
	timeout   time.Duration
	logger    *logrus.Logger
}

func NewReportHandler(assembler ReportAssembler, timeout time.Duration, logger *logrus.Logger) *ReportHandler {
	if timeout <= 0 {
		timeout = 3 * time.Minute
	}
	return &ReportHandler{
		assembler: assembler,
		validate:  validator.New(),
		timeout:   timeout,
		logger:    logger,
	}
}

// HandleReport builds the visibility report for the posted company
func (h *ReportHandler) HandleReport(c *gin.Context) {
	startTime := time.Now()

	var req models.ReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.WithError(err).Warn("Invalid report request")
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request format", err)
		return
	}

	req.CompanyName = strings.TrimSpace(req.CompanyName)
	req.Website = strings.TrimSpace(req.Website)

	if err := h.validate.Struct(req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request", err)
		return
	}

	log := h.logger.WithFields(logrus.Fields{
		"company":    req.CompanyName,
		"website":    req.Website,
		"request_id": c.GetString(middleware.RequestIDKey),
	})
	log.Info("Generating report")

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	report, err := h.assembler.Assemble(ctx, req)
	if err != nil {
		log.WithError(err).Error("Report generation failed")
		utils.ErrorResponse(c, http.StatusInternalServerError, ReportFailureMessage, err)
		return
	}

	log.WithFields(logrus.Fields{
		"score":         report.AIVisibilityScore,
		"response_time": time.Since(startTime).String(),
	}).Info("Report generated")

	c.JSON(http.StatusOK, report)
}
