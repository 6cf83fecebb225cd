package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/spendlens/purchase-parser/dto"
	"github.com/spendlens/purchase-parser/logger"
	"github.com/spendlens/purchase-parser/service"
)

type EmailHandler struct {
	emailService *service.EmailService
	batchService *service.BatchService
	emlService   *service.EMLService
	pipeline     *service.PipelineService
	log          zerolog.Logger
}

func NewEmailHandler(
	emailService *service.EmailService,
	batchService *service.BatchService,
	emlService *service.EMLService,
	pipeline *service.PipelineService,
) *EmailHandler {
	return &EmailHandler{
		emailService: emailService,
		batchService: batchService,
		emlService:   emlService,
		pipeline:     pipeline,
		log:          logger.New("email-handler"),
	}
}

// ProcessEmail handles POST /api/v1/email/process
func (h *EmailHandler) ProcessEmail(c *gin.Context) {
	var req dto.ProcessEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendError(c, h.log, http.StatusBadRequest, "INVALID_REQUEST", "invalid request body", err)
		return
	}
	if err := req.Validate(); err != nil {
		sendError(c, h.log, http.StatusBadRequest, "INVALID_REQUEST", err.Error(), err)
		return
	}

	response, err := h.emailService.ProcessEmail(c.Request.Context(), &req)
	if err != nil {
		sendError(c, h.log, http.StatusInternalServerError, "PROCESSING_FAILED", "failed to process email", err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// ProcessBatch handles POST /api/v1/email/batch
func (h *EmailHandler) ProcessBatch(c *gin.Context) {
	var req dto.EmailBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendError(c, h.log, http.StatusBadRequest, "INVALID_REQUEST", "invalid request body", err)
		return
	}
	if err := req.Validate(); err != nil {
		sendError(c, h.log, http.StatusBadRequest, "INVALID_REQUEST", err.Error(), err)
		return
	}

	emails := make([]dto.EmailRecord, 0, len(req.Emails))
	for i := range req.Emails {
		record, _ := h.emailService.ToRecord(&req.Emails[i])
		emails = append(emails, record)
	}

	result := h.batchService.ClassifyBatch(c.Request.Context(), emails, req.Concurrency)
	c.JSON(http.StatusOK, result)
}

// ProcessEML handles POST /api/v1/email/eml
func (h *EmailHandler) ProcessEML(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		sendError(c, h.log, http.StatusBadRequest, "INVALID_REQUEST", "eml file is required", err)
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		sendError(c, h.log, http.StatusBadRequest, "INVALID_REQUEST", "failed to open uploaded file", err)
		return
	}
	defer f.Close()

	email, err := h.emlService.Parse(f)
	if err != nil {
		sendError(c, h.log, http.StatusUnprocessableEntity, "PARSE_FAILED", "failed to parse message", err)
		return
	}
	if email.ID == "" {
		email.ID = uuid.NewString()
	}

	record := h.pipeline.Classify(*email)
	c.JSON(http.StatusOK, gin.H{
		"email_id":    email.ID,
		"subject":     email.Subject,
		"from":        email.From,
		"attachments": len(email.Attachments),
		"purchase":    record,
		"is_purchase": record != nil,
	})
}
