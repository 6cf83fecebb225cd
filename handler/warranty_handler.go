package handler

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/spendlens/purchase-parser/dto"
	"github.com/spendlens/purchase-parser/logger"
	"github.com/spendlens/purchase-parser/service"
)

type WarrantyHandler struct {
	warrantyService *service.WarrantyService
	maxFileSize     int64
	log             zerolog.Logger
}

func NewWarrantyHandler(warrantyService *service.WarrantyService, maxFileSize int64) *WarrantyHandler {
	return &WarrantyHandler{
		warrantyService: warrantyService,
		maxFileSize:     maxFileSize,
		log:             logger.New("warranty-handler"),
	}
}

// Analyze handles POST /api/v1/warranty/analyze. Accepts either a PDF
// upload ("file") or a JSON body with free text.
func (h *WarrantyHandler) Analyze(c *gin.Context) {
	if fileHeader, err := c.FormFile("file"); err == nil {
		if fileHeader.Size > h.maxFileSize {
			sendError(c, h.log, http.StatusBadRequest, "INVALID_FILE", dto.ErrFileTooLarge.Error(), nil)
			return
		}

		f, err := fileHeader.Open()
		if err != nil {
			sendError(c, h.log, http.StatusBadRequest, "INVALID_FILE", "failed to open uploaded file", err)
			return
		}
		defer f.Close()

		data, err := io.ReadAll(io.LimitReader(f, h.maxFileSize))
		if err != nil {
			sendError(c, h.log, http.StatusBadRequest, "INVALID_FILE", "failed to read uploaded file", err)
			return
		}

		analysis, err := h.warrantyService.Analyze(data, fileHeader.Filename)
		if err != nil {
			sendError(c, h.log, http.StatusUnprocessableEntity, "ANALYSIS_FAILED", "failed to analyze document", err)
			return
		}
		c.JSON(http.StatusOK, analysis)
		return
	}

	var req dto.AnalyzeTextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendError(c, h.log, http.StatusBadRequest, "INVALID_REQUEST", "file upload or text body is required", err)
		return
	}
	if err := req.Validate(); err != nil {
		sendError(c, h.log, http.StatusBadRequest, "INVALID_REQUEST", err.Error(), err)
		return
	}

	c.JSON(http.StatusOK, h.warrantyService.AnalyzeText(req.Text))
}

// AnalyzeBatch handles POST /api/v1/warranty/batch
func (h *WarrantyHandler) AnalyzeBatch(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		sendError(c, h.log, http.StatusBadRequest, "INVALID_REQUEST", "failed to parse multipart form", err)
		return
	}

	fileHeaders := form.File["files[]"]
	if len(fileHeaders) == 0 {
		fileHeaders = form.File["files"]
	}
	if len(fileHeaders) == 0 {
		sendError(c, h.log, http.StatusBadRequest, "INVALID_REQUEST", dto.ErrNoFilesProvided.Error(), nil)
		return
	}

	files := make([]service.NamedFile, 0, len(fileHeaders))
	for _, fileHeader := range fileHeaders {
		f, err := fileHeader.Open()
		if err != nil {
			h.log.Warn().Err(err).Str("filename", fileHeader.Filename).Msg("skipping unreadable upload")
			continue
		}
		data, err := io.ReadAll(io.LimitReader(f, h.maxFileSize))
		f.Close()
		if err != nil {
			h.log.Warn().Err(err).Str("filename", fileHeader.Filename).Msg("skipping unreadable upload")
			continue
		}
		files = append(files, service.NamedFile{Name: fileHeader.Filename, Data: data})
	}

	summary := h.warrantyService.AnalyzeBatch(c.Request.Context(), files)
	c.JSON(http.StatusOK, summary)
}
