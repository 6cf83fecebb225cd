package handler

import (
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/spendlens/purchase-parser/dto"
	"github.com/spendlens/purchase-parser/logger"
	"github.com/spendlens/purchase-parser/service"
)

type ParseHandler struct {
	documentService *service.DocumentService
	maxFileSize     int64
	log             zerolog.Logger
}

func NewParseHandler(documentService *service.DocumentService, maxFileSize int64) *ParseHandler {
	return &ParseHandler{
		documentService: documentService,
		maxFileSize:     maxFileSize,
		log:             logger.New("parse-handler"),
	}
}

// ParsePDF handles POST /api/v1/parse/pdf
func (h *ParseHandler) ParsePDF(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		sendError(c, h.log, http.StatusBadRequest, "INVALID_REQUEST", "pdf file is required", err)
		return
	}

	data, err := h.readUpload(fileHeader)
	if err != nil {
		sendError(c, h.log, http.StatusBadRequest, "INVALID_FILE", err.Error(), err)
		return
	}

	record, err := h.documentService.ParseDocument(data, fileHeader.Filename)
	if err != nil {
		sendError(c, h.log, http.StatusUnprocessableEntity, "PARSE_FAILED", "failed to parse document", err)
		return
	}

	c.JSON(http.StatusOK, record)
}

// ParseBatch handles POST /api/v1/parse/batch
func (h *ParseHandler) ParseBatch(c *gin.Context) {
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
		data, err := h.readUpload(fileHeader)
		if err != nil {
			// A bad upload is reported by the batch result, not a 4xx for
			// the whole request.
			h.log.Warn().Err(err).Str("filename", fileHeader.Filename).Msg("skipping unreadable upload")
			continue
		}
		files = append(files, service.NamedFile{Name: fileHeader.Filename, Data: data})
	}

	result := h.documentService.ParseBatch(c.Request.Context(), files)
	c.JSON(http.StatusOK, result)
}

// ParseURL handles POST /api/v1/parse/url
func (h *ParseHandler) ParseURL(c *gin.Context) {
	var req dto.ParseURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendError(c, h.log, http.StatusBadRequest, "INVALID_REQUEST", "invalid request body", err)
		return
	}
	if err := req.Validate(); err != nil {
		sendError(c, h.log, http.StatusBadRequest, "INVALID_REQUEST", err.Error(), err)
		return
	}

	record, err := h.documentService.ParseURL(c.Request.Context(), req.URL)
	if err != nil {
		status := http.StatusUnprocessableEntity
		if err == dto.ErrFileTooLarge || err == dto.ErrNotPDF {
			status = http.StatusBadRequest
		}
		sendError(c, h.log, status, "FETCH_FAILED", "failed to fetch or parse url", err)
		return
	}

	c.JSON(http.StatusOK, record)
}

// ParseText handles POST /api/v1/parse/text
func (h *ParseHandler) ParseText(c *gin.Context) {
	var req dto.AnalyzeTextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendError(c, h.log, http.StatusBadRequest, "INVALID_REQUEST", "invalid request body", err)
		return
	}
	if err := req.Validate(); err != nil {
		sendError(c, h.log, http.StatusBadRequest, "INVALID_REQUEST", err.Error(), err)
		return
	}

	record := h.documentService.AnalyzeText(req.Text, req.Filename)
	c.JSON(http.StatusOK, record)
}

// SupportedFormats handles GET /api/v1/supported-formats
func (h *ParseHandler) SupportedFormats(c *gin.Context) {
	c.JSON(http.StatusOK, dto.SupportedFormatsResponse{
		Formats: []string{"pdf", "eml", "text"},
		Features: []string{
			"purchase-classification", "amount-extraction", "vendor-extraction",
			"invoice-details", "warranty-analysis", "refund-extraction",
			"batch-processing", "url-download",
		},
		MaxSize: formatSize(h.maxFileSize),
	})
}

// readUpload pulls the bytes out of a multipart file, enforcing the size
// cap and the PDF extension.
func (h *ParseHandler) readUpload(fileHeader *multipart.FileHeader) ([]byte, error) {
	if !strings.HasSuffix(strings.ToLower(fileHeader.Filename), ".pdf") {
		return nil, dto.ErrNotPDF
	}
	if fileHeader.Size > h.maxFileSize {
		return nil, dto.ErrFileTooLarge
	}

	f, err := fileHeader.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return io.ReadAll(io.LimitReader(f, h.maxFileSize))
}

func formatSize(bytes int64) string {
	const mb = 1024 * 1024
	if bytes >= mb && bytes%mb == 0 {
		return strconv.FormatInt(bytes/mb, 10) + "MB"
	}
	return strconv.FormatInt(bytes, 10) + "B"
}
