package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spendlens/purchase-parser/client"
	"github.com/spendlens/purchase-parser/dto"
	"github.com/spendlens/purchase-parser/service"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cache, err := client.NewDedupCache("", time.Hour)
	require.NoError(t, err)

	extractor := service.NewTextExtractor(service.NewPDFProcessor(), nil, false)
	pipeline := service.NewPipelineService(extractor)
	documents := service.NewDocumentService(extractor, nil, 2)
	batch := service.NewBatchService(pipeline, 2, 0, time.Minute)
	emails := service.NewEmailService(pipeline, documents, cache)

	h := NewEmailHandler(emails, batch, service.NewEMLService(), pipeline)

	router := gin.New()
	router.POST("/api/v1/email/process", h.ProcessEmail)
	router.POST("/api/v1/email/batch", h.ProcessBatch)
	return router
}

func TestProcessEmailEndpoint(t *testing.T) {
	router := newTestRouter(t)

	body, _ := json.Marshal(dto.ProcessEmailRequest{
		MessageID: "h-1",
		Subject:   "Your order receipt",
		From:      "Swiggy <noreply@swiggy.in>",
		Body:      "Order total: ₹350.00",
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/email/process", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp dto.ProcessEmailResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	require.NotNil(t, resp.Purchase)
	assert.Equal(t, 350.0, *resp.Purchase.Amount)
}

func TestProcessEmailEndpointRejectsMissingID(t *testing.T) {
	router := newTestRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/email/process",
		bytes.NewReader([]byte(`{"subject":"no id"}`)))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProcessBatchEndpoint(t *testing.T) {
	router := newTestRouter(t)

	body, _ := json.Marshal(dto.EmailBatchRequest{
		Emails: []dto.ProcessEmailRequest{
			{MessageID: "b-1", Subject: "Invoice", From: "x@amazon.in", Body: "Total: ₹10"},
			{MessageID: "b-2", Subject: "Hi there", From: "friend@example.com", Body: "hello"},
		},
		Concurrency: 2,
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/email/batch", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var result dto.BatchClassification
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, 2, result.TotalEmails)
	assert.Len(t, result.Records, 1)
	assert.Equal(t, 1, result.Skipped)
}
