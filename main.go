package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/spendlens/purchase-parser/client"
	"github.com/spendlens/purchase-parser/config"
	"github.com/spendlens/purchase-parser/dto"
	"github.com/spendlens/purchase-parser/handler"
	"github.com/spendlens/purchase-parser/logger"
	"github.com/spendlens/purchase-parser/service"
)

func main() {
	cfg := config.LoadConfig()
	logger.SetLevel(cfg.LogLevel)
	log := logger.New("main")

	dedupCache, err := client.NewDedupCache(cfg.RedisURL, cfg.CacheTTL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize dedup cache")
	}
	defer dedupCache.Close()

	var tesseractClient *client.TesseractClient
	if cfg.EnableOCR {
		tesseractClient = client.NewTesseractClient(cfg.TesseractDataPath)
		defer tesseractClient.Close()
	}

	urlFetcher := client.NewURLFetcher(cfg.FetchTimeout, cfg.MaxFileSize)

	pdfProcessor := service.NewPDFProcessor()
	textExtractor := service.NewTextExtractor(pdfProcessor, tesseractClient, cfg.EnableOCR)

	pipelineService := service.NewPipelineService(textExtractor)
	batchService := service.NewBatchService(pipelineService, cfg.BatchWorkers, cfg.ThrottleDelay, cfg.BatchTimeout)
	documentService := service.NewDocumentService(textExtractor, urlFetcher, cfg.BatchWorkers)
	warrantyService := service.NewWarrantyService(textExtractor, cfg.BatchWorkers)
	emailService := service.NewEmailService(pipelineService, documentService, dedupCache)
	emlService := service.NewEMLService()

	emailHandler := handler.NewEmailHandler(emailService, batchService, emlService, pipelineService)
	parseHandler := handler.NewParseHandler(documentService, cfg.MaxFileSize)
	warrantyHandler := handler.NewWarrantyHandler(warrantyService, cfg.MaxFileSize)

	router := gin.Default()
	router.MaxMultipartMemory = 32 << 20

	cacheBackend := "memory"
	if cfg.RedisURL != "" {
		cacheBackend = "redis"
	}
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, dto.HealthResponse{
			Status:       "healthy",
			Service:      "Purchase Email Extraction Service",
			CacheBackend: cacheBackend,
			OCREnabled:   cfg.EnableOCR,
		})
	})

	api := router.Group("/api/v1")
	{
		api.GET("/supported-formats", parseHandler.SupportedFormats)

		parse := api.Group("/parse")
		{
			parse.POST("/pdf", parseHandler.ParsePDF)
			parse.POST("/batch", parseHandler.ParseBatch)
			parse.POST("/url", parseHandler.ParseURL)
			parse.POST("/text", parseHandler.ParseText)
		}

		email := api.Group("/email")
		{
			email.POST("/process", emailHandler.ProcessEmail)
			email.POST("/batch", emailHandler.ProcessBatch)
			email.POST("/eml", emailHandler.ProcessEML)
		}

		warranty := api.Group("/warranty")
		{
			warranty.POST("/analyze", warrantyHandler.Analyze)
			warranty.POST("/batch", warrantyHandler.AnalyzeBatch)
		}
	}

	log.Info().Str("port", cfg.ServerPort).Msg("starting purchase email extraction service")
	if err := router.Run(":" + cfg.ServerPort); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}
