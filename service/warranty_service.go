package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/go-pkgz/pool"
	"github.com/rs/zerolog"

	"github.com/spendlens/purchase-parser/dto"
	"github.com/spendlens/purchase-parser/logger"
	"github.com/spendlens/purchase-parser/utils"
)

// WarrantyService analyzes warranty documents: coverage period, expiry
// math, risk call, and recommendations.
type WarrantyService struct {
	extractor *TextExtractor
	parser    *utils.WarrantyParser
	workers   int
	now       func() time.Time
	log       zerolog.Logger
}

func NewWarrantyService(extractor *TextExtractor, workers int) *WarrantyService {
	if workers <= 0 {
		workers = 10
	}
	return &WarrantyService{
		extractor: extractor,
		parser:    utils.NewWarrantyParser(),
		workers:   workers,
		now:       time.Now,
		log:       logger.New("warranty"),
	}
}

// Analyze extracts text from the PDF and runs the warranty analysis over it.
func (s *WarrantyService) Analyze(data []byte, filename string) (*dto.WarrantyAnalysis, error) {
	extraction := s.extractor.ExtractPDF(data)
	if strings.TrimSpace(extraction.Text) == "" {
		return nil, fmt.Errorf("no text could be extracted from %s", filename)
	}

	analysis := s.parser.Analyze(extraction.Text, s.now())
	analysis.Filename = filename
	return &analysis, nil
}

// AnalyzeText runs the warranty analysis over free text.
func (s *WarrantyService) AnalyzeText(text string) dto.WarrantyAnalysis {
	return s.parser.Analyze(utils.CleanText(text), s.now())
}

// AnalyzeBatch analyzes many files concurrently with per-file isolation.
func (s *WarrantyService) AnalyzeBatch(ctx context.Context, files []NamedFile) dto.WarrantyBatchSummary {
	start := time.Now()
	summary := dto.WarrantyBatchSummary{TotalFiles: len(files)}

	var mu sync.Mutex

	worker := pool.WorkerFunc[NamedFile](func(_ context.Context, file NamedFile) error {
		analysis, err := s.analyzeSafe(file)

		mu.Lock()
		defer mu.Unlock()
		if err != nil {
			summary.FailedFiles++
			return err
		}
		summary.ProcessedFiles++
		if analysis.Warranty.Period != "" || analysis.Warranty.ExpiryDate != "" {
			summary.WarrantyDocs++
		}
		summary.Results = append(summary.Results, *analysis)
		return nil
	})

	p := pool.New[NamedFile](s.workers, worker).WithContinueOnError()
	if err := p.Go(ctx); err != nil {
		s.log.Error().Err(err).Msg("failed to start warranty pool")
		summary.ProcessingMS = time.Since(start).Milliseconds()
		return summary
	}
	for _, file := range files {
		p.Submit(file)
	}
	if err := p.Close(ctx); err != nil && ctx.Err() == nil {
		s.log.Warn().Err(err).Msg("warranty batch finished with file errors")
	}

	summary.ProcessingMS = time.Since(start).Milliseconds()
	return summary
}

func (s *WarrantyService) analyzeSafe(file NamedFile) (analysis *dto.WarrantyAnalysis, err error) {
	defer func() {
		if r := recover(); r != nil {
			analysis = nil
			err = fmt.Errorf("warranty analysis panicked: %v", r)
		}
	}()
	return s.Analyze(file.Data, file.Name)
}
