package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-pkgz/pool"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/spendlens/purchase-parser/dto"
	"github.com/spendlens/purchase-parser/logger"
)

// BatchService fans a batch of emails over a bounded worker pool. Results
// carry no ordering guarantee; callers re-sort by date if they care.
type BatchService struct {
	pipeline *PipelineService
	workers  int
	throttle time.Duration
	timeout  time.Duration
	log      zerolog.Logger
}

func NewBatchService(pipeline *PipelineService, workers int, throttle, timeout time.Duration) *BatchService {
	if workers <= 0 {
		workers = 10
	}
	return &BatchService{
		pipeline: pipeline,
		workers:  workers,
		throttle: throttle,
		timeout:  timeout,
		log:      logger.New("batch"),
	}
}

// ClassifyBatch classifies every email concurrently. A single bad email
// becomes a failure marker in the result; it never aborts the batch. On
// context cancellation the records accumulated so far are returned.
func (s *BatchService) ClassifyBatch(ctx context.Context, emails []dto.EmailRecord, concurrency int) dto.BatchClassification {
	start := time.Now()

	if concurrency <= 0 {
		concurrency = s.workers
	}
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	result := dto.BatchClassification{
		BatchID:     uuid.NewString(),
		TotalEmails: len(emails),
	}

	var mu sync.Mutex

	worker := pool.WorkerFunc[dto.EmailRecord](func(_ context.Context, email dto.EmailRecord) error {
		record, err := s.classifyOne(email)

		mu.Lock()
		defer mu.Unlock()
		switch {
		case err != nil:
			result.Failures = append(result.Failures, dto.ClassifyFailure{
				EmailID: email.ID,
				Reason:  err.Error(),
			})
		case record == nil:
			result.Skipped++
		default:
			result.Records = append(result.Records, *record)
		}
		return err
	})

	p := pool.New[dto.EmailRecord](concurrency, worker).WithContinueOnError()
	if err := p.Go(ctx); err != nil {
		s.log.Error().Err(err).Msg("failed to start worker pool")
		result.ProcessingMS = time.Since(start).Milliseconds()
		return result
	}

	// Cooperative throttle between sub-batches so upstream fetch quotas
	// survive large runs. Policy, not correctness.
	for i, email := range emails {
		if ctx.Err() != nil {
			break
		}
		if s.throttle > 0 && i > 0 && i%concurrency == 0 {
			select {
			case <-time.After(s.throttle):
			case <-ctx.Done():
			}
		}
		p.Submit(email)
	}

	if err := p.Close(ctx); err != nil && ctx.Err() == nil {
		s.log.Warn().Err(err).Msg("batch finished with item errors")
	}

	result.ProcessingMS = time.Since(start).Milliseconds()
	s.log.Info().
		Str("batch_id", result.BatchID).
		Int("total", result.TotalEmails).
		Int("records", len(result.Records)).
		Int("skipped", result.Skipped).
		Int("failures", len(result.Failures)).
		Int64("ms", result.ProcessingMS).
		Msg("batch classified")

	return result
}

// classifyOne isolates one email's classification, converting panics into
// plain errors at the worker boundary.
func (s *BatchService) classifyOne(email dto.EmailRecord) (record *dto.PurchaseRecord, err error) {
	defer func() {
		if r := recover(); r != nil {
			record = nil
			err = fmt.Errorf("classification panicked: %v", r)
		}
	}()
	return s.pipeline.Classify(email), nil
}
