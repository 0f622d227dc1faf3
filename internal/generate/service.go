package generate

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/kubux/ai-image-studio/internal/model"
)

// Config tunes the retry and timeout behaviour of the pipeline.
type Config struct {
	MaxAttempts int           // total attempts per job, including the first
	BaseDelay   time.Duration // backoff before the second attempt, doubling after
	MaxDelay    time.Duration // backoff ceiling
	JobTimeout  time.Duration // wall-clock ceiling spanning all retries
}

// DefaultConfig returns the retry policy used when nothing is configured.
func DefaultConfig() Config {
	return Config{
		MaxAttempts: 3,
		BaseDelay:   2 * time.Second,
		MaxDelay:    30 * time.Second,
		JobTimeout:  5 * time.Minute,
	}
}

// Service handles generation jobs. At most one job is in flight; submitting
// while one runs preempts it, and a preempted job's late response is
// discarded rather than delivered.
type Service struct {
	client GenerationClient
	store  ResultStore
	cfg    Config

	mu       sync.Mutex
	current  *jobHandle
	onUpdate func(*model.GenerationJob) // callback for UI updates

	wg sync.WaitGroup
}

// jobHandle ties a job to the cancellation of its worker. Identity of the
// handle, not the job, decides whether a worker still owns the in-flight
// slot when it reports back.
type jobHandle struct {
	job    *model.GenerationJob
	cancel context.CancelFunc
}

// NewService creates a new generation service.
func NewService(client GenerationClient, store ResultStore, cfg Config) *Service {
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 1
	}
	if cfg.BaseDelay <= 0 {
		cfg.BaseDelay = 2 * time.Second
	}
	if cfg.MaxDelay < cfg.BaseDelay {
		cfg.MaxDelay = cfg.BaseDelay
	}
	if cfg.JobTimeout <= 0 {
		cfg.JobTimeout = 5 * time.Minute
	}
	return &Service{
		client: client,
		store:  store,
		cfg:    cfg,
	}
}

// SetUpdateCallback sets the callback function for job updates. The callback
// runs on a worker goroutine; UI consumers must hop to the event loop
// themselves.
func (s *Service) SetUpdateCallback(callback func(*model.GenerationJob)) {
	s.mu.Lock()
	s.onUpdate = callback
	s.mu.Unlock()
}

// Submit preempts any in-flight job and starts a new one. The preempted
// job transitions to Cancelled and its eventual response is discarded.
func (s *Service) Submit(req model.GenerationRequest) *model.GenerationJob {
	job := &model.GenerationJob{
		ID:        uuid.NewString(),
		Request:   req,
		Status:    model.JobStatusPending,
		StartedAt: time.Now(),
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.JobTimeout)
	handle := &jobHandle{job: job, cancel: cancel}

	s.mu.Lock()
	cancelled := s.preemptLocked()
	job.Status = model.JobStatusInFlight
	s.current = handle
	s.mu.Unlock()

	if cancelled != nil {
		s.notifyUpdate(cancelled)
	}
	s.notifyUpdate(job)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer cancel()
		s.run(ctx, handle)
	}()

	return job
}

// Cancel cancels the in-flight job, if any, without starting a new one.
func (s *Service) Cancel() {
	s.mu.Lock()
	cancelled := s.preemptLocked()
	s.mu.Unlock()

	if cancelled != nil {
		s.notifyUpdate(cancelled)
	}
}

// Current returns the in-flight job, if any.
func (s *Service) Current() (*model.GenerationJob, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return nil, false
	}
	return s.current.job, true
}

// Close cancels any in-flight work and waits for workers to drain.
func (s *Service) Close() {
	s.Cancel()
	s.wg.Wait()
}

// preemptLocked moves the current job to Cancelled, releases the in-flight
// slot, and returns the cancelled job for notification outside the lock.
// Caller holds s.mu.
func (s *Service) preemptLocked() *model.GenerationJob {
	if s.current == nil {
		return nil
	}
	cancelled := s.current.job
	s.current.cancel()
	s.current = nil

	cancelled.Status = model.JobStatusCancelled
	cancelled.CompletedAt = time.Now()

	logrus.WithField("job", cancelled.ID).Debug("generation job cancelled")
	return cancelled
}

// run executes the attempt loop for one job and reports exactly one terminal
// outcome, unless the job was preempted meanwhile.
func (s *Service) run(ctx context.Context, h *jobHandle) {
	data, err := s.generateWithRetry(ctx, h)

	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			s.finish(h, model.JobStatusFailed, "", "generation timed out")
			return
		}
		if ctx.Err() != nil {
			// Preempted or user-cancelled; the preemptor already reported.
			return
		}
		s.finish(h, model.JobStatusFailed, "", err.Error())
		return
	}

	// Cooperative cancellation point before touching the disk. A success
	// that lands after the deadline still counts as a timeout; only
	// preemption stays silent.
	if ctx.Err() != nil {
		if ctx.Err() == context.DeadlineExceeded {
			s.finish(h, model.JobStatusFailed, "", "generation timed out")
		}
		return
	}

	dir, err := s.store.Resolve(&h.job.Request)
	if err == nil {
		var path string
		path, err = s.store.Write(dir, data, &h.job.Request)
		if err == nil {
			s.finish(h, model.JobStatusCompleted, path, "")
			return
		}
	}

	// Generation succeeded but the result could not be kept.
	s.finish(h, model.JobStatusFailed, "", fmt.Sprintf("storing result: %v", err))
}

// generateWithRetry attempts generation with exponential backoff on
// transient failures. Fatal failures and context cancellation abort
// immediately; the retry budget is never exceeded.
func (s *Service) generateWithRetry(ctx context.Context, h *jobHandle) ([]byte, error) {
	delay := s.cfg.BaseDelay
	var lastErr error

	for attempt := 1; attempt <= s.cfg.MaxAttempts; attempt++ {
		if attempt > 1 {
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
			delay *= 2
			if delay > s.cfg.MaxDelay {
				delay = s.cfg.MaxDelay
			}
			logrus.WithFields(logrus.Fields{
				"job":     h.job.ID,
				"attempt": attempt,
			}).Info("retrying generation")
		}

		data, err := s.client.Generate(ctx, &h.job.Request)
		if err == nil {
			return data, nil
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		var svcErr *ServiceError
		if errors.As(err, &svcErr) && svcErr.Kind == ErrFatal {
			return nil, err
		}

		lastErr = err
		logrus.WithFields(logrus.Fields{
			"job":     h.job.ID,
			"attempt": attempt,
		}).WithError(err).Warn("generation attempt failed")
	}

	return nil, fmt.Errorf("giving up after %d attempts: %w", s.cfg.MaxAttempts, lastErr)
}

// finish records a terminal outcome for h unless another job has taken the
// in-flight slot since, in which case the outcome is silently dropped.
func (s *Service) finish(h *jobHandle, status model.JobStatus, path, errMsg string) {
	s.mu.Lock()
	if s.current != h {
		s.mu.Unlock()
		logrus.WithField("job", h.job.ID).Debug("discarding late result of preempted job")
		return
	}
	s.current = nil

	job := h.job
	job.Status = status
	job.ResultPath = path
	job.LastError = errMsg
	job.CompletedAt = time.Now()
	s.mu.Unlock()

	s.notifyUpdate(job)
}

// notifyUpdate calls the update callback if set.
func (s *Service) notifyUpdate(job *model.GenerationJob) {
	s.mu.Lock()
	cb := s.onUpdate
	s.mu.Unlock()
	if cb != nil {
		cb(job)
	}
}
