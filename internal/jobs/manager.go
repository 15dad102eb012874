package jobs

import (
	"context"
	stderrors "errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/gcbaptista/matjibmap/internal/errors"
	"github.com/gcbaptista/matjibmap/internal/logging"
	"github.com/gcbaptista/matjibmap/internal/metrics"
	"github.com/gcbaptista/matjibmap/model"
	"github.com/gcbaptista/matjibmap/services"
)

// Manager handles background job execution and tracking
type Manager struct {
	mu       sync.RWMutex
	jobs     map[string]*model.Job
	workers  chan struct{} // Limits concurrent jobs
	stopChan chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
	metrics  *JobMetrics
	log      zerolog.Logger

	// ctx is the parent of every job context and is cancelled by Stop
	ctx    context.Context
	cancel context.CancelFunc

	retention       time.Duration
	cleanupInterval time.Duration
}

// Option configures a Manager
type Option func(*Manager)

// WithRetention sets how long finished jobs are kept before cleanup
func WithRetention(retention time.Duration) Option {
	return func(m *Manager) { m.retention = retention }
}

// WithCleanupInterval sets how often the cleanup routine runs
func WithCleanupInterval(interval time.Duration) Option {
	return func(m *Manager) { m.cleanupInterval = interval }
}

// NewManager creates a new job manager with specified worker count
func NewManager(maxWorkers int, opts ...Option) *Manager {
	if maxWorkers < 1 {
		maxWorkers = 1
	}
	ctx, cancel := context.WithCancel(context.Background())
	m := &Manager{
		jobs:            make(map[string]*model.Job),
		workers:         make(chan struct{}, maxWorkers),
		stopChan:        make(chan struct{}),
		metrics:         NewJobMetrics(),
		log:             logging.With("jobs"),
		ctx:             ctx,
		cancel:          cancel,
		retention:       time.Hour,
		cleanupInterval: 10 * time.Minute,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

var (
	_ services.JobRunner  = (*Manager)(nil)
	_ services.JobManager = (*Manager)(nil)
)

// Start begins the job manager and starts background cleanup
func (m *Manager) Start() {
	m.log.Info().Int("max_workers", cap(m.workers)).Msg("job manager started")

	go m.cleanupRoutine()
}

// Stop cancels running jobs and waits for them to return
func (m *Manager) Stop() {
	m.stopOnce.Do(func() {
		close(m.stopChan)
		m.cancel()
		m.wg.Wait()
		m.log.Info().Msg("job manager stopped")
	})
}

// CreateJob creates a new job and returns its ID
func (m *Manager) CreateJob(jobType model.JobType, scope string, metadata map[string]string) string {
	m.mu.Lock()
	defer m.mu.Unlock()

	job := &model.Job{
		ID:        uuid.New().String(),
		Type:      jobType,
		Status:    model.JobStatusPending,
		Scope:     scope,
		CreatedAt: time.Now(),
		Metadata:  metadata,
	}

	m.jobs[job.ID] = job
	m.metrics.RecordJobCreated(jobType)
	m.log.Debug().Str("job_id", job.ID).Str("type", string(job.Type)).Str("scope", scope).Msg("job created")
	return job.ID
}

// GetJob retrieves a job by ID
func (m *Manager) GetJob(jobID string) (*model.Job, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	job, exists := m.jobs[jobID]
	if !exists {
		return nil, errors.NewJobNotFoundError(jobID)
	}
	return copyJob(job), nil
}

// ListJobs returns all jobs for a scope, optionally filtered by status.
// An empty scope lists jobs of every scope.
func (m *Manager) ListJobs(scope string, status *model.JobStatus) []*model.Job {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := []*model.Job{}
	for _, job := range m.jobs {
		if scope != "" && job.Scope != scope {
			continue
		}
		if status != nil && job.Status != *status {
			continue
		}
		result = append(result, copyJob(job))
	}
	return result
}

// ExecuteJob runs a job function in a goroutine with proper tracking.
// The context handed to jobFunc is cancelled when the manager stops. A job
// that returns after that, or returns context.Canceled, is recorded as
// cancelled, not failed.
func (m *Manager) ExecuteJob(jobID string, jobFunc services.JobFunc) error {
	m.mu.Lock()
	job, exists := m.jobs[jobID]
	if !exists {
		m.mu.Unlock()
		return errors.NewJobNotFoundError(jobID)
	}

	if job.Status != model.JobStatusPending {
		m.mu.Unlock()
		return fmt.Errorf("job with ID '%s' is not in pending status (current: %s)", jobID, job.Status)
	}
	jobCopy := copyJob(job)
	m.mu.Unlock()

	if m.ctx.Err() != nil {
		m.updateJobStatus(jobID, model.JobStatusCancelled, "job manager shutting down")
		return fmt.Errorf("job manager is shutting down")
	}

	// Acquire worker slot
	select {
	case m.workers <- struct{}{}:
	case <-m.stopChan:
		m.updateJobStatus(jobID, model.JobStatusCancelled, "job manager shutting down")
		return fmt.Errorf("job manager is shutting down")
	}

	m.updateJobStatus(jobID, model.JobStatusRunning, "")
	metrics.JobsRunning.Inc()

	m.wg.Add(1)
	go func() {
		defer func() {
			<-m.workers
			metrics.JobsRunning.Dec()
			m.wg.Done()
		}()

		ctx, cancel := context.WithCancel(m.ctx)
		defer cancel()

		startTime := time.Now()
		err := jobFunc(ctx, jobCopy)
		executionTime := time.Since(startTime)

		switch {
		case err == nil:
			m.updateJobStatus(jobID, model.JobStatusCompleted, "")
			m.metrics.RecordJobCompleted(jobCopy.Type, executionTime)
			m.log.Debug().Str("job_id", jobID).Dur("elapsed", executionTime).Msg("job completed")
		case ctx.Err() != nil, stderrors.Is(err, context.Canceled):
			m.updateJobStatus(jobID, model.JobStatusCancelled, err.Error())
			m.log.Info().Str("job_id", jobID).Dur("elapsed", executionTime).Msg("job cancelled")
		default:
			m.updateJobStatus(jobID, model.JobStatusFailed, err.Error())
			m.metrics.RecordJobFailed(jobCopy.Type)
			m.log.Warn().Err(err).Str("job_id", jobID).Dur("elapsed", executionTime).Msg("job failed")
		}
	}()

	return nil
}

// UpdateJobProgress updates the progress of a running job
func (m *Manager) UpdateJobProgress(jobID string, current, total int, message string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	job, exists := m.jobs[jobID]
	if !exists {
		return
	}

	if job.Progress == nil {
		job.Progress = &model.JobProgress{}
	}

	job.Progress.Current = current
	job.Progress.Total = total
	job.Progress.Message = message
}

// updateJobStatus updates the status of a job (internal method)
func (m *Manager) updateJobStatus(jobID string, status model.JobStatus, errorMsg string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	job, exists := m.jobs[jobID]
	if !exists {
		return
	}

	oldStatus := job.Status
	job.Status = status
	if errorMsg != "" {
		job.Error = errorMsg
	}

	now := time.Now()
	if status == model.JobStatusRunning {
		job.StartedAt = &now
	}
	if status.IsTerminal() {
		job.CompletedAt = &now
		metrics.JobsTotal.WithLabelValues(string(job.Type), string(status)).Inc()
	}

	m.metrics.RecordJobStatusChange(oldStatus, status)
}

// cleanupRoutine runs periodic job cleanup
func (m *Manager) cleanupRoutine() {
	ticker := time.NewTicker(m.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.CleanupOldJobs(m.retention)
		case <-m.stopChan:
			return
		}
	}
}

// CleanupOldJobs removes finished jobs older than the specified duration
func (m *Manager) CleanupOldJobs(maxAge time.Duration) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	cutoff := time.Now().Add(-maxAge)
	cleaned := 0

	for jobID, job := range m.jobs {
		if job.CompletedAt != nil && job.CompletedAt.Before(cutoff) {
			delete(m.jobs, jobID)
			cleaned++
		}
	}

	if cleaned > 0 {
		m.log.Debug().Int("count", cleaned).Msg("cleaned up old jobs")
	}
	return cleaned
}

// GetMetrics returns current job performance metrics
func (m *Manager) GetMetrics() JobMetricsData {
	return m.metrics.GetMetrics()
}

// GetJobSuccessRate returns the overall job success rate
func (m *Manager) GetJobSuccessRate() float64 {
	return m.metrics.GetSuccessRate()
}

// GetAverageExecutionTimeByType averages the recent execution times of one job type
func (m *Manager) GetAverageExecutionTimeByType(jobType model.JobType) time.Duration {
	return m.metrics.GetAverageExecutionTimeByType(jobType)
}

// GetCurrentWorkload returns the number of currently active jobs
func (m *Manager) GetCurrentWorkload() int64 {
	return m.metrics.GetCurrentWorkload()
}

func copyJob(job *model.Job) *model.Job {
	jobCopy := *job
	if job.Progress != nil {
		progressCopy := *job.Progress
		jobCopy.Progress = &progressCopy
	}
	if job.Metadata != nil {
		jobCopy.Metadata = make(map[string]string, len(job.Metadata))
		for k, v := range job.Metadata {
			jobCopy.Metadata[k] = v
		}
	}
	return &jobCopy
}
