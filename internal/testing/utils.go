// Package testing provides fixtures and helpers shared by the service tests.
package testing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gcbaptista/matjibmap/internal/fixtures"
	"github.com/gcbaptista/matjibmap/internal/jobs"
	"github.com/gcbaptista/matjibmap/internal/recommend"
	"github.com/gcbaptista/matjibmap/model"
	"github.com/gcbaptista/matjibmap/services"
	"github.com/gcbaptista/matjibmap/store"
)

// TestRecommendDelay keeps recommendation tests fast
const TestRecommendDelay = 5 * time.Millisecond

// LoadTestDataset loads the embedded fixtures or fails the test
func LoadTestDataset(t *testing.T) *fixtures.Dataset {
	t.Helper()
	ds, err := fixtures.Load()
	require.NoError(t, err, "Failed to load fixtures")
	return ds
}

// CreateTestCatalog builds a store over the embedded fixtures
func CreateTestCatalog(t *testing.T) *store.RestaurantStore {
	t.Helper()
	ds := LoadTestDataset(t)
	return store.NewRestaurantStore(ds.Restaurants, ds.Profiles)
}

// CreateTestJobManager starts a job manager that stops when the test ends
func CreateTestJobManager(t *testing.T, workers int) *jobs.Manager {
	t.Helper()
	m := jobs.NewManager(workers)
	m.Start()
	t.Cleanup(m.Stop)
	return m
}

// CreateTestRecommender builds the template recommender with TestRecommendDelay
func CreateTestRecommender(t *testing.T, runner services.JobRunner) *recommend.Service {
	t.Helper()
	return recommend.NewService(runner, recommend.NewTemplateGenerator(), TestRecommendDelay)
}

// RestaurantIDs lists the ids of restaurants in order
func RestaurantIDs(restaurants []model.Restaurant) []int {
	ids := make([]int, len(restaurants))
	for i, r := range restaurants {
		ids[i] = r.ID
	}
	return ids
}

// JobPollingOptions configures job polling behavior
type JobPollingOptions struct {
	Timeout      time.Duration
	PollInterval time.Duration
}

// DefaultJobPollingOptions returns sensible defaults for job polling
func DefaultJobPollingOptions() JobPollingOptions {
	return JobPollingOptions{
		Timeout:      2 * time.Second,
		PollInterval: 5 * time.Millisecond,
	}
}

// WaitForJobStatus polls a job until it reaches a terminal status or times out
func WaitForJobStatus(t *testing.T, jobManager services.JobManager, jobID string, opts JobPollingOptions) *model.Job {
	t.Helper()
	timeout := time.After(opts.Timeout)
	ticker := time.NewTicker(opts.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-timeout:
			t.Fatalf("Job %s did not finish within %v", jobID, opts.Timeout)
			return nil
		case <-ticker.C:
			job, err := jobManager.GetJob(jobID)
			require.NoError(t, err, "Failed to get job status")
			if job.Status.IsTerminal() {
				return job
			}
		}
	}
}

// AssertJobCompleted verifies that a job completed successfully
func AssertJobCompleted(t *testing.T, job *model.Job, expectedType model.JobType, expectedScope string) {
	t.Helper()
	assert.Equal(t, model.JobStatusCompleted, job.Status, "Job should be completed")
	assert.Equal(t, expectedType, job.Type, "Job type should match")
	assert.Equal(t, expectedScope, job.Scope, "Job scope should match")
	assert.NotNil(t, job.CompletedAt, "Job should have completion timestamp")
	assert.Empty(t, job.Error, "Job should not have error")
}
