package recommend

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	internalErrors "github.com/gcbaptista/matjibmap/internal/errors"
	"github.com/gcbaptista/matjibmap/internal/jobs"
	"github.com/gcbaptista/matjibmap/model"
)

var (
	galbi = model.Restaurant{ID: 1, Name: "나주혁신점 맛있는 갈비찜", Category: model.CategoryKorean}
	sushi = model.Restaurant{ID: 2, Name: "혁신도시 스시오마카세", Category: model.CategoryJapanese}
)

func newService(t *testing.T, generator Generator, delay time.Duration) *Service {
	t.Helper()
	svc, _ := newServiceWithJobs(t, generator, delay, 4)
	return svc
}

func newServiceWithJobs(t *testing.T, generator Generator, delay time.Duration, workers int) (*Service, *jobs.Manager) {
	t.Helper()
	manager := jobs.NewManager(workers)
	manager.Start()
	t.Cleanup(manager.Stop)
	return NewService(manager, generator, delay), manager
}

func waitForJob(t *testing.T, manager *jobs.Manager, jobID string, want model.JobStatus) *model.Job {
	t.Helper()
	require.Eventually(t, func() bool {
		job, err := manager.GetJob(jobID)
		return err == nil && job.Status == want
	}, 2*time.Second, 5*time.Millisecond, "job %s never reached %s", jobID, want)
	job, err := manager.GetJob(jobID)
	require.NoError(t, err)
	return job
}

func waitForSettled(t *testing.T, slot *Slot) model.RecommendationState {
	t.Helper()
	require.Eventually(t, func() bool {
		return slot.State().Status() != model.RecommendationLoading
	}, 2*time.Second, 5*time.Millisecond)
	return slot.State()
}

type failingGenerator struct{ err error }

func (g failingGenerator) Generate(context.Context, string, []model.Restaurant) (Result, error) {
	return Result{}, g.err
}

func TestRequest_Success(t *testing.T) {
	svc, manager := newServiceWithJobs(t, NewTemplateGenerator(), 20*time.Millisecond, 4)
	slot := NewSlot()

	jobID, err := svc.Request(slot, "session-1", "맛", []model.Restaurant{galbi})
	require.NoError(t, err)
	assert.NotEmpty(t, jobID)

	loading, ok := slot.State().(model.RecommendationLoadingState)
	require.True(t, ok, "expected loading state, got %T", slot.State())
	assert.Equal(t, "맛", loading.Criteria)
	assert.Equal(t, jobID, loading.JobID)

	success, ok := waitForSettled(t, slot).(model.RecommendationSuccessState)
	require.True(t, ok, "expected success state, got %T", slot.State())
	assert.Equal(t, galbi.ID, success.Restaurant.ID)
	assert.Equal(t, "맛", success.Criteria)
	assert.Contains(t, success.Text, `"나주혁신점 맛있는 갈비찜"`)
	assert.Contains(t, success.Text, "맛를(을) 중요하게")

	job := waitForJob(t, manager, jobID, model.JobStatusCompleted)
	require.NotNil(t, job.Progress)
	assert.Equal(t, 1, job.Progress.Current)
	assert.Equal(t, 1, job.Progress.Total)
}

func TestRequest_CriteriaKeptAsGiven(t *testing.T) {
	svc := newService(t, NewTemplateGenerator(), 0)
	slot := NewSlot()

	_, err := svc.Request(slot, "session-1", " 맛 ", []model.Restaurant{galbi})
	require.NoError(t, err)

	success, ok := waitForSettled(t, slot).(model.RecommendationSuccessState)
	require.True(t, ok, "expected success state, got %T", slot.State())
	assert.Equal(t, " 맛 ", success.Criteria)
	assert.Contains(t, success.Text, " 맛 를(을) 중요하게")
}

func TestRequest_BlankCriteria(t *testing.T) {
	svc := newService(t, NewTemplateGenerator(), 0)
	slot := NewSlot()

	for _, criteria := range []string{"", "   ", "\t\n"} {
		jobID, err := svc.Request(slot, "session-1", criteria, []model.Restaurant{galbi})
		require.Error(t, err)
		assert.Empty(t, jobID)
		assert.True(t, errors.Is(err, internalErrors.ErrInvalidInput))

		kind, ok := internalErrors.KindOf(err)
		require.True(t, ok)
		assert.Equal(t, internalErrors.KindValidation, kind)

		failure, ok := slot.State().(model.RecommendationFailureState)
		require.True(t, ok)
		assert.Equal(t, string(internalErrors.KindValidation), failure.Kind)
		assert.Equal(t, MessageMissingCriteria, failure.Message)
	}
}

func TestRequest_NoCandidates(t *testing.T) {
	svc := newService(t, NewTemplateGenerator(), 0)
	slot := NewSlot()

	_, err := svc.Request(slot, "session-1", "분위기", nil)
	require.NoError(t, err)

	failure, ok := waitForSettled(t, slot).(model.RecommendationFailureState)
	require.True(t, ok, "expected failure state, got %T", slot.State())
	assert.Equal(t, string(internalErrors.KindGeneration), failure.Kind)
	assert.Equal(t, MessageNoCandidates, failure.Message)
}

func TestRequest_GeneratorError(t *testing.T) {
	svc := newService(t, failingGenerator{err: errors.New("model offline")}, 0)
	slot := NewSlot()

	_, err := svc.Request(slot, "session-1", "가격", []model.Restaurant{galbi})
	require.NoError(t, err)

	failure, ok := waitForSettled(t, slot).(model.RecommendationFailureState)
	require.True(t, ok)
	assert.Equal(t, string(internalErrors.KindGeneration), failure.Kind)
	assert.Equal(t, MessageGenerationError, failure.Message)
}

func TestRequest_LatestRequestWins(t *testing.T) {
	svc := newService(t, NewTemplateGenerator(), 40*time.Millisecond)
	slot := NewSlot()

	_, err := svc.Request(slot, "session-1", "맛", []model.Restaurant{galbi})
	require.NoError(t, err)
	time.Sleep(10 * time.Millisecond)
	_, err = svc.Request(slot, "session-1", "서비스", []model.Restaurant{sushi})
	require.NoError(t, err)

	success, ok := waitForSettled(t, slot).(model.RecommendationSuccessState)
	require.True(t, ok)
	assert.Equal(t, sushi.ID, success.Restaurant.ID)
	assert.Equal(t, "서비스", success.Criteria)

	// the first request's completion must never overwrite the second
	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, success, slot.State())
}

func TestRequest_ResetDiscardsInFlight(t *testing.T) {
	svc, manager := newServiceWithJobs(t, NewTemplateGenerator(), time.Hour, 1)
	slot := NewSlot()

	jobID, err := svc.Request(slot, "session-1", "맛", []model.Restaurant{galbi})
	require.NoError(t, err)

	slot.Reset()
	assert.Equal(t, model.RecommendationIdle, slot.State().Status())

	waitForJob(t, manager, jobID, model.JobStatusCancelled)
	assert.Equal(t, model.RecommendationIdleState{}, slot.State())
	assert.Equal(t, int64(0), manager.GetCurrentWorkload())
}

func TestRequest_SupersededJobIsCancelled(t *testing.T) {
	svc, manager := newServiceWithJobs(t, NewTemplateGenerator(), time.Hour, 2)
	mine, other := NewSlot(), NewSlot()

	// with two workers, a third request only gets a slot once the
	// superseded job has given its worker back
	first, err := svc.Request(mine, "session-1", "맛", []model.Restaurant{galbi})
	require.NoError(t, err)
	second, err := svc.Request(mine, "session-1", "서비스", []model.Restaurant{sushi})
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() {
		_, err := svc.Request(other, "session-2", "가격", []model.Restaurant{galbi})
		done <- err
	}()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("request from another view blocked behind a superseded job")
	}

	job := waitForJob(t, manager, first, model.JobStatusCancelled)
	assert.NotNil(t, job.CompletedAt)

	job, err = manager.GetJob(second)
	require.NoError(t, err)
	assert.Equal(t, model.JobStatusRunning, job.Status)

	loading, ok := mine.State().(model.RecommendationLoadingState)
	require.True(t, ok, "expected loading state, got %T", mine.State())
	assert.Equal(t, second, loading.JobID)
}

func TestRequest_CandidatesAreSnapshotted(t *testing.T) {
	svc := newService(t, NewTemplateGenerator(), 20*time.Millisecond)
	slot := NewSlot()

	candidates := []model.Restaurant{galbi}
	_, err := svc.Request(slot, "session-1", "맛", candidates)
	require.NoError(t, err)
	candidates[0] = sushi

	success, ok := waitForSettled(t, slot).(model.RecommendationSuccessState)
	require.True(t, ok)
	assert.Equal(t, galbi.ID, success.Restaurant.ID)
}

func TestRequest_StopCancelsDelay(t *testing.T) {
	manager := jobs.NewManager(1)
	svc := NewService(manager, NewTemplateGenerator(), time.Hour)
	slot := NewSlot()

	jobID, err := svc.Request(slot, "session-1", "맛", []model.Restaurant{galbi})
	require.NoError(t, err)

	manager.Stop()

	failure, ok := slot.State().(model.RecommendationFailureState)
	require.True(t, ok, "expected failure state, got %T", slot.State())
	assert.Equal(t, MessageGenerationError, failure.Message)

	job, err := manager.GetJob(jobID)
	require.NoError(t, err)
	assert.Equal(t, model.JobStatusCancelled, job.Status)
}
