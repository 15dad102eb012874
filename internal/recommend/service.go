package recommend

import (
	"context"
	stderrors "errors"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/gcbaptista/matjibmap/internal/errors"
	"github.com/gcbaptista/matjibmap/internal/logging"
	"github.com/gcbaptista/matjibmap/internal/metrics"
	"github.com/gcbaptista/matjibmap/model"
	"github.com/gcbaptista/matjibmap/services"
)

// User-facing messages.
const (
	MessageMissingCriteria = "추천 기준을 입력해주세요."
	MessageNoCandidates    = "추천할 수 있는 식당이 없습니다."
	MessageGenerationError = "추천을 생성하는 중 오류가 발생했습니다."
)

// DefaultDelay is the artificial latency of a recommendation.
const DefaultDelay = 1500 * time.Millisecond

// Service runs recommendations as background jobs.
type Service struct {
	jobs      services.JobRunner
	generator Generator
	delay     time.Duration
	log       zerolog.Logger
}

// NewService creates a recommendation service. A negative delay is treated as zero.
func NewService(jobs services.JobRunner, generator Generator, delay time.Duration) *Service {
	if delay < 0 {
		delay = 0
	}
	return &Service{
		jobs:      jobs,
		generator: generator,
		delay:     delay,
		log:       logging.With("recommend"),
	}
}

// Request starts a recommendation for criteria over a snapshot of candidates
// and returns the id of the job producing it. Criteria that are blank after
// trimming fail synchronously with a validation error and no job is created;
// otherwise the criteria are used as given. scope tags the job, normally
// with the session id. Starting a request cancels the job of the request it
// supersedes.
func (s *Service) Request(slot *Slot, scope, criteria string, candidates []model.Restaurant) (string, error) {
	if strings.TrimSpace(criteria) == "" {
		slot.begin(model.RecommendationFailureState{
			Kind:    string(errors.KindValidation),
			Message: MessageMissingCriteria,
		})
		metrics.RecommendationsTotal.WithLabelValues(string(errors.KindValidation)).Inc()
		return "", errors.NewValidationError("criteria", MessageMissingCriteria)
	}

	snapshot := make([]model.Restaurant, len(candidates))
	copy(snapshot, candidates)

	jobID := s.jobs.CreateJob(model.JobTypeRecommendation, scope, map[string]string{
		"criteria":   criteria,
		"candidates": strconv.Itoa(len(snapshot)),
	})
	seq, slotCtx := slot.begin(model.RecommendationLoadingState{Criteria: criteria, JobID: jobID})

	err := s.jobs.ExecuteJob(jobID, func(ctx context.Context, job *model.Job) error {
		ctx, cancel := context.WithCancel(ctx)
		defer cancel()
		stop := context.AfterFunc(slotCtx, cancel)
		defer stop()

		s.jobs.UpdateJobProgress(job.ID, 0, 1, "waiting")
		state, err := s.generate(ctx, criteria, snapshot)
		if !slot.settle(seq, state) {
			metrics.RecommendationsTotal.WithLabelValues("superseded").Inc()
			s.log.Debug().Str("job_id", job.ID).Str("scope", scope).Msg("recommendation superseded, result discarded")
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			return err
		}
		s.jobs.UpdateJobProgress(job.ID, 1, 1, "settled")
		if err != nil {
			metrics.RecommendationsTotal.WithLabelValues(string(errors.KindGeneration)).Inc()
		} else {
			metrics.RecommendationsTotal.WithLabelValues("success").Inc()
		}
		return err
	})
	if err != nil {
		slot.settle(seq, model.RecommendationFailureState{
			Criteria: criteria,
			Kind:     string(errors.KindGeneration),
			Message:  MessageGenerationError,
		})
		metrics.RecommendationsTotal.WithLabelValues(string(errors.KindGeneration)).Inc()
		return "", errors.NewGenerationError(MessageGenerationError, err)
	}

	return jobID, nil
}

// generate waits out the delay and produces the terminal state
func (s *Service) generate(ctx context.Context, criteria string, candidates []model.Restaurant) (model.RecommendationState, error) {
	result, err := s.wait(ctx, criteria, candidates)
	if err == nil {
		return model.RecommendationSuccessState{
			Criteria:   criteria,
			Text:       result.Text,
			Restaurant: result.Restaurant,
		}, nil
	}

	message := MessageGenerationError
	if stderrors.Is(err, errors.ErrNoCandidates) {
		message = MessageNoCandidates
	}
	if ctx.Err() == nil {
		s.log.Warn().Err(err).Str("criteria", criteria).Int("candidates", len(candidates)).Msg("recommendation failed")
	}

	return model.RecommendationFailureState{
		Criteria: criteria,
		Kind:     string(errors.KindGeneration),
		Message:  message,
	}, errors.NewGenerationError(message, err)
}

func (s *Service) wait(ctx context.Context, criteria string, candidates []model.Restaurant) (Result, error) {
	if s.delay > 0 {
		timer := time.NewTimer(s.delay)
		defer timer.Stop()
		select {
		case <-timer.C:
		case <-ctx.Done():
			return Result{}, ctx.Err()
		}
	}
	return s.generator.Generate(ctx, criteria, candidates)
}
