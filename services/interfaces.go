package services

import (
	"context"

	"github.com/gcbaptista/matjibmap/model"
)

// RestaurantCatalog is the read side of the fixture store
type RestaurantCatalog interface {
	All() []model.Restaurant
	Get(id int) (model.Restaurant, error)
	Detail(id int) (model.RestaurantDetail, error)
}

// JobFunc is the body of a background job
type JobFunc func(ctx context.Context, job *model.Job) error

// JobRunner creates and executes background jobs
type JobRunner interface {
	CreateJob(jobType model.JobType, scope string, metadata map[string]string) string
	ExecuteJob(jobID string, jobFunc JobFunc) error
	UpdateJobProgress(jobID string, current, total int, message string)
}

// JobManager defines operations for inspecting background jobs
type JobManager interface {
	GetJob(jobID string) (*model.Job, error)
	ListJobs(scope string, status *model.JobStatus) []*model.Job
}

// RestaurantList is the response shape of list endpoints
type RestaurantList struct {
	Restaurants []model.Restaurant `json:"restaurants"`
	Total       int                `json:"total"`
	Query       string             `json:"query,omitempty"`
}
