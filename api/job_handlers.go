package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/gcbaptista/matjibmap/model"
)

// GetJobHandler handles requests to get job status by ID
func (api *API) GetJobHandler(c *gin.Context) {
	jobID := c.Param("jobId")

	job, err := api.jobs.GetJob(jobID)
	if err != nil {
		SendDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, job)
}

// ListSessionJobsHandler handles requests to list the jobs of a session
func (api *API) ListSessionJobsHandler(c *gin.Context) {
	s, ok := api.sessionFrom(c)
	if !ok {
		return
	}

	var statusFilter *model.JobStatus
	if statusParam := c.Query("status"); statusParam != "" {
		status := model.JobStatus(statusParam)
		statusFilter = &status
	}

	jobs := api.jobs.ListJobs(s.ID, statusFilter)
	c.JSON(http.StatusOK, gin.H{
		"jobs":       jobs,
		"session_id": s.ID,
		"total":      len(jobs),
	})
}

// GetJobMetricsHandler handles requests to get job performance metrics
func (api *API) GetJobMetricsHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"metrics":          api.jobs.GetMetrics(),
		"success_rate":     api.jobs.GetJobSuccessRate(),
		"current_workload": api.jobs.GetCurrentWorkload(),
		"average_execution_time_by_type": map[model.JobType]time.Duration{
			model.JobTypeRecommendation: api.jobs.GetAverageExecutionTimeByType(model.JobTypeRecommendation),
		},
	})
}
