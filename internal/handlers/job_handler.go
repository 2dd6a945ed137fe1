package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sjperalta/tagihwarga-api/internal/services"
)

type JobHandler struct {
	jobService *services.JobService
}

func NewJobHandler(jobSvc *services.JobService) *JobHandler {
	return &JobHandler{jobService: jobSvc}
}

// Status reports worker load together with the billing job schedule
// @Summary Background job status
// @Description Worker statistics, the proof expiry sweep interval and the next daily summary email
// @Tags Jobs
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /jobs/status [get]
func (h *JobHandler) Status(c *gin.Context) {
	status := h.jobService.GetStatus()

	schedule := h.jobService.Schedule()
	status["proof_sweep_interval"] = schedule.ProofSweepEvery.String()
	status["daily_summary_hour"] = schedule.DailySummaryHour
	status["next_daily_summary"] = h.jobService.NextDailySummary().Format(time.RFC3339)

	c.JSON(http.StatusOK, status)
}
