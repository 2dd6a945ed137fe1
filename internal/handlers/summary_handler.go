package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sjperalta/tagihwarga-api/internal/services"
)

type SummaryHandler struct {
	summaryService *services.SummaryService
	jobService     *services.JobService
}

func NewSummaryHandler(summaryService *services.SummaryService, jobService *services.JobService) *SummaryHandler {
	return &SummaryHandler{summaryService: summaryService, jobService: jobService}
}

// @Summary Daily Summary
// @Description Today's income and the current month's collection position
// @Tags Summary
// @Produce json
// @Success 200 {object} services.DailySummary
// @Router /summary/daily [get]
func (h *SummaryHandler) Daily(c *gin.Context) {
	summary, err := h.summaryService.Daily(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// @Summary Send Daily Summary
// @Description Queue the daily summary email to the operator
// @Tags Summary
// @Produce json
// @Success 202 {object} map[string]string
// @Router /summary/daily/send [post]
func (h *SummaryHandler) Send(c *gin.Context) {
	h.jobService.Enqueue(func(ctx context.Context) error {
		return h.summaryService.SendDaily(ctx)
	})
	c.JSON(http.StatusAccepted, gin.H{"message": "Ringkasan harian sedang dikirim"})
}
