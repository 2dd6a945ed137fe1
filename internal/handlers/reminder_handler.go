package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sjperalta/tagihwarga-api/internal/services"
)

type ReminderHandler struct {
	reminderService *services.ReminderService
	now             services.Clock
}

func NewReminderHandler(reminderService *services.ReminderService, now services.Clock) *ReminderHandler {
	return &ReminderHandler{reminderService: reminderService, now: now}
}

// @Summary Compose Reminder
// @Description WhatsApp reminder text and link for a customer's bill
// @Tags Reminders
// @Produce json
// @Param customer_id path string true "Customer ID"
// @Param period query string false "Period (YYYY-MM), defaults to the current month"
// @Success 200 {object} services.Reminder
// @Failure 404 {object} map[string]string
// @Router /customers/{customer_id}/reminder [get]
func (h *ReminderHandler) Show(c *gin.Context) {
	customerID, err := uuid.Parse(c.Param("customer_id"))
	if err != nil {
		respondError(c, fmt.Errorf("%w: ID pelanggan tidak valid", services.ErrInvalidInput))
		return
	}
	period, err := parsePeriod(c, h.now())
	if err != nil {
		respondError(c, err)
		return
	}

	reminder, err := h.reminderService.Compose(c.Request.Context(), customerID, period)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, reminder)
}
