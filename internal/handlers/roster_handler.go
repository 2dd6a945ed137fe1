package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sjperalta/tagihwarga-api/internal/services"
)

type RosterHandler struct {
	rosterService *services.RosterService
	exportService *services.ExportService
	now           services.Clock
}

func NewRosterHandler(rosterService *services.RosterService, exportService *services.ExportService, now services.Clock) *RosterHandler {
	return &RosterHandler{rosterService: rosterService, exportService: exportService, now: now}
}

// @Summary Billing Roster
// @Description Reconciled customers with payment status for a period, filtered, searched and grouped
// @Tags Roster
// @Produce json
// @Param period query string false "Period (YYYY-MM), defaults to the current month"
// @Param shift query int false "Move the period by N months"
// @Param scope query string false "none, village or dueDate"
// @Param village query string false "Village name"
// @Param due_date query int false "Due day of month"
// @Param filter query string false "unpaid (default) or all"
// @Param search query string false "Search by name, customer code or address"
// @Param group query string false "Grouping: none, village or dueDate. Defaults to village for the whole roster, none otherwise"
// @Success 200 {object} services.RosterView
// @Failure 400 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Router /roster [get]
func (h *RosterHandler) Index(c *gin.Context) {
	sel, err := parseSelection(c, h.now())
	if err != nil {
		respondError(c, err)
		return
	}

	view, err := h.rosterService.Load(c.Request.Context(), sel)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// @Summary Export Roster
// @Description Download the roster as CSV, XLSX or PDF
// @Tags Roster
// @Produce application/octet-stream
// @Param format query string false "csv (default), xlsx or pdf"
// @Param period query string false "Period (YYYY-MM)"
// @Param scope query string false "none, village or dueDate"
// @Param filter query string false "unpaid (default) or all"
// @Success 200 {file} file "roster"
// @Failure 400 {object} map[string]string
// @Router /roster/export [get]
func (h *RosterHandler) Export(c *gin.Context) {
	sel, err := parseSelection(c, h.now())
	if err != nil {
		respondError(c, err)
		return
	}

	view, err := h.rosterService.Load(c.Request.Context(), sel)
	if err != nil {
		respondError(c, err)
		return
	}

	data, filename, contentType, err := h.exportService.Export(c.Request.Context(), view, c.DefaultQuery("format", services.ExportCSV))
	if err != nil {
		respondError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, contentType, data)
}
