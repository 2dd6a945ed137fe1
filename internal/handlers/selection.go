package handlers

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sjperalta/tagihwarga-api/internal/billing"
	"github.com/sjperalta/tagihwarga-api/internal/services"
)

// parseScope reads scope, village and due_date from the query string.
// A village or due_date without an explicit scope selects that scope.
func parseScope(c *gin.Context) (billing.Scope, error) {
	mode := billing.ScopeMode(c.Query("scope"))
	village := strings.TrimSpace(c.Query("village"))
	dueRaw := c.Query("due_date")

	if mode == "" {
		switch {
		case dueRaw != "":
			mode = billing.ScopeDueDate
		case village != "":
			mode = billing.ScopeVillage
		default:
			mode = billing.ScopeAll
		}
	}

	scope := billing.Scope{Mode: mode}
	switch mode {
	case billing.ScopeDueDate:
		day, err := strconv.Atoi(dueRaw)
		if err != nil {
			return scope, fmt.Errorf("%w: due_date harus berupa angka", services.ErrInvalidInput)
		}
		scope.DueDay = day
	case billing.ScopeVillage:
		scope.Village = village
	}

	if err := scope.Validate(); err != nil {
		return scope, fmt.Errorf("%w: cakupan %q tidak valid", services.ErrInvalidInput, mode)
	}
	return scope, nil
}

// parsePeriod reads ?period=YYYY-MM, defaulting to the month of now
func parsePeriod(c *gin.Context, now time.Time) (billing.Period, error) {
	raw := strings.TrimSpace(c.Query("period"))
	if raw == "" {
		return billing.PeriodOf(now), nil
	}
	return billing.ParsePeriod(raw)
}

// parseSelection builds the roster selection from the query string.
// shift moves the period by whole months, like the previous/next month buttons.
func parseSelection(c *gin.Context, now time.Time) (billing.Selection, error) {
	sel := billing.NewSelection(now)

	period, err := parsePeriod(c, now)
	if err != nil {
		return sel, err
	}
	sel = sel.WithPeriod(period)

	if raw := c.Query("shift"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return sel, fmt.Errorf("%w: shift harus berupa angka", services.ErrInvalidInput)
		}
		sel = sel.ShiftMonth(n)
	}

	scope, err := parseScope(c)
	if err != nil {
		return sel, err
	}
	sel = sel.WithScope(scope)

	switch f := billing.Filter(c.DefaultQuery("filter", string(billing.FilterUnpaid))); f {
	case billing.FilterUnpaid, billing.FilterAll:
		sel = sel.WithFilter(f)
	default:
		return sel, fmt.Errorf("%w: filter %q tidak dikenal", services.ErrInvalidInput, f)
	}

	if raw := c.Query("group"); raw != "" {
		g := billing.GroupBy(raw)
		if !g.Valid() {
			return sel, fmt.Errorf("%w: pengelompokan %q tidak dikenal", services.ErrInvalidInput, raw)
		}
		sel = sel.WithGroupBy(g)
	}

	return sel.WithSearch(c.Query("search")), nil
}
