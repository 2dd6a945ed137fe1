package billing

import (
	"strconv"
	"strings"
	"time"
)

// ScopeMode selects how the roster is narrowed before reconciliation.
type ScopeMode string

const (
	ScopeAll     ScopeMode = "none"
	ScopeVillage ScopeMode = "village"
	ScopeDueDate ScopeMode = "dueDate"
)

// Filter selects which reconciled entries are shown when no search is active.
type Filter string

const (
	FilterUnpaid Filter = "unpaid"
	FilterAll    Filter = "all"
)

// Scope is the current grouping key. Only the field matching Mode is meaningful.
type Scope struct {
	Mode    ScopeMode `json:"mode"`
	DueDay  int       `json:"due_day,omitempty"`
	Village string    `json:"village,omitempty"`
}

// Validate checks that the scope's key matches its mode.
func (s Scope) Validate() error {
	switch s.Mode {
	case ScopeAll, "":
		return nil
	case ScopeDueDate:
		if s.DueDay < 1 || s.DueDay > 31 {
			return ErrInvalidInput
		}
		return nil
	case ScopeVillage:
		if strings.TrimSpace(s.Village) == "" {
			return ErrInvalidInput
		}
		return nil
	}
	return ErrInvalidInput
}

// Key identifies the scope in cache keys.
func (s Scope) Key() string {
	switch s.Mode {
	case ScopeDueDate:
		return "due:" + strconv.Itoa(s.DueDay)
	case ScopeVillage:
		return "village:" + strings.ToLower(strings.TrimSpace(s.Village))
	}
	return "all"
}

// Selection is an immutable snapshot of what the operator is looking at.
// The With* methods return modified copies and never touch the receiver.
type Selection struct {
	Period Period `json:"period"`
	Scope  Scope  `json:"scope"`
	Filter Filter `json:"filter"`
	Search string `json:"search"`
	// GroupBy overrides the scope's default grouping when set
	GroupBy GroupBy `json:"group_by,omitempty"`
}

// NewSelection starts at the month containing now, unpaid-only, no scope.
func NewSelection(now time.Time) Selection {
	return Selection{
		Period: PeriodOf(now),
		Scope:  Scope{Mode: ScopeAll},
		Filter: FilterUnpaid,
	}
}

func (s Selection) WithPeriod(p Period) Selection {
	s.Period = p
	return s
}

func (s Selection) ShiftMonth(n int) Selection {
	s.Period = s.Period.AddMonths(n)
	return s
}

func (s Selection) WithScope(scope Scope) Selection {
	s.Scope = scope
	return s
}

func (s Selection) WithFilter(f Filter) Selection {
	s.Filter = f
	return s
}

func (s Selection) WithSearch(text string) Selection {
	s.Search = text
	return s
}

func (s Selection) WithGroupBy(g GroupBy) Selection {
	s.GroupBy = g
	return s
}

// Query derives the presentation query for this selection. Without an explicit
// grouping the whole roster is grouped by village and a scoped roster is flat.
func (s Selection) Query() Query {
	q := Query{Filter: s.Filter, Search: s.Search, GroupBy: s.GroupBy}
	if q.GroupBy != "" {
		return q
	}
	q.GroupBy = GroupNone
	if s.Scope.Mode == ScopeAll || s.Scope.Mode == "" {
		q.GroupBy = GroupVillage
	}
	return q
}
