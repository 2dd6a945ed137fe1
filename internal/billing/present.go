package billing

import (
	"sort"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// GroupBy selects how a presentation is partitioned.
type GroupBy string

const (
	GroupNone    GroupBy = "none"
	GroupVillage GroupBy = "village"
	GroupDueDate GroupBy = "dueDate"
)

// Valid reports whether g is a known grouping mode
func (g GroupBy) Valid() bool {
	switch g {
	case GroupNone, GroupVillage, GroupDueDate:
		return true
	}
	return false
}

// Query describes one presentation pass over a reconciled roster.
type Query struct {
	Filter  Filter
	Search  string
	GroupBy GroupBy
}

// Group is one partition of a grouped presentation.
type Group struct {
	Key         string               `json:"key"`
	DueDay      int                  `json:"due_day,omitempty"`
	Items       []EnrichedSubscriber `json:"items"`
	Paid        int                  `json:"paid"`
	Unpaid      int                  `json:"unpaid"`
	Outstanding int                  `json:"outstanding"`
}

// Stats summarises the entries in a presentation.
type Stats struct {
	Count       int  `json:"count"`
	Outstanding int  `json:"outstanding"`
	Paid        int  `json:"paid"`
	Unpaid      int  `json:"unpaid"`
	Partial     int  `json:"partial"`
	Overdue     int  `json:"overdue"`
	Searching   bool `json:"searching"`
}

// PresentationResult is the view model handed to renderers and exporters.
type PresentationResult struct {
	Items  []EnrichedSubscriber `json:"items"`
	Groups []Group              `json:"groups,omitempty"`
	Stats  Stats                `json:"stats"`
}

// Present filters, searches, orders and optionally groups a reconciled roster.
// A non-empty search ignores the filter. Input is not modified.
func Present(items []EnrichedSubscriber, q Query) PresentationResult {
	search := strings.TrimSpace(q.Search)
	fold := cases.Fold()
	needle := fold.String(search)

	kept := make([]EnrichedSubscriber, 0, len(items))
	for _, e := range items {
		switch {
		case search != "":
			if !matches(fold, e, needle) {
				continue
			}
		case q.Filter != FilterAll:
			if e.Status.FullyPaid {
				continue
			}
		}
		kept = append(kept, e)
	}

	col := collate.New(language.Indonesian, collate.IgnoreCase)
	sortRoster(col, kept)

	res := PresentationResult{Items: kept, Stats: statsOf(kept)}
	res.Stats.Searching = search != ""

	switch q.GroupBy {
	case GroupVillage:
		res.Groups = groupBy(kept, func(e EnrichedSubscriber) string { return e.Village })
		sort.SliceStable(res.Groups, func(i, j int) bool {
			return col.CompareString(res.Groups[i].Key, res.Groups[j].Key) < 0
		})
	case GroupDueDate:
		res.Groups = groupBy(kept, func(e EnrichedSubscriber) string { return strconv.Itoa(e.DueDay) })
		for i := range res.Groups {
			res.Groups[i].DueDay = res.Groups[i].Items[0].DueDay
		}
		sort.SliceStable(res.Groups, func(i, j int) bool {
			return res.Groups[i].DueDay < res.Groups[j].DueDay
		})
	}
	return res
}

func matches(fold cases.Caser, e EnrichedSubscriber, needle string) bool {
	for _, field := range []string{e.Name, e.CustomerCode, e.Address} {
		if field != "" && strings.Contains(fold.String(field), needle) {
			return true
		}
	}
	return false
}

// sortRoster puts unpaid entries first, then orders by name. Ties keep input order.
func sortRoster(col *collate.Collator, items []EnrichedSubscriber) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		if a.Status.FullyPaid != b.Status.FullyPaid {
			return !a.Status.FullyPaid
		}
		return col.CompareString(a.Name, b.Name) < 0
	})
}

func groupBy(items []EnrichedSubscriber, key func(EnrichedSubscriber) string) []Group {
	var groups []Group
	index := make(map[string]int)
	for _, e := range items {
		k := key(e)
		i, ok := index[k]
		if !ok {
			i = len(groups)
			index[k] = i
			groups = append(groups, Group{Key: k})
		}
		g := &groups[i]
		g.Items = append(g.Items, e)
		if e.Status.FullyPaid {
			g.Paid++
		} else {
			g.Unpaid++
			g.Outstanding += e.Remaining
		}
	}
	return groups
}

func statsOf(items []EnrichedSubscriber) Stats {
	st := Stats{Count: len(items)}
	for _, e := range items {
		if e.Status.FullyPaid {
			st.Paid++
			continue
		}
		st.Unpaid++
		st.Outstanding += e.Remaining
		if e.Status.PartiallyPaid {
			st.Partial++
		}
		if e.Status.Overdue {
			st.Overdue++
		}
	}
	return st
}
