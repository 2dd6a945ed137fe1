package billing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRoster(t *testing.T) []EnrichedSubscriber {
	t.Helper()
	subs := []Subscriber{
		{ID: "1", Name: "Ana", Village: "Sukamaju", DueDay: 10, BillAmount: 100000},
		{ID: "2", Name: "budi", Village: "Cibodas", DueDay: 5, BillAmount: 100000, CustomerCode: "WF-002"},
		{ID: "3", Name: "Citra", Village: "Sukamaju", DueDay: 10, BillAmount: 150000, Address: "Jl. Melati 3"},
		{ID: "4", Name: "Dedi", Village: "Cibodas", DueDay: 20, BillAmount: 100000},
		{ID: "5", Name: "Eko", Village: "Andir", DueDay: 5, BillAmount: 100000},
	}
	payments := []Payment{
		{ID: "p1", SubscriberID: "1", Amount: 100000},
		{ID: "p3", SubscriberID: "3", Amount: 50000},
		{ID: "p5", SubscriberID: "5", Amount: 100000},
	}
	out, err := Reconcile(subs, payments, march2025, day(2025, 3, 15), 0)
	require.NoError(t, err)
	return out
}

func names(items []EnrichedSubscriber) []string {
	out := make([]string, len(items))
	for i, e := range items {
		out[i] = e.Name
	}
	return out
}

func TestPresent_UnpaidFilter(t *testing.T) {
	res := Present(sampleRoster(t), Query{Filter: FilterUnpaid})

	assert.Equal(t, []string{"budi", "Citra", "Dedi"}, names(res.Items))
	assert.Equal(t, 3, res.Stats.Count)
	assert.Equal(t, 100000+100000+100000, res.Stats.Outstanding)
	assert.Equal(t, 1, res.Stats.Partial)
	assert.Equal(t, 2, res.Stats.Overdue)
	assert.False(t, res.Stats.Searching)
}

func TestPresent_AllOrdersUnpaidFirst(t *testing.T) {
	res := Present(sampleRoster(t), Query{Filter: FilterAll})

	assert.Equal(t, []string{"budi", "Citra", "Dedi", "Ana", "Eko"}, names(res.Items))
	assert.Equal(t, 2, res.Stats.Paid)
	assert.Equal(t, 3, res.Stats.Unpaid)
}

func TestPresent_SearchOverridesFilter(t *testing.T) {
	res := Present(sampleRoster(t), Query{Filter: FilterUnpaid, Search: "  ana "})

	require.Len(t, res.Items, 1)
	assert.Equal(t, "Ana", res.Items[0].Name)
	assert.True(t, res.Items[0].Status.FullyPaid)
	assert.True(t, res.Stats.Searching)
	assert.Zero(t, res.Stats.Outstanding)
}

func TestPresent_SearchMatchesCodeAndAddress(t *testing.T) {
	roster := sampleRoster(t)

	res := Present(roster, Query{Search: "wf-002"})
	assert.Equal(t, []string{"budi"}, names(res.Items))

	res = Present(roster, Query{Search: "MELATI"})
	assert.Equal(t, []string{"Citra"}, names(res.Items))

	res = Present(roster, Query{Search: "zzz"})
	assert.Empty(t, res.Items)
	assert.Zero(t, res.Stats.Count)
}

func TestPresent_GroupByVillage(t *testing.T) {
	res := Present(sampleRoster(t), Query{Filter: FilterAll, GroupBy: GroupVillage})

	require.Len(t, res.Groups, 3)
	assert.Equal(t, "Andir", res.Groups[0].Key)
	assert.Equal(t, "Cibodas", res.Groups[1].Key)
	assert.Equal(t, "Sukamaju", res.Groups[2].Key)

	sukamaju := res.Groups[2]
	assert.Equal(t, []string{"Citra", "Ana"}, names(sukamaju.Items))
	assert.Equal(t, 1, sukamaju.Paid)
	assert.Equal(t, 1, sukamaju.Unpaid)
	assert.Equal(t, 100000, sukamaju.Outstanding)

	assert.Equal(t, 0, res.Groups[0].Unpaid)
	assert.Equal(t, 2, res.Groups[1].Unpaid)
}

func TestPresent_GroupByDueDate(t *testing.T) {
	res := Present(sampleRoster(t), Query{Filter: FilterAll, GroupBy: GroupDueDate})

	require.Len(t, res.Groups, 3)
	assert.Equal(t, []int{5, 10, 20}, []int{res.Groups[0].DueDay, res.Groups[1].DueDay, res.Groups[2].DueDay})
	assert.Equal(t, []string{"budi", "Eko"}, names(res.Groups[0].Items))
}

func TestPresent_Deterministic(t *testing.T) {
	roster := sampleRoster(t)
	before := append([]EnrichedSubscriber(nil), roster...)

	q := Query{Filter: FilterAll, GroupBy: GroupVillage}
	first := Present(roster, q)
	second := Present(roster, q)

	assert.Equal(t, first, second)
	assert.Equal(t, before, roster, "input must not be reordered")
}

func TestPresent_StableForEqualNames(t *testing.T) {
	roster := []EnrichedSubscriber{
		{Subscriber: Subscriber{ID: "a", Name: "Sari"}},
		{Subscriber: Subscriber{ID: "b", Name: "Sari"}},
		{Subscriber: Subscriber{ID: "c", Name: "Sari"}},
	}
	res := Present(roster, Query{Filter: FilterAll})
	assert.Equal(t, "a", res.Items[0].ID)
	assert.Equal(t, "b", res.Items[1].ID)
	assert.Equal(t, "c", res.Items[2].ID)
}
