package billing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var march2025 = Period{Year: 2025, Month: time.March}

func TestReconcile_UnpaidSubscriberWithoutPayment(t *testing.T) {
	subs := []Subscriber{{ID: "c1", Name: "Budi", Village: "Sukamaju", DueDay: 10, BillAmount: 100000}}

	out, err := Reconcile(subs, nil, march2025, day(2025, 3, 15), 0)
	require.NoError(t, err)
	require.Len(t, out, 1)

	e := out[0]
	assert.True(t, e.Status.Unpaid)
	assert.True(t, e.Status.Overdue)
	assert.Equal(t, 5, e.Status.LateDays)
	assert.Equal(t, 100000, e.Remaining)
	assert.Zero(t, e.Paid)
	assert.Nil(t, e.Payment)
}

func TestReconcile_PartialPayment(t *testing.T) {
	subs := []Subscriber{{ID: "c1", Name: "Budi", DueDay: 20, BillAmount: 100000}}
	payments := []Payment{{ID: "p1", SubscriberID: "c1", Amount: 60000, Period: march2025}}

	out, err := Reconcile(subs, payments, march2025, day(2025, 3, 15), 0)
	require.NoError(t, err)

	e := out[0]
	assert.True(t, e.Status.PartiallyPaid)
	assert.False(t, e.Status.Overdue)
	assert.Equal(t, 40000, e.Remaining)
	require.NotNil(t, e.Payment)
	assert.Equal(t, "p1", e.Payment.ID)
}

func TestReconcile_DefaultBillAndOrder(t *testing.T) {
	subs := []Subscriber{
		{ID: "c3", Name: "Citra", DueDay: 5},
		{ID: "c1", Name: "Ani", DueDay: 5, BillAmount: 150000},
		{ID: "c2", Name: "Budi", DueDay: 5},
	}
	payments := []Payment{{ID: "p2", SubscriberID: "c2", Amount: 120000}}

	out, err := Reconcile(subs, payments, march2025, day(2025, 3, 1), 120000)
	require.NoError(t, err)
	require.Len(t, out, 3)

	assert.Equal(t, []string{"c3", "c1", "c2"}, []string{out[0].ID, out[1].ID, out[2].ID})
	assert.Equal(t, 120000, out[0].Bill)
	assert.Equal(t, 150000, out[1].Bill)
	assert.True(t, out[2].Status.FullyPaid)
	assert.Zero(t, out[2].Remaining)

	out, err = Reconcile(subs[:1], nil, march2025, day(2025, 3, 1), 0)
	require.NoError(t, err)
	assert.Equal(t, DefaultBillAmount, out[0].Bill)
}

func TestReconcile_DuplicatePaymentIsAFault(t *testing.T) {
	subs := []Subscriber{{ID: "c1", Name: "Budi", DueDay: 10}}
	payments := []Payment{
		{ID: "p1", SubscriberID: "c1", Amount: 50000},
		{ID: "p2", SubscriberID: "c1", Amount: 50000},
	}

	_, err := Reconcile(subs, payments, march2025, day(2025, 3, 1), 0)
	assert.ErrorIs(t, err, ErrDuplicatePayment)
}

func TestReconcile_InvalidDueDay(t *testing.T) {
	subs := []Subscriber{{ID: "c1", Name: "Budi", DueDay: 0}}

	_, err := Reconcile(subs, nil, march2025, day(2025, 3, 1), 0)
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Contains(t, err.Error(), "c1")
}

func TestReconcile_PaymentsForOtherSubscribersIgnored(t *testing.T) {
	subs := []Subscriber{{ID: "c1", Name: "Budi", DueDay: 10}}
	payments := []Payment{{ID: "p9", SubscriberID: "someone-else", Amount: 100000}}

	out, err := Reconcile(subs, payments, march2025, day(2025, 3, 1), 0)
	require.NoError(t, err)
	assert.Nil(t, out[0].Payment)
}
