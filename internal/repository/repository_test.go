package repository

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/sjperalta/tagihwarga-api/internal/database"
	"github.com/sjperalta/tagihwarga-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, database.Migrate(db))
	return db
}

func strPtr(s string) *string { return &s }

func seedCustomer(t *testing.T, repo CustomerRepository, name, village string, dueDate int) *models.Customer {
	t.Helper()
	c := &models.Customer{Name: name, Village: village, DueDate: dueDate}
	require.NoError(t, repo.Create(context.Background(), c))
	require.NotEqual(t, uuid.Nil, c.ID)
	return c
}

func TestCustomerRepository_Queries(t *testing.T) {
	ctx := context.Background()
	repos := NewRepositories(newTestDB(t))

	seedCustomer(t, repos.Customer, "Citra", "Sukamaju", 10)
	seedCustomer(t, repos.Customer, "Ana", "Sukamaju", 10)
	seedCustomer(t, repos.Customer, "Budi", "Cibodas", 5)
	seedCustomer(t, repos.Customer, "Dedi", "Andir", 25)

	all, err := repos.Customer.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 4)
	assert.Equal(t, "Dedi", all[0].Name)
	assert.Equal(t, "Ana", all[2].Name)

	due10, err := repos.Customer.FindByDueDate(ctx, 10)
	require.NoError(t, err)
	require.Len(t, due10, 2)
	assert.Equal(t, "Ana", due10[0].Name)

	village, err := repos.Customer.FindByVillage(ctx, "sukamaju")
	require.NoError(t, err)
	assert.Len(t, village, 2)

	days, err := repos.Customer.DistinctDueDates(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int{5, 10, 25}, days)

	villages, err := repos.Customer.DistinctVillages(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Andir", "Cibodas", "Sukamaju"}, villages)

	_, err = repos.Customer.FindByID(ctx, uuid.New())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestPaymentRepository_UpsertReplacesSamePeriod(t *testing.T) {
	ctx := context.Background()
	repos := NewRepositories(newTestDB(t))
	customer := seedCustomer(t, repos.Customer, "Ana", "Sukamaju", 10)

	first := &models.Payment{
		CustomerID:  customer.ID,
		Amount:      50000,
		MonthYear:   "2025-03",
		PaymentDate: "2025-03-05",
		ProofPath:   strPtr("proofs/2025-03-05-" + customer.ID.String() + ".jpg"),
		ProofStatus: models.ProofStatusActive,
	}
	require.NoError(t, repos.Payment.Upsert(ctx, first))

	second := &models.Payment{
		CustomerID:  customer.ID,
		Amount:      100000,
		MonthYear:   "2025-03",
		PaymentDate: "2025-03-12",
		Notes:       strPtr("lunas"),
	}
	require.NoError(t, repos.Payment.Upsert(ctx, second))

	payments, err := repos.Payment.FindByPeriod(ctx, "2025-03")
	require.NoError(t, err)
	require.Len(t, payments, 1)

	got := payments[0]
	assert.Equal(t, first.ID, got.ID)
	assert.Equal(t, second.ID, got.ID, "upsert reads the stored row back")
	assert.Equal(t, 100000, got.Amount)
	assert.Equal(t, "2025-03-12", got.PaymentDate)
	assert.Equal(t, "lunas", *got.Notes)
	assert.False(t, got.HasProof(), "a resubmission without a proof clears the old one")
	assert.Equal(t, models.ProofStatusNone, got.ProofStatus)
}

func TestPaymentRepository_CreateDuplicatePeriod(t *testing.T) {
	ctx := context.Background()
	repos := NewRepositories(newTestDB(t))
	customer := seedCustomer(t, repos.Customer, "Ana", "Sukamaju", 10)

	p := &models.Payment{CustomerID: customer.ID, Amount: 100000, MonthYear: "2025-03", PaymentDate: "2025-03-05"}
	require.NoError(t, repos.Payment.Create(ctx, p))

	dup := &models.Payment{CustomerID: customer.ID, Amount: 100000, MonthYear: "2025-03", PaymentDate: "2025-03-06"}
	assert.ErrorIs(t, repos.Payment.Create(ctx, dup), ErrDuplicatePeriod)

	next := &models.Payment{CustomerID: customer.ID, Amount: 100000, MonthYear: "2025-04", PaymentDate: "2025-04-06"}
	assert.NoError(t, repos.Payment.Create(ctx, next))
}

func TestPaymentRepository_DeleteAndSums(t *testing.T) {
	ctx := context.Background()
	repos := NewRepositories(newTestDB(t))
	ana := seedCustomer(t, repos.Customer, "Ana", "Sukamaju", 10)
	budi := seedCustomer(t, repos.Customer, "Budi", "Cibodas", 5)

	p1 := &models.Payment{CustomerID: ana.ID, Amount: 100000, MonthYear: "2025-03", PaymentDate: "2025-03-05"}
	p2 := &models.Payment{CustomerID: budi.ID, Amount: 75000, MonthYear: "2025-03", PaymentDate: "2025-03-05"}
	p3 := &models.Payment{CustomerID: budi.ID, Amount: 20000, MonthYear: "2025-02", PaymentDate: "2025-03-05"}
	for _, p := range []*models.Payment{p1, p2, p3} {
		require.NoError(t, repos.Payment.Create(ctx, p))
	}

	total, err := repos.Payment.SumByPaymentDate(ctx, "2025-03-05")
	require.NoError(t, err)
	assert.Equal(t, int64(195000), total)

	total, err = repos.Payment.SumByPaymentDate(ctx, "2025-01-01")
	require.NoError(t, err)
	assert.Zero(t, total)

	onDate, err := repos.Payment.FindByPaymentDate(ctx, "2025-03-05")
	require.NoError(t, err)
	assert.Len(t, onDate, 3)

	require.NoError(t, repos.Payment.Delete(ctx, p2.ID))
	assert.ErrorIs(t, repos.Payment.Delete(ctx, p2.ID), gorm.ErrRecordNotFound)

	_, err = repos.Payment.FindByID(ctx, p2.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestPaymentRepository_ProofStatus(t *testing.T) {
	ctx := context.Background()
	repos := NewRepositories(newTestDB(t))
	ana := seedCustomer(t, repos.Customer, "Ana", "Sukamaju", 10)

	p := &models.Payment{
		CustomerID:  ana.ID,
		Amount:      100000,
		MonthYear:   "2025-03",
		PaymentDate: "2025-03-05",
		ProofPath:   strPtr("proofs/x.jpg"),
		ProofStatus: models.ProofStatusActive,
	}
	require.NoError(t, repos.Payment.Create(ctx, p))

	active, err := repos.Payment.FindWithActiveProof(ctx)
	require.NoError(t, err)
	require.Len(t, active, 1)

	require.NoError(t, repos.Payment.UpdateProofStatus(ctx, p.ID, models.ProofStatusExpired))

	active, err = repos.Payment.FindWithActiveProof(ctx)
	require.NoError(t, err)
	assert.Empty(t, active)
}
