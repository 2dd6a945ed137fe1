package services

import (
	"context"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/sjperalta/tagihwarga-api/internal/billing"
	"github.com/sjperalta/tagihwarga-api/internal/cache"
	"github.com/sjperalta/tagihwarga-api/internal/models"
	mock_repository "github.com/sjperalta/tagihwarga-api/internal/repository/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestCustomerService_CreateValidation(t *testing.T) {
	tests := []struct {
		name string
		in   CreateCustomerInput
	}{
		{"missing name", CreateCustomerInput{Village: "Sukamaju", DueDate: 5}},
		{"missing village", CreateCustomerInput{Name: "Budi", DueDate: 5}},
		{"due date zero", CreateCustomerInput{Name: "Budi", Village: "Sukamaju"}},
		{"due date past 31", CreateCustomerInput{Name: "Budi", Village: "Sukamaju", DueDate: 32}},
		{"negative bill", CreateCustomerInput{Name: "Budi", Village: "Sukamaju", DueDate: 5, BillAmount: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			svc := NewCustomerService(mock_repository.NewMockCustomerRepository(ctrl), cache.NewMemoryCache(0))
			_, err := svc.Create(context.Background(), tt.in)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestCustomerService_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mock_repository.NewMockCustomerRepository(ctrl)
	snapshots := cache.NewMemoryCache(0)
	svc := NewCustomerService(repo, snapshots)
	ctx := context.Background()

	allKey := cache.CustomersKey(billing.Scope{Mode: billing.ScopeAll}.Key())
	require.NoError(t, snapshots.Set(ctx, allKey, []models.Customer{}))

	repo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, c *models.Customer) error {
		c.ID = uuid.New()
		return nil
	})

	customer, err := svc.Create(ctx, CreateCustomerInput{
		Name:    "  Budi Santoso ",
		Village: "Sukamaju",
		Phone:   "0812-3456-7890",
		DueDate: 10,
		Address: "   ",
	})
	require.NoError(t, err)
	assert.Equal(t, "Budi Santoso", customer.Name)
	require.NotNil(t, customer.Phone)
	assert.Equal(t, "6281234567890", *customer.Phone)
	assert.Nil(t, customer.Address)
	assert.Nil(t, customer.BillAmount)

	var cached []models.Customer
	found, err := snapshots.Get(ctx, allKey, &cached)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestCustomerService_ListAndLookups(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mock_repository.NewMockCustomerRepository(ctrl)
	svc := NewCustomerService(repo, cache.NewMemoryCache(0))
	ctx := context.Background()

	repo.EXPECT().FindByVillage(gomock.Any(), "Sukamaju").Return([]models.Customer{testCustomer("Budi", "Sukamaju", 10)}, nil)
	list, err := svc.List(ctx, billing.Scope{Mode: billing.ScopeVillage, Village: "Sukamaju"})
	require.NoError(t, err)
	assert.Len(t, list, 1)

	_, err = svc.List(ctx, billing.Scope{Mode: billing.ScopeVillage})
	assert.ErrorIs(t, err, ErrInvalidInput)

	repo.EXPECT().DistinctDueDates(gomock.Any()).Return([]int{5, 10, 20}, nil)
	days, err := svc.DueDates(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int{5, 10, 20}, days)

	missing := uuid.New()
	repo.EXPECT().FindByID(gomock.Any(), missing).Return(nil, gorm.ErrRecordNotFound)
	_, err = svc.Get(ctx, missing)
	assert.ErrorIs(t, err, ErrNotFound)
}
