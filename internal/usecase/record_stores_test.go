package usecase_test

import (
	"context"
	"testing"

	"backoffice/internal/domain/model"
	"backoffice/internal/infra/db/dbtest"
	gormrepo "backoffice/internal/infra/repository"
	"backoffice/internal/logging"
	repo "backoffice/internal/repository"
	"backoffice/internal/usecase"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCustomerUsecase_EmailMustBeUnique(t *testing.T) {
	ctx := context.Background()
	s := newStack(t)
	ana := s.customer(t, "ana@example.com")
	luis := s.customer(t, "luis@example.com")

	_, err := s.customers.Create(ctx, usecase.CreateCustomerInput{FirstName: "Otra", LastName: "Ana", Email: "ana@example.com"})
	assert.ErrorIs(t, err, usecase.ErrConflict)

	taken := "ana@example.com"
	_, err = s.customers.Update(ctx, luis.ID, repo.CustomerPatch{Email: &taken})
	assert.ErrorIs(t, err, usecase.ErrConflict)

	//自分のメールのままなら問題ない
	_, err = s.customers.Update(ctx, ana.ID, repo.CustomerPatch{Email: &taken})
	assert.NoError(t, err)
}

func TestCustomerUsecase_UpdateAndDelete(t *testing.T) {
	ctx := context.Background()
	s := newStack(t)
	c := s.customer(t, "ana@example.com")

	city := "  Sevilla "
	got, err := s.customers.Update(ctx, c.ID, repo.CustomerPatch{City: &city})
	require.NoError(t, err)
	assert.Equal(t, "Sevilla", got.City)
	assert.Equal(t, "ana@example.com", got.Email)

	_, err = s.customers.Update(ctx, c.ID, repo.CustomerPatch{})
	assert.ErrorIs(t, err, usecase.ErrValidation)

	require.NoError(t, s.customers.Delete(ctx, c.ID))
	_, err = s.customers.Get(ctx, c.ID)
	assert.ErrorIs(t, err, usecase.ErrNotFound)
	assert.ErrorIs(t, s.customers.Delete(ctx, c.ID), usecase.ErrNotFound)
}

func TestProductUsecase_CreateChecksCategory(t *testing.T) {
	ctx := context.Background()
	s := newStack(t)

	_, err := s.products.Create(ctx, usecase.CreateProductInput{CategoryID: 999, Name: "Ghost", Price: ptr(decimal.NewFromInt(1)), Stock: ptr(int64(0))})
	assert.ErrorIs(t, err, usecase.ErrNotFound)
	assert.Contains(t, err.Error(), "category 999")

	inactive := false
	p, err := s.products.Create(ctx, usecase.CreateProductInput{CategoryID: 2, Name: "Scarf", Price: ptr(decimal.NewFromInt(15)), Stock: ptr(int64(0)), IsActive: &inactive})
	require.NoError(t, err)
	assert.False(t, p.IsActive)

	got, err := s.products.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.False(t, got.IsActive)
}

func TestProductUsecase_ListByCategory(t *testing.T) {
	ctx := context.Background()
	s := newStack(t)
	s.product(t, "Lamp", "10.00", 1)
	_, err := s.products.Create(ctx, usecase.CreateProductInput{CategoryID: 2, Name: "Scarf", Price: ptr(decimal.NewFromInt(15)), Stock: ptr(int64(0))})
	require.NoError(t, err)

	all, err := s.products.List(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	cat := int64(2)
	clothing, err := s.products.List(ctx, &cat)
	require.NoError(t, err)
	require.Len(t, clothing, 1)
	assert.Equal(t, "Scarf", clothing[0].Name)
}

func TestProductUsecase_AdjustStockRecordsMovementAndAudit(t *testing.T) {
	ctx := logging.WithRequestID(context.Background(), "req-42")
	s := newStack(t)
	p := s.product(t, "Lamp", "10.00", 4)

	got, err := s.products.AdjustStock(ctx, p.ID, 9, "recount")
	require.NoError(t, err)
	assert.Equal(t, int64(9), got.Stock)
	assert.Equal(t, int64(9), s.stockOf(t, p.ID))

	moves, err := s.products.Movements(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, moves, 2)
	assert.Equal(t, int64(5), moves[1].Delta)
	assert.Equal(t, "recount", moves[1].Note)

	logs, err := s.audit.List(ctx, usecase.AuditLogQuery{ResourceType: string(model.AuditResourceProduct), ResourceID: &p.ID})
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, `{"stock":4}`, logs[0].BeforeJSON)
	assert.Equal(t, `{"stock":9}`, logs[0].AfterJSON)
	assert.Equal(t, "req-42", logs[0].RequestID)

	_, err = s.products.AdjustStock(ctx, p.ID, -1, "oops")
	assert.ErrorIs(t, err, usecase.ErrValidation)
	_, err = s.products.AdjustStock(ctx, p.ID, 3, " ")
	assert.ErrorIs(t, err, usecase.ErrValidation)
}

func TestProductUsecase_UpdateDoesNotTouchStock(t *testing.T) {
	ctx := context.Background()
	s := newStack(t)
	p := s.product(t, "Lamp", "10.00", 4)

	name := " Desk lamp "
	got, err := s.products.Update(ctx, p.ID, repo.ProductPatch{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Desk lamp", got.Name)
	assert.Equal(t, int64(4), got.Stock)

	missing := int64(404)
	_, err = s.products.Update(ctx, p.ID, repo.ProductPatch{CategoryID: &missing})
	assert.ErrorIs(t, err, usecase.ErrNotFound)
}

func TestProductUsecase_DeleteUnreferenced(t *testing.T) {
	ctx := context.Background()
	s := newStack(t)
	p := s.product(t, "Lamp", "10.00", 4)

	require.NoError(t, s.products.Delete(ctx, p.ID))
	_, err := s.products.Get(ctx, p.ID)
	assert.ErrorIs(t, err, usecase.ErrNotFound)
}

func TestReferenceUsecase_Lists(t *testing.T) {
	ctx := context.Background()
	gdb := dbtest.New(t)
	uc := usecase.NewReferenceUsecase(gormrepo.NewReferenceGormRepository(gdb), logging.Discard())

	cats, err := uc.Categories(ctx)
	require.NoError(t, err)
	assert.Len(t, cats, 5)

	statuses, err := uc.OrderStatuses(ctx)
	require.NoError(t, err)
	require.Len(t, statuses, 5)
	assert.Equal(t, model.OrderStatusPending, statuses[0].ID)
	assert.Equal(t, "Pending", statuses[0].Name)

	methods, err := uc.PaymentMethods(ctx)
	require.NoError(t, err)
	assert.Len(t, methods, 5)
}

func TestCustomerUsecase_DeleteWithOrdersIsConflict_Mock(t *testing.T) {
	r := newTxReposMock()
	tx := &TxManagerMock{Repos: r}
	tx.On("WithinTx", mock.Anything).Return(nil)
	uc := usecase.NewCustomerUsecase(tx, r.customers, nil, logging.Discard())

	r.customers.On("FindByID", mock.Anything, int64(3)).Return(model.Customer{ID: 3}, nil)
	r.customers.On("CountOrders", mock.Anything, int64(3)).Return(int64(2), nil)

	err := uc.Delete(context.Background(), 3)
	assert.ErrorIs(t, err, usecase.ErrConflict)
	assertErrContains(t, err, "has 2 orders")
	r.customers.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}
