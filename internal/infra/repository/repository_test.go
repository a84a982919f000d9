package repository

import (
	"context"
	"errors"
	"testing"

	"backoffice/internal/domain/model"
	"backoffice/internal/infra/db/dbtest"
	repo "backoffice/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

func seedOrder(t *testing.T, gdb *gorm.DB) (model.Customer, model.Product, int64) {
	t.Helper()
	ctx := context.Background()

	c, err := NewCustomerGormRepository(gdb).Create(ctx, model.Customer{FirstName: "Ana", LastName: "García", Email: "ana@example.com"})
	require.NoError(t, err)
	p, err := NewProductGormRepository(gdb).Create(ctx, model.Product{CategoryID: 1, Name: "Lamp", Price: decimal.RequireFromString("50.00"), Stock: 10, IsActive: true})
	require.NoError(t, err)

	orders := NewOrderGormRepository(gdb)
	id, err := orders.Create(ctx, model.Order{CustomerID: c.ID, StatusID: model.OrderStatusPending, PaymentMethodID: 3, Total: decimal.Zero})
	require.NoError(t, err)

	line := model.NewOrderLine(p.ID, 2, p.Price)
	line.OrderID = id
	_, err = NewOrderLineGormRepository(gdb).Create(ctx, line)
	require.NoError(t, err)
	require.NoError(t, orders.UpdateTotal(ctx, id, line.Subtotal))
	return c, p, id
}

func TestInventory_DecreaseStockIfEnough(t *testing.T) {
	ctx := context.Background()
	gdb := dbtest.New(t)
	_, p, _ := seedOrder(t, gdb)
	inv := NewInventoryGormRepository(gdb)

	ok, err := inv.DecreaseStockIfEnough(ctx, p.ID, 10)
	require.NoError(t, err)
	assert.True(t, ok)

	//0より下にはならない
	ok, err = inv.DecreaseStockIfEnough(ctx, p.ID, 1)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, inv.IncreaseStock(ctx, p.ID, 3))
	got, err := NewProductGormRepository(gdb).FindByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), got.Stock)

	assert.ErrorIs(t, inv.IncreaseStock(ctx, 9999, 1), repo.ErrNotFound)
	assert.ErrorIs(t, inv.SetStock(ctx, 9999, 1), repo.ErrNotFound)
}

// 接続ごとに別のハンドルから同時に減算しても在庫を超えない
func TestInventory_DecreaseStockIfEnough_AcrossConnections(t *testing.T) {
	ctx := context.Background()
	gdb, path := dbtest.NewWithPath(t)
	_, p, _ := seedOrder(t, gdb)
	require.NoError(t, NewInventoryGormRepository(gdb).SetStock(ctx, p.ID, 5))

	const conns = 4
	invs := []*InventoryGormRepository{NewInventoryGormRepository(gdb)}
	for i := 1; i < conns; i++ {
		invs = append(invs, NewInventoryGormRepository(dbtest.Open(t, path)))
	}

	const buyers = 12
	results := make([]bool, buyers)
	var g errgroup.Group
	for i := 0; i < buyers; i++ {
		i := i
		g.Go(func() error {
			ok, err := invs[i%conns].DecreaseStockIfEnough(ctx, p.ID, 1)
			results[i] = ok
			return err
		})
	}
	require.NoError(t, g.Wait())

	var won int
	for _, ok := range results {
		if ok {
			won++
		}
	}
	assert.Equal(t, 5, won)

	got, err := NewProductGormRepository(gdb).FindByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), got.Stock)
}

func TestProduct_ReadsCarryCategoryName(t *testing.T) {
	ctx := context.Background()
	gdb := dbtest.New(t)
	_, p, _ := seedOrder(t, gdb)
	products := NewProductGormRepository(gdb)

	got, err := products.FindByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Electronics", got.CategoryName)

	locked, err := products.FindByIDForUpdate(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(10), locked.Stock)

	cat := int64(1)
	list, err := products.List(ctx, &cat)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Electronics", list[0].CategoryName)

	_, err = products.FindByIDForUpdate(ctx, 9999)
	assert.ErrorIs(t, err, repo.ErrNotFound)
	_, err = products.FindByID(ctx, 9999)
	assert.ErrorIs(t, err, repo.ErrNotFound)
}

func TestOrder_SummaryAndLineViews(t *testing.T) {
	ctx := context.Background()
	gdb := dbtest.New(t)
	c, p, id := seedOrder(t, gdb)
	orders := NewOrderGormRepository(gdb)

	s, err := orders.FindSummary(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, c.ID, s.CustomerID)
	assert.Equal(t, "Ana García", s.CustomerName)
	assert.Equal(t, "ana@example.com", s.CustomerEmail)
	assert.Equal(t, "Pending", s.StatusName)
	assert.Equal(t, "Bank transfer", s.PaymentMethodName)
	assert.True(t, decimal.NewFromInt(100).Equal(s.Total))

	views, err := NewOrderLineGormRepository(gdb).ListViewsByOrderID(ctx, id)
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, p.ID, views[0].ProductID)
	assert.Equal(t, "Lamp", views[0].ProductName)

	_, err = orders.FindSummary(ctx, 9999)
	assert.ErrorIs(t, err, repo.ErrNotFound)
}

func TestOrder_UpdatePatchAndDeleteCascades(t *testing.T) {
	ctx := context.Background()
	gdb := dbtest.New(t)
	_, _, id := seedOrder(t, gdb)
	orders := NewOrderGormRepository(gdb)

	notes := "leave at door"
	require.NoError(t, orders.Update(ctx, id, repo.OrderPatch{Notes: &notes}))
	o, err := orders.FindByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusPending, o.StatusID)
	require.NotNil(t, o.Notes)
	assert.Equal(t, notes, *o.Notes)

	n, err := orders.Delete(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	lines, err := NewOrderLineGormRepository(gdb).ListByOrderID(ctx, id)
	require.NoError(t, err)
	assert.Empty(t, lines)

	n, err = orders.Delete(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)
}

func TestOrder_IdempotencyKeyIsUnique(t *testing.T) {
	ctx := context.Background()
	gdb := dbtest.New(t)
	c, _, _ := seedOrder(t, gdb)
	orders := NewOrderGormRepository(gdb)

	key := "k-1"
	_, err := orders.Create(ctx, model.Order{CustomerID: c.ID, StatusID: model.OrderStatusPending, PaymentMethodID: 1, IdempotencyKey: &key})
	require.NoError(t, err)

	_, err = orders.Create(ctx, model.Order{CustomerID: c.ID, StatusID: model.OrderStatusPending, PaymentMethodID: 1, IdempotencyKey: &key})
	assert.True(t, errors.Is(err, gorm.ErrDuplicatedKey), "got %v", err)

	o, found, err := orders.FindByIdempotencyKey(ctx, key)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, key, *o.IdempotencyKey)

	_, found, err = orders.FindByIdempotencyKey(ctx, "other")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestCustomer_ReferencedByOrder(t *testing.T) {
	ctx := context.Background()
	gdb := dbtest.New(t)
	c, p, _ := seedOrder(t, gdb)
	customers := NewCustomerGormRepository(gdb)

	n, err := customers.CountOrders(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	//外部キーのRESTRICTでも止まる
	assert.ErrorIs(t, customers.Delete(ctx, c.ID), gorm.ErrForeignKeyViolated)
	assert.ErrorIs(t, NewProductGormRepository(gdb).Delete(ctx, p.ID), gorm.ErrForeignKeyViolated)

	used, err := customers.ExistsByEmail(ctx, "ana@example.com", 0)
	require.NoError(t, err)
	assert.True(t, used)
	used, err = customers.ExistsByEmail(ctx, "ana@example.com", c.ID)
	require.NoError(t, err)
	assert.False(t, used)
}

func TestAuditLog_Filter(t *testing.T) {
	ctx := context.Background()
	gdb := dbtest.New(t)
	audit := NewAuditLogGormRepository(gdb)

	require.NoError(t, audit.Create(ctx, model.AuditLog{Action: model.AuditActionUpdateOrder, ResourceType: model.AuditResourceOrder, ResourceID: 1}))
	require.NoError(t, audit.Create(ctx, model.AuditLog{Action: model.AuditActionCancelOrder, ResourceType: model.AuditResourceOrder, ResourceID: 1}))
	require.NoError(t, audit.Create(ctx, model.AuditLog{Action: model.AuditActionAdjustStock, ResourceType: model.AuditResourceProduct, ResourceID: 2}))

	rt := model.AuditResourceOrder
	logs, err := audit.List(ctx, repo.AuditLogFilter{ResourceType: &rt})
	require.NoError(t, err)
	require.Len(t, logs, 2)
	assert.Equal(t, model.AuditActionCancelOrder, logs[0].Action)

	logs, err = audit.List(ctx, repo.AuditLogFilter{Limit: 1})
	require.NoError(t, err)
	assert.Len(t, logs, 1)
}

func TestTxManager_RollsBackOnError(t *testing.T) {
	ctx := context.Background()
	gdb := dbtest.New(t)
	_, p, _ := seedOrder(t, gdb)
	tm := NewTxManagerGorm(gdb)

	boom := errors.New("boom")
	err := tm.WithinTx(ctx, func(r repo.TxRepos) error {
		if err := r.Inventory().SetStock(ctx, p.ID, 0); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	got, err := NewProductGormRepository(gdb).FindByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(10), got.Stock)
}
