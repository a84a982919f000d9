package db_test

import (
	"context"
	"testing"

	"backoffice/internal/domain/model"
	"backoffice/internal/infra/db"
	"backoffice/internal/infra/db/dbtest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeed_IsIdempotent(t *testing.T) {
	gdb := dbtest.New(t)

	//2回目も失敗せず件数も変わらない
	require.NoError(t, db.Seed(context.Background(), gdb))

	var statuses []model.OrderStatus
	require.NoError(t, gdb.Order("id").Find(&statuses).Error)
	require.Len(t, statuses, 5)
	assert.Equal(t, model.DefaultOrderStatus, statuses[0].ID)
	assert.Equal(t, "Pending", statuses[0].Name)

	var methods int64
	require.NoError(t, gdb.Model(&model.PaymentMethod{}).Count(&methods).Error)
	assert.Equal(t, int64(5), methods)

	var categories int64
	require.NoError(t, gdb.Model(&model.Category{}).Count(&categories).Error)
	assert.Equal(t, int64(5), categories)
}

func TestMigrate_ForeignKeysEnforced(t *testing.T) {
	gdb := dbtest.New(t)

	//存在しない顧客を参照する注文は入らない
	err := gdb.Exec(
		"INSERT INTO orders (customer_id, status_id, payment_method_id, total, created_at, updated_at) VALUES (999, 1, 1, 0, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)",
	).Error
	assert.Error(t, err)
}
