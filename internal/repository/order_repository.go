package repository

import (
	"context"

	"backoffice/internal/domain/model"

	"github.com/shopspring/decimal"
)

// 注文ステータス・備考の部分更新
type OrderPatch struct {
	StatusID *model.OrderStatusID
	Notes    *string
}

func (p OrderPatch) IsEmpty() bool {
	return p.StatusID == nil && p.Notes == nil
}

type OrderRepository interface {
	FindByID(ctx context.Context, orderID int64) (model.Order, error)
	Create(ctx context.Context, order model.Order) (int64, error)
	UpdateTotal(ctx context.Context, orderID int64, total decimal.Decimal) error
	Update(ctx context.Context, orderID int64, patch OrderPatch) error
	//削除件数を返す（0なら存在しない）
	Delete(ctx context.Context, orderID int64) (int64, error)

	//検索（同じキーなら同じ結果を返す）
	FindByIdempotencyKey(ctx context.Context, key string) (model.Order, bool, error)

	//顧客名・ステータス名・支払い方法名をJOINした表示用
	FindSummary(ctx context.Context, orderID int64) (model.OrderSummary, error)
	ListSummaries(ctx context.Context) ([]model.OrderSummary, error)
}
