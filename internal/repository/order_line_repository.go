package repository

import (
	"context"

	"backoffice/internal/domain/model"
)

type OrderLineRepository interface {
	Create(ctx context.Context, line model.OrderLine) (model.OrderLine, error)
	ListByOrderID(ctx context.Context, orderID int64) ([]model.OrderLine, error)
	//商品名をJOINした表示用
	ListViewsByOrderID(ctx context.Context, orderID int64) ([]model.OrderLineView, error)
}
