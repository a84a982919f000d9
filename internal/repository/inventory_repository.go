package repository

import (
	"backoffice/internal/domain/model"
	"context"
)

type InventoryRepository interface {
	// 在庫の現在値を設定
	SetStock(ctx context.Context, productID int64, newStock int64) error

	// 在庫が足りるときだけ減算（1文のUPDATEで判定と減算をする）
	DecreaseStockIfEnough(ctx context.Context, productID int64, qty int64) (bool, error)

	// 在庫戻し（キャンセルなど）
	IncreaseStock(ctx context.Context, productID int64, qty int64) error

	// 在庫変動の履歴
	RecordMovement(ctx context.Context, m model.StockMovement) error
	ListMovements(ctx context.Context, productID int64) ([]model.StockMovement, error)
}
