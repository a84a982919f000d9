package model

import "time"

type StockReason string

const (
	StockReasonOrderCreated   StockReason = "order_created"
	StockReasonOrderCancelled StockReason = "order_cancelled"
	StockReasonAdjustment     StockReason = "adjustment"
)

// 在庫変動の履歴（追記のみ）
type StockMovement struct {
	ID        int64       `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductID int64       `gorm:"not null;index" json:"product_id"`
	OrderID   *int64      `gorm:"index" json:"order_id"`
	Delta     int64       `gorm:"not null" json:"delta"`
	Reason    StockReason `gorm:"type:varchar(50);not null" json:"reason"`
	Note      string      `gorm:"type:varchar(255)" json:"note"`
	CreatedAt time.Time   `gorm:"not null;autoCreateTime" json:"created_at"`
}
