package model

// 商品カテゴリ
type Category struct {
	ID   int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Name string `gorm:"type:varchar(100);not null;uniqueIndex" json:"name"`
}

type OrderStatusID int64

const (
	OrderStatusPending    OrderStatusID = 1
	OrderStatusProcessing OrderStatusID = 2
	OrderStatusShipped    OrderStatusID = 3
	OrderStatusDelivered  OrderStatusID = 4
	OrderStatusCancelled  OrderStatusID = 5
)

// 呼び出し側がステータスを指定しないときの初期状態
const DefaultOrderStatus = OrderStatusPending

// 注文ステータス（参照テーブル）
type OrderStatus struct {
	ID   OrderStatusID `gorm:"primaryKey;autoIncrement:false" json:"id"`
	Name string        `gorm:"type:varchar(50);not null;uniqueIndex" json:"name"`
}

func (OrderStatus) TableName() string { return "order_statuses" }

// 支払い方法（参照テーブル）
type PaymentMethod struct {
	ID       int64  `gorm:"primaryKey;autoIncrement:false" json:"id"`
	Name     string `gorm:"type:varchar(50);not null;uniqueIndex" json:"name"`
	IsActive bool   `gorm:"not null;default:true" json:"is_active"`
}
