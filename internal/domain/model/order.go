package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type Order struct {
	ID              int64         `gorm:"primaryKey;autoIncrement" json:"id"`
	CustomerID      int64         `gorm:"not null;index" json:"customer_id"`
	Customer        Customer      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
	StatusID        OrderStatusID `gorm:"not null;index" json:"status_id"`
	Status          OrderStatus   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
	PaymentMethodID int64         `gorm:"not null" json:"payment_method_id"`
	PaymentMethod   PaymentMethod `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`

	//明細の小計の合計。クライアントからは受け取らない
	Total decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"total"`
	Notes *string         `gorm:"type:text" json:"notes"`

	//同じキーなら同じ注文を返す
	IdempotencyKey *string `gorm:"type:varchar(255);uniqueIndex" json:"-"`

	//注文を消すと明細も消える
	Lines []OrderLine `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"-"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime;index" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
