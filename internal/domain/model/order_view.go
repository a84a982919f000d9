package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// 一覧用（明細なし）
type OrderSummary struct {
	ID                int64           `json:"id"`
	CustomerID        int64           `json:"customer_id"`
	CustomerName      string          `json:"customer_name"`
	CustomerEmail     string          `json:"customer_email"`
	StatusID          OrderStatusID   `json:"status_id"`
	StatusName        string          `json:"status_name"`
	PaymentMethodID   int64           `json:"payment_method_id"`
	PaymentMethodName string          `json:"payment_method_name"`
	Total             decimal.Decimal `json:"total"`
	Notes             *string         `json:"notes"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

type OrderLineView struct {
	ID          int64           `json:"id"`
	ProductID   int64           `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int64           `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

// 詳細用（明細つき）
type OrderView struct {
	OrderSummary
	Lines []OrderLineView `json:"lines"`
}
