package repository

import (
	"context"

	"backoffice/internal/domain/model"
)

// カテゴリ・注文ステータス・支払い方法の参照
type ReferenceRepository interface {
	ListCategories(ctx context.Context) ([]model.Category, error)
	FindCategory(ctx context.Context, id int64) (model.Category, error)
	ListOrderStatuses(ctx context.Context) ([]model.OrderStatus, error)
	FindOrderStatus(ctx context.Context, id model.OrderStatusID) (model.OrderStatus, error)
	ListPaymentMethods(ctx context.Context) ([]model.PaymentMethod, error)
	FindPaymentMethod(ctx context.Context, id int64) (model.PaymentMethod, error)
}
