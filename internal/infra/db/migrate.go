package db

import (
	"context"
	"fmt"

	"backoffice/internal/domain/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Migrate creates or updates every table the back office uses.
func Migrate(gdb *gorm.DB) error {
	if err := gdb.AutoMigrate(
		&model.Category{},
		&model.OrderStatus{},
		&model.PaymentMethod{},
		&model.Customer{},
		&model.Product{},
		&model.Order{},
		&model.OrderLine{},
		&model.StockMovement{},
		&model.AuditLog{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}

// 参照テーブルの初期データ（既にあれば何もしない）
var (
	seedOrderStatuses = []model.OrderStatus{
		{ID: model.OrderStatusPending, Name: "Pending"},
		{ID: model.OrderStatusProcessing, Name: "Processing"},
		{ID: model.OrderStatusShipped, Name: "Shipped"},
		{ID: model.OrderStatusDelivered, Name: "Delivered"},
		{ID: model.OrderStatusCancelled, Name: "Cancelled"},
	}
	seedPaymentMethods = []model.PaymentMethod{
		{ID: 1, Name: "Credit card", IsActive: true},
		{ID: 2, Name: "Debit card", IsActive: true},
		{ID: 3, Name: "Bank transfer", IsActive: true},
		{ID: 4, Name: "Cash", IsActive: true},
		{ID: 5, Name: "PayPal", IsActive: true},
	}
	seedCategories = []model.Category{
		{Name: "Electronics"},
		{Name: "Clothing"},
		{Name: "Home"},
		{Name: "Books"},
		{Name: "Sports"},
	}
)

// Seed inserts reference data.
func Seed(ctx context.Context, gdb *gorm.DB) error {
	return gdb.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		statuses := append([]model.OrderStatus(nil), seedOrderStatuses...)
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&statuses).Error; err != nil {
			return fmt.Errorf("seed order statuses: %w", err)
		}
		methods := append([]model.PaymentMethod(nil), seedPaymentMethods...)
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&methods).Error; err != nil {
			return fmt.Errorf("seed payment methods: %w", err)
		}
		categories := append([]model.Category(nil), seedCategories...)
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&categories).Error; err != nil {
			return fmt.Errorf("seed categories: %w", err)
		}
		return nil
	})
}
