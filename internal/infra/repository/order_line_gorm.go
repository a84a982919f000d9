package repository

import (
	"context"

	"backoffice/internal/domain/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type OrderLineGormRepository struct {
	db *gorm.DB
}

func NewOrderLineGormRepository(db *gorm.DB) *OrderLineGormRepository {
	return &OrderLineGormRepository{db: db}
}

func (r *OrderLineGormRepository) Create(ctx context.Context, line model.OrderLine) (model.OrderLine, error) {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(&line).Error; err != nil {
		return model.OrderLine{}, err
	}
	return line, nil
}

func (r *OrderLineGormRepository) ListByOrderID(ctx context.Context, orderID int64) ([]model.OrderLine, error) {
	var lines []model.OrderLine
	err := r.db.WithContext(ctx).Where("order_id = ?", orderID).Order("id asc").Find(&lines).Error
	if err != nil {
		return []model.OrderLine{}, err
	}
	return lines, nil
}

func (r *OrderLineGormRepository) ListViewsByOrderID(ctx context.Context, orderID int64) ([]model.OrderLineView, error) {
	var views []model.OrderLineView
	err := r.db.WithContext(ctx).
		Table("order_lines AS l").
		Select("l.id, l.product_id, p.name AS product_name, l.quantity, l.unit_price, l.subtotal").
		Joins("JOIN products p ON p.id = l.product_id").
		Where("l.order_id = ?", orderID).
		Order("l.id asc").
		Find(&views).Error
	if err != nil {
		return []model.OrderLineView{}, err
	}
	return views, nil
}
