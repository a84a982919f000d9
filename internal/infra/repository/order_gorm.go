package repository

import (
	"context"
	"errors"

	"backoffice/internal/domain/model"
	repo "backoffice/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// 表示用に顧客・ステータス・支払い方法をJOINする
const orderSummaryColumns = `o.id, o.customer_id,
	c.first_name || ' ' || c.last_name AS customer_name, c.email AS customer_email,
	o.status_id, s.name AS status_name,
	o.payment_method_id, pm.name AS payment_method_name,
	o.total, o.notes, o.created_at, o.updated_at`

type OrderGormRepository struct {
	db *gorm.DB
}

func NewOrderGormRepository(db *gorm.DB) *OrderGormRepository {
	return &OrderGormRepository{db: db}
}

func (r *OrderGormRepository) FindByID(ctx context.Context, orderID int64) (model.Order, error) {
	var o model.Order
	err := r.db.WithContext(ctx).Where("id = ?", orderID).First(&o).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Order{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Order{}, err
	}
	return o, nil
}

func (r *OrderGormRepository) Create(ctx context.Context, order model.Order) (int64, error) {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(&order).Error; err != nil {
		return 0, err
	}
	return order.ID, nil
}

func (r *OrderGormRepository) UpdateTotal(ctx context.Context, orderID int64, total decimal.Decimal) error {
	res := r.db.WithContext(ctx).Model(&model.Order{}).
		Where("id = ?", orderID).
		Update("total", total)

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// ステータス・備考だけ更新（明細・合計・在庫には触らない）
func (r *OrderGormRepository) Update(ctx context.Context, orderID int64, patch repo.OrderPatch) error {
	fields := map[string]interface{}{}
	setIfPresent(fields, "status_id", patch.StatusID)
	setIfPresent(fields, "notes", patch.Notes)
	if len(fields) == 0 {
		return nil
	}

	res := r.db.WithContext(ctx).Model(&model.Order{}).
		Where("id = ?", orderID).
		Updates(fields)

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// 明細は外部キーのCASCADEで消える
func (r *OrderGormRepository) Delete(ctx context.Context, orderID int64) (int64, error) {
	res := r.db.WithContext(ctx).Delete(&model.Order{}, orderID)
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

func (r *OrderGormRepository) FindByIdempotencyKey(ctx context.Context, key string) (model.Order, bool, error) {
	var o model.Order
	err := r.db.WithContext(ctx).
		Where("idempotency_key = ?", key).
		First(&o).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Order{}, false, nil
	}
	if err != nil {
		return model.Order{}, false, err
	}
	return o, true, nil
}

func (r *OrderGormRepository) FindSummary(ctx context.Context, orderID int64) (model.OrderSummary, error) {
	var s model.OrderSummary
	err := r.summaryQuery(ctx).Where("o.id = ?", orderID).Take(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.OrderSummary{}, repo.ErrNotFound
	}
	if err != nil {
		return model.OrderSummary{}, err
	}
	return s, nil
}

// 新しい順（明細なし）
func (r *OrderGormRepository) ListSummaries(ctx context.Context) ([]model.OrderSummary, error) {
	var items []model.OrderSummary
	if err := r.summaryQuery(ctx).
		Order("o.created_at DESC").
		Order("o.id DESC").
		Find(&items).Error; err != nil {
		return []model.OrderSummary{}, err
	}
	return items, nil
}

func (r *OrderGormRepository) summaryQuery(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("orders AS o").
		Select(orderSummaryColumns).
		Joins("JOIN customers c ON c.id = o.customer_id").
		Joins("JOIN order_statuses s ON s.id = o.status_id").
		Joins("JOIN payment_methods pm ON pm.id = o.payment_method_id")
}
