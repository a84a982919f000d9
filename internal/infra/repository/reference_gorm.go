package repository

import (
	"context"
	"errors"

	"backoffice/internal/domain/model"
	repo "backoffice/internal/repository"

	"gorm.io/gorm"
)

type ReferenceGormRepository struct {
	db *gorm.DB
}

func NewReferenceGormRepository(db *gorm.DB) *ReferenceGormRepository {
	return &ReferenceGormRepository{db: db}
}

func (r *ReferenceGormRepository) ListCategories(ctx context.Context) ([]model.Category, error) {
	var list []model.Category
	if err := r.db.WithContext(ctx).Order("name asc").Find(&list).Error; err != nil {
		return []model.Category{}, err
	}
	return list, nil
}

func (r *ReferenceGormRepository) FindCategory(ctx context.Context, id int64) (model.Category, error) {
	var c model.Category
	if err := r.db.WithContext(ctx).First(&c, id).Error; err != nil {
		return model.Category{}, notFoundOr(err)
	}
	return c, nil
}

func (r *ReferenceGormRepository) ListOrderStatuses(ctx context.Context) ([]model.OrderStatus, error) {
	var list []model.OrderStatus
	if err := r.db.WithContext(ctx).Order("id asc").Find(&list).Error; err != nil {
		return []model.OrderStatus{}, err
	}
	return list, nil
}

func (r *ReferenceGormRepository) FindOrderStatus(ctx context.Context, id model.OrderStatusID) (model.OrderStatus, error) {
	var s model.OrderStatus
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&s).Error; err != nil {
		return model.OrderStatus{}, notFoundOr(err)
	}
	return s, nil
}

// 有効なものだけ
func (r *ReferenceGormRepository) ListPaymentMethods(ctx context.Context) ([]model.PaymentMethod, error) {
	var list []model.PaymentMethod
	if err := r.db.WithContext(ctx).Where("is_active = ?", true).Order("id asc").Find(&list).Error; err != nil {
		return []model.PaymentMethod{}, err
	}
	return list, nil
}

func (r *ReferenceGormRepository) FindPaymentMethod(ctx context.Context, id int64) (model.PaymentMethod, error) {
	var m model.PaymentMethod
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return model.PaymentMethod{}, notFoundOr(err)
	}
	return m, nil
}

func notFoundOr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return repo.ErrNotFound
	}
	return err
}
