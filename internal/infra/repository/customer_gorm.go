package repository

import (
	"context"
	"errors"

	"backoffice/internal/domain/model"
	repo "backoffice/internal/repository"

	"gorm.io/gorm"
)

type CustomerGormRepository struct {
	db *gorm.DB
}

// DI
func NewCustomerGormRepository(db *gorm.DB) *CustomerGormRepository {
	return &CustomerGormRepository{db: db}
}

// 新しい順
func (r *CustomerGormRepository) List(ctx context.Context) ([]model.Customer, error) {
	var list []model.Customer
	if err := r.db.WithContext(ctx).
		Order("created_at DESC, id DESC").
		Find(&list).Error; err != nil {
		return []model.Customer{}, err
	}
	return list, nil
}

func (r *CustomerGormRepository) FindByID(ctx context.Context, id int64) (model.Customer, error) {
	var c model.Customer
	err := r.db.WithContext(ctx).First(&c, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Customer{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Customer{}, err
	}
	return c, nil
}

func (r *CustomerGormRepository) ExistsByEmail(ctx context.Context, email string, excludeID int64) (bool, error) {
	var count int64
	q := r.db.WithContext(ctx).Model(&model.Customer{}).Where("email = ?", email)
	if excludeID > 0 {
		q = q.Where("id <> ?", excludeID)
	}
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *CustomerGormRepository) Create(ctx context.Context, c model.Customer) (model.Customer, error) {
	if err := r.db.WithContext(ctx).Create(&c).Error; err != nil {
		return model.Customer{}, err
	}
	return c, nil
}

// 指定されたフィールドだけ更新
func (r *CustomerGormRepository) Update(ctx context.Context, id int64, patch repo.CustomerPatch) error {
	fields := map[string]interface{}{}
	setIfPresent(fields, "first_name", patch.FirstName)
	setIfPresent(fields, "last_name", patch.LastName)
	setIfPresent(fields, "email", patch.Email)
	setIfPresent(fields, "phone", patch.Phone)
	setIfPresent(fields, "address", patch.Address)
	setIfPresent(fields, "city", patch.City)
	setIfPresent(fields, "country", patch.Country)
	setIfPresent(fields, "postal_code", patch.PostalCode)
	if len(fields) == 0 {
		return nil
	}

	res := r.db.WithContext(ctx).
		Model(&model.Customer{}).
		Where("id = ?", id).
		Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *CustomerGormRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&model.Customer{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *CustomerGormRepository) CountOrders(ctx context.Context, id int64) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&model.Order{}).
		Where("customer_id = ?", id).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// pがnilでなければfieldsに入れる
func setIfPresent[T any](fields map[string]interface{}, column string, p *T) {
	if p != nil {
		fields[column] = *p
	}
}
