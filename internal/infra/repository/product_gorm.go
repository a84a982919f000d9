package repository

import (
	"context"
	"errors"

	"backoffice/internal/domain/model"
	repo "backoffice/internal/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProductGormRepository struct {
	db *gorm.DB
}

// DI
func NewProductGormRepository(db *gorm.DB) *ProductGormRepository {
	return &ProductGormRepository{db: db}
}

// カテゴリ名をJOINした読み取り用
func (r *ProductGormRepository) withCategory(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&model.Product{}).
		Select("products.*, categories.name AS category_name").
		Joins("JOIN categories ON categories.id = products.category_id")
}

// 商品一覧。カテゴリ指定があれば絞り込む
func (r *ProductGormRepository) List(ctx context.Context, categoryID *int64) ([]model.Product, error) {
	var products []model.Product

	tx := r.withCategory(ctx)
	if categoryID != nil {
		tx = tx.Where("products.category_id = ?", *categoryID)
	}

	if err := tx.Order("products.created_at desc").Order("products.id desc").Find(&products).Error; err != nil {
		return []model.Product{}, err
	}
	return products, nil
}

// IDで商品を取得
func (r *ProductGormRepository) FindByID(ctx context.Context, id int64) (model.Product, error) {
	var p model.Product
	err := r.withCategory(ctx).Where("products.id = ?", id).Take(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Product{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Product{}, err
	}
	return p, nil
}

// SELECT ... FOR UPDATE で取得。commitまで他の更新を待たせる
// sqliteは行ロックが無いのでドライバが句を落とす
func (r *ProductGormRepository) FindByIDForUpdate(ctx context.Context, id int64) (model.Product, error) {
	var p model.Product
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Product{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Product{}, err
	}
	return p, nil
}

// 商品の作成
func (r *ProductGormRepository) Create(ctx context.Context, p model.Product) (model.Product, error) {
	active := p.IsActive
	if err := r.db.WithContext(ctx).Omit("Category").Create(&p).Error; err != nil {
		return model.Product{}, err
	}
	//is_activeのfalseはdefault:trueで潰されるので後から明示する
	if !active {
		p.IsActive = false
		if err := r.db.WithContext(ctx).Model(&model.Product{}).
			Where("id = ?", p.ID).
			Update("is_active", false).Error; err != nil {
			return model.Product{}, err
		}
	}
	return p, nil
}

// 商品の更新（在庫以外）
func (r *ProductGormRepository) Update(ctx context.Context, id int64, patch repo.ProductPatch) error {
	fields := map[string]interface{}{}
	setIfPresent(fields, "category_id", patch.CategoryID)
	setIfPresent(fields, "name", patch.Name)
	setIfPresent(fields, "description", patch.Description)
	setIfPresent(fields, "price", patch.Price)
	setIfPresent(fields, "image_url", patch.ImageURL)
	setIfPresent(fields, "is_active", patch.IsActive)
	if len(fields) == 0 {
		return nil
	}

	res := r.db.WithContext(ctx).Model(&model.Product{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// 商品削除
func (r *ProductGormRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&model.Product{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *ProductGormRepository) CountOrderLines(ctx context.Context, id int64) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&model.OrderLine{}).
		Where("product_id = ?", id).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
