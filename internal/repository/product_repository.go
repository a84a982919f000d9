package repository

import (
	"context"
	"errors"

	"backoffice/internal/domain/model"

	"github.com/shopspring/decimal"
)

var ErrNotFound = errors.New("not found")

// 商品の部分更新。在庫はここでは変えない（注文か在庫調整のみ）
type ProductPatch struct {
	CategoryID  *int64
	Name        *string
	Description *string
	Price       *decimal.Decimal
	ImageURL    *string
	IsActive    *bool
}

func (p ProductPatch) IsEmpty() bool {
	return p.CategoryID == nil && p.Name == nil && p.Description == nil &&
		p.Price == nil && p.ImageURL == nil && p.IsActive == nil
}

// 商品の永続化（保存・取得）だけを約束。
type ProductRepository interface {
	//categoryIDがnilなら全件
	List(ctx context.Context, categoryID *int64) ([]model.Product, error)
	FindByID(ctx context.Context, id int64) (model.Product, error)
	//行ロックして取得（Tx内で使う。読んでから書く処理用）
	FindByIDForUpdate(ctx context.Context, id int64) (model.Product, error)

	Create(ctx context.Context, p model.Product) (model.Product, error)
	Update(ctx context.Context, id int64, patch ProductPatch) error
	Delete(ctx context.Context, id int64) error

	//注文明細が何件参照しているか
	CountOrderLines(ctx context.Context, id int64) (int64, error)
}
