package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"backoffice/internal/domain/model"
	repo "backoffice/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ProductUsecase struct {
	tx       repo.TransactionManager
	products repo.ProductRepository
	v        ProductValidator
	log      *slog.Logger
}

// DI
func NewProductUsecase(
	tx repo.TransactionManager,
	products repo.ProductRepository,
	v ProductValidator,
	log *slog.Logger,
) *ProductUsecase {
	return &ProductUsecase{
		tx:       tx,
		products: products,
		v:        v,
		log:      log,
	}
}

type CreateProductInput struct {
	CategoryID  int64
	Name        string
	Description string
	//必須（nilは未指定）
	Price    *decimal.Decimal
	Stock    *int64
	ImageURL string
	//nilなら有効
	IsActive *bool
}

// categoryIDがnilなら全件
func (u *ProductUsecase) List(ctx context.Context, categoryID *int64) ([]model.Product, error) {
	if categoryID != nil && *categoryID <= 0 {
		return []model.Product{}, validationError("invalid category")
	}

	items, err := u.products.List(ctx, categoryID)
	if err != nil {
		return []model.Product{}, storeError(ctx, u.log, "list products", err)
	}
	return items, nil
}

func (u *ProductUsecase) Get(ctx context.Context, productID int64) (model.Product, error) {
	if productID <= 0 {
		return model.Product{}, validationError("invalid product id")
	}

	p, err := u.products.FindByID(ctx, productID)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Product{}, productNotFoundError(productID)
	}
	if err != nil {
		return model.Product{}, storeError(ctx, u.log, "find product", err)
	}
	return p, nil
}

// Create stores a product. Initial stock is recorded as an adjustment so the
// stock ledger always explains the current value.
func (u *ProductUsecase) Create(ctx context.Context, in CreateProductInput) (model.Product, error) {
	if err := u.v.ValidateCreate(in); err != nil {
		return model.Product{}, validationError(err.Error())
	}

	active := true
	if in.IsActive != nil {
		active = *in.IsActive
	}

	var out model.Product

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		if err := u.checkCategory(ctx, r, in.CategoryID); err != nil {
			return err
		}

		p, err := r.Products().Create(ctx, model.Product{
			CategoryID:  in.CategoryID,
			Name:        strings.TrimSpace(in.Name),
			Description: in.Description,
			Price:       *in.Price,
			Stock:       *in.Stock,
			ImageURL:    strings.TrimSpace(in.ImageURL),
			IsActive:    active,
		})
		if err != nil {
			return storeError(ctx, u.log, "create product", err)
		}

		if p.Stock > 0 {
			if err := r.Inventory().RecordMovement(ctx, model.StockMovement{
				ProductID: p.ID,
				Delta:     p.Stock,
				Reason:    model.StockReasonAdjustment,
				Note:      "initial stock",
			}); err != nil {
				return storeError(ctx, u.log, "record stock movement", err)
			}
		}

		//カテゴリ名つきで読み直す
		created, err := r.Products().FindByID(ctx, p.ID)
		if err != nil {
			return storeError(ctx, u.log, "reload product", err)
		}
		out = created
		return nil
	})

	if err != nil {
		return model.Product{}, err
	}
	return out, nil
}

// Update applies the patch. Stock is changed only through AdjustStock or orders.
func (u *ProductUsecase) Update(ctx context.Context, productID int64, patch repo.ProductPatch) (model.Product, error) {
	if productID <= 0 {
		return model.Product{}, validationError("invalid product id")
	}
	if err := u.v.ValidatePatch(patch); err != nil {
		return model.Product{}, validationError(err.Error())
	}
	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		patch.Name = &name
	}

	var out model.Product

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		if _, err := r.Products().FindByID(ctx, productID); err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return productNotFoundError(productID)
			}
			return storeError(ctx, u.log, "find product", err)
		}
		if patch.CategoryID != nil {
			if err := u.checkCategory(ctx, r, *patch.CategoryID); err != nil {
				return err
			}
		}

		if err := r.Products().Update(ctx, productID, patch); err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return productNotFoundError(productID)
			}
			return storeError(ctx, u.log, "update product", err)
		}

		p, err := r.Products().FindByID(ctx, productID)
		if err != nil {
			return storeError(ctx, u.log, "reload product", err)
		}
		out = p
		return nil
	})

	if err != nil {
		return model.Product{}, err
	}
	return out, nil
}

type stockAuditState struct {
	Stock int64 `json:"stock"`
}

// AdjustStock sets the stock to newStock and records the difference.
func (u *ProductUsecase) AdjustStock(ctx context.Context, productID int64, newStock int64, reason string) (model.Product, error) {
	if productID <= 0 {
		return model.Product{}, validationError("invalid product id")
	}
	if err := u.v.ValidateStock(newStock); err != nil {
		return model.Product{}, validationError(err.Error())
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return model.Product{}, validationError("reason is required")
	}
	if len(reason) > 255 {
		return model.Product{}, validationError("reason is too long")
	}

	var out model.Product

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		//変更前の在庫（before）。差分を正しく残すため、commitまで注文の減算を待たせる
		p, err := r.Products().FindByIDForUpdate(ctx, productID)
		if errors.Is(err, repo.ErrNotFound) {
			return productNotFoundError(productID)
		}
		if err != nil {
			return storeError(ctx, u.log, "find product", err)
		}

		if err := r.Inventory().SetStock(ctx, productID, newStock); err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return productNotFoundError(productID)
			}
			return storeError(ctx, u.log, "set stock", err)
		}

		//履歴を作成（差分）
		if delta := newStock - p.Stock; delta != 0 {
			if err := r.Inventory().RecordMovement(ctx, model.StockMovement{
				ProductID: productID,
				Delta:     delta,
				Reason:    model.StockReasonAdjustment,
				Note:      reason,
			}); err != nil {
				return storeError(ctx, u.log, "record stock movement", err)
			}
		}

		if err := writeAudit(ctx, u.log, r, model.AuditLog{
			Action:       model.AuditActionAdjustStock,
			ResourceType: model.AuditResourceProduct,
			ResourceID:   productID,
		}, stockAuditState{Stock: p.Stock}, stockAuditState{Stock: newStock}); err != nil {
			return err
		}

		updated, err := r.Products().FindByID(ctx, productID)
		if err != nil {
			return storeError(ctx, u.log, "reload product", err)
		}
		out = updated
		return nil
	})

	if err != nil {
		return model.Product{}, err
	}
	return out, nil
}

// Movements returns the stock history of a product, oldest first.
func (u *ProductUsecase) Movements(ctx context.Context, productID int64) ([]model.StockMovement, error) {
	if productID <= 0 {
		return []model.StockMovement{}, validationError("invalid product id")
	}

	var out []model.StockMovement

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		if _, err := r.Products().FindByID(ctx, productID); err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return productNotFoundError(productID)
			}
			return storeError(ctx, u.log, "find product", err)
		}

		list, err := r.Inventory().ListMovements(ctx, productID)
		if err != nil {
			return storeError(ctx, u.log, "list stock movements", err)
		}
		out = list
		return nil
	})

	if err != nil {
		return []model.StockMovement{}, err
	}
	return out, nil
}

// Delete removes a product that no order line references.
func (u *ProductUsecase) Delete(ctx context.Context, productID int64) error {
	if productID <= 0 {
		return validationError("invalid product id")
	}

	return u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		if _, err := r.Products().FindByID(ctx, productID); err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return productNotFoundError(productID)
			}
			return storeError(ctx, u.log, "find product", err)
		}

		n, err := r.Products().CountOrderLines(ctx, productID)
		if err != nil {
			return storeError(ctx, u.log, "count order lines", err)
		}
		if n > 0 {
			return conflictError(fmt.Sprintf("product %d is referenced by %d order lines", productID, n))
		}

		if err := r.Products().Delete(ctx, productID); err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return productNotFoundError(productID)
			}
			//同時に注文された場合は外部キーで止まる
			if errors.Is(err, gorm.ErrForeignKeyViolated) {
				return conflictError(fmt.Sprintf("product %d is referenced by orders", productID))
			}
			return storeError(ctx, u.log, "delete product", err)
		}
		return nil
	})
}

func (u *ProductUsecase) checkCategory(ctx context.Context, r repo.TxRepos, categoryID int64) error {
	if _, err := r.References().FindCategory(ctx, categoryID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return notFoundError(fmt.Sprintf("category %d not found", categoryID))
		}
		return storeError(ctx, u.log, "find category", err)
	}
	return nil
}
