package validator

import (
	"strings"

	repo "backoffice/internal/repository"
	"backoffice/internal/usecase"

	"github.com/shopspring/decimal"
)

// numeric(12,2)に入る上限
var maxPrice = decimal.New(1, 10)

type productValidator struct{}

func NewProductValidator() usecase.ProductValidator {
	return &productValidator{}
}

func (v *productValidator) ValidateCreate(in usecase.CreateProductInput) error {
	if in.CategoryID <= 0 {
		return invalid("category_id", "is required")
	}
	if err := validateName(in.Name); err != nil {
		return err
	}
	if in.Price == nil {
		return invalid("price", "is required")
	}
	if err := validatePrice(*in.Price); err != nil {
		return err
	}
	if in.Stock == nil {
		return invalid("stock", "is required")
	}
	return v.ValidateStock(*in.Stock)
}

// 在庫はpatchでは変えない（在庫調整から）
func (v *productValidator) ValidatePatch(p repo.ProductPatch) error {
	if p.IsEmpty() {
		return invalid("body", "has nothing to update")
	}
	if p.CategoryID != nil && *p.CategoryID <= 0 {
		return invalid("category_id", "is invalid")
	}
	if p.Name != nil {
		if err := validateName(*p.Name); err != nil {
			return err
		}
	}
	if p.Price != nil {
		if err := validatePrice(*p.Price); err != nil {
			return err
		}
	}
	if p.ImageURL != nil && len(*p.ImageURL) > 500 {
		return invalid("image_url", "is too long")
	}
	return nil
}

func (v *productValidator) ValidateStock(stock int64) error {
	if stock < 0 {
		return invalid("stock", "must be >= 0")
	}
	return nil
}

func validateName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return invalid("name", "is required")
	}
	if len(name) > 255 {
		return invalid("name", "is too long")
	}
	return nil
}

func validatePrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return invalid("price", "must be >= 0")
	}
	if price.GreaterThanOrEqual(maxPrice) {
		return invalid("price", "is too large")
	}
	//小数は2桁まで
	if !price.Equal(price.Round(2)) {
		return invalid("price", "must have at most 2 decimal places")
	}
	return nil
}
